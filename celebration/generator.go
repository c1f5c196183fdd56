package celebration

import (
	"fmt"
	"math/rand"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"bjquota/models"
)

// Generator renders celebration pages for lottery winners and optionally
// saves them for later sharing.
type Generator struct {
	outputDir string
}

// New builds a generator that saves pages under outputDir.
func New(outputDir string) *Generator {
	return &Generator{outputDir: outputDir}
}

var mainMessages = []string{
	"🎉 恭喜您！中签了！🎉",
	"🚗 您的新能源车梦想成真了！🚗",
	"🌟 幸运降临！您获得了车牌指标！🌟",
	"🎊 太棒了！您在摇号中获胜！🎊",
	"✨ 好运连连！车牌指标属于您了！✨",
}

var shareMessages = []string{
	"我在北京新能源车摇号中中签了！申请编码：%[1]s",
	"好消息！我获得了%[2]s！",
	"经过漫长等待，终于中签了！%[2]s到手！",
	"分享一个好消息：我的%[2]s申请成功了！",
}

// Generate renders the celebration page for a winner. hits are the winner's
// search results, newest first; the first one supplies the details shown on
// the page. Returns the HTML and, when save is set, the saved file path.
func (g *Generator) Generate(req models.CelebrationRequest, hits []models.SearchHit) (string, string, error) {
	name := req.Name
	if name == "" {
		name = "恭喜您"
	}

	lotteryType := LotteryType(hits)
	data := pageData{
		Name:            name,
		MainMessage:     mainMessages[rand.Intn(len(mainMessages))],
		LotteryType:     lotteryType,
		ApplicationCode: req.ApplicationCode,
		Date:            time.Now().Format("2006年01月02日"),
		ShareText:       shareText(req.ApplicationCode, lotteryType),
	}
	if len(hits) > 0 {
		data.SequenceNumber = hits[0].SequenceNumber
		if hits[0].WaitingTime != nil {
			data.WaitingTime = hits[0].WaitingTime.Format("2006-01-02")
		}
	}

	var sb strings.Builder
	if err := pageTemplate.Execute(&sb, data); err != nil {
		return "", "", fmt.Errorf("render celebration page: %w", err)
	}
	html := sb.String()

	var savedFile string
	if req.SaveToFile {
		if err := os.MkdirAll(g.outputDir, 0o755); err != nil {
			return "", "", fmt.Errorf("create celebrations directory: %w", err)
		}
		savedFile = filepath.Join(g.outputDir, "celebration_"+uuid.NewString()+".html")
		if err := os.WriteFile(savedFile, []byte(html), 0o644); err != nil {
			return "", "", fmt.Errorf("save celebration page: %w", err)
		}
		log.Info().Str("file", savedFile).Str("code", req.ApplicationCode).
			Msg("celebration page saved")
	}

	return html, savedFile, nil
}

// LotteryType derives the quota category from the winning entry's source URL.
// Entries without a category marker default to the individual quota.
func LotteryType(hits []models.SearchHit) string {
	if len(hits) == 0 {
		return "新能源小客车指标"
	}
	source := hits[0].SourceURL
	switch {
	case strings.Contains(source, "家庭") || strings.Contains(strings.ToLower(source), "family"):
		return "家庭新能源小客车指标"
	case strings.Contains(source, "单位") || strings.Contains(strings.ToLower(source), "unit"):
		return "单位新能源小客车指标"
	default:
		return "个人新能源小客车指标"
	}
}

// SharingLinks builds social sharing URLs for a winning application code.
func SharingLinks(applicationCode string) map[string]string {
	text := fmt.Sprintf("我在北京新能源车摇号中中签了！申请编码：%s", applicationCode)
	escaped := url.QueryEscape(text)
	return map[string]string{
		"weibo": "https://service.weibo.com/share/share.php?title=" + escaped,
		"qq":    "https://connect.qq.com/widget/shareqq/index.html?title=" + escaped,
		"copy":  text,
	}
}

func shareText(applicationCode, lotteryType string) string {
	msg := shareMessages[rand.Intn(len(shareMessages))]
	return fmt.Sprintf(msg, applicationCode, lotteryType)
}
