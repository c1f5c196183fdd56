package policy

import (
	"fmt"
	"sort"
	"strings"

	"github.com/rs/zerolog/log"

	"bjquota/models"
)

// policyKeywords is the vocabulary mined from questions. A question is
// matched against documents through the subset of these terms it contains.
var policyKeywords = []string{
	// Applicant types
	"个人申请", "家庭申请", "单位申请", "个人", "家庭", "单位", "企业",

	// Vehicle types
	"新能源", "普通", "燃油车", "电动车", "纯电动",

	// Process terms
	"申请", "摇号", "轮候", "更新", "复核", "审核", "积分",

	// Requirements
	"资格", "条件", "要求", "证件", "证明", "驾驶证", "身份证", "居住证", "工作居住证",

	// Time-related
	"时间", "期限", "有效期", "申报期", "截止",

	// Results and status
	"结果", "中签", "获得", "等待", "排队",

	// Documents and procedures
	"材料", "文件", "手续", "窗口", "办理", "提交",

	// Specific processes
	"转让", "变更", "过户", "注销", "登记",
}

// questionWords signal intent rather than topic and shape the answer's
// framing.
var questionWords = []string{"如何", "怎么", "怎样", "什么", "哪些", "多少", "是否", "能否", "可以", "需要"}

const (
	maxSourceDocs  = 5
	maxSections    = 5
	titleWeight    = 3
	contentWeight  = 1
	categoryBonus  = 10
	disclaimerNote = "以上信息基于现有政策文档，具体要求请以官方最新政策为准。如有疑问，请咨询12328热线或访问官方网站。"
)

type scoredDoc struct {
	doc   Document
	score int
}

// Explain answers a policy question from the knowledge base. Confidence
// reflects how many documents contributed: two or more is high, one is
// medium, none is low.
func Explain(db *DB, req models.PolicyExplainRequest) (models.PolicyExplainResponse, error) {
	resp := models.PolicyExplainResponse{
		Question:   req.Question,
		Confidence: "low",
		Sources:    []string{},
	}

	var (
		docs []Document
		err  error
	)
	if req.Category != "" {
		docs, err = db.ByCategory(req.Category)
	} else {
		docs, err = db.All()
	}
	if err != nil {
		return resp, err
	}
	if len(docs) == 0 {
		resp.Answer = "政策知识库为空，请先运行政策抓取。"
		resp.Suggestions = []string{"POST /data/scrape-policy 可抓取最新政策文档"}
		return resp, nil
	}

	keywords := ExtractKeywords(req.Question)
	if len(keywords) == 0 {
		resp.Answer = "未能从问题中识别出政策相关的关键词，请换一种问法。"
		return resp, nil
	}

	scored := rankDocuments(docs, keywords, req.Category)
	if len(scored) == 0 {
		resp.Answer = "在现有政策文档中未找到相关信息。"
		return resp, nil
	}
	if len(scored) > maxSourceDocs {
		scored = scored[:maxSourceDocs]
	}

	var sections []string
	for _, sd := range scored {
		resp.Sources = append(resp.Sources, sd.doc.Title)
		sections = append(sections, relevantSections(sd.doc.Content, keywords)...)
	}
	if len(sections) > maxSections {
		sections = sections[:maxSections]
	}

	resp.Answer = buildAnswer(req.Question, sections, req.DetailLevel)
	resp.ActionableSteps = actionableSteps(sections)
	resp.RelatedTopics = relatedTopics(keywords)

	switch {
	case len(scored) >= 2:
		resp.Confidence = "high"
	case len(scored) == 1:
		resp.Confidence = "medium"
	}

	log.Debug().
		Str("question", req.Question).
		Int("sources", len(scored)).
		Str("confidence", resp.Confidence).
		Msg("policy question answered")
	return resp, nil
}

// ExtractKeywords returns the policy terms and question words present in the
// question, longest-first so compound terms are reported before their parts.
func ExtractKeywords(question string) []string {
	var found []string
	for _, kw := range policyKeywords {
		if strings.Contains(question, kw) {
			found = append(found, kw)
		}
	}
	for _, w := range questionWords {
		if strings.Contains(question, w) {
			found = append(found, w)
		}
	}
	sort.SliceStable(found, func(i, j int) bool { return len(found[i]) > len(found[j]) })
	return found
}

// rankDocuments scores every document against the keywords. Title matches
// weigh more than content matches; a category match earns a flat bonus.
func rankDocuments(docs []Document, keywords []string, category string) []scoredDoc {
	var scored []scoredDoc
	for _, doc := range docs {
		score := 0
		for _, kw := range keywords {
			score += strings.Count(doc.Title, kw) * titleWeight
			score += strings.Count(doc.Content, kw) * contentWeight
		}
		if category != "" && strings.Contains(doc.Title+doc.Content, category) {
			score += categoryBonus
		}
		if score > 0 {
			scored = append(scored, scoredDoc{doc: doc, score: score})
		}
	}
	sort.SliceStable(scored, func(i, j int) bool { return scored[i].score > scored[j].score })
	return scored
}

// relevantSections returns the document paragraphs that mention at least one
// keyword and carry enough text to be worth quoting.
func relevantSections(content string, keywords []string) []string {
	var sections []string
	for _, para := range strings.Split(content, "\n") {
		para = strings.TrimSpace(para)
		if len([]rune(para)) < 15 {
			continue
		}
		for _, kw := range keywords {
			if strings.Contains(para, kw) {
				sections = append(sections, para)
				break
			}
		}
		if len(sections) >= maxSections {
			break
		}
	}
	return sections
}

func buildAnswer(question string, sections []string, detailLevel string) string {
	var sb strings.Builder

	switch {
	case containsAny(question, "如何", "怎么", "怎样"):
		sb.WriteString("根据政策规定，具体步骤如下：\n")
	case containsAny(question, "什么", "哪些"):
		sb.WriteString("根据政策文件，相关信息如下：\n")
	case containsAny(question, "需要", "应该"):
		sb.WriteString("根据政策要求：\n")
	default:
		sb.WriteString("根据相关政策规定：\n")
	}

	limit := 3
	switch detailLevel {
	case "basic":
		limit = 1
	case "detailed":
		limit = maxSections
	}
	if limit > len(sections) {
		limit = len(sections)
	}

	for i := 0; i < limit; i++ {
		fmt.Fprintf(&sb, "\n%d. %s", i+1, sections[i])
	}

	sb.WriteString("\n\n")
	sb.WriteString(disclaimerNote)
	return sb.String()
}

// actionableSteps pulls out sentences that read like instructions.
var stepMarkers = []string{"办理", "提交", "携带", "登录", "填写", "打印", "前往"}

func actionableSteps(sections []string) []string {
	var steps []string
	for _, section := range sections {
		for _, sentence := range strings.Split(section, "。") {
			sentence = strings.TrimSpace(sentence)
			if sentence == "" {
				continue
			}
			if containsAny(sentence, stepMarkers...) {
				steps = append(steps, sentence+"。")
			}
		}
	}
	if len(steps) > maxSections {
		steps = steps[:maxSections]
	}
	return steps
}

var topicSuggestions = map[string]string{
	"新能源": "新能源指标轮候规则",
	"家庭":  "家庭积分计算方式",
	"积分":  "家庭积分计算方式",
	"申请":  "申请资格与审核周期",
	"更新":  "指标更新办理流程",
	"材料":  "申请材料清单",
}

func relatedTopics(keywords []string) []string {
	seen := make(map[string]bool)
	var topics []string
	for _, kw := range keywords {
		if topic, ok := topicSuggestions[kw]; ok && !seen[topic] {
			seen[topic] = true
			topics = append(topics, topic)
		}
	}
	return topics
}

func containsAny(s string, terms ...string) bool {
	for _, t := range terms {
		if strings.Contains(s, t) {
			return true
		}
	}
	return false
}
