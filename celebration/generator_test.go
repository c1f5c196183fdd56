package celebration

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"bjquota/models"
)

func waitingHit(code, sourceURL string) models.SearchHit {
	wt := time.Date(2018, 1, 7, 14, 56, 11, 401000000, time.UTC)
	return models.SearchHit{
		Type:            models.FormatWaitingList,
		SequenceNumber:  42,
		ApplicationCode: code,
		WaitingTime:     &wt,
		SourceURL:       sourceURL,
	}
}

func TestGenerate(t *testing.T) {
	g := New(t.TempDir())

	html, saved, err := g.Generate(models.CelebrationRequest{
		ApplicationCode: "8786101582146",
		Name:            "张三",
	}, []models.SearchHit{waitingHit("8786101582146", "https://example.com/家庭新能源指标.html")})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if saved != "" {
		t.Errorf("file saved without save_to_file: %s", saved)
	}

	for _, want := range []string{
		"8786101582146",
		"张三",
		"家庭新能源小客车指标",
		"2018-01-07",
		"createCelebrationEffects",
	} {
		if !strings.Contains(html, want) {
			t.Errorf("page missing %q", want)
		}
	}
}

func TestGenerateSavesFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "celebrations")
	g := New(dir)

	html, saved, err := g.Generate(models.CelebrationRequest{
		ApplicationCode: "8786101582146",
		SaveToFile:      true,
	}, nil)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if saved == "" {
		t.Fatal("expected a saved file path")
	}
	if !strings.HasPrefix(filepath.Base(saved), "celebration_") {
		t.Errorf("unexpected filename: %s", saved)
	}

	data, err := os.ReadFile(saved)
	if err != nil {
		t.Fatalf("saved file unreadable: %v", err)
	}
	if string(data) != html {
		t.Error("saved file differs from returned HTML")
	}

	// Without a winning entry the default name and category appear.
	if !strings.Contains(html, "恭喜您") {
		t.Error("default name missing")
	}
	if !strings.Contains(html, "新能源小客车指标") {
		t.Error("default lottery type missing")
	}
}

func TestLotteryType(t *testing.T) {
	tests := []struct {
		name      string
		sourceURL string
		want      string
	}{
		{"family", "https://example.com/家庭指标结果.html", "家庭新能源小客车指标"},
		{"unit", "https://example.com/单位指标结果.html", "单位新能源小客车指标"},
		{"unit english", "https://example.com/UNIT-results.html", "单位新能源小客车指标"},
		{"individual fallback", "https://example.com/results.html", "个人新能源小客车指标"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hits := []models.SearchHit{waitingHit("1", tt.sourceURL)}
			if got := LotteryType(hits); got != tt.want {
				t.Errorf("LotteryType = %s, want %s", got, tt.want)
			}
		})
	}

	if got := LotteryType(nil); got != "新能源小客车指标" {
		t.Errorf("LotteryType(nil) = %s", got)
	}
}

func TestSharingLinks(t *testing.T) {
	links := SharingLinks("8786101582146")

	for _, key := range []string{"weibo", "qq", "copy"} {
		if links[key] == "" {
			t.Errorf("missing %s link", key)
		}
	}
	if !strings.Contains(links["copy"], "8786101582146") {
		t.Error("copy text should carry the application code")
	}
	if strings.Contains(links["weibo"], "：") {
		t.Error("weibo link should be URL-escaped")
	}
}
