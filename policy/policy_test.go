package policy

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	"bjquota/models"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "policy.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func seedDocs(t *testing.T, db *DB, docs ...Document) {
	t.Helper()
	for _, doc := range docs {
		if doc.FetchedAt.IsZero() {
			doc.FetchedAt = time.Now()
		}
		if err := db.Upsert(doc); err != nil {
			t.Fatalf("Upsert: %v", err)
		}
	}
}

func TestUpsertRefreshesByURL(t *testing.T) {
	db := openTestDB(t)

	seedDocs(t, db, Document{
		Title:   "家庭新能源指标申请指南",
		URL:     "https://example.com/guide1.html",
		Content: "旧版内容",
	})
	seedDocs(t, db, Document{
		Title:   "家庭新能源指标申请指南（修订）",
		URL:     "https://example.com/guide1.html",
		Content: "新版内容",
	})

	docs, err := db.All()
	if err != nil {
		t.Fatalf("All: %v", err)
	}
	if len(docs) != 1 {
		t.Fatalf("got %d documents, want 1", len(docs))
	}
	if docs[0].Content != "新版内容" {
		t.Errorf("Content = %q, want refreshed copy", docs[0].Content)
	}

	n, err := db.Count()
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if n != 1 {
		t.Errorf("Count = %d, want 1", n)
	}
}

func TestByCategory(t *testing.T) {
	db := openTestDB(t)

	seedDocs(t, db,
		Document{Title: "a", URL: "https://example.com/a", Category: "family", Content: "x"},
		Document{Title: "b", URL: "https://example.com/b", Category: "unit", Content: "y"},
	)

	docs, err := db.ByCategory("family")
	if err != nil {
		t.Fatalf("ByCategory: %v", err)
	}
	if len(docs) != 1 || docs[0].Title != "a" {
		t.Fatalf("ByCategory = %+v", docs)
	}
}

func TestExtractKeywords(t *testing.T) {
	keywords := ExtractKeywords("家庭申请新能源指标需要什么材料？")

	want := map[string]bool{"家庭申请": true, "新能源": true, "材料": true, "什么": true, "需要": true}
	for _, kw := range keywords {
		delete(want, kw)
	}
	for missing := range want {
		t.Errorf("keyword %q not extracted", missing)
	}

	// Longest terms come first so compound terms outrank their parts.
	if len(keywords) > 1 && len(keywords[0]) < len(keywords[len(keywords)-1]) {
		t.Errorf("keywords not sorted longest-first: %v", keywords)
	}

	if got := ExtractKeywords("今天天气怎么样"); len(got) != 1 || got[0] != "怎么" {
		t.Errorf("off-topic question keywords = %v", got)
	}
}

func TestCategorize(t *testing.T) {
	tests := []struct {
		title string
		want  string
	}{
		{"北京市家庭新能源小客车指标申请指南", "family"},
		{"单位小客车指标办理须知", "unit"},
		{"个人新能源指标轮候说明", "individual"},
		{"小客车指标更新办理流程", "renewal"},
		{"小客车调控政策问答", "general"},
	}
	for _, tt := range tests {
		if got := Categorize(tt.title); got != tt.want {
			t.Errorf("Categorize(%q) = %s, want %s", tt.title, got, tt.want)
		}
	}
}

func TestExplain(t *testing.T) {
	db := openTestDB(t)

	seedDocs(t, db,
		Document{
			Title:    "家庭新能源小客车指标申请指南",
			URL:      "https://example.com/family.html",
			Category: "family",
			Content: "家庭申请新能源小客车指标应当由主申请人提交申请。\n" +
				"申请材料包括身份证、居住证及婚姻关系证明，请携带原件办理。\n" +
				"家庭总积分按家庭代际数与各成员轮候时间计算。",
		},
		Document{
			Title:    "小客车指标申请资格审核说明",
			URL:      "https://example.com/review.html",
			Category: "general",
			Content: "申请提交后由相关部门进行资格审核，审核周期约为25个工作日。\n" +
				"审核通过的申请进入轮候或积分排序。",
		},
	)

	resp, err := Explain(db, models.PolicyExplainRequest{
		Question: "家庭申请新能源指标需要什么材料？",
	})
	if err != nil {
		t.Fatalf("Explain: %v", err)
	}

	if resp.Confidence != "high" {
		t.Errorf("Confidence = %s, want high (two contributing documents)", resp.Confidence)
	}
	if len(resp.Sources) != 2 {
		t.Errorf("Sources = %v, want both documents", resp.Sources)
	}
	if resp.Sources[0] != "家庭新能源小客车指标申请指南" {
		t.Errorf("best-matching document should rank first, got %v", resp.Sources)
	}
	if !strings.Contains(resp.Answer, "身份证") {
		t.Errorf("answer should quote the materials paragraph: %s", resp.Answer)
	}
	if !strings.Contains(resp.Answer, "12328") {
		t.Error("answer should carry the official-source disclaimer")
	}
	if len(resp.ActionableSteps) == 0 {
		t.Error("expected actionable steps extracted from instruction sentences")
	}
}

func TestExplainEmptyKnowledgeBase(t *testing.T) {
	db := openTestDB(t)

	resp, err := Explain(db, models.PolicyExplainRequest{Question: "如何申请新能源指标"})
	if err != nil {
		t.Fatalf("Explain: %v", err)
	}
	if resp.Confidence != "low" {
		t.Errorf("Confidence = %s, want low", resp.Confidence)
	}
	if len(resp.Suggestions) == 0 {
		t.Error("expected a suggestion to run the policy scrape")
	}
}

func TestExplainNoMatch(t *testing.T) {
	db := openTestDB(t)
	seedDocs(t, db, Document{
		Title:   "停车管理办法",
		URL:     "https://example.com/parking.html",
		Content: "道路停车收费相关说明。",
	})

	resp, err := Explain(db, models.PolicyExplainRequest{Question: "轮候摇号"})
	if err != nil {
		t.Fatalf("Explain: %v", err)
	}
	if resp.Confidence != "low" {
		t.Errorf("Confidence = %s, want low", resp.Confidence)
	}
}
