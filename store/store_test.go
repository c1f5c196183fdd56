package store

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return s
}

func TestStoreFindByApplicationCode(t *testing.T) {
	s := newTestStore(t)

	if err := s.AddDocument(waitingAggregate("a.pdf", "A1")); err != nil {
		t.Fatalf("AddDocument: %v", err)
	}
	if err := s.AddDocument(waitingAggregate("b.pdf", "B2")); err != nil {
		t.Fatalf("AddDocument: %v", err)
	}

	hits := s.FindByApplicationCode("A1")
	if len(hits) != 1 {
		t.Fatalf("got %d hits for A1, want 1", len(hits))
	}
	if hits[0].SourceFile != "a.pdf" {
		t.Errorf("SourceFile = %q, want a.pdf", hits[0].SourceFile)
	}
	if hits[0].SourceURL == "" || hits[0].DownloadTime == nil {
		t.Error("source annotations missing from hit")
	}

	if hits := s.FindByApplicationCode("C3"); len(hits) != 0 {
		t.Errorf("got %d hits for C3, want 0", len(hits))
	}
}

func TestStoreFindByPartialID(t *testing.T) {
	s := newTestStore(t)

	agg := scoreAggregate("s.pdf",
		sampleScoreEntry(1, "1437100439239", "110228****1240"))
	if err := s.AddDocument(agg); err != nil {
		t.Fatalf("AddDocument: %v", err)
	}

	hits := s.FindByPartialID("110228", "1240")
	if len(hits) != 1 {
		t.Fatalf("got %d hits, want 1", len(hits))
	}
	if hits[0].IDNumber != "110228****1240" {
		t.Errorf("IDNumber = %q, want verbatim mask", hits[0].IDNumber)
	}
	if hits[0].SourceFile != "s.pdf" {
		t.Errorf("SourceFile = %q", hits[0].SourceFile)
	}
}

func TestStoreFindByIDPrefixOrSuffix(t *testing.T) {
	s := newTestStore(t)

	if err := s.AddDocument(scoreAggregate("s1.pdf",
		sampleScoreEntry(1, "1000000000001", "110228****1240"),
		sampleScoreEntry(2, "1000000000002", "110228****9999"),
	)); err != nil {
		t.Fatalf("AddDocument: %v", err)
	}
	if err := s.AddDocument(scoreAggregate("s2.pdf",
		sampleScoreEntry(1, "1000000000003", "320102****1240"),
	)); err != nil {
		t.Fatalf("AddDocument: %v", err)
	}

	tests := []struct {
		name    string
		prefix  string
		suffix  string
		want    int
	}{
		{"prefix only scans all keys", "110228", "", 2},
		{"suffix only scans all keys", "", "1240", 2},
		{"both segments is exact", "110228", "1240", 1},
		{"no match", "999999", "", 0},
		{"neither segment", "", "", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hits := s.FindByIDPrefixOrSuffix(tt.prefix, tt.suffix)
			if len(hits) != tt.want {
				t.Errorf("got %d hits, want %d", len(hits), tt.want)
			}
			for _, hit := range hits {
				if tt.prefix != "" && !strings.HasPrefix(hit.IDNumber, tt.prefix) {
					t.Errorf("hit %q does not start with %q", hit.IDNumber, tt.prefix)
				}
				if tt.suffix != "" && !strings.HasSuffix(hit.IDNumber, tt.suffix) {
					t.Errorf("hit %q does not end with %q", hit.IDNumber, tt.suffix)
				}
			}
		})
	}
}

func TestStoreReAddOverwritesAndPrunes(t *testing.T) {
	s := newTestStore(t)

	if err := s.AddDocument(waitingAggregate("a.pdf", "OLD1", "OLD2", "OLD3")); err != nil {
		t.Fatalf("AddDocument: %v", err)
	}
	if err := s.AddDocument(waitingAggregate("a.pdf", "NEW1")); err != nil {
		t.Fatalf("re-AddDocument: %v", err)
	}

	// Old reverse-index references must be gone, not dangling.
	if hits := s.FindByApplicationCode("OLD1"); len(hits) != 0 {
		t.Errorf("stale index entry survived overwrite: %v", hits)
	}
	if hits := s.FindByApplicationCode("NEW1"); len(hits) != 1 {
		t.Errorf("got %d hits for NEW1, want 1", len(hits))
	}

	// The running counter nets out instead of accumulating.
	stats := s.Statistics()
	if stats.TotalEntries != 1 {
		t.Errorf("TotalEntries = %d after re-add, want 1", stats.TotalEntries)
	}
	if stats.TotalFiles != 1 {
		t.Errorf("TotalFiles = %d, want 1", stats.TotalFiles)
	}
}

func TestStorePersistenceRoundTrip(t *testing.T) {
	dir := t.TempDir()

	s, err := New(dir)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := s.AddDocument(waitingAggregate("w.pdf", "A1", "A2")); err != nil {
		t.Fatalf("AddDocument: %v", err)
	}
	if err := s.AddDocument(scoreAggregate("s.pdf",
		sampleScoreEntry(1, "B1", "110228****1240"))); err != nil {
		t.Fatalf("AddDocument: %v", err)
	}

	// Snapshots land one JSON file per document plus metadata.json.
	if _, err := os.Stat(filepath.Join(dir, "results", "w.pdf.json")); err != nil {
		t.Fatalf("per-document snapshot missing: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "metadata.json")); err != nil {
		t.Fatalf("metadata snapshot missing: %v", err)
	}

	reloaded, err := New(dir)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := reloaded.LoadFromDisk(); err != nil {
		t.Fatalf("LoadFromDisk: %v", err)
	}

	stats := reloaded.Statistics()
	if stats.TotalFiles != 2 {
		t.Errorf("TotalFiles = %d, want 2", stats.TotalFiles)
	}
	if stats.TotalEntries != 3 {
		t.Errorf("TotalEntries = %d, want 3 (sum of on-disk entry counts)", stats.TotalEntries)
	}
	if stats.LastUpdate == nil {
		t.Error("LastUpdate not restored from metadata.json")
	}

	hits := reloaded.FindByApplicationCode("A2")
	if len(hits) != 1 {
		t.Fatalf("got %d hits for A2 after reload, want 1", len(hits))
	}
	hits = reloaded.FindByPartialID("110228", "1240")
	if len(hits) != 1 || hits[0].IDNumber != "110228****1240" {
		t.Fatalf("partial-ID lookup broken after reload: %v", hits)
	}
}

func TestStoreLoadFromEmptyDirectory(t *testing.T) {
	s := newTestStore(t)
	if err := s.LoadFromDisk(); err != nil {
		t.Fatalf("LoadFromDisk on empty store: %v", err)
	}
	if stats := s.Statistics(); stats.TotalFiles != 0 {
		t.Errorf("TotalFiles = %d, want 0", stats.TotalFiles)
	}
}

func TestStoreClear(t *testing.T) {
	dir := t.TempDir()
	s, err := New(dir)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := s.AddDocument(waitingAggregate("w.pdf", "A1")); err != nil {
		t.Fatalf("AddDocument: %v", err)
	}

	if err := s.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}

	if hits := s.FindByApplicationCode("A1"); len(hits) != 0 {
		t.Error("lookup still returns hits after clear")
	}
	if stats := s.Statistics(); stats.TotalFiles != 0 || stats.TotalEntries != 0 {
		t.Errorf("stats not reset: %+v", stats)
	}
	if _, err := os.Stat(filepath.Join(dir, "results", "w.pdf.json")); !os.IsNotExist(err) {
		t.Error("snapshot file survived clear")
	}

	// The store stays usable after a clear.
	if err := s.AddDocument(waitingAggregate("w2.pdf", "B1")); err != nil {
		t.Fatalf("AddDocument after clear: %v", err)
	}
}

func TestStoreStatistics(t *testing.T) {
	s := newTestStore(t)

	if err := s.AddDocument(waitingAggregate("w.pdf", "A1", "A2")); err != nil {
		t.Fatalf("AddDocument: %v", err)
	}
	if err := s.AddDocument(scoreAggregate("s.pdf",
		sampleScoreEntry(1, "B1", "110228****1240"))); err != nil {
		t.Fatalf("AddDocument: %v", err)
	}

	stats := s.Statistics()
	if stats.FilesByType["waiting_list"] != 1 || stats.FilesByType["score_ranking"] != 1 {
		t.Errorf("FilesByType = %v", stats.FilesByType)
	}
	if stats.ApplicationCodesIndexed != 3 {
		t.Errorf("ApplicationCodesIndexed = %d, want 3", stats.ApplicationCodesIndexed)
	}
	if stats.IDNumbersIndexed != 1 {
		t.Errorf("IDNumbersIndexed = %d, want 1", stats.IDNumbersIndexed)
	}
	if len(stats.Files) != 2 {
		t.Fatalf("got %d file infos, want 2", len(stats.Files))
	}
}
