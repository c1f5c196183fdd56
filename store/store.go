package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"bjquota/models"
)

// Store holds every parsed aggregate across documents, keeps process-wide
// reverse indexes, and persists each aggregate as its own JSON snapshot under
// <dataDir>/results plus a small metadata.json.
//
// Writes are serialized by the mutex; reads may run concurrently. Persistence
// is fire-and-forget per call; no transaction spans the per-document file
// and metadata.json, and reload treats the per-document files as the source
// of truth.
type Store struct {
	mu      sync.RWMutex
	dataDir string

	results        map[string]*Aggregate // filename -> aggregate
	codeIndex      map[string][]string   // application_code -> filenames
	partialIDIndex map[string][]string   // masked partial ID -> filenames

	lastUpdate   time.Time
	totalEntries int
}

type storeMetadata struct {
	LastUpdate   *time.Time `json:"last_update"`
	TotalEntries int        `json:"total_entries"`
	TotalFiles   int        `json:"total_files"`
}

// New creates a store rooted at dataDir, creating the directory tree as
// needed.
func New(dataDir string) (*Store, error) {
	if err := os.MkdirAll(filepath.Join(dataDir, "results"), 0o755); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}
	return &Store{
		dataDir:        dataDir,
		results:        make(map[string]*Aggregate),
		codeIndex:      make(map[string][]string),
		partialIDIndex: make(map[string][]string),
	}, nil
}

// AddDocument inserts or overwrites the aggregate keyed by its filename. On
// overwrite the old aggregate's keys are pruned from both reverse indexes and
// its entry count subtracted, so re-adding the same filename nets out. The
// aggregate is persisted to its own snapshot and metadata.json is rewritten.
func (s *Store) AddDocument(agg *Aggregate) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	filename := agg.Metadata.Filename
	if old, ok := s.results[filename]; ok {
		s.unindexLocked(filename, old)
		s.totalEntries -= old.Metadata.EntryCount
	}

	s.results[filename] = agg
	s.indexLocked(filename, agg)
	s.totalEntries += agg.Metadata.EntryCount
	s.lastUpdate = time.Now()

	log.Info().
		Str("filename", filename).
		Str("format", string(agg.Metadata.Format)).
		Int("entries", agg.Metadata.EntryCount).
		Msg("document added to store")

	if err := s.saveResultLocked(agg); err != nil {
		return err
	}
	return s.saveMetadataLocked()
}

func (s *Store) indexLocked(filename string, agg *Aggregate) {
	for _, code := range agg.ApplicationCodes() {
		s.codeIndex[code] = append(s.codeIndex[code], filename)
	}
	for _, key := range agg.MaskedKeys() {
		s.partialIDIndex[key] = append(s.partialIDIndex[key], filename)
	}
}

func (s *Store) unindexLocked(filename string, agg *Aggregate) {
	for _, code := range agg.ApplicationCodes() {
		s.codeIndex[code] = removeString(s.codeIndex[code], filename)
		if len(s.codeIndex[code]) == 0 {
			delete(s.codeIndex, code)
		}
	}
	for _, key := range agg.MaskedKeys() {
		s.partialIDIndex[key] = removeString(s.partialIDIndex[key], filename)
		if len(s.partialIDIndex[key]) == 0 {
			delete(s.partialIDIndex, key)
		}
	}
}

func removeString(ss []string, v string) []string {
	out := ss[:0]
	for _, s := range ss {
		if s != v {
			out = append(out, s)
		}
	}
	return out
}

// FindByApplicationCode resolves candidate files from the global reverse
// index and merges each file's local lookup, annotating every row with its
// source. Result order across files is unspecified.
func (s *Store) FindByApplicationCode(code string) []models.SearchHit {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var hits []models.SearchHit
	for _, filename := range s.codeIndex[code] {
		agg, ok := s.results[filename]
		if !ok {
			continue
		}
		if hit, found := agg.FindByApplicationCode(code); found {
			s.annotate(&hit, filename, agg)
			hits = append(hits, hit)
		}
	}
	return hits
}

// FindByPartialID looks up the exact masked key prefix + "****" + suffix
// across all documents.
func (s *Store) FindByPartialID(prefix, suffix string) []models.SearchHit {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.findByPartialIDLocked(prefix, suffix)
}

func (s *Store) findByPartialIDLocked(prefix, suffix string) []models.SearchHit {
	var hits []models.SearchHit
	for _, filename := range s.partialIDIndex[MaskedKey(prefix, suffix)] {
		agg, ok := s.results[filename]
		if !ok {
			continue
		}
		for _, hit := range agg.FindByPartialID(prefix, suffix) {
			s.annotate(&hit, filename, agg)
			hits = append(hits, hit)
		}
	}
	return hits
}

// FindByIDPrefixOrSuffix searches by the visible segments of a masked ID.
// With both segments it is an exact indexed lookup; with one it scans the
// whole partial-ID index comparing just that segment. The linear scan is a
// deliberate trade-off: the key space stays small enough that an extra
// prefix/suffix index is not worth carrying.
func (s *Store) FindByIDPrefixOrSuffix(prefix, suffix string) []models.SearchHit {
	if prefix == "" && suffix == "" {
		return nil
	}
	if prefix != "" && suffix != "" {
		return s.FindByPartialID(prefix, suffix)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var hits []models.SearchHit
	for key := range s.partialIDIndex {
		// key shape: 123456****7890
		if len(key) < 10 {
			continue
		}
		keyPrefix := key[:6]
		keySuffix := key[len(key)-4:]

		if (prefix != "" && keyPrefix == prefix) || (suffix != "" && keySuffix == suffix) {
			hits = append(hits, s.findByPartialIDLocked(keyPrefix, keySuffix)...)
		}
	}
	return hits
}

func (s *Store) annotate(hit *models.SearchHit, filename string, agg *Aggregate) {
	hit.SourceFile = filename
	hit.SourceURL = agg.Metadata.SourceURL
	dt := agg.Metadata.DownloadTime
	hit.DownloadTime = &dt
}

// Statistics returns a snapshot of the store's contents. File order is
// unspecified.
func (s *Store) Statistics() models.StoreStats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := models.StoreStats{
		TotalFiles:              len(s.results),
		TotalEntries:            s.totalEntries,
		ApplicationCodesIndexed: len(s.codeIndex),
		IDNumbersIndexed:        len(s.partialIDIndex),
		FilesByType:             make(map[string]int),
		Files:                   make([]models.FileInfo, 0, len(s.results)),
	}
	if !s.lastUpdate.IsZero() {
		lu := s.lastUpdate
		stats.LastUpdate = &lu
	}

	for filename, agg := range s.results {
		stats.FilesByType[string(agg.Metadata.Format)]++
		stats.Files = append(stats.Files, models.FileInfo{
			Filename:     filename,
			Format:       agg.Metadata.Format,
			Entries:      agg.Metadata.EntryCount,
			SourceURL:    agg.Metadata.SourceURL,
			DownloadTime: agg.Metadata.DownloadTime,
		})
	}
	return stats
}

// Get returns the aggregate stored under filename, if any.
func (s *Store) Get(filename string) (*Aggregate, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	agg, ok := s.results[filename]
	return agg, ok
}

// Filenames lists every stored filename.
func (s *Store) Filenames() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	names := make([]string, 0, len(s.results))
	for name := range s.results {
		names = append(names, name)
	}
	return names
}

// LoadFromDisk reads every per-document snapshot under <dataDir>/results and
// re-indexes it exactly as AddDocument would, without re-persisting.
// total_entries ends up as the sum of entry counts across the files present
// on disk; metadata.json only contributes last_update.
func (s *Store) LoadFromDisk() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	resultsDir := filepath.Join(s.dataDir, "results")
	entries, err := os.ReadDir(resultsDir)
	if err != nil {
		if os.IsNotExist(err) {
			log.Info().Msg("no stored results found")
			return nil
		}
		return fmt.Errorf("read results directory: %w", err)
	}

	loaded := 0
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		path := filepath.Join(resultsDir, entry.Name())

		data, err := os.ReadFile(path)
		if err != nil {
			log.Error().Err(err).Str("file", path).Msg("failed to read snapshot")
			continue
		}

		var agg Aggregate
		if err := json.Unmarshal(data, &agg); err != nil {
			log.Error().Err(err).Str("file", path).Msg("failed to decode snapshot")
			continue
		}
		agg.BuildIndexes()

		filename := agg.Metadata.Filename
		s.results[filename] = &agg
		s.indexLocked(filename, &agg)
		s.totalEntries += agg.Metadata.EntryCount
		loaded++
	}

	s.loadMetadataLocked()

	log.Info().Int("files", loaded).Int("entries", s.totalEntries).
		Msg("loaded results from disk")
	return nil
}

// Clear wipes the in-memory state and removes all snapshots from disk.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.results = make(map[string]*Aggregate)
	s.codeIndex = make(map[string][]string)
	s.partialIDIndex = make(map[string][]string)
	s.lastUpdate = time.Time{}
	s.totalEntries = 0

	resultsDir := filepath.Join(s.dataDir, "results")
	entries, err := os.ReadDir(resultsDir)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("read results directory: %w", err)
	}
	for _, entry := range entries {
		if strings.HasSuffix(entry.Name(), ".json") {
			if err := os.Remove(filepath.Join(resultsDir, entry.Name())); err != nil {
				return fmt.Errorf("remove snapshot %s: %w", entry.Name(), err)
			}
		}
	}

	metaPath := filepath.Join(s.dataDir, "metadata.json")
	if err := os.Remove(metaPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove metadata: %w", err)
	}

	log.Info().Msg("store cleared")
	return nil
}

func (s *Store) saveResultLocked(agg *Aggregate) error {
	data, err := json.MarshalIndent(agg, "", "  ")
	if err != nil {
		return fmt.Errorf("encode aggregate %s: %w", agg.Metadata.Filename, err)
	}

	path := filepath.Join(s.dataDir, "results", agg.Metadata.Filename+".json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write snapshot %s: %w", path, err)
	}
	return nil
}

func (s *Store) saveMetadataLocked() error {
	meta := storeMetadata{
		TotalEntries: s.totalEntries,
		TotalFiles:   len(s.results),
	}
	if !s.lastUpdate.IsZero() {
		lu := s.lastUpdate
		meta.LastUpdate = &lu
	}

	data, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return fmt.Errorf("encode metadata: %w", err)
	}

	path := filepath.Join(s.dataDir, "metadata.json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write metadata: %w", err)
	}
	return nil
}

func (s *Store) loadMetadataLocked() {
	path := filepath.Join(s.dataDir, "metadata.json")
	data, err := os.ReadFile(path)
	if err != nil {
		return
	}

	var meta storeMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		log.Error().Err(err).Msg("failed to decode metadata.json")
		return
	}
	if meta.LastUpdate != nil {
		s.lastUpdate = *meta.LastUpdate
	}
}
