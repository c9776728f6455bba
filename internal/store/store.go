package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"

	"ChartArcade/internal/model"
)

// Store persists stock records under a directory and derives the metadata
// index from whatever records are currently on disk.
type Store struct {
	Dir string
	log *logrus.Logger
}

// NewStore creates a Store rooted at dir.
func NewStore(dir string, log *logrus.Logger) *Store {
	return &Store{Dir: dir, log: log}
}

// SaveRecord writes the record as indented JSON to <dir>/<ticker-lower>.json,
// creating the directory if needed. Returns the written path.
func (s *Store) SaveRecord(rec *model.StockRecord) (string, error) {
	if err := os.MkdirAll(s.Dir, 0755); err != nil {
		return "", fmt.Errorf("create stocks dir: %w", err)
	}

	path := filepath.Join(s.Dir, strings.ToLower(rec.Ticker)+".json")
	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal %s: %w", rec.Ticker, err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	return path, nil
}

// LoadRecord reads one stock record back from disk.
func (s *Store) LoadRecord(path string) (*model.StockRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var rec model.StockRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("parse %s: %w", filepath.Base(path), err)
	}
	return &rec, nil
}

// Rebuild scans the stocks directory and derives a metadata entry for every
// parseable record with at least one bar. It is a full rebuild over current
// directory contents, never an incremental merge, so records added or removed
// out-of-band are picked up on the next run. Bad files are skipped with a
// warning.
func (s *Store) Rebuild() ([]model.MetadataEntry, error) {
	entries := make([]model.MetadataEntry, 0)

	if _, err := os.Stat(s.Dir); os.IsNotExist(err) {
		s.log.Warnf("stocks directory does not exist: %s", s.Dir)
		return entries, nil
	}

	files, err := filepath.Glob(filepath.Join(s.Dir, "*.json"))
	if err != nil {
		return nil, fmt.Errorf("scan stocks dir: %w", err)
	}
	sort.Strings(files)

	for _, f := range files {
		rec, err := s.LoadRecord(f)
		if err != nil {
			s.log.Warnf("reading %s failed: %v", filepath.Base(f), err)
			continue
		}
		if len(rec.Bars) == 0 {
			s.log.Warnf("%s has no bars, skipping", filepath.Base(f))
			continue
		}
		entries = append(entries, model.MetadataEntry{
			Ticker:    rec.Ticker,
			Name:      rec.Name,
			Sector:    rec.Sector,
			StartDate: rec.Bars[0].Time,
			EndDate:   rec.Bars[len(rec.Bars)-1].Time,
			BarCount:  len(rec.Bars),
		})
	}

	return entries, nil
}

// WriteMetadata overwrites the metadata index file with the given entries,
// creating parent directories as needed.
func (s *Store) WriteMetadata(path string, entries []model.MetadataEntry) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create metadata dir: %w", err)
	}
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal metadata: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write metadata: %w", err)
	}
	return nil
}
