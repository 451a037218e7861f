package client

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"maize_maturity/internal/models"
)

const DefaultHistoryFile = "prediction_history.csv"

var historyHeader = []string{"R", "G", "B", "Temp", "Humidity", "Prediction"}

// HistoryStore keeps successful predictions in memory and mirrors them to a CSV file.
// The file is read once by OpenHistory and rewritten in full on every Append.
type HistoryStore struct {
	mu      sync.Mutex
	path    string
	entries []models.HistoryEntry
}

// OpenHistory loads path if it exists. A missing file starts an empty history.
func OpenHistory(path string) (*HistoryStore, error) {
	if path == "" {
		path = DefaultHistoryFile
	}
	s := &HistoryStore{path: path}

	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	entries, err := ReadHistory(f)
	if err != nil {
		return nil, fmt.Errorf("load history %s: %w", path, err)
	}
	s.entries = entries
	return s, nil
}

func (s *HistoryStore) Path() string { return s.path }

// Append records e and rewrites the file. On write failure the entry is not kept.
func (s *HistoryStore) Append(e models.HistoryEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := append(append([]models.HistoryEntry(nil), s.entries...), e)
	if err := writeFileAtomic(s.path, next); err != nil {
		return err
	}
	s.entries = next
	return nil
}

// Entries returns a copy in insertion order, oldest first.
func (s *HistoryStore) Entries() []models.HistoryEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.HistoryEntry(nil), s.entries...)
}

// Export writes the history as CSV to w.
func (s *HistoryStore) Export(w io.Writer) error {
	return WriteHistory(w, s.Entries())
}

// ReadHistory parses a history CSV. Columns are located by header name.
func ReadHistory(r io.Reader) ([]models.HistoryEntry, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	idx := make(map[string]int, len(header))
	for i, h := range header {
		idx[strings.TrimSpace(h)] = i
	}
	for _, h := range historyHeader {
		if _, ok := idx[h]; !ok {
			return nil, fmt.Errorf("missing column %q", h)
		}
	}

	var out []models.HistoryEntry
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			return nil, err
		}
		var nums [5]float64
		for i, h := range historyHeader[:5] {
			v, err := strconv.ParseFloat(strings.TrimSpace(rec[idx[h]]), 64)
			if err != nil {
				return nil, fmt.Errorf("line %d: column %s: %w", line, h, err)
			}
			nums[i] = v
		}
		out = append(out, models.HistoryEntry{
			R: nums[0], G: nums[1], B: nums[2],
			Temp: nums[3], Humidity: nums[4],
			Prediction: rec[idx["Prediction"]],
		})
	}
}

// WriteHistory emits the header followed by one row per entry.
func WriteHistory(w io.Writer, entries []models.HistoryEntry) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(historyHeader); err != nil {
		return err
	}
	for _, e := range entries {
		rec := []string{
			formatNumber(e.R), formatNumber(e.G), formatNumber(e.B),
			formatNumber(e.Temp), formatNumber(e.Humidity),
			e.Prediction,
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func writeFileAtomic(path string, entries []models.HistoryEntry) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".history-*.csv")
	if err != nil {
		return fmt.Errorf("write history: %w", err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if err := WriteHistory(tmp, entries); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write history: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write history: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("write history: %w", err)
	}
	return nil
}
