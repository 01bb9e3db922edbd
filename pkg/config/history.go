package config

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/qbanktags/qbank-tags/pkg/qbank"
)

const (
	// SectionIDHistory is the identifier for the conversion history section
	SectionIDHistory = "conversion_history"

	defaultMaxRecords = 50
	maxRecordsLimit   = 1000
)

// HistoryRecord is one completed conversion.
type HistoryRecord struct {
	ID        string     `json:"id"`
	Timestamp time.Time  `json:"timestamp"`
	Bank      qbank.Bank `json:"bank"`
	Step      qbank.Step `json:"step"`
	Input     string     `json:"input"`
	Query     string     `json:"query"`
	IDCount   int        `json:"id_count"`
}

// HistorySection keeps the most recent conversions, newest first.
type HistorySection struct {
	records    []HistoryRecord
	maxRecords int
	mu         sync.RWMutex
}

// NewHistorySection creates an empty history capped at 50 records.
func NewHistorySection() *HistorySection {
	return &HistorySection{maxRecords: defaultMaxRecords}
}

// ID returns the section identifier.
func (s *HistorySection) ID() string {
	return SectionIDHistory
}

// Title returns the section title.
func (s *HistorySection) Title() string {
	return "Conversion History"
}

// Description returns the section description.
func (s *HistorySection) Description() string {
	return "Recent conversions, newest first."
}

// Data returns the current configuration data.
func (s *HistorySection) Data() map[string]any {
	s.mu.RLock()
	defer s.mu.RUnlock()

	records := make([]any, 0, len(s.records))
	for _, r := range s.records {
		records = append(records, map[string]any{
			"id":        r.ID,
			"timestamp": r.Timestamp.UTC().Format(time.RFC3339Nano),
			"bank":      string(r.Bank),
			"step":      string(r.Step),
			"input":     r.Input,
			"query":     r.Query,
			"id_count":  r.IDCount,
		})
	}

	return map[string]any{
		"max_records": s.maxRecords,
		"records":     records,
	}
}

// SetData replaces history from stored data.
func (s *HistorySection) SetData(data map[string]any) error {
	if data == nil {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if raw, ok := data["max_records"]; ok {
		n, err := toInt(raw)
		if err != nil {
			return fmt.Errorf("invalid value for max_records: %w", err)
		}
		s.maxRecords = n
	}

	if raw, ok := data["records"]; ok {
		items, ok := raw.([]any)
		if !ok && raw != nil {
			return fmt.Errorf("invalid value type for records: expected array, got %T", raw)
		}
		records := make([]HistoryRecord, 0, len(items))
		for i, item := range items {
			m, ok := item.(map[string]any)
			if !ok {
				return fmt.Errorf("invalid history record %d: expected object, got %T", i, item)
			}
			rec, err := recordFromMap(m)
			if err != nil {
				return fmt.Errorf("invalid history record %d: %w", i, err)
			}
			records = append(records, rec)
		}
		s.records = records
	}

	s.trim()
	return nil
}

// Validate checks the record limit.
func (s *HistorySection) Validate() error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.maxRecords < 1 || s.maxRecords > maxRecordsLimit {
		return fmt.Errorf("max_records must be between 1 and %d, got %d", maxRecordsLimit, s.maxRecords)
	}
	return nil
}

// Reset clears history and restores the default limit.
func (s *HistorySection) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = nil
	s.maxRecords = defaultMaxRecords
}

// Add records a conversion and returns the stored record.
func (s *HistorySection) Add(bank qbank.Bank, step qbank.Step, input, query string, idCount int) HistoryRecord {
	rec := HistoryRecord{
		ID:        uuid.New().String(),
		Timestamp: time.Now().UTC(),
		Bank:      bank,
		Step:      step,
		Input:     input,
		Query:     query,
		IDCount:   idCount,
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append([]HistoryRecord{rec}, s.records...)
	s.trim()
	return rec
}

// List returns a copy of the records, newest first.
func (s *HistorySection) List() []HistoryRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]HistoryRecord, len(s.records))
	copy(out, s.records)
	return out
}

// Get finds a record by ID or unique ID prefix.
func (s *HistorySection) Get(id string) (HistoryRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var found []HistoryRecord
	for _, r := range s.records {
		if r.ID == id {
			return r, nil
		}
		if id != "" && len(id) < len(r.ID) && r.ID[:len(id)] == id {
			found = append(found, r)
		}
	}

	switch len(found) {
	case 0:
		return HistoryRecord{}, fmt.Errorf("history record not found: %s", id)
	case 1:
		return found[0], nil
	default:
		return HistoryRecord{}, fmt.Errorf("history record prefix is ambiguous: %s", id)
	}
}

// Clear removes every record.
func (s *HistorySection) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = nil
}

// SetMaxRecords changes the cap and drops the oldest overflow.
func (s *HistorySection) SetMaxRecords(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.maxRecords = n
	s.trim()
}

// trim must be called with the lock held.
func (s *HistorySection) trim() {
	if s.maxRecords > 0 && len(s.records) > s.maxRecords {
		s.records = s.records[:s.maxRecords]
	}
}

func recordFromMap(m map[string]any) (HistoryRecord, error) {
	var rec HistoryRecord
	rec.ID, _ = m["id"].(string)
	rec.Input, _ = m["input"].(string)
	rec.Query, _ = m["query"].(string)

	if ts, ok := m["timestamp"].(string); ok && ts != "" {
		t, err := time.Parse(time.RFC3339Nano, ts)
		if err != nil {
			return rec, fmt.Errorf("invalid timestamp: %w", err)
		}
		rec.Timestamp = t
	}

	if b, ok := m["bank"].(string); ok {
		bank, err := qbank.ParseBank(b)
		if err != nil {
			return rec, err
		}
		rec.Bank = bank
	}
	if st, ok := m["step"].(string); ok {
		step, err := qbank.ParseStep(st)
		if err != nil {
			return rec, err
		}
		rec.Step = step
	}

	if raw, ok := m["id_count"]; ok {
		n, err := toInt(raw)
		if err != nil {
			return rec, fmt.Errorf("invalid id_count: %w", err)
		}
		rec.IDCount = n
	}

	if rec.ID == "" {
		rec.ID = uuid.New().String()
	}
	return rec, nil
}

// toInt accepts the numeric forms produced by JSON decoding and Go callers.
func toInt(v any) (int, error) {
	switch n := v.(type) {
	case int:
		return n, nil
	case int64:
		return int(n), nil
	case float64:
		return int(n), nil
	default:
		return 0, fmt.Errorf("expected number, got %T", v)
	}
}
