package store

import (
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/jumptools/airtime/internal/models"
	"github.com/jumptools/airtime/internal/shared"
)

// HistoryStore owns the saved jump records. Every mutation rewrites the
// full record list under [KeyRecords]. Records are kept most-recent-first.
type HistoryStore struct {
	kv      KV
	records []models.JumpRecord
}

// NewHistoryStore loads persisted records from kv.
func NewHistoryStore(kv KV) (*HistoryStore, error) {
	s := &HistoryStore{kv: kv}

	data, err := kv.Get(KeyRecords)
	if err != nil {
		return nil, fmt.Errorf("failed to load history: %w", err)
	}
	if data != nil {
		if err := json.Unmarshal(data, &s.records); err != nil {
			return nil, fmt.Errorf("failed to decode history: %w", err)
		}
	}

	return s, nil
}

// Save creates a record for the given measurement, prepends it, and
// persists the full list. Returns the created record.
func (s *HistoryStore) Save(userID string, heightCm, flightTime float64, note string) (models.JumpRecord, error) {
	record := models.JumpRecord{
		ID:         shared.GenerateID(),
		UserID:     userID,
		Date:       time.Now(),
		HeightCm:   heightCm,
		FlightTime: flightTime,
		Note:       note,
	}
	if err := record.Validate(); err != nil {
		return models.JumpRecord{}, fmt.Errorf("refusing to save: %w", err)
	}

	s.records = append([]models.JumpRecord{record}, s.records...)
	if err := s.persist(); err != nil {
		return models.JumpRecord{}, err
	}
	return record, nil
}

// Delete removes a record by ID and persists.
func (s *HistoryStore) Delete(id string) error {
	for i, record := range s.records {
		if record.ID == id {
			s.records = append(s.records[:i], s.records[i+1:]...)
			return s.persist()
		}
	}
	return fmt.Errorf("%w: %s", shared.ErrRecordNotFound, id)
}

// ForUser returns the given user's records sorted by date descending. The
// filter and sort are a read-time projection, not a stored property.
func (s *HistoryStore) ForUser(userID string) []models.JumpRecord {
	var out []models.JumpRecord
	for _, record := range s.records {
		if record.UserID == userID {
			out = append(out, record)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.After(out[j].Date)
	})
	return out
}

// All returns every record, most-recent-first as stored.
func (s *HistoryStore) All() []models.JumpRecord {
	out := make([]models.JumpRecord, len(s.records))
	copy(out, s.records)
	return out
}

// Len returns the number of records across all users.
func (s *HistoryStore) Len() int {
	return len(s.records)
}

// SaveJump is the gated save action: it creates a record only when the
// flight time is strictly positive and a current user exists, and is a
// no-op (ok=false) otherwise.
func SaveJump(users *UserStore, history *HistoryStore, flightTime, heightCm float64, note string) (models.JumpRecord, bool, error) {
	if flightTime <= 0 {
		return models.JumpRecord{}, false, nil
	}
	user, ok := users.Current()
	if !ok {
		return models.JumpRecord{}, false, nil
	}

	record, err := history.Save(user.ID, heightCm, flightTime, note)
	if err != nil {
		return models.JumpRecord{}, false, err
	}
	return record, true, nil
}

func (s *HistoryStore) persist() error {
	data, err := json.Marshal(s.records)
	if err != nil {
		return fmt.Errorf("failed to encode history: %w", err)
	}
	return s.kv.Set(KeyRecords, data)
}
