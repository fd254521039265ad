// Package store owns the authoritative, newest-first collection of case files
// and writes the whole collection through to a kv.Store on every change.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/mycelian/casefiles/internal/kv"
	"github.com/mycelian/casefiles/internal/metrics"
	"github.com/mycelian/casefiles/internal/model"
)

// DefaultKey is the single key that holds the serialized collection.
const DefaultKey = "crime_records"

// Option configures a RecordStore during construction in New.
type Option func(*RecordStore)

// WithClock overrides the source of dateCreated.
func WithClock(now func() time.Time) Option {
	return func(s *RecordStore) { s.now = now }
}

// WithIDGenerator overrides record id generation.
func WithIDGenerator(gen func() string) Option {
	return func(s *RecordStore) { s.newID = gen }
}

// WithKey overrides the storage key.
func WithKey(key string) Option {
	return func(s *RecordStore) {
		if key != "" {
			s.key = key
		}
	}
}

func WithLogger(log zerolog.Logger) Option {
	return func(s *RecordStore) { s.log = log }
}

// RecordStore is safe for concurrent use. Append calls are serialized.
type RecordStore struct {
	backend kv.Store
	key     string
	now     func() time.Time
	newID   func() string
	log     zerolog.Logger

	mu      sync.RWMutex
	loaded  bool
	records []model.CrimeRecord
}

// New returns a store over backend. Nothing is read until the first Load or Append.
func New(backend kv.Store, opts ...Option) *RecordStore {
	s := &RecordStore{
		backend: backend,
		key:     DefaultKey,
		now:     time.Now,
		newID:   uuid.NewString,
		log:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load returns the current snapshot, newest first. The first call reads the
// backend; a missing or unparsable value is replaced by the seed set, which is
// persisted immediately. A failed seed write returns the seed snapshot together
// with a *model.PersistenceError.
func (s *RecordStore) Load(ctx context.Context) ([]model.CrimeRecord, error) {
	s.mu.RLock()
	if s.loaded {
		out := cloneRecords(s.records)
		s.mu.RUnlock()
		return out, nil
	}
	s.mu.RUnlock()

	s.mu.Lock()
	defer s.mu.Unlock()
	err := s.loadLocked(ctx)
	if !s.loaded {
		return nil, err
	}
	return cloneRecords(s.records), err
}

func (s *RecordStore) loadLocked(ctx context.Context) error {
	if s.loaded {
		return nil
	}
	raw, err := s.backend.Get(ctx, s.key)
	switch {
	case err == nil:
		recs, decErr := decode(raw)
		if decErr == nil {
			s.records = recs
			s.loaded = true
			s.log.Info().Str("key", s.key).Int("records", len(recs)).Msg("Loaded case files")
			return nil
		}
		s.log.Warn().Err(decErr).Str("key", s.key).Msg("Persisted case files unparsable; falling back to seed")
	case errors.Is(err, kv.ErrNotFound):
		s.log.Info().Str("key", s.key).Msg("No persisted case files; using seed")
	default:
		return fmt.Errorf("load %s: %w", s.key, err)
	}

	s.records = Seed()
	s.loaded = true
	if err := s.persistLocked(ctx, "seed"); err != nil {
		s.log.Error().Stack().Err(err).Str("key", s.key).Msg("Failed to persist seed case files")
		return err
	}
	return nil
}

// Append assigns an id and today's date to draft, puts the record first and
// writes the full collection before returning. When only the write fails the
// record is kept in memory and returned along with a *model.PersistenceError.
func (s *RecordStore) Append(ctx context.Context, draft model.RecordDraft) (model.CrimeRecord, error) {
	if !draft.Status.Valid() {
		return model.CrimeRecord{}, model.NewValidationError("status", "status is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.loadLocked(ctx); err != nil && !s.loaded {
		return model.CrimeRecord{}, err
	}

	rec := model.CrimeRecord{
		ID:                   s.uniqueIDLocked(),
		CriminalName:         draft.CriminalName,
		CrimeSceneArea:       draft.CrimeSceneArea,
		InvestigationProcess: draft.InvestigationProcess,
		Status:               draft.Status,
		DateCreated:          calendarDate(s.now()),
		Category:             draft.Category,
	}
	s.records = append([]model.CrimeRecord{rec}, s.records...)
	metrics.RecordsCreatedTotal.WithLabelValues(rec.Status.String()).Inc()

	if err := s.persistLocked(ctx, "append"); err != nil {
		s.log.Error().Stack().Err(err).Str("record_id", rec.ID).Msg("Case file kept in memory but not persisted")
		return rec, err
	}
	s.log.Info().Str("record_id", rec.ID).Str("status", rec.Status.String()).Msg("Case file created")
	return rec, nil
}

// Get returns the record with the given id.
func (s *RecordStore) Get(ctx context.Context, id string) (model.CrimeRecord, error) {
	recs, err := s.Load(ctx)
	if recs == nil && err != nil {
		return model.CrimeRecord{}, err
	}
	for _, r := range recs {
		if r.ID == id {
			return r, nil
		}
	}
	return model.CrimeRecord{}, model.NewNotFoundError("recordId", fmt.Sprintf("record %s not found", id))
}

func (s *RecordStore) uniqueIDLocked() string {
	for {
		id := s.newID()
		taken := false
		for _, r := range s.records {
			if r.ID == id {
				taken = true
				break
			}
		}
		if !taken {
			return id
		}
	}
}

func (s *RecordStore) persistLocked(ctx context.Context, op string) error {
	raw, err := json.Marshal(s.records)
	if err == nil {
		err = s.backend.Put(ctx, s.key, raw)
	}
	if err != nil {
		metrics.PersistenceFailuresTotal.WithLabelValues(op).Inc()
		return &model.PersistenceError{Op: op, Err: err}
	}
	return nil
}

func decode(raw []byte) ([]model.CrimeRecord, error) {
	var recs []model.CrimeRecord
	if err := json.Unmarshal(raw, &recs); err != nil {
		return nil, err
	}
	if recs == nil {
		return nil, errors.New("persisted value is not a record array")
	}
	return recs, nil
}

func cloneRecords(in []model.CrimeRecord) []model.CrimeRecord {
	out := make([]model.CrimeRecord, len(in))
	copy(out, in)
	return out
}
