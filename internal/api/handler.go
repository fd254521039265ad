// Package api is the HTTP transport for the case files service.
package api

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/mycelian/casefiles/internal/model"
	"github.com/mycelian/casefiles/internal/summarize"
)

// RecordService is the record store as seen by handlers.
type RecordService interface {
	Load(ctx context.Context) ([]model.CrimeRecord, error)
	Append(ctx context.Context, draft model.RecordDraft) (model.CrimeRecord, error)
	Get(ctx context.Context, id string) (model.CrimeRecord, error)
}

// SummaryTracker runs and reports per-record summary tasks.
type SummaryTracker interface {
	Start(rec model.CrimeRecord) (summarize.Task, error)
	Status(id string) summarize.Task
	Wait(ctx context.Context, id string) (summarize.Task, error)
	Dismiss(id string) bool
}

// Sessions issues and resolves bearer tokens.
type Sessions interface {
	Login(username, password string) (string, model.User, error)
	Resolve(token string) (model.User, error)
	Logout(token string)
}

// Deps are the collaborators NewRouter wires into handlers.
type Deps struct {
	Records  RecordService
	Tracker  SummaryTracker
	Sessions Sessions
	// Healthy reports cached service health; nil means always healthy.
	Healthy func() bool
	// Components optionally details per-dependency health.
	Components func() map[string]bool
	Log        zerolog.Logger
}

type handler struct {
	records  RecordService
	tracker  SummaryTracker
	sessions Sessions
	log      zerolog.Logger
}

// loadRecords returns the snapshot. A seed that could not be persisted is
// still served; the failure has already been logged by the store.
func (h *handler) loadRecords(ctx context.Context) ([]model.CrimeRecord, error) {
	recs, err := h.records.Load(ctx)
	if err != nil && recs == nil {
		return nil, err
	}
	return recs, nil
}
