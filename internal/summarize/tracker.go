package summarize

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/mycelian/casefiles/internal/metrics"
	"github.com/mycelian/casefiles/internal/model"
)

var (
	// ErrInFlight is returned by Start when the record already has a running task.
	ErrInFlight = fmt.Errorf("summary already in progress for record: %w", model.ErrConflict)
	// ErrTrackerClosed is returned by Start after Close.
	ErrTrackerClosed = errors.New("summary tracker closed")
)

// State is the lifecycle of one record's summary task.
type State int

const (
	StateIdle State = iota
	StateInFlight
	StateDone
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateInFlight:
		return "in_flight"
	case StateDone:
		return "done"
	case StateFailed:
		return "failed"
	default:
		return "idle"
	}
}

func (s State) MarshalJSON() ([]byte, error) { return json.Marshal(s.String()) }

// Task is the queryable status of one record's summary. Text is set for Done
// and Failed; a Failed task carries the fallback text so callers render both
// the same way.
type Task struct {
	RecordID   string     `json:"recordId"`
	State      State      `json:"state"`
	Text       string     `json:"text,omitempty"`
	StartedAt  *time.Time `json:"startedAt,omitempty"`
	FinishedAt *time.Time `json:"finishedAt,omitempty"`
}

type entry struct {
	task Task
	done chan struct{}
}

// Tracker runs summaries in the background, one task per record id at a time.
// Tasks for different records run concurrently and share no state. Tasks are
// never cancelled; results are held in memory only.
type Tracker struct {
	sum *Summarizer
	log zerolog.Logger
	now func() time.Time

	mu     sync.Mutex
	tasks  map[string]*entry
	closed bool
	wg     sync.WaitGroup
}

func NewTracker(sum *Summarizer, log zerolog.Logger) *Tracker {
	return &Tracker{
		sum:   sum,
		log:   log,
		now:   time.Now,
		tasks: make(map[string]*entry),
	}
}

// Start launches a summary task for rec. If one is already running for the
// same id it returns that task and ErrInFlight.
func (t *Tracker) Start(rec model.CrimeRecord) (Task, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.closed {
		return Task{RecordID: rec.ID, State: StateIdle}, ErrTrackerClosed
	}
	if e, ok := t.tasks[rec.ID]; ok && e.task.State == StateInFlight {
		return e.task, ErrInFlight
	}

	started := t.now().UTC()
	e := &entry{
		task: Task{RecordID: rec.ID, State: StateInFlight, StartedAt: &started},
		done: make(chan struct{}),
	}
	t.tasks[rec.ID] = e
	metrics.SummariesInFlight.Inc()
	t.wg.Add(1)
	go t.run(rec, e)

	t.log.Info().Str("record_id", rec.ID).Msg("Summary task started")
	return e.task, nil
}

func (t *Tracker) run(rec model.CrimeRecord, e *entry) {
	defer t.wg.Done()
	defer metrics.SummariesInFlight.Dec()

	// Detached from any request: a task runs to completion or failure.
	text, outcome := t.sum.run(context.Background(), rec)

	t.mu.Lock()
	finished := t.now().UTC()
	e.task.Text = text
	e.task.FinishedAt = &finished
	if outcome == OutcomeError {
		e.task.State = StateFailed
	} else {
		e.task.State = StateDone
	}
	close(e.done)
	t.mu.Unlock()

	t.log.Info().Str("record_id", rec.ID).Str("outcome", string(outcome)).Msg("Summary task finished")
}

// Status returns the task for id, or an Idle task when there is none.
func (t *Tracker) Status(id string) Task {
	t.mu.Lock()
	defer t.mu.Unlock()
	if e, ok := t.tasks[id]; ok {
		return e.task
	}
	return Task{RecordID: id, State: StateIdle}
}

// InFlight reports whether a task for id is running.
func (t *Tracker) InFlight(id string) bool {
	return t.Status(id).State == StateInFlight
}

// Wait blocks until the task for id is no longer in flight or ctx is done.
func (t *Tracker) Wait(ctx context.Context, id string) (Task, error) {
	t.mu.Lock()
	e, ok := t.tasks[id]
	if !ok || e.task.State != StateInFlight {
		t.mu.Unlock()
		return t.Status(id), nil
	}
	done := e.done
	t.mu.Unlock()

	select {
	case <-ctx.Done():
		return t.Status(id), ctx.Err()
	case <-done:
		return t.Status(id), nil
	}
}

// Dismiss clears a finished result back to Idle. It reports false and does
// nothing while the task is in flight; dismissing never cancels work.
func (t *Tracker) Dismiss(id string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	e, ok := t.tasks[id]
	if !ok {
		return true
	}
	if e.task.State == StateInFlight {
		return false
	}
	delete(t.tasks, id)
	return true
}

// Close stops accepting tasks and waits for running ones to finish.
func (t *Tracker) Close() {
	t.mu.Lock()
	t.closed = true
	t.mu.Unlock()
	t.wg.Wait()
}
