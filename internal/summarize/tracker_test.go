package summarize

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/mycelian/casefiles/internal/model"
)

// ignoreBackground skips goroutines started by package init in the genai
// dependency tree; they live for the whole test binary.
var ignoreBackground = []goleak.Option{
	goleak.IgnoreTopFunction("go.opencensus.io/stats/view.(*worker).start"),
}

// gatedGenerator blocks each call until its record's gate is released.
type gatedGenerator struct {
	mu    sync.Mutex
	gates map[string]chan struct{}
	calls map[string]int
	fail  map[string]bool
}

func newGated() *gatedGenerator {
	return &gatedGenerator{gates: map[string]chan struct{}{}, calls: map[string]int{}, fail: map[string]bool{}}
}

func (g *gatedGenerator) gate(id string) chan struct{} {
	g.mu.Lock()
	defer g.mu.Unlock()
	ch, ok := g.gates[id]
	if !ok {
		ch = make(chan struct{})
		g.gates[id] = ch
	}
	return ch
}

func (g *gatedGenerator) Generate(ctx context.Context, req Request) (string, error) {
	id := recordIDFromPrompt(req.Prompt)
	g.mu.Lock()
	g.calls[id]++
	fail := g.fail[id]
	g.mu.Unlock()
	<-g.gate(id)
	if fail {
		return "", errors.New("upstream 503")
	}
	return "summary for " + id, nil
}

func (g *gatedGenerator) callCount(id string) int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.calls[id]
}

// The test records use the id as criminal name so the generator can tell them apart.
func recordIDFromPrompt(p string) string {
	_, rest, _ := strings.Cut(p, "Criminal Name: ")
	name, _, _ := strings.Cut(rest, "\n")
	return name
}

func record(id string) model.CrimeRecord {
	return model.CrimeRecord{ID: id, CriminalName: id, Status: model.StatusActive}
}

func waitCtx(t *testing.T) context.Context {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	t.Cleanup(cancel)
	return ctx
}

func TestTracker_LifecycleDone(t *testing.T) {
	defer goleak.VerifyNone(t, ignoreBackground...)
	gen := newGated()
	tr := NewTracker(NewSummarizer(gen), zerolog.Nop())
	defer tr.Close()

	assert.Equal(t, StateIdle, tr.Status("a").State)

	task, err := tr.Start(record("a"))
	require.NoError(t, err)
	assert.Equal(t, StateInFlight, task.State)
	assert.NotNil(t, task.StartedAt)
	assert.True(t, tr.InFlight("a"))

	close(gen.gate("a"))
	done, err := tr.Wait(waitCtx(t), "a")
	require.NoError(t, err)
	assert.Equal(t, StateDone, done.State)
	assert.Equal(t, "summary for a", done.Text)
	assert.NotNil(t, done.FinishedAt)
	assert.False(t, tr.InFlight("a"))
}

func TestTracker_FailureCarriesFallbackText(t *testing.T) {
	defer goleak.VerifyNone(t, ignoreBackground...)
	gen := newGated()
	gen.fail["b"] = true
	close(gen.gate("b"))
	tr := NewTracker(NewSummarizer(gen), zerolog.Nop())
	defer tr.Close()

	_, err := tr.Start(record("b"))
	require.NoError(t, err)
	task, err := tr.Wait(waitCtx(t), "b")
	require.NoError(t, err)
	assert.Equal(t, StateFailed, task.State)
	assert.Equal(t, FallbackError, task.Text)
}

func TestTracker_DuplicateStartWhileInFlight(t *testing.T) {
	defer goleak.VerifyNone(t, ignoreBackground...)
	gen := newGated()
	tr := NewTracker(NewSummarizer(gen), zerolog.Nop())
	defer tr.Close()

	_, err := tr.Start(record("a"))
	require.NoError(t, err)
	task, err := tr.Start(record("a"))
	assert.ErrorIs(t, err, ErrInFlight)
	assert.Equal(t, StateInFlight, task.State)

	close(gen.gate("a"))
	_, err = tr.Wait(waitCtx(t), "a")
	require.NoError(t, err)
	assert.Equal(t, 1, gen.callCount("a"))

	// once finished, the record can be summarized again
	_, err = tr.Start(record("a"))
	require.NoError(t, err)
	_, err = tr.Wait(waitCtx(t), "a")
	require.NoError(t, err)
	assert.Equal(t, 2, gen.callCount("a"))
}

func TestTracker_DifferentRecordsRunConcurrently(t *testing.T) {
	defer goleak.VerifyNone(t, ignoreBackground...)
	gen := newGated()
	tr := NewTracker(NewSummarizer(gen), zerolog.Nop())
	defer tr.Close()

	_, err := tr.Start(record("a"))
	require.NoError(t, err)
	_, err = tr.Start(record("b"))
	require.NoError(t, err)
	assert.True(t, tr.InFlight("a"))
	assert.True(t, tr.InFlight("b"))

	// b finishes while a is still blocked
	close(gen.gate("b"))
	task, err := tr.Wait(waitCtx(t), "b")
	require.NoError(t, err)
	assert.Equal(t, "summary for b", task.Text)
	assert.True(t, tr.InFlight("a"))

	close(gen.gate("a"))
	task, err = tr.Wait(waitCtx(t), "a")
	require.NoError(t, err)
	assert.Equal(t, "summary for a", task.Text)
}

func TestTracker_DismissDoesNotCancel(t *testing.T) {
	defer goleak.VerifyNone(t, ignoreBackground...)
	gen := newGated()
	tr := NewTracker(NewSummarizer(gen), zerolog.Nop())
	defer tr.Close()

	_, err := tr.Start(record("a"))
	require.NoError(t, err)
	assert.False(t, tr.Dismiss("a"))
	assert.True(t, tr.InFlight("a"))

	close(gen.gate("a"))
	task, err := tr.Wait(waitCtx(t), "a")
	require.NoError(t, err)
	assert.Equal(t, StateDone, task.State)

	assert.True(t, tr.Dismiss("a"))
	assert.Equal(t, StateIdle, tr.Status("a").State)
	assert.True(t, tr.Dismiss("never-started"))
}

func TestTracker_WaitHonoursContext(t *testing.T) {
	defer goleak.VerifyNone(t, ignoreBackground...)
	gen := newGated()
	tr := NewTracker(NewSummarizer(gen), zerolog.Nop())

	_, err := tr.Start(record("a"))
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	task, err := tr.Wait(ctx, "a")
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, StateInFlight, task.State)

	close(gen.gate("a"))
	tr.Close()
	assert.Equal(t, StateDone, tr.Status("a").State)
}

func TestTracker_WaitOnIdleReturnsImmediately(t *testing.T) {
	tr := NewTracker(NewSummarizer(newGated()), zerolog.Nop())
	defer tr.Close()
	task, err := tr.Wait(context.Background(), "x")
	require.NoError(t, err)
	assert.Equal(t, StateIdle, task.State)
}

func TestTracker_StartAfterClose(t *testing.T) {
	tr := NewTracker(NewSummarizer(newGated()), zerolog.Nop())
	tr.Close()
	_, err := tr.Start(record("a"))
	assert.ErrorIs(t, err, ErrTrackerClosed)
}

func TestState_JSON(t *testing.T) {
	b, err := StateInFlight.MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, `"in_flight"`, string(b))
}
