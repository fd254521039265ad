package client

import (
	"context"
	"errors"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mycelian/casefiles/internal/api"
	"github.com/mycelian/casefiles/internal/kv/memkv"
	"github.com/mycelian/casefiles/internal/session"
	"github.com/mycelian/casefiles/internal/store"
	"github.com/mycelian/casefiles/internal/summarize"
)

func newServer(t *testing.T, gen summarize.Generator) string {
	t.Helper()
	tracker := summarize.NewTracker(summarize.NewSummarizer(gen), zerolog.Nop())
	srv := httptest.NewServer(api.NewRouter(api.Deps{
		Records:  store.New(memkv.New()),
		Tracker:  tracker,
		Sessions: session.NewRegistry(),
		Log:      zerolog.Nop(),
	}))
	t.Cleanup(func() {
		srv.Close()
		tracker.Close()
	})
	return srv.URL
}

func echoGenerator() summarize.Generator {
	return summarize.GeneratorFunc(func(ctx context.Context, req summarize.Request) (string, error) {
		return "Recommend cross-checking the 2018 prints.", nil
	})
}

func loggedIn(t *testing.T, base string) *Client {
	t.Helper()
	c, err := New(base, WithHTTPTimeout(5*time.Second))
	require.NoError(t, err)
	u, err := c.Login(context.Background(), "agent", "agent")
	require.NoError(t, err)
	require.Equal(t, "Agent 47", u.Username)
	return c
}

func TestNew_Validation(t *testing.T) {
	_, err := New("")
	assert.Error(t, err)
	_, err = New("http://localhost", WithHTTPTimeout(0))
	assert.Error(t, err)
	_, err = New("http://localhost", WithHTTPClient(nil))
	assert.Error(t, err)
}

func TestLoginLogout(t *testing.T) {
	base := newServer(t, echoGenerator())
	ctx := context.Background()

	c, err := New(base)
	require.NoError(t, err)
	_, err = c.Login(ctx, "agent", "wrong")
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.Empty(t, c.Token())

	_, err = c.ListRecords(ctx, "")
	assert.ErrorIs(t, err, ErrUnauthorized)

	u, err := c.Login(ctx, "admin", "admin")
	require.NoError(t, err)
	assert.Equal(t, "Admin", u.Role)
	me, err := c.CurrentUser(ctx)
	require.NoError(t, err)
	assert.Equal(t, u, me)

	token := c.Token()
	require.NoError(t, c.Logout(ctx))
	assert.Empty(t, c.Token())

	stale, err := New(base, WithToken(token))
	require.NoError(t, err)
	_, err = stale.CurrentUser(ctx)
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestRecords(t *testing.T) {
	base := newServer(t, echoGenerator())
	c := loggedIn(t, base)
	ctx := context.Background()

	recs, err := c.ListRecords(ctx, "")
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, StatusClosed, recs[0].Status)

	created, err := c.CreateRecord(ctx, RecordDraft{
		CriminalName:         "Ivo Marsh",
		CrimeSceneArea:       "Old Town Museum",
		InvestigationProcess: "Display case opened without force.",
		Status:               StatusActive,
		Category:             "Theft",
	})
	require.NoError(t, err)
	assert.True(t, created.Persisted)
	assert.NotEmpty(t, created.ID)
	assert.Len(t, created.DateCreated, len("2006-01-02"))

	got, err := c.GetRecord(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.Record, got)

	recs, err = c.ListRecords(ctx, "museum")
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, created.ID, recs[0].ID)

	_, err = c.GetRecord(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = c.CreateRecord(ctx, RecordDraft{CriminalName: "x", Status: "Reopened"})
	assert.ErrorIs(t, err, ErrInvalid)
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.NotEmpty(t, apiErr.Message)

	dash, err := c.Dashboard(ctx)
	require.NoError(t, err)
	assert.Equal(t, Stats{Active: 1, Closed: 1, ColdCase: 1, Total: 3}, dash.Stats)
	require.Len(t, dash.Chart, 3)
	assert.Equal(t, "#10b981", dash.Chart[0].Color)
	assert.Equal(t, created.ID, dash.Recent[0].ID)
}

func TestSummaries(t *testing.T) {
	base := newServer(t, echoGenerator())
	c := loggedIn(t, base)
	ctx := context.Background()

	task, err := c.Summarize(ctx, "2")
	require.NoError(t, err)
	assert.Equal(t, SummaryDone, task.State)
	assert.Equal(t, "Recommend cross-checking the 2018 prints.", task.Text)

	require.NoError(t, c.DismissSummary(ctx, "2"))
	task, err = c.SummaryStatus(ctx, "2")
	require.NoError(t, err)
	assert.Equal(t, SummaryIdle, task.State)

	_, err = c.StartSummary(ctx, "1")
	require.NoError(t, err)
	waitCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	task, err = c.AwaitSummary(waitCtx, "1", 10*time.Millisecond)
	require.NoError(t, err)
	assert.True(t, task.Finished())

	_, err = c.StartSummary(ctx, "nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStartSummary_Conflict(t *testing.T) {
	release := make(chan struct{})
	gen := summarize.GeneratorFunc(func(ctx context.Context, req summarize.Request) (string, error) {
		<-release
		return "", nil
	})
	base := newServer(t, gen)
	defer close(release)
	c := loggedIn(t, base)
	ctx := context.Background()

	_, err := c.StartSummary(ctx, "1")
	require.NoError(t, err)
	task, err := c.StartSummary(ctx, "1")
	assert.ErrorIs(t, err, ErrConflict)
	assert.Equal(t, SummaryInFlight, task.State)

	assert.ErrorIs(t, c.DismissSummary(ctx, "1"), ErrConflict)
}

func TestHealth(t *testing.T) {
	base := newServer(t, echoGenerator())
	c, err := New(base)
	require.NoError(t, err)
	ok, err := c.Health(context.Background())
	require.NoError(t, err)
	assert.True(t, ok)
}
