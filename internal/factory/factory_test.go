package factory

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mycelian/casefiles/internal/config"
	"github.com/mycelian/casefiles/internal/kv/badgerkv"
	"github.com/mycelian/casefiles/internal/kv/memkv"
	"github.com/mycelian/casefiles/internal/kv/sqlitekv"
	"github.com/mycelian/casefiles/internal/summarize"
)

func TestNewKV_Drivers(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	cfg := config.NewForTesting()
	st, err := NewKV(ctx, cfg, zerolog.Nop())
	require.NoError(t, err)
	assert.IsType(t, &memkv.Store{}, st)
	require.NoError(t, st.Close())

	cfg.StoreDriver = config.DriverSQLite
	cfg.SQLitePath = filepath.Join(dir, "sub", "cases.db")
	st, err = NewKV(ctx, cfg, zerolog.Nop())
	require.NoError(t, err)
	assert.IsType(t, &sqlitekv.Store{}, st)
	require.NoError(t, st.Close())

	cfg.StoreDriver = config.DriverBadger
	cfg.BadgerDir = filepath.Join(dir, "badger")
	st, err = NewKV(ctx, cfg, zerolog.Nop())
	require.NoError(t, err)
	assert.IsType(t, &badgerkv.Store{}, st)
	require.NoError(t, st.Close())
}

func TestNewKV_RejectsUnknownDriver(t *testing.T) {
	cfg := config.NewForTesting()
	cfg.StoreDriver = "etcd"
	_, err := NewKV(context.Background(), cfg, zerolog.Nop())
	assert.Error(t, err)

	cfg.StoreDriver = config.DriverPostgres
	_, err = NewKV(context.Background(), cfg, zerolog.Nop())
	assert.Error(t, err)
}

func TestNewKV_RetriesThenGivesUp(t *testing.T) {
	orig := openBackOff
	openBackOff = func() backoff.BackOff { return &backoff.ZeroBackOff{} }
	t.Cleanup(func() { openBackOff = orig })

	cfg := config.NewForTesting()
	cfg.StoreDriver = config.DriverPostgres
	// unreachable port; each attempt fails fast
	cfg.PostgresDSN = "postgres://u:p@127.0.0.1:1/casefiles?sslmode=disable&connect_timeout=1"
	cfg.StoreOpenAttempts = 2

	_, err := NewKV(context.Background(), cfg, zerolog.Nop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "open postgres store")
}

func TestNewGenerator(t *testing.T) {
	ctx := context.Background()
	cfg := config.NewForTesting()

	gen, err := NewGenerator(ctx, cfg, zerolog.Nop())
	require.NoError(t, err)
	assert.Nil(t, gen)

	cfg.GeminiAPIKey = "test-key"
	gen, err = NewGenerator(ctx, cfg, zerolog.Nop())
	require.NoError(t, err)
	assert.IsType(t, &summarize.GeminiGenerator{}, gen)

	cfg.SummaryProvider = config.ProviderOpenAI
	cfg.OpenAIBaseURL = "http://localhost:11434/v1"
	gen, err = NewGenerator(ctx, cfg, zerolog.Nop())
	require.NoError(t, err)
	assert.IsType(t, &summarize.OpenAIGenerator{}, gen)
}

func TestNewGenerator_MissingKeyLogLevel(t *testing.T) {
	ctx := context.Background()
	cfg := config.NewForTesting()

	var buf bytes.Buffer
	_, err := NewGenerator(ctx, cfg, zerolog.New(&buf))
	require.NoError(t, err)
	assert.Contains(t, buf.String(), `"level":"warn"`)

	buf.Reset()
	cfg.Environment = config.EnvProduction
	gen, err := NewGenerator(ctx, cfg, zerolog.New(&buf))
	require.NoError(t, err)
	assert.Nil(t, gen)
	assert.Contains(t, buf.String(), `"level":"error"`)
	assert.Contains(t, buf.String(), `"environment":"production"`)
}
