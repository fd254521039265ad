package factory

import (
	"context"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog"

	"github.com/mycelian/casefiles/internal/config"
	"github.com/mycelian/casefiles/internal/kv"
	"github.com/mycelian/casefiles/internal/kv/badgerkv"
	"github.com/mycelian/casefiles/internal/kv/memkv"
	"github.com/mycelian/casefiles/internal/kv/postgreskv"
	"github.com/mycelian/casefiles/internal/kv/sqlitekv"
)

// openBackOff is the retry policy for opening a backend. Tests shorten it.
var openBackOff = func() backoff.BackOff {
	exp := backoff.NewExponentialBackOff()
	exp.InitialInterval = 250 * time.Millisecond
	exp.MaxInterval = 5 * time.Second
	return exp
}

// NewKV opens the backend named by cfg.StoreDriver, retrying transient
// failures up to cfg.StoreOpenAttempts times.
func NewKV(ctx context.Context, cfg *config.Config, log zerolog.Logger) (kv.Store, error) {
	open, err := opener(cfg, log)
	if err != nil {
		return nil, err
	}

	attempts := cfg.StoreOpenAttempts
	if attempts < 1 {
		attempts = 1
	}
	policy := backoff.WithContext(backoff.WithMaxRetries(openBackOff(), uint64(attempts-1)), ctx)

	var st kv.Store
	err = backoff.RetryNotify(func() error {
		s, err := open(ctx)
		if err != nil {
			return err
		}
		st = s
		return nil
	}, policy, func(err error, wait time.Duration) {
		log.Warn().Err(err).Str("driver", cfg.StoreDriver).Dur("retry_in", wait).Msg("store open failed, retrying")
	})
	if err != nil {
		return nil, fmt.Errorf("open %s store: %w", cfg.StoreDriver, err)
	}
	log.Info().Str("driver", cfg.StoreDriver).Msg("store opened")
	return st, nil
}

func opener(cfg *config.Config, log zerolog.Logger) (func(context.Context) (kv.Store, error), error) {
	switch cfg.StoreDriver {
	case config.DriverBadger:
		return func(context.Context) (kv.Store, error) {
			bc := badgerkv.DefaultConfig(cfg.BadgerDir)
			bc.Logger = &log
			return badgerkv.Open(bc)
		}, nil
	case config.DriverSQLite:
		return func(ctx context.Context) (kv.Store, error) {
			return sqlitekv.New(ctx, cfg.SQLitePath)
		}, nil
	case config.DriverPostgres:
		if cfg.PostgresDSN == "" {
			return nil, fmt.Errorf("CASEFILES_POSTGRES_DSN is required when STORE_DRIVER=postgres")
		}
		return func(ctx context.Context) (kv.Store, error) {
			return postgreskv.New(ctx, cfg.PostgresDSN)
		}, nil
	case config.DriverMemory:
		return func(context.Context) (kv.Store, error) { return memkv.New(), nil }, nil
	default:
		return nil, fmt.Errorf("unknown STORE_DRIVER: %s", cfg.StoreDriver)
	}
}
