package factory

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/mycelian/casefiles/internal/config"
	"github.com/mycelian/casefiles/internal/summarize"
)

// NewGenerator builds the configured text generator. A provider without
// credentials yields a nil generator and a warning: the service still runs
// and every summary degrades to the error fallback.
func NewGenerator(ctx context.Context, cfg *config.Config, log zerolog.Logger) (summarize.Generator, error) {
	switch cfg.SummaryProvider {
	case config.ProviderOpenAI:
		if cfg.OpenAIAPIKey == "" && cfg.OpenAIBaseURL == "" {
			summariesDisabled(cfg, log)
			return nil, nil
		}
		return summarize.NewOpenAIGenerator(summarize.OpenAIConfig{
			APIKey:  cfg.OpenAIAPIKey,
			BaseURL: cfg.OpenAIBaseURL,
			Model:   cfg.OpenAIModel,
		})
	default:
		if cfg.GeminiAPIKey == "" {
			summariesDisabled(cfg, log)
			return nil, nil
		}
		return summarize.NewGeminiGenerator(ctx, summarize.GeminiConfig{
			APIKey: cfg.GeminiAPIKey,
			Model:  cfg.GeminiModel,
		})
	}
}

// summariesDisabled logs the missing credentials. Production deployments are
// expected to carry a key, so there it is an error rather than a warning.
func summariesDisabled(cfg *config.Config, log zerolog.Logger) {
	ev := log.Warn()
	if cfg.IsProduction() {
		ev = log.Error()
	}
	ev.Str("provider", cfg.SummaryProvider).Str("environment", string(cfg.Environment)).
		Msg("no API key configured; summaries are disabled")
}
