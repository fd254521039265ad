package summarize

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/mycelian/casefiles/internal/metrics"
	"github.com/mycelian/casefiles/internal/model"
)

const (
	// FallbackEmpty is returned when the service answers with no text.
	FallbackEmpty = "Summary could not be generated."
	// FallbackError is returned when the service cannot be reached or fails.
	FallbackError = "Error connecting to Intelligence engine."

	SystemInstruction  = "You are an expert detective consultant. Provide professional, concise, and insightful case summaries."
	DefaultTemperature = float32(0.7)
)

const promptTemplate = `As a senior forensic analyst, please provide a concise executive summary of the following criminal investigation record.
Include potential links to other cold cases or suggestions for further inquiry if applicable.

Criminal Name: %s
Area: %s
Process: %s
Status: %s`

// Outcome classifies how a summarization call ended.
type Outcome string

const (
	OutcomeOK    Outcome = "ok"
	OutcomeEmpty Outcome = "empty"
	OutcomeError Outcome = "error"
)

// Option configures a Summarizer.
type Option func(*Summarizer)

func WithTemperature(t float32) Option {
	return func(s *Summarizer) { s.temperature = t }
}

// WithTimeout bounds each generation call. Zero means no bound.
func WithTimeout(d time.Duration) Option {
	return func(s *Summarizer) { s.timeout = d }
}

func WithLogger(log zerolog.Logger) Option {
	return func(s *Summarizer) { s.log = log }
}

type Summarizer struct {
	gen         Generator
	temperature float32
	timeout     time.Duration
	log         zerolog.Logger
}

func NewSummarizer(gen Generator, opts ...Option) *Summarizer {
	s := &Summarizer{gen: gen, temperature: DefaultTemperature, log: zerolog.Nop()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// BuildPrompt embeds the record fields the analyst needs.
func BuildPrompt(rec model.CrimeRecord) string {
	return fmt.Sprintf(promptTemplate, rec.CriminalName, rec.CrimeSceneArea, rec.InvestigationProcess, rec.Status)
}

// Summarize returns the generated text, or one of the fallback strings. It never fails.
func (s *Summarizer) Summarize(ctx context.Context, rec model.CrimeRecord) string {
	text, _ := s.run(ctx, rec)
	return text
}

func (s *Summarizer) run(ctx context.Context, rec model.CrimeRecord) (text string, outcome Outcome) {
	defer func() {
		if r := recover(); r != nil {
			s.log.Error().Interface("panic", r).Str("record_id", rec.ID).Msg("Summary generator panicked")
			text, outcome = FallbackError, OutcomeError
		}
		metrics.SummariesTotal.WithLabelValues(string(outcome)).Inc()
	}()

	if s.gen == nil {
		s.log.Error().Str("record_id", rec.ID).Msg("No summary generator configured")
		return FallbackError, OutcomeError
	}
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	out, err := s.gen.Generate(ctx, Request{
		Prompt:            BuildPrompt(rec),
		SystemInstruction: SystemInstruction,
		Temperature:       s.temperature,
	})
	if err != nil {
		s.log.Error().Stack().Err(err).Str("record_id", rec.ID).Msg("Summary generation failed")
		return FallbackError, OutcomeError
	}
	if out == "" {
		return FallbackEmpty, OutcomeEmpty
	}
	return out, OutcomeOK
}
