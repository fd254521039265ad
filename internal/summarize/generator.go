// Package summarize turns a case file into a short analyst summary through an
// external text-generation service. Callers never see a service error: failures
// degrade to fixed fallback strings.
package summarize

import "context"

// Request is what the text-generation service receives.
type Request struct {
	Prompt            string
	SystemInstruction string
	Temperature       float32
}

// Generator is implemented by text-generation backends. An empty string with a
// nil error means the service answered with no text.
type Generator interface {
	Generate(ctx context.Context, req Request) (string, error)
}

// GeneratorFunc adapts a function to the Generator interface.
type GeneratorFunc func(ctx context.Context, req Request) (string, error)

func (f GeneratorFunc) Generate(ctx context.Context, req Request) (string, error) { return f(ctx, req) }
