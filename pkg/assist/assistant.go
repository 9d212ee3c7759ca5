// Package assist turns free text into protocol form suggestions using a
// text completion service (Gemini in production).
package assist

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync/atomic"

	"github.com/aretw0/docprotocol/pkg/core"
)

// FallbackCategory is returned by SuggestCategory when the service answers
// with nothing usable.
const FallbackCategory = "Geral"

// Suggestion is the structured result of Extract.
type Suggestion struct {
	Title            string        `json:"title"`
	Category         string        `json:"category"`
	Priority         core.Priority `json:"priority"`
	ExecutiveSummary string        `json:"executive_summary"`
}

// Assistant runs the assist operations against a Completer.
type Assistant struct {
	completer Completer
	logger    *slog.Logger
	inFlight  atomic.Bool
}

// Option configures an Assistant.
type Option func(*Assistant)

// WithLogger sets the logger for the assistant.
func WithLogger(logger *slog.Logger) Option {
	return func(a *Assistant) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// New creates an Assistant backed by c.
func New(c Completer, opts ...Option) *Assistant {
	a := &Assistant{
		completer: c,
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Busy reports whether an extraction is running.
func (a *Assistant) Busy() bool {
	return a.inFlight.Load()
}

// Extract asks the service to organise text into a Suggestion. Only one
// extraction runs at a time; a second concurrent call gets ErrInFlight.
func (a *Assistant) Extract(ctx context.Context, text string) (Suggestion, error) {
	if strings.TrimSpace(text) == "" {
		return Suggestion{}, ErrEmptyInput
	}
	if !a.inFlight.CompareAndSwap(false, true) {
		return Suggestion{}, ErrInFlight
	}
	defer a.inFlight.Store(false)

	raw, err := a.complete(ctx, Request{Prompt: extractPrompt(text), Structured: true})
	if err != nil {
		return Suggestion{}, err
	}

	s, err := ParseSuggestion(raw)
	if err != nil {
		a.logger.Debug("assist response rejected", "error", err, "bytes", len(raw))
		return Suggestion{}, err
	}
	return s, nil
}

// Summarize rewrites a document description as a concise protocol summary.
func (a *Assistant) Summarize(ctx context.Context, description string) (string, error) {
	if strings.TrimSpace(description) == "" {
		return "", ErrEmptyInput
	}
	raw, err := a.complete(ctx, Request{Prompt: summarizePrompt(description)})
	if err != nil {
		return "", err
	}
	summary := strings.TrimSpace(raw)
	if summary == "" {
		return "", fmt.Errorf("%w: empty summary", ErrMalformedResponse)
	}
	return summary, nil
}

// SuggestCategory proposes a one-word category for a description.
func (a *Assistant) SuggestCategory(ctx context.Context, description string) (string, error) {
	if strings.TrimSpace(description) == "" {
		return "", ErrEmptyInput
	}
	raw, err := a.complete(ctx, Request{Prompt: categoryPrompt(description)})
	if err != nil {
		return "", err
	}
	return cleanCategory(raw), nil
}

func (a *Assistant) complete(ctx context.Context, req Request) (string, error) {
	a.logger.Debug("assist request", "structured", req.Structured, "prompt_bytes", len(req.Prompt))
	raw, err := a.completer.Complete(ctx, req)
	if err != nil {
		a.logger.Debug("assist request failed", "error", err)
		return "", fmt.Errorf("%w: %w", ErrServiceFailure, err)
	}
	return raw, nil
}

// cleanCategory keeps the first line of the answer without quotes or
// trailing punctuation.
func cleanCategory(raw string) string {
	line, _, _ := strings.Cut(strings.TrimSpace(raw), "\n")
	line = strings.Trim(strings.TrimSpace(line), "\"'`*.")
	if line == "" {
		return FallbackCategory
	}
	return line
}
