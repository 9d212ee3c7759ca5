// Package app holds the application state and the user-level flows
// (creating protocols, row actions, AI assist) on top of core.Service.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/aretw0/docprotocol/pkg/assist"
	"github.com/aretw0/docprotocol/pkg/core"
)

// RecentLimit is how many records the dashboard shows.
const RecentLimit = 5

// Notices shown after assist failures.
const (
	NoticeAssistFailed    = "Falha ao organizar dados com IA."
	NoticeAssistMalformed = "Falha ao organizar dados com IA: resposta em formato inesperado."
	NoticeAssistEmpty     = "Descreva o documento antes de usar a IA."
	NoticeAssistBusy      = "Aguarde a resposta da IA."
	NoticeAssistOff       = "Assistente IA não configurado."
)

// ErrAssistUnavailable is returned by Assist when no assistant is configured.
var ErrAssistUnavailable = errors.New("assistant not configured")

// Extractor turns free text into a suggestion. *assist.Assistant implements it.
type Extractor interface {
	Extract(ctx context.Context, text string) (assist.Suggestion, error)
}

// App owns the state of one user session.
type App struct {
	svc       *core.Service
	assistant Extractor
	logger    *slog.Logger
	seed      bool

	mu    sync.Mutex
	state State
}

// Option configures an App.
type Option func(*App)

// WithAssistant enables the AI assist flow.
func WithAssistant(e Extractor) Option {
	return func(a *App) {
		a.assistant = e
	}
}

// WithLogger sets the logger for the app.
func WithLogger(logger *slog.Logger) Option {
	return func(a *App) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// WithSeed loads the demonstration records when the store is empty.
func WithSeed(enabled bool) Option {
	return func(a *App) {
		a.seed = enabled
	}
}

// New creates an App on top of svc.
func New(ctx context.Context, svc *core.Service, opts ...Option) (*App, error) {
	a := &App{
		svc:    svc,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		state:  initialState(),
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.seed {
		if err := svc.Seed(ctx, core.SeedProtocols(svc.Now())); err != nil {
			return nil, fmt.Errorf("failed to seed: %w", err)
		}
	}
	return a, nil
}

// Service returns the underlying protocol service.
func (a *App) Service() *core.Service {
	return a.svc
}

// HasAssistant reports whether the assist flow is available.
func (a *App) HasAssistant() bool {
	return a.assistant != nil
}

// Snapshot returns a copy of the current state.
func (a *App) Snapshot() State {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.state
}

// SetView switches the visible screen.
func (a *App) SetView(v View) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.state.View = v
}

// SetQuery changes the list filter.
func (a *App) SetQuery(q string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.state.Query = q
}

// EditDraft applies fn to the draft.
func (a *App) EditDraft(fn func(*core.Draft)) {
	a.mu.Lock()
	defer a.mu.Unlock()
	fn(&a.state.Draft)
}

// ResetDraft restores the empty form.
func (a *App) ResetDraft() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.state.Draft = core.DefaultDraft()
}

// SetNotice replaces the notice; an empty string clears it.
func (a *App) SetNotice(msg string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.state.Notice = msg
}

// Dashboard returns the counters and the most recent records.
func (a *App) Dashboard(ctx context.Context) (core.Stats, []core.Protocol, error) {
	stats, err := a.svc.Stats(ctx)
	if err != nil {
		return core.Stats{}, nil, err
	}
	recent, err := a.svc.Recent(ctx, RecentLimit)
	if err != nil {
		return core.Stats{}, nil, err
	}
	return stats, recent, nil
}

// Visible returns the records matching the current query, newest first.
func (a *App) Visible(ctx context.Context) ([]core.Protocol, error) {
	return a.svc.Filter(ctx, a.Snapshot().Query)
}

// Submit creates a protocol from the draft. On validation failure the draft
// and view are left as they were.
func (a *App) Submit(ctx context.Context) (core.Protocol, error) {
	draft := a.Snapshot().Draft

	p, err := a.svc.Create(ctx, draft)
	if err != nil {
		a.SetNotice(err.Error())
		return core.Protocol{}, err
	}

	a.mu.Lock()
	a.state.Draft = core.DefaultDraft()
	a.state.View = ViewList
	a.state.Notice = fmt.Sprintf("Protocolo %s criado.", p.Code)
	a.mu.Unlock()

	a.logger.Debug("draft submitted", "code", p.Code)
	return p, nil
}

// Sign marks a pending protocol as signed.
func (a *App) Sign(ctx context.Context, id string) (core.Protocol, error) {
	return a.report(a.svc.UpdateStatusFrom(ctx, id, core.StatusPending, core.StatusSigned))
}

// Deliver marks a protocol as delivered.
func (a *App) Deliver(ctx context.Context, id string) (core.Protocol, error) {
	return a.setStatus(ctx, id, core.StatusDelivered)
}

// Cancel marks a protocol as cancelled.
func (a *App) Cancel(ctx context.Context, id string) (core.Protocol, error) {
	return a.setStatus(ctx, id, core.StatusCancelled)
}

func (a *App) setStatus(ctx context.Context, id string, status core.Status) (core.Protocol, error) {
	return a.report(a.svc.UpdateStatus(ctx, id, status))
}

// report turns the outcome of a row action into the notice line.
func (a *App) report(p core.Protocol, err error) (core.Protocol, error) {
	if err != nil {
		a.SetNotice(err.Error())
		return core.Protocol{}, err
	}
	a.SetNotice(fmt.Sprintf("%s: %s.", p.Code, p.Status.Label()))
	return p, nil
}

// Assist asks the assistant to organise text and, on success, replaces the
// whole draft with the suggestion and opens the form. On failure a notice is
// set and the draft is left unchanged. No record is ever created here.
func (a *App) Assist(ctx context.Context, text string) (assist.Suggestion, error) {
	if a.assistant == nil {
		a.SetNotice(NoticeAssistOff)
		return assist.Suggestion{}, ErrAssistUnavailable
	}

	a.mu.Lock()
	if a.state.Busy {
		a.state.Notice = NoticeAssistBusy
		a.mu.Unlock()
		return assist.Suggestion{}, assist.ErrInFlight
	}
	a.state.Busy = true
	a.mu.Unlock()

	s, err := a.assistant.Extract(ctx, text)

	a.mu.Lock()
	defer a.mu.Unlock()
	a.state.Busy = false

	if err != nil {
		a.state.Notice = assistNotice(err)
		a.logger.Debug("assist failed", "error", err)
		return assist.Suggestion{}, err
	}

	a.state.Draft = s.Apply()
	a.state.View = ViewNew
	a.state.Notice = ""
	return s, nil
}

func assistNotice(err error) string {
	switch {
	case errors.Is(err, assist.ErrEmptyInput):
		return NoticeAssistEmpty
	case errors.Is(err, assist.ErrInFlight):
		return NoticeAssistBusy
	case errors.Is(err, assist.ErrMalformedResponse):
		return NoticeAssistMalformed
	default:
		return NoticeAssistFailed
	}
}
