package core

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/aretw0/lifecycle"
	"github.com/bmatcuk/doublestar/v4"
	"github.com/google/uuid"
)

const defaultEventBuffer = 100

// Service handles the business logic for protocol records.
type Service struct {
	repo            Repository
	logger          *slog.Logger
	now             func() time.Time
	newID           func() string
	terminalCancel  bool
	eventBufferSize int

	// mu serialises writes so code sequences stay unique.
	mu sync.RWMutex

	subMu sync.Mutex
	subs  map[*subscription]struct{}
}

type subscription struct {
	pattern string
	ch      chan Event
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithClock overrides the time source used for CreatedAt and the code year.
func WithClock(now func() time.Time) ServiceOption {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithIDGenerator overrides the random identifier source.
func WithIDGenerator(gen func() string) ServiceOption {
	return func(s *Service) {
		if gen != nil {
			s.newID = gen
		}
	}
}

// WithLogger sets the logger for the service.
func WithLogger(logger *slog.Logger) ServiceOption {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithTerminalCancel makes CANCELLED a terminal status.
func WithTerminalCancel(enabled bool) ServiceOption {
	return func(s *Service) {
		s.terminalCancel = enabled
	}
}

// WithEventBuffer sets the channel size of each subscription.
// Zero means default (100).
func WithEventBuffer(size int) ServiceOption {
	return func(s *Service) {
		if size > 0 {
			s.eventBufferSize = size
		}
	}
}

// NewService creates a new Service.
func NewService(repo Repository, opts ...ServiceOption) *Service {
	s := &Service{
		repo:            repo,
		logger:          slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:             time.Now,
		newID:           uuid.NewString,
		eventBufferSize: defaultEventBuffer,
		subs:            make(map[*subscription]struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create validates the draft and stores a new PENDING protocol at the top of
// the list. The code sequence is the store size plus one.
func (s *Service) Create(ctx context.Context, d Draft) (Protocol, error) {
	if err := d.Validate(); err != nil {
		return Protocol{}, err
	}
	if d.Type == "" {
		d.Type = TypePhysical
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	n, err := s.repo.Count(ctx)
	if err != nil {
		return Protocol{}, fmt.Errorf("failed to count protocols: %w", err)
	}

	now := s.now()
	p := Protocol{
		ID:          s.newID(),
		Code:        FormatCode(now.Year(), n+1),
		Title:       d.Title,
		Description: d.Description,
		Sender:      d.Sender,
		Recipient:   d.Recipient,
		CreatedAt:   now,
		Status:      StatusPending,
		Type:        d.Type,
		Category:    d.Category,
		Priority:    d.Priority,
	}

	if _, ok := ctx.Value(ChangeReasonKey).(string); !ok {
		ctx = context.WithValue(ctx, ChangeReasonKey, FormatChangeReason(CommitTypeFeat, "protocols", "create "+p.Code, p.Title))
	}
	if err := s.repo.Append(ctx, p); err != nil {
		return Protocol{}, fmt.Errorf("failed to store protocol: %w", err)
	}

	s.logger.Info("protocol created", "id", p.ID, "code", p.Code, "title", p.Title)
	s.publish(Event{Type: EventCreate, ID: p.ID, Code: p.Code, Status: p.Status, Timestamp: now.Unix()})
	return p.Clone(), nil
}

// UpdateStatus replaces the status of the record with the given id and
// leaves every other field untouched.
func (s *Service) UpdateStatus(ctx context.Context, id string, status Status) (Protocol, error) {
	return s.updateStatus(ctx, id, "", status)
}

// UpdateStatusFrom is UpdateStatus guarded by the current status: the change
// applies only while the record is still in from, checked under the same
// lock as the write. Otherwise it returns ErrTransitionNotAllowed.
func (s *Service) UpdateStatusFrom(ctx context.Context, id string, from, status Status) (Protocol, error) {
	if !from.Valid() {
		return Protocol{}, fmt.Errorf("%w: %q", ErrInvalidStatus, from)
	}
	return s.updateStatus(ctx, id, from, status)
}

func (s *Service) updateStatus(ctx context.Context, id string, expect, status Status) (Protocol, error) {
	if id == "" {
		return Protocol{}, errors.New("protocol ID cannot be empty")
	}
	if !status.Valid() {
		return Protocol{}, fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	p, err := s.repo.Get(ctx, id)
	if err != nil {
		return Protocol{}, err
	}
	if expect != "" && p.Status != expect {
		return Protocol{}, fmt.Errorf("%w: %s is %s", ErrTransitionNotAllowed, p.Code, p.Status)
	}
	if s.terminalCancel && p.Status == StatusCancelled && status != StatusCancelled {
		return Protocol{}, fmt.Errorf("%w: %s is cancelled", ErrTransitionNotAllowed, p.Code)
	}

	from := p.Status
	p.Status = status
	if _, ok := ctx.Value(ChangeReasonKey).(string); !ok {
		ctx = context.WithValue(ctx, ChangeReasonKey, FormatChangeReason(CommitTypeFix, "protocols", fmt.Sprintf("mark %s as %s", p.Code, status), ""))
	}
	if err := s.repo.Update(ctx, p); err != nil {
		return Protocol{}, fmt.Errorf("failed to update protocol: %w", err)
	}

	s.logger.Info("protocol status updated", "id", p.ID, "code", p.Code, "from", from, "to", status)
	s.publish(Event{Type: EventModify, ID: p.ID, Code: p.Code, Status: status, Timestamp: s.now().Unix()})
	return p.Clone(), nil
}

// Now returns the current time according to the service clock.
func (s *Service) Now() time.Time {
	return s.now()
}

// Get retrieves a protocol by id.
func (s *Service) Get(ctx context.Context, id string) (Protocol, error) {
	if id == "" {
		return Protocol{}, errors.New("protocol ID cannot be empty")
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.repo.Get(ctx, id)
}

// List returns every protocol, newest first.
func (s *Service) List(ctx context.Context) ([]Protocol, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.repo.List(ctx)
}

// Stats recomputes the dashboard counters from the current records.
func (s *Service) Stats(ctx context.Context) (Stats, error) {
	records, err := s.List(ctx)
	if err != nil {
		return Stats{}, err
	}
	return ComputeStats(records), nil
}

// Filter returns the records matching query (see FilterProtocols).
func (s *Service) Filter(ctx context.Context, query string) ([]Protocol, error) {
	records, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	return FilterProtocols(records, query), nil
}

// Recent returns at most n of the newest records.
func (s *Service) Recent(ctx context.Context, n int) ([]Protocol, error) {
	records, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	if n >= 0 && len(records) > n {
		records = records[:n]
	}
	return records, nil
}

// Seed appends records to an empty store, keeping their order.
// It is a no-op when the store already holds data.
func (s *Service) Seed(ctx context.Context, records []Protocol) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	n, err := s.repo.Count(ctx)
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	ctx = context.WithValue(ctx, ChangeReasonKey, FormatChangeReason(CommitTypeChore, "protocols", "seed demonstration data", ""))
	for i := len(records) - 1; i >= 0; i-- {
		if err := s.repo.Append(ctx, records[i].Clone()); err != nil {
			return fmt.Errorf("failed to seed %s: %w", records[i].Code, err)
		}
	}
	s.logger.Debug("seeded store", "count", len(records))
	return nil
}

// Subscribe returns a feed of changes made through this service for codes
// matching the glob pattern. The channel is closed when ctx is done.
func (s *Service) Subscribe(ctx context.Context, pattern string) (<-chan Event, error) {
	if pattern == "" {
		pattern = "*"
	}
	if !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("invalid pattern %q", pattern)
	}

	sub := &subscription{pattern: pattern, ch: make(chan Event, s.eventBufferSize)}
	s.subMu.Lock()
	s.subs[sub] = struct{}{}
	s.subMu.Unlock()

	lifecycle.Go(ctx, func(ctx context.Context) error {
		<-ctx.Done()
		s.subMu.Lock()
		delete(s.subs, sub)
		close(sub.ch)
		s.subMu.Unlock()
		return nil
	})
	return sub.ch, nil
}

// Watch observes changes made outside this process, if the repository supports it.
func (s *Service) Watch(ctx context.Context, pattern string) (<-chan Event, error) {
	w, ok := s.repo.(Watchable)
	if !ok {
		return nil, errors.New("repository does not support watching")
	}
	return w.Watch(ctx, pattern)
}

func (s *Service) publish(e Event) {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	for sub := range s.subs {
		if ok, _ := doublestar.Match(sub.pattern, e.Code); !ok {
			continue
		}
		select {
		case sub.ch <- e:
		default:
			s.logger.Debug("subscriber buffer full, dropping event", "event", e.String())
		}
	}
}
