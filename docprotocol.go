package docprotocol

import (
	"context"
	"log/slog"

	"github.com/aretw0/docprotocol/internal/platform"
	"github.com/aretw0/docprotocol/pkg/adapters/fs"
	"github.com/aretw0/docprotocol/pkg/app"
	"github.com/aretw0/docprotocol/pkg/core"
)

// --- Configuration ---

// Option defines a functional option for configuring the service.
type Option = platform.Option

// Adapter names.
const (
	AdapterFS     = platform.AdapterFS
	AdapterMemory = platform.AdapterMemory
)

// WithAutoInit creates the data directory (and git repository when versioned).
func WithAutoInit(auto bool) Option {
	return platform.WithAutoInit(auto)
}

// WithVersioning commits every change to git.
func WithVersioning(enabled bool) Option {
	return platform.WithVersioning(enabled)
}

// WithForceTemp forces the use of a temporary directory (useful for testing).
func WithForceTemp(force bool) Option {
	return platform.WithForceTemp(force)
}

// WithMustExist ensures the data directory must already exist.
func WithMustExist(must bool) Option {
	return platform.WithMustExist(must)
}

// WithReadOnly rejects every mutation with core.ErrReadOnly.
func WithReadOnly(enabled bool) Option {
	return platform.WithReadOnly(enabled)
}

// WithDevSafety controls the go run/go test sandbox.
func WithDevSafety(enabled bool) Option {
	return platform.WithDevSafety(enabled)
}

// WithLogger sets the logger for the service.
func WithLogger(logger *slog.Logger) Option {
	return platform.WithLogger(logger)
}

// WithRepository injects a custom storage adapter.
func WithRepository(repo core.Repository) Option {
	return platform.WithRepository(repo)
}

// WithAdapter selects the storage adapter by name.
func WithAdapter(name string) Option {
	return platform.WithAdapter(name)
}

// WithFile sets the snapshot file name for the fs adapter.
func WithFile(name string) Option {
	return platform.WithFile(name)
}

// WithSerializer registers a snapshot serializer for an extension.
func WithSerializer(ext string, s fs.Serializer) Option {
	return platform.WithSerializer(ext, s)
}

// WithEventBuffer sets the per-subscriber event buffer size.
func WithEventBuffer(size int) Option {
	return platform.WithEventBuffer(size)
}

// WithTerminalCancel rejects status changes on cancelled protocols.
func WithTerminalCancel(enabled bool) Option {
	return platform.WithTerminalCancel(enabled)
}

// WithWatcherErrorHandler receives runtime errors of the snapshot watcher.
func WithWatcherErrorHandler(fn func(error)) Option {
	return platform.WithWatcherErrorHandler(fn)
}

// --- Factory ---

// New creates the protocol service on top of the configured adapter.
func New(ctx context.Context, path string, opts ...Option) (*core.Service, error) {
	return platform.New(ctx, path, opts...)
}

// Init initializes a repository explicitly.
func Init(ctx context.Context, path string, opts ...Option) (core.Repository, error) {
	return platform.Init(ctx, path, opts...)
}

// NewApp creates the service and the application state on top of it.
func NewApp(ctx context.Context, path string, opts []Option, appOpts ...app.Option) (*app.App, error) {
	svc, err := New(ctx, path, opts...)
	if err != nil {
		return nil, err
	}
	return app.New(ctx, svc, appOpts...)
}

// --- Safety & Utils ---

// ResolveDataPath determines the actual data directory based on safety rules.
func ResolveDataPath(userPath string, forceTemp bool) string {
	return platform.ResolveDataPath(userPath, forceTemp)
}

// IsDevRun checks if the current process is running via `go run` or `go test`.
func IsDevRun() bool {
	return platform.IsDevRun()
}

// FindDataRoot looks upwards from startDir for a directory holding a snapshot.
func FindDataRoot(startDir string) (string, error) {
	return platform.FindRoot(startDir)
}

// --- Change reasons ---

const (
	CommitTypeFeat  = core.CommitTypeFeat
	CommitTypeFix   = core.CommitTypeFix
	CommitTypeDocs  = core.CommitTypeDocs
	CommitTypeChore = core.CommitTypeChore
)

// FormatChangeReason builds a Conventional Commit message.
func FormatChangeReason(ctype, scope, subject, body string) string {
	return core.FormatChangeReason(ctype, scope, subject, body)
}

// WithChangeReason attaches a commit message to ctx for versioned writes.
func WithChangeReason(ctx context.Context, reason string) context.Context {
	return context.WithValue(ctx, core.ChangeReasonKey, reason)
}
