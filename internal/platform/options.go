package platform

import (
	"log/slog"

	"github.com/aretw0/docprotocol/pkg/adapters/fs"
	"github.com/aretw0/docprotocol/pkg/core"
)

// Adapter names accepted by WithAdapter.
const (
	AdapterFS     = "fs"
	AdapterMemory = "memory"
)

// options holds the internal configuration for the protocol service.
type options struct {
	repository     core.Repository
	logger         *slog.Logger
	adapter        string
	file           string
	autoInit       bool
	versioned      *bool
	forceTemp      bool
	mustExist      bool
	readOnly       bool
	devSafety      bool
	terminalCancel bool
	eventBuffer    int
	errorHandler   func(error)
	serializers    map[string]fs.Serializer
}

// Option defines a functional option for configuring the service.
type Option func(*options)

func defaultOptions() *options {
	return &options{
		adapter:     AdapterFS,
		devSafety:   true,
		serializers: make(map[string]fs.Serializer),
	}
}

// WithSerializer registers a snapshot serializer for a file extension.
func WithSerializer(ext string, s fs.Serializer) Option {
	return func(o *options) {
		o.serializers[ext] = s
	}
}

// WithFile sets the snapshot file name. Its extension selects the format.
func WithFile(name string) Option {
	return func(o *options) {
		o.file = name
	}
}

// WithAutoInit creates the data directory (and the git repository when
// versioned) if missing.
func WithAutoInit(auto bool) Option {
	return func(o *options) {
		o.autoInit = auto
	}
}

// WithVersioning commits every change to git. When not set, versioning is
// enabled only if the data directory already holds a git repository.
func WithVersioning(enabled bool) Option {
	return func(o *options) {
		o.versioned = &enabled
	}
}

// WithForceTemp forces the use of a temporary directory (useful for testing).
func WithForceTemp(force bool) Option {
	return func(o *options) {
		o.forceTemp = force
	}
}

// WithMustExist ensures the data directory must already exist.
func WithMustExist(must bool) Option {
	return func(o *options) {
		o.mustExist = must
	}
}

// WithLogger sets the logger for the service and adapters.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithRepository injects a storage adapter, skipping adapter selection.
func WithRepository(repo core.Repository) Option {
	return func(o *options) {
		o.repository = repo
	}
}

// WithAdapter selects the storage adapter by name ("fs" or "memory").
// Defaults to "fs".
func WithAdapter(name string) Option {
	return func(o *options) {
		o.adapter = name
	}
}

// WithEventBuffer sets the per-subscriber event buffer. Zero means default (100).
func WithEventBuffer(size int) Option {
	return func(o *options) {
		o.eventBuffer = size
	}
}

// WithTerminalCancel rejects status changes on cancelled protocols.
func WithTerminalCancel(enabled bool) Option {
	return func(o *options) {
		o.terminalCancel = enabled
	}
}

// WithWatcherErrorHandler registers a callback for runtime errors of the
// snapshot watcher, which are otherwise only logged.
func WithWatcherErrorHandler(fn func(error)) Option {
	return func(o *options) {
		o.errorHandler = fn
	}
}

// WithReadOnly enables read-only mode.
// In this mode:
// 1. Create and UpdateStatus return ErrReadOnly.
// 2. Initialization (Mkdir, git init) is skipped.
// 3. Dev safety (go run temp dir) is bypassed.
func WithReadOnly(enabled bool) Option {
	return func(o *options) {
		o.readOnly = enabled
	}
}

// WithDevSafety controls the sandbox used when running via `go run` or
// `go test`. By default (true) the data directory is redirected to a
// temporary directory so development runs never touch real data.
func WithDevSafety(enabled bool) Option {
	return func(o *options) {
		o.devSafety = enabled
	}
}
