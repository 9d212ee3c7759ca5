// Package fs persists the protocol collection as a single snapshot file.
package fs

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/aretw0/docprotocol/pkg/core"
	"github.com/aretw0/docprotocol/pkg/git"
)

// DefaultFile is the snapshot file name used when Config.File is empty.
const DefaultFile = "protocols.yaml"

// Repository implements core.Repository on top of a snapshot file.
// The whole ordered collection lives in memory and is rewritten atomically
// after every mutation.
type Repository struct {
	Path        string
	git         *git.Client
	config      Config
	serializers map[string]Serializer

	mu            sync.RWMutex
	records       []core.Protocol
	index         map[string]int
	watcherActive bool
	lastReload    *time.Time
}

// Config holds the configuration for the filesystem repository.
type Config struct {
	Path         string
	File         string // snapshot file name inside Path; extension selects the format
	AutoInit     bool   // create Path (and git init when Versioned) if missing
	MustExist    bool
	ReadOnly     bool
	Versioned    bool // commit every change to git
	Logger       *slog.Logger
	ErrorHandler func(error) // watcher runtime errors
}

// NewRepository creates a new filesystem-backed repository.
func NewRepository(config Config) *Repository {
	if config.File == "" {
		config.File = DefaultFile
	}
	if config.Logger == nil {
		config.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Repository{
		Path:        config.Path,
		git:         git.NewClient(config.Path, config.Logger),
		config:      config,
		serializers: DefaultSerializers(),
		index:       make(map[string]int),
	}
}

// RegisterSerializer adds or replaces the serializer for an extension.
func (r *Repository) RegisterSerializer(ext string, s Serializer) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.serializers[strings.ToLower(ext)] = s
}

// SnapshotPath returns the absolute location of the snapshot file.
func (r *Repository) SnapshotPath() string {
	return filepath.Join(r.Path, r.config.File)
}

func (r *Repository) serializer() (Serializer, error) {
	ext := strings.ToLower(filepath.Ext(r.config.File))
	s, ok := r.serializers[ext]
	if !ok {
		return nil, fmt.Errorf("unsupported snapshot format %q", ext)
	}
	return s, nil
}

// Initialize prepares the directory (and git when versioned) and loads the snapshot.
func (r *Repository) Initialize(ctx context.Context) error {
	info, err := os.Stat(r.Path)
	switch {
	case err == nil && !info.IsDir():
		return fmt.Errorf("data path is not a directory: %s", r.Path)
	case os.IsNotExist(err):
		if r.config.MustExist || r.config.ReadOnly {
			return fmt.Errorf("data path does not exist: %s", r.Path)
		}
		if err := os.MkdirAll(r.Path, 0755); err != nil {
			return fmt.Errorf("failed to create data directory: %w", err)
		}
	case err != nil:
		return err
	}

	if r.config.Versioned && !r.config.ReadOnly {
		if err := r.initGit(); err != nil {
			return err
		}
	}

	return r.reload()
}

func (r *Repository) initGit() error {
	if !git.IsInstalled() {
		return fmt.Errorf("git is not installed")
	}
	if !r.git.IsRepo() {
		if !r.config.AutoInit {
			return fmt.Errorf("path is not a git repository: %s", r.Path)
		}
		if err := r.git.Init(); err != nil {
			return fmt.Errorf("failed to git init: %w", err)
		}
	}
	if _, err := r.ensureIgnore(); err != nil {
		return fmt.Errorf("failed to ensure .gitignore: %w", err)
	}
	return nil
}

// ensureIgnore keeps the git lock file out of version control.
func (r *Repository) ensureIgnore() (bool, error) {
	ignorePath := filepath.Join(r.Path, ".gitignore")
	ignoreEntry := r.git.LockName()

	content, err := os.ReadFile(ignorePath)
	if err != nil && !os.IsNotExist(err) {
		return false, err
	}

	for _, line := range strings.Split(string(content), "\n") {
		if strings.TrimSpace(line) == ignoreEntry {
			return false, nil
		}
	}

	f, err := os.OpenFile(ignorePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return false, err
	}
	defer f.Close()

	if len(content) > 0 && !strings.HasSuffix(string(content), "\n") {
		if _, err := f.WriteString("\n"); err != nil {
			return false, err
		}
	}
	if _, err := f.WriteString(ignoreEntry + "\n"); err != nil {
		return false, err
	}
	return true, nil
}

// reload replaces the in-memory collection with the snapshot contents.
func (r *Repository) reload() error {
	records, err := r.readSnapshot()
	if err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.setRecords(records)
	now := time.Now()
	r.lastReload = &now
	return nil
}

func (r *Repository) readSnapshot() ([]core.Protocol, error) {
	s, err := r.serializer()
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(r.SnapshotPath())
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot: %w", err)
	}
	records, err := s.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse snapshot %s: %w", r.config.File, err)
	}
	seen := make(map[string]bool, len(records))
	for _, p := range records {
		if p.ID == "" {
			return nil, fmt.Errorf("snapshot %s holds a protocol without id", r.config.File)
		}
		if seen[p.ID] {
			return nil, fmt.Errorf("%w: %s in snapshot", core.ErrDuplicateID, p.ID)
		}
		seen[p.ID] = true
	}
	return records, nil
}

func (r *Repository) setRecords(records []core.Protocol) {
	r.records = records
	r.index = make(map[string]int, len(records))
	for i, p := range records {
		r.index[p.ID] = i
	}
}

// Append inserts p at the front of the collection and persists the snapshot.
func (r *Repository) Append(ctx context.Context, p core.Protocol) error {
	if r.config.ReadOnly {
		return core.ErrReadOnly
	}
	if p.ID == "" {
		return fmt.Errorf("protocol has no ID")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.index[p.ID]; ok {
		return fmt.Errorf("%w: %s", core.ErrDuplicateID, p.ID)
	}
	next := append([]core.Protocol{p.Clone()}, r.records...)
	if err := r.persist(ctx, next, "create "+p.Code); err != nil {
		return err
	}
	r.setRecords(next)
	return nil
}

// Update replaces the record with the same ID and persists the snapshot.
// Writing back an identical record is a no-op.
func (r *Repository) Update(ctx context.Context, p core.Protocol) error {
	if r.config.ReadOnly {
		return core.ErrReadOnly
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	i, ok := r.index[p.ID]
	if !ok {
		return fmt.Errorf("%w: %s", core.ErrNotFound, p.ID)
	}
	if sameProtocol(r.records[i], p) {
		return nil
	}
	next := make([]core.Protocol, len(r.records))
	copy(next, r.records)
	next[i] = p.Clone()
	if err := r.persist(ctx, next, "update "+p.Code); err != nil {
		return err
	}
	r.setRecords(next)
	return nil
}

// persist writes the snapshot atomically and, when versioned, commits it.
// If the commit fails the previous snapshot is put back and unstaged, so
// disk and memory never disagree. Must be called with r.mu held.
func (r *Repository) persist(ctx context.Context, records []core.Protocol, fallbackMsg string) error {
	s, err := r.serializer()
	if err != nil {
		return err
	}
	staged, err := stageSnapshot(r.SnapshotPath(), func(w io.Writer) error {
		return s.Encode(w, records)
	})
	if err != nil {
		return err
	}
	defer staged.discard()

	if !r.config.Versioned {
		return staged.publish()
	}

	unlock, err := r.git.Lock()
	if err != nil {
		return fmt.Errorf("failed to acquire git lock: %w", err)
	}
	defer unlock()

	previous, err := readLive(r.SnapshotPath())
	if err != nil {
		return err
	}
	if err := staged.publish(); err != nil {
		return err
	}
	if err := r.commit(ctx, fallbackMsg); err != nil {
		if rbErr := r.rollback(previous); rbErr != nil {
			r.config.Logger.Error("failed to roll back snapshot", "error", rbErr)
			return errors.Join(err, rbErr)
		}
		r.config.Logger.Warn("snapshot rolled back", "error", err)
		return err
	}
	return nil
}

// commit stages the snapshot and records it. An unchanged snapshot makes
// no commit.
func (r *Repository) commit(ctx context.Context, fallbackMsg string) error {
	if err := r.git.Add(r.config.File, ".gitignore"); err != nil {
		return fmt.Errorf("failed to git add: %w", err)
	}
	changed, err := r.git.HasStagedChanges()
	if err != nil {
		return fmt.Errorf("failed to inspect git index: %w", err)
	}
	if !changed {
		r.config.Logger.Debug("snapshot unchanged, skipping commit")
		return nil
	}

	msg := core.AppendFooter(fallbackMsg)
	if val, ok := ctx.Value(core.ChangeReasonKey).(string); ok && val != "" {
		msg = val
	}
	if err := r.git.Commit(msg); err != nil {
		return fmt.Errorf("failed to git commit: %w", err)
	}
	return nil
}

func (r *Repository) rollback(previous liveSnapshot) error {
	if err := previous.restore(r.SnapshotPath()); err != nil {
		return err
	}
	if err := r.git.Unstage(r.config.File, ".gitignore"); err != nil {
		return fmt.Errorf("failed to unstage snapshot: %w", err)
	}
	return nil
}

// EnsureSnapshot writes the snapshot file if it does not exist yet, so an
// empty store is discoverable on disk.
func (r *Repository) EnsureSnapshot(ctx context.Context) (bool, error) {
	if r.config.ReadOnly {
		return false, core.ErrReadOnly
	}
	if _, err := os.Stat(r.SnapshotPath()); err == nil {
		return false, nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.persist(ctx, r.records, "initialize protocol store"); err != nil {
		return false, err
	}
	return true, nil
}

// Get retrieves a copy of the record with the given ID.
func (r *Repository) Get(ctx context.Context, id string) (core.Protocol, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i, ok := r.index[id]
	if !ok {
		return core.Protocol{}, fmt.Errorf("%w: %s", core.ErrNotFound, id)
	}
	return r.records[i].Clone(), nil
}

// List returns a copy of every record, newest first.
func (r *Repository) List(ctx context.Context) ([]core.Protocol, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]core.Protocol, len(r.records))
	for i, p := range r.records {
		out[i] = p.Clone()
	}
	return out, nil
}

// Count returns the number of stored records.
func (r *Repository) Count(ctx context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.records), nil
}

var _ core.Repository = (*Repository)(nil)
var _ core.Watchable = (*Repository)(nil)
