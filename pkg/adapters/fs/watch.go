package fs

import (
	"context"
	"fmt"
	"path/filepath"
	"reflect"
	"time"

	"github.com/aretw0/lifecycle"
	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"

	"github.com/aretw0/docprotocol/pkg/core"
)

const watchDebounce = 50 * time.Millisecond

// Watch observes the snapshot file for changes written by other processes.
// On each change the collection is reloaded and one event is emitted per
// record that appeared (CREATE) or changed (MODIFY) and whose code matches
// the glob pattern. The channel is closed when ctx is done.
func (r *Repository) Watch(ctx context.Context, pattern string) (<-chan core.Event, error) {
	if pattern == "" {
		pattern = "*"
	}
	if !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("invalid pattern %q", pattern)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	// Watch the directory: atomic renames replace the file inode.
	if err := watcher.Add(r.Path); err != nil {
		_ = watcher.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", r.Path, err)
	}

	events := make(chan core.Event, 100)
	r.setWatcherActive(true)

	lifecycle.Go(ctx, func(ctx context.Context) error {
		defer close(events)
		defer r.setWatcherActive(false)
		defer watcher.Close()
		return r.watchLoop(ctx, watcher, pattern, events)
	}, lifecycle.WithErrorHandler(func(err error) {
		r.handleWatchError(fmt.Errorf("watcher panic: %w", err))
	}))

	return events, nil
}

func (r *Repository) watchLoop(ctx context.Context, watcher *fsnotify.Watcher, pattern string, out chan<- core.Event) error {
	timer := time.NewTimer(watchDebounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Base(event.Name) != r.config.File {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			r.config.Logger.Debug("snapshot event received", "name", event.Name, "op", event.Op.String())
			timer.Reset(watchDebounce)

		case <-timer.C:
			changes, err := r.Reconcile(ctx)
			if err != nil {
				r.handleWatchError(err)
				continue
			}
			for _, e := range changes {
				if ok, _ := doublestar.Match(pattern, e.Code); !ok {
					continue
				}
				select {
				case out <- e:
				case <-ctx.Done():
					return nil
				}
			}

		case wErr, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			r.handleWatchError(wErr)
		}
	}
}

// Reconcile reloads the snapshot and returns the differences from the
// in-memory collection as events.
func (r *Repository) Reconcile(ctx context.Context) ([]core.Event, error) {
	records, err := r.readSnapshot()
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	var changes []core.Event
	// Walk oldest first so CREATE events come out in creation order.
	for i := len(records) - 1; i >= 0; i-- {
		p := records[i]
		j, known := r.index[p.ID]
		switch {
		case !known:
			changes = append(changes, core.Event{Type: core.EventCreate, ID: p.ID, Code: p.Code, Status: p.Status, Timestamp: now.Unix()})
		case !sameProtocol(r.records[j], p):
			changes = append(changes, core.Event{Type: core.EventModify, ID: p.ID, Code: p.Code, Status: p.Status, Timestamp: now.Unix()})
		}
	}

	r.setRecords(records)
	r.lastReload = &now
	return changes, nil
}

// sameProtocol compares records field by field, treating instants that
// differ only in location or monotonic reading as equal.
func sameProtocol(a, b core.Protocol) bool {
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return false
	}
	a.CreatedAt, b.CreatedAt = time.Time{}, time.Time{}
	if len(a.Attachments) == 0 && len(b.Attachments) == 0 {
		a.Attachments, b.Attachments = nil, nil
	}
	return reflect.DeepEqual(a, b)
}

func (r *Repository) handleWatchError(err error) {
	r.config.Logger.Error("watcher error", "error", err)
	if r.config.ErrorHandler != nil {
		r.config.ErrorHandler(err)
	}
}
