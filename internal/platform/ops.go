package platform

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/aretw0/docprotocol/pkg/adapters/fs"
	"github.com/aretw0/docprotocol/pkg/adapters/memory"
	"github.com/aretw0/docprotocol/pkg/core"
	"github.com/aretw0/docprotocol/pkg/git"
)

// Init builds and initializes the repository selected by the options.
// The uri argument is adapter-specific (the data directory for "fs",
// ignored for "memory").
func Init(ctx context.Context, uri string, opts ...Option) (core.Repository, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	return initRepository(ctx, uri, o)
}

func initRepository(ctx context.Context, uri string, o *options) (core.Repository, error) {
	if o.repository != nil {
		return o.repository, nil
	}

	var repo core.Repository
	var err error

	switch o.adapter {
	case AdapterFS, "":
		repo, err = initFS(uri, o)
	case AdapterMemory:
		repo = memory.NewRepository()
	default:
		return nil, fmt.Errorf("unknown adapter: %s", o.adapter)
	}
	if err != nil {
		return nil, err
	}

	if err := repo.Initialize(ctx); err != nil {
		return nil, err
	}
	return repo, nil
}

// initFS resolves the data path and builds the filesystem repository.
func initFS(path string, o *options) (*fs.Repository, error) {
	// Read-only access is inherently safe.
	bypassSafety := o.readOnly || !o.devSafety
	useTemp := o.forceTemp || (IsDevRun() && !bypassSafety)
	resolved := ResolveDataPath(path, useTemp)

	if o.logger != nil {
		switch {
		case useTemp:
			o.logger.Warn("running in SAFE MODE (dev sandbox)", "original_path", path, "resolved_path", resolved)
		case IsDevRun() && o.readOnly:
			o.logger.Debug("running in READ-ONLY mode (bypassing dev sandbox)", "path", resolved)
		case IsDevRun():
			o.logger.Warn("running in UNSAFE mode (bypassing dev sandbox)", "path", resolved)
		}
	}

	versioned := false
	if o.versioned != nil {
		versioned = *o.versioned
	} else if _, err := os.Stat(filepath.Join(resolved, ".git")); err == nil && git.IsInstalled() {
		versioned = true
		if o.logger != nil {
			o.logger.Debug("auto-detected versioned mode", "reason", ".git present")
		}
	}

	repo := fs.NewRepository(fs.Config{
		Path:         resolved,
		File:         o.file,
		AutoInit:     o.autoInit || useTemp,
		MustExist:    o.mustExist,
		ReadOnly:     o.readOnly,
		Versioned:    versioned,
		Logger:       o.logger,
		ErrorHandler: o.errorHandler,
	})

	for ext, s := range o.serializers {
		if s == nil {
			return nil, fmt.Errorf("serializer for %s is nil", ext)
		}
		repo.RegisterSerializer(ext, s)
	}
	return repo, nil
}
