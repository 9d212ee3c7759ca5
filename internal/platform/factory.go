package platform

import (
	"context"

	"github.com/aretw0/docprotocol/pkg/core"
)

// New initializes the repository and wires the domain service on top of it.
//
//	svc, err := platform.New(ctx, "./data", platform.WithAutoInit(true))
func New(ctx context.Context, uri string, opts ...Option) (*core.Service, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	repo, err := initRepository(ctx, uri, o)
	if err != nil {
		return nil, err
	}

	svcOpts := []core.ServiceOption{
		core.WithTerminalCancel(o.terminalCancel),
		core.WithEventBuffer(o.eventBuffer),
	}
	if o.logger != nil {
		svcOpts = append(svcOpts, core.WithLogger(o.logger))
	}
	return core.NewService(repo, svcOpts...), nil
}
