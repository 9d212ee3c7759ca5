// Package lifecycle exposes protocol events as a lifecycle.Source so they can
// be consumed by anything that speaks the generic lifecycle Event interface.
package lifecycle

import (
	"context"

	"github.com/aretw0/lifecycle"

	"github.com/aretw0/docprotocol/pkg/core"
)

type protocolSource struct {
	events <-chan core.Event
	out    chan lifecycle.Event
}

// NewSource wraps a protocol event channel (from Service.Subscribe or
// Service.Watch) as a lifecycle.Source.
func NewSource(events <-chan core.Event) lifecycle.Source {
	return &protocolSource{
		events: events,
		out:    make(chan lifecycle.Event),
	}
}

func (s *protocolSource) Events() <-chan lifecycle.Event {
	return s.out
}

// Start forwards events until the input closes or ctx is done, then closes
// the output channel.
func (s *protocolSource) Start(ctx context.Context) error {
	lifecycle.Go(ctx, func(ctx context.Context) error {
		defer close(s.out)
		for {
			select {
			case <-ctx.Done():
				return nil
			case e, ok := <-s.events:
				if !ok {
					return nil
				}
				select {
				case s.out <- e:
				case <-ctx.Done():
					return nil
				}
			}
		}
	})
	return nil
}
