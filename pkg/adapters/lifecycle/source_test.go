package lifecycle_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/docprotocol/pkg/adapters/lifecycle"
	"github.com/aretw0/docprotocol/pkg/core"
)

func TestSourceForwardsEvents(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	in := make(chan core.Event, 2)
	in <- core.Event{Type: core.EventCreate, ID: "1", Code: "PRT-2026-001", Status: core.StatusPending}
	in <- core.Event{Type: core.EventModify, ID: "1", Code: "PRT-2026-001", Status: core.StatusSigned}
	close(in)

	src := lifecycle.NewSource(in)
	require.NoError(t, src.Start(ctx))

	var got []string
	timeout := time.After(2 * time.Second)
	for {
		select {
		case e, ok := <-src.Events():
			if !ok {
				require.Len(t, got, 2)
				assert.Contains(t, got[0], "CREATE")
				assert.Contains(t, got[1], "SIGNED")
				return
			}
			got = append(got, e.String())
		case <-timeout:
			t.Fatal("source did not close")
		}
	}
}

func TestSourceStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	src := lifecycle.NewSource(make(chan core.Event))
	require.NoError(t, src.Start(ctx))
	cancel()

	select {
	case _, ok := <-src.Events():
		assert.False(t, ok)
	case <-time.After(2 * time.Second):
		t.Fatal("source did not close after cancel")
	}
}
