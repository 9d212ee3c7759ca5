package memory_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/docprotocol/pkg/adapters/memory"
	"github.com/aretw0/docprotocol/pkg/core"
)

func TestRepository_AppendIsNewestFirst(t *testing.T) {
	repo := memory.NewRepository()
	ctx := context.Background()
	require.NoError(t, repo.Initialize(ctx))

	require.NoError(t, repo.Append(ctx, core.Protocol{ID: "a", Code: "PRT-2026-001"}))
	require.NoError(t, repo.Append(ctx, core.Protocol{ID: "b", Code: "PRT-2026-002"}))

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "b", list[0].ID)
	assert.Equal(t, "a", list[1].ID)

	n, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	// Index must follow the shift caused by prepending.
	got, err := repo.Get(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, "PRT-2026-001", got.Code)
}

func TestRepository_Errors(t *testing.T) {
	repo := memory.NewRepository()
	ctx := context.Background()

	assert.Error(t, repo.Append(ctx, core.Protocol{}))
	require.NoError(t, repo.Append(ctx, core.Protocol{ID: "a"}))
	assert.ErrorIs(t, repo.Append(ctx, core.Protocol{ID: "a"}), core.ErrDuplicateID)

	_, err := repo.Get(ctx, "zzz")
	assert.ErrorIs(t, err, core.ErrNotFound)
	assert.ErrorIs(t, repo.Update(ctx, core.Protocol{ID: "zzz"}), core.ErrNotFound)
}

func TestRepository_ReadsAreCopies(t *testing.T) {
	repo := memory.NewRepository()
	ctx := context.Background()
	require.NoError(t, repo.Append(ctx, core.Protocol{ID: "a", Title: "orig", Attachments: []string{"x"}}))

	list, err := repo.List(ctx)
	require.NoError(t, err)
	list[0].Title = "mutated"
	list[0].Attachments[0] = "y"

	got, err := repo.Get(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, "orig", got.Title)
	assert.Equal(t, []string{"x"}, got.Attachments)
}

func TestRepository_ConcurrentAppends(t *testing.T) {
	repo := memory.NewRepository()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_ = repo.Append(ctx, core.Protocol{ID: string(rune('A' + i))})
		}(i)
	}
	wg.Wait()

	n, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 50, n)

	state := repo.State().(memory.RepositoryState)
	assert.Equal(t, 50, state.Records)
}
