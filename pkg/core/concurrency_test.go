package core_test

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/docprotocol/pkg/adapters/fs"
	"github.com/aretw0/docprotocol/pkg/adapters/memory"
	"github.com/aretw0/docprotocol/pkg/core"
)

// TestService_ConcurrentCreates hammers Create and UpdateStatus from many
// goroutines and checks that every record got its own sequence number.
func TestService_ConcurrentCreates(t *testing.T) {
	repos := map[string]func(t *testing.T) core.Repository{
		"memory": func(t *testing.T) core.Repository { return memory.NewRepository() },
		"fs": func(t *testing.T) core.Repository {
			repo := fs.NewRepository(fs.Config{Path: t.TempDir()})
			require.NoError(t, repo.Initialize(context.Background()))
			return repo
		},
	}

	for name, mk := range repos {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			svc := core.NewService(mk(t), core.WithClock(fixedClock()))

			const workers, perWorker = 8, 10
			var wg sync.WaitGroup
			errs := make(chan error, workers*perWorker)
			for w := 0; w < workers; w++ {
				wg.Add(1)
				go func(w int) {
					defer wg.Done()
					for i := 0; i < perWorker; i++ {
						p, err := svc.Create(ctx, validDraft(fmt.Sprintf("doc %d-%d", w, i)))
						if err != nil {
							errs <- err
							continue
						}
						if _, err := svc.UpdateStatus(ctx, p.ID, core.StatusSigned); err != nil {
							errs <- err
						}
					}
				}(w)
			}
			wg.Wait()
			close(errs)
			for err := range errs {
				t.Error(err)
			}

			all, err := svc.List(ctx)
			require.NoError(t, err)
			require.Len(t, all, workers*perWorker)

			seen := make(map[string]bool)
			for i, p := range all {
				assert.False(t, seen[p.Code], "duplicate code %s", p.Code)
				seen[p.Code] = true
				assert.Equal(t, core.FormatCode(2026, len(all)-i), p.Code, "newest first")
				assert.Equal(t, core.StatusSigned, p.Status)
			}
		})
	}
}
