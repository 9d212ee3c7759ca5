package platform_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/docprotocol/internal/platform"
	"github.com/aretw0/docprotocol/pkg/adapters/fs"
	"github.com/aretw0/docprotocol/pkg/adapters/memory"
	"github.com/aretw0/docprotocol/pkg/core"
)

func draft(title string) core.Draft {
	d := core.DefaultDraft()
	d.Title = title
	d.Sender = "ACME"
	d.Recipient = "TI"
	return d
}

func TestNewMemory(t *testing.T) {
	ctx := context.Background()
	svc, err := platform.New(ctx, "", platform.WithAdapter(platform.AdapterMemory))
	require.NoError(t, err)

	_, err = svc.Create(ctx, draft("Contrato X"))
	require.NoError(t, err)

	state := svc.State().(core.ServiceState)
	assert.Equal(t, "memory", state.RepositoryType)
}

func TestNewFSPersists(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	svc, err := platform.New(ctx, dir, platform.WithAutoInit(true), platform.WithVersioning(false))
	require.NoError(t, err)
	p, err := svc.Create(ctx, draft("Contrato X"))
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(dir, fs.DefaultFile))
	require.NoError(t, err)

	reopened, err := platform.New(ctx, dir, platform.WithReadOnly(true))
	require.NoError(t, err)
	got, err := reopened.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, p.Code, got.Code)

	_, err = reopened.Create(ctx, draft("Outro"))
	assert.ErrorIs(t, err, core.ErrReadOnly)
}

func TestNewFSJSONFile(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	svc, err := platform.New(ctx, dir, platform.WithFile("protocols.json"), platform.WithVersioning(false))
	require.NoError(t, err)
	_, err = svc.Create(ctx, draft("Contrato X"))
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, "protocols.json"))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"code": "PRT-`)

	root, err := platform.FindRoot(dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Clean(dir), filepath.Clean(root))
}

func TestNewTerminalCancel(t *testing.T) {
	ctx := context.Background()
	svc, err := platform.New(ctx, "", platform.WithAdapter(platform.AdapterMemory), platform.WithTerminalCancel(true))
	require.NoError(t, err)

	p, err := svc.Create(ctx, draft("Contrato X"))
	require.NoError(t, err)
	_, err = svc.UpdateStatus(ctx, p.ID, core.StatusCancelled)
	require.NoError(t, err)
	_, err = svc.UpdateStatus(ctx, p.ID, core.StatusPending)
	assert.ErrorIs(t, err, core.ErrTransitionNotAllowed)
}

func TestInitInjectedRepository(t *testing.T) {
	repo := memory.NewRepository()
	got, err := platform.Init(context.Background(), "ignored", platform.WithRepository(repo))
	require.NoError(t, err)
	assert.Same(t, repo, got)
}

func TestInitUnknownAdapter(t *testing.T) {
	_, err := platform.Init(context.Background(), t.TempDir(), platform.WithAdapter("s3"))
	assert.ErrorContains(t, err, "unknown adapter")
}

func TestInitMustExist(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing")
	_, err := platform.Init(context.Background(), missing, platform.WithMustExist(true))
	assert.Error(t, err)
}
