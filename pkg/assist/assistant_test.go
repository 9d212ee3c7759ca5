package assist_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/docprotocol/pkg/assist"
	"github.com/aretw0/docprotocol/pkg/core"
)

func reply(answer string) assist.CompleterFunc {
	return func(ctx context.Context, req assist.Request) (string, error) {
		return answer, nil
	}
}

func TestExtract(t *testing.T) {
	var got assist.Request
	a := assist.New(assist.CompleterFunc(func(ctx context.Context, req assist.Request) (string, error) {
		got = req
		return `{"title":"Contrato de manutenção","category":"Contrato","priority":"High","executive_summary":"Renovação anual do contrato."}`, nil
	}))

	s, err := a.Extract(context.Background(), "chegou o contrato de manutenção da ACME, urgente")
	require.NoError(t, err)

	assert.True(t, got.Structured)
	assert.Contains(t, got.Prompt, "contrato de manutenção da ACME")
	assert.Equal(t, assist.Suggestion{
		Title:            "Contrato de manutenção",
		Category:         "Contrato",
		Priority:         core.PriorityHigh,
		ExecutiveSummary: "Renovação anual do contrato.",
	}, s)
}

func TestExtractEmptyInput(t *testing.T) {
	called := false
	a := assist.New(assist.CompleterFunc(func(ctx context.Context, req assist.Request) (string, error) {
		called = true
		return "", nil
	}))

	for _, in := range []string{"", "   \n\t"} {
		_, err := a.Extract(context.Background(), in)
		assert.ErrorIs(t, err, assist.ErrEmptyInput)
	}
	assert.False(t, called, "completer must not be called for empty input")
}

func TestExtractMalformed(t *testing.T) {
	a := assist.New(reply("Claro! Aqui está o protocolo organizado."))

	_, err := a.Extract(context.Background(), "texto")
	require.Error(t, err)
	assert.ErrorIs(t, err, assist.ErrMalformedResponse)
	assert.NotErrorIs(t, err, assist.ErrServiceFailure)
}

func TestExtractServiceFailure(t *testing.T) {
	cause := errors.New("quota exceeded")
	a := assist.New(assist.CompleterFunc(func(ctx context.Context, req assist.Request) (string, error) {
		return "", cause
	}))

	_, err := a.Extract(context.Background(), "texto")
	assert.ErrorIs(t, err, assist.ErrServiceFailure)
	assert.ErrorIs(t, err, cause)
	assert.NotErrorIs(t, err, assist.ErrMalformedResponse)
	assert.False(t, a.Busy())
}

func TestExtractInFlight(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{})
	a := assist.New(assist.CompleterFunc(func(ctx context.Context, req assist.Request) (string, error) {
		close(started)
		<-release
		return `{"title":"t","category":"c","priority":"Low","executive_summary":"s"}`, nil
	}))

	var wg sync.WaitGroup
	var firstErr error
	wg.Add(1)
	go func() {
		defer wg.Done()
		_, firstErr = a.Extract(context.Background(), "primeiro")
	}()

	select {
	case <-started:
	case <-time.After(2 * time.Second):
		t.Fatal("first extraction never started")
	}
	assert.True(t, a.Busy())

	_, err := a.Extract(context.Background(), "segundo")
	assert.ErrorIs(t, err, assist.ErrInFlight)

	close(release)
	wg.Wait()
	require.NoError(t, firstErr)
	assert.False(t, a.Busy())
}

func TestExtractHonoursContext(t *testing.T) {
	a := assist.New(assist.CompleterFunc(func(ctx context.Context, req assist.Request) (string, error) {
		<-ctx.Done()
		return "", ctx.Err()
	}))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := a.Extract(ctx, "texto")
	assert.ErrorIs(t, err, assist.ErrServiceFailure)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestSummarize(t *testing.T) {
	a := assist.New(reply("  Contrato anual de manutenção de servidores.\n"))

	s, err := a.Summarize(context.Background(), "contrato da acme pra manutenção dos servidores por um ano")
	require.NoError(t, err)
	assert.Equal(t, "Contrato anual de manutenção de servidores.", s)

	_, err = assist.New(reply("   ")).Summarize(context.Background(), "texto")
	assert.ErrorIs(t, err, assist.ErrMalformedResponse)

	_, err = a.Summarize(context.Background(), "")
	assert.ErrorIs(t, err, assist.ErrEmptyInput)
}

func TestSuggestCategory(t *testing.T) {
	tests := []struct {
		answer string
		want   string
	}{
		{"Contrato", "Contrato"},
		{"  \"RH\".\n", "RH"},
		{"Nota Fiscal\nporque menciona valores", "Nota Fiscal"},
		{"", assist.FallbackCategory},
		{"``", assist.FallbackCategory},
	}
	for _, tt := range tests {
		got, err := assist.New(reply(tt.answer)).SuggestCategory(context.Background(), "nota de compra")
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "answer %q", tt.answer)
	}
}
