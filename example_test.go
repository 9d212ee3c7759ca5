package docprotocol_test

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/aretw0/docprotocol"
	"github.com/aretw0/docprotocol/pkg/app"
	"github.com/aretw0/docprotocol/pkg/core"
)

// Example_basic creates a protocol in a snapshot directory and reads it back.
func Example_basic() {
	tmpDir, err := os.MkdirTemp("", "docprotocol-example-*")
	if err != nil {
		log.Fatal(err)
	}
	defer os.RemoveAll(tmpDir)

	ctx := context.Background()
	svc, err := docprotocol.New(ctx, tmpDir, docprotocol.WithAutoInit(true), docprotocol.WithVersioning(false))
	if err != nil {
		log.Fatal(err)
	}

	d := core.DefaultDraft()
	d.Title = "Contrato X"
	d.Sender = "ACME"
	d.Recipient = "TI"
	d.Category = "Contrato"

	p, err := svc.Create(ctx, d)
	if err != nil {
		log.Fatal(err)
	}

	got, err := svc.Get(ctx, p.ID)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println(got.Title, got.Status)
	// Output:
	// Contrato X PENDING
}

// ExampleNewApp runs the creation flow against the memory adapter.
func ExampleNewApp() {
	ctx := context.Background()
	a, err := docprotocol.NewApp(ctx, "",
		[]docprotocol.Option{docprotocol.WithAdapter(docprotocol.AdapterMemory)},
		app.WithSeed(true),
	)
	if err != nil {
		log.Fatal(err)
	}

	a.SetView(app.ViewNew)
	a.EditDraft(func(d *core.Draft) {
		d.Title = "Ofício 45/2026"
		d.Sender = "Prefeitura"
		d.Recipient = "Jurídico"
		d.Type = core.TypeDigital
		d.Category = "Ofício"
	})
	p, err := a.Submit(ctx)
	if err != nil {
		log.Fatal(err)
	}

	stats, _, err := a.Dashboard(ctx)
	if err != nil {
		log.Fatal(err)
	}

	_, seq, _ := core.ParseCode(p.Code)
	fmt.Println(seq, stats.Total, stats.Pending, a.Snapshot().View)
	// Output:
	// 3 3 2 list
}
