// Package docprotocol is the composition root for the document protocol
// tracker.
//
// It wires the domain service (pkg/core) to a storage adapter chosen by
// name and exposes the application layer (pkg/app) used by the terminal UI
// and the CLI.
//
// Records are incoming or outgoing documents identified by a sequential
// code (PRT-<year>-<seq>) and a status (pending, signed, delivered,
// cancelled). The default adapter keeps them in a single snapshot file, with
// optional git versioning of every change; the memory adapter keeps them for
// the life of the process.
//
// Usage:
//
//	svc, err := docprotocol.New(ctx, "./data",
//		docprotocol.WithAutoInit(true),
//		docprotocol.WithLogger(logger),
//	)
//
//	p, err := svc.Create(ctx, draft)
package docprotocol
