package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/aretw0/docprotocol"
	"github.com/aretw0/docprotocol/pkg/app"
	"github.com/aretw0/docprotocol/pkg/assist"
	"github.com/aretw0/docprotocol/pkg/core"
)

var (
	verbose        bool
	dataDir        string
	adapter        string
	versioned      bool
	seed           bool
	terminalCancel bool
	timeout        time.Duration
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "docprotocol",
	Short: "Track incoming and outgoing document protocols",
	Long: `docprotocol registers documents (contracts, invoices, official letters)
under sequential protocol codes, tracks their status from pending to
delivered, and can organise free-text reports into a protocol form with
Gemini.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}

		opts := &slog.HandlerOptions{
			Level: level,
		}
		logger := slog.New(slog.NewTextHandler(os.Stderr, opts))
		slog.SetDefault(logger)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	flags.StringVar(&dataDir, "data", "", "Data directory (default: nearest directory holding a snapshot, else the current one)")
	flags.StringVar(&adapter, "adapter", docprotocol.AdapterFS, "Storage adapter (fs, memory)")
	flags.BoolVar(&versioned, "versioned", false, "Commit every change to git (default: auto-detect .git)")
	flags.BoolVar(&seed, "seed", false, "Load the demonstration records into an empty store")
	flags.BoolVar(&terminalCancel, "terminal-cancel", false, "Reject status changes on cancelled protocols")
	flags.DurationVar(&timeout, "timeout", 60*time.Second, "Deadline for AI assist requests")
}

// signalContext returns a context cancelled on SIGINT/SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

// resolveDataDir picks --data, else the nearest snapshot root, else the CWD.
func resolveDataDir() (string, error) {
	if dataDir != "" {
		return dataDir, nil
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	if root, err := docprotocol.FindDataRoot(cwd); err == nil {
		return root, nil
	}
	return cwd, nil
}

// storeOptions translates the persistent flags into service options.
func storeOptions(cmd *cobra.Command, extra ...docprotocol.Option) []docprotocol.Option {
	opts := []docprotocol.Option{
		docprotocol.WithAdapter(adapter),
		docprotocol.WithLogger(slog.Default()),
		docprotocol.WithTerminalCancel(terminalCancel),
		docprotocol.WithWatcherErrorHandler(func(err error) {
			slog.Default().Warn("watcher error", "error", err)
		}),
	}
	if cmd.Flags().Changed("versioned") {
		opts = append(opts, docprotocol.WithVersioning(versioned))
	}
	return append(opts, extra...)
}

// openService opens the configured store.
func openService(ctx context.Context, cmd *cobra.Command, extra ...docprotocol.Option) *core.Service {
	dir, err := resolveDataDir()
	if err != nil {
		fatal("Failed to resolve data directory", err)
	}
	svc, err := docprotocol.New(ctx, dir, storeOptions(cmd, extra...)...)
	if err != nil {
		fatal("Failed to open protocol store", err)
	}
	return svc
}

// openApp opens the store and builds the application state, with the
// assistant enabled when an API key is configured.
func openApp(ctx context.Context, cmd *cobra.Command, requireAssistant bool) *app.App {
	svc := openService(ctx, cmd)

	appOpts := []app.Option{app.WithSeed(seed), app.WithLogger(slog.Default())}
	assistant, err := newAssistant(ctx)
	switch {
	case err == nil:
		appOpts = append(appOpts, app.WithAssistant(timeoutExtractor{assistant, timeout}))
	case requireAssistant:
		fatal("AI assist unavailable", err)
	default:
		slog.Default().Debug("assist disabled", "reason", err)
	}

	a, err := app.New(ctx, svc, appOpts...)
	if err != nil {
		fatal("Failed to start", err)
	}
	return a
}

// newAssistant builds the single Gemini-backed assistant from the environment.
func newAssistant(ctx context.Context) (*assist.Assistant, error) {
	cfg := assist.ConfigFromEnv()
	completer, err := assist.NewGenAICompleter(ctx, cfg)
	if err != nil {
		return nil, err
	}
	slog.Default().Debug("assist enabled", "model", completer.Model())
	return assist.New(completer, assist.WithLogger(slog.Default())), nil
}

// timeoutExtractor applies --timeout to every extraction.
type timeoutExtractor struct {
	next    app.Extractor
	timeout time.Duration
}

func (t timeoutExtractor) Extract(ctx context.Context, text string) (assist.Suggestion, error) {
	if t.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, t.timeout)
		defer cancel()
	}
	return t.next.Extract(ctx, text)
}

// changeReason attaches a custom commit message when one was given.
func changeReason(ctx context.Context, reason, ctype, scope, subject string) context.Context {
	if reason == "" {
		return ctx
	}
	return docprotocol.WithChangeReason(ctx, docprotocol.FormatChangeReason(ctype, scope, subject, reason))
}

// findProtocol resolves an argument that is either an ID or a protocol code.
func findProtocol(ctx context.Context, svc *core.Service, ref string) (core.Protocol, error) {
	if p, err := svc.Get(ctx, ref); err == nil {
		return p, nil
	}
	all, err := svc.List(ctx)
	if err != nil {
		return core.Protocol{}, err
	}
	for _, p := range all {
		if p.Code == ref {
			return p, nil
		}
	}
	return core.Protocol{}, fmt.Errorf("%w: %s", core.ErrNotFound, ref)
}
