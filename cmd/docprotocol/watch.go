package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/aretw0/docprotocol/pkg/adapters/lifecycle"
)

// watchCmd represents the watch command
var watchCmd = &cobra.Command{
	Use:   "watch [pattern]",
	Short: "Print protocol changes written by other processes",
	Long: `Watch the snapshot file and print one line per protocol created or changed
by another process (another CLI call, the TUI, a text editor). The optional
glob pattern filters by protocol code, e.g. "PRT-2026-*".`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signalContext()
		defer cancel()

		pattern := "*"
		if len(args) == 1 {
			pattern = args[0]
		}

		svc := openService(ctx, cmd)
		events, err := svc.Watch(ctx, pattern)
		if err != nil {
			fatal("Failed to watch", err)
		}

		src := lifecycle.NewSource(events)
		if err := src.Start(ctx); err != nil {
			fatal("Failed to start event source", err)
		}

		slog.Default().Info("watching for changes", "pattern", pattern)
		for e := range src.Events() {
			fmt.Println(e.String())
		}
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
}
