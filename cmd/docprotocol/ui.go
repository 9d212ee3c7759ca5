package main

import (
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/aretw0/docprotocol/internal/tui"
)

// uiCmd represents the ui command
var uiCmd = &cobra.Command{
	Use:   "ui",
	Short: "Open the interactive terminal interface",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signalContext()
		defer cancel()

		// The alternate screen owns the terminal; stderr logs would tear it.
		if !verbose {
			slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))
		}

		a := openApp(ctx, cmd, false)
		if err := tui.Run(ctx, a); err != nil {
			fatal("UI failed", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(uiCmd)
}
