package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/docprotocol/pkg/core"
)

var statusReason string

// statusCmd represents the status command
var statusCmd = &cobra.Command{
	Use:   "status <id|code> <status>",
	Short: "Change the status of a protocol",
	Long: `Change the status of a protocol. The status may be given as a value
(PENDING, SIGNED, DELIVERED, CANCELLED) or a label (Assinado, Entregue...).`,
	Args: cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signalContext()
		defer cancel()

		status, err := core.ParseStatus(args[1])
		if err != nil {
			fatal("Invalid status", err)
		}

		svc := openService(ctx, cmd)
		p, err := findProtocol(ctx, svc, args[0])
		if err != nil {
			fatal("Failed to find protocol", err)
		}

		ctx = changeReason(ctx, statusReason, core.CommitTypeFix, "protocols", fmt.Sprintf("mark %s as %s", p.Code, status))
		updated, err := svc.UpdateStatus(ctx, p.ID, status)
		if err != nil {
			fatal("Failed to update status", err)
		}

		fmt.Printf("%s %s\n", updated.Code, updated.Status.Label())
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
	statusCmd.Flags().StringVarP(&statusReason, "message", "m", "", "Change reason recorded in git when versioned")
}
