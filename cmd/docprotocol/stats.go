package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var statsJSON bool

// statsCmd represents the stats command
var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show protocol counts by status and the most recent entries",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signalContext()
		defer cancel()

		a := openApp(ctx, cmd, false)
		stats, recent, err := a.Dashboard(ctx)
		if err != nil {
			fatal("Failed to compute stats", err)
		}

		if statsJSON {
			encoder := json.NewEncoder(os.Stdout)
			encoder.SetIndent("", "  ")
			if err := encoder.Encode(stats); err != nil {
				fatal("Failed to encode JSON", err)
			}
			return
		}

		fmt.Printf("Total:     %d\n", stats.Total)
		fmt.Printf("Pending:   %d\n", stats.Pending)
		fmt.Printf("Signed:    %d\n", stats.Signed)
		fmt.Printf("Delivered: %d\n", stats.Delivered)
		fmt.Printf("Cancelled: %d\n", stats.Cancelled)
		if len(recent) > 0 {
			fmt.Println()
			fmt.Println(protocolTable(recent))
		}
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
	statsCmd.Flags().BoolVar(&statsJSON, "json", false, "Output in JSON format")
}
