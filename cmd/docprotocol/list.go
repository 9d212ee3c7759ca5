package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/aretw0/docprotocol/pkg/core"
)

var (
	listJSON  bool
	listQuery string
)

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List protocols, newest first",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signalContext()
		defer cancel()

		a := openApp(ctx, cmd, false)
		a.SetQuery(listQuery)
		records, err := a.Visible(ctx)
		if err != nil {
			fatal("Failed to list protocols", err)
		}

		if listJSON {
			encoder := json.NewEncoder(os.Stdout)
			encoder.SetIndent("", "  ")
			if err := encoder.Encode(records); err != nil {
				fatal("Failed to encode JSON", err)
			}
			return
		}

		if len(records) == 0 {
			fmt.Println("No protocols found.")
			return
		}
		fmt.Println(protocolTable(records))
	},
}

func protocolTable(records []core.Protocol) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("CODE", "TITLE", "SENDER", "RECIPIENT", "TYPE", "STATUS", "DATE")
	for _, p := range records {
		t.Row(p.Code, p.Title, p.Sender, p.Recipient, p.Type.Label(), p.Status.Label(), p.CreatedAt.Format("02/01/2006"))
	}
	return t.Render()
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output in JSON format")
	listCmd.Flags().StringVarP(&listQuery, "query", "q", "", "Filter by title, code or sender (case-insensitive)")
}
