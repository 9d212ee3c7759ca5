package main

import (
	"bufio"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/aretw0/docprotocol/pkg/export"
)

var (
	exportFormat string
	exportOutput string
	exportQuery  string
)

// exportCmd represents the export command
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export protocols as CSV, JSON or YAML",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signalContext()
		defer cancel()

		name := exportFormat
		if name == "" && exportOutput != "" {
			name = filepath.Ext(exportOutput)
		}
		if name == "" {
			name = string(export.FormatCSV)
		}
		format, err := export.ParseFormat(name)
		if err != nil {
			fatal("Invalid format", err)
		}

		a := openApp(ctx, cmd, false)
		a.SetQuery(exportQuery)
		records, err := a.Visible(ctx)
		if err != nil {
			fatal("Failed to list protocols", err)
		}

		var w io.Writer = os.Stdout
		if exportOutput != "" && exportOutput != "-" {
			f, err := os.Create(exportOutput)
			if err != nil {
				fatal("Failed to create output file", err)
			}
			defer f.Close()
			w = f
		}

		bw := bufio.NewWriter(w)
		if err := export.Write(bw, format, records); err != nil {
			fatal("Failed to export", err)
		}
		if err := bw.Flush(); err != nil {
			fatal("Failed to export", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
	f := exportCmd.Flags()
	f.StringVarP(&exportFormat, "format", "f", "", "Output format (csv, json, yaml); defaults to the output extension, else csv")
	f.StringVarP(&exportOutput, "output", "o", "", "Output file (default stdout)")
	f.StringVarP(&exportQuery, "query", "q", "", "Only export protocols matching the query")
}
