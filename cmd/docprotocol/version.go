package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aretw0/docprotocol"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of docprotocol",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("docprotocol version %s\n", strings.TrimSpace(docprotocol.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
