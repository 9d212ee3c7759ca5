package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/docprotocol"
	"github.com/aretw0/docprotocol/pkg/adapters/fs"
)

// initCmd represents the init command
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a protocol store in the data directory",
	Long: `Create the data directory and an empty snapshot file. With --versioned the
directory also becomes a git repository and every change is committed.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signalContext()
		defer cancel()

		dir := dataDir
		if dir == "" {
			dir = "."
		}

		repo, err := docprotocol.Init(ctx, dir, storeOptions(cmd, docprotocol.WithAutoInit(true))...)
		if err != nil {
			fatal("Failed to initialize store", err)
		}

		fsRepo, ok := repo.(*fs.Repository)
		if !ok {
			fmt.Println("Nothing to initialize for adapter", adapter)
			return
		}
		created, err := fsRepo.EnsureSnapshot(ctx)
		if err != nil {
			fatal("Failed to write snapshot", err)
		}
		if created {
			fmt.Println("Initialized empty protocol store in", fsRepo.SnapshotPath())
			return
		}
		fmt.Println("Protocol store already exists in", fsRepo.SnapshotPath())
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
