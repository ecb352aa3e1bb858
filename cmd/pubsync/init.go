package main

import (
	"fmt"
	"os"

	"github.com/BIBSYSDEV/nva-publication-api-sub014/internal/config"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(initCmd)
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a new pubsync repository",
	Long: `Initialize a new pubsync repository in the current directory.

Creates:
  .pubsync/
  ├── publications.jsonl  # Empty file
  ├── config.json         # Default config
  └── cache/              # Empty directory (gitignored)`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

func runInit(cmd *cobra.Command, args []string) error {
	root, err := os.Getwd()
	if err != nil {
		exitWithError(ExitError, "getting current directory: %v", err)
	}

	if config.IsRepository(root) {
		exitWithError(ExitError, "directory already contains a pubsync repository")
	}

	if err := os.MkdirAll(config.CachePath(root), 0755); err != nil {
		exitWithError(ExitError, "creating %s directory: %v", config.RepoDir, err)
	}

	pubsFile, err := os.Create(config.PublicationsPath(root))
	if err != nil {
		exitWithError(ExitError, "creating %s: %v", config.PublicationsFile, err)
	}
	pubsFile.Close()

	if err := config.Default().Save(root); err != nil {
		exitWithError(ExitError, "creating %s: %v", config.ConfigFile, err)
	}

	if humanOutput {
		fmt.Printf("Initialized pubsync repository in %s\n", root)
	} else {
		outputJSON(StatusResponse{
			Status: "initialized",
			Path:   root,
		})
	}
	return nil
}
