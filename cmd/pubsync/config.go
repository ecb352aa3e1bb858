package main

import (
	"fmt"
	"strings"

	"github.com/BIBSYSDEV/nva-publication-api-sub014/internal/config"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config [key] [value]",
	Short: "Get or set configuration values",
	Long: `Get or set configuration values.

Usage:
  pubsync config                                   # Show all config
  pubsync config search-url                        # Get specific value
  pubsync config search-url https://api.example.org/search
  pubsync config workers 4

Keys:
  search-url      Base URL of the remote publication search API (--remote)
  rate-limit      Remote requests per second (0 disables throttling)
  workers         Concurrent import workers
  type-table      YAML file layered over the built-in type mapping table
  pdf-root        Root folder for file artifacts (used to read DOIs from PDFs)
  default-source  Source system for records that name none`,
	Args: cobra.MaximumNArgs(2),
	RunE: runConfig,
}

func runConfig(cmd *cobra.Command, args []string) error {
	repoRoot := mustFindRepository()
	cfg := mustLoadConfig(repoRoot)

	// No args: show all config
	if len(args) == 0 {
		values := make(map[string]string, len(config.Keys()))
		for _, key := range config.Keys() {
			v, _ := cfg.Get(key)
			values[key] = v
		}
		if humanOutput {
			for _, key := range config.Keys() {
				fmt.Printf("%-16s %s\n", displayKey(key)+":", values[key])
			}
		} else {
			outputJSON(values)
		}
		return nil
	}

	key := args[0]
	normalizedKey := normalizeKey(key)

	// One arg: get specific value
	if len(args) == 1 {
		value, err := cfg.Get(normalizedKey)
		if err != nil {
			exitWithError(ExitError, "%v", err)
		}
		if humanOutput {
			fmt.Println(value)
		} else {
			outputJSON(map[string]string{normalizedKey: value})
		}
		return nil
	}

	// Two args: set value
	value := args[1]
	switch normalizedKey {
	case "pdf_root", "type_table":
		value = config.ExpandPath(value)
	}
	if err := cfg.Set(normalizedKey, value); err != nil {
		exitWithError(ExitConfigError, "%v", err)
	}

	if err := cfg.Save(repoRoot); err != nil {
		exitWithError(ExitError, "saving config: %v", err)
	}

	if humanOutput {
		fmt.Printf("Updated %s to %s\n", key, value)
	} else {
		outputJSON(UpdateResponse{
			Status: "updated",
			Key:    normalizedKey,
			Value:  value,
		})
	}
	return nil
}

// normalizeKey converts key formats (search-url, search_url, Search-URL) to
// the stored snake_case form.
func normalizeKey(key string) string {
	key = strings.ToLower(key)
	key = strings.ReplaceAll(key, "-", "_")
	return key
}

// displayKey is the dashed form shown to humans.
func displayKey(key string) string {
	return strings.ReplaceAll(key, "_", "-")
}
