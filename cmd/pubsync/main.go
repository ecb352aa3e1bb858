// Package main provides the pubsync CLI entry point.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/BIBSYSDEV/nva-publication-api-sub014/internal/config"
	"github.com/BIBSYSDEV/nva-publication-api-sub014/internal/storage"
	"github.com/BIBSYSDEV/nva-publication-api-sub014/internal/typemap"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// Version is set at build time via ldflags
var Version = "dev"

// humanOutput controls whether to use human-readable output
var humanOutput bool

// verbose enables debug logging
var verbose bool

// logger is configured once flags are parsed; commands log through it.
var logger = zerolog.Nop()

func main() {
	if err := rootCmd.Execute(); err != nil {
		// Print the error since we have SilenceErrors: true
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(ExitError)
	}
}

var rootCmd = &cobra.Command{
	Use:   "pubsync",
	Short: "Import publication records and merge them into a local store",
	Long: `pubsync imports publication records from institutional repositories,
finds the stored publication each one describes and merges them.

Matching tries, in order: the institution's own identifier, DOI, ISBN, and
title plus publication type. Ambiguous matches and records whose type tags
cannot be mapped are flagged for manual review, never guessed.

Data is stored in git-versionable JSONL with ephemeral SQLite for queries.
All commands output JSON by default; use --human for readable output.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger = newLogger(humanOutput, verbose)
	},
}

func init() {
	// A missing .env is fine; the API key may come from the environment or global config.
	_ = godotenv.Load()

	rootCmd.PersistentFlags().BoolVar(&humanOutput, "human", false, "Use human-readable output instead of JSON")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log debug details to stderr")
	rootCmd.Version = Version
}

// newLogger builds the stderr logger. Human mode gets console formatting,
// otherwise JSON lines so agents can parse logs separately from results.
func newLogger(human, debug bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}
	if human {
		return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
			Level(level).With().Timestamp().Logger()
	}
	return zerolog.New(os.Stderr).Level(level).With().Timestamp().Logger()
}

// getStartingDirectory returns the directory to start searching for a repository.
// Checks global config store_path first, then current working directory.
func getStartingDirectory() (string, int) {
	if root, err := config.ValidateStorePath(); err == nil {
		return root, 0
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", outputError(ExitError, "getting current directory: %v", err)
	}
	return cwd, 0
}

// mustFindRepository finds and validates the repository, exits on error.
// Returns the repository root path.
func mustFindRepository() string {
	start, exitCode := getStartingDirectory()
	if exitCode != 0 {
		os.Exit(exitCode)
	}

	repoRoot, err := config.FindRepository(start)
	if err != nil {
		fmt.Fprintln(os.Stderr, config.HelpfulConfigMessage())
		os.Exit(ExitConfigError)
	}
	return repoRoot
}

// mustLoadConfig loads configuration, exits on error.
func mustLoadConfig(repoRoot string) *config.Config {
	cfg, err := config.Load(repoRoot)
	if err != nil {
		exitWithError(ExitConfigError, "loading config: %v", err)
	}
	return cfg
}

// mustOpenStore opens the publication store, exits on error.
// The caller is responsible for calling Close() on the returned store.
func mustOpenStore(repoRoot string) *storage.Store {
	st, err := storage.OpenStore(config.PublicationsPath(repoRoot), config.DBPath(repoRoot))
	if err != nil {
		exitWithError(ExitError, "opening store: %v", err)
	}
	return st
}

// mustNewMapper builds the type mapper, layering the configured table file
// over the built-in one. Exits on error.
func mustNewMapper(cfg *config.Config) *typemap.Mapper {
	opts := []typemap.Option{typemap.WithLogger(logger)}
	if cfg.TypeTable != "" {
		table, err := typemap.LoadTable(config.ExpandPath(cfg.TypeTable))
		if err != nil {
			exitWithError(ExitConfigError, "loading type table: %v", err)
		}
		opts = append(opts, typemap.WithTable(table))
	}
	return typemap.NewMapper(opts...)
}
