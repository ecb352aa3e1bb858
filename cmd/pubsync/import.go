package main

import (
	"context"
	"fmt"
	"os"

	"github.com/BIBSYSDEV/nva-publication-api-sub014/internal/ingest"
	"github.com/BIBSYSDEV/nva-publication-api-sub014/internal/match"
	"github.com/spf13/cobra"
)

var (
	importDryRun  bool
	importWorkers int
	importRemote  bool
)

func init() {
	importCmd.Flags().BoolVar(&importDryRun, "dry-run", false, "Resolve and merge without writing")
	importCmd.Flags().IntVar(&importWorkers, "workers", 0, "Concurrent workers (default: workers from config)")
	importCmd.Flags().BoolVar(&importRemote, "remote", false, "Match against the remote search API instead of the local store")
	rootCmd.AddCommand(importCmd)
}

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import publication records and merge them into the store",
	Long: `Import publication records from a JSONL export.

Each record is matched against stored publications by institution
identifier, DOI, ISBN, and finally title plus type. Matched records are
merged into the stored publication; unmatched ones are created. Records
with ambiguous matches or unmappable type tags are flagged for manual
review and exit status 4 is returned.

Usage:
  pubsync import export.jsonl
  pubsync import export.jsonl --dry-run
  pubsync import export.jsonl --remote --workers 4`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

// ImportResult represents the result of an import operation.
type ImportResult struct {
	DryRun   bool             `json:"dry_run,omitempty"`
	Summary  ingest.Summary   `json:"summary"`
	Outcomes []ingest.Outcome `json:"outcomes"`
	Errors   []string         `json:"errors"`
}

func runImport(cmd *cobra.Command, args []string) error {
	repoRoot := mustFindRepository()
	cfg := mustLoadConfig(repoRoot)
	st := mustOpenStore(repoRoot)
	defer st.Close()

	im := mustNewImporter(cfg)
	items, parseErrors := parseImportFile(im, args[0])

	workers := importWorkers
	if workers <= 0 {
		workers = cfg.Workers
	}

	pipeline := &ingest.Pipeline{
		Resolver: match.NewResolver(mustNewLookup(cfg, st, importRemote), match.WithLogger(logger)),
		Writer:   storeWriter{Writer: st},
		Logger:   logger,
		DryRun:   importDryRun,
	}

	ctx := context.Background()
	outcomes := pipeline.ProcessAll(ctx, items, workers)

	if !importDryRun {
		if err := st.Flush(ctx); err != nil {
			exitWithError(ExitError, "writing publications: %v", err)
		}
	}

	result := ImportResult{
		DryRun:   importDryRun,
		Summary:  ingest.Summarize(outcomes),
		Outcomes: outcomes,
		Errors:   errorsToStrings(parseErrors),
	}
	if humanOutput {
		printImportHuman(result, items)
	} else {
		outputJSON(result)
	}

	if code := importExitCode(result.Summary); code != ExitSuccess {
		os.Exit(code)
	}
	return nil
}

// importExitCode maps an import summary to the process exit status. Write
// and lookup failures outrank items left for review.
func importExitCode(s ingest.Summary) int {
	switch {
	case s.Failed > 0:
		return ExitError
	case s.Flagged > 0:
		return ExitFlagged
	default:
		return ExitSuccess
	}
}

func printImportHuman(result ImportResult, items []ingest.Item) {
	s := result.Summary
	if result.DryRun {
		fmt.Println("Dry run - nothing was written")
	}
	fmt.Printf("Processed %s\n", formatCount(s.Total(), "record", "records"))
	fmt.Printf("  Merged:  %d\n", s.Merged)
	fmt.Printf("  Created: %d\n", s.Created)
	fmt.Printf("  Flagged: %d\n", s.Flagged)
	fmt.Printf("  Failed:  %d\n", s.Failed)

	// Outcomes are in input order, one per item.
	var attention []string
	for i, o := range result.Outcomes {
		switch o.State {
		case ingest.StateFlagged:
			line := fmt.Sprintf("  %s [%s] %s", o.Ref, o.Reason, itemTitle(items[i]))
			if len(o.Candidates) > 0 {
				line += fmt.Sprintf(" (candidates: %v)", o.Candidates)
			}
			attention = append(attention, line)
		case ingest.StateFailed:
			attention = append(attention, fmt.Sprintf("  %s [failed] %s", o.Ref, o.Message))
		}
	}
	if len(attention) > 0 {
		fmt.Println("\nNeeds attention:")
		for _, line := range attention {
			fmt.Println(line)
		}
	}

	if len(result.Errors) > 0 {
		fmt.Println("\nParse errors:")
		for _, e := range result.Errors {
			fmt.Printf("  - %s\n", e)
		}
	}
}
