package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/BIBSYSDEV/nva-publication-api-sub014/internal/ingest"
	"github.com/BIBSYSDEV/nva-publication-api-sub014/internal/match"
	"github.com/spf13/cobra"
)

var resolveRemote bool

func init() {
	resolveCmd.Flags().BoolVar(&resolveRemote, "remote", false, "Match against the remote search API instead of the local store")
	rootCmd.AddCommand(resolveCmd)
}

var resolveCmd = &cobra.Command{
	Use:   "resolve <file>",
	Short: "Show which stored publication each record matches",
	Long: `Resolve each record in a JSONL export against the stored publications
without merging or writing anything.

Example:
  pubsync resolve export.jsonl --human`,
	Args: cobra.ExactArgs(1),
	RunE: runResolve,
}

// ResolveDetail describes how one record resolved.
type ResolveDetail struct {
	Ref           string            `json:"ref"`
	Title         string            `json:"title"`
	TypeStatus    string            `json:"type_status"`
	MergeSource   match.MergeSource `json:"merge_source,omitempty"`
	PublicationID string            `json:"publication_id,omitempty"`
	Candidates    []string          `json:"candidates,omitempty"`
	Error         string            `json:"error,omitempty"`
}

// ResolveResult is the response for the resolve command.
type ResolveResult struct {
	Records []ResolveDetail `json:"records"`
	Errors  []string        `json:"errors"`
}

func runResolve(cmd *cobra.Command, args []string) error {
	repoRoot := mustFindRepository()
	cfg := mustLoadConfig(repoRoot)
	st := mustOpenStore(repoRoot)
	defer st.Close()

	im := mustNewImporter(cfg)
	items, parseErrors := parseImportFile(im, args[0])
	resolver := match.NewResolver(mustNewLookup(cfg, st, resolveRemote), match.WithLogger(logger))

	ctx := context.Background()
	result := ResolveResult{Errors: errorsToStrings(parseErrors)}
	for _, item := range items {
		result.Records = append(result.Records, resolveItem(ctx, resolver, item))
	}

	if humanOutput {
		for _, d := range result.Records {
			switch {
			case d.Error != "":
				fmt.Printf("%s  ERROR     %s: %s\n", d.Ref, d.Title, d.Error)
			case d.PublicationID != "":
				fmt.Printf("%s  %-9s %s -> %s\n", d.Ref, d.MergeSource, d.Title, d.PublicationID)
			default:
				fmt.Printf("%s  NEW       %s\n", d.Ref, d.Title)
			}
		}
		for _, e := range result.Errors {
			fmt.Printf("parse error: %s\n", e)
		}
	} else {
		outputJSON(result)
	}
	return nil
}

// resolveItem resolves one item without writing. Unmappable items are
// reported but still resolved, since their identifiers may match.
func resolveItem(ctx context.Context, resolver ingest.Resolver, item ingest.Item) ResolveDetail {
	d := ResolveDetail{
		Ref:        item.Ref,
		Title:      itemTitle(item),
		TypeStatus: item.Mapping.Status.String(),
	}

	found, err := resolver.Resolve(ctx, item.Representation)
	if err != nil {
		var amb *match.AmbiguousMatchError
		if errors.As(err, &amb) {
			d.MergeSource = amb.Source
			d.Candidates = amb.Candidates
		}
		d.Error = err.Error()
		return d
	}
	if found != nil {
		d.MergeSource = found.Source
		d.PublicationID = found.Existing.Identifier
	}
	return d
}
