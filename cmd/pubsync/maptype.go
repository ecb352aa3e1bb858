package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(mapTypeCmd)
}

var mapTypeCmd = &cobra.Command{
	Use:   "map-type <tag>...",
	Short: "Show how a set of source type tags maps to a publication type",
	Long: `Map a set of source type tags to a canonical publication type.

The whole tag set is looked up first. If it is unknown, the first tag that
maps on its own is used and the rest are reported as dropped.

Example:
  pubsync map-type "Journal article" "Peer reviewed"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runMapType,
}

// MapTypeResult is the response for the map-type command.
type MapTypeResult struct {
	Type         string   `json:"type,omitempty"`
	Status       string   `json:"status"`
	Kind         string   `json:"kind,omitempty"`
	Context      string   `json:"context,omitempty"`
	UsedTags     []string `json:"used_tags,omitempty"`
	DroppedTags  []string `json:"dropped_tags,omitempty"`
	TableVersion string   `json:"table_version"`
}

func runMapType(cmd *cobra.Command, args []string) error {
	repoRoot := mustFindRepository()
	cfg := mustLoadConfig(repoRoot)
	mapper := mustNewMapper(cfg)

	res := mapper.Map(args)
	out := MapTypeResult{
		Type:         string(res.Type),
		Status:       res.Status.String(),
		UsedTags:     res.UsedTags,
		DroppedTags:  res.DroppedTags,
		TableVersion: mapper.TableVersion(),
	}
	if target, ok := mapper.Target(res.Type); ok {
		out.Kind = string(target.Kind)
		out.Context = string(target.Context)
	}

	if humanOutput {
		if out.Type == "" {
			fmt.Printf("unmappable: %s\n", strings.Join(args, ", "))
			return nil
		}
		fmt.Printf("%s (%s)\n", out.Type, out.Status)
		fmt.Printf("  Instance: %s\n", out.Kind)
		fmt.Printf("  Context:  %s\n", out.Context)
		if len(out.DroppedTags) > 0 {
			fmt.Printf("  Dropped:  %s\n", strings.Join(out.DroppedTags, ", "))
		}
	} else {
		outputJSON(out)
	}
	return nil
}
