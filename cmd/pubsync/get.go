package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/BIBSYSDEV/nva-publication-api-sub014/internal/publication"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(getCmd)
}

var getCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Get a single publication by ID",
	Long: `Get a single stored publication by its identifier.

Example:
  pubsync get 0190e0e5-7ef6-4b2c-8a41-2f9c3e2d1a77`,
	Args: cobra.ExactArgs(1),
	RunE: runGet,
}

func runGet(cmd *cobra.Command, args []string) error {
	repoRoot := mustFindRepository()
	st := mustOpenStore(repoRoot)
	defer st.Close()

	id := args[0]
	pub, err := st.GetByID(context.Background(), id)
	if err != nil {
		exitWithError(ExitError, "getting publication: %v", err)
	}
	if pub == nil {
		exitWithError(ExitError, "publication not found: %s", id)
	}

	if humanOutput {
		printPublicationDetail(*pub)
	} else {
		outputJSON(pub)
	}
	return nil
}

func printPublicationDetail(pub publication.Publication) {
	ed := pub.EntityDescription
	fmt.Println(pub.Identifier)
	fmt.Println(strings.Repeat("═", DetailTitleMaxLen))
	fmt.Println()

	fmt.Printf("Title:    %s\n", wrapText(ed.MainTitle, TextWrapWidth, "          "))
	fmt.Println()

	if len(ed.Contributors) > 0 {
		names := make([]string, len(ed.Contributors))
		for i, c := range ed.Contributors {
			names[i] = c.Name
		}
		fmt.Printf("Authors:  %s\n", wrapText(strings.Join(names, ", "), TextWrapWidth, "          "))
		fmt.Println()
	}

	if kind := pub.Kind(); kind != "" {
		fmt.Printf("Type:     %s\n", kind)
	}
	if !ed.PublicationDate.IsZero() {
		fmt.Printf("Date:     %s\n", formatDate(ed.PublicationDate))
	}
	if doi := pub.DOI(); doi != "" {
		fmt.Printf("DOI:      %s\n", doi)
	}
	if isbns := pub.ISBNs(); len(isbns) > 0 {
		fmt.Printf("ISBN:     %s\n", strings.Join(isbns, ", "))
	}
	if pub.Status != "" {
		fmt.Printf("Status:   %s\n", pub.Status)
	}
	if pub.ModifiedAt != "" {
		fmt.Printf("Modified: %s\n", formatTimestamp(pub.ModifiedAt))
	}

	if len(pub.AdditionalIdentifiers) > 0 {
		fmt.Println()
		fmt.Println("Identifiers:")
		for _, id := range pub.AdditionalIdentifiers {
			fmt.Printf("  %s\n", id)
		}
	}

	if len(pub.AssociatedArtifacts) > 0 {
		fmt.Println()
		fmt.Println("Artifacts:")
		for _, a := range pub.AssociatedArtifacts {
			label := a.Name
			if label == "" {
				label = a.URL
			}
			fmt.Printf("  [%s] %s\n", a.Type, label)
		}
	}
}
