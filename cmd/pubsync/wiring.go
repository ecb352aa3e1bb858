package main

import (
	"context"
	"errors"
	"os"

	"github.com/BIBSYSDEV/nva-publication-api-sub014/internal/config"
	"github.com/BIBSYSDEV/nva-publication-api-sub014/internal/importer"
	"github.com/BIBSYSDEV/nva-publication-api-sub014/internal/ingest"
	"github.com/BIBSYSDEV/nva-publication-api-sub014/internal/match"
	"github.com/BIBSYSDEV/nva-publication-api-sub014/internal/pdf"
	"github.com/BIBSYSDEV/nva-publication-api-sub014/internal/publication"
	"github.com/BIBSYSDEV/nva-publication-api-sub014/internal/search"
	"github.com/BIBSYSDEV/nva-publication-api-sub014/internal/storage"
)

// mustNewImporter builds the record importer from repository config.
func mustNewImporter(cfg *config.Config) *importer.Importer {
	opts := []importer.Option{
		importer.WithLogger(logger),
		importer.WithDefaultSource(cfg.DefaultSource),
	}
	if cfg.PDFRoot != "" {
		opts = append(opts, importer.WithProber(pdf.NewProber(config.ExpandPath(cfg.PDFRoot))))
	}
	return importer.New(mustNewMapper(cfg), opts...)
}

// parseImportFile reads and parses the import file.
func parseImportFile(im *importer.Importer, path string) ([]ingest.Item, []error) {
	f, err := os.Open(path)
	if err != nil {
		exitWithError(ExitError, "reading file: %v", err)
	}
	defer f.Close()

	items, parseErrors := im.Parse(path, f)
	if len(parseErrors) > 0 && len(items) == 0 {
		exitWithError(ExitDataError, "failed to parse any records: %v", parseErrors[0])
	}
	return items, parseErrors
}

// mustNewLookup returns the search backend for the resolver: the remote
// search API when remote is set, otherwise the local store index.
func mustNewLookup(cfg *config.Config, st *storage.Store, remote bool) match.Lookup {
	if !remote {
		return st
	}
	if cfg.SearchURL == "" {
		exitWithError(ExitConfigError, "search_url not configured\n\nRun 'pubsync config search-url <url>' to set it.")
	}
	return search.NewClient(
		search.WithBaseURL(cfg.SearchURL),
		search.WithAPIKey(config.GetSearchAPIKey()),
		search.WithRateLimit(cfg.RateLimit),
	)
}

// storeWriter writes pipeline results to the local store. Matches found
// through the remote index may not be stored locally yet; those updates
// are inserted under the matched identifier instead, keeping the matched
// status and creation time.
type storeWriter struct {
	ingest.Writer
}

func (w storeWriter) Update(ctx context.Context, pub publication.Publication) (publication.Publication, error) {
	updated, err := w.Writer.Update(ctx, pub)
	if errors.Is(err, storage.ErrNotFound) {
		logger.Debug().Str("publication", pub.Identifier).Msg("matched publication not stored locally, inserting")
		return w.Writer.Create(ctx, pub)
	}
	return updated, err
}

// errorsToStrings converts a slice of errors to strings.
func errorsToStrings(errs []error) []string {
	strs := make([]string, len(errs))
	for i, e := range errs {
		strs[i] = e.Error()
	}
	return strs
}

// itemTitle returns the display title of an item.
func itemTitle(item ingest.Item) string {
	return truncateString(item.Representation.Publication.EntityDescription.MainTitle, ImportTitleMaxLen)
}
