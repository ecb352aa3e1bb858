package match

import (
	"context"
	"strings"

	"github.com/BIBSYSDEV/nva-publication-api-sub014/internal/publication"
	"github.com/rs/zerolog"
)

// FindFunc looks for the stored counterpart of incoming. It returns nil
// with a nil error when there is no match.
type FindFunc func(ctx context.Context, lookup Lookup, incoming publication.Representation) (*publication.Publication, error)

// Strategy is one link of the resolution chain.
type Strategy struct {
	Source MergeSource
	Find   FindFunc
}

// DefaultStrategies returns the chain in priority order.
func DefaultStrategies(policy EqualityPolicy, logger zerolog.Logger) []Strategy {
	return []Strategy{
		ByInstitutionIdentifier(logger),
		ByDOI(policy),
		ByISBN(policy),
		ByTitleAndType(policy),
	}
}

// ByInstitutionIdentifier matches on the identifier the source institution
// assigned to the record. The identifier is trusted: no equality check.
func ByInstitutionIdentifier(logger zerolog.Logger) Strategy {
	return Strategy{
		Source: SourceInstitutionIdentifier,
		Find: func(ctx context.Context, lookup Lookup, incoming publication.Representation) (*publication.Publication, error) {
			id, ok := incoming.InstitutionIdentifier()
			if !ok {
				return nil, nil
			}
			hits, err := lookup.FindByIdentifier(ctx, id)
			if err != nil {
				return nil, err
			}
			if len(hits) == 0 {
				return nil, nil
			}
			if len(hits) > 1 {
				logger.Warn().
					Str("identifier", id.String()).
					Int("hits", len(hits)).
					Str("chosen", hits[0].Identifier).
					Msg("institution identifier is not unique in store")
			}
			found := hits[0]
			return &found, nil
		},
	}
}

// ByDOI matches on the reference DOI.
func ByDOI(policy EqualityPolicy) Strategy {
	return Strategy{
		Source: SourceDOI,
		Find: func(ctx context.Context, lookup Lookup, incoming publication.Representation) (*publication.Publication, error) {
			doi := publication.NormalizeDOI(incoming.Publication.DOI())
			if doi == "" {
				return nil, nil
			}
			hits, err := lookup.FindByDOI(ctx, doi)
			if err != nil {
				return nil, err
			}
			return single(SourceDOI, doi, filter(policy, hits, incoming.Publication))
		},
	}
}

// ByISBN matches book-like records on any of their ISBNs. Candidates from
// all ISBNs are pooled before the ambiguity check.
func ByISBN(policy EqualityPolicy) Strategy {
	return Strategy{
		Source: SourceISBN,
		Find: func(ctx context.Context, lookup Lookup, incoming publication.Representation) (*publication.Publication, error) {
			isbns := publication.NormalizeISBNs(incoming.Publication.ISBNs())
			if len(isbns) == 0 {
				return nil, nil
			}
			var pooled []publication.Publication
			for _, isbn := range isbns {
				hits, err := lookup.FindByISBN(ctx, isbn)
				if err != nil {
					return nil, err
				}
				pooled = append(pooled, filter(policy, hits, incoming.Publication)...)
			}
			return single(SourceISBN, strings.Join(isbns, ","), pooled)
		},
	}
}

// ByTitleAndType matches on normalized main title and instance kind.
func ByTitleAndType(policy EqualityPolicy) Strategy {
	return Strategy{
		Source: SourceTitleAndType,
		Find: func(ctx context.Context, lookup Lookup, incoming publication.Representation) (*publication.Publication, error) {
			title := publication.NormalizeTitle(incoming.Publication.EntityDescription.MainTitle)
			kind := incoming.Publication.Kind()
			if title == "" || kind == "" {
				return nil, nil
			}
			hits, err := lookup.FindByTitleAndType(ctx, title, kind)
			if err != nil {
				return nil, err
			}
			return single(SourceTitleAndType, title+" ["+string(kind)+"]", filter(policy, hits, incoming.Publication))
		},
	}
}

// filter keeps the candidates the policy accepts.
func filter(policy EqualityPolicy, candidates []publication.Publication, incoming publication.Publication) []publication.Publication {
	var kept []publication.Publication
	for _, c := range candidates {
		if policy(c, incoming) {
			kept = append(kept, c)
		}
	}
	return kept
}

// single deduplicates candidates by identifier and returns the only one,
// nil when there are none, or an ambiguous-match error.
func single(source MergeSource, key string, candidates []publication.Publication) (*publication.Publication, error) {
	seen := make(map[string]bool)
	var distinct []publication.Publication
	for _, c := range candidates {
		if seen[c.Identifier] {
			continue
		}
		seen[c.Identifier] = true
		distinct = append(distinct, c)
	}

	switch len(distinct) {
	case 0:
		return nil, nil
	case 1:
		return &distinct[0], nil
	}

	ids := make([]string, len(distinct))
	for i, c := range distinct {
		ids[i] = c.Identifier
	}
	return nil, &AmbiguousMatchError{Source: source, Key: key, Candidates: ids}
}
