// Package ingest runs import items through resolution and merge and writes
// the result to the store. Every item ends in exactly one Outcome.
package ingest

import (
	"context"
	"errors"

	"github.com/BIBSYSDEV/nva-publication-api-sub014/internal/match"
	"github.com/BIBSYSDEV/nva-publication-api-sub014/internal/merge"
	"github.com/BIBSYSDEV/nva-publication-api-sub014/internal/publication"
	"github.com/BIBSYSDEV/nva-publication-api-sub014/internal/typemap"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// Item is one incoming record ready for ingest.
type Item struct {
	Ref            string // Where the record came from, e.g. "records.jsonl:12"
	Representation publication.Representation
	Mapping        typemap.Result
}

// Resolver finds the stored publication an incoming record belongs to.
type Resolver interface {
	Resolve(ctx context.Context, incoming publication.Representation) (*match.PublicationForUpdate, error)
}

// Writer persists created and merged publications.
type Writer interface {
	Create(ctx context.Context, pub publication.Publication) (publication.Publication, error)
	Update(ctx context.Context, pub publication.Publication) (publication.Publication, error)
}

// Pipeline processes items. It holds no per-item state and may be shared
// between goroutines when Resolver and Writer are.
type Pipeline struct {
	Resolver Resolver
	Writer   Writer
	Logger   zerolog.Logger

	// DryRun resolves and merges but never calls Writer.
	DryRun bool
}

// Process resolves one item and creates or merges it.
func (p *Pipeline) Process(ctx context.Context, item Item) Outcome {
	log := p.Logger.With().Str("item", item.Ref).Logger()
	out := Outcome{Ref: item.Ref, TypeStatus: item.Mapping.Status.String()}

	if !item.Mapping.Mapped() {
		log.Warn().Strs("tags", item.Mapping.DroppedTags).Msg("unmappable type, flagged for review")
		return out.flag(ReasonUnmappableType, nil)
	}

	found, err := p.Resolver.Resolve(ctx, item.Representation)
	if err != nil {
		var amb *match.AmbiguousMatchError
		if errors.As(err, &amb) {
			out.MergeSource = amb.Source
			out.Candidates = amb.Candidates
			return out.flag(ReasonAmbiguousMatch, err)
		}
		log.Error().Err(err).Msg("resolving existing publication")
		return out.fail(err)
	}

	if found == nil {
		return p.create(ctx, log, out, item.Representation.Publication)
	}
	return p.merge(ctx, log, out, found, item.Representation.Publication)
}

func (p *Pipeline) create(ctx context.Context, log zerolog.Logger, out Outcome, incoming publication.Publication) Outcome {
	out.State = StateCreated
	if p.DryRun {
		return out
	}

	created, err := p.Writer.Create(ctx, incoming)
	if err != nil {
		log.Error().Err(err).Msg("creating publication")
		return out.fail(err)
	}
	out.PublicationID = created.Identifier
	log.Info().Str("publication", created.Identifier).Msg("created publication")
	return out
}

func (p *Pipeline) merge(ctx context.Context, log zerolog.Logger, out Outcome, found *match.PublicationForUpdate, incoming publication.Publication) Outcome {
	merged, report := merge.Publications(found.Existing, incoming)

	out.State = StateMerged
	out.MergeSource = found.Source
	out.PublicationID = found.Existing.Identifier
	out.Merge = &report

	if report.Instance == merge.InstanceKindMismatch || report.ContextMismatch {
		log.Warn().
			Str("publication", out.PublicationID).
			Str("instance", string(report.Instance)).
			Bool("context_mismatch", report.ContextMismatch).
			Msg("variant differs from stored publication, kept stored variant")
	}

	if p.DryRun {
		return out
	}

	if _, err := p.Writer.Update(ctx, merged); err != nil {
		log.Error().Err(err).Str("publication", out.PublicationID).Msg("updating publication")
		return out.fail(err)
	}
	log.Info().
		Str("publication", out.PublicationID).
		Str("merge_source", string(found.Source)).
		Msg("merged into existing publication")
	return out
}

// ProcessAll processes items with at most workers in flight and returns
// outcomes in input order. With more than one worker, two new records for
// the same work in one batch may both be created.
func (p *Pipeline) ProcessAll(ctx context.Context, items []Item, workers int) []Outcome {
	outcomes := make([]Outcome, len(items))
	if workers < 1 {
		workers = 1
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := range items {
		g.Go(func() error {
			outcomes[i] = p.Process(gctx, items[i])
			return nil
		})
	}
	g.Wait() // Process reports failures in the outcome, never as an error

	return outcomes
}
