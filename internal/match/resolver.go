package match

import (
	"context"
	"fmt"

	"github.com/BIBSYSDEV/nva-publication-api-sub014/internal/publication"
	"github.com/rs/zerolog"
)

// Resolver runs the strategy chain against a lookup collaborator. It holds
// no mutable state and may be shared between goroutines.
type Resolver struct {
	lookup     Lookup
	strategies []Strategy
	logger     zerolog.Logger
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithStrategies replaces the default chain.
func WithStrategies(s ...Strategy) Option {
	return func(r *Resolver) {
		r.strategies = s
	}
}

// WithLogger sets the logger used by the resolver and the default chain.
func WithLogger(l zerolog.Logger) Option {
	return func(r *Resolver) {
		r.logger = l
	}
}

// NewResolver creates a Resolver with the default chain and SameWork policy.
func NewResolver(lookup Lookup, opts ...Option) *Resolver {
	r := &Resolver{
		lookup: lookup,
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.strategies == nil {
		r.strategies = DefaultStrategies(SameWork, r.logger)
	}
	return r
}

// Resolve returns the stored publication that incoming should be merged
// into, or nil when every strategy reports no match and the record is new.
//
// Strategies run in priority order. The first match or ambiguous-match
// error ends the chain. A lookup failure also ends it and is returned as a
// *LookupError; it is never treated as "no match".
func (r *Resolver) Resolve(ctx context.Context, incoming publication.Representation) (*PublicationForUpdate, error) {
	return r.resolve(ctx, incoming, 0)
}

// ResolveFrom runs the chain starting at the strategy for source, skipping
// higher-priority strategies. Callers use it to retry after a LookupError.
func (r *Resolver) ResolveFrom(ctx context.Context, incoming publication.Representation, source MergeSource) (*PublicationForUpdate, error) {
	for i, s := range r.strategies {
		if s.Source == source {
			return r.resolve(ctx, incoming, i)
		}
	}
	return nil, fmt.Errorf("no strategy for merge source %s", source)
}

func (r *Resolver) resolve(ctx context.Context, incoming publication.Representation, start int) (*PublicationForUpdate, error) {
	for _, s := range r.strategies[start:] {
		found, err := s.Find(ctx, r.lookup, incoming)
		if err != nil {
			if IsAmbiguous(err) {
				r.logger.Warn().Err(err).Str("strategy", string(s.Source)).Msg("ambiguous match")
				return nil, err
			}
			return nil, &LookupError{Source: s.Source, Err: err}
		}
		if found != nil {
			r.logger.Debug().
				Str("strategy", string(s.Source)).
				Str("existing", found.Identifier).
				Msg("matched existing publication")
			return &PublicationForUpdate{Source: s.Source, Existing: *found}, nil
		}
	}
	return nil, nil
}
