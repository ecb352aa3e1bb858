package match

import (
	"errors"
	"fmt"
	"strings"
)

// ErrAmbiguousMatch is matched by every *AmbiguousMatchError.
var ErrAmbiguousMatch = errors.New("ambiguous match")

// AmbiguousMatchError reports that more than one stored publication passed
// the equality policy under a single strategy. It is a hard stop for the
// import item and needs a human to resolve it.
type AmbiguousMatchError struct {
	Source     MergeSource
	Key        string   // The DOI, ISBN or title that was searched
	Candidates []string // Identifiers of the surviving candidates
}

func (e *AmbiguousMatchError) Error() string {
	return fmt.Sprintf("ambiguous match by %s for %q: %d candidates (%s)",
		e.Source, e.Key, len(e.Candidates), strings.Join(e.Candidates, ", "))
}

// Is makes errors.Is(err, ErrAmbiguousMatch) true.
func (e *AmbiguousMatchError) Is(target error) bool {
	return target == ErrAmbiguousMatch
}

// IsAmbiguous returns true if err is or wraps an ambiguous match.
func IsAmbiguous(err error) bool {
	return errors.Is(err, ErrAmbiguousMatch)
}

// LookupError wraps a failure of the lookup collaborator with the strategy
// that was running, so the caller can retry from that strategy.
type LookupError struct {
	Source MergeSource
	Err    error
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("lookup by %s: %v", e.Source, e.Err)
}

func (e *LookupError) Unwrap() error {
	return e.Err
}
