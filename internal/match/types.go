// Package match decides whether an incoming record already exists in the
// publication store.
package match

import (
	"context"

	"github.com/BIBSYSDEV/nva-publication-api-sub014/internal/publication"
)

// Lookup is the read-only search collaborator queried by the strategies.
// Implementations may return any number of raw candidates; uniqueness is
// never assumed.
type Lookup interface {
	FindByIdentifier(ctx context.Context, id publication.AdditionalIdentifier) ([]publication.Publication, error)
	FindByDOI(ctx context.Context, doi string) ([]publication.Publication, error)
	FindByISBN(ctx context.Context, isbn string) ([]publication.Publication, error)
	FindByTitleAndType(ctx context.Context, title string, kind publication.Kind) ([]publication.Publication, error)
}

// MergeSource records which strategy found the existing publication.
type MergeSource string

const (
	SourceInstitutionIdentifier MergeSource = "INSTITUTIONAL_IDENTIFIER"
	SourceDOI                   MergeSource = "DOI"
	SourceISBN                  MergeSource = "ISBN"
	SourceTitleAndType          MergeSource = "TITLE_AND_TYPE"
)

// PublicationForUpdate is a resolved match: the stored publication the
// incoming record should be merged into, and how it was found.
type PublicationForUpdate struct {
	Source   MergeSource             `json:"merge_source"`
	Existing publication.Publication `json:"existing"`
}
