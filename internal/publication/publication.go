// Package publication defines the canonical publication model shared by the
// resolver, the merge engine and the store.
package publication

// Status is the lifecycle state of a stored publication.
type Status string

const (
	StatusDraft     Status = "DRAFT"
	StatusPublished Status = "PUBLISHED"
	StatusDeleted   Status = "DELETED"
)

// Publication is the canonical entity held by the store.
type Publication struct {
	// Identity
	Identifier    string `json:"identifier"`
	Status        Status `json:"status,omitempty"`
	ResourceOwner string `json:"resource_owner,omitempty"`

	EntityDescription EntityDescription `json:"entity_description"`

	// Identifiers assigned by other systems (Cristin, Scopus, a repository handle...)
	AdditionalIdentifiers []AdditionalIdentifier `json:"additional_identifiers,omitempty"`

	AssociatedArtifacts []Artifact `json:"associated_artifacts,omitempty"`

	Handle   string   `json:"handle,omitempty"`
	Link     string   `json:"link,omitempty"`
	Subjects []string `json:"subjects,omitempty"`

	// Bookkeeping owned by the persistence layer.
	CreatedAt  string `json:"created_at,omitempty"`
	ModifiedAt string `json:"modified_at,omitempty"`
}

// EntityDescription holds the descriptive metadata of a publication.
type EntityDescription struct {
	MainTitle         string            `json:"main_title"`
	AlternativeTitles map[string]string `json:"alternative_titles,omitempty"` // language -> title
	Abstract          string            `json:"abstract,omitempty"`
	Description       string            `json:"description,omitempty"`
	Language          string            `json:"language,omitempty"`
	PublicationDate   PublicationDate   `json:"publication_date"`
	Contributors      []Contributor     `json:"contributors,omitempty"`
	Tags              []string          `json:"tags,omitempty"`
	NPIDiscipline     string            `json:"npi_discipline,omitempty"`
	Reference         Reference         `json:"reference"`
}

// PublicationDate is a possibly partial date. Fields are kept as strings
// because several sources deliver "2019" or "05" verbatim.
type PublicationDate struct {
	Year  string `json:"year,omitempty"`
	Month string `json:"month,omitempty"`
	Day   string `json:"day,omitempty"`
}

// IsZero reports whether no part of the date is known.
func (d PublicationDate) IsZero() bool {
	return d.Year == "" && d.Month == "" && d.Day == ""
}

// Contributor is a person credited on a publication.
type Contributor struct {
	Name        string `json:"name"`
	ORCID       string `json:"orcid,omitempty"` // without URL prefix
	Role        string `json:"role,omitempty"`  // Creator, Editor, Supervisor...
	Sequence    int    `json:"sequence,omitempty"`
	Affiliation string `json:"affiliation,omitempty"`
}

// AdditionalIdentifier is an identifier assigned by an external system.
// SourceName is the key: one value per source system.
type AdditionalIdentifier struct {
	SourceName string `json:"source_name"`
	Value      string `json:"value"`
}

// String renders the identifier as "source:value".
func (a AdditionalIdentifier) String() string {
	return a.SourceName + ":" + a.Value
}

// IdentifierFor returns the value of the additional identifier from source,
// or "" when the publication has none.
func (p Publication) IdentifierFor(source string) string {
	for _, id := range p.AdditionalIdentifiers {
		if id.SourceName == source {
			return id.Value
		}
	}
	return ""
}

// Kind returns the instance kind of the publication, or "" when the
// reference carries no instance.
func (p Publication) Kind() Kind {
	if p.EntityDescription.Reference.Instance == nil {
		return ""
	}
	return p.EntityDescription.Reference.Instance.Kind()
}

// DOI returns the reference DOI.
func (p Publication) DOI() string {
	return p.EntityDescription.Reference.DOI
}

// ISBNs returns the ISBNs of a book-like context, or nil.
func (p Publication) ISBNs() []string {
	if bl, ok := p.EntityDescription.Reference.Context.(BookLike); ok {
		return bl.ISBNList()
	}
	return nil
}

// Representation is an incoming candidate record together with the
// system it was imported from. It is created once per import item.
type Representation struct {
	Source      string      `json:"source"`
	Publication Publication `json:"publication"`
}

// InstitutionIdentifier returns the identifier the source institution
// assigned to the record, i.e. the additional identifier keyed by Source.
func (r Representation) InstitutionIdentifier() (AdditionalIdentifier, bool) {
	if r.Source == "" {
		return AdditionalIdentifier{}, false
	}
	value := r.Publication.IdentifierFor(r.Source)
	if value == "" {
		return AdditionalIdentifier{}, false
	}
	return AdditionalIdentifier{SourceName: r.Source, Value: value}, true
}
