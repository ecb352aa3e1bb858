package publication

// ContextType tags a publication context variant.
type ContextType string

const (
	ContextBook      ContextType = "Book"
	ContextReport    ContextType = "Report"
	ContextDegree    ContextType = "Degree"
	ContextJournal   ContextType = "Journal"
	ContextAnthology ContextType = "Anthology"
	ContextEvent     ContextType = "Event"
)

// Context is where a publication appeared: a book, a journal, an anthology...
type Context interface {
	ContextType() ContextType
	isContext()
}

// BookLike is implemented by contexts that carry ISBNs.
type BookLike interface {
	Context
	ISBNList() []string
}

// BookFields is shared by the book-like contexts.
type BookFields struct {
	Series       string   `json:"series,omitempty"`
	SeriesNumber string   `json:"series_number,omitempty"`
	Publisher    string   `json:"publisher,omitempty"`
	ISBNs        []string `json:"isbns,omitempty"`
}

func (BookFields) isContext() {}

// ISBNList returns the ISBNs of the context.
func (b BookFields) ISBNList() []string { return b.ISBNs }

// Book is a monograph or anthology published as a book.
type Book struct {
	BookFields
	Revision string `json:"revision,omitempty"` // Monograph, Revised...
}

// Report is a report series publication.
type Report struct {
	BookFields
}

// Degree is a thesis or other student work.
type Degree struct {
	BookFields
	Course string `json:"course,omitempty"`
}

// Journal is a periodical.
type Journal struct {
	Title      string `json:"title,omitempty"`
	PrintISSN  string `json:"print_issn,omitempty"`
	OnlineISSN string `json:"online_issn,omitempty"`
}

func (Journal) isContext() {}

// Anthology is the parent publication of a chapter.
type Anthology struct {
	ParentID string `json:"parent_id,omitempty"`
}

func (Anthology) isContext() {}

// Event is a conference or other event where a work was presented.
type Event struct {
	Label string `json:"label,omitempty"`
	Place string `json:"place,omitempty"`
}

func (Event) isContext() {}

func (*Book) ContextType() ContextType      { return ContextBook }
func (*Report) ContextType() ContextType    { return ContextReport }
func (*Degree) ContextType() ContextType    { return ContextDegree }
func (*Journal) ContextType() ContextType   { return ContextJournal }
func (*Anthology) ContextType() ContextType { return ContextAnthology }
func (*Event) ContextType() ContextType     { return ContextEvent }

// NewContext returns the empty context variant for t.
func NewContext(t ContextType) (Context, bool) {
	switch t {
	case ContextBook:
		return &Book{}, true
	case ContextReport:
		return &Report{}, true
	case ContextDegree:
		return &Degree{}, true
	case ContextJournal:
		return &Journal{}, true
	case ContextAnthology:
		return &Anthology{}, true
	case ContextEvent:
		return &Event{}, true
	}
	return nil, false
}
