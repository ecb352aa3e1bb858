package merge

import (
	"github.com/BIBSYSDEV/nva-publication-api-sub014/internal/publication"
)

func bookFields(e, i publication.BookFields) publication.BookFields {
	return publication.BookFields{
		Series:       preferNonEmpty(e.Series, i.Series),
		SeriesNumber: preferNonEmpty(e.SeriesNumber, i.SeriesNumber),
		Publisher:    preferNonEmpty(e.Publisher, i.Publisher),
		ISBNs:        unionISBNs(e.ISBNs, i.ISBNs),
	}
}

// Context merges publication contexts of the same variant field by field.
// A context of another variant leaves existing unchanged; the second return
// value is false in that case.
func Context(existing, incoming publication.Context) (publication.Context, bool) {
	if existing == nil {
		return incoming, true
	}
	if incoming == nil {
		return existing, true
	}

	switch e := existing.(type) {
	case *publication.Book:
		if i, ok := incoming.(*publication.Book); ok {
			return &publication.Book{
				BookFields: bookFields(e.BookFields, i.BookFields),
				Revision:   preferNonEmpty(e.Revision, i.Revision),
			}, true
		}
	case *publication.Report:
		if i, ok := incoming.(*publication.Report); ok {
			return &publication.Report{BookFields: bookFields(e.BookFields, i.BookFields)}, true
		}
	case *publication.Degree:
		if i, ok := incoming.(*publication.Degree); ok {
			return &publication.Degree{
				BookFields: bookFields(e.BookFields, i.BookFields),
				Course:     preferNonEmpty(e.Course, i.Course),
			}, true
		}
	case *publication.Journal:
		if i, ok := incoming.(*publication.Journal); ok {
			return &publication.Journal{
				Title:      preferNonEmpty(e.Title, i.Title),
				PrintISSN:  preferNonEmpty(e.PrintISSN, i.PrintISSN),
				OnlineISSN: preferNonEmpty(e.OnlineISSN, i.OnlineISSN),
			}, true
		}
	case *publication.Anthology:
		if i, ok := incoming.(*publication.Anthology); ok {
			return &publication.Anthology{ParentID: preferNonEmpty(e.ParentID, i.ParentID)}, true
		}
	case *publication.Event:
		if i, ok := incoming.(*publication.Event); ok {
			return &publication.Event{
				Label: preferNonEmpty(e.Label, i.Label),
				Place: preferNonEmpty(e.Place, i.Place),
			}, true
		}
	}
	return existing, false
}
