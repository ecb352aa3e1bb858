package importer

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/BIBSYSDEV/nva-publication-api-sub014/internal/ingest"
	"github.com/BIBSYSDEV/nva-publication-api-sub014/internal/publication"
	"github.com/BIBSYSDEV/nva-publication-api-sub014/internal/storage"
	"github.com/BIBSYSDEV/nva-publication-api-sub014/internal/typemap"
	"github.com/rs/zerolog"
)

// ParseError reports a record that could not be turned into an item.
type ParseError struct {
	Line int
	Ref  string // source:source_id when known
	Err  error
}

func (e *ParseError) Error() string {
	if e.Ref != "" {
		return fmt.Sprintf("line %d (%s): %v", e.Line, e.Ref, e.Err)
	}
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// DOIProber reads a DOI from a local file artifact.
type DOIProber interface {
	ProbeDOI(relativePath string) (string, error)
}

// Importer converts export records using a type mapper.
type Importer struct {
	mapper        *typemap.Mapper
	prober        DOIProber
	logger        zerolog.Logger
	defaultSource string
}

// Option configures an Importer.
type Option func(*Importer)

// WithProber enables DOI probing of PDF artifacts for records without a DOI.
func WithProber(p DOIProber) Option {
	return func(im *Importer) {
		im.prober = p
	}
}

// WithLogger sets the importer logger.
func WithLogger(l zerolog.Logger) Option {
	return func(im *Importer) {
		im.logger = l
	}
}

// WithDefaultSource sets the source used for records that do not name one.
func WithDefaultSource(source string) Option {
	return func(im *Importer) {
		im.defaultSource = source
	}
}

// New creates an Importer.
func New(mapper *typemap.Mapper, opts ...Option) *Importer {
	im := &Importer{mapper: mapper, logger: zerolog.Nop()}
	for _, opt := range opts {
		opt(im)
	}
	return im
}

// Parse reads a JSONL export. Records that cannot be parsed are returned as
// *ParseError and skipped; records with an unmappable type are returned as
// items and left to the pipeline to flag.
func (im *Importer) Parse(name string, r io.Reader) ([]ingest.Item, []error) {
	var items []ingest.Item
	var errs []error

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), storage.MaxJSONLLineCapacity)

	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Bytes()
		if len(strings.TrimSpace(string(line))) == 0 {
			continue
		}

		var rec Record
		if err := json.Unmarshal(line, &rec); err != nil {
			errs = append(errs, &ParseError{Line: lineNum, Err: err})
			continue
		}

		rep, mapping, err := im.Convert(rec)
		if err != nil {
			errs = append(errs, &ParseError{Line: lineNum, Ref: recordRef(rec), Err: err})
			continue
		}
		items = append(items, ingest.Item{
			Ref:            fmt.Sprintf("%s:%d", name, lineNum),
			Representation: rep,
			Mapping:        mapping,
		})
	}

	if err := scanner.Err(); err != nil {
		errs = append(errs, fmt.Errorf("reading %s: %w", name, err))
	}

	return items, errs
}

func recordRef(rec Record) string {
	if rec.SourceID == "" {
		return ""
	}
	return rec.Source + ":" + rec.SourceID
}

// Convert maps one record to a representation. An unmappable type is not
// an error: the representation carries no instance and the mapping result
// says why.
func (im *Importer) Convert(rec Record) (publication.Representation, typemap.Result, error) {
	if strings.TrimSpace(rec.Title) == "" {
		return publication.Representation{}, typemap.Result{}, fmt.Errorf("missing required field 'title'")
	}
	if !validDatePart(rec.Year.String(), 1000, 9999) {
		return publication.Representation{}, typemap.Result{}, fmt.Errorf("invalid year: %s", rec.Year)
	}

	source := rec.Source
	if source == "" {
		source = im.defaultSource
	}

	date := publication.PublicationDate{Year: rec.Year.String()}
	if validDatePart(rec.Month.String(), 1, 12) {
		date.Month = rec.Month.String()
	}
	if validDatePart(rec.Day.String(), 1, 31) {
		date.Day = rec.Day.String()
	}

	pub := publication.Publication{
		EntityDescription: publication.EntityDescription{
			MainTitle:         strings.TrimSpace(rec.Title),
			AlternativeTitles: rec.AlternativeTitles,
			Abstract:          rec.Abstract,
			Language:          rec.Language,
			PublicationDate:   date,
			Tags:              rec.Tags,
		},
		AdditionalIdentifiers: identifiers(source, rec),
		AssociatedArtifacts:   artifacts(rec),
	}
	for i, c := range rec.Contributors {
		pub.EntityDescription.Contributors = append(pub.EntityDescription.Contributors, publication.Contributor{
			Name:        c.Name,
			ORCID:       c.ORCID,
			Role:        c.Role,
			Sequence:    i + 1,
			Affiliation: c.Affiliation,
		})
	}

	doi := rec.DOI
	if doi == "" {
		doi = im.probeDOI(pub.AssociatedArtifacts)
	}
	pub.EntityDescription.Reference.DOI = doi

	mapping := im.mapper.Map(rec.Types)
	if mapping.Mapped() {
		target, ok := im.mapper.Target(mapping.Type)
		if !ok {
			mapping = typemap.Result{Status: typemap.Unmappable, DroppedTags: rec.Types}
		} else {
			pub.EntityDescription.Reference.Context = buildContext(target.Context, rec)
			pub.EntityDescription.Reference.Instance = buildInstance(target.Kind, rec)
		}
	}

	return publication.Representation{Source: source, Publication: pub}, mapping, nil
}

// identifiers puts the institution's own identifier first, then the
// other identifiers sorted by source.
func identifiers(source string, rec Record) []publication.AdditionalIdentifier {
	var out []publication.AdditionalIdentifier
	if source != "" && rec.SourceID != "" {
		out = append(out, publication.AdditionalIdentifier{SourceName: source, Value: rec.SourceID})
	}

	names := make([]string, 0, len(rec.Identifiers))
	for name := range rec.Identifiers {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		value := strings.TrimSpace(rec.Identifiers[name])
		if value == "" || (name == source && rec.SourceID != "") {
			continue
		}
		out = append(out, publication.AdditionalIdentifier{SourceName: name, Value: value})
	}
	return out
}

func artifacts(rec Record) []publication.Artifact {
	var out []publication.Artifact
	for _, f := range rec.Files {
		a := publication.Artifact{
			Identifier: f.ID,
			Name:       f.Name,
			MimeType:   f.MimeType,
			Size:       f.Size,
			License:    f.License,
			URL:        f.URL,
			LocalPath:  f.Path,
		}
		switch {
		case f.Path == "" && f.Name == "" && f.URL != "":
			a.Type = publication.ArtifactLink
		case f.Published:
			a.Type = publication.ArtifactPublishedFile
		default:
			a.Type = publication.ArtifactPendingFile
		}
		out = append(out, a)
	}
	return out
}

// probeDOI returns the first DOI found in a local PDF artifact. Probe
// failures are logged and skipped.
func (im *Importer) probeDOI(arts []publication.Artifact) string {
	if im.prober == nil {
		return ""
	}
	for _, a := range arts {
		if a.LocalPath == "" || !strings.HasSuffix(strings.ToLower(a.LocalPath), ".pdf") {
			continue
		}
		doi, err := im.prober.ProbeDOI(a.LocalPath)
		if err != nil {
			im.logger.Debug().Err(err).Str("path", a.LocalPath).Msg("probing DOI")
			continue
		}
		if doi != "" {
			im.logger.Info().Str("path", a.LocalPath).Str("doi", doi).Msg("DOI read from PDF")
			return doi
		}
	}
	return ""
}

func buildContext(t publication.ContextType, rec Record) publication.Context {
	ctx, ok := publication.NewContext(t)
	if !ok {
		return nil
	}
	books := publication.BookFields{
		Series:    rec.Series,
		Publisher: rec.Publisher,
		ISBNs:     rec.ISBN,
	}
	switch c := ctx.(type) {
	case *publication.Book:
		c.BookFields = books
	case *publication.Report:
		c.BookFields = books
	case *publication.Degree:
		c.BookFields = books
	case *publication.Journal:
		c.Title = rec.Journal
		c.PrintISSN = rec.ISSN
	case *publication.Event:
		c.Label = rec.Event
		c.Place = rec.Place
	}
	return ctx
}

func buildInstance(kind publication.Kind, rec Record) publication.Instance {
	inst, ok := publication.NewInstance(kind)
	if !ok {
		return nil
	}
	pages := publication.PageRange{
		Begin: publication.Str(rec.Pages.Begin.String()),
		End:   publication.Str(rec.Pages.End.String()),
	}

	switch s := inst.(type) {
	case publication.JournalShaped:
		f := s.Journal()
		f.Volume = publication.Str(rec.Volume.String())
		f.Issue = publication.Str(rec.Issue.String())
		f.ArticleNumber = publication.Str(rec.ArticleNumber.String())
		f.Pages = pages
	case publication.MonographShaped:
		s.Monograph().Pages = publication.Str(rec.PageCount.String())
	case publication.RangeShaped:
		s.Range().Pages = pages
	case publication.DegreeShaped:
		f := s.Degree()
		f.Pages = pages
		f.SubmittedDate = publication.Str(rec.Submitted)
	}
	return inst
}
