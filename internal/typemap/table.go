// Package typemap maps source-specific type tags to canonical publication types.
package typemap

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/BIBSYSDEV/nva-publication-api-sub014/internal/publication"
	"gopkg.in/yaml.v3"
)

// Type is a canonical publication type.
type Type string

const (
	Book                Type = "Book"
	ScientificMonograph Type = "Scientific Monograph"
	Textbook            Type = "Textbook"
	Chapter             Type = "Chapter"
	ScientificChapter   Type = "Scientific Chapter"
	JournalArticle      Type = "Journal Article"
	ScientificArticle   Type = "Scientific Article"
	FeatureArticle      Type = "Feature Article"
	Chronicle           Type = "Chronicle"
	Report              Type = "Report"
	ResearchReport      Type = "Research Report"
	WorkingPaper        Type = "Working Paper"
	ConferenceReport    Type = "Conference Report"
	ConferencePoster    Type = "Conference Poster"
	Lecture             Type = "Lecture"
	BachelorThesis      Type = "Bachelor Thesis"
	MasterThesis        Type = "Master Thesis"
	DoctoralThesis      Type = "Doctoral Thesis"
	LicentiateThesis    Type = "Licentiate Thesis"
	StudentPaper        Type = "Student Paper"
	Dataset             Type = "Dataset"
)

// Target is the instance kind and context variant a canonical type produces.
type Target struct {
	Kind    publication.Kind        `yaml:"kind"`
	Context publication.ContextType `yaml:"context"`
}

// Table is the static mapping configuration. Keys of Combinations are
// canonical tag-set keys (see Key); keys of Individual are normalized tags.
type Table struct {
	Version      string
	Combinations map[string]Type
	Individual   map[string]Type
	Targets      map[Type]Target
}

// keySeparator joins sorted tags into a tag-set key.
const keySeparator = "|"

// normalizeTag trims and lowercases a tag.
func normalizeTag(tag string) string {
	return strings.ToLower(strings.TrimSpace(tag))
}

// Key returns the order-independent key for a set of tags.
func Key(tags []string) string {
	seen := make(map[string]bool)
	var norm []string
	for _, t := range tags {
		n := normalizeTag(t)
		if n == "" || seen[n] {
			continue
		}
		seen[n] = true
		norm = append(norm, n)
	}
	sort.Strings(norm)
	return strings.Join(norm, keySeparator)
}

// DefaultTable returns the built-in mapping for institutional repository
// type vocabularies.
func DefaultTable() Table {
	return Table{
		Version: "2024.1",
		Combinations: map[string]Type{
			Key([]string{"Book", "Peer reviewed"}):            ScientificMonograph,
			Key([]string{"Chapter", "Peer reviewed"}):         ScientificChapter,
			Key([]string{"Journal article", "Peer reviewed"}): ScientificArticle,
		},
		Individual: map[string]Type{
			"book":              Book,
			"textbook":          Textbook,
			"chapter":           Chapter,
			"journal article":   JournalArticle,
			"feature article":   FeatureArticle,
			"chronicle":         Chronicle,
			"report":            Report,
			"research report":   ResearchReport,
			"working paper":     WorkingPaper,
			"conference object": ConferenceReport,
			"poster":            ConferencePoster,
			"lecture":           Lecture,
			"bachelor thesis":   BachelorThesis,
			"master thesis":     MasterThesis,
			"doctoral thesis":   DoctoralThesis,
			"licentiate thesis": LicentiateThesis,
			"student paper":     StudentPaper,
			"dataset":           Dataset,
		},
		Targets: map[Type]Target{
			Book:                {publication.KindNonFictionMonograph, publication.ContextBook},
			ScientificMonograph: {publication.KindAcademicMonograph, publication.ContextBook},
			Textbook:            {publication.KindTextbook, publication.ContextBook},
			Chapter:             {publication.KindNonFictionChapter, publication.ContextAnthology},
			ScientificChapter:   {publication.KindAcademicChapter, publication.ContextAnthology},
			JournalArticle:      {publication.KindProfessionalArticle, publication.ContextJournal},
			ScientificArticle:   {publication.KindAcademicArticle, publication.ContextJournal},
			FeatureArticle:      {publication.KindPopularScienceArticle, publication.ContextJournal},
			Chronicle:           {publication.KindJournalLeader, publication.ContextJournal},
			Report:              {publication.KindReportBasic, publication.ContextReport},
			ResearchReport:      {publication.KindReportResearch, publication.ContextReport},
			WorkingPaper:        {publication.KindReportWorkingPaper, publication.ContextReport},
			ConferenceReport:    {publication.KindConferenceReport, publication.ContextEvent},
			ConferencePoster:    {publication.KindConferencePoster, publication.ContextEvent},
			Lecture:             {publication.KindLecture, publication.ContextEvent},
			BachelorThesis:      {publication.KindDegreeBachelor, publication.ContextDegree},
			MasterThesis:        {publication.KindDegreeMaster, publication.ContextDegree},
			DoctoralThesis:      {publication.KindDegreePhd, publication.ContextDegree},
			LicentiateThesis:    {publication.KindDegreeLicentiate, publication.ContextDegree},
			StudentPaper:        {publication.KindOtherStudentWork, publication.ContextDegree},
			Dataset:             {publication.KindDataSet, publication.ContextReport},
		},
	}
}

// tableFile is the YAML layout of a mapping override file.
type tableFile struct {
	Version      string `yaml:"version"`
	Combinations []struct {
		Tags []string `yaml:"tags"`
		Type Type     `yaml:"type"`
	} `yaml:"combinations"`
	Individual map[string]Type `yaml:"individual"`
	Targets    map[Type]Target `yaml:"targets"`
}

// LoadTable reads a YAML table from path and layers it over the default
// table. Entries in the file replace built-in entries with the same key.
func LoadTable(path string) (Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Table{}, fmt.Errorf("reading type table: %w", err)
	}
	return ParseTable(data)
}

// ParseTable parses YAML table data layered over the default table.
func ParseTable(data []byte) (Table, error) {
	var f tableFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return Table{}, fmt.Errorf("parsing type table: %w", err)
	}

	t := DefaultTable()
	if f.Version != "" {
		t.Version = f.Version
	}
	for i, c := range f.Combinations {
		if len(c.Tags) < 2 {
			return Table{}, fmt.Errorf("combination %d: needs at least two tags", i+1)
		}
		t.Combinations[Key(c.Tags)] = c.Type
	}
	for tag, typ := range f.Individual {
		t.Individual[normalizeTag(tag)] = typ
	}
	for typ, target := range f.Targets {
		t.Targets[typ] = target
	}

	if err := t.Validate(); err != nil {
		return Table{}, err
	}
	return t, nil
}

// Validate checks that every canonical type in the table has a target with
// a known instance kind.
func (t Table) Validate() error {
	check := func(typ Type) error {
		target, ok := t.Targets[typ]
		if !ok {
			return fmt.Errorf("canonical type %q has no target", typ)
		}
		if !publication.IsKnownKind(target.Kind) {
			return fmt.Errorf("canonical type %q targets unknown kind %q", typ, target.Kind)
		}
		if _, ok := publication.NewContext(target.Context); !ok {
			return fmt.Errorf("canonical type %q targets unknown context %q", typ, target.Context)
		}
		return nil
	}
	for _, typ := range t.Combinations {
		if err := check(typ); err != nil {
			return err
		}
	}
	for _, typ := range t.Individual {
		if err := check(typ); err != nil {
			return err
		}
	}
	return nil
}
