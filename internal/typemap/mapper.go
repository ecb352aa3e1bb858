package typemap

import (
	"strings"

	"github.com/rs/zerolog"
)

// Status describes how a mapping was obtained.
type Status int

const (
	// Unmappable means no tag could be mapped. Callers route the record to
	// manual triage instead of failing the batch.
	Unmappable Status = iota
	// Exact means the full tag set was found in the table.
	Exact
	// Degraded means the tag set as a whole was unknown and a single
	// individually mappable tag was used instead; the other tags were dropped.
	Degraded
)

func (s Status) String() string {
	switch s {
	case Exact:
		return "exact"
	case Degraded:
		return "degraded"
	default:
		return "unmappable"
	}
}

// Result is the outcome of mapping a tag set.
type Result struct {
	Type        Type     `json:"type,omitempty"`
	Status      Status   `json:"-"`
	UsedTags    []string `json:"used_tags,omitempty"`
	DroppedTags []string `json:"dropped_tags,omitempty"`
}

// Mapped reports whether the result carries a canonical type.
func (r Result) Mapped() bool {
	return r.Status != Unmappable
}

// Mapper translates source type tags into a canonical type. A Mapper is
// read-only after construction and safe for concurrent use.
type Mapper struct {
	table  Table
	logger zerolog.Logger
}

// Option configures a Mapper.
type Option func(*Mapper)

// WithLogger sets the logger used to report degraded mappings.
func WithLogger(l zerolog.Logger) Option {
	return func(m *Mapper) {
		m.logger = l
	}
}

// WithTable replaces the default table.
func WithTable(t Table) Option {
	return func(m *Mapper) {
		m.table = t
	}
}

// NewMapper creates a Mapper over the default table unless WithTable is given.
func NewMapper(opts ...Option) *Mapper {
	m := &Mapper{
		table:  DefaultTable(),
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// TableVersion returns the version of the loaded table.
func (m *Mapper) TableVersion() string {
	return m.table.Version
}

// IsIndividuallyMappable reports whether tag maps to a canonical type on its own.
func (m *Mapper) IsIndividuallyMappable(tag string) bool {
	_, ok := m.table.Individual[normalizeTag(tag)]
	return ok
}

// Target returns the instance kind and context for a canonical type.
func (m *Mapper) Target(t Type) (Target, bool) {
	target, ok := m.table.Targets[t]
	return target, ok
}

// Map translates tags into exactly one canonical type.
//
// The full tag set is looked up first, so qualifier combinations such as
// "Book" + "Peer reviewed" win over the single-tag mapping of "Book". If
// the set has two or more tags and is not in the table, the first
// individually mappable tag in input order is used and the result is
// marked Degraded. Any further mappable tags are dropped as well.
func (m *Mapper) Map(tags []string) Result {
	tags = uniqueTags(tags)
	if len(tags) == 0 {
		return Result{Status: Unmappable}
	}

	key := Key(tags)
	if len(tags) >= 2 && !containsSeparator(tags) {
		if t, ok := m.table.Combinations[key]; ok {
			return Result{Type: t, Status: Exact, UsedTags: tags}
		}
	}
	if len(tags) == 1 {
		if t, ok := m.table.Individual[key]; ok {
			return Result{Type: t, Status: Exact, UsedTags: tags}
		}
		return Result{Status: Unmappable, DroppedTags: tags}
	}

	for i, tag := range tags {
		t, ok := m.table.Individual[normalizeTag(tag)]
		if !ok {
			continue
		}
		dropped := make([]string, 0, len(tags)-1)
		dropped = append(dropped, tags[:i]...)
		dropped = append(dropped, tags[i+1:]...)

		var alsoMappable []string
		for _, d := range dropped {
			if m.IsIndividuallyMappable(d) {
				alsoMappable = append(alsoMappable, d)
			}
		}
		m.logger.Warn().
			Strs("tags", tags).
			Str("used_tag", tag).
			Strs("dropped_tags", dropped).
			Strs("dropped_mappable_tags", alsoMappable).
			Str("type", string(t)).
			Msg("degraded type mapping")

		return Result{Type: t, Status: Degraded, UsedTags: []string{tag}, DroppedTags: dropped}
	}

	return Result{Status: Unmappable, DroppedTags: tags}
}

// uniqueTags drops blank and repeated tags, keeping first occurrences in order.
func uniqueTags(tags []string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, t := range tags {
		n := normalizeTag(t)
		if n == "" || seen[n] {
			continue
		}
		seen[n] = true
		out = append(out, t)
	}
	return out
}

// containsSeparator reports whether any tag contains the key separator. Such
// a set cannot be told apart from a different set by its key.
func containsSeparator(tags []string) bool {
	for _, t := range tags {
		if strings.Contains(t, keySeparator) {
			return true
		}
	}
	return false
}
