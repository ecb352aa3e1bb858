package merge

import (
	"github.com/BIBSYSDEV/nva-publication-api-sub014/internal/publication"
)

// Report describes the parts of a merge that did not apply cleanly. A
// mismatch is not an error: the rest of the record is still merged.
type Report struct {
	Instance        InstanceOutcome `json:"instance"`
	ContextMismatch bool            `json:"context_mismatch,omitempty"`
}

// Publications merges incoming into existing and returns the publication to
// write back. Identity and bookkeeping fields always come from existing.
// Every other field takes the incoming value only when it is non-empty.
// Merge performs no I/O and does not modify its arguments.
func Publications(existing, incoming publication.Publication) (publication.Publication, Report) {
	var report Report

	merged := publication.Publication{
		Identifier:    existing.Identifier,
		Status:        existing.Status,
		ResourceOwner: existing.ResourceOwner,
		CreatedAt:     existing.CreatedAt,
		ModifiedAt:    existing.ModifiedAt,

		Handle:   preferNonEmpty(existing.Handle, incoming.Handle),
		Link:     preferNonEmpty(existing.Link, incoming.Link),
		Subjects: unionStrings(existing.Subjects, incoming.Subjects),

		AdditionalIdentifiers: mergeIdentifiers(existing.AdditionalIdentifiers, incoming.AdditionalIdentifiers),
		AssociatedArtifacts:   mergeArtifacts(existing.AssociatedArtifacts, incoming.AssociatedArtifacts),
	}

	e, i := existing.EntityDescription, incoming.EntityDescription
	merged.EntityDescription = publication.EntityDescription{
		MainTitle:         preferNonEmpty(e.MainTitle, i.MainTitle),
		AlternativeTitles: mergeTitles(e.AlternativeTitles, i.AlternativeTitles),
		Abstract:          preferNonEmpty(e.Abstract, i.Abstract),
		Description:       preferNonEmpty(e.Description, i.Description),
		Language:          preferNonEmpty(e.Language, i.Language),
		PublicationDate:   mergeDate(e.PublicationDate, i.PublicationDate),
		Contributors:      mergeContributors(e.Contributors, i.Contributors),
		Tags:              unionStrings(e.Tags, i.Tags),
		NPIDiscipline:     preferNonEmpty(e.NPIDiscipline, i.NPIDiscipline),
	}

	ref := publication.Reference{DOI: preferNonEmpty(e.Reference.DOI, i.Reference.DOI)}
	var ok bool
	if ref.Context, ok = Context(e.Reference.Context, i.Reference.Context); !ok {
		report.ContextMismatch = true
	}
	ref.Instance, report.Instance = Instance(e.Reference.Instance, i.Reference.Instance)
	merged.EntityDescription.Reference = ref

	return merged, report
}

// mergeDate takes the incoming date as a whole when it has a year. Mixing
// parts of two dates could produce a date neither source stated.
func mergeDate(existing, incoming publication.PublicationDate) publication.PublicationDate {
	if incoming.Year != "" {
		return incoming
	}
	return existing
}

// mergeContributors replaces the contributor list only with a non-empty one.
func mergeContributors(existing, incoming []publication.Contributor) []publication.Contributor {
	src := existing
	if len(incoming) > 0 {
		src = incoming
	}
	if src == nil {
		return nil
	}
	out := make([]publication.Contributor, len(src))
	copy(out, src)
	return out
}

// mergeTitles unions alternative titles; incoming wins per language.
func mergeTitles(existing, incoming map[string]string) map[string]string {
	if len(existing) == 0 && len(incoming) == 0 {
		return nil
	}
	out := make(map[string]string, len(existing)+len(incoming))
	for lang, t := range existing {
		out[lang] = t
	}
	for lang, t := range incoming {
		out[lang] = preferNonEmpty(out[lang], t)
	}
	return out
}

// mergeIdentifiers unions identifiers keyed by source name. Incoming values
// win on collision; existing order is kept and new sources are appended.
// There is one value per source: when either side lists a source twice,
// the first entry wins and later ones are dropped.
func mergeIdentifiers(existing, incoming []publication.AdditionalIdentifier) []publication.AdditionalIdentifier {
	incomingBySource := make(map[string]string, len(incoming))
	for _, id := range incoming {
		if _, dup := incomingBySource[id.SourceName]; id.Value != "" && !dup {
			incomingBySource[id.SourceName] = id.Value
		}
	}

	var out []publication.AdditionalIdentifier
	seen := make(map[string]bool)
	for _, id := range existing {
		if seen[id.SourceName] {
			continue
		}
		seen[id.SourceName] = true
		if v, ok := incomingBySource[id.SourceName]; ok {
			id.Value = v
		}
		out = append(out, id)
	}
	for _, id := range incoming {
		if seen[id.SourceName] || id.Value == "" {
			continue
		}
		seen[id.SourceName] = true
		out = append(out, id)
	}
	return out
}

// mergeArtifacts appends incoming artifacts. Published artifacts on the
// existing record are never removed or replaced. An unpublished existing
// artifact with the same key as an incoming one is replaced by it.
func mergeArtifacts(existing, incoming []publication.Artifact) []publication.Artifact {
	incomingByKey := make(map[string]publication.Artifact, len(incoming))
	for _, a := range incoming {
		incomingByKey[a.Key()] = a
	}

	var out []publication.Artifact
	used := make(map[string]bool)
	for _, a := range existing {
		key := a.Key()
		if in, ok := incomingByKey[key]; ok && !a.IsPublished() && !used[key] {
			out = append(out, in)
		} else {
			out = append(out, a)
		}
		used[key] = true
	}
	for _, a := range incoming {
		key := a.Key()
		if used[key] {
			continue
		}
		used[key] = true
		out = append(out, a)
	}
	return out
}
