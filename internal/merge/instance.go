package merge

import (
	"github.com/BIBSYSDEV/nva-publication-api-sub014/internal/publication"
)

// InstanceOutcome reports what happened to the publication instance.
type InstanceOutcome string

const (
	InstanceMerged       InstanceOutcome = "merged"
	InstanceTaken        InstanceOutcome = "taken"         // existing had none; incoming used as is
	InstanceKept         InstanceOutcome = "kept"          // incoming had none
	InstanceKindMismatch InstanceOutcome = "kind_mismatch" // left unchanged
	InstanceUnhandled    InstanceOutcome = "unhandled"     // no rule for the variant; left unchanged
)

// same applies rule when incoming is the same variant as existing.
func same[T publication.Instance](existing T, incoming publication.Instance, rule func(e, i T) T) (publication.Instance, InstanceOutcome) {
	in, ok := incoming.(T)
	if !ok {
		return existing, InstanceKindMismatch
	}
	return rule(existing, in), InstanceMerged
}

func journal(e, i publication.JournalFields) publication.JournalFields {
	return publication.JournalFields{
		Volume:        PreferNonNull(e.Volume, i.Volume),
		Issue:         PreferNonNull(e.Issue, i.Issue),
		ArticleNumber: PreferNonNull(e.ArticleNumber, i.ArticleNumber),
		Pages:         MergeRange(e.Pages, i.Pages),
	}
}

func monograph(e, i publication.MonographFields) publication.MonographFields {
	return publication.MonographFields{
		Pages:        PreferNonNull(e.Pages, i.Pages),
		Introduction: MergeRange(e.Introduction, i.Introduction),
		Illustrated:  e.Illustrated || i.Illustrated,
	}
}

func ranged(e, i publication.RangeFields) publication.RangeFields {
	return publication.RangeFields{Pages: MergeRange(e.Pages, i.Pages)}
}

func degree(e, i publication.DegreeFields) publication.DegreeFields {
	return publication.DegreeFields{
		Pages:         MergeRange(e.Pages, i.Pages),
		SubmittedDate: PreferNonNull(e.SubmittedDate, i.SubmittedDate),
	}
}

// Instance merges incoming into existing. The dispatch is on the existing
// variant; an incoming instance of another variant leaves existing
// unchanged. Every variant in publication.AllKinds has a case here.
func Instance(existing, incoming publication.Instance) (publication.Instance, InstanceOutcome) {
	if existing == nil {
		if incoming == nil {
			return nil, InstanceKept
		}
		return incoming, InstanceTaken
	}
	if incoming == nil {
		return existing, InstanceKept
	}

	switch e := existing.(type) {
	// Journal-like
	case *publication.AcademicArticle:
		return same(e, incoming, func(e, i *publication.AcademicArticle) *publication.AcademicArticle {
			return &publication.AcademicArticle{JournalFields: journal(e.JournalFields, i.JournalFields)}
		})
	case *publication.AcademicLiteratureReview:
		return same(e, incoming, func(e, i *publication.AcademicLiteratureReview) *publication.AcademicLiteratureReview {
			return &publication.AcademicLiteratureReview{JournalFields: journal(e.JournalFields, i.JournalFields)}
		})
	case *publication.ProfessionalArticle:
		return same(e, incoming, func(e, i *publication.ProfessionalArticle) *publication.ProfessionalArticle {
			return &publication.ProfessionalArticle{JournalFields: journal(e.JournalFields, i.JournalFields)}
		})
	case *publication.PopularScienceArticle:
		return same(e, incoming, func(e, i *publication.PopularScienceArticle) *publication.PopularScienceArticle {
			return &publication.PopularScienceArticle{JournalFields: journal(e.JournalFields, i.JournalFields)}
		})
	case *publication.JournalLetter:
		return same(e, incoming, func(e, i *publication.JournalLetter) *publication.JournalLetter {
			return &publication.JournalLetter{JournalFields: journal(e.JournalFields, i.JournalFields)}
		})
	case *publication.JournalLeader:
		return same(e, incoming, func(e, i *publication.JournalLeader) *publication.JournalLeader {
			return &publication.JournalLeader{JournalFields: journal(e.JournalFields, i.JournalFields)}
		})
	case *publication.JournalReview:
		return same(e, incoming, func(e, i *publication.JournalReview) *publication.JournalReview {
			return &publication.JournalReview{JournalFields: journal(e.JournalFields, i.JournalFields)}
		})
	case *publication.JournalCorrigendum:
		return same(e, incoming, func(e, i *publication.JournalCorrigendum) *publication.JournalCorrigendum {
			return &publication.JournalCorrigendum{
				JournalFields:  journal(e.JournalFields, i.JournalFields),
				CorrigendumFor: PreferNonNull(e.CorrigendumFor, i.CorrigendumFor),
			}
		})
	case *publication.CaseReport:
		return same(e, incoming, func(e, i *publication.CaseReport) *publication.CaseReport {
			return &publication.CaseReport{JournalFields: journal(e.JournalFields, i.JournalFields)}
		})
	case *publication.StudyProtocol:
		return same(e, incoming, func(e, i *publication.StudyProtocol) *publication.StudyProtocol {
			return &publication.StudyProtocol{JournalFields: journal(e.JournalFields, i.JournalFields)}
		})
	case *publication.ConferenceAbstract:
		return same(e, incoming, func(e, i *publication.ConferenceAbstract) *publication.ConferenceAbstract {
			return &publication.ConferenceAbstract{JournalFields: journal(e.JournalFields, i.JournalFields)}
		})

	// Monographs
	case *publication.AcademicMonograph:
		return same(e, incoming, func(e, i *publication.AcademicMonograph) *publication.AcademicMonograph {
			return &publication.AcademicMonograph{MonographFields: monograph(e.MonographFields, i.MonographFields)}
		})
	case *publication.NonFictionMonograph:
		return same(e, incoming, func(e, i *publication.NonFictionMonograph) *publication.NonFictionMonograph {
			return &publication.NonFictionMonograph{MonographFields: monograph(e.MonographFields, i.MonographFields)}
		})
	case *publication.PopularScienceMonograph:
		return same(e, incoming, func(e, i *publication.PopularScienceMonograph) *publication.PopularScienceMonograph {
			return &publication.PopularScienceMonograph{MonographFields: monograph(e.MonographFields, i.MonographFields)}
		})
	case *publication.Textbook:
		return same(e, incoming, func(e, i *publication.Textbook) *publication.Textbook {
			return &publication.Textbook{MonographFields: monograph(e.MonographFields, i.MonographFields)}
		})
	case *publication.Encyclopedia:
		return same(e, incoming, func(e, i *publication.Encyclopedia) *publication.Encyclopedia {
			return &publication.Encyclopedia{MonographFields: monograph(e.MonographFields, i.MonographFields)}
		})
	case *publication.BookAnthology:
		return same(e, incoming, func(e, i *publication.BookAnthology) *publication.BookAnthology {
			return &publication.BookAnthology{MonographFields: monograph(e.MonographFields, i.MonographFields)}
		})
	case *publication.ExhibitionCatalog:
		return same(e, incoming, func(e, i *publication.ExhibitionCatalog) *publication.ExhibitionCatalog {
			return &publication.ExhibitionCatalog{MonographFields: monograph(e.MonographFields, i.MonographFields)}
		})

	// Chapters
	case *publication.AcademicChapter:
		return same(e, incoming, func(e, i *publication.AcademicChapter) *publication.AcademicChapter {
			return &publication.AcademicChapter{RangeFields: ranged(e.RangeFields, i.RangeFields)}
		})
	case *publication.NonFictionChapter:
		return same(e, incoming, func(e, i *publication.NonFictionChapter) *publication.NonFictionChapter {
			return &publication.NonFictionChapter{RangeFields: ranged(e.RangeFields, i.RangeFields)}
		})
	case *publication.PopularScienceChapter:
		return same(e, incoming, func(e, i *publication.PopularScienceChapter) *publication.PopularScienceChapter {
			return &publication.PopularScienceChapter{RangeFields: ranged(e.RangeFields, i.RangeFields)}
		})
	case *publication.EncyclopediaChapter:
		return same(e, incoming, func(e, i *publication.EncyclopediaChapter) *publication.EncyclopediaChapter {
			return &publication.EncyclopediaChapter{RangeFields: ranged(e.RangeFields, i.RangeFields)}
		})
	case *publication.TextbookChapter:
		return same(e, incoming, func(e, i *publication.TextbookChapter) *publication.TextbookChapter {
			return &publication.TextbookChapter{RangeFields: ranged(e.RangeFields, i.RangeFields)}
		})
	case *publication.Introduction:
		return same(e, incoming, func(e, i *publication.Introduction) *publication.Introduction {
			return &publication.Introduction{RangeFields: ranged(e.RangeFields, i.RangeFields)}
		})
	case *publication.ChapterInReport:
		return same(e, incoming, func(e, i *publication.ChapterInReport) *publication.ChapterInReport {
			return &publication.ChapterInReport{RangeFields: ranged(e.RangeFields, i.RangeFields)}
		})

	// Reports
	case *publication.ReportResearch:
		return same(e, incoming, func(e, i *publication.ReportResearch) *publication.ReportResearch {
			return &publication.ReportResearch{RangeFields: ranged(e.RangeFields, i.RangeFields)}
		})
	case *publication.ReportPolicy:
		return same(e, incoming, func(e, i *publication.ReportPolicy) *publication.ReportPolicy {
			return &publication.ReportPolicy{RangeFields: ranged(e.RangeFields, i.RangeFields)}
		})
	case *publication.ReportWorkingPaper:
		return same(e, incoming, func(e, i *publication.ReportWorkingPaper) *publication.ReportWorkingPaper {
			return &publication.ReportWorkingPaper{RangeFields: ranged(e.RangeFields, i.RangeFields)}
		})
	case *publication.ReportBasic:
		return same(e, incoming, func(e, i *publication.ReportBasic) *publication.ReportBasic {
			return &publication.ReportBasic{RangeFields: ranged(e.RangeFields, i.RangeFields)}
		})
	case *publication.ReportBookOfAbstract:
		return same(e, incoming, func(e, i *publication.ReportBookOfAbstract) *publication.ReportBookOfAbstract {
			return &publication.ReportBookOfAbstract{RangeFields: ranged(e.RangeFields, i.RangeFields)}
		})
	case *publication.ConferenceReport:
		return same(e, incoming, func(e, i *publication.ConferenceReport) *publication.ConferenceReport {
			return &publication.ConferenceReport{RangeFields: ranged(e.RangeFields, i.RangeFields)}
		})

	// Degrees
	case *publication.DegreeBachelor:
		return same(e, incoming, func(e, i *publication.DegreeBachelor) *publication.DegreeBachelor {
			return &publication.DegreeBachelor{DegreeFields: degree(e.DegreeFields, i.DegreeFields)}
		})
	case *publication.DegreeMaster:
		return same(e, incoming, func(e, i *publication.DegreeMaster) *publication.DegreeMaster {
			return &publication.DegreeMaster{DegreeFields: degree(e.DegreeFields, i.DegreeFields)}
		})
	case *publication.DegreePhd:
		return same(e, incoming, func(e, i *publication.DegreePhd) *publication.DegreePhd {
			return &publication.DegreePhd{DegreeFields: degree(e.DegreeFields, i.DegreeFields)}
		})
	case *publication.DegreeLicentiate:
		return same(e, incoming, func(e, i *publication.DegreeLicentiate) *publication.DegreeLicentiate {
			return &publication.DegreeLicentiate{DegreeFields: degree(e.DegreeFields, i.DegreeFields)}
		})
	case *publication.OtherStudentWork:
		return same(e, incoming, func(e, i *publication.OtherStudentWork) *publication.OtherStudentWork {
			return &publication.OtherStudentWork{DegreeFields: degree(e.DegreeFields, i.DegreeFields)}
		})

	// No fields of their own: nothing to merge beyond a kind check.
	case *publication.ConferenceLecture:
		return same(e, incoming, keep[*publication.ConferenceLecture])
	case *publication.ConferencePoster:
		return same(e, incoming, keep[*publication.ConferencePoster])
	case *publication.Lecture:
		return same(e, incoming, keep[*publication.Lecture])
	case *publication.OtherPresentation:
		return same(e, incoming, keep[*publication.OtherPresentation])
	case *publication.DataSet:
		return same(e, incoming, keep[*publication.DataSet])
	}

	return existing, InstanceUnhandled
}

// keep is the rule for variants without fields.
func keep[T publication.Instance](e, _ T) T {
	return e
}
