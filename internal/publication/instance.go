package publication

// Kind tags a publication instance variant.
type Kind string

// PageRange is a begin/end page pair. Either end may be unknown.
type PageRange struct {
	Begin *string `json:"begin,omitempty"`
	End   *string `json:"end,omitempty"`
}

// IsZero reports whether neither end of the range is known.
func (r PageRange) IsZero() bool {
	return IsBlank(r.Begin) && IsBlank(r.End)
}

// Instance is one of the closed set of publication instance variants.
// Every implementation lives in this file; the unexported marker keeps
// the set closed.
type Instance interface {
	Kind() Kind
	isInstance()
}

// JournalFields is shared by journal-like instances.
type JournalFields struct {
	Volume        *string   `json:"volume,omitempty"`
	Issue         *string   `json:"issue,omitempty"`
	ArticleNumber *string   `json:"article_number,omitempty"`
	Pages         PageRange `json:"pages"`
}

func (JournalFields) isInstance() {}

// MonographFields is shared by book-length instances.
type MonographFields struct {
	Pages        *string   `json:"pages,omitempty"` // total page count
	Introduction PageRange `json:"introduction"`
	Illustrated  bool      `json:"illustrated,omitempty"`
}

func (MonographFields) isInstance() {}

// RangeFields is shared by chapters and reports.
type RangeFields struct {
	Pages PageRange `json:"pages"`
}

func (RangeFields) isInstance() {}

// DegreeFields is shared by theses and other student work.
type DegreeFields struct {
	Pages         PageRange `json:"pages"`
	SubmittedDate *string   `json:"submitted_date,omitempty"` // ISO-8601 date
}

func (DegreeFields) isInstance() {}

// NoFields is embedded by instances without their own fields.
type NoFields struct{}

func (NoFields) isInstance() {}

// Shape accessors, promoted to every instance embedding the shape. They let
// importers fill shared fields without switching on the kind.
func (f *JournalFields) Journal() *JournalFields       { return f }
func (f *MonographFields) Monograph() *MonographFields { return f }
func (f *RangeFields) Range() *RangeFields             { return f }
func (f *DegreeFields) Degree() *DegreeFields          { return f }

type (
	JournalShaped   interface{ Journal() *JournalFields }
	MonographShaped interface{ Monograph() *MonographFields }
	RangeShaped     interface{ Range() *RangeFields }
	DegreeShaped    interface{ Degree() *DegreeFields }
)

// Journal-like instances.
const (
	KindAcademicArticle          Kind = "AcademicArticle"
	KindAcademicLiteratureReview Kind = "AcademicLiteratureReview"
	KindProfessionalArticle      Kind = "ProfessionalArticle"
	KindPopularScienceArticle    Kind = "PopularScienceArticle"
	KindJournalLetter            Kind = "JournalLetter"
	KindJournalLeader            Kind = "JournalLeader"
	KindJournalReview            Kind = "JournalReview"
	KindJournalCorrigendum       Kind = "JournalCorrigendum"
	KindCaseReport               Kind = "CaseReport"
	KindStudyProtocol            Kind = "StudyProtocol"
	KindConferenceAbstract       Kind = "ConferenceAbstract"
)

// Monographs.
const (
	KindAcademicMonograph       Kind = "AcademicMonograph"
	KindNonFictionMonograph     Kind = "NonFictionMonograph"
	KindPopularScienceMonograph Kind = "PopularScienceMonograph"
	KindTextbook                Kind = "Textbook"
	KindEncyclopedia            Kind = "Encyclopedia"
	KindBookAnthology           Kind = "BookAnthology"
	KindExhibitionCatalog       Kind = "ExhibitionCatalog"
)

// Chapters.
const (
	KindAcademicChapter       Kind = "AcademicChapter"
	KindNonFictionChapter     Kind = "NonFictionChapter"
	KindPopularScienceChapter Kind = "PopularScienceChapter"
	KindEncyclopediaChapter   Kind = "EncyclopediaChapter"
	KindTextbookChapter       Kind = "TextbookChapter"
	KindIntroduction          Kind = "Introduction"
	KindChapterInReport       Kind = "ChapterInReport"
)

// Reports.
const (
	KindReportResearch       Kind = "ReportResearch"
	KindReportPolicy         Kind = "ReportPolicy"
	KindReportWorkingPaper   Kind = "ReportWorkingPaper"
	KindReportBasic          Kind = "ReportBasic"
	KindReportBookOfAbstract Kind = "ReportBookOfAbstract"
	KindConferenceReport     Kind = "ConferenceReport"
)

// Degrees.
const (
	KindDegreeBachelor   Kind = "DegreeBachelor"
	KindDegreeMaster     Kind = "DegreeMaster"
	KindDegreePhd        Kind = "DegreePhd"
	KindDegreeLicentiate Kind = "DegreeLicentiate"
	KindOtherStudentWork Kind = "OtherStudentWork"
)

// Presentations and datasets.
const (
	KindConferenceLecture Kind = "ConferenceLecture"
	KindConferencePoster  Kind = "ConferencePoster"
	KindLecture           Kind = "Lecture"
	KindOtherPresentation Kind = "OtherPresentation"
	KindDataSet           Kind = "DataSet"
)

type (
	AcademicArticle          struct{ JournalFields }
	AcademicLiteratureReview struct{ JournalFields }
	ProfessionalArticle      struct{ JournalFields }
	PopularScienceArticle    struct{ JournalFields }
	JournalLetter            struct{ JournalFields }
	JournalLeader            struct{ JournalFields }
	JournalReview            struct{ JournalFields }
	CaseReport               struct{ JournalFields }
	StudyProtocol            struct{ JournalFields }
	ConferenceAbstract       struct{ JournalFields }

	// JournalCorrigendum corrects an earlier article.
	JournalCorrigendum struct {
		JournalFields
		CorrigendumFor *string `json:"corrigendum_for,omitempty"`
	}

	AcademicMonograph       struct{ MonographFields }
	NonFictionMonograph     struct{ MonographFields }
	PopularScienceMonograph struct{ MonographFields }
	Textbook                struct{ MonographFields }
	Encyclopedia            struct{ MonographFields }
	BookAnthology           struct{ MonographFields }
	ExhibitionCatalog       struct{ MonographFields }

	AcademicChapter       struct{ RangeFields }
	NonFictionChapter     struct{ RangeFields }
	PopularScienceChapter struct{ RangeFields }
	EncyclopediaChapter   struct{ RangeFields }
	TextbookChapter       struct{ RangeFields }
	Introduction          struct{ RangeFields }
	ChapterInReport       struct{ RangeFields }

	ReportResearch       struct{ RangeFields }
	ReportPolicy         struct{ RangeFields }
	ReportWorkingPaper   struct{ RangeFields }
	ReportBasic          struct{ RangeFields }
	ReportBookOfAbstract struct{ RangeFields }
	ConferenceReport     struct{ RangeFields }

	DegreeBachelor   struct{ DegreeFields }
	DegreeMaster     struct{ DegreeFields }
	DegreePhd        struct{ DegreeFields }
	DegreeLicentiate struct{ DegreeFields }
	OtherStudentWork struct{ DegreeFields }

	ConferenceLecture struct{ NoFields }
	ConferencePoster  struct{ NoFields }
	Lecture           struct{ NoFields }
	OtherPresentation struct{ NoFields }
	DataSet           struct{ NoFields }
)

func (*AcademicArticle) Kind() Kind          { return KindAcademicArticle }
func (*AcademicLiteratureReview) Kind() Kind { return KindAcademicLiteratureReview }
func (*ProfessionalArticle) Kind() Kind      { return KindProfessionalArticle }
func (*PopularScienceArticle) Kind() Kind    { return KindPopularScienceArticle }
func (*JournalLetter) Kind() Kind            { return KindJournalLetter }
func (*JournalLeader) Kind() Kind            { return KindJournalLeader }
func (*JournalReview) Kind() Kind            { return KindJournalReview }
func (*JournalCorrigendum) Kind() Kind       { return KindJournalCorrigendum }
func (*CaseReport) Kind() Kind               { return KindCaseReport }
func (*StudyProtocol) Kind() Kind            { return KindStudyProtocol }
func (*ConferenceAbstract) Kind() Kind       { return KindConferenceAbstract }

func (*AcademicMonograph) Kind() Kind       { return KindAcademicMonograph }
func (*NonFictionMonograph) Kind() Kind     { return KindNonFictionMonograph }
func (*PopularScienceMonograph) Kind() Kind { return KindPopularScienceMonograph }
func (*Textbook) Kind() Kind                { return KindTextbook }
func (*Encyclopedia) Kind() Kind            { return KindEncyclopedia }
func (*BookAnthology) Kind() Kind           { return KindBookAnthology }
func (*ExhibitionCatalog) Kind() Kind       { return KindExhibitionCatalog }

func (*AcademicChapter) Kind() Kind       { return KindAcademicChapter }
func (*NonFictionChapter) Kind() Kind     { return KindNonFictionChapter }
func (*PopularScienceChapter) Kind() Kind { return KindPopularScienceChapter }
func (*EncyclopediaChapter) Kind() Kind   { return KindEncyclopediaChapter }
func (*TextbookChapter) Kind() Kind       { return KindTextbookChapter }
func (*Introduction) Kind() Kind          { return KindIntroduction }
func (*ChapterInReport) Kind() Kind       { return KindChapterInReport }

func (*ReportResearch) Kind() Kind       { return KindReportResearch }
func (*ReportPolicy) Kind() Kind         { return KindReportPolicy }
func (*ReportWorkingPaper) Kind() Kind   { return KindReportWorkingPaper }
func (*ReportBasic) Kind() Kind          { return KindReportBasic }
func (*ReportBookOfAbstract) Kind() Kind { return KindReportBookOfAbstract }
func (*ConferenceReport) Kind() Kind     { return KindConferenceReport }

func (*DegreeBachelor) Kind() Kind   { return KindDegreeBachelor }
func (*DegreeMaster) Kind() Kind     { return KindDegreeMaster }
func (*DegreePhd) Kind() Kind        { return KindDegreePhd }
func (*DegreeLicentiate) Kind() Kind { return KindDegreeLicentiate }
func (*OtherStudentWork) Kind() Kind { return KindOtherStudentWork }

func (*ConferenceLecture) Kind() Kind { return KindConferenceLecture }
func (*ConferencePoster) Kind() Kind  { return KindConferencePoster }
func (*Lecture) Kind() Kind           { return KindLecture }
func (*OtherPresentation) Kind() Kind { return KindOtherPresentation }
func (*DataSet) Kind() Kind           { return KindDataSet }

// constructors maps every kind to a constructor for its empty variant.
var constructors = map[Kind]func() Instance{
	KindAcademicArticle:          func() Instance { return &AcademicArticle{} },
	KindAcademicLiteratureReview: func() Instance { return &AcademicLiteratureReview{} },
	KindProfessionalArticle:      func() Instance { return &ProfessionalArticle{} },
	KindPopularScienceArticle:    func() Instance { return &PopularScienceArticle{} },
	KindJournalLetter:            func() Instance { return &JournalLetter{} },
	KindJournalLeader:            func() Instance { return &JournalLeader{} },
	KindJournalReview:            func() Instance { return &JournalReview{} },
	KindJournalCorrigendum:       func() Instance { return &JournalCorrigendum{} },
	KindCaseReport:               func() Instance { return &CaseReport{} },
	KindStudyProtocol:            func() Instance { return &StudyProtocol{} },
	KindConferenceAbstract:       func() Instance { return &ConferenceAbstract{} },

	KindAcademicMonograph:       func() Instance { return &AcademicMonograph{} },
	KindNonFictionMonograph:     func() Instance { return &NonFictionMonograph{} },
	KindPopularScienceMonograph: func() Instance { return &PopularScienceMonograph{} },
	KindTextbook:                func() Instance { return &Textbook{} },
	KindEncyclopedia:            func() Instance { return &Encyclopedia{} },
	KindBookAnthology:           func() Instance { return &BookAnthology{} },
	KindExhibitionCatalog:       func() Instance { return &ExhibitionCatalog{} },

	KindAcademicChapter:       func() Instance { return &AcademicChapter{} },
	KindNonFictionChapter:     func() Instance { return &NonFictionChapter{} },
	KindPopularScienceChapter: func() Instance { return &PopularScienceChapter{} },
	KindEncyclopediaChapter:   func() Instance { return &EncyclopediaChapter{} },
	KindTextbookChapter:       func() Instance { return &TextbookChapter{} },
	KindIntroduction:          func() Instance { return &Introduction{} },
	KindChapterInReport:       func() Instance { return &ChapterInReport{} },

	KindReportResearch:       func() Instance { return &ReportResearch{} },
	KindReportPolicy:         func() Instance { return &ReportPolicy{} },
	KindReportWorkingPaper:   func() Instance { return &ReportWorkingPaper{} },
	KindReportBasic:          func() Instance { return &ReportBasic{} },
	KindReportBookOfAbstract: func() Instance { return &ReportBookOfAbstract{} },
	KindConferenceReport:     func() Instance { return &ConferenceReport{} },

	KindDegreeBachelor:   func() Instance { return &DegreeBachelor{} },
	KindDegreeMaster:     func() Instance { return &DegreeMaster{} },
	KindDegreePhd:        func() Instance { return &DegreePhd{} },
	KindDegreeLicentiate: func() Instance { return &DegreeLicentiate{} },
	KindOtherStudentWork: func() Instance { return &OtherStudentWork{} },

	KindConferenceLecture: func() Instance { return &ConferenceLecture{} },
	KindConferencePoster:  func() Instance { return &ConferencePoster{} },
	KindLecture:           func() Instance { return &Lecture{} },
	KindOtherPresentation: func() Instance { return &OtherPresentation{} },
	KindDataSet:           func() Instance { return &DataSet{} },
}

// allKinds is the declaration order used by AllKinds.
var allKinds = []Kind{
	KindAcademicArticle, KindAcademicLiteratureReview, KindProfessionalArticle,
	KindPopularScienceArticle, KindJournalLetter, KindJournalLeader, KindJournalReview,
	KindJournalCorrigendum, KindCaseReport, KindStudyProtocol, KindConferenceAbstract,
	KindAcademicMonograph, KindNonFictionMonograph, KindPopularScienceMonograph,
	KindTextbook, KindEncyclopedia, KindBookAnthology, KindExhibitionCatalog,
	KindAcademicChapter, KindNonFictionChapter, KindPopularScienceChapter,
	KindEncyclopediaChapter, KindTextbookChapter, KindIntroduction, KindChapterInReport,
	KindReportResearch, KindReportPolicy, KindReportWorkingPaper, KindReportBasic,
	KindReportBookOfAbstract, KindConferenceReport,
	KindDegreeBachelor, KindDegreeMaster, KindDegreePhd, KindDegreeLicentiate,
	KindOtherStudentWork,
	KindConferenceLecture, KindConferencePoster, KindLecture, KindOtherPresentation,
	KindDataSet,
}

// AllKinds returns every instance kind.
func AllKinds() []Kind {
	out := make([]Kind, len(allKinds))
	copy(out, allKinds)
	return out
}

// NewInstance returns the empty variant for kind.
func NewInstance(kind Kind) (Instance, bool) {
	ctor, ok := constructors[kind]
	if !ok {
		return nil, false
	}
	return ctor(), true
}

// IsKnownKind reports whether kind names an instance variant.
func IsKnownKind(kind Kind) bool {
	_, ok := constructors[kind]
	return ok
}
