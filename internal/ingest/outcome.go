package ingest

import (
	"github.com/BIBSYSDEV/nva-publication-api-sub014/internal/match"
	"github.com/BIBSYSDEV/nva-publication-api-sub014/internal/merge"
)

// State is the terminal state of an item.
type State string

const (
	StateMerged  State = "merged"
	StateCreated State = "created"
	StateFlagged State = "flagged" // needs manual review
	StateFailed  State = "failed"
)

// Reason says why an item was flagged.
type Reason string

const (
	ReasonUnmappableType Reason = "unmappable_type"
	ReasonAmbiguousMatch Reason = "ambiguous_match"
)

// Outcome is the result of processing one item.
type Outcome struct {
	Ref           string            `json:"ref"`
	State         State             `json:"state"`
	Reason        Reason            `json:"reason,omitempty"`
	TypeStatus    string            `json:"type_status"`
	MergeSource   match.MergeSource `json:"merge_source,omitempty"`
	PublicationID string            `json:"publication_id,omitempty"`
	Candidates    []string          `json:"candidates,omitempty"`
	Merge         *merge.Report     `json:"merge,omitempty"`
	Message       string            `json:"message,omitempty"`

	Err error `json:"-"`
}

func (o Outcome) flag(reason Reason, err error) Outcome {
	o.State = StateFlagged
	o.Reason = reason
	o.setErr(err)
	return o
}

func (o Outcome) fail(err error) Outcome {
	o.State = StateFailed
	o.setErr(err)
	return o
}

func (o *Outcome) setErr(err error) {
	o.Err = err
	if err != nil {
		o.Message = err.Error()
	}
}

// Summary counts outcomes per state.
type Summary struct {
	Merged  int `json:"merged"`
	Created int `json:"created"`
	Flagged int `json:"flagged"`
	Failed  int `json:"failed"`
}

// Summarize counts outcomes.
func Summarize(outcomes []Outcome) Summary {
	var s Summary
	for _, o := range outcomes {
		switch o.State {
		case StateMerged:
			s.Merged++
		case StateCreated:
			s.Created++
		case StateFlagged:
			s.Flagged++
		case StateFailed:
			s.Failed++
		}
	}
	return s
}

// Total returns the number of counted outcomes.
func (s Summary) Total() int {
	return s.Merged + s.Created + s.Flagged + s.Failed
}
