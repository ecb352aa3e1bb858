// Package importer turns source-system export records into ingest items.
package importer

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// FlexibleString can unmarshal from either string or number JSON values.
type FlexibleString string

func (f *FlexibleString) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*f = ""
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*f = FlexibleString(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err == nil {
		*f = FlexibleString(n.String())
		return nil
	}

	return fmt.Errorf("cannot unmarshal %s into FlexibleString", string(data))
}

func (f FlexibleString) String() string {
	return string(f)
}

// Record is one line of a source export.
type Record struct {
	Source            string            `json:"source"`
	SourceID          string            `json:"source_id"`
	Types             []string          `json:"types"`
	Title             string            `json:"title"`
	AlternativeTitles map[string]string `json:"alternative_titles"`
	Abstract          string            `json:"abstract"`
	Language          string            `json:"language"`

	Year  FlexibleString `json:"year"`
	Month FlexibleString `json:"month"`
	Day   FlexibleString `json:"day"`

	DOI       string   `json:"doi"`
	ISBN      []string `json:"isbn"`
	ISSN      string   `json:"issn"`
	Journal   string   `json:"journal"`
	Publisher string   `json:"publisher"`
	Series    string   `json:"series"`
	Event     string   `json:"event"`
	Place     string   `json:"place"`

	Volume        FlexibleString `json:"volume"`
	Issue         FlexibleString `json:"issue"`
	ArticleNumber FlexibleString `json:"article_number"`
	Pages         struct {
		Begin FlexibleString `json:"begin"`
		End   FlexibleString `json:"end"`
	} `json:"pages"`
	PageCount FlexibleString `json:"page_count"`
	Submitted string         `json:"submitted"`

	Identifiers  map[string]string `json:"identifiers"`
	Contributors []struct {
		Name        string `json:"name"`
		ORCID       string `json:"orcid"`
		Role        string `json:"role"`
		Affiliation string `json:"affiliation"`
	} `json:"contributors"`
	Tags  []string `json:"tags"`
	Files []struct {
		ID        string `json:"id"`
		Name      string `json:"name"`
		Path      string `json:"path"` // relative to pdf_root
		URL       string `json:"url"`
		MimeType  string `json:"mime_type"`
		Size      int64  `json:"size"`
		License   string `json:"license"`
		Published bool   `json:"published"`
	} `json:"files"`
}

// validDatePart reports whether s is empty or a number in [lo, hi].
func validDatePart(s string, lo, hi int) bool {
	if s == "" {
		return true
	}
	n, err := strconv.Atoi(s)
	return err == nil && n >= lo && n <= hi
}
