// Package pdf locates file artifacts under a local root and reads DOIs
// printed in them.
package pdf

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/ledongthuc/pdf"
)

// DefaultMaxPages bounds how far into a document the probe reads. The DOI
// is almost always on the title page or in the running header.
const DefaultMaxPages = 3

// ErrNoRoot is returned when the prober has no root directory configured.
var ErrNoRoot = errors.New("pdf_root not configured")

// 10.<registrant>/<suffix>; the suffix stops at whitespace and characters
// that never occur unescaped in printed DOIs.
var doiPattern = regexp.MustCompile(`10\.\d{4,9}/[^\s<>"{}|\\^~\[\]` + "`" + `]+`)

// Prober reads DOIs from PDFs stored below a root directory.
type Prober struct {
	root     string
	maxPages int
}

// NewProber creates a prober for files below root.
func NewProber(root string) *Prober {
	return &Prober{root: root, maxPages: DefaultMaxPages}
}

// ResolvePath resolves a path relative to the root and checks the file
// exists. Paths escaping the root are rejected.
func (p *Prober) ResolvePath(relativePath string) (string, error) {
	if p.root == "" {
		return "", ErrNoRoot
	}
	if relativePath == "" {
		return "", fmt.Errorf("no PDF path specified")
	}

	fullPath := filepath.Join(p.root, filepath.Clean("/"+relativePath))
	if _, err := os.Stat(fullPath); err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("PDF not found: %s", fullPath)
		}
		return "", fmt.Errorf("checking PDF: %w", err)
	}

	return fullPath, nil
}

// ProbeDOI returns the first DOI printed in the file at relativePath, or ""
// when none is found.
func (p *Prober) ProbeDOI(relativePath string) (string, error) {
	fullPath, err := p.ResolvePath(relativePath)
	if err != nil {
		return "", err
	}
	return ExtractDOI(fullPath, p.maxPages)
}

// ExtractDOI extracts a DOI from the first maxPages pages of a PDF file.
func ExtractDOI(filePath string, maxPages int) (string, error) {
	f, r, err := pdf.Open(filePath)
	if err != nil {
		return "", fmt.Errorf("opening PDF: %w", err)
	}
	defer f.Close()

	if maxPages <= 0 || maxPages > r.NumPage() {
		maxPages = r.NumPage()
	}

	for i := 1; i <= maxPages; i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			continue // unreadable page; try the next
		}

		if doi := findDOI(text); doi != "" {
			return doi, nil
		}
	}

	return "", nil
}

// findDOI returns the first plausible DOI in text, lowercased.
func findDOI(text string) string {
	for _, match := range doiPattern.FindAllString(text, -1) {
		match = strings.TrimRight(match, ".,;:)")
		if isValidDOI(match) {
			return strings.ToLower(match)
		}
	}
	return ""
}

// isValidDOI requires a registrant prefix and a non-empty suffix.
func isValidDOI(doi string) bool {
	if len(doi) < 10 || !strings.HasPrefix(doi, "10.") {
		return false
	}
	slash := strings.Index(doi, "/")
	return slash != -1 && slash < len(doi)-1
}
