package pdf

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestFindDOI(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"plain", "Available at 10.1234/abc.def online", "10.1234/abc.def"},
		{"resolver url", "https://doi.org/10.1016/J.CELL.2020.01.001.", "10.1016/j.cell.2020.01.001"},
		{"trailing paren", "(doi 10.5555/xyz123)", "10.5555/xyz123"},
		{"first wins", "10.1111/first and 10.2222/second", "10.1111/first"},
		{"short registrant rejected", "10.12/abc", ""},
		{"none", "no identifiers here", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := findDOI(tt.text); got != tt.want {
				t.Errorf("findDOI(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}

func TestIsValidDOI(t *testing.T) {
	tests := []struct {
		doi  string
		want bool
	}{
		{"10.1234/abc", true},
		{"10.1234/", false},
		{"11.1234/abcdef", false},
		{"10.1/a", false},
	}
	for _, tt := range tests {
		if got := isValidDOI(tt.doi); got != tt.want {
			t.Errorf("isValidDOI(%q) = %v, want %v", tt.doi, got, tt.want)
		}
	}
}

func TestProber_ResolvePath(t *testing.T) {
	root := t.TempDir()
	if err := os.MkdirAll(filepath.Join(root, "files"), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(root, "files", "a.pdf"), []byte("%PDF-1.4"), 0644); err != nil {
		t.Fatal(err)
	}

	p := NewProber(root)

	got, err := p.ResolvePath("files/a.pdf")
	if err != nil {
		t.Fatalf("ResolvePath() error = %v", err)
	}
	if got != filepath.Join(root, "files", "a.pdf") {
		t.Errorf("ResolvePath() = %q", got)
	}

	if _, err := p.ResolvePath("files/missing.pdf"); err == nil {
		t.Error("expected error for missing file")
	}
	if _, err := p.ResolvePath(""); err == nil {
		t.Error("expected error for empty path")
	}

	// Escaping the root resolves inside it
	if _, err := p.ResolvePath("../../files/a.pdf"); err != nil {
		t.Errorf("ResolvePath() of escaping path = %v, want it clamped under root", err)
	}
}

func TestProber_NoRoot(t *testing.T) {
	_, err := NewProber("").ProbeDOI("a.pdf")
	if !errors.Is(err, ErrNoRoot) {
		t.Errorf("ProbeDOI() error = %v, want ErrNoRoot", err)
	}
}

func TestProber_NotAPDF(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, "bad.pdf"), []byte("not a pdf"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := NewProber(root).ProbeDOI("bad.pdf"); err == nil {
		t.Error("expected error for malformed PDF")
	}
}
