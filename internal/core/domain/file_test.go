package domain

import (
	"io"
	"strings"
	"testing"
)

func newTestFile(name string, acls map[string][]string) *File {
	return &File{
		Content: io.NopCloser(strings.NewReader("content")),
		Name:    name,
		ACLs:    acls,
	}
}

func TestFile_Filename(t *testing.T) {
	f := newTestFile("/data/docs/report.pdf", nil)
	if got := f.Filename(); got != "report.pdf" {
		t.Errorf("expected 'report.pdf', got %q", got)
	}
}

func TestFile_Extension(t *testing.T) {
	f := newTestFile("/data/docs/Report.PDF", nil)
	if got := f.Extension(); got != ".pdf" {
		t.Errorf("expected '.pdf', got %q", got)
	}
}

func TestFile_ID_Deterministic(t *testing.T) {
	a := newTestFile("report.pdf", map[string][]string{"oids": {"u1"}, "groups": {"g1"}})
	b := newTestFile("report.pdf", map[string][]string{"groups": {"g1"}, "oids": {"u1"}})

	if a.ID() != b.ID() {
		t.Errorf("ids differ for identical files: %q vs %q", a.ID(), b.ID())
	}
}

func TestFile_ID_SanitisesName(t *testing.T) {
	f := newTestFile("annual report (final).pdf", nil)
	id := f.ID()

	if !strings.HasPrefix(id, "file-annual_report__final__pdf-") {
		t.Errorf("unexpected id prefix: %q", id)
	}
	if strings.ContainsAny(id, " ()") {
		t.Errorf("id contains unsafe characters: %q", id)
	}
}

func TestFile_ID_ACLsChangeIdentity(t *testing.T) {
	plain := newTestFile("report.pdf", nil)
	scoped := newTestFile("report.pdf", map[string][]string{"oids": {"u1"}})

	if plain.ID() == scoped.ID() {
		t.Error("expected differing ids for differing ACL sets")
	}
}

func TestFile_Close_NilContent(t *testing.T) {
	f := &File{Name: "x.txt"}
	if err := f.Close(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestSourcePageFromFilePage(t *testing.T) {
	t.Run("pdf gets page fragment", func(t *testing.T) {
		got := SourcePageFromFilePage("/data/report.pdf", 2)
		if got != "report.pdf#page=3" {
			t.Errorf("expected 'report.pdf#page=3', got %q", got)
		}
	})

	t.Run("non-pdf cites the file", func(t *testing.T) {
		got := SourcePageFromFilePage("/data/notes.txt", 5)
		if got != "notes.txt" {
			t.Errorf("expected 'notes.txt', got %q", got)
		}
	})
}

func TestPageImageName(t *testing.T) {
	got := PageImageName("/data/report.pdf", 0)
	if got != "report-0.png" {
		t.Errorf("expected 'report-0.png', got %q", got)
	}
}
