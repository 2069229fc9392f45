package change

import (
	"strings"
	"testing"
)

func TestExtractAddedDiff_AddedLinesOnly(t *testing.T) {
	oldContent := "line one\nline two\nline three"
	newContent := "line one\nbrand new line\nline two\nline three"

	got := ExtractAddedDiff(oldContent, newContent)
	if got != "brand new line" {
		t.Errorf("expected only the added line, got %q", got)
	}
}

func TestExtractAddedDiff_RemovalsDiscarded(t *testing.T) {
	oldContent := "keep\ndrop this\nkeep too"
	newContent := "keep\nkeep too"

	if got := ExtractAddedDiff(oldContent, newContent); got != "" {
		t.Errorf("removals must not appear in the diff, got %q", got)
	}
}

func TestExtractAddedDiff_Unchanged(t *testing.T) {
	content := "alpha\nbeta\ngamma"
	if got := ExtractAddedDiff(content, content); got != "" {
		t.Errorf("identical content must produce empty diff, got %q", got)
	}
}

func TestExtractAddedDiff_OrderPreserved(t *testing.T) {
	oldContent := "anchor"
	newContent := "first addition\nanchor\nsecond addition"

	got := ExtractAddedDiff(oldContent, newContent)
	lines := strings.Split(got, "\n")
	if len(lines) != 2 || lines[0] != "first addition" || lines[1] != "second addition" {
		t.Errorf("added lines must keep new-content order, got %q", got)
	}
}

func TestExtractAddedDiff_LinesTrimmed(t *testing.T) {
	oldContent := "stable"
	newContent := "stable\n   padded line\t"

	if got := ExtractAddedDiff(oldContent, newContent); got != "padded line" {
		t.Errorf("added lines must be trimmed, got %q", got)
	}
}

func TestExtractAddedDiff_AllNew(t *testing.T) {
	got := ExtractAddedDiff("", "everything\nis new")
	if got != "everything\nis new" {
		t.Errorf("expected all lines added, got %q", got)
	}
}
