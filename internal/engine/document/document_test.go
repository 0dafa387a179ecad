package document

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/quilltext/quill/internal/engine/piecetable"
)

func TestNewDocument(t *testing.T) {
	d := NewDocument()

	if !d.IsEmpty() {
		t.Error("new document should be empty")
	}
	if d.Len() != 0 {
		t.Errorf("expected length 0, got %d", d.Len())
	}
	if d.LineCount() != 1 {
		t.Errorf("expected 1 line, got %d", d.LineCount())
	}
	if d.ID() == uuid.Nil {
		t.Error("document should get a generated ID")
	}
}

func TestNewDocumentFromString(t *testing.T) {
	d := NewDocumentFromString("line1\nline2\nline3")

	if d.LineCount() != 3 {
		t.Errorf("expected 3 lines, got %d", d.LineCount())
	}
	if d.LineText(0) != "line1" {
		t.Errorf("expected 'line1', got %q", d.LineText(0))
	}
	if d.LineText(2) != "line3" {
		t.Errorf("expected 'line3', got %q", d.LineText(2))
	}
}

func TestNewDocumentFromReader(t *testing.T) {
	d, err := NewDocumentFromReader(strings.NewReader("ab\ncd"))
	if err != nil {
		t.Fatalf("reader construction failed: %v", err)
	}
	if d.Text() != "ab\ncd" {
		t.Errorf("expected 'ab\\ncd', got %q", d.Text())
	}
}

func TestLineEndingNormalization(t *testing.T) {
	d := NewDocumentFromString("a\r\nb\r\nc")

	if d.Text() != "a\nb\nc" {
		t.Errorf("CRLF input should store LF, got %q", d.Text())
	}
	if d.LineEnding() != LineEndingCRLF {
		t.Errorf("expected detected CRLF, got %v", d.LineEnding())
	}
	if d.Export() != "a\r\nb\r\nc" {
		t.Errorf("export should restore CRLF, got %q", d.Export())
	}
}

func TestInsertNormalizesLineEndings(t *testing.T) {
	d := NewDocumentFromString("ab")

	if err := d.Insert(1, "x\r\ny"); err != nil {
		t.Fatalf("insert failed: %v", err)
	}
	if d.Text() != "ax\nyb" {
		t.Errorf("expected 'ax\\nyb', got %q", d.Text())
	}
}

func TestDeleteHalfOpenRange(t *testing.T) {
	d := NewDocumentFromString("Hello, World!")

	if err := d.Delete(5, 12); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if d.Text() != "Hello!" {
		t.Errorf("expected 'Hello!', got %q", d.Text())
	}

	if err := d.Delete(3, 2); !errors.Is(err, piecetable.ErrInvalidRange) {
		t.Errorf("expected ErrInvalidRange for inverted range, got %v", err)
	}
}

func TestReplace(t *testing.T) {
	d := NewDocumentFromString("Hello World")

	if err := d.Replace(6, 11, "Go"); err != nil {
		t.Fatalf("replace failed: %v", err)
	}
	if d.Text() != "Hello Go" {
		t.Errorf("expected 'Hello Go', got %q", d.Text())
	}
}

func TestReplaceRejectedLeavesStateUnchanged(t *testing.T) {
	d := NewDocumentFromString("Hello")
	rev := d.Revision()

	if err := d.Replace(2, 100, "X"); !errors.Is(err, piecetable.ErrOutOfRange) {
		t.Errorf("expected ErrOutOfRange, got %v", err)
	}
	if d.Text() != "Hello" || d.Revision() != rev {
		t.Error("rejected replace mutated the document")
	}
}

func TestOffsetToPoint(t *testing.T) {
	d := NewDocumentFromString("ab\ncd\n\nxyz")

	tests := []struct {
		offset int
		want   Point
	}{
		{0, Point{0, 0}},
		{2, Point{0, 2}},  // end of first line
		{3, Point{1, 0}},  // just past the terminator
		{5, Point{1, 2}},  // end of "cd"
		{6, Point{2, 0}},  // the empty line
		{7, Point{3, 0}},  // start of "xyz"
		{10, Point{3, 3}}, // end of document
	}

	for _, tt := range tests {
		if got := d.OffsetToPoint(tt.offset); got != tt.want {
			t.Errorf("OffsetToPoint(%d) = %v, want %v", tt.offset, got, tt.want)
		}
	}

	// Clamping
	if got := d.OffsetToPoint(-5); got != (Point{0, 0}) {
		t.Errorf("negative offset should clamp to start, got %v", got)
	}
	if got := d.OffsetToPoint(999); got != (Point{3, 3}) {
		t.Errorf("oversized offset should clamp to end, got %v", got)
	}
}

func TestPointToOffset(t *testing.T) {
	d := NewDocumentFromString("ab\ncd\n\nxyz")

	tests := []struct {
		point Point
		want  int
	}{
		{Point{0, 0}, 0},
		{Point{0, 2}, 2},
		{Point{1, 0}, 3},
		{Point{2, 0}, 6},
		{Point{3, 3}, 10},
		{Point{0, 99}, 2},  // column clamps to line length
		{Point{99, 0}, 7},  // row clamps to last line
		{Point{-1, -1}, 0}, // negative clamps to start
	}

	for _, tt := range tests {
		if got := d.PointToOffset(tt.point); got != tt.want {
			t.Errorf("PointToOffset(%v) = %d, want %d", tt.point, got, tt.want)
		}
	}
}

func TestOffsetPointRoundTrip(t *testing.T) {
	d := NewDocumentFromString("The quick\nbrown fox\n\njumps")

	for offset := 0; offset <= d.Len(); offset++ {
		p := d.OffsetToPoint(offset)
		if got := d.PointToOffset(p); got != offset {
			t.Errorf("round trip failed at %d: point %v maps back to %d", offset, p, got)
		}
	}
}

func TestLineBounds(t *testing.T) {
	d := NewDocumentFromString("ab\ncd\n\nxyz")

	if got := d.LineStartOffset(1); got != 3 {
		t.Errorf("LineStartOffset(1) = %d, want 3", got)
	}
	if got := d.LineEndOffset(1); got != 5 {
		t.Errorf("LineEndOffset(1) = %d, want 5", got)
	}
	if got := d.LineText(2); got != "" {
		t.Errorf("LineText(2) = %q, want empty", got)
	}
	if got := d.LineText(3); got != "xyz" {
		t.Errorf("LineText(3) = %q, want 'xyz'", got)
	}
}

func TestRevisionTracksEdits(t *testing.T) {
	d := NewDocumentFromString("abcdef")
	r0 := d.Revision()

	// Equal-length edit: length is unchanged but revision must move.
	if err := d.Delete(2, 4); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if err := d.Insert(2, "XY"); err != nil {
		t.Fatalf("insert failed: %v", err)
	}

	if d.Len() != 6 {
		t.Fatalf("length should be unchanged, got %d", d.Len())
	}
	if d.Revision() == r0 {
		t.Error("revision unchanged after equal-length edit")
	}
}

func TestWithID(t *testing.T) {
	id := uuid.New()
	d := NewDocumentFromString("x", WithID(id))

	if d.ID() != id {
		t.Errorf("expected ID %v, got %v", id, d.ID())
	}
}

func TestDetectLineEnding(t *testing.T) {
	tests := []struct {
		text string
		want LineEnding
	}{
		{"no endings", LineEndingLF},
		{"a\nb", LineEndingLF},
		{"a\r\nb", LineEndingCRLF},
		{"a\rb", LineEndingCR},
		{"a\r\nb\nc\r\nd", LineEndingCRLF},
	}

	for _, tt := range tests {
		if got := DetectLineEnding(tt.text); got != tt.want {
			t.Errorf("DetectLineEnding(%q) = %v, want %v", tt.text, got, tt.want)
		}
	}
}
