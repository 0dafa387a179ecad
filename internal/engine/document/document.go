package document

import (
	"io"
	"strings"

	"github.com/google/uuid"

	"github.com/quilltext/quill/internal/engine/piecetable"
)

// Document wraps a piece table with editor-facing functionality: line-ending
// handling, line lookups, and offset/point conversion.
type Document struct {
	id         uuid.UUID
	table      *piecetable.Table
	lineEnding LineEnding
}

// NewDocument creates a new empty document.
func NewDocument(opts ...Option) *Document {
	d := &Document{
		id:         uuid.New(),
		table:      piecetable.New(""),
		lineEnding: LineEndingLF,
	}

	for _, opt := range opts {
		opt(d)
	}

	return d
}

// NewDocumentFromString creates a document with initial content. Unless an
// explicit line ending option is given, the style is detected from the text;
// the stored text is LF-normalized either way.
func NewDocumentFromString(s string, opts ...Option) *Document {
	d := &Document{
		id:         uuid.New(),
		lineEnding: DetectLineEnding(s),
	}

	for _, opt := range opts {
		opt(d)
	}

	d.table = piecetable.New(normalizeToLF(s))
	return d
}

// NewDocumentFromReader creates a document from an io.Reader.
func NewDocumentFromReader(r io.Reader, opts ...Option) (*Document, error) {
	// Read everything first so CRLF sequences split across read boundaries
	// normalize correctly.
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return NewDocumentFromString(string(data), opts...), nil
}

// normalizeToLF converts all line endings to LF.
func normalizeToLF(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	return s
}

// ID returns the document's identifier.
func (d *Document) ID() uuid.UUID {
	return d.id
}

// LineEnding returns the document's export line ending style.
func (d *Document) LineEnding() LineEnding {
	return d.lineEnding
}

// SetLineEnding changes the export line ending style. Stored text stays
// LF-normalized; only Export is affected.
func (d *Document) SetLineEnding(le LineEnding) {
	d.lineEnding = le
}

// Revision returns the edit-sequence counter of the underlying table.
func (d *Document) Revision() uint64 {
	return d.table.Revision()
}

// Read Operations

// Len returns the document length in bytes.
func (d *Document) Len() int {
	return d.table.Len()
}

// IsEmpty returns true if the document has no content.
func (d *Document) IsEmpty() bool {
	return d.table.Len() == 0
}

// Text returns the full document content, LF-terminated.
func (d *Document) Text() string {
	return d.table.String()
}

// TextRange returns the text in the half-open byte range [start, end).
func (d *Document) TextRange(start, end int) (string, error) {
	return d.table.Slice(start, end)
}

// ByteAt returns the byte at the given offset.
func (d *Document) ByteAt(offset int) (byte, error) {
	return d.table.ByteAt(offset)
}

// Export returns the document content with the configured line ending style
// applied, for writing back to storage.
func (d *Document) Export() string {
	text := d.table.String()
	if d.lineEnding == LineEndingLF {
		return text
	}
	return strings.ReplaceAll(text, "\n", d.lineEnding.Sequence())
}

// Write Operations

// Insert inserts text before the byte at offset. Inserted text is
// LF-normalized before it reaches the table.
func (d *Document) Insert(offset int, text string) error {
	return d.table.Insert(offset, normalizeToLF(text))
}

// Delete removes the half-open byte range [start, end).
func (d *Document) Delete(start, end int) error {
	if start > end {
		return piecetable.ErrInvalidRange
	}
	return d.table.Delete(start, end-start)
}

// Replace substitutes the half-open byte range [start, end) with text. The
// range is validated before any mutation so a rejected call leaves the
// document unchanged.
func (d *Document) Replace(start, end int, text string) error {
	if start > end {
		return piecetable.ErrInvalidRange
	}
	if start < 0 {
		return piecetable.ErrNegativeIndex
	}
	if end > d.table.Len() {
		return &piecetable.OutOfRangeError{Index: start, Length: end - start, DocLen: d.table.Len()}
	}

	if err := d.table.Delete(start, end-start); err != nil {
		return err
	}
	return d.table.Insert(start, normalizeToLF(text))
}

// Coordinate Conversion

// LineCount returns the number of lines. An empty document has one line.
func (d *Document) LineCount() int {
	return strings.Count(d.table.String(), "\n") + 1
}

// lineBounds returns the [start, end) offsets of the given line's content,
// excluding the terminator. Rows past the last line clamp to the last line;
// negative rows clamp to the first.
func (d *Document) lineBounds(row int) (int, int) {
	text := d.table.String()

	start := 0
	for i := 0; i < row; i++ {
		nl := strings.IndexByte(text[start:], '\n')
		if nl < 0 {
			break
		}
		start += nl + 1
	}

	end := len(text)
	if nl := strings.IndexByte(text[start:], '\n'); nl >= 0 {
		end = start + nl
	}
	return start, end
}

// LineStartOffset returns the byte offset of the start of a line.
func (d *Document) LineStartOffset(row int) int {
	start, _ := d.lineBounds(row)
	return start
}

// LineEndOffset returns the byte offset of the end of a line, before its
// terminator.
func (d *Document) LineEndOffset(row int) int {
	_, end := d.lineBounds(row)
	return end
}

// LineText returns the text of a line without its terminator.
func (d *Document) LineText(row int) string {
	text := d.table.String()
	start, end := d.lineBounds(row)
	return text[start:end]
}

// OffsetToPoint converts a byte offset to a line/column point. The offset is
// clamped to [0, Len()].
func (d *Document) OffsetToPoint(offset int) Point {
	if offset < 0 {
		offset = 0
	}
	if offset > d.table.Len() {
		offset = d.table.Len()
	}

	prefix, _ := d.table.Slice(0, offset)
	line := strings.Count(prefix, "\n")
	column := offset - (strings.LastIndexByte(prefix, '\n') + 1)
	return Point{Line: line, Column: column}
}

// PointToOffset converts a line/column point to a byte offset. The line is
// clamped to the document's lines and the column to the line's length, so
// every point maps to a valid offset.
func (d *Document) PointToOffset(p Point) int {
	line := p.Line
	if line < 0 {
		line = 0
	}

	start, end := d.lineBounds(line)

	column := p.Column
	if column < 0 {
		column = 0
	}
	if column > end-start {
		column = end - start
	}
	return start + column
}
