package cursor

import (
	"github.com/quilltext/quill/internal/engine/document"
)

// Cursor is an insertion point in a document with derived display
// coordinates. The byte offset in position is authoritative; row, column and
// preferredColumn follow it.
type Cursor struct {
	doc *document.Document

	position        int
	row             int
	column          int
	preferredColumn int

	cache        *lineCache
	seenRevision uint64
}

// New creates a cursor at the start of the document.
func New(doc *document.Document) *Cursor {
	return &Cursor{
		doc:          doc,
		cache:        newLineCache(),
		seenRevision: doc.Revision(),
	}
}

// Position returns the cursor's byte offset.
func (c *Cursor) Position() int {
	return c.position
}

// Location returns the cursor's display (row, column), both 0-based.
func (c *Cursor) Location() (int, int) {
	return c.row, c.column
}

// PreferredColumn returns the column vertical movement steers toward.
func (c *Cursor) PreferredColumn() int {
	return c.preferredColumn
}

// LineNumber returns the current line number, 1-based.
func (c *Cursor) LineNumber() int {
	return c.row + 1
}

// sync reconciles the cursor with the document. When the edit-sequence
// counter has moved the boundary cache is cleared wholesale, and a position
// past the new end is pulled back in.
func (c *Cursor) sync() {
	rev := c.doc.Revision()
	if rev == c.seenRevision {
		return
	}

	c.cache.clear()
	c.seenRevision = rev

	if c.position > c.doc.Len() {
		c.position = c.doc.Len()
	}
	c.recompute()
}

// recompute rederives (row, column) from position with a scan from the
// document start. O(position); fine for interactive repositioning.
func (c *Cursor) recompute() {
	p := c.doc.OffsetToPoint(c.position)
	c.row = p.Line
	c.column = p.Column
	c.preferredColumn = c.column
}

// SetPosition moves the cursor to the given offset, clamped to the document.
func (c *Cursor) SetPosition(position int) {
	c.sync()

	if position < 0 {
		position = 0
	}
	if n := c.doc.Len(); position > n {
		position = n
	}
	c.position = position
	c.recompute()
}

// byteAt reads the byte at the offset, or ok=false past either edge.
func (c *Cursor) byteAt(offset int) (byte, bool) {
	b, err := c.doc.ByteAt(offset)
	if err != nil {
		return 0, false
	}
	return b, true
}

// isWordSeparator reports whether the byte separates words. Word movement
// classifies bytes as whitespace or not; anything finer-grained belongs to
// the collaborating layers.
func isWordSeparator(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return false
}

// Basic Movement

// MoveLeft moves one byte left. Returns true if the cursor moved.
func (c *Cursor) MoveLeft() bool {
	c.sync()

	if c.position == 0 {
		return false
	}
	c.position--

	if c.column > 0 {
		c.column--
		c.preferredColumn = c.column
	} else {
		// Crossed onto the previous line; derive coordinates fresh.
		c.recompute()
	}
	return true
}

// MoveRight moves one byte right. Returns true if the cursor moved.
func (c *Cursor) MoveRight() bool {
	c.sync()

	if c.position >= c.doc.Len() {
		return false
	}

	b, _ := c.byteAt(c.position)
	c.position++

	if b == '\n' {
		c.row++
		c.column = 0
		c.preferredColumn = 0
	} else {
		c.column++
		c.preferredColumn = c.column
	}
	return true
}

// MoveUp moves to the previous line, steering toward the preferred column.
// The preferred column itself is left alone so repeated vertical moves keep
// tracking the column chosen by the last horizontal move.
func (c *Cursor) MoveUp() bool {
	c.sync()

	if c.row == 0 {
		return false
	}

	lineStart := c.findLineStart(c.position)
	if lineStart == 0 {
		return false
	}

	prevEnd := lineStart - 1 // the terminator of the previous line
	prevStart := c.findLineStart(prevEnd)
	prevLen := prevEnd - prevStart

	column := min(c.preferredColumn, prevLen)
	c.position = prevStart + column
	c.row--
	c.column = column
	return true
}

// MoveDown moves to the next line, steering toward the preferred column.
func (c *Cursor) MoveDown() bool {
	c.sync()

	lineEnd := c.findLineEnd(c.position)
	if lineEnd >= c.doc.Len() {
		return false
	}

	nextStart := lineEnd + 1
	nextEnd := c.findLineEnd(nextStart)
	nextLen := nextEnd - nextStart

	column := min(c.preferredColumn, nextLen)
	c.position = nextStart + column
	c.row++
	c.column = column
	return true
}

// MovePageUp moves up to lines lines, stopping at the first line.
// Returns the number of lines actually moved.
func (c *Cursor) MovePageUp(lines int) int {
	moved := 0
	for i := 0; i < lines; i++ {
		if !c.MoveUp() {
			break
		}
		moved++
	}
	return moved
}

// MovePageDown moves down up to lines lines, stopping at the last line.
// Returns the number of lines actually moved.
func (c *Cursor) MovePageDown(lines int) int {
	moved := 0
	for i := 0; i < lines; i++ {
		if !c.MoveDown() {
			break
		}
		moved++
	}
	return moved
}

// Line Movement

// MoveToLineStart moves to the beginning of the current line.
func (c *Cursor) MoveToLineStart() {
	c.sync()

	c.position = c.findLineStart(c.position)
	c.column = 0
	c.preferredColumn = 0
}

// MoveToLineEnd moves to the end of the current line, before its terminator.
func (c *Cursor) MoveToLineEnd() {
	c.sync()

	lineStart := c.findLineStart(c.position)
	lineEnd := c.findLineEnd(c.position)

	c.position = lineEnd
	c.column = lineEnd - lineStart
	c.preferredColumn = c.column
}

// MoveToDocumentStart moves to offset 0.
func (c *Cursor) MoveToDocumentStart() {
	c.sync()

	c.position = 0
	c.row = 0
	c.column = 0
	c.preferredColumn = 0
}

// MoveToDocumentEnd moves past the last byte of the document.
func (c *Cursor) MoveToDocumentEnd() {
	c.sync()

	c.position = c.doc.Len()
	c.recompute()
}

// Word Movement

// MoveWordLeft moves to the start of the previous word: first skip the
// whitespace behind the cursor, then the run of word bytes before it. The
// order matters; skipping the word first overshoots by one word when the
// cursor sits in whitespace.
func (c *Cursor) MoveWordLeft() bool {
	c.sync()

	if c.position == 0 {
		return false
	}

	pos := c.position - 1
	for pos > 0 {
		b, ok := c.byteAt(pos)
		if !ok || !isWordSeparator(b) {
			break
		}
		pos--
	}
	for pos > 0 {
		b, ok := c.byteAt(pos - 1)
		if !ok || isWordSeparator(b) {
			break
		}
		pos--
	}

	c.SetPosition(pos)
	return true
}

// MoveWordRight moves to the start of the next word: skip the rest of the
// current word, then the whitespace after it.
func (c *Cursor) MoveWordRight() bool {
	c.sync()

	n := c.doc.Len()
	if c.position >= n {
		return false
	}

	pos := c.position
	for pos < n {
		b, ok := c.byteAt(pos)
		if !ok || isWordSeparator(b) {
			break
		}
		pos++
	}
	for pos < n {
		b, ok := c.byteAt(pos)
		if !ok || !isWordSeparator(b) {
			break
		}
		pos++
	}

	c.SetPosition(pos)
	return true
}

// Line Navigation

// GotoLine moves to the start of the given 1-based line. It scans from the
// document start counting terminators and reports false, without moving,
// when the document has fewer lines.
func (c *Cursor) GotoLine(n int) bool {
	c.sync()

	if n < 1 {
		return false
	}
	target := n - 1

	text := c.doc.Text()
	pos, line := 0, 0
	for pos < len(text) && line < target {
		if text[pos] == '\n' {
			line++
		}
		pos++
	}

	if line != target {
		return false
	}
	c.SetPosition(pos)
	return true
}

// CurrentLineText returns the text of the line under the cursor, without
// its terminator.
func (c *Cursor) CurrentLineText() string {
	c.sync()

	start := c.findLineStart(c.position)
	end := c.findLineEnd(c.position)

	text, err := c.doc.TextRange(start, end)
	if err != nil {
		return ""
	}
	return text
}

// Boundary Lookups

// findLineStart scans backward from the offset to the byte after the nearest
// terminator, or the document start. Results are memoized per offset until
// the next revision change.
func (c *Cursor) findLineStart(offset int) int {
	if start, ok := c.cache.lineStart(offset); ok {
		return start
	}

	start := offset
	for start > 0 {
		b, ok := c.byteAt(start - 1)
		if !ok || b == '\n' {
			break
		}
		start--
	}

	c.cache.putLineStart(offset, start)
	return start
}

// findLineEnd scans forward from the offset to the nearest terminator, or
// the document end. The returned offset is exclusive: it addresses the
// terminator itself when one exists.
func (c *Cursor) findLineEnd(offset int) int {
	if end, ok := c.cache.lineEnd(offset); ok {
		return end
	}

	end := offset
	n := c.doc.Len()
	for end < n {
		b, ok := c.byteAt(end)
		if !ok || b == '\n' {
			break
		}
		end++
	}

	c.cache.putLineEnd(offset, end)
	return end
}
