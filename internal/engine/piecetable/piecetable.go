package piecetable

import "strings"

// Table is a piece table over two backing buffers. The original buffer is
// fixed at construction; the added buffer only ever grows, so a piece's
// offset into it stays valid for the lifetime of the table.
//
// Invariants maintained by every mutation:
//   - the piece lengths sum to the document length
//   - no zero-length piece persists
//   - a rejected call leaves the table byte-for-byte unchanged
type Table struct {
	original string
	added    []byte
	pieces   []Piece
	length   int
	revision uint64
}

// New creates a table holding the given text as its original buffer.
func New(text string) *Table {
	t := &Table{
		original: text,
		length:   len(text),
	}
	if len(text) > 0 {
		t.pieces = []Piece{{Source: Original, Offset: 0, Length: len(text)}}
	}
	return t
}

// Len returns the document length in bytes.
func (t *Table) Len() int {
	return t.length
}

// Revision returns the edit-sequence counter. It increases by one on every
// successful mutation and never decreases; readers holding derived caches
// compare it against their last-observed value to detect staleness.
func (t *Table) Revision() uint64 {
	return t.revision
}

// PieceCount returns the number of pieces in the table.
func (t *Table) PieceCount() int {
	return len(t.pieces)
}

// Pieces returns a copy of the piece list in document order.
func (t *Table) Pieces() []Piece {
	out := make([]Piece, len(t.pieces))
	copy(out, t.pieces)
	return out
}

// locate translates a logical offset into (piece index, offset within that
// piece's buffer). An offset landing exactly on a piece boundary resolves to
// the end of the preceding piece, not the start of the following one; insert
// placement depends on this. index == Len() resolves to the end of the last
// piece. On an empty table the piece index is -1.
func (t *Table) locate(index int) (int, int, error) {
	if index < 0 {
		return 0, 0, ErrNegativeIndex
	}
	if index > t.length {
		return 0, 0, &OutOfRangeError{Index: index, DocLen: t.length}
	}

	remaining := index
	for i, p := range t.pieces {
		if remaining <= p.Length {
			return i, p.Offset + remaining, nil
		}
		remaining -= p.Length
	}
	return -1, 0, nil
}

// splice rewrites the piece list as
//
//	pieces[:index] + repl + pieces[index+removeCount:]
//
// It is the single point where the piece list changes shape; Insert and
// Delete both funnel through it.
func (t *Table) splice(index, removeCount int, repl []Piece) {
	out := make([]Piece, 0, len(t.pieces)-removeCount+len(repl))
	out = append(out, t.pieces[:index]...)
	out = append(out, repl...)
	out = append(out, t.pieces[index+removeCount:]...)
	t.pieces = out
}

// dropEmpty filters zero-length pieces in place.
func dropEmpty(pieces []Piece) []Piece {
	out := pieces[:0]
	for _, p := range pieces {
		if p.Length > 0 {
			out = append(out, p)
		}
	}
	return out
}

// Insert inserts text before the byte at index. Inserting at Len() appends.
// An empty text is a successful no-op that does not bump the revision.
//
// Sequential typing hits a coalescing fast path: when index is the logical
// end of the piece most recently extended into the added buffer, that piece
// grows in place instead of splitting, so the piece list stays compact under
// interactive insertion.
func (t *Table) Insert(index int, text string) error {
	if text == "" {
		return nil
	}

	pi, bufOff, err := t.locate(index)
	if err != nil {
		return err
	}

	addedOffset := len(t.added)
	t.added = append(t.added, text...)
	t.length += len(text)
	t.revision++

	if pi < 0 {
		t.pieces = append(t.pieces, Piece{Source: Added, Offset: addedOffset, Length: len(text)})
		return nil
	}

	cur := t.pieces[pi]

	// Fast path: the located piece ends in the added buffer exactly where we
	// just appended, so it is literally the piece most recently extended.
	if cur.Source == Added && bufOff == cur.end() && bufOff == addedOffset {
		t.pieces[pi].Length += len(text)
		return nil
	}

	repl := dropEmpty([]Piece{
		{Source: cur.Source, Offset: cur.Offset, Length: bufOff - cur.Offset},
		{Source: Added, Offset: addedOffset, Length: len(text)},
		{Source: cur.Source, Offset: bufOff, Length: cur.Length - (bufOff - cur.Offset)},
	})
	t.splice(pi, 1, repl)
	return nil
}

// Delete removes count bytes starting at index. A zero count is a successful
// no-op that does not bump the revision.
//
// A deletion strictly interior to a single piece splits it into a prefix and
// a suffix piece; deletions touching a piece boundary trim the piece from
// that side. Ranges spanning several pieces keep the start piece's head and
// the stop piece's tail and drop everything between.
func (t *Table) Delete(index, count int) error {
	if count == 0 {
		return nil
	}
	if index < 0 || count < 0 {
		return ErrNegativeIndex
	}
	if index+count > t.length {
		return &OutOfRangeError{Index: index, Length: count, DocLen: t.length}
	}

	startIdx, startOff, _ := t.locate(index)
	stopIdx, stopOff, _ := t.locate(index + count)

	start := t.pieces[startIdx]
	stop := t.pieces[stopIdx]

	repl := dropEmpty([]Piece{
		{Source: start.Source, Offset: start.Offset, Length: startOff - start.Offset},
		{Source: stop.Source, Offset: stopOff, Length: stop.end() - stopOff},
	})
	t.splice(startIdx, stopIdx-startIdx+1, repl)

	t.length -= count
	t.revision++
	return nil
}

// ByteAt returns the byte at the given offset.
func (t *Table) ByteAt(index int) (byte, error) {
	if index < 0 {
		return 0, ErrNegativeIndex
	}
	if index >= t.length {
		return 0, &OutOfRangeError{Index: index, DocLen: t.length}
	}

	pi, bufOff, _ := t.locate(index)
	p := t.pieces[pi]

	// locate resolves boundary offsets to the end of the preceding piece;
	// a point read needs the first byte of the following piece instead.
	if bufOff == p.end() {
		p = t.pieces[pi+1]
		bufOff = p.Offset
	}

	if p.Source == Added {
		return t.added[bufOff], nil
	}
	return t.original[bufOff], nil
}

// Slice returns the text in the half-open range [start, end). The range must
// satisfy 0 <= start <= end <= Len(); an inverted range is rejected with
// ErrInvalidRange.
func (t *Table) Slice(start, end int) (string, error) {
	if start < 0 || end < 0 {
		return "", ErrNegativeIndex
	}
	if start > end {
		return "", ErrInvalidRange
	}
	if end > t.length {
		return "", &OutOfRangeError{Index: start, Length: end - start, DocLen: t.length}
	}
	if start == end {
		return "", nil
	}

	var b strings.Builder
	b.Grow(end - start)

	pos := 0
	for _, p := range t.pieces {
		pieceEnd := pos + p.Length
		if pieceEnd > start {
			from := 0
			if start > pos {
				from = start - pos
			}
			to := p.Length
			if end < pieceEnd {
				to = end - pos
			}
			b.WriteString(t.segment(p, from, to))
		}
		pos = pieceEnd
		if pos >= end {
			break
		}
	}
	return b.String(), nil
}

// SliceStride returns every step-th byte of [start, end). The contiguous
// substring is materialized first and the stride applied to it, an O(end -
// start) operation; this is a cost characteristic, not a correctness caveat.
func (t *Table) SliceStride(start, end, step int) (string, error) {
	if step <= 0 {
		return "", ErrInvalidRange
	}
	s, err := t.Slice(start, end)
	if err != nil || step == 1 {
		return s, err
	}
	out := make([]byte, 0, (len(s)+step-1)/step)
	for i := 0; i < len(s); i += step {
		out = append(out, s[i])
	}
	return string(out), nil
}

// String returns the full document text.
func (t *Table) String() string {
	var b strings.Builder
	b.Grow(t.length)
	for _, p := range t.pieces {
		b.WriteString(t.segment(p, 0, p.Length))
	}
	return b.String()
}

// segment returns bytes [from, to) of the piece's run, both relative to the
// start of the run.
func (t *Table) segment(p Piece, from, to int) string {
	if p.Source == Added {
		return string(t.added[p.Offset+from : p.Offset+to])
	}
	return t.original[p.Offset+from : p.Offset+to]
}
