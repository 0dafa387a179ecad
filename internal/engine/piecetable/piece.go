package piecetable

import "fmt"

// Source identifies which backing buffer a piece reads from.
type Source uint8

const (
	Original Source = iota // the immutable buffer the table was opened with
	Added                  // the append-only buffer holding inserted text
)

// String returns the source name.
func (s Source) String() string {
	switch s {
	case Original:
		return "original"
	case Added:
		return "added"
	default:
		return "unknown"
	}
}

// Piece describes a contiguous run of bytes in one of the two backing
// buffers. Offset and Length are in bytes. A piece never changes which
// buffer it points into; edits replace pieces rather than retargeting them.
type Piece struct {
	Source Source // which buffer the run lives in
	Offset int    // start of the run within that buffer
	Length int    // number of bytes in the run
}

// String returns a human-readable representation of the piece.
func (p Piece) String() string {
	return fmt.Sprintf("%s[%d:%d)", p.Source, p.Offset, p.Offset+p.Length)
}

// end returns the offset one past the last byte of the run, within the
// piece's buffer.
func (p Piece) end() int {
	return p.Offset + p.Length
}
