package piecetable

import (
	"errors"
	"fmt"
)

// Errors returned by piece table operations.
var (
	ErrNegativeIndex = errors.New("negative index")
	ErrOutOfRange    = errors.New("index out of range")
	ErrInvalidRange  = errors.New("invalid range")
)

// OutOfRangeError reports an access past the end of the document. It wraps
// ErrOutOfRange so callers can match it with errors.Is.
type OutOfRangeError struct {
	Index  int // requested offset
	Length int // requested run length (0 for point accesses)
	DocLen int // document length at the time of the call
}

func (e *OutOfRangeError) Error() string {
	if e.Length > 0 {
		return fmt.Sprintf("range [%d, %d) out of range for document of length %d",
			e.Index, e.Index+e.Length, e.DocLen)
	}
	return fmt.Sprintf("index %d out of range for document of length %d", e.Index, e.DocLen)
}

func (e *OutOfRangeError) Unwrap() error {
	return ErrOutOfRange
}
