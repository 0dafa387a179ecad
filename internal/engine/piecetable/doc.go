// Package piecetable implements a piece table: a text sequence backed by
// two buffers, an immutable original buffer holding the text the table was
// opened with and an append-only added buffer holding everything inserted
// since. The document is described by an ordered list of pieces, each a
// contiguous run of bytes in one of the two buffers; concatenating the
// pieces in order reconstructs the document.
//
// Edits never move existing text. An insert appends to the added buffer and
// splits at most one piece; a delete trims or splits the pieces covering the
// range. Sequential typing at the end of the most recently extended piece
// grows that piece in place, so interactive insertion does not fragment the
// piece list.
//
// Basic usage:
//
//	t := piecetable.New("Hello World")
//	t.Insert(5, ",")   // "Hello, World"
//	t.Delete(5, 1)     // "Hello World"
//	s := t.String()
//
// Every successful mutation bumps a monotonically increasing revision
// counter, readable via Revision. Callers that cache derived state (line
// indexes, layout) compare their last-observed revision against the current
// one to detect staleness; comparing lengths is not sufficient because a
// delete followed by an equal-length insert leaves the length unchanged.
//
// A Table is not safe for concurrent use. The engine is single-threaded by
// design; callers that share a table across goroutines must serialize access
// themselves.
package piecetable
