// Package document provides the editing façade over the piece table. It
// owns line-ending normalization, coordinate conversion between byte offsets
// and line/column points, and the read/write contract consumed by the cursor
// layer and by external collaborators such as renderers.
//
// Text is stored LF-normalized regardless of the line endings the document
// was opened with; the detected or configured ending style is remembered and
// reapplied by Export when the document is written back out. This keeps a
// single one-byte line terminator for all offset arithmetic.
//
// A Document re-exposes the piece table's edit-sequence counter via
// Revision. Any holder of derived state (the cursor's line-boundary cache, a
// renderer's line index) compares its last-observed revision with the
// current one to decide whether its cache is stale.
//
// Coordinate conversions are linear scans from the start of the document:
// O(offset) for OffsetToPoint and O(row) lines for PointToOffset. That is
// acceptable for interactive editing; bulk consumers should batch through
// Text or TextRange instead.
//
// Documents are not safe for concurrent use; the caller serializes access.
package document
