// Package cursor implements the navigation layer over a document. A Cursor
// tracks a single logical byte offset as the source of truth and derives the
// display (row, column) pair from it, along with the preferred column that
// keeps vertical movement through ragged lines anchored to the column the
// user last chose horizontally.
//
// Line boundaries are found by scanning outward from an offset to the
// nearest line terminator and memoized per queried offset. The whole memo is
// discarded whenever the document's edit-sequence counter differs from the
// value the cursor last observed; comparing lengths would miss a delete
// followed by an equal-length insert.
//
// A Cursor holds a non-owning reference to its document and never shares
// state with another cursor. Like the engine, it is single-threaded.
package cursor
