// Package app runs the interactive terminal editor: a single document, a
// single cursor, a scrolling viewport and a status line, drawn with tcell.
// The event loop owns all mutable state; external inputs such as config
// reloads are injected as posted events so they are handled on the loop.
package app
