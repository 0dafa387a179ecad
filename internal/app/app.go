package app

import (
	"fmt"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/quilltext/quill/internal/config"
	"github.com/quilltext/quill/internal/engine/cursor"
	"github.com/quilltext/quill/internal/engine/document"
)

// App is an interactive editing session over one document.
type App struct {
	screen tcell.Screen
	doc    *document.Document
	cur    *cursor.Cursor
	cfg    config.Config

	path     string
	readOnly bool
	modified bool
	status   string
	quit     bool

	// Viewport origin: the first visible document row and column.
	top  int
	left int
}

// Option configures an App.
type Option func(*App)

// WithScreen injects a screen, primarily a tcell simulation screen in tests.
// The app initializes and finalizes whatever screen it ends up with.
func WithScreen(s tcell.Screen) Option {
	return func(a *App) {
		a.screen = s
	}
}

// WithConfig sets the starting configuration.
func WithConfig(cfg config.Config) Option {
	return func(a *App) {
		a.cfg = cfg
	}
}

// WithReadOnly blocks all mutating keys.
func WithReadOnly() Option {
	return func(a *App) {
		a.readOnly = true
	}
}

// New creates an app editing doc, saving back to path. An empty path
// disables saving.
func New(doc *document.Document, path string, opts ...Option) *App {
	a := &App{
		doc:  doc,
		cur:  cursor.New(doc),
		cfg:  config.Default(),
		path: path,
	}

	for _, opt := range opts {
		opt(a)
	}

	return a
}

// configEvent carries a reloaded configuration into the event loop.
type configEvent struct {
	tcell.EventTime
	cfg config.Config
}

// ApplyConfig hands a new configuration to the running event loop. Safe to
// call from other goroutines, such as a config watcher callback. Updates
// arriving before the screen exists are dropped; the next explicit Load
// covers them.
func (a *App) ApplyConfig(cfg config.Config) {
	s := a.screen
	if s == nil {
		return
	}
	ev := &configEvent{cfg: cfg}
	ev.SetEventNow()
	_ = s.PostEvent(ev)
}

// Run initializes the screen and drives the event loop until quit.
func (a *App) Run() error {
	if a.screen == nil {
		s, err := tcell.NewScreen()
		if err != nil {
			return fmt.Errorf("create screen: %w", err)
		}
		a.screen = s
	}
	if err := a.screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	defer a.screen.Fini()

	a.screen.EnablePaste()

	for !a.quit {
		a.render()

		switch ev := a.screen.PollEvent().(type) {
		case *tcell.EventKey:
			a.handleKey(ev)
		case *tcell.EventResize:
			a.screen.Sync()
		case *configEvent:
			a.applyConfig(ev.cfg)
		case nil:
			return nil
		}
	}
	return nil
}

func (a *App) applyConfig(cfg config.Config) {
	if err := cfg.Validate(); err != nil {
		a.status = fmt.Sprintf("config rejected: %v", err)
		return
	}
	a.cfg = cfg
	switch cfg.Editor.LineEnding {
	case "lf":
		a.doc.SetLineEnding(document.LineEndingLF)
	case "crlf":
		a.doc.SetLineEnding(document.LineEndingCRLF)
	case "cr":
		a.doc.SetLineEnding(document.LineEndingCR)
	case "auto":
		// Keep whatever the document was opened with.
	}
	a.status = "config reloaded"
}

// Save writes the document back to its file with the export line ending.
func (a *App) Save() error {
	if a.path == "" {
		return fmt.Errorf("no file to save to")
	}
	if err := os.WriteFile(a.path, []byte(a.doc.Export()), 0o644); err != nil {
		return fmt.Errorf("save %s: %w", a.path, err)
	}
	a.modified = false
	a.status = fmt.Sprintf("saved %s at %s", a.path, time.Now().Format("15:04:05"))
	return nil
}
