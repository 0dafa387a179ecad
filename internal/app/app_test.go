package app

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/quilltext/quill/internal/config"
	"github.com/quilltext/quill/internal/engine/document"
)

func newTestApp(t *testing.T, text string, opts ...Option) *App {
	t.Helper()

	sim := tcell.NewSimulationScreen("UTF-8")
	if err := sim.Init(); err != nil {
		t.Fatalf("init simulation screen: %v", err)
	}
	sim.SetSize(20, 6)
	t.Cleanup(sim.Fini)

	doc := document.NewDocumentFromString(text)
	return New(doc, "", append([]Option{WithScreen(sim)}, opts...)...)
}

func press(a *App, key tcell.Key, r rune, mod tcell.ModMask) {
	a.handleKey(tcell.NewEventKey(key, r, mod))
}

func typeText(a *App, s string) {
	for _, r := range s {
		press(a, tcell.KeyRune, r, tcell.ModNone)
	}
}

func TestTypingInsertsAndAdvances(t *testing.T) {
	a := newTestApp(t, "")

	typeText(a, "hi")
	press(a, tcell.KeyEnter, 0, tcell.ModNone)
	typeText(a, "there")

	if got := a.doc.Text(); got != "hi\nthere" {
		t.Errorf("text = %q, want 'hi\\nthere'", got)
	}
	if a.cur.Position() != a.doc.Len() {
		t.Errorf("cursor at %d, want document end %d", a.cur.Position(), a.doc.Len())
	}
	if !a.modified {
		t.Error("typing should mark the buffer modified")
	}
}

func TestInsertionAtCursor(t *testing.T) {
	a := newTestApp(t, "World")

	typeText(a, "Hello ")
	if got := a.doc.Text(); got != "Hello World" {
		t.Errorf("text = %q, want 'Hello World'", got)
	}
}

func TestBackspace(t *testing.T) {
	a := newTestApp(t, "abc")

	a.cur.MoveToDocumentEnd()
	press(a, tcell.KeyBackspace2, 0, tcell.ModNone)

	if got := a.doc.Text(); got != "ab" {
		t.Errorf("text = %q, want 'ab'", got)
	}
	if a.cur.Position() != 2 {
		t.Errorf("cursor at %d, want 2", a.cur.Position())
	}

	// At the document start backspace is a no-op.
	a.cur.MoveToDocumentStart()
	press(a, tcell.KeyBackspace2, 0, tcell.ModNone)
	if got := a.doc.Text(); got != "ab" {
		t.Errorf("text = %q, want 'ab'", got)
	}
}

func TestDeleteForward(t *testing.T) {
	a := newTestApp(t, "abc")

	press(a, tcell.KeyDelete, 0, tcell.ModNone)
	if got := a.doc.Text(); got != "bc" {
		t.Errorf("text = %q, want 'bc'", got)
	}
	if a.cur.Position() != 0 {
		t.Errorf("cursor at %d, want 0", a.cur.Position())
	}

	a.cur.MoveToDocumentEnd()
	press(a, tcell.KeyDelete, 0, tcell.ModNone)
	if got := a.doc.Text(); got != "bc" {
		t.Errorf("delete at end should be a no-op, got %q", got)
	}
}

func TestReadOnlyBlocksEdits(t *testing.T) {
	a := newTestApp(t, "abc", WithReadOnly())

	typeText(a, "x")
	press(a, tcell.KeyBackspace2, 0, tcell.ModNone)
	press(a, tcell.KeyDelete, 0, tcell.ModNone)
	press(a, tcell.KeyEnter, 0, tcell.ModNone)

	if got := a.doc.Text(); got != "abc" {
		t.Errorf("read-only buffer was edited: %q", got)
	}
	if a.modified {
		t.Error("read-only buffer marked modified")
	}
}

func TestWordMovementKeys(t *testing.T) {
	a := newTestApp(t, "one two three")

	press(a, tcell.KeyRight, 0, tcell.ModCtrl)
	if a.cur.Position() != 4 {
		t.Errorf("ctrl-right landed at %d, want 4", a.cur.Position())
	}

	press(a, tcell.KeyLeft, 0, tcell.ModCtrl)
	if a.cur.Position() != 0 {
		t.Errorf("ctrl-left landed at %d, want 0", a.cur.Position())
	}
}

func TestHomeEndKeys(t *testing.T) {
	a := newTestApp(t, "hello\nworld")

	a.cur.SetPosition(8)
	press(a, tcell.KeyEnd, 0, tcell.ModNone)
	if a.cur.Position() != 11 {
		t.Errorf("end landed at %d, want 11", a.cur.Position())
	}

	press(a, tcell.KeyHome, 0, tcell.ModNone)
	if a.cur.Position() != 6 {
		t.Errorf("home landed at %d, want 6", a.cur.Position())
	}

	press(a, tcell.KeyHome, 0, tcell.ModCtrl)
	if a.cur.Position() != 0 {
		t.Errorf("ctrl-home landed at %d, want 0", a.cur.Position())
	}

	press(a, tcell.KeyEnd, 0, tcell.ModCtrl)
	if a.cur.Position() != a.doc.Len() {
		t.Errorf("ctrl-end landed at %d, want %d", a.cur.Position(), a.doc.Len())
	}
}

func TestScrollKeepsCursorInsideViewport(t *testing.T) {
	// 20 lines on a 5-row view.
	a := newTestApp(t, strings.TrimSuffix(strings.Repeat("line\n", 20), "\n"))

	for i := 0; i < 12; i++ {
		press(a, tcell.KeyDown, 0, tcell.ModNone)
	}

	row, _ := a.cur.Location()
	rows := a.viewRows()
	if row < a.top || row > a.top+rows-1 {
		t.Errorf("cursor row %d outside viewport [%d, %d]", row, a.top, a.top+rows-1)
	}
	if a.top == 0 {
		t.Error("viewport should have scrolled down")
	}

	for i := 0; i < 12; i++ {
		press(a, tcell.KeyUp, 0, tcell.ModNone)
	}
	if a.top != 0 {
		t.Errorf("viewport should scroll back to the top, got %d", a.top)
	}
}

func TestPageKeysUseOverlap(t *testing.T) {
	a := newTestApp(t, strings.TrimSuffix(strings.Repeat("line\n", 20), "\n"))

	// 5 view rows with overlap 2: a page is 3 lines.
	press(a, tcell.KeyPgDn, 0, tcell.ModNone)
	if row, _ := a.cur.Location(); row != 3 {
		t.Errorf("page down landed on row %d, want 3", row)
	}

	press(a, tcell.KeyPgUp, 0, tcell.ModNone)
	if row, _ := a.cur.Location(); row != 0 {
		t.Errorf("page up landed on row %d, want 0", row)
	}
}

func TestExpandTabs(t *testing.T) {
	tests := []struct {
		in       string
		tabWidth int
		want     string
	}{
		{"no tabs", 4, "no tabs"},
		{"\tx", 4, "    x"},
		{"ab\tx", 4, "ab  x"},
		{"abcd\tx", 4, "abcd    x"},
		{"a\tb\tc", 2, "a b c"},
	}

	for _, tt := range tests {
		if got := expandTabs(tt.in, tt.tabWidth); got != tt.want {
			t.Errorf("expandTabs(%q, %d) = %q, want %q", tt.in, tt.tabWidth, got, tt.want)
		}
	}
}

func TestDisplayColumnWithTabs(t *testing.T) {
	a := newTestApp(t, "\tabc")

	if got := a.displayColumn(0, 1); got != 4 {
		t.Errorf("display column after the tab = %d, want 4", got)
	}
	if got := a.displayColumn(0, 3); got != 6 {
		t.Errorf("display column = %d, want 6", got)
	}
}

func TestApplyConfigLineEnding(t *testing.T) {
	a := newTestApp(t, "a\nb")

	cfg := config.Default()
	cfg.Editor.LineEnding = "crlf"
	a.applyConfig(cfg)

	if a.doc.Export() != "a\r\nb" {
		t.Errorf("export = %q, want CRLF", a.doc.Export())
	}

	// An invalid config is rejected without replacing the current one.
	bad := config.Default()
	bad.Editor.TabWidth = 0
	a.applyConfig(bad)
	if a.cfg.Editor.LineEnding != "crlf" {
		t.Error("invalid config replaced the active one")
	}
}

func TestSaveWritesExport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.txt")

	sim := tcell.NewSimulationScreen("UTF-8")
	if err := sim.Init(); err != nil {
		t.Fatalf("init simulation screen: %v", err)
	}
	sim.SetSize(20, 6)
	t.Cleanup(sim.Fini)

	doc := document.NewDocumentFromString("a\r\nb")
	a := New(doc, path, WithScreen(sim))

	typeText(a, "x")
	if err := a.Save(); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if string(data) != "xa\r\nb" {
		t.Errorf("saved %q, want 'xa\\r\\nb'", string(data))
	}
	if a.modified {
		t.Error("save should clear the modified flag")
	}
}

func TestSaveWithoutPath(t *testing.T) {
	a := newTestApp(t, "abc")

	if err := a.Save(); err == nil {
		t.Error("saving a pathless buffer should fail")
	}
}
