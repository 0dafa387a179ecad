package app

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
)

func (a *App) handleKey(ev *tcell.EventKey) {
	a.status = ""

	switch ev.Key() {
	case tcell.KeyCtrlQ, tcell.KeyEscape:
		a.quit = true

	case tcell.KeyCtrlS:
		if err := a.Save(); err != nil {
			a.status = err.Error()
		}

	case tcell.KeyLeft:
		if ev.Modifiers()&tcell.ModCtrl != 0 {
			a.cur.MoveWordLeft()
		} else {
			a.cur.MoveLeft()
		}

	case tcell.KeyRight:
		if ev.Modifiers()&tcell.ModCtrl != 0 {
			a.cur.MoveWordRight()
		} else {
			a.cur.MoveRight()
		}

	case tcell.KeyUp:
		a.cur.MoveUp()

	case tcell.KeyDown:
		a.cur.MoveDown()

	case tcell.KeyHome:
		if ev.Modifiers()&tcell.ModCtrl != 0 {
			a.cur.MoveToDocumentStart()
		} else {
			a.cur.MoveToLineStart()
		}

	case tcell.KeyEnd:
		if ev.Modifiers()&tcell.ModCtrl != 0 {
			a.cur.MoveToDocumentEnd()
		} else {
			a.cur.MoveToLineEnd()
		}

	case tcell.KeyPgUp:
		a.cur.MovePageUp(a.pageStride())

	case tcell.KeyPgDn:
		a.cur.MovePageDown(a.pageStride())

	case tcell.KeyEnter:
		a.insert("\n")

	case tcell.KeyTab:
		a.insert("\t")

	case tcell.KeyBackspace, tcell.KeyBackspace2:
		a.deleteBackward()

	case tcell.KeyDelete:
		a.deleteForward()

	case tcell.KeyRune:
		a.insert(string(ev.Rune()))
	}

	a.ensureVisible()
}

// pageStride is the viewport height minus the configured overlap, at least 1.
func (a *App) pageStride() int {
	stride := a.viewRows() - a.cfg.Editor.PageOverlap
	if stride < 1 {
		stride = 1
	}
	return stride
}

func (a *App) insert(text string) {
	if a.readOnly {
		a.status = "read-only"
		return
	}

	pos := a.cur.Position()
	if err := a.doc.Insert(pos, text); err != nil {
		a.status = fmt.Sprintf("insert: %v", err)
		return
	}
	a.cur.SetPosition(pos + len(text))
	a.modified = true
}

func (a *App) deleteBackward() {
	if a.readOnly {
		a.status = "read-only"
		return
	}

	pos := a.cur.Position()
	if pos == 0 {
		return
	}
	if err := a.doc.Delete(pos-1, pos); err != nil {
		a.status = fmt.Sprintf("delete: %v", err)
		return
	}
	a.cur.SetPosition(pos - 1)
	a.modified = true
}

func (a *App) deleteForward() {
	if a.readOnly {
		a.status = "read-only"
		return
	}

	pos := a.cur.Position()
	if pos >= a.doc.Len() {
		return
	}
	if err := a.doc.Delete(pos, pos+1); err != nil {
		a.status = fmt.Sprintf("delete: %v", err)
		return
	}
	a.cur.SetPosition(pos)
	a.modified = true
}
