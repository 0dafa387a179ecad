package app

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
)

// viewRows is the number of rows available for document text; the bottom row
// belongs to the status line.
func (a *App) viewRows() int {
	_, h := a.screen.Size()
	if h <= 1 {
		return 1
	}
	return h - 1
}

// expandTabs renders tabs as spaces up to the next tab stop.
func expandTabs(s string, tabWidth int) string {
	if !strings.ContainsRune(s, '\t') {
		return s
	}

	var b strings.Builder
	col := 0
	for _, r := range s {
		if r == '\t' {
			pad := tabWidth - col%tabWidth
			b.WriteString(strings.Repeat(" ", pad))
			col += pad
			continue
		}
		b.WriteRune(r)
		col++
	}
	return b.String()
}

// displayColumn is the on-screen column of a byte column, accounting for tab
// expansion in the line's prefix.
func (a *App) displayColumn(row, col int) int {
	line := a.doc.LineText(row)
	if col > len(line) {
		col = len(line)
	}
	return len(expandTabs(line[:col], a.cfg.Editor.TabWidth))
}

// ensureVisible scrolls the viewport so the cursor stays at least the
// configured margin away from the edges where possible.
func (a *App) ensureVisible() {
	row, col := a.cur.Location()
	w, _ := a.screen.Size()
	rows := a.viewRows()

	margin := a.cfg.Editor.ScrollMargin
	if margin > rows/2 {
		margin = rows / 2
	}

	if row < a.top+margin {
		a.top = row - margin
	}
	if row > a.top+rows-1-margin {
		a.top = row - rows + 1 + margin
	}
	if maxTop := a.doc.LineCount() - rows; a.top > maxTop {
		a.top = maxTop
	}
	if a.top < 0 {
		a.top = 0
	}

	dcol := a.displayColumn(row, col)
	if dcol < a.left {
		a.left = dcol
	}
	if w > 0 && dcol > a.left+w-1 {
		a.left = dcol - w + 1
	}
	if a.left < 0 {
		a.left = 0
	}
}

func (a *App) render() {
	a.screen.Clear()
	w, h := a.screen.Size()
	rows := a.viewRows()

	style := tcell.StyleDefault
	for y := 0; y < rows; y++ {
		row := a.top + y
		if row >= a.doc.LineCount() {
			break
		}
		line := expandTabs(a.doc.LineText(row), a.cfg.Editor.TabWidth)
		if a.left >= len(line) {
			continue
		}
		x := 0
		for _, r := range line[a.left:] {
			if x >= w {
				break
			}
			a.screen.SetContent(x, y, r, nil, style)
			x++
		}
	}

	a.renderStatus(w, h-1)

	row, col := a.cur.Location()
	a.screen.ShowCursor(a.displayColumn(row, col)-a.left, row-a.top)
	a.screen.Show()
}

func (a *App) renderStatus(w, y int) {
	if y < 0 {
		return
	}

	name := a.path
	if name == "" {
		name = "[scratch]"
	}
	mark := ""
	if a.modified {
		mark = " *"
	}
	if a.readOnly {
		mark = " [ro]"
	}

	row, col := a.cur.Location()
	left := fmt.Sprintf(" %s%s", name, mark)
	right := fmt.Sprintf("Ln %d, Col %d | Pos %d/%d | %s ",
		row+1, col+1, a.cur.Position(), a.doc.Len(), a.doc.LineEnding())
	if a.status != "" {
		left += " | " + a.status
	}

	bar := left
	if pad := w - len(left) - len(right); pad > 0 {
		bar += strings.Repeat(" ", pad) + right
	}

	style := tcell.StyleDefault.Reverse(true)
	x := 0
	for _, r := range bar {
		if x >= w {
			break
		}
		a.screen.SetContent(x, y, r, nil, style)
		x++
	}
	for ; x < w; x++ {
		a.screen.SetContent(x, y, ' ', nil, style)
	}
}
