package tui

import (
	"fmt"
	"math"

	"github.com/gdamore/tcell/v2"

	"github.com/Garsondee/Block-Launch/internal/board"
)

var typeColors = [...]tcell.Color{
	tcell.ColorGray,
	tcell.ColorBlue,
	tcell.ColorGreen,
	tcell.ColorYellow,
	tcell.ColorRed,
	tcell.ColorPurple,
}

var extraColors = [...]tcell.Color{
	tcell.ColorOrange,
	tcell.ColorTeal,
	tcell.ColorPink,
	tcell.ColorOlive,
}

func typeColor(kind int) tcell.Color {
	if kind >= 0 && kind < len(typeColors) {
		return typeColors[kind]
	}
	return extraColors[(kind-len(typeColors))%len(extraColors)]
}

// blockStyle dims free blocks and highlights the selection.
func blockStyle(v board.BlockView) tcell.Style {
	st := tcell.StyleDefault.Foreground(typeColor(v.Type))
	if v.Group == 0 && !v.Selected {
		st = st.Dim(true)
	}
	if v.Selected {
		st = st.Reverse(true)
	}
	return st
}

func blockRune(v board.BlockView) rune {
	switch {
	case v.Type == board.TypeDead:
		return '▒'
	case v.State == board.StateLaunching:
		return '▓'
	}
	return '█'
}

// slotOf is the screen row a block's top edge rounds to; it may fall
// outside 0..height-1.
func (a *App) slotOf(y float64) int {
	return int(math.Round(y / a.board.BlockSize()))
}

func (a *App) putString(x, y int, s string, st tcell.Style) {
	for _, r := range s {
		a.screen.SetContent(x, y, r, nil, st)
		x++
	}
}

func (a *App) draw() {
	a.screen.Clear()
	w, h := a.board.Width()*cellW, a.board.Height()
	frame := tcell.StyleDefault.Foreground(tcell.ColorSlateGray)

	for x := -1; x <= w; x++ {
		a.screen.SetContent(a.originX+x, a.originY-1, '─', nil, frame)
		a.screen.SetContent(a.originX+x, a.originY+h, '─', nil, frame)
	}
	for y := -1; y <= h; y++ {
		a.screen.SetContent(a.originX-1, a.originY+y, '│', nil, frame)
		a.screen.SetContent(a.originX+w, a.originY+y, '│', nil, frame)
	}

	for _, v := range a.board.Projection() {
		row := a.slotOf(v.Y)
		if row < 0 || row >= h {
			continue
		}
		st, r := blockStyle(v), blockRune(v)
		for dx := 0; dx < cellW; dx++ {
			a.screen.SetContent(a.originX+v.Column*cellW+dx, a.originY+row, r, nil, st)
		}
	}

	text := tcell.StyleDefault
	state := "running"
	if a.paused {
		state = "PAUSED (n=step)"
	}
	a.putString(a.originX-1, a.originY+h+1, fmt.Sprintf("T=%d launched=%d groups=%d %s", a.board.CurrentTick(), a.board.TotalLaunched(), len(a.board.Groups()), state), text)
	a.putString(a.originX-1, a.originY+h+2, "drag=swap p=pause m=mute q=quit "+a.status, text.Dim(true))

	fx := a.originX + w + 3
	for i, e := range a.feed {
		a.putString(fx, a.originY+i, e.String(), text.Foreground(feedColor(e.Category)))
	}
	a.screen.Show()
}

func feedColor(cat string) tcell.Color {
	switch cat {
	case "match":
		return tcell.ColorYellow
	case "group":
		return tcell.ColorLightBlue
	case "swap", "select":
		return tcell.ColorFuchsia
	case "revive":
		return tcell.ColorGreen
	case "despawn":
		return tcell.ColorRed
	}
	return tcell.ColorSilver
}
