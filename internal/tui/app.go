// Package tui is a terminal frontend for a board: two cells per block
// column, mouse drag to swap, sound cues on matches.
package tui

import (
	"log/slog"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/Garsondee/Block-Launch/internal/board"
)

const (
	cellW     = 2 // screen columns per board column
	frameRate = 16 * time.Millisecond
	feedLines = 12
)

// App owns the screen and the board it shows.
type App struct {
	screen tcell.Screen
	board  *board.Board
	log    *slog.Logger
	sound  *Sound

	originX, originY int // screen cell of the board's top-left slot

	feed     []board.Entry
	lastSeq  int
	paused   bool
	dragging bool
	status   string
}

// New wraps an initialised screen. sound may be nil.
func New(screen tcell.Screen, b *board.Board, sound *Sound, log *slog.Logger) *App {
	a := &App{
		screen:  screen,
		board:   b,
		log:     log,
		sound:   sound,
		originX: 1,
		originY: 1,
	}
	screen.EnableMouse()
	a.drainEvents()
	return a
}

// Run polls input and ticks the board at roughly 60Hz until the user quits.
func (a *App) Run() {
	ticker := time.NewTicker(frameRate)
	defer ticker.Stop()

	events := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := a.screen.PollEvent()
			if ev == nil {
				close(events)
				return
			}
			events <- ev
		}
	}()

	a.draw()
	for {
		select {
		case ev, ok := <-events:
			if !ok || !a.handleEvent(ev) {
				return
			}
		case <-ticker.C:
			if !a.paused {
				a.step()
			}
			a.draw()
		}
	}
}

// step advances one tick and reacts to the events it produced.
func (a *App) step() {
	a.board.AdvanceTick()
	for _, e := range a.drainEvents() {
		if e.Category == "match" {
			a.sound.Match(int(e.NumVal))
		}
	}
}

// drainEvents moves new log entries into the feed and returns them.
func (a *App) drainEvents() []board.Entry {
	el := a.board.Events()
	fresh := el.After(a.lastSeq)
	a.lastSeq = el.LastSeq()
	a.feed = append(a.feed, fresh...)
	if over := len(a.feed) - feedLines; over > 0 {
		a.feed = append(a.feed[:0], a.feed[over:]...)
	}
	return fresh
}

// handleEvent returns false when the app should exit.
func (a *App) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch {
		case ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC:
			return false
		case ev.Key() == tcell.KeyRune:
			switch ev.Rune() {
			case 'q':
				return false
			case 'p':
				a.paused = !a.paused
				a.log.Debug("pause toggled", "paused", a.paused, "tick", a.board.CurrentTick())
			case 'n':
				if a.paused {
					a.step()
				}
			case 'm':
				if a.sound.ToggleMute() {
					a.status = "muted"
				} else {
					a.status = "sound on"
				}
			}
		}
	case *tcell.EventMouse:
		x, y := ev.Position()
		if ev.Buttons()&tcell.Button1 != 0 {
			if a.dragging {
				a.pointerMove(x, y)
			} else {
				a.pointerDown(x, y)
			}
		} else if a.dragging {
			a.pointerUp()
		}
	case *tcell.EventResize:
		a.screen.Sync()
	}
	return true
}

// blockAt maps a screen cell to the block drawn there.
func (a *App) blockAt(x, y int) *board.Block {
	cx, cy := x-a.originX, y-a.originY
	if cx < 0 || cy < 0 || cx >= a.board.Width()*cellW || cy >= a.board.Height() {
		return nil
	}
	size := a.board.BlockSize()
	px := float64(cx/cellW)*size + size/2
	py := float64(cy)*size + size/2
	return a.board.BlockAt(px, py)
}

func (a *App) pointerDown(x, y int) {
	blk := a.blockAt(x, y)
	if blk == nil {
		a.board.DeselectBlock()
		return
	}
	a.dragging = a.board.SelectBlock(blk)
	a.drainEvents()
}

func (a *App) pointerMove(x, y int) {
	sel := a.board.Selected()
	if sel == nil {
		a.dragging = false
		return
	}
	target := a.blockAt(x, y)
	if target == nil || target == sel {
		return
	}
	if a.board.DragOver(target) {
		a.drainEvents()
	}
}

func (a *App) pointerUp() {
	a.dragging = false
	a.board.DeselectBlock()
}
