package game

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/Garsondee/Block-Launch/internal/board"
)

const (
	feedPanelWidth = 320
	feedLineHeight = 11
	feedDefaultCap = 60
)

// EventFeed is a fixed-capacity ring of the most recent board events,
// drawn as a scrolling panel on the right of the window.
type EventFeed struct {
	entries []board.Entry
	head    int
	count   int
	lastSeq int
}

// NewEventFeed creates a feed holding at most capacity entries.
func NewEventFeed(capacity int) *EventFeed {
	if capacity <= 0 {
		capacity = feedDefaultCap
	}
	return &EventFeed{entries: make([]board.Entry, capacity)}
}

// Add appends one entry, evicting the oldest once full.
func (f *EventFeed) Add(e board.Entry) {
	f.entries[f.head] = e
	f.head = (f.head + 1) % len(f.entries)
	if f.count < len(f.entries) {
		f.count++
	}
	if e.Seq > f.lastSeq {
		f.lastSeq = e.Seq
	}
}

// Pull copies every log entry the feed has not seen yet and returns how
// many were added.
func (f *EventFeed) Pull(el *board.EventLog) int {
	fresh := el.After(f.lastSeq)
	for _, e := range fresh {
		f.Add(e)
	}
	return len(fresh)
}

// Recent returns entries oldest first.
func (f *EventFeed) Recent() []board.Entry {
	out := make([]board.Entry, f.count)
	n := len(f.entries)
	for i := 0; i < f.count; i++ {
		out[i] = f.entries[(f.head-f.count+i+n)%n]
	}
	return out
}

func (f *EventFeed) Len() int { return f.count }

// categoryColor picks the marker colour shown next to each feed line.
func categoryColor(cat string) color.RGBA {
	switch cat {
	case "match":
		return color.RGBA{R: 235, G: 210, B: 50, A: 255}
	case "group":
		return color.RGBA{R: 80, G: 170, B: 230, A: 255}
	case "swap", "select":
		return color.RGBA{R: 220, G: 120, B: 220, A: 255}
	case "revive":
		return color.RGBA{R: 90, G: 210, B: 110, A: 255}
	case "despawn":
		return color.RGBA{R: 220, G: 70, B: 70, A: 255}
	default:
		return color.RGBA{R: 130, G: 130, B: 130, A: 255}
	}
}

// Draw renders the feed panel with its left edge at panelX.
func (f *EventFeed) Draw(screen *ebiten.Image, panelX, panelH int) {
	vector.FillRect(screen, float32(panelX), 0, feedPanelWidth, float32(panelH), color.RGBA{R: 10, G: 10, B: 14, A: 248}, false)
	vector.StrokeLine(screen, float32(panelX), 0, float32(panelX), float32(panelH), 1.0, color.RGBA{R: 50, G: 50, B: 70, A: 255}, false)

	vector.FillRect(screen, float32(panelX), 0, feedPanelWidth, 16, color.RGBA{R: 20, G: 20, B: 32, A: 255}, false)
	ebitenutil.DebugPrintAt(screen, "EVENTS", panelX+8, 2)
	vector.StrokeLine(screen, float32(panelX), 16, float32(panelX+feedPanelWidth), 16, 1.0, color.RGBA{R: 50, G: 50, B: 80, A: 200}, false)

	entries := f.Recent()
	maxVisible := (panelH - 24) / feedLineHeight
	if len(entries) > maxVisible {
		entries = entries[len(entries)-maxVisible:]
	}

	const highlight = 3
	y := 20
	for i, e := range entries {
		if i >= len(entries)-highlight {
			vector.FillRect(screen, float32(panelX+2), float32(y), feedPanelWidth-4, feedLineHeight, color.RGBA{R: 30, G: 30, B: 44, A: 160}, false)
		}
		vector.FillRect(screen, float32(panelX+5), float32(y+3), 3, 5, categoryColor(e.Category), false)
		line := fmt.Sprintf("%4d %-6s %s", e.Tick, e.Key, e.Value)
		ebitenutil.DebugPrintAt(screen, line, panelX+12, y)
		y += feedLineHeight
	}
}
