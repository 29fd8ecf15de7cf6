package tui

import (
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/Garsondee/Block-Launch/internal/board"
	"github.com/Garsondee/Block-Launch/internal/logger"
)

func newTestApp(t *testing.T, opts ...board.SimOption) (*App, *board.TestSim, tcell.SimulationScreen) {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(screen.Fini)
	screen.SetSize(100, 30)
	ts := board.NewTestSim(opts...)
	return New(screen, ts.Board, nil, logger.Discard()), ts, screen
}

// cellOf is the screen cell showing block blk.
func cellOf(a *App, blk *board.Block) (int, int) {
	return a.originX + blk.Column()*cellW, a.originY + a.slotOf(blk.Y())
}

func TestApp_DrawPlacesBlocksInTheirSlots(t *testing.T) {
	a, ts, screen := newTestApp(t, board.WithGrid(3, 6), board.WithStack(1, 4))
	ts.RunTicks(1)
	a.draw()

	x, y := cellOf(a, ts.Block(1, 0))
	if y != a.originY+5 {
		t.Fatalf("floor block should sit on the bottom slot, got row %d", y-a.originY)
	}
	for dx := 0; dx < cellW; dx++ {
		r, _, st, _ := screen.GetContent(x+dx, y)
		fg, _, _ := st.Decompose()
		if r != '█' || fg != tcell.ColorRed {
			t.Fatalf("cell %d: got %q fg=%v, want red block", dx, r, fg)
		}
	}
	if r, _, _, _ := screen.GetContent(a.originX, y); r != ' ' {
		t.Fatalf("empty column should be blank, got %q", r)
	}
}

func TestApp_MouseDragSwaps(t *testing.T) {
	a, ts, _ := newTestApp(t, board.WithGrid(2, 6), board.WithStack(0, 1, 2))
	ts.RunTicks(1)
	lo, hi := ts.Block(0, 0), ts.Block(0, 1)

	lx, ly := cellOf(a, lo)
	hx, hy := cellOf(a, hi)
	a.handleEvent(tcell.NewEventMouse(lx, ly, tcell.Button1, tcell.ModNone))
	if a.board.Selected() != lo {
		t.Fatal("button press should select the block")
	}
	a.handleEvent(tcell.NewEventMouse(hx+1, hy, tcell.Button1, tcell.ModNone))
	if ts.Block(0, 0) != hi {
		t.Fatal("drag should swap the neighbours")
	}
	a.handleEvent(tcell.NewEventMouse(hx, hy, tcell.ButtonNone, tcell.ModNone))
	if a.board.Selected() != nil || a.dragging {
		t.Fatal("release should deselect")
	}
}

func TestApp_Keys(t *testing.T) {
	a, _, _ := newTestApp(t, board.WithGrid(2, 6))
	if !a.handleEvent(tcell.NewEventKey(tcell.KeyRune, 'p', tcell.ModNone)) || !a.paused {
		t.Fatal("p should pause")
	}
	a.handleEvent(tcell.NewEventKey(tcell.KeyRune, 'n', tcell.ModNone))
	if a.board.CurrentTick() != 1 {
		t.Fatalf("n should single-step while paused, tick=%d", a.board.CurrentTick())
	}
	a.handleEvent(tcell.NewEventKey(tcell.KeyRune, 'm', tcell.ModNone))
	if a.status != "muted" {
		t.Fatalf("without audio the app reports muted, got %q", a.status)
	}
	if a.handleEvent(tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone)) {
		t.Fatal("q should quit")
	}
	if a.handleEvent(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone)) {
		t.Fatal("Esc should quit")
	}
}

func TestApp_FeedKeepsNewestEvents(t *testing.T) {
	a, ts, _ := newTestApp(t, board.WithGrid(4, 12))
	for i := 0; i < feedLines+5; i++ {
		if _, err := ts.Board.SpawnBlock(i%4, 1+i%3); err != nil {
			t.Fatal(err)
		}
	}
	a.step()
	if len(a.feed) != feedLines {
		t.Fatalf("feed holds %d lines, want %d", len(a.feed), feedLines)
	}
	if last := a.feed[len(a.feed)-1]; last.Seq != ts.Events.LastSeq() {
		t.Fatalf("newest entry missing: last seq %d vs %d", last.Seq, ts.Events.LastSeq())
	}
}

func TestMatchPitch(t *testing.T) {
	if matchPitch(3) != 440 || matchPitch(1) != 440 {
		t.Fatal("runs of three or fewer play A4")
	}
	if p := matchPitch(15); p < 879 || p > 881 {
		t.Fatalf("twelve extra blocks should be an octave up, got %g", p)
	}
	var s *Sound
	s.Match(4)
	s.Close()
}
