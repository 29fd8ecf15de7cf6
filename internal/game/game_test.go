package game

import (
	"strings"
	"testing"

	"github.com/Garsondee/Block-Launch/internal/board"
	"github.com/Garsondee/Block-Launch/internal/config"
	"github.com/Garsondee/Block-Launch/internal/logger"
)

// newTestGame wraps a harness board in a Game without opening a window.
func newTestGame(t *testing.T, opts ...board.SimOption) (*Game, *board.TestSim) {
	t.Helper()
	ts := board.NewTestSim(opts...)
	cfg := config.Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config: %v", err)
	}
	return newGame(cfg, ts.Board, logger.Discard()), ts
}

// screenPos returns the window coordinates of the centre of a block.
func screenPos(g *Game, blk *board.Block) (int, int) {
	half := g.board.BlockSize() / 2
	x := float64(blk.Column())*g.board.BlockSize() + half
	y := blk.Y() + half
	return g.offX + int(x*g.scale), g.offY + int(y*g.scale)
}

func TestEventFeed_RingKeepsNewest(t *testing.T) {
	f := NewEventFeed(3)
	for i := 1; i <= 5; i++ {
		f.Add(board.Entry{Seq: i, Tick: i, Category: "spawn"})
	}
	got := f.Recent()
	if len(got) != 3 || got[0].Tick != 3 || got[2].Tick != 5 {
		t.Fatalf("expected ticks 3..5 oldest first, got %+v", got)
	}
	if NewEventFeed(0).Len() != 0 {
		t.Fatal("fresh feed should be empty")
	}
}

func TestEventFeed_PullOnlyTakesNewEntries(t *testing.T) {
	el := board.NewEventLog(0)
	el.Add(1, 0, 0, "spawn", "queue", "blue #1", 0)
	f := NewEventFeed(10)
	if n := f.Pull(el); n != 1 {
		t.Fatalf("first pull = %d, want 1", n)
	}
	el.Add(2, 1, 0, "spawn", "queue", "red #2", 0)
	if n := f.Pull(el); n != 1 {
		t.Fatalf("second pull = %d, want 1", n)
	}
	if f.Pull(el) != 0 || f.Len() != 2 {
		t.Fatalf("repeat pull should add nothing, len=%d", f.Len())
	}
}

func TestSpeedStepping(t *testing.T) {
	cases := []struct {
		cur, slower, faster float64
	}{
		{0, 0, 0.5},
		{0.5, 0, 1},
		{1, 0.5, 2},
		{4, 2, 4},
		{3, 2, 4},
	}
	for _, c := range cases {
		if got := slowerSpeed(c.cur); got != c.slower {
			t.Errorf("slowerSpeed(%g) = %g, want %g", c.cur, got, c.slower)
		}
		if got := fasterSpeed(c.cur); got != c.faster {
			t.Errorf("fasterSpeed(%g) = %g, want %g", c.cur, got, c.faster)
		}
	}
	if speedLabel(0) != "PAUSED" || speedLabel(2) != "2x" || speedLabel(0.5) != "0.5x" {
		t.Fatal("unexpected speed labels")
	}
}

func TestPointer_DragSwapsNeighbours(t *testing.T) {
	g, ts := newTestGame(t, board.WithGrid(2, 8), board.WithStack(0, 1, 2))
	ts.RunTicks(1)
	lo, hi := ts.Block(0, 0), ts.Block(0, 1)

	g.pointerDown(screenPos(g, lo))
	if g.board.Selected() != lo || !g.dragging {
		t.Fatal("pressing a resting block should select it")
	}
	g.pointerMove(screenPos(g, hi))
	if ts.Block(0, 0) != hi || ts.Block(0, 1) != lo {
		t.Fatal("dragging over the neighbour should swap them")
	}
	if !ts.Events.HasEntry("swap", "drag", "") {
		t.Fatalf("expected a swap event\n%s", ts.Events.Format())
	}
	g.pointerUp()
	if g.board.Selected() != nil || g.dragging {
		t.Fatal("release should clear the selection")
	}
}

func TestPointer_OutsideBoardIsIgnored(t *testing.T) {
	g, ts := newTestGame(t, board.WithGrid(2, 8), board.WithStack(0, 1))
	ts.RunTicks(1)
	g.pointerDown(g.offX+g.boardW+5, g.offY+5)
	if g.board.Selected() != nil || g.dragging {
		t.Fatal("a press in the feed panel must not select")
	}
	if _, _, ok := g.toBoard(g.offX-1, g.offY); ok {
		t.Fatal("border pixels are outside the board")
	}
}

func TestPointer_EmptySpaceDeselects(t *testing.T) {
	g, ts := newTestGame(t, board.WithGrid(2, 8), board.WithStack(0, 1))
	ts.RunTicks(1)
	g.pointerDown(screenPos(g, ts.Block(0, 0)))
	g.pointerUp()
	g.pointerDown(g.offX+2, g.offY+2)
	if g.board.Selected() != nil {
		t.Fatal("pressing empty board space should leave nothing selected")
	}
}

func TestSimTick_PullsEventsAndReports(t *testing.T) {
	g, ts := newTestGame(t, board.WithGrid(3, 8))
	if _, err := ts.Board.SpawnBlock(1, 3); err != nil {
		t.Fatal(err)
	}
	for i := 0; i < reportEvery; i++ {
		g.simTick()
	}
	found := false
	for _, e := range g.feed.Recent() {
		if e.Category == "spawn" {
			found = true
		}
	}
	if !found {
		t.Fatal("feed should carry the spawn event")
	}
	if rpt := g.reporter.Latest(); rpt == nil || rpt.Tick != reportEvery {
		t.Fatalf("expected a report at T=%d, got %+v", reportEvery, rpt)
	}
}

func TestUpdate_AccumulatesFractionalSpeed(t *testing.T) {
	g, _ := newTestGame(t, board.WithGrid(2, 8))
	g.simSpeed = 0.5
	for i := 0; i < 4; i++ {
		g.tickAccum += g.simSpeed
		for g.tickAccum >= 1.0 {
			g.tickAccum -= 1.0
			g.simTick()
		}
	}
	if g.board.CurrentTick() != 2 {
		t.Fatalf("four frames at 0.5x should run 2 ticks, ran %d", g.board.CurrentTick())
	}
}

func TestBlockColor_DimsFreeBlocks(t *testing.T) {
	free := blockColor(board.BlockView{Type: 4})
	bound := blockColor(board.BlockView{Type: 4, Group: 3})
	if bound != typeColor(4) {
		t.Fatal("group members draw at full brightness")
	}
	if free.R >= bound.R || free.A != 255 {
		t.Fatalf("free block should be dimmed, got %+v", free)
	}
	if typeColor(6) == typeColor(7) {
		t.Fatal("extra types need distinct colours")
	}
}

func TestDebugReport_DescribesBoard(t *testing.T) {
	g, ts := newTestGame(t, board.WithGrid(3, 8), board.WithStack(0, 1, 2), board.WithStack(2, 5))
	ts.RunTicks(3)
	out := g.boardDebugReport(0)
	for _, want := range []string{"Block Launch debug report", "board=3x8", "== columns", "c0  bg", "c1  -", "== events =="} {
		if !strings.Contains(out, want) {
			t.Errorf("report missing %q:\n%s", want, out)
		}
	}
}

func TestInspectorLines_FollowSelection(t *testing.T) {
	g, ts := newTestGame(t, board.WithGrid(2, 8), board.WithStack(1, 3))
	ts.RunTicks(1)
	if g.inspectorLines() != nil {
		t.Fatal("nothing to inspect yet")
	}
	g.pointerDown(screenPos(g, ts.Block(1, 0)))
	lines := g.inspectorLines()
	if len(lines) == 0 || !strings.Contains(lines[0], "yellow") {
		t.Fatalf("inspector lines = %v", lines)
	}
	g.pointerUp()
	if g.inspectorLines() == nil {
		t.Fatal("the last pressed block stays inspectable after release")
	}
}

func TestHudLines_ShowStatus(t *testing.T) {
	g, _ := newTestGame(t, board.WithGrid(2, 8))
	g.simSpeed = 0
	g.status = "copied"
	lines := g.hudLines()
	if !strings.Contains(lines[0], "PAUSED") || lines[len(lines)-1] != "copied" {
		t.Fatalf("hud lines = %v", lines)
	}
}
