package game

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// handleInput processes pointer gestures every frame and keys on their
// rising edge.
func (g *Game) handleInput() {
	g.handleMouse()
	g.handleTouch()

	currentKeys := map[ebiten.Key]bool{}
	pressed := func(k ebiten.Key) bool {
		currentKeys[k] = ebiten.IsKeyPressed(k)
		return currentKeys[k] && !g.prevKeys[k]
	}

	if pressed(ebiten.KeyH) {
		g.showHUD = !g.showHUD
	}
	if pressed(ebiten.KeyP) {
		if g.simSpeed > 0 {
			g.simSpeed = 0
		} else {
			g.simSpeed = 1
		}
	}
	if pressed(ebiten.KeyComma) {
		g.simSpeed = slowerSpeed(g.simSpeed)
	}
	if pressed(ebiten.KeyPeriod) {
		g.simSpeed = fasterSpeed(g.simSpeed)
	}
	if pressed(ebiten.KeyC) {
		g.copyDebugReport()
	}

	g.prevKeys = currentKeys
}

func (g *Game) handleMouse() {
	mx, my := ebiten.CursorPosition()
	switch {
	case inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft):
		g.pointerDown(mx, my)
	case ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft):
		g.pointerMove(mx, my)
	}
	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		g.pointerUp()
	}
}

// handleTouch follows the first finger down until it lifts.
func (g *Game) handleTouch() {
	if g.touching {
		if inpututil.IsTouchJustReleased(g.touchID) {
			g.touching = false
			g.pointerUp()
			return
		}
		g.pointerMove(ebiten.TouchPosition(g.touchID))
		return
	}
	g.touchIDs = inpututil.AppendJustPressedTouchIDs(g.touchIDs[:0])
	if len(g.touchIDs) == 0 {
		return
	}
	g.touchID = g.touchIDs[0]
	g.touching = true
	g.pointerDown(ebiten.TouchPosition(g.touchID))
}

// toBoard converts window coordinates to board pixels. ok is false outside
// the board area.
func (g *Game) toBoard(sx, sy int) (bx, by float64, ok bool) {
	if sx < g.offX || sy < g.offY || sx >= g.offX+g.boardW || sy >= g.offY+g.boardH {
		return 0, 0, false
	}
	return float64(sx-g.offX) / g.scale, float64(sy-g.offY) / g.scale, true
}

// pointerDown selects the block under the pointer. Pressing empty space
// clears the selection.
func (g *Game) pointerDown(sx, sy int) {
	bx, by, ok := g.toBoard(sx, sy)
	if !ok {
		return
	}
	blk := g.board.BlockAt(bx, by)
	if blk == nil {
		g.board.DeselectBlock()
		return
	}
	g.lastInspected = blk.ID()
	g.dragging = g.board.SelectBlock(blk)
	g.feed.Pull(g.board.Events())
}

// pointerMove swaps the selection with whatever block the drag passes over.
func (g *Game) pointerMove(sx, sy int) {
	if !g.dragging {
		return
	}
	sel := g.board.Selected()
	if sel == nil {
		g.dragging = false
		return
	}
	bx, by, ok := g.toBoard(sx, sy)
	if !ok {
		return
	}
	target := g.board.BlockAt(bx, by)
	if target == nil || target == sel {
		return
	}
	if g.board.DragOver(target) {
		g.feed.Pull(g.board.Events())
	}
}

func (g *Game) pointerUp() {
	g.dragging = false
	g.board.DeselectBlock()
}
