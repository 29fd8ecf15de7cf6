package game

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/Garsondee/Block-Launch/internal/board"
)

// Inspector panel: rendered into an offscreen buffer at 1x then blitted at inspScale.
const (
	inspScale = 2
	inspBufW  = 160
	inspBufH  = 120
	inspPad   = 4
	inspLineH = 13
)

// inspectorLines describes the selected block, or the most recently pressed
// one when nothing is selected. Returns nil when there is nothing to show.
func (g *Game) inspectorLines() []string {
	blk := g.board.Selected()
	if blk == nil {
		blk = g.board.Lookup(g.lastInspected)
	}
	if blk == nil || blk.Column() < 0 {
		return nil
	}
	lines := []string{
		fmt.Sprintf("[ #%d %s ]", blk.ID(), board.TypeName(blk.Type())),
		fmt.Sprintf("col %d  idx %d", blk.Column(), blk.Index()),
		fmt.Sprintf("state %s", blk.State()),
		fmt.Sprintf("y %.1f", blk.Y()),
	}
	if grp := blk.Group(); grp != nil {
		lines = append(lines,
			fmt.Sprintf("group G%d  %d blocks", grp.ID(), grp.Len()),
			fmt.Sprintf("flight t=%d  ttl=%d", grp.Time(), grp.TimeToLive()),
		)
	} else {
		lines = append(lines, "free")
	}
	if g.board.Selected() == blk {
		lines = append(lines, "selected: drag to swap")
	}
	return lines
}

func (g *Game) drawInspector(screen *ebiten.Image) {
	lines := g.inspectorLines()
	if lines == nil {
		return
	}
	if g.inspBuf == nil {
		g.inspBuf = ebiten.NewImage(inspBufW, inspBufH)
	}
	buf := g.inspBuf
	buf.Clear()

	border := color.RGBA{R: 70, G: 70, B: 110, A: 255}
	vector.FillRect(buf, 0, 0, inspBufW, inspBufH, color.RGBA{R: 14, G: 14, B: 20, A: 230}, false)
	vector.StrokeRect(buf, 0, 0, inspBufW, inspBufH, 1.0, border, false)

	ly := inspPad
	for i, l := range lines {
		ebitenutil.DebugPrintAt(buf, l, inspPad, ly)
		ly += inspLineH
		if i == 0 {
			vector.StrokeLine(buf, inspPad, float32(ly+1), inspBufW-inspPad, float32(ly+1), 1.0, border, false)
			ly += 4
		}
	}

	px := g.offX + g.boardW - inspBufW*inspScale - 8
	py := g.height - inspBufH*inspScale - 8
	opts := &ebiten.DrawImageOptions{}
	opts.GeoM.Scale(inspScale, inspScale)
	opts.GeoM.Translate(float64(px), float64(py))
	screen.DrawImage(buf, opts)
}
