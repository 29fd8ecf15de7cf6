package game

import (
	"image/color"

	"github.com/Garsondee/Block-Launch/internal/board"
)

// blockColors holds the full-brightness colour for each type; index 0 is
// the dead grey.
var blockColors = [...]color.RGBA{
	{R: 150, G: 150, B: 150, A: 255}, // gray (dead)
	{R: 60, G: 110, B: 230, A: 255},  // blue
	{R: 60, G: 190, B: 80, A: 255},   // green
	{R: 235, G: 210, B: 50, A: 255},  // yellow
	{R: 220, G: 60, B: 60, A: 255},   // red
	{R: 160, G: 70, B: 210, A: 255},  // purple
}

// extraColors cycles for configs with more than five types.
var extraColors = [...]color.RGBA{
	{R: 240, G: 140, B: 40, A: 255},
	{R: 40, G: 200, B: 200, A: 255},
	{R: 230, G: 110, B: 180, A: 255},
	{R: 140, G: 100, B: 60, A: 255},
}

// restTint matches the half-brightness tint free blocks are drawn with.
const restTint = 0x7F

func typeColor(kind int) color.RGBA {
	if kind >= 0 && kind < len(blockColors) {
		return blockColors[kind]
	}
	return extraColors[(kind-len(blockColors))%len(extraColors)]
}

// blockColor applies the tint policy: blocks bound to a launch group and the
// selected block are drawn at full brightness, everything else dimmed.
func blockColor(v board.BlockView) color.RGBA {
	c := typeColor(v.Type)
	if v.Group != 0 || v.Selected {
		return c
	}
	return color.RGBA{
		R: uint8(uint16(c.R) * restTint / 0xFF),
		G: uint8(uint16(c.G) * restTint / 0xFF),
		B: uint8(uint16(c.B) * restTint / 0xFF),
		A: c.A,
	}
}
