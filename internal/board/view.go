package board

import "math"

// BlockView is the read-only projection of one block for rendering and
// traces. Group is 0 for a free block.
type BlockView struct {
	ID       int          `json:"id"`
	Column   int          `json:"col"`
	Index    int          `json:"idx"`
	X        float64      `json:"x"`
	Y        float64      `json:"y"`
	Type     int          `json:"type"`
	State    FallingState `json:"state"`
	Group    int          `json:"group,omitempty"`
	Selected bool         `json:"sel,omitempty"`
}

// Projection returns every block on the board, column by column, bottom up.
func (b *Board) Projection() []BlockView {
	var out []BlockView
	for _, r := range b.rows {
		x := float64(r.num) * b.blockSize
		for i, blk := range r.blocks {
			v := BlockView{
				ID:       blk.id,
				Column:   r.num,
				Index:    i,
				X:        x,
				Y:        blk.y,
				Type:     blk.kind,
				State:    blk.state,
				Selected: blk == b.selected,
			}
			if blk.group != nil {
				v.Group = blk.group.id
			}
			out = append(out, v)
		}
	}
	return out
}

// BlockAt hit-tests board pixel coordinates against block rectangles.
func (b *Board) BlockAt(px, py float64) *Block {
	if px < 0 || py < 0 {
		return nil
	}
	col := int(math.Floor(px / b.blockSize))
	r := b.Row(col)
	if r == nil {
		return nil
	}
	for _, blk := range r.blocks {
		if py >= blk.y && py < blk.y+b.blockSize {
			return blk
		}
	}
	return nil
}

// Lookup finds a block by id.
func (b *Board) Lookup(id int) *Block {
	for _, r := range b.rows {
		for _, blk := range r.blocks {
			if blk.id == id {
				return blk
			}
		}
	}
	return nil
}

// Counts tallies blocks by falling state and the dead ones.
type Counts struct {
	Falling   int
	Launching int
	Resting   int
	Dead      int
}

// Count tallies the board's blocks.
func (b *Board) Count() Counts {
	var c Counts
	for _, r := range b.rows {
		for _, blk := range r.blocks {
			switch blk.state {
			case StateFalling:
				c.Falling++
			case StateLaunching:
				c.Launching++
			case StateResting:
				c.Resting++
			}
			if blk.kind == TypeDead {
				c.Dead++
			}
		}
	}
	return c
}
