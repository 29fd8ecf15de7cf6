package board

// Row is one column of the grid: a bottom-to-top stack of blocks. Index i
// is supported by index i-1.
type Row struct {
	board  *Board
	num    int
	blocks []*Block
}

// Len returns the number of blocks in the column, including falling ones.
func (r *Row) Len() int { return len(r.blocks) }

// At returns the block at index i, or nil when i is out of range.
func (r *Row) At(i int) *Block {
	if i < 0 || i >= len(r.blocks) {
		return nil
	}
	return r.blocks[i]
}

func (r *Row) indexOf(b *Block) int {
	for i, x := range r.blocks {
		if x == b {
			return i
		}
	}
	return -1
}

// queue puts b on top of the stack, one block height above the visible area.
func (r *Row) queue(b *Block) {
	b.y = -r.board.blockSize
	b.row = r
	r.blocks = append(r.blocks, b)
}

// remove splices the block at i out of the column.
func (r *Row) remove(i int) {
	b := r.blocks[i]
	copy(r.blocks[i:], r.blocks[i+1:])
	r.blocks[len(r.blocks)-1] = nil
	r.blocks = r.blocks[:len(r.blocks)-1]
	b.row = nil
}

// tick integrates every block bottom-up and resolves floor, stacking and
// top-boundary events. It returns how many blocks are still falling and
// whether anything settled, joined a group or left the board.
func (r *Row) tick() (falling int, changed bool) {
	bd := r.board
	size := bd.blockSize
	floor := bd.floor()

	for i := 0; i < len(r.blocks); i++ {
		e := r.blocks[i]
		prevState, prevGroup := e.state, e.group

		e.time++
		m, t := e.motion()
		e.y += m.Velocity(t)

		if i == 0 && e.y >= floor {
			e.y = floor
			e.speed = 0
			e.state = StateResting
		}
		if i > 0 {
			below := r.blocks[i-1]
			if e.y >= below.y-size {
				e.y = below.y - size
				e.speed = below.speed
				e.time = below.time
				e.state = below.state
				switch {
				case below.state == StateLaunching && below.group != nil:
					below.group.AddBlock(e)
				case below.state == StateFalling && e.group != nil:
					// Caught up with a free body: fall with it.
					e.group.RemoveBlock(e)
					if e.kind == TypeDead {
						bd.revive(e)
					}
				}
			}
		}

		if e.state != prevState || e.group != prevGroup {
			changed = true
			if e.state == StateResting {
				key := "settle"
				if prevState == StateLaunching {
					key = "return"
				}
				bd.events.Add(bd.ticks, r.num, i, "land", key,
					TypeName(e.kind)+" "+e.label(), e.y)
			}
		}
		if e.state == StateFalling {
			falling++
		}

		if e.y < 0 && e.state != StateFalling {
			if e.group != nil {
				e.group.RemoveBlock(e)
			}
			r.remove(i)
			bd.reap(e, r.num, i)
			changed = true
			i--
		}
	}
	return falling, changed
}
