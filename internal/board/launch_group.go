package board

import "strconv"

// LaunchGroup is a set of blocks moving together on one timed trajectory.
// Every member's group back-reference points at the group that lists it.
type LaunchGroup struct {
	id     int
	board  *Board
	blocks []*Block
	motion Motion
	time   int

	// timeToLive counts ticks spent settled; reset while in flight.
	timeToLive int
}

func (g *LaunchGroup) ID() int         { return g.id }
func (g *LaunchGroup) Len() int        { return len(g.blocks) }
func (g *LaunchGroup) Time() int       { return g.time }
func (g *LaunchGroup) TimeToLive() int { return g.timeToLive }

// Members returns a copy of the member list.
func (g *LaunchGroup) Members() []*Block {
	return append([]*Block(nil), g.blocks...)
}

// Has reports whether b is a member.
func (g *LaunchGroup) Has(b *Block) bool {
	return b != nil && b.group == g
}

// Tick ages the group. It returns false once the group is finished: empty,
// or dissolved after settling for longer than the board's launch TTL.
func (g *LaunchGroup) Tick() bool {
	if len(g.blocks) == 0 {
		return false
	}
	if g.blocks[0].state == StateResting {
		g.timeToLive++
		if g.timeToLive > g.board.launchTTL {
			g.dissolve()
			return false
		}
		return true
	}
	g.time++
	g.timeToLive = 0
	return true
}

// dissolve releases every member and revives the dead ones.
func (g *LaunchGroup) dissolve() {
	bd := g.board
	n := len(g.blocks)
	for len(g.blocks) > 0 {
		last := len(g.blocks) - 1
		b := g.blocks[last]
		g.blocks[last] = nil
		g.blocks = g.blocks[:last]

		b.group = nil
		if b.state == StateLaunching {
			// Still airborne: drop as a free body.
			b.state = StateFalling
			b.speed = bd.fallSpeed
		}
		if b.kind == TypeDead {
			bd.revive(b)
		}
	}
	bd.changed = true
	bd.events.Add(bd.ticks, -1, -1, "group", "dissolve", g.label(), float64(n))
	bd.log.Debug("launch group dissolved", "group", g.id, "members", n, "tick", bd.ticks)
}

// AddBlock binds b to the group. A block from another group brings its
// whole group along; a free block sweeps in the contiguous run above it
// that is resting or already launching with this group.
func (g *LaunchGroup) AddBlock(b *Block) {
	if b.group == g {
		return
	}
	if old := b.group; old != nil {
		g.merge(old)
		return
	}
	g.add(b)
	if b.row == nil {
		return
	}
	for i := b.row.indexOf(b) + 1; i < len(b.row.blocks); i++ {
		x := b.row.blocks[i]
		if x.state != StateResting && !(x.state == StateLaunching && x.group == g) {
			break
		}
		if x.group == g {
			continue
		}
		if x.group != nil {
			x.group.RemoveBlock(x)
		}
		g.add(x)
	}
}

// merge drains every member of old into g, leaving old empty.
func (g *LaunchGroup) merge(old *LaunchGroup) {
	n := len(old.blocks)
	for len(old.blocks) > 0 {
		last := len(old.blocks) - 1
		b := old.blocks[last]
		old.blocks[last] = nil
		old.blocks = old.blocks[:last]
		g.add(b)
	}
	bd := g.board
	bd.events.Add(bd.ticks, -1, -1, "group", "merge",
		old.label()+" → "+g.label(), float64(n))
}

func (g *LaunchGroup) add(b *Block) {
	b.group = g
	b.state = StateLaunching
	g.blocks = append(g.blocks, b)
}

// RemoveBlock detaches a single member.
func (g *LaunchGroup) RemoveBlock(b *Block) {
	for i, x := range g.blocks {
		if x == b {
			copy(g.blocks[i:], g.blocks[i+1:])
			g.blocks[len(g.blocks)-1] = nil
			g.blocks = g.blocks[:len(g.blocks)-1]
			b.group = nil
			return
		}
	}
}

func (g *LaunchGroup) label() string {
	return "G" + strconv.Itoa(g.id)
}
