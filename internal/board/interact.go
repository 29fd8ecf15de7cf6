package board

import "fmt"

// SelectBlock makes blk the selection. Only resting or launching blocks on
// this board can be selected.
func (b *Board) SelectBlock(blk *Block) bool {
	if blk == nil || blk.row == nil || blk.row.board != b {
		return false
	}
	if blk.state != StateResting && blk.state != StateLaunching {
		return false
	}
	b.selected = blk
	b.events.Add(b.ticks, blk.row.num, blk.Index(), "select", "pick", TypeName(blk.kind)+" "+blk.label(), 0)
	return true
}

// DeselectBlock clears the selection.
func (b *Board) DeselectBlock() {
	b.selected = nil
}

// DragOver tries to swap the selected block with target. The swap needs
// both blocks adjacent in the same column and moving together: resting in
// the same group (or both free), or launching in one group. It is refused
// while a rescan is pending so one tick sees at most one swap.
func (b *Board) DragOver(target *Block) bool {
	s := b.selected
	if s == nil || target == nil || target == s || b.changed {
		return false
	}
	r := s.row
	if r == nil || target.row != r {
		return false
	}
	if !swappable(s, target) {
		return false
	}
	si, ti := r.indexOf(s), r.indexOf(target)
	if si-ti != 1 && ti-si != 1 {
		return false
	}
	r.blocks[si], r.blocks[ti] = target, s
	s.y, target.y = target.y, s.y
	b.changed = true
	b.events.Add(b.ticks, r.num, ti, "swap", "drag",
		fmt.Sprintf("%s %s ↔ %s %s", TypeName(s.kind), s.label(), TypeName(target.kind), target.label()), 0)
	return true
}

func swappable(a, c *Block) bool {
	switch {
	case a.state == StateResting && c.state == StateResting:
		return a.group == c.group
	case a.state == StateLaunching && c.state == StateLaunching:
		return a.group != nil && a.group == c.group
	}
	return false
}
