package game

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"

	"github.com/Garsondee/Block-Launch/internal/board"
)

const debugReportTicks = 120

// boardDebugReport summarises the last lastTicks ticks: board counters,
// live groups, per-column stacks, the reporter window and the raw events.
func (g *Game) boardDebugReport(lastTicks int) string {
	if lastTicks <= 0 {
		lastTicks = debugReportTicks
	}
	b := g.board
	toTick := b.CurrentTick()
	fromTick := toTick - lastTicks + 1
	if fromTick < 0 {
		fromTick = 0
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "--- Block Launch debug report ---\n")
	fmt.Fprintf(&sb, "seed=%d tick_range=[%d..%d] board=%dx%d types=%d\n",
		g.cfg.Seed, fromTick, toTick, b.Width(), b.Height(), b.Types())

	c := b.Count()
	fmt.Fprintf(&sb, "falling=%d launching=%d resting=%d dead=%d launched=%d groups=%d\n",
		c.Falling, c.Launching, c.Resting, c.Dead, b.TotalLaunched(), len(b.Groups()))
	if sp := b.Spawner(); sp != nil {
		fmt.Fprintf(&sb, "spawner cooldown=%d threshold=%.1f\n", sp.Cooldown(), sp.Threshold(b.TotalLaunched()))
	} else {
		sb.WriteString("spawner off\n")
	}
	if sel := b.Selected(); sel != nil {
		fmt.Fprintf(&sb, "selected=#%d %s c%d:%02d\n", sel.ID(), board.TypeName(sel.Type()), sel.Column(), sel.Index())
	}
	sb.WriteString("\n")

	if groups := b.Groups(); len(groups) > 0 {
		sb.WriteString("== groups ==\n")
		for _, grp := range groups {
			fmt.Fprintf(&sb, "G%-4d members=%-3d t=%-4d ttl=%d\n", grp.ID(), grp.Len(), grp.Time(), grp.TimeToLive())
		}
		sb.WriteString("\n")
	}

	sb.WriteString("== columns (bottom up) ==\n")
	for col := 0; col < b.Width(); col++ {
		fmt.Fprintf(&sb, "c%-2d %s\n", col, columnString(b.Row(col)))
	}
	sb.WriteString("\n")

	if g.reporter != nil {
		sb.WriteString(g.reporter.WindowSummary().Format())
		sb.WriteString("\n")
	}

	sb.WriteString("== events ==\n")
	if ev := b.Events().FormatRange(fromTick, toTick); ev != "" {
		sb.WriteString(ev)
	} else {
		sb.WriteString("(no events in range)\n")
	}
	return sb.String()
}

// columnString renders one column as type initials, upper case for members
// of a launch group and '.' for dead blocks.
func columnString(r *board.Row) string {
	if r == nil || r.Len() == 0 {
		return "-"
	}
	var sb strings.Builder
	for i := 0; i < r.Len(); i++ {
		blk := r.At(i)
		ch := byte('.')
		if blk.Type() != board.TypeDead {
			ch = board.TypeName(blk.Type())[0]
		}
		if blk.Group() != nil && ch != '.' {
			ch -= 'a' - 'A'
		}
		if blk.State() == board.StateFalling {
			sb.WriteByte('~')
		}
		sb.WriteByte(ch)
	}
	return sb.String()
}

// copyDebugReport places the current report on the system clipboard.
func (g *Game) copyDebugReport() {
	report := g.boardDebugReport(debugReportTicks)
	if err := clipboard.WriteAll(report); err != nil {
		g.status = "copy failed: " + err.Error()
		g.log.Warn("debug report copy failed", "err", err)
		return
	}
	g.status = fmt.Sprintf("copied debug report (%d bytes)", len(report))
	g.log.Info("debug report copied", "tick", g.board.CurrentTick(), "bytes", len(report))
}
