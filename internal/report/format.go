package report

import (
	"strings"

	"github.com/mattn/go-runewidth"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var lang = language.English

// FormatRun renders one run as two key=value lines.
func FormatRun(rs RunStats) string {
	p := message.NewPrinter(lang)
	first := "n/a"
	if rs.FirstMatchTick >= 0 {
		first = p.Sprintf("%d", rs.FirstMatchTick)
	}
	var sb strings.Builder
	sb.WriteString(p.Sprintf("--- Run %d (seed=%d ticks=%d) ---\n", rs.Run, rs.Seed, rs.Ticks))
	sb.WriteString(p.Sprintf("events: spawns=%d matches=%d matched_blocks=%d merges=%d dissolves=%d swaps=%d revives=%d\n",
		rs.Spawns, rs.Matches, rs.MatchedBlocks, rs.Merges, rs.Dissolves, rs.Swaps, rs.Revives))
	sb.WriteString(p.Sprintf("board: launched=%d max_groups=%d first_match=%s final falling=%d launching=%d resting=%d dead=%d\n",
		rs.Launched, rs.MaxGroups, first, rs.Final.Falling, rs.Final.Launching, rs.Final.Resting, rs.Final.Dead))
	return sb.String()
}

// FormatTable renders the aggregate as a boxed table, one row per metric.
func FormatTable(title string, agg Aggregate) string {
	p := message.NewPrinter(lang)
	header := []string{"metric", "n", "mean", "stddev", "median", "min", "max", "95% CI"}
	rows := [][]string{header}
	for _, s := range agg.Metrics {
		if s.N == 0 {
			rows = append(rows, []string{s.Name, "0", "-", "-", "-", "-", "-", "-"})
			continue
		}
		rows = append(rows, []string{
			s.Name,
			p.Sprintf("%d", s.N),
			p.Sprintf("%.1f", s.Mean),
			p.Sprintf("%.2f", s.StdDev),
			p.Sprintf("%.1f", s.Median),
			p.Sprintf("%.0f", s.Min),
			p.Sprintf("%.0f", s.Max),
			p.Sprintf("[%.1f, %.1f]", s.CILo, s.CIHi),
		})
	}

	widths := make([]int, len(header))
	for _, r := range rows {
		for i, cell := range r {
			if w := runewidth.StringWidth(cell) + 2; w > widths[i] {
				widths[i] = w
			}
		}
	}
	inner := len(widths) - 1
	for _, w := range widths {
		inner += w
	}

	divider := "+"
	for _, w := range widths {
		divider += strings.Repeat("-", w) + "+"
	}
	divider += "\n"

	var sb strings.Builder
	sb.WriteString("+" + strings.Repeat("-", inner) + "+\n")
	titleW := runewidth.StringWidth(title)
	left := (inner - titleW) / 2
	sb.WriteString("|" + blank(left) + title + blank(inner-titleW-left) + "|\n")
	sb.WriteString(divider)
	for ri, r := range rows {
		sb.WriteString("|")
		for i, cell := range r {
			pad := widths[i] - 1 - runewidth.StringWidth(cell)
			if i == 0 {
				sb.WriteString(" " + cell + blank(pad) + "|")
			} else {
				sb.WriteString(blank(pad) + cell + " |")
			}
		}
		sb.WriteString("\n")
		if ri == 0 {
			sb.WriteString(divider)
		}
	}
	sb.WriteString(divider)
	return sb.String()
}

func blank(w int) string {
	if w < 1 {
		return ""
	}
	return strings.Repeat(" ", w)
}
