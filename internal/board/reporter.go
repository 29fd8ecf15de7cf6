package board

import (
	"fmt"
	"strings"
)

// reportWindowTicks is the default sliding window for recent-activity reports (~10s at 60TPS).
const reportWindowTicks = 600

// Report is a snapshot of the board at one tick.
type Report struct {
	Tick int
	Counts

	Groups        int
	TotalLaunched int
	Tallest       int // highest column, in blocks
	Spawns        int // spawn events since the previous report
	Matches       int // match events since the previous report

	// Per-column stack heights (verbose only).
	Columns []int
}

// Reporter collects periodic reports and summarises them over a sliding
// window of ticks.
type Reporter struct {
	history     []Report
	windowTicks int
	verbose     bool
	lastSeq     int
}

// NewReporter creates a reporter with the given window size.
func NewReporter(windowTicks int, verbose bool) *Reporter {
	if windowTicks <= 0 {
		windowTicks = reportWindowTicks
	}
	return &Reporter{windowTicks: windowTicks, verbose: verbose}
}

// Collect gathers a snapshot from b. Call this periodically (e.g. every 60 ticks).
func (r *Reporter) Collect(b *Board) {
	rpt := Report{
		Tick:          b.ticks,
		Counts:        b.Count(),
		Groups:        len(b.groups),
		TotalLaunched: b.totalLaunched,
	}
	for _, row := range b.rows {
		if n := len(row.blocks); n > rpt.Tallest {
			rpt.Tallest = n
		}
		if r.verbose {
			rpt.Columns = append(rpt.Columns, len(row.blocks))
		}
	}
	for _, e := range b.events.After(r.lastSeq) {
		switch e.Category {
		case "spawn":
			rpt.Spawns++
		case "match":
			rpt.Matches++
		}
	}
	r.lastSeq = b.events.LastSeq()

	r.history = append(r.history, rpt)

	// Prune old history beyond 2x window to prevent unbounded growth.
	maxKeep := r.windowTicks / 60 * 2
	if maxKeep < 100 {
		maxKeep = 100
	}
	if len(r.history) > maxKeep {
		r.history = r.history[len(r.history)-maxKeep:]
	}
}

// Latest returns the most recent report, or nil if none collected yet.
func (r *Reporter) Latest() *Report {
	if len(r.history) == 0 {
		return nil
	}
	return &r.history[len(r.history)-1]
}

// History returns all collected reports.
func (r *Reporter) History() []Report {
	return r.history
}

// WindowReport is an aggregated summary over a time window.
type WindowReport struct {
	FromTick, ToTick int
	SampleCount      int

	AvgFalling, AvgLaunching, AvgResting float64
	AvgDead, AvgGroups, AvgTallest       float64

	Spawns, Matches int
	Launched        int // blocks cleared during the window
}

// WindowSummary aggregates the reports inside the recent window.
func (r *Reporter) WindowSummary() *WindowReport {
	if len(r.history) == 0 {
		return nil
	}
	latest := r.history[len(r.history)-1]
	cutoff := latest.Tick - r.windowTicks
	var window []Report
	for i := len(r.history) - 1; i >= 0; i-- {
		if r.history[i].Tick < cutoff {
			break
		}
		window = append(window, r.history[i])
	}

	n := float64(len(window))
	oldest := window[len(window)-1]
	wr := &WindowReport{
		FromTick:    oldest.Tick,
		ToTick:      latest.Tick,
		SampleCount: len(window),
		Launched:    latest.TotalLaunched - oldest.TotalLaunched,
	}
	for _, rpt := range window {
		wr.AvgFalling += float64(rpt.Falling)
		wr.AvgLaunching += float64(rpt.Launching)
		wr.AvgResting += float64(rpt.Resting)
		wr.AvgDead += float64(rpt.Dead)
		wr.AvgGroups += float64(rpt.Groups)
		wr.AvgTallest += float64(rpt.Tallest)
		wr.Spawns += rpt.Spawns
		wr.Matches += rpt.Matches
	}
	wr.AvgFalling /= n
	wr.AvgLaunching /= n
	wr.AvgResting /= n
	wr.AvgDead /= n
	wr.AvgGroups /= n
	wr.AvgTallest /= n
	return wr
}

// Format returns a human-readable multi-line string of the window summary.
func (wr *WindowReport) Format() string {
	if wr == nil {
		return "No data collected yet.\n"
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "=== Board Report (T=%d..%d, %d samples) ===\n",
		wr.FromTick, wr.ToTick, wr.SampleCount)
	sb.WriteString("\n--- Blocks ---\n")
	fmt.Fprintf(&sb, "  falling=%.1f  launching=%.1f  resting=%.1f  dead=%.1f\n",
		wr.AvgFalling, wr.AvgLaunching, wr.AvgResting, wr.AvgDead)
	fmt.Fprintf(&sb, "  tallest column=%.1f (%s)\n", wr.AvgTallest, pressureLabel(wr.AvgTallest))
	sb.WriteString("\n--- Activity ---\n")
	fmt.Fprintf(&sb, "  spawns=%d  matches=%d  cleared=%d  groups=%.1f\n",
		wr.Spawns, wr.Matches, wr.Launched, wr.AvgGroups)
	return sb.String()
}

func pressureLabel(tallest float64) string {
	switch {
	case tallest >= 10:
		return "critical"
	case tallest >= 7:
		return "high"
	case tallest >= 4:
		return "moderate"
	default:
		return "low"
	}
}

// FormatLatest returns a concise snapshot of the most recent collected report.
func (r *Reporter) FormatLatest() string {
	rpt := r.Latest()
	if rpt == nil {
		return "No data.\n"
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "--- Snapshot T=%d ---\n", rpt.Tick)
	fmt.Fprintf(&sb, "falling=%d launching=%d resting=%d dead=%d groups=%d launched=%d tallest=%d\n",
		rpt.Falling, rpt.Launching, rpt.Resting, rpt.Dead, rpt.Groups, rpt.TotalLaunched, rpt.Tallest)
	if len(rpt.Columns) > 0 {
		sb.WriteString("columns:")
		for _, c := range rpt.Columns {
			fmt.Fprintf(&sb, " %d", c)
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
