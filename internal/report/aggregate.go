package report

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// Summary describes one metric across runs. CILo/CIHi bound the mean at 95%
// using Student's t; with fewer than two samples they collapse to the mean.
type Summary struct {
	Name   string
	N      int
	Mean   float64
	StdDev float64
	Median float64
	Min    float64
	Max    float64
	CILo   float64
	CIHi   float64
}

// Summarize computes a Summary over xs. An empty xs yields N=0 and zeros.
func Summarize(name string, xs []float64) Summary {
	s := Summary{Name: name, N: len(xs)}
	if len(xs) == 0 {
		return s
	}
	sorted := append([]float64(nil), xs...)
	sort.Float64s(sorted)

	s.Mean = stat.Mean(sorted, nil)
	s.Median = stat.Quantile(0.5, stat.Empirical, sorted, nil)
	s.Min = floats.Min(sorted)
	s.Max = floats.Max(sorted)
	s.CILo, s.CIHi = s.Mean, s.Mean
	if len(sorted) < 2 {
		return s
	}
	s.StdDev = stat.StdDev(sorted, nil)
	t := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: float64(len(sorted) - 1)}.Quantile(0.975)
	half := t * s.StdDev / math.Sqrt(float64(len(sorted)))
	s.CILo, s.CIHi = s.Mean-half, s.Mean+half
	return s
}

// Aggregate is the per-metric summary of a batch of runs.
type Aggregate struct {
	Runs    int
	Metrics []Summary
}

// metric extracts one column of RunStats; ok=false leaves the run out.
type metric struct {
	name string
	get  func(RunStats) (float64, bool)
}

func always(f func(RunStats) int) func(RunStats) (float64, bool) {
	return func(rs RunStats) (float64, bool) { return float64(f(rs)), true }
}

var metrics = []metric{
	{"spawns", always(func(rs RunStats) int { return rs.Spawns })},
	{"matches", always(func(rs RunStats) int { return rs.Matches })},
	{"matched_blocks", always(func(rs RunStats) int { return rs.MatchedBlocks })},
	{"launched", always(func(rs RunStats) int { return rs.Launched })},
	{"merges", always(func(rs RunStats) int { return rs.Merges })},
	{"dissolves", always(func(rs RunStats) int { return rs.Dissolves })},
	{"swaps", always(func(rs RunStats) int { return rs.Swaps })},
	{"revives", always(func(rs RunStats) int { return rs.Revives })},
	{"max_groups", always(func(rs RunStats) int { return rs.MaxGroups })},
	{"first_match", func(rs RunStats) (float64, bool) {
		return float64(rs.FirstMatchTick), rs.FirstMatchTick >= 0
	}},
	{"blocks_left", always(func(rs RunStats) int {
		return rs.Final.Falling + rs.Final.Launching + rs.Final.Resting
	})},
}

// AggregateRuns summarises every metric over runs.
func AggregateRuns(runs []RunStats) Aggregate {
	agg := Aggregate{Runs: len(runs)}
	for _, m := range metrics {
		var xs []float64
		for _, rs := range runs {
			if v, ok := m.get(rs); ok {
				xs = append(xs, v)
			}
		}
		agg.Metrics = append(agg.Metrics, Summarize(m.name, xs))
	}
	return agg
}

// Metric looks up a summary by name.
func (a Aggregate) Metric(name string) (Summary, bool) {
	for _, s := range a.Metrics {
		if s.Name == name {
			return s, true
		}
	}
	return Summary{}, false
}
