package report

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/Garsondee/Block-Launch/internal/board"
	"github.com/Garsondee/Block-Launch/internal/config"
)

func testConfig(seed int64) *config.Config {
	cfg := config.Default()
	cfg.Seed = seed
	cfg.Log.Mode = "silence"
	return cfg
}

func TestSummarize(t *testing.T) {
	s := Summarize("x", []float64{5, 1, 4, 2, 3})
	if s.N != 5 || s.Mean != 3 || s.Median != 3 || s.Min != 1 || s.Max != 5 {
		t.Fatalf("unexpected summary %+v", s)
	}
	if math.Abs(s.StdDev-math.Sqrt(2.5)) > 1e-9 {
		t.Fatalf("sample stddev = %g, want %g", s.StdDev, math.Sqrt(2.5))
	}
	if !(s.CILo < s.Mean && s.Mean < s.CIHi) {
		t.Fatalf("CI [%g, %g] should bracket the mean", s.CILo, s.CIHi)
	}
	if math.Abs((s.Mean-s.CILo)-(s.CIHi-s.Mean)) > 1e-9 {
		t.Fatal("CI should be symmetric")
	}
}

func TestSummarize_SmallSamples(t *testing.T) {
	if s := Summarize("none", nil); s.N != 0 || s.Mean != 0 {
		t.Fatalf("empty summary = %+v", s)
	}
	s := Summarize("one", []float64{7})
	if s.StdDev != 0 || s.CILo != 7 || s.CIHi != 7 {
		t.Fatalf("single sample should have no spread, got %+v", s)
	}
}

func TestAggregateRuns_SkipsRunsWithoutMatches(t *testing.T) {
	runs := []RunStats{
		{Matches: 2, FirstMatchTick: 100},
		{Matches: 0, FirstMatchTick: -1},
		{Matches: 4, FirstMatchTick: 300},
	}
	agg := AggregateRuns(runs)
	fm, ok := agg.Metric("first_match")
	if !ok || fm.N != 2 || fm.Mean != 200 {
		t.Fatalf("first_match = %+v", fm)
	}
	m, _ := agg.Metric("matches")
	if m.N != 3 || m.Mean != 2 {
		t.Fatalf("matches = %+v", m)
	}
	if _, ok := agg.Metric("nope"); ok {
		t.Fatal("unknown metric should not be found")
	}
}

func TestRun_IsDeterministicPerSeed(t *testing.T) {
	a, err := Run(testConfig(11), 1, Options{Ticks: 1500, SwapEvery: 5})
	if err != nil {
		t.Fatal(err)
	}
	b, err := Run(testConfig(11), 1, Options{Ticks: 1500, SwapEvery: 5})
	if err != nil {
		t.Fatal(err)
	}
	if a != b {
		t.Fatalf("same seed diverged:\n%+v\n%+v", a, b)
	}
	if a.Spawns == 0 {
		t.Fatal("the spawner should have dropped blocks")
	}
	if a.Matches > 0 && a.FirstMatchTick < 0 {
		t.Fatal("first match tick missing")
	}
}

func TestRun_OnTickSeesEveryTickAndCanAbort(t *testing.T) {
	calls := 0
	_, err := Run(testConfig(3), 1, Options{Ticks: 50, OnTick: func(b *board.Board) error {
		calls++
		if b.CurrentTick() != calls {
			t.Fatalf("tick %d reported on call %d", b.CurrentTick(), calls)
		}
		return nil
	}})
	if err != nil || calls != 50 {
		t.Fatalf("calls=%d err=%v", calls, err)
	}

	stop := errors.New("stop")
	_, err = Run(testConfig(3), 2, Options{Ticks: 50, OnTick: func(b *board.Board) error {
		if b.CurrentTick() == 10 {
			return stop
		}
		return nil
	}})
	if !errors.Is(err, stop) || !strings.Contains(err.Error(), "tick 10") {
		t.Fatalf("expected wrapped stop error, got %v", err)
	}
}

func TestRun_RejectsInvalidConfig(t *testing.T) {
	cfg := testConfig(1)
	cfg.Board.Width = -1
	if _, err := Run(cfg, 1, Options{Ticks: 1}); err == nil {
		t.Fatal("expected a config error")
	}
}

func TestFormat(t *testing.T) {
	rs := RunStats{Run: 2, Seed: 43, Ticks: 1200, Spawns: 1234, FirstMatchTick: -1}
	out := FormatRun(rs)
	if !strings.Contains(out, "spawns=1,234") || !strings.Contains(out, "first_match=n/a") {
		t.Fatalf("FormatRun:\n%s", out)
	}

	table := FormatTable("Aggregate", AggregateRuns([]RunStats{rs, {Spawns: 10, FirstMatchTick: 5}}))
	lines := strings.Split(strings.TrimRight(table, "\n"), "\n")
	width := len(lines[0])
	for _, l := range lines {
		if len(l) != width {
			t.Fatalf("ragged table line %q (want width %d):\n%s", l, width, table)
		}
	}
	if !strings.Contains(table, "first_match") || !strings.Contains(table, "Aggregate") {
		t.Fatalf("table missing content:\n%s", table)
	}
}
