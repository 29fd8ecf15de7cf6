// Package report runs boards without a window and summarises what happened
// across many seeded runs.
package report

import (
	"fmt"
	"math/rand"

	"github.com/Garsondee/Block-Launch/internal/board"
	"github.com/Garsondee/Block-Launch/internal/config"
	"github.com/Garsondee/Block-Launch/internal/logger"
)

// RunStats tallies the board events of one headless run.
type RunStats struct {
	Run   int
	Seed  int64
	Ticks int

	Spawns        int
	Matches       int
	MatchedBlocks int
	Launched      int
	Merges        int
	Dissolves     int
	Swaps         int
	Revives       int
	MaxGroups     int

	// FirstMatchTick is -1 when the run never produced a match.
	FirstMatchTick int

	Final board.Counts
}

// Options controls one run.
type Options struct {
	Ticks int
	// SwapEvery attempts one random adjacent swap every SwapEvery ticks;
	// 0 disables the auto player.
	SwapEvery int
	// OnTick is called after every tick. A non-nil error aborts the run.
	OnTick func(b *board.Board) error
}

// Run builds a board from cfg, drives it for opts.Ticks ticks with the
// spawner enabled and returns its tallies.
func Run(cfg *config.Config, index int, opts Options) (RunStats, error) {
	c := *cfg
	c.Spawn.Manual = false
	b, err := board.New(&c, board.WithLogger(logger.Discard()))
	if err != nil {
		return RunStats{}, err
	}

	rs := RunStats{Run: index, Seed: c.Seed, Ticks: opts.Ticks, FirstMatchTick: -1}
	rng := rand.New(rand.NewSource(c.Seed + 7777)) // #nosec G404 -- auto player only
	seq := 0
	for t := 0; t < opts.Ticks; t++ {
		if opts.SwapEvery > 0 && t%opts.SwapEvery == 0 {
			autoSwap(b, rng)
		}
		b.AdvanceTick()

		el := b.Events()
		rs.observe(el.After(seq))
		seq = el.LastSeq()
		if n := len(b.Groups()); n > rs.MaxGroups {
			rs.MaxGroups = n
		}
		if opts.OnTick != nil {
			if err := opts.OnTick(b); err != nil {
				return rs, fmt.Errorf("run %d tick %d: %w", index, b.CurrentTick(), err)
			}
		}
	}
	rs.Launched = b.TotalLaunched()
	rs.Final = b.Count()
	return rs, nil
}

func (rs *RunStats) observe(entries []board.Entry) {
	for _, e := range entries {
		switch e.Category {
		case "spawn":
			rs.Spawns++
		case "match":
			rs.Matches++
			rs.MatchedBlocks += int(e.NumVal)
			if rs.FirstMatchTick < 0 {
				rs.FirstMatchTick = e.Tick
			}
		case "group":
			switch e.Key {
			case "merge":
				rs.Merges++
			case "dissolve":
				rs.Dissolves++
			}
		case "swap":
			rs.Swaps++
		case "revive":
			rs.Revives++
		}
	}
}

// autoSwap drags a random block onto its upper neighbour. Most attempts are
// refused by the board; that is fine.
func autoSwap(b *board.Board, rng *rand.Rand) {
	r := b.Row(rng.Intn(b.Width()))
	if r == nil || r.Len() < 2 {
		return
	}
	i := rng.Intn(r.Len() - 1)
	if b.SelectBlock(r.At(i)) {
		b.DragOver(r.At(i + 1))
	}
	b.DeselectBlock()
}
