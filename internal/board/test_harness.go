package board

import (
	"math/rand"

	"github.com/Garsondee/Block-Launch/internal/config"
)

// TestSim is a headless board harness used by tests and the batch report.
// It defaults to an empty, manually spawned board with a fixed seed so that
// scenarios are deterministic.
type TestSim struct {
	Board  *Board
	Events *EventLog

	cfg *config.Config
	rng *rand.Rand
}

// simOptionKind controls the pass in which an option is applied.
type simOptionKind int

const (
	simOptConfig simOptionKind = iota // grid, seed, types, spawner; applied before New
	simOptBlocks                      // blocks placed on the built board
)

// SimOption is a builder function applied to a TestSim during construction.
type SimOption struct {
	kind simOptionKind
	fn   func(*TestSim)
}

// WithGrid sets the board dimensions in blocks.
func WithGrid(w, h int) SimOption {
	return SimOption{simOptConfig, func(ts *TestSim) {
		ts.cfg.Board.Width = w
		ts.cfg.Board.Height = h
	}}
}

// WithSeed sets the RNG seed for deterministic runs.
func WithSeed(seed int64) SimOption {
	return SimOption{simOptConfig, func(ts *TestSim) {
		ts.cfg.Seed = seed
		ts.rng = rand.New(rand.NewSource(seed)) // #nosec G404 -- test harness
	}}
}

// WithTypes limits the palette to n colours using the stock trajectories.
func WithTypes(n int) SimOption {
	return SimOption{simOptConfig, func(ts *TestSim) {
		ts.cfg.Board.Types = n
		ts.cfg.Trajectories = nil
	}}
}

// WithConfig replaces the whole configuration. Later config options still
// apply on top of it.
func WithConfig(cfg *config.Config) SimOption {
	return SimOption{simOptConfig, func(ts *TestSim) {
		c := *cfg
		c.Trajectories = append([]config.TrajectoryConfig(nil), cfg.Trajectories...)
		ts.cfg = &c
	}}
}

// WithBootstrap enables the initial dead-block fill.
func WithBootstrap() SimOption {
	return SimOption{simOptConfig, func(ts *TestSim) {
		ts.cfg.Board.SkipBootstrap = false
	}}
}

// WithSpawner turns on automatic spawning.
func WithSpawner() SimOption {
	return SimOption{simOptConfig, func(ts *TestSim) {
		ts.cfg.Spawn.Manual = false
	}}
}

// WithStack places resting blocks in col from the floor up, in order.
func WithStack(col int, kinds ...int) SimOption {
	return SimOption{simOptBlocks, func(ts *TestSim) {
		for _, k := range kinds {
			ts.Board.place(col, k)
		}
	}}
}

// WithFalling queues a falling block on top of col.
func WithFalling(col, kind int) SimOption {
	return SimOption{simOptBlocks, func(ts *TestSim) {
		if _, err := ts.Board.SpawnBlock(col, kind); err != nil {
			panic(err)
		}
	}}
}

// NewTestSim builds the board in two passes: configuration options first,
// then block placement. It panics on an invalid configuration.
func NewTestSim(opts ...SimOption) *TestSim {
	cfg := config.Default()
	cfg.Board.SkipBootstrap = true
	cfg.Spawn.Manual = true
	cfg.Log.Mode = "silence"
	ts := &TestSim{
		cfg: cfg,
		rng: rand.New(rand.NewSource(1)), // #nosec G404 -- test harness default
	}
	for _, o := range opts {
		if o.kind == simOptConfig {
			o.fn(ts)
		}
	}
	ts.Events = NewEventLog(0)
	b, err := New(ts.cfg, WithRand(ts.rng), WithEventLog(ts.Events))
	if err != nil {
		panic(err)
	}
	ts.Board = b
	for _, o := range opts {
		if o.kind == simOptBlocks {
			o.fn(ts)
		}
	}
	return ts
}

// place puts a resting block directly on top of col's current stack.
func (b *Board) place(col, kind int) *Block {
	r := b.rows[col]
	blk := b.newBlock(kind, 0)
	r.queue(blk)
	blk.y = b.floor() - float64(len(r.blocks)-1)*b.blockSize
	blk.state = StateResting
	b.changed = true
	return blk
}

// RunTicks advances the board n ticks, spawner included.
func (ts *TestSim) RunTicks(n int) {
	for i := 0; i < n; i++ {
		ts.Board.AdvanceTick()
	}
}

// RunUntil advances up to maxTicks, stopping early if predicate returns
// true. Returns the tick at which the predicate was satisfied, or -1.
func (ts *TestSim) RunUntil(predicate func(*TestSim) bool, maxTicks int) int {
	for i := 0; i < maxTicks; i++ {
		ts.Board.AdvanceTick()
		if predicate(ts) {
			return ts.Board.ticks
		}
	}
	return -1
}

// CurrentTick returns the current simulation tick.
func (ts *TestSim) CurrentTick() int {
	return ts.Board.ticks
}

// Block returns the block at (col, idx), or nil.
func (ts *TestSim) Block(col, idx int) *Block {
	return ts.Board.blockAt(col, idx)
}

// Column returns the types in col from the floor up.
func (ts *TestSim) Column(col int) []int {
	r := ts.Board.Row(col)
	if r == nil {
		return nil
	}
	out := make([]int, len(r.blocks))
	for i, blk := range r.blocks {
		out[i] = blk.kind
	}
	return out
}

// Quiescent reports whether nothing is falling, launching or awaiting a
// group timeout.
func (ts *TestSim) Quiescent() bool {
	return ts.Board.numFalling == 0 && len(ts.Board.groups) == 0 && !ts.Board.changed
}

// SimSnapshot is a lightweight copy of the board at one tick.
type SimSnapshot struct {
	Tick          int
	TotalLaunched int
	Groups        int
	Blocks        []BlockView
}

// Snapshot returns the current board projection.
func (ts *TestSim) Snapshot() SimSnapshot {
	return SimSnapshot{
		Tick:          ts.Board.ticks,
		TotalLaunched: ts.Board.totalLaunched,
		Groups:        len(ts.Board.groups),
		Blocks:        ts.Board.Projection(),
	}
}
