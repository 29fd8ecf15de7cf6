package board

import (
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/Garsondee/Block-Launch/internal/config"
	"github.com/Garsondee/Block-Launch/internal/logger"
)

var (
	ErrColumnOutOfRange = errors.New("column out of range")
	ErrInvalidType      = errors.New("invalid block type")
)

// runAxis is the direction a match run extends in.
type runAxis uint8

const (
	runAcross runAxis = iota + 1 // same stack index, next columns
	runAlong                     // same column, next indices up
)

func (a runAxis) String() string {
	if a == runAcross {
		return "across"
	}
	return "along"
}

// Board owns every Row and every live LaunchGroup. It is not safe for
// concurrent use; frontends serialise input and ticks on one goroutine.
type Board struct {
	width     int
	height    int
	blockSize float64
	fallSpeed float64
	types     int
	launchTTL int
	curves    []Trajectory

	rows   []*Row
	groups []*LaunchGroup

	numFalling    int
	changed       bool // rescan requested outside row physics
	selected      *Block
	totalLaunched int
	ticks         int
	nextBlockID   int
	nextGroupID   int

	rng     *rand.Rand
	spawner *Spawner
	log     *slog.Logger
	events  *EventLog
}

// Option customises a Board at construction.
type Option func(*Board)

// WithRand replaces the seeded RNG used for revive and spawning.
func WithRand(rng *rand.Rand) Option {
	return func(b *Board) { b.rng = rng }
}

// WithLogger routes match and dissolve diagnostics to l.
func WithLogger(l *slog.Logger) Option {
	return func(b *Board) { b.log = l }
}

// WithEventLog records board events into el instead of a private log.
func WithEventLog(el *EventLog) Option {
	return func(b *Board) { b.events = el }
}

// New builds a board from cfg (nil means defaults). Unless the config skips
// it, every column is filled with dead blocks that drop, settle and revive
// into a random starting layout.
func New(cfg *config.Config, opts ...Option) (*Board, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("board config: %w", err)
	}
	b := &Board{
		width:     cfg.Board.Width,
		height:    cfg.Board.Height,
		blockSize: cfg.Board.BlockSize,
		fallSpeed: cfg.Board.FallSpeed,
		types:     cfg.Board.Types,
		launchTTL: cfg.Board.LaunchTTL,
	}
	for _, tc := range cfg.Trajectories {
		b.curves = append(b.curves, Trajectory{Initial: tc.Initial, Decay: tc.Decay})
	}
	for _, o := range opts {
		o(b)
	}
	if b.rng == nil {
		seed := cfg.Seed
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		b.rng = rand.New(rand.NewSource(seed)) // #nosec G404 -- game only
	}
	if b.log == nil {
		b.log = logger.Discard()
	}
	if b.events == nil {
		b.events = NewEventLog(defaultEventLimit)
	}
	if !cfg.Spawn.Manual {
		b.spawner = NewSpawner(cfg.Spawn)
	}

	b.rows = make([]*Row, b.width)
	for i := range b.rows {
		b.rows[i] = &Row{board: b, num: i}
	}
	if !cfg.Board.SkipBootstrap {
		b.bootstrap(cfg.Board.StackDepth)
	}
	return b, nil
}

// bootstrap drops depth dead blocks into every column on a group that
// slams them to the floor and dissolves once they settle.
func (b *Board) bootstrap(depth int) {
	drop := (float64(b.height) + 1) * b.blockSize
	g := b.newGroup(Along(Trajectory{Initial: -drop}))
	g.timeToLive = b.launchTTL
	for _, r := range b.rows {
		for j := 0; j < depth; j++ {
			blk := b.newBlock(TypeDead, drop)
			r.queue(blk)
			g.AddBlock(blk)
		}
	}
}

func (b *Board) Width() int            { return b.width }
func (b *Board) Height() int           { return b.height }
func (b *Board) BlockSize() float64    { return b.blockSize }
func (b *Board) Types() int            { return b.types }
func (b *Board) NumFalling() int       { return b.numFalling }
func (b *Board) TotalLaunched() int    { return b.totalLaunched }
func (b *Board) CurrentTick() int      { return b.ticks }
func (b *Board) Selected() *Block      { return b.selected }
func (b *Board) Events() *EventLog     { return b.events }
func (b *Board) Dirty() bool           { return b.changed }
func (b *Board) Spawner() *Spawner     { return b.spawner }
func (b *Board) Logger() *slog.Logger  { return b.log }
func (b *Board) Curve(kind int) (Trajectory, bool) {
	if kind < 1 || kind > len(b.curves) {
		return Trajectory{}, false
	}
	return b.curves[kind-1], true
}

// Row returns column i, or nil when out of range.
func (b *Board) Row(i int) *Row {
	if i < 0 || i >= len(b.rows) {
		return nil
	}
	return b.rows[i]
}

// Groups returns the live launch groups in creation order.
func (b *Board) Groups() []*LaunchGroup {
	return append([]*LaunchGroup(nil), b.groups...)
}

// floor is the resting y of a block at index 0.
func (b *Board) floor() float64 {
	return b.blockSize*float64(b.height) - b.blockSize
}

func (b *Board) blockAt(col, idx int) *Block {
	if col < 0 || col >= len(b.rows) {
		return nil
	}
	return b.rows[col].At(idx)
}

func (b *Board) newBlock(kind int, speed float64) *Block {
	b.nextBlockID++
	return &Block{
		id:    b.nextBlockID,
		kind:  kind,
		state: StateFalling,
		speed: speed,
	}
}

func (b *Board) newGroup(m Motion) *LaunchGroup {
	b.nextGroupID++
	g := &LaunchGroup{id: b.nextGroupID, board: b, motion: m}
	b.groups = append(b.groups, g)
	return g
}

// AdvanceTick runs the spawner policy and then one simulation step.
func (b *Board) AdvanceTick() {
	b.ticks++
	if b.spawner != nil {
		b.spawner.Step(b)
	}
	b.step()
}

// Tick runs one simulation step without the spawner.
func (b *Board) Tick() {
	b.ticks++
	b.step()
}

// step ages groups, integrates every column, then rescans for matches if
// anything changed.
func (b *Board) step() {
	live := b.groups[:0]
	for _, g := range b.groups {
		if g.Tick() {
			live = append(live, g)
		}
	}
	for i := len(live); i < len(b.groups); i++ {
		b.groups[i] = nil
	}
	b.groups = live

	numFalling := 0
	changed := b.changed
	for _, r := range b.rows {
		f, c := r.tick()
		numFalling += f
		changed = changed || c
	}
	b.numFalling = numFalling

	if changed {
		b.changed = false
		b.scan()
	}
}

// SpawnBlock queues a new falling block of the given type on top of column.
func (b *Board) SpawnBlock(column, kind int) (*Block, error) {
	if column < 0 || column >= len(b.rows) {
		return nil, fmt.Errorf("%w: %d (width %d)", ErrColumnOutOfRange, column, len(b.rows))
	}
	if kind < 1 || kind > b.types {
		return nil, fmt.Errorf("%w: %d (types 1..%d)", ErrInvalidType, kind, b.types)
	}
	blk := b.newBlock(kind, b.fallSpeed)
	r := b.rows[column]
	r.queue(blk)
	b.events.Add(b.ticks, column, len(r.blocks)-1, "spawn", "queue", TypeName(kind)+" "+blk.label(), 0)
	return blk, nil
}

// reap accounts for a block that left through the top of the board.
func (b *Board) reap(blk *Block, col, idx int) {
	b.totalLaunched++
	if b.selected == blk {
		b.selected = nil
	}
	b.events.Add(b.ticks, col, idx, "despawn", "top", TypeName(blk.kind)+" "+blk.label(), float64(b.totalLaunched))
}

// matches reports whether x continues a run started by e: same type, same
// falling state and, while launching, the same group.
func matches(e, x *Block) bool {
	if x == nil || x.kind != e.kind || x.state != e.state {
		return false
	}
	return e.state == StateResting || x.group == e.group
}

// scan looks for runs of three from every live, coloured block: first
// across columns at the same index, then up its own column.
func (b *Board) scan() {
	for i, r := range b.rows {
		for j := 0; j < len(r.blocks); j++ {
			e := r.blocks[j]
			if e.kind == TypeDead || (e.state != StateResting && e.state != StateLaunching) {
				continue
			}
			axis := runAcross
			x, y := b.blockAt(i+1, j), b.blockAt(i+2, j)
			if !matches(e, x) || !matches(e, y) {
				axis = runAlong
				x, y = r.At(j+1), r.At(j+2)
				if !matches(e, x) || !matches(e, y) {
					continue
				}
			}
			b.launchRun(e, x, y, i, j, axis)
		}
	}
}

// launchRun turns a confirmed run into a new launch group and extends it
// greedily along axis.
func (b *Board) launchRun(e, x, y *Block, col, idx int, axis runAxis) {
	kind, state, origin := e.kind, e.state, e.group
	g := b.newGroup(Along(b.curves[kind-1]))
	for _, blk := range [...]*Block{e, x, y} {
		b.launch(blk, g)
	}
	n := 3
	for k := 3; ; k++ {
		var next *Block
		if axis == runAcross {
			next = b.blockAt(col+k, idx)
		} else {
			next = b.blockAt(col, idx+k)
		}
		// Cells already swept into g by propagation still count.
		if next == nil || next.kind != kind {
			break
		}
		if next.group != g && (next.state != state || (state == StateLaunching && next.group != origin)) {
			break
		}
		b.launch(next, g)
		n++
	}

	// Merges and sweeps can complete runs in cells the scan already passed.
	b.changed = true
	b.events.Add(b.ticks, col, idx, "match", axis.String(),
		fmt.Sprintf("%s ×%d → %s (%d blocks)", TypeName(kind), n, g.label(), g.Len()), float64(n))
	b.log.Debug("launch group formed",
		"group", g.id, "type", TypeName(kind), "run", n, "axis", axis.String(),
		"members", g.Len(), "tick", b.ticks)
}

func (b *Board) launch(blk *Block, g *LaunchGroup) {
	blk.SetType(TypeDead)
	g.AddBlock(blk)
}

// revive gives blk a fresh colour that none of its four grid neighbours
// has. When the neighbours cover every colour it picks from all of them.
func (b *Board) revive(blk *Block) {
	col, idx := blk.Column(), blk.Index()
	banned := make([]bool, b.types+1)
	for _, n := range [...]*Block{
		b.blockAt(col-1, idx),
		b.blockAt(col+1, idx),
		b.blockAt(col, idx+1),
		b.blockAt(col, idx-1),
	} {
		if n != nil && n.kind >= 0 && n.kind <= b.types {
			banned[n.kind] = true
		}
	}
	candidates := make([]int, 0, b.types)
	for k := 1; k <= b.types; k++ {
		if !banned[k] {
			candidates = append(candidates, k)
		}
	}
	if len(candidates) == 0 {
		for k := 1; k <= b.types; k++ {
			candidates = append(candidates, k)
		}
	}
	blk.SetType(candidates[b.rng.Intn(len(candidates))])
	b.events.Add(b.ticks, col, idx, "revive", "type", TypeName(blk.kind)+" "+blk.label(), float64(len(candidates)))
}
