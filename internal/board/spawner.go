package board

import "github.com/Garsondee/Block-Launch/internal/config"

// Spawner drops a random block whenever the board has been quiet long
// enough. The wait shrinks as more blocks are cleared off the top.
type Spawner struct {
	cooldown int
	base     float64
	divisor  float64
}

// NewSpawner builds a spawner from validated spawn settings.
func NewSpawner(sc config.SpawnConfig) *Spawner {
	return &Spawner{base: sc.CooldownBase, divisor: sc.CooldownDivisor}
}

// Cooldown returns the number of consecutive quiet ticks counted so far.
func (s *Spawner) Cooldown() int { return s.cooldown }

// Threshold returns the quiet ticks needed before the next spawn.
func (s *Spawner) Threshold(totalLaunched int) float64 {
	return s.base - float64(totalLaunched)/s.divisor
}

// Step advances the cooldown against b's falling count from the previous
// tick and spawns when the threshold is passed. It returns the spawned
// block, or nil.
func (s *Spawner) Step(b *Board) *Block {
	if b.numFalling != 0 {
		s.cooldown = 0
		return nil
	}
	s.cooldown++
	if float64(s.cooldown) <= s.Threshold(b.totalLaunched) {
		return nil
	}
	s.cooldown = 0
	col := b.rng.Intn(b.width)
	kind := 1 + b.rng.Intn(b.types)
	blk, err := b.SpawnBlock(col, kind)
	if err != nil {
		// Column and type are drawn from the board's own bounds.
		b.log.Error("spawn failed", "column", col, "type", kind, "error", err)
		return nil
	}
	return blk
}
