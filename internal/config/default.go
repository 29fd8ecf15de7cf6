package config

// Default returns the stock 10x12 board with five block colours.
func Default() *Config {
	return &Config{
		Seed: 0,
		Board: BoardConfig{
			Width:      10,
			Height:     12,
			BlockSize:  32,
			FallSpeed:  8,
			Types:      5,
			LaunchTTL:  100,
			StackDepth: 3,
		},
		Spawn: SpawnConfig{
			CooldownBase:    60,
			CooldownDivisor: 10,
		},
		Trajectories: []TrajectoryConfig{
			{Initial: 3, Decay: 2},   // blue
			{Initial: 4, Decay: 2},   // green
			{Initial: 2, Decay: 1.5}, // yellow
			{Initial: 2, Decay: 1},   // red
			{Initial: 7, Decay: 3},   // purple
		},
		Display: DisplayConfig{
			Scale:     2,
			SimSpeed:  1,
			FeedLines: 24,
		},
		Log: LogConfig{Mode: "dev"},
	}
}
