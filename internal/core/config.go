package core

// RuntimeConfig contains host parameters passed to a session at start.
// The engine itself is configured separately; this only describes the display.
type RuntimeConfig struct {
	ScreenW int   // Screen width in characters
	ScreenH int   // Screen height in characters
	FPS     int   // Display refresh opportunities per second
	Seed    int64 // RNG seed for spawn lanes
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW: 80,
		ScreenH: 24,
		FPS:     60,
		Seed:    0, // 0 means use current time in platform layer
	}
}
