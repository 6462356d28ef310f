package ui

// Config contains window and pacing settings for the viewer.
type Config struct {
	Title         string // window title
	Scale         int    // integer upscaling factor
	StepsPerFrame int    // instructions per 60 Hz update while running
	FastFactor    int    // StepsPerFrame multiplier while Space is held
	Paused        bool   // start paused
}

// Defaults fills missing fields with reasonable defaults.
func (c *Config) Defaults() {
	if c.Title == "" {
		c.Title = "cpuview"
	}
	if c.Scale <= 0 {
		c.Scale = 2
	}
	if c.StepsPerFrame <= 0 {
		c.StepsPerFrame = 1000
	}
	if c.FastFactor <= 0 {
		c.FastFactor = 10
	}
}
