package machine

// Config contains settings that affect how a program is loaded and run.
type Config struct {
	// Origin is where raw images are placed. Cartridges always load at 0.
	Origin uint16
	// Entry is the initial PC. Zero picks 0x0100 for cartridges and Origin
	// for raw images.
	Entry uint16
	// PostBoot loads the DMG post-boot registers for raw images too.
	// Cartridges always start post-boot.
	PostBoot bool

	Trace       bool   // write one line per executed instruction
	TraceWindow int    // recent instructions kept for failure dumps
	MaxSteps    uint64 // 0 runs until another stop condition
	Until       string // Starlark stop expression, see package watch
	Profile     bool   // count executed opcodes
}

// Defaults fills missing fields with reasonable defaults.
func (c *Config) Defaults() {
	if c.TraceWindow <= 0 {
		c.TraceWindow = 32
	}
}
