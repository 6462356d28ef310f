package machine

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/FabianRolfMatthiasNoll/lr35902/internal/cpu"
	"github.com/FabianRolfMatthiasNoll/lr35902/internal/loader"
	"github.com/FabianRolfMatthiasNoll/lr35902/internal/log"
	"github.com/FabianRolfMatthiasNoll/lr35902/internal/memory"
	"github.com/FabianRolfMatthiasNoll/lr35902/internal/profile"
	"github.com/FabianRolfMatthiasNoll/lr35902/internal/watch"
)

//go:generate go tool stringer -type=StopReason -trimprefix=Stop -output=stopreason_string.go

const (
	cartridgeEntry = 0x0100
	// cartridgeWindow is the part of a cartridge visible without a mapper.
	cartridgeWindow = 0x8000

	// contexts are polled every ctxPoll steps
	ctxPoll = 4096
)

// StopReason says why Run returned.
type StopReason int

const (
	StopNone StopReason = iota
	StopSteps
	StopCondition
	StopDecode
	StopWatchError
	StopTimeout
	StopCanceled
)

// Result summarises one call to Run.
type Result struct {
	Reason  StopReason
	Steps   uint64 // total since the last load or reset
	Cycles  uint64
	Elapsed time.Duration
}

// TraceEntry is the CPU state after one instruction.
type TraceEntry struct {
	PC                     uint16
	Op                     byte
	Cyc                    int
	A, F, B, C, D, E, H, L byte
	SP                     uint16
	Text                   string
}

func (te TraceEntry) String() string {
	return fmt.Sprintf("PC=%04X OP=%02X cyc=%d A=%02X F=%02X B=%02X C=%02X D=%02X E=%02X H=%02X L=%02X SP=%04X  %s",
		te.PC, te.Op, te.Cyc, te.A, te.F, te.B, te.C, te.D, te.E, te.H, te.L, te.SP, te.Text)
}

// Machine owns one CPU and one Memory and drives the step loop.
type Machine struct {
	cfg Config
	log log.Logger

	cpu   *cpu.CPU
	mem   *memory.Memory
	until *watch.Condition
	prof  *profile.Profile

	traceOut io.Writer
	ring     []TraceEntry
	ringIdx  int
	ringFill int

	steps uint64

	// load state, restored by Reset
	name     string
	image    []byte
	imageAt  uint16
	entry    uint16
	postBoot bool
}

func New(cfg Config, logger log.Logger) (*Machine, error) {
	cfg.Defaults()
	if logger == nil {
		logger = log.NewNullLogger()
	}

	m := &Machine{
		cfg:  cfg,
		log:  logger,
		cpu:  cpu.New(),
		mem:  memory.New(),
		ring: make([]TraceEntry, cfg.TraceWindow),
	}
	if cfg.Until != "" {
		cond, err := watch.Compile(cfg.Until)
		if err != nil {
			return nil, err
		}
		m.until = cond
	}
	if cfg.Profile {
		m.prof = profile.New()
	}
	return m, nil
}

func (m *Machine) CPU() *cpu.CPU             { return m.cpu }
func (m *Machine) Memory() *memory.Memory    { return m.mem }
func (m *Machine) Profile() *profile.Profile { return m.prof }
func (m *Machine) Steps() uint64             { return m.steps }
func (m *Machine) Name() string              { return m.name }

// SetTraceWriter sets where Config.Trace lines go.
func (m *Machine) SetTraceWriter(w io.Writer) { m.traceOut = w }

// Load places an image in memory and resets the CPU to its entry point.
// Cartridges are mapped at 0 with their first 32 KiB visible and start
// post-boot at 0x0100.
func (m *Machine) Load(img *loader.Image) error {
	data, at, entry, postBoot := img.Data, m.cfg.Origin, m.cfg.Origin, m.cfg.PostBoot
	if img.Cartridge() {
		h := img.Header
		m.log.Infof("cartridge %q type=%s rom=%d bytes", h.Title, h.CartTypeString(), h.ROMSize())
		if len(data) > cartridgeWindow {
			m.log.Infof("only the first %d of %d bytes are mapped", cartridgeWindow, len(data))
			data = data[:cartridgeWindow]
		}
		at, entry, postBoot = 0, cartridgeEntry, true
	}
	if m.cfg.Entry != 0 {
		entry = m.cfg.Entry
	}
	if err := m.LoadBytes(at, data, entry, postBoot); err != nil {
		return fmt.Errorf("%s: %w", img.Name, err)
	}
	m.name = img.Name
	return nil
}

// LoadBytes places data at addr and resets the CPU to entry.
func (m *Machine) LoadBytes(addr uint16, data []byte, entry uint16, postBoot bool) error {
	if int(addr)+len(data) > memory.Size {
		return memory.ErrImageTooLarge
	}
	m.image = append(m.image[:0], data...)
	m.imageAt = addr
	m.entry = entry
	m.postBoot = postBoot
	m.name = ""
	m.Reset()
	m.log.Debugf("loaded %d bytes at %04X, entry %04X", len(data), addr, entry)
	return nil
}

// Reset restores memory and registers to the state right after the last
// load and clears the step count, trace window and profile.
func (m *Machine) Reset() {
	m.mem.Clear()
	// the size was checked when the image was loaded
	_ = m.mem.Load(m.imageAt, m.image)

	m.cpu.Reset()
	if m.postBoot {
		m.cpu.ResetPostBoot()
	}
	m.cpu.PC = m.entry

	m.steps = 0
	m.ringIdx, m.ringFill = 0, 0
	if m.prof != nil {
		m.prof.Reset()
	}
}

// Step executes one instruction. On a decode failure the trace window ends
// with the last instruction that did execute.
func (m *Machine) Step() (int, error) {
	pc := m.cpu.PC
	op := m.mem.Read(pc)

	keep := m.cfg.Trace || len(m.ring) > 0
	var text string
	if keep {
		text, _ = cpu.Disassemble(m.mem, pc)
	}

	cyc, err := m.cpu.Step(m.mem)
	if err != nil {
		return 0, err
	}
	m.steps++
	if m.prof != nil {
		m.prof.Record(op, cyc)
	}

	if keep {
		c := m.cpu
		te := TraceEntry{
			PC: pc, Op: op, Cyc: cyc,
			A: c.A, F: c.F(), B: c.B, C: c.C, D: c.D, E: c.E, H: c.H, L: c.L,
			SP:   c.SP,
			Text: text,
		}
		if m.cfg.Trace && m.traceOut != nil {
			fmt.Fprintln(m.traceOut, te.String())
		}
		if len(m.ring) > 0 {
			m.ring[m.ringIdx] = te
			m.ringIdx = (m.ringIdx + 1) % len(m.ring)
			if m.ringFill < len(m.ring) {
				m.ringFill++
			}
		}
	}
	return cyc, nil
}

// Recent returns the trace window in execution order.
func (m *Machine) Recent() []TraceEntry {
	out := make([]TraceEntry, 0, m.ringFill)
	start := (m.ringIdx - m.ringFill + len(m.ring)) % max(len(m.ring), 1)
	for j := 0; j < m.ringFill; j++ {
		out = append(out, m.ring[(start+j)%len(m.ring)])
	}
	return out
}

// Run steps until MaxSteps, the Until condition, a decode failure or
// cancellation of ctx. The error is non-nil only for StopDecode and
// StopWatchError.
func (m *Machine) Run(ctx context.Context) (Result, error) {
	start := time.Now()
	res := Result{}
	err := m.run(ctx, &res)

	res.Steps = m.steps
	res.Cycles = m.cpu.Cycles()
	res.Elapsed = time.Since(start)
	return res, err
}

func (m *Machine) run(ctx context.Context, res *Result) error {
	for n := 0; ; n++ {
		if m.cfg.MaxSteps > 0 && m.steps >= m.cfg.MaxSteps {
			res.Reason = StopSteps
			return nil
		}
		if n%ctxPoll == 0 {
			if err := ctx.Err(); err != nil {
				res.Reason = StopCanceled
				if errors.Is(err, context.DeadlineExceeded) {
					res.Reason = StopTimeout
				}
				return nil
			}
		}

		if _, err := m.Step(); err != nil {
			res.Reason = StopDecode
			m.log.Debugf("stopped after %d steps: %v", m.steps, err)
			return err
		}

		if m.until != nil {
			hit, err := m.until.Eval(&m.cpu.Registers, m.mem, m.cpu.Cycles(), m.steps)
			if err != nil {
				res.Reason = StopWatchError
				return err
			}
			if hit {
				res.Reason = StopCondition
				return nil
			}
		}
	}
}
