// Command cpurunner loads a program image and runs it headless.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/FabianRolfMatthiasNoll/lr35902/internal/loader"
	"github.com/FabianRolfMatthiasNoll/lr35902/internal/log"
	"github.com/FabianRolfMatthiasNoll/lr35902/internal/machine"
	"github.com/FabianRolfMatthiasNoll/lr35902/internal/memory"
	"github.com/FabianRolfMatthiasNoll/lr35902/internal/statsview"
	"github.com/FabianRolfMatthiasNoll/lr35902/internal/translate"
)

const (
	exitOK      = 0
	exitFailure = 1
	exitTimeout = 2
)

type CLIFlags struct {
	ROMPath string
	LoadAt  uint
	PC      uint
	Steps   uint64
	Timeout time.Duration

	Trace       bool
	TraceWindow int
	Until       string
	Expect      string // expected xxhash64 of final memory (hex)

	Profile    int    // top-N opcodes to report, 0 disables
	ProfilePNG string // bar chart output path

	Interactive bool
	StatsView   bool
	Debug       bool
	Quiet       bool
}

func parseFlags() CLIFlags {
	var f CLIFlags
	flag.StringVar(&f.ROMPath, "rom", "", "program image (.bin, .gb, .gz, .zip, .7z)")
	flag.UintVar(&f.LoadAt, "load", 0, "load address for raw images")
	flag.UintVar(&f.PC, "pc", 0, "initial PC; 0 picks 0x0100 for cartridges and -load otherwise")
	flag.Uint64Var(&f.Steps, "steps", 5_000_000, "max CPU steps to run; 0 for no limit")
	flag.DurationVar(&f.Timeout, "timeout", 0, "optional wall-clock timeout (e.g. 30s, 2m); 0 disables")

	flag.BoolVar(&f.Trace, "trace", false, "print one line per instruction")
	flag.IntVar(&f.TraceWindow, "traceWindow", 32, "recent instructions to dump when decoding fails")
	flag.StringVar(&f.Until, "until", "", "stop when this Starlark expression is true (e.g. 'pc == 0x0150')")
	flag.StringVar(&f.Expect, "expect", "", "assert final memory xxhash64 (hex)")

	flag.IntVar(&f.Profile, "profile", 0, "print the N most executed opcodes")
	flag.StringVar(&f.ProfilePNG, "profile-png", "", "write an opcode frequency chart to this path")

	flag.BoolVar(&f.Interactive, "interactive", false, "single-step from the terminal")
	flag.BoolVar(&f.StatsView, "statsview", false, "serve runtime statistics (needs the statsview build tag)")
	flag.BoolVar(&f.Debug, "debug", false, "debug logging")
	flag.BoolVar(&f.Quiet, "quiet", false, "no logging")
	flag.Parse()
	return f
}

func main() {
	os.Exit(run(parseFlags()))
}

func run(f CLIFlags) int {
	logger := log.New(os.Stderr, f.Debug)
	if f.Quiet {
		logger = log.NewNullLogger()
	}

	if f.ROMPath == "" {
		logger.Errorf("-rom is required")
		return exitFailure
	}
	if f.LoadAt >= memory.Size || f.PC >= memory.Size {
		logger.Errorf("-load and -pc must be below 0x10000")
		return exitFailure
	}
	if f.StatsView {
		if !statsview.Available() {
			logger.Errorf("built without the statsview tag")
		}
		statsview.Launch(os.Stderr)
	}

	img, err := loader.Load(f.ROMPath)
	if err != nil {
		logger.Errorf("read rom: %v", err)
		return exitFailure
	}

	cfg := machine.Config{
		Origin:      uint16(f.LoadAt),
		Entry:       uint16(f.PC),
		Trace:       f.Trace,
		TraceWindow: f.TraceWindow,
		MaxSteps:    f.Steps,
		Until:       f.Until,
		Profile:     f.Profile > 0 || f.ProfilePNG != "",
	}
	m, err := machine.New(cfg, logger)
	if err != nil {
		logger.Errorf("%v", err)
		return exitFailure
	}
	m.SetTraceWriter(os.Stdout)
	if err := m.Load(img); err != nil {
		logger.Errorf("load: %v", err)
		return exitFailure
	}

	if f.Interactive {
		if err := interactive(m, os.Stdout); err != nil {
			logger.Errorf("interactive: %v", err)
			return exitFailure
		}
		return exitOK
	}

	ctx := context.Background()
	if f.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.Timeout)
		defer cancel()
	}

	res, runErr := m.Run(ctx)
	code := exitOK
	switch res.Reason {
	case machine.StopDecode, machine.StopWatchError:
		logger.Errorf("%v", runErr)
		dumpRecent(m)
		code = exitFailure
	case machine.StopTimeout:
		translate.Fprintln(os.Stdout, "\nTimeout after %s.", res.Elapsed.Truncate(time.Millisecond))
		code = exitTimeout
	}

	c := m.CPU()
	translate.Fprintln(os.Stdout, "\nDone: reason=%v steps=%d cycles=%d elapsed=%s", res.Reason, res.Steps, res.Cycles, res.Elapsed.Truncate(time.Millisecond))
	fmt.Println(c.Registers.String())

	if err := report(m, f); err != nil {
		logger.Errorf("profile: %v", err)
		code = exitFailure
	}

	if f.Expect != "" {
		want := strings.TrimPrefix(strings.ToLower(f.Expect), "0x")
		got := fmt.Sprintf("%016x", m.Memory().Checksum())
		if got != want {
			logger.Errorf("checksum mismatch: got %s, want %s", got, want)
			if code == exitOK {
				code = exitFailure
			}
		} else {
			logger.Infof("checksum %s ok", got)
		}
	}
	return code
}

// dumpRecent prints the trace window leading up to a failure.
func dumpRecent(m *machine.Machine) {
	recent := m.Recent()
	if len(recent) == 0 {
		return
	}
	fmt.Printf("\n--- recent trace (last %d instructions) ---\n", len(recent))
	for _, te := range recent {
		fmt.Println(te.String())
	}
	fmt.Printf("--- end trace ---\n")
}

func report(m *machine.Machine, f CLIFlags) error {
	p := m.Profile()
	if p == nil {
		return nil
	}
	if f.Profile > 0 {
		fmt.Println()
		if err := p.Report(os.Stdout, f.Profile); err != nil {
			return err
		}
	}
	if f.ProfilePNG != "" {
		n := f.Profile
		if n <= 0 {
			n = 20
		}
		if err := p.WriteChart(f.ProfilePNG, n); err != nil {
			return err
		}
	}
	return nil
}
