// Command cpuview runs a program image in a window showing memory and
// registers.
package main

import (
	"flag"
	"fmt"
	"image"
	"image/png"
	"os"
	"strings"
	"time"

	"github.com/FabianRolfMatthiasNoll/lr35902/internal/loader"
	"github.com/FabianRolfMatthiasNoll/lr35902/internal/log"
	"github.com/FabianRolfMatthiasNoll/lr35902/internal/machine"
	"github.com/FabianRolfMatthiasNoll/lr35902/internal/memory"
	"github.com/FabianRolfMatthiasNoll/lr35902/internal/ui"
)

type CLIFlags struct {
	ROMPath string
	LoadAt  uint
	PC      uint
	Scale   int
	Title   string
	SPF     int
	Paused  bool
	Debug   bool

	// headless
	Headless bool
	Steps    uint64
	PNGOut   string
	Expect   string // expected memory xxhash64 (hex)
}

func parseFlags() CLIFlags {
	var f CLIFlags
	flag.StringVar(&f.ROMPath, "rom", "", "program image (.bin, .gb, .gz, .zip, .7z)")
	flag.UintVar(&f.LoadAt, "load", 0, "load address for raw images")
	flag.UintVar(&f.PC, "pc", 0, "initial PC; 0 picks 0x0100 for cartridges and -load otherwise")
	flag.IntVar(&f.Scale, "scale", 2, "window scale")
	flag.StringVar(&f.Title, "title", "cpuview", "window title")
	flag.IntVar(&f.SPF, "spf", 1000, "instructions per frame")
	flag.BoolVar(&f.Paused, "paused", false, "start paused")
	flag.BoolVar(&f.Debug, "debug", false, "debug logging")

	// headless options
	flag.BoolVar(&f.Headless, "headless", false, "run without a window")
	flag.Uint64Var(&f.Steps, "steps", 100_000, "instructions to run in headless mode")
	flag.StringVar(&f.PNGOut, "outpng", "", "write the final memory map to PNG at path")
	flag.StringVar(&f.Expect, "expect", "", "assert memory xxhash64 (hex)")
	flag.Parse()
	return f
}

func runHeadless(m *machine.Machine, logger log.Logger, steps uint64, pngPath, expect string) error {
	start := time.Now()
	var ran uint64
	for ; ran < steps; ran++ {
		if _, err := m.Step(); err != nil {
			logger.Infof("stopped: %v", err)
			break
		}
	}
	dur := time.Since(start)

	sum := m.Memory().Checksum()
	logger.Infof("headless: steps=%d cycles=%d elapsed=%s mem_xxhash=%016x",
		ran, m.CPU().Cycles(), dur.Truncate(time.Millisecond), sum)

	if pngPath != "" {
		if err := saveMemoryPNG(m, pngPath); err != nil {
			return fmt.Errorf("write PNG: %w", err)
		}
		logger.Infof("wrote %s", pngPath)
	}

	if expect != "" {
		want := strings.TrimPrefix(strings.ToLower(expect), "0x")
		got := fmt.Sprintf("%016x", sum)
		if got != want {
			return fmt.Errorf("checksum mismatch: got %s, want %s", got, want)
		}
	}
	return nil
}

func saveMemoryPNG(m *machine.Machine, path string) error {
	const side = 256
	img := &image.RGBA{
		Pix:    make([]byte, memory.Size*4),
		Stride: 4 * side,
		Rect:   image.Rect(0, 0, side, side),
	}
	c := m.CPU()
	ui.RenderMemory(img.Pix, m.Memory().Bytes(), c.PC, c.SP)

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return png.Encode(f, img)
}

func main() {
	f := parseFlags()
	logger := log.New(os.Stderr, f.Debug)

	if f.ROMPath == "" {
		logger.Errorf("-rom is required")
		os.Exit(1)
	}
	img, err := loader.Load(f.ROMPath)
	if err != nil {
		logger.Errorf("read rom: %v", err)
		os.Exit(1)
	}

	m, err := machine.New(machine.Config{
		Origin:      uint16(f.LoadAt),
		Entry:       uint16(f.PC),
		TraceWindow: 1,
	}, logger)
	if err != nil {
		logger.Errorf("%v", err)
		os.Exit(1)
	}
	if err := m.Load(img); err != nil {
		logger.Errorf("load: %v", err)
		os.Exit(1)
	}

	if f.Headless {
		if err := runHeadless(m, logger, f.Steps, f.PNGOut, f.Expect); err != nil {
			logger.Errorf("%v", err)
			os.Exit(1)
		}
		return
	}

	uiCfg := ui.Config{Title: f.Title, Scale: f.Scale, StepsPerFrame: f.SPF, Paused: f.Paused}
	app := ui.NewApp(uiCfg, m)
	if err := app.Run(); err != nil {
		logger.Errorf("%v", err)
		os.Exit(1)
	}
}
