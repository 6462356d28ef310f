package ui

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/FabianRolfMatthiasNoll/lr35902/internal/machine"
)

const (
	mapSize = 256 // the 64 KiB map is drawn as 256x256 pixels
	panelW  = 260
	screenW = mapSize + panelW
	screenH = mapSize
)

type App struct {
	cfg    Config
	m      *machine.Machine
	tex    *ebiten.Image
	pix    []byte
	paused bool
	fast   bool

	// status line, cleared after toastUntil
	toastMsg   string
	toastUntil time.Time
	// lastErr is the decode failure that paused the machine
	lastErr error
}

func NewApp(cfg Config, m *machine.Machine) *App {
	cfg.Defaults()
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(screenW*cfg.Scale, screenH*cfg.Scale)
	return &App{cfg: cfg, m: m, pix: make([]byte, mapSize*mapSize*4), paused: cfg.Paused}
}

func (a *App) Run() error {
	err := ebiten.RunGame(a)
	if errors.Is(err, ebiten.Termination) {
		return nil
	}
	return err
}

func (a *App) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	// Pause toggle (P)
	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		a.paused = !a.paused
		a.lastErr = nil
	}

	// Fast-forward (Space) while held
	a.fast = ebiten.IsKeyPressed(ebiten.KeySpace)

	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		a.m.Reset()
		a.lastErr = nil
		a.toast("reset")
	}

	// Screenshot of the memory map (F12)
	if inpututil.IsKeyJustPressed(ebiten.KeyF12) {
		if name, err := a.saveScreenshot(); err != nil {
			a.toast("screenshot failed: " + err.Error())
		} else {
			a.toast("saved " + name)
		}
	}

	// Single-step when paused (N)
	if a.paused && inpututil.IsKeyJustPressed(ebiten.KeyN) {
		a.run(1)
	}
	if !a.paused {
		n := a.cfg.StepsPerFrame
		if a.fast {
			n *= a.cfg.FastFactor
		}
		a.run(n)
	}
	return nil
}

// run executes up to n instructions and pauses on a decode failure.
func (a *App) run(n int) {
	for i := 0; i < n; i++ {
		if _, err := a.m.Step(); err != nil {
			a.paused = true
			a.lastErr = err
			return
		}
	}
}

func (a *App) toast(msg string) {
	a.toastMsg = msg
	a.toastUntil = time.Now().Add(2 * time.Second)
}

func (a *App) Draw(screen *ebiten.Image) {
	if a.tex == nil {
		a.tex = ebiten.NewImage(mapSize, mapSize)
	}
	c := a.m.CPU()
	RenderMemory(a.pix, a.m.Memory().Bytes(), c.PC, c.SP)
	a.tex.WritePixels(a.pix)
	screen.DrawImage(a.tex, nil)

	status := "running"
	switch {
	case a.lastErr != nil:
		status = "stopped: " + a.lastErr.Error()
	case a.paused:
		status = "paused (N step, P resume)"
	case a.fast:
		status = fmt.Sprintf("running x%d", a.cfg.FastFactor)
	}
	if a.toastMsg != "" && time.Now().Before(a.toastUntil) {
		status = a.toastMsg
	}

	lines := panelLines(a.m, status)
	for i, s := range lines {
		ebitenutil.DebugPrintAt(screen, s, mapSize+6, 4+i*14)
	}
}

func (a *App) Layout(outW, outH int) (int, int) { return screenW, screenH }

func (a *App) saveScreenshot() (string, error) {
	img := &image.RGBA{
		Pix:    make([]byte, len(a.pix)),
		Stride: 4 * mapSize,
		Rect:   image.Rect(0, 0, mapSize, mapSize),
	}
	copy(img.Pix, a.pix)
	ts := time.Now().Format("20060102_150405")
	name := fmt.Sprintf("memory_%s.png", ts)
	f, err := os.Create(name)
	if err != nil {
		return "", err
	}
	defer f.Close()
	return name, png.Encode(f, img)
}
