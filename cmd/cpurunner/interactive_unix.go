//go:build !windows

package main

import (
	"context"
	"fmt"
	"io"

	"github.com/pkg/term"

	"github.com/FabianRolfMatthiasNoll/lr35902/internal/cpu"
	"github.com/FabianRolfMatthiasNoll/lr35902/internal/machine"
)

const interactiveHelp = "keys: n/space step, c continue, r reset, q quit"

// interactive single-steps m from single key presses on the controlling
// terminal.
func interactive(m *machine.Machine, out io.Writer) error {
	t, err := term.Open("/dev/tty", term.CBreakMode)
	if err != nil {
		return err
	}
	defer t.Close()
	defer t.Restore()

	fmt.Fprintln(out, interactiveHelp)
	showNext(m, out)

	key := make([]byte, 1)
	for {
		if _, err := t.Read(key); err != nil {
			return err
		}
		switch key[0] {
		case 'n', ' ':
			if _, err := m.Step(); err != nil {
				fmt.Fprintln(out, err)
			}
		case 'c':
			res, err := m.Run(context.Background())
			fmt.Fprintf(out, "stopped: %v after %d steps\n", res.Reason, res.Steps)
			if err != nil {
				fmt.Fprintln(out, err)
			}
		case 'r':
			m.Reset()
		case 'q', 0x1B:
			return nil
		default:
			fmt.Fprintln(out, interactiveHelp)
			continue
		}
		showNext(m, out)
	}
}

func showNext(m *machine.Machine, out io.Writer) {
	c := m.CPU()
	text, _ := cpu.Disassemble(m.Memory(), c.PC)
	fmt.Fprintf(out, "%s  cyc=%d  next: %s\n", c.Registers.String(), c.Cycles(), text)
}
