//go:build windows

package main

import (
	"errors"
	"io"

	"github.com/FabianRolfMatthiasNoll/lr35902/internal/machine"
)

func interactive(m *machine.Machine, out io.Writer) error {
	return errors.New("interactive mode needs a POSIX terminal")
}
