package cpu

import (
	"errors"

	"github.com/FabianRolfMatthiasNoll/lr35902/internal/translate"
)

var f = translate.From

var ErrDecode = errors.New(f("decode"))

// DecodeError reports a fetched byte with no assigned operation. Addr is
// where the byte was fetched from; PC has already moved past it.
type DecodeError struct {
	Opcode byte
	Addr   uint16
}

func (e *DecodeError) Error() string {
	return f("bad opcode 0x%02X at 0x%04X", e.Opcode, e.Addr)
}

func (e *DecodeError) Is(err error) bool {
	return err == ErrDecode
}
