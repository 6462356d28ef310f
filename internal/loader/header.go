package loader

import (
	"bytes"
	"encoding/binary"
	"errors"
	"strings"

	"github.com/FabianRolfMatthiasNoll/lr35902/internal/translate"
)

const (
	headerStart = 0x0100
	headerEnd   = 0x014F

	logoStart = 0x0104
)

var ErrNoHeader = errors.New(translate.From("image too small to contain a cartridge header"))

var nintendoLogo = [48]byte{
	0xCE, 0xED, 0x66, 0x66, 0xCC, 0x0D, 0x00, 0x0B, 0x03, 0x73, 0x00, 0x83, 0x00, 0x0C, 0x00, 0x0D,
	0x00, 0x08, 0x11, 0x1F, 0x88, 0x89, 0x00, 0x0E, 0xDC, 0xCC, 0x6E, 0xE6, 0xDD, 0xDD, 0xD9, 0x99,
	0xBB, 0xBB, 0x67, 0x63, 0x6E, 0x0E, 0xEC, 0xCC, 0xDD, 0xDC, 0x99, 0x9F, 0xBB, 0xB9, 0x33, 0x3E,
}

// Header is the cartridge header at 0x0100-0x014F. It is only used to
// decide where execution starts and to describe the image in logs.
type Header struct {
	Entry          [4]byte // 0x0100-0x0103
	Title          string  // 0x0134-0x0143, NUL padding trimmed
	CartType       byte    // 0x0147
	ROMSizeCode    byte    // 0x0148
	RAMSizeCode    byte    // 0x0149
	HeaderChecksum byte    // 0x014D
	GlobalChecksum uint16  // 0x014E-0x014F

	LogoOK     bool
	ChecksumOK bool
}

// ParseHeader decodes the header of a cartridge image.
func ParseHeader(image []byte) (*Header, error) {
	if len(image) < headerEnd+1 {
		return nil, ErrNoHeader
	}

	h := &Header{
		Title:          strings.TrimRight(string(image[0x0134:0x0144]), "\x00"),
		CartType:       image[0x0147],
		ROMSizeCode:    image[0x0148],
		RAMSizeCode:    image[0x0149],
		HeaderChecksum: image[0x014D],
		GlobalChecksum: binary.BigEndian.Uint16(image[0x014E:0x0150]),
		LogoOK:         bytes.Equal(image[logoStart:logoStart+len(nintendoLogo)], nintendoLogo[:]),
		ChecksumOK:     headerChecksum(image) == image[0x014D],
	}
	copy(h.Entry[:], image[headerStart:headerStart+4])
	return h, nil
}

// Valid reports whether the image is a real cartridge rather than a raw
// program that happens to be long enough.
func (h *Header) Valid() bool {
	return h.LogoOK && h.ChecksumOK
}

// ROMSize returns the ROM size in bytes declared by the header, or 0 for
// an unknown code.
func (h *Header) ROMSize() int {
	switch {
	case h.ROMSizeCode <= 0x08:
		return 32 * 1024 << h.ROMSizeCode
	case h.ROMSizeCode == 0x52:
		return 1152 * 1024
	case h.ROMSizeCode == 0x53:
		return 1280 * 1024
	case h.ROMSizeCode == 0x54:
		return 1536 * 1024
	}
	return 0
}

// CartTypeString names the mapper family for logs.
func (h *Header) CartTypeString() string {
	switch h.CartType {
	case 0x00:
		return "ROM ONLY"
	case 0x01, 0x02, 0x03:
		return "MBC1"
	case 0x05, 0x06:
		return "MBC2"
	case 0x0F, 0x10, 0x11, 0x12, 0x13:
		return "MBC3"
	case 0x19, 0x1A, 0x1B, 0x1C, 0x1D, 0x1E:
		return "MBC5"
	}
	return "unknown"
}

// headerChecksum runs the boot ROM check over 0x0134-0x014C.
func headerChecksum(image []byte) byte {
	var sum byte
	for addr := 0x0134; addr <= 0x014C; addr++ {
		sum = sum - image[addr] - 1
	}
	return sum
}
