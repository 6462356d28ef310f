// Package profile counts executed opcodes and the cycles they consumed.
package profile

import (
	"fmt"
	"io"
	"sort"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/FabianRolfMatthiasNoll/lr35902/internal/cpu"
)

// Profile is a per-opcode histogram. The zero value is ready to use.
type Profile struct {
	counts [256]uint64
	cycles [256]uint64
	steps  uint64
}

// Entry is one row of a profile.
type Entry struct {
	Opcode   byte
	Mnemonic string
	Count    uint64
	Cycles   uint64
}

func New() *Profile {
	return &Profile{}
}

// Record counts one executed instruction.
func (p *Profile) Record(opcode byte, cycles int) {
	p.counts[opcode]++
	p.cycles[opcode] += uint64(cycles)
	p.steps++
}

// Steps returns the number of recorded instructions.
func (p *Profile) Steps() uint64 { return p.steps }

func (p *Profile) Reset() {
	*p = Profile{}
}

// Entries returns every executed opcode, most frequent first. Ties are
// broken by opcode.
func (p *Profile) Entries() []Entry {
	var entries []Entry
	for i, n := range p.counts {
		if n == 0 {
			continue
		}
		e := Entry{Opcode: byte(i), Count: n, Cycles: p.cycles[i]}
		if op, ok := cpu.Lookup(byte(i)); ok {
			e.Mnemonic = op.Mnemonic
		}
		entries = append(entries, e)
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Count != entries[j].Count {
			return entries[i].Count > entries[j].Count
		}
		return entries[i].Opcode < entries[j].Opcode
	})
	return entries
}

func (p *Profile) top(n int) []Entry {
	entries := p.Entries()
	if n > 0 && len(entries) > n {
		entries = entries[:n]
	}
	return entries
}

// Report writes the n most frequent opcodes as text. n <= 0 writes all.
func (p *Profile) Report(w io.Writer, n int) error {
	if _, err := fmt.Fprintf(w, "%-4s %-16s %10s %7s %12s\n", "OP", "MNEMONIC", "COUNT", "%", "CYCLES"); err != nil {
		return err
	}
	for _, e := range p.top(n) {
		share := 100 * float64(e.Count) / float64(p.steps)
		if _, err := fmt.Fprintf(w, "%02X   %-16s %10d %6.2f%% %12d\n", e.Opcode, e.Mnemonic, e.Count, share, e.Cycles); err != nil {
			return err
		}
	}
	return nil
}

// WriteChart renders the n most frequent opcodes as a bar chart. The image
// format follows the file extension (.png, .svg, .pdf ...).
func (p *Profile) WriteChart(path string, n int) error {
	entries := p.top(n)

	values := make(plotter.Values, len(entries))
	labels := make([]string, len(entries))
	for i, e := range entries {
		values[i] = float64(e.Count)
		labels[i] = fmt.Sprintf("%02X", e.Opcode)
	}

	pl := plot.New()
	pl.Title.Text = "Opcode frequency"
	pl.Y.Label.Text = "executions"
	pl.X.Label.Text = "opcode"

	bars, err := plotter.NewBarChart(values, vg.Points(12))
	if err != nil {
		return err
	}
	pl.Add(bars)
	pl.NominalX(labels...)

	width := vg.Length(len(entries)+2) * vg.Points(18)
	if width < 4*vg.Inch {
		width = 4 * vg.Inch
	}
	return pl.Save(width, 3*vg.Inch, path)
}
