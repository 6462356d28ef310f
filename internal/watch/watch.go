// Package watch evaluates Starlark stop conditions against CPU state.
//
// A condition is a single expression over the names pc, sp, a, f, b, c, d,
// e, h, l, af, bc, de, hl, cycles and steps, plus a mem(addr) builtin:
//
//	pc == 0x0150
//	a == 0 and cycles > 1000
//	mem(0xFF80) == 0x42
package watch

import (
	"errors"
	"strings"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"

	"github.com/FabianRolfMatthiasNoll/lr35902/internal/cpu"
	"github.com/FabianRolfMatthiasNoll/lr35902/internal/translate"
)

var f = translate.From

var (
	ErrConditionEmpty     = errors.New(f("condition empty"))
	ErrConditionMultiline = errors.New(f("condition spans lines"))
)

// ErrCondition reports a condition that failed to compile or evaluate.
type ErrCondition struct {
	Expr string
	Err  error
}

func (err ErrCondition) Error() string {
	return f("condition '%v' %v", err.Expr, err.Err)
}

func (err ErrCondition) Unwrap() error {
	return err.Err
}

var params = []string{
	"pc", "sp", "a", "f", "b", "c", "d", "e", "h", "l",
	"af", "bc", "de", "hl", "cycles", "steps",
}

// Condition is a compiled stop expression. It is not safe for concurrent use.
type Condition struct {
	expr   string
	fn     starlark.Callable
	thread *starlark.Thread

	// mem is only set while Eval runs
	mem cpu.Memory
}

// Compile parses expr into a Condition.
func Compile(expr string) (*Condition, error) {
	expr = strings.TrimSpace(expr)
	switch {
	case expr == "":
		return nil, ErrConditionEmpty
	case strings.ContainsAny(expr, "\r\n"):
		return nil, ErrCondition{Expr: expr, Err: ErrConditionMultiline}
	}

	cond := &Condition{
		expr:   expr,
		thread: &starlark.Thread{Name: "watch"},
	}

	pred := starlark.StringDict{
		"mem": starlark.NewBuiltin("mem", cond.readMem),
	}
	prog := "def until(" + strings.Join(params, ", ") + "):\n    return " + expr + "\n"

	opts := syntax.FileOptions{}
	dict, err := starlark.ExecFileOptions(&opts, cond.thread, "until", prog, pred)
	if err != nil {
		return nil, ErrCondition{Expr: expr, Err: err}
	}
	cond.fn = dict["until"].(starlark.Callable)
	return cond, nil
}

func (c *Condition) String() string { return c.expr }

// Eval reports whether the condition holds for the given state. The result
// follows Starlark truthiness.
func (c *Condition) Eval(r *cpu.Registers, mem cpu.Memory, cycles, steps uint64) (bool, error) {
	c.mem = mem
	defer func() { c.mem = nil }()

	args := starlark.Tuple{
		starlark.MakeInt(int(r.PC)),
		starlark.MakeInt(int(r.SP)),
		starlark.MakeInt(int(r.A)),
		starlark.MakeInt(int(r.F())),
		starlark.MakeInt(int(r.B)),
		starlark.MakeInt(int(r.C)),
		starlark.MakeInt(int(r.D)),
		starlark.MakeInt(int(r.E)),
		starlark.MakeInt(int(r.H)),
		starlark.MakeInt(int(r.L)),
		starlark.MakeInt(int(r.AF())),
		starlark.MakeInt(int(r.Pair(cpu.RegBC))),
		starlark.MakeInt(int(r.Pair(cpu.RegDE))),
		starlark.MakeInt(int(r.Pair(cpu.RegHL))),
		starlark.MakeUint64(cycles),
		starlark.MakeUint64(steps),
	}

	v, err := starlark.Call(c.thread, c.fn, args, nil)
	if err != nil {
		return false, ErrCondition{Expr: c.expr, Err: err}
	}
	return bool(v.Truth()), nil
}

func (c *Condition) readMem(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var addr int
	if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 1, &addr); err != nil {
		return nil, err
	}
	if c.mem == nil {
		return starlark.None, nil
	}
	return starlark.MakeInt(int(c.mem.Read(uint16(addr)))), nil
}
