// Package directive implements the handlers for every directive in
// spec.md section 4.H, dispatched by name against a Context the engine
// provides. Byte-emitting directives follow the pass-1/pass-2 split from
// section 4.G: pass 1 only advances the PC by the computed size, pass 2
// actually writes bytes (except !org/!pseudopc/!realpc/!cpu/!zone, which
// take effect identically in both passes since they affect layout).
//
// Grounded on _examples/original_source/src/assembler.c's
// handle_directive dispatch and assemble_basic_directive (the !basic
// SYS-address self-consistency loop), and on the teacher's
// parser/parser.go handleDirective switch for the Go "name string ->
// handler" shape.
package directive

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/xasm65/xasm65/internal/ast"
	"github.com/xasm65/xasm65/internal/charset"
	"github.com/xasm65/xasm65/internal/diag"
	"github.com/xasm65/xasm65/internal/expr"
)

// Context is everything a directive handler needs from the engine driving
// it. The engine implements this; this package never imports the engine,
// so there is no import cycle.
type Context interface {
	EmitByte(b byte)
	AdvancePC(n int32)
	SetPC(v int32)
	PC() int32
	Pass() int
	Eval(e *expr.Expr) (expr.Result, error)
	SetZone(name string)
	AutoZone() string
	SetCPU(name string) bool
	EnterPseudoPC(addr int32) error
	ExitPseudoPC() error
	ReadBinaryFile(name string) ([]byte, error)
	Diags() *diag.List
}

// Dispatch runs the handler for dir, named without its leading '!'.
// Matching is case-insensitive; an unknown name produces a warning and is
// otherwise a no-op, per spec.md section 4.H's final row.
func Dispatch(ctx Context, pos diag.Position, dir ast.DirectiveData, cpuName string) error {
	name := strings.ToLower(dir.Name)
	switch name {
	case "byte", "by", "db", "08":
		return emitSized(ctx, pos, dir, 1)
	case "word", "wo", "dw", "16":
		return emitSized(ctx, pos, dir, 2)
	case "text", "tx":
		return emitString(ctx, dir.String, identity)
	case "pet":
		return emitString(ctx, dir.String, charset.ToPETSCII)
	case "scr":
		return emitString(ctx, dir.String, charset.ToScreenCode)
	case "null":
		if err := emitString(ctx, dir.String, identity); err != nil {
			return err
		}
		emitOrAdvance(ctx, 0)
		return nil
	case "fill":
		return handleFill(ctx, pos, dir)
	case "skip", "res":
		return handleSkip(ctx, pos, dir)
	case "align":
		return handleAlign(ctx, pos, dir)
	case "org":
		return handleOrg(ctx, pos, dir)
	case "binary":
		return handleBinary(ctx, pos, dir)
	case "basic":
		return handleBasic(ctx, pos, dir)
	case "pseudopc":
		return handlePseudoPC(ctx, pos, dir)
	case "realpc":
		return ctx.ExitPseudoPC()
	case "cpu":
		return handleCPU(ctx, pos, dir, cpuName)
	case "zone", "zn":
		return handleZone(ctx, dir)
	case "error":
		if ctx.Pass() == 2 {
			ctx.Diags().AddError(pos, diag.KindUser, "%s", userMessage(dir))
		}
		return nil
	case "warn", "warning":
		if ctx.Pass() == 2 {
			ctx.Diags().AddWarning(pos, "%s", userMessage(dir))
		}
		return nil
	case "source", "src", "include", "macro", "endmacro", "endm",
		"for", "while", "end", "if", "ifdef", "ifndef", "else", "endif":
		// Structural directives the engine's pass-1 walk consumes before
		// ever reaching Dispatch; reaching here means a stray occurrence.
		return fmt.Errorf("%s: '!%s' outside its expected structural position", pos, dir.Name)
	default:
		ctx.Diags().AddWarning(pos, "unknown directive '!%s' ignored", dir.Name)
		return nil
	}
}

func identity(b byte) byte { return b }

func userMessage(dir ast.DirectiveData) string {
	if dir.String != nil {
		return string(dir.String)
	}
	return dir.Name
}

// emitOrAdvance writes b in pass 2, or just advances the PC by one byte in
// pass 1, matching the "pass 1 sizes, pass 2 emits" split.
func emitOrAdvance(ctx Context, b byte) {
	if ctx.Pass() == 2 {
		ctx.EmitByte(b)
	} else {
		ctx.AdvancePC(1)
	}
}

func emitSized(ctx Context, pos diag.Position, dir ast.DirectiveData, size int) error {
	for _, arg := range dir.Args {
		result, err := ctx.Eval(arg)
		if err != nil {
			return err
		}
		v := result.Value
		if size == 1 {
			if ctx.Pass() == 2 && (v < -128 || v > 255) {
				ctx.Diags().AddWarning(pos, "value %d truncated to a byte", v)
			}
			emitOrAdvance(ctx, byte(v))
			continue
		}
		emitOrAdvance(ctx, byte(v))
		emitOrAdvance(ctx, byte(v>>8))
	}
	return nil
}

func emitString(ctx Context, s []byte, convert func(byte) byte) error {
	for _, b := range s {
		emitOrAdvance(ctx, convert(b))
	}
	return nil
}

func handleFill(ctx Context, pos diag.Position, dir ast.DirectiveData) error {
	if len(dir.Args) == 0 {
		return fmt.Errorf("%s: !fill requires a count", pos)
	}
	countR, err := ctx.Eval(dir.Args[0])
	if err != nil {
		return err
	}
	if !countR.Defined || countR.Value < 0 || countR.Value > 65536 {
		return fmt.Errorf("%s: !fill count out of range 0..65536", pos)
	}
	var value byte
	if len(dir.Args) > 1 {
		vr, err := ctx.Eval(dir.Args[1])
		if err != nil {
			return err
		}
		value = byte(vr.Value)
	}
	for i := int32(0); i < countR.Value; i++ {
		emitOrAdvance(ctx, value)
	}
	return nil
}

func handleSkip(ctx Context, pos diag.Position, dir ast.DirectiveData) error {
	if len(dir.Args) == 0 {
		return fmt.Errorf("%s: !skip requires a count", pos)
	}
	r, err := ctx.Eval(dir.Args[0])
	if err != nil {
		return err
	}
	ctx.AdvancePC(r.Value)
	return nil
}

func handleAlign(ctx Context, pos diag.Position, dir ast.DirectiveData) error {
	if len(dir.Args) == 0 {
		return fmt.Errorf("%s: !align requires a boundary", pos)
	}
	nR, err := ctx.Eval(dir.Args[0])
	if err != nil {
		return err
	}
	n := nR.Value
	if n <= 0 {
		return fmt.Errorf("%s: !align boundary must be positive", pos)
	}
	if n&(n-1) != 0 {
		ctx.Diags().AddWarning(pos, "!align %d is not a power of two", n)
	}
	var fill byte
	if len(dir.Args) > 1 {
		fR, err := ctx.Eval(dir.Args[1])
		if err != nil {
			return err
		}
		fill = byte(fR.Value)
	}
	pc := ctx.PC()
	pad := (n - pc%n) % n
	for i := int32(0); i < pad; i++ {
		emitOrAdvance(ctx, fill)
	}
	return nil
}

func handleOrg(ctx Context, pos diag.Position, dir ast.DirectiveData) error {
	if len(dir.Args) == 0 {
		return fmt.Errorf("%s: !org requires an address", pos)
	}
	r, err := ctx.Eval(dir.Args[0])
	if err != nil {
		return err
	}
	ctx.SetPC(r.Value)
	return nil
}

func handleBinary(ctx Context, pos diag.Position, dir ast.DirectiveData) error {
	if dir.String == nil {
		return fmt.Errorf("%s: !binary requires a filename", pos)
	}
	data, err := ctx.ReadBinaryFile(string(dir.String))
	if err != nil {
		return fmt.Errorf("%s: %v", pos, err)
	}
	var length, offset int32
	offset = 0
	length = int32(len(data))
	if len(dir.Args) > 0 {
		r, err := ctx.Eval(dir.Args[0])
		if err != nil {
			return err
		}
		length = r.Value
	}
	if len(dir.Args) > 1 {
		r, err := ctx.Eval(dir.Args[1])
		if err != nil {
			return err
		}
		offset = r.Value
	}
	if offset < 0 || int(offset) > len(data) {
		return fmt.Errorf("%s: !binary offset out of range", pos)
	}
	if length == 0 {
		length = int32(len(data)) - offset
	}
	end := offset + length
	if end < offset || int(end) > len(data) {
		return fmt.Errorf("%s: !binary length out of range", pos)
	}
	for _, b := range data[offset:end] {
		emitOrAdvance(ctx, b)
	}
	return nil
}

// handleBasic emits the classic C64 BASIC-loader one-liner prologue
// `<line> SYS <sysaddr>`, computing sysaddr self-consistently when it is
// omitted (spec.md section 6's prologue format), grounded on
// assemble_basic_directive's digit-count iteration.
func handleBasic(ctx Context, pos diag.Position, dir ast.DirectiveData) error {
	lineNumber := int32(10)
	if len(dir.Args) > 0 {
		r, err := ctx.Eval(dir.Args[0])
		if err != nil {
			return err
		}
		lineNumber = r.Value
	}

	var sysAddr int32
	haveSysAddr := len(dir.Args) > 1
	if haveSysAddr {
		r, err := ctx.Eval(dir.Args[1])
		if err != nil {
			return err
		}
		sysAddr = r.Value
	} else {
		start := ctx.PC()
		// Prologue = link(2) + line#(2) + token(1) + digits(D) + NUL(1),
		// followed by two zero bytes ending the program; sysaddr is the
		// address right after all of that. Try 4 digits first, then 5 if
		// the resulting address would not fit in 4.
		candidate := start + 6 + 4 + 2
		digits := 4
		if candidate >= 10000 {
			candidate = start + 6 + 5 + 2
			digits = 5
		}
		sysAddr = candidate
		_ = digits
	}

	digitStr := strconv.FormatInt(int64(sysAddr), 10)
	lineBytes := 2 + 2 + 1 + len(digitStr) + 1 // link + line# + token + digits + NUL
	link := ctx.PC() + int32(lineBytes)

	emitOrAdvance(ctx, byte(link))
	emitOrAdvance(ctx, byte(link>>8))
	emitOrAdvance(ctx, byte(lineNumber))
	emitOrAdvance(ctx, byte(lineNumber>>8))
	emitOrAdvance(ctx, 0x9E)
	for _, c := range []byte(digitStr) {
		emitOrAdvance(ctx, c)
	}
	emitOrAdvance(ctx, 0x00)
	emitOrAdvance(ctx, 0x00)
	emitOrAdvance(ctx, 0x00)
	return nil
}

func handlePseudoPC(ctx Context, pos diag.Position, dir ast.DirectiveData) error {
	if len(dir.Args) == 0 {
		return fmt.Errorf("%s: !pseudopc requires an address", pos)
	}
	r, err := ctx.Eval(dir.Args[0])
	if err != nil {
		return err
	}
	return ctx.EnterPseudoPC(r.Value)
}

func handleCPU(ctx Context, pos diag.Position, dir ast.DirectiveData, _ string) error {
	if dir.String == nil {
		return fmt.Errorf("%s: !cpu requires a CPU name", pos)
	}
	if !ctx.SetCPU(string(dir.String)) {
		return fmt.Errorf("%s: unknown CPU %q", pos, string(dir.String))
	}
	return nil
}

func handleZone(ctx Context, dir ast.DirectiveData) error {
	if dir.String != nil {
		ctx.SetZone(string(dir.String))
		return nil
	}
	ctx.AutoZone()
	return nil
}
