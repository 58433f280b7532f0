// Package engine is the two-pass assembler driver: the emission image,
// both program counters, and the conditional/loop/macro/include handling,
// per spec.md section 4.G.
//
// Grounded on _examples/original_source/src/assembler.c's pass1/pass2 walk
// (assemble_pass1, assemble_pass2, handle_conditional, expand_macro,
// run_for_loop/run_while_loop) for the control flow, and on the teacher's
// two-pass parser/parser.go (Parse/firstPass) for the Go shape of a driver
// that walks its input once to build a statement list and again to
// finalize it.
package engine

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xasm65/xasm65/internal/addrmode"
	"github.com/xasm65/xasm65/internal/ast"
	"github.com/xasm65/xasm65/internal/diag"
	"github.com/xasm65/xasm65/internal/directive"
	"github.com/xasm65/xasm65/internal/expr"
	"github.com/xasm65/xasm65/internal/lexer"
	"github.com/xasm65/xasm65/internal/opcode"
	"github.com/xasm65/xasm65/internal/parser"
	"github.com/xasm65/xasm65/internal/symtab"
)

// Limits bounds the recursive constructs, per spec.md section 5's resource
// model: every stack needs a termination rule and a configured bound.
type Limits struct {
	MaxIncludeDepth   int
	MaxMacroDepth     int
	MaxLoopDepth      int
	MaxLoopIterations int
}

// DefaultLimits matches the bounds ASM64 itself enforces.
func DefaultLimits() Limits {
	return Limits{MaxIncludeDepth: 32, MaxMacroDepth: 64, MaxLoopDepth: 32, MaxLoopIterations: 100000}
}

// Image is the 64KiB emission buffer with a written-bitmap and the
// lowest/highest written address, used to frame the final output.
type Image struct {
	Memory  [65536]byte
	Written [65536]bool
	Lowest  int32
	Highest int32
	HasData bool
}

func (img *Image) writeByte(addr int32, b byte) {
	a := uint16(addr)
	img.Memory[a] = b
	img.Written[a] = true
	if !img.HasData || addr < img.Lowest {
		img.Lowest = addr
	}
	if !img.HasData || addr > img.Highest {
		img.Highest = addr
	}
	img.HasData = true
}

// AssembledLine is one entry of the assembled-line list pass 1 builds and
// pass 2 replays, per spec.md section 4.G.
type AssembledLine struct {
	Stmt  *ast.Statement
	PC    int32
	Zone  string
	Bytes []byte // every byte this line emitted in pass 2, for the listing writer
}

// condFrame is one level of !if/!ifdef/!ifndef nesting.
type condFrame struct {
	parentActive bool
	active       bool
	elseSeen     bool
}

// MacroDef is a registered !macro body, recorded verbatim for textual
// substitution at invocation time, per spec.md section 4.G's macro
// semantics.
type MacroDef struct {
	Name   string
	Params []string
	Body   []string
}

// Engine drives both assembly passes.
type Engine struct {
	Opcodes *opcode.Table
	cpu     opcode.CPU

	Symbols *symtab.Table
	anon    *symtab.AnonLabels

	Image Image

	pc, realPC int32
	inPseudoPC bool
	haveOrigin bool
	emitted    int // running count of EmitByte calls

	condStack []condFrame

	macros       map[string]*MacroDef
	zoneCounter  int
	macroDepth   int
	includeDepth int
	loopDepth    int

	diags        *diag.List
	IncludePaths []string
	limits       Limits

	Lines []*AssembledLine

	pass int
}

// New creates an Engine targeting cpu, with includePaths consulted (in
// order, after the including file's own directory) for !source/!include
// resolution. A !binary name is looked up relative to the current working
// directory, then in includePaths; the including file's own directory is
// not searched for it.
func New(cpu opcode.CPU, includePaths []string) *Engine {
	return &Engine{
		Opcodes:      opcode.New(),
		cpu:          cpu,
		Symbols:      symtab.New(),
		anon:         symtab.NewAnonLabels(),
		macros:       make(map[string]*MacroDef),
		diags:        diag.NewList(),
		IncludePaths: includePaths,
		limits:       DefaultLimits(),
	}
}

// --- Engine contracts (spec.md section 4.G) ---

// EmitByte writes b at the real PC, advances both PCs, and updates the
// written-bitmap/address-range bookkeeping.
func (e *Engine) EmitByte(b byte) {
	e.Image.writeByte(e.realPC, b)
	e.pc++
	e.realPC++
	e.emitted++
}

// AdvancePC advances both PCs by n without writing bytes (pass-1 sizing,
// and !skip/!fill's space-reservation forms).
func (e *Engine) AdvancePC(n int32) {
	e.pc += n
	e.realPC += n
}

// SetPC sets pc (and real_pc too, unless inside a !pseudopc block), used by
// !org and '* ='. It also sets haveOrigin; no origin address is stored, and
// output framing uses the image's lowest written address instead.
func (e *Engine) SetPC(v int32) {
	e.pc = v
	if !e.inPseudoPC {
		e.realPC = v
	}
	e.haveOrigin = true
}

// PC returns the current (possibly pseudo) program counter.
func (e *Engine) PC() int32 { return e.pc }

// Pass returns which pass (1 or 2) is currently executing.
func (e *Engine) Pass() int { return e.pass }

// Diags returns the engine's diagnostic accumulator, satisfying
// directive.Context.
func (e *Engine) Diags() *diag.List { return e.diags }

// BranchOffset computes a relative branch displacement, or reports that it
// is out of the signed-byte range.
func BranchOffset(target, pc int32) (int32, bool) {
	off := target - (pc + 2)
	if off < -128 || off > 127 {
		return 0, false
	}
	return off, true
}

func (e *Engine) active() bool {
	if len(e.condStack) == 0 {
		return true
	}
	return e.condStack[len(e.condStack)-1].active
}

// --- directive.Context implementation ---

// Eval evaluates an expression against the engine's live symbol table and
// PC, honoring anonymous-label resolution and local-label zone mangling.
// In pass 2 every symbol has had its chance to be defined, so a result that
// is still undefined is an error.
func (e *Engine) Eval(x *expr.Expr) (expr.Result, error) {
	r, err := expr.Eval(x, e.symbolView(), e.pc, e.pass)
	if err == nil && e.pass == 2 && !r.Defined {
		return r, fmt.Errorf("expression references an undefined symbol")
	}
	return r, err
}

func (e *Engine) SetZone(name string) { e.Symbols.SetZone(name) }

func (e *Engine) AutoZone() string {
	e.zoneCounter++
	name := fmt.Sprintf("_zone_%d", e.zoneCounter)
	e.SetZone(name)
	return name
}

func (e *Engine) SetCPU(name string) bool {
	switch strings.ToLower(name) {
	case "6502":
		e.cpu = opcode.MOS6502
	case "6510":
		e.cpu = opcode.MOS6510
	case "65c02":
		e.cpu = opcode.WDC65C02
	default:
		return false
	}
	return true
}

func (e *Engine) EnterPseudoPC(addr int32) error {
	if e.inPseudoPC {
		return fmt.Errorf("nested !pseudopc is not allowed")
	}
	e.inPseudoPC = true
	e.pc = addr
	return nil
}

func (e *Engine) ExitPseudoPC() error {
	if !e.inPseudoPC {
		return fmt.Errorf("!realpc without a matching !pseudopc")
	}
	e.inPseudoPC = false
	e.pc = e.realPC
	return nil
}

func (e *Engine) ReadBinaryFile(name string) ([]byte, error) {
	return os.ReadFile(e.resolvePath(name, "."))
}

// symbolView adapts Symbols+anon to expr.SymbolTable, resolving the
// synthetic __anon_fwd_N/__anon_back_N names the parser encodes anonymous-
// label references as, and mangling local-label names against the current
// zone before an ordinary lookup.
type symbolView struct{ e *Engine }

func (e *Engine) symbolView() symbolView { return symbolView{e: e} }

func (v symbolView) Lookup(name string) (int32, bool, bool) {
	switch {
	case strings.HasPrefix(name, "__anon_fwd_"):
		var count int
		fmt.Sscanf(name, "__anon_fwd_%d", &count)
		if v.e.pass == 1 {
			return 0, false, false
		}
		addr, ok := v.e.anon.ResolveForward(count)
		// Mirrors expr_eval's EXPR_SYMBOL/__anon_fwd_ case: the cursor
		// advances once per resolved pass-2 reference, so that a second
		// reference to "+" walks on to the next label rather than
		// re-resolving the one just consumed.
		if ok {
			v.e.anon.AdvanceForward()
		}
		return addr, isZP(addr), ok
	case strings.HasPrefix(name, "__anon_back_"):
		var count int
		fmt.Sscanf(name, "__anon_back_%d", &count)
		addr, ok := v.e.anon.ResolveBackward(count)
		return addr, isZP(addr), ok
	}
	return v.e.Symbols.Lookup(v.e.Symbols.Mangle(name))
}

func isZP(v int32) bool { return v >= 0 && v <= 0xFF }

// --- source-level driving ---

// AssembleFile runs pass 1 then pass 2 over path, returning the finished
// image; it's still meaningful to inspect even when Diags().HasErrors().
func (e *Engine) AssembleFile(path string) error {
	e.pass = 1
	if err := e.pass1File(path); err != nil {
		return err
	}
	if len(e.condStack) != 0 {
		e.diags.AddError(diag.Position{Filename: path}, diag.KindConditional, "unterminated !if at end of file")
	}

	e.pass = 2
	e.pc = 0
	e.realPC = 0
	e.inPseudoPC = false
	e.Symbols.SetZone("")
	e.anon.ResetPass()

	for _, line := range e.Lines {
		e.pc = line.PC
		// Inside a !pseudopc region line.PC is the virtual address; the
		// real position carries on from the previous line's emission.
		if !e.inPseudoPC {
			e.realPC = line.PC
		}
		e.Symbols.SetZone(line.Zone)
		e.announceLabel(line.Stmt)
		before := e.realPC
		emittedBefore := e.emitted
		if err := e.applyHandler(line.Stmt); err != nil {
			e.diags.AddError(line.Stmt.Pos, diag.KindDirective, "%v", err)
		}
		// Captured in full (not windowed to the listing's 4-per-row display)
		// so internal/output's byte-count invariant against the written
		// bitmap holds even for a single !fill/!binary of many bytes. Only
		// bytes written through EmitByte count; a PC move such as !org or
		// !skip captures nothing.
		if n := e.emitted - emittedBefore; n > 0 {
			line.Bytes = append([]byte(nil), e.Image.Memory[uint16(before):uint16(before)+uint16(n)]...)
		}
	}
	return nil
}

func (e *Engine) pass1File(path string) error {
	e.includeDepth++
	defer func() { e.includeDepth-- }()
	if e.includeDepth > e.limits.MaxIncludeDepth {
		return fmt.Errorf("include depth exceeded at %s", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("%s: %v", path, err)
	}
	lines := strings.Split(string(data), "\n")
	e.pass1Lines(lines, path, filepath.Dir(path))
	return nil
}

// pass1Lines implements spec.md section 4.G's per-line pass-1 walk over one
// file's (or one macro/loop expansion's) physical lines: label processing,
// conditional handling, include/macro/loop capture, macro expansion, and
// the catch-all append-to-assembled-line-list with size-only handling for
// everything else.
func (e *Engine) pass1Lines(lines []string, filename, dir string) {
	i := 0
	for i < len(lines) {
		lineNo := i + 1
		stmt := e.parseLine(lines[i], filename, lineNo)
		i++

		if isConditionalDirective(stmt) {
			e.handleConditional(stmt)
			continue
		}
		if !e.active() {
			continue
		}

		e.announceLabel(stmt)

		switch {
		case isIncludeDirective(stmt):
			if err := e.handleInclude(stmt, dir); err != nil {
				e.diags.AddError(stmt.Pos, diag.KindInclude, "%v", err)
			}
			continue

		case isMacroDefStart(stmt):
			body, consumed := collectDelimited(lines[i:], "!macro", "!endmacro", "!endm")
			e.registerMacro(stmt, body)
			i += consumed
			continue

		case isLoopStart(stmt):
			body, consumed := collectDelimitedAny(lines[i:], []string{"!for", "!while"}, "!end")
			e.runLoop(stmt, body, filename)
			i += consumed
			continue

		case stmt.Kind == ast.MacroCall:
			if err := e.expandMacro(stmt, filename); err != nil {
				e.diags.AddError(stmt.Pos, diag.KindMacro, "%v", err)
			}
			continue
		}

		line := &AssembledLine{Stmt: stmt, PC: e.pc, Zone: e.Symbols.Zone()}
		e.Lines = append(e.Lines, line)
		if err := e.applyHandler(stmt); err != nil {
			e.diags.AddError(stmt.Pos, diag.KindDirective, "%v", err)
		}
	}
}

// parseLine lexes and parses a single physical source line, resolving an
// instruction's addressing mode immediately against the engine's current
// symbol table and PC (spec.md section 4.E).
func (e *Engine) parseLine(text, filename string, lineNo int) *ast.Statement {
	lex := lexer.NewAt(text+"\n", filename, lineNo)
	p := parser.New(lex, e.Opcodes)
	stmt := p.ParseStatement(parser.EvalContext{Symbols: e.symbolView(), PC: e.pc, Pass: e.pass})
	stmt.Text = text
	if stmt.Kind == ast.ErrorStatement && stmt.Err != nil {
		e.diags.AddError(stmt.Pos, diag.KindParse, "%v", stmt.Err)
	}
	return stmt
}

// announceLabel implements the label side of pass-1 step 1: anonymous
// labels push onto their stacks, local labels are mangled and defined in
// the current zone, and global labels are defined and become the new zone.
func (e *Engine) announceLabel(stmt *ast.Statement) {
	if stmt.Label == nil {
		return
	}
	l := stmt.Label
	switch {
	case l.IsAnonFwd:
		e.anon.DefineForward(e.pc)
	case l.IsAnonBack:
		e.anon.DefineBackward(e.pc)
	case l.IsLocal:
		mangled := e.Symbols.Mangle(l.Name)
		if err := e.Symbols.Define(mangled, e.pc, isZP(e.pc), false); err != nil && e.pass == 1 {
			e.diags.AddError(stmt.Pos, diag.KindSymbol, "%v", err)
		}
	default:
		if err := e.Symbols.Define(l.Name, e.pc, isZP(e.pc), false); err != nil && e.pass == 1 {
			e.diags.AddError(stmt.Pos, diag.KindSymbol, "%v", err)
		}
		e.SetZone(l.Name)
	}
}

// applyHandler invokes the per-kind handler for stmt, matching the "pass 1
// only sizes, pass 2 actually emits" split from spec.md section 4.G,
// except for !org/!pseudopc/!realpc/!cpu/!zone/assignments, which take
// effect identically in both passes since later code depends on them.
func (e *Engine) applyHandler(stmt *ast.Statement) error {
	switch stmt.Kind {
	case ast.Empty, ast.LabelOnly, ast.ErrorStatement:
		return nil

	case ast.Instruction:
		if !e.Opcodes.Allowed(stmt.Inst.Mnemonic, e.cpu) {
			return fmt.Errorf("%s is not available on the selected CPU", stmt.Inst.Mnemonic)
		}
		if e.pass == 1 {
			e.AdvancePC(int32(stmt.Inst.Size))
			return nil
		}
		return e.emitInstruction(stmt)

	case ast.Assignment:
		v, err := e.Eval(stmt.Assign.Value)
		if err != nil {
			return err
		}
		// Pass 2 replays every assignment (it must accept the same value
		// again without complaint) and a loop body's assignment is expected
		// to take on a new value each iteration, so both carry the
		// force-update hint; only a pass-1, outside-a-loop assignment is a
		// true constant that rejects redefinition. Mirrors
		// assemble_assignment's SYM_DEFINED | SYM_FORCE_UPDATE-vs-SYM_CONSTANT
		// split (original_source/src/assembler.c) and spec.md section 8's
		// "a second '=' to S produces a duplicate-constant error unless the
		// second definition is inside a loop body" testable property.
		if e.pass == 2 || e.loopDepth > 0 {
			e.Symbols.DefineForce(stmt.Assign.Name, v.Value, v.ZeroPage)
			return nil
		}
		return e.Symbols.Define(stmt.Assign.Name, v.Value, v.ZeroPage, true)

	case ast.Directive:
		return directive.Dispatch(e, stmt.Pos, stmt.Dir, "")
	}
	return nil
}

func (e *Engine) emitInstruction(stmt *ast.Statement) error {
	e.EmitByte(stmt.Inst.Opcode)
	if stmt.Inst.Size == 1 {
		return nil
	}
	var v int32
	if stmt.Inst.Operand != nil {
		r, err := e.Eval(stmt.Inst.Operand)
		if err != nil {
			return err
		}
		v = r.Value
	}
	if stmt.Inst.Mode == addrmode.Relative {
		off, ok := BranchOffset(v, e.pc-1)
		if !ok {
			return fmt.Errorf("branch target out of range")
		}
		e.EmitByte(byte(off))
		return nil
	}
	e.EmitByte(byte(v))
	if stmt.Inst.Size == 3 {
		e.EmitByte(byte(v >> 8))
	}
	return nil
}

// --- conditional assembly ---

func isConditionalDirective(stmt *ast.Statement) bool {
	if stmt.Kind != ast.Directive {
		return false
	}
	switch strings.ToLower(stmt.Dir.Name) {
	case "if", "ifdef", "ifndef", "else", "endif":
		return true
	}
	return false
}

// handleConditional pushes/pops/updates condStack. Conditional directives
// are processed regardless of the enclosing active state, so a !endif
// inside a skipped block still pops correctly.
func (e *Engine) handleConditional(stmt *ast.Statement) {
	name := strings.ToLower(stmt.Dir.Name)
	parentActive := e.active()

	switch name {
	case "if", "ifdef", "ifndef":
		cond := false
		if parentActive {
			switch name {
			case "if":
				if len(stmt.Dir.Args) > 0 {
					r, err := e.Eval(stmt.Dir.Args[0])
					if err == nil {
						cond = r.Defined && r.Value != 0
					}
				}
			case "ifdef", "ifndef":
				defined := false
				if len(stmt.Dir.Args) > 0 {
					if symName := symbolNameOf(stmt.Dir.Args[0]); symName != "" {
						defined = e.Symbols.IsDefined(e.Symbols.Mangle(symName))
					}
				}
				cond = defined == (name == "ifdef")
			}
		}
		e.condStack = append(e.condStack, condFrame{parentActive: parentActive, active: parentActive && cond})

	case "else":
		if len(e.condStack) == 0 {
			e.diags.AddError(stmt.Pos, diag.KindConditional, "!else without a matching !if")
			return
		}
		top := &e.condStack[len(e.condStack)-1]
		if top.elseSeen {
			e.diags.AddError(stmt.Pos, diag.KindConditional, "duplicate !else")
			return
		}
		top.elseSeen = true
		top.active = top.parentActive && !top.active

	case "endif":
		if len(e.condStack) == 0 {
			e.diags.AddError(stmt.Pos, diag.KindConditional, "!endif without a matching !if")
			return
		}
		e.condStack = e.condStack[:len(e.condStack)-1]
	}
}

func symbolNameOf(x *expr.Expr) string {
	if x != nil && x.Kind == expr.Symbol {
		return x.SymbolName
	}
	return ""
}

// --- includes ---

func isIncludeDirective(stmt *ast.Statement) bool {
	if stmt.Kind != ast.Directive {
		return false
	}
	switch strings.ToLower(stmt.Dir.Name) {
	case "source", "src", "include":
		return true
	}
	return false
}

func (e *Engine) handleInclude(stmt *ast.Statement, dir string) error {
	if stmt.Dir.String == nil {
		return fmt.Errorf("%s: include requires a filename", stmt.Pos)
	}
	path := e.resolvePath(string(stmt.Dir.String), dir)
	return e.pass1File(path)
}

// resolvePath searches dir (the including file's own directory) and then
// IncludePaths, in order, returning the first candidate that exists; if
// none does, it returns the dir-relative candidate so the caller's open
// attempt produces a useful OS error.
func (e *Engine) resolvePath(name, dir string) string {
	if filepath.IsAbs(name) {
		return name
	}
	candidate := filepath.Join(dir, name)
	if _, err := os.Stat(candidate); err == nil {
		return candidate
	}
	for _, p := range e.IncludePaths {
		c := filepath.Join(p, name)
		if _, err := os.Stat(c); err == nil {
			return c
		}
	}
	return candidate
}

// --- macro definitions and expansion ---

func isMacroDefStart(stmt *ast.Statement) bool {
	return stmt.Kind == ast.Directive && strings.EqualFold(stmt.Dir.Name, "macro")
}

func (e *Engine) registerMacro(stmt *ast.Statement, body []string) {
	if len(stmt.Dir.Params) == 0 {
		e.diags.AddError(stmt.Pos, diag.KindMacro, "!macro requires a name")
		return
	}
	name := stmt.Dir.Params[0]
	e.macros[strings.ToUpper(name)] = &MacroDef{Name: name, Params: stmt.Dir.Params[1:], Body: body}
}

// collectDelimited scans lines (already positioned just after the opening
// directive) for the matching closer, counting nested openers of the same
// kind so e.g. a !macro body containing another !macro/!endmacro pair
// doesn't terminate early. It returns the captured body (exclusive of the
// closing line) and the number of lines consumed, including the closer.
func collectDelimited(lines []string, opener string, closers ...string) (body []string, consumed int) {
	return collectDelimitedAny(lines, []string{opener}, closers...)
}

// collectDelimitedAny is collectDelimited generalized to a set of opener
// keywords that all nest against the same closer set, needed for !for/
// !while which share a single "!end" closer: a nested loop of either kind
// must still increment the depth counter so an inner "!end" doesn't
// terminate the outer capture early.
func collectDelimitedAny(lines []string, openers []string, closers ...string) (body []string, consumed int) {
	depth := 1
	for i, raw := range lines {
		trimmed := strings.TrimSpace(raw)
		word := firstWord(trimmed)
		for _, o := range openers {
			if strings.EqualFold(word, o) {
				depth++
				break
			}
		}
		for _, c := range closers {
			if strings.EqualFold(word, c) {
				depth--
				break
			}
		}
		if depth == 0 {
			return body, i + 1
		}
		body = append(body, raw)
	}
	return body, len(lines)
}

func firstWord(s string) string {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

// expandMacro substitutes the call's textual arguments for a macro's
// formal parameters (simple whole-word replacement, matching ASM64's
// textual macro-expansion model) and re-walks the substituted body through
// pass1Lines in a fresh hygiene zone, so labels local to one invocation
// don't collide with another's.
func (e *Engine) expandMacro(stmt *ast.Statement, filename string) error {
	def, ok := e.macros[strings.ToUpper(stmt.Macro.Name)]
	if !ok {
		return fmt.Errorf("%s: undefined macro %q", stmt.Pos, stmt.Macro.Name)
	}
	e.macroDepth++
	defer func() { e.macroDepth-- }()
	if e.macroDepth > e.limits.MaxMacroDepth {
		return fmt.Errorf("%s: macro expansion depth exceeded", stmt.Pos)
	}

	savedZone := e.Symbols.Zone()
	e.AutoZone()
	defer e.Symbols.SetZone(savedZone)

	body := substituteParams(def.Body, def.Params, stmt.Macro.Args)
	e.pass1Lines(body, filename, filepath.Dir(filename))
	return nil
}

func substituteParams(body, params, args []string) []string {
	out := make([]string, len(body))
	for i, line := range body {
		for j, p := range params {
			if j >= len(args) {
				break
			}
			line = replaceWord(line, p, args[j])
		}
		out[i] = line
	}
	return out
}

// replaceWord replaces every whole-word occurrence of word in s with
// replacement, leaving occurrences that are merely a substring of some
// longer identifier (e.g. param "b" must not touch "!byte") untouched.
func replaceWord(s, word, replacement string) string {
	var b strings.Builder
	i := 0
	for i < len(s) {
		if isWordByte(s[i]) {
			j := i
			for j < len(s) && isWordByte(s[j]) {
				j++
			}
			if s[i:j] == word {
				b.WriteString(replacement)
			} else {
				b.WriteString(s[i:j])
			}
			i = j
			continue
		}
		b.WriteByte(s[i])
		i++
	}
	return b.String()
}

func isWordByte(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') || c == '.'
}

// --- loops (!for / !while) ---

func isLoopStart(stmt *ast.Statement) bool {
	if stmt.Kind != ast.Directive {
		return false
	}
	switch strings.ToLower(stmt.Dir.Name) {
	case "for", "while":
		return true
	}
	return false
}

// runLoop executes a !for/!while body repeatedly, capped at
// MaxLoopIterations. A !for's induction variable is substituted textually
// per iteration, the same way macro parameters are: binding it through the
// symbol table instead would leave only its final value in place by the
// time pass 2 replays every iteration's already-recorded AssembledLines,
// since the symbol table isn't re-walked per iteration on replay.
func (e *Engine) runLoop(stmt *ast.Statement, body []string, filename string) {
	e.loopDepth++
	defer func() { e.loopDepth-- }()
	if e.loopDepth > e.limits.MaxLoopDepth {
		e.diags.AddError(stmt.Pos, diag.KindLoop, "!%s nesting too deep", stmt.Dir.Name)
		return
	}

	switch strings.ToLower(stmt.Dir.Name) {
	case "for":
		// "!for i, start, end[, step]" parses as three-or-four comma-
		// separated expressions (only !macro captures bare Params), so the
		// induction variable's name comes from Args[0], which must itself
		// be a bare symbol reference.
		if len(stmt.Dir.Args) < 3 {
			e.diags.AddError(stmt.Pos, diag.KindLoop, "!for requires a variable name and start, end[, step] bounds")
			return
		}
		varName := symbolNameOf(stmt.Dir.Args[0])
		if varName == "" {
			e.diags.AddError(stmt.Pos, diag.KindLoop, "!for's first argument must be a plain variable name")
			return
		}
		startR, err := e.Eval(stmt.Dir.Args[1])
		if err != nil {
			e.diags.AddError(stmt.Pos, diag.KindLoop, "%v", err)
			return
		}
		endR, err := e.Eval(stmt.Dir.Args[2])
		if err != nil {
			e.diags.AddError(stmt.Pos, diag.KindLoop, "%v", err)
			return
		}
		step := int32(1)
		if len(stmt.Dir.Args) > 3 {
			stepR, err := e.Eval(stmt.Dir.Args[3])
			if err == nil {
				step = stepR.Value
			}
		}
		if step == 0 {
			e.diags.AddError(stmt.Pos, diag.KindLoop, "!for step must not be zero")
			return
		}

		iterations := 0
		// Inclusive of end, matching assembler_loop_for's "i <= end"/"i >= end"
		// (original_source/src/assembler.c) — "!for i,0,2" iterates i=0,1,2.
		for v := startR.Value; (step > 0 && v <= endR.Value) || (step < 0 && v >= endR.Value); v += step {
			iterations++
			if iterations > e.limits.MaxLoopIterations {
				e.diags.AddError(stmt.Pos, diag.KindLoop, "!for exceeded %d iterations", e.limits.MaxLoopIterations)
				return
			}
			// Also define the induction variable as an ordinary symbol (not
			// just a textual substitution) so expressions in the body that
			// reference it by name, and any reference to it after the loop
			// ends, resolve to its final value — spec.md section 4's "also
			// defines var as an ordinary symbol" requirement, grounded on
			// assembler_loop_for's per-iteration symbol_define call
			// (original_source/src/assembler.c).
			e.Symbols.DefineForce(varName, v, isZP(v))
			iterBody := substituteParams(body, []string{varName}, []string{strconv.FormatInt(int64(v), 10)})
			e.pass1Lines(iterBody, filename, filepath.Dir(filename))
		}

	case "while":
		if len(stmt.Dir.Args) == 0 {
			e.diags.AddError(stmt.Pos, diag.KindLoop, "!while requires a condition")
			return
		}
		iterations := 0
		for {
			r, err := e.Eval(stmt.Dir.Args[0])
			if err != nil {
				e.diags.AddError(stmt.Pos, diag.KindLoop, "%v", err)
				return
			}
			if !r.Defined || r.Value == 0 {
				return
			}
			iterations++
			if iterations > e.limits.MaxLoopIterations {
				e.diags.AddError(stmt.Pos, diag.KindLoop, "!while exceeded %d iterations", e.limits.MaxLoopIterations)
				return
			}
			e.pass1Lines(body, filename, filepath.Dir(filename))
		}
	}
}
