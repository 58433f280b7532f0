package parser_test

import (
	"testing"

	"github.com/xasm65/xasm65/internal/addrmode"
	"github.com/xasm65/xasm65/internal/ast"
	"github.com/xasm65/xasm65/internal/lexer"
	"github.com/xasm65/xasm65/internal/opcode"
	"github.com/xasm65/xasm65/internal/parser"
)

type fakeSymbols map[string]int32

func (f fakeSymbols) Lookup(name string) (int32, bool, bool) {
	v, ok := f[name]
	return v, v >= 0 && v <= 0xFF, ok
}

func parseOne(t *testing.T, src string, syms fakeSymbols) *ast.Statement {
	t.Helper()
	lex := lexer.New(src, "test.asm")
	p := parser.New(lex, opcode.New())
	return p.ParseStatement(parser.EvalContext{Symbols: syms, PC: 0x1000, Pass: 2})
}

func TestLabelWithColon(t *testing.T) {
	stmt := parseOne(t, "loop: nop\n", fakeSymbols{})
	if stmt.Label == nil || stmt.Label.Name != "loop" {
		t.Fatalf("expected label 'loop', got %+v", stmt.Label)
	}
}

func TestBareLabelOnOwnLine(t *testing.T) {
	stmt := parseOne(t, "loop\n", fakeSymbols{})
	if stmt.Kind != ast.LabelOnly || stmt.Label == nil || stmt.Label.Name != "loop" {
		t.Fatalf("expected label-only 'loop', got kind=%v label=%+v", stmt.Kind, stmt.Label)
	}
}

func TestIdentifierFollowedByEqIsAssignment(t *testing.T) {
	stmt := parseOne(t, "count = 5\n", fakeSymbols{})
	if stmt.Kind != ast.Assignment || stmt.Assign.Name != "count" {
		t.Fatalf("expected assignment to 'count', got %+v", stmt)
	}
}

func TestMnemonicIsNotTakenAsLabel(t *testing.T) {
	stmt := parseOne(t, "nop\n", fakeSymbols{})
	if stmt.Kind != ast.Instruction || stmt.Label != nil {
		t.Fatalf("expected bare NOP instruction with no label, got %+v", stmt)
	}
}

func TestImpliedInstruction(t *testing.T) {
	stmt := parseOne(t, "nop\n", fakeSymbols{})
	if stmt.Inst.Mode != addrmode.Implied || stmt.Inst.Opcode != 0xEA {
		t.Fatalf("expected implied NOP at 0xEA, got %+v", stmt.Inst)
	}
}

func TestImmediateInstruction(t *testing.T) {
	stmt := parseOne(t, "lda #$10\n", fakeSymbols{})
	if stmt.Inst.Mode != addrmode.Immediate || stmt.Inst.Opcode != 0xA9 {
		t.Fatalf("expected LDA #imm at 0xA9, got %+v", stmt.Inst)
	}
}

func TestZeroPageInstructionWhenValueFits(t *testing.T) {
	stmt := parseOne(t, "lda $10\n", fakeSymbols{})
	if stmt.Inst.Mode != addrmode.ZeroPage || stmt.Inst.Opcode != 0xA5 {
		t.Fatalf("expected LDA zp at 0xA5, got %+v", stmt.Inst)
	}
}

func TestAbsoluteInstructionWhenValueDoesNotFitZeroPage(t *testing.T) {
	stmt := parseOne(t, "lda $1234\n", fakeSymbols{})
	if stmt.Inst.Mode != addrmode.Absolute || stmt.Inst.Opcode != 0xAD {
		t.Fatalf("expected LDA absolute at 0xAD, got %+v", stmt.Inst)
	}
}

func TestAbsoluteFallbackForUndefinedForwardReference(t *testing.T) {
	stmt := parseOne(t, "jmp target\n", fakeSymbols{})
	if stmt.Inst.Mode != addrmode.Absolute {
		t.Fatalf("expected conservative absolute mode for undefined symbol, got %v", stmt.Inst.Mode)
	}
}

func TestIndexedZeroPageX(t *testing.T) {
	stmt := parseOne(t, "lda $10,x\n", fakeSymbols{})
	if stmt.Inst.Mode != addrmode.ZeroPageX || stmt.Inst.Opcode != 0xB5 {
		t.Fatalf("expected LDA zp,X at 0xB5, got %+v", stmt.Inst)
	}
}

func TestIndexedIndirectX(t *testing.T) {
	stmt := parseOne(t, "lda ($10,x)\n", fakeSymbols{})
	if stmt.Inst.Mode != addrmode.IndirectX || stmt.Inst.Opcode != 0xA1 {
		t.Fatalf("expected LDA (zp,X) at 0xA1, got %+v", stmt.Inst)
	}
}

func TestIndirectIndexedY(t *testing.T) {
	stmt := parseOne(t, "lda ($10),y\n", fakeSymbols{})
	if stmt.Inst.Mode != addrmode.IndirectY || stmt.Inst.Opcode != 0xB1 {
		t.Fatalf("expected LDA (zp),Y at 0xB1, got %+v", stmt.Inst)
	}
}

func TestExplicitAccumulator(t *testing.T) {
	stmt := parseOne(t, "asl a\n", fakeSymbols{})
	if stmt.Inst.Mode != addrmode.Accumulator || stmt.Inst.Opcode != 0x0A {
		t.Fatalf("expected ASL A at 0x0A, got %+v", stmt.Inst)
	}
}

func TestImpliedAccumulatorWhenOperandOmitted(t *testing.T) {
	stmt := parseOne(t, "asl\n", fakeSymbols{})
	if stmt.Inst.Mode != addrmode.Accumulator || stmt.Inst.Opcode != 0x0A {
		t.Fatalf("expected ASL with no operand to default to accumulator, got %+v", stmt.Inst)
	}
}

func TestBranchAlwaysRelative(t *testing.T) {
	stmt := parseOne(t, "bne target\n", fakeSymbols{"target": 0x1010})
	if stmt.Inst.Mode != addrmode.Relative {
		t.Fatalf("expected BNE to use relative mode, got %v", stmt.Inst.Mode)
	}
}

func TestStarEqualsIsOriginDirective(t *testing.T) {
	stmt := parseOne(t, "* = $c000\n", fakeSymbols{})
	if stmt.Kind != ast.Directive || stmt.Dir.Name != "org" {
		t.Fatalf("expected '* =' to become an org directive, got %+v", stmt)
	}
}

func TestDirectiveWithCommaSeparatedArgs(t *testing.T) {
	stmt := parseOne(t, `!byte 1, 2, 3`+"\n", fakeSymbols{})
	if stmt.Kind != ast.Directive || stmt.Dir.Name != "byte" || len(stmt.Dir.Args) != 3 {
		t.Fatalf("expected !byte directive with 3 args, got %+v", stmt.Dir)
	}
}

func TestMacroDefinitionCapturesBareParams(t *testing.T) {
	stmt := parseOne(t, "!macro push_all, a, b\n", fakeSymbols{})
	if stmt.Kind != ast.Directive || stmt.Dir.Name != "macro" {
		t.Fatalf("expected !macro directive, got %+v", stmt)
	}
	if len(stmt.Dir.Params) != 3 || stmt.Dir.Params[0] != "push_all" {
		t.Fatalf("expected bare identifier params starting with macro name, got %+v", stmt.Dir.Params)
	}
}

func TestMacroCallParsesCommaSeparatedArgs(t *testing.T) {
	stmt := parseOne(t, "+push_all 1, 2\n", fakeSymbols{})
	if stmt.Kind != ast.MacroCall || stmt.Macro.Name != "push_all" {
		t.Fatalf("expected macro call 'push_all', got %+v", stmt)
	}
	if len(stmt.Macro.Args) != 2 {
		t.Fatalf("expected 2 macro args, got %+v", stmt.Macro.Args)
	}
}

func TestLocalLabelDisambiguation(t *testing.T) {
	stmt := parseOne(t, ".inner: nop\n", fakeSymbols{})
	if stmt.Label == nil || !stmt.Label.IsLocal || stmt.Label.Name != ".inner" {
		t.Fatalf("expected local label '.inner', got %+v", stmt.Label)
	}
}

func TestEmptyLineYieldsEmptyStatement(t *testing.T) {
	stmt := parseOne(t, "\n", fakeSymbols{})
	if stmt.Kind != ast.Empty {
		t.Fatalf("expected empty statement for a blank line, got %v", stmt.Kind)
	}
}

func TestUnsupportedAddressingModeIsAnError(t *testing.T) {
	// STX has no ,X-indexed form (only ,Y), so this must fail to resolve.
	stmt := parseOne(t, "stx $10,x\n", fakeSymbols{})
	if stmt.Kind != ast.ErrorStatement {
		t.Fatalf("expected STX zp,X to fail to resolve, got %+v", stmt)
	}
}
