// Package addrmode resolves a 6502 addressing mode from instruction
// operand syntax, following the decision table in spec.md section 4.F.
//
// Grounded on _examples/original_source/include/opcodes.h's AddressingMode
// enum (order preserved exactly, including the illegal-mode sentinel) and
// original_source/src/assembler.c's operand-shape dispatch that feeds it.
package addrmode

// Mode enumerates the 6502 addressing modes, in the same order as ASM64's
// AddressingMode enum so that table-driven lookups stay easy to cross-check
// against the C source.
type Mode int

const (
	Implied Mode = iota
	Accumulator
	Immediate
	ZeroPage
	ZeroPageX
	ZeroPageY
	Absolute
	AbsoluteX
	AbsoluteY
	Indirect
	IndirectX // indexed-indirect: (zp,X)
	IndirectY // indirect-indexed: (zp),Y
	Relative
	Invalid
)

var names = map[Mode]string{
	Implied: "IMPLIED", Accumulator: "ACCUMULATOR", Immediate: "IMMEDIATE",
	ZeroPage: "ZEROPAGE", ZeroPageX: "ZEROPAGE_X", ZeroPageY: "ZEROPAGE_Y",
	Absolute: "ABSOLUTE", AbsoluteX: "ABSOLUTE_X", AbsoluteY: "ABSOLUTE_Y",
	Indirect: "INDIRECT", IndirectX: "INDIRECT_X", IndirectY: "INDIRECT_Y",
	Relative: "RELATIVE", Invalid: "INVALID",
}

func (m Mode) String() string {
	if s, ok := names[m]; ok {
		return s
	}
	return "UNKNOWN"
}

// Operand describes the syntactic shape of an instruction's operand, as
// produced by the statement parser, ahead of knowing whether the mnemonic
// actually supports the resulting mode.
type Operand struct {
	HasOperand    bool
	IsImmediate   bool // leading '#'
	IsIndirect    bool // parenthesised
	HasX          bool // trailing ,X (outside parens) or inside parens before ')'
	HasY          bool // trailing ,Y (outside parens) or after closing ')'
	IsAccumulator bool // bare symbol "A"
	ValueKnown    bool
	Value         int32
}

// Resolve implements the table in spec.md section 4.F. accumulatorOptional
// reports whether the mnemonic supports accumulator mode (ASL/LSR/ROL/ROR);
// zpSupported/zpXSupported/zpYSupported report whether the mnemonic has a
// zero-page-class entry in the given indexing, supplied by the opcode table
// so this package stays independent of it.
func Resolve(isBranch bool, op Operand, accumulatorOptional, zpSupported, zpXSupported, zpYSupported bool) Mode {
	switch {
	case isBranch:
		return Relative
	case op.IsImmediate:
		return Immediate
	case !op.HasOperand && accumulatorOptional:
		return Accumulator
	case !op.HasOperand:
		return Implied
	case op.IsAccumulator && accumulatorOptional:
		return Accumulator
	case op.IsIndirect && op.HasX:
		return IndirectX
	case op.IsIndirect && op.HasY:
		return IndirectY
	case op.IsIndirect:
		return Indirect
	case op.HasX:
		if op.ValueKnown && fitsZeroPage(op.Value) && zpXSupported {
			return ZeroPageX
		}
		return AbsoluteX
	case op.HasY:
		if op.ValueKnown && fitsZeroPage(op.Value) && zpYSupported {
			return ZeroPageY
		}
		return AbsoluteY
	case op.ValueKnown && fitsZeroPage(op.Value) && zpSupported:
		return ZeroPage
	default:
		return Absolute
	}
}

func fitsZeroPage(v int32) bool { return v >= 0 && v <= 0xFF }

// ReconcilePass2 implements the "never shrink between passes" rule from
// spec.md section 4.E/4.F. Narrowing an absolute-class mode to its
// zero-page-class counterpart always reduces instruction size by one byte,
// which would move every subsequently computed address relative to what
// pass 1 already committed to. Since that can never "preserve the size
// chosen in pass 1", pass 2 always keeps pass 1's mode unchanged. The
// engine does not call this function: pass 2 replays the statement pass 1
// recorded, mode included, so the rule holds by construction and this
// function only states it in one place.
func ReconcilePass2(pass1Mode Mode) Mode {
	return pass1Mode
}
