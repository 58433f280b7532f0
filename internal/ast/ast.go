// Package ast defines the assembler's statement model: one tagged-variant
// Statement type per logical source line, dispatched by exhaustive switch
// per spec.md's "tagged variants, not a virtual base class" design note.
//
// Grounded on _examples/original_source/include/assembler.h's Statement
// union (label/instruction/directive/assignment/macro-call forms) and on
// the teacher's debugger/ast.go tagged-instruction style for the Go
// idiom of a single struct with a Kind discriminant instead of a sum type.
package ast

import (
	"github.com/xasm65/xasm65/internal/addrmode"
	"github.com/xasm65/xasm65/internal/diag"
	"github.com/xasm65/xasm65/internal/expr"
)

// Kind discriminates the Statement variants.
type Kind int

const (
	Empty Kind = iota
	LabelOnly
	Instruction
	Directive
	Assignment
	MacroCall
	ErrorStatement
)

func (k Kind) String() string {
	switch k {
	case Empty:
		return "EMPTY"
	case LabelOnly:
		return "LABEL_ONLY"
	case Instruction:
		return "INSTRUCTION"
	case Directive:
		return "DIRECTIVE"
	case Assignment:
		return "ASSIGNMENT"
	case MacroCall:
		return "MACRO_CALL"
	case ErrorStatement:
		return "ERROR"
	}
	return "UNKNOWN"
}

// Label carries the optional leading label on any statement kind.
type Label struct {
	Name        string
	IsLocal     bool
	IsAnonFwd   bool
	IsAnonBack  bool
	AnonCount   int // run length, when IsAnonFwd or IsAnonBack
}

// InstructionData holds everything needed to encode a 6502 instruction.
type InstructionData struct {
	Mnemonic    string
	Mode        addrmode.Mode
	Operand     *expr.Expr // nil for implied/accumulator
	ForcedZP    bool       // operand syntax explicitly requested zero-page narrowing
	ForcedAbs   bool       // operand syntax explicitly requested the wide absolute-class form
	Opcode      byte
	Size        int // 1, 2, or 3
	Cycles      int
	PagePenalty bool
}

// DirectiveData holds a parsed directive's name and arguments.
type DirectiveData struct {
	Name   string // without the leading '!'
	Args   []*expr.Expr
	String []byte // optional leading string-literal argument
	Params []string // bare identifier parameters, only populated for !macro
}

// AssignmentData holds a `name = expr` statement's parts.
type AssignmentData struct {
	Name  string
	Value *expr.Expr
}

// MacroCallData holds a macro invocation's name and raw textual arguments.
type MacroCallData struct {
	Name string
	Args []string
}

// Statement is one parsed logical source line.
type Statement struct {
	Kind Kind
	Pos  diag.Position
	Text string // captured source text, for listings

	Label *Label // nil if the line had no leading label

	Inst   InstructionData
	Dir    DirectiveData
	Assign AssignmentData
	Macro  MacroCallData

	Err error // populated when Kind == ErrorStatement
}

// HasLabel reports whether the statement carries a leading label.
func (s *Statement) HasLabel() bool { return s.Label != nil }
