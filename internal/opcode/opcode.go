// Package opcode is the assembler's static mnemonic/addressing-mode
// catalog: per spec.md section 4.A, a table of (mnemonic, mode) -> (opcode
// byte, size, base cycles, page-penalty flag, category flags), plus a
// reverse lookup by opcode byte and a per-CPU-variant acceptance policy.
//
// Grounded on _examples/original_source/include/opcodes.h (AddressingMode
// order, OpcodeEntry/MnemonicInfo layout, InstructionFlags bits) and
// _examples/original_source/src/opcodes.c (the full opcode_table and
// mnemonic_info static arrays, official and illegal/undocumented).
package opcode

import (
	"strings"

	"github.com/xasm65/xasm65/internal/addrmode"
)

// Flags categorizes a mnemonic, mirroring InstructionFlags in opcodes.h.
type Flags uint8

const (
	FlagNone    Flags = 0
	FlagBranch  Flags = 1 << 0
	FlagJump    Flags = 1 << 1
	FlagReturn  Flags = 1 << 2
	FlagIllegal Flags = 1 << 3
	FlagStack   Flags = 1 << 4
	FlagBreak   Flags = 1 << 5
)

// Entry is one (mnemonic, mode) row of the catalog.
type Entry struct {
	Mnemonic    string
	Mode        addrmode.Mode
	Opcode      byte
	Size        int
	Cycles      int
	PagePenalty bool
	Flags       Flags
}

// CPU selects which mnemonics a build accepts, per spec.md section 4.A's
// CPU-selection policy.
type CPU int

const (
	MOS6502 CPU = iota
	MOS6510
	WDC65C02
)

// Table is the fully populated opcode catalog, built once by New.
type Table struct {
	rows      map[string]map[addrmode.Mode]Entry
	byOpcode  [256]*Entry
	flags     map[string]Flags
	aliasOf   map[string]string // alias mnemonic -> canonical mnemonic
}

func canon(m string) string { return strings.ToUpper(m) }

// New builds the opcode catalog.
func New() *Table {
	t := &Table{
		rows:    make(map[string]map[addrmode.Mode]Entry),
		flags:   make(map[string]Flags),
		aliasOf: make(map[string]string),
	}
	for _, r := range officialRows {
		t.add(r)
	}
	for _, r := range illegalRows {
		t.add(r)
	}
	for alias, canonical := range aliases {
		t.aliasOf[canon(alias)] = canon(canonical)
		if rows, ok := t.rows[canon(canonical)]; ok {
			t.rows[canon(alias)] = rows
			t.flags[canon(alias)] = t.flags[canon(canonical)]
		}
	}
	return t
}

func (t *Table) add(r Entry) {
	name := canon(r.Mnemonic)
	if t.rows[name] == nil {
		t.rows[name] = make(map[addrmode.Mode]Entry)
	}
	t.rows[name][r.Mode] = r
	t.flags[name] |= r.Flags
	if t.byOpcode[r.Opcode] == nil {
		row := r
		t.byOpcode[r.Opcode] = &row
	}
}

// Find looks up the encoding for mnemonic in the given mode. Mnemonic
// matching is case-insensitive.
func (t *Table) Find(mnemonic string, mode addrmode.Mode) (Entry, bool) {
	modes, ok := t.rows[canon(mnemonic)]
	if !ok {
		return Entry{}, false
	}
	e, ok := modes[mode]
	return e, ok
}

// FindByOpcode looks up the canonical entry for a raw opcode byte, used for
// CPU-compatibility checks and disassembly-style tooling.
func (t *Table) FindByOpcode(opcode byte) (Entry, bool) {
	e := t.byOpcode[opcode]
	if e == nil {
		return Entry{}, false
	}
	return *e, true
}

// IsMnemonic reports whether name is a known mnemonic (official or
// illegal/undocumented, including aliases).
func (t *Table) IsMnemonic(name string) bool {
	_, ok := t.rows[canon(name)]
	return ok
}

// IsIllegal reports whether name is only valid as an illegal/undocumented
// opcode.
func (t *Table) IsIllegal(name string) bool {
	return t.flags[canon(name)]&FlagIllegal != 0
}

// Flags returns the category flags for a mnemonic.
func (t *Table) Flags(name string) Flags {
	return t.flags[canon(name)]
}

// HasMode reports whether mnemonic supports mode at all, independent of
// whether a concrete operand value is known yet; used by
// internal/addrmode's Resolve to decide zero-page-vs-absolute narrowing.
func (t *Table) HasMode(mnemonic string, mode addrmode.Mode) bool {
	_, ok := t.Find(mnemonic, mode)
	return ok
}

// Allowed reports whether mnemonic may be assembled under cpu, per the
// CPU-selection policy: 6502 and 65C02 reject illegal opcodes, 6510
// accepts all.
func (t *Table) Allowed(mnemonic string, cpu CPU) bool {
	if !t.IsMnemonic(mnemonic) {
		return false
	}
	if cpu == MOS6510 {
		return true
	}
	return !t.IsIllegal(mnemonic)
}

// ModeSize returns the instruction size in bytes implied by an addressing
// mode alone (1 for implied/accumulator, 2 for modes with a single operand
// byte, 3 for modes carrying a 16-bit operand).
func ModeSize(mode addrmode.Mode) int {
	switch mode {
	case addrmode.Implied, addrmode.Accumulator:
		return 1
	case addrmode.Immediate, addrmode.ZeroPage, addrmode.ZeroPageX, addrmode.ZeroPageY,
		addrmode.IndirectX, addrmode.IndirectY, addrmode.Relative:
		return 2
	case addrmode.Absolute, addrmode.AbsoluteX, addrmode.AbsoluteY, addrmode.Indirect:
		return 3
	}
	return 0
}

// aliases maps a documented illegal-opcode alternate name to the canonical
// mnemonic whose rows it shares, matching opcodes.c's alias table (e.g.
// DCM/DCP, LSE/SRE, ISB and INS/ISC).
var aliases = map[string]string{
	"DCM": "DCP",
	"ISB": "ISC",
	"INS": "ISC",
	"ASO": "SLO",
	"LSE": "SRE",
	"ANE": "XAA",
	"SHA": "AHX",
	"SHS": "TAS",
	"SXA": "SHX",
	"SYA": "SHY",
	"LAR": "LAS",
	"ASR": "ALR",
}
