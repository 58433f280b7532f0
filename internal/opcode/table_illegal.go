package opcode

import "github.com/xasm65/xasm65/internal/addrmode"

// illegalRows is the common illegal/undocumented 6510 opcode set,
// transcribed from opcodes.c's illegal-opcode block. Several entries share
// a byte with a second, purely nominal alias (see the aliases map in
// opcode.go); those rows are not repeated here, only their canonical form.
var illegalRows = []Entry{
	// LAX: LDA+LDX combined
	{"LAX", addrmode.ZeroPage, 0xA7, 2, 3, false, FlagIllegal},
	{"LAX", addrmode.ZeroPageY, 0xB7, 2, 4, false, FlagIllegal},
	{"LAX", addrmode.Absolute, 0xAF, 3, 4, false, FlagIllegal},
	{"LAX", addrmode.AbsoluteY, 0xBF, 3, 4, true, FlagIllegal},
	{"LAX", addrmode.IndirectX, 0xA3, 2, 6, false, FlagIllegal},
	{"LAX", addrmode.IndirectY, 0xB3, 2, 5, true, FlagIllegal},

	// SAX: store A&X
	{"SAX", addrmode.ZeroPage, 0x87, 2, 3, false, FlagIllegal},
	{"SAX", addrmode.ZeroPageY, 0x97, 2, 4, false, FlagIllegal},
	{"SAX", addrmode.Absolute, 0x8F, 3, 4, false, FlagIllegal},
	{"SAX", addrmode.IndirectX, 0x83, 2, 6, false, FlagIllegal},

	// DCP (alias DCM): DEC+CMP
	{"DCP", addrmode.ZeroPage, 0xC7, 2, 5, false, FlagIllegal},
	{"DCP", addrmode.ZeroPageX, 0xD7, 2, 6, false, FlagIllegal},
	{"DCP", addrmode.Absolute, 0xCF, 3, 6, false, FlagIllegal},
	{"DCP", addrmode.AbsoluteX, 0xDF, 3, 7, false, FlagIllegal},
	{"DCP", addrmode.AbsoluteY, 0xDB, 3, 7, false, FlagIllegal},
	{"DCP", addrmode.IndirectX, 0xC3, 2, 8, false, FlagIllegal},
	{"DCP", addrmode.IndirectY, 0xD3, 2, 8, false, FlagIllegal},

	// ISC (aliases ISB, INS): INC+SBC
	{"ISC", addrmode.ZeroPage, 0xE7, 2, 5, false, FlagIllegal},
	{"ISC", addrmode.ZeroPageX, 0xF7, 2, 6, false, FlagIllegal},
	{"ISC", addrmode.Absolute, 0xEF, 3, 6, false, FlagIllegal},
	{"ISC", addrmode.AbsoluteX, 0xFF, 3, 7, false, FlagIllegal},
	{"ISC", addrmode.AbsoluteY, 0xFB, 3, 7, false, FlagIllegal},
	{"ISC", addrmode.IndirectX, 0xE3, 2, 8, false, FlagIllegal},
	{"ISC", addrmode.IndirectY, 0xF3, 2, 8, false, FlagIllegal},

	// SLO (alias ASO): ASL+ORA
	{"SLO", addrmode.ZeroPage, 0x07, 2, 5, false, FlagIllegal},
	{"SLO", addrmode.ZeroPageX, 0x17, 2, 6, false, FlagIllegal},
	{"SLO", addrmode.Absolute, 0x0F, 3, 6, false, FlagIllegal},
	{"SLO", addrmode.AbsoluteX, 0x1F, 3, 7, false, FlagIllegal},
	{"SLO", addrmode.AbsoluteY, 0x1B, 3, 7, false, FlagIllegal},
	{"SLO", addrmode.IndirectX, 0x03, 2, 8, false, FlagIllegal},
	{"SLO", addrmode.IndirectY, 0x13, 2, 8, false, FlagIllegal},

	// RLA: ROL+AND
	{"RLA", addrmode.ZeroPage, 0x27, 2, 5, false, FlagIllegal},
	{"RLA", addrmode.ZeroPageX, 0x37, 2, 6, false, FlagIllegal},
	{"RLA", addrmode.Absolute, 0x2F, 3, 6, false, FlagIllegal},
	{"RLA", addrmode.AbsoluteX, 0x3F, 3, 7, false, FlagIllegal},
	{"RLA", addrmode.AbsoluteY, 0x3B, 3, 7, false, FlagIllegal},
	{"RLA", addrmode.IndirectX, 0x23, 2, 8, false, FlagIllegal},
	{"RLA", addrmode.IndirectY, 0x33, 2, 8, false, FlagIllegal},

	// SRE (alias LSE): LSR+EOR
	{"SRE", addrmode.ZeroPage, 0x47, 2, 5, false, FlagIllegal},
	{"SRE", addrmode.ZeroPageX, 0x57, 2, 6, false, FlagIllegal},
	{"SRE", addrmode.Absolute, 0x4F, 3, 6, false, FlagIllegal},
	{"SRE", addrmode.AbsoluteX, 0x5F, 3, 7, false, FlagIllegal},
	{"SRE", addrmode.AbsoluteY, 0x5B, 3, 7, false, FlagIllegal},
	{"SRE", addrmode.IndirectX, 0x43, 2, 8, false, FlagIllegal},
	{"SRE", addrmode.IndirectY, 0x53, 2, 8, false, FlagIllegal},

	// RRA: ROR+ADC
	{"RRA", addrmode.ZeroPage, 0x67, 2, 5, false, FlagIllegal},
	{"RRA", addrmode.ZeroPageX, 0x77, 2, 6, false, FlagIllegal},
	{"RRA", addrmode.Absolute, 0x6F, 3, 6, false, FlagIllegal},
	{"RRA", addrmode.AbsoluteX, 0x7F, 3, 7, false, FlagIllegal},
	{"RRA", addrmode.AbsoluteY, 0x7B, 3, 7, false, FlagIllegal},
	{"RRA", addrmode.IndirectX, 0x63, 2, 8, false, FlagIllegal},
	{"RRA", addrmode.IndirectY, 0x73, 2, 8, false, FlagIllegal},

	// Immediate-mode unstable/combined illegals
	{"ANC", addrmode.Immediate, 0x0B, 2, 2, false, FlagIllegal},
	{"ANC2", addrmode.Immediate, 0x2B, 2, 2, false, FlagIllegal}, // second encoding of ANC, distinct opcode
	{"ALR", addrmode.Immediate, 0x4B, 2, 2, false, FlagIllegal},  // alias ASR
	{"ARR", addrmode.Immediate, 0x6B, 2, 2, false, FlagIllegal},
	{"XAA", addrmode.Immediate, 0x8B, 2, 2, false, FlagIllegal}, // alias ANE
	{"SBC", addrmode.Immediate, 0xEB, 2, 2, false, FlagIllegal}, // USBC: duplicate of the official SBC #imm encoding's effect, distinct opcode

	// Unstable store/load combined illegals
	{"AHX", addrmode.AbsoluteY, 0x9F, 3, 5, false, FlagIllegal}, // alias SHA
	{"AHX", addrmode.IndirectY, 0x93, 2, 6, false, FlagIllegal},
	{"TAS", addrmode.AbsoluteY, 0x9B, 3, 5, false, FlagIllegal}, // alias SHS
	{"SHX", addrmode.AbsoluteY, 0x9E, 3, 5, false, FlagIllegal}, // alias SXA
	{"SHY", addrmode.AbsoluteX, 0x9C, 3, 5, false, FlagIllegal}, // alias SYA
	{"LAS", addrmode.AbsoluteY, 0xBB, 3, 4, true, FlagIllegal},  // alias LAR

	// Multi-byte NOPs (DOP/TOP), single canonical mnemonic per size class
	{"DOP", addrmode.ZeroPage, 0x04, 2, 3, false, FlagIllegal},
	{"DOP", addrmode.ZeroPageX, 0x14, 2, 4, false, FlagIllegal},
	{"DOP", addrmode.Immediate, 0x80, 2, 2, false, FlagIllegal},
	{"TOP", addrmode.Absolute, 0x0C, 3, 4, false, FlagIllegal},
	{"TOP", addrmode.AbsoluteX, 0x1C, 3, 4, true, FlagIllegal},

	// JAM/KIL/HLT: locks the CPU; modelled with zero cycles as a sentinel.
	// Several opcode bytes (0x02, 0x12, 0x22, ...) all decode to a JAM; only
	// the first is catalogued here since the mnemonic can only encode to one
	// byte by name, and disassembly-style reverse lookup for the others is
	// out of scope for this assembler.
	{"JAM", addrmode.Implied, 0x02, 1, 0, false, FlagIllegal},
}
