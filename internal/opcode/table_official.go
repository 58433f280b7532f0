package opcode

import "github.com/xasm65/xasm65/internal/addrmode"

// officialRows is the complete set of documented 6502/65C02-compatible
// encoding-for-encoding rows, transcribed from opcodes.c's opcode_table.
var officialRows = []Entry{
	// ADC
	{"ADC", addrmode.Immediate, 0x69, 2, 2, false, FlagNone},
	{"ADC", addrmode.ZeroPage, 0x65, 2, 3, false, FlagNone},
	{"ADC", addrmode.ZeroPageX, 0x75, 2, 4, false, FlagNone},
	{"ADC", addrmode.Absolute, 0x6D, 3, 4, false, FlagNone},
	{"ADC", addrmode.AbsoluteX, 0x7D, 3, 4, true, FlagNone},
	{"ADC", addrmode.AbsoluteY, 0x79, 3, 4, true, FlagNone},
	{"ADC", addrmode.IndirectX, 0x61, 2, 6, false, FlagNone},
	{"ADC", addrmode.IndirectY, 0x71, 2, 5, true, FlagNone},

	// AND
	{"AND", addrmode.Immediate, 0x29, 2, 2, false, FlagNone},
	{"AND", addrmode.ZeroPage, 0x25, 2, 3, false, FlagNone},
	{"AND", addrmode.ZeroPageX, 0x35, 2, 4, false, FlagNone},
	{"AND", addrmode.Absolute, 0x2D, 3, 4, false, FlagNone},
	{"AND", addrmode.AbsoluteX, 0x3D, 3, 4, true, FlagNone},
	{"AND", addrmode.AbsoluteY, 0x39, 3, 4, true, FlagNone},
	{"AND", addrmode.IndirectX, 0x21, 2, 6, false, FlagNone},
	{"AND", addrmode.IndirectY, 0x31, 2, 5, true, FlagNone},

	// ASL
	{"ASL", addrmode.Accumulator, 0x0A, 1, 2, false, FlagNone},
	{"ASL", addrmode.ZeroPage, 0x06, 2, 5, false, FlagNone},
	{"ASL", addrmode.ZeroPageX, 0x16, 2, 6, false, FlagNone},
	{"ASL", addrmode.Absolute, 0x0E, 3, 6, false, FlagNone},
	{"ASL", addrmode.AbsoluteX, 0x1E, 3, 7, false, FlagNone},

	// Branches
	{"BCC", addrmode.Relative, 0x90, 2, 2, true, FlagBranch},
	{"BCS", addrmode.Relative, 0xB0, 2, 2, true, FlagBranch},
	{"BEQ", addrmode.Relative, 0xF0, 2, 2, true, FlagBranch},
	{"BMI", addrmode.Relative, 0x30, 2, 2, true, FlagBranch},
	{"BNE", addrmode.Relative, 0xD0, 2, 2, true, FlagBranch},
	{"BPL", addrmode.Relative, 0x10, 2, 2, true, FlagBranch},
	{"BVC", addrmode.Relative, 0x50, 2, 2, true, FlagBranch},
	{"BVS", addrmode.Relative, 0x70, 2, 2, true, FlagBranch},

	// BIT
	{"BIT", addrmode.ZeroPage, 0x24, 2, 3, false, FlagNone},
	{"BIT", addrmode.Absolute, 0x2C, 3, 4, false, FlagNone},

	// BRK
	{"BRK", addrmode.Implied, 0x00, 1, 7, false, FlagBreak},

	// Flag clears
	{"CLC", addrmode.Implied, 0x18, 1, 2, false, FlagNone},
	{"CLD", addrmode.Implied, 0xD8, 1, 2, false, FlagNone},
	{"CLI", addrmode.Implied, 0x58, 1, 2, false, FlagNone},
	{"CLV", addrmode.Implied, 0xB8, 1, 2, false, FlagNone},

	// CMP
	{"CMP", addrmode.Immediate, 0xC9, 2, 2, false, FlagNone},
	{"CMP", addrmode.ZeroPage, 0xC5, 2, 3, false, FlagNone},
	{"CMP", addrmode.ZeroPageX, 0xD5, 2, 4, false, FlagNone},
	{"CMP", addrmode.Absolute, 0xCD, 3, 4, false, FlagNone},
	{"CMP", addrmode.AbsoluteX, 0xDD, 3, 4, true, FlagNone},
	{"CMP", addrmode.AbsoluteY, 0xD9, 3, 4, true, FlagNone},
	{"CMP", addrmode.IndirectX, 0xC1, 2, 6, false, FlagNone},
	{"CMP", addrmode.IndirectY, 0xD1, 2, 5, true, FlagNone},

	// CPX / CPY
	{"CPX", addrmode.Immediate, 0xE0, 2, 2, false, FlagNone},
	{"CPX", addrmode.ZeroPage, 0xE4, 2, 3, false, FlagNone},
	{"CPX", addrmode.Absolute, 0xEC, 3, 4, false, FlagNone},
	{"CPY", addrmode.Immediate, 0xC0, 2, 2, false, FlagNone},
	{"CPY", addrmode.ZeroPage, 0xC4, 2, 3, false, FlagNone},
	{"CPY", addrmode.Absolute, 0xCC, 3, 4, false, FlagNone},

	// DEC / DEX / DEY
	{"DEC", addrmode.ZeroPage, 0xC6, 2, 5, false, FlagNone},
	{"DEC", addrmode.ZeroPageX, 0xD6, 2, 6, false, FlagNone},
	{"DEC", addrmode.Absolute, 0xCE, 3, 6, false, FlagNone},
	{"DEC", addrmode.AbsoluteX, 0xDE, 3, 7, false, FlagNone},
	{"DEX", addrmode.Implied, 0xCA, 1, 2, false, FlagNone},
	{"DEY", addrmode.Implied, 0x88, 1, 2, false, FlagNone},

	// EOR
	{"EOR", addrmode.Immediate, 0x49, 2, 2, false, FlagNone},
	{"EOR", addrmode.ZeroPage, 0x45, 2, 3, false, FlagNone},
	{"EOR", addrmode.ZeroPageX, 0x55, 2, 4, false, FlagNone},
	{"EOR", addrmode.Absolute, 0x4D, 3, 4, false, FlagNone},
	{"EOR", addrmode.AbsoluteX, 0x5D, 3, 4, true, FlagNone},
	{"EOR", addrmode.AbsoluteY, 0x59, 3, 4, true, FlagNone},
	{"EOR", addrmode.IndirectX, 0x41, 2, 6, false, FlagNone},
	{"EOR", addrmode.IndirectY, 0x51, 2, 5, true, FlagNone},

	// INC / INX / INY
	{"INC", addrmode.ZeroPage, 0xE6, 2, 5, false, FlagNone},
	{"INC", addrmode.ZeroPageX, 0xF6, 2, 6, false, FlagNone},
	{"INC", addrmode.Absolute, 0xEE, 3, 6, false, FlagNone},
	{"INC", addrmode.AbsoluteX, 0xFE, 3, 7, false, FlagNone},
	{"INX", addrmode.Implied, 0xE8, 1, 2, false, FlagNone},
	{"INY", addrmode.Implied, 0xC8, 1, 2, false, FlagNone},

	// JMP / JSR
	{"JMP", addrmode.Absolute, 0x4C, 3, 3, false, FlagJump},
	{"JMP", addrmode.Indirect, 0x6C, 3, 5, false, FlagJump},
	{"JSR", addrmode.Absolute, 0x20, 3, 6, false, FlagJump},

	// LDA / LDX / LDY
	{"LDA", addrmode.Immediate, 0xA9, 2, 2, false, FlagNone},
	{"LDA", addrmode.ZeroPage, 0xA5, 2, 3, false, FlagNone},
	{"LDA", addrmode.ZeroPageX, 0xB5, 2, 4, false, FlagNone},
	{"LDA", addrmode.Absolute, 0xAD, 3, 4, false, FlagNone},
	{"LDA", addrmode.AbsoluteX, 0xBD, 3, 4, true, FlagNone},
	{"LDA", addrmode.AbsoluteY, 0xB9, 3, 4, true, FlagNone},
	{"LDA", addrmode.IndirectX, 0xA1, 2, 6, false, FlagNone},
	{"LDA", addrmode.IndirectY, 0xB1, 2, 5, true, FlagNone},
	{"LDX", addrmode.Immediate, 0xA2, 2, 2, false, FlagNone},
	{"LDX", addrmode.ZeroPage, 0xA6, 2, 3, false, FlagNone},
	{"LDX", addrmode.ZeroPageY, 0xB6, 2, 4, false, FlagNone},
	{"LDX", addrmode.Absolute, 0xAE, 3, 4, false, FlagNone},
	{"LDX", addrmode.AbsoluteY, 0xBE, 3, 4, true, FlagNone},
	{"LDY", addrmode.Immediate, 0xA0, 2, 2, false, FlagNone},
	{"LDY", addrmode.ZeroPage, 0xA4, 2, 3, false, FlagNone},
	{"LDY", addrmode.ZeroPageX, 0xB4, 2, 4, false, FlagNone},
	{"LDY", addrmode.Absolute, 0xAC, 3, 4, false, FlagNone},
	{"LDY", addrmode.AbsoluteX, 0xBC, 3, 4, true, FlagNone},

	// LSR
	{"LSR", addrmode.Accumulator, 0x4A, 1, 2, false, FlagNone},
	{"LSR", addrmode.ZeroPage, 0x46, 2, 5, false, FlagNone},
	{"LSR", addrmode.ZeroPageX, 0x56, 2, 6, false, FlagNone},
	{"LSR", addrmode.Absolute, 0x4E, 3, 6, false, FlagNone},
	{"LSR", addrmode.AbsoluteX, 0x5E, 3, 7, false, FlagNone},

	// NOP
	{"NOP", addrmode.Implied, 0xEA, 1, 2, false, FlagNone},

	// ORA
	{"ORA", addrmode.Immediate, 0x09, 2, 2, false, FlagNone},
	{"ORA", addrmode.ZeroPage, 0x05, 2, 3, false, FlagNone},
	{"ORA", addrmode.ZeroPageX, 0x15, 2, 4, false, FlagNone},
	{"ORA", addrmode.Absolute, 0x0D, 3, 4, false, FlagNone},
	{"ORA", addrmode.AbsoluteX, 0x1D, 3, 4, true, FlagNone},
	{"ORA", addrmode.AbsoluteY, 0x19, 3, 4, true, FlagNone},
	{"ORA", addrmode.IndirectX, 0x01, 2, 6, false, FlagNone},
	{"ORA", addrmode.IndirectY, 0x11, 2, 5, true, FlagNone},

	// Stack
	{"PHA", addrmode.Implied, 0x48, 1, 3, false, FlagStack},
	{"PHP", addrmode.Implied, 0x08, 1, 3, false, FlagStack},
	{"PLA", addrmode.Implied, 0x68, 1, 4, false, FlagStack},
	{"PLP", addrmode.Implied, 0x28, 1, 4, false, FlagStack},

	// ROL / ROR
	{"ROL", addrmode.Accumulator, 0x2A, 1, 2, false, FlagNone},
	{"ROL", addrmode.ZeroPage, 0x26, 2, 5, false, FlagNone},
	{"ROL", addrmode.ZeroPageX, 0x36, 2, 6, false, FlagNone},
	{"ROL", addrmode.Absolute, 0x2E, 3, 6, false, FlagNone},
	{"ROL", addrmode.AbsoluteX, 0x3E, 3, 7, false, FlagNone},
	{"ROR", addrmode.Accumulator, 0x6A, 1, 2, false, FlagNone},
	{"ROR", addrmode.ZeroPage, 0x66, 2, 5, false, FlagNone},
	{"ROR", addrmode.ZeroPageX, 0x76, 2, 6, false, FlagNone},
	{"ROR", addrmode.Absolute, 0x6E, 3, 6, false, FlagNone},
	{"ROR", addrmode.AbsoluteX, 0x7E, 3, 7, false, FlagNone},

	// RTI / RTS
	{"RTI", addrmode.Implied, 0x40, 1, 6, false, FlagReturn},
	{"RTS", addrmode.Implied, 0x60, 1, 6, false, FlagReturn},

	// SBC
	{"SBC", addrmode.Immediate, 0xE9, 2, 2, false, FlagNone},
	{"SBC", addrmode.ZeroPage, 0xE5, 2, 3, false, FlagNone},
	{"SBC", addrmode.ZeroPageX, 0xF5, 2, 4, false, FlagNone},
	{"SBC", addrmode.Absolute, 0xED, 3, 4, false, FlagNone},
	{"SBC", addrmode.AbsoluteX, 0xFD, 3, 4, true, FlagNone},
	{"SBC", addrmode.AbsoluteY, 0xF9, 3, 4, true, FlagNone},
	{"SBC", addrmode.IndirectX, 0xE1, 2, 6, false, FlagNone},
	{"SBC", addrmode.IndirectY, 0xF1, 2, 5, true, FlagNone},

	// Flag sets
	{"SEC", addrmode.Implied, 0x38, 1, 2, false, FlagNone},
	{"SED", addrmode.Implied, 0xF8, 1, 2, false, FlagNone},
	{"SEI", addrmode.Implied, 0x78, 1, 2, false, FlagNone},

	// STA / STX / STY
	{"STA", addrmode.ZeroPage, 0x85, 2, 3, false, FlagNone},
	{"STA", addrmode.ZeroPageX, 0x95, 2, 4, false, FlagNone},
	{"STA", addrmode.Absolute, 0x8D, 3, 4, false, FlagNone},
	{"STA", addrmode.AbsoluteX, 0x9D, 3, 5, false, FlagNone},
	{"STA", addrmode.AbsoluteY, 0x99, 3, 5, false, FlagNone},
	{"STA", addrmode.IndirectX, 0x81, 2, 6, false, FlagNone},
	{"STA", addrmode.IndirectY, 0x91, 2, 6, false, FlagNone},
	{"STX", addrmode.ZeroPage, 0x86, 2, 3, false, FlagNone},
	{"STX", addrmode.ZeroPageY, 0x96, 2, 4, false, FlagNone},
	{"STX", addrmode.Absolute, 0x8E, 3, 4, false, FlagNone},
	{"STY", addrmode.ZeroPage, 0x84, 2, 3, false, FlagNone},
	{"STY", addrmode.ZeroPageX, 0x94, 2, 4, false, FlagNone},
	{"STY", addrmode.Absolute, 0x8C, 3, 4, false, FlagNone},

	// Transfers
	{"TAX", addrmode.Implied, 0xAA, 1, 2, false, FlagNone},
	{"TAY", addrmode.Implied, 0xA8, 1, 2, false, FlagNone},
	{"TSX", addrmode.Implied, 0xBA, 1, 2, false, FlagNone},
	{"TXA", addrmode.Implied, 0x8A, 1, 2, false, FlagNone},
	{"TXS", addrmode.Implied, 0x9A, 1, 2, false, FlagNone},
	{"TYA", addrmode.Implied, 0x98, 1, 2, false, FlagNone},
}
