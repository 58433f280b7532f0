// Package charset implements the ASCII-to-PETSCII and ASCII-to-screen-code
// transliterations used by the !pet and !scr directives.
//
// Grounded byte-for-byte on _examples/original_source/src/assembler.c's
// ascii_to_petscii and ascii_to_screencode_table / ascii_to_screencode,
// including the ACME-compatible uppercase-only !pet mapping.
package charset

// ToPETSCII converts one ASCII byte to its PETSCII equivalent, matching
// ASM64's ascii_to_petscii: letters are folded to uppercase, a handful of
// punctuation characters are remapped, and everything else passes through.
func ToPETSCII(c byte) byte {
	switch {
	case c >= 'A' && c <= 'Z':
		return c
	case c >= 'a' && c <= 'z':
		return c - 0x20
	}

	switch c {
	case '@':
		return 0x40
	case '[':
		return 0x5B
	case '\\':
		return 0x5C
	case ']':
		return 0x5D
	case '^':
		return 0x5E
	case '_':
		return 0xA4
	case '`':
		return 0x27
	case '{':
		return 0x5B
	case '|':
		return 0x7C
	case '}':
		return 0x5D
	case '~':
		return 0x7E
	}

	if c >= 0x20 && c <= 0x3F {
		return c
	}
	return c
}

// screencodeTable is ascii_to_screencode_table transcribed verbatim.
var screencodeTable = [128]byte{
	// $00-$0F: control characters map to space/question-mark placeholders
	0x20, 0x3F, 0x3F, 0x3F, 0x3F, 0x3F, 0x3F, 0x3F,
	0x3F, 0x3F, 0x3F, 0x3F, 0x3F, 0x3F, 0x3F, 0x3F,
	// $10-$1F
	0x3F, 0x3F, 0x3F, 0x3F, 0x3F, 0x3F, 0x3F, 0x3F,
	0x3F, 0x3F, 0x3F, 0x3F, 0x3F, 0x3F, 0x3F, 0x3F,
	// $20-$2F: space and punctuation
	0x20, 0x21, 0x22, 0x23, 0x24, 0x25, 0x26, 0x27,
	0x28, 0x29, 0x2A, 0x2B, 0x2C, 0x2D, 0x2E, 0x2F,
	// $30-$3F: digits and more punctuation
	0x30, 0x31, 0x32, 0x33, 0x34, 0x35, 0x36, 0x37,
	0x38, 0x39, 0x3A, 0x3B, 0x3C, 0x3D, 0x3E, 0x3F,
	// $40-$5F: '@', A-Z, and special characters
	0x00,
	0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07,
	0x08, 0x09, 0x0A, 0x0B, 0x0C, 0x0D, 0x0E, 0x0F,
	0x10, 0x11, 0x12, 0x13, 0x14, 0x15, 0x16, 0x17,
	0x18, 0x19, 0x1A,
	0x1B, 0x1C, 0x1D, 0x1E, 0x1F,
	// $60-$7F: lowercase a-z and special characters -> same as uppercase
	0x00,
	0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07,
	0x08, 0x09, 0x0A, 0x0B, 0x0C, 0x0D, 0x0E, 0x0F,
	0x10, 0x11, 0x12, 0x13, 0x14, 0x15, 0x16, 0x17,
	0x18, 0x19, 0x1A,
	0x1B, 0x1C, 0x1D, 0x1E,
	0x3F,
}

// ToScreenCode converts one ASCII byte to its C64 screen-code equivalent,
// matching ASM64's ascii_to_screencode.
func ToScreenCode(c byte) byte {
	if c < 128 {
		return screencodeTable[c]
	}
	return c & 0x7F
}
