// Package output implements the assembler's three finished-build artifacts
// (Component I, spec.md section 4.I): the PRG/raw program image, a
// VICE-style label file, and a source listing with a sorted symbol
// appendix.
//
// Grounded on the teacher's loader/loader.go for the shape of a writer that
// walks an already-assembled program and turns it into bytes addressed by
// the symbol table's resolved values, and on tools/xref.go and
// tools/format.go for the column-padding conventions reused here for the
// listing, which is rendered through a bufio.Writer.
package output

import (
	"bufio"
	"fmt"
	"io"

	"github.com/xasm65/xasm65/internal/ast"
	"github.com/xasm65/xasm65/internal/engine"
	"github.com/xasm65/xasm65/internal/symtab"
)

// Format selects the program-image container, per spec.md section 6.
type Format int

const (
	FormatPRG Format = iota
	FormatRaw
)

// Image renders the engine's emission buffer as a finished program image:
// PRG mode prefixes a two-byte little-endian load address equal to the
// lowest written address; raw mode omits it. Returns nil if nothing was
// ever written.
func Image(img *engine.Image, format Format) []byte {
	if !img.HasData {
		return nil
	}
	lo := uint16(img.Lowest)
	hi := uint16(img.Highest)
	length := int(hi-lo) + 1

	var out []byte
	if format == FormatPRG {
		out = make([]byte, 0, 2+length)
		out = append(out, byte(lo), byte(lo>>8))
	} else {
		out = make([]byte, 0, length)
	}
	for a := lo; ; a++ {
		out = append(out, img.Memory[a])
		if a == hi {
			break
		}
	}
	return out
}

// WriteLabels writes the VICE monitor label-file format: one
// "al C:<hhhh> .<name>" line per defined symbol, sorted by address
// ascending then name ascending (symtab.Table.All already returns that
// order).
func WriteLabels(w io.Writer, symbols []*symtab.Symbol) error {
	bw := bufio.NewWriter(w)
	for _, s := range symbols {
		if _, err := fmt.Fprintf(bw, "al C:%04X .%s\n", uint16(s.Value), s.Name); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// ListingOptions controls the source listing's rendering, matching the
// CLI's --cycles flag and the config file's listing section (SPEC_FULL.md
// AMBIENT STACK).
type ListingOptions struct {
	// ShowCycles adds a cycle-count column, marked with '+' when the
	// instruction's addressing mode carries a page-boundary-cross penalty.
	ShowCycles bool
}

const bytesPerRow = 4

// WriteListing renders one assembled source file as a columnar listing
// (address, up to four hex bytes per row with continuation rows for wider
// emissions, optional cycle column, original source text) followed by a
// symbol appendix sorted the same way as the label file.
func WriteListing(w io.Writer, lines []*engine.AssembledLine, symbols []*symtab.Symbol, opts ListingOptions) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintln(bw, "xasm65 listing")
	fmt.Fprintln(bw, "==============")
	fmt.Fprintln(bw)

	totalBytes := 0
	for _, line := range lines {
		if err := writeListingLine(bw, line, opts); err != nil {
			return err
		}
		totalBytes += len(line.Bytes)
	}

	fmt.Fprintln(bw)
	fmt.Fprintln(bw, "Symbols")
	fmt.Fprintln(bw, "=======")
	for _, s := range symbols {
		fmt.Fprintf(bw, "%04X  %s\n", uint16(s.Value), s.Name)
	}
	fmt.Fprintln(bw)
	fmt.Fprintf(bw, "%d symbol(s), %d byte(s) emitted\n", len(symbols), totalBytes)

	return bw.Flush()
}

// writeListingLine renders one AssembledLine's row(s). A line is given an
// address column only when it emitted bytes or carried a label, matching
// spec.md section 4.I; everything else (blank lines, directives like !zone
// that only change state) gets a blank gutter so the source text still
// lines up.
func writeListingLine(bw *bufio.Writer, line *engine.AssembledLine, opts ListingOptions) error {
	showAddress := len(line.Bytes) > 0 || line.Stmt.HasLabel()

	rows := chunk(line.Bytes, bytesPerRow)
	if len(rows) == 0 {
		rows = [][]byte{nil}
	}

	for i, row := range rows {
		addrCol := "    "
		if i > 0 || showAddress {
			addrCol = fmt.Sprintf("%04X", uint16(line.PC)+uint16(i*bytesPerRow))
		}

		cycleCol := ""
		if opts.ShowCycles && i == 0 {
			cycleCol = formatCycles(line.Stmt)
		}

		text := ""
		if i == 0 {
			text = line.Stmt.Text
		}

		if _, err := fmt.Fprintf(bw, "%s  %-12s%-6s%s\n", addrCol, formatBytes(row), cycleCol, text); err != nil {
			return err
		}
	}
	return nil
}

func chunk(b []byte, size int) [][]byte {
	var out [][]byte
	for len(b) > 0 {
		n := size
		if n > len(b) {
			n = len(b)
		}
		out = append(out, b[:n])
		b = b[n:]
	}
	return out
}

func formatBytes(b []byte) string {
	s := ""
	for i, v := range b {
		if i > 0 {
			s += " "
		}
		s += fmt.Sprintf("%02X", v)
	}
	return s
}

// formatCycles reports an instruction statement's cycle count, suffixed
// with '+' when its addressing mode carries a page-boundary-cross penalty;
// non-instruction statements have no cycle cost.
func formatCycles(stmt *ast.Statement) string {
	if stmt.Kind != ast.Instruction {
		return ""
	}
	if stmt.Inst.PagePenalty {
		return fmt.Sprintf("%d+", stmt.Inst.Cycles)
	}
	return fmt.Sprintf("%d", stmt.Inst.Cycles)
}
