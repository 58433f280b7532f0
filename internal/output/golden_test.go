package output_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/xasm65/xasm65/internal/engine"
	"github.com/xasm65/xasm65/internal/opcode"
	"github.com/xasm65/xasm65/internal/output"
)

// These reproduce spec.md section 8's seed end-to-end scenarios verbatim:
// a literal source assembles to an exact PRG byte sequence.

func assemblePRG(t *testing.T, src string) []byte {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "main.asm")
	if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
		t.Fatalf("write source: %v", err)
	}
	e := engine.New(opcode.MOS6502, nil)
	if err := e.AssembleFile(path); err != nil {
		t.Fatalf("AssembleFile: %v", err)
	}
	if e.Diags().HasErrors() {
		t.Fatalf("unexpected errors: %v", e.Diags().Error())
	}
	return output.Image(&e.Image, output.FormatPRG)
}

func TestGoldenSimpleLoadAndReturn(t *testing.T) {
	got := assemblePRG(t, "*=$1000\nLDA #$42\nRTS\n")
	want := []byte{0x00, 0x10, 0xA9, 0x42, 0x60}
	if !bytes.Equal(got, want) {
		t.Fatalf("got % X, want % X", got, want)
	}
}

func TestGoldenBackwardBranchLoop(t *testing.T) {
	got := assemblePRG(t, "*=$1000\nloop: NOP\nBNE loop\n")
	want := []byte{0x00, 0x10, 0xEA, 0xD0, 0xFD}
	if !bytes.Equal(got, want) {
		t.Fatalf("got % X, want % X", got, want)
	}
}

func TestGoldenByteAndWordDirectives(t *testing.T) {
	got := assemblePRG(t, "*=$1000\n!byte $01,$02,$03\n!word $1234\n")
	want := []byte{0x00, 0x10, 0x01, 0x02, 0x03, 0x34, 0x12}
	if !bytes.Equal(got, want) {
		t.Fatalf("got % X, want % X", got, want)
	}
}

func TestGoldenPseudoPCRegion(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "main.asm")
	src := "*=$1000\n!pseudopc $C000\nhere:\nJMP here\n!realpc\nRTS\n"
	if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
		t.Fatalf("write source: %v", err)
	}
	e := engine.New(opcode.MOS6502, nil)
	if err := e.AssembleFile(path); err != nil {
		t.Fatalf("AssembleFile: %v", err)
	}
	if e.Diags().HasErrors() {
		t.Fatalf("unexpected errors: %v", e.Diags().Error())
	}

	got := output.Image(&e.Image, output.FormatPRG)
	want := []byte{0x00, 0x10, 0x4C, 0x00, 0xC0, 0x60}
	if !bytes.Equal(got, want) {
		t.Fatalf("got % X, want % X", got, want)
	}

	v, _, ok := e.Symbols.Lookup("here")
	if !ok || v != 0xC000 {
		t.Fatalf("here = %#x, ok=%v, want 0xc000", v, ok)
	}
}

func TestGoldenConstantAssignment(t *testing.T) {
	got := assemblePRG(t, "*=$1000\nVAL=$42\nLDA #VAL\nRTS\n")
	want := []byte{0x00, 0x10, 0xA9, 0x42, 0x60}
	if !bytes.Equal(got, want) {
		t.Fatalf("got % X, want % X", got, want)
	}
}

func TestGoldenForLoopEmitsInclusiveRange(t *testing.T) {
	got := assemblePRG(t, "*=$1000\n!for i,0,2\n!byte i\n!end\n")
	want := []byte{0x00, 0x10, 0x00, 0x01, 0x02}
	if !bytes.Equal(got, want) {
		t.Fatalf("got % X, want % X", got, want)
	}
}

// Raw-format output omits the PRG load-address prefix (spec.md section 6).
func TestGoldenRawFormatOmitsLoadAddress(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "main.asm")
	if err := os.WriteFile(path, []byte("*=$1000\nLDA #$42\nRTS\n"), 0o644); err != nil {
		t.Fatalf("write source: %v", err)
	}
	e := engine.New(opcode.MOS6502, nil)
	if err := e.AssembleFile(path); err != nil {
		t.Fatalf("AssembleFile: %v", err)
	}
	got := output.Image(&e.Image, output.FormatRaw)
	want := []byte{0xA9, 0x42, 0x60}
	if !bytes.Equal(got, want) {
		t.Fatalf("got % X, want % X", got, want)
	}
}

// The listing's total emitted-byte count must equal the image's
// written-bitmap population count (spec.md section 8).
func TestGoldenListingByteCountMatchesWrittenBitmap(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "main.asm")
	src := "*=$1000\n!fill 20, $AA\nlabel:\nNOP\n!word $1234\n"
	if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
		t.Fatalf("write source: %v", err)
	}
	e := engine.New(opcode.MOS6502, nil)
	if err := e.AssembleFile(path); err != nil {
		t.Fatalf("AssembleFile: %v", err)
	}
	if e.Diags().HasErrors() {
		t.Fatalf("unexpected errors: %v", e.Diags().Error())
	}

	listingBytes := 0
	for _, line := range e.Lines {
		listingBytes += len(line.Bytes)
	}

	written := 0
	for _, b := range e.Image.Written {
		if b {
			written++
		}
	}

	if listingBytes != written {
		t.Fatalf("listing emitted %d byte(s), image written-bitmap has %d bit(s) set", listingBytes, written)
	}

	var buf bytes.Buffer
	if err := output.WriteListing(&buf, e.Lines, e.Symbols.All(), output.ListingOptions{}); err != nil {
		t.Fatalf("WriteListing: %v", err)
	}
	if !bytes.Contains(buf.Bytes(), []byte("23 byte(s)")) {
		t.Fatalf("expected listing summary to report 23 bytes emitted, got:\n%s", buf.String())
	}
}
