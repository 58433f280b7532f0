package opcode_test

import (
	"testing"

	"github.com/xasm65/xasm65/internal/addrmode"
	"github.com/xasm65/xasm65/internal/opcode"
)

func TestFindOfficialEncoding(t *testing.T) {
	tab := opcode.New()
	e, ok := tab.Find("lda", addrmode.Immediate)
	if !ok || e.Opcode != 0xA9 || e.Size != 2 || e.Cycles != 2 {
		t.Fatalf("unexpected LDA #imm entry: %+v ok=%v", e, ok)
	}
}

func TestFindIsCaseInsensitive(t *testing.T) {
	tab := opcode.New()
	lower, ok1 := tab.Find("rts", addrmode.Implied)
	upper, ok2 := tab.Find("RTS", addrmode.Implied)
	if !ok1 || !ok2 || lower.Opcode != upper.Opcode {
		t.Fatalf("case-insensitive lookup mismatch")
	}
}

func TestFindByOpcodeRoundTrip(t *testing.T) {
	tab := opcode.New()
	e, ok := tab.FindByOpcode(0x60)
	if !ok || e.Mnemonic != "RTS" {
		t.Fatalf("expected RTS at 0x60, got %+v ok=%v", e, ok)
	}
}

func TestBranchFlag(t *testing.T) {
	tab := opcode.New()
	if tab.Flags("BNE")&opcode.FlagBranch == 0 {
		t.Fatalf("expected BNE to carry the branch flag")
	}
}

func TestIllegalMnemonicFlagged(t *testing.T) {
	tab := opcode.New()
	if !tab.IsIllegal("LAX") {
		t.Fatalf("expected LAX to be flagged illegal")
	}
	if tab.IsIllegal("LDA") {
		t.Fatalf("LDA must not be flagged illegal")
	}
}

func TestAliasSharesCanonicalEncoding(t *testing.T) {
	tab := opcode.New()
	canonical, ok1 := tab.Find("DCP", addrmode.ZeroPage)
	alias, ok2 := tab.Find("DCM", addrmode.ZeroPage)
	if !ok1 || !ok2 || canonical.Opcode != alias.Opcode {
		t.Fatalf("expected DCM alias to share DCP's encoding, got %+v vs %+v", canonical, alias)
	}
}

func TestCPUAcceptancePolicy(t *testing.T) {
	tab := opcode.New()
	if tab.Allowed("LAX", opcode.MOS6502) {
		t.Fatalf("6502 must reject illegal opcodes")
	}
	if !tab.Allowed("LAX", opcode.MOS6510) {
		t.Fatalf("6510 must accept illegal opcodes")
	}
	if tab.Allowed("LAX", opcode.WDC65C02) {
		t.Fatalf("65C02 must reject illegal opcodes")
	}
	if !tab.Allowed("LDA", opcode.WDC65C02) {
		t.Fatalf("65C02 must accept official opcodes")
	}
}

func TestUnknownMnemonicNotAllowed(t *testing.T) {
	tab := opcode.New()
	if tab.IsMnemonic("FROB") {
		t.Fatalf("unexpected mnemonic recognized")
	}
	if tab.Allowed("FROB", opcode.MOS6510) {
		t.Fatalf("unknown mnemonic must never be allowed")
	}
}

func TestModeSize(t *testing.T) {
	cases := map[addrmode.Mode]int{
		addrmode.Implied:     1,
		addrmode.Accumulator: 1,
		addrmode.Immediate:   2,
		addrmode.ZeroPage:    2,
		addrmode.Relative:    2,
		addrmode.Absolute:    3,
		addrmode.AbsoluteX:   3,
		addrmode.Indirect:    3,
	}
	for mode, want := range cases {
		if got := opcode.ModeSize(mode); got != want {
			t.Fatalf("mode %v: got size %d want %d", mode, got, want)
		}
	}
}
