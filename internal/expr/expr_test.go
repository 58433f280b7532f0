package expr_test

import (
	"testing"

	"github.com/xasm65/xasm65/internal/expr"
	"github.com/xasm65/xasm65/internal/lexer"
)

type fakeSymbols map[string]int32

func (f fakeSymbols) Lookup(name string) (int32, bool, bool) {
	v, ok := f[name]
	return v, v >= 0 && v <= 0xFF, ok
}

func parse(t *testing.T, src string) *expr.Expr {
	t.Helper()
	l := lexer.New(src, "t.asm")
	p := expr.NewParser(l)
	e := p.Parse()
	if p.Err != nil {
		t.Fatalf("parse error: %v", p.Err)
	}
	return e
}

func evalOK(t *testing.T, src string, syms fakeSymbols) expr.Result {
	t.Helper()
	e := parse(t, src)
	r, err := expr.Eval(e, syms, 0x1000, 2)
	if err != nil {
		t.Fatalf("eval error: %v", err)
	}
	return r
}

func TestPrecedenceAdditiveBeforeShift(t *testing.T) {
	r := evalOK(t, "1 << 2 + 1", nil)
	if r.Value != 8 {
		t.Fatalf("got %d want 8 (1 << (2+1))", r.Value)
	}
}

func TestPrecedenceMultiplicativeBeforeAdditive(t *testing.T) {
	r := evalOK(t, "2 + 3 * 4", nil)
	if r.Value != 14 {
		t.Fatalf("got %d want 14", r.Value)
	}
}

func TestPrecedenceFullChain(t *testing.T) {
	r := evalOK(t, "1 | 2 & 3", nil)
	if r.Value != 3 {
		t.Fatalf("got %d want 3 (1 | (2&3))", r.Value)
	}
}

func TestUnaryNegationAndComplement(t *testing.T) {
	r := evalOK(t, "-5", nil)
	if r.Value != -5 {
		t.Fatalf("got %d want -5", r.Value)
	}
	r = evalOK(t, "~0", nil)
	if r.Value != -1 {
		t.Fatalf("got %d want -1", r.Value)
	}
}

func TestLowHighByte(t *testing.T) {
	r := evalOK(t, "<$1234", nil)
	if r.Value != 0x34 {
		t.Fatalf("low byte: got %#x want 0x34", r.Value)
	}
	r = evalOK(t, ">$1234", nil)
	if r.Value != 0x12 {
		t.Fatalf("high byte: got %#x want 0x12", r.Value)
	}
}

func TestCurrentPC(t *testing.T) {
	r := evalOK(t, "*", nil)
	if r.Value != 0x1000 {
		t.Fatalf("got %#x want 0x1000", r.Value)
	}
}

func TestParenthesized(t *testing.T) {
	r := evalOK(t, "(2 + 3) * 4", nil)
	if r.Value != 20 {
		t.Fatalf("got %d want 20", r.Value)
	}
}

func TestSymbolLookupAndUndefined(t *testing.T) {
	syms := fakeSymbols{"label": 0x0050}
	r := evalOK(t, "label", syms)
	if !r.Defined || r.Value != 0x50 || !r.ZeroPage {
		t.Fatalf("unexpected result: %+v", r)
	}

	r = evalOK(t, "missing", syms)
	if r.Defined {
		t.Fatalf("expected undefined symbol to report Defined=false")
	}
}

func TestZeroPagePropagationThroughArithmetic(t *testing.T) {
	syms := fakeSymbols{"zp": 0x10}
	r := evalOK(t, "zp + 1", syms)
	if !r.ZeroPage || r.Value != 0x11 {
		t.Fatalf("expected zero-page 0x11, got %+v", r)
	}
	r = evalOK(t, "zp + $FF", syms)
	if r.ZeroPage {
		t.Fatalf("expected overflow out of zero page, got %+v", r)
	}
}

func TestDivideByZeroYieldsZero(t *testing.T) {
	r := evalOK(t, "1 / 0", nil)
	if r.Value != 0 || !r.Defined {
		t.Fatalf("expected defined 0, got %+v", r)
	}
}

func TestModuloByZeroYieldsZero(t *testing.T) {
	r := evalOK(t, "1 % 0", nil)
	if r.Value != 0 || !r.Defined {
		t.Fatalf("expected defined 0, got %+v", r)
	}
}

func TestAnonymousForwardEncodesSymbolName(t *testing.T) {
	e := parse(t, "++")
	if e.Kind != expr.Symbol || e.SymbolName != "__anon_fwd_2" {
		t.Fatalf("unexpected anon-forward encoding: %+v", e)
	}
}

func TestAnonymousBackwardAsPrimary(t *testing.T) {
	e := parse(t, "-")
	if e.Kind != expr.Symbol || e.SymbolName != "__anon_back_1" {
		t.Fatalf("unexpected anon-backward encoding: %+v", e)
	}
}

func TestAnonymousBackwardAsAdditiveOperator(t *testing.T) {
	// "label - -" : label minus anonymous-backward-reference, not double negation,
	// mirrors expr.c's parse_additive treating TOK_ANON_BACK as interchangeable
	// with TOK_MINUS at infix position.
	e := parse(t, "label - -")
	if e.Kind != expr.Binary || e.BinaryOp != expr.Sub {
		t.Fatalf("expected binary subtraction at top level, got %+v", e)
	}
	if e.Right.Kind != expr.Symbol || e.Right.SymbolName != "__anon_back_1" {
		t.Fatalf("expected anon-back reference on right, got %+v", e.Right)
	}
}

func TestUnaryMinusBeforeNumberLiteral(t *testing.T) {
	e := parse(t, "-5")
	if e.Kind != expr.Unary || e.UnaryOp != expr.Neg {
		t.Fatalf("expected unary negation, got %+v", e)
	}
	if e.Operand.Kind != expr.Number || e.Operand.NumberValue != 5 {
		t.Fatalf("expected operand 5, got %+v", e.Operand)
	}
}

func TestCloneIsDeepAndNilSafe(t *testing.T) {
	e := parse(t, "1 + 2 * label")
	clone := e.Clone()
	if clone == e || clone.Right == e.Right {
		t.Fatalf("clone aliases the original tree")
	}
	var nilExpr *expr.Expr
	if nilExpr.Clone() != nil {
		t.Fatalf("clone of nil should be nil")
	}
}

func TestHasSymbols(t *testing.T) {
	if !parse(t, "1 + label").HasSymbols() {
		t.Fatalf("expected HasSymbols true")
	}
	if parse(t, "1 + 2 * 3").HasSymbols() {
		t.Fatalf("expected HasSymbols false for pure literal expression")
	}
}
