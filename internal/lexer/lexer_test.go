package lexer_test

import (
	"testing"

	"github.com/xasm65/xasm65/internal/lexer"
	"github.com/xasm65/xasm65/internal/token"
)

func typesOf(toks []token.Token) []token.Type {
	out := make([]token.Type, len(toks))
	for i, t := range toks {
		out[i] = t.Type
	}
	return out
}

func TestLexerNumbers(t *testing.T) {
	l := lexer.New("$1A %1010 42", "t.asm")
	toks := l.TokenizeAll()
	if len(toks) != 4 { // 3 numbers + EOF
		t.Fatalf("expected 4 tokens, got %d", len(toks))
	}
	if toks[0].Number != 0x1A || toks[1].Number != 0b1010 || toks[2].Number != 42 {
		t.Fatalf("unexpected values: %+v", toks[:3])
	}
}

func TestLexerModuloVsBinary(t *testing.T) {
	l := lexer.New("10 % 3", "t.asm")
	toks := l.TokenizeAll()
	got := typesOf(toks)
	want := []token.Type{token.Number, token.Percent, token.Number, token.EOF}
	for i, w := range want {
		if got[i] != w {
			t.Fatalf("token %d: got %s want %s", i, got[i], w)
		}
	}
}

func TestLexerAnonymousLabels(t *testing.T) {
	l := lexer.New("+ ++ - -- +5 -5", "t.asm")
	toks := l.TokenizeAll()
	if toks[0].Type != token.AnonForward || toks[0].Number != 1 {
		t.Fatalf("expected single anon fwd, got %+v", toks[0])
	}
	if toks[1].Type != token.AnonForward || toks[1].Number != 2 {
		t.Fatalf("expected double anon fwd, got %+v", toks[1])
	}
	if toks[2].Type != token.AnonBackward || toks[2].Number != 1 {
		t.Fatalf("expected single anon back, got %+v", toks[2])
	}
	if toks[3].Type != token.AnonBackward || toks[3].Number != 2 {
		t.Fatalf("expected double anon back, got %+v", toks[3])
	}
	if toks[4].Type != token.Plus {
		t.Fatalf("expected + operator before digit, got %+v", toks[4])
	}
	if toks[6].Type != token.Minus {
		t.Fatalf("expected - operator before digit, got %+v", toks[6])
	}
}

func TestLexerMacroCall(t *testing.T) {
	l := lexer.New("+printmsg hello", "t.asm")
	toks := l.TokenizeAll()
	if toks[0].Type != token.MacroCall {
		t.Fatalf("expected macro call, got %+v", toks[0])
	}
}

func TestLexerPlusAsOperatorInExpression(t *testing.T) {
	l := lexer.New("label+1", "t.asm")
	toks := l.TokenizeAll()
	want := []token.Type{token.Identifier, token.Plus, token.Number, token.EOF}
	for i, w := range want {
		if toks[i].Type != w {
			t.Fatalf("token %d: got %s want %s", i, toks[i].Type, w)
		}
	}
}

func TestLexerDirectives(t *testing.T) {
	l := lexer.New("!byte !08 !zone", "t.asm")
	toks := l.TokenizeAll()
	for i := 0; i < 3; i++ {
		if toks[i].Type != token.Directive {
			t.Fatalf("token %d: expected directive, got %+v", i, toks[i])
		}
	}
}

func TestLexerCharEscape(t *testing.T) {
	l := lexer.New(`'\n' 'A' '\\'`, "t.asm")
	toks := l.TokenizeAll()
	if toks[0].Number != 0x0d {
		t.Fatalf("expected PETSCII newline 0x0d, got %#x", toks[0].Number)
	}
	if toks[1].Number != 'A' {
		t.Fatalf("expected 'A', got %#x", toks[1].Number)
	}
	if toks[2].Number != '\\' {
		t.Fatalf("expected backslash, got %#x", toks[2].Number)
	}
}

func TestLexerString(t *testing.T) {
	l := lexer.New(`"hello\nworld"`, "t.asm")
	toks := l.TokenizeAll()
	if string(toks[0].Str) != "hello\x0dworld" {
		t.Fatalf("unexpected decoded string: %q", toks[0].Str)
	}
}

func TestLexerLocalLabel(t *testing.T) {
	l := lexer.New(".loop", "t.asm")
	toks := l.TokenizeAll()
	if toks[0].Type != token.LocalLabel {
		t.Fatalf("expected local label, got %+v", toks[0])
	}
}

func TestLexerPeekDoesNotConsume(t *testing.T) {
	l := lexer.New("LDA #$10", "t.asm")
	p1 := l.Peek()
	p2 := l.Peek()
	if p1.Literal != p2.Literal {
		t.Fatalf("peek is not idempotent: %q vs %q", p1.Literal, p2.Literal)
	}
	n := l.Next()
	if n.Literal != p1.Literal {
		t.Fatalf("next after peek mismatch: %q vs %q", n.Literal, p1.Literal)
	}
}
