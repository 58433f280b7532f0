// Package token defines the lexical token types produced by internal/lexer.
// Grounded on parser.Token/parser.TokenType in the teacher
// (lookbusy1344-arm_emulator/parser/lexer.go) and generalized to the 6502
// source grammar and the original_source/include/lexer.h TokenType enum.
package token

import "github.com/xasm65/xasm65/internal/diag"

// Type identifies the lexical class of a Token.
type Type int

const (
	EOF Type = iota
	EOL
	Number
	String
	Char
	Identifier
	LocalLabel
	AnonForward  // one or more '+' used as a label reference
	AnonBackward // one or more '-' used as a label reference
	Directive    // "!name" or numeric forms "!08" "!16" "!24" "!32"
	MacroCall    // "+name" at line start

	Plus
	Minus
	Star
	Slash
	Percent
	Amp
	Pipe
	Caret
	Tilde
	Bang
	Lt
	Gt
	Eq
	Ne
	Le
	Ge
	Lshift
	Rshift
	LParen
	RParen
	LBrace
	RBrace
	LBracket
	RBracket
	Comma
	Colon
	Hash

	Error
)

var names = map[Type]string{
	EOF: "EOF", EOL: "EOL", Number: "NUMBER", String: "STRING", Char: "CHAR",
	Identifier: "IDENTIFIER", LocalLabel: "LOCAL_LABEL", AnonForward: "ANON_FWD",
	AnonBackward: "ANON_BACK", Directive: "DIRECTIVE", MacroCall: "MACRO_CALL",
	Plus: "PLUS", Minus: "MINUS", Star: "STAR", Slash: "SLASH", Percent: "PERCENT",
	Amp: "AMP", Pipe: "PIPE", Caret: "CARET", Tilde: "TILDE", Bang: "BANG",
	Lt: "LT", Gt: "GT", Eq: "EQ", Ne: "NE", Le: "LE", Ge: "GE",
	Lshift: "LSHIFT", Rshift: "RSHIFT", LParen: "LPAREN", RParen: "RPAREN",
	LBrace: "LBRACE", RBrace: "RBRACE", LBracket: "LBRACKET", RBracket: "RBRACKET",
	Comma: "COMMA", Colon: "COLON", Hash: "HASH", Error: "ERROR",
}

func (t Type) String() string {
	if s, ok := names[t]; ok {
		return s
	}
	return "UNKNOWN"
}

// Token is a single lexical unit. Tokens are short-lived and do not outlive
// parsing of the line that produced them.
type Token struct {
	Type    Type
	Literal string // raw source text
	Pos     diag.Position

	Number int32  // for Number, Char, AnonForward (run length), AnonBackward (run length)
	Str    []byte // decoded bytes, for String
}
