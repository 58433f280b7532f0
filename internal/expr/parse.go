package expr

import (
	"fmt"

	"github.com/xasm65/xasm65/internal/token"
)

// TokenSource is the minimal lexer surface the expression parser needs.
// internal/lexer.Lexer satisfies it structurally.
type TokenSource interface {
	Next() token.Token
	Peek() token.Token
}

// Parser is a recursive-descent parser over a TokenSource, implementing the
// precedence chain from spec.md section 4.C: or -> xor -> and -> comparison
// -> shift -> additive -> multiplicative -> unary -> primary. Grounded
// directly on original_source/src/expr.c's parse_or..parse_primary chain.
type Parser struct {
	src     TokenSource
	current token.Token
	Err     error
}

// NewParser constructs a Parser and loads the first token.
func NewParser(src TokenSource) *Parser {
	p := &Parser{src: src}
	p.current = p.src.Next()
	return p
}

// NewParserAt constructs a Parser that starts from an already-read token,
// used when a caller (e.g. the statement parser) has peeked ahead.
func NewParserAt(src TokenSource, current token.Token) *Parser {
	return &Parser{src: src, current: current}
}

// Current exposes the parser's lookahead token, e.g. so a caller can decide
// whether an expression follows at all.
func (p *Parser) Current() token.Token { return p.current }

func (p *Parser) advance() { p.current = p.src.Next() }

func (p *Parser) check(t token.Type) bool { return p.current.Type == t }

// isPrimaryStart reports whether t could begin a new expression primary,
// used to disambiguate a leading anonymous-backward token from unary minus.
func isPrimaryStart(t token.Type) bool {
	switch t {
	case token.Number, token.Identifier, token.LocalLabel, token.Char, token.Star, token.LParen:
		return true
	}
	return false
}

// Parse parses one expression starting at the lowest-precedence level (or).
func (p *Parser) Parse() *Expr {
	return p.parseOr()
}

func (p *Parser) parseOr() *Expr {
	left := p.parseXor()
	for left != nil && p.check(token.Pipe) {
		pos := p.current.Pos
		p.advance()
		right := p.parseXor()
		if right == nil {
			return nil
		}
		left = NewBinary(pos, Or, left, right)
	}
	return left
}

func (p *Parser) parseXor() *Expr {
	left := p.parseAnd()
	for left != nil && p.check(token.Caret) {
		pos := p.current.Pos
		p.advance()
		right := p.parseAnd()
		if right == nil {
			return nil
		}
		left = NewBinary(pos, Xor, left, right)
	}
	return left
}

func (p *Parser) parseAnd() *Expr {
	left := p.parseComparison()
	for left != nil && p.check(token.Amp) {
		pos := p.current.Pos
		p.advance()
		right := p.parseComparison()
		if right == nil {
			return nil
		}
		left = NewBinary(pos, And, left, right)
	}
	return left
}

func (p *Parser) parseComparison() *Expr {
	left := p.parseShift()
	for left != nil {
		var op BinaryOp
		switch p.current.Type {
		case token.Eq:
			op = Eq
		case token.Ne:
			op = Ne
		case token.Le:
			op = Le
		case token.Ge:
			op = Ge
		case token.Lt:
			op = Lt
		case token.Gt:
			op = Gt
		default:
			return left
		}
		pos := p.current.Pos
		p.advance()
		right := p.parseShift()
		if right == nil {
			return nil
		}
		left = NewBinary(pos, op, left, right)
	}
	return left
}

func (p *Parser) parseShift() *Expr {
	left := p.parseAdditive()
	for left != nil {
		var op BinaryOp
		switch p.current.Type {
		case token.Lshift:
			op = Shl
		case token.Rshift:
			op = Shr
		default:
			return left
		}
		pos := p.current.Pos
		p.advance()
		right := p.parseAdditive()
		if right == nil {
			return nil
		}
		left = NewBinary(pos, op, left, right)
	}
	return left
}

// parseAdditive treats TOK_PLUS/TOK_ANON_FWD interchangeably as addition and
// TOK_MINUS/TOK_ANON_BACK interchangeably as subtraction at infix position,
// matching expr.c's parse_additive.
func (p *Parser) parseAdditive() *Expr {
	left := p.parseMultiplicative()
	for left != nil {
		var op BinaryOp
		switch p.current.Type {
		case token.Plus, token.AnonForward:
			op = Add
		case token.Minus, token.AnonBackward:
			op = Sub
		default:
			return left
		}
		pos := p.current.Pos
		p.advance()
		right := p.parseMultiplicative()
		if right == nil {
			return nil
		}
		left = NewBinary(pos, op, left, right)
	}
	return left
}

func (p *Parser) parseMultiplicative() *Expr {
	left := p.parseUnary()
	for left != nil {
		var op BinaryOp
		switch p.current.Type {
		case token.Star:
			op = Mul
		case token.Slash:
			op = Div
		case token.Percent:
			op = Mod
		default:
			return left
		}
		pos := p.current.Pos
		p.advance()
		right := p.parseUnary()
		if right == nil {
			return nil
		}
		left = NewBinary(pos, op, left, right)
	}
	return left
}

// parseUnary is right-associative and implements the anonymous-backward vs.
// unary-minus disambiguation: TOK_ANON_BACK is unary negation only when
// immediately followed by another expression-start token, distinguishing
// "bne -" (anonymous label) from "-5" (negative literal).
func (p *Parser) parseUnary() *Expr {
	var op UnaryOp
	isUnary := false
	pos := p.current.Pos

	switch p.current.Type {
	case token.Minus:
		op, isUnary = Neg, true
	case token.AnonBackward:
		if isPrimaryStart(p.src.Peek().Type) {
			op, isUnary = Neg, true
		}
	case token.Tilde:
		op, isUnary = Complement, true
	case token.Bang:
		op, isUnary = Not, true
	case token.Lt:
		op, isUnary = LowByte, true
	case token.Gt:
		op, isUnary = HighByte, true
	}

	if isUnary {
		p.advance()
		operand := p.parseUnary()
		if operand == nil {
			return nil
		}
		return NewUnary(pos, op, operand)
	}

	return p.parsePrimary()
}

func (p *Parser) parsePrimary() *Expr {
	pos := p.current.Pos

	switch p.current.Type {
	case token.Number, token.Char:
		v := p.current.Number
		p.advance()
		return NewNumber(pos, v)

	case token.Identifier, token.LocalLabel:
		name := p.current.Literal
		p.advance()
		return NewSymbol(pos, name)

	case token.Star:
		p.advance()
		return NewCurrent(pos)

	case token.LParen:
		p.advance()
		inner := p.parseOr()
		if inner == nil {
			return nil
		}
		if !p.check(token.RParen) {
			p.Err = fmt.Errorf("%s: expected ')'", pos)
			return nil
		}
		p.advance()
		return inner

	case token.AnonForward:
		name := fmt.Sprintf("__anon_fwd_%d", p.current.Number)
		p.advance()
		return NewSymbol(pos, name)

	case token.AnonBackward:
		name := fmt.Sprintf("__anon_back_%d", p.current.Number)
		p.advance()
		return NewSymbol(pos, name)
	}

	p.Err = fmt.Errorf("%s: expected expression, got %s", pos, p.current.Type)
	return nil
}
