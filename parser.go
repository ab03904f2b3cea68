package symdiff

import (
	"fmt"
	"strconv"

	"github.com/pkg/errors"
)

// Parse builds a real-valued tree from infix text.
//
// Grammar, lowest precedence first:
//
//	expr    := term (('+' | '-') term)*
//	term    := factor (('*' | '/') factor)*
//	factor  := primary ('^' primary)*
//	primary := number | variable | func '(' expr ')' | '(' expr ')'
//
// Every level is left-associative, '^' included: "2^3^2" is (2^3)^2 = 64.
func Parse(input string) (*Expr[float64], error) {
	tokens, err := Tokenize(input)
	if err != nil {
		return nil, err
	}
	p := &parser{tokens: tokens}
	e, err := p.expr()
	if err != nil {
		return nil, err
	}
	if t := p.peek(); t.Kind != TokenEnd {
		return nil, &ParseError{
			Pos:  t.Pos,
			Kind: ErrTrailingTokens,
			Got:  t,
			Msg:  fmt.Sprintf("%s after complete expression", t),
		}
	}
	return e, nil
}

type parser struct {
	tokens []Token
	pos    int
}

// peek never runs past the trailing TokenEnd.
func (p *parser) peek() Token { return p.tokens[p.pos] }

func (p *parser) next() Token {
	t := p.tokens[p.pos]
	if t.Kind != TokenEnd {
		p.pos++
	}
	return t
}

func (p *parser) expect(kind TokenKind, context string) error {
	t := p.peek()
	if t.Kind != kind {
		return &ParseError{
			Pos:  t.Pos,
			Kind: ErrExpectedToken,
			Want: kind,
			Got:  t,
			Msg:  fmt.Sprintf("%s %s, got %s", kind, context, t),
		}
	}
	p.next()
	return nil
}

func (p *parser) expr() (*Expr[float64], error) {
	left, err := p.term()
	if err != nil {
		return nil, err
	}
	for {
		var k Kind
		switch p.peek().Kind {
		case TokenPlus:
			k = Add
		case TokenMinus:
			k = Subtract
		default:
			return left, nil
		}
		p.next()
		right, err := p.term()
		if err != nil {
			return nil, err
		}
		left = node(k, left, right)
	}
}

func (p *parser) term() (*Expr[float64], error) {
	left, err := p.factor()
	if err != nil {
		return nil, err
	}
	for {
		var k Kind
		switch p.peek().Kind {
		case TokenMul:
			k = Multiply
		case TokenDiv:
			k = Divide
		default:
			return left, nil
		}
		p.next()
		right, err := p.factor()
		if err != nil {
			return nil, err
		}
		left = node(k, left, right)
	}
}

func (p *parser) factor() (*Expr[float64], error) {
	left, err := p.primary()
	if err != nil {
		return nil, err
	}
	for p.peek().Kind == TokenPow {
		p.next()
		right, err := p.primary()
		if err != nil {
			return nil, err
		}
		left = node(Power, left, right)
	}
	return left, nil
}

var funcKinds = map[TokenKind]Kind{
	TokenSin: Sin,
	TokenCos: Cos,
	TokenExp: Exp,
	TokenLn:  Ln,
}

func (p *parser) primary() (*Expr[float64], error) {
	t := p.next()
	switch t.Kind {
	case TokenNumber:
		v, err := strconv.ParseFloat(t.Text, 64)
		if errors.Is(err, strconv.ErrRange) {
			return nil, &ParseError{
				Pos:  t.Pos,
				Kind: ErrUnexpectedToken,
				Got:  t,
				Msg:  fmt.Sprintf("number %s out of float64 range", t.Text),
			}
		}
		if err != nil {
			return nil, &ParseError{
				Pos:  t.Pos,
				Kind: ErrUnexpectedToken,
				Got:  t,
				Msg:  fmt.Sprintf("malformed number %q", t.Text),
			}
		}
		return Const(v), nil
	case TokenVariable:
		return Var[float64](t.Text), nil
	case TokenSin, TokenCos, TokenExp, TokenLn:
		if err := p.expect(TokenLParen, "after "+t.Text); err != nil {
			return nil, err
		}
		arg, err := p.expr()
		if err != nil {
			return nil, err
		}
		if err := p.expect(TokenRParen, "after function argument"); err != nil {
			return nil, err
		}
		return node(funcKinds[t.Kind], arg, nil), nil
	case TokenLParen:
		e, err := p.expr()
		if err != nil {
			return nil, err
		}
		if err := p.expect(TokenRParen, "to close '('"); err != nil {
			return nil, err
		}
		return e, nil
	}
	return nil, &ParseError{
		Pos:  t.Pos,
		Kind: ErrUnexpectedToken,
		Got:  t,
		Msg:  fmt.Sprintf("%s cannot start an operand", t),
	}
}
