package symdiff

import "fmt"

// TokenKind identifies a lexical token.
type TokenKind int

const (
	TokenEnd TokenKind = iota
	TokenNumber
	TokenVariable
	TokenPlus
	TokenMinus
	TokenMul
	TokenDiv
	TokenPow
	TokenLParen
	TokenRParen
	TokenSin
	TokenCos
	TokenExp
	TokenLn
)

var tokenNames = [...]string{
	TokenEnd:      "end of input",
	TokenNumber:   "number",
	TokenVariable: "variable",
	TokenPlus:     "'+'",
	TokenMinus:    "'-'",
	TokenMul:      "'*'",
	TokenDiv:      "'/'",
	TokenPow:      "'^'",
	TokenLParen:   "'('",
	TokenRParen:   "')'",
	TokenSin:      "'sin'",
	TokenCos:      "'cos'",
	TokenExp:      "'exp'",
	TokenLn:       "'ln'",
}

func (k TokenKind) String() string {
	if k >= 0 && int(k) < len(tokenNames) {
		return tokenNames[k]
	}
	return fmt.Sprintf("TokenKind(%d)", int(k))
}

// Token is a lexeme of the infix grammar. Pos is its 1-based byte column.
type Token struct {
	Kind TokenKind
	Text string
	Pos  int
}

func (t Token) String() string {
	switch t.Kind {
	case TokenNumber, TokenVariable:
		return fmt.Sprintf("%s %q", t.Kind, t.Text)
	}
	return t.Kind.String()
}

var reserved = map[string]TokenKind{
	"sin": TokenSin,
	"cos": TokenCos,
	"exp": TokenExp,
	"ln":  TokenLn,
}

var punct = map[byte]TokenKind{
	'+': TokenPlus,
	'-': TokenMinus,
	'*': TokenMul,
	'/': TokenDiv,
	'^': TokenPow,
	'(': TokenLParen,
	')': TokenRParen,
}

func isDigit(c byte) bool  { return '0' <= c && c <= '9' }
func isLetter(c byte) bool { return 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z' }
func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\v' || c == '\f'
}

// Tokenize splits input into tokens and appends a TokenEnd. A number is a
// run of digits holding at most one '.'; there is no sign or exponent.
func Tokenize(input string) ([]Token, error) {
	var tokens []Token
	i := 0
	for i < len(input) {
		c := input[i]
		switch {
		case isSpace(c):
			i++
		case isDigit(c) || c == '.':
			start := i
			dot := false
			for i < len(input) && (isDigit(input[i]) || input[i] == '.' && !dot) {
				if input[i] == '.' {
					dot = true
				}
				i++
			}
			tokens = append(tokens, Token{Kind: TokenNumber, Text: input[start:i], Pos: start + 1})
		case isLetter(c):
			start := i
			for i < len(input) && isLetter(input[i]) {
				i++
			}
			word := input[start:i]
			kind, ok := reserved[word]
			if !ok {
				kind = TokenVariable
			}
			tokens = append(tokens, Token{Kind: kind, Text: word, Pos: start + 1})
		default:
			kind, ok := punct[c]
			if !ok {
				return nil, &ParseError{
					Pos:  i + 1,
					Kind: ErrUnknownCharacter,
					Msg:  fmt.Sprintf("%q", c),
				}
			}
			tokens = append(tokens, Token{Kind: kind, Text: string(c), Pos: i + 1})
			i++
		}
	}
	tokens = append(tokens, Token{Kind: TokenEnd, Pos: len(input) + 1})
	return tokens, nil
}
