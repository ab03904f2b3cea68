package symdiff

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// Evaluation errors.
var (
	ErrUnboundVariable = errors.New("unbound variable")
	ErrDivisionByZero  = errors.New("division by zero")
	ErrInvalidDomain   = errors.New("invalid domain")
)

// Parser errors. Every *ParseError unwraps to one of these.
var (
	ErrUnknownCharacter = errors.New("unknown character")
	ErrExpectedToken    = errors.New("expected token")
	ErrUnexpectedToken  = errors.New("unexpected token")
	ErrTrailingTokens   = errors.New("trailing tokens")
)

// ParseError describes a tokenizer or parser failure. Pos is the 1-based
// byte column of the offending input.
type ParseError struct {
	Pos  int
	Kind error     // one of the Err* parser sentinels
	Want TokenKind // set for ErrExpectedToken
	Got  Token
	Msg  string
}

func (e *ParseError) Error() string {
	if e.Msg == "" {
		return fmt.Sprintf("col %d: %v", e.Pos, e.Kind)
	}
	return fmt.Sprintf("col %d: %v: %s", e.Pos, e.Kind, e.Msg)
}

func (e *ParseError) Unwrap() error { return e.Kind }

// Snippet renders src with a caret under the failing column:
//
//	sin(x
//	     ^
func (e *ParseError) Snippet(src string) string {
	col := e.Pos
	if col < 1 {
		col = 1
	}
	if col > len(src)+1 {
		col = len(src) + 1
	}
	var sb strings.Builder
	sb.WriteString(src)
	sb.WriteByte('\n')
	sb.WriteString(strings.Repeat(" ", col-1))
	sb.WriteByte('^')
	return sb.String()
}
