package symdiff

import (
	"fmt"
	"strings"
)

var opSymbols = map[Kind]string{
	Add:      "+",
	Subtract: "-",
	Multiply: "*",
	Divide:   "/",
	Power:    "^",
}

var funcNames = map[Kind]string{
	Sin: "sin",
	Cos: "cos",
	Ln:  "ln",
	Exp: "exp",
}

// String returns e in fully parenthesized infix form, e.g. "((2 * x) + sin(y))".
//
// Constants never use exponent notation, so a real tree whose constants are
// finite and non-negative prints as text Parse accepts. Negative, NaN,
// infinite and complex constants have no literal form in the grammar.
func (e *Expr[T]) String() string {
	var sb strings.Builder
	e.write(&sb)
	return sb.String()
}

func (e *Expr[T]) write(sb *strings.Builder) {
	switch e.kind {
	case Constant:
		sb.WriteString(formatValue(e.value))
	case Variable:
		sb.WriteString(e.name)
	case Add, Subtract, Multiply, Divide, Power:
		sb.WriteByte('(')
		e.left.write(sb)
		sb.WriteByte(' ')
		sb.WriteString(opSymbols[e.kind])
		sb.WriteByte(' ')
		e.right.write(sb)
		sb.WriteByte(')')
	case Sin, Cos, Ln, Exp:
		sb.WriteString(funcNames[e.kind])
		sb.WriteByte('(')
		e.left.write(sb)
		sb.WriteByte(')')
	default:
		panic(fmt.Sprintf("symdiff: unhandled kind in String: %s", e.kind))
	}
}
