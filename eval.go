package symdiff

import (
	"fmt"

	"github.com/pkg/errors"
)

// Evaluate computes the value of e with variables bound by env.
//
// A variable missing from env yields ErrUnboundVariable and a zero
// denominator yields ErrDivisionByZero. ErrInvalidDomain is returned for ln
// of a real that is not positive, NaN included, or of exactly zero when T is
// complex128. Other complex logarithms use the principal branch, so a complex
// NaN argument propagates. NaN produced elsewhere, e.g. by Power, is a value.
func (e *Expr[T]) Evaluate(env map[string]T) (T, error) {
	var zero T
	switch e.kind {
	case Constant:
		return e.value, nil
	case Variable:
		v, ok := env[e.name]
		if !ok {
			return zero, errors.Wrapf(ErrUnboundVariable, "variable %q", e.name)
		}
		return v, nil
	case Add, Subtract, Multiply, Divide, Power:
		l, err := e.left.Evaluate(env)
		if err != nil {
			return zero, err
		}
		r, err := e.right.Evaluate(env)
		if err != nil {
			return zero, err
		}
		switch e.kind {
		case Add:
			return l + r, nil
		case Subtract:
			return l - r, nil
		case Multiply:
			return l * r, nil
		case Divide:
			if r == zero {
				return zero, errors.Wrapf(ErrDivisionByZero, "%s", e)
			}
			return l / r, nil
		default:
			return pow(l, r), nil
		}
	case Sin, Cos, Ln, Exp:
		a, err := e.left.Evaluate(env)
		if err != nil {
			return zero, err
		}
		switch e.kind {
		case Sin:
			return sin(a), nil
		case Cos:
			return cos(a), nil
		case Ln:
			if !logDomainOK(a) {
				return zero, errors.Wrapf(ErrInvalidDomain, "ln(%s)", formatValue(a))
			}
			return log(a), nil
		default:
			return exp(a), nil
		}
	}
	panic(fmt.Sprintf("symdiff: unhandled kind in Evaluate: %s", e.kind))
}
