package symdiff

import (
	"math"
	"math/cmplx"
	"strconv"

	"github.com/pkg/errors"
)

// The helpers below dispatch on the concrete numeric type. Number has exactly
// two members, so every switch is exhaustive.

func pow[T Number](a, b T) T {
	switch x := any(a).(type) {
	case float64:
		return any(math.Pow(x, any(b).(float64))).(T)
	case complex128:
		return any(cmplx.Pow(x, any(b).(complex128))).(T)
	}
	panic("unreachable")
}

func sin[T Number](a T) T {
	switch x := any(a).(type) {
	case float64:
		return any(math.Sin(x)).(T)
	case complex128:
		return any(cmplx.Sin(x)).(T)
	}
	panic("unreachable")
}

func cos[T Number](a T) T {
	switch x := any(a).(type) {
	case float64:
		return any(math.Cos(x)).(T)
	case complex128:
		return any(cmplx.Cos(x)).(T)
	}
	panic("unreachable")
}

func exp[T Number](a T) T {
	switch x := any(a).(type) {
	case float64:
		return any(math.Exp(x)).(T)
	case complex128:
		return any(cmplx.Exp(x)).(T)
	}
	panic("unreachable")
}

// logDomainOK reports whether ln(a) is defined. Reals must be positive, which
// rejects NaN; complex values only exclude zero.
func logDomainOK[T Number](a T) bool {
	switch x := any(a).(type) {
	case float64:
		return x > 0
	case complex128:
		return x != 0
	}
	panic("unreachable")
}

func log[T Number](a T) T {
	switch x := any(a).(type) {
	case float64:
		return any(math.Log(x)).(T)
	case complex128:
		return any(cmplx.Log(x)).(T)
	}
	panic("unreachable")
}

// formatValue renders v in the shortest decimal form that round-trips,
// without an exponent, so non-negative finite reals read back through Parse.
func formatValue[T Number](v T) string {
	switch x := any(v).(type) {
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case complex128:
		return strconv.FormatComplex(x, 'f', -1, 128)
	}
	panic("unreachable")
}

// parseValue is the inverse of formatValue.
func parseValue[T Number](s string) (T, error) {
	var zero T
	switch any(zero).(type) {
	case float64:
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return zero, errors.Wrapf(err, "parse real %q", s)
		}
		return any(f).(T), nil
	case complex128:
		c, err := strconv.ParseComplex(s, 128)
		if err != nil {
			return zero, errors.Wrapf(err, "parse complex %q", s)
		}
		return any(c).(T), nil
	}
	panic("unreachable")
}
