// Package symdiff provides a small symbolic differentiation core for Go.
//
// Design goals:
//   - Expression trees over float64 or complex128, chosen at construction time
//   - Immutable trees: every operation returns a freshly built tree
//   - Exact rule-based derivatives, deliberately left unsimplified
//   - Deterministic, locale-independent text output
//   - A recursive-descent parser for infix notation
package symdiff

import (
	"fmt"
	"sort"
)

// ============================================================
// Numeric types and node kinds
// ============================================================

// Number is the set of numeric types a tree may carry.
type Number interface {
	float64 | complex128
}

// Kind tags an expression node.
type Kind uint8

const (
	Constant Kind = iota
	Variable
	Add
	Subtract
	Multiply
	Divide
	Power
	Sin
	Cos
	Ln
	Exp
)

var kindNames = [...]string{
	Constant: "Constant",
	Variable: "Variable",
	Add:      "Add",
	Subtract: "Subtract",
	Multiply: "Multiply",
	Divide:   "Divide",
	Power:    "Power",
	Sin:      "Sin",
	Cos:      "Cos",
	Ln:       "Ln",
	Exp:      "Exp",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// Arity returns the number of children a node of kind k owns.
func (k Kind) Arity() int {
	switch k {
	case Constant, Variable:
		return 0
	case Sin, Cos, Ln, Exp:
		return 1
	case Add, Subtract, Multiply, Divide, Power:
		return 2
	}
	panic(fmt.Sprintf("symdiff: unknown kind %d", uint8(k)))
}

// ============================================================
// Expr: immutable expression tree
// ============================================================

// Expr is a node of an expression tree. Unary kinds keep their argument in
// left. The zero value is the constant 0.
type Expr[T Number] struct {
	kind  Kind
	value T
	name  string
	left  *Expr[T]
	right *Expr[T]
}

// Const returns a constant leaf.
func Const[T Number](v T) *Expr[T] { return &Expr[T]{kind: Constant, value: v} }

// Var returns a variable leaf. The name must be non-empty.
func Var[T Number](name string) *Expr[T] {
	if name == "" {
		panic("symdiff: empty variable name")
	}
	return &Expr[T]{kind: Variable, name: name}
}

func AddOf[T Number](l, r *Expr[T]) *Expr[T] { return binaryOf(Add, l, r) }
func SubOf[T Number](l, r *Expr[T]) *Expr[T] { return binaryOf(Subtract, l, r) }
func MulOf[T Number](l, r *Expr[T]) *Expr[T] { return binaryOf(Multiply, l, r) }
func DivOf[T Number](l, r *Expr[T]) *Expr[T] { return binaryOf(Divide, l, r) }
func PowOf[T Number](b, e *Expr[T]) *Expr[T] { return binaryOf(Power, b, e) }

func SinOf[T Number](arg *Expr[T]) *Expr[T] { return unaryOf(Sin, arg) }
func CosOf[T Number](arg *Expr[T]) *Expr[T] { return unaryOf(Cos, arg) }
func LnOf[T Number](arg *Expr[T]) *Expr[T]  { return unaryOf(Ln, arg) }
func ExpOf[T Number](arg *Expr[T]) *Expr[T] { return unaryOf(Exp, arg) }

// binaryOf and unaryOf copy their operands so the result never shares
// structure with the caller's trees.
func binaryOf[T Number](k Kind, l, r *Expr[T]) *Expr[T] {
	if l == nil || r == nil {
		panic(fmt.Sprintf("symdiff: %s needs two operands", k))
	}
	return node(k, l.Clone(), r.Clone())
}

func unaryOf[T Number](k Kind, arg *Expr[T]) *Expr[T] {
	if arg == nil {
		panic(fmt.Sprintf("symdiff: %s needs an argument", k))
	}
	return node(k, arg.Clone(), nil)
}

// node takes ownership of l and r without copying. Callers inside the
// package hand it freshly built subtrees only.
func node[T Number](k Kind, l, r *Expr[T]) *Expr[T] {
	return &Expr[T]{kind: k, left: l, right: r}
}

func (e *Expr[T]) Kind() Kind { return e.kind }

// Value returns the payload of a Constant node and the zero value otherwise.
func (e *Expr[T]) Value() T { return e.value }

// Name returns the payload of a Variable node and "" otherwise.
func (e *Expr[T]) Name() string { return e.name }

// Left, Right and Arg expose children for inspection. They must not be
// modified.
func (e *Expr[T]) Left() *Expr[T]  { return e.left }
func (e *Expr[T]) Right() *Expr[T] { return e.right }
func (e *Expr[T]) Arg() *Expr[T]   { return e.left }

// Clone returns a deep copy of e.
func (e *Expr[T]) Clone() *Expr[T] {
	if e == nil {
		return nil
	}
	c := *e
	c.left = e.left.Clone()
	c.right = e.right.Clone()
	return &c
}

// Variables returns the sorted set of variable names used in e.
func (e *Expr[T]) Variables() []string {
	seen := map[string]struct{}{}
	e.collectVariables(seen)
	names := make([]string, 0, len(seen))
	for n := range seen {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

func (e *Expr[T]) collectVariables(out map[string]struct{}) {
	if e == nil {
		return
	}
	if e.kind == Variable {
		out[e.name] = struct{}{}
		return
	}
	e.left.collectVariables(out)
	e.right.collectVariables(out)
}

// Size returns the number of nodes in e.
func (e *Expr[T]) Size() int {
	if e == nil {
		return 0
	}
	return 1 + e.left.Size() + e.right.Size()
}
