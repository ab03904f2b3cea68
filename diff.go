package symdiff

import "fmt"

// Derivative returns d/d(name) of e.
//
// The result is exact but not simplified; it keeps every ×1, +0 and
// duplicated subtree the rules produce. Subtrees of e that appear in the
// result are copied, so e and the result never share nodes.
func (e *Expr[T]) Derivative(name string) *Expr[T] {
	switch e.kind {
	case Constant:
		return Const(T(0))
	case Variable:
		if e.name == name {
			return Const(T(1))
		}
		return Const(T(0))
	case Add:
		return node(Add, e.left.Derivative(name), e.right.Derivative(name))
	case Subtract:
		return node(Subtract, e.left.Derivative(name), e.right.Derivative(name))
	case Multiply:
		// (l*r)' = l'*r + l*r'
		l, r := e.left, e.right
		return node(Add,
			node(Multiply, l.Derivative(name), r.Clone()),
			node(Multiply, l.Clone(), r.Derivative(name)))
	case Divide:
		// (l/r)' = (l'*r - l*r') / (r*r)
		l, r := e.left, e.right
		num := node(Subtract,
			node(Multiply, l.Derivative(name), r.Clone()),
			node(Multiply, l.Clone(), r.Derivative(name)))
		return node(Divide, num, node(Multiply, r.Clone(), r.Clone()))
	case Power:
		return e.powerDerivative(name)
	case Sin:
		return node(Multiply, node(Cos, e.left.Clone(), nil), e.left.Derivative(name))
	case Cos:
		return node(Multiply, Const(T(-1)),
			node(Multiply, node(Sin, e.left.Clone(), nil), e.left.Derivative(name)))
	case Ln:
		return node(Divide, e.left.Derivative(name), e.left.Clone())
	case Exp:
		return node(Multiply, node(Exp, e.left.Clone(), nil), e.left.Derivative(name))
	}
	panic(fmt.Sprintf("symdiff: unhandled kind in Derivative: %s", e.kind))
}

func (e *Expr[T]) powerDerivative(name string) *Expr[T] {
	b, x := e.left, e.right
	if x.kind == Constant {
		// (b^c)' = c * b^(c-1) * b'
		c := x.value
		return node(Multiply,
			node(Multiply, Const(c), node(Power, b.Clone(), Const(c-1))),
			b.Derivative(name))
	}
	// (b^x)' = b^x * (x'*ln(b) + x*(b'/b))
	return node(Multiply,
		e.Clone(),
		node(Add,
			node(Multiply, x.Derivative(name), node(Ln, b.Clone(), nil)),
			node(Multiply, x.Clone(), node(Divide, b.Derivative(name), b.Clone()))))
}

// DerivativeSize returns Derivative(name).Size() without building the
// derivative. It runs in time linear in the size of e.
func (e *Expr[T]) DerivativeSize(name string) int {
	_, d := e.sizes(name)
	return d
}

// sizes returns the node count of e and of its derivative by name.
func (e *Expr[T]) sizes(name string) (s, d int) {
	switch e.kind {
	case Constant, Variable:
		return 1, 1
	case Sin, Cos, Ln, Exp:
		sa, da := e.left.sizes(name)
		s = 1 + sa
		switch e.kind {
		case Sin, Exp:
			return s, 2 + sa + da
		case Cos:
			return s, 4 + sa + da
		default:
			return s, 1 + sa + da
		}
	}
	sl, dl := e.left.sizes(name)
	sr, dr := e.right.sizes(name)
	s = 1 + sl + sr
	switch e.kind {
	case Add, Subtract:
		return s, 1 + dl + dr
	case Multiply:
		return s, 3 + dl + dr + sl + sr
	case Divide:
		return s, 5 + dl + dr + sl + 3*sr
	case Power:
		if e.right.kind == Constant {
			return s, 5 + sl + dl
		}
		return s, 6 + s + dl + dr + 2*sl + sr
	}
	panic(fmt.Sprintf("symdiff: unhandled kind in DerivativeSize: %s", e.kind))
}

// DerivativeN applies Derivative n times. The tree grows quickly with n
// because nothing is simplified between steps.
func (e *Expr[T]) DerivativeN(name string, n int) *Expr[T] {
	if n < 0 {
		panic(fmt.Sprintf("symdiff: negative derivative order %d", n))
	}
	d := e.Clone()
	for i := 0; i < n; i++ {
		d = d.Derivative(name)
	}
	return d
}
