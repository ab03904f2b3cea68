package symdiff

// Substitute returns a copy of e with every occurrence of the variable name
// replaced by the constant value. Nothing is folded: 2*x with x=3 becomes
// (2 * 3), not 6.
func (e *Expr[T]) Substitute(name string, value T) *Expr[T] {
	switch e.kind {
	case Variable:
		if e.name == name {
			return Const(value)
		}
		return e.Clone()
	case Constant:
		return e.Clone()
	}
	var r *Expr[T]
	if e.right != nil {
		r = e.right.Substitute(name, value)
	}
	return node(e.kind, e.left.Substitute(name, value), r)
}
