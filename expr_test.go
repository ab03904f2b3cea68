package symdiff_test

import (
	"testing"

	require "github.com/alecthomas/assert/v2"

	symdiff "github.com/SadykovFK/SymbDiffProject"
)

// nodes collects every node pointer reachable from e.
func nodes[T symdiff.Number](e *symdiff.Expr[T], out map[*symdiff.Expr[T]]bool) map[*symdiff.Expr[T]]bool {
	if out == nil {
		out = map[*symdiff.Expr[T]]bool{}
	}
	if e == nil {
		return out
	}
	out[e] = true
	nodes(e.Left(), out)
	nodes(e.Right(), out)
	return out
}

func assertDisjoint[T symdiff.Number](t *testing.T, a, b *symdiff.Expr[T]) {
	t.Helper()
	seen := nodes(a, nil)
	for n := range nodes(b, nil) {
		if seen[n] {
			t.Fatalf("trees share node %s", n)
		}
	}
}

// ============================================================
// Construction
// ============================================================

func TestConst_String(t *testing.T) {
	require.Equal(t, "5", symdiff.Const(5.0).String())
	require.Equal(t, "-1", symdiff.Const(-1.0).String())
	require.Equal(t, "0.5", symdiff.Const(0.5).String())
	require.Equal(t, "5.8", symdiff.Const(5.8).String())
}

func TestConst_ComplexString(t *testing.T) {
	require.Equal(t, "(2+3i)", symdiff.Const(complex(2, 3)).String())
	require.Equal(t, "(1-1i)", symdiff.Const(complex(1, -1)).String())
}

func TestVar_String(t *testing.T) {
	x := symdiff.Var[float64]("x")
	require.Equal(t, "x", x.String())
	require.Equal(t, symdiff.Variable, x.Kind())
	require.Equal(t, "x", x.Name())
}

func TestVar_EmptyNamePanics(t *testing.T) {
	require.Panics(t, func() { symdiff.Var[float64]("") })
}

func TestBinary_NilOperandPanics(t *testing.T) {
	require.Panics(t, func() { symdiff.AddOf(symdiff.Const(1.0), nil) })
	require.Panics(t, func() { symdiff.SinOf[float64](nil) })
}

func TestCombinators_String(t *testing.T) {
	x := symdiff.Var[float64]("x")
	two := symdiff.Const(2.0)
	cases := []struct {
		e    *symdiff.Expr[float64]
		want string
	}{
		{symdiff.AddOf(symdiff.Const(2.0), symdiff.Const(3.0)), "(2 + 3)"},
		{symdiff.SubOf(x, two), "(x - 2)"},
		{symdiff.MulOf(two, x), "(2 * x)"},
		{symdiff.DivOf(x, two), "(x / 2)"},
		{symdiff.PowOf(x, two), "(x ^ 2)"},
		{symdiff.SinOf(x), "sin(x)"},
		{symdiff.CosOf(x), "cos(x)"},
		{symdiff.LnOf(x), "ln(x)"},
		{symdiff.ExpOf(symdiff.MulOf(two, x)), "exp((2 * x))"},
		{symdiff.MulOf(symdiff.AddOf(symdiff.Const(5.8), x), symdiff.SinOf(x)), "((5.8 + x) * sin(x))"},
	}
	for _, c := range cases {
		require.Equal(t, c.want, c.e.String())
	}
}

func TestCombinators_DoNotShareOperands(t *testing.T) {
	x := symdiff.Var[float64]("x")
	sum := symdiff.AddOf(x, x)
	require.True(t, sum.Left() != x, "left operand must be copied")
	require.True(t, sum.Left() != sum.Right(), "operands must not alias each other")

	prod := symdiff.MulOf(sum, sum)
	assertDisjoint(t, prod, sum)
	assertDisjoint(t, prod.Left(), prod.Right())
}

func TestClone_Deep(t *testing.T) {
	e := symdiff.MulOf(symdiff.AddOf(symdiff.Var[float64]("x"), symdiff.Const(1.0)), symdiff.CosOf(symdiff.Var[float64]("y")))
	c := e.Clone()
	require.Equal(t, e.String(), c.String())
	assertDisjoint(t, e, c)
}

func TestAccessors(t *testing.T) {
	e := symdiff.PowOf(symdiff.Var[float64]("x"), symdiff.Const(3.0))
	require.Equal(t, symdiff.Power, e.Kind())
	require.Equal(t, "x", e.Left().Name())
	require.Equal(t, 3.0, e.Right().Value())

	s := symdiff.SinOf(e)
	require.Equal(t, symdiff.Sin, s.Kind())
	require.Equal(t, "(x ^ 3)", s.Arg().String())
	require.True(t, s.Right() == nil, "unary nodes have no right child")
}

func TestKind_StringAndArity(t *testing.T) {
	require.Equal(t, "Constant", symdiff.Constant.String())
	require.Equal(t, "Exp", symdiff.Exp.String())
	require.Equal(t, 0, symdiff.Variable.Arity())
	require.Equal(t, 1, symdiff.Ln.Arity())
	require.Equal(t, 2, symdiff.Divide.Arity())
}

func TestSize(t *testing.T) {
	require.Equal(t, 1, symdiff.Var[float64]("x").Size())
	require.Equal(t, 6, mustParse(t, "sin(x) * (2 + y)").Size())
}

func TestVariables_SortedUnique(t *testing.T) {
	e, err := symdiff.Parse("y*x + x - sin(b)")
	require.NoError(t, err)
	require.Equal(t, []string{"b", "x", "y"}, e.Variables())
	require.Equal(t, []string{}, symdiff.Const(1.0).Variables())
}
