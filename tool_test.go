package symdiff_test

import (
	"encoding/json"
	"strings"
	"testing"

	require "github.com/alecthomas/assert/v2"

	symdiff "github.com/SadykovFK/SymbDiffProject"
)

func exprObject(t *testing.T, e *symdiff.Expr[float64]) map[string]interface{} {
	t.Helper()
	j, err := symdiff.ToJSON(e)
	require.NoError(t, err)
	var m map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(j), &m))
	return m
}

func call(tool string, params map[string]interface{}) symdiff.ToolResponse {
	return symdiff.HandleToolCall(symdiff.ToolRequest{Tool: tool, Params: params})
}

func TestHandleToolCall_Parse(t *testing.T) {
	resp := call("parse", map[string]interface{}{"expr": "sin(x)*  (2+y) ^3"})
	require.Equal(t, "", resp.Error)
	require.Equal(t, "(sin(x) * ((2 + y) ^ 3))", resp.String)

	b, err := json.Marshal(resp)
	require.NoError(t, err)
	require.Contains(t, string(b), `"result":{"type":"multiply"`)
}

func TestHandleToolCall_ParseError(t *testing.T) {
	resp := call("parse", map[string]interface{}{"expr": "sin(x"})
	require.Equal(t, "col 6: expected token: ')' after function argument, got end of input", resp.Error)
}

func TestHandleToolCall_ToStringFromObject(t *testing.T) {
	obj := exprObject(t, symdiff.DivOf(symdiff.Var[float64]("a"), symdiff.Const(4.0)))
	resp := call("to_string", map[string]interface{}{"expr": obj})
	require.Equal(t, "", resp.Error)
	require.Equal(t, "(a / 4)", resp.String)
}

func TestHandleToolCall_Evaluate(t *testing.T) {
	resp := call("evaluate", map[string]interface{}{
		"expr": "x*y + 1",
		"vars": map[string]interface{}{"x": 2.0, "y": 3.5},
	})
	require.Equal(t, "", resp.Error)
	require.Equal(t, interface{}(8.0), resp.Result)
	require.Equal(t, "8", resp.String)
}

func TestHandleToolCall_EvaluateErrors(t *testing.T) {
	resp := call("evaluate", map[string]interface{}{"expr": "x + 1"})
	require.Equal(t, `variable "x": unbound variable`, resp.Error)

	resp = call("evaluate", map[string]interface{}{"expr": "1/(x-x)", "vars": map[string]interface{}{"x": 1.0}})
	require.Contains(t, resp.Error, "division by zero")

	resp = call("evaluate", map[string]interface{}{"expr": "x", "vars": map[string]interface{}{"x": "two"}})
	require.Equal(t, "param vars.x must be a number", resp.Error)

	resp = call("evaluate", map[string]interface{}{"expr": "x", "vars": []interface{}{1.0}})
	require.Equal(t, "param vars must be an object of numbers", resp.Error)
}

func TestHandleToolCall_EvaluateNaNTravelsAsText(t *testing.T) {
	resp := call("evaluate", map[string]interface{}{"expr": "(0-8)^(1/3)"})
	require.Equal(t, "", resp.Error)
	require.Equal(t, "NaN", resp.String)
	require.True(t, resp.Result == nil, "non-finite values have no numeric result")
	_, err := json.Marshal(resp)
	require.NoError(t, err)
}

func TestHandleToolCall_Substitute(t *testing.T) {
	resp := call("substitute", map[string]interface{}{"expr": "x + y", "var": "x", "value": 2.5})
	require.Equal(t, "", resp.Error)
	require.Equal(t, "(2.5 + y)", resp.String)

	resp = call("substitute", map[string]interface{}{"expr": "x", "var": "x"})
	require.Equal(t, "missing param: value", resp.Error)

	resp = call("substitute", map[string]interface{}{"expr": "x", "var": "", "value": 1.0})
	require.Equal(t, "param var must be a non-empty string", resp.Error)
}

func TestHandleToolCall_Diff(t *testing.T) {
	obj := exprObject(t, symdiff.PowOf(symdiff.Var[float64]("x"), symdiff.Const(2.0)))
	resp := call("diff", map[string]interface{}{"expr": obj, "var": "x"})
	require.Equal(t, "", resp.Error)
	require.Equal(t, "((2 * (x ^ 1)) * 1)", resp.String)

	resp = call("diff", map[string]interface{}{"expr": "x^3", "var": "x", "n": 0.0})
	require.Equal(t, "(x ^ 3)", resp.String)

	resp = call("diff", map[string]interface{}{"expr": "x^3", "var": "x", "n": 2.0})
	require.Equal(t, "", resp.Error)
	d := mustParse(t, "x^3").DerivativeN("x", 2)
	require.Equal(t, d.String(), resp.String)
}

func TestHandleToolCall_DiffOrderBounds(t *testing.T) {
	for _, n := range []interface{}{-1.0, 1.5, 7.0, "2"} {
		resp := call("diff", map[string]interface{}{"expr": "x", "var": "x", "n": n})
		require.NotEqual(t, "", resp.Error, "n=%v", n)
	}
}

func productChain(factors int) string {
	return strings.Repeat("x*", factors-1) + "x"
}

func TestHandleToolCall_DiffRefusesHugeResults(t *testing.T) {
	resp := call("diff", map[string]interface{}{"expr": productChain(2000), "var": "x"})
	require.Contains(t, resp.Error, "derivative would have")
	require.Equal(t, "", resp.String)

	// The order cap alone does not bound growth; each step is checked.
	resp = call("diff", map[string]interface{}{"expr": productChain(40), "var": "x", "n": 6.0})
	require.Contains(t, resp.Error, "derivative would have")

	resp = call("diff", map[string]interface{}{"expr": productChain(100), "var": "x"})
	require.Equal(t, "", resp.Error)
}

func TestHandleToolCall_RefusesHugeInput(t *testing.T) {
	for _, tool := range []string{"parse", "evaluate", "diff"} {
		resp := call(tool, map[string]interface{}{"expr": productChain(6000), "var": "x"})
		require.Equal(t, "param expr has 11999 nodes, limit is 10000", resp.Error, tool)
	}
}

func TestHandleToolCall_FreeSymbols(t *testing.T) {
	resp := call("free_symbols", map[string]interface{}{"expr": "b + a*b"})
	require.Equal(t, "", resp.Error)
	require.Equal(t, interface{}([]string{"a", "b"}), resp.Result)
}

func TestHandleToolCall_BadExprParam(t *testing.T) {
	resp := call("parse", map[string]interface{}{})
	require.Equal(t, "missing param: expr", resp.Error)

	resp = call("parse", map[string]interface{}{"expr": 3.0})
	require.Equal(t, "param expr must be a string or expression object", resp.Error)

	resp = call("parse", map[string]interface{}{"expr": map[string]interface{}{"type": "sin"}})
	require.Equal(t, "$.arg: missing node", resp.Error)
}

func TestHandleToolCall_UnknownTool(t *testing.T) {
	resp := call("simplify", map[string]interface{}{})
	require.Equal(t, `unknown tool: "simplify"`, resp.Error)
}

func TestToolSpec(t *testing.T) {
	var spec struct {
		Tools []struct {
			Name string `json:"name"`
		} `json:"tools"`
	}
	require.NoError(t, json.Unmarshal([]byte(symdiff.ToolSpec()), &spec))
	names := []string{}
	for _, tool := range spec.Tools {
		names = append(names, tool.Name)
	}
	require.Equal(t, []string{"parse", "to_string", "evaluate", "substitute", "diff", "free_symbols", "tool_spec"}, names)

	resp := call("tool_spec", nil)
	require.Equal(t, "", resp.Error)
	require.Equal(t, interface{}(json.RawMessage(symdiff.ToolSpec())), resp.Result)
}
