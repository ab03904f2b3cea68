package symdiff

import (
	"encoding/json"
	"fmt"
	"math"
)

// ============================================================
// Tool Interface
// ============================================================

// ToolRequest is a single tool invocation. Expression params accept either
// infix text ("x^2 + 1") or a JSON tree object.
type ToolRequest struct {
	Tool   string                 `json:"tool"`
	Params map[string]interface{} `json:"params"`
}

type ToolResponse struct {
	Result interface{} `json:"result,omitempty"`
	String string      `json:"string,omitempty"`
	Error  string      `json:"error,omitempty"`
}

// HandleToolCall runs req against real-valued trees. Failures are reported
// in ToolResponse.Error; it never panics on malformed params.
func HandleToolCall(req ToolRequest) ToolResponse {
	getExpr := func(key string) (*Expr[float64], error) {
		v, ok := req.Params[key]
		if !ok {
			return nil, fmt.Errorf("missing param: %s", key)
		}
		var e *Expr[float64]
		var err error
		switch val := v.(type) {
		case string:
			e, err = Parse(val)
		case map[string]interface{}:
			var b []byte
			if b, err = json.Marshal(val); err == nil {
				e, err = FromJSON[float64](b)
			}
		default:
			return nil, fmt.Errorf("param %s must be a string or expression object", key)
		}
		if err != nil {
			return nil, err
		}
		if n := e.Size(); n > maxToolNodes {
			return nil, fmt.Errorf("param %s has %d nodes, limit is %d", key, n, maxToolNodes)
		}
		return e, nil
	}
	getString := func(key string) (string, error) {
		v, ok := req.Params[key]
		if !ok {
			return "", fmt.Errorf("missing param: %s", key)
		}
		s, ok := v.(string)
		if !ok || s == "" {
			return "", fmt.Errorf("param %s must be a non-empty string", key)
		}
		return s, nil
	}
	getNumber := func(key string) (float64, error) {
		v, ok := req.Params[key]
		if !ok {
			return 0, fmt.Errorf("missing param: %s", key)
		}
		f, ok := v.(float64)
		if !ok {
			return 0, fmt.Errorf("param %s must be a number", key)
		}
		return f, nil
	}
	getEnv := func(key string) (map[string]float64, error) {
		env := map[string]float64{}
		v, ok := req.Params[key]
		if !ok {
			return env, nil
		}
		raw, ok := v.(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("param %s must be an object of numbers", key)
		}
		for name, x := range raw {
			f, ok := x.(float64)
			if !ok {
				return nil, fmt.Errorf("param %s.%s must be a number", key, name)
			}
			env[name] = f
		}
		return env, nil
	}
	respond := func(e *Expr[float64]) ToolResponse {
		return ToolResponse{Result: e, String: e.String()}
	}
	fail := func(err error) ToolResponse {
		return ToolResponse{Error: err.Error()}
	}

	switch req.Tool {
	case "parse", "to_string":
		e, err := getExpr("expr")
		if err != nil {
			return fail(err)
		}
		return respond(e)

	case "evaluate":
		e, err := getExpr("expr")
		if err != nil {
			return fail(err)
		}
		env, err := getEnv("vars")
		if err != nil {
			return fail(err)
		}
		v, err := e.Evaluate(env)
		if err != nil {
			return fail(err)
		}
		resp := ToolResponse{String: formatValue(v)}
		// encoding/json rejects NaN and ±Inf; those travel as text only.
		if !math.IsNaN(v) && !math.IsInf(v, 0) {
			resp.Result = v
		}
		return resp

	case "substitute":
		e, err := getExpr("expr")
		if err != nil {
			return fail(err)
		}
		name, err := getString("var")
		if err != nil {
			return fail(err)
		}
		val, err := getNumber("value")
		if err != nil {
			return fail(err)
		}
		return respond(e.Substitute(name, val))

	case "diff":
		e, err := getExpr("expr")
		if err != nil {
			return fail(err)
		}
		name, err := getString("var")
		if err != nil {
			return fail(err)
		}
		n := 1
		if _, ok := req.Params["n"]; ok {
			f, err := getNumber("n")
			if err != nil {
				return fail(err)
			}
			if f < 0 || f > maxToolDerivativeOrder || f != float64(int(f)) {
				return fail(fmt.Errorf("param n must be an integer in [0, %d]", maxToolDerivativeOrder))
			}
			n = int(f)
		}
		for i := 0; i < n; i++ {
			if size := e.DerivativeSize(name); size > maxToolResultNodes {
				return fail(fmt.Errorf("derivative would have %d nodes, limit is %d", size, maxToolResultNodes))
			}
			e = e.Derivative(name)
		}
		return respond(e)

	case "free_symbols":
		e, err := getExpr("expr")
		if err != nil {
			return fail(err)
		}
		return ToolResponse{Result: e.Variables()}

	case "tool_spec":
		return ToolResponse{Result: json.RawMessage(ToolSpec())}
	}
	return fail(fmt.Errorf("unknown tool: %q", req.Tool))
}

// Unsimplified derivatives grow exponentially with the order and
// quadratically with the length of a product chain, so remote callers are
// capped on order, input size and result size.
const (
	maxToolDerivativeOrder = 6
	maxToolNodes           = 10000
	maxToolResultNodes     = 1000000
)

// ToolSpec returns the JSON schema of every tool HandleToolCall accepts.
func ToolSpec() string {
	tools := []map[string]interface{}{
		ts("parse", "Parse infix text into an expression tree", []string{"expr"}, map[string]string{"expr": "string"}),
		ts("to_string", "Render an expression in fully parenthesized form", []string{"expr"}, map[string]string{"expr": "object"}),
		ts("evaluate", "Evaluate an expression. vars maps names to numbers", []string{"expr"}, map[string]string{"expr": "object", "vars": "object"}),
		ts("substitute", "Replace a variable with a constant", []string{"expr", "var", "value"}, map[string]string{"expr": "object", "var": "string", "value": "number"}),
		ts("diff", "Unsimplified symbolic derivative. Optional n (order)", []string{"expr", "var"}, map[string]string{"expr": "object", "var": "string", "n": "integer"}),
		ts("free_symbols", "Return the sorted variable names", []string{"expr"}, map[string]string{"expr": "object"}),
		ts("tool_spec", "Return this tool schema", []string{}, map[string]string{}),
	}
	b, _ := json.MarshalIndent(map[string]interface{}{"tools": tools}, "", "  ")
	return string(b)
}

func ts(name, description string, required []string, props map[string]string) map[string]interface{} {
	properties := map[string]interface{}{}
	for k, typ := range props {
		properties[k] = map[string]interface{}{"type": typ}
	}
	return map[string]interface{}{
		"name":        name,
		"description": description,
		"inputSchema": map[string]interface{}{
			"type":       "object",
			"properties": properties,
			"required":   required,
		},
	}
}
