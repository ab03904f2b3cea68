package symdiff

import (
	"encoding/json"
	"strings"

	"github.com/pkg/errors"
)

// ============================================================
// JSON Serialization
// ============================================================
//
//	{"type":"constant","value":"2.5"}
//	{"type":"variable","name":"x"}
//	{"type":"add","left":{...},"right":{...}}
//	{"type":"sin","arg":{...}}
//
// Constant values are strings so complex128 trees round-trip exactly.

type exprJSON struct {
	Type  string    `json:"type"`
	Value string    `json:"value,omitempty"`
	Name  string    `json:"name,omitempty"`
	Left  *exprJSON `json:"left,omitempty"`
	Right *exprJSON `json:"right,omitempty"`
	Arg   *exprJSON `json:"arg,omitempty"`
}

var kindsByType = func() map[string]Kind {
	m := make(map[string]Kind, len(kindNames))
	for k, name := range kindNames {
		m[strings.ToLower(name)] = Kind(k)
	}
	return m
}()

func (e *Expr[T]) toJSON() *exprJSON {
	w := &exprJSON{Type: strings.ToLower(e.kind.String())}
	switch e.kind.Arity() {
	case 0:
		if e.kind == Constant {
			w.Value = formatValue(e.value)
		} else {
			w.Name = e.name
		}
	case 1:
		w.Arg = e.left.toJSON()
	case 2:
		w.Left = e.left.toJSON()
		w.Right = e.right.toJSON()
	}
	return w
}

// MarshalJSON encodes e in the tree format above.
func (e *Expr[T]) MarshalJSON() ([]byte, error) {
	return json.Marshal(e.toJSON())
}

// ToJSON returns the JSON text of e.
func ToJSON[T Number](e *Expr[T]) (string, error) {
	b, err := e.MarshalJSON()
	return string(b), err
}

// FromJSON decodes a tree written by ToJSON and checks every node's arity.
func FromJSON[T Number](data []byte) (*Expr[T], error) {
	var w exprJSON
	if err := json.Unmarshal(data, &w); err != nil {
		return nil, errors.Wrap(err, "decode expression")
	}
	return fromJSON[T](&w, "$")
}

func fromJSON[T Number](w *exprJSON, path string) (*Expr[T], error) {
	if w == nil {
		return nil, errors.Errorf("%s: missing node", path)
	}
	kind, ok := kindsByType[w.Type]
	if !ok {
		return nil, errors.Errorf("%s: unknown type %q", path, w.Type)
	}
	switch kind.Arity() {
	case 0:
		if w.Left != nil || w.Right != nil || w.Arg != nil {
			return nil, errors.Errorf("%s: %s takes no children", path, w.Type)
		}
		if kind == Variable {
			if w.Name == "" {
				return nil, errors.Errorf("%s: variable needs a name", path)
			}
			return Var[T](w.Name), nil
		}
		v, err := parseValue[T](w.Value)
		if err != nil {
			return nil, errors.Wrapf(err, "%s", path)
		}
		return Const(v), nil
	case 1:
		if w.Left != nil || w.Right != nil {
			return nil, errors.Errorf("%s: %s takes a single \"arg\"", path, w.Type)
		}
		arg, err := fromJSON[T](w.Arg, path+".arg")
		if err != nil {
			return nil, err
		}
		return node(kind, arg, nil), nil
	default:
		if w.Arg != nil {
			return nil, errors.Errorf("%s: %s takes \"left\" and \"right\"", path, w.Type)
		}
		l, err := fromJSON[T](w.Left, path+".left")
		if err != nil {
			return nil, err
		}
		r, err := fromJSON[T](w.Right, path+".right")
		if err != nil {
			return nil, err
		}
		return node(kind, l, r), nil
	}
}
