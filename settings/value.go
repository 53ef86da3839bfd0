package settings

import (
	"fmt"
	"strings"

	"github.com/spf13/cast"

	"github.com/notargets/aerocase/types"
)

type Kind uint8

const (
	KindBool Kind = iota
	KindInt
	KindFloat
	KindFloatArray
	KindString
	KindStringArray
)

var kindNames = [...]string{"bool", "int", "float", "float array", "string", "string array"}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// Value is a solver option value tagged with its kind. Only the field that
// matches Kind is meaningful.
type Value struct {
	Kind Kind
	b    bool
	i    int
	f    float64
	fa   []float64
	s    string
	sa   []string
}

func Bool(b bool) Value {
	return Value{Kind: KindBool, b: b}
}

func Int(i int) Value {
	return Value{Kind: KindInt, i: i}
}

func Float(f float64) Value {
	return Value{Kind: KindFloat, f: f}
}

func FloatArray(fa ...float64) Value {
	return Value{Kind: KindFloatArray, fa: append([]float64{}, fa...)}
}

func String(s string) Value {
	return Value{Kind: KindString, s: s}
}

func StringArray(sa ...string) Value {
	return Value{Kind: KindStringArray, sa: append([]string{}, sa...)}
}

func (v Value) Bool() bool {
	return v.b
}

func (v Value) Int() int {
	return v.i
}

func (v Value) Float() float64 {
	return v.f
}

func (v Value) Floats() []float64 {
	return append([]float64{}, v.fa...)
}

func (v Value) Str() string {
	return v.s
}

func (v Value) Strings() []string {
	return append([]string{}, v.sa...)
}

func (v Value) clone() Value {
	v.fa, v.sa = v.Floats(), v.Strings()
	return v
}

func (v Value) Equal(o Value) bool {
	return v.Kind == o.Kind && v.String() == o.String()
}

func (v Value) Interface() interface{} {
	return v.native()
}

func (v Value) native() interface{} {
	switch v.Kind {
	case KindBool:
		return v.b
	case KindInt:
		return v.i
	case KindFloat:
		return v.f
	case KindFloatArray:
		return v.Floats()
	case KindString:
		return v.s
	default:
		return v.Strings()
	}
}

// String renders the value as a solver file token: booleans as on/off and
// arrays as comma separated lists.
func (v Value) String() string {
	switch v.Kind {
	case KindBool:
		if v.b {
			return "on"
		}
		return "off"
	case KindFloatArray:
		tokens := make([]string, len(v.fa))
		for i, f := range v.fa {
			tokens[i] = cast.ToString(f)
		}
		return strings.Join(tokens, ", ")
	case KindStringArray:
		return strings.Join(v.sa, ", ")
	case KindString:
		return v.s
	}
	return cast.ToString(v.native())
}

// Coerce converts raw input, typically a string from a solver file or a YAML
// scalar or list, into a value of the requested kind.
func Coerce(kind Kind, raw interface{}) (v Value, err error) {
	v.Kind = kind
	switch kind {
	case KindBool:
		if str, ok := raw.(string); ok {
			switch strings.ToLower(strings.TrimSpace(str)) {
			case "on":
				v.b = true
				return
			case "off":
				v.b = false
				return
			}
		}
		v.b, err = cast.ToBoolE(raw)
	case KindInt:
		v.i, err = cast.ToIntE(trimmed(raw))
	case KindFloat:
		v.f, err = cast.ToFloat64E(trimmed(raw))
	case KindString:
		v.s, err = cast.ToStringE(raw)
	case KindFloatArray:
		var items []interface{}
		if items, err = listItems(raw); err != nil {
			break
		}
		v.fa = make([]float64, len(items))
		for i, item := range items {
			if v.fa[i], err = cast.ToFloat64E(trimmed(item)); err != nil {
				break
			}
		}
	case KindStringArray:
		var items []interface{}
		if items, err = listItems(raw); err != nil {
			break
		}
		v.sa = make([]string, len(items))
		for i, item := range items {
			if v.sa[i], err = cast.ToStringE(trimmed(item)); err != nil {
				break
			}
		}
	default:
		err = fmt.Errorf("unknown kind %d", kind)
	}
	if err != nil {
		err = &types.ConfigurationError{Op: "coerce",
			Msg: fmt.Sprintf("cannot read %v as %s: %v", raw, kind, err)}
		return Value{}, err
	}
	return
}

func trimmed(raw interface{}) interface{} {
	if s, ok := raw.(string); ok {
		return strings.TrimSpace(s)
	}
	return raw
}

// listItems splits a comma separated string or flattens a slice. A scalar is
// a one element list and an empty string an empty one.
func listItems(raw interface{}) (items []interface{}, err error) {
	switch r := raw.(type) {
	case nil:
		return
	case string:
		for _, tok := range strings.Split(r, ",") {
			if tok = strings.TrimSpace(tok); tok != "" {
				items = append(items, tok)
			}
		}
	case []interface{}:
		items = r
	case []string:
		for _, s := range r {
			items = append(items, s)
		}
	case []float64:
		for _, f := range r {
			items = append(items, f)
		}
	case []int:
		for _, i := range r {
			items = append(items, i)
		}
	default:
		items = []interface{}{r}
	}
	return
}
