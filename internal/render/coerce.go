package render

import (
	"fmt"
	"strconv"
	"strings"
)

// Coercer converts an arbitrary caller-supplied configuration value into the
// canonical Go type a schema entry declares. Coercion is applied to the whole
// value; list coercers iterate over the elements themselves. A failed
// conversion returns an error and never a partial result.
type Coercer struct {
	// Name identifies the target type in error messages and schema dumps.
	Name string
	Fn   func(v any) (any, error)
}

func (c Coercer) coerce(v any) (any, error) { return c.Fn(v) }

var (
	// Int converts numbers and numeric strings to int. Fractional parts are
	// truncated, matching the behavior solver decks historically relied on.
	Int = Coercer{Name: "int", Fn: toInt}

	// Float converts numbers and numeric strings to float64.
	Float = Coercer{Name: "float", Fn: toFloat}

	// String converts any scalar to its string form.
	String = Coercer{Name: "string", Fn: toString}

	// Bool accepts Go bools and the spellings "true"/"false", "1"/"0",
	// ".true."/".false.".
	Bool = Coercer{Name: "bool", Fn: toBool}

	// FloatList converts every element of a sequence to float64.
	FloatList = Coercer{Name: "list of floats", Fn: toFloatList}

	// StringList converts every element of a sequence to a string.
	StringList = Coercer{Name: "list of strings", Fn: toStringList}
)

func toInt(v any) (any, error) {
	switch x := v.(type) {
	case int:
		return x, nil
	case int32:
		return int(x), nil
	case int64:
		return int(x), nil
	case float64:
		return int(x), nil
	case float32:
		return int(x), nil
	case string:
		s := strings.TrimSpace(x)
		if n, err := strconv.Atoi(s); err == nil {
			return n, nil
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, fmt.Errorf("cannot parse %q as int", x)
		}
		return int(f), nil
	default:
		return nil, fmt.Errorf("cannot convert %T to int", v)
	}
}

func toFloat(v any) (any, error) {
	switch x := v.(type) {
	case float64:
		return x, nil
	case float32:
		return float64(x), nil
	case int:
		return float64(x), nil
	case int32:
		return float64(x), nil
	case int64:
		return float64(x), nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		if err != nil {
			return nil, fmt.Errorf("cannot parse %q as float", x)
		}
		return f, nil
	default:
		return nil, fmt.Errorf("cannot convert %T to float", v)
	}
}

func toString(v any) (any, error) {
	switch x := v.(type) {
	case string:
		return x, nil
	case bool, int, int32, int64, float32, float64:
		return fmt.Sprintf("%v", x), nil
	default:
		return nil, fmt.Errorf("cannot convert %T to string", v)
	}
}

func toBool(v any) (any, error) {
	switch x := v.(type) {
	case bool:
		return x, nil
	case string:
		switch strings.ToLower(strings.TrimSpace(x)) {
		case "true", ".true.", "1":
			return true, nil
		case "false", ".false.", "0":
			return false, nil
		}
		return nil, fmt.Errorf("cannot parse %q as bool", x)
	case int:
		return x != 0, nil
	default:
		return nil, fmt.Errorf("cannot convert %T to bool", v)
	}
}

func toFloatList(v any) (any, error) {
	elems, err := asList(v)
	if err != nil {
		return nil, err
	}
	out := make([]float64, len(elems))
	for i, e := range elems {
		f, err := toFloat(e)
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		out[i] = f.(float64)
	}
	return out, nil
}

func toStringList(v any) (any, error) {
	elems, err := asList(v)
	if err != nil {
		return nil, err
	}
	out := make([]string, len(elems))
	for i, e := range elems {
		s, err := toString(e)
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		out[i] = s.(string)
	}
	return out, nil
}

// asList widens the concrete slice types that JSON/YAML decoding and literal
// Go configuration produce into a []any.
func asList(v any) ([]any, error) {
	switch x := v.(type) {
	case []any:
		return x, nil
	case []float64:
		out := make([]any, len(x))
		for i, e := range x {
			out[i] = e
		}
		return out, nil
	case []int:
		out := make([]any, len(x))
		for i, e := range x {
			out[i] = e
		}
		return out, nil
	case []string:
		out := make([]any, len(x))
		for i, e := range x {
			out[i] = e
		}
		return out, nil
	default:
		return nil, fmt.Errorf("cannot convert %T to a list", v)
	}
}
