package render

import "sort"

// RequiredParam declares a configuration key the caller must supply.
type RequiredParam struct {
	Coerce Coercer
	Doc    string
}

// DefaultParam declares an optional configuration key. When the caller omits
// it, Default is fed through Coerce exactly as a supplied value would be.
type DefaultParam struct {
	Default any
	Coerce  Coercer
	Doc     string
}

// Schema is the per-backend configuration contract: the required table and
// the default table. Keys present in neither table pass through unvalidated.
type Schema struct {
	Required map[string]RequiredParam
	Defaults map[string]DefaultParam
}

// RequiredKeys returns the required key names in sorted order.
func (s Schema) RequiredKeys() []string {
	keys := make([]string, 0, len(s.Required))
	for k := range s.Required {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// DefaultKeys returns the defaulted key names in sorted order.
func (s Schema) DefaultKeys() []string {
	keys := make([]string, 0, len(s.Defaults))
	for k := range s.Defaults {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Resolve validates raw against the schema and produces a fully coerced,
// default-filled configuration. The result shares no mutable state with raw:
// renderers may derive from it freely without leaking changes back to the
// caller. The format name is only used in error messages.
//
// Resolution follows three rules, in order:
//  1. every required key must be present and coercible,
//  2. every defaulted key is coerced from the supplied value or the default,
//  3. unknown keys are copied through untouched.
func (s Schema) Resolve(format string, raw map[string]any) (Config, error) {
	cfg := make(Config, len(raw)+len(s.Defaults))
	for k, v := range raw {
		cfg[k] = deepCopyValue(v)
	}

	for _, key := range s.RequiredKeys() {
		param := s.Required[key]
		v, ok := cfg[key]
		if !ok {
			return nil, &MissingConfigurationError{Format: format, Key: key, Doc: param.Doc}
		}
		coerced, err := param.Coerce.coerce(v)
		if err != nil {
			return nil, &InvalidConfigurationTypeError{
				Key: key, Coercer: param.Coerce.Name, Value: v, Err: err,
			}
		}
		cfg[key] = coerced
	}

	for _, key := range s.DefaultKeys() {
		param := s.Defaults[key]
		v, ok := cfg[key]
		if !ok {
			v = deepCopyValue(param.Default)
		}
		coerced, err := param.Coerce.coerce(v)
		if err != nil {
			return nil, &InvalidConfigurationTypeError{
				Key: key, Coercer: param.Coerce.Name, Value: v, Err: err,
			}
		}
		cfg[key] = coerced
	}

	return cfg, nil
}

// deepCopyValue copies the container types configuration values are made of.
// Scalars are returned as-is.
func deepCopyValue(v any) any {
	switch x := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(x))
		for k, e := range x {
			out[k] = deepCopyValue(e)
		}
		return out
	case []any:
		out := make([]any, len(x))
		for i, e := range x {
			out[i] = deepCopyValue(e)
		}
		return out
	case []float64:
		out := make([]float64, len(x))
		copy(out, x)
		return out
	case []int:
		out := make([]int, len(x))
		copy(out, x)
		return out
	case []string:
		out := make([]string, len(x))
		copy(out, x)
		return out
	default:
		return v
	}
}
