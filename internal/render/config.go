package render

import "fmt"

// Config is a resolved backend configuration: every schema-declared key has
// passed its coercer, defaults are filled in, and unknown caller keys ride
// along untouched. Renderers must treat it as read-only.
type Config map[string]any

// The typed accessors assert the canonical type the schema coercers produce.
// A failed assertion means a backend referenced a key outside its own schema,
// which is a programming error in the backend, so they panic rather than
// return a zero value that would end up inside a solver deck.

func (c Config) Int(key string) int {
	v, ok := c[key].(int)
	if !ok {
		panic(fmt.Sprintf("render: config key %q is not a resolved int", key))
	}
	return v
}

func (c Config) Float(key string) float64 {
	v, ok := c[key].(float64)
	if !ok {
		panic(fmt.Sprintf("render: config key %q is not a resolved float", key))
	}
	return v
}

func (c Config) String(key string) string {
	v, ok := c[key].(string)
	if !ok {
		panic(fmt.Sprintf("render: config key %q is not a resolved string", key))
	}
	return v
}

func (c Config) Bool(key string) bool {
	v, ok := c[key].(bool)
	if !ok {
		panic(fmt.Sprintf("render: config key %q is not a resolved bool", key))
	}
	return v
}

func (c Config) Floats(key string) []float64 {
	v, ok := c[key].([]float64)
	if !ok {
		panic(fmt.Sprintf("render: config key %q is not a resolved float list", key))
	}
	return v
}

func (c Config) Strings(key string) []string {
	v, ok := c[key].([]string)
	if !ok {
		panic(fmt.Sprintf("render: config key %q is not a resolved string list", key))
	}
	return v
}
