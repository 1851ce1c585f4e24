package render

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSchema() Schema {
	return Schema{
		Required: map[string]RequiredParam{
			"NPROC": {Coerce: Int, Doc: "number of MPI processors"},
			"DT":    {Coerce: Float, Doc: "time increment"},
		},
		Defaults: map[string]DefaultParam{
			"MODEL":        {Default: "default", Coerce: String},
			"SAVE_FORWARD": {Default: false, Coerce: Bool},
			"WEIGHTS":      {Default: []float64{1.0, 2.0}, Coerce: FloatList},
		},
	}
}

func TestSchemaResolve(t *testing.T) {
	t.Run("coerces required and fills defaults", func(t *testing.T) {
		cfg, err := testSchema().Resolve("TEST", map[string]any{
			"NPROC": "16",
			"DT":    0.05,
		})
		require.NoError(t, err)

		assert.Equal(t, 16, cfg["NPROC"])
		assert.Equal(t, 0.05, cfg["DT"])
		assert.Equal(t, "default", cfg["MODEL"])
		assert.Equal(t, false, cfg["SAVE_FORWARD"])
		assert.Equal(t, []float64{1.0, 2.0}, cfg["WEIGHTS"])
	})

	t.Run("supplied values override defaults and are coerced", func(t *testing.T) {
		cfg, err := testSchema().Resolve("TEST", map[string]any{
			"NPROC":        4,
			"DT":           "0.01",
			"SAVE_FORWARD": ".true.",
			"WEIGHTS":      []any{3, "4.5"},
		})
		require.NoError(t, err)

		assert.Equal(t, true, cfg["SAVE_FORWARD"])
		assert.Equal(t, []float64{3, 4.5}, cfg["WEIGHTS"])
	})

	t.Run("missing required key", func(t *testing.T) {
		_, err := testSchema().Resolve("TEST", map[string]any{"DT": 0.05})
		require.Error(t, err)

		var missing *MissingConfigurationError
		require.ErrorAs(t, err, &missing)
		assert.Equal(t, "TEST", missing.Format)
		assert.Equal(t, "NPROC", missing.Key)
		assert.Contains(t, err.Error(), "number of MPI processors")
	})

	t.Run("uncoercible value", func(t *testing.T) {
		_, err := testSchema().Resolve("TEST", map[string]any{
			"NPROC": "sixteen",
			"DT":    0.05,
		})
		require.Error(t, err)

		var invalid *InvalidConfigurationTypeError
		require.ErrorAs(t, err, &invalid)
		assert.Equal(t, "NPROC", invalid.Key)
		assert.Equal(t, "int", invalid.Coercer)
	})

	t.Run("unknown keys pass through untouched", func(t *testing.T) {
		cfg, err := testSchema().Resolve("TEST", map[string]any{
			"NPROC":  1,
			"DT":     0.1,
			"CUSTOM": "anything",
		})
		require.NoError(t, err)
		assert.Equal(t, "anything", cfg["CUSTOM"])
	})

	t.Run("never mutates the input", func(t *testing.T) {
		raw := map[string]any{
			"NPROC":   "8",
			"DT":      1,
			"NESTED":  map[string]any{"a": []any{1, 2}},
			"WEIGHTS": []float64{9.0},
		}
		want := map[string]any{
			"NPROC":   "8",
			"DT":      1,
			"NESTED":  map[string]any{"a": []any{1, 2}},
			"WEIGHTS": []float64{9.0},
		}

		cfg, err := testSchema().Resolve("TEST", raw)
		require.NoError(t, err)

		// Mutating the resolved config must not leak into the input.
		cfg["NESTED"].(map[string]any)["a"].([]any)[0] = 99
		cfg["WEIGHTS"].([]float64)[0] = 99

		assert.Empty(t, cmp.Diff(want, raw))
	})

	t.Run("resolution is deterministic", func(t *testing.T) {
		raw := map[string]any{"NPROC": 2, "DT": 0.5}
		a, err := testSchema().Resolve("TEST", raw)
		require.NoError(t, err)
		b, err := testSchema().Resolve("TEST", raw)
		require.NoError(t, err)
		assert.Empty(t, cmp.Diff(a, b))
	})
}

func TestSchemaKeyOrder(t *testing.T) {
	s := testSchema()
	assert.Equal(t, []string{"DT", "NPROC"}, s.RequiredKeys())
	assert.Equal(t, []string{"MODEL", "SAVE_FORWARD", "WEIGHTS"}, s.DefaultKeys())
}
