package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIntCoercer(t *testing.T) {
	t.Run("accepts ints and floats", func(t *testing.T) {
		v, err := Int.Fn(4)
		require.NoError(t, err)
		assert.Equal(t, 4, v)

		v, err = Int.Fn(4.9)
		require.NoError(t, err)
		assert.Equal(t, 4, v, "fractional parts are truncated, not rounded")
	})

	t.Run("accepts numeric strings", func(t *testing.T) {
		v, err := Int.Fn(" 16 ")
		require.NoError(t, err)
		assert.Equal(t, 16, v)

		v, err = Int.Fn("2.5")
		require.NoError(t, err)
		assert.Equal(t, 2, v)
	})

	t.Run("rejects non-numeric input", func(t *testing.T) {
		_, err := Int.Fn("many")
		assert.Error(t, err)
		_, err = Int.Fn([]any{1})
		assert.Error(t, err)
	})
}

func TestFloatCoercer(t *testing.T) {
	v, err := Float.Fn(3)
	require.NoError(t, err)
	assert.Equal(t, 3.0, v)

	v, err = Float.Fn("0.05")
	require.NoError(t, err)
	assert.Equal(t, 0.05, v)

	_, err = Float.Fn("NaN-ish")
	assert.Error(t, err)
}

func TestBoolCoercer(t *testing.T) {
	for _, s := range []string{"true", "TRUE", ".true.", "1"} {
		v, err := Bool.Fn(s)
		require.NoError(t, err, s)
		assert.Equal(t, true, v, s)
	}
	for _, s := range []string{"false", ".false.", "0"} {
		v, err := Bool.Fn(s)
		require.NoError(t, err, s)
		assert.Equal(t, false, v, s)
	}

	v, err := Bool.Fn(true)
	require.NoError(t, err)
	assert.Equal(t, true, v)

	_, err = Bool.Fn("yes")
	assert.Error(t, err)
}

func TestStringCoercer(t *testing.T) {
	v, err := String.Fn(11)
	require.NoError(t, err)
	assert.Equal(t, "11", v)

	v, err = String.Fn("default")
	require.NoError(t, err)
	assert.Equal(t, "default", v)

	_, err = String.Fn(map[string]any{})
	assert.Error(t, err)
}

func TestListCoercers(t *testing.T) {
	t.Run("float list widens mixed elements", func(t *testing.T) {
		v, err := FloatList.Fn([]any{1, 2.5, "3.5"})
		require.NoError(t, err)
		assert.Equal(t, []float64{1, 2.5, 3.5}, v)
	})

	t.Run("float list from typed slice", func(t *testing.T) {
		v, err := FloatList.Fn([]float64{0.1, 0.2})
		require.NoError(t, err)
		assert.Equal(t, []float64{0.1, 0.2}, v)
	})

	t.Run("string list", func(t *testing.T) {
		v, err := StringList.Fn([]string{"a", "b"})
		require.NoError(t, err)
		assert.Equal(t, []string{"a", "b"}, v)
	})

	t.Run("bad element reports its index", func(t *testing.T) {
		_, err := FloatList.Fn([]any{1.0, "nope"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "element 1")
	})

	t.Run("scalar is not a list", func(t *testing.T) {
		_, err := FloatList.Fn(3.14)
		assert.Error(t, err)
	})
}
