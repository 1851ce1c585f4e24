package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeck(t *testing.T) {
	d := NewDeck()
	d.Comment("simulation input parameters")
	d.Comment("")
	d.SetInt("NPROC", 16)
	d.Blank()
	d.SetFloat("DT", 0.05)
	d.SetBool("SAVE_FORWARD", false)
	d.Set("MODEL", "default")

	want := "# simulation input parameters\n" +
		"#\n" +
		"NPROC                           = 16\n" +
		"\n" +
		"DT                              = 0.05\n" +
		"SAVE_FORWARD                    = .false.\n" +
		"MODEL                           = default\n"
	assert.Equal(t, want, d.String())
}

func TestFortranBool(t *testing.T) {
	assert.Equal(t, ".true.", FortranBool(true))
	assert.Equal(t, ".false.", FortranBool(false))
}

func TestFormatFloat(t *testing.T) {
	assert.Equal(t, "0.05", FormatFloat(0.05))
	assert.Equal(t, "12.7", FormatFloat(12.7))
	assert.Equal(t, "0", FormatFloat(0.0))
	assert.Equal(t, "1e+23", FormatFloat(1e23))
}
