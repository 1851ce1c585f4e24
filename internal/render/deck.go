package render

import (
	"fmt"
	"strconv"
	"strings"
)

// deckKeyWidth is the column the "=" sign is aligned to in parameter decks.
const deckKeyWidth = 32

// Deck builds a "KEY = value" style parameter file as an ordered sequence of
// comments, blank lines, and assignments. The entry order, not the
// configuration map, determines the output layout, which keeps rendering
// byte-identical across runs.
type Deck struct {
	lines []string
}

func NewDeck() *Deck { return &Deck{} }

// Comment appends one "# " prefixed line per argument.
func (d *Deck) Comment(lines ...string) {
	for _, line := range lines {
		if line == "" {
			d.lines = append(d.lines, "#")
			continue
		}
		d.lines = append(d.lines, "# "+line)
	}
}

// Blank appends an empty line.
func (d *Deck) Blank() {
	d.lines = append(d.lines, "")
}

// Set appends a key/value assignment with the key padded to a fixed width.
func (d *Deck) Set(key, value string) {
	d.lines = append(d.lines, fmt.Sprintf("%-*s= %s", deckKeyWidth, key, value))
}

func (d *Deck) SetInt(key string, v int) {
	d.Set(key, strconv.Itoa(v))
}

func (d *Deck) SetFloat(key string, v float64) {
	d.Set(key, FormatFloat(v))
}

// SetBool renders a boolean as the Fortran literal the solvers expect.
func (d *Deck) SetBool(key string, v bool) {
	d.Set(key, FortranBool(v))
}

// String assembles the deck, ending with a single trailing newline.
func (d *Deck) String() string {
	return strings.Join(d.lines, "\n") + "\n"
}

// FortranBool spells a bool the way Fortran namelist files expect.
func FortranBool(v bool) string {
	if v {
		return ".true."
	}
	return ".false."
}

// FormatFloat renders a float in the shortest round-trip form ("0.05", not
// "0.050000").
func FormatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
