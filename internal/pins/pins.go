// internal/pins/pins.go
//
// Shared value types for the code-breaking game.
// Defines:
//   - Color: the closed set of six peg colors.
//   - PinState: a fixed four-slot sequence of colors (a secret or a guess).
//
// Notes:
//   - PinState is an array, so it compares with == and copies on assignment.
//   - Letters b/g/y/m/r/c are the text form used by the CLI and the HTTP API.
//   - FromIndex/Index number all 6^4 states in base 6, slot 0 most significant.

package pins

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

// Slots is the number of positions in every secret and guess.
const Slots = 4

// Color is one of six peg colors. It carries identity only.
type Color uint8

const (
	Blue Color = iota
	Green
	Yellow
	Magenta
	Red
	Cyan
)

// NumColors is the size of the color set.
const NumColors = 6

// NumStates is the number of distinct PinStates (NumColors^Slots).
const NumStates = NumColors * NumColors * NumColors * NumColors

// AllColors lists every color in declaration order.
var AllColors = [NumColors]Color{Blue, Green, Yellow, Magenta, Red, Cyan}

var (
	ErrInvalidColor = errors.New("invalid color")
	ErrWrongLength  = errors.New("wrong number of colors")
)

var colorNames = [NumColors]string{"blue", "green", "yellow", "magenta", "red", "cyan"}

var colorLetters = [NumColors]rune{'b', 'g', 'y', 'm', 'r', 'c'}

// String returns the lowercase color name.
func (c Color) String() string {
	if int(c) < NumColors {
		return colorNames[c]
	}
	return fmt.Sprintf("color(%d)", uint8(c))
}

// Letter returns the one-letter code for c.
func (c Color) Letter() rune {
	if int(c) < NumColors {
		return colorLetters[c]
	}
	return '?'
}

// ParseColor maps a color letter (case-insensitive) to its Color.
func ParseColor(r rune) (Color, error) {
	r = unicode.ToLower(r)
	for i, l := range colorLetters {
		if l == r {
			return Color(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q (allowed: bgymrc)", ErrInvalidColor, r)
}

// PinState is an ordered four-slot color sequence.
type PinState [Slots]Color

// New builds a PinState from four colors.
func New(a, b, c, d Color) PinState {
	return PinState{a, b, c, d}
}

// Repeat returns a PinState with c in every slot.
func Repeat(c Color) PinState {
	return PinState{c, c, c, c}
}

// With returns a copy of p with slot i set to c.
func (p PinState) With(i int, c Color) PinState {
	p[i] = c
	return p
}

// String returns the four-letter code, e.g. "cgyr".
func (p PinState) String() string {
	var sb strings.Builder
	for _, c := range p {
		sb.WriteRune(c.Letter())
	}
	return sb.String()
}

// Distinct reports how many different colors appear in p.
func (p PinState) Distinct() int {
	var seen [NumColors]bool
	n := 0
	for _, c := range p {
		if !seen[c] {
			seen[c] = true
			n++
		}
	}
	return n
}

// Index returns the position of p in the base-6 enumeration of all states.
func (p PinState) Index() int {
	n := 0
	for _, c := range p {
		n = n*NumColors + int(c)
	}
	return n
}

// FromIndex is the inverse of Index. n is reduced modulo NumStates.
func FromIndex(n int) PinState {
	n %= NumStates
	if n < 0 {
		n += NumStates
	}
	var p PinState
	for i := Slots - 1; i >= 0; i-- {
		p[i] = Color(n % NumColors)
		n /= NumColors
	}
	return p
}

// Parse reads a guess such as "bgyr" or "B G Y R".
// Whitespace is ignored; exactly Slots color letters are required.
func Parse(s string) (PinState, error) {
	var p PinState
	n := 0
	for _, r := range s {
		if unicode.IsSpace(r) {
			continue
		}
		c, err := ParseColor(r)
		if err != nil {
			return PinState{}, fmt.Errorf("parse %q: %w", s, err)
		}
		if n < Slots {
			p[n] = c
		}
		n++
	}
	if n != Slots {
		return PinState{}, fmt.Errorf("parse %q: %w: got %d, want %d", s, ErrWrongLength, n, Slots)
	}
	return p, nil
}
