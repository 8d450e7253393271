// internal/gen/gen.go
//
// Secret generators.
// Each generator builds a valid PinState in constant time; none can fail.
//   - fixed:     always cyan/green/yellow/red.
//   - uniform-1: one random color in every slot.
//   - uniform-2: exactly two distinct colors.
//   - uniform-3: exactly three distinct colors, one of them doubled.
//   - uniform-4: every slot independent, no constraint.
//
// The multi-color generators choose the structure first and randomize
// positions afterwards, so the distinct-color count holds by construction.

package gen

import (
	crand "crypto/rand"
	"encoding/binary"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/robalobadob/mastermind/internal/pins"
)

// Generator produces secrets.
type Generator interface {
	Generate() pins.PinState
}

// Kind names a generator from the closed set accepted on the command line and API.
type Kind string

const (
	KindFixed    Kind = "fixed"
	KindUniform1 Kind = "uniform-1"
	KindUniform2 Kind = "uniform-2"
	KindUniform3 Kind = "uniform-3"
	KindUniform4 Kind = "uniform-4"
)

// ErrUnknownGenerator is returned for names outside the closed set.
var ErrUnknownGenerator = errors.New("unknown generator")

// Kinds lists every generator name.
func Kinds() []Kind {
	return []Kind{KindFixed, KindUniform1, KindUniform2, KindUniform3, KindUniform4}
}

// ParseKind resolves a generator name.
func ParseKind(name string) (Kind, error) {
	for _, k := range Kinds() {
		if string(k) == name {
			return k, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownGenerator, name)
}

// New builds the generator for k. rng is ignored by the fixed generator.
func New(k Kind, rng *rand.Rand) (Generator, error) {
	switch k {
	case KindFixed:
		return Fixed{}, nil
	case KindUniform1:
		return &Uniform1{rng: rng}, nil
	case KindUniform2:
		return &Uniform2{rng: rng}, nil
	case KindUniform3:
		return &Uniform3{rng: rng}, nil
	case KindUniform4:
		return &Uniform4{rng: rng}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownGenerator, string(k))
}

// NewRand returns a PCG-backed source seeded from crypto/rand, falling back
// to the clock if the system source is unavailable.
func NewRand() *rand.Rand {
	var b [16]byte
	if _, err := crand.Read(b[:]); err != nil {
		now := uint64(time.Now().UnixNano())
		return rand.New(rand.NewPCG(now, now>>1|1))
	}
	return rand.New(rand.NewPCG(binary.LittleEndian.Uint64(b[:8]), binary.LittleEndian.Uint64(b[8:])))
}

// Seeded returns a deterministic source for reproducible runs.
func Seeded(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Fixed always returns the same secret.
type Fixed struct{}

func (Fixed) Generate() pins.PinState {
	return pins.New(pins.Cyan, pins.Green, pins.Yellow, pins.Red)
}

// Uniform1 returns a single random color in all four slots.
type Uniform1 struct{ rng *rand.Rand }

func (g *Uniform1) Generate() pins.PinState {
	return pins.Repeat(pins.AllColors[g.rng.IntN(pins.NumColors)])
}

// Uniform2 returns secrets with exactly two distinct colors.
type Uniform2 struct{ rng *rand.Rand }

func (g *Uniform2) Generate() pins.PinState {
	colors := shuffled(g.rng)
	c1, c2 := colors[0], colors[1]

	choose := func() pins.Color {
		if g.rng.IntN(2) == 0 {
			return c1
		}
		return c2
	}

	var p pins.PinState
	for i := 0; i < pins.Slots-1; i++ {
		p[i] = choose()
	}
	// The last slot fixes up a monochrome prefix.
	switch {
	case p[0] == c1 && p[1] == c1 && p[2] == c1:
		p[3] = c2
	case p[0] == c2 && p[1] == c2 && p[2] == c2:
		p[3] = c1
	default:
		p[3] = choose()
	}
	return p
}

// Uniform3 returns secrets with exactly three distinct colors.
type Uniform3 struct{ rng *rand.Rand }

func (g *Uniform3) Generate() pins.PinState {
	colors := shuffled(g.rng)
	c1, c2, c3 := colors[0], colors[1], colors[2]
	doubled := [3]pins.Color{c1, c2, c3}[g.rng.IntN(3)]

	p := pins.New(c1, c2, c3, doubled)
	g.rng.Shuffle(len(p), func(i, j int) { p[i], p[j] = p[j], p[i] })
	return p
}

// Uniform4 draws every slot independently from all colors.
type Uniform4 struct{ rng *rand.Rand }

func (g *Uniform4) Generate() pins.PinState {
	var p pins.PinState
	for i := range p {
		p[i] = pins.AllColors[g.rng.IntN(pins.NumColors)]
	}
	return p
}

func shuffled(rng *rand.Rand) [pins.NumColors]pins.Color {
	colors := pins.AllColors
	rng.Shuffle(len(colors), func(i, j int) { colors[i], colors[j] = colors[j], colors[i] })
	return colors
}
