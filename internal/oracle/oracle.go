// internal/oracle/oracle.go
//
// The scoring authority for one round.
// Responsibilities:
//   - Hold the secret; players only ever see Eval results.
//   - Score guesses as black (right color, right slot) and white
//     (right color, other slot) pegs.
//   - Count how many guesses were scored.
//
// Scoring walks the slots left to right over a pool of not-yet-consumed
// secret colors. A slot consumes at most one pool entry, so repeated colors
// never score more pegs than the secret holds.

package oracle

import (
	"fmt"
	"sync/atomic"

	"golang.org/x/exp/slices"

	"github.com/robalobadob/mastermind/internal/pins"
)

// Eval is the result of scoring one guess. Only an Oracle produces non-zero values.
type Eval struct {
	black uint8
	white uint8
}

// IsSuccess reports whether every slot matched.
func (e Eval) IsSuccess() bool { return e.black == pins.Slots }

// Black returns the number of slots with the right color in the right position.
func (e Eval) Black() int { return int(e.black) }

// White returns the number of slots with a right color in a wrong position.
func (e Eval) White() int { return int(e.white) }

// String renders e as "black-white".
func (e Eval) String() string { return fmt.Sprintf("%d-%d", e.black, e.white) }

// Oracle owns one secret and answers guesses against it.
type Oracle struct {
	secret pins.PinState
	evals  atomic.Uint32
}

// New creates an oracle for secret. The query counter starts at zero.
func New(secret pins.PinState) *Oracle {
	return &Oracle{secret: secret}
}

// EvalGuess scores guess against the secret and bumps the query counter.
func (o *Oracle) EvalGuess(guess pins.PinState) Eval {
	o.evals.Add(1)
	return score(o.secret, guess)
}

// NumEvals returns how many times EvalGuess has been called.
func (o *Oracle) NumEvals() uint32 {
	return o.evals.Load()
}

func score(secret, guess pins.PinState) Eval {
	var e Eval
	remaining := make([]pins.Color, 0, pins.Slots)
	remaining = append(remaining, secret[:]...)

	for i, c := range guess {
		switch {
		case c == secret[i]:
			e.black++
		case slices.Contains(remaining, c):
			e.white++
		default:
			continue
		}
		// An exact match consumes from the pool too.
		if j := slices.Index(remaining, c); j >= 0 {
			remaining = slices.Delete(remaining, j, j+1)
		}
	}
	return e
}
