// internal/players/players.go
//
// Automated players. A player only sees the oracle's scoring interface and
// reports either a final guess or that it gave up.
//   - Stepper: single pass, one slot at a time, no backtracking.
//   - Random:  independent random guesses with a fixed attempt bound.

package players

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/robalobadob/mastermind/internal/oracle"
	"github.com/robalobadob/mastermind/internal/pins"
)

// Scorer is the part of an oracle a player may use.
type Scorer interface {
	EvalGuess(guess pins.PinState) oracle.Eval
}

// Player plays one round. ok is false when the player gave up; a returned
// guess is not necessarily the secret.
type Player interface {
	Play(o Scorer) (guess pins.PinState, ok bool)
}

// Kind names an automated player.
type Kind string

const (
	KindStepper Kind = "stepper"
	KindRandom  Kind = "random"
)

var ErrUnknownPlayer = errors.New("unknown player")

// Kinds lists every automated player name.
func Kinds() []Kind {
	return []Kind{KindStepper, KindRandom}
}

// ParseKind resolves a player name.
func ParseKind(name string) (Kind, error) {
	for _, k := range Kinds() {
		if string(k) == name {
			return k, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownPlayer, name)
}

// New builds the player for k. rng is only used by the random player.
func New(k Kind, rng *rand.Rand) (Player, error) {
	switch k {
	case KindStepper:
		return Stepper{}, nil
	case KindRandom:
		return &Random{rng: rng}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownPlayer, string(k))
}

// MaxRandomAttempts bounds the random player.
const MaxRandomAttempts = 50_000

// Random guesses uniformly at random until it succeeds or runs out of attempts.
type Random struct{ rng *rand.Rand }

// NewRandom returns a random player drawing from rng.
func NewRandom(rng *rand.Rand) *Random {
	return &Random{rng: rng}
}

func (r *Random) Play(o Scorer) (pins.PinState, bool) {
	for i := 0; i < MaxRandomAttempts; i++ {
		guess := pins.FromIndex(r.rng.IntN(pins.NumStates))
		if o.EvalGuess(guess).IsSuccess() {
			return guess, true
		}
	}
	return pins.PinState{}, false
}
