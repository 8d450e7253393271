// internal/game/engine.go
//
// Game engine for a single round played through the API or the console.
// Responsibilities:
//   - Create rounds around a secret and its oracle.
//   - Validate and apply guesses (four color letters).
//   - Track state transitions: playing → won/lost.
//   - Reveal the secret only once the round is over.
//
// Notes:
//   - Scoring is delegated to the oracle; this package only keeps history.
//   - randomID() is a compact hex identifier for correlating server state.

package game

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/robalobadob/mastermind/internal/oracle"
	"github.com/robalobadob/mastermind/internal/pins"
)

// DefaultRows is used when New is given a non-positive row count.
const DefaultRows = 10

var (
	ErrFinished     = errors.New("game finished")
	ErrInvalidGuess = errors.New("invalid guess")
)

// New constructs a round around secret.
func New(secret pins.PinState, generator string, rows int) *Game {
	if rows <= 0 {
		rows = DefaultRows
	}
	return &Game{
		ID:        randomID(),
		Generator: generator,
		Rows:      rows,
		secret:    secret,
		oracle:    oracle.New(secret),
	}
}

// ApplyGuess parses, scores and records a guess.
//
// State transitions:
//   - If the evaluation is a success → won.
//   - Else if the number of guesses reaches g.Rows → lost.
func (g *Game) ApplyGuess(raw string) (oracle.Eval, State, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.finished {
		return oracle.Eval{}, g.state(), ErrFinished
	}
	guess, err := pins.Parse(raw)
	if err != nil {
		return oracle.Eval{}, g.state(), fmt.Errorf("%w: %w", ErrInvalidGuess, err)
	}

	eval := g.oracle.EvalGuess(guess)
	g.turns = append(g.turns, Turn{Guess: guess, Eval: eval})

	if eval.IsSuccess() {
		g.finished, g.won = true, true
	} else if len(g.turns) >= g.Rows {
		g.finished = true
	}
	return eval, g.state(), nil
}

// State reports the current status.
func (g *Game) State() State {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state()
}

// Turns returns a copy of the guess history.
func (g *Game) Turns() []Turn {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]Turn(nil), g.turns...)
}

// NumEvals is the oracle's query count for this round.
func (g *Game) NumEvals() uint32 {
	return g.oracle.NumEvals()
}

// Reveal returns the secret once the round is finished.
func (g *Game) Reveal() (pins.PinState, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if !g.finished {
		return pins.PinState{}, false
	}
	return g.secret, true
}

func (g *Game) state() State {
	if g.finished {
		if g.won {
			return StateWon
		}
		return StateLost
	}
	return StatePlaying
}

// randomID returns a compact 16‑hex‑char identifier.
func randomID() string {
	var b [8]byte
	_, _ = rand.Read(b[:])
	return hex.EncodeToString(b[:])
}
