// internal/game/types.go
//
// Core type definitions for a single code-breaking round.
// Defines:
//   - State: coarse status of a round (playing/won/lost).
//   - Turn: one scored guess.
//   - Game: state for a single in-progress or finished round.

package game

import (
	"sync"

	"github.com/robalobadob/mastermind/internal/oracle"
	"github.com/robalobadob/mastermind/internal/pins"
)

// State is the coarse status of a game.
type State string

const (
	StatePlaying State = "playing"
	StateWon     State = "won"
	StateLost    State = "lost"
)

// Turn records one guess and its evaluation.
type Turn struct {
	Guess pins.PinState
	Eval  oracle.Eval
}

// Game holds the state of a single round.
type Game struct {
	ID        string // Unique game identifier (random hex string).
	Generator string // Name of the generator that produced the secret.
	Rows      int    // Maximum number of guesses allowed.

	mu       sync.Mutex
	secret   pins.PinState
	oracle   *oracle.Oracle
	turns    []Turn
	finished bool
	won      bool
}
