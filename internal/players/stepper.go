package players

import "github.com/robalobadob/mastermind/internal/pins"

// stepperBase fills the opening guess; stepperCandidates are tried per slot in order.
var (
	stepperBase       = pins.Blue
	stepperCandidates = [...]pins.Color{pins.Green, pins.Yellow, pins.Magenta, pins.Red, pins.Cyan}
)

// Stepper solves each slot on its own, left to right.
//
// For each slot it substitutes the other colors in turn and watches the black
// count: a rise locks the color in, a drop ends the search for that slot, and
// an unchanged count moves on to the next candidate. It never revisits a slot,
// so it can finish on a wrong guess. It holds no state between rounds.
type Stepper struct{}

func (Stepper) Play(o Scorer) (pins.PinState, bool) {
	guess := pins.Repeat(stepperBase)
	eval := o.EvalGuess(guess)

	for slot := 0; slot < pins.Slots; slot++ {
		if eval.IsSuccess() {
			break
		}
		for _, c := range stepperCandidates {
			next := guess.With(slot, c)
			nextEval := o.EvalGuess(next)

			if nextEval.Black() > eval.Black() {
				guess, eval = next, nextEval
				break
			} else if nextEval.Black() < eval.Black() {
				break
			}
		}
	}
	return guess, true
}
