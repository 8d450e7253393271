// internal/console/console.go
//
// Terminal presentation and the human player.
//   - FormatPins paints one ● per slot in the slot's color.
//   - FormatEval prints ○ per black peg and ● per white peg.
//   - Human reads guesses from a line prompt until it wins or the input ends.

package console

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/peterh/liner"

	"github.com/robalobadob/mastermind/internal/pins"
	"github.com/robalobadob/mastermind/internal/players"
)

var pegStyle = color.New(color.FgWhite)

// attribute maps each pin color to a terminal color.
func attribute(c pins.Color) color.Attribute {
	switch c {
	case pins.Blue:
		return color.FgBlue
	case pins.Green:
		return color.FgGreen
	case pins.Yellow:
		return color.FgYellow
	case pins.Magenta:
		return color.FgMagenta
	case pins.Red:
		return color.FgRed
	case pins.Cyan:
		return color.FgCyan
	}
	return color.Reset
}

// FormatPins renders p as colored pins.
func FormatPins(p pins.PinState) string {
	var sb strings.Builder
	for _, c := range p {
		sb.WriteString(color.New(attribute(c)).Sprint("●"))
		sb.WriteByte(' ')
	}
	return sb.String()
}

// FormatEval renders black then white pegs.
func FormatEval(black, white int) string {
	var sb strings.Builder
	for i := 0; i < black; i++ {
		sb.WriteString(pegStyle.Sprint("○ "))
	}
	for i := 0; i < white; i++ {
		sb.WriteString(pegStyle.Sprint("●"))
		sb.WriteByte(' ')
	}
	return sb.String()
}

// Prompter reads one line of input. *liner.State satisfies it.
type Prompter interface {
	Prompt(prompt string) (string, error)
}

type historian interface {
	AppendHistory(item string)
}

// NewLiner returns a terminal prompt where Ctrl-C aborts the current line.
// Callers must Close it to restore the terminal.
func NewLiner() *liner.State {
	line := liner.NewLiner()
	line.SetCtrlCAborts(true)
	return line
}

// Human is a player driven by keyboard input.
type Human struct {
	In  Prompter
	Out io.Writer
}

var _ players.Player = (*Human)(nil)

// Play prompts until a guess succeeds. Ending the input or aborting the
// prompt counts as giving up.
func (h *Human) Play(o players.Scorer) (pins.PinState, bool) {
	for {
		line, err := h.In.Prompt("Your guess: ")
		if err != nil {
			if !errors.Is(err, liner.ErrPromptAborted) && !errors.Is(err, io.EOF) {
				fmt.Fprintf(h.Out, "Error reading input: %v\n", err)
			}
			return pins.PinState{}, false
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		guess, err := pins.Parse(line)
		if err != nil {
			fmt.Fprintf(h.Out, "Error in input: %v\n", err)
			continue
		}
		if hist, ok := h.In.(historian); ok {
			hist.AppendHistory(line)
		}

		eval := o.EvalGuess(guess)
		if eval.IsSuccess() {
			return guess, true
		}
		fmt.Fprintf(h.Out, "%s ⇒  %s\n", FormatPins(guess), FormatEval(eval.Black(), eval.White()))
	}
}
