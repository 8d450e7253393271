package bench

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/robalobadob/mastermind/internal/gen"
	"github.com/robalobadob/mastermind/internal/players"
	"github.com/robalobadob/mastermind/internal/pins"
)

// constant always answers the same guess after one query.
type constant struct{ guess pins.PinState }

func (c constant) Play(o players.Scorer) (pins.PinState, bool) {
	o.EvalGuess(c.guess)
	return c.guess, true
}

// quitter gives up without asking.
type quitter struct{}

func (quitter) Play(players.Scorer) (pins.PinState, bool) { return pins.PinState{}, false }

func TestRunStepper(t *testing.T) {
	rep, err := Run(context.Background(), Config{
		Generator:     &gen.Uniform4{},
		Player:        players.Stepper{},
		GeneratorName: "uniform-4",
		PlayerName:    "stepper",
		Games:         0,
	})
	if !errors.Is(err, ErrNoGames) {
		t.Fatalf("zero games err=%v", err)
	}

	g, _ := gen.New(gen.KindUniform3, gen.Seeded(11))
	var progress bytes.Buffer
	rep, err = Run(context.Background(), Config{
		Generator:     g,
		Player:        players.Stepper{},
		GeneratorName: "uniform-3",
		PlayerName:    "stepper",
		Games:         500,
		Progress:      &progress,
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if rep.Games != 500 || rep.Solved+rep.GaveUp+rep.Wrong != 500 {
		t.Fatalf("report does not add up: %+v", rep)
	}
	if rep.GaveUp != 0 {
		t.Fatalf("stepper gave up %d times", rep.GaveUp)
	}
	if rep.MinEvals < 1 || rep.MaxEvals > 21 || rep.MinEvals > rep.MaxEvals {
		t.Fatalf("eval range %d..%d", rep.MinEvals, rep.MaxEvals)
	}
	if m := rep.MeanEvals(); m < float64(rep.MinEvals) || m > float64(rep.MaxEvals) {
		t.Fatalf("mean %.2f outside range", m)
	}
}

func TestRunClassifiesOutcomes(t *testing.T) {
	rep, err := Run(context.Background(), Config{
		Generator: gen.Fixed{},
		Player:    constant{guess: pins.Repeat(pins.Blue)},
		Games:     3,
	})
	if err != nil {
		t.Fatal(err)
	}
	if rep.Wrong != 3 || rep.Solved != 0 || rep.TotalEvals != 3 || rep.SuccessRate() != 0 {
		t.Fatalf("wrong guesses misreported: %+v", rep)
	}

	rep, _ = Run(context.Background(), Config{Generator: gen.Fixed{}, Player: constant{guess: gen.Fixed{}.Generate()}, Games: 2})
	if rep.Solved != 2 || rep.SuccessRate() != 1 {
		t.Fatalf("solves misreported: %+v", rep)
	}

	rep, _ = Run(context.Background(), Config{Generator: gen.Fixed{}, Player: quitter{}, Games: 4})
	if rep.GaveUp != 4 || rep.MinEvals != 0 || rep.MaxEvals != 0 {
		t.Fatalf("give-ups misreported: %+v", rep)
	}
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	rep, err := Run(ctx, Config{Generator: gen.Fixed{}, Player: players.Stepper{}, Games: 10})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err=%v", err)
	}
	if rep.Games != 0 {
		t.Fatalf("played %d games after cancel", rep.Games)
	}
}

func TestTable(t *testing.T) {
	var buf bytes.Buffer
	Table(&buf, Report{Player: "stepper", Generator: "fixed", Games: 2, Solved: 2, TotalEvals: 18, MinEvals: 9, MaxEvals: 9})
	out := buf.String()
	for _, want := range []string{"stepper", "fixed", "9.00", "100.0%"} {
		if !strings.Contains(out, want) {
			t.Errorf("table missing %q:\n%s", want, out)
		}
	}
	Table(io.Discard)
}

func TestReportString(t *testing.T) {
	r := Report{Player: "random", Generator: "uniform-4", Games: 4, Solved: 3, GaveUp: 1, TotalEvals: 10}
	if got := r.String(); got != "random/uniform-4: 3/4 solved, 1 gave up, 2.50 evals/game" {
		t.Fatalf("String()=%q", got)
	}
}
