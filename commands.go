package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/mastermind/internal/bench"
	"github.com/robalobadob/mastermind/internal/console"
	"github.com/robalobadob/mastermind/internal/gen"
	"github.com/robalobadob/mastermind/internal/oracle"
	"github.com/robalobadob/mastermind/internal/players"
)

// runPlay lets a human guess a secret at the terminal.
func runPlay(args []string) error {
	sel, err := parseSelection(flag.NewFlagSet("play", flag.ContinueOnError), args, false)
	if err != nil {
		return err
	}
	g, err := gen.New(sel.genKind, sel.rng())
	if err != nil {
		return err
	}

	line := console.NewLiner()
	defer line.Close()

	secret := g.Generate()
	o := oracle.New(secret)
	h := &console.Human{In: line, Out: os.Stdout}
	guess, ok := h.Play(o)
	switch {
	case ok && guess == secret:
		fmt.Printf("Solved in %d guesses.\n", o.NumEvals())
	case ok:
		fmt.Println("That was not the secret.")
	default:
		fmt.Printf("Gave up after %d guesses. The secret was %s\n", o.NumEvals(), console.FormatPins(secret))
	}
	return nil
}

// runSolve lets an automated player take one round.
func runSolve(args []string, out io.Writer) error {
	sel, err := parseSelection(flag.NewFlagSet("solve", flag.ContinueOnError), args, true)
	if err != nil {
		return err
	}
	rng := sel.rng()
	g, err := gen.New(sel.genKind, rng)
	if err != nil {
		return err
	}
	p, err := players.New(sel.playerKind, rng)
	if err != nil {
		return err
	}

	secret := g.Generate()
	o := oracle.New(secret)
	guess, ok := p.Play(o)

	fmt.Fprintf(out, "secret: %s %s\n", secret, console.FormatPins(secret))
	if !ok {
		fmt.Fprintf(out, "%s gave up after %d evaluations\n", sel.playerKind, o.NumEvals())
		return nil
	}
	fmt.Fprintf(out, "guess:  %s %s\n", guess, console.FormatPins(guess))
	fmt.Fprintf(out, "solved: %v in %d evaluations\n", guess == secret, o.NumEvals())
	return nil
}

// runBench plays many rounds and prints a summary table.
func runBench(ctx context.Context, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("bench", flag.ContinueOnError)
	n := fs.Int("n", 1000, "number of rounds")
	sel, err := parseSelection(fs, args, true)
	if err != nil {
		return err
	}
	rng := sel.rng()
	g, err := gen.New(sel.genKind, rng)
	if err != nil {
		return err
	}
	p, err := players.New(sel.playerKind, rng)
	if err != nil {
		return err
	}

	rep, err := bench.Run(ctx, bench.Config{
		Generator:     g,
		Player:        p,
		GeneratorName: string(sel.genKind),
		PlayerName:    string(sel.playerKind),
		Games:         *n,
		Progress:      os.Stderr,
	})
	bench.Table(out, rep)
	if err != nil {
		log.Warn().Err(err).Int("played", rep.Games).Msg("bench interrupted")
		return err
	}
	log.Info().Str("summary", rep.String()).Msg("bench done")
	return nil
}
