// internal/bench/bench.go
//
// Batch runner for automated players.
// Plays a number of independent rounds, one after another: each round gets a
// fresh secret and a fresh oracle, and nothing carries over between rounds.
// The player's answer is checked against the secret here, never trusted.

package bench

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/rs/zerolog/log"
	"github.com/schollz/progressbar/v3"

	"github.com/robalobadob/mastermind/internal/gen"
	"github.com/robalobadob/mastermind/internal/oracle"
	"github.com/robalobadob/mastermind/internal/players"
)

var ErrNoGames = errors.New("games must be positive")

// Config describes one batch.
type Config struct {
	Generator     gen.Generator
	Player        players.Player
	GeneratorName string
	PlayerName    string
	Games         int
	// Progress receives a progress bar; nil disables it.
	Progress io.Writer
}

// Report summarises a batch.
type Report struct {
	Generator  string
	Player     string
	Games      int
	Solved     int
	GaveUp     int
	Wrong      int
	TotalEvals uint64
	MinEvals   uint32
	MaxEvals   uint32
}

// MeanEvals is the average number of oracle queries per round.
func (r Report) MeanEvals() float64 {
	if r.Games == 0 {
		return 0
	}
	return float64(r.TotalEvals) / float64(r.Games)
}

// SuccessRate is the fraction of rounds that ended on the secret.
func (r Report) SuccessRate() float64 {
	if r.Games == 0 {
		return 0
	}
	return float64(r.Solved) / float64(r.Games)
}

// Run plays cfg.Games rounds. A cancelled context stops the batch between
// rounds and returns the partial report with the context error.
func Run(ctx context.Context, cfg Config) (Report, error) {
	if cfg.Games <= 0 {
		return Report{}, ErrNoGames
	}
	rep := Report{Generator: cfg.GeneratorName, Player: cfg.PlayerName}

	var bar *progressbar.ProgressBar
	if cfg.Progress != nil {
		bar = progressbar.NewOptions(cfg.Games,
			progressbar.OptionSetWriter(cfg.Progress),
			progressbar.OptionSetDescription(fmt.Sprintf("%s vs %s", cfg.PlayerName, cfg.GeneratorName)),
			progressbar.OptionShowCount(),
			progressbar.OptionClearOnFinish(),
		)
	}

	for i := 0; i < cfg.Games; i++ {
		if err := ctx.Err(); err != nil {
			return rep, err
		}
		secret := cfg.Generator.Generate()
		o := oracle.New(secret)
		guess, ok := cfg.Player.Play(o)

		n := o.NumEvals()
		rep.Games++
		rep.TotalEvals += uint64(n)
		if rep.Games == 1 || n < rep.MinEvals {
			rep.MinEvals = n
		}
		if n > rep.MaxEvals {
			rep.MaxEvals = n
		}
		switch {
		case !ok:
			rep.GaveUp++
		case guess == secret:
			rep.Solved++
		default:
			rep.Wrong++
			log.Debug().Str("secret", secret.String()).Str("guess", guess.String()).Msg("player finished on a wrong guess")
		}

		if bar != nil {
			_ = bar.Add(1)
		}
	}
	if bar != nil {
		_ = bar.Finish()
	}
	return rep, nil
}

// Table renders one or more reports as a text table.
func Table(w io.Writer, reports ...Report) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"Player", "Generator", "Games", "Solved", "Gave up", "Wrong", "Mean evals", "Min", "Max"})
	for _, r := range reports {
		t.AppendRow(table.Row{
			r.Player, r.Generator, r.Games,
			fmt.Sprintf("%d (%.1f%%)", r.Solved, 100*r.SuccessRate()),
			r.GaveUp, r.Wrong,
			fmt.Sprintf("%.2f", r.MeanEvals()),
			r.MinEvals, r.MaxEvals,
		})
	}
	t.SetStyle(table.StyleLight)
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 3, Align: text.AlignRight},
		{Number: 7, Align: text.AlignRight},
	})
	t.Render()
}

// String is a one-line summary for logs.
func (r Report) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s/%s: %d/%d solved", r.Player, r.Generator, r.Solved, r.Games)
	if r.GaveUp > 0 {
		fmt.Fprintf(&sb, ", %d gave up", r.GaveUp)
	}
	fmt.Fprintf(&sb, ", %.2f evals/game", r.MeanEvals())
	return sb.String()
}
