package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand/v2"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/mastermind/internal/config"
	"github.com/robalobadob/mastermind/internal/gen"
	"github.com/robalobadob/mastermind/internal/httpserver"
	"github.com/robalobadob/mastermind/internal/players"
	"github.com/robalobadob/mastermind/internal/store"
)

const usage = `usage: mastermind <command> [flags]

commands:
  serve                          run the JSON API
  play  [-gen NAME]              guess a secret yourself (letters b g y m r c)
  solve [-gen NAME] [-player P]  let a bot play one round
  bench [-gen NAME] [-player P] [-n N] [-seed S]
                                 let a bot play many rounds and report
`

func main() {
	cfg := config.Load()
	if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}

	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var err error
	switch cmd, args := os.Args[1], os.Args[2:]; cmd {
	case "serve":
		err = runServe(ctx, cfg)
	case "play":
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
		err = runPlay(args)
	case "solve":
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
		err = runSolve(args, os.Stdout)
	case "bench":
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
		err = runBench(ctx, args, os.Stdout)
	default:
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}
	if err != nil {
		log.Fatal().Err(err).Str("command", os.Args[1]).Msg("failed")
	}
}

func runServe(ctx context.Context, cfg config.Config) error {
	srv := httpserver.New(store.NewMemoryStore(), httpserver.Options{
		ClientOrigin: cfg.ClientOrigin,
		DailySalt:    cfg.DailySalt,
		MaxGuesses:   cfg.MaxGuesses,
	})
	log.Info().Str("port", cfg.Port).Msg("starting mastermind server")
	return srv.Start(ctx, ":"+cfg.Port)
}

// selection holds names resolved once from flags.
type selection struct {
	genKind    gen.Kind
	playerKind players.Kind
	seed       uint64
}

func parseSelection(fs *flag.FlagSet, args []string, withPlayer bool) (selection, error) {
	genName := fs.String("gen", string(gen.KindUniform4), "secret generator")
	var playerName *string
	if withPlayer {
		playerName = fs.String("player", string(players.KindStepper), "automated player")
	}
	seed := fs.Uint64("seed", 0, "random seed (0 = random)")
	if err := fs.Parse(args); err != nil {
		return selection{}, err
	}

	var sel selection
	var err error
	if sel.genKind, err = gen.ParseKind(*genName); err != nil {
		return sel, err
	}
	if withPlayer {
		if sel.playerKind, err = players.ParseKind(*playerName); err != nil {
			return sel, err
		}
	}
	sel.seed = *seed
	return sel, nil
}

func (s selection) rng() *rand.Rand {
	if s.seed == 0 {
		return gen.NewRand()
	}
	return gen.Seeded(s.seed)
}
