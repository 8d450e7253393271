// internal/httpserver/server.go
//
// HTTP server wiring for the code-breaking game.
// Responsibilities:
//   - Router + middleware (JSON, CORS, timeouts, panic recovery, request IDs, access log).
//   - Public endpoints: "/", "/health", "/generators".
//   - Game endpoints: POST /game/new, POST /game/guess, GET /game/{id}.
//   - Bot endpoint: POST /game/solve runs an automated player on a fresh secret.
//   - Daily endpoint: mounted under /daily.
//
// Notes:
//   - Games live in the in-memory store only.
//   - The secret never leaves the server while a game is in progress.

package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/mastermind/internal/game"
	"github.com/robalobadob/mastermind/internal/gen"
	"github.com/robalobadob/mastermind/internal/oracle"
	"github.com/robalobadob/mastermind/internal/pins"
	"github.com/robalobadob/mastermind/internal/players"
	"github.com/robalobadob/mastermind/internal/store"
)

// Options configures a Server.
type Options struct {
	ClientOrigin string
	DailySalt    string
	MaxGuesses   int
}

// Server bundles router, game store and settings.
type Server struct {
	r     *chi.Mux
	store store.Store
	opts  Options
	daily *gen.Daily
}

// New constructs a Server, installs middleware, and registers routes.
func New(st store.Store, opts Options) *Server {
	if opts.ClientOrigin == "" {
		opts.ClientOrigin = "http://localhost:5173"
	}
	s := &Server{r: chi.NewRouter(), store: st, opts: opts, daily: gen.NewDaily(opts.DailySalt)}

	// --- middleware ---
	s.r.Use(chimw.RequestID)                 // add X-Request-ID
	s.r.Use(chimw.RealIP)                    // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(hlog.NewHandler(log.Logger))     // request-scoped logger
	s.r.Use(accessLog)                       // one line per request
	s.r.Use(chimw.Recoverer)                 // recover from panics
	s.r.Use(chimw.Timeout(10 * time.Second)) // bound handler time
	s.r.Use(jsonContentType)                 // default JSON responses
	s.r.Use(s.cors)                          // credentials-friendly CORS

	// --- diagnostics ---
	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"service":"mastermind-go","endpoints":["/health","/generators","POST /game/new","POST /game/guess","GET /game/{id}","POST /game/solve","POST /daily/new"]}`))
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"ok":true}`))
	})
	s.r.Get("/generators", s.handleGenerators)

	s.r.Route("/game", func(r chi.Router) {
		r.Post("/new", s.handleNewGame)
		r.Post("/guess", s.handleGuess)
		r.Post("/solve", s.handleSolve)
		r.Get("/{id}", s.handleGetGame)
	})

	s.mountDaily(s.r)

	// JSON 404 for easier debugging
	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not_found", "path": r.URL.Path})
	})

	return s
}

// Start serves HTTP on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context, addr string) error {
	srv := &http.Server{Addr: addr, Handler: s.r, ReadHeaderTimeout: 5 * time.Second}
	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// cors enables credentialed CORS for the configured origin.
func (s *Server) cors(next http.Handler) http.Handler {
	origin := s.opts.ClientOrigin
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Vary", "Origin")
		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Access-Control-Allow-Credentials", "true")
		w.Header().Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// accessLog writes one structured line per request.
func accessLog(next http.Handler) http.Handler {
	return hlog.AccessHandler(func(r *http.Request, status, size int, d time.Duration) {
		lvl := zerolog.InfoLevel
		if status >= http.StatusInternalServerError {
			lvl = zerolog.ErrorLevel
		}
		hlog.FromRequest(r).WithLevel(lvl).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Str("reqId", chimw.GetReqID(r.Context())).
			Int("status", status).
			Int("size", size).
			Dur("duration", d).
			Msg("request")
	})(next)
}

// writeJSON encodes v with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// ------------------------------ GAME ---------------------------------------

// generatorsRes lists the accepted names for /game/new and /game/solve.
type generatorsRes struct {
	Generators []gen.Kind     `json:"generators"`
	Players    []players.Kind `json:"players"`
}

func (s *Server) handleGenerators(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, generatorsRes{Generators: gen.Kinds(), Players: players.Kinds()})
}

// newGameReq/Res payloads for POST /game/new.
type newGameReq struct {
	Generator string `json:"generator"` // defaults to uniform-4
}
type newGameRes struct {
	GameID    string `json:"gameId"`
	Generator string `json:"generator"`
	Rows      int    `json:"rows"`
}

// handleNewGame draws a secret from the named generator and stores a new game.
func (s *Server) handleNewGame(w http.ResponseWriter, r *http.Request) {
	var req newGameReq
	_ = json.NewDecoder(r.Body).Decode(&req)
	if req.Generator == "" {
		req.Generator = string(gen.KindUniform4)
	}

	g, err := s.generator(req.Generator)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.startGame(w, r, g.Generate(), req.Generator, func(gm *game.Game) any {
		return newGameRes{GameID: gm.ID, Generator: gm.Generator, Rows: gm.Rows}
	})
}

// startGame stores a new game around secret and encodes the response built by res.
func (s *Server) startGame(w http.ResponseWriter, r *http.Request, secret pins.PinState, generator string, res func(*game.Game) any) {
	gm := game.New(secret, generator, s.opts.MaxGuesses)
	if err := s.store.Save(r.Context(), gm); err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("save game")
		writeError(w, http.StatusInternalServerError, "save_failed")
		return
	}
	hlog.FromRequest(r).Debug().Str("gameId", gm.ID).Str("generator", generator).Msg("game started")
	writeJSON(w, http.StatusOK, res(gm))
}

// guessReq/Res payloads for POST /game/guess.
type guessReq struct {
	GameID string `json:"gameId"`
	Guess  string `json:"guess"`
}
type guessRes struct {
	Black   int        `json:"black"`
	White   int        `json:"white"`
	State   game.State `json:"state"` // "playing" | "won" | "lost"
	Guesses int        `json:"guesses"`
	Secret  string     `json:"secret,omitempty"` // only once finished
}

// handleGuess scores a guess against a stored game.
func (s *Server) handleGuess(w http.ResponseWriter, r *http.Request) {
	var req guessReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	gm, err := s.store.Get(r.Context(), req.GameID)
	if err != nil {
		writeError(w, http.StatusNotFound, "not_found")
		return
	}
	eval, state, err := gm.ApplyGuess(req.Guess)
	switch {
	case errors.Is(err, game.ErrFinished):
		writeError(w, http.StatusConflict, err.Error())
		return
	case err != nil:
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	res := guessRes{Black: eval.Black(), White: eval.White(), State: state, Guesses: len(gm.Turns())}
	if secret, ok := gm.Reveal(); ok {
		res.Secret = secret.String()
		hlog.FromRequest(r).Info().Str("gameId", gm.ID).Str("state", string(state)).Int("guesses", res.Guesses).Msg("game finished")
	}
	writeJSON(w, http.StatusOK, res)
}

// turnRes is one row of a game's history.
type turnRes struct {
	Guess string `json:"guess"`
	Black int    `json:"black"`
	White int    `json:"white"`
}

type gameRes struct {
	GameID    string     `json:"gameId"`
	Generator string     `json:"generator"`
	Rows      int        `json:"rows"`
	State     game.State `json:"state"`
	Turns     []turnRes  `json:"turns"`
	Secret    string     `json:"secret,omitempty"`
}

// handleGetGame returns the history of a game.
func (s *Server) handleGetGame(w http.ResponseWriter, r *http.Request) {
	gm, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusNotFound, "not_found")
		return
	}
	res := gameRes{GameID: gm.ID, Generator: gm.Generator, Rows: gm.Rows, State: gm.State(), Turns: []turnRes{}}
	for _, t := range gm.Turns() {
		res.Turns = append(res.Turns, turnRes{Guess: t.Guess.String(), Black: t.Eval.Black(), White: t.Eval.White()})
	}
	if secret, ok := gm.Reveal(); ok {
		res.Secret = secret.String()
	}
	writeJSON(w, http.StatusOK, res)
}

// solveReq/Res payloads for POST /game/solve.
type solveReq struct {
	Generator string `json:"generator"` // defaults to uniform-4
	Player    string `json:"player"`    // defaults to stepper
}
type solveRes struct {
	Secret string `json:"secret"`
	Guess  string `json:"guess,omitempty"`
	Solved bool   `json:"solved"`
	GaveUp bool   `json:"gaveUp"`
	Evals  uint32 `json:"evals"`
}

// handleSolve lets an automated player take one round against a fresh secret.
func (s *Server) handleSolve(w http.ResponseWriter, r *http.Request) {
	var req solveReq
	_ = json.NewDecoder(r.Body).Decode(&req)
	if req.Generator == "" {
		req.Generator = string(gen.KindUniform4)
	}
	if req.Player == "" {
		req.Player = string(players.KindStepper)
	}

	g, err := s.generator(req.Generator)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	pk, err := players.ParseKind(req.Player)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	p, err := players.New(pk, gen.NewRand())
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	secret := g.Generate()
	o := oracle.New(secret)
	guess, ok := p.Play(o)

	res := solveRes{Secret: secret.String(), Solved: ok && guess == secret, GaveUp: !ok, Evals: o.NumEvals()}
	if ok {
		res.Guess = guess.String()
	}
	hlog.FromRequest(r).Debug().Str("player", req.Player).Str("generator", req.Generator).
		Bool("solved", res.Solved).Uint32("evals", res.Evals).Msg("solve")
	writeJSON(w, http.StatusOK, res)
}

// generator resolves a generator name with a fresh random source.
func (s *Server) generator(name string) (gen.Generator, error) {
	k, err := gen.ParseKind(name)
	if err != nil {
		return nil, err
	}
	return gen.New(k, gen.NewRand())
}
