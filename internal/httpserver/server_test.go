package httpserver

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/robalobadob/mastermind/internal/gen"
	"github.com/robalobadob/mastermind/internal/store"
)

func newTestServer(t *testing.T, rows int) *Server {
	t.Helper()
	return New(store.NewMemoryStore(), Options{DailySalt: "test", MaxGuesses: rows})
}

func do(t *testing.T, s *Server, method, path, body string, out any) int {
	t.Helper()
	var rd *bytes.Reader
	if body != "" {
		rd = bytes.NewReader([]byte(body))
	} else {
		rd = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, rd)
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)
	if out != nil {
		if err := json.Unmarshal(rec.Body.Bytes(), out); err != nil {
			t.Fatalf("%s %s: decode %q: %v", method, path, rec.Body.String(), err)
		}
	}
	return rec.Code
}

func TestHealth(t *testing.T) {
	s := newTestServer(t, 0)
	var res map[string]bool
	if code := do(t, s, http.MethodGet, "/health", "", &res); code != http.StatusOK || !res["ok"] {
		t.Fatalf("health: %d %v", code, res)
	}
}

func TestGenerators(t *testing.T) {
	s := newTestServer(t, 0)
	var res generatorsRes
	do(t, s, http.MethodGet, "/generators", "", &res)
	if len(res.Generators) != 5 || len(res.Players) != 2 {
		t.Fatalf("generators: %+v", res)
	}
}

func TestPlayFixedGame(t *testing.T) {
	s := newTestServer(t, 0)

	var ng newGameRes
	if code := do(t, s, http.MethodPost, "/game/new", `{"generator":"fixed"}`, &ng); code != http.StatusOK {
		t.Fatalf("new: %d", code)
	}
	if ng.GameID == "" || ng.Generator != "fixed" || ng.Rows != 10 {
		t.Fatalf("new: %+v", ng)
	}

	var g guessRes
	do(t, s, http.MethodPost, "/game/guess", `{"gameId":"`+ng.GameID+`","guess":"rygc"}`, &g)
	if g.Black != 0 || g.White != 4 || g.State != "playing" || g.Secret != "" {
		t.Fatalf("first guess: %+v", g)
	}

	do(t, s, http.MethodPost, "/game/guess", `{"gameId":"`+ng.GameID+`","guess":"cgyr"}`, &g)
	if g.Black != 4 || g.White != 0 || g.State != "won" || g.Guesses != 2 || g.Secret != "cgyr" {
		t.Fatalf("winning guess: %+v", g)
	}

	var errRes map[string]string
	if code := do(t, s, http.MethodPost, "/game/guess", `{"gameId":"`+ng.GameID+`","guess":"cgyr"}`, &errRes); code != http.StatusConflict {
		t.Fatalf("guess after win: %d %v", code, errRes)
	}

	var gr gameRes
	do(t, s, http.MethodGet, "/game/"+ng.GameID, "", &gr)
	if gr.State != "won" || len(gr.Turns) != 2 || gr.Turns[0].Guess != "rygc" || gr.Secret != "cgyr" {
		t.Fatalf("history: %+v", gr)
	}
}

func TestGameHidesSecretUntilFinished(t *testing.T) {
	s := newTestServer(t, 1)
	var ng newGameRes
	do(t, s, http.MethodPost, "/game/new", `{"generator":"uniform-2"}`, &ng)

	var gr gameRes
	do(t, s, http.MethodGet, "/game/"+ng.GameID, "", &gr)
	if gr.Secret != "" || gr.State != "playing" {
		t.Fatalf("secret leaked: %+v", gr)
	}

	var g guessRes
	do(t, s, http.MethodPost, "/game/guess", `{"gameId":"`+ng.GameID+`","guess":"bbbb"}`, &g)
	if g.State == "playing" || len(g.Secret) != 4 {
		t.Fatalf("one-row game: %+v", g)
	}
}

func TestGameErrors(t *testing.T) {
	s := newTestServer(t, 0)
	var res map[string]string

	if code := do(t, s, http.MethodPost, "/game/new", `{"generator":"uniform-9"}`, &res); code != http.StatusBadRequest || !strings.Contains(res["error"], "unknown generator") {
		t.Fatalf("bad generator: %d %v", code, res)
	}
	if code := do(t, s, http.MethodPost, "/game/guess", `{"gameId":"nope","guess":"bbbb"}`, &res); code != http.StatusNotFound {
		t.Fatalf("missing game: %d", code)
	}
	if code := do(t, s, http.MethodPost, "/game/guess", `not json`, &res); code != http.StatusBadRequest {
		t.Fatalf("bad json: %d", code)
	}

	var ng newGameRes
	do(t, s, http.MethodPost, "/game/new", ``, &ng)
	if ng.Generator != "uniform-4" {
		t.Fatalf("default generator: %+v", ng)
	}
	if code := do(t, s, http.MethodPost, "/game/guess", `{"gameId":"`+ng.GameID+`","guess":"bgyz"}`, &res); code != http.StatusBadRequest {
		t.Fatalf("invalid guess: %d %v", code, res)
	}
	if code := do(t, s, http.MethodGet, "/nowhere", "", &res); code != http.StatusNotFound || res["path"] != "/nowhere" {
		t.Fatalf("404: %d %v", code, res)
	}
}

func TestSolve(t *testing.T) {
	s := newTestServer(t, 0)
	var res solveRes
	if code := do(t, s, http.MethodPost, "/game/solve", `{"generator":"fixed","player":"stepper"}`, &res); code != http.StatusOK {
		t.Fatalf("solve: %d", code)
	}
	if !res.Solved || res.GaveUp || res.Secret != "cgyr" || res.Guess != "cgyr" || res.Evals == 0 || res.Evals > 21 {
		t.Fatalf("solve: %+v", res)
	}

	do(t, s, http.MethodPost, "/game/solve", `{}`, &res)
	if !res.Solved {
		t.Fatalf("default solve: %+v", res)
	}

	var errRes map[string]string
	if code := do(t, s, http.MethodPost, "/game/solve", `{"player":"oracle"}`, &errRes); code != http.StatusBadRequest {
		t.Fatalf("bad player: %d", code)
	}
}

func TestDaily(t *testing.T) {
	s := newTestServer(t, 0)
	day := time.Date(2026, 10, 16, 12, 0, 0, 0, time.UTC)
	s.daily.Now = func() time.Time { return day }
	want := (&gen.Daily{Salt: "test", Now: s.daily.Now}).Generate().String()

	var a, b dailyRes
	do(t, s, http.MethodPost, "/daily/new", "", &a)
	do(t, s, http.MethodPost, "/daily/new", "", &b)
	if a.Date != "2026-10-16" || a.GameID == b.GameID {
		t.Fatalf("daily: %+v %+v", a, b)
	}

	var g guessRes
	do(t, s, http.MethodPost, "/game/guess", `{"gameId":"`+b.GameID+`","guess":"`+want+`"}`, &g)
	if g.State != "won" || g.Secret != want {
		t.Fatalf("daily guess: %+v", g)
	}
}

func TestCORSPreflight(t *testing.T) {
	s := New(store.NewMemoryStore(), Options{ClientOrigin: "https://example.test"})
	req := httptest.NewRequest(http.MethodOptions, "/game/new", nil)
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)
	if rec.Code != http.StatusNoContent || rec.Header().Get("Access-Control-Allow-Origin") != "https://example.test" {
		t.Fatalf("preflight: %d %v", rec.Code, rec.Header())
	}
}
