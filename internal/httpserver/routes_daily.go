// internal/httpserver/routes_daily.go
//
// HTTP route for the "Daily Challenge" mode.
//   - POST /daily/new → start a game on today's secret
//
// Everyone gets the same secret on a given UTC date; it is derived from the
// date and DAILY_SALT, so nothing has to be stored to keep it stable.
// Guesses go through the regular POST /game/guess endpoint.

package httpserver

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/robalobadob/mastermind/internal/game"
)

// dailyGenerator is the generator name recorded on daily games.
const dailyGenerator = "daily"

// dailyRes is returned by /daily/new.
type dailyRes struct {
	GameID string `json:"gameId"`
	Date   string `json:"date"`
	Rows   int    `json:"rows"`
}

// mountDaily registers all /daily routes.
func (s *Server) mountDaily(r chi.Router) {
	r.Route("/daily", func(r chi.Router) {
		r.Post("/new", s.handleDailyNew)
	})
}

// handleDailyNew starts a game on the current date's secret.
func (s *Server) handleDailyNew(w http.ResponseWriter, r *http.Request) {
	date := s.daily.Date()
	s.startGame(w, r, s.daily.Generate(), dailyGenerator, func(gm *game.Game) any {
		return dailyRes{GameID: gm.ID, Date: date, Rows: gm.Rows}
	})
}
