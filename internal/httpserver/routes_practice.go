// internal/httpserver/routes_practice.go
//
// HTTP routes for the daily practice target.
//   - GET  /practice       → today's date key and database size
//   - POST /practice/guess → grade a guess against today's color
//
// The target is derived from the date and PRACTICE_SALT, so every request
// recomputes it and nothing about a player's attempts is kept.

package httpserver

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/5plinkK/ColordleSolver/internal/digits"
	"github.com/5plinkK/ColordleSolver/internal/practice"
)

// mountPractice registers all /practice routes.
func (s *Server) mountPractice(r chi.Router) {
	r.Get("/", s.handlePracticeToday)
	r.Post("/guess", s.handlePracticeGuess)
}

func (s *Server) handlePracticeToday(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]any{"date": practice.DateKey(s.now()), "colors": len(s.db)})
}

type practiceGuessReq struct {
	Hex string `json:"hex"`
}

type practiceGuessRes struct {
	Date       string            `json:"date"`
	Similarity float64           `json:"similarity"`
	Feedback   []digits.Feedback `json:"feedback"`
	Guess      string            `json:"guess"`
	Solved     bool              `json:"solved"`
}

// handlePracticeGuess returns both kinds of feedback for one guess.
func (s *Server) handlePracticeGuess(w http.ResponseWriter, r *http.Request) {
	var req practiceGuessReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	now := s.now()
	target, err := practice.Target(now, s.cfg.PracticeSalt, s.db)
	if err != nil {
		log.Warn().Int("colors", len(s.db)).Msg("practice requested with no usable colors")
		writeError(w, http.StatusServiceUnavailable, err.Error())
		return
	}
	res, err := practice.Grade(target, req.Hex)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, practiceGuessRes{
		Date:       practice.DateKey(now),
		Similarity: res.Similarity,
		Feedback:   res.Feedback.Feedback[:],
		Guess:      res.Feedback.Hex,
		Solved:     res.Solved(),
	})
}
