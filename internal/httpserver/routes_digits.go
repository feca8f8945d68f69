// internal/httpserver/routes_digits.go
//
// HTTP routes for the hex-digit mode.
// Exposes two endpoints under /digits:
//   - POST /digits/filter → narrow the database with a full guess history
//   - POST /digits/guess  → append one guess to a token-carried session
//
// The session is a signed snapshot held by the client. Each guess returns a
// fresh token; nothing is stored server side.

package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/5plinkK/ColordleSolver/internal/colordb"
	"github.com/5plinkK/ColordleSolver/internal/digits"
	"github.com/5plinkK/ColordleSolver/internal/session"
)

// listLimit caps the colors returned by the digit endpoints.
const listLimit = 100

// mountDigits registers all /digits routes.
func (s *Server) mountDigits(r chi.Router) {
	r.Post("/filter", s.handleDigitsFilter)
	r.Post("/guess", s.handleDigitsGuess)
}

// feedbackField accepts either "ccaapp" or ["correct","correct",...].
type feedbackField []digits.Feedback

func (f *feedbackField) UnmarshalJSON(b []byte) error {
	var str string
	if err := json.Unmarshal(b, &str); err == nil {
		fb, err := digits.ParseFeedbackString(str)
		if err != nil {
			return err
		}
		*f = fb
		return nil
	}
	var list []string
	if err := json.Unmarshal(b, &list); err != nil {
		return digits.ErrInvalidFeedback
	}
	out := make([]digits.Feedback, len(list))
	for i, s := range list {
		fb, err := digits.ParseFeedback(s)
		if err != nil {
			return err
		}
		out[i] = fb
	}
	*f = out
	return nil
}

// guessField is one entered guess with its tiles.
type guessField struct {
	Hex      string        `json:"hex"`
	Feedback feedbackField `json:"feedback"`
}

func (g guessField) record() (digits.GuessRecord, error) {
	return digits.NewGuessRecord(g.Hex, g.Feedback)
}

// listRes is the narrowed database: total survivors plus the first few.
type listRes struct {
	Count  int             `json:"count"`
	Colors []colordb.Entry `json:"colors"`
}

func newListRes(survivors []colordb.Entry, limit int) listRes {
	if limit <= 0 || limit > listLimit {
		limit = listLimit
	}
	shown := survivors
	if len(shown) > limit {
		shown = shown[:limit]
	}
	return listRes{Count: len(survivors), Colors: shown}
}

// -----------------------------------------------------------------------------
// /digits/filter

type filterReq struct {
	History []guessField `json:"history"`
	Limit   int          `json:"limit"`
}

// handleDigitsFilter applies a complete history in one call.
func (s *Server) handleDigitsFilter(w http.ResponseWriter, r *http.Request) {
	var req filterReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, badJSON(err))
		return
	}
	var h digits.History
	for _, g := range req.History {
		rec, err := g.record()
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		h = h.Append(rec)
	}
	writeJSON(w, newListRes(digits.Filter(s.db, h), req.Limit))
}

// -----------------------------------------------------------------------------
// /digits/guess

type digitsGuessReq struct {
	Token string `json:"token"`
	guessField
}

type digitsGuessRes struct {
	Token     string         `json:"token"`
	ExpiresAt time.Time      `json:"expiresAt"`
	History   digits.History `json:"history"`
	listRes
}

// handleDigitsGuess decodes the caller's snapshot, appends the guess, and
// returns the new snapshot token with the filtered list.
// The token may come in the body or as "Authorization: Bearer <token>".
func (s *Server) handleDigitsGuess(w http.ResponseWriter, r *http.Request) {
	var req digitsGuessReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, badJSON(err))
		return
	}
	tok := req.Token
	if tok == "" {
		tok = bearer(r)
	}
	snap, err := s.codec.Decode(tok)
	if err != nil {
		writeError(w, http.StatusUnauthorized, session.ErrInvalidToken.Error())
		return
	}
	rec, err := req.record()
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	next := snap.With(rec)
	token, exp, err := s.codec.Encode(next)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "sign_failed")
		return
	}
	writeJSON(w, digitsGuessRes{
		Token:     token,
		ExpiresAt: exp.UTC(),
		History:   next.History,
		listRes:   newListRes(digits.Filter(s.db, next.History), listLimit),
	})
}

// bearer extracts "Authorization: Bearer <token>".
func bearer(r *http.Request) string {
	if a := r.Header.Get("Authorization"); strings.HasPrefix(strings.ToLower(a), "bearer ") {
		return strings.TrimSpace(a[7:])
	}
	return ""
}

// badJSON surfaces feedback parse errors raised inside UnmarshalJSON.
func badJSON(err error) string {
	if errors.Is(err, digits.ErrInvalidFeedback) {
		return err.Error()
	}
	return "bad_json"
}
