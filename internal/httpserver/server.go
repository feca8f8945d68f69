// internal/httpserver/server.go
//
// HTTP server wiring for the Colordle solver.
// Responsibilities:
//   - Router + middleware (JSON, CORS, timeouts, panic recovery, request IDs).
//   - Public endpoints: "/", "/health", "/debug/colors".
//   - Database browsing: GET /colors (name search), GET /baselines.
//   - Similarity solving: POST /match, POST /solve.
//   - Digit solving: mounted under /digits (routes_digits.go).
//   - Practice target: mounted under /practice (routes_practice.go).
//
// Notes:
//   - Every request recomputes from the submitted guesses; the server holds
//     no per-player state. Digit sessions travel as signed tokens.
//   - Validation failures answer 400 with {"error": "..."}.

package httpserver

import (
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/5plinkK/ColordleSolver/internal/colordb"
	"github.com/5plinkK/ColordleSolver/internal/colorspace"
	"github.com/5plinkK/ColordleSolver/internal/config"
	"github.com/5plinkK/ColordleSolver/internal/session"
	"github.com/5plinkK/ColordleSolver/internal/solver"
)

// Server bundles the router, the reference database and the session codec.
type Server struct {
	r     *chi.Mux
	cfg   config.Config
	db    []colordb.Entry
	codec *session.Codec
	now   func() time.Time
}

// New constructs a Server, installs middleware, and registers routes.
// db is shared read-only across requests.
func New(cfg config.Config, db []colordb.Entry) *Server {
	s := &Server{
		r:     chi.NewRouter(),
		cfg:   cfg,
		db:    db,
		codec: session.NewCodec(cfg.SessionSecret, cfg.SessionTTL),
		now:   time.Now,
	}

	// --- middleware ---
	s.r.Use(chimw.RequestID)                 // add X-Request-ID
	s.r.Use(chimw.RealIP)                    // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(chimw.Recoverer)                 // recover from panics
	s.r.Use(chimw.Timeout(10 * time.Second)) // bound handler time
	s.r.Use(jsonContentType)                 // default JSON responses
	s.r.Use(cors(cfg.ClientOrigin))

	// --- diagnostics ---
	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"service":"colordle-solver","endpoints":["/health","/colors","/baselines","POST /match","POST /solve","POST /digits/*","/practice/*"]}`))
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"ok":true}`))
	})
	s.r.Get("/debug/colors", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]int{"colors": len(s.db)})
	})

	s.r.Get("/colors", s.handleSearch)
	s.r.Get("/baselines", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, colordb.Baselines())
	})
	s.r.Post("/match", s.handleMatch)
	s.r.Post("/solve", s.handleSolve)

	s.r.Route("/digits", s.mountDigits)
	s.r.Route("/practice", s.mountPractice)

	// JSON 404 for easier debugging
	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "not_found: "+r.URL.Path)
	})

	return s
}

// Start begins serving HTTP on addr.
func (s *Server) Start(addr string) error { return http.ListenAndServe(addr, s.r) }

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

// cors enables credentialed CORS for a single origin.
func cors(origin string) func(http.Handler) http.Handler {
	if origin == "" {
		origin = "http://localhost:5173"
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Vary", "Origin")
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Credentials", "true")
			w.Header().Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// ------------------------------ COLORS -------------------------------------

// handleSearch serves GET /colors?q=&limit=.
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	limit, err := queryInt(r, "limit")
	if err != nil {
		writeError(w, http.StatusBadRequest, "limit must be an integer")
		return
	}
	writeJSON(w, colordb.Search(s.db, r.URL.Query().Get("q"), limit))
}

// ---------------------------- SIMILARITY -----------------------------------

// constraintReq is one reference guess and the similarity the game reported.
type constraintReq struct {
	Hex   string   `json:"hex"`
	Score *float64 `json:"score"`
}

type matchReq struct {
	Constraints []constraintReq `json:"constraints"`
	Limit       int             `json:"limit"`
}

// matchRes mirrors solver.CandidateMatch with JSON-safe errors: malformed
// database rows have no RGB and null errors.
type matchRes struct {
	Name              string          `json:"name"`
	Hex               string          `json:"hex"`
	RGB               *colorspace.RGB `json:"rgb"`
	TotalSquaredError *float64        `json:"error"`
	AverageError      *float64        `json:"averageError"`
	Confidence        float64         `json:"confidence"`
}

// handleMatch ranks the database against the submitted constraints.
func (s *Server) handleMatch(w http.ResponseWriter, r *http.Request) {
	var req matchReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	cs, err := parseConstraints(req.Constraints)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	limit := req.Limit
	if limit <= 0 {
		limit = s.cfg.MatchLimit
	}

	matches := solver.FindBestMatches(cs, s.db, limit)
	out := make([]matchRes, len(matches))
	for i, m := range matches {
		out[i] = matchRes{
			Name:              m.Entry.Name,
			Hex:               m.Entry.Hex,
			TotalSquaredError: finite(m.TotalSquaredError),
			AverageError:      finite(m.AverageError),
			Confidence:        m.Confidence,
		}
		if m.Valid {
			rgb := m.RGB
			out[i].RGB = &rgb
		}
	}
	writeJSON(w, map[string]any{"matches": out})
}

// handleSolve runs the continuous search. No constraints yields the
// midpoint gray with zero error.
func (s *Server) handleSolve(w http.ResponseWriter, r *http.Request) {
	var req matchReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	cs, err := parseConstraints(req.Constraints)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, solver.SolveDetailed(cs))
}

func parseConstraints(in []constraintReq) ([]solver.Constraint, error) {
	out := make([]solver.Constraint, 0, len(in))
	for i, c := range in {
		if c.Score == nil {
			return nil, fmt.Errorf("constraint %d: score is required", i)
		}
		sc, err := solver.ParseConstraint(c.Hex, *c.Score)
		if err != nil {
			return nil, fmt.Errorf("constraint %d: %w", i, err)
		}
		out = append(out, sc)
	}
	return out, nil
}

// ------------------------------- small util --------------------------------

func writeJSON(w http.ResponseWriter, v any) {
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Warn().Err(err).Msg("encode response")
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

// queryInt parses an optional integer query parameter; absent means 0.
func queryInt(r *http.Request, key string) (int, error) {
	v := r.URL.Query().Get(key)
	if v == "" {
		return 0, nil
	}
	return strconv.Atoi(v)
}

// finite returns nil for values JSON cannot carry.
func finite(v float64) *float64 {
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return nil
	}
	return &v
}
