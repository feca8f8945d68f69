package httpserver

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/5plinkK/ColordleSolver/internal/colordb"
	"github.com/5plinkK/ColordleSolver/internal/colorspace"
	"github.com/5plinkK/ColordleSolver/internal/config"
	"github.com/5plinkK/ColordleSolver/internal/deltae"
	"github.com/5plinkK/ColordleSolver/internal/practice"
)

var testDB = []colordb.Entry{
	{Name: "Red", Hex: "#FF0000"},
	{Name: "Broken", Hex: "#XYZ"},
	{Name: "Deep Ocean", Hex: "#2A4B5F"},
	{Name: "Black", Hex: "#000000"},
	{Name: "Blue", Hex: "#0000FF"},
	{Name: "Dark Blue", Hex: "#00008B"},
}

func newTestServer() *Server {
	return New(config.Config{
		SessionSecret: "test-secret",
		SessionTTL:    time.Hour,
		ClientOrigin:  "http://example.test",
		PracticeSalt:  "salt",
		MatchLimit:    3,
	}, testDB)
}

func do(t *testing.T, s *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), v); err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
}

// score reports the similarity the game would show for guess against target.
func score(target, guess string) float64 {
	a, _ := colorspace.ParseHex(target)
	b, _ := colorspace.ParseHex(guess)
	return 100 - deltae.CIEDE2000(colorspace.ToLab(a), colorspace.ToLab(b))
}

func TestDiagnostics(t *testing.T) {
	s := newTestServer()
	rec := do(t, s, http.MethodGet, "/health", "")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"ok":true`) {
		t.Errorf("/health = %d %s", rec.Code, rec.Body)
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "http://example.test" {
		t.Errorf("CORS origin = %q", got)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "application/json") {
		t.Errorf("Content-Type = %q", ct)
	}

	var dbg map[string]int
	decode(t, do(t, s, http.MethodGet, "/debug/colors", ""), &dbg)
	if dbg["colors"] != len(testDB) {
		t.Errorf("/debug/colors = %v", dbg)
	}

	if rec := do(t, s, http.MethodOptions, "/match", ""); rec.Code != http.StatusNoContent {
		t.Errorf("preflight = %d", rec.Code)
	}
	if rec := do(t, s, http.MethodGet, "/nope", ""); rec.Code != http.StatusNotFound {
		t.Errorf("unknown path = %d", rec.Code)
	}
}

func TestSearchAndBaselines(t *testing.T) {
	s := newTestServer()
	var got []colordb.Entry
	decode(t, do(t, s, http.MethodGet, "/colors?q=blue", ""), &got)
	if len(got) != 2 || got[0].Name != "Blue" || got[1].Name != "Dark Blue" {
		t.Errorf("/colors?q=blue = %v", got)
	}
	decode(t, do(t, s, http.MethodGet, "/colors?q=blue&limit=1", ""), &got)
	if len(got) != 1 {
		t.Errorf("limit=1 returned %d", len(got))
	}
	if rec := do(t, s, http.MethodGet, "/colors?q=blue&limit=x", ""); rec.Code != http.StatusBadRequest {
		t.Errorf("bad limit = %d", rec.Code)
	}

	var base []colordb.Color
	decode(t, do(t, s, http.MethodGet, "/baselines", ""), &base)
	if len(base) != 4 || base[0].Hex != "#00FFFF" || base[3].Name != "White" {
		t.Errorf("/baselines = %v", base)
	}
}

func TestMatch(t *testing.T) {
	s := newTestServer()
	body, _ := json.Marshal(map[string]any{
		"constraints": []map[string]any{
			{"hex": "#00FFFF", "score": score("#2A4B5F", "#00FFFF")},
			{"hex": "#FFFFFF", "score": score("#2A4B5F", "#FFFFFF")},
		},
		"limit": 10,
	})
	rec := do(t, s, http.MethodPost, "/match", string(body))
	if rec.Code != http.StatusOK {
		t.Fatalf("/match = %d %s", rec.Code, rec.Body)
	}
	var res struct {
		Matches []struct {
			Name         string          `json:"name"`
			RGB          *colorspace.RGB `json:"rgb"`
			Error        *float64        `json:"error"`
			AverageError *float64        `json:"averageError"`
			Confidence   float64         `json:"confidence"`
		} `json:"matches"`
	}
	decode(t, rec, &res)
	if len(res.Matches) != len(testDB) {
		t.Fatalf("got %d matches", len(res.Matches))
	}
	if res.Matches[0].Name != "Deep Ocean" || *res.Matches[0].Error > 1e-9 {
		t.Errorf("best = %+v", res.Matches[0])
	}
	last := res.Matches[len(res.Matches)-1]
	if last.Name != "Broken" || last.Error != nil || last.RGB != nil || last.Confidence != 0 {
		t.Errorf("malformed row = %+v", last)
	}
}

func TestMatchDefaultLimitAndValidation(t *testing.T) {
	s := newTestServer()
	var res struct {
		Matches []json.RawMessage `json:"matches"`
	}
	decode(t, do(t, s, http.MethodPost, "/match", `{"constraints":[{"hex":"#FFFFFF","score":40}]}`), &res)
	if len(res.Matches) != 3 {
		t.Errorf("default limit gave %d, want 3", len(res.Matches))
	}

	decode(t, do(t, s, http.MethodPost, "/match", `{"constraints":[]}`), &res)
	if len(res.Matches) != 0 {
		t.Errorf("no constraints gave %d matches", len(res.Matches))
	}

	for name, body := range map[string]string{
		"bad json":      `{`,
		"bad hex":       `{"constraints":[{"hex":"#FFF","score":40}]}`,
		"missing score": `{"constraints":[{"hex":"#FFFFFF"}]}`,
		"score range":   `{"constraints":[{"hex":"#FFFFFF","score":140}]}`,
	} {
		rec := do(t, s, http.MethodPost, "/match", body)
		var e map[string]string
		decode(t, rec, &e)
		if rec.Code != http.StatusBadRequest || e["error"] == "" {
			t.Errorf("%s: %d %v", name, rec.Code, e)
		}
	}
}

func TestSolve(t *testing.T) {
	s := newTestServer()
	var sol struct {
		Hex        string  `json:"hex"`
		Confidence float64 `json:"confidence"`
	}
	decode(t, do(t, s, http.MethodPost, "/solve", `{"constraints":[]}`), &sol)
	if sol.Hex != "#808080" {
		t.Errorf("empty solve = %+v", sol)
	}

	decode(t, do(t, s, http.MethodPost, "/solve", `{"constraints":[{"hex":"#C8285A","score":100}]}`), &sol)
	got, err := colorspace.ParseHex(sol.Hex)
	if err != nil {
		t.Fatal(err)
	}
	want := colorspace.RGB{R: 200, G: 40, B: 90}
	if d := deltae.CIEDE2000(colorspace.ToLab(got), colorspace.ToLab(want)); d > 1 {
		t.Errorf("solve = %s, ΔE %.2f from #C8285A", sol.Hex, d)
	}
}

type listBody struct {
	Token   string          `json:"token"`
	Count   int             `json:"count"`
	Colors  []colordb.Entry `json:"colors"`
	History []struct {
		Hex string `json:"hex"`
	} `json:"history"`
}

func TestDigitsFilter(t *testing.T) {
	s := newTestServer()
	var res listBody

	decode(t, do(t, s, http.MethodPost, "/digits/filter", `{"history":[{"hex":"FF0000","feedback":"cccccc"}]}`), &res)
	if res.Count != 1 || res.Colors[0].Name != "Red" {
		t.Errorf("all correct = %+v", res)
	}

	decode(t, do(t, s, http.MethodPost, "/digits/filter",
		`{"history":[{"hex":"#ff0000","feedback":["absent","absent","correct","correct","correct","correct"]}]}`), &res)
	if res.Count != 1 || res.Colors[0].Name != "Black" {
		t.Errorf("black feedback = %+v", res)
	}

	decode(t, do(t, s, http.MethodPost, "/digits/filter", `{"history":[]}`), &res)
	if res.Count != len(testDB) {
		t.Errorf("empty history count = %d", res.Count)
	}
	decode(t, do(t, s, http.MethodPost, "/digits/filter", `{"history":[],"limit":2}`), &res)
	if res.Count != len(testDB) || len(res.Colors) != 2 {
		t.Errorf("limit 2 = %+v", res)
	}

	for _, body := range []string{
		`{"history":[{"hex":"FF000","feedback":"cccccc"}]}`,
		`{"history":[{"hex":"FF0000","feedback":"ccccc"}]}`,
		`{"history":[{"hex":"FF0000","feedback":"cccccx"}]}`,
		`{"history":[{"hex":"FF0000"}]}`,
	} {
		if rec := do(t, s, http.MethodPost, "/digits/filter", body); rec.Code != http.StatusBadRequest {
			t.Errorf("%s: status %d", body, rec.Code)
		}
	}
}

func TestDigitsGuessSession(t *testing.T) {
	s := newTestServer()
	var first listBody
	decode(t, do(t, s, http.MethodPost, "/digits/guess", `{"hex":"FF0000","feedback":"aacccc"}`), &first)
	if first.Token == "" || len(first.History) != 1 || first.Count != 1 || first.Colors[0].Name != "Black" {
		t.Fatalf("first guess = %+v", first)
	}

	body, _ := json.Marshal(map[string]string{"token": first.Token, "hex": "000000", "feedback": "cccccc"})
	var second listBody
	decode(t, do(t, s, http.MethodPost, "/digits/guess", string(body)), &second)
	if len(second.History) != 2 || second.Count != 1 || second.Colors[0].Name != "Black" {
		t.Errorf("second guess = %+v", second)
	}

	// The token can also travel as a bearer header.
	req := httptest.NewRequest(http.MethodPost, "/digits/guess", strings.NewReader(`{"hex":"000000","feedback":"cccccc"}`))
	req.Header.Set("Authorization", "Bearer "+first.Token)
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)
	var third listBody
	decode(t, rec, &third)
	if len(third.History) != 2 {
		t.Errorf("bearer token ignored: %+v", third)
	}

	if rec := do(t, s, http.MethodPost, "/digits/guess", `{"token":"garbage","hex":"000000","feedback":"cccccc"}`); rec.Code != http.StatusUnauthorized {
		t.Errorf("bad token status = %d", rec.Code)
	}
	if rec := do(t, s, http.MethodPost, "/digits/guess", `{"hex":"00000G","feedback":"cccccc"}`); rec.Code != http.StatusBadRequest {
		t.Errorf("bad hex status = %d", rec.Code)
	}
}

func TestPractice(t *testing.T) {
	s := newTestServer()
	day := time.Date(2026, 10, 16, 9, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return day }

	var today map[string]any
	decode(t, do(t, s, http.MethodGet, "/practice", ""), &today)
	if today["date"] != "2026-10-16" {
		t.Errorf("/practice = %v", today)
	}

	target, err := practice.Target(day, "salt", testDB)
	if err != nil {
		t.Fatal(err)
	}
	var res struct {
		Date       string   `json:"date"`
		Similarity float64  `json:"similarity"`
		Feedback   []string `json:"feedback"`
		Solved     bool     `json:"solved"`
	}
	decode(t, do(t, s, http.MethodPost, "/practice/guess", `{"hex":"`+target.Hex+`"}`), &res)
	if !res.Solved || res.Similarity != 100 || len(res.Feedback) != 6 || res.Date != "2026-10-16" {
		t.Errorf("exact guess = %+v", res)
	}

	if rec := do(t, s, http.MethodPost, "/practice/guess", `{"hex":"#12"}`); rec.Code != http.StatusBadRequest {
		t.Errorf("bad guess status = %d", rec.Code)
	}

	empty := New(config.Config{SessionSecret: "x"}, nil)
	if rec := do(t, empty, http.MethodPost, "/practice/guess", `{"hex":"#123456"}`); rec.Code != http.StatusServiceUnavailable {
		t.Errorf("empty db status = %d", rec.Code)
	}
}
