// Package practice picks a deterministic daily target color and grades
// guesses against it, producing both kinds of feedback the game gives: a
// similarity score and per-digit tiles.
package practice

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/5plinkK/ColordleSolver/internal/colordb"
	"github.com/5plinkK/ColordleSolver/internal/colorspace"
	"github.com/5plinkK/ColordleSolver/internal/deltae"
	"github.com/5plinkK/ColordleSolver/internal/digits"
)

// ErrNoTarget is returned when the database has no usable color.
var ErrNoTarget = errors.New("practice: no valid color in database")

// DateKey returns YYYY-MM-DD in UTC.
func DateKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// Index returns a deterministic index for a date using
// HMAC-SHA256(salt, YYYY-MM-DD) mod n.
func Index(date time.Time, salt string, n int) int {
	if n <= 0 {
		return 0
	}
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(DateKey(date)))
	sum := h.Sum(nil)
	return int(binary.BigEndian.Uint64(sum[:8]) % uint64(n))
}

// Target returns the day's color. Malformed rows are never chosen; the
// index is taken over the valid rows only.
func Target(date time.Time, salt string, db []colordb.Entry) (colordb.Color, error) {
	valid := make([]colordb.Color, 0, len(db))
	for _, e := range db {
		if c, err := e.Color(); err == nil {
			valid = append(valid, c)
		}
	}
	if len(valid) == 0 {
		return colordb.Color{}, ErrNoTarget
	}
	return valid[Index(date, salt, len(valid))], nil
}

// Result is what the game reports for one guess.
type Result struct {
	Similarity float64            `json:"similarity"`
	Feedback   digits.GuessRecord `json:"feedback"`
}

// Solved reports whether the guess was the target.
func (r Result) Solved() bool { return r.Feedback.Solved() }

// Grade scores guessHex against target. Similarity is 100 minus the
// CIEDE2000 distance, floored at 0.
func Grade(target colordb.Color, guessHex string) (Result, error) {
	g, err := colorspace.ParseHex(guessHex)
	if err != nil {
		return Result{}, fmt.Errorf("grade %q: %w", guessHex, err)
	}
	fb, err := digits.Evaluate(guessHex, target.Hex)
	if err != nil {
		return Result{}, fmt.Errorf("grade %q: %w", guessHex, err)
	}
	d := deltae.CIEDE2000(colorspace.ToLab(target.RGB), colorspace.ToLab(g))
	return Result{Similarity: math.Max(0, 100-d), Feedback: fb}, nil
}
