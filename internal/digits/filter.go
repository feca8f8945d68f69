// internal/digits/filter.go
//
// Narrowing a color database with accumulated hex-digit feedback, plus the
// forward direction (scoring a guess against a known target).
//
// Both directions follow the two-pass Wordle rules so repeated digits are
// accounted for: exact matches are settled first, and only the digits left
// over can satisfy "present" tiles.

package digits

import (
	"fmt"

	"github.com/5plinkK/ColordleSolver/internal/colordb"
)

// Filter returns the entries of db consistent with every record in
// history, in database order. With an empty history db is returned as is.
// Entries whose hex is not six hex digits are dropped.
func Filter(db []colordb.Entry, history History) []colordb.Entry {
	if len(history) == 0 {
		return db
	}
	out := []colordb.Entry{}
	for _, e := range db {
		hex, ok := normalize(e.Hex)
		if !ok {
			continue
		}
		if matchesAll(hex, history) {
			out = append(out, e)
		}
	}
	return out
}

// Satisfies reports whether a candidate hex is consistent with rec.
func Satisfies(hex string, rec GuessRecord) bool {
	h, ok := normalize(hex)
	return ok && satisfies(h, rec)
}

func matchesAll(hex string, history History) bool {
	for _, rec := range history {
		if !satisfies(hex, rec) {
			return false
		}
	}
	return true
}

// satisfies checks one record against a normalized candidate.
//
// Order matters: correct tiles first, then present tiles consume digits
// from the non-correct remainder, and only then may absent tiles require
// that no copies remain. Checking absent earlier rejects candidates that
// legitimately repeat a digit.
func satisfies(hex string, rec GuessRecord) bool {
	if len(rec.Hex) != Length {
		return false
	}

	// Pass 1: correct positions must match; count the rest of the candidate.
	var counts [16]int
	for i := 0; i < Length; i++ {
		if rec.Feedback[i] == Correct {
			if hex[i] != rec.Hex[i] {
				return false
			}
			continue
		}
		counts[idx(hex[i])]++
	}

	// Pass 2: every present digit must be available; consume it.
	for i := 0; i < Length; i++ {
		if rec.Feedback[i] != Present {
			continue
		}
		j := idx(rec.Hex[i])
		if j < 0 || counts[j] == 0 {
			return false
		}
		counts[j]--
	}

	// Pass 3: absent digits must have no copies left over.
	for i := 0; i < Length; i++ {
		if rec.Feedback[i] != Absent {
			continue
		}
		if j := idx(rec.Hex[i]); j < 0 || counts[j] > 0 {
			return false
		}
	}
	return true
}

// Evaluate scores guess against target the way the game does and returns
// the per-digit feedback. Both arguments must be six hex digits ('#'
// optional, any case).
func Evaluate(guess, target string) (GuessRecord, error) {
	g, ok := normalize(guess)
	if !ok {
		return GuessRecord{}, fmt.Errorf("%w: %q", ErrInvalidGuess, guess)
	}
	t, ok := normalize(target)
	if !ok {
		return GuessRecord{}, fmt.Errorf("%w: %q", ErrInvalidGuess, target)
	}

	rec := GuessRecord{Hex: g}
	var counts [16]int

	// First pass: mark exact matches and count remaining target digits.
	for i := 0; i < Length; i++ {
		if g[i] == t[i] {
			rec.Feedback[i] = Correct
		} else {
			counts[idx(t[i])]++
		}
	}

	// Second pass: resolve present/absent for the rest.
	for i := 0; i < Length; i++ {
		if rec.Feedback[i] == Correct {
			continue
		}
		j := idx(g[i])
		if counts[j] > 0 {
			rec.Feedback[i] = Present
			counts[j]--
		} else {
			rec.Feedback[i] = Absent
		}
	}
	return rec, nil
}
