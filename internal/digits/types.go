// internal/digits/types.go
//
// Core type definitions for hex-digit (Wordle-style) feedback.
// Defines:
//   - Feedback: per-digit result of a guess (correct/present/absent).
//   - GuessRecord: one six-digit guess with its feedback.
//   - History: the guesses a player has entered so far.
//
// All transitions (cycling a tile, appending a guess) return new values;
// nothing here is mutated in place.

package digits

import (
	"errors"
	"fmt"
	"strings"
)

// Length is the number of digits in a guess.
const Length = 6

// Feedback is the evaluation result for a single digit of a guess.
//   - "correct": digit is in the target at this position.
//   - "present": digit is in the target at another position.
//   - "absent":  no further copies of the digit are in the target.
type Feedback string

const (
	Correct Feedback = "correct"
	Present Feedback = "present"
	Absent  Feedback = "absent"
)

var (
	ErrInvalidGuess    = errors.New("guess must be exactly 6 hex digits")
	ErrInvalidFeedback = errors.New("feedback must be 6 of correct, present, absent")
)

// Valid reports whether f is one of the three states.
func (f Feedback) Valid() bool {
	return f == Correct || f == Present || f == Absent
}

// Next cycles absent → present → correct → absent.
func (f Feedback) Next() Feedback {
	switch f {
	case Absent:
		return Present
	case Present:
		return Correct
	default:
		return Absent
	}
}

// ParseFeedback accepts the full names or their initials (c/p/a), in any
// case. Shorthand strings such as "ccaapp" are parsed by ParseFeedbackString.
func ParseFeedback(s string) (Feedback, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "correct", "c":
		return Correct, nil
	case "present", "p":
		return Present, nil
	case "absent", "a":
		return Absent, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidFeedback, s)
}

// ParseFeedbackString parses six initials, e.g. "ccaacc".
func ParseFeedbackString(s string) ([]Feedback, error) {
	if len(s) != Length {
		return nil, fmt.Errorf("%w: %q", ErrInvalidFeedback, s)
	}
	out := make([]Feedback, Length)
	for i := 0; i < Length; i++ {
		f, err := ParseFeedback(s[i : i+1])
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrInvalidFeedback, s)
		}
		out[i] = f
	}
	return out, nil
}

// GuessRecord is one guess and the feedback the game gave for it.
// Hex is six uppercase hex digits without '#'.
type GuessRecord struct {
	Hex      string           `json:"hex"`
	Feedback [Length]Feedback `json:"feedback"`
}

// NewGuessRecord validates and normalizes a guess.
func NewGuessRecord(hex string, feedback []Feedback) (GuessRecord, error) {
	h, ok := normalize(hex)
	if !ok {
		return GuessRecord{}, fmt.Errorf("%w: %q", ErrInvalidGuess, hex)
	}
	if len(feedback) != Length {
		return GuessRecord{}, fmt.Errorf("%w: got %d states", ErrInvalidFeedback, len(feedback))
	}
	rec := GuessRecord{Hex: h}
	for i, f := range feedback {
		if !f.Valid() {
			return GuessRecord{}, fmt.Errorf("%w: %q at %d", ErrInvalidFeedback, f, i)
		}
		rec.Feedback[i] = f
	}
	return rec, nil
}

// Cycle returns a copy of r with tile i advanced to its next state.
func (r GuessRecord) Cycle(i int) GuessRecord {
	if i < 0 || i >= Length {
		return r
	}
	r.Feedback[i] = r.Feedback[i].Next()
	return r
}

// Solved reports whether every tile is correct.
func (r GuessRecord) Solved() bool {
	for _, f := range r.Feedback {
		if f != Correct {
			return false
		}
	}
	return true
}

// History is the ordered list of guesses entered so far.
type History []GuessRecord

// Append returns a new history with rec added; h is left untouched.
func (h History) Append(rec GuessRecord) History {
	out := make(History, len(h), len(h)+1)
	copy(out, h)
	return append(out, rec)
}

// normalize strips '#', uppercases and checks for six hex digits.
func normalize(hex string) (string, bool) {
	s := strings.ToUpper(strings.TrimPrefix(strings.TrimSpace(hex), "#"))
	if len(s) != Length {
		return "", false
	}
	for i := 0; i < Length; i++ {
		if idx(s[i]) < 0 {
			return "", false
		}
	}
	return s, true
}

// idx maps an uppercase hex digit to 0..15, or -1.
func idx(c byte) int {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0')
	case c >= 'A' && c <= 'F':
		return int(c-'A') + 10
	}
	return -1
}
