package session

import (
	"errors"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/5plinkK/ColordleSolver/internal/digits"
)

func record(t *testing.T, hex, fb string) digits.GuessRecord {
	t.Helper()
	f, err := digits.ParseFeedbackString(fb)
	if err != nil {
		t.Fatal(err)
	}
	r, err := digits.NewGuessRecord(hex, f)
	if err != nil {
		t.Fatal(err)
	}
	return r
}

func TestRoundTrip(t *testing.T) {
	c := NewCodec("test-secret", time.Hour)
	s := Snapshot{}.With(record(t, "FF0000", "aacccc")).With(record(t, "00ffff", "ccaapp"))

	tok, exp, err := c.Encode(s)
	if err != nil {
		t.Fatal(err)
	}
	if time.Until(exp) <= 0 || time.Until(exp) > time.Hour {
		t.Errorf("expiry %v not within the ttl", exp)
	}
	got, err := c.Decode(tok)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(got, s) {
		t.Errorf("Decode = %+v, want %+v", got, s)
	}
}

func TestEmptyTokenIsEmptySnapshot(t *testing.T) {
	got, err := NewCodec("x", 0).Decode("")
	if err != nil || len(got.History) != 0 {
		t.Errorf("Decode(\"\") = %+v, %v", got, err)
	}
}

func TestWithDoesNotMutate(t *testing.T) {
	base := Snapshot{}.With(record(t, "123456", "aaaaaa"))
	a := base.With(record(t, "ABCDEF", "pppppp"))
	b := base.With(record(t, "000000", "cccccc"))
	if len(base.History) != 1 || a.History[1].Hex != "ABCDEF" || b.History[1].Hex != "000000" {
		t.Errorf("base=%v a=%v b=%v", base.History, a.History, b.History)
	}
}

func TestDecodeRejects(t *testing.T) {
	c := NewCodec("test-secret", time.Hour)
	tok, _, err := c.Encode(Snapshot{}.With(record(t, "FF0000", "cccccc")))
	if err != nil {
		t.Fatal(err)
	}

	expired := NewCodec("test-secret", time.Hour)
	expired.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	old, _, err := expired.Encode(Snapshot{})
	if err != nil {
		t.Fatal(err)
	}

	parts := strings.Split(tok, ".")
	tampered := parts[0] + "." + parts[1] + "x." + parts[2]

	tests := []struct {
		name  string
		codec *Codec
		token string
	}{
		{"wrong secret", NewCodec("other", time.Hour), tok},
		{"tampered payload", c, tampered},
		{"expired", c, old},
		{"garbage", c, "not-a-token"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := tt.codec.Decode(tt.token); !errors.Is(err, ErrInvalidToken) {
				t.Errorf("Decode error = %v, want ErrInvalidToken", err)
			}
		})
	}
}

func TestEncodeRejectsIncompleteRecords(t *testing.T) {
	c := NewCodec("test-secret", time.Hour)
	partial := record(t, "123456", "cccccc")
	partial.Feedback[3] = ""
	tests := []struct {
		name string
		rec  digits.GuessRecord
		want error
	}{
		{"zero feedback", digits.GuessRecord{Hex: "FF0000"}, digits.ErrInvalidFeedback},
		{"one blank tile", partial, digits.ErrInvalidFeedback},
		{"bad hex", digits.GuessRecord{Hex: "FF00", Feedback: record(t, "FF0000", "aaaaaa").Feedback}, digits.ErrInvalidGuess},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tok, _, err := c.Encode(Snapshot{}.With(tt.rec))
			if !errors.Is(err, tt.want) || tok != "" {
				t.Errorf("Encode = %q, %v; want %v", tok, err, tt.want)
			}
		})
	}
}
