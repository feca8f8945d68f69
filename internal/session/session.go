// internal/session/session.go
//
// Stateless digit-guess sessions.
//
// The guess history lives with the client as a signed HS256 token; the
// server keeps nothing between requests. Every guess produces a new
// snapshot and a new token, and the previous token stays valid for its own
// (shorter) history.

package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/5plinkK/ColordleSolver/internal/digits"
)

// ErrInvalidToken covers bad signatures, expiry and malformed claims.
var ErrInvalidToken = errors.New("invalid session token")

// DefaultTTL bounds how long a snapshot token is accepted.
const DefaultTTL = 24 * time.Hour

// Snapshot is an immutable view of a player's digit guesses.
type Snapshot struct {
	History digits.History `json:"history"`
}

// With returns a new snapshot with rec appended.
func (s Snapshot) With(rec digits.GuessRecord) Snapshot {
	return Snapshot{History: s.History.Append(rec)}
}

// claims is the token payload.
type claims struct {
	History []wireRecord `json:"history"`
	jwt.RegisteredClaims
}

// wireRecord keeps tokens compact: "ccaapp" instead of six words.
type wireRecord struct {
	Hex      string `json:"h"`
	Feedback string `json:"f"`
}

// Codec signs and verifies snapshot tokens.
type Codec struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewCodec builds a codec. ttl <= 0 selects DefaultTTL.
func NewCodec(secret string, ttl time.Duration) *Codec {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Codec{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// Encode signs s and returns the token and its expiry. Records that
// NewGuessRecord would reject are an error.
func (c *Codec) Encode(s Snapshot) (string, time.Time, error) {
	now := c.now()
	exp := now.Add(c.ttl)
	cl := claims{
		History: make([]wireRecord, len(s.History)),
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}
	for i, r := range s.History {
		rec, err := digits.NewGuessRecord(r.Hex, r.Feedback[:])
		if err != nil {
			return "", time.Time{}, fmt.Errorf("record %d: %w", i, err)
		}
		fb := make([]byte, digits.Length)
		for j, f := range rec.Feedback {
			fb[j] = f[0]
		}
		cl.History[i] = wireRecord{Hex: rec.Hex, Feedback: string(fb)}
	}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, cl).SignedString(c.secret)
	return tok, exp, err
}

// Decode verifies token and rebuilds the snapshot. An empty token is the
// empty snapshot.
func (c *Codec) Decode(token string) (Snapshot, error) {
	if token == "" {
		return Snapshot{}, nil
	}
	var cl claims
	_, err := jwt.ParseWithClaims(token, &cl, func(t *jwt.Token) (interface{}, error) {
		return c.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(c.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return Snapshot{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	h := make(digits.History, 0, len(cl.History))
	for _, w := range cl.History {
		fb, err := digits.ParseFeedbackString(w.Feedback)
		if err != nil {
			return Snapshot{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
		}
		rec, err := digits.NewGuessRecord(w.Hex, fb)
		if err != nil {
			return Snapshot{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
		}
		h = append(h, rec)
	}
	return Snapshot{History: h}, nil
}
