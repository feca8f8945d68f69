// internal/solver/scorer.go
//
// Fit error of a candidate color against a set of similarity constraints.
//
// A constraint says "the target scored Score% against Guess". The game
// reports Score = 100 - ΔE2000, so a candidate's predicted score for a guess
// is 100 - ΔE2000(candidate, guess) and its error is the squared gap between
// predicted and reported scores, summed over all constraints.
package solver

import (
	"errors"
	"fmt"
	"math"

	"github.com/5plinkK/ColordleSolver/internal/colorspace"
	"github.com/5plinkK/ColordleSolver/internal/deltae"
)

// ErrInvalidScore is returned for NaN, infinite or out-of-range scores.
var ErrInvalidScore = errors.New("score must be a number between 0 and 100")

// Constraint is one (guess color, reported similarity) pair.
type Constraint struct {
	Guess colorspace.RGB `json:"rgb"`
	Score float64        `json:"score"`
}

// NewConstraint validates score and guess channels.
func NewConstraint(guess colorspace.RGB, score float64) (Constraint, error) {
	if math.IsNaN(score) || score < 0 || score > 100 {
		return Constraint{}, fmt.Errorf("%w: got %v", ErrInvalidScore, score)
	}
	if guess != guess.Clamp() {
		return Constraint{}, fmt.Errorf("%w: %v out of range", colorspace.ErrInvalidFormat, guess)
	}
	return Constraint{Guess: guess, Score: score}, nil
}

// ParseConstraint builds a constraint from a hex guess.
func ParseConstraint(hex string, score float64) (Constraint, error) {
	rgb, err := colorspace.ParseHex(hex)
	if err != nil {
		return Constraint{}, err
	}
	return NewConstraint(rgb, score)
}

// TargetDistance is the ΔE the target must have from Guess.
func (c Constraint) TargetDistance() float64 { return 100 - c.Score }

// Scorer evaluates candidates against a fixed constraint set. Guess Lab
// values are converted once at construction.
type Scorer struct {
	metric deltae.Metric
	guess  []colorspace.Lab
	score  []float64
}

// NewScorer prepares constraints for repeated scoring with metric
// (CIEDE2000 when nil).
func NewScorer(constraints []Constraint, metric deltae.Metric) *Scorer {
	if metric == nil {
		metric = deltae.CIEDE2000
	}
	s := &Scorer{
		metric: metric,
		guess:  make([]colorspace.Lab, len(constraints)),
		score:  make([]float64, len(constraints)),
	}
	for i, c := range constraints {
		s.guess[i] = colorspace.ToLab(c.Guess)
		s.score[i] = c.Score
	}
	return s
}

// Len reports the number of constraints.
func (s *Scorer) Len() int { return len(s.guess) }

// TotalError is the summed squared gap between predicted and reported
// scores for candidate.
func (s *Scorer) TotalError(candidate colorspace.RGB) float64 {
	lab := colorspace.ToLab(candidate)
	var total float64
	for i, g := range s.guess {
		predicted := 100 - s.metric(lab, g)
		diff := predicted - s.score[i]
		total += diff * diff
	}
	return total
}

// Score returns the total squared error and the root-mean-square error.
// The constraint set must be non-empty.
func (s *Scorer) Score(candidate colorspace.RGB) (total, avg float64) {
	total = s.TotalError(candidate)
	return total, math.Sqrt(total / float64(len(s.guess)))
}

// Score evaluates candidate against constraints under CIEDE2000.
// constraints must be non-empty; callers guard the empty case.
func Score(candidate colorspace.RGB, constraints []Constraint) (total, avg float64) {
	return NewScorer(constraints, nil).Score(candidate)
}

// Confidence maps an average error onto a 0–100 scale.
func Confidence(avg float64) float64 {
	if math.IsInf(avg, 1) || math.IsNaN(avg) {
		return 0
	}
	return math.Max(0, 100-avg)
}
