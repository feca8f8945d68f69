// internal/solver/continuous.go
//
// Database-free search of the RGB cube for the best-fitting color.
//
// Each start runs a coordinate search at shrinking step sizes: at a given
// step the six axis neighbours are tried in a fixed order and the first one
// that strictly lowers the error is taken immediately; passes repeat until
// a full pass makes no move, then the step shrinks. Coordinate search can
// stall in a local minimum, so several starts are run and the best kept.
package solver

import (
	"math"

	"github.com/rs/zerolog/log"
	"gonum.org/v1/gonum/stat"

	"github.com/5plinkK/ColordleSolver/internal/colorspace"
)

// stepSizes is the refinement schedule, coarse to sub-integer.
var stepSizes = []float64{64, 32, 16, 8, 4, 2, 1, 0.5, 0.1}

// fixedStarts are tried before the guess centroid.
var fixedStarts = []colorspace.RGB{
	colorspace.Midpoint,
	{R: 64, G: 64, B: 64},
	{R: 192, G: 192, B: 192},
}

// Solution is the continuous solver's result with its fit statistics.
type Solution struct {
	RGB               colorspace.RGB `json:"rgb"`
	Hex               string         `json:"hex"`
	TotalSquaredError float64        `json:"error"`
	AverageError      float64        `json:"averageError"`
	Confidence        float64        `json:"confidence"`
	Start             colorspace.RGB `json:"start"`
}

// Solve returns the best-fit color, each channel rounded to an integer.
// With no constraints it returns the cube midpoint.
func Solve(constraints []Constraint) colorspace.RGB {
	return SolveDetailed(constraints).RGB
}

// SolveDetailed is Solve plus the fit statistics of the returned color.
func SolveDetailed(constraints []Constraint) Solution {
	if len(constraints) == 0 {
		return Solution{RGB: colorspace.Midpoint, Hex: colorspace.Midpoint.Hex(), Start: colorspace.Midpoint}
	}
	s := NewScorer(constraints, nil)

	best := colorspace.Midpoint
	bestErr := math.Inf(1)
	bestStart := colorspace.Midpoint
	for _, start := range startingPoints(constraints) {
		pos, errVal := climb(s, start)
		log.Trace().
			Str("start", start.String()).
			Str("result", pos.String()).
			Float64("error", errVal).
			Msg("solver start finished")
		if errVal < bestErr {
			best, bestErr, bestStart = pos, errVal, start
		}
	}

	rounded := best.Round()
	total, avg := s.Score(rounded)
	return Solution{
		RGB:               rounded,
		Hex:               rounded.Hex(),
		TotalSquaredError: total,
		AverageError:      avg,
		Confidence:        Confidence(avg),
		Start:             bestStart,
	}
}

// startingPoints returns the fixed starts plus the mean guess color.
func startingPoints(constraints []Constraint) []colorspace.RGB {
	rs := make([]float64, len(constraints))
	gs := make([]float64, len(constraints))
	bs := make([]float64, len(constraints))
	for i, c := range constraints {
		rs[i], gs[i], bs[i] = c.Guess.R, c.Guess.G, c.Guess.B
	}
	starts := append([]colorspace.RGB{}, fixedStarts...)
	return append(starts, colorspace.RGB{
		R: stat.Mean(rs, nil),
		G: stat.Mean(gs, nil),
		B: stat.Mean(bs, nil),
	})
}

// climb runs the coordinate search from start and returns the final
// position with its total error.
func climb(s *Scorer, start colorspace.RGB) (colorspace.RGB, float64) {
	pos := start
	minErr := s.TotalError(pos)
	for _, step := range stepSizes {
		for improved := true; improved; {
			improved = false
			for _, d := range directions(step) {
				next := colorspace.RGB{R: pos.R + d.R, G: pos.G + d.G, B: pos.B + d.B}.Clamp()
				if e := s.TotalError(next); e < minErr {
					pos, minErr = next, e
					improved = true
				}
			}
		}
	}
	return pos, minErr
}

// directions lists the six axis moves in a fixed order: +R -R +G -G +B -B.
func directions(step float64) [6]colorspace.RGB {
	return [6]colorspace.RGB{
		{R: step}, {R: -step},
		{G: step}, {G: -step},
		{B: step}, {B: -step},
	}
}
