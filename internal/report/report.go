// Package report prints the offline metric comparison: the same
// constraints ranked over the database under several ΔE formulas, so a
// player can see how sensitive the answer is to the choice of metric.
package report

import (
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/charmbracelet/lipgloss"
	"gonum.org/v1/gonum/stat"

	"github.com/5plinkK/ColordleSolver/internal/colordb"
	"github.com/5plinkK/ColordleSolver/internal/colorspace"
	"github.com/5plinkK/ColordleSolver/internal/deltae"
	"github.com/5plinkK/ColordleSolver/internal/solver"
)

// DefaultTop is the number of candidates listed per metric.
const DefaultTop = 15

// DefaultMetrics are compared when Options.Metrics is empty.
var DefaultMetrics = []string{"ciede2000", "cie76"}

var (
	// ErrUnknownMetric is returned for a metric name deltae does not know.
	ErrUnknownMetric = errors.New("report: unknown metric")
	ErrNoConstraints = errors.New("report: no constraints")
)

var labels = map[string]string{
	"ciede2000": "DE2000",
	"cie76":     "DE76",
	"cie94":     "DE94",
}

// Options controls Compare.
type Options struct {
	Metrics []string
	Top     int
}

// Section is the ranking produced for one metric.
type Section struct {
	Metric string
	Top    []solver.CandidateMatch
	// Mean and StdDev summarize the average errors of the valid rows in Top.
	Mean   float64
	StdDev float64
}

// SampleConstraints returns the reference guesses and scores from a real
// round (the answer was in the #2A4B5F neighbourhood).
func SampleConstraints() []solver.Constraint {
	return []solver.Constraint{
		{Guess: colorspace.RGB{R: 0, G: 255, B: 255}, Score: 47.69},   // Cyan
		{Guess: colorspace.RGB{R: 255, G: 0, B: 255}, Score: 58.84},   // Magenta
		{Guess: colorspace.RGB{R: 255, G: 255, B: 0}, Score: 26.16},   // Yellow
		{Guess: colorspace.RGB{R: 255, G: 255, B: 255}, Score: 44.13}, // White
		{Guess: colorspace.RGB{R: 52, G: 84, B: 109}, Score: 96.35},   // America's Cup
		{Guess: colorspace.RGB{R: 42, G: 75, B: 95}, Score: 94.15},    // Deep Ocean
		{Guess: colorspace.RGB{R: 39, G: 74, B: 93}, Score: 93.21},    // Arapawa
		{Guess: colorspace.RGB{R: 45, G: 83, B: 103}, Score: 93.20},   // Regatta Bay
		{Guess: colorspace.RGB{R: 42, G: 79, B: 97}, Score: 92.60},    // Shadow of Night
		{Guess: colorspace.RGB{R: 42, G: 75, B: 90}, Score: 91.78},    // Deep Sea Blue
	}
}

// Compare ranks db under each requested metric and writes one section per
// metric to w. Styling follows w: plain text unless w is a color terminal.
func Compare(w io.Writer, constraints []solver.Constraint, db []colordb.Entry, opts Options) ([]Section, error) {
	if len(constraints) == 0 {
		return nil, ErrNoConstraints
	}
	names := opts.Metrics
	if len(names) == 0 {
		names = DefaultMetrics
	}
	top := opts.Top
	if top <= 0 {
		top = DefaultTop
	}

	// Resolve every name before printing anything.
	metrics := make([]deltae.Metric, len(names))
	for i, n := range names {
		m, ok := deltae.Lookup(n)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownMetric, n)
		}
		metrics[i] = m
	}

	re := lipgloss.NewRenderer(w)
	heading := re.NewStyle().Bold(true).Foreground(lipgloss.Color("#7D56F4"))
	dim := re.NewStyle().Faint(true)

	out := make([]Section, 0, len(names))
	for i, n := range names {
		ranked := solver.Rank(solver.NewScorer(constraints, metrics[i]), db)
		if len(ranked) > top {
			ranked = ranked[:top]
		}
		sec := summarize(n, ranked)
		out = append(out, sec)

		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return nil, err
			}
		}
		if _, err := fmt.Fprintln(w, heading.Render(fmt.Sprintf("--- Top Candidates (%s) ---", label(n)))); err != nil {
			return nil, err
		}
		for j, m := range sec.Top {
			line := fmt.Sprintf("%d. %s (%s) - Avg Score Diff: %.4f", j+1, m.Entry.Name, m.Entry.Hex, m.AverageError)
			if m.Valid {
				line = swatch(re, m.RGB) + " " + line
			}
			if _, err := fmt.Fprintln(w, line); err != nil {
				return nil, err
			}
		}
		if _, err := fmt.Fprintln(w, dim.Render(fmt.Sprintf("mean %.4f  stddev %.4f", sec.Mean, sec.StdDev))); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func summarize(metric string, top []solver.CandidateMatch) Section {
	errs := make([]float64, 0, len(top))
	for _, m := range top {
		if m.Valid && !math.IsInf(m.AverageError, 0) {
			errs = append(errs, m.AverageError)
		}
	}
	sec := Section{Metric: metric, Top: top}
	if len(errs) > 0 {
		sec.Mean = stat.Mean(errs, nil)
	}
	if len(errs) > 1 {
		sec.StdDev = stat.StdDev(errs, nil)
	}
	return sec
}

func swatch(re *lipgloss.Renderer, c colorspace.RGB) string {
	return re.NewStyle().Background(lipgloss.Color(c.Hex())).Render("  ")
}

func label(metric string) string {
	if l, ok := labels[metric]; ok {
		return l
	}
	return metric
}
