package cmd

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/5plinkK/ColordleSolver/internal/colorspace"
	"github.com/5plinkK/ColordleSolver/internal/digits"
	"github.com/5plinkK/ColordleSolver/internal/solver"
)

// parseScored parses HEX=SCORE, e.g. "#00FFFF=47.69".
func parseScored(s string) (solver.Constraint, error) {
	hex, score, ok := strings.Cut(s, "=")
	if !ok {
		return solver.Constraint{}, fmt.Errorf("guess %q: want HEX=SCORE", s)
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(score), 64)
	if err != nil {
		return solver.Constraint{}, fmt.Errorf("guess %q: %w", s, solver.ErrInvalidScore)
	}
	c, err := solver.ParseConstraint(strings.TrimSpace(hex), v)
	if err != nil {
		return solver.Constraint{}, fmt.Errorf("guess %q: %w", s, err)
	}
	return c, nil
}

func parseScoredAll(in []string) ([]solver.Constraint, error) {
	out := make([]solver.Constraint, 0, len(in))
	for _, s := range in {
		c, err := parseScored(s)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

// parseTiles parses HEX:FEEDBACK, e.g. "FF0000:aacccc".
func parseTiles(s string) (digits.GuessRecord, error) {
	hex, fb, ok := strings.Cut(s, ":")
	if !ok {
		return digits.GuessRecord{}, fmt.Errorf("guess %q: want HEX:FEEDBACK", s)
	}
	f, err := digits.ParseFeedbackString(strings.TrimSpace(fb))
	if err != nil {
		return digits.GuessRecord{}, fmt.Errorf("guess %q: %w", s, err)
	}
	rec, err := digits.NewGuessRecord(hex, f)
	if err != nil {
		return digits.GuessRecord{}, fmt.Errorf("guess %q: %w", s, err)
	}
	return rec, nil
}

// swatch renders a two-cell color sample; plain spaces when w is not a
// color terminal.
func swatch(w io.Writer, c colorspace.RGB) string {
	return lipgloss.NewRenderer(w).NewStyle().Background(lipgloss.Color(c.Hex())).Render("  ")
}
