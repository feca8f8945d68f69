// internal/solver/matcher.go
//
// Exhaustive ranking of a reference database against constraints.
//
// Every entry is scored (O(N·M)); there is no pruning because palettes are
// a few thousand rows. Entries whose hex does not parse get +Inf error and
// sink to the bottom instead of aborting the search. Sorting is stable so
// equal errors keep database order.
package solver

import (
	"math"
	"sort"

	"github.com/5plinkK/ColordleSolver/internal/colordb"
	"github.com/5plinkK/ColordleSolver/internal/colorspace"
)

// DefaultLimit is the number of candidates returned when limit <= 0.
const DefaultLimit = 10

// CandidateMatch is a ranked database entry.
type CandidateMatch struct {
	Entry             colordb.Entry  `json:"color"`
	RGB               colorspace.RGB `json:"rgb"`
	Valid             bool           `json:"valid"`
	TotalSquaredError float64        `json:"error"`
	AverageError      float64        `json:"averageError"`
	Confidence        float64        `json:"confidence"`
}

// FindBestMatches ranks db against constraints with CIEDE2000 and returns
// at most limit matches, best first. Empty constraints yield no matches.
func FindBestMatches(constraints []Constraint, db []colordb.Entry, limit int) []CandidateMatch {
	if len(constraints) == 0 {
		return []CandidateMatch{}
	}
	if limit <= 0 {
		limit = DefaultLimit
	}
	ranked := Rank(NewScorer(constraints, nil), db)
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}

// Rank scores every entry of db with s and returns all of them sorted by
// ascending total error. s must hold at least one constraint.
func Rank(s *Scorer, db []colordb.Entry) []CandidateMatch {
	out := make([]CandidateMatch, len(db))
	for i, e := range db {
		out[i] = evaluate(s, e)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].TotalSquaredError < out[j].TotalSquaredError
	})
	return out
}

func evaluate(s *Scorer, e colordb.Entry) CandidateMatch {
	rgb, err := colorspace.ParseHex(e.Hex)
	if err != nil {
		return CandidateMatch{
			Entry:             e,
			TotalSquaredError: math.Inf(1),
			AverageError:      math.Inf(1),
		}
	}
	total, avg := s.Score(rgb)
	return CandidateMatch{
		Entry:             e,
		RGB:               rgb,
		Valid:             true,
		TotalSquaredError: total,
		AverageError:      avg,
		Confidence:        Confidence(avg),
	}
}
