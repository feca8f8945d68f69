// internal/colordb/colordb.go
//
// Reference color database: the ordered {name, hex} list every solver path
// runs against.
//
// Responsibilities:
//   - Parse the tabular palette format (CSV with "name" and "hex" columns).
//   - Load from a file path, or fall back to the embedded palette in assets.
//   - Name search for picking extra reference guesses.
//
// Entries are kept raw: a malformed hex is preserved so the matcher can
// rank it last and the digit filter can drop it, rather than failing the
// whole load. Use NewColor where a validated color is required.
package colordb

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/5plinkK/ColordleSolver/assets"
	"github.com/5plinkK/ColordleSolver/internal/colorspace"
)

// Entry is one database row as supplied; Hex may be malformed.
type Entry struct {
	Name string `json:"name"`
	Hex  string `json:"hex"`
}

// Color is a validated entry: Hex is canonical "#RRGGBB" and matches RGB.
type Color struct {
	Name string         `json:"name"`
	Hex  string         `json:"hex"`
	RGB  colorspace.RGB `json:"rgb"`
}

// NewColor validates hex and builds a Color.
func NewColor(name, hex string) (Color, error) {
	rgb, err := colorspace.ParseHex(strings.TrimSpace(hex))
	if err != nil {
		return Color{}, err
	}
	return Color{Name: name, Hex: rgb.Hex(), RGB: rgb}, nil
}

// Color validates the entry.
func (e Entry) Color() (Color, error) { return NewColor(e.Name, e.Hex) }

// ErrMissingColumn is returned when the header lacks "name" or "hex".
var ErrMissingColumn = errors.New("colordb: header must contain name and hex columns")

// ReadCSV parses a header-driven CSV. Column order is free and extra
// columns are ignored. Hex values are trimmed and uppercased only.
func ReadCSV(r io.Reader) ([]Entry, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, ErrMissingColumn
	}
	if err != nil {
		return nil, fmt.Errorf("colordb: read header: %w", err)
	}
	nameCol, hexCol := -1, -1
	for i, h := range header {
		switch strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))) {
		case "name":
			nameCol = i
		case "hex":
			hexCol = i
		}
	}
	if nameCol < 0 || hexCol < 0 {
		return nil, ErrMissingColumn
	}

	var out []Entry
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("colordb: read row: %w", err)
		}
		if blank(rec) {
			continue
		}
		e := Entry{}
		if nameCol < len(rec) {
			e.Name = strings.TrimSpace(rec[nameCol])
		}
		if hexCol < len(rec) {
			e.Hex = strings.ToUpper(strings.TrimSpace(rec[hexCol]))
		}
		out = append(out, e)
	}
	return out, nil
}

// Load reads a CSV palette from path.
func Load(path string) ([]Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	entries, err := ReadCSV(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	log.Debug().Str("path", path).Int("colors", len(entries)).Msg("color database loaded")
	return entries, nil
}

var (
	defaultOnce    sync.Once
	defaultEntries []Entry
	defaultErr     error
)

// Default returns the embedded palette, parsed once. Callers must not
// modify the returned slice.
func Default() ([]Entry, error) {
	defaultOnce.Do(func() {
		f, err := assets.OpenPalette()
		if err != nil {
			defaultErr = err
			return
		}
		defer f.Close()
		defaultEntries, defaultErr = ReadCSV(f)
	})
	return defaultEntries, defaultErr
}

// DefaultSearchLimit matches the guess picker's result count.
const DefaultSearchLimit = 5

// Search returns up to limit entries whose name contains query
// (case-insensitive), in database order. An empty query matches nothing.
func Search(db []Entry, query string, limit int) []Entry {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return []Entry{}
	}
	if limit <= 0 {
		limit = DefaultSearchLimit
	}
	out := []Entry{}
	for _, e := range db {
		if strings.Contains(strings.ToLower(e.Name), q) {
			out = append(out, e)
			if len(out) == limit {
				break
			}
		}
	}
	return out
}

// Baselines are the reference guesses every game starts from.
func Baselines() []Color {
	return []Color{
		{Name: "Cyan", Hex: "#00FFFF", RGB: colorspace.RGB{R: 0, G: 255, B: 255}},
		{Name: "Magenta", Hex: "#FF00FF", RGB: colorspace.RGB{R: 255, G: 0, B: 255}},
		{Name: "Yellow", Hex: "#FFFF00", RGB: colorspace.RGB{R: 255, G: 255, B: 0}},
		{Name: "White", Hex: "#FFFFFF", RGB: colorspace.RGB{R: 255, G: 255, B: 255}},
	}
}

func blank(rec []string) bool {
	for _, f := range rec {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}
