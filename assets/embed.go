// Package assets embeds the default reference palette so the solver runs
// even when no color database is configured.
package assets

import (
	"embed"
	"io"
)

//go:embed colornames.csv
var FS embed.FS

// PaletteFile is the name of the embedded palette inside FS.
const PaletteFile = "colornames.csv"

// OpenPalette opens the embedded palette (name,hex CSV with a header row).
func OpenPalette() (io.ReadCloser, error) {
	return FS.Open(PaletteFile)
}
