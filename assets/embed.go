// Package assets embeds the default puzzle and the browser page served by
// the HTTP host.
package assets

import (
	"embed"
	"io/fs"
)

//go:embed ladder.txt web
var FS embed.FS

// DefaultPuzzleName is the embedded puzzle used when no PUZZLE_FILE is set.
const DefaultPuzzleName = "ladder.txt"

// DefaultPuzzle returns the raw embedded puzzle source.
func DefaultPuzzle() ([]byte, error) {
	return FS.ReadFile(DefaultPuzzleName)
}

// Web returns the browser page files rooted at web/.
func Web() (fs.FS, error) {
	return fs.Sub(FS, "web")
}
