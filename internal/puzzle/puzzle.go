// internal/puzzle/puzzle.go
//
// Puzzle loading for the word ladder.
//
// Responsibilities:
//   - Parse the line format ("ANSWER clue words...") and the YAML format.
//   - Skip or reject malformed records before they reach the ladder core.
//   - Fall back to the embedded default puzzle when no file is configured.
//
// Formats:
//   - Text (.txt or anything not YAML): one rung per line, answer first,
//     split at the first space. Blank lines and lines starting with '#' are ignored.
//   - YAML (.yaml/.yml): title, rules, rungs[{clue, answer}]. Unknown fields are errors.
//
// Malformed records (missing answer or clue) are skipped with a warning unless
// Options.Strict is set, in which case loading fails with ErrMalformed.
package puzzle

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordladder/assets"
	"github.com/robalobadob/wordladder/internal/ladder"
)

var (
	// ErrMalformed marks a record missing its clue or answer.
	ErrMalformed = errors.New("malformed puzzle record")
	// ErrEmpty is returned when a source yields no usable rungs.
	ErrEmpty = errors.New("puzzle has no rungs")
)

// DefaultTitle is used when the source does not name the puzzle.
const DefaultTitle = "Portland Word Ladder"

// DefaultRules is shown when the source carries no rules text.
const DefaultRules = "Each answer differs from the one above it by a single letter. " +
	"Solved rungs are marked and focus moves on. Use ↑ and ↓ to move between rungs; Enter skips ahead."

// Puzzle is a loaded ladder: display metadata plus ordered pairs.
type Puzzle struct {
	Title string        `yaml:"title"`
	Rules string        `yaml:"rules"`
	Rungs []ladder.Pair `yaml:"rungs"`
}

// Options controls parsing.
type Options struct {
	Strict bool   // reject malformed records instead of skipping them
	Title  string // used when the source has no title
}

// Load reads the puzzle at path, or the embedded default when path is empty.
func Load(path string, opts Options) (*Puzzle, error) {
	if path == "" {
		b, err := assets.DefaultPuzzle()
		if err != nil {
			return nil, fmt.Errorf("read embedded puzzle: %w", err)
		}
		return ParseText(strings.NewReader(string(b)), opts)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open puzzle: %w", err)
	}
	defer f.Close()

	var p *Puzzle
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		p, err = ParseYAML(f, opts)
	default:
		p, err = ParseText(f, opts)
	}
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return p, nil
}

// Pairs returns a copy of the rungs for building a ladder.
func (p *Puzzle) Pairs() []ladder.Pair {
	return append([]ladder.Pair(nil), p.Rungs...)
}

// AnswerLengths returns the answer length of each rung, for clients that
// need input sizes without seeing answers.
func (p *Puzzle) AnswerLengths() []int {
	out := make([]int, len(p.Rungs))
	for i, r := range p.Rungs {
		out[i] = len([]rune(r.Answer))
	}
	return out
}

// accept applies the malformed-record policy to one candidate pair.
// where identifies the record in errors and logs.
func (o Options) accept(pairs []ladder.Pair, pair ladder.Pair, where string) ([]ladder.Pair, error) {
	pair.Clue = strings.TrimSpace(pair.Clue)
	pair.Answer = strings.TrimSpace(pair.Answer)
	if pair.Clue != "" && pair.Answer != "" {
		return append(pairs, pair), nil
	}
	if o.Strict {
		return pairs, fmt.Errorf("%s: %w", where, ErrMalformed)
	}
	log.Warn().Str("record", where).Msg("skipping malformed puzzle record")
	return pairs, nil
}

func (o Options) finish(p *Puzzle) (*Puzzle, error) {
	if len(p.Rungs) == 0 {
		return nil, ErrEmpty
	}
	if strings.TrimSpace(p.Title) == "" {
		p.Title = o.Title
	}
	if p.Title == "" {
		p.Title = DefaultTitle
	}
	if strings.TrimSpace(p.Rules) == "" {
		p.Rules = DefaultRules
	}
	return p, nil
}
