package puzzle

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/robalobadob/wordladder/internal/ladder"
)

// ParseText reads the line format: the answer, one space, then the clue.
func ParseText(r io.Reader, opts Options) (*Puzzle, error) {
	var pairs []ladder.Pair
	sc := bufio.NewScanner(r)
	n := 0
	for sc.Scan() {
		n++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		answer, clue, _ := strings.Cut(line, " ")
		var err error
		pairs, err = opts.accept(pairs, ladder.Pair{Clue: clue, Answer: answer}, fmt.Sprintf("line %d", n))
		if err != nil {
			return nil, err
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("scan puzzle: %w", err)
	}
	return opts.finish(&Puzzle{Rungs: pairs})
}
