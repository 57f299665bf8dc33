package puzzle

import (
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// ParseYAML reads the structured format. Unknown keys are rejected.
func ParseYAML(r io.Reader, opts Options) (*Puzzle, error) {
	var raw Puzzle
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrEmpty
		}
		return nil, fmt.Errorf("parse yaml: %w", err)
	}

	p := &Puzzle{Title: raw.Title, Rules: raw.Rules}
	for i, pair := range raw.Rungs {
		var err error
		p.Rungs, err = opts.accept(p.Rungs, pair, fmt.Sprintf("rung %d", i+1))
		if err != nil {
			return nil, err
		}
	}
	return opts.finish(p)
}
