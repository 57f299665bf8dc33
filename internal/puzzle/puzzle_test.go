package puzzle

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/wordladder/internal/ladder"
)

func TestParseTextSplitsAtFirstSpace(t *testing.T) {
	src := `
# comment
BULL Animal with horns

BILL Paper  money, folded
`
	p, err := ParseText(strings.NewReader(src), Options{})
	require.NoError(t, err)
	assert.Equal(t, []ladder.Pair{
		{Clue: "Animal with horns", Answer: "BULL"},
		{Clue: "Paper  money, folded", Answer: "BILL"},
	}, p.Rungs)
	assert.Equal(t, DefaultTitle, p.Title)
	assert.Equal(t, DefaultRules, p.Rules)
}

func TestParseTextSkipsMalformedLines(t *testing.T) {
	src := "BULL Animal with horns\nLONELY\nBILL Paper money\n"
	p, err := ParseText(strings.NewReader(src), Options{Title: "Farm"})
	require.NoError(t, err)
	require.Len(t, p.Rungs, 2)
	assert.Equal(t, "BILL", p.Rungs[1].Answer)
	assert.Equal(t, "Farm", p.Title)
}

func TestParseTextStrictRejectsMalformedLines(t *testing.T) {
	src := "BULL Animal with horns\nLONELY\n"
	_, err := ParseText(strings.NewReader(src), Options{Strict: true})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMalformed)
	assert.Contains(t, err.Error(), "line 2")
}

func TestParseTextEmpty(t *testing.T) {
	_, err := ParseText(strings.NewReader("# nothing here\n\n"), Options{})
	assert.ErrorIs(t, err, ErrEmpty)
}

func TestParseYAML(t *testing.T) {
	src := `
title: Farmyard
rules: One letter at a time.
rungs:
  - clue: Animal with horns
    answer: BULL
  - clue: ""
    answer: BELL
  - clue: Paper money
    answer: " BILL "
`
	p, err := ParseYAML(strings.NewReader(src), Options{})
	require.NoError(t, err)
	assert.Equal(t, "Farmyard", p.Title)
	assert.Equal(t, "One letter at a time.", p.Rules)
	assert.Equal(t, []ladder.Pair{
		{Clue: "Animal with horns", Answer: "BULL"},
		{Clue: "Paper money", Answer: "BILL"},
	}, p.Rungs)
	assert.Equal(t, []int{4, 4}, p.AnswerLengths())

	_, err = ParseYAML(strings.NewReader(src), Options{Strict: true})
	assert.ErrorIs(t, err, ErrMalformed)
}

func TestParseYAMLRejectsUnknownFields(t *testing.T) {
	src := "title: x\nrungs:\n  - clue: a\n    answer: b\n    hint: c\n"
	_, err := ParseYAML(strings.NewReader(src), Options{})
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrMalformed)
}

func TestParseYAMLEmptyDocument(t *testing.T) {
	_, err := ParseYAML(strings.NewReader(""), Options{})
	assert.ErrorIs(t, err, ErrEmpty)
}

func TestLoadEmbeddedDefault(t *testing.T) {
	p, err := Load("", Options{})
	require.NoError(t, err)
	assert.Equal(t, DefaultTitle, p.Title)
	require.NotEmpty(t, p.Rungs)
	for _, r := range p.Rungs {
		assert.NotEmpty(t, r.Clue)
		assert.NotEmpty(t, r.Answer)
	}
}

func TestLoadDispatchesOnExtension(t *testing.T) {
	dir := t.TempDir()
	yml := filepath.Join(dir, "p.yml")
	txt := filepath.Join(dir, "p.txt")
	require.NoError(t, os.WriteFile(yml, []byte("rungs:\n  - clue: Maize\n    answer: CORN\n"), 0o644))
	require.NoError(t, os.WriteFile(txt, []byte("CORN Maize\n"), 0o644))

	for _, path := range []string{yml, txt} {
		p, err := Load(path, Options{})
		require.NoError(t, err, path)
		assert.Equal(t, []ladder.Pair{{Clue: "Maize", Answer: "CORN"}}, p.Pairs(), path)
	}

	_, err := Load(filepath.Join(dir, "missing.txt"), Options{})
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestPairsReturnsCopy(t *testing.T) {
	p := &Puzzle{Rungs: []ladder.Pair{{Clue: "a", Answer: "b"}}}
	pairs := p.Pairs()
	pairs[0].Answer = "z"
	assert.Equal(t, "b", p.Rungs[0].Answer)
}
