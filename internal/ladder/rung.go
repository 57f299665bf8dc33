package ladder

import "strings"

// Rung holds the player's input for one Pair and whether it matches.
type Rung struct {
	pair    Pair
	input   string
	correct bool
}

func newRung(p Pair) *Rung {
	r := &Rung{pair: p}
	r.correct = matches(r.input, p.Answer)
	return r
}

// SetInput uppercases raw, cuts it to the answer length and recomputes
// correctness. It reports true only when the rung goes from wrong to right.
func (r *Rung) SetInput(raw string) bool {
	was := r.correct
	r.input = truncate(strings.ToUpper(raw), r.MaxLen())
	r.correct = matches(r.input, r.pair.Answer)
	return r.correct && !was
}

// Correct reports whether the current input matches the answer.
func (r *Rung) Correct() bool { return r.correct }

// Input returns the stored (normalized) input.
func (r *Rung) Input() string { return r.input }

// MaxLen is the answer length in characters.
func (r *Rung) MaxLen() int { return len([]rune(r.pair.Answer)) }

func (r *Rung) view(i int) RungView {
	return RungView{
		Index:   i,
		Clue:    r.pair.Clue,
		Input:   r.input,
		Correct: r.correct,
		MaxLen:  r.MaxLen(),
	}
}

func matches(input, answer string) bool {
	return strings.ToLower(input) == strings.ToLower(answer)
}

// truncate keeps the first n runes of s.
func truncate(s string, n int) string {
	rs := []rune(s)
	if len(rs) <= n {
		return s
	}
	return string(rs[:n])
}
