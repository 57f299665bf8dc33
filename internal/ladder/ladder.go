// internal/ladder/ladder.go
//
// Ladder state for a single puzzle session.
// Responsibilities:
//   - Own one Rung per Pair, in loader order.
//   - Track which rung the host last reported as focused.
//   - Route input updates to rungs and derive the "all solved" signal.
//   - Emit focus requests (auto-advance, navigation) and the completion edge.
//
// Notes:
//   - A Ladder is not safe for concurrent use; hosts serialize events per session.
//   - Out-of-range indices are ignored rather than reported.
//   - Focus is a host fact: the ladder only requests it, SetFocusedIndex records it.
package ladder

// Ladder is the ordered set of rungs plus focus and completion state.
type Ladder struct {
	rungs      []*Rung
	focused    int
	allCorrect bool
}

// New builds a Ladder from pairs.
func New(pairs []Pair) *Ladder {
	l := &Ladder{}
	l.Initialize(pairs)
	return l
}

// Initialize replaces every rung with a fresh one per pair and resets focus.
// An empty pair list yields a ladder that is already complete.
func (l *Ladder) Initialize(pairs []Pair) {
	l.rungs = make([]*Rung, len(pairs))
	for i, p := range pairs {
		l.rungs[i] = newRung(p)
	}
	l.focused = 0
	l.allCorrect = l.computeAllCorrect()
}

// Len returns the number of rungs.
func (l *Ladder) Len() int { return len(l.rungs) }

// FocusedIndex returns the rung last reported as focused.
func (l *Ladder) FocusedIndex() int { return l.focused }

// SetFocusedIndex records a focus change reported by the host.
func (l *Ladder) SetFocusedIndex(i int) {
	if !l.inRange(i) {
		return
	}
	l.focused = i
}

// UpdateRungInput applies raw text to rung i. When that rung becomes newly
// correct the ladder requests focus on the next rung and rechecks completion.
func (l *Ladder) UpdateRungInput(i int, raw string) []Event {
	if !l.inRange(i) {
		return nil
	}
	var events []Event
	if l.rungs[i].SetInput(raw) {
		events = l.advance(events)
	}
	return l.recheck(events)
}

// Navigate handles a host navigation command.
func (l *Ladder) Navigate(cmd Command) []Event {
	switch cmd {
	case CommandUp:
		if target, ok := Previous(l.focused, len(l.rungs)); ok {
			return []Event{{Kind: EventFocus, Index: target}}
		}
	case CommandDown, CommandSubmit:
		return l.advance(nil)
	}
	return nil
}

// IsComplete reports whether every rung is correct.
func (l *Ladder) IsComplete() bool { return l.allCorrect }

// Rung returns a snapshot of rung i.
func (l *Ladder) Rung(i int) (RungView, bool) {
	if !l.inRange(i) {
		return RungView{}, false
	}
	return l.rungs[i].view(i), true
}

// Rungs returns render data for every rung.
func (l *Ladder) Rungs() []RungView {
	out := make([]RungView, len(l.rungs))
	for i, r := range l.rungs {
		out[i] = r.view(i)
	}
	return out
}

// advance is shared by auto-advance on solve and the down/submit commands.
func (l *Ladder) advance(events []Event) []Event {
	if target, ok := Next(l.focused, len(l.rungs)); ok {
		events = append(events, Event{Kind: EventFocus, Index: target})
	}
	return events
}

// recheck recomputes allCorrect and appends EventCompleted on a false→true edge.
func (l *Ladder) recheck(events []Event) []Event {
	was := l.allCorrect
	l.allCorrect = l.computeAllCorrect()
	if l.allCorrect && !was {
		events = append(events, Event{Kind: EventCompleted})
	}
	return events
}

func (l *Ladder) computeAllCorrect() bool {
	for _, r := range l.rungs {
		if !r.Correct() {
			return false
		}
	}
	return true
}

func (l *Ladder) inRange(i int) bool { return i >= 0 && i < len(l.rungs) }
