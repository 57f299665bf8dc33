// internal/ladder/types.go
//
// Core type definitions for the word ladder state model.
// Defines:
//   - Pair: one clue and its expected answer, supplied by the puzzle loader.
//   - RungView: read-only render data for a single rung.
//   - Event: focus requests and the completion edge emitted by a Ladder.
//   - Command: navigation commands delivered by the hosting UI.

package ladder

// Pair is an immutable clue/answer record.
type Pair struct {
	Clue   string `json:"clue" yaml:"clue"`
	Answer string `json:"answer" yaml:"answer"`
}

// RungView is a value snapshot of one rung for rendering.
type RungView struct {
	Index   int    `json:"index"`
	Clue    string `json:"clue"`
	Input   string `json:"input"`
	Correct bool   `json:"correct"`
	MaxLen  int    `json:"maxLen"` // answer length in characters
}

// EventKind classifies what a Ladder is asking its host to do.
type EventKind string

const (
	// EventFocus asks the host to move input focus to Event.Index.
	EventFocus EventKind = "focus"
	// EventCompleted fires once when the ladder goes from unsolved to solved.
	EventCompleted EventKind = "completed"
)

// Event is emitted by Ladder operations. Index is only meaningful for
// EventFocus, but is always encoded so a request for rung 0 keeps its target.
type Event struct {
	Kind  EventKind `json:"kind"`
	Index int       `json:"index"`
}

// Command is a named navigation command.
type Command string

const (
	CommandUp     Command = "up"
	CommandDown   Command = "down"
	CommandSubmit Command = "submit"
)

// ParseCommand maps a wire string to a Command. ok is false for unknown names.
func ParseCommand(s string) (Command, bool) {
	switch c := Command(s); c {
	case CommandUp, CommandDown, CommandSubmit:
		return c, true
	}
	return "", false
}
