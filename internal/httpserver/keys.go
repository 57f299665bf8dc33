package httpserver

import "github.com/robalobadob/wordladder/internal/ladder"

// KeyMap binds browser KeyboardEvent.key names to navigation commands.
type KeyMap map[string]ladder.Command

// DefaultKeyMap is the classic binding: arrows move, Enter skips ahead.
var DefaultKeyMap = KeyMap{
	"ArrowUp":   ladder.CommandUp,
	"ArrowDown": ladder.CommandDown,
	"Enter":     ladder.CommandSubmit,
}

// Lookup returns the command bound to key. Unbound keys report false.
func (k KeyMap) Lookup(key string) (ladder.Command, bool) {
	cmd, ok := k[key]
	return cmd, ok
}
