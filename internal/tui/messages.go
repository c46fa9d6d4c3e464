package tui

import (
	"fmt"
	"strings"
	"sync"

	"github.com/scientech-com-ua/dropdown/internal/scope"
)

// dropdownOp names a controller operation run from a command.
type dropdownOp int

const (
	opShow dropdownOp = iota
	opHide
	opRemove
)

func (o dropdownOp) String() string {
	switch o {
	case opShow:
		return "show"
	case opHide:
		return "hide"
	case opRemove:
		return "remove"
	default:
		return "unknown"
	}
}

// --- Messages ---

// dropdownDoneMsg reports a finished controller operation.
type dropdownDoneMsg struct {
	id  int
	op  dropdownOp
	err error
}

// eventLog keeps the most recent lifecycle events heard on the root scope.
// Handlers run on command goroutines; the view reads from the UI goroutine.
type eventLog struct {
	mu      sync.Mutex
	limit   int
	entries []string
}

func newEventLog(limit int) *eventLog {
	return &eventLog{limit: limit}
}

// listen records name events from s, labelled by label.
func (l *eventLog) listen(s *scope.Scope, label func(any) string, names ...string) {
	for _, name := range names {
		s.On(name, func(e scope.Event) {
			l.add(strings.TrimSpace(fmt.Sprintf("%s %s", e.Name, label(e.Payload))))
		})
	}
}

func (l *eventLog) add(entry string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, entry)
	if over := len(l.entries) - l.limit; l.limit > 0 && over > 0 {
		l.entries = append([]string(nil), l.entries[over:]...)
	}
}

// Last returns the newest entry, or "".
func (l *eventLog) Last() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.entries) == 0 {
		return ""
	}
	return l.entries[len(l.entries)-1]
}

// Entries returns a copy of the log, oldest first.
func (l *eventLog) Entries() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.entries...)
}
