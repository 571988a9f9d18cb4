// Package history keeps the navigation stack behind the `back`
// command. Pure stack discipline: the top entry is always the state
// to return to, never the current page.
package history

import (
	"webcli/internal/domain/entity"
)

type Stack struct {
	entries []entity.HistoryEntry
}

func New() *Stack {
	return &Stack{}
}

// Push records the page being left behind by a navigating action.
func (s *Stack) Push(entry entity.HistoryEntry) {
	s.entries = append(s.entries, entry)
}

// Pop removes and returns the most recent entry. Returns ErrNoHistory
// when the stack is empty.
func (s *Stack) Pop() (entity.HistoryEntry, error) {
	if len(s.entries) == 0 {
		return entity.HistoryEntry{}, entity.ErrNoHistory
	}
	entry := s.entries[len(s.entries)-1]
	s.entries = s.entries[:len(s.entries)-1]
	return entry, nil
}

func (s *Stack) Len() int {
	return len(s.entries)
}
