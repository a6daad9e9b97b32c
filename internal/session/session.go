// Package session tracks the single todo being text-edited.
package session

import (
	"strings"
	"sync"
)

// State is the edit mode.
type State int

const (
	Viewing State = iota
	Editing
)

func (s State) String() string {
	if s == Editing {
		return "editing"
	}
	return "viewing"
}

// Session is a single-slot edit state machine. The zero value is Viewing.
// It is safe for concurrent use.
type Session struct {
	mu     sync.Mutex
	state  State
	target string
	draft  string
}

// Start begins editing id with its current title, discarding any unsaved draft.
func (s *Session) Start(id, title string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = Editing
	s.target = id
	s.draft = title
}

// SetDraft replaces the draft text. It reports false when not editing.
func (s *Session) SetDraft(text string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != Editing {
		return false
	}
	s.draft = text
	return true
}

// Pending returns the target and the trimmed draft ready to be committed.
func (s *Session) Pending() (id, title string, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != Editing {
		return "", "", false
	}
	return s.target, strings.TrimSpace(s.draft), true
}

// Finish closes the edit of id after a successful commit. An edit that has
// since moved to another todo is left alone.
func (s *Session) Finish(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != Editing || s.target != id {
		return false
	}
	s.reset()
	return true
}

// Cancel abandons the current edit. It reports false when not editing.
func (s *Session) Cancel() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != Editing {
		return false
	}
	s.reset()
	return true
}

func (s *Session) reset() {
	s.state = Viewing
	s.target = ""
	s.draft = ""
}

// State returns the current mode.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Editing reports whether id is the todo being edited.
func (s *Session) Editing(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state == Editing && s.target == id
}

// Target returns the id being edited, or "" while viewing.
func (s *Session) Target() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.target
}

// Draft returns the raw draft text.
func (s *Session) Draft() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.draft
}
