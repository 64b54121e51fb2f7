package form

import (
	"errors"

	"tradejournal/internal/journal"
)

// ErrInvalidTransition is returned when a session method is called from a
// state that does not allow it.
var ErrInvalidTransition = errors.New("form: invalid session transition")

type SessionState int

const (
	StateClosed SessionState = iota
	StateOpen
	StateSubmitting
)

func (s SessionState) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateOpen:
		return "open"
	case StateSubmitting:
		return "submitting"
	default:
		return "unknown"
	}
}

// Session is the edit-dialog lifecycle:
//
//	closed -> open -> submitting -> closed        (success)
//	                  submitting -> open+error    (failure, draft intact)
//	          open -> closed                      (cancel, draft discarded)
//
// Closed is both initial and terminal. The session holds the draft across a
// failed submit so the user retries without re-entering data.
type Session struct {
	state   SessionState
	editing string // record id, "" when composing a new trade
	draft   Draft
	lastErr string
}

func NewSession() *Session {
	return &Session{state: StateClosed}
}

func (s *Session) State() SessionState { return s.state }

// EditingID returns the id of the record under edit and whether the session
// is bound to an existing record. Callers compare it against the latest feed
// snapshot to detect a stale edit.
func (s *Session) EditingID() (string, bool) {
	return s.editing, s.editing != ""
}

func (s *Session) Draft() Draft { return s.draft }

func (s *Session) Err() string { return s.lastErr }

// Open starts an editing session. rec is nil when composing a new trade.
func (s *Session) Open(rec *journal.TradeRecord, a Adapter) error {
	if s.state != StateClosed {
		return ErrInvalidTransition
	}
	s.state = StateOpen
	s.draft = a.ToEditable(rec)
	s.lastErr = ""
	if rec != nil {
		s.editing = rec.ID
	} else {
		s.editing = ""
	}
	return nil
}

// SetDraft replaces the working draft while the dialog is open.
func (s *Session) SetDraft(d Draft) error {
	if s.state != StateOpen {
		return ErrInvalidTransition
	}
	s.draft = d
	return nil
}

// Submit moves to submitting and hands back the draft to persist.
func (s *Session) Submit() (Draft, error) {
	if s.state != StateOpen {
		return Draft{}, ErrInvalidTransition
	}
	s.state = StateSubmitting
	s.lastErr = ""
	return s.draft, nil
}

// Complete closes the session after a successful write.
func (s *Session) Complete() error {
	if s.state != StateSubmitting {
		return ErrInvalidTransition
	}
	*s = Session{state: StateClosed}
	return nil
}

// Fail reopens the dialog with the draft intact and the failure message set,
// so the user may retry or cancel.
func (s *Session) Fail(msg string) error {
	if s.state != StateSubmitting {
		return ErrInvalidTransition
	}
	s.state = StateOpen
	s.lastErr = msg
	return nil
}

// Cancel discards the draft. Valid from open, including after a failure.
func (s *Session) Cancel() error {
	if s.state != StateOpen {
		return ErrInvalidTransition
	}
	*s = Session{state: StateClosed}
	return nil
}
