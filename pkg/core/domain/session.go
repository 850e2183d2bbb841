package domain

import (
	"errors"
	"slices"
)

var ErrSessionClosed = errors.New("session is closed")

// Session carries the signed-in user's profile between the point it is
// loaded from the store and logout. The held snapshot is authoritative
// while the session is open and is only replaced after a successful save.
type Session struct {
	profile UserProfile
	closed  bool
}

func NewSession(profile UserProfile) *Session {
	return &Session{profile: profile}
}

// Profile returns a copy of the current snapshot.
func (s *Session) Profile() (UserProfile, error) {
	if s == nil || s.closed {
		return UserProfile{}, ErrSessionClosed
	}
	p := s.profile
	p.Links = slices.Clone(s.profile.Links)
	return p, nil
}

// Commit makes p the session snapshot.
func (s *Session) Commit(p UserProfile) error {
	if s == nil || s.closed {
		return ErrSessionClosed
	}
	s.profile = p
	return nil
}

// Close ends the session and drops the snapshot.
func (s *Session) Close() {
	if s == nil {
		return
	}
	s.closed = true
	s.profile = UserProfile{}
}

func (s *Session) Active() bool {
	return s != nil && !s.closed
}
