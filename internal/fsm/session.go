package fsm

import "sync"

type Mode string

const (
	ModeCollectingNames Mode = "collecting_skill_names"
	ModeAddingSkill     Mode = "adding_skill"
	ModeRenaming        Mode = "renaming"
	ModeSubtractingXP   Mode = "subtracting_xp"
)

// Session is one user's position in a multi-step dialog. A user with no
// Session is idle. Remaining/Total are only meaningful for
// ModeCollectingNames, SkillID only for ModeRenaming and ModeSubtractingXP.
type Session struct {
	Mode      Mode
	Remaining int
	Total     int
	SkillID   int64
}

// Store keeps at most one Session per user. Starting a new flow
// overwrites whatever dialog the user was in before.
type Store struct {
	mu       sync.RWMutex
	sessions map[int64]Session
}

func NewStore() *Store {
	return &Store{sessions: make(map[int64]Session)}
}

func (s *Store) Get(userID int64) (Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[userID]
	return session, ok
}

func (s *Store) Start(userID int64, session Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[userID] = session
}

func (s *Store) Clear(userID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, userID)
}
