// Package storage holds per-process game state behind mutexes.
// Active sessions and their pending questions live here; completed games
// are persisted to the database.
package storage

import (
	"sync"

	"github.com/sumitgouthaman/GeoQuiz-AI/internal/domain/entities"
)

// SessionStorage provides in-memory storage for active game sessions and
// the question each session is currently answering.
type SessionStorage struct {
	mu        sync.RWMutex
	sessions  map[string]*entities.GameSession
	questions map[string]*entities.Question // keyed by session ID
	next      map[string]*entities.Question // speculatively generated follow-up
}

// NewSessionStorage creates a new SessionStorage.
func NewSessionStorage() *SessionStorage {
	return &SessionStorage{
		sessions:  make(map[string]*entities.GameSession),
		questions: make(map[string]*entities.Question),
		next:      make(map[string]*entities.Question),
	}
}

// StoreSession saves a session.
func (s *SessionStorage) StoreSession(session *entities.GameSession) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[session.ID] = session
}

// GetSession retrieves a session by ID, or nil if unknown.
func (s *SessionStorage) GetSession(id string) *entities.GameSession {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sessions[id]
}

// DeleteSession removes a session and its pending questions.
func (s *SessionStorage) DeleteSession(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
	delete(s.questions, id)
	delete(s.next, id)
}

// StoreQuestion saves the question a session is currently answering.
func (s *SessionStorage) StoreQuestion(sessionID string, q *entities.Question) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.questions[sessionID] = q
}

// GetQuestion retrieves the pending question for a session, or nil.
func (s *SessionStorage) GetQuestion(sessionID string) *entities.Question {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.questions[sessionID]
}

// ClearQuestion removes the pending question for a session.
func (s *SessionStorage) ClearQuestion(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.questions, sessionID)
}

// StoreNextQuestion saves the speculatively generated follow-up question.
func (s *SessionStorage) StoreNextQuestion(sessionID string, q *entities.Question) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.next[sessionID] = q
}

// TakeNextQuestion removes and returns the follow-up question, or nil.
func (s *SessionStorage) TakeNextQuestion(sessionID string) *entities.Question {
	s.mu.Lock()
	defer s.mu.Unlock()
	q := s.next[sessionID]
	delete(s.next, sessionID)
	return q
}
