// Package service contains the game's business logic.
package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	mathrand "math/rand"
	"sync"

	"go.uber.org/zap"

	"github.com/sumitgouthaman/GeoQuiz-AI/internal/domain/entities"
	"github.com/sumitgouthaman/GeoQuiz-AI/internal/match"
)

var (
	ErrSessionNotFound  = errors.New("game session not found")
	ErrSessionNotActive = errors.New("game session is not active")
	ErrNoQuestion       = errors.New("no question pending for this session")
)

// AnswerResult is what a delivery surface shows after a submission.
type AnswerResult struct {
	Correct    bool                 `json:"correct"`
	CloseMatch bool                 `json:"close_match"`
	Accepted   []string             `json:"accepted"` // canonical answers, shown after the verdict
	Session    SessionSummary       `json:"session"`
	Enrichment *entities.Enrichment `json:"enrichment,omitempty"`
}

// SessionSummary is the score snapshot returned with every answer.
type SessionSummary struct {
	Asked        int `json:"asked"`
	Correct      int `json:"correct"`
	CloseMatches int `json:"close_matches"`
	Streak       int `json:"streak"`
	BestStreak   int `json:"best_streak"`
}

// QuizService orchestrates sessions, questions and answer evaluation.
type QuizService struct {
	countries  CountryRepository
	games      GameRepository
	sessions   SessionStore
	prefetcher *Prefetcher
	generator  Generator
	logger     *zap.Logger

	// mu guards locks; each session's operations are serialized so two
	// concurrent submissions cannot both record the same question.
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewQuizService creates a new QuizService.
func NewQuizService(
	countries CountryRepository,
	games GameRepository,
	sessions SessionStore,
	prefetcher *Prefetcher,
	generator Generator,
	logger *zap.Logger,
) *QuizService {
	return &QuizService{
		countries:  countries,
		games:      games,
		sessions:   sessions,
		prefetcher: prefetcher,
		generator:  generator,
		logger:     logger,
		locks:      make(map[string]*sync.Mutex),
	}
}

// sessionLock returns the mutex serializing operations on one session.
func (s *QuizService) sessionLock(sessionID string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()

	l, ok := s.locks[sessionID]
	if !ok {
		l = &sync.Mutex{}
		s.locks[sessionID] = l
	}
	return l
}

func (s *QuizService) dropSessionLock(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.locks, sessionID)
}

// StartGame creates a new active session for a player.
func (s *QuizService) StartGame(ctx context.Context, playerID int64) (*entities.GameSession, error) {
	session := entities.NewGameSession(newID(), playerID)
	s.sessions.StoreSession(session)

	s.logger.Info("game started",
		zap.String("session_id", session.ID),
		zap.Int64("player_id", playerID),
	)

	return session, nil
}

// CurrentQuestion returns the pending question for a session, generating one
// if needed. The prefetched follow-up from the previous answer is consumed
// first. Issuing a question kicks off enrichment prefetch for it.
func (s *QuizService) CurrentQuestion(ctx context.Context, sessionID string) (*entities.Question, error) {
	lock := s.sessionLock(sessionID)
	lock.Lock()
	defer lock.Unlock()

	session := s.sessions.GetSession(sessionID)
	if session == nil {
		return nil, ErrSessionNotFound
	}
	if !session.IsActive() {
		return nil, ErrSessionNotActive
	}

	if q := s.sessions.GetQuestion(sessionID); q != nil {
		return q, nil
	}

	q := s.sessions.TakeNextQuestion(sessionID)
	if q == nil {
		q = s.generateQuestion("")
	}
	s.sessions.StoreQuestion(sessionID, q)
	s.startPrefetch(ctx, q)

	return q, nil
}

// SubmitAnswer evaluates the player's text against the pending question,
// updates the session, persists the answer and returns the verdict with
// whatever enrichment is ready. The next question is generated and its
// enrichment prefetched while the player reads the result screen.
func (s *QuizService) SubmitAnswer(ctx context.Context, sessionID, text string) (*AnswerResult, error) {
	lock := s.sessionLock(sessionID)
	lock.Lock()
	defer lock.Unlock()

	session := s.sessions.GetSession(sessionID)
	if session == nil {
		return nil, ErrSessionNotFound
	}
	if !session.IsActive() {
		return nil, ErrSessionNotActive
	}

	q := s.sessions.GetQuestion(sessionID)
	if q == nil {
		return nil, ErrNoQuestion
	}

	verdict := match.Evaluate(text, q.Accepted)
	session.RecordResult(verdict.Correct, verdict.CloseMatch)

	answer := entities.NewGameAnswer(session, q, text)
	answer.Correct = verdict.Correct
	answer.CloseMatch = verdict.CloseMatch
	if err := s.games.SaveAnswer(ctx, answer); err != nil {
		// Scoring still works from the in-memory session.
		s.logger.Error("failed to persist answer",
			zap.String("session_id", sessionID),
			zap.Error(err),
		)
	}

	enrichment := s.prefetcher.Wait(ctx, q.ID)
	s.prefetcher.Discard(q.ID)

	// Speculate on the follow-up while the result screen is up.
	next := s.generateQuestion(q.CountryCode)
	s.sessions.ClearQuestion(sessionID)
	s.sessions.StoreNextQuestion(sessionID, next)
	s.startPrefetch(ctx, next)

	country, err := s.countries.GetByCode(q.CountryCode)
	if err != nil {
		return nil, fmt.Errorf("resolve question country: %w", err)
	}

	return &AnswerResult{
		Correct:    verdict.Correct,
		CloseMatch: verdict.CloseMatch,
		Accepted:   canonicalAnswers(q, country),
		Session:    summarize(session),
		Enrichment: enrichment,
	}, nil
}

// Skip abandons the pending question and counts it as wrong.
func (s *QuizService) Skip(ctx context.Context, sessionID string) (*AnswerResult, error) {
	return s.SubmitAnswer(ctx, sessionID, "")
}

// Hint returns the hint for the pending question, preferring the prefetched
// one and falling back to a direct provider call.
func (s *QuizService) Hint(ctx context.Context, sessionID string) (string, error) {
	q := s.sessions.GetQuestion(sessionID)
	if q == nil {
		return "", ErrNoQuestion
	}

	if enrichment := s.prefetcher.Wait(ctx, q.ID); enrichment != nil && enrichment.Hint != "" {
		return enrichment.Hint, nil
	}

	hint, err := s.generator.Hint(ctx, q)
	if err != nil {
		return "", fmt.Errorf("hint: %w", err)
	}
	return hint, nil
}

// EndGame completes a session and persists it.
func (s *QuizService) EndGame(ctx context.Context, sessionID string) (*entities.GameSession, error) {
	lock := s.sessionLock(sessionID)
	lock.Lock()
	defer lock.Unlock()

	session := s.sessions.GetSession(sessionID)
	if session == nil {
		return nil, ErrSessionNotFound
	}

	session.Complete()
	if err := s.games.SaveGame(ctx, session); err != nil {
		return nil, fmt.Errorf("persist game: %w", err)
	}

	// Drop any enrichment prefetched for questions this session will never see.
	if q := s.sessions.GetQuestion(sessionID); q != nil {
		s.prefetcher.Discard(q.ID)
	}
	if next := s.sessions.TakeNextQuestion(sessionID); next != nil {
		s.prefetcher.Discard(next.ID)
	}

	s.sessions.DeleteSession(sessionID)
	s.dropSessionLock(sessionID)

	s.logger.Info("game completed",
		zap.String("session_id", session.ID),
		zap.Int("asked", session.Asked),
		zap.Int("correct", session.Correct),
	)

	return session, nil
}

// GetSession returns the live session state.
func (s *QuizService) GetSession(sessionID string) (*entities.GameSession, error) {
	session := s.sessions.GetSession(sessionID)
	if session == nil {
		return nil, ErrSessionNotFound
	}
	return session, nil
}

// generateQuestion picks a random country (retrying once past avoidCode so
// the same country is not asked twice in a row) and a random direction.
func (s *QuizService) generateQuestion(avoidCode string) *entities.Question {
	country := s.countries.GetRandom()
	for country.Code == avoidCode && s.countries.Count() > 1 {
		country = s.countries.GetRandom()
	}

	kind := entities.KindCapitalOf
	if mathrand.Intn(2) == 1 {
		kind = entities.KindCountryOf
	}

	q := &entities.Question{
		ID:          newID(),
		Kind:        kind,
		CountryCode: country.Code,
	}

	switch kind {
	case entities.KindCountryOf:
		q.Prompt = fmt.Sprintf("%s is the capital of which country?", country.Capitals[0])
		q.Accepted = country.AcceptedNames()
	default:
		q.Prompt = fmt.Sprintf("What is the capital of %s?", country.Name)
		q.Accepted = country.AcceptedCapitals()
	}

	return q
}

func (s *QuizService) startPrefetch(ctx context.Context, q *entities.Question) {
	country, err := s.countries.GetByCode(q.CountryCode)
	if err != nil {
		s.logger.Error("prefetch skipped, unknown country",
			zap.String("country", q.CountryCode),
			zap.Error(err),
		)
		return
	}
	s.prefetcher.Prefetch(ctx, q, country)
}

// canonicalAnswers returns the display answers for the result screen,
// without alias spellings.
func canonicalAnswers(q *entities.Question, country *entities.Country) []string {
	if q.Kind == entities.KindCountryOf {
		return []string{country.Name}
	}
	return country.Capitals
}

func summarize(session *entities.GameSession) SessionSummary {
	return SessionSummary{
		Asked:        session.Asked,
		Correct:      session.Correct,
		CloseMatches: session.CloseMatches,
		Streak:       session.Streak,
		BestStreak:   session.BestStreak,
	}
}

// newID returns a random 128-bit hex identifier.
func newID() string {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		panic(err) // crypto/rand does not fail on supported platforms
	}
	return hex.EncodeToString(b)
}
