package entities

import "time"

// GameSession tracks one player's run through the quiz.
// It lives in memory while active and is persisted once completed.
type GameSession struct {
	ID           string     // unique session ID
	PlayerID     int64      // owning player, 0 for anonymous web players
	Asked        int        // questions answered so far
	Correct      int        // answers accepted as correct
	CloseMatches int        // correct answers flagged as misspellings
	Streak       int        // current run of consecutive correct answers
	BestStreak   int        // longest run within this session
	Status       string     // "active", "completed" or "abandoned"
	StartedAt    time.Time  // when the session started
	CompletedAt  *time.Time // when the session was completed (nullable)
}

// NewGameSession creates an active session for a player.
func NewGameSession(id string, playerID int64) *GameSession {
	return &GameSession{
		ID:        id,
		PlayerID:  playerID,
		Status:    "active",
		StartedAt: time.Now(),
	}
}

// RecordResult updates the session counters for one answered question.
func (gs *GameSession) RecordResult(correct, closeMatch bool) {
	gs.Asked++
	if correct {
		gs.Correct++
		gs.Streak++
		if gs.Streak > gs.BestStreak {
			gs.BestStreak = gs.Streak
		}
	} else {
		gs.Streak = 0
	}
	if closeMatch {
		gs.CloseMatches++
	}
}

// Complete marks the session as finished and stamps the completion time.
func (gs *GameSession) Complete() {
	gs.Status = "completed"
	now := time.Now()
	gs.CompletedAt = &now
}

// IsActive reports whether the session still accepts answers.
func (gs *GameSession) IsActive() bool {
	return gs.Status == "active"
}

// GameAnswer records one answer submission with its verdict.
type GameAnswer struct {
	ID          int64
	SessionID   string
	PlayerID    int64
	QuestionID  string
	Kind        QuestionKind
	CountryCode string
	Submitted   string // raw text the player typed
	Correct     bool
	CloseMatch  bool
	AnsweredAt  time.Time
}

// NewGameAnswer creates an answer record for a question within a session.
func NewGameAnswer(session *GameSession, q *Question, submitted string) *GameAnswer {
	return &GameAnswer{
		SessionID:   session.ID,
		PlayerID:    session.PlayerID,
		QuestionID:  q.ID,
		Kind:        q.Kind,
		CountryCode: q.CountryCode,
		Submitted:   submitted,
		AnsweredAt:  time.Now(),
	}
}
