package service

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/sumitgouthaman/GeoQuiz-AI/internal/domain/entities"
	"github.com/sumitgouthaman/GeoQuiz-AI/internal/infra/postgres/repository"
)

// Transactor runs a function inside a database transaction.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context, tx pgx.Tx) error) error
}

// CountryRepository serves the geography dataset.
type CountryRepository interface {
	GetByCode(code string) (*entities.Country, error)
	GetRandom() *entities.Country
	GetAll() []*entities.Country
	Count() int
}

// GameRepository persists finished games.
type GameRepository interface {
	SaveGame(ctx context.Context, s *entities.GameSession) error
	SaveAnswer(ctx context.Context, a *entities.GameAnswer) error
	Leaderboard(ctx context.Context, limit int) ([]repository.LeaderboardEntry, error)
	CountryMisses(ctx context.Context, limit int) (map[string]int, error)
}

// PlayerRepository persists players.
type PlayerRepository interface {
	Ensure(ctx context.Context, p *entities.Player) error
	CreateAnonymous(ctx context.Context) (int64, error)
}

// SessionStore holds active per-process game state.
type SessionStore interface {
	StoreSession(session *entities.GameSession)
	GetSession(id string) *entities.GameSession
	DeleteSession(id string)
	StoreQuestion(sessionID string, q *entities.Question)
	GetQuestion(sessionID string) *entities.Question
	ClearQuestion(sessionID string)
	StoreNextQuestion(sessionID string, q *entities.Question)
	TakeNextQuestion(sessionID string) *entities.Question
}

// Generator is the generative-AI provider.
type Generator interface {
	Hint(ctx context.Context, q *entities.Question) (string, error)
	CountryInfo(ctx context.Context, country *entities.Country) (*entities.CountryInfo, error)
	GenerateImage(ctx context.Context, prompt string) (*entities.ImagePayload, error)
}
