package repository

import (
	"context"
	"fmt"

	"github.com/sumitgouthaman/GeoQuiz-AI/internal/domain/entities"
	"github.com/sumitgouthaman/GeoQuiz-AI/internal/infra/postgres"
)

// LeaderboardEntry is one row of the all-time leaderboard.
type LeaderboardEntry struct {
	PlayerID   int64  `json:"player_id"`
	PlayerName string `json:"player_name"`
	Games      int    `json:"games"`
	Correct    int    `json:"correct"`
	BestStreak int    `json:"best_streak"`
}

// GameRepository persists finished games and their answers.
type GameRepository struct {
	db postgres.DBTX
}

// NewGameRepository creates a new GameRepository.
func NewGameRepository(db postgres.DBTX) *GameRepository {
	return &GameRepository{db: db}
}

// SaveGame inserts a completed or abandoned session.
func (r *GameRepository) SaveGame(ctx context.Context, s *entities.GameSession) error {
	query := `
		INSERT INTO games (
			id, player_id, asked, correct, close_matches,
			best_streak, status, started_at, completed_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.db.Exec(
		ctx,
		query,
		s.ID,
		s.PlayerID,
		s.Asked,
		s.Correct,
		s.CloseMatches,
		s.BestStreak,
		s.Status,
		s.StartedAt,
		s.CompletedAt,
	)
	if err != nil {
		return fmt.Errorf("save game: %w", err)
	}

	return nil
}

// SaveAnswer inserts one answer record.
func (r *GameRepository) SaveAnswer(ctx context.Context, a *entities.GameAnswer) error {
	query := `
		INSERT INTO game_answers (
			session_id, player_id, question_id, kind, country_code,
			submitted, is_correct, close_match, answered_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.db.Exec(
		ctx,
		query,
		a.SessionID,
		a.PlayerID,
		a.QuestionID,
		a.Kind,
		a.CountryCode,
		a.Submitted,
		a.Correct,
		a.CloseMatch,
		a.AnsweredAt,
	)
	if err != nil {
		return fmt.Errorf("save answer: %w", err)
	}

	return nil
}

// DeleteGamesByPlayer removes every game recorded for a player.
func (r *GameRepository) DeleteGamesByPlayer(ctx context.Context, playerID int64) error {
	_, err := r.db.Exec(ctx, `DELETE FROM games WHERE player_id = $1`, playerID)
	if err != nil {
		return fmt.Errorf("delete games: %w", err)
	}

	return nil
}

// DeleteAnswersByPlayer removes every answer recorded for a player.
func (r *GameRepository) DeleteAnswersByPlayer(ctx context.Context, playerID int64) error {
	_, err := r.db.Exec(ctx, `DELETE FROM game_answers WHERE player_id = $1`, playerID)
	if err != nil {
		return fmt.Errorf("delete answers: %w", err)
	}

	return nil
}

// Leaderboard returns the top players by total correct answers.
func (r *GameRepository) Leaderboard(ctx context.Context, limit int) ([]LeaderboardEntry, error) {
	query := `
		SELECT p.id, p.name, COUNT(g.id), COALESCE(SUM(g.correct), 0), COALESCE(MAX(g.best_streak), 0)
		FROM players p
		JOIN games g ON g.player_id = p.id
		WHERE g.status = 'completed'
		GROUP BY p.id, p.name
		ORDER BY SUM(g.correct) DESC, MAX(g.best_streak) DESC
		LIMIT $1
	`

	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("leaderboard: %w", err)
	}
	defer rows.Close()

	var entries []LeaderboardEntry
	for rows.Next() {
		var e LeaderboardEntry
		if err := rows.Scan(&e.PlayerID, &e.PlayerName, &e.Games, &e.Correct, &e.BestStreak); err != nil {
			return nil, fmt.Errorf("scan leaderboard row: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("leaderboard rows: %w", err)
	}

	return entries, nil
}

// CountryMisses returns how often a country was answered wrong, for tuning
// the dataset.
func (r *GameRepository) CountryMisses(ctx context.Context, limit int) (map[string]int, error) {
	query := `
		SELECT country_code, COUNT(*)
		FROM game_answers
		WHERE NOT is_correct
		GROUP BY country_code
		ORDER BY COUNT(*) DESC
		LIMIT $1
	`

	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("country misses: %w", err)
	}
	defer rows.Close()

	misses := make(map[string]int)
	for rows.Next() {
		var code string
		var n int
		if err := rows.Scan(&code, &n); err != nil {
			return nil, fmt.Errorf("scan miss row: %w", err)
		}
		misses[code] = n
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("miss rows: %w", err)
	}

	return misses, nil
}
