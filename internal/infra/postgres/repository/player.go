// Package repository contains the PostgreSQL repositories.
package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/sumitgouthaman/GeoQuiz-AI/internal/domain/entities"
	"github.com/sumitgouthaman/GeoQuiz-AI/internal/infra/postgres"
)

var ErrPlayerNotFound = errors.New("player not found")

// PlayerRepository provides access to player records.
type PlayerRepository struct {
	db postgres.DBTX
}

// NewPlayerRepository creates a new PlayerRepository.
func NewPlayerRepository(db postgres.DBTX) *PlayerRepository {
	return &PlayerRepository{db: db}
}

// Ensure inserts a player if it does not exist yet and refreshes its display
// fields otherwise. Telegram players reuse their Telegram user ID.
func (r *PlayerRepository) Ensure(ctx context.Context, p *entities.Player) error {
	query := `
		INSERT INTO players (id, source, name, username, created_at)
		VALUES ($1, $2, $3, $4, now())
		ON CONFLICT (id) DO UPDATE
		SET name = EXCLUDED.name, username = EXCLUDED.username
	`

	if _, err := r.db.Exec(ctx, query, p.ID, p.Source, p.Name, p.Username); err != nil {
		return fmt.Errorf("ensure player: %w", err)
	}
	return nil
}

// CreateAnonymous inserts a web player without identity and returns its ID.
func (r *PlayerRepository) CreateAnonymous(ctx context.Context) (int64, error) {
	query := `
		INSERT INTO players (source, name, created_at)
		VALUES ('web', 'anonymous', now())
		RETURNING id
	`

	var id int64
	if err := r.db.QueryRow(ctx, query).Scan(&id); err != nil {
		return 0, fmt.Errorf("create anonymous player: %w", err)
	}
	return id, nil
}

// GetByID retrieves a player.
func (r *PlayerRepository) GetByID(ctx context.Context, id int64) (*entities.Player, error) {
	query := `
		SELECT id, source, name, username, created_at
		FROM players
		WHERE id = $1
	`

	var p entities.Player
	err := r.db.QueryRow(ctx, query, id).Scan(&p.ID, &p.Source, &p.Name, &p.Username, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPlayerNotFound
		}
		return nil, fmt.Errorf("get player: %w", err)
	}

	return &p, nil
}
