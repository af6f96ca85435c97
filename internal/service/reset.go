package service

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/sumitgouthaman/GeoQuiz-AI/internal/infra/postgres/repository"
)

// ResetService wipes a player's recorded history.
type ResetService struct {
	tr Transactor
}

func NewResetService(tr Transactor) *ResetService {
	return &ResetService{tr: tr}
}

// ResetPlayer deletes the player's answers and games atomically. The player
// row itself is kept so an active chat keeps working.
func (s *ResetService) ResetPlayer(ctx context.Context, playerID int64) error {
	return s.tr.WithinTx(ctx, func(ctx context.Context, tx pgx.Tx) error {
		games := repository.NewGameRepository(tx)

		if err := games.DeleteAnswersByPlayer(ctx, playerID); err != nil {
			return err
		}

		return games.DeleteGamesByPlayer(ctx, playerID)
	})
}
