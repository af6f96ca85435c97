package service

import (
	"context"
	"fmt"

	"github.com/sumitgouthaman/GeoQuiz-AI/internal/infra/postgres/repository"
)

const defaultLeaderboardSize = 10

// StatsService exposes aggregate game statistics.
type StatsService struct {
	games GameRepository
}

// NewStatsService creates a new StatsService.
func NewStatsService(games GameRepository) *StatsService {
	return &StatsService{games: games}
}

// Leaderboard returns the top players. limit <= 0 uses the default size.
func (s *StatsService) Leaderboard(ctx context.Context, limit int) ([]repository.LeaderboardEntry, error) {
	if limit <= 0 {
		limit = defaultLeaderboardSize
	}

	entries, err := s.games.Leaderboard(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("leaderboard: %w", err)
	}
	return entries, nil
}

// HardestCountries returns the countries players miss most often.
func (s *StatsService) HardestCountries(ctx context.Context, limit int) (map[string]int, error) {
	if limit <= 0 {
		limit = defaultLeaderboardSize
	}

	misses, err := s.games.CountryMisses(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("hardest countries: %w", err)
	}
	return misses, nil
}
