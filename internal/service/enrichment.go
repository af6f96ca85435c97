package service

import (
	"context"
	"fmt"
	"net/url"
	"sync"

	"go.uber.org/zap"

	"github.com/sumitgouthaman/GeoQuiz-AI/internal/domain/entities"
)

// EnrichmentService fetches result-screen material from the generative-AI
// provider. Hint, country info and photo are fetched concurrently; any of
// them may fail individually without failing the whole enrichment.
type EnrichmentService struct {
	generator Generator
	logger    *zap.Logger
}

// NewEnrichmentService creates a new EnrichmentService.
func NewEnrichmentService(generator Generator, logger *zap.Logger) *EnrichmentService {
	return &EnrichmentService{
		generator: generator,
		logger:    logger,
	}
}

// Fetch gathers the enrichment for one question. The returned value is never
// nil; missing pieces are left empty.
func (s *EnrichmentService) Fetch(ctx context.Context, q *entities.Question, country *entities.Country) *entities.Enrichment {
	enrichment := &entities.Enrichment{
		MapURL: MapEmbedURL(country),
	}

	var mu sync.Mutex
	var wg sync.WaitGroup

	wg.Add(2)

	go func() {
		defer wg.Done()

		hint, err := s.generator.Hint(ctx, q)
		if err != nil {
			s.logger.Warn("hint fetch failed",
				zap.String("question_id", q.ID),
				zap.Error(err),
			)
			return
		}

		mu.Lock()
		enrichment.Hint = hint
		mu.Unlock()
	}()

	go func() {
		defer wg.Done()

		info, err := s.generator.CountryInfo(ctx, country)
		if err != nil {
			s.logger.Warn("country info fetch failed",
				zap.String("country", country.Code),
				zap.Error(err),
			)
			return
		}
		if info == nil {
			return
		}

		mu.Lock()
		enrichment.Info = info
		mu.Unlock()

		// The photo prompt comes from the info reply, so the image fetch
		// chains behind it.
		if info.PhotoPrompt == "" {
			return
		}

		image, err := s.generator.GenerateImage(ctx, info.PhotoPrompt)
		if err != nil {
			s.logger.Warn("image fetch failed",
				zap.String("country", country.Code),
				zap.Error(err),
			)
			return
		}

		mu.Lock()
		enrichment.Image = image
		mu.Unlock()
	}()

	wg.Wait()
	return enrichment
}

// MapEmbedURL builds the embeddable map URL for a country's first capital.
func MapEmbedURL(country *entities.Country) string {
	if len(country.Capitals) == 0 {
		return ""
	}
	query := fmt.Sprintf("%s, %s", country.Capitals[0], country.Name)
	return "https://www.google.com/maps?q=" + url.QueryEscape(query) + "&output=embed"
}
