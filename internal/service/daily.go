package service

import (
	"context"
	"fmt"
	"hash/fnv"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/sumitgouthaman/GeoQuiz-AI/internal/domain/entities"
	"github.com/sumitgouthaman/GeoQuiz-AI/internal/match"
)

// DailyChallengeService serves the question of the day. Selection is
// deterministic per UTC date, so every delivery surface agrees on it. A cron
// job rolls the cached question over at midnight and pre-warms its
// enrichment.
type DailyChallengeService struct {
	countries  CountryRepository
	prefetcher *Prefetcher
	logger     *zap.Logger

	mu       sync.Mutex
	day      string
	question *entities.Question
}

// NewDailyChallengeService creates a new DailyChallengeService.
func NewDailyChallengeService(countries CountryRepository, prefetcher *Prefetcher, logger *zap.Logger) *DailyChallengeService {
	return &DailyChallengeService{
		countries:  countries,
		prefetcher: prefetcher,
		logger:     logger,
	}
}

// Start runs the midnight rollover loop until ctx is done.
func (s *DailyChallengeService) Start(ctx context.Context) {
	s.logger.Info("daily challenge service started")

	c := cron.New(cron.WithLocation(time.UTC))

	_, err := c.AddFunc("0 0 * * *", func() {
		q := s.Question(time.Now().UTC())
		s.logger.Info("daily challenge rolled over",
			zap.String("question_id", q.ID),
		)
	})
	if err != nil {
		s.logger.Error("failed to add cron job", zap.Error(err))
		return
	}

	c.Start()

	// Warm today's question immediately.
	s.Question(time.Now().UTC())

	<-ctx.Done()

	c.Stop()
	s.logger.Info("daily challenge service stopped")
}

// Question returns the challenge for the given moment's UTC date, computing
// and caching it on first use. Prefetching of its enrichment starts as soon
// as the question is computed.
func (s *DailyChallengeService) Question(now time.Time) *entities.Question {
	day := now.UTC().Format("2006-01-02")

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.day == day && s.question != nil {
		return s.question
	}

	q, country := s.questionFor(day)
	s.day = day
	s.question = q

	s.prefetcher.Prefetch(context.Background(), q, country)

	return q
}

// Check evaluates an answer against the current daily challenge.
func (s *DailyChallengeService) Check(now time.Time, text string) (*entities.Question, match.Result) {
	q := s.Question(now)
	return q, match.Evaluate(text, q.Accepted)
}

// questionFor derives the day's question from a hash of the date, so the
// choice is stable without any stored state.
func (s *DailyChallengeService) questionFor(day string) (*entities.Question, *entities.Country) {
	all := s.countries.GetAll()

	h := fnv.New32a()
	h.Write([]byte(day))
	idx := int(h.Sum32()) % len(all)
	if idx < 0 {
		idx += len(all)
	}
	country := all[idx]

	kind := entities.KindCapitalOf
	if h.Sum32()%2 == 1 {
		kind = entities.KindCountryOf
	}

	q := &entities.Question{
		ID:          "daily-" + day,
		Kind:        kind,
		CountryCode: country.Code,
	}

	switch kind {
	case entities.KindCountryOf:
		q.Prompt = fmt.Sprintf("Daily challenge: %s is the capital of which country?", country.Capitals[0])
		q.Accepted = country.AcceptedNames()
	default:
		q.Prompt = fmt.Sprintf("Daily challenge: what is the capital of %s?", country.Name)
		q.Accepted = country.AcceptedCapitals()
	}

	return q, country
}
