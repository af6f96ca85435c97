package service

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/sumitgouthaman/GeoQuiz-AI/internal/domain/entities"
)

// Prefetcher speculatively fetches enrichment while the player is still
// typing an answer. All state is explicit and owned by the Prefetcher;
// results are keyed by question ID and handed out once.
type Prefetcher struct {
	enricher *EnrichmentService
	logger   *zap.Logger
	timeout  time.Duration

	mu      sync.Mutex
	entries map[string]*prefetchEntry
}

type prefetchEntry struct {
	done   chan struct{}
	result *entities.Enrichment
}

// NewPrefetcher creates a Prefetcher. timeout bounds each background fetch.
func NewPrefetcher(enricher *EnrichmentService, timeout time.Duration, logger *zap.Logger) *Prefetcher {
	return &Prefetcher{
		enricher: enricher,
		logger:   logger,
		timeout:  timeout,
		entries:  make(map[string]*prefetchEntry),
	}
}

// Prefetch starts fetching enrichment for q in the background. Calling it
// again for the same question is a no-op.
func (p *Prefetcher) Prefetch(ctx context.Context, q *entities.Question, country *entities.Country) {
	p.mu.Lock()
	if _, ok := p.entries[q.ID]; ok {
		p.mu.Unlock()
		return
	}

	entry := &prefetchEntry{done: make(chan struct{})}
	p.entries[q.ID] = entry
	p.mu.Unlock()

	// The fetch outlives the request that triggered it.
	fetchCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), p.timeout)

	go func() {
		defer cancel()
		defer close(entry.done)

		entry.result = p.enricher.Fetch(fetchCtx, q, country)

		p.logger.Debug("prefetch completed",
			zap.String("question_id", q.ID),
		)
	}()
}

// Wait blocks until the enrichment for questionID is ready or ctx is done.
// If nothing was prefetched for this question it returns nil immediately.
func (p *Prefetcher) Wait(ctx context.Context, questionID string) *entities.Enrichment {
	p.mu.Lock()
	entry, ok := p.entries[questionID]
	p.mu.Unlock()

	if !ok {
		return nil
	}

	select {
	case <-entry.done:
		return entry.result
	case <-ctx.Done():
		return nil
	}
}

// Discard drops the cached enrichment for a question.
func (p *Prefetcher) Discard(questionID string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.entries, questionID)
}
