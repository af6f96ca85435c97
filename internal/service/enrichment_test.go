package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/sumitgouthaman/GeoQuiz-AI/internal/domain/entities"
)

func TestFetchDegradesOnPartialFailure(t *testing.T) {
	gen := &fakeGenerator{
		hint:    "A helpful hint.",
		infoErr: errors.New("provider overloaded"),
	}
	svc := NewEnrichmentService(gen, zap.NewNop())

	q, country := prefetchFixture()
	enrichment := svc.Fetch(context.Background(), q, country)

	if enrichment == nil {
		t.Fatal("Fetch returned nil")
	}
	if enrichment.Hint != "A helpful hint." {
		t.Errorf("hint = %q", enrichment.Hint)
	}
	if enrichment.Info != nil || enrichment.Image != nil {
		t.Errorf("failed info should leave info and image empty: %+v", enrichment)
	}
	if enrichment.MapURL == "" {
		t.Error("map URL should not depend on the provider")
	}
}

func TestFetchToleratesMissingInfo(t *testing.T) {
	// A provider may answer without error and without a payload. The
	// enrichment must stay partial instead of crashing on it.
	gen := &fakeGenerator{hint: "Still a hint."}
	svc := NewEnrichmentService(gen, zap.NewNop())

	q, country := prefetchFixture()
	enrichment := svc.Fetch(context.Background(), q, country)

	if enrichment == nil {
		t.Fatal("Fetch returned nil")
	}
	if enrichment.Info != nil || enrichment.Image != nil {
		t.Errorf("absent info should leave info and image empty: %+v", enrichment)
	}
	if enrichment.Hint != "Still a hint." {
		t.Errorf("hint = %q", enrichment.Hint)
	}
}

func TestFetchSkipsImageWithoutPhotoPrompt(t *testing.T) {
	gen := &fakeGenerator{
		info: &entities.CountryInfo{Summary: "Summary only."},
	}
	svc := NewEnrichmentService(gen, zap.NewNop())

	q, country := prefetchFixture()
	enrichment := svc.Fetch(context.Background(), q, country)

	if enrichment.Info == nil {
		t.Fatal("info missing")
	}
	if enrichment.Image != nil {
		t.Error("image fetched without a photo prompt")
	}
}

func TestMapEmbedURL(t *testing.T) {
	country := &entities.Country{Code: "CR", Name: "Costa Rica", Capitals: []string{"San José"}}

	u := MapEmbedURL(country)
	if !strings.HasPrefix(u, "https://www.google.com/maps?q=") {
		t.Errorf("unexpected URL: %s", u)
	}
	if !strings.Contains(u, "output=embed") {
		t.Errorf("URL not embeddable: %s", u)
	}
	if strings.ContainsAny(u, " é") {
		t.Errorf("URL not escaped: %s", u)
	}
}

func TestMapEmbedURLNoCapitals(t *testing.T) {
	if u := MapEmbedURL(&entities.Country{Code: "XX", Name: "Nowhere"}); u != "" {
		t.Errorf("URL for capital-less country = %q, want empty", u)
	}
}
