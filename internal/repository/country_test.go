package repository

import (
	"os"
	"path/filepath"
	"slices"
	"testing"
)

const testDataset = `{
  "countries": [
    { "code": "fr", "name": "France", "capitals": ["Paris"], "aliases": [] },
    { "code": "ST", "name": "São Tomé and Príncipe", "capitals": ["São Tomé"], "aliases": [] },
    { "code": "ZA", "name": "South Africa", "capitals": ["Pretoria", "Cape Town", "Bloemfontein"], "aliases": [] },
    { "code": "GB", "name": "United Kingdom", "capitals": ["London"], "aliases": ["UK"] }
  ]
}`

func writeDataset(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "countries.json")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestNewCountryRepository(t *testing.T) {
	repo, err := NewCountryRepository(writeDataset(t, testDataset))
	if err != nil {
		t.Fatal(err)
	}

	if got := repo.Count(); got != 4 {
		t.Errorf("Count() = %d, want 4", got)
	}

	// Codes are upper-cased on load.
	if _, err := repo.GetByCode("fr"); err != nil {
		t.Errorf("GetByCode(fr) unexpected error: %v", err)
	}

	if _, err := repo.GetByCode("XX"); err == nil {
		t.Error("GetByCode(XX) expected error, got nil")
	}
}

func TestAccentFoldedAliases(t *testing.T) {
	repo, err := NewCountryRepository(writeDataset(t, testDataset))
	if err != nil {
		t.Fatal(err)
	}

	st, err := repo.GetByCode("ST")
	if err != nil {
		t.Fatal(err)
	}

	if !slices.Contains(st.Aliases, "Sao Tome and Principe") {
		t.Errorf("aliases %v missing accent-folded country name", st.Aliases)
	}
	if !slices.Contains(st.CapitalAliases, "Sao Tome") {
		t.Errorf("capital aliases %v missing accent-folded capital", st.CapitalAliases)
	}
	if !slices.Contains(st.AcceptedCapitals(), "Sao Tome") {
		t.Errorf("AcceptedCapitals() = %v missing folded form", st.AcceptedCapitals())
	}
	if slices.Contains(st.Capitals, "Sao Tome") {
		t.Errorf("display capitals %v should stay canonical", st.Capitals)
	}

	// Unaccented names must not grow aliases.
	za, err := repo.GetByCode("ZA")
	if err != nil {
		t.Fatal(err)
	}
	if len(za.Capitals) != 3 || len(za.CapitalAliases) != 0 {
		t.Errorf("South Africa capitals = %v / aliases %v, want the 3 originals and no aliases", za.Capitals, za.CapitalAliases)
	}
}

func TestAcceptedNamesIncludeAliases(t *testing.T) {
	repo, err := NewCountryRepository(writeDataset(t, testDataset))
	if err != nil {
		t.Fatal(err)
	}

	gb, err := repo.GetByCode("GB")
	if err != nil {
		t.Fatal(err)
	}

	names := gb.AcceptedNames()
	if !slices.Contains(names, "United Kingdom") || !slices.Contains(names, "UK") {
		t.Errorf("AcceptedNames() = %v, want name and alias", names)
	}
}

func TestInvalidDatasets(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "empty list", content: `{"countries": []}`},
		{name: "missing capital", content: `{"countries": [{"code": "FR", "name": "France", "capitals": []}]}`},
		{name: "missing code", content: `{"countries": [{"code": "", "name": "France", "capitals": ["Paris"]}]}`},
		{name: "malformed json", content: `{"countries": [`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewCountryRepository(writeDataset(t, tt.content)); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}
