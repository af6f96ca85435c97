// Package repository provides access to the geography dataset.
package repository

import (
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"os"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/sumitgouthaman/GeoQuiz-AI/internal/domain/entities"
)

var (
	ErrCountryNotFound = errors.New("country not found")
	ErrEmptyDataset    = errors.New("country dataset is empty")
)

var stripAccents = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// CountryRepository serves the country dataset from memory.
// The dataset is loaded once from a JSON file at startup.
type CountryRepository struct {
	countries []*entities.Country
	byCode    map[string]*entities.Country
}

// NewCountryRepository loads the dataset from path and validates it.
func NewCountryRepository(path string) (*CountryRepository, error) {
	countries, err := loadCountries(path)
	if err != nil {
		return nil, err
	}

	byCode := make(map[string]*entities.Country, len(countries))
	for _, c := range countries {
		expandAliases(c)
		byCode[c.Code] = c
	}

	return &CountryRepository{
		countries: countries,
		byCode:    byCode,
	}, nil
}

// GetByCode retrieves a country by its ISO code.
func (r *CountryRepository) GetByCode(code string) (*entities.Country, error) {
	c, ok := r.byCode[strings.ToUpper(code)]
	if !ok {
		return nil, ErrCountryNotFound
	}
	return c, nil
}

// GetRandom retrieves a random country.
func (r *CountryRepository) GetRandom() *entities.Country {
	return r.countries[rand.Intn(len(r.countries))]
}

// GetAll retrieves every country in the dataset.
func (r *CountryRepository) GetAll() []*entities.Country {
	return r.countries
}

// Count returns the dataset size.
func (r *CountryRepository) Count() int {
	return len(r.countries)
}

func loadCountries(path string) ([]*entities.Country, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var wrapper struct {
		Countries []*entities.Country `json:"countries"`
	}
	if err = json.Unmarshal(data, &wrapper); err != nil {
		return nil, fmt.Errorf("failed to unmarshal countries JSON: %w", err)
	}

	if len(wrapper.Countries) == 0 {
		return nil, ErrEmptyDataset
	}

	for _, c := range wrapper.Countries {
		if c.Code == "" || c.Name == "" || len(c.Capitals) == 0 {
			return nil, fmt.Errorf("invalid country entry %q: code, name and at least one capital are required", c.Name)
		}
		c.Code = strings.ToUpper(c.Code)
	}

	return wrapper.Countries, nil
}

// expandAliases adds accent-folded variants of the country name, its aliases
// and its capitals, so "Sao Tome and Principe" is accepted for
// "São Tomé and Príncipe". Folded forms that equal the original are skipped.
// Capital variants go into CapitalAliases so display lists stay canonical.
func expandAliases(c *entities.Country) {
	c.Aliases = appendFolded(c.Aliases, append([]string{c.Name}, c.Aliases...))
	c.CapitalAliases = appendFolded(c.CapitalAliases, c.Capitals)
}

func appendFolded(dst []string, src []string) []string {
	seen := make(map[string]struct{}, len(dst)+len(src))
	for _, s := range src {
		seen[s] = struct{}{}
	}
	for _, s := range dst {
		seen[s] = struct{}{}
	}

	for _, s := range src {
		folded := foldAccents(s)
		if _, ok := seen[folded]; ok {
			continue
		}
		seen[folded] = struct{}{}
		dst = append(dst, folded)
	}
	return dst
}

// foldAccents strips combining marks (e.g. Bogotá -> Bogota).
func foldAccents(s string) string {
	result, _, err := transform.String(stripAccents, s)
	if err != nil {
		return s
	}
	return result
}
