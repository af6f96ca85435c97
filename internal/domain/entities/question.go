package entities

// QuestionKind selects the direction a question is asked in.
type QuestionKind string

const (
	// KindCapitalOf shows a country and asks for its capital.
	KindCapitalOf QuestionKind = "capital_of"
	// KindCountryOf shows a capital and asks for its country.
	KindCountryOf QuestionKind = "country_of"
)

// Question is a single trivia question handed to a player.
// Accepted holds every ground-truth answer including aliases; it is never
// shown to the player.
type Question struct {
	ID          string       `json:"id"`
	Kind        QuestionKind `json:"kind"`
	Prompt      string       `json:"prompt"`
	CountryCode string       `json:"-"`
	Accepted    []string     `json:"-"`
}
