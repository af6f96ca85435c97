// Package entities contains domain entities used across the application.
package entities

// Country is one entry of the game's geography dataset.
// Some countries have more than one official capital (e.g. South Africa,
// Sri Lanka, Bolivia); every capital is an accepted answer.
type Country struct {
	Code     string   `json:"code"`     // ISO 3166-1 alpha-2 code
	Name     string   `json:"name"`     // display name, possibly with diacritics
	Capitals []string `json:"capitals"` // official capitals, at least one
	Aliases  []string `json:"aliases"`  // accepted alternate country names

	// CapitalAliases holds accepted-but-not-displayed capital spellings,
	// e.g. accent-folded forms. Populated by the repository.
	CapitalAliases []string `json:"-"`
}

// AcceptedNames returns every string accepted as "the country": the display
// name plus its aliases.
func (c *Country) AcceptedNames() []string {
	out := make([]string, 0, 1+len(c.Aliases))
	out = append(out, c.Name)
	out = append(out, c.Aliases...)
	return out
}

// AcceptedCapitals returns every string accepted as "the capital": the
// official capitals plus their alias spellings.
func (c *Country) AcceptedCapitals() []string {
	out := make([]string, 0, len(c.Capitals)+len(c.CapitalAliases))
	out = append(out, c.Capitals...)
	out = append(out, c.CapitalAliases...)
	return out
}
