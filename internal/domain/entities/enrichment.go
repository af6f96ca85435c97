package entities

// The generative-AI provider returns enrichment for the result screen.
// Its payloads are consumed as opaque data; the structures below are the
// shapes this application asks the model to produce, not a provider schema.

// Citation points at a source the model claims to have drawn from.
type Citation struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

// CountryInfo is the structured summary shown after an answer.
type CountryInfo struct {
	Summary     string     `json:"summary"`
	Facts       []string   `json:"facts"`
	PhotoPrompt string     `json:"photo_prompt"`
	Citations   []Citation `json:"citations,omitempty"`
}

// ImagePayload is a generated photo for the result screen.
type ImagePayload struct {
	MIMEType string `json:"mime_type"`
	Data     []byte `json:"data"`
}

// Enrichment bundles everything fetched for one question's result screen.
// Any field may be empty: enrichment degrades, it never fails a result.
type Enrichment struct {
	Hint   string        `json:"hint,omitempty"`
	Info   *CountryInfo  `json:"info,omitempty"`
	Image  *ImagePayload `json:"image,omitempty"`
	MapURL string        `json:"map_url,omitempty"`
}
