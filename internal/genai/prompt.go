package genai

import (
	"fmt"
	"strings"

	"github.com/sumitgouthaman/GeoQuiz-AI/internal/domain/entities"
)

const hintSystemPrompt = `You write hints for a geography trivia game about countries and capitals.
A hint nudges the player toward the answer without ever containing it.

Rules:
1. Never mention the answer, any part of it, or an obvious anagram of it
2. One or two sentences, no preamble
3. Prefer geography, history or culture over wordplay
4. Do not reveal the first letter unless explicitly asked`

const infoSystemPrompt = `You produce structured background material about a country for the result
screen of a geography trivia game. Respond with ONLY valid JSON, no markdown,
no explanation. Keep the summary to at most three sentences and facts to one
sentence each. The photo_prompt describes a single striking photograph of the
country for an image generator. If you cite sources, use real, well-known
URLs only.`

func buildHintPrompt(q *entities.Question) string {
	switch q.Kind {
	case entities.KindCountryOf:
		return fmt.Sprintf("The player must name the country whose capital appears in this question: %q. Write the hint.", q.Prompt)
	default:
		return fmt.Sprintf("The player must name the capital asked for in this question: %q. Write the hint.", q.Prompt)
	}
}

func buildInfoPrompt(country *entities.Country) string {
	return fmt.Sprintf(`Produce background material for %s (capital: %s).

Respond with ONLY valid JSON in this exact format:
{
  "summary": "Two or three sentences about the country",
  "facts": ["surprising fact", "another fact", "a third fact"],
  "photo_prompt": "description of one striking photo of the country",
  "citations": [{"title": "Source name", "url": "https://..."}]
}`, country.Name, strings.Join(country.Capitals, ", "))
}
