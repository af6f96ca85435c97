package genai

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/sumitgouthaman/GeoQuiz-AI/internal/domain/entities"
)

// ParseCountryInfo parses the model's reply as a CountryInfo document.
// Models do not always return bare JSON, so it tries several strategies:
// direct parse, first-{ to last-} slice, then fenced code blocks.
func ParseCountryInfo(text string) (*entities.CountryInfo, error) {
	text = strings.TrimSpace(text)

	var info entities.CountryInfo
	if err := json.Unmarshal([]byte(text), &info); err == nil {
		return validated(&info)
	}

	if start := strings.Index(text, "{"); start >= 0 {
		if end := strings.LastIndex(text, "}"); end > start {
			if err := json.Unmarshal([]byte(text[start:end+1]), &info); err == nil {
				return validated(&info)
			}
		}
	}

	if block, ok := fencedBlock(text, "```json"); ok {
		if err := json.Unmarshal([]byte(block), &info); err == nil {
			return validated(&info)
		}
	}
	if block, ok := fencedBlock(text, "```"); ok {
		if err := json.Unmarshal([]byte(block), &info); err == nil {
			return validated(&info)
		}
	}

	return nil, fmt.Errorf("failed to parse model reply as JSON: %.200s", text)
}

func fencedBlock(text, fence string) (string, bool) {
	idx := strings.Index(text, fence)
	if idx < 0 {
		return "", false
	}
	after := text[idx+len(fence):]
	end := strings.Index(after, "```")
	if end < 0 {
		return "", false
	}
	return strings.TrimSpace(after[:end]), true
}

func validated(info *entities.CountryInfo) (*entities.CountryInfo, error) {
	if info.Summary == "" {
		return nil, fmt.Errorf("model reply has no summary")
	}
	return info, nil
}
