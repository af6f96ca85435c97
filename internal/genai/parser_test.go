package genai

import "testing"

const validInfo = `{
  "summary": "France is a country in Western Europe.",
  "facts": ["The Louvre is the most visited museum in the world."],
  "photo_prompt": "The Eiffel Tower at dawn",
  "citations": [{"title": "Britannica", "url": "https://www.britannica.com/place/France"}]
}`

func TestParseCountryInfoDirect(t *testing.T) {
	info, err := ParseCountryInfo(validInfo)
	if err != nil {
		t.Fatal(err)
	}

	if info.Summary == "" || len(info.Facts) != 1 || info.PhotoPrompt == "" {
		t.Errorf("unexpected parse result: %+v", info)
	}
	if len(info.Citations) != 1 || info.Citations[0].URL == "" {
		t.Errorf("citations not parsed: %+v", info.Citations)
	}
}

func TestParseCountryInfoWithSurroundingText(t *testing.T) {
	text := "Here is the requested JSON:\n" + validInfo + "\nLet me know if you need anything else."

	info, err := ParseCountryInfo(text)
	if err != nil {
		t.Fatal(err)
	}
	if info.Summary != "France is a country in Western Europe." {
		t.Errorf("summary = %q", info.Summary)
	}
}

func TestParseCountryInfoFencedBlock(t *testing.T) {
	text := "Sure!\n```json\n" + validInfo + "\n```"

	info, err := ParseCountryInfo(text)
	if err != nil {
		t.Fatal(err)
	}
	if len(info.Facts) != 1 {
		t.Errorf("facts = %v", info.Facts)
	}
}

func TestParseCountryInfoRejectsGarbage(t *testing.T) {
	for _, text := range []string{"", "not json at all", `{"facts": []}`, "```\nnope\n```"} {
		if _, err := ParseCountryInfo(text); err == nil {
			t.Errorf("ParseCountryInfo(%q) expected error, got nil", text)
		}
	}
}
