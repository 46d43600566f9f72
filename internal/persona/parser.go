package persona

import (
	"encoding/json"
	"strings"
)

const degradedPreviewRunes = 500

// Parse extracts a persona Document from raw model output. Models are
// asked for a bare JSON object but frequently wrap it in prose or code
// fences, so extraction takes the window between the first '{' and the
// last '}' and attempts to decode that substring.
//
// Parse never fails: when no window exists or the window is not valid
// JSON, it returns a degraded Document in which every canonical section
// carries the same raw-response preview, and degraded is true.
func Parse(raw string) (doc Document, degraded bool) {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start == -1 || end == -1 || end < start {
		return degradedDocument(raw), true
	}

	var parsed Document
	if err := json.Unmarshal([]byte(raw[start:end+1]), &parsed); err != nil {
		return degradedDocument(raw), true
	}
	return parsed, false
}

// degradedDocument maps every canonical section to an "analysis" preview
// of the raw response, so rendering and citation linking still work when
// the model ignored the requested shape.
func degradedDocument(raw string) Document {
	preview := raw
	if runes := []rune(preview); len(runes) > degradedPreviewRunes {
		preview = string(runes[:degradedPreviewRunes])
	}
	preview += "..."

	doc := make(Document, len(canonicalSections))
	for _, s := range canonicalSections {
		doc[s.Key] = map[string]any{"analysis": preview}
	}
	return doc
}
