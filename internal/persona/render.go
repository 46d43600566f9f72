package persona

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

const maxRenderedCitations = 3

// RenderReport produces the full persona report as UTF-8 text. The output
// depends only on its inputs: generatedAt is the single varying value, so
// rendering the same persona twice with the same timestamp is byte
// identical. Sections follow the canonical order and are always present,
// even when absent from doc.
func RenderReport(username string, doc Document, citations CitationSet, generatedAt time.Time) string {
	var b strings.Builder

	b.WriteString("\nREDDIT USER PERSONA ANALYSIS\n")
	fmt.Fprintf(&b, "Username: %s\n", username)
	fmt.Fprintf(&b, "Generated: %s\n", generatedAt.Format("2006-01-02 15:04:05"))
	b.WriteString("Generated by: Reddit User Persona Extractor\n")
	fmt.Fprintf(&b, "URL: https://www.reddit.com/user/%s/\n", username)
	b.WriteString("\n" + strings.Repeat("=", 60) + "\n\n")

	for _, section := range canonicalSections {
		b.WriteString("\n" + section.Title + "\n")
		b.WriteString(strings.Repeat("-", len(section.Title)) + "\n")

		renderSectionBody(&b, doc[section.Key])
		renderSectionCitations(&b, citations[section.Key])
		b.WriteString("\n")
	}

	return b.String()
}

func renderSectionBody(b *strings.Builder, content any) {
	switch v := content.(type) {
	case nil:
		// Section missing from the model output: empty body.
	case map[string]any:
		for _, trait := range sortedKeys(v) {
			fmt.Fprintf(b, "• %s: %s\n", trait, formatTrait(v[trait]))
		}
	default:
		fmt.Fprintf(b, "%s\n", formatTrait(v))
	}
}

// formatTrait flattens a trait value: lists are comma-joined and nested
// mappings become "key: value" pairs joined with semicolons.
func formatTrait(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case []any:
		parts := make([]string, len(v))
		for i, e := range v {
			parts[i] = formatTrait(e)
		}
		return strings.Join(parts, ", ")
	case map[string]any:
		parts := make([]string, 0, len(v))
		for _, k := range sortedKeys(v) {
			parts = append(parts, fmt.Sprintf("%s: %s", k, formatTrait(v[k])))
		}
		return strings.Join(parts, "; ")
	default:
		return fmt.Sprintf("%v", v)
	}
}

func renderSectionCitations(b *strings.Builder, entries []Citation) {
	b.WriteString("\nCITATIONS:\n")
	if len(entries) > maxRenderedCitations {
		entries = entries[:maxRenderedCitations]
	}
	for i, c := range entries {
		fmt.Fprintf(b, "  [%d] %s in r/%s\n", i+1, strings.ToUpper(c.Kind), c.Subreddit)
		fmt.Fprintf(b, "      Content: %s\n", c.Content)
		fmt.Fprintf(b, "      URL: %s\n", c.URL)
		fmt.Fprintf(b, "      Score: %d\n\n", c.Score)
	}
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
