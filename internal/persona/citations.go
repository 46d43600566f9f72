package persona

import "strings"

const (
	// maxCitationsPerSection bounds how many candidates are attached to
	// each section at build time; the renderer later clips to three.
	maxCitationsPerSection = 5
	maxExcerptRunes        = 300
)

// BuildCitations attaches supporting excerpts to every top-level section
// of doc. The candidate list is positional (the first few items of the
// snapshot in retrieval order, identical for every section), so citations
// corroborate that activity exists rather than matching specific traits
// to specific evidence.
func BuildCitations(doc Document, snapshot ProfileSnapshot) CitationSet {
	candidates := snapshot.Items
	if len(candidates) > maxCitationsPerSection {
		candidates = candidates[:maxCitationsPerSection]
	}

	citations := make(CitationSet, len(doc))
	for section := range doc {
		entries := make([]Citation, 0, len(candidates))
		for _, item := range candidates {
			entries = append(entries, Citation{
				Kind:       item.Kind,
				Content:    excerpt(item),
				URL:        item.URL,
				Subreddit:  item.Subreddit,
				Score:      item.Score,
				CreatedUTC: item.CreatedUTC,
			})
		}
		citations[section] = entries
	}
	return citations
}

// excerpt joins an item's title and body, trimmed and capped with an
// ellipsis when truncated.
func excerpt(item ContentItem) string {
	text := strings.TrimSpace(strings.TrimSpace(item.Title) + " " + strings.TrimSpace(item.Body))
	if runes := []rune(text); len(runes) > maxExcerptRunes {
		return string(runes[:maxExcerptRunes]) + "..."
	}
	return text
}
