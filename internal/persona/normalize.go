package persona

import (
	"fmt"
	"strings"
)

// Normalize renders a ProfileSnapshot as the single text block handed to
// the language model. Items are rendered in retrieval order with no
// reordering or deduplication; the output is deterministic for a given
// snapshot.
func Normalize(snapshot ProfileSnapshot) string {
	var parts []string

	for _, item := range snapshot.Items {
		switch item.Kind {
		case KindPost:
			parts = append(parts, fmt.Sprintf("POST in r/%s: %s", item.Subreddit, item.Title))
			if item.Body != "" {
				parts = append(parts, "Content: "+item.Body)
			}
			parts = append(parts, fmt.Sprintf("Score: %d, Comments: %d", item.Score, item.NumComments))
		case KindComment:
			parts = append(parts, fmt.Sprintf("COMMENT in r/%s: %s", item.Subreddit, item.Body))
			parts = append(parts, fmt.Sprintf("Score: %d", item.Score))
		}
		parts = append(parts, "URL: "+item.URL)
		parts = append(parts, "---")
	}

	return strings.Join(parts, "\n")
}
