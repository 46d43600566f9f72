package persona

// ContentItem is one authored unit (post or comment) collected from a
// Reddit profile. Items are immutable once collected.
type ContentItem struct {
	Kind        string  `json:"type"` // "post" or "comment"
	Title       string  `json:"title,omitempty"`
	Body        string  `json:"body"`
	Subreddit   string  `json:"subreddit"`
	Score       int     `json:"score"`
	CreatedUTC  float64 `json:"created_utc"`
	URL         string  `json:"url"`
	NumComments int     `json:"num_comments,omitempty"`
}

const (
	KindPost    = "post"
	KindComment = "comment"
)

// ProfileSnapshot holds everything collected for one profile. Items keeps
// retrieval order: all posts first, then all comments.
type ProfileSnapshot struct {
	Username      string
	Items         []ContentItem
	TotalPosts    int
	TotalComments int
}

// Document is the model-produced persona analysis: a loosely-schematized
// mapping from section name to section content. Section content is usually
// a map of trait name to a string or list, but the model is not held to
// that shape and callers must not assume specific keys exist.
type Document map[string]any

// Citation is one trimmed source excerpt supporting a persona section.
type Citation struct {
	Kind       string  `json:"type"`
	Content    string  `json:"content"`
	URL        string  `json:"url"`
	Subreddit  string  `json:"subreddit"`
	Score      int     `json:"score"`
	CreatedUTC float64 `json:"created_utc"`
}

// CitationSet maps each persona section name to its supporting excerpts.
// Its key set always equals the key set of the Document it was built from.
type CitationSet map[string][]Citation
