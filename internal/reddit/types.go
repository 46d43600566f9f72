package reddit

// Listing types mirror the JSON shape of Reddit's listing endpoints
// (GET /user/{name}/submitted and /user/{name}/comments). Only the fields
// the collector needs are declared; everything else is ignored.

type listingResponse struct {
	Data listingData `json:"data"`
}

type listingData struct {
	After    string         `json:"after"`
	Children []listingChild `json:"children"`
}

type listingChild struct {
	Kind string    `json:"kind"` // "t3" for posts, "t1" for comments
	Data childData `json:"data"`
}

type childData struct {
	Title       string  `json:"title"`
	Selftext    string  `json:"selftext"`
	Body        string  `json:"body"`
	Subreddit   string  `json:"subreddit"`
	Score       int     `json:"score"`
	CreatedUTC  float64 `json:"created_utc"`
	Permalink   string  `json:"permalink"`
	NumComments int     `json:"num_comments"`
}

type aboutResponse struct {
	Data aboutData `json:"data"`
}

type aboutData struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	IsSuspended bool   `json:"is_suspended"`
}
