package reddit

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"

	"github.com/joanteresajose/reddit-persona/internal/persona"
)

const (
	authURL       = "https://www.reddit.com/api/v1/access_token"
	defaultAPIURL = "https://oauth.reddit.com"

	requestTimeout = 30 * time.Second
)

// Client reads a user's public submissions and comments through Reddit's
// OAuth API using application-only (client credentials) auth. Each Client
// carries its own token source; nothing is shared between instances.
type Client struct {
	apiURL     string
	userAgent  string
	httpClient *http.Client
}

// NewClient builds a Client authenticating with the given application
// credentials. username only feeds the User-Agent string Reddit requires.
func NewClient(clientID, clientSecret, username string) *Client {
	conf := &clientcredentials.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		TokenURL:     authURL,
		AuthStyle:    oauth2.AuthStyleInHeader,
	}

	hc := conf.Client(context.Background())
	hc.Timeout = requestTimeout

	return &Client{
		apiURL:     defaultAPIURL,
		userAgent:  fmt.Sprintf("PersonaExtractor:1.0 (by /u/%s)", username),
		httpClient: hc,
	}
}

// NewClientWithHTTP builds a Client against an arbitrary base URL with a
// caller-supplied HTTP client. Used by tests.
func NewClientWithHTTP(apiURL, userAgent string, hc *http.Client) *Client {
	return &Client{apiURL: apiURL, userAgent: userAgent, httpClient: hc}
}

// UserExists probes /user/{name}/about. A 404, or an account flagged
// suspended, reports false with no error; other failures are errors.
func (c *Client) UserExists(ctx context.Context, username string) (bool, error) {
	resp, err := c.get(ctx, fmt.Sprintf("/user/%s/about", url.PathEscape(username)), nil)
	if err != nil {
		return false, err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusNotFound:
		return false, nil
	case http.StatusOK:
		var about aboutResponse
		if err := json.NewDecoder(resp.Body).Decode(&about); err != nil {
			return false, fmt.Errorf("decoding about response: %w", err)
		}
		return about.Data.ID != "" && !about.Data.IsSuspended, nil
	default:
		return false, fmt.Errorf("about request returned status %d", resp.StatusCode)
	}
}

// FetchPosts returns the user's most recent submissions, newest first,
// up to limit.
func (c *Client) FetchPosts(ctx context.Context, username string, limit int) ([]persona.ContentItem, error) {
	children, err := c.fetchListing(ctx, fmt.Sprintf("/user/%s/submitted", url.PathEscape(username)), limit)
	if err != nil {
		return nil, fmt.Errorf("fetching posts: %w", err)
	}

	items := make([]persona.ContentItem, 0, len(children))
	for _, child := range children {
		items = append(items, persona.ContentItem{
			Kind:        persona.KindPost,
			Title:       child.Data.Title,
			Body:        child.Data.Selftext,
			Subreddit:   child.Data.Subreddit,
			Score:       child.Data.Score,
			CreatedUTC:  child.Data.CreatedUTC,
			URL:         "https://www.reddit.com" + child.Data.Permalink,
			NumComments: child.Data.NumComments,
		})
	}
	return items, nil
}

// FetchComments returns the user's most recent comments, newest first,
// up to limit.
func (c *Client) FetchComments(ctx context.Context, username string, limit int) ([]persona.ContentItem, error) {
	children, err := c.fetchListing(ctx, fmt.Sprintf("/user/%s/comments", url.PathEscape(username)), limit)
	if err != nil {
		return nil, fmt.Errorf("fetching comments: %w", err)
	}

	items := make([]persona.ContentItem, 0, len(children))
	for _, child := range children {
		items = append(items, persona.ContentItem{
			Kind:       persona.KindComment,
			Body:       child.Data.Body,
			Subreddit:  child.Data.Subreddit,
			Score:      child.Data.Score,
			CreatedUTC: child.Data.CreatedUTC,
			URL:        "https://www.reddit.com" + child.Data.Permalink,
		})
	}
	return items, nil
}

func (c *Client) fetchListing(ctx context.Context, path string, limit int) ([]listingChild, error) {
	query := url.Values{}
	query.Set("limit", strconv.Itoa(limit))
	query.Set("sort", "new")

	resp, err := c.get(ctx, path, query)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("listing returned status %d", resp.StatusCode)
	}

	var listing listingResponse
	if err := json.NewDecoder(resp.Body).Decode(&listing); err != nil {
		return nil, fmt.Errorf("decoding listing: %w", err)
	}
	return listing.Data.Children, nil
}

func (c *Client) get(ctx context.Context, path string, query url.Values) (*http.Response, error) {
	u := c.apiURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("requesting %s: %w", path, err)
	}
	return resp, nil
}
