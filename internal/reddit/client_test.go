package reddit

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/joanteresajose/reddit-persona/internal/persona"
)

const testUserAgent = "PersonaExtractor:test"

func testClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClientWithHTTP(srv.URL, testUserAgent, srv.Client())
}

func TestUserExists_Found(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/user/kojied/about" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if got := r.Header.Get("User-Agent"); got != testUserAgent {
			t.Errorf("user agent = %q", got)
		}
		w.Write([]byte(`{"data": {"id": "abc123", "name": "kojied"}}`))
	})

	exists, err := c.UserExists(context.Background(), "kojied")
	if err != nil {
		t.Fatalf("UserExists failed: %v", err)
	}
	if !exists {
		t.Error("expected user to exist")
	}
}

func TestUserExists_NotFound(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	exists, err := c.UserExists(context.Background(), "ghost")
	if err != nil {
		t.Fatalf("404 should not be an error: %v", err)
	}
	if exists {
		t.Error("404 must report non-existence")
	}
}

func TestUserExists_Suspended(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data": {"name": "banned_user", "is_suspended": true}}`))
	})

	exists, err := c.UserExists(context.Background(), "banned_user")
	if err != nil {
		t.Fatalf("UserExists failed: %v", err)
	}
	if exists {
		t.Error("suspended account must report non-existence")
	}
}

func TestUserExists_ServerError(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	if _, err := c.UserExists(context.Background(), "kojied"); err == nil {
		t.Error("500 should surface as an error")
	}
}

func TestFetchPosts(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/user/kojied/submitted" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if got := r.URL.Query().Get("limit"); got != "50" {
			t.Errorf("limit = %q", got)
		}
		if got := r.URL.Query().Get("sort"); got != "new" {
			t.Errorf("sort = %q", got)
		}
		w.Write([]byte(`{"data": {"children": [
			{"kind": "t3", "data": {
				"title": "First post",
				"selftext": "post body",
				"subreddit": "golang",
				"score": 12,
				"created_utc": 1700000000.0,
				"permalink": "/r/golang/comments/abc/first_post/",
				"num_comments": 4
			}}
		]}}`))
	})

	items, err := c.FetchPosts(context.Background(), "kojied", 50)
	if err != nil {
		t.Fatalf("FetchPosts failed: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("item count = %d, want 1", len(items))
	}

	want := persona.ContentItem{
		Kind:        persona.KindPost,
		Title:       "First post",
		Body:        "post body",
		Subreddit:   "golang",
		Score:       12,
		CreatedUTC:  1700000000,
		URL:         "https://www.reddit.com/r/golang/comments/abc/first_post/",
		NumComments: 4,
	}
	if items[0] != want {
		t.Errorf("item = %+v, want %+v", items[0], want)
	}
}

func TestFetchComments(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/user/kojied/comments" {
			t.Errorf("path = %q", r.URL.Path)
		}
		w.Write([]byte(`{"data": {"children": [
			{"kind": "t1", "data": {
				"body": "a comment",
				"subreddit": "apple",
				"score": 3,
				"created_utc": 1700000100.0,
				"permalink": "/r/apple/comments/def/x/ghi/"
			}}
		]}}`))
	})

	items, err := c.FetchComments(context.Background(), "kojied", 100)
	if err != nil {
		t.Fatalf("FetchComments failed: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("item count = %d, want 1", len(items))
	}
	if items[0].Kind != persona.KindComment || items[0].Body != "a comment" {
		t.Errorf("item = %+v", items[0])
	}
	if items[0].URL != "https://www.reddit.com/r/apple/comments/def/x/ghi/" {
		t.Errorf("URL = %q", items[0].URL)
	}
}

func TestFetchListing_EmptyListing(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data": {"children": []}}`))
	})

	items, err := c.FetchPosts(context.Background(), "quiet_user", 50)
	if err != nil {
		t.Fatalf("FetchPosts failed: %v", err)
	}
	if len(items) != 0 {
		t.Errorf("item count = %d, want 0", len(items))
	}
}

func TestFetchListing_ErrorStatus(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	})

	if _, err := c.FetchPosts(context.Background(), "kojied", 50); err == nil {
		t.Error("non-200 listing should surface as an error")
	}
}
