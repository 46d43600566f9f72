package main

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func stubAPIClient(t *testing.T, srvURL, token string) {
	t.Helper()
	restore := newAPIClient
	newAPIClient = func() (*apiClient, error) {
		return &apiClient{
			baseURL:    srvURL,
			token:      token,
			httpClient: &http.Client{Timeout: 5 * time.Second},
		}, nil
	}
	t.Cleanup(func() { newAPIClient = restore })
}

func TestAnalyzeRemote(t *testing.T) {
	var gotBody struct {
		RedditURL string `json:"reddit_url"`
	}
	var gotAuth string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/analyze-reddit" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		gotAuth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decoding request body: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"id":        "p1",
			"username":  "kojied",
			"file_path": "/reports/kojied_persona.txt",
			"degraded":  false,
		})
	}))
	defer srv.Close()

	stubAPIClient(t, srv.URL, "secret")

	if err := analyzeRemote(context.Background(), "https://www.reddit.com/user/kojied/"); err != nil {
		t.Fatalf("analyzeRemote failed: %v", err)
	}
	if gotBody.RedditURL != "https://www.reddit.com/user/kojied/" {
		t.Errorf("server received reddit_url %q", gotBody.RedditURL)
	}
	if gotAuth != "Bearer secret" {
		t.Errorf("Authorization header = %q", gotAuth)
	}
}

func TestAnalyzeRemote_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error":{"message":"no posts or comments found","type":"not_found"}}`))
	}))
	defer srv.Close()

	stubAPIClient(t, srv.URL, "")

	err := analyzeRemote(context.Background(), "https://www.reddit.com/user/ghost/")
	if err == nil {
		t.Fatal("expected error for a 404 response")
	}
	if !strings.Contains(err.Error(), "404") {
		t.Errorf("error %q does not carry the status code", err)
	}
}
