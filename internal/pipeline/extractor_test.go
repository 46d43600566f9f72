package pipeline

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/joanteresajose/reddit-persona/internal/collector"
	"github.com/joanteresajose/reddit-persona/internal/llm"
	"github.com/joanteresajose/reddit-persona/internal/persona"
	"github.com/joanteresajose/reddit-persona/internal/storage"
)

type stubSource struct {
	exists   bool
	posts    []persona.ContentItem
	comments []persona.ContentItem
}

func (s *stubSource) UserExists(ctx context.Context, username string) (bool, error) {
	return s.exists, nil
}

func (s *stubSource) FetchPosts(ctx context.Context, username string, limit int) ([]persona.ContentItem, error) {
	return s.posts, nil
}

func (s *stubSource) FetchComments(ctx context.Context, username string, limit int) ([]persona.ContentItem, error) {
	return s.comments, nil
}

type fixedCompleter struct {
	response string
	err      error
}

func (s *fixedCompleter) Complete(ctx context.Context, req llm.Request) (string, error) {
	return s.response, s.err
}

func newTestExtractor(t *testing.T, source collector.ContentSource, response string, responseErr error) (*Extractor, *storage.Store, *storage.FileStore) {
	t.Helper()

	store, err := storage.Open(":memory:")
	if err != nil {
		t.Fatalf("opening store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	files, err := storage.NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("creating file store: %v", err)
	}

	analyzer := persona.NewAnalyzer(&fixedCompleter{response: response, err: responseErr})
	e := New(collector.New(source), analyzer, store, files)
	e.now = func() time.Time {
		return time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	}
	return e, store, files
}

func sourceWithContent() *stubSource {
	return &stubSource{
		exists: true,
		posts: []persona.ContentItem{
			{Kind: persona.KindPost, Title: "Moving to NYC", Body: "Tips?", Subreddit: "AskNYC", Score: 42, URL: "https://www.reddit.com/r/AskNYC/1"},
			{Kind: persona.KindPost, Title: "Best coffee near midtown", Subreddit: "FoodNYC", Score: 11, URL: "https://www.reddit.com/r/FoodNYC/2"},
		},
		comments: []persona.ContentItem{
			{Kind: persona.KindComment, Body: "I use Vision Pro daily.", Subreddit: "VisionPro", Score: 7, URL: "https://www.reddit.com/r/VisionPro/3"},
			{Kind: persona.KindComment, Body: "H1B renewals are stressful.", Subreddit: "immigration", Score: 3, URL: "https://www.reddit.com/r/immigration/4"},
		},
	}
}

func TestExtract_ValidResponse(t *testing.T) {
	response := `{
		"demographics": {"age_range": "25-35", "location": "NYC"},
		"interests_and_hobbies": {"primary_interests": ["tech", "city life"]},
		"goals_and_motivations": {"goals": "settle in a new city"}
	}`
	e, store, _ := newTestExtractor(t, sourceWithContent(), response, nil)

	rec, err := e.Extract(context.Background(), "https://www.reddit.com/user/kojied/")
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}

	if rec.Username != "kojied" {
		t.Errorf("username = %q", rec.Username)
	}
	if rec.Degraded {
		t.Error("record marked degraded for a valid JSON response")
	}
	if rec.ID == "" {
		t.Error("record has empty ID")
	}
	if !rec.CreatedAt.Equal(time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)) {
		t.Errorf("CreatedAt = %v, want fixed clock value", rec.CreatedAt)
	}

	var doc map[string]any
	if err := json.Unmarshal([]byte(rec.PersonaJSON), &doc); err != nil {
		t.Fatalf("persona JSON does not parse: %v", err)
	}
	if len(doc) != 3 {
		t.Errorf("persona has %d sections, want the model's 3", len(doc))
	}

	var citations map[string][]persona.Citation
	if err := json.Unmarshal([]byte(rec.CitationsJSON), &citations); err != nil {
		t.Fatalf("citations JSON does not parse: %v", err)
	}
	if len(citations) != len(doc) {
		t.Errorf("citation sections = %d, want %d", len(citations), len(doc))
	}
	for section, cites := range citations {
		if len(cites) != 4 {
			t.Errorf("section %q has %d citations, want all 4 collected items", section, len(cites))
		}
		if len(cites) > 0 && cites[0].Kind != persona.KindPost {
			t.Errorf("section %q first citation kind = %q, want posts before comments", section, cites[0].Kind)
		}
	}

	// Saved record must be retrievable by ID.
	got, err := store.GetPersona(rec.ID)
	if err != nil {
		t.Fatalf("GetPersona failed: %v", err)
	}
	if got.ReportPath != rec.ReportPath {
		t.Errorf("stored report path = %q, want %q", got.ReportPath, rec.ReportPath)
	}
}

func TestExtract_ProseResponseDegrades(t *testing.T) {
	e, _, _ := newTestExtractor(t, sourceWithContent(),
		"I could not produce structured output, but the user seems interested in technology.", nil)

	rec, err := e.Extract(context.Background(), "https://www.reddit.com/user/kojied")
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}

	if !rec.Degraded {
		t.Error("record not marked degraded for a prose response")
	}

	var doc map[string]any
	if err := json.Unmarshal([]byte(rec.PersonaJSON), &doc); err != nil {
		t.Fatalf("persona JSON does not parse: %v", err)
	}
	demo, ok := doc["demographics"].(map[string]any)
	if !ok {
		t.Fatal("degraded persona lacks demographics section")
	}
	if _, ok := demo["analysis"]; !ok {
		t.Error("degraded section lacks analysis key")
	}

	// The report is still rendered and written.
	data, err := os.ReadFile(rec.ReportPath)
	if err != nil {
		t.Fatalf("reading report: %v", err)
	}
	report := string(data)
	if !strings.Contains(report, "REDDIT USER PERSONA ANALYSIS") {
		t.Error("report missing header")
	}
	if !strings.Contains(report, "Username: kojied") {
		t.Error("report missing username line")
	}
	if !strings.Contains(report, "DEMOGRAPHICS") {
		t.Error("report missing canonical section")
	}
}

func TestExtract_NoContent(t *testing.T) {
	e, _, _ := newTestExtractor(t, &stubSource{exists: true}, "{}", nil)

	_, err := e.Extract(context.Background(), "https://www.reddit.com/user/ghost")
	if !errors.Is(err, collector.ErrNoContent) {
		t.Errorf("err = %v, want ErrNoContent", err)
	}
}

func TestExtract_UserNotFound(t *testing.T) {
	e, _, _ := newTestExtractor(t, &stubSource{exists: false}, "{}", nil)

	_, err := e.Extract(context.Background(), "https://www.reddit.com/user/nobody")
	if !errors.Is(err, collector.ErrUserNotFound) {
		t.Errorf("err = %v, want ErrUserNotFound", err)
	}
}

func TestExtract_InvalidURL(t *testing.T) {
	e, _, _ := newTestExtractor(t, sourceWithContent(), "{}", nil)

	_, err := e.Extract(context.Background(), "https://www.reddit.com/r/golang")
	if !errors.Is(err, collector.ErrInvalidProfileURL) {
		t.Errorf("err = %v, want ErrInvalidProfileURL", err)
	}
}

func TestExtract_CompleterError(t *testing.T) {
	e, store, _ := newTestExtractor(t, sourceWithContent(), "", errors.New("upstream unavailable"))

	_, err := e.Extract(context.Background(), "https://www.reddit.com/user/kojied")
	if err == nil {
		t.Fatal("expected error when inference fails")
	}

	// Nothing is persisted on failure.
	records, listErr := store.ListPersonas(10, 0)
	if listErr != nil {
		t.Fatalf("ListPersonas failed: %v", listErr)
	}
	if len(records) != 0 {
		t.Errorf("found %d records after failed extraction", len(records))
	}
}
