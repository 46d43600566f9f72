package persona

import (
	"strings"
	"testing"
	"time"
)

var renderTime = time.Date(2025, 7, 14, 10, 30, 0, 0, time.UTC)

func TestRenderReport_CanonicalSectionsAlwaysPresent(t *testing.T) {
	// Document with a single section; the other nine must still render.
	doc := Document{"demographics": map[string]any{"age_range": "25-34"}}

	out := RenderReport("kojied", doc, CitationSet{}, renderTime)

	lastIdx := -1
	for _, section := range canonicalSections {
		idx := strings.Index(out, "\n"+section.Title+"\n")
		if idx == -1 {
			t.Errorf("missing section header %q", section.Title)
			continue
		}
		if idx < lastIdx {
			t.Errorf("section %q out of canonical order", section.Title)
		}
		lastIdx = idx
	}
}

func TestRenderReport_Header(t *testing.T) {
	out := RenderReport("Hungry-Move-6603", Document{}, CitationSet{}, renderTime)

	for _, want := range []string{
		"REDDIT USER PERSONA ANALYSIS",
		"Username: Hungry-Move-6603",
		"Generated: 2025-07-14 10:30:00",
		"Generated by: Reddit User Persona Extractor",
		"URL: https://www.reddit.com/user/Hungry-Move-6603/",
		strings.Repeat("=", 60),
	} {
		if !strings.Contains(out, want) {
			t.Errorf("header missing %q", want)
		}
	}
}

func TestRenderReport_TraitBullets(t *testing.T) {
	doc := Document{
		"interests_and_hobbies": map[string]any{
			"hobbies":           []any{"gaming", "cooking"},
			"primary_interests": "technology",
		},
	}

	out := RenderReport("alice", doc, CitationSet{}, renderTime)

	if !strings.Contains(out, "• hobbies: gaming, cooking") {
		t.Errorf("list trait not comma-joined:\n%s", out)
	}
	if !strings.Contains(out, "• primary_interests: technology") {
		t.Errorf("string trait missing:\n%s", out)
	}
}

func TestRenderReport_BlobSection(t *testing.T) {
	doc := Document{"demographics": "raw analysis text from a degraded parse"}

	out := RenderReport("alice", doc, CitationSet{}, renderTime)
	if !strings.Contains(out, "raw analysis text from a degraded parse") {
		t.Errorf("blob section body missing:\n%s", out)
	}
}

func TestRenderReport_CitationsClippedToThree(t *testing.T) {
	entries := make([]Citation, 5)
	for i := range entries {
		entries[i] = Citation{Kind: KindComment, Content: "c", Subreddit: "golang", URL: "u"}
	}
	citations := CitationSet{"demographics": entries}

	out := RenderReport("alice", Document{"demographics": map[string]any{}}, citations, renderTime)

	if strings.Contains(out, "[4]") {
		t.Error("more than three citations rendered")
	}
	if !strings.Contains(out, "[3] COMMENT in r/golang") {
		t.Errorf("third citation missing:\n%s", out)
	}
}

func TestRenderReport_EmptySectionsHaveCitationsBlock(t *testing.T) {
	out := RenderReport("alice", Document{}, CitationSet{}, renderTime)

	if got := strings.Count(out, "CITATIONS:"); got != len(canonicalSections) {
		t.Errorf("CITATIONS block count = %d, want %d", got, len(canonicalSections))
	}
}

func TestRenderReport_Idempotent(t *testing.T) {
	doc := Document{
		"demographics": map[string]any{
			"age_range": "25-34",
			"gender":    "unknown",
			"location":  "US",
		},
		"personality_traits": map[string]any{
			"openness": "high",
			"nested":   map[string]any{"b": "2", "a": "1"},
		},
	}
	citations := CitationSet{
		"demographics": {{Kind: KindPost, Content: "x", Subreddit: "s", URL: "u", Score: 1}},
	}

	first := RenderReport("alice", doc, citations, renderTime)
	for i := 0; i < 10; i++ {
		if got := RenderReport("alice", doc, citations, renderTime); got != first {
			t.Fatalf("render %d differs from first render", i)
		}
	}
}

func TestFormatTrait_NestedMapping(t *testing.T) {
	got := formatTrait(map[string]any{"beta": "two", "alpha": "one"})
	if got != "alpha: one; beta: two" {
		t.Errorf("formatTrait = %q", got)
	}
}
