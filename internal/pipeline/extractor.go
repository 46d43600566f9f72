// Package pipeline runs the full extraction: collect profile content,
// infer a persona, link citations, render the report, and persist the
// result as a PersonaRecord.
package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/joanteresajose/reddit-persona/internal/collector"
	"github.com/joanteresajose/reddit-persona/internal/persona"
	"github.com/joanteresajose/reddit-persona/internal/storage"
)

// Extractor owns one configured pipeline. Extractions share no mutable
// state; any number may run concurrently on the same Extractor.
type Extractor struct {
	collector *collector.Collector
	analyzer  *persona.Analyzer
	store     *storage.Store
	files     *storage.FileStore
	now       func() time.Time
}

func New(c *collector.Collector, a *persona.Analyzer, store *storage.Store, files *storage.FileStore) *Extractor {
	return &Extractor{
		collector: c,
		analyzer:  a,
		store:     store,
		files:     files,
		now:       time.Now,
	}
}

// Extract runs the pipeline for one profile URL and returns the saved
// record. Stages run strictly sequentially; the only suspension points
// are the content fetch and the single inference call. Failures are
// terminal; nothing is retried here.
func (e *Extractor) Extract(ctx context.Context, profileURL string) (storage.PersonaRecord, error) {
	snapshot, err := e.collector.Collect(ctx, profileURL)
	if err != nil {
		return storage.PersonaRecord{}, err
	}
	slog.Info("profile collected",
		"username", snapshot.Username,
		"posts", snapshot.TotalPosts,
		"comments", snapshot.TotalComments,
	)

	doc, degraded, err := e.analyzer.Analyze(ctx, snapshot)
	if err != nil {
		return storage.PersonaRecord{}, err
	}
	if degraded {
		slog.Warn("persona response was not valid JSON, using degraded analysis",
			"username", snapshot.Username)
	}

	citations := persona.BuildCitations(doc, snapshot)

	createdAt := e.now().UTC()
	report := persona.RenderReport(snapshot.Username, doc, citations, createdAt)
	reportPath, err := e.files.WriteReport(snapshot.Username, report)
	if err != nil {
		return storage.PersonaRecord{}, err
	}

	personaJSON, err := json.Marshal(doc)
	if err != nil {
		return storage.PersonaRecord{}, fmt.Errorf("marshalling persona: %w", err)
	}
	citationsJSON, err := json.Marshal(citations)
	if err != nil {
		return storage.PersonaRecord{}, fmt.Errorf("marshalling citations: %w", err)
	}

	rec := storage.PersonaRecord{
		ID:            uuid.New().String(),
		RedditURL:     profileURL,
		Username:      snapshot.Username,
		PersonaJSON:   string(personaJSON),
		CitationsJSON: string(citationsJSON),
		ReportPath:    reportPath,
		Degraded:      degraded,
		CreatedAt:     createdAt,
	}
	if err := e.store.SavePersona(rec); err != nil {
		return storage.PersonaRecord{}, fmt.Errorf("saving persona record: %w", err)
	}

	slog.Info("persona extracted", "id", rec.ID, "username", rec.Username, "report", reportPath)
	return rec, nil
}
