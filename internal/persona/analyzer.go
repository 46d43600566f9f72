package persona

import (
	"context"
	"fmt"

	"github.com/joanteresajose/reddit-persona/internal/llm"
)

// Analyzer turns a ProfileSnapshot into a persona Document with exactly
// one language-model call per snapshot. The call is atomic: no retry, no
// streaming, no partial results.
type Analyzer struct {
	completer llm.Completer
}

func NewAnalyzer(completer llm.Completer) *Analyzer {
	return &Analyzer{completer: completer}
}

// Analyze normalizes the snapshot, issues the inference request, and
// parses the response. A model response that fails JSON extraction still
// succeeds with the degraded Document; only a failed service call is an
// error.
func (a *Analyzer) Analyze(ctx context.Context, snapshot ProfileSnapshot) (Document, bool, error) {
	content := Normalize(snapshot)

	raw, err := a.completer.Complete(ctx, llm.Request{
		System:    SystemPrompt,
		User:      BuildPrompt(snapshot, content),
		SessionID: "persona_" + snapshot.Username,
	})
	if err != nil {
		return nil, false, fmt.Errorf("persona inference: %w", err)
	}

	doc, degraded := Parse(raw)
	return doc, degraded, nil
}
