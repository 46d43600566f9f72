// Package llm abstracts the external language-model service behind a
// narrow completion interface so pipeline logic stays testable with a
// deterministic stub.
package llm

import "context"

// Request is one completion request. SessionID is a per-extraction label
// forwarded as request metadata; no session state is kept client side.
type Request struct {
	System    string
	User      string
	SessionID string
}

// Completer issues a single completion request and returns the raw model
// response text. Implementations do not retry.
type Completer interface {
	Complete(ctx context.Context, req Request) (string, error)
}
