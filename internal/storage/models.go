package storage

import (
	"errors"
	"time"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("not found")

// PersonaRecord is the persisted result of one extraction. Records are
// immutable after creation; persona and citations are stored as JSON
// text to keep the model-chosen section shape intact.
type PersonaRecord struct {
	ID            string    `json:"id"`
	RedditURL     string    `json:"reddit_url"`
	Username      string    `json:"username"`
	PersonaJSON   string    `json:"-"`
	CitationsJSON string    `json:"-"`
	ReportPath    string    `json:"file_path"`
	Degraded      bool      `json:"degraded"`
	CreatedAt     time.Time `json:"created_at"`
}
