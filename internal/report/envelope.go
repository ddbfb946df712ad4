package report

import (
	"encoding/json"
	"io"
	"time"

	"github.com/oklog/ulid/v2"
)

// Envelope wraps a command's JSON output with a run ID and timestamp so
// downstream tooling can correlate and order captured runs.
type Envelope struct {
	RunID       string    `json:"run_id"`
	GeneratedAt time.Time `json:"generated_at"`
	Kind        string    `json:"kind"`
	Data        any       `json:"data"`
}

// NewRunID returns a fresh lexicographically sortable run identifier.
func NewRunID() string {
	return ulid.Make().String()
}

// NewEnvelope stamps data with a run ID and the current UTC time.
func NewEnvelope(kind string, data any) Envelope {
	return Envelope{
		RunID:       NewRunID(),
		GeneratedAt: time.Now().UTC(),
		Kind:        kind,
		Data:        data,
	}
}

// WriteJSON renders the envelope as indented JSON.
func WriteJSON(w io.Writer, env Envelope) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(env)
}
