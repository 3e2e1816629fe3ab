// Package plan defines the repair plan produced by an intelligent
// restore run: one ordered entry per analyzer finding, each either
// resolved to a remediation script or marked unmatched.
package plan

import (
	"crypto/rand"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/John4-pixel2/recovery-agent/internal/domain/analysis"
)

// EntryStatus tells whether a finding was resolved to a script.
type EntryStatus string

const (
	StatusResolved  EntryStatus = "resolved"
	StatusUnmatched EntryStatus = "unmatched"
)

// Entry pairs one finding with the repair suggestion it produced, if any.
// RuleName and Script are empty for unmatched entries.
type Entry struct {
	Finding  analysis.Finding `json:"finding"`
	RuleName string           `json:"rule,omitempty"`
	Script   string           `json:"script,omitempty"`
	Status   EntryStatus      `json:"status"`
}

// Plan is the ordered output of one orchestration run. It is built once
// and not mutated afterwards.
type Plan struct {
	ID        string  `json:"id"`
	Location  string  `json:"location"`
	CreatedAt string  `json:"created_at"`
	Entries   []Entry `json:"entries"`
}

// New creates an empty plan for the given backup location with a fresh
// ULID run identifier.
func New(location string) *Plan {
	entropy := ulid.Monotonic(rand.Reader, 0)
	id := ulid.MustNew(ulid.Timestamp(time.Now()), entropy)
	return &Plan{
		ID:        id.String(),
		Location:  location,
		CreatedAt: time.Now().UTC().Format(time.RFC3339Nano),
		Entries:   []Entry{},
	}
}

// Append adds an entry. Entries must be appended in finding order.
func (p *Plan) Append(e Entry) {
	p.Entries = append(p.Entries, e)
}

// Resolved counts entries that carry a script.
func (p *Plan) Resolved() int {
	n := 0
	for _, e := range p.Entries {
		if e.Status == StatusResolved {
			n++
		}
	}
	return n
}

// Unmatched counts entries no rule could resolve.
func (p *Plan) Unmatched() int {
	return len(p.Entries) - p.Resolved()
}
