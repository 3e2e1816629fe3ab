package analysis

import (
	"fmt"
	"time"
)

// FindingKind classifies a detected backup anomaly.
type FindingKind string

const (
	KindMissingFile      FindingKind = "missing_file"
	KindCorruptEntry     FindingKind = "corrupt_entry"
	KindPermissionDenied FindingKind = "permission_denied"
	KindStale            FindingKind = "stale"
	KindUnreadable       FindingKind = "unreadable"
	KindUnknown          FindingKind = "unknown"
)

// Finding is one detected anomaly in a backup set.
type Finding struct {
	Kind   FindingKind `json:"kind"`
	Path   string      `json:"path,omitempty"`
	Detail string      `json:"detail"`
}

// LogLine renders the finding as a line of error-log text so it can be
// fed to the repair rule registry. The wording deliberately mirrors the
// error messages the rules were written against.
func (f Finding) LogLine() string {
	switch f.Kind {
	case KindMissingFile:
		return fmt.Sprintf("No such file or directory: %s (%s)", f.Path, f.Detail)
	case KindPermissionDenied:
		return fmt.Sprintf("Permission denied for file %s (%s)", f.Path, f.Detail)
	case KindCorruptEntry:
		return fmt.Sprintf("corrupt entry detected in %s (%s)", f.Path, f.Detail)
	case KindStale:
		return fmt.Sprintf("stale backup at %s (%s)", f.Path, f.Detail)
	case KindUnreadable:
		return fmt.Sprintf("cannot read %s (%s)", f.Path, f.Detail)
	default:
		return f.Detail
	}
}

// Report is the complete result of one backup analysis. Findings appear
// in discovery order, which is stable for a given backup state.
type Report struct {
	Version     int       `json:"version"`
	GeneratedAt string    `json:"generated_at"`
	Location    string    `json:"location"`
	Findings    []Finding `json:"findings"`
	Summary     Summary   `json:"summary"`
}

// Summary contains per-kind finding counts.
type Summary struct {
	Findings   int `json:"findings"`
	Missing    int `json:"missing"`
	Corrupt    int `json:"corrupt"`
	Permission int `json:"permission"`
	Stale      int `json:"stale"`
	Unreadable int `json:"unreadable"`
	Other      int `json:"other"`
}

// NewReport creates an empty report for the given backup location.
func NewReport(location string) *Report {
	return &Report{
		Version:     1,
		GeneratedAt: time.Now().UTC().Format(time.RFC3339Nano),
		Location:    location,
		Findings:    []Finding{},
	}
}

// Add appends a finding and updates the summary counters.
func (r *Report) Add(f Finding) {
	r.Findings = append(r.Findings, f)
	r.Summary.Findings++

	switch f.Kind {
	case KindMissingFile:
		r.Summary.Missing++
	case KindCorruptEntry:
		r.Summary.Corrupt++
	case KindPermissionDenied:
		r.Summary.Permission++
	case KindStale:
		r.Summary.Stale++
	case KindUnreadable:
		r.Summary.Unreadable++
	default:
		r.Summary.Other++
	}
}

// HasFindings reports whether the analysis detected any anomaly.
func (r *Report) HasFindings() bool {
	return len(r.Findings) > 0
}
