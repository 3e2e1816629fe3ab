package repair

import (
	"time"

	"golang.org/x/text/unicode/norm"
)

// LogRecord is an immutable error-log payload with optional metadata.
// The text is NFC-normalized on ingestion so that rule matching behaves
// the same regardless of how the log was encoded upstream.
type LogRecord struct {
	Text      string
	Source    string
	Timestamp time.Time
}

// NewLogRecord creates a LogRecord from raw log text.
// Source may be empty when the log did not come from a file.
func NewLogRecord(text string, source string) LogRecord {
	return LogRecord{
		Text:      norm.NFC.String(text),
		Source:    source,
		Timestamp: time.Now().UTC(),
	}
}
