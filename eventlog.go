package harvest

import (
	"bytes"
	"fmt"
	"os"
)

// EventLog is an append-only newline-delimited JSON file of events. The file
// is the single source of truth: nothing derived from it is ever stored back,
// except the FileWritten notifications that record report exports.
type EventLog struct {
	Path string
}

// NewEventLog returns an event log backed by the file at path. The file need
// not exist yet; it is created on first append.
func NewEventLog(path string) *EventLog {
	return &EventLog{Path: path}
}

// ReadAll loads every event in the log, in file order. A missing file is an
// empty log, not an error.
func (l *EventLog) ReadAll() ([]Event, error) {
	f, err := os.Open(l.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("opening event log %s: %w", l.Path, err)
	}
	defer f.Close()

	events, err := DecodeEvents(f)
	if err != nil {
		return nil, fmt.Errorf("reading event log %s: %w", l.Path, err)
	}
	return events, nil
}

// Append adds events to the end of the log, creating the file if needed.
func (l *EventLog) Append(events ...Event) error {
	f, err := os.OpenFile(l.Path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("opening event log %s: %w", l.Path, err)
	}
	defer f.Close()

	if err := EncodeEvents(f, events); err != nil {
		return fmt.Errorf("appending to event log %s: %w", l.Path, err)
	}
	return f.Close()
}

// Rewrite replaces the log file with the canonical encoding of events. The
// new content is staged in memory and written in one pass, so a marshaling
// error cannot leave a truncated log behind.
func (l *EventLog) Rewrite(events []Event) error {
	var buf bytes.Buffer
	if err := EncodeEvents(&buf, events); err != nil {
		return fmt.Errorf("rewriting event log %s: %w", l.Path, err)
	}
	if err := os.WriteFile(l.Path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("rewriting event log %s: %w", l.Path, err)
	}
	return nil
}
