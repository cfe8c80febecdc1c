package harvest

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"strings"
	"time"
)

// eventIdentifier peeks at the discriminator of a log line before the full
// variant is decoded.
type eventIdentifier struct {
	Type EventType `json:"type"`
}

// DecodeEvents reads newline-delimited JSON events from r. Blank lines are
// skipped. A line that is not valid JSON, carries an unrecognized type, or
// fails variant-level validation is kept as an UnknownEvent holding the raw
// line, so a partially corrupt log still loads and can be rewritten without
// data loss.
func DecodeEvents(r io.Reader) ([]Event, error) {
	var events []Event
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for n := 1; scanner.Scan(); n++ {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		evt, err := decodeEvent([]byte(line))
		if err != nil {
			log.Printf("skipping line %d: %v", n, err)
			events = append(events, UnknownEvent{Raw: line})
			continue
		}
		events = append(events, evt)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading events: %w", err)
	}
	return events, nil
}

func decodeEvent(line []byte) (Event, error) {
	var id eventIdentifier
	if err := json.Unmarshal(line, &id); err != nil {
		return nil, fmt.Errorf("invalid json: %w", err)
	}

	switch id.Type {
	case EvtSetBalance:
		var temp struct {
			Account   string   `json:"account"`
			Asset     Asset    `json:"asset"`
			Date      Date     `json:"date"`
			Amount    Quantity `json:"amount"`
			CreatedAt string   `json:"created_at"`
		}
		if err := json.Unmarshal(line, &temp); err != nil {
			return nil, fmt.Errorf("invalid %s: %w", id.Type, err)
		}
		createdAt, err := parseCreatedAt(temp.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("invalid %s: %w", id.Type, err)
		}
		return SetBalance{Account: temp.Account, Asset: temp.Asset, Date: temp.Date, Amount: temp.Amount, CreatedAt: createdAt}, nil

	case EvtSetPrice:
		var temp struct {
			Asset     Asset  `json:"asset"`
			Date      Date   `json:"date"`
			Amount    Money  `json:"amount"`
			CreatedAt string `json:"created_at"`
		}
		if err := json.Unmarshal(line, &temp); err != nil {
			return nil, fmt.Errorf("invalid %s: %w", id.Type, err)
		}
		createdAt, err := parseCreatedAt(temp.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("invalid %s: %w", id.Type, err)
		}
		return SetPrice{Asset: temp.Asset, Date: temp.Date, Amount: temp.Amount, CreatedAt: createdAt}, nil

	case EvtSetAllocation:
		var temp struct {
			Asset      Asset      `json:"asset"`
			Date       Date       `json:"date"`
			Allocation Allocation `json:"allocation"`
			CreatedAt  string     `json:"created_at"`
		}
		if err := json.Unmarshal(line, &temp); err != nil {
			return nil, fmt.Errorf("invalid %s: %w", id.Type, err)
		}
		createdAt, err := parseCreatedAt(temp.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("invalid %s: %w", id.Type, err)
		}
		return SetAllocation{Asset: temp.Asset, Date: temp.Date, Allocation: temp.Allocation, CreatedAt: createdAt}, nil

	case EvtSetTargetAllocation:
		var temp struct {
			Date       Date       `json:"date"`
			Allocation Allocation `json:"allocation"`
			CreatedAt  string     `json:"created_at"`
		}
		if err := json.Unmarshal(line, &temp); err != nil {
			return nil, fmt.Errorf("invalid %s: %w", id.Type, err)
		}
		createdAt, err := parseCreatedAt(temp.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("invalid %s: %w", id.Type, err)
		}
		return SetTargetAllocation{Date: temp.Date, Allocation: temp.Allocation, CreatedAt: createdAt}, nil

	case EvtFileWritten:
		var temp struct {
			Path              string   `json:"path"`
			IncompleteSymbols []string `json:"incomplete_symbols"`
		}
		if err := json.Unmarshal(line, &temp); err != nil {
			return nil, fmt.Errorf("invalid %s: %w", id.Type, err)
		}
		return FileWritten{Path: temp.Path, IncompleteSymbols: temp.IncompleteSymbols}, nil

	default:
		return nil, fmt.Errorf("unknown event type %q", id.Type)
	}
}

func parseCreatedAt(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	return time.Parse(DatetimeFormat, s)
}

// EncodeEvent writes a single event to w as one JSON line. UnknownEvent is
// written back verbatim, preserving whatever the original line contained.
func EncodeEvent(w io.Writer, e Event) error {
	if u, ok := e.(UnknownEvent); ok {
		_, err := fmt.Fprintln(w, u.Raw)
		return err
	}
	b, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", e.What(), err)
	}
	b = append(b, '\n')
	_, err = w.Write(b)
	return err
}

// EncodeEvents writes events to w, one JSON line each, in slice order.
func EncodeEvents(w io.Writer, events []Event) error {
	for _, e := range events {
		if err := EncodeEvent(w, e); err != nil {
			return err
		}
	}
	return nil
}
