package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// ParseDate accepts the date shapes the web client sends. An empty string
// yields nil without error.
func ParseDate(raw string) (*time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	for _, layout := range dateLayouts {
		if parsed, err := time.Parse(layout, raw); err == nil {
			parsed = parsed.UTC()
			return &parsed, nil
		}
	}
	return nil, fmt.Errorf("%w: unrecognised date %q", ErrValidation, raw)
}

// DatePatch describes an optional change to a nullable date. Set is false when
// the field was absent from the request; Value is nil when it should be cleared.
type DatePatch struct {
	Set   bool
	Value *time.Time
}

// SetDate returns a patch that assigns t.
func SetDate(t time.Time) DatePatch {
	return DatePatch{Set: true, Value: &t}
}

// ClearDate returns a patch that removes the date.
func ClearDate() DatePatch {
	return DatePatch{Set: true}
}

// UnmarshalJSON is only invoked when the key is present, which is what marks
// the patch as set. null and "" clear the date.
func (p *DatePatch) UnmarshalJSON(data []byte) error {
	p.Set = true
	p.Value = nil
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return nil
	}
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return ValidationError("dates must be strings")
	}
	parsed, err := ParseDate(raw)
	if err != nil {
		return ValidationError(fmt.Sprintf("Invalid date %q", raw))
	}
	p.Value = parsed
	return nil
}

// FlexDate is a request-side date that accepts the same shapes as ParseDate.
type FlexDate struct {
	Time *time.Time
}

func (d *FlexDate) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		d.Time = nil
		return nil
	}
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return ValidationError("dates must be strings")
	}
	parsed, err := ParseDate(raw)
	if err != nil {
		return ValidationError(fmt.Sprintf("Invalid date %q", raw))
	}
	d.Time = parsed
	return nil
}

// CleanStrings trims each value and drops empties.
func CleanStrings(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

// StringList accepts either a JSON array of strings or a comma separated string.
type StringList []string

func (l *StringList) UnmarshalJSON(data []byte) error {
	var arr []any
	if err := json.Unmarshal(data, &arr); err == nil {
		values := make([]string, 0, len(arr))
		for _, item := range arr {
			if s, ok := item.(string); ok {
				values = append(values, s)
			}
		}
		*l = CleanStrings(values)
		return nil
	}
	var raw string
	if err := json.Unmarshal(data, &raw); err == nil {
		*l = CleanStrings(strings.Split(raw, ","))
		return nil
	}
	*l = StringList{}
	return nil
}
