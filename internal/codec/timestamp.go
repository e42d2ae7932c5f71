package codec

import (
	"bytes"
	"fmt"
	"time"
)

const (
	dateTimeLayout = "2006-01-02 15:04:05"
	dateOnlyLayout = "2006-01-02"
)

// FlexTimestamp decodes either the precise "YYYY-MM-DD HH:MM:SS" form or the
// date-only "YYYY-MM-DD" form. Which endpoint-widening rule applies (start
// widens to 00:00:00, end widens to 23:59:59) is a property of the field,
// not the value, so widening is done by the caller via AsStart/AsEnd.
type FlexTimestamp struct {
	t        time.Time
	dateOnly bool
}

func (f *FlexTimestamp) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) < 2 || b[0] != '"' || b[len(b)-1] != '"' {
		return fmt.Errorf("codec: timestamp field must be a string")
	}
	s := string(b[1 : len(b)-1])
	if t, err := time.ParseInLocation(dateTimeLayout, s, time.UTC); err == nil {
		f.t, f.dateOnly = t, false
		return nil
	}
	if t, err := time.ParseInLocation(dateOnlyLayout, s, time.UTC); err == nil {
		f.t, f.dateOnly = t, true
		return nil
	}
	return fmt.Errorf("codec: invalid timestamp %q, want %q or %q", s, dateTimeLayout, dateOnlyLayout)
}

// AsStart widens a date-only value to the start of day; a date-time value
// passes through unchanged.
func (f FlexTimestamp) AsStart() time.Time { return f.t }

// AsEnd widens a date-only value to the end of day; a date-time value
// passes through unchanged.
func (f FlexTimestamp) AsEnd() time.Time {
	if !f.dateOnly {
		return f.t
	}
	return time.Date(f.t.Year(), f.t.Month(), f.t.Day(), 23, 59, 59, 0, time.UTC)
}

// DateOnly decodes a field that accepts only the "YYYY-MM-DD" form, such as
// day_plan.timestamp.
type DateOnly struct {
	T time.Time
}

func (d *DateOnly) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) < 2 || b[0] != '"' || b[len(b)-1] != '"' {
		return fmt.Errorf("codec: date field must be a string")
	}
	s := string(b[1 : len(b)-1])
	t, err := time.ParseInLocation(dateOnlyLayout, s, time.UTC)
	if err != nil {
		return fmt.Errorf("codec: invalid date %q, want %q", s, dateOnlyLayout)
	}
	d.T = t
	return nil
}

// OutTimestamp re-serializes a time.Time in the wire's "YYYY-MM-DD HH:MM:SS"
// form for every *_timestamp response field.
type OutTimestamp time.Time

func (o OutTimestamp) MarshalJSON() ([]byte, error) {
	return []byte(`"` + time.Time(o).Format(dateTimeLayout) + `"`), nil
}
