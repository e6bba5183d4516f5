package models

import (
	"bytes"
	"fmt"
	"time"
)

// TimeLayout is the wire format for all timestamps. The transport layer needs
// an unambiguous string representation that sorts lexicographically.
const TimeLayout = "2006-01-02 15:04:05"

// Time wraps time.Time to serialize in the TimeLayout wire format.
type Time struct {
	time.Time
}

// NewTime builds a wire Time from a time.Time, truncated to second precision.
func NewTime(t time.Time) Time {
	return Time{t.Truncate(time.Second)}
}

func (t Time) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return []byte(`"` + t.Format(TimeLayout) + `"`), nil
}

func (t *Time) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		t.Time = time.Time{}
		return nil
	}
	s := string(bytes.Trim(data, `"`))
	for _, layout := range []string{TimeLayout, time.RFC3339, "2006-01-02"} {
		if parsed, err := time.Parse(layout, s); err == nil {
			t.Time = parsed
			return nil
		}
	}
	return fmt.Errorf("invalid time %q", s)
}
