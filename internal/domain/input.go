package domain

import "strings"

// MaxFieldValue caps a single parsed duration field so that
// minutes*60+seconds can never overflow.
const MaxFieldValue = 999999

// DurationInput holds the raw text the user typed for a countdown.
// Nothing is validated until the countdown starts.
type DurationInput struct {
	Minutes string
	Seconds string
}

// IsEmpty returns true if neither field has any text.
func (in DurationInput) IsEmpty() bool {
	return in.Minutes == "" && in.Seconds == ""
}

// TotalSeconds parses both fields and returns minutes*60 + seconds.
// Seconds above 59 are accepted and simply added in.
func (in DurationInput) TotalSeconds() int {
	return ParseField(in.Minutes)*60 + ParseField(in.Seconds)
}

// Clear empties both fields.
func (in *DurationInput) Clear() {
	in.Minutes = ""
	in.Seconds = ""
}

// ParseField reads the leading digits of s as a non-negative integer.
// Surrounding whitespace and a single leading '+' are allowed; anything
// else that does not start with a digit parses as 0.
func ParseField(s string) int {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "+")

	n := 0
	for _, r := range s {
		if r < '0' || r > '9' {
			break
		}
		n = n*10 + int(r-'0')
		if n > MaxFieldValue {
			return MaxFieldValue
		}
	}
	return n
}
