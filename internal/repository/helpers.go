package repository

import (
	"time"
)

// timeLayout is how timestamps are stored.
const timeLayout = time.RFC3339Nano

// parseTime parses a stored timestamp. Unparseable values yield the zero time.
func parseTime(s string) time.Time {
	t, err := time.Parse(timeLayout, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

// nowUTC returns the current UTC time in storage format.
func nowUTC() string {
	return time.Now().UTC().Format(timeLayout)
}
