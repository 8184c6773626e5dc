package utils

import "time"

// ParseDate parses a form-supplied "YYYY-MM-DD" date. An empty string yields
// the zero time without error.
func ParseDate(dateStr string) (*time.Time, error) {
	var date time.Time

	if dateStr != "" {
		incomingDate, err := time.Parse(time.DateOnly, dateStr)
		if err != nil {
			return nil, err
		}

		date = incomingDate
	}

	return &date, nil
}
