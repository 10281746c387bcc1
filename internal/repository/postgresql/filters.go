package postgresql

import "time"

// dateParam turns an optional YYYY-MM-DD filter into a nullable query
// parameter. Empty or malformed input becomes NULL so the predicate
// falls through instead of failing a cast.
func dateParam(s string) *time.Time {
	if s == "" {
		return nil
	}
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil
	}
	return &d
}

// textParam turns an optional string filter into a nullable query
// parameter.
func textParam(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
