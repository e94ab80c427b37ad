package tautulli

import "strconv"

// Tautulli's API v2 renders most numeric fields as strings; these helpers
// tolerate that and default to zero/nil on anything unparsable rather than
// failing the whole session or library record.

func parsePercent(s string) float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}

func parseInt(s string) int64 {
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0
	}
	return v
}

func parseOptionalInt(s string) *int64 {
	if s == "" {
		return nil
	}
	v := parseInt(s)
	return &v
}
