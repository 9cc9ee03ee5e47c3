package validation

import (
	"fmt"
	"time"
)

// Coordinate and height bounds
var (
	LatitudeMin  = -90.0
	LatitudeMax  = 90.0
	LongitudeMin = -180.0
	LongitudeMax = 180.0
)

// AddTimeLayouts lists the accepted add_time formats. Clients send either a
// full RFC3339 timestamp or a bare local timestamp without zone.
var AddTimeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// ParseAddTime parses a client-supplied add_time string.
func ParseAddTime(value string) (time.Time, error) {
	for _, layout := range AddTimeLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp format: %q", value)
}

// ValidLatitude reports whether v is a valid latitude.
func ValidLatitude(v float64) bool {
	return v >= LatitudeMin && v <= LatitudeMax
}

// ValidLongitude reports whether v is a valid longitude.
func ValidLongitude(v float64) bool {
	return v >= LongitudeMin && v <= LongitudeMax
}

// ValidHeight reports whether h is a valid height in meters.
func ValidHeight(h int) bool {
	return h >= 0
}
