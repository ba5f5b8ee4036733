package timeapi

import (
	"fmt"
	"strings"
	"time"
)

// Zone is the cached offset and DST metadata for one timezone identifier.
type Zone struct {
	City     string  `json:"city"`
	Offset   float64 `json:"offset"`
	DSTFrom  string  `json:"dst_from,omitempty"`
	DSTUntil string  `json:"dst_until,omitempty"`
}

// zoneResponse mirrors the payload returned by /timezone/{id}.
type zoneResponse struct {
	RawOffset int    `json:"raw_offset"`
	DSTOffset int    `json:"dst_offset"`
	DSTFrom   string `json:"dst_from"`
	DSTUntil  string `json:"dst_until"`
}

// toZone folds the raw and DST offsets into display hours.
func (r zoneResponse) toZone(id string) Zone {
	return Zone{
		City:     CityName(id),
		Offset:   float64(r.RawOffset+r.DSTOffset) / 3600.0,
		DSTFrom:  r.DSTFrom,
		DSTUntil: r.DSTUntil,
	}
}

// CityName derives a display name from a timezone identifier: the last
// path segment with underscores replaced by spaces, e.g.
// "America/New_York" -> "New York".
func CityName(id string) string {
	segment := id
	if idx := strings.LastIndex(id, "/"); idx >= 0 {
		segment = id[idx+1:]
	}
	return strings.ReplaceAll(segment, "_", " ")
}

// LocalTime returns the current wall-clock time in the zone, computed from
// the cached offset alone. No network or tzdata lookup is involved, so the
// result can drift around a DST transition until the next refresh.
func (z Zone) LocalTime(now time.Time) time.Time {
	return now.UTC().Add(time.Duration(z.Offset * float64(time.Hour)))
}

// TransitionOn reports whether the zone's next DST transition window starts
// or ends on the given date. The API returns dst_from/dst_until as ISO-8601
// date-time strings; only the date prefix is compared.
func (z Zone) TransitionOn(day time.Time) bool {
	date := day.Format("2006-01-02")
	return strings.HasPrefix(z.DSTFrom, date) || strings.HasPrefix(z.DSTUntil, date)
}

// FormatOffset renders the offset as a compact UTC±H[:MM] label.
func (z Zone) FormatOffset() string {
	offset := z.Offset
	sign := "+"
	if offset < 0 {
		sign = "-"
		offset = -offset
	}
	hours := int(offset)
	minutes := int(offset*60+0.5) % 60
	if minutes == 0 {
		return fmt.Sprintf("UTC%s%d", sign, hours)
	}
	return fmt.Sprintf("UTC%s%d:%02d", sign, hours, minutes)
}
