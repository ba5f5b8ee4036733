package timeapi

import (
	"testing"
	"time"
)

func TestCityName(t *testing.T) {
	cases := []struct {
		id   string
		want string
	}{
		{"America/New_York", "New York"},
		{"Europe/London", "London"},
		{"America/Argentina/Buenos_Aires", "Buenos Aires"},
		{"UTC", "UTC"},
		{"Etc/GMT+8", "GMT+8"},
	}
	for _, tc := range cases {
		if got := CityName(tc.id); got != tc.want {
			t.Errorf("CityName(%q) = %q, want %q", tc.id, got, tc.want)
		}
	}
}

func TestZoneResponseToZone_FoldsOffsets(t *testing.T) {
	resp := zoneResponse{RawOffset: 19800, DSTOffset: 0}
	zone := resp.toZone("Asia/Kolkata")
	if zone.Offset != 5.5 {
		t.Fatalf("Offset = %v, want 5.5", zone.Offset)
	}
	if zone.City != "Kolkata" {
		t.Fatalf("City = %q, want Kolkata", zone.City)
	}

	resp = zoneResponse{RawOffset: -18000, DSTOffset: 3600}
	zone = resp.toZone("America/New_York")
	if zone.Offset != -4.0 {
		t.Fatalf("Offset = %v, want -4.0", zone.Offset)
	}
}

func TestZoneLocalTime_UsesCachedOffset(t *testing.T) {
	now := time.Date(2026, 8, 25, 12, 0, 0, 0, time.UTC)
	zone := Zone{Offset: 9}
	if got := zone.LocalTime(now); got.Hour() != 21 {
		t.Fatalf("LocalTime hour = %d, want 21", got.Hour())
	}
	zone = Zone{Offset: -4.5}
	got := zone.LocalTime(now)
	if got.Hour() != 7 || got.Minute() != 30 {
		t.Fatalf("LocalTime = %v, want 07:30", got)
	}
}

func TestZoneTransitionOn(t *testing.T) {
	day := time.Date(2026, 10, 25, 9, 30, 0, 0, time.UTC)
	zone := Zone{DSTUntil: "2026-10-25T01:00:00+00:00"}
	if !zone.TransitionOn(day) {
		t.Fatalf("TransitionOn = false, want true for matching dst_until date")
	}
	zone = Zone{DSTFrom: "2026-10-25T01:00:00+00:00"}
	if !zone.TransitionOn(day) {
		t.Fatalf("TransitionOn = false, want true for matching dst_from date")
	}
	zone = Zone{DSTFrom: "2026-03-29T01:00:00+00:00", DSTUntil: "2026-10-26T01:00:00+00:00"}
	if zone.TransitionOn(day) {
		t.Fatalf("TransitionOn = true, want false when neither date matches")
	}
	if (Zone{}).TransitionOn(day) {
		t.Fatalf("TransitionOn = true, want false for zone without DST metadata")
	}
}

func TestZoneFormatOffset(t *testing.T) {
	cases := []struct {
		offset float64
		want   string
	}{
		{0, "UTC+0"},
		{9, "UTC+9"},
		{-4, "UTC-4"},
		{5.5, "UTC+5:30"},
		{-3.5, "UTC-3:30"},
		{12.75, "UTC+12:45"},
	}
	for _, tc := range cases {
		zone := Zone{Offset: tc.offset}
		if got := zone.FormatOffset(); got != tc.want {
			t.Errorf("FormatOffset(%v) = %q, want %q", tc.offset, got, tc.want)
		}
	}
}
