package timeapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestParseBaseURL_DefaultsAndNormalizes(t *testing.T) {
	u, err := parseBaseURL("")
	if err != nil {
		t.Fatalf("parseBaseURL returned error: %v", err)
	}
	if u.Scheme != "https" {
		t.Fatalf("scheme = %q, want https", u.Scheme)
	}
	if u.Host != "worldtimeapi.org" {
		t.Fatalf("host = %q, want worldtimeapi.org", u.Host)
	}
	if u.Path != "/api" {
		t.Fatalf("path = %q, want /api", u.Path)
	}

	u, err = parseBaseURL("http://example.com:1234/base/?x=1#frag")
	if err != nil {
		t.Fatalf("parseBaseURL returned error: %v", err)
	}
	if u.Path != "/base" || u.RawQuery != "" || u.Fragment != "" {
		t.Fatalf("url not normalized: %q", u.String())
	}
}

func TestClient_FetchesEndpoints(t *testing.T) {
	t.Parallel()

	var gotUserAgent string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserAgent = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "application/json")

		switch r.URL.Path {
		case "/timezone":
			_ = json.NewEncoder(w).Encode([]string{"Europe/London", "Asia/Tokyo"})
		case "/timezone/Europe/London":
			_ = json.NewEncoder(w).Encode(map[string]any{
				"raw_offset": 0,
				"dst_offset": 3600,
				"dst_from":   "2026-03-29T01:00:00+00:00",
				"dst_until":  "2026-10-25T01:00:00+00:00",
			})
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	t.Cleanup(cancel)

	ids, err := c.ListTimezones(ctx)
	if err != nil {
		t.Fatalf("ListTimezones returned error: %v", err)
	}
	if len(ids) != 2 || ids[0] != "Europe/London" {
		t.Fatalf("ListTimezones = %#v, want 2 ids starting with Europe/London", ids)
	}

	zone, err := c.FetchZone(ctx, "Europe/London")
	if err != nil {
		t.Fatalf("FetchZone returned error: %v", err)
	}
	if zone.City != "London" {
		t.Fatalf("City = %q, want London", zone.City)
	}
	if zone.Offset != 1.0 {
		t.Fatalf("Offset = %v, want 1.0", zone.Offset)
	}
	if zone.DSTUntil != "2026-10-25T01:00:00+00:00" {
		t.Fatalf("DSTUntil = %q, want the transition timestamp", zone.DSTUntil)
	}

	if err := c.Ping(ctx); err != nil {
		t.Fatalf("Ping returned error: %v", err)
	}

	if gotUserAgent == "" || !strings.HasPrefix(gotUserAgent, "zoneclock/") {
		t.Fatalf("User-Agent = %q, want zoneclock/*", gotUserAgent)
	}
}

func TestClient_FetchZoneRequiresID(t *testing.T) {
	c, err := NewClient("127.0.0.1:1")
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	if _, err := c.FetchZone(context.Background(), "   "); err == nil {
		t.Fatalf("FetchZone returned nil error, want error")
	}
}

func TestClient_HTTPErrorAndDecodeError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/timezone":
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte("{not-json"))
		case "/timezone/Asia/Tokyo":
			http.Error(w, "nope", http.StatusInternalServerError)
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	_, err = c.ListTimezones(context.Background())
	if err == nil || !strings.Contains(err.Error(), "decode response") {
		t.Fatalf("ListTimezones error = %v, want decode response error", err)
	}

	_, err = c.FetchZone(context.Background(), "Asia/Tokyo")
	if err == nil || !strings.Contains(err.Error(), "returned status 500") {
		t.Fatalf("FetchZone error = %v, want status 500 error", err)
	}
}
