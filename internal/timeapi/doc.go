// Package timeapi provides an HTTP client for a world time REST API.
//
// # Overview
//
// The package defines the read-only client zoneclock uses to discover
// timezone identifiers and fetch per-zone offset and DST metadata. It
// handles HTTP communication, JSON decoding, and the Zone type the rest of
// the application caches and renders.
//
// # Endpoints
//
//   - GET /timezone: full list of timezone identifiers
//   - GET /timezone/{id}: raw_offset, dst_offset (seconds) and the next
//     DST transition window (dst_from / dst_until)
//
// The per-zone response is folded into Zone.Offset as signed hours
// (raw_offset + dst_offset) / 3600, which is what the UI displays and what
// clock arithmetic uses between refreshes.
//
// # Failure Semantics
//
// Every operation returns an error on network failure, non-2xx status, or
// a malformed body. Callers are expected to keep whatever cached data they
// already hold; nothing in this package retries or caches.
package timeapi
