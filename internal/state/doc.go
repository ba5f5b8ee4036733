// Package state owns zoneclock's application state: the ordered selection
// of timezone identifiers, their cached zone entries, the last-refresh
// timestamp, and the offline flag.
//
// The Controller is the single writer. Every mutation (add, remove,
// reorder, refresh) persists synchronously to the store before returning,
// so a restart reproduces the same selection and zone data. Readers get
// immutable Snapshot copies; the UI re-reads one every display tick.
//
// The refresh policy lives here too: a full refetch runs when forced by
// the user, when the configured window (default 24h) has elapsed, or when
// any cached entry carries a DST transition dated today, since its offset
// is about to go stale.
package state
