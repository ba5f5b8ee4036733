package state

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/cmags/zoneclock/internal/citydex"
	"github.com/cmags/zoneclock/internal/store"
	"github.com/cmags/zoneclock/internal/timeapi"
)

// Persisted store keys. The cache snapshot is spread across independent
// keys so each mutation rewrites only what it touched.
const (
	keyTimezones = "timezones"
	keyCities    = "timezoneData"
	keySelected  = "selectedZones"
	keyZoneData  = "zoneData"
	keyLastFetch = "lastFetchTimestamp"
)

// DefaultSelection seeds the selection list on first run.
var DefaultSelection = []string{"America/New_York", "Europe/London", "Asia/Tokyo"}

// Validation errors for AddZone. Both reject the request before any
// network call is made.
var (
	ErrEmptyZone       = errors.New("timezone id is empty")
	ErrAlreadySelected = errors.New("timezone already selected")
)

const defaultRefreshInterval = 24 * time.Hour

// Phase tracks the controller lifecycle: Loading until the startup restore
// and fetch pass completes, Ready afterwards.
type Phase int

const (
	PhaseLoading Phase = iota
	PhaseReady
)

// Snapshot is an immutable copy of the application state handed to the UI.
type Snapshot struct {
	Phase     Phase
	Timezones []string
	Selected  []string
	Zones     map[string]timeapi.Zone
	LastFetch time.Time
	Offline   bool
}

// Controller owns the selection list, cached zone data, and refresh policy.
// All mutations go through its methods, persist synchronously, and are safe
// for concurrent use from UI commands and background goroutines.
type Controller struct {
	mu      sync.Mutex
	store   store.Store
	fetcher timeapi.Fetcher

	refreshEvery time.Duration
	now          func() time.Time

	phase     Phase
	timezones []string
	cities    []citydex.Entry
	selected  []string
	zones     map[string]timeapi.Zone
	lastFetch time.Time
	offline   bool

	index *citydex.Index

	// refreshGen invalidates superseded refreshes: starting a new refresh
	// cancels the in-flight one.
	refreshGen    int
	cancelRefresh context.CancelFunc
}

// New builds a Controller over the given store and fetcher.
func New(st store.Store, fetcher timeapi.Fetcher) *Controller {
	return &Controller{
		store:        st,
		fetcher:      fetcher,
		refreshEvery: defaultRefreshInterval,
		now:          time.Now,
		zones:        make(map[string]timeapi.Zone),
	}
}

// SetRefreshInterval overrides the full-refresh window (default 24h).
func (c *Controller) SetRefreshInterval(d time.Duration) {
	if d <= 0 {
		return
	}
	c.mu.Lock()
	c.refreshEvery = d
	c.mu.Unlock()
}

// Load restores the cache snapshot from the store and fetches whatever is
// missing: the timezone list when empty, then a zone entry for every
// selected identifier without one, then a staleness-driven refresh. The
// returned error aggregates soft failures; cached data remains usable.
func (c *Controller) Load(ctx context.Context) error {
	c.mu.Lock()
	c.store.Get(keyTimezones, &c.timezones)
	c.store.Get(keyCities, &c.cities)
	c.store.Get(keyZoneData, &c.zones)
	c.store.Get(keyLastFetch, &c.lastFetch)
	if c.zones == nil {
		c.zones = make(map[string]timeapi.Zone)
	}
	if !c.store.Get(keySelected, &c.selected) || c.selected == nil {
		c.selected = append([]string(nil), DefaultSelection...)
		c.put(keySelected, c.selected)
	}
	c.rebuildIndexLocked()
	c.mu.Unlock()

	var errs []error

	if err := c.ensureTimezoneList(ctx); err != nil {
		errs = append(errs, err)
	}
	if err := c.fetchMissingZones(ctx); err != nil {
		errs = append(errs, err)
	}
	if _, err := c.RefreshIfNeeded(ctx, false); err != nil {
		errs = append(errs, err)
	}

	c.mu.Lock()
	c.phase = PhaseReady
	c.mu.Unlock()

	return errors.Join(errs...)
}

// ensureTimezoneList fetches and persists the identifier list when the
// cached one is empty. A failure keeps the prior (empty) list.
func (c *Controller) ensureTimezoneList(ctx context.Context) error {
	c.mu.Lock()
	have := len(c.timezones) > 0
	c.mu.Unlock()
	if have {
		return nil
	}

	ids, err := c.fetcher.ListTimezones(ctx)
	if err != nil {
		return fmt.Errorf("list timezones: %w", err)
	}

	cities := make([]citydex.Entry, 0, len(ids))
	for _, id := range ids {
		cities = append(cities, citydex.Entry{ID: id, City: timeapi.CityName(id)})
	}

	c.mu.Lock()
	c.timezones = ids
	c.cities = cities
	c.rebuildIndexLocked()
	c.put(keyTimezones, c.timezones)
	c.put(keyCities, c.cities)
	c.mu.Unlock()
	return nil
}

// fetchMissingZones makes sure every selected identifier has a zone entry.
func (c *Controller) fetchMissingZones(ctx context.Context) error {
	c.mu.Lock()
	var missing []string
	for _, id := range c.selected {
		if _, ok := c.zones[id]; !ok {
			missing = append(missing, id)
		}
	}
	c.mu.Unlock()

	if len(missing) == 0 {
		return nil
	}
	fetched, err := c.fetchAll(ctx, missing)
	c.mergeZones(fetched)
	return err
}

// AddZone validates, fetches, and appends a new selection. The selection
// list only changes after a successful fetch.
func (c *Controller) AddZone(ctx context.Context, id string) error {
	if id == "" {
		return ErrEmptyZone
	}

	c.mu.Lock()
	if c.isSelectedLocked(id) {
		c.mu.Unlock()
		return fmt.Errorf("%s: %w", id, ErrAlreadySelected)
	}
	c.mu.Unlock()

	zone, err := c.fetcher.FetchZone(ctx, id)
	if err != nil {
		return fmt.Errorf("fetch %s: %w", id, err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.isSelectedLocked(id) {
		return fmt.Errorf("%s: %w", id, ErrAlreadySelected)
	}
	c.selected = append(c.selected, id)
	c.zones[id] = zone
	c.put(keySelected, c.selected)
	c.put(keyZoneData, c.zones)
	return nil
}

// RemoveZone drops an identifier from the selection and its cached entry.
// Removing an absent identifier is a no-op; the call always succeeds.
func (c *Controller) RemoveZone(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	kept := c.selected[:0]
	for _, sel := range c.selected {
		if sel != id {
			kept = append(kept, sel)
		}
	}
	c.selected = kept
	delete(c.zones, id)
	c.put(keySelected, c.selected)
	c.put(keyZoneData, c.zones)
}

// Reorder moves the selection at from to position to. Out-of-range indices
// and from == to are no-ops.
func (c *Controller) Reorder(from, to int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	n := len(c.selected)
	if from == to || from < 0 || from >= n || to < 0 || to >= n {
		return
	}
	id := c.selected[from]
	c.selected = append(c.selected[:from], c.selected[from+1:]...)
	rest := append([]string(nil), c.selected[to:]...)
	c.selected = append(append(c.selected[:to], id), rest...)
	c.put(keySelected, c.selected)
}

// RefreshIfNeeded refetches every selected zone when forced, when the
// refresh window has elapsed, or when any cached entry has a DST
// transition dated today. It reports how many zones were refetched; zero
// with a nil error means the cache was still fresh. Starting a new refresh
// cancels an in-flight one.
func (c *Controller) RefreshIfNeeded(ctx context.Context, force bool) (int, error) {
	c.mu.Lock()
	if !force && !c.staleLocked() {
		c.mu.Unlock()
		return 0, nil
	}
	ids := append([]string(nil), c.selected...)

	refreshCtx, cancel := context.WithCancel(ctx)
	if c.cancelRefresh != nil {
		c.cancelRefresh()
	}
	c.cancelRefresh = cancel
	c.refreshGen++
	gen := c.refreshGen
	c.mu.Unlock()

	fetched, err := c.fetchAll(refreshCtx, ids)

	c.mu.Lock()
	superseded := gen != c.refreshGen
	if !superseded {
		if c.cancelRefresh != nil {
			c.cancelRefresh()
			c.cancelRefresh = nil
		}
	}
	c.mu.Unlock()
	if superseded {
		return 0, nil
	}

	c.mergeZones(fetched)

	c.mu.Lock()
	c.lastFetch = c.now()
	c.put(keyLastFetch, c.lastFetch)
	c.mu.Unlock()

	return len(fetched), err
}

// staleLocked decides whether cached zone data is stale enough, or close
// enough to a DST transition, to warrant a refetch.
func (c *Controller) staleLocked() bool {
	now := c.now()
	if c.lastFetch.IsZero() || now.Sub(c.lastFetch) >= c.refreshEvery {
		return true
	}
	for _, id := range c.selected {
		if zone, ok := c.zones[id]; ok && zone.TransitionOn(now) {
			return true
		}
	}
	return false
}

// fetchAll fetches the given zones concurrently and waits for every fetch
// to settle. Individual failures are joined, never aborting the rest.
func (c *Controller) fetchAll(ctx context.Context, ids []string) (map[string]timeapi.Zone, error) {
	type result struct {
		id   string
		zone timeapi.Zone
		err  error
	}

	results := make(chan result, len(ids))
	var wg sync.WaitGroup
	for _, id := range ids {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			zone, err := c.fetcher.FetchZone(ctx, id)
			results <- result{id: id, zone: zone, err: err}
		}(id)
	}
	wg.Wait()
	close(results)

	fetched := make(map[string]timeapi.Zone)
	var errs []error
	for r := range results {
		if r.err != nil {
			errs = append(errs, fmt.Errorf("fetch %s: %w", r.id, r.err))
			continue
		}
		fetched[r.id] = r.zone
	}
	return fetched, errors.Join(errs...)
}

// mergeZones folds successful fetches into the zone map and persists it.
// Entries whose selection was removed mid-fetch are dropped.
func (c *Controller) mergeZones(fetched map[string]timeapi.Zone) {
	if len(fetched) == 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	for id, zone := range fetched {
		if c.isSelectedLocked(id) {
			c.zones[id] = zone
		}
	}
	c.put(keyZoneData, c.zones)
}

// SetOnline flips the offline flag. Regaining connectivity triggers a
// staleness-driven refresh.
func (c *Controller) SetOnline(ctx context.Context, online bool) error {
	c.mu.Lock()
	wasOffline := c.offline
	c.offline = !online
	c.mu.Unlock()

	if online && wasOffline {
		_, err := c.RefreshIfNeeded(ctx, false)
		return err
	}
	return nil
}

// Match returns up to n ranked fuzzy matches for a partial city name.
func (c *Controller) Match(query string, n int) []citydex.Match {
	c.mu.Lock()
	index := c.index
	c.mu.Unlock()
	return index.Top(query, n)
}

// Snapshot returns a copy of the current state.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	zones := make(map[string]timeapi.Zone, len(c.zones))
	for id, zone := range c.zones {
		zones[id] = zone
	}
	return Snapshot{
		Phase:     c.phase,
		Timezones: append([]string(nil), c.timezones...),
		Selected:  append([]string(nil), c.selected...),
		Zones:     zones,
		LastFetch: c.lastFetch,
		Offline:   c.offline,
	}
}

func (c *Controller) isSelectedLocked(id string) bool {
	for _, sel := range c.selected {
		if sel == id {
			return true
		}
	}
	return false
}

func (c *Controller) rebuildIndexLocked() {
	c.index = citydex.New(c.cities)
}

// put persists one key. Store failures degrade durability, not behavior.
func (c *Controller) put(key string, value any) {
	if err := c.store.Put(key, value); err != nil {
		log.Printf("persist %s failed: %v", key, err)
	}
}
