// Package app provides the orchestration layer for zoneclock.
//
// # Overview
//
// This package wires together configuration, persistence, the world time
// API client, the state controller, and the UI. It is the composition root
// where all dependencies are initialized and connected.
//
// # Startup
//
//  1. Load config from ~/.config/zoneclock/config.toml
//  2. Load theme preference from ~/.config/zoneclock/prefs.toml
//  3. Open the key-value store (sqlite, falling back to a JSON file)
//  4. Create the HTTP client for the world time API
//  5. Build the state controller over store and client
//  6. Launch the background refresh and connectivity goroutines
//  7. Start the TUI and block until the user quits or the context cancels
//
// The initial cache restore and fetch pass runs as a UI command so the
// loading spinner is visible while it completes.
//
// # Background Behavior
//
// Two goroutines run for the life of the process. The refresh poller
// checks hourly whether cached zone data is stale (by age or by a DST
// transition dated today) and refetches when it is. The connectivity
// watcher pings the API every 30 seconds and flips the controller's
// offline flag; regaining connectivity triggers a staleness check
// immediately. The UI re-reads a state snapshot on its own 1-second tick,
// so background updates surface without extra plumbing.
//
// # Error Handling
//
// Fatal errors (returned from Run): unreadable or invalid config, data
// directory creation failure, malformed API URL. Everything after startup
// is recoverable: fetch failures keep cached data and surface as toasts,
// storage write failures degrade durability and are logged.
package app
