// Package config loads zoneclock's configuration from
// ~/.config/zoneclock/config.toml.
//
// Every field has a default, so a missing file is not an error: the API
// base URL points at the public world time API, the data directory lands
// under ~/.local/share/zoneclock, and the full-refresh window is 24 hours.
// Paths support "~" expansion; string values are whitespace-trimmed.
package config
