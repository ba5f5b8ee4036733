package app

import (
	"context"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/cmags/zoneclock/internal/config"
	"github.com/cmags/zoneclock/internal/prefs"
	"github.com/cmags/zoneclock/internal/state"
	"github.com/cmags/zoneclock/internal/store"
	"github.com/cmags/zoneclock/internal/timeapi"
	"github.com/cmags/zoneclock/internal/ui"
)

// Options configure the zoneclock application.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses default ~/.config/zoneclock/prefs.toml
}

// Run boots the zoneclock TUI until the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	userPrefs := prefs.Load(opts.PrefsPath)

	// The TUI owns stdout; diagnostics go to a file when debugging.
	if os.Getenv("ZONECLOCK_DEBUG") != "" {
		f, err := tea.LogToFile("zoneclock-debug.log", "zoneclock")
		if err == nil {
			defer func() { _ = f.Close() }()
		}
	}

	st, err := store.Open(cfg.DataDir)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer func() { _ = st.Close() }()

	client, err := timeapi.NewClient(cfg.APIURL)
	if err != nil {
		return fmt.Errorf("init api client: %w", err)
	}

	controller := state.New(st, client)
	controller.SetRefreshInterval(time.Duration(cfg.RefreshHours) * time.Hour)

	// Background refresh check and connectivity watcher.
	StartPoller(ctx, controller, client)

	uiOpts := ui.Options{
		Context:    ctx,
		Controller: controller,
		ThemeName:  userPrefs.Theme,
		PrefsPath:  opts.PrefsPath,
	}
	return ui.Run(uiOpts)
}
