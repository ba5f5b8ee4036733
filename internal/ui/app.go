// Package ui provides the Bubble Tea TUI for zoneclock.
package ui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/cmags/zoneclock/internal/citydex"
	"github.com/cmags/zoneclock/internal/prefs"
	"github.com/cmags/zoneclock/internal/state"
)

// mode is the current input mode.
type mode int

const (
	modeNormal mode = iota
	modeAdd
	modeFilter
)

const (
	displayTick      = time.Second
	filterDebounce   = 300 * time.Millisecond
	toastDuration    = 4 * time.Second
	maxSuggestions   = 10
	defaultInputChar = 40
)

// Options configures the UI.
type Options struct {
	Context    context.Context
	Controller *state.Controller
	ThemeName  string
	PrefsPath  string
}

// Model is the root application state for Bubble Tea.
type Model struct {
	ctx        context.Context
	controller *state.Controller
	prefsPath  string

	theme Theme
	keys  keyMap

	width  int
	height int
	ready  bool

	loading bool
	spin    spinner.Model

	snapshot state.Snapshot
	now      time.Time

	mode   mode
	cursor int
	input  textinput.Model

	// filter holds the applied card filter; pendingTag invalidates stale
	// debounce ticks so only the latest keystroke applies it.
	filter     string
	pendingTag int

	suggestions []citydex.Match
	suggestIdx  int

	toast    toast
	showHelp bool
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	themeName := opts.ThemeName
	if themeName == "" {
		themeName = "Dark"
	}

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	input := textinput.New()
	input.CharLimit = defaultInputChar

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return Model{
		ctx:        ctx,
		controller: opts.Controller,
		prefsPath:  prefsPath,
		theme:      GetTheme(themeName),
		keys:       DefaultKeyMap(),
		loading:    true,
		spin:       sp,
		input:      input,
		now:        time.Now(),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		tea.EnterAltScreen,
		m.spin.Tick,
		tickCmd(),
		loadCmd(m.ctx, m.controller),
	)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		return m, nil

	case tickMsg:
		m.now = time.Time(msg)
		m.snapshot = m.controller.Snapshot()
		if m.toast.active() && m.now.After(m.toast.until) {
			m.toast = toast{}
		}
		return m, tickCmd()

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case loadedMsg:
		m.loading = false
		m.snapshot = m.controller.Snapshot()
		m.clampCursor()
		if msg.err != nil {
			return m.withToast(toastWarn, "Some data could not be fetched; showing cached values"), nil
		}
		return m, nil

	case refreshDoneMsg:
		m.snapshot = m.controller.Snapshot()
		if msg.err != nil {
			return m.withToast(toastError, "Refresh failed for some zones; cached data kept"), nil
		}
		if msg.count > 0 {
			return m.withToast(toastSuccess, "Timezone data refreshed"), nil
		}
		return m.withToast(toastInfo, "Cache is fresh; nothing to refresh"), nil

	case addDoneMsg:
		m.snapshot = m.controller.Snapshot()
		if msg.err != nil {
			return m.withToast(toastError, addErrorText(msg.err)), nil
		}
		m.cursor = len(m.visibleZones()) - 1
		m.clampCursor()
		return m.withToast(toastSuccess, "Added "+msg.id), nil

	case filterDebounceMsg:
		if m.mode == modeFilter && int(msg) == m.pendingTag {
			m.filter = m.input.Value()
			m.clampCursor()
		}
		return m, nil
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.showHelp {
		return m.renderHelp()
	}
	return m.renderMain()
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		// Any key closes help.
		m.showHelp = false
		return m, nil
	}

	switch m.mode {
	case modeAdd:
		return m.handleAddKey(msg)
	case modeFilter:
		return m.handleFilterKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		if m.prefsPath != "" {
			_ = prefs.Save(m.prefsPath, prefs.Prefs{Theme: m.theme.Name})
		}
		return m, nil

	case key.Matches(msg, m.keys.Escape):
		m.filter = ""
		m.clampCursor()
		return m, nil

	case key.Matches(msg, m.keys.Add):
		return m.enterAddMode(), textinput.Blink

	case key.Matches(msg, m.keys.Filter):
		return m.enterFilterMode(), textinput.Blink

	case key.Matches(msg, m.keys.Refresh):
		return m.withToast(toastInfo, "Refreshing..."), refreshCmd(m.ctx, m.controller, true)

	case key.Matches(msg, m.keys.Remove):
		return m.removeSelected()

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.visibleZones())-1 {
			m.cursor++
		}
		return m, nil

	case key.Matches(msg, m.keys.MoveUp):
		return m.moveSelected(-1)

	case key.Matches(msg, m.keys.MoveDown):
		return m.moveSelected(1)
	}

	return m, nil
}

// removeSelected drops the card under the cursor. Always succeeds; removal
// is deliberate enough on a keyboard that no confirmation is asked.
func (m Model) removeSelected() (tea.Model, tea.Cmd) {
	zones := m.visibleZones()
	if len(zones) == 0 || m.cursor >= len(zones) {
		return m, nil
	}
	id := zones[m.cursor].id
	m.controller.RemoveZone(id)
	m.snapshot = m.controller.Snapshot()
	m.clampCursor()
	return m.withToast(toastInfo, "Removed "+id), nil
}

// moveSelected reorders the card under the cursor by delta. Reordering is
// disabled while a filter hides part of the selection, since visible
// positions would not map to selection positions.
func (m Model) moveSelected(delta int) (tea.Model, tea.Cmd) {
	if m.filter != "" {
		return m.withToast(toastWarn, "Clear the filter before reordering"), nil
	}
	from := m.cursor
	to := from + delta
	if to < 0 || to >= len(m.snapshot.Selected) {
		return m, nil
	}
	m.controller.Reorder(from, to)
	m.snapshot = m.controller.Snapshot()
	m.cursor = to
	return m, nil
}

// clampCursor keeps the cursor on a visible card.
func (m *Model) clampCursor() {
	n := len(m.visibleZones())
	if n == 0 {
		m.cursor = 0
		return
	}
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// Messages

type tickMsg time.Time

type loadedMsg struct {
	err error
}

type refreshDoneMsg struct {
	count int
	err   error
}

type addDoneMsg struct {
	id  string
	err error
}

type filterDebounceMsg int

// Commands

func tickCmd() tea.Cmd {
	return tea.Tick(displayTick, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func loadCmd(ctx context.Context, c *state.Controller) tea.Cmd {
	return func() tea.Msg {
		return loadedMsg{err: c.Load(ctx)}
	}
}

func refreshCmd(ctx context.Context, c *state.Controller, force bool) tea.Cmd {
	return func() tea.Msg {
		count, err := c.RefreshIfNeeded(ctx, force)
		return refreshDoneMsg{count: count, err: err}
	}
}

func addZoneCmd(ctx context.Context, c *state.Controller, id string) tea.Cmd {
	return func() tea.Msg {
		return addDoneMsg{id: id, err: c.AddZone(ctx, id)}
	}
}

func debounceCmd(tag int) tea.Cmd {
	return tea.Tick(filterDebounce, func(time.Time) tea.Msg {
		return filterDebounceMsg(tag)
	})
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	m := New(opts)
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
