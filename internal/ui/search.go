package ui

import (
	"errors"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/cmags/zoneclock/internal/state"
)

// enterAddMode opens the add-timezone input with autocomplete.
func (m Model) enterAddMode() Model {
	m.mode = modeAdd
	m.input.Reset()
	m.input.Placeholder = "city name or Area/City"
	m.input.Focus()
	m.suggestions = nil
	m.suggestIdx = 0
	return m
}

// enterFilterMode opens the card filter input.
func (m Model) enterFilterMode() Model {
	m.mode = modeFilter
	m.input.Reset()
	m.input.Placeholder = "filter cities"
	m.input.SetValue(m.filter)
	m.input.Focus()
	return m
}

// handleAddKey processes keys while typing a timezone to add.
func (m Model) handleAddKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit

	case "esc":
		m.mode = modeNormal
		m.input.Blur()
		m.suggestions = nil
		return m, nil

	case "up":
		if m.suggestIdx > 0 {
			m.suggestIdx--
		}
		return m, nil

	case "down":
		if m.suggestIdx < len(m.suggestions)-1 {
			m.suggestIdx++
		}
		return m, nil

	case "enter":
		id := strings.TrimSpace(m.input.Value())
		if len(m.suggestions) > 0 {
			id = m.suggestions[m.suggestIdx].ID
		}
		m.mode = modeNormal
		m.input.Blur()
		m.suggestions = nil
		return m, addZoneCmd(m.ctx, m.controller, id)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)

	// Re-query the prebuilt index on every keystroke.
	m.suggestions = m.controller.Match(m.input.Value(), maxSuggestions)
	if m.suggestIdx >= len(m.suggestions) {
		m.suggestIdx = 0
	}
	return m, cmd
}

// handleFilterKey processes keys while typing a card filter. The filter is
// applied after a short debounce rather than on every keystroke.
func (m Model) handleFilterKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit

	case "esc":
		m.mode = modeNormal
		m.input.Blur()
		m.filter = ""
		m.clampCursor()
		return m, nil

	case "enter":
		m.mode = modeNormal
		m.input.Blur()
		m.filter = m.input.Value()
		m.clampCursor()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)

	m.pendingTag++
	return m, tea.Batch(cmd, debounceCmd(m.pendingTag))
}

// matchesFilter reports whether a city passes the applied filter,
// case-insensitive substring semantics.
func matchesFilter(city, filter string) bool {
	trimmed := strings.TrimSpace(filter)
	if trimmed == "" {
		return true
	}
	return strings.Contains(strings.ToLower(city), strings.ToLower(trimmed))
}

// addErrorText maps AddZone failures to user-facing toast text.
func addErrorText(err error) string {
	switch {
	case errors.Is(err, state.ErrEmptyZone):
		return "Enter a timezone to add"
	case errors.Is(err, state.ErrAlreadySelected):
		return "That timezone is already on the board"
	default:
		return "Could not fetch timezone data; nothing added"
	}
}
