package ui

import (
	"fmt"
	"strings"
	"time"
)

// toastLevel classifies transient notices.
type toastLevel int

const (
	toastInfo toastLevel = iota
	toastSuccess
	toastWarn
	toastError
)

// toast is a transient notice shown in the header until it expires.
type toast struct {
	text  string
	level toastLevel
	until time.Time
}

func (t toast) active() bool {
	return t.text != ""
}

// withToast replaces the current toast.
func (m Model) withToast(level toastLevel, text string) Model {
	m.toast = toast{text: text, level: level, until: m.now.Add(toastDuration)}
	return m
}

// renderHeader renders the top status bar: logo, zone count, offline
// badge, last-refresh age, and any active toast.
func (m Model) renderHeader() string {
	styles := m.theme.Styles()

	parts := []string{
		styles.Logo.Render("zoneclock"),
		styles.MutedText.Render(fmt.Sprintf("Zones: %d", len(m.snapshot.Selected))),
	}

	if m.snapshot.Offline {
		parts = append(parts, styles.DangerText.Render("OFFLINE — showing cached data"))
	}

	if !m.snapshot.LastFetch.IsZero() {
		parts = append(parts, styles.FaintText.Render("refreshed "+relativeAge(m.now.Sub(m.snapshot.LastFetch))))
	}

	if m.filter != "" {
		parts = append(parts, styles.AccentText.Render("filter: "+m.filter))
	}

	if m.toast.active() {
		style := styles.MutedText
		switch m.toast.level {
		case toastSuccess:
			style = styles.SuccessText
		case toastWarn:
			style = styles.WarningText
		case toastError:
			style = styles.DangerText
		}
		parts = append(parts, style.Render(m.toast.text))
	}

	line := strings.Join(parts, "  ")
	if m.width > 0 {
		return styles.Header.Width(m.width).Render(line)
	}
	return styles.Header.Render(line)
}

// renderFooter renders the key hint bar.
func (m Model) renderFooter() string {
	styles := m.theme.Styles()

	var hint string
	switch m.mode {
	case modeAdd:
		hint = "enter add  ↑/↓ pick suggestion  esc cancel"
	case modeFilter:
		hint = "enter apply  esc clear"
	default:
		hint = "a add  d remove  / filter  J/K reorder  r refresh  T theme  ? help  q quit"
	}

	if m.width > 0 {
		return styles.Footer.Width(m.width).Render(hint)
	}
	return styles.Footer.Render(hint)
}

// relativeAge formats a duration as a compact "Xm ago" label.
func relativeAge(d time.Duration) string {
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	default:
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	}
}
