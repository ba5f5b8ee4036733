package ui

import (
	"fmt"
	"strings"

	"github.com/cmags/zoneclock/internal/timeapi"
)

// card pairs a selected identifier with its cached zone entry for display.
type card struct {
	id   string
	zone timeapi.Zone
	ok   bool // false when no cached entry exists yet
}

// visibleZones returns the selection in display order, narrowed by the
// applied filter.
func (m Model) visibleZones() []card {
	cards := make([]card, 0, len(m.snapshot.Selected))
	for _, id := range m.snapshot.Selected {
		zone, ok := m.snapshot.Zones[id]
		city := zone.City
		if !ok {
			city = timeapi.CityName(id)
		}
		if !matchesFilter(city, m.filter) {
			continue
		}
		cards = append(cards, card{id: id, zone: zone, ok: ok})
	}
	return cards
}

// renderCards renders one row per visible zone: city, live local time,
// date, and UTC offset, all computed from the cached offset.
func (m Model) renderCards() string {
	styles := m.theme.Styles()
	cards := m.visibleZones()

	if len(cards) == 0 {
		if m.filter != "" {
			return styles.MutedText.Render("No cities match the filter") + "\n"
		}
		return styles.MutedText.Render("No timezones selected. Press 'a' to add one.") + "\n"
	}

	var b strings.Builder
	for i, c := range cards {
		b.WriteString(m.renderCard(c, i == m.cursor, styles))
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) renderCard(c card, selected bool, styles Styles) string {
	marker := "  "
	if selected {
		marker = "▸ "
	}

	city := c.zone.City
	if city == "" {
		city = timeapi.CityName(c.id)
	}
	city = truncate(city, 24)

	var clock, date, offset, note string
	if c.ok {
		local := c.zone.LocalTime(m.now)
		clock = local.Format("15:04:05")
		date = local.Format("Mon Jan 2")
		offset = c.zone.FormatOffset()
		if c.zone.TransitionOn(m.now) {
			note = "DST change today"
		}
	} else {
		clock = "--:--:--"
		date = "no data"
		offset = ""
		note = "waiting for fetch"
	}

	line := fmt.Sprintf("%s%-24s  %s  %-11s  %-9s",
		marker,
		city,
		styles.Clock.Render(clock),
		date,
		offset,
	)
	if note != "" {
		line += "  " + styles.WarningText.Render(note)
	}

	if selected {
		return styles.Selected.Render(line)
	}
	return styles.Text.Render(line)
}

// renderInput renders the add/filter input line with suggestions.
func (m Model) renderInput() string {
	if m.mode == modeNormal {
		return ""
	}
	styles := m.theme.Styles()

	var b strings.Builder
	label := "Add: "
	if m.mode == modeFilter {
		label = "Filter: "
	}
	b.WriteString(styles.AccentText.Render(label))
	b.WriteString(m.input.View())
	b.WriteString("\n")

	if m.mode == modeAdd {
		for i, s := range m.suggestions {
			cursor := "  "
			style := styles.MutedText
			if i == m.suggestIdx {
				cursor = "> "
				style = styles.AccentText
			}
			b.WriteString(cursor)
			b.WriteString(style.Render(fmt.Sprintf("%s (%s)", s.City, s.ID)))
			b.WriteString("\n")
		}
	}
	return b.String()
}

// renderMain renders the full UI.
func (m Model) renderMain() string {
	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n")

	if m.loading {
		b.WriteString(m.spin.View())
		b.WriteString(" Loading cached timezones...\n")
	} else {
		b.WriteString(m.renderCards())
	}

	if input := m.renderInput(); input != "" {
		b.WriteString("\n")
		b.WriteString(input)
	}

	b.WriteString("\n")
	b.WriteString(m.renderFooter())
	return b.String()
}
