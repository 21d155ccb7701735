package ui

import (
	"fmt"
)

const updatedFormat = "15:04:05"

// renderHeader renders the top bar: logo, query states, list fetch time and cache size.
func (m Model) renderHeader() string {
	styles := m.theme.Styles()
	bg := NewBgStyle(m.theme.Surface)

	parts := []string{
		bg.Render("pokedex", styles.Logo),
		bg.Render("list", styles.MutedText) + bg.Spaces(1) + styles.StatusStyle(m.list.result.Status).Render(m.list.result.Status.String()),
	}
	if m.detail.result.Enabled {
		parts = append(parts,
			bg.Render("detail", styles.MutedText)+bg.Spaces(1)+
				styles.StatusStyle(m.detail.result.Status).Render(m.detail.result.Status.String()))
	}
	if r := m.list.result; r.Settled() && !r.UpdatedAt.IsZero() {
		parts = append(parts, bg.Render("updated "+r.UpdatedAt.Format(updatedFormat), styles.FaintText))
	}
	parts = append(parts,
		bg.Render(fmt.Sprintf("cached %d", m.cache.Len()), styles.FaintText),
		bg.Render(m.theme.Name, styles.FaintText),
	)

	return styles.Header.Width(m.width).Render(bg.Join(parts, 2))
}

// renderFooter renders the short help line.
func (m Model) renderFooter() string {
	styles := m.theme.Styles()
	m.help.Styles.ShortKey = styles.WarningText
	m.help.Styles.ShortDesc = styles.MutedText
	m.help.Styles.ShortSeparator = styles.FaintText
	m.help.Width = m.width
	return m.help.View(m.keys)
}

// sectionTitle renders a section heading, highlighted when its pane has focus.
func (m Model) sectionTitle(title string, focused bool) string {
	styles := m.theme.Styles()
	if focused {
		return styles.Section.Render(title)
	}
	return styles.Text.Bold(true).Render(title)
}
