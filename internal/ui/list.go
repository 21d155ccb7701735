package ui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/pokedex/internal/pokeapi"
	"github.com/five82/pokedex/internal/query"
)

const (
	loadingText = "Loading..."
	errorText   = "Error loading data"
)

// listView renders the collection query for the current search term.
// The cursor is its only state; selection belongs to the Model.
type listView struct {
	searchTerm string
	result     query.Result
	cursor     int
}

// sync registers interest in the list query for search and returns the
// entry as it stands.
func (v *listView) sync(cache *query.Cache, client pokeapi.Fetcher, search string) query.Key {
	v.searchTerm = search
	key := query.ListKey(search)
	v.result = cache.Query(key, fetchList(client, search), query.EnabledWhen(true))
	v.clampCursor()
	return key
}

func (v *listView) names() []string {
	if v.result.Status != query.StatusSuccess {
		return nil
	}
	list, ok := v.result.Data.(pokeapi.ListResult)
	if !ok {
		return nil
	}
	return list.Names()
}

func (v *listView) clampCursor() {
	n := len(v.names())
	switch {
	case n == 0:
		v.cursor = 0
	case v.cursor >= n:
		v.cursor = n - 1
	case v.cursor < 0:
		v.cursor = 0
	}
}

func (v *listView) move(delta int) {
	v.cursor += delta
	v.clampCursor()
}

func (v *listView) top() { v.cursor = 0 }

func (v *listView) bottom() {
	v.cursor = len(v.names()) - 1
	v.clampCursor()
}

// choose emits a selection for the item under the cursor.
func (v *listView) choose() tea.Cmd {
	return v.chooseAt(v.cursor)
}

// chooseAt emits a selection for row i, if it exists.
func (v *listView) chooseAt(i int) tea.Cmd {
	names := v.names()
	if i < 0 || i >= len(names) {
		return nil
	}
	v.cursor = i
	return selectCmd(names[i])
}

// rows returns the number of lines the view occupies.
func (v *listView) rows() int {
	if n := len(v.names()); n > 0 {
		return n
	}
	return 1
}

func (v *listView) render(m Model) string {
	styles := m.theme.Styles()

	switch v.result.Status {
	case query.StatusPending:
		return m.spinner.View() + " " + styles.MutedText.Render(loadingText)
	case query.StatusError:
		return styles.DangerText.Render(errorText)
	}

	names := v.names()
	if len(names) == 0 {
		return styles.MutedText.Render("No results")
	}

	lines := make([]string, len(names))
	for i, name := range names {
		marker := "  "
		if name == m.selectedPokemon {
			marker = styles.AccentText.Render("● ")
		}
		var text string
		if i == v.cursor && m.focus == FocusList {
			text = styles.Selected.Render(" " + name + " ")
		} else {
			text = styles.Text.Render(" " + name + " ")
		}
		lines[i] = marker + text
	}
	return strings.Join(lines, "\n")
}
