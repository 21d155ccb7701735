package ui

import (
	"fmt"
	"strings"

	"github.com/five82/pokedex/internal/pokeapi"
	"github.com/five82/pokedex/internal/query"
)

// detailView renders the detail query for the selected entity. With no
// selection the query is disabled and the view is empty.
type detailView struct {
	name   string
	result query.Result
}

func (v *detailView) sync(cache *query.Cache, client pokeapi.Fetcher, name string) query.Key {
	v.name = name
	key := query.DetailKey(name)
	v.result = cache.Query(key, fetchDetail(client, name), query.EnabledWhen(name != ""))
	return key
}

func (v *detailView) pokemon() (pokeapi.Pokemon, bool) {
	if v.result.Status != query.StatusSuccess {
		return pokeapi.Pokemon{}, false
	}
	mon, ok := v.result.Data.(pokeapi.Pokemon)
	return mon, ok
}

func (v *detailView) render(m Model) string {
	if v.name == "" || !v.result.Enabled {
		return ""
	}
	styles := m.theme.Styles()

	switch v.result.Status {
	case query.StatusPending:
		return m.spinner.View() + " " + styles.MutedText.Render(loadingText)
	case query.StatusError:
		return styles.DangerText.Render(errorText)
	}

	mon, ok := v.pokemon()
	if !ok {
		return ""
	}

	var b strings.Builder
	b.WriteString(styles.Heading.Render(mon.Name))
	b.WriteString("\n")

	present := mon.Sprites.Present()
	if len(present) == 0 {
		b.WriteString(styles.FaintText.Render("no sprites"))
		b.WriteString("\n")
	}
	labelWidth := 0
	for _, sp := range present {
		labelWidth = max(labelWidth, len(sp.Label))
	}
	for _, sp := range present {
		label := fmt.Sprintf("%-*s", labelWidth, sp.Label)
		b.WriteString(styles.MutedText.Render("▪ " + label))
		b.WriteString("  ")
		b.WriteString(styles.InfoText.Render(*sp.URL))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(styles.Text.Render(fmt.Sprintf("Height: %s | Weight: %s", mon.FormatHeight(), mon.FormatWeight())))
	return b.String()
}
