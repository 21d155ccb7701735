package app

import (
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"

	"github.com/five82/pokedex/internal/pokeapi"
)

func writeList(w io.Writer, list pokeapi.ListResult) error {
	if len(list.Results) == 0 {
		_, err := fmt.Fprintln(w, "No results")
		return err
	}

	table := tablewriter.NewWriter(w)
	table.Header("#", "Name", "URL")
	for i, r := range list.Results {
		_ = table.Append([]string{fmt.Sprintf("%d", i+1), r.Name, r.URL})
	}
	return table.Render()
}

func writeDetail(w io.Writer, mon pokeapi.Pokemon) error {
	table := tablewriter.NewWriter(w)
	table.Header("Property", "Value")
	_ = table.Append("Name", mon.Name)
	_ = table.Append("Height", mon.FormatHeight())
	_ = table.Append("Weight", mon.FormatWeight())
	for _, sp := range mon.Sprites.Present() {
		_ = table.Append(sp.Label, *sp.URL)
	}
	return table.Render()
}
