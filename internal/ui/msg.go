package ui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/pokedex/internal/pokeapi"
	"github.com/five82/pokedex/internal/query"
)

// Focus identifies the widget receiving key input.
type Focus int

const (
	FocusList Focus = iota
	FocusSearch
)

// settledMsg reports that the cache entry for Key reached success or error.
type settledMsg struct {
	Key query.Key
}

// selectMsg is emitted by the list view when an entity is chosen.
type selectMsg struct {
	Name string
}

// awaitCmd waits for key to settle. It returns nil when there is nothing
// to wait for.
func awaitCmd(cache *query.Cache, key query.Key) tea.Cmd {
	done := cache.Done(key)
	if done == nil {
		return nil
	}
	return func() tea.Msg {
		<-done
		return settledMsg{Key: key}
	}
}

func selectCmd(name string) tea.Cmd {
	return func() tea.Msg {
		return selectMsg{Name: name}
	}
}

func fetchList(client pokeapi.Fetcher, search string) query.FetchFunc {
	return func(ctx context.Context) (any, error) {
		list, err := client.FetchList(ctx, search)
		if err != nil {
			return nil, err
		}
		return list, nil
	}
}

func fetchDetail(client pokeapi.Fetcher, name string) query.FetchFunc {
	return func(ctx context.Context) (any, error) {
		mon, err := client.FetchPokemon(ctx, name)
		if err != nil {
			return nil, err
		}
		return mon, nil
	}
}
