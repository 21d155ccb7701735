package ui

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/pokedex/internal/pokeapi"
	"github.com/five82/pokedex/internal/query"
)

var errFake = errors.New("boom")

// fakeFetcher records calls and serves canned data. A gate registered for
// a search term holds FetchList for that term until it is closed.
type fakeFetcher struct {
	mu          sync.Mutex
	listCalls   []string
	detailCalls []string
	listErr     error
	detailErr   error
	gates       map[string]chan struct{}
}

func (f *fakeFetcher) FetchList(ctx context.Context, search string) (pokeapi.ListResult, error) {
	f.mu.Lock()
	f.listCalls = append(f.listCalls, search)
	gate := f.gates[search]
	err := f.listErr
	f.mu.Unlock()

	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return pokeapi.ListResult{}, ctx.Err()
		}
	}
	if err != nil {
		return pokeapi.ListResult{}, err
	}

	names := []string{"bulbasaur", "ivysaur"}
	if search != "" {
		names = []string{search + "-one", search + "-two"}
	}
	out := pokeapi.ListResult{}
	for _, n := range names {
		out.Results = append(out.Results, pokeapi.NamedResource{Name: n, URL: "https://pokeapi.co/api/v2/pokemon/" + n + "/"})
	}
	return out, nil
}

func (f *fakeFetcher) FetchPokemon(_ context.Context, name string) (pokeapi.Pokemon, error) {
	f.mu.Lock()
	f.detailCalls = append(f.detailCalls, name)
	err := f.detailErr
	f.mu.Unlock()

	if err != nil {
		return pokeapi.Pokemon{}, err
	}
	return pokeapi.Pokemon{
		Name:   name,
		Height: 7,
		Weight: 69,
		Sprites: pokeapi.Sprites{
			{Label: "back_default", URL: strPtr("https://img.example/" + name + "/back.png")},
			{Label: "back_female", URL: nil},
			{Label: "front_default", URL: strPtr("https://img.example/" + name + "/front.png")},
		},
	}, nil
}

func (f *fakeFetcher) lists() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.listCalls...)
}

func (f *fakeFetcher) details() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.detailCalls...)
}

func strPtr(s string) *string { return &s }

// newTestModel returns a sized model with its initial queries registered.
func newTestModel(t *testing.T, f *fakeFetcher) Model {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	cache := query.New(ctx)
	t.Cleanup(cache.Close)

	m := New(Options{
		Context:   ctx,
		Cache:     cache,
		Client:    f,
		PrefsPath: filepath.Join(t.TempDir(), "prefs.toml"),
	})
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 40})
	m, _ = update(t, m, syncMsg{})
	return m
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	out, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T, want Model", next)
	}
	return out, cmd
}

// settle waits for key to settle and delivers the resulting message.
func settle(t *testing.T, m Model, key query.Key) Model {
	t.Helper()
	done := m.cache.Done(key)
	if done == nil {
		t.Fatalf("no cache entry for %v", key)
	}
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for %v", key)
	}
	m, _ = update(t, m, settledMsg{Key: key})
	return m
}

// runSelect executes cmd and feeds a resulting selectMsg back into the model.
func runSelect(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	if cmd == nil {
		t.Fatalf("expected a select command, got nil")
	}
	msg, ok := cmd().(selectMsg)
	if !ok {
		t.Fatalf("command did not produce selectMsg")
	}
	m, _ = update(t, m, msg)
	return m
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}
