package ui

import (
	"context"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/five82/pokedex/internal/pokeapi"
	"github.com/five82/pokedex/internal/prefs"
	"github.com/five82/pokedex/internal/query"
)

// Options configures the UI.
type Options struct {
	Context      context.Context
	Cache        *query.Cache
	Client       pokeapi.Fetcher
	ThemeName    string
	PrefsPath    string
	DisableMouse bool
	Logger       *log.Logger
}

// Model is the root application state. It owns the search term and the
// selected entity and hands them to the list and detail views.
type Model struct {
	ctx          context.Context
	cache        *query.Cache
	client       pokeapi.Fetcher
	logger       *log.Logger
	prefsPath    string
	disableMouse bool

	theme    Theme
	keys     keyMap
	help     help.Model
	width    int
	height   int
	ready    bool
	focus    Focus
	showHelp bool

	search  textinput.Model
	spinner spinner.Model

	searchTerm      string
	selectedPokemon string

	list   listView
	detail detailView

	// keys with an outstanding awaitCmd
	waiting map[query.Key]bool
}

// syncMsg asks the model to register its current queries.
type syncMsg struct{}

// New creates a new Bubble Tea model. A nil Cache gets a fresh one bound
// to Context.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	cache := opts.Cache
	if cache == nil {
		cache = query.New(ctx, query.WithLogger(logger))
	}

	themeName := opts.ThemeName
	if themeName == "" {
		themeName = prefs.Default().Theme
	}

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	theme := GetTheme(themeName)

	search := textinput.New()
	search.Prompt = "Search: "
	search.Placeholder = "Search Pokemon"
	search.CharLimit = 0

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return Model{
		ctx:          ctx,
		cache:        cache,
		client:       opts.Client,
		logger:       logger,
		prefsPath:    prefsPath,
		disableMouse: opts.DisableMouse,
		theme:        theme,
		keys:         DefaultKeyMap(),
		help:         help.New(),
		focus:        FocusList,
		search:       search,
		spinner:      sp,
		list:         listView{result: query.Result{Status: query.StatusPending, Enabled: true}},
		waiting:      make(map[query.Key]bool),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.spinner.Tick,
		func() tea.Msg { return syncMsg{} },
	)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.search.Width = max(10, msg.Width-len(m.search.Prompt)-2)
		m.ready = true
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case syncMsg:
		return m, m.sync()

	case settledMsg:
		delete(m.waiting, msg.Key)
		return m, m.sync()

	case selectMsg:
		return m.selectPokemon(msg.Name)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	if m.focus == FocusSearch {
		var cmd tea.Cmd
		m.search, cmd = m.search.Update(msg)
		return m, cmd
	}
	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return loadingText
	}
	if m.showHelp {
		return m.renderHelp()
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n\n")

	b.WriteString(m.sectionTitle("Pokemon List", m.focus == FocusList))
	b.WriteString("\n")
	b.WriteString(m.search.View())
	b.WriteString("\n")
	b.WriteString(m.list.render(m))
	b.WriteString("\n\n")

	b.WriteString(m.sectionTitle("Pokemon Details", false))
	b.WriteString("\n")
	if detail := m.detail.render(m); detail != "" {
		b.WriteString(detail)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.renderFooter())
	return b.String()
}

// listTop returns the screen row of the first list item. It follows the
// layout of View: header, blank line, section title, search input.
func (m Model) listTop() int {
	return lipgloss.Height(m.renderHeader()) + 2 + lipgloss.Height(m.search.View())
}

// SearchTerm returns the current search term.
func (m Model) SearchTerm() string { return m.searchTerm }

// SelectedPokemon returns the name of the selected entity, or "".
func (m Model) SelectedPokemon() string { return m.selectedPokemon }

// ThemeName returns the active theme name.
func (m Model) ThemeName() string { return m.theme.Name }

// sync registers the current list and detail queries and returns commands
// waiting for any that are still pending.
func (m *Model) sync() tea.Cmd {
	listKey := m.list.sync(m.cache, m.client, m.searchTerm)
	detailKey := m.detail.sync(m.cache, m.client, m.selectedPokemon)

	cmds := []tea.Cmd{m.await(listKey)}
	if m.detail.result.Enabled {
		cmds = append(cmds, m.await(detailKey))
	}
	return tea.Batch(cmds...)
}

func (m *Model) await(key query.Key) tea.Cmd {
	if m.waiting[key] {
		return nil
	}
	r, ok := m.cache.Get(key)
	if !ok || r.Settled() {
		return nil
	}
	cmd := awaitCmd(m.cache, key)
	if cmd != nil {
		m.waiting[key] = true
	}
	return cmd
}

func (m Model) selectPokemon(name string) (tea.Model, tea.Cmd) {
	if name == m.selectedPokemon {
		return m, nil
	}
	m.logger.Debug("select", "name", name)
	m.selectedPokemon = name
	return m, m.sync()
}

func (m Model) setSearch(value string) (Model, tea.Cmd) {
	if value == m.searchTerm {
		return m, nil
	}
	m.searchTerm = value
	m.list.cursor = 0
	return m, m.sync()
}

// refetch invalidates the settled entries behind the current view and
// queries them again.
func (m Model) refetch() (tea.Model, tea.Cmd) {
	m.cache.Invalidate(query.ListKey(m.searchTerm))
	if m.selectedPokemon != "" {
		m.cache.Invalidate(query.DetailKey(m.selectedPokemon))
	}
	return m, m.sync()
}

func (m *Model) setFocus(f Focus) tea.Cmd {
	m.focus = f
	if f == FocusSearch {
		return m.search.Focus()
	}
	m.search.Blur()
	return nil
}

func (m Model) cycleTheme() Model {
	m.theme = GetTheme(NextTheme(m.theme.Name))
	if m.prefsPath != "" {
		p := prefs.Prefs{Theme: m.theme.Name, DisableMouse: m.disableMouse}
		if err := prefs.Save(m.prefsPath, p); err != nil {
			m.logger.Warn("save prefs", "err", err)
		}
	}
	return m
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		m.showHelp = false
		return m, nil
	}
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}

	if m.focus == FocusSearch {
		return m.handleSearchKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
	case key.Matches(msg, m.keys.CycleTheme):
		m = m.cycleTheme()
	case key.Matches(msg, m.keys.Tab), key.Matches(msg, m.keys.Search):
		return m, m.setFocus(FocusSearch)
	case key.Matches(msg, m.keys.Up):
		m.list.move(-1)
	case key.Matches(msg, m.keys.Down):
		m.list.move(1)
	case key.Matches(msg, m.keys.Top):
		m.list.top()
	case key.Matches(msg, m.keys.Bottom):
		m.list.bottom()
	case key.Matches(msg, m.keys.Select):
		return m, m.list.choose()
	case key.Matches(msg, m.keys.Refresh):
		return m.refetch()
	}
	return m, nil
}

func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc, tea.KeyTab, tea.KeyShiftTab, tea.KeyEnter, tea.KeyDown:
		return m, m.setFocus(FocusList)
	}

	var inputCmd tea.Cmd
	m.search, inputCmd = m.search.Update(msg)
	m, syncCmd := m.setSearch(m.search.Value())
	return m, tea.Batch(inputCmd, syncCmd)
}

func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.disableMouse || m.showHelp {
		return m, nil
	}
	if msg.Action != tea.MouseActionPress {
		return m, nil
	}
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		m.list.move(-1)
		return m, nil
	case tea.MouseButtonWheelDown:
		m.list.move(1)
		return m, nil
	case tea.MouseButtonLeft:
	default:
		return m, nil
	}

	top := m.listTop()
	switch row := msg.Y - top; {
	case msg.Y == top-1:
		return m, m.setFocus(FocusSearch)
	case row >= 0 && row < m.list.rows():
		m.setFocus(FocusList)
		return m, m.list.chooseAt(row)
	}
	return m, nil
}

// Run starts the Bubble Tea program and blocks until it exits.
func Run(opts Options) error {
	m := New(opts)
	progOpts := []tea.ProgramOption{
		tea.WithAltScreen(),
		tea.WithContext(m.ctx),
	}
	if !opts.DisableMouse {
		progOpts = append(progOpts, tea.WithMouseCellMotion())
	}
	_, err := tea.NewProgram(m, progOpts...).Run()
	return err
}
