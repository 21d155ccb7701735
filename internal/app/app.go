package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/five82/pokedex/internal/config"
	"github.com/five82/pokedex/internal/logtail"
	"github.com/five82/pokedex/internal/pokeapi"
	"github.com/five82/pokedex/internal/prefs"
	"github.com/five82/pokedex/internal/query"
	"github.com/five82/pokedex/internal/ui"
)

// Options configure the pokedex application.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses default ~/.config/pokedex/prefs.toml
	BaseURL    string // overrides base_url from config when set
	Verbose    bool

	// LogOutput receives logs for the non-interactive commands. Nil means
	// stderr. The TUI always logs to the configured log file.
	LogOutput io.Writer

	// HTTPClient overrides the transport used by the API client.
	HTTPClient *http.Client
}

// env holds the shared dependencies built from Options.
type env struct {
	logger *log.Logger
	client *pokeapi.Client
	cache  *query.Cache
	close  func()
}

func setup(ctx context.Context, opts Options, logOut io.Writer) (*env, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if base := strings.TrimSpace(opts.BaseURL); base != "" {
		cfg.BaseURL = base
	}

	closeLog := func() error { return nil }
	if logOut == nil {
		logOut, closeLog = openLogFile(cfg.LogFile)
	}
	logger := newLogger(logOut, logLevel(cfg.LogLevel, opts.Verbose))

	var clientOpts []pokeapi.Option
	if opts.HTTPClient != nil {
		clientOpts = append(clientOpts, pokeapi.WithHTTPClient(opts.HTTPClient))
	}
	client, err := pokeapi.NewClient(cfg.BaseURL, clientOpts...)
	if err != nil {
		_ = closeLog()
		return nil, fmt.Errorf("init pokeapi client: %w", err)
	}
	logger.Debug("pokeapi client ready", "base_url", client.BaseURL())

	cache := query.New(ctx, query.WithLogger(logger))
	return &env{
		logger: logger,
		client: client,
		cache:  cache,
		close: func() {
			cache.Close()
			_ = closeLog()
		},
	}, nil
}

// Run boots the pokedex TUI until the user quits or the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	e, err := setup(ctx, opts, nil)
	if err != nil {
		return err
	}
	defer e.close()

	userPrefs, err := prefs.Load(opts.PrefsPath)
	if err != nil {
		e.logger.Warn("load prefs", "err", err)
	}

	e.logger.Info("starting tui", "theme", userPrefs.Theme)
	err = ui.Run(ui.Options{
		Context:      ctx,
		Cache:        e.cache,
		Client:       e.client,
		ThemeName:    userPrefs.Theme,
		PrefsPath:    opts.PrefsPath,
		DisableMouse: userPrefs.DisableMouse,
		Logger:       e.logger,
	})
	if err != nil && ctx.Err() != nil {
		// Interrupted by a signal.
		return nil
	}
	return err
}

// List fetches one page of the collection for search and writes it to w.
func List(ctx context.Context, opts Options, search string, w io.Writer) error {
	e, err := setup(ctx, opts, stderrIfNil(opts.LogOutput))
	if err != nil {
		return err
	}
	defer e.close()

	key := query.ListKey(search)
	r, err := e.cache.Await(ctx, key, func(ctx context.Context) (any, error) {
		return e.client.FetchList(ctx, search)
	})
	if err != nil {
		return fmt.Errorf("fetch list: %w", err)
	}
	list, ok := r.Data.(pokeapi.ListResult)
	if !ok {
		return fmt.Errorf("fetch list: unexpected result %T", r.Data)
	}
	e.logger.Debug("list fetched", "search", search, "count", len(list.Results))
	return writeList(w, list)
}

// Show fetches one Pokemon by name and writes its details to w.
func Show(ctx context.Context, opts Options, name string, w io.Writer) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errors.New("show: pokemon name required")
	}

	e, err := setup(ctx, opts, stderrIfNil(opts.LogOutput))
	if err != nil {
		return err
	}
	defer e.close()

	key := query.DetailKey(name)
	r, err := e.cache.Await(ctx, key, func(ctx context.Context) (any, error) {
		return e.client.FetchPokemon(ctx, name)
	})
	if err != nil {
		return fmt.Errorf("fetch %s: %w", name, err)
	}
	mon, ok := r.Data.(pokeapi.Pokemon)
	if !ok {
		return fmt.Errorf("fetch %s: unexpected result %T", name, r.Data)
	}
	return writeDetail(w, mon)
}

func stderrIfNil(w io.Writer) io.Writer {
	if w == nil {
		return os.Stderr
	}
	return w
}

// Logs prints the last n lines of the configured log file at or above level.
func Logs(opts Options, n int, level string, w io.Writer) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	minLevel, err := log.ParseLevel(strings.TrimSpace(level))
	if err != nil {
		return fmt.Errorf("parse level: %w", err)
	}
	lines, err := logtail.Read(cfg.LogFile, n, minLevel)
	if err != nil {
		return err
	}
	if len(lines) == 0 {
		_, err := fmt.Fprintf(w, "no log entries in %s\n", cfg.LogFile)
		return err
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
