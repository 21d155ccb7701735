// Package app provides the orchestration layer for pokedex.
//
// # Overview
//
// This package is the composition root. It loads configuration and
// preferences, builds the logger, the PokeAPI client and the query cache,
// and hands them to the UI or to one of the one-shot commands.
//
// # Entry Points
//
//   - Run: starts the TUI and blocks until the user quits or the context
//     is cancelled. Logs go to the configured log file because the TUI
//     owns the terminal.
//   - List: fetches one page of the collection and prints it as a table.
//   - Show: fetches one Pokemon and prints height, weight and sprites.
//   - Logs: prints the tail of the TUI log file, filtered by level.
//
// List and Show go through query.Cache.Await so they share the fetch and
// error semantics of the TUI. They log to stderr unless Options.LogOutput
// says otherwise.
//
// # Data Flow
//
//	┌──────────────┐
//	│   setup()    │
//	└──────┬───────┘
//	       ├─────> config.Load()        Read config.toml
//	       ├─────> openLogFile()        TUI log sink (io.Discard on failure)
//	       ├─────> pokeapi.NewClient()  HTTP client for base_url
//	       └─────> query.New()          Shared cache, closed on return
//
//	Run  ──> prefs.Load() ──> ui.Run()
//	List ──> cache.Await(ListKey)   ──> table
//	Show ──> cache.Await(DetailKey) ──> table
//
// # Error Handling
//
// Setup failures (bad config, invalid base URL) are returned wrapped with
// the failing step. A prefs file that cannot be read is logged and the
// defaults are used. Fetch errors from List and Show keep the underlying
// *pokeapi.NetworkError reachable through errors.As.
package app
