// Package ui provides the terminal front end for pokedex.
//
// # Architecture Overview
//
// The UI is a single Bubble Tea program. Model is the root composer: it
// owns the search term and the selected Pokemon and passes them to two
// views that read from a shared query.Cache handed in through Options.
//
//   - listView: queries the collection for the current search term and
//     renders the names, a loading line or an error line.
//   - detailView: queries a single Pokemon once one is selected. With no
//     selection the query is disabled and nothing is rendered.
//
// # Data Flow
//
// Views never fetch directly. On every change of search term or selection
// the model calls Cache.Query for the current keys. A pending entry gets
// an awaitCmd that blocks on Cache.Done and yields a settledMsg; the model
// then reads the current keys again. A completion for a key the user has
// moved away from lands in the cache but is not displayed.
//
// The search term changes on every keystroke, so typing "pika" creates
// entries for "p", "pi", "pik" and "pika".
//
// # Keys
//
//   - tab or /: focus the search input; esc, enter or tab leave it
//   - j/k, arrows, g/G: move the list cursor
//   - enter or left click: select the Pokemon under the cursor
//   - r: invalidate and refetch the visible queries
//   - T: cycle theme (saved to prefs)
//   - ?: help overlay
//   - q, esc, ctrl+c: quit
//
// # Themes
//
// Nightfox (default), Kanagawa and Slate. See theme.go.
package ui
