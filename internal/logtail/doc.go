// Package logtail reads the end of the pokedex log file.
//
// The TUI owns the terminal, so its logs go to a file. Read returns the
// last lines of that file, optionally dropping entries below a level, and
// backs the "pokedex logs" command.
//
// Levels are recognized by the short tags the charmbracelet/log text
// formatter writes (DEBU, INFO, WARN, ERRO, FATA). Lines without a tag,
// such as stack traces, are always kept.
package logtail
