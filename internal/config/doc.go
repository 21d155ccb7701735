// Package config handles loading the pokedex configuration file.
//
// # Configuration Discovery
//
// The Load function follows this resolution order:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/pokedex/config.toml (default)
//  3. If the config file doesn't exist, fall back to hardcoded defaults
//  4. If the file exists but fields are missing/empty, use defaults
//
// # Default Values
//
//   - Config file: ~/.config/pokedex/config.toml
//   - API base URL: https://pokeapi.co/api/v2
//   - Log file: ~/.local/state/pokedex/pokedex.log
//   - Log level: info
//
// # TOML Format
//
//	base_url = "https://pokeapi.co/api/v2"
//	log_file = "~/.local/state/pokedex/pokedex.log"
//	log_level = "debug"
//
// All fields are optional. Tilde expansion is performed for log_file.
//
// # Error Handling
//
// Load returns errors for:
//   - Path expansion failures (e.g., cannot determine home directory)
//   - File read errors (except os.ErrNotExist, which triggers defaults)
//   - TOML parse errors
//
// Command-line flags override file values; that merge happens in the
// caller, not here.
package config
