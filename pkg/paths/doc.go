// Package paths provides centralized path handling for slinky.
//
// It implements the XDG Base Directory specification for slinky's own files
// (configuration, the secrets vault, the log file) and the path helpers the
// rest of the codebase shares: home expansion and stow directory detection.
//
// # Environment Variables
//
//   - SLINKY_CONFIG_DIR: Override the config directory (default: $XDG_CONFIG_HOME/slinky)
//   - SLINKY_DATA_DIR: Override the data directory (default: $XDG_DATA_HOME/slinky)
//   - XDG_STATE_HOME: Base for the log file (default: ~/.local/state)
//
// # Layout
//
//   - Config: $XDG_CONFIG_HOME/slinky/config.toml
//   - Vault:  $XDG_DATA_HOME/slinky/secrets.vault
//   - Log:    $XDG_STATE_HOME/slinky/slinky.log
package paths
