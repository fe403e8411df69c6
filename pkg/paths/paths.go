package paths

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/arthur-debert/slinky/pkg/errors"
)

// Environment variable names
const (
	EnvConfigDir = "SLINKY_CONFIG_DIR"
	EnvDataDir   = "SLINKY_DATA_DIR"
	EnvHome      = "HOME"
)

// Fixed names inside slinky's own directories. These are not user-configurable.
const (
	AppDirName     = "slinky"
	ConfigFileName = "config.toml"
	VaultFileName  = "secrets.vault"
	LogFileName    = "slinky.log"
)

// StowDirCandidates are tried, relative to home, when no stow dir is configured.
var StowDirCandidates = []string{
	".dotfiles",
	"dotfiles",
	".config/dotfiles",
	"code/dotfiles",
	"projects/dotfiles",
}

// HomeDir returns the user's home directory, preferring $HOME.
func HomeDir() string {
	if home := os.Getenv(EnvHome); home != "" {
		return home
	}
	if home, err := os.UserHomeDir(); err == nil {
		return home
	}
	return xdg.Home
}

// ConfigDir returns slinky's configuration directory.
func ConfigDir() string {
	if dir := os.Getenv(EnvConfigDir); dir != "" {
		return ExpandHome(dir)
	}
	return filepath.Join(xdg.ConfigHome, AppDirName)
}

// ConfigFilePath returns the default configuration file location.
func ConfigFilePath() string {
	return filepath.Join(ConfigDir(), ConfigFileName)
}

// DataDir returns slinky's data directory.
func DataDir() string {
	if dir := os.Getenv(EnvDataDir); dir != "" {
		return ExpandHome(dir)
	}
	return filepath.Join(xdg.DataHome, AppDirName)
}

// DefaultVaultPath is where the encrypted vault lives unless configured otherwise.
func DefaultVaultPath() string {
	return filepath.Join(DataDir(), VaultFileName)
}

// StateDir returns slinky's state directory.
// $XDG_STATE_HOME is read directly so tests can redirect it with t.Setenv.
func StateDir() string {
	if stateHome := os.Getenv("XDG_STATE_HOME"); stateHome != "" {
		return filepath.Join(stateHome, AppDirName)
	}
	return filepath.Join(HomeDir(), ".local", "state", AppDirName)
}

// LogFilePath returns the path of the persistent log file.
func LogFilePath() string {
	return filepath.Join(StateDir(), LogFileName)
}

// ExpandHome replaces a leading ~ with the home directory and expands
// environment variables.
func ExpandHome(path string) string {
	if path == "" {
		return path
	}
	path = os.ExpandEnv(path)
	if path == "~" {
		return HomeDir()
	}
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(HomeDir(), path[2:])
	}
	return path
}

// Normalize expands and cleans a path and makes it absolute.
func Normalize(path string) (string, error) {
	if path == "" {
		return "", errors.New(errors.ErrInvalidInput, "path cannot be empty")
	}
	abs, err := filepath.Abs(ExpandHome(path))
	if err != nil {
		return "", errors.Wrap(err, errors.ErrInvalidInput, "cannot make path absolute").
			WithDetail("path", path)
	}
	return abs, nil
}

// IsWithin reports whether path is root or lies below it. Both must be clean
// absolute paths.
func IsWithin(root, path string) bool {
	if path == root {
		return true
	}
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

// DetectStowDir checks the usual dotfiles locations under home. A candidate
// qualifies when it is a git checkout or holds at least one non-hidden
// subdirectory.
func DetectStowDir(home string) (string, bool) {
	for _, candidate := range StowDirCandidates {
		dir := filepath.Join(home, candidate)
		info, err := os.Stat(dir)
		if err != nil || !info.IsDir() {
			continue
		}
		if _, err := os.Stat(filepath.Join(dir, ".git")); err == nil {
			return dir, true
		}
		entries, err := os.ReadDir(dir)
		if err != nil {
			continue
		}
		for _, entry := range entries {
			if entry.IsDir() && !strings.HasPrefix(entry.Name(), ".") {
				return dir, true
			}
		}
	}
	return "", false
}
