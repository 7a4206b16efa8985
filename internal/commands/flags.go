package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/colonyops/toasty/internal/core/config"
)

type Flags struct {
	LogLevel     string
	LogFile      string
	ConfigPath   string
	ProfilerPort int

	// Config is loaded in the Before hook and available to all commands.
	// When loading fails it holds the defaults and ConfigErr is set.
	Config    *config.Config
	ConfigErr error
}

// RequireConfig returns the loaded config, or the load error for commands
// that cannot run on defaults.
func (f *Flags) RequireConfig() (*config.Config, error) {
	if f.ConfigErr != nil {
		return nil, fmt.Errorf("load config: %w", f.ConfigErr)
	}
	if f.Config == nil {
		cfg := config.DefaultConfig()
		return &cfg, nil
	}
	return f.Config, nil
}

// DefaultConfigPath returns the default config file path using XDG_CONFIG_HOME.
func DefaultConfigPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, _ := os.UserHomeDir()
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "toasty", "config.yaml")
}

// DefaultLogFile returns the default log file path using the system's state directory.
// On macOS: ~/Library/Logs/toasty/toasty.log
// On Linux: $XDG_STATE_HOME/toasty/toasty.log (defaults to ~/.local/state/toasty/toasty.log)
func DefaultLogFile() string {
	stateHome := os.Getenv("XDG_STATE_HOME")
	if stateHome != "" {
		return filepath.Join(stateHome, "toasty", "toasty.log")
	}

	home, _ := os.UserHomeDir()

	if runtime.GOOS == "darwin" {
		return filepath.Join(home, "Library", "Logs", "toasty", "toasty.log")
	}

	return filepath.Join(home, ".local", "state", "toasty", "toasty.log")
}
