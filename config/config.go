// Package config loads and saves the optional xasm65.toml configuration
// file (SPEc_FULL.md's AMBIENT STACK): default include paths, default CPU
// variant, default output format, listing display options, and the error
// ceiling. CLI flags always take priority over these values, and these
// values always take priority over the built-in defaults in
// DefaultConfig.
//
// Adapted from the teacher's config/config.go: same library
// (github.com/BurntSushi/toml), same DefaultConfig/LoadFrom/SaveTo shape
// and platform-specific config-path resolution, repurposed from emulator
// execution/debugger/trace settings to assembler build settings.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/BurntSushi/toml"

	"github.com/xasm65/xasm65/internal/diag"
)

// Config is the assembler's persisted configuration.
type Config struct {
	// Build settings.
	Build struct {
		DefaultCPU   string `toml:"default_cpu"`   // "6502", "6510", or "65c02"
		OutputFormat string `toml:"output_format"` // "prg" or "raw"
		MaxErrors    int    `toml:"max_errors"`
	} `toml:"build"`

	// Include holds default search paths consulted after -I and
	// ASM64_INCLUDE, in config-file order.
	Include struct {
		Paths []string `toml:"paths"`
	} `toml:"include"`

	// Listing controls the optional listing file's rendering.
	Listing struct {
		ShowCycles   bool   `toml:"show_cycles"`
		NumberFormat string `toml:"number_format"` // "hex" or "dec"
		BytesPerLine int    `toml:"bytes_per_line"`
	} `toml:"listing"`
}

// DefaultConfig returns a configuration with xasm65's built-in defaults.
func DefaultConfig() *Config {
	cfg := &Config{}

	cfg.Build.DefaultCPU = "6502"
	cfg.Build.OutputFormat = "prg"
	cfg.Build.MaxErrors = diag.MaxErrors

	cfg.Listing.ShowCycles = false
	cfg.Listing.NumberFormat = "hex"
	cfg.Listing.BytesPerLine = 4

	return cfg
}

// GetConfigPath returns the platform-specific config file path.
func GetConfigPath() string {
	var configDir string

	switch runtime.GOOS {
	case "windows":
		// Windows: %APPDATA%\xasm65\xasm65.toml
		configDir = os.Getenv("APPDATA")
		if configDir == "" {
			configDir = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
		configDir = filepath.Join(configDir, "xasm65")

	case "darwin", "linux":
		// macOS/Linux: ~/.config/xasm65/xasm65.toml
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "xasm65.toml"
		}
		configDir = filepath.Join(homeDir, ".config", "xasm65")

	default:
		return "xasm65.toml"
	}

	if err := os.MkdirAll(configDir, 0750); err != nil {
		return "xasm65.toml"
	}

	return filepath.Join(configDir, "xasm65.toml")
}

// Load loads configuration from the default config file.
func Load() (*Config, error) {
	return LoadFrom(GetConfigPath())
}

// LoadFrom loads configuration from the specified file. A missing file is
// not an error: it yields the built-in defaults.
func LoadFrom(path string) (*Config, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return cfg, nil
}

// Save saves configuration to the default config file.
func (c *Config) Save() error {
	return c.SaveTo(GetConfigPath())
}

// SaveTo saves configuration to the specified file.
func (c *Config) SaveTo(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	f, err := os.Create(path) // #nosec G304 -- user config file path
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer f.Close()

	encoder := toml.NewEncoder(f)
	if err := encoder.Encode(c); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	return nil
}
