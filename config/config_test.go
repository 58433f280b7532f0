package config

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Build.DefaultCPU != "6502" {
		t.Errorf("Expected DefaultCPU=6502, got %s", cfg.Build.DefaultCPU)
	}
	if cfg.Build.OutputFormat != "prg" {
		t.Errorf("Expected OutputFormat=prg, got %s", cfg.Build.OutputFormat)
	}
	if cfg.Build.MaxErrors != 200 {
		t.Errorf("Expected MaxErrors=200, got %d", cfg.Build.MaxErrors)
	}
	if cfg.Listing.NumberFormat != "hex" {
		t.Errorf("Expected NumberFormat=hex, got %s", cfg.Listing.NumberFormat)
	}
	if cfg.Listing.BytesPerLine != 4 {
		t.Errorf("Expected BytesPerLine=4, got %d", cfg.Listing.BytesPerLine)
	}
	if cfg.Listing.ShowCycles {
		t.Error("Expected ShowCycles=false by default")
	}
}

func TestGetConfigPath(t *testing.T) {
	path := GetConfigPath()

	if path == "" {
		t.Error("GetConfigPath returned empty string")
	}
	if filepath.Base(path) != "xasm65.toml" {
		t.Errorf("Expected path to end with xasm65.toml, got %s", path)
	}

	switch runtime.GOOS {
	case "windows":
		if !filepath.IsAbs(path) && path != "xasm65.toml" {
			t.Errorf("Expected absolute path on Windows, got %s", path)
		}
	case "darwin", "linux":
		dir := filepath.Dir(path)
		if filepath.Base(dir) != "xasm65" && path != "xasm65.toml" {
			t.Errorf("Expected path in xasm65 directory or fallback, got %s", path)
		}
	}
}

func TestSaveAndLoad(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "test_config.toml")

	cfg := DefaultConfig()
	cfg.Build.DefaultCPU = "65c02"
	cfg.Build.OutputFormat = "raw"
	cfg.Build.MaxErrors = 50
	cfg.Include.Paths = []string{"lib", "include"}
	cfg.Listing.ShowCycles = true

	if err := cfg.SaveTo(configPath); err != nil {
		t.Fatalf("Failed to save config: %v", err)
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		t.Fatal("Config file was not created")
	}

	loaded, err := LoadFrom(configPath)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if loaded.Build.DefaultCPU != "65c02" {
		t.Errorf("Expected DefaultCPU=65c02, got %s", loaded.Build.DefaultCPU)
	}
	if loaded.Build.OutputFormat != "raw" {
		t.Errorf("Expected OutputFormat=raw, got %s", loaded.Build.OutputFormat)
	}
	if loaded.Build.MaxErrors != 50 {
		t.Errorf("Expected MaxErrors=50, got %d", loaded.Build.MaxErrors)
	}
	if len(loaded.Include.Paths) != 2 || loaded.Include.Paths[0] != "lib" {
		t.Errorf("Expected Include.Paths=[lib include], got %v", loaded.Include.Paths)
	}
	if !loaded.Listing.ShowCycles {
		t.Error("Expected ShowCycles=true")
	}
}

func TestLoadNonExistent(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "nonexistent.toml")

	cfg, err := LoadFrom(configPath)
	if err != nil {
		t.Fatalf("LoadFrom should not error on non-existent file: %v", err)
	}
	if cfg.Build.DefaultCPU != "6502" {
		t.Error("Expected default config when file doesn't exist")
	}
}

func TestLoadInvalidTOML(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "invalid.toml")

	invalidTOML := `
[build]
max_errors = "not a number"  # Invalid: should be an int
`
	if err := os.WriteFile(configPath, []byte(invalidTOML), 0644); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}

	if _, err := LoadFrom(configPath); err == nil {
		t.Error("Expected error when loading invalid TOML")
	}
}

func TestSaveCreatesDirectory(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "subdir1", "subdir2", "config.toml")

	cfg := DefaultConfig()
	if err := cfg.SaveTo(configPath); err != nil {
		t.Fatalf("Failed to save config: %v", err)
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		t.Error("Config file was not created")
	}

	dir := filepath.Dir(configPath)
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		t.Error("Parent directories were not created")
	}
}
