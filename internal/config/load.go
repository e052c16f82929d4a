package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"

	"github.com/Faultbox/shaderkit/internal/engine/gpu"
)

// FileName is the config file name searched for in the working directory
// and the config directory.
const FileName = "shadercheck.yaml"

// Load loads configuration with priority: defaults < file < flags.
func Load() (*Config, error) {
	// Start with defaults
	cfg := Default()

	// Try to load from file (explicit path takes priority)
	configPath := ConfigPath()
	if configPath == "" {
		configPath = findConfigFile()
	}

	if configPath != "" {
		if err := loadFromFile(cfg, configPath); err != nil {
			return nil, fmt.Errorf("loading config from %s: %w", configPath, err)
		}
	}

	// Apply CLI flags (highest priority)
	applyFlags(cfg)

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// findConfigFile looks for config in standard locations.
func findConfigFile() string {
	candidates := []string{
		"./" + FileName,
		filepath.Join(ConfigDir(), FileName),
	}

	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// ConfigDir returns the OS-appropriate config directory.
func ConfigDir() string {
	switch runtime.GOOS {
	case "darwin":
		home, _ := os.UserHomeDir()
		return filepath.Join(home, "Library", "Application Support", "ShaderKit")
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "ShaderKit")
	default: // Linux and others
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, "shaderkit")
		}
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "shaderkit")
	}
}

// loadFromFile loads config from a YAML file, merging with existing values.
func loadFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

func (c *Config) validate() error {
	if _, err := gpu.ParseCaptureMode(c.Shaders.CaptureMode); err != nil {
		return fmt.Errorf("shaders.capture_mode: %w", err)
	}
	if c.Shaders.IncludeKeyword == "" {
		return fmt.Errorf("shaders.include_keyword must not be empty")
	}
	if c.Window.GLMajor < 4 || (c.Window.GLMajor == 4 && c.Window.GLMinor < 3) {
		return fmt.Errorf("window: OpenGL %d.%d is too old, 4.3 is required", c.Window.GLMajor, c.Window.GLMinor)
	}
	return nil
}
