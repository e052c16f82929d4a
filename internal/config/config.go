// Package config handles shadercheck configuration loading and management.
package config

import (
	"github.com/Faultbox/shaderkit/internal/engine/shader"
	"github.com/Faultbox/shaderkit/internal/engine/shader/manifest"
)

// Config holds all shadercheck settings.
type Config struct {
	Shaders  ShadersConfig      `yaml:"shaders"`
	Window   WindowConfig       `yaml:"window"`
	Logging  LoggingConfig      `yaml:"logging"`
	Programs []manifest.Program `yaml:"programs,omitempty"`
}

// ShadersConfig holds shader source lookup settings.
type ShadersConfig struct {
	BasePath       string `yaml:"base_path"`
	Suffix         string `yaml:"suffix"`
	IncludeKeyword string `yaml:"include_keyword"`
	CaptureMode    string `yaml:"capture_mode"` // default for programs that set none
	Validate       bool   `yaml:"validate"`
}

// WindowConfig holds the window and GL context settings.
type WindowConfig struct {
	Width   int  `yaml:"width"`
	Height  int  `yaml:"height"`
	GLMajor int  `yaml:"gl_major"`
	GLMinor int  `yaml:"gl_minor"`
	Hidden  bool `yaml:"hidden"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Shaders: ShadersConfig{
			BasePath:       shader.DefaultBasePath,
			Suffix:         shader.DefaultSuffix,
			IncludeKeyword: shader.DefaultIncludeKeyword,
			CaptureMode:    "separate",
		},
		Window: WindowConfig{
			Width:   640,
			Height:  480,
			GLMajor: 4,
			GLMinor: 3,
			Hidden:  true,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
