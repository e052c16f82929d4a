// Package main is the entry point for shadercheck, which resolves, compiles
// and links the configured shader programs against a real OpenGL context.
package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/Faultbox/shaderkit/internal/config"
	"github.com/Faultbox/shaderkit/internal/engine/gpu/glapi"
	"github.com/Faultbox/shaderkit/internal/engine/shader"
	"github.com/Faultbox/shaderkit/internal/engine/window"
	"github.com/Faultbox/shaderkit/internal/logger"
)

func main() {
	os.Exit(run())
}

func run() int {
	// Parse CLI flags first
	config.ParseFlags()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		return 1
	}

	// Initialize logger
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		return 1
	}
	defer logger.Sync()

	logger.Sugar.Debugf("Config: %+v", cfg)

	resolver := cfg.Resolver()

	// Preprocess mode needs no GL context
	if name := config.Preprocess(); name != "" {
		if err := preprocess(os.Stdout, resolver, name); err != nil {
			logger.Error("preprocess failed", zap.String("file", name), zap.Error(err))
			return 1
		}
		return 0
	}

	decls, err := cfg.Declarations(config.Program())
	if err != nil {
		logger.Error("invalid program configuration", zap.Error(err))
		return 1
	}
	if len(decls) == 0 {
		logger.Warn("no programs configured")
		return 0
	}

	win, err := window.New(window.Config{
		Title:   "shadercheck",
		Width:   cfg.Window.Width,
		Height:  cfg.Window.Height,
		GLMajor: cfg.Window.GLMajor,
		GLMinor: cfg.Window.GLMinor,
		Hidden:  cfg.Window.Hidden,
		Debug:   cfg.Logging.Level == "debug",
	})
	if err != nil {
		logger.Error("failed to create window", zap.Error(err))
		return 1
	}
	defer win.Close()

	version, renderer, err := glapi.Init()
	if err != nil {
		logger.Error("failed to initialize OpenGL", zap.Error(err))
		return 1
	}
	logger.Info("OpenGL initialized", zap.String("version", version), zap.String("renderer", renderer))

	builder := shader.NewBuilder(glapi.API{},
		shader.WithResolver(resolver),
		shader.WithValidation(cfg.Shaders.Validate),
	)

	if failed := check(builder, decls); failed > 0 {
		logger.Error("shader check failed", zap.Int("failed", failed), zap.Int("programs", len(decls)))
		return 1
	}
	logger.Info("all programs built", zap.Int("programs", len(decls)))
	return 0
}
