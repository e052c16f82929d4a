package config

import (
	"fmt"

	"github.com/Faultbox/shaderkit/internal/engine/shader"
	"github.com/Faultbox/shaderkit/internal/engine/shader/manifest"
)

// Resolver returns a source resolver for the configured shader tree.
func (c *Config) Resolver() *shader.Resolver {
	return shader.DirResolver(c.Shaders.BasePath,
		shader.WithSuffix(c.Shaders.Suffix),
		shader.WithIncludeKeyword(c.Shaders.IncludeKeyword),
	)
}

// Declarations converts the configured programs. When only is non-empty,
// just that program is returned. Programs without a capture mode inherit
// shaders.capture_mode.
func (c *Config) Declarations(only string) ([]*shader.Declaration, error) {
	programs := c.Programs
	if only != "" {
		p, ok := manifest.Find(c.Programs, only)
		if !ok {
			return nil, fmt.Errorf("program %q is not configured", only)
		}
		programs = []manifest.Program{p}
	}

	decls := make([]*shader.Declaration, 0, len(programs))
	for _, p := range programs {
		if p.Capture == "" {
			p.Capture = c.Shaders.CaptureMode
		}
		decl, err := p.Declaration()
		if err != nil {
			return nil, err
		}
		decls = append(decls, decl)
	}
	return decls, nil
}
