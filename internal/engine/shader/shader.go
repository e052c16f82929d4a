// Package shader builds GPU shader programs from source files and binds
// their attributes, uniforms, blocks and outputs to typed accessors.
//
// A program type is described once by a Declaration. A Builder resolves the
// declared sources, compiles and links them, registers transform feedback
// outputs before linking and, after linking, runs every other slot through
// a Registry to create its accessor.
//
// Everything here must run on the thread owning the graphics context.
package shader

import (
	"github.com/Faultbox/shaderkit/internal/engine/gpu"
)

// compileStage compiles one stage unit. On failure the unit is deleted and
// the compiler log returned.
func compileStage(api gpu.API, stage gpu.Stage, source string) (uint32, string, bool) {
	unit := api.CreateShader(stage)
	api.ShaderSource(unit, source)
	api.CompileShader(unit)

	if !api.CompileStatus(unit) {
		log := api.ShaderInfoLog(unit)
		api.DeleteShader(unit)
		return 0, log, false
	}
	return unit, "", true
}

// linkProgram links program and deletes the stage units whatever the outcome.
func linkProgram(api gpu.API, program uint32, units []uint32) (string, bool) {
	api.LinkProgram(program)
	for _, unit := range units {
		api.DeleteShader(unit)
	}

	if !api.LinkStatus(program) {
		return api.ProgramInfoLog(program), false
	}
	return "", true
}
