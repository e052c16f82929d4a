package shader

import (
	"github.com/Faultbox/shaderkit/internal/engine/gpu"
	"github.com/Faultbox/shaderkit/pkg/math"
)

// UniformValue lists the value types a Uniform can hold.
type UniformValue interface {
	bool | int32 | uint32 | float32 | math.Vec2 | math.Vec3 | math.Vec4 | math.Mat4
}

// uniformBase is a located default-block uniform.
type uniformBase struct {
	api      gpu.API
	program  uint32
	name     string
	location int32
}

func locateUniform(api gpu.API, program uint32, name string) uniformBase {
	return uniformBase{
		api:      api,
		program:  program,
		name:     name,
		location: api.UniformLocation(program, name),
	}
}

// Name returns the uniform name.
func (u *uniformBase) Name() string { return u.name }

// Active reports whether the program uses the uniform.
func (u *uniformBase) Active() bool { return u.location >= 0 }

// Location returns the uniform location, -1 if inactive.
func (u *uniformBase) Location() int32 { return u.location }

// Uniform is a scalar, vector or matrix uniform. Set writes through
// glProgramUniform*, so the program does not need to be in use.
type Uniform[T UniformValue] struct {
	uniformBase
	value T
}

func newUniform[T UniformValue](api gpu.API, program uint32, slot Slot) (Accessor, error) {
	return &Uniform[T]{uniformBase: locateUniform(api, program, slot.Name)}, nil
}

// Value returns the last value passed to Set.
func (u *Uniform[T]) Value() T { return u.value }

// Set stores v and uploads it. Inactive uniforms only store the value.
func (u *Uniform[T]) Set(v T) {
	u.value = v
	if u.location < 0 {
		return
	}

	switch x := any(v).(type) {
	case bool:
		var i int32
		if x {
			i = 1
		}
		u.api.ProgramUniform1i(u.program, u.location, i)
	case int32:
		u.api.ProgramUniform1i(u.program, u.location, x)
	case uint32:
		u.api.ProgramUniform1ui(u.program, u.location, x)
	case float32:
		u.api.ProgramUniform1f(u.program, u.location, x)
	case math.Vec2:
		u.api.ProgramUniform2f(u.program, u.location, x.X, x.Y)
	case math.Vec3:
		u.api.ProgramUniform3f(u.program, u.location, x.X, x.Y, x.Z)
	case math.Vec4:
		u.api.ProgramUniform4f(u.program, u.location, x.X, x.Y, x.Z, x.W)
	case math.Mat4:
		m := [16]float32(x)
		u.api.ProgramUniformMatrix4f(u.program, u.location, &m)
	}
}

// TextureUniform is a sampler uniform.
type TextureUniform struct {
	uniformBase
	unit uint32
}

func newTextureUniform(api gpu.API, program uint32, slot Slot) (Accessor, error) {
	return &TextureUniform{uniformBase: locateUniform(api, program, slot.Name)}, nil
}

// Bind binds texture to the texture unit and points the sampler at it.
func (u *TextureUniform) Bind(unit uint32, target gpu.TextureTarget, texture uint32) {
	u.api.ActiveTexture(unit)
	u.api.BindTexture(target, texture)
	u.unit = unit
	if u.location >= 0 {
		u.api.ProgramUniform1i(u.program, u.location, int32(unit))
	}
}

// Unit returns the texture unit of the last Bind.
func (u *TextureUniform) Unit() uint32 { return u.unit }

// ImageUniform is an image load/store uniform.
type ImageUniform struct {
	uniformBase
	unit uint32
}

func newImageUniform(api gpu.API, program uint32, slot Slot) (Accessor, error) {
	return &ImageUniform{uniformBase: locateUniform(api, program, slot.Name)}, nil
}

// Bind binds a whole texture level to the image unit and points the
// uniform at it.
func (u *ImageUniform) Bind(unit, texture uint32, level int32, access gpu.Access, format gpu.ImageFormat) {
	u.bind(unit, texture, level, true, 0, access, format)
}

// BindLayer binds a single layer of an array, cube or 3D texture level.
func (u *ImageUniform) BindLayer(unit, texture uint32, level, layer int32, access gpu.Access, format gpu.ImageFormat) {
	u.bind(unit, texture, level, false, layer, access, format)
}

func (u *ImageUniform) bind(unit, texture uint32, level int32, layered bool, layer int32, access gpu.Access, format gpu.ImageFormat) {
	u.api.BindImageTexture(unit, texture, level, layered, layer, access, format)
	u.unit = unit
	if u.location >= 0 {
		u.api.ProgramUniform1i(u.program, u.location, int32(unit))
	}
}

// Unit returns the image unit of the last Bind.
func (u *ImageUniform) Unit() uint32 { return u.unit }
