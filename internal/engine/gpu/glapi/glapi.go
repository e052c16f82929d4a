// Package glapi implements gpu.API on top of OpenGL 4.3 core via go-gl.
package glapi

import (
	"fmt"
	"strings"

	"github.com/go-gl/gl/v4.3-core/gl"

	"github.com/Faultbox/shaderkit/internal/engine/gpu"
)

// API issues OpenGL calls against the context current on the calling thread.
type API struct{}

var _ gpu.API = API{}

// Init loads the OpenGL function pointers and returns the driver version
// and renderer strings.
// IMPORTANT: must be called AFTER the OpenGL context is created.
func Init() (version, renderer string, err error) {
	if err := gl.Init(); err != nil {
		return "", "", fmt.Errorf("failed to initialize OpenGL: %w", err)
	}
	return gl.GoStr(gl.GetString(gl.VERSION)), gl.GoStr(gl.GetString(gl.RENDERER)), nil
}

func cstr(s string) (*uint8, func()) {
	if !strings.HasSuffix(s, "\x00") {
		s += "\x00"
	}
	strs, free := gl.Strs(s)
	return *strs, free
}

func (API) CreateProgram() uint32        { return gl.CreateProgram() }
func (API) DeleteProgram(program uint32) { gl.DeleteProgram(program) }
func (API) UseProgram(program uint32)    { gl.UseProgram(program) }
func (API) LinkProgram(program uint32)   { gl.LinkProgram(program) }

func (API) LinkStatus(program uint32) bool {
	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	return status != gl.FALSE
}

func (API) ValidateProgram(program uint32) { gl.ValidateProgram(program) }

func (API) ValidateStatus(program uint32) bool {
	var status int32
	gl.GetProgramiv(program, gl.VALIDATE_STATUS, &status)
	return status != gl.FALSE
}

func (API) ProgramInfoLog(program uint32) string {
	var logLen int32
	gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLen)
	if logLen <= 1 {
		return ""
	}
	log := make([]byte, logLen)
	gl.GetProgramInfoLog(program, logLen, nil, &log[0])
	return strings.TrimRight(string(log), "\x00")
}

func (API) TransformFeedbackVaryings(program uint32, names []string, mode gpu.CaptureMode) {
	terminated := make([]string, len(names))
	for i, n := range names {
		terminated[i] = n + "\x00"
	}
	varyings, free := gl.Strs(terminated...)
	defer free()
	gl.TransformFeedbackVaryings(program, int32(len(names)), varyings, captureMode(mode))
}

func (API) CreateShader(stage gpu.Stage) uint32 { return gl.CreateShader(shaderType(stage)) }

func (API) ShaderSource(shader uint32, source string) {
	csource, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csource, nil)
	free()
}

func (API) CompileShader(shader uint32) { gl.CompileShader(shader) }

func (API) CompileStatus(shader uint32) bool {
	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	return status != gl.FALSE
}

func (API) ShaderInfoLog(shader uint32) string {
	var logLen int32
	gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLen)
	if logLen <= 1 {
		return ""
	}
	log := make([]byte, logLen)
	gl.GetShaderInfoLog(shader, logLen, nil, &log[0])
	return strings.TrimRight(string(log), "\x00")
}

func (API) AttachShader(program, shader uint32) { gl.AttachShader(program, shader) }
func (API) DeleteShader(shader uint32)          { gl.DeleteShader(shader) }

func (API) AttribLocation(program uint32, name string) int32 {
	s, free := cstr(name)
	defer free()
	return gl.GetAttribLocation(program, s)
}

func (API) UniformLocation(program uint32, name string) int32 {
	s, free := cstr(name)
	defer free()
	return gl.GetUniformLocation(program, s)
}

func (API) FragDataLocation(program uint32, name string) int32 {
	s, free := cstr(name)
	defer free()
	return gl.GetFragDataLocation(program, s)
}

func (API) UniformBlockIndex(program uint32, name string) uint32 {
	s, free := cstr(name)
	defer free()
	return gl.GetUniformBlockIndex(program, s)
}

func (API) StorageBlockIndex(program uint32, name string) uint32 {
	s, free := cstr(name)
	defer free()
	return gl.GetProgramResourceIndex(program, gl.SHADER_STORAGE_BLOCK, s)
}

func (API) UniformBlockBinding(program, block, binding uint32) {
	gl.UniformBlockBinding(program, block, binding)
}

func (API) StorageBlockBinding(program, block, binding uint32) {
	gl.ShaderStorageBlockBinding(program, block, binding)
}

func (API) ProgramUniform1i(program uint32, location int32, v int32) {
	gl.ProgramUniform1i(program, location, v)
}

func (API) ProgramUniform1ui(program uint32, location int32, v uint32) {
	gl.ProgramUniform1ui(program, location, v)
}

func (API) ProgramUniform1f(program uint32, location int32, v float32) {
	gl.ProgramUniform1f(program, location, v)
}

func (API) ProgramUniform2f(program uint32, location int32, x, y float32) {
	gl.ProgramUniform2f(program, location, x, y)
}

func (API) ProgramUniform3f(program uint32, location int32, x, y, z float32) {
	gl.ProgramUniform3f(program, location, x, y, z)
}

func (API) ProgramUniform4f(program uint32, location int32, x, y, z, w float32) {
	gl.ProgramUniform4f(program, location, x, y, z, w)
}

func (API) ProgramUniformMatrix4f(program uint32, location int32, m *[16]float32) {
	gl.ProgramUniformMatrix4fv(program, location, 1, false, &m[0])
}

func (API) BindBuffer(target gpu.BufferTarget, buffer uint32) {
	gl.BindBuffer(bufferTarget(target), buffer)
}

func (API) BindBufferBase(target gpu.BufferTarget, index, buffer uint32) {
	gl.BindBufferBase(bufferTarget(target), index, buffer)
}

func (API) BindBufferRange(target gpu.BufferTarget, index, buffer uint32, offset, size int) {
	gl.BindBufferRange(bufferTarget(target), index, buffer, offset, size)
}

func (API) EnableVertexAttribArray(index uint32)  { gl.EnableVertexAttribArray(index) }
func (API) DisableVertexAttribArray(index uint32) { gl.DisableVertexAttribArray(index) }

func (API) VertexAttribPointer(index uint32, components int32, dataType gpu.DataType, normalized bool, stride int32, offset uintptr) {
	switch dataType {
	case gpu.Int, gpu.UnsignedInt, gpu.Short, gpu.UnsignedShort, gpu.Byte, gpu.UnsignedByte:
		if !normalized {
			gl.VertexAttribIPointerWithOffset(index, components, glDataType(dataType), stride, offset)
			return
		}
	}
	gl.VertexAttribPointerWithOffset(index, components, glDataType(dataType), normalized, stride, offset)
}

func (API) VertexAttribDivisor(index, divisor uint32) { gl.VertexAttribDivisor(index, divisor) }

func (API) ActiveTexture(unit uint32) { gl.ActiveTexture(gl.TEXTURE0 + unit) }

func (API) BindTexture(target gpu.TextureTarget, texture uint32) {
	gl.BindTexture(textureTarget(target), texture)
}

func (API) BindImageTexture(unit, texture uint32, level int32, layered bool, layer int32, access gpu.Access, format gpu.ImageFormat) {
	gl.BindImageTexture(unit, texture, level, layered, layer, imageAccess(access), imageFormat(format))
}

func (API) GenTransformFeedback() uint32 {
	var id uint32
	gl.GenTransformFeedbacks(1, &id)
	return id
}

func (API) DeleteTransformFeedback(id uint32) { gl.DeleteTransformFeedbacks(1, &id) }

func (API) BindTransformFeedback(id uint32) { gl.BindTransformFeedback(gl.TRANSFORM_FEEDBACK, id) }

func (API) CurrentTransformFeedback() uint32 {
	var id int32
	gl.GetIntegerv(gl.TRANSFORM_FEEDBACK_BINDING, &id)
	return uint32(id)
}

func (API) BeginTransformFeedback(primitive gpu.Primitive) {
	gl.BeginTransformFeedback(primitiveMode(primitive))
}

func (API) EndTransformFeedback()    { gl.EndTransformFeedback() }
func (API) PauseTransformFeedback()  { gl.PauseTransformFeedback() }
func (API) ResumeTransformFeedback() { gl.ResumeTransformFeedback() }
