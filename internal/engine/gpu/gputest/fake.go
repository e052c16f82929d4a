// Package gputest provides a recording gpu.API for tests that run without a
// graphics context.
package gputest

import (
	"fmt"
	"strings"

	"github.com/Faultbox/shaderkit/internal/engine/gpu"
)

// Call is one recorded API invocation.
type Call struct {
	Name string
	Args []any
}

func (c Call) String() string {
	parts := make([]string, len(c.Args))
	for i, a := range c.Args {
		parts[i] = fmt.Sprint(a)
	}
	return c.Name + "(" + strings.Join(parts, ", ") + ")"
}

// API is a fake graphics API. Handles are allocated from one counter so
// programs, stage units and feedback objects never collide.
//
// Resources named in Attribs, Uniforms, FragData, UniformBlocks and
// StorageBlocks are reported as active; everything else is inactive.
type API struct {
	Calls []Call

	// FailCompile makes compilation fail for any source containing the key;
	// the value is returned as the info log.
	FailCompile map[string]string
	// LinkLog, when non-empty, makes every link fail with this log.
	LinkLog string
	// ValidateLog, when non-empty, makes validation fail with this log.
	ValidateLog string

	Attribs       map[string]int32
	Uniforms      map[string]int32
	FragData      map[string]int32
	UniformBlocks map[string]uint32
	StorageBlocks map[string]uint32

	// Sources holds the text passed to ShaderSource, by shader handle.
	Sources map[uint32]string
	// Varyings holds the names registered by TransformFeedbackVaryings.
	Varyings []string
	Mode     gpu.CaptureMode

	next     uint32
	failed   map[uint32]string
	linkOK   map[uint32]bool
	boundTF  uint32
	deleted  map[uint32]bool
	attached map[uint32][]uint32
}

// New returns an empty fake.
func New() *API {
	return &API{
		FailCompile:   map[string]string{},
		Attribs:       map[string]int32{},
		Uniforms:      map[string]int32{},
		FragData:      map[string]int32{},
		UniformBlocks: map[string]uint32{},
		StorageBlocks: map[string]uint32{},
		Sources:       map[uint32]string{},
		failed:        map[uint32]string{},
		linkOK:        map[uint32]bool{},
		deleted:       map[uint32]bool{},
		attached:      map[uint32][]uint32{},
	}
}

var _ gpu.API = (*API)(nil)

func (f *API) record(name string, args ...any) {
	f.Calls = append(f.Calls, Call{Name: name, Args: args})
}

func (f *API) alloc() uint32 {
	f.next++
	return f.next
}

// Count returns how many times the named call was made.
func (f *API) Count(name string) int {
	n := 0
	for _, c := range f.Calls {
		if c.Name == name {
			n++
		}
	}
	return n
}

// Index returns the position of the first call with the given name, or -1.
func (f *API) Index(name string) int {
	for i, c := range f.Calls {
		if c.Name == name {
			return i
		}
	}
	return -1
}

// Last returns the most recent call with the given name.
func (f *API) Last(name string) (Call, bool) {
	for i := len(f.Calls) - 1; i >= 0; i-- {
		if f.Calls[i].Name == name {
			return f.Calls[i], true
		}
	}
	return Call{}, false
}

// Deleted reports whether a program, shader or feedback handle was deleted.
func (f *API) Deleted(handle uint32) bool {
	return f.deleted[handle]
}

// Attached returns the shader handles attached to a program.
func (f *API) Attached(program uint32) []uint32 {
	return f.attached[program]
}

func (f *API) CreateProgram() uint32 {
	h := f.alloc()
	f.record("CreateProgram", h)
	return h
}

func (f *API) DeleteProgram(program uint32) {
	f.deleted[program] = true
	f.record("DeleteProgram", program)
}

func (f *API) UseProgram(program uint32) { f.record("UseProgram", program) }

func (f *API) LinkProgram(program uint32) {
	f.linkOK[program] = f.LinkLog == ""
	f.record("LinkProgram", program)
}

func (f *API) LinkStatus(program uint32) bool { return f.linkOK[program] }

func (f *API) ValidateProgram(program uint32) { f.record("ValidateProgram", program) }

func (f *API) ValidateStatus(program uint32) bool { return f.ValidateLog == "" }

func (f *API) ProgramInfoLog(program uint32) string {
	if !f.linkOK[program] {
		return f.LinkLog
	}
	return f.ValidateLog
}

func (f *API) TransformFeedbackVaryings(program uint32, names []string, mode gpu.CaptureMode) {
	f.Varyings = append([]string(nil), names...)
	f.Mode = mode
	f.record("TransformFeedbackVaryings", program, strings.Join(names, ","), mode)
}

func (f *API) CreateShader(stage gpu.Stage) uint32 {
	h := f.alloc()
	f.record("CreateShader", stage, h)
	return h
}

func (f *API) ShaderSource(shader uint32, source string) {
	f.Sources[shader] = source
	for key, log := range f.FailCompile {
		if strings.Contains(source, key) {
			f.failed[shader] = log
		}
	}
	f.record("ShaderSource", shader)
}

func (f *API) CompileShader(shader uint32) { f.record("CompileShader", shader) }

func (f *API) CompileStatus(shader uint32) bool {
	_, bad := f.failed[shader]
	return !bad
}

func (f *API) ShaderInfoLog(shader uint32) string { return f.failed[shader] }

func (f *API) AttachShader(program, shader uint32) {
	f.attached[program] = append(f.attached[program], shader)
	f.record("AttachShader", program, shader)
}

func (f *API) DeleteShader(shader uint32) {
	f.deleted[shader] = true
	f.record("DeleteShader", shader)
}

func (f *API) AttribLocation(program uint32, name string) int32 {
	return lookup(f.Attribs, name)
}

func (f *API) UniformLocation(program uint32, name string) int32 {
	return lookup(f.Uniforms, name)
}

func (f *API) FragDataLocation(program uint32, name string) int32 {
	return lookup(f.FragData, name)
}

func lookup(m map[string]int32, name string) int32 {
	if loc, ok := m[name]; ok {
		return loc
	}
	return -1
}

func (f *API) UniformBlockIndex(program uint32, name string) uint32 {
	if idx, ok := f.UniformBlocks[name]; ok {
		return idx
	}
	return gpu.InvalidIndex
}

func (f *API) StorageBlockIndex(program uint32, name string) uint32 {
	if idx, ok := f.StorageBlocks[name]; ok {
		return idx
	}
	return gpu.InvalidIndex
}

func (f *API) UniformBlockBinding(program, block, binding uint32) {
	f.record("UniformBlockBinding", program, block, binding)
}

func (f *API) StorageBlockBinding(program, block, binding uint32) {
	f.record("StorageBlockBinding", program, block, binding)
}

func (f *API) ProgramUniform1i(program uint32, location int32, v int32) {
	f.record("ProgramUniform1i", program, location, v)
}

func (f *API) ProgramUniform1ui(program uint32, location int32, v uint32) {
	f.record("ProgramUniform1ui", program, location, v)
}

func (f *API) ProgramUniform1f(program uint32, location int32, v float32) {
	f.record("ProgramUniform1f", program, location, v)
}

func (f *API) ProgramUniform2f(program uint32, location int32, x, y float32) {
	f.record("ProgramUniform2f", program, location, x, y)
}

func (f *API) ProgramUniform3f(program uint32, location int32, x, y, z float32) {
	f.record("ProgramUniform3f", program, location, x, y, z)
}

func (f *API) ProgramUniform4f(program uint32, location int32, x, y, z, w float32) {
	f.record("ProgramUniform4f", program, location, x, y, z, w)
}

func (f *API) ProgramUniformMatrix4f(program uint32, location int32, m *[16]float32) {
	f.record("ProgramUniformMatrix4f", program, location, *m)
}

func (f *API) BindBuffer(target gpu.BufferTarget, buffer uint32) {
	f.record("BindBuffer", target, buffer)
}

func (f *API) BindBufferBase(target gpu.BufferTarget, index, buffer uint32) {
	f.record("BindBufferBase", target, index, buffer)
}

func (f *API) BindBufferRange(target gpu.BufferTarget, index, buffer uint32, offset, size int) {
	f.record("BindBufferRange", target, index, buffer, offset, size)
}

func (f *API) EnableVertexAttribArray(index uint32) { f.record("EnableVertexAttribArray", index) }

func (f *API) DisableVertexAttribArray(index uint32) { f.record("DisableVertexAttribArray", index) }

func (f *API) VertexAttribPointer(index uint32, components int32, dataType gpu.DataType, normalized bool, stride int32, offset uintptr) {
	f.record("VertexAttribPointer", index, components, dataType, normalized, stride, offset)
}

func (f *API) VertexAttribDivisor(index, divisor uint32) {
	f.record("VertexAttribDivisor", index, divisor)
}

func (f *API) ActiveTexture(unit uint32) { f.record("ActiveTexture", unit) }

func (f *API) BindTexture(target gpu.TextureTarget, texture uint32) {
	f.record("BindTexture", target, texture)
}

func (f *API) BindImageTexture(unit, texture uint32, level int32, layered bool, layer int32, access gpu.Access, format gpu.ImageFormat) {
	f.record("BindImageTexture", unit, texture, level, layered, layer, access, format)
}

func (f *API) GenTransformFeedback() uint32 {
	h := f.alloc()
	f.record("GenTransformFeedback", h)
	return h
}

func (f *API) DeleteTransformFeedback(id uint32) {
	f.deleted[id] = true
	if f.boundTF == id {
		f.boundTF = 0
	}
	f.record("DeleteTransformFeedback", id)
}

func (f *API) BindTransformFeedback(id uint32) {
	f.boundTF = id
	f.record("BindTransformFeedback", id)
}

func (f *API) CurrentTransformFeedback() uint32 { return f.boundTF }

func (f *API) BeginTransformFeedback(primitive gpu.Primitive) {
	f.record("BeginTransformFeedback", primitive)
}

func (f *API) EndTransformFeedback()    { f.record("EndTransformFeedback") }
func (f *API) PauseTransformFeedback()  { f.record("PauseTransformFeedback") }
func (f *API) ResumeTransformFeedback() { f.record("ResumeTransformFeedback") }
