// Package gpu defines the subset of the graphics API that shader programs,
// slot accessors and transform feedback objects are built on.
//
// All calls must be made from the thread that owns the current graphics
// context. Implementations are not safe for concurrent use.
package gpu

// API is the graphics-API collaborator. glapi.API is the OpenGL
// implementation; gputest.API records calls for tests.
type API interface {
	// Programs.
	CreateProgram() uint32
	DeleteProgram(program uint32)
	UseProgram(program uint32)
	LinkProgram(program uint32)
	LinkStatus(program uint32) bool
	ValidateProgram(program uint32)
	ValidateStatus(program uint32) bool
	ProgramInfoLog(program uint32) string
	TransformFeedbackVaryings(program uint32, names []string, mode CaptureMode)

	// Stage units.
	CreateShader(stage Stage) uint32
	ShaderSource(shader uint32, source string)
	CompileShader(shader uint32)
	CompileStatus(shader uint32) bool
	ShaderInfoLog(shader uint32) string
	AttachShader(program, shader uint32)
	DeleteShader(shader uint32)

	// Slot lookups. Locations are -1 and indices InvalidIndex when the
	// name is not an active resource of the program.
	AttribLocation(program uint32, name string) int32
	UniformLocation(program uint32, name string) int32
	FragDataLocation(program uint32, name string) int32
	UniformBlockIndex(program uint32, name string) uint32
	StorageBlockIndex(program uint32, name string) uint32
	UniformBlockBinding(program, block, binding uint32)
	StorageBlockBinding(program, block, binding uint32)

	// Uniform values, written without requiring the program to be in use.
	ProgramUniform1i(program uint32, location int32, v int32)
	ProgramUniform1ui(program uint32, location int32, v uint32)
	ProgramUniform1f(program uint32, location int32, v float32)
	ProgramUniform2f(program uint32, location int32, x, y float32)
	ProgramUniform3f(program uint32, location int32, x, y, z float32)
	ProgramUniform4f(program uint32, location int32, x, y, z, w float32)
	ProgramUniformMatrix4f(program uint32, location int32, m *[16]float32)

	// Buffers and vertex layout.
	BindBuffer(target BufferTarget, buffer uint32)
	BindBufferBase(target BufferTarget, index, buffer uint32)
	BindBufferRange(target BufferTarget, index, buffer uint32, offset, size int)
	EnableVertexAttribArray(index uint32)
	DisableVertexAttribArray(index uint32)
	VertexAttribPointer(index uint32, components int32, dataType DataType, normalized bool, stride int32, offset uintptr)
	VertexAttribDivisor(index, divisor uint32)

	// Textures and images.
	ActiveTexture(unit uint32)
	BindTexture(target TextureTarget, texture uint32)
	BindImageTexture(unit, texture uint32, level int32, layered bool, layer int32, access Access, format ImageFormat)

	// Transform feedback objects.
	GenTransformFeedback() uint32
	DeleteTransformFeedback(id uint32)
	BindTransformFeedback(id uint32)
	CurrentTransformFeedback() uint32
	BeginTransformFeedback(primitive Primitive)
	EndTransformFeedback()
	PauseTransformFeedback()
	ResumeTransformFeedback()
}

// InvalidIndex is returned by block index lookups for unknown names.
const InvalidIndex = ^uint32(0)
