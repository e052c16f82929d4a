package shader

import (
	"github.com/Faultbox/shaderkit/internal/engine/gpu"
)

// block is an interface block backed by a buffer: a uniform block or a
// shader storage block.
type block struct {
	api     gpu.API
	program uint32
	name    string
	index   uint32
	binding uint32
	target  gpu.BufferTarget
	assign  func(program, block, binding uint32)
}

// Name returns the block name.
func (b *block) Name() string { return b.name }

// Active reports whether the program declares the block.
func (b *block) Active() bool { return b.index != gpu.InvalidIndex }

// Index returns the block index, gpu.InvalidIndex if inactive.
func (b *block) Index() uint32 { return b.index }

// BindingPoint returns the binding point of the last Bind.
func (b *block) BindingPoint() uint32 { return b.binding }

// Bind assigns the block to bindingPoint and binds the whole buffer there.
func (b *block) Bind(bindingPoint, buffer uint32) {
	b.assignBinding(bindingPoint)
	b.api.BindBufferBase(b.target, bindingPoint, buffer)
}

// BindRange assigns the block to bindingPoint and binds size bytes of
// buffer starting at offset.
func (b *block) BindRange(bindingPoint, buffer uint32, offset, size int) {
	b.assignBinding(bindingPoint)
	b.api.BindBufferRange(b.target, bindingPoint, buffer, offset, size)
}

func (b *block) assignBinding(bindingPoint uint32) {
	b.binding = bindingPoint
	if b.Active() {
		b.assign(b.program, b.index, bindingPoint)
	}
}

// BufferUniform is a uniform block sourced from a uniform buffer.
type BufferUniform struct {
	block
}

func newBufferUniform(api gpu.API, program uint32, slot Slot) (Accessor, error) {
	return &BufferUniform{block{
		api:     api,
		program: program,
		name:    slot.Name,
		index:   api.UniformBlockIndex(program, slot.Name),
		target:  gpu.UniformBuffer,
		assign:  api.UniformBlockBinding,
	}}, nil
}

// StorageBuffer is a shader storage block.
type StorageBuffer struct {
	block
}

func newStorageBuffer(api gpu.API, program uint32, slot Slot) (Accessor, error) {
	return &StorageBuffer{block{
		api:     api,
		program: program,
		name:    slot.Name,
		index:   api.StorageBlockIndex(program, slot.Name),
		target:  gpu.ShaderStorageBuffer,
		assign:  api.StorageBlockBinding,
	}}, nil
}
