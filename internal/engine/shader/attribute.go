package shader

import (
	"fmt"

	"github.com/Faultbox/shaderkit/internal/engine/gpu"
)

// VertexAttrib is a vertex shader input.
type VertexAttrib struct {
	api      gpu.API
	program  uint32
	name     string
	location int32
	layout   AttribLayout
}

func newVertexAttrib(api gpu.API, program uint32, slot Slot) (Accessor, error) {
	var layout AttribLayout
	switch m := slot.Meta.(type) {
	case AttribLayout:
		layout = m
	case *AttribLayout:
		if m == nil {
			return nil, fmt.Errorf("%w: attribute %q has no layout", ErrMissingMetadata, slot.Name)
		}
		layout = *m
	default:
		return nil, fmt.Errorf("%w: attribute %q has no layout", ErrMissingMetadata, slot.Name)
	}
	if layout.Components < 1 || layout.Components > 4 {
		return nil, fmt.Errorf("attribute %q: component count %d out of range 1..4", slot.Name, layout.Components)
	}

	return &VertexAttrib{
		api:      api,
		program:  program,
		name:     slot.Name,
		location: api.AttribLocation(program, slot.Name),
		layout:   layout,
	}, nil
}

// Name returns the attribute name.
func (a *VertexAttrib) Name() string { return a.name }

// Active reports whether the vertex stage reads the attribute.
func (a *VertexAttrib) Active() bool { return a.location >= 0 }

// Location returns the attribute location, -1 if inactive.
func (a *VertexAttrib) Location() int32 { return a.location }

// Layout returns the declared buffer layout.
func (a *VertexAttrib) Layout() AttribLayout { return a.layout }

// Size returns the attribute size in bytes.
func (a *VertexAttrib) Size() int {
	return int(a.layout.Components) * a.layout.Type.Size()
}

// Pointer sources the attribute from buffer using the declared layout.
// A vertex array object must be bound.
func (a *VertexAttrib) Pointer(buffer uint32, stride int32, offset uintptr) {
	if a.location < 0 {
		return
	}
	idx := uint32(a.location)
	a.api.BindBuffer(gpu.ArrayBuffer, buffer)
	a.api.EnableVertexAttribArray(idx)
	a.api.VertexAttribPointer(idx, a.layout.Components, a.layout.Type, a.layout.Normalized, stride, offset)
}

// Divisor sets the instancing divisor; 0 advances per vertex.
func (a *VertexAttrib) Divisor(divisor uint32) {
	if a.location < 0 {
		return
	}
	a.api.VertexAttribDivisor(uint32(a.location), divisor)
}

// Disable stops sourcing the attribute from a buffer.
func (a *VertexAttrib) Disable() {
	if a.location < 0 {
		return
	}
	a.api.DisableVertexAttribArray(uint32(a.location))
}
