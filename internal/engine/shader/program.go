package shader

import (
	"fmt"

	"github.com/Faultbox/shaderkit/internal/engine/gpu"
)

// State is the build state of a Program.
type State uint8

const (
	Unbuilt State = iota
	Compiling
	Linking
	Ready
	Failed
)

func (s State) String() string {
	switch s {
	case Unbuilt:
		return "unbuilt"
	case Compiling:
		return "compiling"
	case Linking:
		return "linking"
	case Ready:
		return "ready"
	case Failed:
		return "failed"
	}
	return fmt.Sprintf("State(%d)", s)
}

// Program is a linked GPU program and its slot accessors.
type Program struct {
	api       gpu.API
	handle    uint32
	decl      Declaration
	state     State
	destroyed bool

	accessors map[string]Accessor
	feedback  []*FeedbackOutput
	unbound   []Slot
}

// activeProgram is the handle most recently passed to Use. Process-wide,
// single context only.
var activeProgram uint32

// ActiveProgram returns the handle of the last program made current with
// Program.Use, or 0.
func ActiveProgram() uint32 {
	return activeProgram
}

// Name returns the declaration name.
func (p *Program) Name() string { return p.decl.Name }

// Handle returns the program handle.
func (p *Program) Handle() uint32 { return p.handle }

// State returns the build state.
func (p *Program) State() State { return p.state }

// Declaration returns the declaration the program was built from.
func (p *Program) Declaration() Declaration { return p.decl }

// Accessor returns the accessor bound to the named slot.
func (p *Program) Accessor(name string) (Accessor, bool) {
	a, ok := p.accessors[name]
	return a, ok
}

// FeedbackOutputs returns the transform feedback outputs in capture order.
func (p *Program) FeedbackOutputs() []*FeedbackOutput {
	return append([]*FeedbackOutput(nil), p.feedback...)
}

// Unbound returns the slots no binding rule matched.
func (p *Program) Unbound() []Slot {
	return append([]Slot(nil), p.unbound...)
}

// Use makes the program current.
func (p *Program) Use() {
	p.api.UseProgram(p.handle)
	activeProgram = p.handle
}

// Validate checks whether the program can execute in the current GL state.
func (p *Program) Validate() error {
	if p.destroyed {
		return fmt.Errorf("%s: %w", p.decl.Name, ErrDestroyed)
	}
	p.api.ValidateProgram(p.handle)
	if !p.api.ValidateStatus(p.handle) {
		return &ValidateError{Program: p.decl.Name, Log: p.api.ProgramInfoLog(p.handle)}
	}
	return nil
}

// Destroy deletes the program. Accessors become invalid. Safe to call twice.
func (p *Program) Destroy() {
	if p.destroyed {
		return
	}
	p.destroyed = true
	if p.handle != 0 {
		p.api.DeleteProgram(p.handle)
	}
	if activeProgram == p.handle {
		activeProgram = 0
	}
}

// Get returns the accessor bound to name if it has type T.
func Get[T Accessor](p *Program, name string) (T, bool) {
	a, ok := p.accessors[name]
	if !ok {
		var zero T
		return zero, false
	}
	t, ok := a.(T)
	return t, ok
}

// MustGet is like Get but panics when the slot is unbound or of another type.
// Use it when wiring a program type's fields right after a build.
func MustGet[T Accessor](p *Program, name string) T {
	t, ok := Get[T](p, name)
	if !ok {
		panic(fmt.Sprintf("shader: program %s has no %T slot %q", p.decl.Name, t, name))
	}
	return t
}
