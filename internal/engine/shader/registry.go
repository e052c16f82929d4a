package shader

import (
	"github.com/Faultbox/shaderkit/internal/engine/gpu"
	"github.com/Faultbox/shaderkit/pkg/math"
)

// Accessor is the live object bound to a slot after a successful build.
// Accessors hold the program handle but do not own it; they are valid for
// the lifetime of their program.
type Accessor interface {
	Name() string
	// Active reports whether the linked program actually uses the slot.
	Active() bool
}

// Constructor creates the accessor for a slot of a linked program.
type Constructor func(api gpu.API, program uint32, slot Slot) (Accessor, error)

// Rule maps a slot kind to its accessor constructor.
type Rule struct {
	Kind Kind
	New  Constructor
}

// Registry is an ordered list of binding rules. The first rule registered
// for a kind wins; registering a kind again has no effect on lookups.
//
// A Registry is not safe for concurrent use.
type Registry struct {
	rules []Rule
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// NewDefaultRegistry returns a registry holding the built-in rules.
func NewDefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(KindAttribute, newVertexAttrib)
	r.Register(KindTexture, newTextureUniform)
	r.Register(KindImage, newImageUniform)
	r.Register(KindBool, newUniform[bool])
	r.Register(KindInt, newUniform[int32])
	r.Register(KindUint, newUniform[uint32])
	r.Register(KindFloat, newUniform[float32])
	r.Register(KindVec2, newUniform[math.Vec2])
	r.Register(KindVec3, newUniform[math.Vec3])
	r.Register(KindVec4, newUniform[math.Vec4])
	r.Register(KindMat4, newUniform[math.Mat4])
	r.Register(KindUniformBuffer, newBufferUniform)
	r.Register(KindStorageBuffer, newStorageBuffer)
	r.Register(KindFragOutput, newFragOutput)
	return r
}

// Register appends a rule.
func (r *Registry) Register(kind Kind, ctor Constructor) {
	r.rules = append(r.rules, Rule{Kind: kind, New: ctor})
}

// Lookup returns the constructor of the first rule matching kind.
func (r *Registry) Lookup(kind Kind) (Constructor, bool) {
	for _, rule := range r.rules {
		if rule.Kind == kind {
			return rule.New, true
		}
	}
	return nil, false
}

// Rules returns a copy of the rules in lookup order.
func (r *Registry) Rules() []Rule {
	return append([]Rule(nil), r.rules...)
}

// DefaultRegistry is the process-wide registry used by builders that are
// not given one. Additions are global and permanent.
var DefaultRegistry = NewDefaultRegistry()

// Register appends a rule to DefaultRegistry.
func Register(kind Kind, ctor Constructor) {
	DefaultRegistry.Register(kind, ctor)
}
