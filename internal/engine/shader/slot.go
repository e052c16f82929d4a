package shader

import (
	"fmt"
	"strings"

	"github.com/Faultbox/shaderkit/internal/engine/gpu"
)

// Kind is the declared kind of a program slot.
type Kind uint16

const (
	KindAttribute Kind = iota
	KindBool
	KindInt
	KindUint
	KindFloat
	KindVec2
	KindVec3
	KindVec4
	KindMat4
	KindUniformBuffer
	KindStorageBuffer
	KindTexture
	KindImage
	KindFragOutput
	// KindFeedbackOutput slots are assigned a capture index before linking
	// instead of going through the registry.
	KindFeedbackOutput

	numBuiltinKinds
)

var kindNames = []string{
	KindAttribute:      "attribute",
	KindBool:           "bool",
	KindInt:            "int",
	KindUint:           "uint",
	KindFloat:          "float",
	KindVec2:           "vec2",
	KindVec3:           "vec3",
	KindVec4:           "vec4",
	KindMat4:           "mat4",
	KindUniformBuffer:  "uniform_buffer",
	KindStorageBuffer:  "storage_buffer",
	KindTexture:        "texture",
	KindImage:          "image",
	KindFragOutput:     "frag_output",
	KindFeedbackOutput: "feedback_output",
}

// NewKind allocates a kind for application-defined accessors. Pair it with
// Register. Names must be unique.
//
// Not safe for concurrent use.
func NewKind(name string) Kind {
	if k, err := ParseKind(name); err == nil {
		panic(fmt.Sprintf("shader: kind %q already defined as %d", name, k))
	}
	kindNames = append(kindNames, name)
	return Kind(len(kindNames) - 1)
}

// ParseKind looks up a kind by name.
func ParseKind(name string) (Kind, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, n := range kindNames {
		if n == name {
			return Kind(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownKind, name)
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", k)
}

// AttribLayout describes how a vertex attribute is sourced from a buffer.
// Attribute slots must carry one.
type AttribLayout struct {
	Components int32
	Type       gpu.DataType
	Normalized bool
}

// Slot is a named point of contact between host code and the program.
type Slot struct {
	Name string
	Kind Kind
	// Meta is kind-specific metadata, e.g. AttribLayout for attributes.
	Meta any
}

// StageSource pairs a pipeline stage with the logical name of its source.
type StageSource struct {
	Stage gpu.Stage
	File  string
}

// Declaration describes a program type: its sources, its slots and how
// transform feedback outputs are captured.
//
// Declarations are built once per program type, usually with Declare.
type Declaration struct {
	Name        string
	Sources     []StageSource
	Slots       []Slot
	CaptureMode gpu.CaptureMode
}

// Declare starts a declaration for the named program type.
func Declare(name string) *Declaration {
	return &Declaration{Name: name}
}

// Source adds a stage source.
func (d *Declaration) Source(stage gpu.Stage, file string) *Declaration {
	d.Sources = append(d.Sources, StageSource{Stage: stage, File: file})
	return d
}

// Vertex adds a vertex stage source.
func (d *Declaration) Vertex(file string) *Declaration {
	return d.Source(gpu.StageVertex, file)
}

// Geometry adds a geometry stage source.
func (d *Declaration) Geometry(file string) *Declaration {
	return d.Source(gpu.StageGeometry, file)
}

// Fragment adds a fragment stage source.
func (d *Declaration) Fragment(file string) *Declaration {
	return d.Source(gpu.StageFragment, file)
}

// Compute adds a compute stage source.
func (d *Declaration) Compute(file string) *Declaration {
	return d.Source(gpu.StageCompute, file)
}

// Slot adds a slot of any kind.
func (d *Declaration) Slot(name string, kind Kind, meta any) *Declaration {
	d.Slots = append(d.Slots, Slot{Name: name, Kind: kind, Meta: meta})
	return d
}

// Attribute adds a vertex attribute slot.
func (d *Declaration) Attribute(name string, layout AttribLayout) *Declaration {
	return d.Slot(name, KindAttribute, layout)
}

// Uniform adds a plain uniform slot of the given value kind.
func (d *Declaration) Uniform(name string, kind Kind) *Declaration {
	return d.Slot(name, kind, nil)
}

// FeedbackOutput adds a transform feedback output slot.
func (d *Declaration) FeedbackOutput(name string) *Declaration {
	return d.Slot(name, KindFeedbackOutput, nil)
}

// Capture sets the transform feedback capture mode.
func (d *Declaration) Capture(mode gpu.CaptureMode) *Declaration {
	d.CaptureMode = mode
	return d
}

// feedbackNames returns feedback output slot names in declaration order.
func (d *Declaration) feedbackNames() []string {
	var names []string
	for _, s := range d.Slots {
		if s.Kind == KindFeedbackOutput {
			names = append(names, s.Name)
		}
	}
	return names
}
