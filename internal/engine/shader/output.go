package shader

import (
	"github.com/Faultbox/shaderkit/internal/engine/gpu"
)

// FragOutput is a fragment shader output variable.
type FragOutput struct {
	name     string
	location int32
}

func newFragOutput(api gpu.API, program uint32, slot Slot) (Accessor, error) {
	return &FragOutput{name: slot.Name, location: api.FragDataLocation(program, slot.Name)}, nil
}

// Name returns the output name.
func (o *FragOutput) Name() string { return o.name }

// Active reports whether the output is bound to a color number.
func (o *FragOutput) Active() bool { return o.location >= 0 }

// Location returns the color number the output writes to, -1 if inactive.
func (o *FragOutput) Location() int32 { return o.location }

// FeedbackOutput is a captured transform feedback varying. Its index is
// assigned in declaration order before linking and is the binding point
// used by TransformFeedback.BindOutput.
type FeedbackOutput struct {
	name  string
	index uint32
}

// Name returns the varying name.
func (o *FeedbackOutput) Name() string { return o.name }

// Active is always true; the linker rejects unknown capture names.
func (o *FeedbackOutput) Active() bool { return true }

// Index returns the capture index.
func (o *FeedbackOutput) Index() uint32 { return o.index }
