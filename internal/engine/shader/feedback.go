package shader

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/shaderkit/internal/engine/gpu"
	"github.com/Faultbox/shaderkit/internal/logger"
)

// FeedbackState is the state of a TransformFeedback object.
type FeedbackState uint8

const (
	FeedbackUnbound FeedbackState = iota
	FeedbackIdle
	FeedbackActive
	FeedbackPaused
)

func (s FeedbackState) String() string {
	switch s {
	case FeedbackUnbound:
		return "unbound"
	case FeedbackIdle:
		return "idle"
	case FeedbackActive:
		return "active"
	case FeedbackPaused:
		return "paused"
	}
	return fmt.Sprintf("FeedbackState(%d)", s)
}

// TransformFeedback wraps a transform feedback object.
//
//	Bind:   unbound -> idle
//	Begin:  idle    -> active
//	Pause:  active  -> paused
//	Resume: paused  -> active
//	End:    active  -> idle
//	Unbind: idle    -> unbound
//
// Every operation except Bind fails with ErrNotActive unless this object is
// the one currently bound in the context.
type TransformFeedback struct {
	api       gpu.API
	handle    uint32
	state     FeedbackState
	primitive gpu.Primitive
	destroyed bool
	log       *zap.Logger
}

// NewTransformFeedback generates a transform feedback object.
func NewTransformFeedback(api gpu.API) *TransformFeedback {
	tf := &TransformFeedback{
		api:    api,
		handle: api.GenTransformFeedback(),
		log:    logger.Named("shader.feedback"),
	}
	tf.log.Debug("transform feedback created", zap.Uint32("handle", tf.handle))
	return tf
}

// Handle returns the object handle.
func (tf *TransformFeedback) Handle() uint32 { return tf.handle }

// State returns the tracked state.
func (tf *TransformFeedback) State() FeedbackState { return tf.state }

// Primitive returns the primitive passed to the last Begin.
func (tf *TransformFeedback) Primitive() gpu.Primitive { return tf.primitive }

// Bind makes this the current transform feedback object. Rebinding keeps
// the tracked state, so a paused object can be rebound and resumed.
func (tf *TransformFeedback) Bind() error {
	if tf.destroyed {
		return fmt.Errorf("bind transform feedback %d: %w", tf.handle, ErrDestroyed)
	}
	tf.api.BindTransformFeedback(tf.handle)
	if tf.state == FeedbackUnbound {
		tf.state = FeedbackIdle
	}
	return nil
}

// Unbind restores the default transform feedback object.
func (tf *TransformFeedback) Unbind() error {
	if err := tf.transition("unbind", FeedbackIdle, FeedbackUnbound); err != nil {
		return err
	}
	tf.api.BindTransformFeedback(0)
	return nil
}

// Begin starts capturing primitives of the given kind.
func (tf *TransformFeedback) Begin(primitive gpu.Primitive) error {
	if err := tf.transition("begin", FeedbackIdle, FeedbackActive); err != nil {
		return err
	}
	tf.primitive = primitive
	tf.api.BeginTransformFeedback(primitive)
	tf.log.Debug("capture started", zap.Uint32("handle", tf.handle), zap.Stringer("primitive", primitive))
	return nil
}

// End stops capturing.
func (tf *TransformFeedback) End() error {
	if err := tf.transition("end", FeedbackActive, FeedbackIdle); err != nil {
		return err
	}
	tf.api.EndTransformFeedback()
	return nil
}

// Pause suspends capturing without ending it.
func (tf *TransformFeedback) Pause() error {
	if err := tf.transition("pause", FeedbackActive, FeedbackPaused); err != nil {
		return err
	}
	tf.api.PauseTransformFeedback()
	return nil
}

// Resume continues a paused capture.
func (tf *TransformFeedback) Resume() error {
	if err := tf.transition("resume", FeedbackPaused, FeedbackActive); err != nil {
		return err
	}
	tf.api.ResumeTransformFeedback()
	return nil
}

// BindOutput binds buffer to the binding point of out. With interleaved
// capture every output shares binding point 0; pass the first output.
func (tf *TransformFeedback) BindOutput(out *FeedbackOutput, buffer uint32) error {
	if err := tf.assertBound("bind output"); err != nil {
		return err
	}
	tf.api.BindBufferBase(gpu.TransformFeedbackBuffer, out.Index(), buffer)
	return nil
}

// BindOutputRange binds size bytes of buffer starting at offset to the
// binding point of out. Ranges of one buffer bound to different outputs
// must not overlap; this is not checked.
func (tf *TransformFeedback) BindOutputRange(out *FeedbackOutput, buffer uint32, offset, size int) error {
	if err := tf.assertBound("bind output range"); err != nil {
		return err
	}
	tf.api.BindBufferRange(gpu.TransformFeedbackBuffer, out.Index(), buffer, offset, size)
	return nil
}

// Destroy deletes the object. Safe to call twice.
func (tf *TransformFeedback) Destroy() {
	if tf.destroyed {
		return
	}
	tf.destroyed = true
	tf.api.DeleteTransformFeedback(tf.handle)
	tf.state = FeedbackUnbound
}

func (tf *TransformFeedback) transition(op string, from, to FeedbackState) error {
	if err := tf.assertBound(op); err != nil {
		return err
	}
	if tf.state != from {
		return fmt.Errorf("%s transform feedback %d: %w: %s, want %s", op, tf.handle, ErrInvalidState, tf.state, from)
	}
	tf.state = to
	return nil
}

// assertBound checks that this object is bound and in a bound state.
func (tf *TransformFeedback) assertBound(op string) error {
	if tf.destroyed {
		return fmt.Errorf("%s transform feedback %d: %w", op, tf.handle, ErrDestroyed)
	}
	if cur := tf.api.CurrentTransformFeedback(); cur != tf.handle {
		return fmt.Errorf("%s transform feedback %d: %w (current is %d)", op, tf.handle, ErrNotActive, cur)
	}
	if tf.state == FeedbackUnbound {
		return fmt.Errorf("%s transform feedback %d: %w: %s", op, tf.handle, ErrInvalidState, tf.state)
	}
	return nil
}
