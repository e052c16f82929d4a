package shader

import (
	"errors"
	"testing"

	"github.com/Faultbox/shaderkit/internal/engine/gpu"
	"github.com/Faultbox/shaderkit/internal/engine/gpu/gputest"
)

func TestFeedbackLifecycle(t *testing.T) {
	api := gputest.New()
	tf := NewTransformFeedback(api)
	defer tf.Destroy()

	steps := []struct {
		name string
		op   func() error
		want FeedbackState
	}{
		{"bind", tf.Bind, FeedbackIdle},
		{"begin", func() error { return tf.Begin(gpu.Points) }, FeedbackActive},
		{"pause", tf.Pause, FeedbackPaused},
		{"resume", tf.Resume, FeedbackActive},
		{"end", tf.End, FeedbackIdle},
		{"unbind", tf.Unbind, FeedbackUnbound},
	}
	for _, s := range steps {
		if err := s.op(); err != nil {
			t.Fatalf("%s: %v", s.name, err)
		}
		if tf.State() != s.want {
			t.Fatalf("after %s: state %v, want %v", s.name, tf.State(), s.want)
		}
	}

	if tf.Primitive() != gpu.Points {
		t.Errorf("primitive = %v", tf.Primitive())
	}
	if api.CurrentTransformFeedback() != 0 {
		t.Error("unbind should restore the default object")
	}
	for _, call := range []string{"BeginTransformFeedback", "PauseTransformFeedback", "ResumeTransformFeedback", "EndTransformFeedback"} {
		if api.Count(call) != 1 {
			t.Errorf("expected one %s, got %d", call, api.Count(call))
		}
	}
}

func TestFeedbackRequiresBinding(t *testing.T) {
	api := gputest.New()
	a := NewTransformFeedback(api)
	b := NewTransformFeedback(api)

	// Never bound.
	if err := a.Begin(gpu.Triangles); !errors.Is(err, ErrNotActive) {
		t.Errorf("begin on unbound object: got %v", err)
	}

	if err := a.Bind(); err != nil {
		t.Fatal(err)
	}
	if err := b.Bind(); err != nil {
		t.Fatal(err)
	}

	// a is idle but b is the current object.
	if err := a.Begin(gpu.Triangles); !errors.Is(err, ErrNotActive) {
		t.Errorf("begin on displaced object: got %v", err)
	}
	if err := a.BindOutput(&FeedbackOutput{name: "OutPosition"}, 5); !errors.Is(err, ErrNotActive) {
		t.Errorf("bind output on displaced object: got %v", err)
	}
	if api.Count("BeginTransformFeedback") != 0 || api.Count("BindBufferBase") != 0 {
		t.Error("no GPU call may be issued for a rejected operation")
	}

	if err := b.Begin(gpu.Triangles); err != nil {
		t.Errorf("begin on current object: %v", err)
	}
	if b.State() != FeedbackActive {
		t.Errorf("state = %v", b.State())
	}
}

func TestFeedbackInvalidTransitions(t *testing.T) {
	api := gputest.New()
	tf := NewTransformFeedback(api)
	if err := tf.Bind(); err != nil {
		t.Fatal(err)
	}

	// Idle: only Begin and Unbind are allowed.
	for name, op := range map[string]func() error{"pause": tf.Pause, "resume": tf.Resume, "end": tf.End} {
		if err := op(); !errors.Is(err, ErrInvalidState) {
			t.Errorf("%s while idle: got %v", name, err)
		}
	}

	if err := tf.Begin(gpu.Lines); err != nil {
		t.Fatal(err)
	}
	if err := tf.Begin(gpu.Lines); !errors.Is(err, ErrInvalidState) {
		t.Errorf("begin while active: got %v", err)
	}
	if err := tf.Resume(); !errors.Is(err, ErrInvalidState) {
		t.Errorf("resume while active: got %v", err)
	}
	if err := tf.Unbind(); !errors.Is(err, ErrInvalidState) {
		t.Errorf("unbind while active: got %v", err)
	}

	if err := tf.Pause(); err != nil {
		t.Fatal(err)
	}
	if err := tf.End(); !errors.Is(err, ErrInvalidState) {
		t.Errorf("end while paused: got %v", err)
	}
	if tf.State() != FeedbackPaused {
		t.Errorf("failed transitions must not change state, got %v", tf.State())
	}
}

func TestFeedbackRebindKeepsPausedState(t *testing.T) {
	api := gputest.New()
	a := NewTransformFeedback(api)
	b := NewTransformFeedback(api)

	mustOK := func(err error) {
		t.Helper()
		if err != nil {
			t.Fatal(err)
		}
	}
	mustOK(a.Bind())
	mustOK(a.Begin(gpu.Points))
	mustOK(a.Pause())
	mustOK(b.Bind())
	mustOK(a.Bind())
	if a.State() != FeedbackPaused {
		t.Fatalf("state after rebind = %v, want paused", a.State())
	}
	mustOK(a.Resume())
	mustOK(a.End())
}

func TestFeedbackBindOutput(t *testing.T) {
	b, api := newTestBuilder(t)
	p, err := b.Build(Declare("Capture").
		Vertex("Capture.Vertex").
		FeedbackOutput("OutPosition").
		FeedbackOutput("OutVelocity"))
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	tf := NewTransformFeedback(api)
	if err := tf.Bind(); err != nil {
		t.Fatal(err)
	}

	vel := MustGet[*FeedbackOutput](p, "OutVelocity")
	if err := tf.BindOutput(vel, 30); err != nil {
		t.Fatalf("BindOutput: %v", err)
	}
	if c, _ := api.Last("BindBufferBase"); c.Args[0] != gpu.TransformFeedbackBuffer || c.Args[1] != uint32(1) || c.Args[2] != uint32(30) {
		t.Errorf("unexpected %s", c)
	}

	pos := MustGet[*FeedbackOutput](p, "OutPosition")
	if err := tf.BindOutputRange(pos, 31, 128, 512); err != nil {
		t.Fatalf("BindOutputRange: %v", err)
	}
	if c, _ := api.Last("BindBufferRange"); c.Args[1] != uint32(0) || c.Args[3] != 128 || c.Args[4] != 512 {
		t.Errorf("unexpected %s", c)
	}

	// Outputs can also be bound while capturing.
	if err := tf.Begin(gpu.Points); err != nil {
		t.Fatal(err)
	}
	if err := tf.BindOutput(pos, 32); err != nil {
		t.Errorf("BindOutput while active: %v", err)
	}
}

func TestFeedbackDestroy(t *testing.T) {
	api := gputest.New()
	tf := NewTransformFeedback(api)
	if err := tf.Bind(); err != nil {
		t.Fatal(err)
	}

	tf.Destroy()
	tf.Destroy()
	if api.Count("DeleteTransformFeedback") != 1 {
		t.Errorf("expected one delete, got %d", api.Count("DeleteTransformFeedback"))
	}
	if err := tf.Bind(); !errors.Is(err, ErrDestroyed) {
		t.Errorf("bind after destroy: got %v", err)
	}
	if err := tf.Begin(gpu.Points); !errors.Is(err, ErrDestroyed) {
		t.Errorf("begin after destroy: got %v", err)
	}
}
