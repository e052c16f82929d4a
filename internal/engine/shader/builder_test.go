package shader

import (
	"errors"
	"strings"
	"testing"
	"testing/fstest"

	"go.uber.org/zap"

	"github.com/Faultbox/shaderkit/internal/engine/gpu"
	"github.com/Faultbox/shaderkit/internal/engine/gpu/gputest"
	"github.com/Faultbox/shaderkit/pkg/math"
)

var (
	// kindUnmapped has no rule in any registry.
	kindUnmapped = NewKind("test_unmapped")
	kindCustom   = NewKind("test_custom")
)

var testSources = fstest.MapFS{
	"Simple.Vertex.glsl":    {Data: []byte("#version 430\n#include common\nin vec3 InPosition;\nvoid main() {}\n")},
	"Simple.Fragment.glsl":  {Data: []byte("#version 430\n#include common\nout vec4 FragColor;\nvoid main() {}\n")},
	"Broken.Fragment.glsl":  {Data: []byte("#version 430\nBROKEN\n")},
	"Capture.Vertex.glsl":   {Data: []byte("#version 430\nout vec3 OutPosition;\nvoid main() {}\n")},
	"Missing.Fragment.glsl": {Data: []byte("#include nowhere\n")},
	"common.glsl":           {Data: []byte("uniform mat4 ModelViewProjection;\n")},
}

func newTestBuilder(t *testing.T, opts ...Option) (*Builder, *gputest.API) {
	t.Helper()
	api := gputest.New()
	resolver := NewResolver(testSources, WithResolverLogger(zap.NewNop()))
	opts = append([]Option{WithResolver(resolver), WithLogger(zap.NewNop())}, opts...)
	return NewBuilder(api, opts...), api
}

func simpleDeclaration() *Declaration {
	return Declare("SimpleProgram").
		Vertex("Simple.Vertex").
		Fragment("Simple.Fragment")
}

func TestBuildRejectsNoSources(t *testing.T) {
	b, api := newTestBuilder(t)

	_, err := b.Build(Declare("Empty").Uniform("Color", KindVec4))
	if !errors.Is(err, ErrNoSources) {
		t.Fatalf("expected ErrNoSources, got %v", err)
	}
	if len(api.Calls) != 0 {
		t.Errorf("expected no GPU calls, got %v", api.Calls)
	}

	if _, err := b.Build(nil); !errors.Is(err, ErrNoSources) {
		t.Errorf("nil declaration: expected ErrNoSources, got %v", err)
	}
}

func TestBuildRejectsDuplicateSlots(t *testing.T) {
	b, api := newTestBuilder(t)

	decl := simpleDeclaration().Uniform("Color", KindVec4).Uniform("Color", KindFloat)
	if _, err := b.Build(decl); err == nil {
		t.Fatal("expected error for duplicate slot names")
	}
	if len(api.Calls) != 0 {
		t.Errorf("expected no GPU calls, got %v", api.Calls)
	}
}

func TestBuildBindsSlots(t *testing.T) {
	b, api := newTestBuilder(t)
	api.Attribs["InPosition"] = 0
	api.Attribs["InColor"] = 1
	api.Uniforms["ModelViewProjection"] = 3
	api.Uniforms["Time"] = 4
	api.Uniforms["Diffuse"] = 5
	api.Uniforms["Heightmap"] = 6
	api.UniformBlocks["Lights"] = 0
	api.StorageBlocks["Particles"] = 1
	api.FragData["FragColor"] = 0

	decl := simpleDeclaration().
		Attribute("InPosition", AttribLayout{Components: 3, Type: gpu.Float}).
		Attribute("InColor", AttribLayout{Components: 4, Type: gpu.UnsignedByte, Normalized: true}).
		Uniform("ModelViewProjection", KindMat4).
		Uniform("Time", KindFloat).
		Uniform("Unused", KindVec3).
		Slot("Diffuse", KindTexture, nil).
		Slot("Heightmap", KindImage, nil).
		Slot("Lights", KindUniformBuffer, nil).
		Slot("Particles", KindStorageBuffer, nil).
		Slot("FragColor", KindFragOutput, nil)

	p, err := b.Build(decl)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	defer p.Destroy()

	if p.State() != Ready {
		t.Errorf("state = %v, want ready", p.State())
	}
	if p.Name() != "SimpleProgram" {
		t.Errorf("name = %q", p.Name())
	}

	pos := MustGet[*VertexAttrib](p, "InPosition")
	if pos.Location() != 0 || pos.Size() != 12 {
		t.Errorf("InPosition location=%d size=%d", pos.Location(), pos.Size())
	}
	color := MustGet[*VertexAttrib](p, "InColor")
	if color.Location() != 1 || !color.Layout().Normalized || color.Size() != 4 {
		t.Errorf("InColor location=%d layout=%+v", color.Location(), color.Layout())
	}

	mvp := MustGet[*Uniform[math.Mat4]](p, "ModelViewProjection")
	if mvp.Location() != 3 {
		t.Errorf("ModelViewProjection location = %d", mvp.Location())
	}
	if tm := MustGet[*Uniform[float32]](p, "Time"); tm.Location() != 4 {
		t.Errorf("Time location = %d", tm.Location())
	}
	if unused := MustGet[*Uniform[math.Vec3]](p, "Unused"); unused.Active() {
		t.Error("Unused should be inactive")
	}
	if tex := MustGet[*TextureUniform](p, "Diffuse"); tex.Location() != 5 {
		t.Errorf("Diffuse location = %d", tex.Location())
	}
	if img := MustGet[*ImageUniform](p, "Heightmap"); img.Location() != 6 {
		t.Errorf("Heightmap location = %d", img.Location())
	}
	if ub := MustGet[*BufferUniform](p, "Lights"); ub.Index() != 0 || !ub.Active() {
		t.Errorf("Lights index = %d", ub.Index())
	}
	if sb := MustGet[*StorageBuffer](p, "Particles"); sb.Index() != 1 {
		t.Errorf("Particles index = %d", sb.Index())
	}
	if out := MustGet[*FragOutput](p, "FragColor"); out.Location() != 0 {
		t.Errorf("FragColor location = %d", out.Location())
	}

	// Wrong type lookups fail rather than panic.
	if _, ok := Get[*Uniform[int32]](p, "Time"); ok {
		t.Error("Get with the wrong accessor type should fail")
	}

	// Both stage units were attached, then released after linking.
	units := api.Attached(p.Handle())
	if len(units) != 2 {
		t.Fatalf("expected 2 attached units, got %v", units)
	}
	link := api.Index("LinkProgram")
	for _, u := range units {
		if !api.Deleted(u) {
			t.Errorf("stage unit %d not released", u)
		}
	}
	if api.Index("DeleteShader") < link {
		t.Error("stage units released before link")
	}
	if api.Count("TransformFeedbackVaryings") != 0 {
		t.Error("no feedback outputs declared, varyings should not be registered")
	}

	// The include was expanded before compiling.
	if src := api.Sources[units[0]]; !strings.Contains(src, "uniform mat4 ModelViewProjection;") || !strings.Contains(src, "#line 1 1") {
		t.Errorf("vertex source not resolved:\n%s", src)
	}
}

func TestBuildCompileFailure(t *testing.T) {
	b, api := newTestBuilder(t)
	api.FailCompile["BROKEN"] = "0(2) : error C0000: syntax error, unexpected identifier"

	decl := Declare("BrokenProgram").
		Vertex("Simple.Vertex").
		Fragment("Broken.Fragment")

	p, err := b.Build(decl)
	if p != nil {
		t.Error("expected nil program on failure")
	}

	var cerr *CompileError
	if !errors.As(err, &cerr) {
		t.Fatalf("expected CompileError, got %v", err)
	}
	if cerr.Stage != gpu.StageFragment || cerr.File != "Broken.Fragment" {
		t.Errorf("error identifies %v %q", cerr.Stage, cerr.File)
	}
	if !strings.Contains(err.Error(), "syntax error") || !strings.Contains(err.Error(), "BrokenProgram") {
		t.Errorf("error message lacks details: %v", err)
	}
	if api.Count("LinkProgram") != 0 {
		t.Error("link must not run after a compile failure")
	}

	created, _ := api.Last("CreateProgram")
	if !api.Deleted(created.Args[0].(uint32)) {
		t.Error("program handle not deleted after failure")
	}
	if api.Count("DeleteShader") != api.Count("CreateShader") {
		t.Errorf("created %d stage units but deleted %d", api.Count("CreateShader"), api.Count("DeleteShader"))
	}
}

func TestBuildSourceNotFound(t *testing.T) {
	b, api := newTestBuilder(t)

	_, err := b.Build(Declare("MissingProgram").Vertex("Simple.Vertex").Fragment("Missing.Fragment"))
	if !errors.Is(err, ErrSourceNotFound) {
		t.Fatalf("expected ErrSourceNotFound, got %v", err)
	}
	if api.Count("LinkProgram") != 0 {
		t.Error("link must not run when a source is missing")
	}
	if api.Count("DeleteShader") != 1 {
		t.Errorf("compiled vertex unit should be released, got %d deletes", api.Count("DeleteShader"))
	}
}

func TestBuildFeedbackOutputs(t *testing.T) {
	b, api := newTestBuilder(t)

	decl := Declare("CaptureProgram").
		Vertex("Capture.Vertex").
		FeedbackOutput("OutPosition").
		Uniform("Time", KindFloat).
		FeedbackOutput("OutVelocity").
		FeedbackOutput("OutLifetime")

	p, err := b.Build(decl)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	outs := p.FeedbackOutputs()
	want := []string{"OutPosition", "OutVelocity", "OutLifetime"}
	if len(outs) != len(want) {
		t.Fatalf("expected %d outputs, got %d", len(want), len(outs))
	}
	for i, out := range outs {
		if out.Name() != want[i] || out.Index() != uint32(i) {
			t.Errorf("output %d = %s/%d, want %s/%d", i, out.Name(), out.Index(), want[i], i)
		}
	}
	if got := MustGet[*FeedbackOutput](p, "OutVelocity"); got.Index() != 1 {
		t.Errorf("OutVelocity index = %d", got.Index())
	}

	if strings.Join(api.Varyings, ",") != strings.Join(want, ",") {
		t.Errorf("registered varyings %v, want %v", api.Varyings, want)
	}
	if api.Mode != gpu.SeparateAttribs {
		t.Errorf("default capture mode = %v, want separate", api.Mode)
	}
	if api.Count("LinkProgram") != 1 {
		t.Errorf("expected a single link, got %d", api.Count("LinkProgram"))
	}
	if api.Index("TransformFeedbackVaryings") > api.Index("LinkProgram") {
		t.Error("varyings must be registered before linking")
	}
}

func TestBuildInterleavedCapture(t *testing.T) {
	b, api := newTestBuilder(t)

	decl := Declare("InterleavedProgram").
		Vertex("Capture.Vertex").
		FeedbackOutput("OutPosition").
		Capture(gpu.InterleavedAttribs)

	if _, err := b.Build(decl); err != nil {
		t.Fatalf("Build: %v", err)
	}
	if api.Mode != gpu.InterleavedAttribs {
		t.Errorf("capture mode = %v, want interleaved", api.Mode)
	}
}

func TestBuildSkipsUnmappedKind(t *testing.T) {
	b, _ := newTestBuilder(t)

	p, err := b.Build(simpleDeclaration().Slot("Custom", kindUnmapped, nil))
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if _, ok := p.Accessor("Custom"); ok {
		t.Error("unmapped slot should stay unbound")
	}
	unbound := p.Unbound()
	if len(unbound) != 1 || unbound[0].Name != "Custom" {
		t.Errorf("unbound = %v", unbound)
	}
}

func TestBuildMissingMetadata(t *testing.T) {
	b, api := newTestBuilder(t)
	api.Attribs["InPosition"] = 0

	_, err := b.Build(simpleDeclaration().Slot("InPosition", KindAttribute, nil))
	if !errors.Is(err, ErrMissingMetadata) {
		t.Fatalf("expected ErrMissingMetadata, got %v", err)
	}
	if !strings.Contains(err.Error(), "InPosition") {
		t.Errorf("error should name the slot: %v", err)
	}
	if api.Count("LinkProgram") != 1 {
		t.Error("compile and link should have succeeded before binding")
	}
	created, _ := api.Last("CreateProgram")
	if !api.Deleted(created.Args[0].(uint32)) {
		t.Error("program handle not deleted after failure")
	}
}

func TestBuildLinkFailure(t *testing.T) {
	b, api := newTestBuilder(t)
	api.LinkLog = "error: vertex output OutColor not read by fragment shader"

	_, err := b.Build(simpleDeclaration())
	var lerr *LinkError
	if !errors.As(err, &lerr) {
		t.Fatalf("expected LinkError, got %v", err)
	}
	if lerr.Program != "SimpleProgram" || !strings.Contains(lerr.Log, "OutColor") {
		t.Errorf("link error = %+v", lerr)
	}
	if api.Count("DeleteShader") != 2 {
		t.Errorf("stage units must be released after a failed link, got %d", api.Count("DeleteShader"))
	}
}

func TestBuildValidation(t *testing.T) {
	b, api := newTestBuilder(t, WithValidation(true))
	api.ValidateLog = "sampler type mismatch"

	_, err := b.Build(simpleDeclaration())
	var verr *ValidateError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidateError, got %v", err)
	}
	if api.Count("ValidateProgram") != 1 {
		t.Error("expected one validate call")
	}
}

func TestBuildCustomRegistry(t *testing.T) {
	reg := NewRegistry()
	reg.Register(kindCustom, func(api gpu.API, program uint32, slot Slot) (Accessor, error) {
		return &FragOutput{name: slot.Name, location: 7}, nil
	})

	b, _ := newTestBuilder(t, WithRegistry(reg))
	p, err := b.Build(simpleDeclaration().Slot("Special", kindCustom, nil).Uniform("Time", KindFloat))
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if out := MustGet[*FragOutput](p, "Special"); out.Location() != 7 {
		t.Errorf("custom accessor location = %d", out.Location())
	}
	// The private registry has no float rule.
	if _, ok := p.Accessor("Time"); ok {
		t.Error("Time should be unbound with a registry that lacks float")
	}
}

func TestProgramUseAndDestroy(t *testing.T) {
	b, api := newTestBuilder(t)

	p, err := b.Build(simpleDeclaration())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	p.Use()
	if ActiveProgram() != p.Handle() {
		t.Errorf("ActiveProgram = %d, want %d", ActiveProgram(), p.Handle())
	}

	p.Destroy()
	p.Destroy()
	if api.Count("DeleteProgram") != 1 {
		t.Errorf("expected one DeleteProgram, got %d", api.Count("DeleteProgram"))
	}
	if ActiveProgram() != 0 {
		t.Error("destroying the active program should clear ActiveProgram")
	}
	if err := p.Validate(); !errors.Is(err, ErrDestroyed) {
		t.Errorf("Validate after Destroy: got %v", err)
	}
}
