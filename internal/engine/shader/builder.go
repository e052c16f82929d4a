package shader

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/shaderkit/internal/engine/gpu"
	"github.com/Faultbox/shaderkit/internal/logger"
)

// Builder compiles, links and binds programs from declarations.
type Builder struct {
	api      gpu.API
	resolver *Resolver
	registry *Registry
	validate bool
	log      *zap.Logger
}

// Option configures a Builder.
type Option func(*Builder)

// WithResolver sets the source resolver. The default reads from
// DefaultBasePath on disk.
func WithResolver(r *Resolver) Option {
	return func(b *Builder) { b.resolver = r }
}

// WithRegistry sets the binding registry. The default is DefaultRegistry.
func WithRegistry(r *Registry) Option {
	return func(b *Builder) { b.registry = r }
}

// WithValidation runs glValidateProgram after a successful link.
func WithValidation(enabled bool) Option {
	return func(b *Builder) { b.validate = enabled }
}

// WithLogger sets the builder logger.
func WithLogger(log *zap.Logger) Option {
	return func(b *Builder) { b.log = log }
}

// NewBuilder creates a builder issuing calls through api.
func NewBuilder(api gpu.API, opts ...Option) *Builder {
	b := &Builder{api: api, registry: DefaultRegistry}
	for _, opt := range opts {
		opt(b)
	}
	if b.log == nil {
		b.log = logger.Named("shader.builder")
	}
	if b.resolver == nil {
		b.resolver = DirResolver(DefaultBasePath, WithResolverLogger(b.log))
	}
	return b
}

// Build creates a program from decl. Any failure deletes the GPU program
// and returns a nil Program; there is no partially built result.
func (b *Builder) Build(decl *Declaration) (*Program, error) {
	if err := checkDeclaration(decl); err != nil {
		return nil, err
	}

	p := &Program{
		api:       b.api,
		decl:      cloneDeclaration(decl),
		accessors: make(map[string]Accessor, len(decl.Slots)),
	}
	p.handle = b.api.CreateProgram()

	if err := b.build(p); err != nil {
		p.state = Failed
		p.Destroy()
		return nil, err
	}

	b.log.Info("program ready",
		zap.String("program", p.decl.Name),
		zap.Uint32("handle", p.handle),
		zap.Int("slots", len(p.accessors)),
		zap.Int("unbound", len(p.unbound)),
	)
	return p, nil
}

func (b *Builder) build(p *Program) error {
	name := p.decl.Name

	p.state = Compiling
	units := make([]uint32, 0, len(p.decl.Sources))
	release := func() {
		for _, u := range units {
			b.api.DeleteShader(u)
		}
	}

	for _, src := range p.decl.Sources {
		resolved, err := b.resolver.Resolve(src.File)
		if err != nil {
			release()
			return fmt.Errorf("%s: %s shader: %w", name, src.Stage, err)
		}

		unit, log, ok := compileStage(b.api, src.Stage, resolved.Text)
		if !ok {
			release()
			return &CompileError{
				Program: name,
				Stage:   src.Stage,
				File:    src.File,
				Log:     log,
				Files:   resolved.Files,
			}
		}
		b.api.AttachShader(p.handle, unit)
		units = append(units, unit)
		b.log.Debug("stage compiled",
			zap.String("program", name),
			zap.Stringer("stage", src.Stage),
			zap.Strings("files", resolved.Files),
		)
	}

	if names := p.decl.feedbackNames(); len(names) > 0 {
		for i, n := range names {
			out := &FeedbackOutput{name: n, index: uint32(i)}
			p.feedback = append(p.feedback, out)
			p.accessors[n] = out
		}
		b.api.TransformFeedbackVaryings(p.handle, names, p.decl.CaptureMode)
	}

	p.state = Linking
	if log, ok := linkProgram(b.api, p.handle, units); !ok {
		return &LinkError{Program: name, Log: log}
	}

	if err := b.bindSlots(p); err != nil {
		return err
	}

	if b.validate {
		if err := p.Validate(); err != nil {
			return err
		}
	}

	p.state = Ready
	return nil
}

// bindSlots creates the accessors of every slot except feedback outputs.
// Slots without a rule stay unbound.
func (b *Builder) bindSlots(p *Program) error {
	for _, slot := range p.decl.Slots {
		if slot.Kind == KindFeedbackOutput {
			continue
		}

		ctor, ok := b.registry.Lookup(slot.Kind)
		if !ok {
			b.log.Debug("no binding rule for slot",
				zap.String("program", p.decl.Name),
				zap.String("slot", slot.Name),
				zap.Stringer("kind", slot.Kind),
			)
			p.unbound = append(p.unbound, slot)
			continue
		}

		a, err := ctor(b.api, p.handle, slot)
		if err != nil {
			return fmt.Errorf("%s: slot %q: %w", p.decl.Name, slot.Name, err)
		}
		if a == nil {
			p.unbound = append(p.unbound, slot)
			continue
		}
		if !a.Active() {
			b.log.Debug("slot not active in program",
				zap.String("program", p.decl.Name),
				zap.String("slot", slot.Name),
			)
		}
		p.accessors[slot.Name] = a
	}
	return nil
}

func checkDeclaration(decl *Declaration) error {
	if decl == nil {
		return ErrNoSources
	}
	if len(decl.Sources) == 0 {
		return fmt.Errorf("%s: %w", decl.Name, ErrNoSources)
	}
	seen := make(map[string]bool, len(decl.Slots))
	for _, s := range decl.Slots {
		if s.Name == "" {
			return fmt.Errorf("%s: slot with empty name", decl.Name)
		}
		if seen[s.Name] {
			return fmt.Errorf("%s: slot %q declared twice", decl.Name, s.Name)
		}
		seen[s.Name] = true
	}
	return nil
}

func cloneDeclaration(decl *Declaration) Declaration {
	d := *decl
	d.Sources = append([]StageSource(nil), decl.Sources...)
	d.Slots = append([]Slot(nil), decl.Slots...)
	return d
}
