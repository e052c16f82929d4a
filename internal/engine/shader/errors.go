package shader

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Faultbox/shaderkit/internal/engine/gpu"
)

var (
	// ErrSourceNotFound is returned when a top-level or included source file is missing.
	ErrSourceNotFound = errors.New("shader source not found")
	// ErrNoSources is returned for declarations without any stage sources.
	ErrNoSources = errors.New("no shader sources declared")
	// ErrMissingMetadata is returned when a slot kind needs metadata the declaration lacks.
	ErrMissingMetadata = errors.New("missing slot metadata")
	// ErrDestroyed is returned for operations on a destroyed resource.
	ErrDestroyed = errors.New("resource destroyed")
	// ErrNotActive is returned when a transform feedback object is used while
	// another one is bound.
	ErrNotActive = errors.New("transform feedback object is not bound")
	// ErrInvalidState is returned for transform feedback transitions that are
	// not allowed from the current state.
	ErrInvalidState = errors.New("invalid transform feedback state")
	// ErrUnknownKind is returned when a kind name is not registered.
	ErrUnknownKind = errors.New("unknown slot kind")
)

// CompileError reports a stage that failed to compile.
type CompileError struct {
	Program string
	Stage   gpu.Stage
	File    string
	Log     string
	// Files maps the file indices used in #line markers (and therefore in
	// the compiler log) to source paths.
	Files []string
}

func (e *CompileError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: %s shader %q failed to compile", e.Program, e.Stage, e.File)
	if len(e.Files) > 1 {
		b.WriteString(" (files:")
		for i, f := range e.Files {
			fmt.Fprintf(&b, " %d=%s", i, f)
		}
		b.WriteString(")")
	}
	if e.Log != "" {
		b.WriteString(":\n")
		b.WriteString(strings.TrimSpace(e.Log))
	}
	return b.String()
}

// LinkError reports a program that failed to link.
type LinkError struct {
	Program string
	Log     string
}

func (e *LinkError) Error() string {
	return fmt.Sprintf("%s: link failed: %s", e.Program, strings.TrimSpace(e.Log))
}

// ValidateError reports a program rejected by glValidateProgram.
type ValidateError struct {
	Program string
	Log     string
}

func (e *ValidateError) Error() string {
	return fmt.Sprintf("%s: validation failed: %s", e.Program, strings.TrimSpace(e.Log))
}
