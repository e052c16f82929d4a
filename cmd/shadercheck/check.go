package main

import (
	"errors"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/Faultbox/shaderkit/internal/engine/shader"
	"github.com/Faultbox/shaderkit/internal/logger"
)

// check builds every declaration and returns how many failed. Programs
// that build are destroyed again.
func check(b *shader.Builder, decls []*shader.Declaration) int {
	log := logger.Named("shadercheck")

	failed := 0
	for _, decl := range decls {
		p, err := b.Build(decl)
		if err != nil {
			failed++
			log.Error("program failed", append([]zap.Field{zap.String("program", decl.Name)}, errorFields(err)...)...)
			continue
		}

		for _, slot := range p.Unbound() {
			log.Warn("slot has no accessor",
				zap.String("program", decl.Name),
				zap.String("slot", slot.Name),
				zap.Stringer("kind", slot.Kind),
			)
		}
		log.Info("program ok",
			zap.String("program", decl.Name),
			zap.Int("feedback_outputs", len(p.FeedbackOutputs())),
		)
		p.Destroy()
	}
	return failed
}

// errorFields pulls the driver log out of build errors so it is not
// flattened into the error string.
func errorFields(err error) []zap.Field {
	var cerr *shader.CompileError
	if errors.As(err, &cerr) {
		return []zap.Field{
			zap.Stringer("stage", cerr.Stage),
			zap.String("file", cerr.File),
			zap.Strings("files", cerr.Files),
			zap.String("log", cerr.Log),
		}
	}
	var lerr *shader.LinkError
	if errors.As(err, &lerr) {
		return []zap.Field{zap.String("stage", "link"), zap.String("log", lerr.Log)}
	}
	var verr *shader.ValidateError
	if errors.As(err, &verr) {
		return []zap.Field{zap.String("stage", "validate"), zap.String("log", verr.Log)}
	}
	return []zap.Field{zap.Error(err)}
}

// preprocess writes the resolved source of a logical file followed by the
// file index table used in #line markers.
func preprocess(w io.Writer, r *shader.Resolver, name string) error {
	src, err := r.Resolve(name)
	if err != nil {
		return err
	}
	if _, err := io.WriteString(w, src.Text); err != nil {
		return err
	}
	for i, file := range src.Files {
		if _, err := fmt.Fprintf(w, "// %d: %s\n", i, file); err != nil {
			return err
		}
	}
	return nil
}
