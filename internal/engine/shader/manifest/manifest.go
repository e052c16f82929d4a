// Package manifest reads program declarations from YAML.
//
// A manifest lists programs by name, the logical source file for each stage,
// and the slots the program exposes:
//
//	programs:
//	  - name: Particles
//	    stages:
//	      vertex: Particles.Vertex
//	    capture: interleaved
//	    slots:
//	      - {name: InPosition, kind: attribute, components: 3}
//	      - {name: Time, kind: float}
//	      - {name: OutPosition, kind: feedback_output}
package manifest

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/Faultbox/shaderkit/internal/engine/gpu"
	"github.com/Faultbox/shaderkit/internal/engine/shader"
)

// Program is one program entry.
type Program struct {
	Name    string            `yaml:"name"`
	Stages  map[string]string `yaml:"stages"`
	Capture string            `yaml:"capture,omitempty"`
	Slots   []Slot            `yaml:"slots,omitempty"`
}

// Slot is one slot entry. Components, Type and Normalized only apply to
// attributes.
type Slot struct {
	Name       string `yaml:"name"`
	Kind       string `yaml:"kind"`
	Components int32  `yaml:"components,omitempty"`
	Type       string `yaml:"type,omitempty"`
	Normalized bool   `yaml:"normalized,omitempty"`
}

type document struct {
	Programs []Program `yaml:"programs"`
}

// Decode reads a manifest document. Unknown fields are rejected.
func Decode(r io.Reader) ([]Program, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var doc document
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("decode manifest: %w", err)
	}
	return doc.Programs, nil
}

// Parse decodes a manifest held in memory.
func Parse(data []byte) ([]Program, error) {
	return Decode(bytes.NewReader(data))
}

// Load decodes the manifest file at path.
func Load(path string) ([]Program, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	programs, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return programs, nil
}

// Find returns the program called name.
func Find(programs []Program, name string) (Program, bool) {
	for _, p := range programs {
		if p.Name == name {
			return p, true
		}
	}
	return Program{}, false
}

// Declaration converts the entry into a shader declaration. Stages are
// ordered by pipeline position.
func (p Program) Declaration() (*shader.Declaration, error) {
	decl := shader.Declare(p.Name)

	stages := make([]gpu.Stage, 0, len(p.Stages))
	files := make(map[gpu.Stage]string, len(p.Stages))
	for name, file := range p.Stages {
		stage, err := gpu.ParseStage(name)
		if err != nil {
			return nil, fmt.Errorf("program %q: %w", p.Name, err)
		}
		stages = append(stages, stage)
		files[stage] = file
	}
	sort.Slice(stages, func(i, j int) bool { return stages[i] < stages[j] })
	for _, stage := range stages {
		decl.Source(stage, files[stage])
	}

	mode, err := gpu.ParseCaptureMode(p.Capture)
	if err != nil {
		return nil, fmt.Errorf("program %q: %w", p.Name, err)
	}
	decl.Capture(mode)

	for _, s := range p.Slots {
		kind, err := shader.ParseKind(s.Kind)
		if err != nil {
			return nil, fmt.Errorf("program %q: slot %q: %w", p.Name, s.Name, err)
		}
		if kind != shader.KindAttribute {
			decl.Slot(s.Name, kind, nil)
			continue
		}

		if s.Components == 0 {
			return nil, fmt.Errorf("program %q: slot %q: components: %w", p.Name, s.Name, shader.ErrMissingMetadata)
		}
		dt, err := gpu.ParseDataType(s.Type)
		if err != nil {
			return nil, fmt.Errorf("program %q: slot %q: %w", p.Name, s.Name, err)
		}
		decl.Attribute(s.Name, shader.AttribLayout{
			Components: s.Components,
			Type:       dt,
			Normalized: s.Normalized,
		})
	}
	return decl, nil
}
