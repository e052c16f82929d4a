package gpu

import (
	"fmt"
	"strings"
)

// Stage is a programmable pipeline stage.
type Stage uint8

const (
	StageVertex Stage = iota
	StageTessControl
	StageTessEvaluation
	StageGeometry
	StageFragment
	StageCompute
)

var stageNames = [...]string{
	StageVertex:         "vertex",
	StageTessControl:    "tess_control",
	StageTessEvaluation: "tess_evaluation",
	StageGeometry:       "geometry",
	StageFragment:       "fragment",
	StageCompute:        "compute",
}

func (s Stage) String() string {
	if int(s) < len(stageNames) {
		return stageNames[s]
	}
	return fmt.Sprintf("Stage(%d)", s)
}

// ParseStage converts a stage name as written in manifests.
func ParseStage(name string) (Stage, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, n := range stageNames {
		if n == name {
			return Stage(i), nil
		}
	}
	return 0, fmt.Errorf("unknown shader stage %q", name)
}

// CaptureMode selects how transform feedback outputs are laid out in buffers.
type CaptureMode uint8

const (
	// SeparateAttribs writes each output to its own binding point.
	SeparateAttribs CaptureMode = iota
	// InterleavedAttribs writes all outputs to binding point 0.
	InterleavedAttribs
)

func (m CaptureMode) String() string {
	switch m {
	case SeparateAttribs:
		return "separate"
	case InterleavedAttribs:
		return "interleaved"
	}
	return fmt.Sprintf("CaptureMode(%d)", m)
}

// ParseCaptureMode accepts "separate" or "interleaved". Empty means separate.
func ParseCaptureMode(name string) (CaptureMode, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "separate":
		return SeparateAttribs, nil
	case "interleaved":
		return InterleavedAttribs, nil
	}
	return 0, fmt.Errorf("unknown capture mode %q", name)
}

// Primitive is the primitive kind captured between Begin and End.
type Primitive uint8

const (
	Points Primitive = iota
	Lines
	Triangles
)

func (p Primitive) String() string {
	switch p {
	case Points:
		return "points"
	case Lines:
		return "lines"
	case Triangles:
		return "triangles"
	}
	return fmt.Sprintf("Primitive(%d)", p)
}

// BufferTarget is an indexed or plain buffer binding target.
type BufferTarget uint8

const (
	ArrayBuffer BufferTarget = iota
	UniformBuffer
	ShaderStorageBuffer
	TransformFeedbackBuffer
)

// DataType is the component type of a vertex attribute.
type DataType uint8

const (
	Float DataType = iota
	HalfFloat
	Int
	UnsignedInt
	Short
	UnsignedShort
	Byte
	UnsignedByte
)

var dataTypeNames = [...]string{
	Float:         "float",
	HalfFloat:     "half_float",
	Int:           "int",
	UnsignedInt:   "uint",
	Short:         "short",
	UnsignedShort: "ushort",
	Byte:          "byte",
	UnsignedByte:  "ubyte",
}

func (t DataType) String() string {
	if int(t) < len(dataTypeNames) {
		return dataTypeNames[t]
	}
	return fmt.Sprintf("DataType(%d)", t)
}

// Size returns the size of one component in bytes.
func (t DataType) Size() int {
	switch t {
	case HalfFloat, Short, UnsignedShort:
		return 2
	case Byte, UnsignedByte:
		return 1
	default:
		return 4
	}
}

// ParseDataType converts a manifest type name. Empty means float.
func ParseDataType(name string) (DataType, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return Float, nil
	}
	for i, n := range dataTypeNames {
		if n == name {
			return DataType(i), nil
		}
	}
	return 0, fmt.Errorf("unknown attribute type %q", name)
}

// TextureTarget is the texture binding target.
type TextureTarget uint8

const (
	Texture1D TextureTarget = iota
	Texture2D
	Texture3D
	Texture2DArray
	TextureCubeMap
	TextureBuffer
)

// Access is the image access qualifier used when binding image units.
type Access uint8

const (
	ReadOnly Access = iota
	WriteOnly
	ReadWrite
)

// ImageFormat is the internal format an image unit is bound with.
type ImageFormat uint8

const (
	RGBA8 ImageFormat = iota
	RGBA16F
	RGBA32F
	R32F
	R32I
	R32UI
)
