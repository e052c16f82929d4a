package glapi

import (
	"github.com/go-gl/gl/v4.3-core/gl"

	"github.com/Faultbox/shaderkit/internal/engine/gpu"
)

func shaderType(stage gpu.Stage) uint32 {
	switch stage {
	case gpu.StageVertex:
		return gl.VERTEX_SHADER
	case gpu.StageTessControl:
		return gl.TESS_CONTROL_SHADER
	case gpu.StageTessEvaluation:
		return gl.TESS_EVALUATION_SHADER
	case gpu.StageGeometry:
		return gl.GEOMETRY_SHADER
	case gpu.StageFragment:
		return gl.FRAGMENT_SHADER
	case gpu.StageCompute:
		return gl.COMPUTE_SHADER
	}
	return 0
}

func captureMode(mode gpu.CaptureMode) uint32 {
	if mode == gpu.InterleavedAttribs {
		return gl.INTERLEAVED_ATTRIBS
	}
	return gl.SEPARATE_ATTRIBS
}

func primitiveMode(p gpu.Primitive) uint32 {
	switch p {
	case gpu.Lines:
		return gl.LINES
	case gpu.Triangles:
		return gl.TRIANGLES
	default:
		return gl.POINTS
	}
}

func bufferTarget(t gpu.BufferTarget) uint32 {
	switch t {
	case gpu.UniformBuffer:
		return gl.UNIFORM_BUFFER
	case gpu.ShaderStorageBuffer:
		return gl.SHADER_STORAGE_BUFFER
	case gpu.TransformFeedbackBuffer:
		return gl.TRANSFORM_FEEDBACK_BUFFER
	default:
		return gl.ARRAY_BUFFER
	}
}

func glDataType(t gpu.DataType) uint32 {
	switch t {
	case gpu.HalfFloat:
		return gl.HALF_FLOAT
	case gpu.Int:
		return gl.INT
	case gpu.UnsignedInt:
		return gl.UNSIGNED_INT
	case gpu.Short:
		return gl.SHORT
	case gpu.UnsignedShort:
		return gl.UNSIGNED_SHORT
	case gpu.Byte:
		return gl.BYTE
	case gpu.UnsignedByte:
		return gl.UNSIGNED_BYTE
	default:
		return gl.FLOAT
	}
}

func textureTarget(t gpu.TextureTarget) uint32 {
	switch t {
	case gpu.Texture1D:
		return gl.TEXTURE_1D
	case gpu.Texture3D:
		return gl.TEXTURE_3D
	case gpu.Texture2DArray:
		return gl.TEXTURE_2D_ARRAY
	case gpu.TextureCubeMap:
		return gl.TEXTURE_CUBE_MAP
	case gpu.TextureBuffer:
		return gl.TEXTURE_BUFFER
	default:
		return gl.TEXTURE_2D
	}
}

func imageAccess(a gpu.Access) uint32 {
	switch a {
	case gpu.ReadOnly:
		return gl.READ_ONLY
	case gpu.WriteOnly:
		return gl.WRITE_ONLY
	default:
		return gl.READ_WRITE
	}
}

func imageFormat(f gpu.ImageFormat) uint32 {
	switch f {
	case gpu.RGBA16F:
		return gl.RGBA16F
	case gpu.RGBA32F:
		return gl.RGBA32F
	case gpu.R32F:
		return gl.R32F
	case gpu.R32I:
		return gl.R32I
	case gpu.R32UI:
		return gl.R32UI
	default:
		return gl.RGBA8
	}
}
