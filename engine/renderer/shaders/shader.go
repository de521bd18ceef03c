package shaders

import (
	"fmt"

	"github.com/spaghettifunk/tinyrender/engine/core"
	"github.com/spaghettifunk/tinyrender/engine/math"
	"github.com/spaghettifunk/tinyrender/engine/renderer"
)

/**
 * @brief Per-draw constants shared by every built-in shader.
 *
 * Zero-value matrices are treated as identity. LightDir points from the
 * surface towards the light, in the mesh's object space; a zero-value
 * LightDir means (0, 0, 1).
 */
type Uniforms struct {
	ModelView  math.Matrix
	Projection math.Matrix
	LightDir   math.Vector[float32]
}

func (u Uniforms) transform() math.Matrix {
	modelView, projection := u.ModelView, u.Projection
	if modelView.Rows() == 0 {
		modelView = math.Identity(4)
	}
	if projection.Rows() == 0 {
		projection = math.Identity(4)
	}
	return projection.Mul(modelView)
}

func (u Uniforms) light() math.Vector[float32] {
	if u.LightDir.Len() == 0 || u.LightDir.Norm() == 0 {
		return math.NewVector[float32](0, 0, 1)
	}
	return math.Normalize(u.LightDir, 1)
}

/**
 * @brief The vertex stage every built-in shader shares. It transforms
 * corners to clip space and records them, with their texture
 * coordinates, as the varyings of the current face.
 */
type vertexStage struct {
	mesh      renderer.Mesh
	transform math.Matrix
	light     math.Vector[float32]

	// One column per corner of the face being rasterized.
	varyingTri math.Matrix // 4x3, clip space
	varyingUV  math.Matrix // 2x3
}

func newVertexStage(kind string, mesh renderer.Mesh, uniforms Uniforms) vertexStage {
	if mesh == nil {
		panic(fmt.Errorf("%s shader: %w", kind, core.ErrMissingMesh))
	}
	return vertexStage{
		mesh:       mesh,
		transform:  uniforms.transform(),
		light:      uniforms.light(),
		varyingTri: math.NewMatrix(4, 3),
		varyingUV:  math.NewMatrix(2, 3),
	}
}

func (vs *vertexStage) vertex(face, nthvert int) math.Vector[float32] {
	clip := vs.transform.MulVec(vs.mesh.Vertex(face, nthvert).Embed(4, 1))
	vs.varyingTri.SetCol(nthvert, clip)
	vs.varyingUV.SetCol(nthvert, vs.mesh.UV(face, nthvert))
	return clip
}

// intensity returns the Lambert term of a normal, zero for a zero normal.
func (vs *vertexStage) intensity(normal math.Vector[float32]) float32 {
	if normal.Norm() == 0 {
		return 0
	}
	return math.Normalize(normal, 1).Dot(vs.light)
}

// UniformShader paints every covered pixel with one color.
type UniformShader struct {
	vertexStage
	Color uint32
}

func NewUniformShader(mesh renderer.Mesh, uniforms Uniforms, color uint32) *UniformShader {
	return &UniformShader{
		vertexStage: newVertexStage("uniform", mesh, uniforms),
		Color:       color,
	}
}

func (s *UniformShader) Vertex(face, nthvert int) math.Vector[float32] {
	return s.vertex(face, nthvert)
}

func (s *UniformShader) Fragment(bar math.Vector[float32]) (uint32, bool) {
	return s.Color, false
}
