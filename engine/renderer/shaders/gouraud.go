package shaders

import (
	"github.com/spaghettifunk/tinyrender/engine/math"
	"github.com/spaghettifunk/tinyrender/engine/renderer"
)

// GouraudShader interpolates per-corner Lambert intensities across the face.
type GouraudShader struct {
	vertexStage
	Color uint32

	varyingIntensity math.Vector[float32]
}

func NewGouraudShader(mesh renderer.Mesh, uniforms Uniforms, color uint32) *GouraudShader {
	return &GouraudShader{
		vertexStage:      newVertexStage("gouraud", mesh, uniforms),
		Color:            color,
		varyingIntensity: math.NewVectorZero[float32](3),
	}
}

func (s *GouraudShader) Vertex(face, nthvert int) math.Vector[float32] {
	intensity := max(0, s.intensity(s.mesh.Normal(face, nthvert)))
	s.varyingIntensity.Set(nthvert, intensity)
	return s.vertex(face, nthvert)
}

func (s *GouraudShader) Fragment(bar math.Vector[float32]) (uint32, bool) {
	return renderer.ScaleColor(s.Color, s.varyingIntensity.Dot(bar)), false
}
