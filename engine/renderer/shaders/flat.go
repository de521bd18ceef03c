package shaders

import (
	"github.com/spaghettifunk/tinyrender/engine/math"
	"github.com/spaghettifunk/tinyrender/engine/renderer"
)

/**
 * @brief Lambert shading with one intensity per face, computed from the
 * face's geometric normal. Faces turned away from the light are discarded.
 */
type FlatShader struct {
	vertexStage
	Color uint32

	corners       [3]math.Vector[float32]
	faceIntensity float32
}

func NewFlatShader(mesh renderer.Mesh, uniforms Uniforms, color uint32) *FlatShader {
	return &FlatShader{
		vertexStage: newVertexStage("flat", mesh, uniforms),
		Color:       color,
	}
}

func (s *FlatShader) Vertex(face, nthvert int) math.Vector[float32] {
	s.corners[nthvert] = s.mesh.Vertex(face, nthvert)
	if nthvert == 2 {
		normal := s.corners[1].Sub(s.corners[0]).Cross(s.corners[2].Sub(s.corners[0]))
		s.faceIntensity = s.intensity(normal)
	}
	return s.vertex(face, nthvert)
}

func (s *FlatShader) Fragment(bar math.Vector[float32]) (uint32, bool) {
	if s.faceIntensity <= 0 {
		return 0, true
	}
	return renderer.ScaleColor(s.Color, s.faceIntensity), false
}
