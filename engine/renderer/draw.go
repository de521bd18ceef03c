package renderer

import (
	"fmt"

	"github.com/spaghettifunk/tinyrender/engine/core"
	"github.com/spaghettifunk/tinyrender/engine/math"
)

// Stats summarizes one draw call.
type Stats struct {
	Faces  int
	Pixels int
}

func (s Stats) Add(o Stats) Stats {
	return Stats{Faces: s.Faces + o.Faces, Pixels: s.Pixels + o.Pixels}
}

/**
 * @brief Draws every face of mesh: three Vertex calls build the 4x3 clip
 * matrix, which is then rasterized into scene.
 * Panics when mesh is nil.
 */
func DrawMesh(scene *Scene, mesh Mesh, shader Shader, viewport math.Matrix) Stats {
	if mesh == nil {
		panic(fmt.Errorf("draw mesh: %w", core.ErrMissingMesh))
	}
	stats := Stats{}
	for face := 0; face < mesh.FaceCount(); face++ {
		clip := math.NewMatrix(4, 3)
		for nth := 0; nth < 3; nth++ {
			clip.SetCol(nth, shader.Vertex(face, nth))
		}
		stats.Pixels += scene.Triangle(clip, shader, viewport)
		stats.Faces++
	}
	return stats
}

/**
 * @brief Draws the edges of every face of mesh with Bresenham lines.
 * @param transform The full object-to-screen matrix (viewport x projection x model-view).
 * Faces with a corner on the eye plane are skipped.
 * Panics when mesh is nil.
 */
func DrawWireframe(scene *Scene, mesh Mesh, transform math.Matrix, color uint32) Stats {
	if mesh == nil {
		panic(fmt.Errorf("draw wireframe: %w", core.ErrMissingMesh))
	}
	stats := Stats{}
faces:
	for face := 0; face < mesh.FaceCount(); face++ {
		var corners [3]math.Vector[float32]
		for nth := 0; nth < 3; nth++ {
			corners[nth] = transform.Mul(math.FromHomogeneous(mesh.Vertex(face, nth))).ToEuclidean()
			if !finite(corners[nth].X()) || !finite(corners[nth].Y()) {
				continue faces
			}
		}
		for j := 0; j < 3; j++ {
			a, b := corners[j], corners[(j+1)%3]
			stats.Pixels += scene.segment(float64(a.X()), float64(a.Y()), float64(b.X()), float64(b.Y()), color)
		}
		stats.Faces++
	}
	return stats
}
