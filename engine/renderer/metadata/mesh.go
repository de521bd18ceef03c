package metadata

import (
	"fmt"
	m "math"

	"github.com/spaghettifunk/tinyrender/engine/math"
)

/**
 * @brief Indices of one face corner into the model's vertex, texture
 * coordinate and normal lists. T and N are -1 when the corner has none.
 */
type FaceCorner struct {
	V int
	T int
	N int
}

/**
 * @brief A triangle mesh loaded from disk. Every face has exactly three
 * corners; polygons are triangulated by the loader.
 */
type Model struct {
	Name string
	/** @brief The model Generation. Incremented every time the data is reloaded. */
	Generation uint32
	/** @brief The name of the material library referenced by the file, if any. */
	MaterialLib string
	/** @brief The material selected by the first usemtl statement, if any. */
	MaterialName string

	Verts   []math.Vector[float32]
	UVs     []math.Vector[float32]
	Normals []math.Vector[float32]
	Faces   [][3]FaceCorner
}

func (md *Model) FaceCount() int   { return len(md.Faces) }
func (md *Model) VertexCount() int { return len(md.Verts) }

func (md *Model) corner(face, nth int) FaceCorner {
	if face < 0 || face >= len(md.Faces) || nth < 0 || nth > 2 {
		panic(fmt.Sprintf("metadata: corner (%d, %d) out of range for %d faces", face, nth, len(md.Faces)))
	}
	return md.Faces[face][nth]
}

func (md *Model) Vertex(face, nth int) math.Vector[float32] {
	return md.Verts[md.corner(face, nth).V]
}

// UV returns (0, 0) for corners without a texture coordinate.
func (md *Model) UV(face, nth int) math.Vector[float32] {
	c := md.corner(face, nth)
	if c.T < 0 {
		return math.NewVectorZero[float32](2)
	}
	return md.UVs[c.T]
}

// Normal falls back to the face's geometric normal for corners without one.
func (md *Model) Normal(face, nth int) math.Vector[float32] {
	c := md.corner(face, nth)
	if c.N < 0 {
		return md.FaceNormal(face)
	}
	return md.Normals[c.N]
}

// FaceNormal returns the unnormalized normal of the counter-clockwise face.
func (md *Model) FaceNormal(face int) math.Vector[float32] {
	v0 := md.Vertex(face, 0)
	return md.Vertex(face, 1).Sub(v0).Cross(md.Vertex(face, 2).Sub(v0))
}

// Bounds returns the axis-aligned bounding box of all vertices.
func (md *Model) Bounds() (min, max math.Vector[float32]) {
	min = math.NewVectorFill[float32](3, m.MaxFloat32)
	max = math.NewVectorFill[float32](3, -m.MaxFloat32)
	for _, v := range md.Verts {
		for i := 0; i < 3; i++ {
			if v.At(i) < min.At(i) {
				min.Set(i, v.At(i))
			}
			if v.At(i) > max.At(i) {
				max.Set(i, v.At(i))
			}
		}
	}
	return min, max
}
