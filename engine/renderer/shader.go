package renderer

import "github.com/spaghettifunk/tinyrender/engine/math"

/**
 * @brief A programmable pair of vertex and fragment stages.
 *
 * Vertex is called three times per face, once per corner, before the
 * rasterizer consumes the face. Implementations record whatever per-corner
 * data they need (varyings) and interpolate it in Fragment.
 */
type Shader interface {
	/**
	 * @brief Transforms one corner of a face.
	 * @param face The face index in the mesh.
	 * @param nthvert The corner index, 0 to 2.
	 * @return The corner position in clip space (4 components).
	 */
	Vertex(face, nthvert int) math.Vector[float32]

	/**
	 * @brief Shades one pixel.
	 * @param bar Perspective-corrected barycentric weights of the pixel (3 components).
	 * @return The packed color, and true to discard the pixel.
	 */
	Fragment(bar math.Vector[float32]) (color uint32, discard bool)
}

/**
 * @brief Geometry source consumed by shaders and the draw driver.
 * Faces are triangles; corners are addressed by (face, nth).
 */
type Mesh interface {
	FaceCount() int
	VertexCount() int
	// Vertex returns the object-space position of a face corner (3 components).
	Vertex(face, nth int) math.Vector[float32]
	// UV returns the texture coordinate of a face corner (2 components).
	UV(face, nth int) math.Vector[float32]
	// Normal returns the normal of a face corner (3 components).
	Normal(face, nth int) math.Vector[float32]
}

/**
 * @brief Texel source for textured shading. (0,0) is the bottom-left texel.
 * Out-of-range coordinates clamp to the nearest edge.
 */
type Texture interface {
	Width() int
	Height() int
	Pixel(x, y int) uint32
}
