package metadata

import "github.com/spaghettifunk/tinyrender/engine/math"

/**
 * @brief Describes how the next frame is drawn. The engine fills it in and
 * hands it to the game's render hook, which may change any field before
 * the frame is rasterized.
 */
type RenderPacket struct {
	DeltaTime float64
	/** @brief The shading model used for the mesh. */
	Shader ShaderType
	/** @brief Draw face edges instead of filled triangles. */
	Wireframe bool
	/** @brief The packed colour used for wireframe edges. */
	WireframeColour uint32
	/** @brief The packed colour the color buffer is cleared to. */
	Background uint32
	/** @brief The base colour for untextured shading. */
	DiffuseColour uint32
	/** @brief The object-to-world transform of the mesh. */
	Model math.Matrix
	/** @brief The light direction in object space, towards the light. */
	LightDir math.Vector[float32]
}
