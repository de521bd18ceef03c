package components

import (
	"github.com/spaghettifunk/tinyrender/engine/math"
)

/**
 * @brief Represents a look-at camera used to build the view and
 * projection matrices of a frame.
 */
type Camera struct {
	/**
	 * @brief The position of this camera.
	 * NOTE: Do not set this directly, use SetEye() instead
	 * so the view matrix is recalculated when needed.
	 */
	Eye math.Vector[float32]
	/** @brief The point the camera looks at. */
	Center math.Vector[float32]
	/** @brief The up direction used to build the camera basis. */
	Up math.Vector[float32]
	/** @brief Internal flag used to determine when the matrices need to be rebuilt. */
	IsDirty bool
	/**
	 * @brief The view matrix of this camera.
	 * NOTE: IMPORTANT: Do not get this directly, use GetView() instead
	 * so the view matrix is recalculated when needed.
	 */
	ViewMatrix math.Matrix
	/** @brief The projection matrix matching the current eye distance. */
	ProjectionMatrix math.Matrix
}

func NewCamera(eye, center, up math.Vector[float32]) *Camera {
	camera := &Camera{}
	camera.Reset()
	camera.Eye = eye
	camera.Center = center
	camera.Up = up
	camera.IsDirty = true
	return camera
}

func (c *Camera) Reset() {
	c.Eye = math.NewVector[float32](0, 0, 3)
	c.Center = math.NewVectorZero[float32](3)
	c.Up = math.NewVector[float32](0, 1, 0)
	c.IsDirty = true
	c.ViewMatrix = math.Identity(4)
	c.ProjectionMatrix = math.Identity(4)
}

func (c *Camera) GetEye() math.Vector[float32] {
	return c.Eye
}

func (c *Camera) SetEye(eye math.Vector[float32]) {
	c.Eye = eye
	c.IsDirty = true
}

func (c *Camera) SetCenter(center math.Vector[float32]) {
	c.Center = center
	c.IsDirty = true
}

// Distance returns the distance between the eye and the center.
func (c *Camera) Distance() float32 {
	return c.Eye.Sub(c.Center).Norm()
}

func (c *Camera) rebuild() {
	if !c.IsDirty {
		return
	}
	c.ViewMatrix = math.LookAt(c.Eye, c.Center, c.Up)
	c.ProjectionMatrix = math.ProjectionFromCamera(c.Eye, c.Center)
	c.IsDirty = false
}

func (c *Camera) GetView() math.Matrix {
	c.rebuild()
	return c.ViewMatrix
}

func (c *Camera) GetProjection() math.Matrix {
	c.rebuild()
	return c.ProjectionMatrix
}

/**
 * @brief Places the eye on a circle around the center, in the horizontal
 * plane through the current eye height.
 * @param angle The angle in radians, measured from the +z axis towards +x.
 * @param radius The circle radius.
 */
func (c *Camera) Orbit(angle, radius float32) {
	sin, cos := math.SinCos(angle)
	c.SetEye(math.NewVector(
		c.Center.X()+radius*sin,
		c.Eye.Y(),
		c.Center.Z()+radius*cos,
	))
}
