package math

/**
 * @brief Creates and returns a look-at (view) matrix, placing the camera at
 * eye and looking at center.
 *
 * The basis is z = normalize(eye-center), x = normalize(up x z),
 * y = normalize(z x x); the rotation is composed with a translation by
 * -center. eye and center must differ and up must not be parallel to the
 * viewing direction.
 *
 * @param eye The position of the camera.
 * @param center The position to "look at".
 * @param up The up vector.
 * @return A 4x4 view matrix.
 */
func LookAt(eye, center, up Vector[float32]) Matrix {
	z := Normalize(eye.Sub(center), 1)
	x := Normalize(up.Cross(z), 1)
	y := Normalize(z.Cross(x), 1)

	rotation := Identity(4)
	translation := Identity(4)
	for i := 0; i < 3; i++ {
		rotation.Set(0, i, x.At(i))
		rotation.Set(1, i, y.At(i))
		rotation.Set(2, i, z.At(i))
		translation.Set(i, 3, -center.At(i))
	}
	return rotation.Mul(translation)
}

/**
 * @brief Creates and returns a viewport matrix mapping normalized device
 * coordinates [-1, 1] onto the pixel rectangle (x, y, w, h) and z onto
 * [0, depth].
 */
func Viewport(x, y, w, h, depth float32) Matrix {
	mt := Identity(4)
	mt.Set(0, 3, x+w/2)
	mt.Set(1, 3, y+h/2)
	mt.Set(2, 3, depth/2)

	mt.Set(0, 0, w/2)
	mt.Set(1, 1, h/2)
	mt.Set(2, 2, depth/2)
	return mt
}

/**
 * @brief Creates and returns a simple perspective matrix: the identity with
 * entry [3][2] set to coef, which moves a multiple of z into w.
 */
func Projection(coef float32) Matrix {
	mt := Identity(4)
	mt.Set(3, 2, coef)
	return mt
}

/**
 * @brief Creates the perspective matrix for a camera at eye looking at
 * center, using coef = -1/|eye-center|.
 */
func ProjectionFromCamera(eye, center Vector[float32]) Matrix {
	return Projection(-1 / eye.Sub(center).Norm())
}

/**
 * @brief Returns a translation matrix from the given 3-component position.
 */
func Translation(position Vector[float32]) Matrix {
	mt := Identity(4)
	mt.Set(0, 3, position.X())
	mt.Set(1, 3, position.Y())
	mt.Set(2, 3, position.Z())
	return mt
}

/**
 * @brief Returns a scale matrix using the provided 3-component scale.
 */
func Scaling(scale Vector[float32]) Matrix {
	mt := Identity(4)
	mt.Set(0, 0, scale.X())
	mt.Set(1, 1, scale.Y())
	mt.Set(2, 2, scale.Z())
	return mt
}

/**
 * @brief Creates a rotation matrix around the x axis.
 *
 * @param angle_radians The x angle in radians.
 * @return A rotation matrix.
 */
func RotationX(angle_radians float32) Matrix {
	s, c := SinCos(angle_radians)
	mt := Identity(4)
	mt.Set(1, 1, c)
	mt.Set(1, 2, -s)
	mt.Set(2, 1, s)
	mt.Set(2, 2, c)
	return mt
}

/**
 * @brief Creates a rotation matrix around the y axis.
 *
 * @param angle_radians The y angle in radians.
 * @return A rotation matrix.
 */
func RotationY(angle_radians float32) Matrix {
	s, c := SinCos(angle_radians)
	mt := Identity(4)
	mt.Set(0, 0, c)
	mt.Set(0, 2, s)
	mt.Set(2, 0, -s)
	mt.Set(2, 2, c)
	return mt
}

/**
 * @brief Creates a rotation matrix around the z axis.
 *
 * @param angle_radians The z angle in radians.
 * @return A rotation matrix.
 */
func RotationZ(angle_radians float32) Matrix {
	s, c := SinCos(angle_radians)
	mt := Identity(4)
	mt.Set(0, 0, c)
	mt.Set(0, 1, -s)
	mt.Set(1, 0, s)
	mt.Set(1, 1, c)
	return mt
}

/**
 * @brief Creates a rotation matrix from the provided x, y and z axis
 * rotations, applied in x, y, z order.
 */
func RotationXYZ(x_radians, y_radians, z_radians float32) Matrix {
	return RotationZ(z_radians).Mul(RotationY(y_radians)).Mul(RotationX(x_radians))
}
