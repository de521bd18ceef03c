package math

import (
	m "math"

	"golang.org/x/exp/constraints"
)

const (
	/** @brief The largest dimension a Vector or Matrix can have. */
	MaxDimension = 8
	/** @brief Pivots below this magnitude mark a matrix as singular. */
	K_SINGULAR_EPSILON float64 = 1e-10
	/** @brief Smallest positive number where 1.0 + FLOAT_EPSILON != 0 */
	K_FLOAT_EPSILON float32 = 1.192092896e-07
)

// Number is the set of scalar types a Vector can hold.
type Number interface {
	constraints.Integer | constraints.Float
}

// Clamp returns the value `f` clamped to the range [low, high].
// It works for any numeric type (integers and floats).
func Clamp[T constraints.Ordered](f, low, high T) T {
	if f < low {
		return low
	}
	if f > high {
		return high
	}
	return f
}

/**
 * Note that these are here in order to prevent having to import the
 * entire <math> everywhere.
 */
func ksqrt(x float64) float64 {
	return m.Sqrt(x)
}

func kabs(x float64) float64 {
	return m.Abs(x)
}

func kround(x float64) float64 {
	return m.Round(x)
}

const (
	/** @brief An approximate representation of PI. */
	K_PI float32 = 3.14159265358979323846
	/** @brief Two times PI, one full turn in radians. */
	K_2PI float32 = 2.0 * K_PI
	/** @brief A multiplier used to convert degrees to radians. */
	K_DEG2RAD_MULTIPLIER float32 = K_PI / 180.0
)

// DegToRad converts degrees to radians.
func DegToRad(degrees float32) float32 {
	return degrees * K_DEG2RAD_MULTIPLIER
}

// SinCos returns the sine and cosine of the angle x (radians).
func SinCos(x float32) (float32, float32) {
	s, c := m.Sincos(float64(x))
	return float32(s), float32(c)
}

// Abs returns the absolute value of x.
func Abs(x float32) float32 {
	return float32(kabs(float64(x)))
}
