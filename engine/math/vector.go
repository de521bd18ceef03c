package math

import (
	"fmt"
	"strings"

	"golang.org/x/exp/constraints"
)

/**
 * @brief An ordered, fixed-length tuple of scalars.
 *
 * The length is chosen at construction and never changes. Storage is a
 * fixed array, so assigning a Vector copies it and two Vectors never share
 * elements. All arithmetic returns a new Vector; only Set mutates, and it is
 * meant for construction.
 */
type Vector[T Number] struct {
	n    int
	data [MaxDimension]T
}

/**
 * @brief Creates a vector holding the supplied values, in order.
 * Panics when no values or more than MaxDimension values are given.
 */
func NewVector[T Number](values ...T) Vector[T] {
	checkDimension(len(values))
	v := Vector[T]{n: len(values)}
	copy(v.data[:], values)
	return v
}

/**
 * @brief Creates an n-dimensional vector with all components set to zero.
 */
func NewVectorZero[T Number](n int) Vector[T] {
	checkDimension(n)
	return Vector[T]{n: n}
}

/**
 * @brief Creates an n-dimensional vector with all components set to fill.
 */
func NewVectorFill[T Number](n int, fill T) Vector[T] {
	v := NewVectorZero[T](n)
	for i := 0; i < n; i++ {
		v.data[i] = fill
	}
	return v
}

func checkDimension(n int) {
	if n < 1 || n > MaxDimension {
		panic(fmt.Sprintf("math: dimension %d out of range [1, %d]", n, MaxDimension))
	}
}

func (v Vector[T]) checkIndex(i int) {
	if i < 0 || i >= v.n {
		panic(fmt.Sprintf("math: index %d out of range for %d-dimensional vector", i, v.n))
	}
}

func (v Vector[T]) mustMatch(other Vector[T], op string) {
	if v.n != other.n {
		panic(fmt.Sprintf("math: %s of vectors with dimensions %d and %d", op, v.n, other.n))
	}
}

// Len returns the dimension of the vector.
func (v Vector[T]) Len() int {
	return v.n
}

// At returns the i-th component.
func (v Vector[T]) At(i int) T {
	v.checkIndex(i)
	return v.data[i]
}

// Set assigns the i-th component.
func (v *Vector[T]) Set(i int, value T) {
	v.checkIndex(i)
	v.data[i] = value
}

func (v Vector[T]) X() T { return v.At(0) }
func (v Vector[T]) Y() T { return v.At(1) }
func (v Vector[T]) Z() T { return v.At(2) }
func (v Vector[T]) W() T { return v.At(3) }

// Slice returns a copy of the components.
func (v Vector[T]) Slice() []T {
	out := make([]T, v.n)
	copy(out, v.data[:v.n])
	return out
}

/**
 * @brief Adds other to v and returns a copy of the result.
 */
func (v Vector[T]) Add(other Vector[T]) Vector[T] {
	v.mustMatch(other, "addition")
	for i := 0; i < v.n; i++ {
		v.data[i] += other.data[i]
	}
	return v
}

/**
 * @brief Subtracts other from v and returns a copy of the result.
 */
func (v Vector[T]) Sub(other Vector[T]) Vector[T] {
	v.mustMatch(other, "subtraction")
	for i := 0; i < v.n; i++ {
		v.data[i] -= other.data[i]
	}
	return v
}

/**
 * @brief Multiplies all elements of v by scalar and returns a copy of the result.
 */
func (v Vector[T]) Scale(scalar T) Vector[T] {
	for i := 0; i < v.n; i++ {
		v.data[i] *= scalar
	}
	return v
}

/**
 * @brief Divides all elements of v by scalar and returns a copy of the result.
 */
func (v Vector[T]) Div(scalar T) Vector[T] {
	for i := 0; i < v.n; i++ {
		v.data[i] /= scalar
	}
	return v
}

/**
 * @brief Returns the dot product between v and other.
 */
func (v Vector[T]) Dot(other Vector[T]) T {
	v.mustMatch(other, "dot product")
	var sum T
	for i := 0; i < v.n; i++ {
		sum += v.data[i] * other.data[i]
	}
	return sum
}

/**
 * @brief Calculates and returns the cross product of v and other.
 * Only defined for 3-dimensional vectors.
 */
func (v Vector[T]) Cross(other Vector[T]) Vector[T] {
	if v.n != 3 || other.n != 3 {
		panic(fmt.Sprintf("math: cross product needs 3-dimensional vectors, got %d and %d", v.n, other.n))
	}
	a, b := v.data, other.data
	return NewVector(
		a[1]*b[2]-a[2]*b[1],
		a[2]*b[0]-a[0]*b[2],
		a[0]*b[1]-a[1]*b[0],
	)
}

/**
 * @brief Returns the euclidean length of the vector.
 * For integer element types the result is truncated.
 */
func (v Vector[T]) Norm() T {
	sum := 0.0
	for i := 0; i < v.n; i++ {
		f := float64(v.data[i])
		sum += f * f
	}
	return T(ksqrt(sum))
}

/**
 * @brief Returns a copy of v padded to m dimensions, with the extra
 * slots set to fill. m must be greater than the current dimension.
 */
func (v Vector[T]) Embed(m int, fill T) Vector[T] {
	if m <= v.n {
		panic(fmt.Sprintf("math: cannot embed %d-dimensional vector into %d dimensions", v.n, m))
	}
	checkDimension(m)
	for i := v.n; i < m; i++ {
		v.data[i] = fill
	}
	v.n = m
	return v
}

/**
 * @brief Returns the first m components of v. m must be smaller than
 * the current dimension.
 */
func (v Vector[T]) Proj(m int) Vector[T] {
	if m >= v.n || m < 1 {
		panic(fmt.Sprintf("math: cannot project %d-dimensional vector onto %d dimensions", v.n, m))
	}
	out := Vector[T]{n: m}
	copy(out.data[:m], v.data[:m])
	return out
}

/**
 * @brief Compares all elements of v and other and ensures the difference
 * is less than tolerance.
 */
func (v Vector[T]) Compare(other Vector[T], tolerance float64) bool {
	if v.n != other.n {
		return false
	}
	for i := 0; i < v.n; i++ {
		if kabs(float64(v.data[i])-float64(other.data[i])) > tolerance {
			return false
		}
	}
	return true
}

// Equal reports exact component-wise equality.
func (v Vector[T]) Equal(other Vector[T]) bool {
	if v.n != other.n {
		return false
	}
	for i := 0; i < v.n; i++ {
		if v.data[i] != other.data[i] {
			return false
		}
	}
	return true
}

func (v Vector[T]) String() string {
	parts := make([]string, v.n)
	for i := 0; i < v.n; i++ {
		parts[i] = fmt.Sprint(v.data[i])
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

/**
 * @brief Returns v scaled to the given length.
 *
 * The norm of v must be greater than zero: a zero vector yields
 * non-finite components. Callers are responsible for the check.
 */
func Normalize[T constraints.Float](v Vector[T], length T) Vector[T] {
	return v.Scale(length / v.Norm())
}

// Cast converts every component of v to U.
func Cast[U, T Number](v Vector[T]) Vector[U] {
	out := Vector[U]{n: v.n}
	for i := 0; i < v.n; i++ {
		out.data[i] = U(v.data[i])
	}
	return out
}

// Round rounds every component half away from zero, then converts it to U.
func Round[U Number, T constraints.Float](v Vector[T]) Vector[U] {
	out := Vector[U]{n: v.n}
	for i := 0; i < v.n; i++ {
		out.data[i] = U(kround(float64(v.data[i])))
	}
	return out
}
