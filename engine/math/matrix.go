package math

import (
	"fmt"
	"strings"
)

/**
 * @brief A dense rows x cols grid of 32-bit floats, stored as rows of
 * Vector[float32].
 *
 * Like Vector, a Matrix is a value: operations return new matrices and the
 * setters are meant for construction only.
 */
type Matrix struct {
	rows int
	cols int
	data [MaxDimension]Vector[float32]
}

/**
 * @brief Creates a zero-initialized matrix with the given dimensions.
 */
func NewMatrix(rows, cols int) Matrix {
	checkDimension(rows)
	checkDimension(cols)
	mt := Matrix{rows: rows, cols: cols}
	for i := 0; i < rows; i++ {
		mt.data[i] = NewVectorZero[float32](cols)
	}
	return mt
}

/**
 * @brief Creates a matrix from the supplied rows. All rows must have the
 * same dimension.
 */
func NewMatrixFromRows(rows ...Vector[float32]) Matrix {
	checkDimension(len(rows))
	mt := NewMatrix(len(rows), rows[0].Len())
	for i, r := range rows {
		mt.SetRow(i, r)
	}
	return mt
}

/**
 * @brief Creates and returns an n x n identity matrix.
 */
func Identity(n int) Matrix {
	mt := NewMatrix(n, n)
	for i := 0; i < n; i++ {
		mt.data[i].data[i] = 1
	}
	return mt
}

func (mt Matrix) Rows() int { return mt.rows }
func (mt Matrix) Cols() int { return mt.cols }

func (mt Matrix) checkRow(i int) {
	if i < 0 || i >= mt.rows {
		panic(fmt.Sprintf("math: row %d out of range for %dx%d matrix", i, mt.rows, mt.cols))
	}
}

func (mt Matrix) checkCol(j int) {
	if j < 0 || j >= mt.cols {
		panic(fmt.Sprintf("math: column %d out of range for %dx%d matrix", j, mt.rows, mt.cols))
	}
}

// Row returns a copy of the i-th row.
func (mt Matrix) Row(i int) Vector[float32] {
	mt.checkRow(i)
	return mt.data[i]
}

// SetRow replaces the i-th row. The row must have Cols() components.
func (mt *Matrix) SetRow(i int, v Vector[float32]) {
	mt.checkRow(i)
	if v.Len() != mt.cols {
		panic(fmt.Sprintf("math: row of dimension %d does not fit %dx%d matrix", v.Len(), mt.rows, mt.cols))
	}
	mt.data[i] = v
}

func (mt Matrix) At(i, j int) float32 {
	mt.checkRow(i)
	return mt.data[i].At(j)
}

func (mt *Matrix) Set(i, j int, value float32) {
	mt.checkRow(i)
	mt.data[i].Set(j, value)
}

/**
 * @brief Returns the j-th column as a vector with Rows() components.
 */
func (mt Matrix) Col(j int) Vector[float32] {
	mt.checkCol(j)
	out := NewVectorZero[float32](mt.rows)
	for i := 0; i < mt.rows; i++ {
		out.data[i] = mt.data[i].data[j]
	}
	return out
}

/**
 * @brief Replaces the j-th column. The vector must have Rows() components.
 */
func (mt *Matrix) SetCol(j int, v Vector[float32]) {
	mt.checkCol(j)
	if v.Len() != mt.rows {
		panic(fmt.Sprintf("math: column of dimension %d does not fit %dx%d matrix", v.Len(), mt.rows, mt.cols))
	}
	for i := 0; i < mt.rows; i++ {
		mt.data[i].data[j] = v.data[i]
	}
}

/**
 * @brief Returns a transposed copy of the matrix (rows->columns).
 */
func (mt Matrix) Transpose() Matrix {
	out := NewMatrix(mt.cols, mt.rows)
	for j := 0; j < mt.cols; j++ {
		out.data[j] = mt.Col(j)
	}
	return out
}

/**
 * @brief Returns the result of multiplying mt and other.
 * The inner dimensions must agree: (R x C) * (C x N) = (R x N).
 */
func (mt Matrix) Mul(other Matrix) Matrix {
	if mt.cols != other.rows {
		panic(fmt.Sprintf("math: cannot multiply %dx%d by %dx%d matrix", mt.rows, mt.cols, other.rows, other.cols))
	}
	out := NewMatrix(mt.rows, other.cols)
	for i := 0; i < mt.rows; i++ {
		for j := 0; j < other.cols; j++ {
			sum := float32(0)
			for k := 0; k < mt.cols; k++ {
				sum += mt.data[i].data[k] * other.data[k].data[j]
			}
			out.data[i].data[j] = sum
		}
	}
	return out
}

/**
 * @brief Multiplies the matrix by a column vector with Cols() components
 * and returns a vector with Rows() components.
 */
func (mt Matrix) MulVec(v Vector[float32]) Vector[float32] {
	if v.Len() != mt.cols {
		panic(fmt.Sprintf("math: cannot multiply %dx%d matrix by %d-dimensional vector", mt.rows, mt.cols, v.Len()))
	}
	out := NewVectorZero[float32](mt.rows)
	for i := 0; i < mt.rows; i++ {
		out.data[i] = mt.data[i].Dot(v)
	}
	return out
}

/**
 * @brief Returns the inverse of a square matrix using Gauss-Jordan
 * elimination with partial pivoting on the augmented matrix [A|I].
 *
 * @return The inverse and true, or a zero matrix and false when the
 * matrix is singular (a pivot smaller than 1e-10 in magnitude).
 */
func (mt Matrix) Inverse() (Matrix, bool) {
	if mt.rows != mt.cols {
		panic(fmt.Sprintf("math: inverse of non-square %dx%d matrix", mt.rows, mt.cols))
	}
	n := mt.rows

	augmented := make([][]float64, n)
	for i := 0; i < n; i++ {
		augmented[i] = make([]float64, 2*n)
		for j := 0; j < n; j++ {
			augmented[i][j] = float64(mt.data[i].data[j])
		}
		augmented[i][i+n] = 1
	}

	for col := 0; col < n; col++ {
		pivotRow := col
		for row := col + 1; row < n; row++ {
			if kabs(augmented[row][col]) > kabs(augmented[pivotRow][col]) {
				pivotRow = row
			}
		}
		if kabs(augmented[pivotRow][col]) < K_SINGULAR_EPSILON {
			return NewMatrix(n, n), false
		}
		augmented[col], augmented[pivotRow] = augmented[pivotRow], augmented[col]

		pivot := augmented[col][col]
		for j := col; j < 2*n; j++ {
			augmented[col][j] /= pivot
		}

		for i := 0; i < n; i++ {
			if i == col {
				continue
			}
			factor := augmented[i][col]
			if factor == 0 {
				continue
			}
			for j := col; j < 2*n; j++ {
				augmented[i][j] -= factor * augmented[col][j]
			}
		}
	}

	inverse := NewMatrix(n, n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			inverse.data[i].data[j] = float32(augmented[i][j+n])
		}
	}
	return inverse, true
}

/**
 * @brief Embeds a euclidean point into an (N+1) x 1 homogeneous column
 * matrix whose last row is 1.
 */
func FromHomogeneous(v Vector[float32]) Matrix {
	out := NewMatrix(v.Len()+1, 1)
	for i := 0; i < v.Len(); i++ {
		out.data[i].data[0] = v.data[i]
	}
	out.data[v.Len()].data[0] = 1
	return out
}

/**
 * @brief Converts an (N+1) x 1 homogeneous column back to an N-dimensional
 * point, dividing every row by the last one (perspective divide).
 */
func (mt Matrix) ToEuclidean() Vector[float32] {
	if mt.cols != 1 || mt.rows < 2 {
		panic(fmt.Sprintf("math: %dx%d matrix is not a homogeneous column", mt.rows, mt.cols))
	}
	n := mt.rows - 1
	w := mt.data[n].data[0]
	out := NewVectorZero[float32](n)
	for i := 0; i < n; i++ {
		out.data[i] = mt.data[i].data[0] / w
	}
	return out
}

/**
 * @brief Compares all elements of mt and other and ensures the difference
 * is less than tolerance.
 */
func (mt Matrix) Compare(other Matrix, tolerance float64) bool {
	if mt.rows != other.rows || mt.cols != other.cols {
		return false
	}
	for i := 0; i < mt.rows; i++ {
		if !mt.data[i].Compare(other.data[i], tolerance) {
			return false
		}
	}
	return true
}

func (mt Matrix) String() string {
	var b strings.Builder
	b.WriteString("[")
	for i := 0; i < mt.rows; i++ {
		if i > 0 {
			b.WriteString(" ")
		}
		b.WriteString(mt.data[i].String())
	}
	b.WriteString("]")
	return b.String()
}
