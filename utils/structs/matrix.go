package structs

// Matrix is a struct wrapping a double slice of components of type T.
// Rows are not required to be of equal length.
type Matrix[T any] [][]T

// NewMatrix allocates a new zero rows x cols Matrix.
func NewMatrix[T any](rows, cols int) Matrix[T] {
	m := Matrix[T](make([][]T, rows))
	for i := range m {
		m[i] = make([]T, cols)
	}
	return m
}

// Rows returns the number of rows of the matrix.
func (m Matrix[T]) Rows() int {
	return len(m)
}

// Cols returns the length of the first row of the matrix, or zero if
// the matrix has no rows.
func (m Matrix[T]) Cols() int {
	if len(m) == 0 {
		return 0
	}
	return len(m[0])
}

// IsRectangular returns true if all the rows of the matrix have the same length.
func (m Matrix[T]) IsRectangular() bool {
	for i := range m {
		if len(m[i]) != m.Cols() {
			return false
		}
	}
	return true
}

// Row returns the i-th row of the matrix as a Vector, sharing the
// underlying memory.
func (m Matrix[T]) Row(i int) Vector[T] {
	return Vector[T](m[i])
}

// CopyNew returns a deep copy of the object.
// If T is a struct, this method requires that T implements CopyNewer.
func (m Matrix[T]) CopyNew() (mcpy Matrix[T]) {
	mcpy = Matrix[T](make([][]T, len(m)))
	for i := range m {
		mcpy[i] = Vector[T](m[i]).CopyNew()
	}
	return
}

// Equal performs a deep equal.
// If T is a struct, this method requires that T implements Equatable.
func (m Matrix[T]) Equal(other Matrix[T]) bool {

	if len(m) != len(other) {
		return false
	}

	for i := range m {
		if !Vector[T](m[i]).Equal(Vector[T](other[i])) {
			return false
		}
	}

	return true
}
