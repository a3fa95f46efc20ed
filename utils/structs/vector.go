package structs

import (
	"fmt"
)

// Vector is a struct wrapping a slice of components of type T.
// T can be:
//   - uint, uint64, uint32, uint16, uint8/byte, int, int64, int32, int16, int8, float64, float32.
//   - Or any object that implements CopyNewer or Equatable depending on the method called.
type Vector[T any] []T

// NewVector allocates a new zero Vector of the given length.
func NewVector[T any](length int) Vector[T] {
	return Vector[T](make([]T, length))
}

// CopyNew returns a deep copy of the object.
// If T is a struct, this method requires that T implements CopyNewer.
func (v Vector[T]) CopyNew() (vcpy Vector[T]) {

	var t T
	switch any(t).(type) {
	case uint, uint64, uint32, uint16, uint8, int, int64, int32, int16, int8, float64, float32:
		vcpy = Vector[T](make([]T, len(v)))
		copy(vcpy, v)
	default:
		if _, isCopiable := any(&t).(CopyNewer[T]); !isCopiable {
			panic(fmt.Errorf("vector component of type %T does not comply to %T", t, new(CopyNewer[T])))
		}

		vcpy = Vector[T](make([]T, len(v)))
		for i := range v {
			vcpy[i] = *any(&v[i]).(CopyNewer[T]).CopyNew()
		}
	}

	return
}

// Equal performs a deep equal.
// If T is a struct, this method requires that T implements Equatable.
func (v Vector[T]) Equal(other Vector[T]) (isEqual bool) {

	if len(v) != len(other) {
		return false
	}

	var t T
	switch any(t).(type) {
	case uint, uint64, uint32, uint16, uint8, int, int64, int32, int16, int8, float64, float32:
		for i := range v {
			if any(v[i]) != any(other[i]) {
				return false
			}
		}
		return true
	default:

		if _, isEquatable := any(&t).(Equatable[T]); !isEquatable {
			panic(fmt.Errorf("vector component of type %T does not comply to %T", t, new(Equatable[T])))
		}

		for i := range v {
			if !any(&v[i]).(Equatable[T]).Equal(&other[i]) {
				return false
			}
		}
		return true
	}
}
