// Package shapes defines the Shape of tensor values: a DType (element type) plus the
// dimensions on each axis.
//
// Shapes are treated as immutable once created: operations that need a modified shape
// must Clone it first.
package shapes

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/gomlx/gopjrt/dtypes"
	"github.com/gomlx/gopjrt/dtypes/bfloat16"
	"github.com/gomlx/legalizehlo/internal/utils"
	"github.com/pkg/errors"
	"github.com/x448/float16"
)

// Shape of a tensor value: the underlying data type (e.g.: Float32, Int64) and the
// dimensions on each axis. If len(Dimensions) is 0, it represents a scalar.
//
// Dimensions of size 0 are accepted (the tensor then holds no elements), but negative
// dimensions are invalid.
type Shape struct {
	DType      dtypes.DType
	Dimensions []int
}

// Make returns a Shape filled with the values given.
// It panics if any dimension is negative -- use Check on externally provided dimensions first.
func Make(dtype dtypes.DType, dimensions ...int) Shape {
	s := Shape{DType: dtype, Dimensions: make([]int, len(dimensions))}
	for i, dim := range dimensions {
		if dim < 0 {
			panic(fmt.Sprintf("shapes.Make(%s, %v): cannot create a shape with a negative dimension", dtype, dimensions))
		}
		s.Dimensions[i] = dim
	}
	return s
}

// Invalid returns a zero-valued invalid Shape.
func Invalid() Shape { return Shape{DType: dtypes.InvalidDType} }

// Ok returns whether the shape has a valid DType.
func (s Shape) Ok() bool { return s.DType != dtypes.InvalidDType }

// IsScalar returns whether the Shape is a scalar, i.e. its Rank() == 0.
func (s Shape) IsScalar() bool { return s.Rank() == 0 }

// IsTuple always returns false: tuple shapes are not used by the legalization engine.
// The method exists for API compatibility with the XlaBuilder shapes.
func (s Shape) IsTuple() bool { return false }

// Rank of a shape is the number of axes, a shortcut to len(Shape.Dimensions).
// Scalar values have rank 0.
func (s Shape) Rank() int { return len(s.Dimensions) }

// Size returns the total number of elements of the shape. E.g.: a Shape of
// dimensions [3, 5] has size 15. A scalar has size 1, and any shape with a
// zero-sized dimension has size 0.
func (s Shape) Size() int {
	size := 1
	for _, dim := range s.Dimensions {
		size *= dim
	}
	return size
}

// Dim returns the dimension of the given axis. A negative axis counts from the end,
// so Dim(-1) is the last dimension. It panics if the axis is out of range.
func (s Shape) Dim(axis int) int {
	adjusted := axis
	if adjusted < 0 {
		adjusted += s.Rank()
	}
	if adjusted < 0 || adjusted >= s.Rank() {
		panic(fmt.Sprintf("shape %s has no axis %d", s, axis))
	}
	return s.Dimensions[adjusted]
}

// Memory returns the number of bytes needed to store a tensor of this shape.
func (s Shape) Memory() uintptr {
	return s.DType.Memory() * uintptr(s.Size())
}

// Clone makes a deep copy of the given shape.
func (s Shape) Clone() (newS Shape) {
	newS.DType = s.DType
	if len(s.Dimensions) > 0 {
		newS.Dimensions = make([]int, len(s.Dimensions))
		copy(newS.Dimensions, s.Dimensions)
	}
	return newS
}

// Equal compares DType and dimensions.
func (s Shape) Equal(s2 Shape) bool {
	if s.DType != s2.DType || s.Rank() != s2.Rank() {
		return false
	}
	for i, dim := range s.Dimensions {
		if s2.Dimensions[i] != dim {
			return false
		}
	}
	return true
}

// EqualDimensions compares only the dimensions, ignoring the DType.
func (s Shape) EqualDimensions(s2 Shape) bool {
	if s.Rank() != s2.Rank() {
		return false
	}
	for i, dim := range s.Dimensions {
		if s2.Dimensions[i] != dim {
			return false
		}
	}
	return true
}

// Check that the shape has the given dtype and dimensions, and returns an error otherwise.
func (s Shape) Check(dtype dtypes.DType, dimensions ...int) error {
	if !s.Equal(Make(dtype, dimensions...)) {
		return errors.Errorf("shape %s doesn't match required dtype %s and dimensions %v", s, dtype, dimensions)
	}
	return nil
}

// String implements fmt.Stringer and pretty-prints the shape.
func (s Shape) String() string {
	if s.Rank() == 0 {
		return fmt.Sprintf("(%s)[]", s.DType)
	}
	return fmt.Sprintf("(%s)%v", s.DType, s.Dimensions)
}

// ToMLIR returns the MLIR-like tensor type representation of the shape,
// e.g. "tensor<2x3xf32>" or "tensor<i32>" for scalars.
func (s Shape) ToMLIR() string {
	var sb strings.Builder
	sb.WriteString("tensor<")
	for _, dim := range s.Dimensions {
		fmt.Fprintf(&sb, "%dx", dim)
	}
	sb.WriteString(utils.DTypeToMLIR(s.DType))
	sb.WriteString(">")
	return sb.String()
}

// CastAsDType casts a numeric value (including nested slices of numeric values) to the
// corresponding Go type for the given DType. It is a convenience for building test
// values and literals.
//
// It panics if the value is not convertible.
func CastAsDType(value any, dtype dtypes.DType) any {
	goType := dtype.GoType()
	return castAsTypeRecursive(reflect.ValueOf(value), goType).Interface()
}

var (
	float64Type  = reflect.TypeOf(float64(0))
	float16Type  = reflect.TypeOf(float16.Float16(0))
	bfloat16Type = reflect.TypeOf(bfloat16.BFloat16(0))
)

func castAsTypeRecursive(v reflect.Value, goType reflect.Type) reflect.Value {
	if v.Kind() == reflect.Slice {
		newSlice := reflect.MakeSlice(reflect.SliceOf(castElementType(v.Type().Elem(), goType)), v.Len(), v.Len())
		for i := 0; i < v.Len(); i++ {
			newSlice.Index(i).Set(castAsTypeRecursive(v.Index(i), goType))
		}
		return newSlice
	}

	// Go has no direct conversion from integers to complex or to the half-precision
	// types; go through float64 for those.
	switch goType.Kind() {
	case reflect.Complex64, reflect.Complex128:
		if !v.CanConvert(goType) {
			c := complex(v.Convert(float64Type).Float(), 0)
			return reflect.ValueOf(c).Convert(goType)
		}
	case reflect.Uint16:
		if goType == float16Type {
			return reflect.ValueOf(float16.Fromfloat32(float32(v.Convert(float64Type).Float())))
		}
		if goType == bfloat16Type {
			return reflect.ValueOf(bfloat16.FromFloat32(float32(v.Convert(float64Type).Float())))
		}
	}
	return v.Convert(goType)
}

// castElementType maps the nested slice type to the same nesting over the new element type.
func castElementType(t reflect.Type, goType reflect.Type) reflect.Type {
	if t.Kind() != reflect.Slice {
		return goType
	}
	return reflect.SliceOf(castElementType(t.Elem(), goType))
}
