package ir

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/gomlx/gopjrt/dtypes"
	"github.com/gomlx/legalizehlo/types/shapes"
	"github.com/pkg/errors"
	"github.com/x448/float16"
)

// Literal is a materialized (dense) tensor constant: a shape plus a flat,
// row-major slice of scalar values. It is treated as immutable once created.
//
// Row-major means the first dimension varies slowest and the last dimension
// varies fastest.
type Literal struct {
	shape shapes.Shape
	flat  any // Slice of the Go type matching shape.DType, with shape.Size() elements.
}

// NewLiteralFromFlatAndDimensions creates a Literal from a flat slice with the raw
// values and the dimensions of the shape. If dimensions are omitted, it represents
// a scalar and flat must have exactly one element.
func NewLiteralFromFlatAndDimensions(flat any, dimensions ...int) (*Literal, error) {
	flatV := reflect.ValueOf(flat)
	if flatV.Kind() != reflect.Slice {
		return nil, errors.Errorf("literal flat values must be a slice, got %T", flat)
	}
	dtype := dtypes.FromGoType(flatV.Type().Elem())
	if dtype == dtypes.InvalidDType {
		return nil, errors.Errorf("unsupported literal flat values type %T -- expected a slice of a basic data type", flat)
	}
	shape := shapes.Make(dtype, dimensions...)
	if shape.Size() != flatV.Len() {
		return nil, errors.Errorf("flat values size %d doesn't match shape size %d (%s)", flatV.Len(), shape.Size(), shape)
	}
	return &Literal{shape: shape, flat: flat}, nil
}

// NewArrayLiteral creates a Literal initialized from the array flat data (a slice)
// and the dimensions of the array.
//
// If dimensions is omitted, it is assumed to represent a 1D-array of the length given.
func NewArrayLiteral[T dtypes.Supported](flat []T, dimensions ...int) (*Literal, error) {
	if len(dimensions) == 0 {
		dimensions = []int{len(flat)}
	}
	return NewLiteralFromFlatAndDimensions(flat, dimensions...)
}

// NewLiteralFromAny creates a Literal from a Go value: a scalar or (nested) slices of
// a basic data type. The shape is inferred from the value, which must be regular
// (sub-slices of the same axis must have the same length).
func NewLiteralFromAny(value any) (*Literal, error) {
	shape, err := shapes.FromAnyValue(value)
	if err != nil {
		return nil, err
	}
	flat := reflect.MakeSlice(reflect.SliceOf(shape.DType.GoType()), 0, shape.Size())
	flat = appendFlat(flat, reflect.ValueOf(value))
	return &Literal{shape: shape, flat: flat.Interface()}, nil
}

// appendFlat appends the scalar elements of v to flat in row-major order.
func appendFlat(flat, v reflect.Value) reflect.Value {
	if v.Kind() != reflect.Slice {
		return reflect.Append(flat, v.Convert(flat.Type().Elem()))
	}
	for i := 0; i < v.Len(); i++ {
		flat = appendFlat(flat, v.Index(i))
	}
	return flat
}

// Shape returns the shape of the literal.
func (l *Literal) Shape() shapes.Shape {
	return l.shape
}

// Flat returns the flat row-major values slice. Callers must not modify it.
func (l *Literal) Flat() any {
	return l.flat
}

// Equal compares shape and flat values.
func (l *Literal) Equal(l2 *Literal) bool {
	return l.shape.Equal(l2.shape) && reflect.DeepEqual(l.flat, l2.flat)
}

// ToMLIR renders the literal as a dense attribute value, e.g.
// "dense<[0, 1, 2]> : tensor<3xi32>". Non-scalar literals are rendered with their
// flat (row-major) values, without nesting per dimension.
func (l *Literal) ToMLIR() string {
	var sb strings.Builder
	sb.WriteString("dense<")
	flatV := reflect.ValueOf(l.flat)
	if l.shape.IsScalar() {
		sb.WriteString(formatScalar(flatV.Index(0).Interface()))
	} else {
		sb.WriteString("[")
		for i := 0; i < flatV.Len(); i++ {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(formatScalar(flatV.Index(i).Interface()))
		}
		sb.WriteString("]")
	}
	fmt.Fprintf(&sb, "> : %s", l.shape.ToMLIR())
	return sb.String()
}

// String implements fmt.Stringer.
func (l *Literal) String() string {
	return l.ToMLIR()
}

// formatScalar renders one element of a dense literal.
func formatScalar(value any) string {
	switch v := value.(type) {
	case float16.Float16:
		return fmt.Sprintf("%g", v.Float32())
	case float32, float64:
		return fmt.Sprintf("%g", v)
	case bool:
		if v {
			return "true"
		}
		return "false"
	default:
		return fmt.Sprintf("%d", v)
	}
}
