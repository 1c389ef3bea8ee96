package shapes

import (
	"testing"

	"github.com/gomlx/gopjrt/dtypes"
)

func TestToMLIR(t *testing.T) {
	shape := Make(dtypes.Float32, 1, 10)
	if got := shape.ToMLIR(); got != "tensor<1x10xf32>" {
		t.Errorf("ToMLIR() = %q, want %q", got, "tensor<1x10xf32>")
	}

	// Test scalar.
	shape = Make(dtypes.Int32)
	if got := shape.ToMLIR(); got != "tensor<i32>" {
		t.Errorf("ToMLIR() = %q, want %q", got, "tensor<i32>")
	}
}
