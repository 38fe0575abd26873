package matutils

import (
	"testing"

	"gonum.org/v1/gonum/mat"
)

func TestMaxVec(t *testing.T) {
	tests := []struct {
		values []float64
		want   int
	}{
		{[]float64{1, 3, 2}, 1},
		{[]float64{3, 3, 2}, 0}, // ties go to the first index
		{[]float64{-2, -1, -3}, 1},
	}

	for _, test := range tests {
		v := mat.NewVecDense(len(test.values), test.values)
		if got := MaxVec(v); got != test.want {
			t.Errorf("MaxVec(%v) = %d, want %d", test.values, got,
				test.want)
		}
	}
}

func TestVecOnes(t *testing.T) {
	ones := VecOnes(3)
	for i := 0; i < ones.Len(); i++ {
		if ones.AtVec(i) != 1.0 {
			t.Errorf("VecOnes(3)[%d] = %v", i, ones.AtVec(i))
		}
	}
}

func TestReshape(t *testing.T) {
	v := mat.NewVecDense(6, []float64{1, 2, 3, 4, 5, 6})

	m, err := Reshape(v, 2, 3)
	if err != nil {
		t.Fatalf("could not reshape: %v", err)
	}
	if got := m.At(1, 0); got != 4.0 {
		t.Errorf("reshaped (1, 0) = %v, want 4", got)
	}

	if _, err := Reshape(v, 2, 2); err == nil {
		t.Error("no error reshaping 6 elements to (2, 2)")
	}
}
