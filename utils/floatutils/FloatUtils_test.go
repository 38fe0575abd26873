package floatutils

import "testing"

func TestClip(t *testing.T) {
	tests := []struct {
		value, min, max, want float64
	}{
		{0.5, 0, 1, 0.5},
		{-2, 0, 1, 0},
		{3, 0, 1, 1},
	}

	for _, test := range tests {
		if got := Clip(test.value, test.min, test.max); got != test.want {
			t.Errorf("Clip(%v, %v, %v) = %v, want %v", test.value,
				test.min, test.max, got, test.want)
		}
	}
}

func TestMaxSlice(t *testing.T) {
	max, indices := MaxSlice([]float64{3, 1, 3, 2})
	if max != 3 {
		t.Errorf("max = %v, want 3", max)
	}
	if len(indices) != 2 || indices[0] != 0 || indices[1] != 2 {
		t.Errorf("indices = %v, want [0 2]", indices)
	}

	max, indices = MaxSlice([]float64{-1, -5})
	if max != -1 || len(indices) != 1 || indices[0] != 0 {
		t.Errorf("MaxSlice([-1 -5]) = %v, %v", max, indices)
	}
}

func TestMinMax(t *testing.T) {
	if got := Min(2, -1, 5); got != -1 {
		t.Errorf("Min = %v, want -1", got)
	}
	if got := Max(2, -1, 5); got != 5 {
		t.Errorf("Max = %v, want 5", got)
	}
}
