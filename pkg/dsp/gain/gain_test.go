package gain

import (
	"math"
	"testing"
)

func TestDbToLinear32(t *testing.T) {
	tests := []struct {
		name   string
		db     float32
		linear float32
	}{
		{"unity", 0, 1.0},
		{"half amplitude", -6.02, 0.5},
		{"double amplitude", 6.02, 2.0},
		{"at MinDB", MinDB, 0},
		{"below MinDB", MinDB - 1, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DbToLinear32(tt.db)
			if math.Abs(float64(got-tt.linear)) > 0.01 {
				t.Errorf("DbToLinear32(%g) = %g, want %g", tt.db, got, tt.linear)
			}
		})
	}
}

func TestHardClipBufferLeavesSamplesWithinThresholdUnchanged(t *testing.T) {
	buffer := []float32{0.5, -0.5, 0.0}
	want := []float32{0.5, -0.5, 0.0}
	HardClipBuffer(buffer, 1.0)
	for i, v := range buffer {
		if v != want[i] {
			t.Errorf("buffer[%d] = %g, want %g", i, v, want[i])
		}
	}
}

func TestHardClipBufferClampsOutOfRangeSamples(t *testing.T) {
	buffer := []float32{1.5, -1.5, 1.0, -1.0}
	want := []float32{1.0, -1.0, 1.0, -1.0}
	HardClipBuffer(buffer, 1.0)
	for i, v := range buffer {
		if v != want[i] {
			t.Errorf("buffer[%d] = %g, want %g", i, v, want[i])
		}
	}
}
