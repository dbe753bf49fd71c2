package biquad

import "testing"

func TestPeakingEQUnityAtZeroGainIsNearPassthrough(t *testing.T) {
	b := New(1)
	b.SetPeakingEQ(44100, 1000, 1.0, 0)
	in := make([]float32, 128)
	for i := range in {
		in[i] = float32(i%7) - 3
	}
	out := append([]float32(nil), in...)
	b.Process(out, 0)
	for i := range in {
		diff := out[i] - in[i]
		if diff > 1e-4 || diff < -1e-4 {
			t.Fatalf("0 dB peaking EQ should pass through, sample %d: in=%g out=%g", i, in[i], out[i])
		}
	}
}

func TestResetClearsHistory(t *testing.T) {
	b := New(1)
	b.SetPeakingEQ(44100, 1000, 1.0, 12)
	buf := []float32{1, 0, 0, 0, 0, 0, 0, 0}
	b.Process(buf, 0)
	b.Reset()
	if b.x1[0] != 0 || b.x2[0] != 0 || b.y1[0] != 0 || b.y2[0] != 0 {
		t.Fatalf("Reset should zero all history")
	}
}

func TestPerChannelHistoryIsIndependent(t *testing.T) {
	b := New(2)
	b.SetLowShelf(44100, 200, 0.707, 6)
	ch0 := []float32{1, 0, 0, 0}
	ch1 := []float32{0, 0, 0, 0}
	b.Process(ch0, 0)
	b.Process(ch1, 1)
	for _, v := range ch1 {
		if v != 0 {
			t.Fatalf("channel 1 history should be untouched by channel 0 processing, got %v", ch1)
		}
	}
}
