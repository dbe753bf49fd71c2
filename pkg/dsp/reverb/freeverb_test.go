package reverb

import "testing"

import "github.com/justyntemme/mixconsole/pkg/proc"

func TestAlgorithmicProducesStereoFromMono(t *testing.T) {
	r, err := NewAlgorithmic("reverb", 64, 44100)
	if err != nil {
		t.Fatal(err)
	}
	in := proc.Block{make([]float32, 64)}
	in[0][0] = 1
	out := r.Process(in)
	if !out.IsStereo() {
		t.Fatalf("reverb must emit stereo")
	}
}

func TestAlgorithmicBypassPassesThroughAsStereo(t *testing.T) {
	r, err := NewAlgorithmic("reverb", 64, 44100)
	if err != nil {
		t.Fatal(err)
	}
	bypass, err := r.Parameters().Get("bypass")
	if err != nil {
		t.Fatal(err)
	}
	if err := bypass.SetBool(true); err != nil {
		t.Fatal(err)
	}
	in := proc.Block{{1, 2, 3}}
	out := r.Process(in)
	for i, v := range []float32{1, 2, 3} {
		if out[0][i] != v || out[1][i] != v {
			t.Fatalf("bypass should broadcast mono input unchanged, got %v/%v", out[0], out[1])
		}
	}
}

func TestAlgorithmicImpulseProducesDecayingTail(t *testing.T) {
	r, err := NewAlgorithmic("reverb", 256, 44100)
	if err != nil {
		t.Fatal(err)
	}
	roomSize, err := r.Parameters().Get("room_size")
	if err != nil {
		t.Fatal(err)
	}
	if err := roomSize.SetFloat(0.8); err != nil {
		t.Fatal(err)
	}
	in := proc.Block{make([]float32, 2048)}
	in[0][0] = 1
	out := r.Process(in)
	var energyEarly, energyLate float32
	for i := 0; i < 500; i++ {
		energyEarly += out[0][i] * out[0][i]
	}
	for i := 1500; i < 2048; i++ {
		energyLate += out[0][i] * out[0][i]
	}
	if energyEarly == 0 && energyLate == 0 {
		t.Fatalf("reverb tail should carry some energy from the impulse")
	}
}

func TestAlgorithmicResetZeroesState(t *testing.T) {
	r, err := NewAlgorithmic("reverb", 64, 44100)
	if err != nil {
		t.Fatal(err)
	}
	in := proc.Block{make([]float32, 64)}
	in[0][0] = 1
	r.Process(in)
	r.Reset()
	silence := proc.Block{make([]float32, 64)}
	out := r.Process(silence)
	for _, v := range out[0] {
		if v != 0 {
			t.Fatalf("after Reset, processing silence should yield silence, got %g", v)
		}
	}
}
