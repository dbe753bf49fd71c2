package convreverb

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/justyntemme/mixconsole/pkg/proc"
)

func writeIR(t *testing.T, dir, filename string, sampleRate int, samples []int) {
	t.Helper()
	f, err := os.Create(filepath.Join(dir, filename))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	enc := wav.NewEncoder(f, sampleRate, 16, 1, 1)
	buf := &audio.IntBuffer{
		Format:         &audio.Format{SampleRate: sampleRate, NumChannels: 1},
		Data:           samples,
		SourceBitDepth: 16,
	}
	if err := enc.Write(buf); err != nil {
		t.Fatal(err)
	}
	if err := enc.Close(); err != nil {
		t.Fatal(err)
	}
}

// Invariant 10 (dry_mix=1, wet_mix=0): identity.
func TestDryOnlyIsIdentity(t *testing.T) {
	dir := t.TempDir()
	writeIR(t, dir, "small_room.wav", 44100, []int{32768, 0, 0, 0})

	r, err := New("reverb", dir, 8, 44100)
	if err != nil {
		t.Fatal(err)
	}
	setFloat(t, r, "dry_mix", 1)
	setFloat(t, r, "wet_mix", 0)

	in := make([]float32, 8)
	for i := range in {
		in[i] = float32(i) * 0.1
	}
	out := r.Process(proc.Block{append([]float32(nil), in...), append([]float32(nil), in...)})
	for ch := 0; ch < 2; ch++ {
		for i := range in {
			if out[ch][i] != in[i] {
				t.Fatalf("ch%d sample %d: got %g want %g", ch, i, out[ch][i], in[i])
			}
		}
	}
}

// Invariant 10 (dry_mix=0, wet_mix=1, one-sample impulse): output
// equals the scaled input (a unit impulse convolved with x is x).
func TestWetOnlyWithUnitImpulseIsScaledInput(t *testing.T) {
	dir := t.TempDir()
	// A single full-scale 16-bit sample: after headroom scaling this
	// becomes 32767 * (1/32768 * 0.125) ~= 0.125.
	writeIR(t, dir, "plate.wav", 44100, []int{32767})

	r, err := New("reverb", dir, 8, 44100)
	if err != nil {
		t.Fatal(err)
	}
	typeP, err := r.Parameters().Get("type")
	if err != nil {
		t.Fatal(err)
	}
	if err := typeP.SetString("plate"); err != nil {
		t.Fatal(err)
	}
	decayP, err := r.Parameters().Get("decay")
	if err != nil {
		t.Fatal(err)
	}
	if err := decayP.SetFloat(1); err != nil {
		t.Fatal(err)
	}
	setFloat(t, r, "dry_mix", 0)
	setFloat(t, r, "wet_mix", 1)

	in := make([]float32, 8)
	in[0] = 1
	out := r.Process(proc.Block{append([]float32(nil), in...), append([]float32(nil), in...)})
	if out[0][0] < 0.12 || out[0][0] > 0.13 {
		t.Fatalf("expected the scaled unit impulse response near 0.125, got %g", out[0][0])
	}
}

func TestBypassPassesThrough(t *testing.T) {
	dir := t.TempDir()
	writeIR(t, dir, "hall.wav", 44100, []int{32768, 1000})
	r, err := New("reverb", dir, 8, 44100)
	if err != nil {
		t.Fatal(err)
	}
	typeP, err := r.Parameters().Get("type")
	if err != nil {
		t.Fatal(err)
	}
	if err := typeP.SetString("hall"); err != nil {
		t.Fatal(err)
	}
	bypassP, err := r.Parameters().Get("bypass")
	if err != nil {
		t.Fatal(err)
	}
	if err := bypassP.SetBool(true); err != nil {
		t.Fatal(err)
	}
	in := proc.Block{{1, 2, 3}}
	out := r.Process(in)
	for i := range in[0] {
		if out[0][i] != in[0][i] {
			t.Fatalf("bypass should pass through unchanged")
		}
	}
}

func setFloat(t *testing.T, r *Reverb, name string, v float64) {
	t.Helper()
	p, err := r.Parameters().Get(name)
	if err != nil {
		t.Fatal(err)
	}
	if err := p.SetFloat(v); err != nil {
		t.Fatal(err)
	}
}
