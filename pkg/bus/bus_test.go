package bus

import (
	"testing"

	"github.com/justyntemme/mixconsole/pkg/proc"
	"github.com/justyntemme/mixconsole/pkg/randsrc"
)

func setSend(t *testing.T, b *Bus, name string, v float64) {
	t.Helper()
	p, err := b.Sends().Get(name)
	if err != nil {
		t.Fatal(err)
	}
	if err := p.SetFloat(v); err != nil {
		t.Fatal(err)
	}
}

func TestAuxSendsDefaultToZero(t *testing.T) {
	b, err := New("aux1", 3, 4, 44100)
	if err != nil {
		t.Fatal(err)
	}
	in := []proc.Block{
		{{1, 1, 1, 1}, {1, 1, 1, 1}},
		{{1, 1, 1, 1}, {1, 1, 1, 1}},
		{{1, 1, 1, 1}, {1, 1, 1, 1}},
	}
	out := b.Process(in)
	for ch := range out {
		for _, v := range out[ch] {
			if v != 0 {
				t.Fatalf("expected silence with all sends at 0, got %g", v)
			}
		}
	}
}

// Weighted sum: ∑ₖ sendₖ·input[:,:,k] with an empty chain.
func TestWeightedSumMatchesSends(t *testing.T) {
	b, err := New("aux1", 2, 4, 44100)
	if err != nil {
		t.Fatal(err)
	}
	setSend(t, b, "ch0-send", 0.5)
	setSend(t, b, "ch1-send", 0.25)

	in := []proc.Block{
		{{2, 2, 2, 2}, {2, 2, 2, 2}},
		{{4, 4, 4, 4}, {4, 4, 4, 4}},
	}
	out := b.Process(in)
	want := float32(0.5*2 + 0.25*4) // 2
	for ch := range out {
		for _, v := range out[ch] {
			if v != want {
				t.Fatalf("expected %g, got %g", want, v)
			}
		}
	}
}

// Master bus: all sends fixed at 1.0, non-randomizable.
func TestMasterBusSendsAreFixedAndNonRandomizable(t *testing.T) {
	b, err := NewMaster("master", 5, 4, 44100)
	if err != nil {
		t.Fatal(err)
	}
	if !b.IsMaster() {
		t.Fatal("expected IsMaster() to be true")
	}
	for _, name := range b.Sends().Names() {
		p, err := b.Sends().Get(name)
		if err != nil {
			t.Fatal(err)
		}
		if p.Float() != 1.0 {
			t.Fatalf("expected send %q to default to 1.0, got %g", name, p.Float())
		}
		if p.RandomizeValue() {
			t.Fatalf("expected send %q to be non-randomizable on the master bus", name)
		}
	}

	b.Randomize(randsrc.New(1))
	for _, name := range b.Sends().Names() {
		p, err := b.Sends().Get(name)
		if err != nil {
			t.Fatal(err)
		}
		if p.Float() != 1.0 {
			t.Fatalf("expected send %q to remain 1.0 after randomize, got %g", name, p.Float())
		}
	}
}

func TestMasterBusChainContainsEQAndCompressor(t *testing.T) {
	b, err := NewMaster("master", 2, 4, 44100)
	if err != nil {
		t.Fatal(err)
	}
	names := b.Chain().Names()
	if len(names) != 2 || names[0] != "master-eq" || names[1] != "master-compressor" {
		t.Fatalf("expected [master-eq, master-compressor], got %v", names)
	}
}

func TestResetRestoresDefaultSends(t *testing.T) {
	b, err := New("aux1", 2, 4, 44100)
	if err != nil {
		t.Fatal(err)
	}
	setSend(t, b, "ch0-send", 1.0)
	b.Reset()
	p, err := b.Sends().Get("ch0-send")
	if err != nil {
		t.Fatal(err)
	}
	if p.Float() != 0 {
		t.Fatalf("expected ch0-send to reset to 0, got %g", p.Float())
	}
}

func TestMonoInputIsBroadcastToStereoBeforeSumming(t *testing.T) {
	b, err := New("aux1", 1, 4, 44100)
	if err != nil {
		t.Fatal(err)
	}
	setSend(t, b, "ch0-send", 1.0)
	in := []proc.Block{{{1, 0, 0, 0}}}
	out := b.Process(in)
	if !out.IsStereo() {
		t.Fatal("expected stereo output")
	}
	if out[0][0] != 1 || out[1][0] != 1 {
		t.Fatalf("expected mono input broadcast equally to both channels, got %g / %g", out[0][0], out[1][0])
	}
}
