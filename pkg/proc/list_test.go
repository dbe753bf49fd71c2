package proc

import (
	"errors"
	"testing"

	"github.com/justyntemme/mixconsole/pkg/mixerr"
	"github.com/justyntemme/mixconsole/pkg/param"
	"github.com/justyntemme/mixconsole/pkg/randsrc"
)

// passthrough is a minimal Processor used to exercise List mechanics
// without depending on any real DSP component.
type passthrough struct {
	*Base
	gain float32
}

func newPassthrough(name string, gain float32) *passthrough {
	base, err := NewBase(name, 64, 44100, param.NewList())
	if err != nil {
		panic(err)
	}
	return &passthrough{Base: base, gain: gain}
}

func (p *passthrough) Process(block Block) Block {
	out := block.Clone()
	for _, ch := range out {
		for i := range ch {
			ch[i] *= p.gain
		}
	}
	return out
}

func (p *passthrough) Update(name string) {}
func (p *passthrough) Reset()             {}
func (p *passthrough) Randomize(src *randsrc.Source) {}

func TestListAppendPreservesOrder(t *testing.T) {
	l := NewList()
	if err := l.Append(newPassthrough("a", 1)); err != nil {
		t.Fatal(err)
	}
	if err := l.Append(newPassthrough("b", 1)); err != nil {
		t.Fatal(err)
	}
	if got := l.Names(); got[0] != "a" || got[1] != "b" {
		t.Fatalf("want [a b], got %v", got)
	}
}

func TestListRejectsDuplicateName(t *testing.T) {
	l := NewList()
	if err := l.Append(newPassthrough("a", 1)); err != nil {
		t.Fatal(err)
	}
	if err := l.Append(newPassthrough("a", 1)); !errors.Is(err, mixerr.ErrInvalidConstruction) {
		t.Fatalf("want ErrInvalidConstruction, got %v", err)
	}
}

func TestListGetMissingFailsLoudly(t *testing.T) {
	l := NewList()
	if _, err := l.Get("nope"); !errors.Is(err, mixerr.ErrMissingProcessor) {
		t.Fatalf("want ErrMissingProcessor, got %v", err)
	}
}

func TestListSwapAndRemove(t *testing.T) {
	l := NewList()
	for _, n := range []string{"a", "b", "c"} {
		if err := l.Append(newPassthrough(n, 1)); err != nil {
			t.Fatal(err)
		}
	}
	if err := l.Swap("a", "c"); err != nil {
		t.Fatal(err)
	}
	if got := l.Names(); got[0] != "c" || got[2] != "a" {
		t.Fatalf("want [c b a], got %v", got)
	}
	if err := l.Remove("b"); err != nil {
		t.Fatal(err)
	}
	if got := l.Names(); len(got) != 2 {
		t.Fatalf("want 2 names after remove, got %v", got)
	}
}

func TestListShuffleIsAPermutation(t *testing.T) {
	l := NewList()
	names := []string{"a", "b", "c", "d", "e"}
	for _, n := range names {
		if err := l.Append(newPassthrough(n, 1)); err != nil {
			t.Fatal(err)
		}
	}
	l.Shuffle(randsrc.New(42))
	got := l.Names()
	if len(got) != len(names) {
		t.Fatalf("shuffle changed length: %v", got)
	}
	seen := make(map[string]bool)
	for _, n := range got {
		seen[n] = true
	}
	for _, n := range names {
		if !seen[n] {
			t.Fatalf("shuffle lost name %q: %v", n, got)
		}
	}
}

func TestListProcessChainsInOrder(t *testing.T) {
	l := NewList()
	if err := l.Append(newPassthrough("double", 2)); err != nil {
		t.Fatal(err)
	}
	if err := l.Append(newPassthrough("half", 0.5)); err != nil {
		t.Fatal(err)
	}
	in := Block{{1, 2, 3}}
	out := l.Process(in)
	for i, v := range out[0] {
		if v != in[0][i] {
			t.Fatalf("double then half should be identity, got %v want %v", out[0], in[0])
		}
	}
}
