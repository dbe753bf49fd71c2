package param

import (
	"errors"
	"testing"

	"github.com/justyntemme/mixconsole/pkg/mixerr"
	"github.com/justyntemme/mixconsole/pkg/randsrc"
)

type recordingOwner struct {
	updates []string
}

func (o *recordingOwner) Update(name string) { o.updates = append(o.updates, name) }

func TestNewFloatRejectsInvertedBounds(t *testing.T) {
	if _, err := NewFloat("gain", 0, 10, -10); !errors.Is(err, mixerr.ErrInvalidConstruction) {
		t.Fatalf("want ErrInvalidConstruction, got %v", err)
	}
}

func TestNewFloatRejectsOutOfRangeDefault(t *testing.T) {
	if _, err := NewFloat("gain", 100, 0, 10); !errors.Is(err, mixerr.ErrInvalidConstruction) {
		t.Fatalf("want ErrInvalidConstruction, got %v", err)
	}
}

func TestNewStringRequiresOptions(t *testing.T) {
	if _, err := NewString("type", "a", nil); !errors.Is(err, mixerr.ErrInvalidConstruction) {
		t.Fatalf("want ErrInvalidConstruction, got %v", err)
	}
}

func TestSetValidatesBounds(t *testing.T) {
	p, err := NewFloat("gain", 0, -10, 10)
	if err != nil {
		t.Fatal(err)
	}
	if err := p.SetFloat(20); !errors.Is(err, mixerr.ErrInvalidParameter) {
		t.Fatalf("want ErrInvalidParameter, got %v", err)
	}
	if err := p.SetFloat(5); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Float() != 5 {
		t.Fatalf("want 5, got %g", p.Float())
	}
}

func TestSetNotifiesOwnerOnlyOnceRegistered(t *testing.T) {
	owner := &recordingOwner{}
	p, err := NewFloat("gain", 0, -10, 10, WithOwner(owner))
	if err != nil {
		t.Fatal(err)
	}
	if err := p.SetFloat(1); err != nil {
		t.Fatal(err)
	}
	if len(owner.updates) != 0 {
		t.Fatalf("expected no notification before registration, got %v", owner.updates)
	}
	list := NewList()
	if err := list.Add(p); err != nil {
		t.Fatal(err)
	}
	if err := p.SetFloat(2); err != nil {
		t.Fatal(err)
	}
	if len(owner.updates) != 1 || owner.updates[0] != "gain" {
		t.Fatalf("want one notification for %q, got %v", "gain", owner.updates)
	}
}

func TestResetRestoresDefaultWithoutNotifying(t *testing.T) {
	owner := &recordingOwner{}
	p, err := NewFloat("gain", 3, -10, 10, WithOwner(owner))
	if err != nil {
		t.Fatal(err)
	}
	list := NewList()
	if err := list.Add(p); err != nil {
		t.Fatal(err)
	}
	if err := p.SetFloat(9); err != nil {
		t.Fatal(err)
	}
	p.Reset()
	if p.Float() != 3 {
		t.Fatalf("want default 3, got %g", p.Float())
	}
	if len(owner.updates) != 1 {
		t.Fatalf("Reset must not notify the owner, got %v", owner.updates)
	}
}

func TestRandomizeStaysInBoundsAndDoesNotNotify(t *testing.T) {
	owner := &recordingOwner{}
	p, err := NewFloat("freq", 1000, 20, 20000, WithOwner(owner))
	if err != nil {
		t.Fatal(err)
	}
	list := NewList()
	if err := list.Add(p); err != nil {
		t.Fatal(err)
	}
	src := randsrc.New(1)
	for i := 0; i < 200; i++ {
		if err := p.Randomize(src, DistributionUniform); err != nil {
			t.Fatal(err)
		}
		if p.Float() < 20 || p.Float() > 20000 {
			t.Fatalf("randomized value %g out of bounds", p.Float())
		}
	}
	if len(owner.updates) != 0 {
		t.Fatalf("Randomize must not itself notify the owner, got %v", owner.updates)
	}
}

func TestRandomizeNormalClampsToBounds(t *testing.T) {
	p, err := NewFloat("gain", 0, -1, 1, WithNormal(0, 5))
	if err != nil {
		t.Fatal(err)
	}
	src := randsrc.New(7)
	for i := 0; i < 500; i++ {
		if err := p.Randomize(src, DistributionDefault); err != nil {
			t.Fatal(err)
		}
		if p.Float() < -1 || p.Float() > 1 {
			t.Fatalf("normal draw %g escaped [-1,1]", p.Float())
		}
	}
}

func TestSerializeNormalizedRange(t *testing.T) {
	p, err := NewFloat("gain", 0, -10, 10)
	if err != nil {
		t.Fatal(err)
	}
	if err := p.SetFloat(0); err != nil {
		t.Fatal(err)
	}
	got := p.Serialize(true, false).(float64)
	if got != 0.5 {
		t.Fatalf("want 0.5, got %v", got)
	}
	if err := p.SetFloat(-10); err != nil {
		t.Fatal(err)
	}
	if got := p.Serialize(true, false).(float64); got != 0 {
		t.Fatalf("want 0, got %v", got)
	}
}

func TestSerializeStringOneHot(t *testing.T) {
	p, err := NewString("mode", "b", []string{"a", "b", "c"})
	if err != nil {
		t.Fatal(err)
	}
	got := p.Serialize(false, true).([]float64)
	want := []float64{0, 1, 0}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("one-hot mismatch: got %v want %v", got, want)
		}
	}
}

func TestVectorizeFloatMapsToSignedUnitRange(t *testing.T) {
	p, err := NewFloat("gain", 0, -10, 10)
	if err != nil {
		t.Fatal(err)
	}
	if err := p.SetFloat(-10); err != nil {
		t.Fatal(err)
	}
	v := p.Vectorize()
	if len(v) != 1 || v[0] != -1 {
		t.Fatalf("want [-1], got %v", v)
	}
	if err := p.SetFloat(10); err != nil {
		t.Fatal(err)
	}
	v = p.Vectorize()
	if v[0] != 1 {
		t.Fatalf("want [1], got %v", v)
	}
}
