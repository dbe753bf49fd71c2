package param

import (
	"errors"
	"testing"

	"github.com/justyntemme/mixconsole/pkg/mixerr"
)

func mustFloat(t *testing.T, name string, def, min, max float64) *Parameter {
	t.Helper()
	p, err := NewFloat(name, def, min, max)
	if err != nil {
		t.Fatal(err)
	}
	return p
}

func TestListPreservesInsertionOrder(t *testing.T) {
	l := NewList()
	names := []string{"c", "a", "b"}
	for _, n := range names {
		if err := l.Add(mustFloat(t, n, 0, -1, 1)); err != nil {
			t.Fatal(err)
		}
	}
	if got := l.Names(); got[0] != "c" || got[1] != "a" || got[2] != "b" {
		t.Fatalf("want insertion order [c a b], got %v", got)
	}
}

func TestListRejectsDuplicateNames(t *testing.T) {
	l := NewList()
	if err := l.Add(mustFloat(t, "gain", 0, -1, 1)); err != nil {
		t.Fatal(err)
	}
	if err := l.Add(mustFloat(t, "gain", 0, -1, 1)); !errors.Is(err, mixerr.ErrInvalidConstruction) {
		t.Fatalf("want ErrInvalidConstruction, got %v", err)
	}
}

func TestListGetMissingFailsLoudly(t *testing.T) {
	l := NewList()
	if _, err := l.Get("nope"); !errors.Is(err, mixerr.ErrMissingProcessor) {
		t.Fatalf("want ErrMissingProcessor, got %v", err)
	}
}

func TestListVectorizeOrderMatchesInsertion(t *testing.T) {
	l := NewList()
	a := mustFloat(t, "a", -1, -1, 1)
	b := mustFloat(t, "b", 1, -1, 1)
	if err := l.Add(a); err != nil {
		t.Fatal(err)
	}
	if err := l.Add(b); err != nil {
		t.Fatal(err)
	}
	v := l.Vectorize()
	if len(v) != 2 || v[0] != -1 || v[1] != 1 {
		t.Fatalf("want [-1 1], got %v", v)
	}
}
