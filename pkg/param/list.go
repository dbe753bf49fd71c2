package param

import (
	"fmt"

	"github.com/justyntemme/mixconsole/pkg/mixerr"
)

// List is an insertion-ordered, name-keyed collection of Parameters.
// Iteration order is observable: Serialize and Vectorize walk the list
// in insertion order, not name order.
type List struct {
	order []string
	byName map[string]*Parameter
}

// NewList returns an empty parameter list.
func NewList() *List {
	return &List{byName: make(map[string]*Parameter)}
}

// Add registers p under its own name. Returns ErrInvalidConstruction if
// the name is already present. Registration is what enables the
// parameter's owner notification on Set.
func (l *List) Add(p *Parameter) error {
	if _, exists := l.byName[p.name]; exists {
		return fmt.Errorf("%w: duplicate parameter name %q", mixerr.ErrInvalidConstruction, p.name)
	}
	l.order = append(l.order, p.name)
	l.byName[p.name] = p
	p.register()
	return nil
}

// Get looks up a parameter by name.
func (l *List) Get(name string) (*Parameter, error) {
	p, ok := l.byName[name]
	if !ok {
		return nil, fmt.Errorf("%w: parameter %q", mixerr.ErrMissingProcessor, name)
	}
	return p, nil
}

// All returns the parameters in insertion order. The returned slice is
// a fresh copy; mutating it does not affect the list.
func (l *List) All() []*Parameter {
	out := make([]*Parameter, len(l.order))
	for i, name := range l.order {
		out[i] = l.byName[name]
	}
	return out
}

// Len returns the number of parameters in the list.
func (l *List) Len() int { return len(l.order) }

// Names returns the parameter names in insertion order.
func (l *List) Names() []string {
	return append([]string(nil), l.order...)
}

// Reset restores every parameter to its construction-time default. Does
// not itself call Update; the owning Processor calls Update(nil) once
// after resetting so derived state recomputes a single time.
func (l *List) Reset() {
	for _, name := range l.order {
		l.byName[name].Reset()
	}
}

// Serialize walks the list in insertion order and returns name ->
// parameter.Serialize(normalize, oneHotEncode).
func (l *List) Serialize(normalize, oneHotEncode bool) map[string]interface{} {
	out := make(map[string]interface{}, len(l.order))
	for _, name := range l.order {
		out[name] = l.byName[name].Serialize(normalize, oneHotEncode)
	}
	return out
}

// Vectorize concatenates every parameter's Vectorize output in
// insertion order.
func (l *List) Vectorize() []float64 {
	var out []float64
	for _, name := range l.order {
		out = append(out, l.byName[name].Vectorize()...)
	}
	return out
}
