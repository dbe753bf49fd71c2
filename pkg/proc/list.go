package proc

import (
	"fmt"

	"github.com/justyntemme/mixconsole/pkg/mixerr"
	"github.com/justyntemme/mixconsole/pkg/randsrc"
)

// List is an ordered, name-addressed chain of Processors. Iteration
// order defines processing order: Process runs every entry in
// sequence, feeding each one's output to the next.
type List struct {
	order []string
	byName map[string]Processor
}

// NewList returns an empty processor list.
func NewList() *List {
	return &List{byName: make(map[string]Processor)}
}

// Append adds p to the end of the chain.
func (l *List) Append(p Processor) error {
	return l.Insert(len(l.order), p)
}

// Insert adds p at index, shifting later entries right. Returns
// ErrInvalidConstruction on a duplicate name.
func (l *List) Insert(index int, p Processor) error {
	name := p.Name()
	if _, exists := l.byName[name]; exists {
		return fmt.Errorf("%w: duplicate processor name %q", mixerr.ErrInvalidConstruction, name)
	}
	if index < 0 || index > len(l.order) {
		index = len(l.order)
	}
	l.order = append(l.order, "")
	copy(l.order[index+1:], l.order[index:])
	l.order[index] = name
	l.byName[name] = p
	return nil
}

// Swap exchanges the positions of the processors named a and b.
func (l *List) Swap(a, b string) error {
	ia, ok := l.indexOf(a)
	if !ok {
		return fmt.Errorf("%w: %q", mixerr.ErrMissingProcessor, a)
	}
	ib, ok := l.indexOf(b)
	if !ok {
		return fmt.Errorf("%w: %q", mixerr.ErrMissingProcessor, b)
	}
	l.order[ia], l.order[ib] = l.order[ib], l.order[ia]
	return nil
}

// Remove deletes the processor named name from the chain.
func (l *List) Remove(name string) error {
	i, ok := l.indexOf(name)
	if !ok {
		return fmt.Errorf("%w: %q", mixerr.ErrMissingProcessor, name)
	}
	l.order = append(l.order[:i], l.order[i+1:]...)
	delete(l.byName, name)
	return nil
}

// Get looks up a processor by name. Fails loudly (ErrMissingProcessor)
// if absent, per the list's lookup contract.
func (l *List) Get(name string) (Processor, error) {
	p, ok := l.byName[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", mixerr.ErrMissingProcessor, name)
	}
	return p, nil
}

func (l *List) indexOf(name string) (int, bool) {
	for i, n := range l.order {
		if n == name {
			return i, true
		}
	}
	return 0, false
}

// All returns the processors in chain order. The returned slice is a
// fresh copy.
func (l *List) All() []Processor {
	out := make([]Processor, len(l.order))
	for i, name := range l.order {
		out[i] = l.byName[name]
	}
	return out
}

// Names returns the processor names in chain order.
func (l *List) Names() []string {
	return append([]string(nil), l.order...)
}

// Len returns the number of processors in the chain.
func (l *List) Len() int { return len(l.order) }

// Shuffle reorders the chain in place via a uniform random permutation
// drawn from src. The multiset of names is unchanged; only order moves.
func (l *List) Shuffle(src *randsrc.Source) {
	src.Shuffle(len(l.order), func(i, j int) {
		l.order[i], l.order[j] = l.order[j], l.order[i]
	})
}

// Process runs block through every processor in chain order, each
// consuming the previous one's output.
func (l *List) Process(block Block) Block {
	for _, name := range l.order {
		block = l.byName[name].Process(block)
	}
	return block
}

// Reset resets every processor in the chain.
func (l *List) Reset() {
	for _, name := range l.order {
		l.byName[name].Reset()
	}
}

// Randomize randomizes every processor in the chain.
func (l *List) Randomize(src *randsrc.Source) {
	for _, name := range l.order {
		l.byName[name].Randomize(src)
	}
}

// Serialize returns name -> processor.Serialize(normalize, oneHotEncode)
// for every processor, plus each processor's current chain position so
// the order is recoverable from the document.
func (l *List) Serialize(normalize, oneHotEncode bool) map[string]interface{} {
	out := make(map[string]interface{}, len(l.order))
	for i, name := range l.order {
		p := l.byName[name]
		params := p.Serialize(normalize, oneHotEncode)
		params["order"] = i
		out[name] = params
	}
	return out
}

// Vectorize concatenates every processor's Vectorize output in chain order.
func (l *List) Vectorize() []float64 {
	var out []float64
	for _, name := range l.order {
		out = append(out, l.byName[name].Vectorize()...)
	}
	return out
}
