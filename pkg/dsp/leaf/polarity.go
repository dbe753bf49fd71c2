package leaf

import (
	"github.com/justyntemme/mixconsole/pkg/param"
	"github.com/justyntemme/mixconsole/pkg/proc"
	"github.com/justyntemme/mixconsole/pkg/randsrc"
)

// PolarityInverter negates every sample when its invert parameter is true.
type PolarityInverter struct {
	*proc.Base
	invert *param.Parameter
}

// NewPolarityInverter constructs a polarity inverter named name.
func NewPolarityInverter(name string, blockSize int, sampleRate float64) (*PolarityInverter, error) {
	p := &PolarityInverter{}
	list := param.NewList()
	invert, err := param.NewBool("invert", false, param.WithOwner(p))
	if err != nil {
		return nil, err
	}
	if err := list.Add(invert); err != nil {
		return nil, err
	}
	base, err := proc.NewBase(name, blockSize, sampleRate, list)
	if err != nil {
		return nil, err
	}
	p.Base = base
	p.invert = invert
	return p, nil
}

// Update is a no-op: invert is read directly from the parameter on
// every Process call, there is no derived state to recompute.
func (p *PolarityInverter) Update(name string) {}

// Reset restores the invert parameter to its default (false).
func (p *PolarityInverter) Reset() {
	p.ResetAndNotify(p.Update)
}

// Randomize flips invert with the console's randomness source.
func (p *PolarityInverter) Randomize(src *randsrc.Source) {
	p.RandomizeAndNotify(src, p.Update)
}

// Process negates every sample when invert is true.
func (p *PolarityInverter) Process(block proc.Block) proc.Block {
	if !p.invert.Bool() {
		return block
	}
	out := block.Clone()
	for _, ch := range out {
		for i := range ch {
			ch[i] = -ch[i]
		}
	}
	return out
}
