// Package leaf implements the console's three stateless leaf
// processors: Gain, PolarityInverter, and Panner. None of them carry
// sample history, so Update just recomputes a cached coefficient (a
// no-op for PolarityInverter, which has none) and Reset is the
// parameter reset plus that same recompute.
//
// Grounded on the teacher's gain parameter conventions (param/builders.go's
// GainParameter: dB range, zero default) for Gain's bounds, and on
// dsp/pan/pan.go's package shape for Panner; PolarityInverter has no
// teacher analogue (VST3 plugins rarely expose a bare polarity toggle)
// and is built directly from spec.md's one-parameter description.
package leaf

import (
	"github.com/justyntemme/mixconsole/pkg/dsp/gain"
	"github.com/justyntemme/mixconsole/pkg/param"
	"github.com/justyntemme/mixconsole/pkg/proc"
	"github.com/justyntemme/mixconsole/pkg/randsrc"
)

// Gain is a stateless per-block amplitude scale, in dB.
type Gain struct {
	*proc.Base
	bypass     *param.Parameter
	gainParam  *param.Parameter
	linearGain float32
}

// NewGain constructs a gain processor named name, bound to the given
// block size and sample rate.
func NewGain(name string, blockSize int, sampleRate float64) (*Gain, error) {
	g := &Gain{}
	list := param.NewList()

	bypass, err := param.NewBool("bypass", false, param.WithOwner(g), param.WithRandomizable(false))
	if err != nil {
		return nil, err
	}
	gainParam, err := param.NewFloat("gain", 0, -80, 24, param.WithOwner(g), param.WithUnits("dB"), param.WithNormal(0, 4))
	if err != nil {
		return nil, err
	}
	if err := list.Add(bypass); err != nil {
		return nil, err
	}
	if err := list.Add(gainParam); err != nil {
		return nil, err
	}

	base, err := proc.NewBase(name, blockSize, sampleRate, list)
	if err != nil {
		return nil, err
	}
	g.Base = base
	g.bypass = bypass
	g.gainParam = gainParam
	g.recompute()
	return g, nil
}

func (g *Gain) recompute() {
	g.linearGain = gain.DbToLinear32(float32(g.gainParam.Float()))
}

// Update recomputes the cached linear gain from the gain parameter.
func (g *Gain) Update(name string) { g.recompute() }

// Reset restores parameter defaults and recomputes the cached gain.
// Gain is stateless so there is no buffer to zero.
func (g *Gain) Reset() {
	g.ResetAndNotify(g.Update)
}

// Randomize draws the gain parameter (bypass is not randomizable) and
// recomputes once.
func (g *Gain) Randomize(src *randsrc.Source) {
	g.RandomizeAndNotify(src, g.Update)
}

// Process scales every channel by the cached linear gain, unless bypassed.
func (g *Gain) Process(block proc.Block) proc.Block {
	if g.bypass.Bool() {
		return block
	}
	out := block.Clone()
	for _, ch := range out {
		for i := range ch {
			ch[i] *= g.linearGain
		}
	}
	return out
}
