package leaf

import (
	"github.com/justyntemme/mixconsole/pkg/dsp/pan"
	"github.com/justyntemme/mixconsole/pkg/param"
	"github.com/justyntemme/mixconsole/pkg/proc"
	"github.com/justyntemme/mixconsole/pkg/randsrc"
)

// Panner is the last stage of a channel's post-chain: the point at
// which a mono signal becomes stereo. On a mono block it produces a
// stereo block scaled by the pan law's (L, R) gain pair; on a stereo
// block it scales each channel by its own gain with no cross-mix.
type Panner struct {
	*proc.Base
	panParam *param.Parameter
	lawParam *param.Parameter
	left     float32
	right    float32
}

// NewPanner constructs a panner named name, defaulting to center,
// constant-power law.
func NewPanner(name string, blockSize int, sampleRate float64) (*Panner, error) {
	p := &Panner{}
	list := param.NewList()

	panParam, err := param.NewFloat("pan", 0.5, 0, 1, param.WithOwner(p))
	if err != nil {
		return nil, err
	}
	lawParam, err := param.NewString("pan_law", "constant_power",
		[]string{"linear", "constant_power", "-4.5dB"}, param.WithOwner(p))
	if err != nil {
		return nil, err
	}
	if err := list.Add(panParam); err != nil {
		return nil, err
	}
	if err := list.Add(lawParam); err != nil {
		return nil, err
	}

	base, err := proc.NewBase(name, blockSize, sampleRate, list)
	if err != nil {
		return nil, err
	}
	p.Base = base
	p.panParam = panParam
	p.lawParam = lawParam
	p.recompute()
	return p, nil
}

func (p *Panner) recompute() {
	left, right := pan.Gains(p.panParam.Float(), pan.ParseLaw(p.lawParam.String()))
	p.left = float32(left)
	p.right = float32(right)
}

// Update recomputes the cached (left, right) gain pair.
func (p *Panner) Update(name string) { p.recompute() }

// Reset restores parameters to defaults and recomputes gains.
func (p *Panner) Reset() {
	p.ResetAndNotify(p.Update)
}

// Randomize draws pan and pan_law and recomputes once.
func (p *Panner) Randomize(src *randsrc.Source) {
	p.RandomizeAndNotify(src, p.Update)
}

// Process broadcasts a mono block to stereo via the cached pan gains,
// or scales an existing stereo block's channels independently.
func (p *Panner) Process(block proc.Block) proc.Block {
	if block.IsMono() {
		out := proc.NewStereo(block.Len())
		in := block[0]
		for i, x := range in {
			out[0][i] = x * p.left
			out[1][i] = x * p.right
		}
		return out
	}
	out := block.Clone()
	for i := range out[0] {
		out[0][i] *= p.left
	}
	for i := range out[1] {
		out[1][i] *= p.right
	}
	return out
}
