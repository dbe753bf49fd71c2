// Package eq implements the console's 5-band parametric equaliser: a
// cascade of one low shelf, three peaking bands, and one high shelf,
// each an RBJ cookbook biquad.
//
// Grounded on the teacher's dsp/filter/biquad.go design functions
// (SetLowShelf/SetPeakingEQ/SetHighShelf, reused here via pkg/dsp/biquad)
// cascaded the way the teacher's multi-band plugin examples chained
// several Biquads in series, one per band, each independently
// recomputed on its own parameter's update.
package eq

import (
	"github.com/justyntemme/mixconsole/pkg/dsp/biquad"
	"github.com/justyntemme/mixconsole/pkg/dsp/gain"
	"github.com/justyntemme/mixconsole/pkg/param"
	"github.com/justyntemme/mixconsole/pkg/proc"
	"github.com/justyntemme/mixconsole/pkg/randsrc"
)

type band struct {
	prefix string
	minHz  float64
	maxHz  float64
	defHz  float64
	peaking bool

	gainP *param.Parameter
	freqP *param.Parameter
	qP    *param.Parameter // nil for shelves

	filter *biquad.Biquad
}

// EQ is the 5-band parametric equaliser processor.
type EQ struct {
	*proc.Base
	bypass   *param.Parameter
	hardClip *param.Parameter
	bands    [5]*band
}

var bandSpecs = [5]struct {
	prefix  string
	minHz   float64
	maxHz   float64
	defHz   float64
	peaking bool
}{
	{"low_shelf", 20, 500, 100, false},
	{"band1", 100, 2000, 300, true},
	{"band2", 500, 5000, 1000, true},
	{"band3", 2000, 10000, 3000, true},
	{"high_shelf", 2000, 20000, 8000, false},
}

// New constructs the 5-band equaliser at the given block size/sample rate.
func New(name string, blockSize int, sampleRate float64) (*EQ, error) {
	e := &EQ{}
	list := param.NewList()

	bypass, err := param.NewBool("bypass", false, param.WithOwner(e), param.WithRandomizable(false))
	if err != nil {
		return nil, err
	}
	hardClip, err := param.NewBool("hard_clip", false, param.WithOwner(e), param.WithRandomizable(false))
	if err != nil {
		return nil, err
	}
	if err := list.Add(bypass); err != nil {
		return nil, err
	}
	if err := list.Add(hardClip); err != nil {
		return nil, err
	}
	e.bypass = bypass
	e.hardClip = hardClip

	for i, spec := range bandSpecs {
		b := &band{prefix: spec.prefix, minHz: spec.minHz, maxHz: spec.maxHz, defHz: spec.defHz, peaking: spec.peaking}
		gainP, err := param.NewFloat(spec.prefix+"_gain", 0, -24, 24, param.WithOwner(e), param.WithUnits("dB"))
		if err != nil {
			return nil, err
		}
		freqP, err := param.NewFloat(spec.prefix+"_freq", spec.defHz, spec.minHz, spec.maxHz, param.WithOwner(e), param.WithUnits("Hz"))
		if err != nil {
			return nil, err
		}
		if err := list.Add(gainP); err != nil {
			return nil, err
		}
		if err := list.Add(freqP); err != nil {
			return nil, err
		}
		b.gainP, b.freqP = gainP, freqP
		if spec.peaking {
			qP, err := param.NewFloat(spec.prefix+"_q", 0.707, 0.1, 10.0, param.WithOwner(e))
			if err != nil {
				return nil, err
			}
			if err := list.Add(qP); err != nil {
				return nil, err
			}
			b.qP = qP
		}
		b.filter = biquad.New(2)
		e.bands[i] = b
	}

	base, err := proc.NewBase(name, blockSize, sampleRate, list)
	if err != nil {
		return nil, err
	}
	e.Base = base
	e.recomputeAll()
	return e, nil
}

func (e *EQ) recomputeBand(b *band) {
	q := 0.707
	if b.qP != nil {
		q = b.qP.Float()
	}
	switch b.prefix {
	case "low_shelf":
		b.filter.SetLowShelf(e.SampleRate(), b.freqP.Float(), q, b.gainP.Float())
	case "high_shelf":
		b.filter.SetHighShelf(e.SampleRate(), b.freqP.Float(), q, b.gainP.Float())
	default:
		b.filter.SetPeakingEQ(e.SampleRate(), b.freqP.Float(), q, b.gainP.Float())
	}
}

func (e *EQ) recomputeAll() {
	for _, b := range e.bands {
		e.recomputeBand(b)
	}
}

// Update recomputes only the band whose parameter changed; name == ""
// recomputes every band.
func (e *EQ) Update(name string) {
	if name == "" {
		e.recomputeAll()
		return
	}
	for _, b := range e.bands {
		if name == b.prefix+"_gain" || name == b.prefix+"_freq" || name == b.prefix+"_q" {
			e.recomputeBand(b)
			return
		}
	}
}

// Reset restores every parameter to default, recomputes every band,
// and zeroes all biquad histories.
func (e *EQ) Reset() {
	e.ResetAndNotify(e.Update)
	for _, b := range e.bands {
		b.filter.Reset()
	}
}

// Randomize draws every band's gain/freq/Q and recomputes once.
func (e *EQ) Randomize(src *randsrc.Source) {
	e.RandomizeAndNotify(src, e.Update)
}

// Process runs the block through the five-band cascade, optionally
// hard-clipping to [-1,1] afterward.
func (e *EQ) Process(block proc.Block) proc.Block {
	if e.bypass.Bool() {
		return block
	}
	out := block.Clone()
	for ch := range out {
		for _, b := range e.bands {
			b.filter.Process(out[ch], ch)
		}
	}
	if e.hardClip.Bool() {
		for _, buf := range out {
			gain.HardClipBuffer(buf, 1.0)
		}
	}
	return out
}
