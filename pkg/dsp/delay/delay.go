// Package delay implements the console's stereo circular-buffer delay
// with feedback and dry/wet mix.
//
// Grounded on the teacher's dsp/delay/delay.go Line type for the
// circular-buffer mechanics, simplified from its fractional-delay
// linear-interpolated read (a float delaySamples argument) down to
// spec.md's exact two-index integer scheme: a read_idx and a
// write_idx advanced together modulo a fixed capacity, rather than one
// write cursor plus a float read offset.
package delay

import (
	"github.com/justyntemme/mixconsole/pkg/param"
	"github.com/justyntemme/mixconsole/pkg/proc"
	"github.com/justyntemme/mixconsole/pkg/randsrc"
)

// Capacity is the fixed circular buffer size, large enough to hold a
// full second of delay at typical sample rates.
const Capacity = 65536

// Delay is the stereo circular-buffer delay processor. It owns one
// buffer per channel; a mono block only touches channel 0's buffer,
// since a mono input broadcast identically into two buffers produces
// an identical result on either one.
type Delay struct {
	*proc.Base

	bypass   *param.Parameter
	delay    *param.Parameter
	feedback *param.Parameter
	dryMix   *param.Parameter
	wetMix   *param.Parameter

	buf      [2][]float32
	readIdx  int
	writeIdx int
}

// New constructs a delay processor named name. delay's upper bound is
// clamped to the console's sample_rate (one second) or the buffer
// capacity, whichever is smaller.
func New(name string, blockSize int, sampleRate float64) (*Delay, error) {
	d := &Delay{}
	d.buf[0] = make([]float32, Capacity)
	d.buf[1] = make([]float32, Capacity)

	list := param.NewList()

	bypass, err := param.NewBool("bypass", false, param.WithOwner(d), param.WithRandomizable(false))
	if err != nil {
		return nil, err
	}
	maxDelay := int(sampleRate)
	if maxDelay > Capacity-1 {
		maxDelay = Capacity - 1
	}
	delayP, err := param.NewInt("delay", maxDelay/4, 0, maxDelay, param.WithOwner(d), param.WithUnits("samples"))
	if err != nil {
		return nil, err
	}
	feedback, err := param.NewFloat("feedback", 0.3, 0, 1, param.WithOwner(d))
	if err != nil {
		return nil, err
	}
	dryMix, err := param.NewFloat("dry_mix", 0.7, 0, 1, param.WithOwner(d))
	if err != nil {
		return nil, err
	}
	wetMix, err := param.NewFloat("wet_mix", 0.3, 0, 1, param.WithOwner(d))
	if err != nil {
		return nil, err
	}
	for _, p := range []*param.Parameter{bypass, delayP, feedback, dryMix, wetMix} {
		if err := list.Add(p); err != nil {
			return nil, err
		}
	}

	base, err := proc.NewBase(name, blockSize, sampleRate, list)
	if err != nil {
		return nil, err
	}
	d.Base = base
	d.bypass, d.delay, d.feedback, d.dryMix, d.wetMix = bypass, delayP, feedback, dryMix, wetMix
	d.applyDelayLength()
	return d, nil
}

func (d *Delay) applyDelayLength() {
	d.readIdx = 0
	d.writeIdx = d.delay.Int() % Capacity
	for ch := range d.buf {
		for i := range d.buf[ch] {
			d.buf[ch][i] = 0
		}
	}
}

// Update zeroes the buffer and resets both indices whenever the delay
// length changes, the structural parameter for this processor;
// feedback/dry_mix/wet_mix changes need no recompute, they are read
// directly on every sample.
func (d *Delay) Update(name string) {
	if name == "" || name == "delay" {
		d.applyDelayLength()
	}
}

// Reset zeroes the buffer and resets both indices.
func (d *Delay) Reset() {
	d.ResetAndNotify(func(string) { d.applyDelayLength() })
}

// Randomize draws delay/feedback/dry_mix/wet_mix and calls Update once.
func (d *Delay) Randomize(src *randsrc.Source) {
	d.RandomizeAndNotify(src, d.Update)
}

// Process reads/writes the circular buffer per channel.
func (d *Delay) Process(block proc.Block) proc.Block {
	if d.bypass.Bool() {
		return block
	}
	dry := float32(d.dryMix.Float())
	wet := float32(d.wetMix.Float())
	fb := float32(d.feedback.Float())
	n := block.Len()

	out := make(proc.Block, len(block))
	for ch := range block {
		out[ch] = make([]float32, n)
	}

	readIdx, writeIdx := d.readIdx, d.writeIdx
	for i := 0; i < n; i++ {
		for ch := range block {
			in := block[ch][i]
			read := d.buf[ch][readIdx]
			out[ch][i] = dry*in + wet*read
			d.buf[ch][writeIdx] = in + fb*read
		}
		readIdx = (readIdx + 1) % Capacity
		writeIdx = (writeIdx + 1) % Capacity
	}
	d.readIdx, d.writeIdx = readIdx, writeIdx
	return out
}
