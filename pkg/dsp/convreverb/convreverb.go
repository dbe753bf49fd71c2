// Package convreverb implements the console's convolutional reverb:
// partitioned frequency-domain convolution of the input against a
// room impulse response loaded from a fixed directory.
//
// Grounded on the pack's MeKo-Christian pw-convoverb OverlapAddEngine
// (FFT-multiply-inverse-FFT per block, overlap-add tail) for the core
// mechanics, generalized from its single-FFT-covers-the-whole-IR shape
// to spec.md §4.11's fixed FFT size of 2*block_size: the impulse
// response is partitioned into block_size-long segments, each
// convolved against the same forward FFT of the input block, and the
// partial results are accumulated into a running overlap buffer
// (uniform-partitioned overlap-add).
package convreverb

import (
	"fmt"
	"math"

	algofft "github.com/MeKo-Christian/algo-fft"

	"github.com/justyntemme/mixconsole/pkg/ir"
	"github.com/justyntemme/mixconsole/pkg/mixerr"
	"github.com/justyntemme/mixconsole/pkg/param"
	"github.com/justyntemme/mixconsole/pkg/proc"
	"github.com/justyntemme/mixconsole/pkg/randsrc"
)

// headroomScale converts a 16-bit PCM impulse sample to a [-1,1]-range
// float with extra headroom, per spec.md §4.11.
const headroomScale = (1.0 / 32768.0) * 0.125

// channelEngine is one channel's partitioned-convolution state.
type channelEngine struct {
	plan      *algofft.Plan[complex64]
	fftSize   int
	blockSize int
	partFFT   [][]complex64 // one spectrum per block_size-long IR partition
	accum     []float32     // running overlap-add accumulator
	scratchIn  []complex64
	scratchOut []complex64
}

func newChannelEngine(h []float32, blockSize int) (*channelEngine, error) {
	fftSize := nextPow2(2 * blockSize)
	plan, err := algofft.NewPlan32(fftSize)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", mixerr.ErrResourceError, err)
	}

	numParts := (len(h) + blockSize - 1) / blockSize
	if numParts < 1 {
		numParts = 1
	}
	e := &channelEngine{
		plan:       plan,
		fftSize:    fftSize,
		blockSize:  blockSize,
		partFFT:    make([][]complex64, numParts),
		accum:      make([]float32, numParts*blockSize+blockSize),
		scratchIn:  make([]complex64, fftSize),
		scratchOut: make([]complex64, fftSize),
	}

	for p := 0; p < numParts; p++ {
		seg := make([]complex64, fftSize)
		start := p * blockSize
		end := start + blockSize
		if end > len(h) {
			end = len(h)
		}
		for i := start; i < end; i++ {
			seg[i-start] = complex(h[i], 0)
		}
		spec := make([]complex64, fftSize)
		if err := plan.Forward(spec, seg); err != nil {
			return nil, fmt.Errorf("%w: %v", mixerr.ErrResourceError, err)
		}
		e.partFFT[p] = spec
	}
	return e, nil
}

// process convolves one block and returns the next wet output, having
// advanced the overlap accumulator by block_size samples.
func (e *channelEngine) process(block []float32) []float32 {
	for i := 0; i < e.fftSize; i++ {
		if i < len(block) {
			e.scratchIn[i] = complex(block[i], 0)
		} else {
			e.scratchIn[i] = 0
		}
	}
	if err := e.plan.Forward(e.scratchIn, e.scratchIn); err != nil {
		return make([]float32, len(block))
	}

	for p, spec := range e.partFFT {
		for i := range e.scratchOut {
			e.scratchOut[i] = e.scratchIn[i] * spec[i]
		}
		if err := e.plan.Inverse(e.scratchOut, e.scratchOut); err != nil {
			continue
		}
		offset := p * e.blockSize
		for i := 0; i < e.fftSize && offset+i < len(e.accum); i++ {
			e.accum[offset+i] += real(e.scratchOut[i])
		}
	}

	out := make([]float32, len(block))
	copy(out, e.accum[:len(block)])

	copy(e.accum, e.accum[e.blockSize:])
	for i := len(e.accum) - e.blockSize; i < len(e.accum); i++ {
		e.accum[i] = 0
	}
	return out
}

func nextPow2(n int) int {
	p := 1
	for p < n {
		p *= 2
	}
	return p
}

// Reverb is the convolutional reverb processor.
type Reverb struct {
	*proc.Base

	dir string

	bypass  *param.Parameter
	irType  *param.Parameter
	decay   *param.Parameter
	dryMix  *param.Parameter
	wetMix  *param.Parameter

	engines [2]*channelEngine
}

// New constructs a convolutional reverb named name. dir is the impulse
// response directory consulted on every update(type|decay).
func New(name, dir string, blockSize int, sampleRate float64) (*Reverb, error) {
	r := &Reverb{dir: dir}
	list := param.NewList()

	bypass, err := param.NewBool("bypass", false, param.WithOwner(r), param.WithRandomizable(false))
	if err != nil {
		return nil, err
	}
	irType, err := param.NewString("type", ir.Types()[0], ir.Types(), param.WithOwner(r), param.WithRandomizable(false))
	if err != nil {
		return nil, err
	}
	decay, err := param.NewFloat("decay", 0.5, 0, 1, param.WithOwner(r))
	if err != nil {
		return nil, err
	}
	dryMix, err := param.NewFloat("dry_mix", 0.7, 0, 1, param.WithOwner(r))
	if err != nil {
		return nil, err
	}
	wetMix, err := param.NewFloat("wet_mix", 0.3, 0, 1, param.WithOwner(r))
	if err != nil {
		return nil, err
	}
	for _, p := range []*param.Parameter{bypass, irType, decay, dryMix, wetMix} {
		if err := list.Add(p); err != nil {
			return nil, err
		}
	}

	base, err := proc.NewBase(name, blockSize, sampleRate, list)
	if err != nil {
		return nil, err
	}
	r.Base = base
	r.bypass, r.irType, r.decay, r.dryMix, r.wetMix = bypass, irType, decay, dryMix, wetMix

	if err := r.loadImpulse(); err != nil {
		return nil, err
	}
	return r, nil
}

// loadImpulse reads the selected impulse response from disk, scales it
// to headroom, applies the decay fade, and rebuilds both channel
// engines. It is the structural update triggered by a change to type
// or decay.
func (r *Reverb) loadImpulse() error {
	raw, err := ir.Load(r.dir, r.irType.String(), r.SampleRate())
	if err != nil {
		return err
	}

	blockSize := r.BlockSize()
	for ch := 0; ch < 2; ch++ {
		var src []float32
		if ch < len(raw) {
			src = raw[ch]
		} else {
			src = raw[0]
		}
		h := make([]float32, len(src))
		for i, v := range src {
			h[i] = v * headroomScale
		}
		h = applyDecayFade(h, r.decay.Float(), r.SampleRate())

		engine, err := newChannelEngine(h, blockSize)
		if err != nil {
			return err
		}
		r.engines[ch] = engine
	}
	return nil
}

// applyDecayFade fades h to -100dB over 20ms starting at sample
// floor(decay*L), then truncates everything after the fade, per
// spec.md §4.11 (g(k) = 10^(-5*(1-k/flen)), here with k counted as
// samples elapsed since the fade start so the fade runs from unity
// down to -100dB, matching the fade's stated direction).
func applyDecayFade(h []float32, decay float64, sampleRate float64) []float32 {
	l := len(h)
	fadeStart := int(decay * float64(l))
	if fadeStart < 0 {
		fadeStart = 0
	}
	if fadeStart > l {
		fadeStart = l
	}
	flen := int(math.Round(0.02 * sampleRate))
	if flen < 1 {
		flen = 1
	}
	end := fadeStart + flen
	if end > l {
		end = l
	}

	out := make([]float32, end)
	copy(out, h[:end])
	for i := fadeStart; i < end; i++ {
		k := i - fadeStart
		g := math.Pow(10, -5*float64(k)/float64(flen))
		out[i] *= float32(g)
	}
	return out
}

// Update reloads the impulse response whenever type or decay changes.
func (r *Reverb) Update(name string) {
	if name == "" || name == "type" || name == "decay" {
		if err := r.loadImpulse(); err != nil {
			return
		}
	}
}

// Reset restores parameter defaults and reloads the impulse response.
func (r *Reverb) Reset() {
	r.ResetAndNotify(r.Update)
}

// Randomize draws decay/dry_mix/wet_mix (type is not randomizable,
// loading an impulse is a deliberate act) and reloads once.
func (r *Reverb) Randomize(src *randsrc.Source) {
	r.RandomizeAndNotify(src, r.Update)
}

// Process convolves the block per channel against the loaded impulse,
// mixing dry and wet. Mono input is broadcast to stereo first.
func (r *Reverb) Process(block proc.Block) proc.Block {
	if r.bypass.Bool() {
		return block
	}
	stereo := block
	if block.IsMono() {
		stereo = block.ToStereo()
	}
	dry := float32(r.dryMix.Float())
	wet := float32(r.wetMix.Float())

	out := make(proc.Block, 2)
	for ch := 0; ch < 2; ch++ {
		wetBuf := r.engines[ch].process(stereo[ch])
		out[ch] = make([]float32, len(stereo[ch]))
		for i := range out[ch] {
			out[ch][i] = dry*stereo[ch][i] + wet*wetBuf[i]
		}
	}
	return out
}
