// Package reverb implements the console's algorithmic reverb: eight
// parallel feedback combs summed and fed through four series allpass
// filters, per channel, Freeverb-style.
//
// Grounded on the teacher's dsp/reverb/freeverb.go: the comb/allpass
// tuning arrays and the stereo-spread offset (including its one
// documented asymmetry, the last right allpass length of 255 rather
// than 225's left-channel counterpart + spread) are carried over
// unchanged; the wet1/wet2/feedback/damp recompute-on-update idiom is
// kept, now wired to the console's Parameter/Processor lifecycle
// instead of the teacher's direct setter methods. The comb/allpass
// primitives themselves live in pkg/dsp/primitive.
package reverb

import (
	"github.com/justyntemme/mixconsole/pkg/dsp/primitive"
	"github.com/justyntemme/mixconsole/pkg/param"
	"github.com/justyntemme/mixconsole/pkg/proc"
	"github.com/justyntemme/mixconsole/pkg/randsrc"
)

const (
	numCombs     = 8
	numAllpasses = 4
	stereoSpread = 23
	scaleGain    = 0.2
)

var combTuning = [numCombs]int{1116, 1188, 1277, 1356, 1422, 1491, 1557, 1617}
var allpassTuning = [numAllpasses]int{556, 441, 341, 225}

// Algorithmic is the Freeverb-style reverb processor.
type Algorithmic struct {
	*proc.Base

	bypass   *param.Parameter
	roomSize *param.Parameter
	damping  *param.Parameter
	dryMix   *param.Parameter
	wetMix   *param.Parameter
	width    *param.Parameter

	combs     [2][numCombs]*primitive.Comb
	allpasses [2][numAllpasses]*primitive.Allpass

	wet1, wet2 float32
	dry        float32
}

// NewAlgorithmic constructs the reverb at the given sample rate. The
// comb/allpass delay lengths below are tuned for 44100 Hz; at other
// rates they are scaled proportionally, matching the teacher's own
// convention of tuning-in-samples-at-44100.
func NewAlgorithmic(name string, blockSize int, sampleRate float64) (*Algorithmic, error) {
	r := &Algorithmic{}
	list := param.NewList()

	bypass, err := param.NewBool("bypass", false, param.WithOwner(r), param.WithRandomizable(false))
	if err != nil {
		return nil, err
	}
	roomSize, err := param.NewFloat("room_size", 0.5, 0.05, 0.85, param.WithOwner(r))
	if err != nil {
		return nil, err
	}
	damping, err := param.NewFloat("damping", 0.5, 0, 1, param.WithOwner(r))
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
	width, err := param.NewFloat("width", 1.0, 0, 1, param.WithOwner(r))
	if err != nil {
		return nil, err
	}
	for _, p := range []*param.Parameter{bypass, roomSize, damping, dryMix, wetMix, width} {
		if err := list.Add(p); err != nil {
			return nil, err
		}
	}

	base, err := proc.NewBase(name, blockSize, sampleRate, list)
	if err != nil {
		return nil, err
	}
	r.Base = base
	r.bypass, r.roomSize, r.damping, r.dryMix, r.wetMix, r.width = bypass, roomSize, damping, dryMix, wetMix, width

	scale := sampleRate / 44100.0
	for i := 0; i < numCombs; i++ {
		r.combs[0][i] = primitive.NewComb(scaledLength(combTuning[i], scale))
		r.combs[1][i] = primitive.NewComb(scaledLength(combTuning[i]+stereoSpread, scale))
	}
	for i := 0; i < numAllpasses; i++ {
		r.allpasses[0][i] = primitive.NewAllpass(scaledLength(allpassTuning[i], scale))
		r.allpasses[0][i].SetFeedback(0.5)
	}
	rightAllpassLengths := [numAllpasses]int{
		allpassTuning[0] + stereoSpread,
		allpassTuning[1] + stereoSpread,
		allpassTuning[2] + stereoSpread,
		255, // preserved asymmetry: not allpassTuning[3]+stereoSpread
	}
	for i := 0; i < numAllpasses; i++ {
		r.allpasses[1][i] = primitive.NewAllpass(scaledLength(rightAllpassLengths[i], scale))
		r.allpasses[1][i].SetFeedback(0.5)
	}

	r.recompute()
	return r, nil
}

func scaledLength(samplesAt44100 int, scale float64) int {
	n := int(float64(samplesAt44100) * scale)
	if n < 1 {
		n = 1
	}
	return n
}

func (r *Algorithmic) recompute() {
	feedback := float32(r.roomSize.Float())
	damping := float32(r.damping.Float())
	for ch := 0; ch < 2; ch++ {
		for i := 0; i < numCombs; i++ {
			r.combs[ch][i].SetFeedback(feedback)
			r.combs[ch][i].SetDamping(damping)
		}
	}
	width := r.width.Float()
	wet := r.wetMix.Float()
	r.wet1 = float32(wet * (width/2 + 0.5))
	r.wet2 = float32(wet * ((1 - width) / 2))
	r.dry = float32(r.dryMix.Float())
}

// Update recomputes comb feedback/damping and the stereo mix gains.
func (r *Algorithmic) Update(name string) { r.recompute() }

// Reset zeroes every comb and allpass delay line and recomputes the mix gains.
func (r *Algorithmic) Reset() {
	r.ResetAndNotify(r.Update)
	for ch := 0; ch < 2; ch++ {
		for i := 0; i < numCombs; i++ {
			r.combs[ch][i].Reset()
		}
		for i := 0; i < numAllpasses; i++ {
			r.allpasses[ch][i].Reset()
		}
	}
}

// Randomize draws room_size, damping, dry_mix, wet_mix and width, then
// recomputes once.
func (r *Algorithmic) Randomize(src *randsrc.Source) {
	r.RandomizeAndNotify(src, r.Update)
}

// Process runs the reverb over a mono or stereo block, always emitting
// stereo (mono input is treated as identical L/R input to the network).
func (r *Algorithmic) Process(block proc.Block) proc.Block {
	if r.bypass.Bool() {
		return block.ToStereo()
	}
	in := block.ToStereo()
	n := in.Len()
	out := proc.NewStereo(n)

	for i := 0; i < n; i++ {
		inL, inR := in[0][i], in[1][i]

		wetL := processChannel(r, 0, inL)
		wetR := processChannel(r, 1, inR)

		out[0][i] = r.wet1*wetL + r.wet2*wetR + r.dry*inL
		out[1][i] = r.wet1*wetR + r.wet2*wetL + r.dry*inR
	}
	return out
}

func processChannel(r *Algorithmic, ch int, in float32) float32 {
	input := in * scaleGain
	var sum float32
	for i := 0; i < numCombs; i++ {
		sum += r.combs[ch][i].Process(input)
	}
	for i := 0; i < numAllpasses; i++ {
		sum = r.allpasses[ch][i].Process(sum)
	}
	return sum
}
