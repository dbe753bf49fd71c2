// Package compressor implements the console's feed-forward log-domain
// dynamic range compressor with separate attack/release envelope
// smoothing.
//
// Grounded on the teacher's dsp/dynamics/compressor.go for the overall
// log-domain feed-forward shape (x_g/y_g/x_l envelope, persistent
// state across blocks) but simplified down to spec.md's exact
// recursion: no soft knee, no lookahead, a single attack/release pair
// rather than the teacher's knee-width-aware computeGain.
package compressor

import (
	"math"

	"github.com/justyntemme/mixconsole/pkg/param"
	"github.com/justyntemme/mixconsole/pkg/proc"
	"github.com/justyntemme/mixconsole/pkg/randsrc"
)

const minDb = -120.0

// Compressor is the feed-forward log-domain DRC processor.
type Compressor struct {
	*proc.Base

	bypass     *param.Parameter
	threshold  *param.Parameter
	attackMs   *param.Parameter
	releaseMs  *param.Parameter
	ratio      *param.Parameter
	makeupGain *param.Parameter

	alphaA, alphaR float64
	yLPrev         float64
}

// New constructs a compressor named name.
func New(name string, blockSize int, sampleRate float64) (*Compressor, error) {
	c := &Compressor{}
	list := param.NewList()

	bypass, err := param.NewBool("bypass", false, param.WithOwner(c), param.WithRandomizable(false))
	if err != nil {
		return nil, err
	}
	threshold, err := param.NewFloat("threshold", -20, -80, 0, param.WithOwner(c), param.WithUnits("dB"))
	if err != nil {
		return nil, err
	}
	attack, err := param.NewFloat("attack_time", 10, 0.1, 500, param.WithOwner(c), param.WithUnits("ms"))
	if err != nil {
		return nil, err
	}
	release, err := param.NewFloat("release_time", 100, 1, 4000, param.WithOwner(c), param.WithUnits("ms"))
	if err != nil {
		return nil, err
	}
	ratio, err := param.NewFloat("ratio", 4, 1, 20, param.WithOwner(c))
	if err != nil {
		return nil, err
	}
	makeup, err := param.NewFloat("makeup_gain", 0, -12, 24, param.WithOwner(c), param.WithUnits("dB"))
	if err != nil {
		return nil, err
	}
	for _, p := range []*param.Parameter{bypass, threshold, attack, release, ratio, makeup} {
		if err := list.Add(p); err != nil {
			return nil, err
		}
	}

	base, err := proc.NewBase(name, blockSize, sampleRate, list)
	if err != nil {
		return nil, err
	}
	c.Base = base
	c.bypass = bypass
	c.threshold = threshold
	c.attackMs = attack
	c.releaseMs = release
	c.ratio = ratio
	c.makeupGain = makeup
	c.recompute()
	return c, nil
}

func (c *Compressor) recompute() {
	fs := c.SampleRate()
	c.alphaA = math.Exp(-1.0 / (0.001 * fs * c.attackMs.Float()))
	c.alphaR = math.Exp(-1.0 / (0.001 * fs * c.releaseMs.Float()))
}

// Update recomputes the attack/release smoothing coefficients.
func (c *Compressor) Update(name string) { c.recompute() }

// Reset restores parameter defaults, recomputes coefficients, and
// zeroes the persistent envelope state.
func (c *Compressor) Reset() {
	c.ResetAndNotify(c.Update)
	c.yLPrev = 0
}

// Randomize draws threshold/attack/release/ratio/makeup_gain and
// recomputes once.
func (c *Compressor) Randomize(src *randsrc.Source) {
	c.RandomizeAndNotify(src, c.Update)
}

// Process applies gain reduction sample by sample. The side-chain
// signal is (L+R)/2 for a stereo block and the block itself for mono;
// the resulting control value is applied uniformly across channels.
func (c *Compressor) Process(block proc.Block) proc.Block {
	if c.bypass.Bool() {
		return block
	}
	out := block.Clone()
	n := block.Len()
	threshold := c.threshold.Float()
	ratio := c.ratio.Float()
	makeup := c.makeupGain.Float()
	yLPrev := c.yLPrev

	for i := 0; i < n; i++ {
		var side float64
		if block.IsStereo() {
			side = float64(block[0][i]+block[1][i]) / 2
		} else {
			side = float64(block[0][i])
		}
		absSide := math.Abs(side)
		xG := minDb
		if absSide > 0 {
			xG = 20 * math.Log10(absSide)
		}
		if xG < minDb {
			xG = minDb
		}

		var yG float64
		if xG > threshold {
			yG = threshold + (xG-threshold)/ratio
		} else {
			yG = xG
		}
		xL := xG - yG

		var yL float64
		if xL > yLPrev {
			yL = c.alphaA*yLPrev + (1-c.alphaA)*xL
		} else {
			yL = c.alphaR*yLPrev + (1-c.alphaR)*xL
		}
		yLPrev = yL

		control := float32(math.Pow(10, (makeup-yL)/20))
		for ch := range out {
			out[ch][i] = block[ch][i] * control
		}
	}
	c.yLPrev = yLPrev
	return out
}
