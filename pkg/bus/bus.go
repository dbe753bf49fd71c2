// Package bus implements the console's auxiliary and master busses: a
// weighted sum over K source channels feeding a processor chain.
//
// Grounded on spec.md §4.13 and the teacher's dsp/mix package
// (SumWeighted) for the weighted-sum mechanics, generalized from mono
// []float32 buffers to stereo [2][]float32 pairs; the chain itself
// reuses pkg/proc.List exactly as pkg/channel does.
package bus

import (
	"fmt"

	"github.com/justyntemme/mixconsole/pkg/dsp/compressor"
	"github.com/justyntemme/mixconsole/pkg/dsp/eq"
	"github.com/justyntemme/mixconsole/pkg/dsp/mix"
	"github.com/justyntemme/mixconsole/pkg/mixerr"
	"github.com/justyntemme/mixconsole/pkg/param"
	"github.com/justyntemme/mixconsole/pkg/proc"
	"github.com/justyntemme/mixconsole/pkg/randsrc"
)

// Bus sums numSources stereo inputs with per-source send gains, then
// runs the result through its own processor chain.
type Bus struct {
	name       string
	isMaster   bool
	sends      []*param.Parameter
	sendParams *param.List
	chain      *proc.List
	blockSize  int
}

// New constructs an auxiliary bus named name over numSources source
// channels, each starting with a zero send (silent until raised).
func New(name string, numSources, blockSize int, sampleRate float64) (*Bus, error) {
	return newBus(name, numSources, blockSize, sampleRate, false)
}

// NewMaster constructs the master bus: all numSources sends fixed to
// 1.0 and non-randomizable (per spec.md §4.13), with a master EQ and
// master compressor installed in its chain. numSources is
// num_channels + num_busses per SPEC_FULL.md §8's Open Question
// decision.
func NewMaster(name string, numSources, blockSize int, sampleRate float64) (*Bus, error) {
	b, err := newBus(name, numSources, blockSize, sampleRate, true)
	if err != nil {
		return nil, err
	}

	masterEQ, err := eq.New("master-eq", blockSize, sampleRate)
	if err != nil {
		return nil, err
	}
	masterComp, err := compressor.New("master-compressor", blockSize, sampleRate)
	if err != nil {
		return nil, err
	}
	if err := b.chain.Append(masterEQ); err != nil {
		return nil, err
	}
	if err := b.chain.Append(masterComp); err != nil {
		return nil, err
	}
	return b, nil
}

func newBus(name string, numSources, blockSize int, sampleRate float64, isMaster bool) (*Bus, error) {
	if numSources < 1 {
		return nil, fmt.Errorf("%w: bus %q needs at least one source, got %d", mixerr.ErrInvalidConstruction, name, numSources)
	}
	if blockSize <= 0 || sampleRate <= 0 {
		return nil, fmt.Errorf("%w: bus %q needs a positive block size and sample rate", mixerr.ErrInvalidConstruction, name)
	}

	b := &Bus{name: name, isMaster: isMaster, blockSize: blockSize, chain: proc.NewList(), sendParams: param.NewList()}

	def := 0.0
	opts := []param.Option{}
	if isMaster {
		def = 1.0
		opts = append(opts, param.WithRandomizable(false))
	}
	for k := 0; k < numSources; k++ {
		send, err := param.NewFloat(fmt.Sprintf("ch%d-send", k), def, 0, 1, opts...)
		if err != nil {
			return nil, err
		}
		if err := b.sendParams.Add(send); err != nil {
			return nil, err
		}
		b.sends = append(b.sends, send)
	}
	return b, nil
}

// Name returns the bus's name.
func (b *Bus) Name() string { return b.name }

// IsMaster reports whether this bus's sends are fixed at 1.0.
func (b *Bus) IsMaster() bool { return b.isMaster }

// Chain exposes the bus's processor chain for direct parameter access.
func (b *Bus) Chain() *proc.List { return b.chain }

// Sends returns the send parameter list (one ch{i}-send per source).
func (b *Bus) Sends() *param.List { return b.sendParams }

// Process computes ∑ₖ sendₖ·inputs[k] over the stereo inputs and runs
// the sum through the chain. Inputs shorter than blockSize are summed
// up to their own length; the result is always blockSize samples.
func (b *Bus) Process(inputs []proc.Block) proc.Block {
	n := len(b.sends)
	if len(inputs) < n {
		n = len(inputs)
	}
	gains := make([]float32, n)
	perChannel := [2][][]float32{make([][]float32, n), make([][]float32, n)}
	for k := 0; k < n; k++ {
		gains[k] = float32(b.sends[k].Float())
		stereo := inputs[k]
		if stereo.IsMono() {
			stereo = stereo.ToStereo()
		}
		perChannel[0][k] = stereo[0]
		perChannel[1][k] = stereo[1]
	}

	sum := proc.Block{make([]float32, b.blockSize), make([]float32, b.blockSize)}
	mix.SumWeighted(perChannel[0], gains, sum[0])
	mix.SumWeighted(perChannel[1], gains, sum[1])
	return b.chain.Process(sum)
}

// Reset zeroes the send parameters (master: back to 1.0) and every
// chain processor's state.
func (b *Bus) Reset() {
	b.sendParams.Reset()
	b.chain.Reset()
}

// Randomize draws new send values (none, on a master bus, since its
// sends are non-randomizable) and randomizes the chain.
func (b *Bus) Randomize(src *randsrc.Source) {
	for _, p := range b.sendParams.All() {
		if !p.RandomizeValue() {
			continue
		}
		_ = p.Randomize(src, param.DistributionDefault)
	}
	b.chain.Randomize(src)
}

// Serialize emits {"sends": {...}, "processors": {...}}.
func (b *Bus) Serialize(normalize, oneHotEncode bool) map[string]interface{} {
	return map[string]interface{}{
		"sends":      b.sendParams.Serialize(normalize, oneHotEncode),
		"processors": b.chain.Serialize(normalize, oneHotEncode),
	}
}

// Vectorize concatenates the send values (in source order) with the
// chain's Vectorize output.
func (b *Bus) Vectorize() []float64 {
	out := append([]float64(nil), b.sendParams.Vectorize()...)
	out = append(out, b.chain.Vectorize()...)
	return out
}
