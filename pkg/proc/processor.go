package proc

import (
	"fmt"

	"github.com/justyntemme/mixconsole/pkg/mixerr"
	"github.com/justyntemme/mixconsole/pkg/param"
	"github.com/justyntemme/mixconsole/pkg/randsrc"
)

// Processor is the capability set every DSP component implements:
// process a block, react to a parameter change, reset to defaults,
// randomize its randomizable parameters, and serialize/vectorize its
// state. name == "" passed to Update means "recompute everything",
// the null case in the spec's update(parameter_name | null).
type Processor interface {
	Name() string
	Process(block Block) Block
	Update(name string)
	Reset()
	Randomize(src *randsrc.Source)
	Serialize(normalize, oneHotEncode bool) map[string]interface{}
	Vectorize() []float64
	Parameters() *param.List
}

// Base holds the fields and default behavior every concrete Processor
// embeds: a name, a ParameterList, and the fixed (block_size,
// sample_rate) binding. Process and Update are left to the embedder;
// Serialize and Vectorize are the generic parameter-list walk; Reset
// and Randomize are provided as helpers (ResetAndNotify,
// RandomizeAndNotify) rather than full overrides, because a concrete
// processor's Reset must also zero its own state buffers and its
// Randomize must call its own Update once, not Base's.
type Base struct {
	name       string
	params     *param.List
	blockSize  int
	sampleRate float64
}

// NewBase validates the (block_size, sample_rate) binding and returns
// a Base ready to be embedded. blockSize must be a positive power of
// two.
func NewBase(name string, blockSize int, sampleRate float64, params *param.List) (*Base, error) {
	if blockSize <= 0 || blockSize&(blockSize-1) != 0 {
		return nil, fmt.Errorf("%w: block_size %d is not a positive power of two", mixerr.ErrInvalidConstruction, blockSize)
	}
	if sampleRate <= 0 {
		return nil, fmt.Errorf("%w: sample_rate %g must be positive", mixerr.ErrInvalidConstruction, sampleRate)
	}
	if params == nil {
		params = param.NewList()
	}
	return &Base{name: name, params: params, blockSize: blockSize, sampleRate: sampleRate}, nil
}

// Name returns the processor's name.
func (b *Base) Name() string { return b.name }

// Parameters returns the processor's parameter list.
func (b *Base) Parameters() *param.List { return b.params }

// BlockSize returns the fixed block size this processor was constructed with.
func (b *Base) BlockSize() int { return b.blockSize }

// SampleRate returns the fixed sample rate this processor was constructed with.
func (b *Base) SampleRate() float64 { return b.sampleRate }

// Serialize walks the parameter list; this is the whole of the default
// serialize behavior, shared verbatim by every concrete processor.
func (b *Base) Serialize(normalize, oneHotEncode bool) map[string]interface{} {
	return b.params.Serialize(normalize, oneHotEncode)
}

// Vectorize walks the parameter list in insertion order; shared
// verbatim by every concrete processor.
func (b *Base) Vectorize() []float64 {
	return b.params.Vectorize()
}

// ResetAndNotify restores every parameter to its default and calls
// update once, the parameter half of a concrete processor's Reset.
// The caller is still responsible for zeroing its own state buffers
// (delay lines, biquad histories, overlap tails) after calling this.
func (b *Base) ResetAndNotify(update func(name string)) {
	b.params.Reset()
	update("")
}

// RandomizeAndNotify draws every parameter whose RandomizeValue is true
// using src, then calls update exactly once if anything changed. This
// is the whole of the default randomize behavior: concrete processors
// call it with their own Update method.
func (b *Base) RandomizeAndNotify(src *randsrc.Source, update func(name string)) {
	changed := false
	for _, p := range b.params.All() {
		if !p.RandomizeValue() {
			continue
		}
		if err := p.Randomize(src, param.DistributionDefault); err == nil {
			changed = true
		}
	}
	if changed {
		update("")
	}
}
