// Package channel implements the console's per-channel processing
// path: a fixed-order pre chain, a permutable core insert chain, and a
// fixed-order post chain that produces stereo at the panner.
//
// Grounded on spec.md §4.12's three-ProcessorList contract; the
// teacher has no equivalent "three named chains feeding one another"
// concept (its Chain type is singular), so Channel composes three
// *proc.List values the way the teacher's plugin wrapper composes one.
package channel

import (
	"github.com/justyntemme/mixconsole/pkg/dsp/compressor"
	"github.com/justyntemme/mixconsole/pkg/dsp/convreverb"
	"github.com/justyntemme/mixconsole/pkg/dsp/delay"
	"github.com/justyntemme/mixconsole/pkg/dsp/eq"
	"github.com/justyntemme/mixconsole/pkg/dsp/leaf"
	"github.com/justyntemme/mixconsole/pkg/dsp/reverb"
	"github.com/justyntemme/mixconsole/pkg/proc"
	"github.com/justyntemme/mixconsole/pkg/randsrc"
)

// Channel owns the pre/core/post ProcessorLists and the mono->stereo
// transition that happens inside the post chain's panner.
type Channel struct {
	name string

	pre  *proc.List
	core *proc.List
	post *proc.List
}

// New constructs a channel named name with the console's fixed
// processor topology: pre (pre-gain, polarity-inverter), core (eq,
// compressor, reverb, convreverb, delay), post (post-gain, panner).
// irDir is the impulse-response directory passed through to the
// convolutional reverb.
func New(name string, blockSize int, sampleRate float64, irDir string) (*Channel, error) {
	c := &Channel{name: name}

	preGain, err := leaf.NewGain("pre-gain", blockSize, sampleRate)
	if err != nil {
		return nil, err
	}
	polarity, err := leaf.NewPolarityInverter("polarity-inverter", blockSize, sampleRate)
	if err != nil {
		return nil, err
	}
	c.pre = proc.NewList()
	if err := c.pre.Append(preGain); err != nil {
		return nil, err
	}
	if err := c.pre.Append(polarity); err != nil {
		return nil, err
	}

	eqP, err := eq.New("eq", blockSize, sampleRate)
	if err != nil {
		return nil, err
	}
	comp, err := compressor.New("compressor", blockSize, sampleRate)
	if err != nil {
		return nil, err
	}
	algo, err := reverb.NewAlgorithmic("reverb", blockSize, sampleRate)
	if err != nil {
		return nil, err
	}
	conv, err := convreverb.New("convreverb", irDir, blockSize, sampleRate)
	if err != nil {
		return nil, err
	}
	dly, err := delay.New("delay", blockSize, sampleRate)
	if err != nil {
		return nil, err
	}
	c.core = proc.NewList()
	for _, p := range []proc.Processor{eqP, comp, algo, conv, dly} {
		if err := c.core.Append(p); err != nil {
			return nil, err
		}
	}

	postGain, err := leaf.NewGain("post-gain", blockSize, sampleRate)
	if err != nil {
		return nil, err
	}
	panner, err := leaf.NewPanner("panner", blockSize, sampleRate)
	if err != nil {
		return nil, err
	}
	c.post = proc.NewList()
	if err := c.post.Append(postGain); err != nil {
		return nil, err
	}
	if err := c.post.Append(panner); err != nil {
		return nil, err
	}

	return c, nil
}

// Name returns the channel's name.
func (c *Channel) Name() string { return c.name }

// Pre, Core, Post expose the three chains for direct parameter access
// (e.g. console.Channels()[i].Core().Get("eq")).
func (c *Channel) Pre() *proc.List  { return c.pre }
func (c *Channel) Core() *proc.List { return c.core }
func (c *Channel) Post() *proc.List { return c.post }

// Process feeds a mono block through the pre and core chains, then
// through the post chain where the panner turns it stereo.
func (c *Channel) Process(block proc.Block) proc.Block {
	block = c.pre.Process(block)
	block = c.core.Process(block)
	block = c.post.Process(block)
	return block
}

// Reset zeroes every processor's state across all three chains.
func (c *Channel) Reset() {
	c.pre.Reset()
	c.core.Reset()
	c.post.Reset()
}

// Randomize draws new parameter values across all three chains. When
// shuffle is true, the core chain's order is also permuted; pre and
// post always keep their fixed order.
func (c *Channel) Randomize(src *randsrc.Source, shuffle bool) {
	c.pre.Randomize(src)
	c.core.Randomize(src)
	if shuffle {
		c.core.Shuffle(src)
	}
	c.post.Randomize(src)
}

// Serialize emits {"pre_processors", "core_processors",
// "post_processors"}, each chain's processors keyed by name with their
// current chain position under "order".
func (c *Channel) Serialize(normalize, oneHotEncode bool) map[string]interface{} {
	return map[string]interface{}{
		"pre_processors":  c.pre.Serialize(normalize, oneHotEncode),
		"core_processors": c.core.Serialize(normalize, oneHotEncode),
		"post_processors": c.post.Serialize(normalize, oneHotEncode),
	}
}

// Vectorize concatenates pre (natural order), core (per the static
// order projection below), and post (natural order).
//
// staticOrder, when non-nil, fixes the core chain's projected slot
// order; each slot's contribution is the named processor's Vectorize
// if present in the current chain, or a zero-filled placeholder of the
// same width otherwise. With "copy" and includeOrder, the processor's
// current chain index (0 when absent) precedes it; with "one_hot", a
// vector of len(staticOrder) marking the processor's current chain
// index (all zero when absent) precedes it. A nil staticOrder uses
// the chain's current dynamic order and ignores includeOrder/encoding.
func (c *Channel) Vectorize(staticOrder []string, includeOrder bool, orderEncodeType string) []float64 {
	out := append([]float64(nil), c.pre.Vectorize()...)
	out = append(out, c.vectorizeCore(staticOrder, includeOrder, orderEncodeType)...)
	out = append(out, c.post.Vectorize()...)
	return out
}

func (c *Channel) vectorizeCore(staticOrder []string, includeOrder bool, orderEncodeType string) []float64 {
	if staticOrder == nil {
		return c.core.Vectorize()
	}

	names := c.core.Names()
	position := make(map[string]int, len(names))
	for i, n := range names {
		position[n] = i
	}

	var out []float64
	for slot, name := range staticOrder {
		p, err := c.core.Get(name)
		present := err == nil

		switch orderEncodeType {
		case "one_hot":
			oneHot := make([]float64, len(staticOrder))
			if present {
				oneHot[position[name]%len(staticOrder)] = 1
			}
			out = append(out, oneHot...)
		default: // "copy"
			if includeOrder {
				if present {
					out = append(out, float64(position[name]))
				} else {
					out = append(out, 0)
				}
			}
		}

		if present {
			out = append(out, p.Vectorize()...)
		} else {
			out = append(out, zerosLike(slot, staticOrder, c.core)...)
		}
	}
	return out
}

// zerosLike returns a zero-filled placeholder the width of whatever
// the chain's current processor in the equivalent position vectorizes
// to, falling back to the width of the chain's first processor when
// slot is past the end of the chain.
func zerosLike(slot int, staticOrder []string, core *proc.List) []float64 {
	all := core.All()
	if slot < len(all) {
		return make([]float64, len(all[slot].Vectorize()))
	}
	if len(all) > 0 {
		return make([]float64, len(all[0].Vectorize()))
	}
	return nil
}
