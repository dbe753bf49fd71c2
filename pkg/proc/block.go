// Package proc defines the uniform processor lifecycle shared by every
// DSP component in the console (gain, filters, dynamics, reverbs,
// delay) and the ordered, name-addressed ProcessorList that chains them.
//
// Grounded on the teacher's framework/dsp/chain.go: the ordered-slice
// Chain and its Process-loop idiom are kept, generalized from a single
// buffer-in-place Process method to the full process/update/reset/
// randomize/serialize/vectorize lifecycle the console's parameter model
// requires.
package proc

// Block is one block of audio, one slice per channel. len(Block) == 1
// is mono, len(Block) == 2 is stereo (left, right); all channel slices
// share the same length. Processors that are defined for both arities
// (gain, EQ, compressor, delay) range over whatever channels are
// present rather than assuming two; the two reverbs and the panner
// always emit stereo.
type Block [][]float32

// IsMono reports whether the block carries a single channel.
func (b Block) IsMono() bool { return len(b) == 1 }

// IsStereo reports whether the block carries two channels.
func (b Block) IsStereo() bool { return len(b) == 2 }

// Len returns the number of samples per channel, or 0 for an empty block.
func (b Block) Len() int {
	if len(b) == 0 {
		return 0
	}
	return len(b[0])
}

// NewMono allocates a single-channel block of n samples.
func NewMono(n int) Block {
	return Block{make([]float32, n)}
}

// NewStereo allocates a two-channel block of n samples each.
func NewStereo(n int) Block {
	return Block{make([]float32, n), make([]float32, n)}
}

// ToStereo returns a two-channel copy of b. A mono block is duplicated
// onto both channels; a stereo block is copied as-is.
func (b Block) ToStereo() Block {
	if b.IsStereo() {
		out := NewStereo(b.Len())
		copy(out[0], b[0])
		copy(out[1], b[1])
		return out
	}
	out := NewStereo(b.Len())
	copy(out[0], b[0])
	copy(out[1], b[0])
	return out
}

// Clone returns a deep copy of b, preserving its arity.
func (b Block) Clone() Block {
	out := make(Block, len(b))
	for i, ch := range b {
		out[i] = append([]float32(nil), ch...)
	}
	return out
}
