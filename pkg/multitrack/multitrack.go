// Package multitrack defines the minimal collaborator Console.RunStream
// ranges over: something that yields fixed-size blocks of mono
// multitrack samples until exhausted. Loading multitrack audio from
// files is out of scope (spec.md §1 Non-goals); this package only
// supplies the iterator contract and an in-memory implementation for
// tests and examples.
//
// Grounded on _examples/original_source/pymixconsole/multitrack.py's
// __next__: it raises StopIteration once fewer than block_size samples
// remain, discarding the remainder rather than zero-padding a partial
// block. Source.Next mirrors that with an (block, ok) return instead
// of an exception.
package multitrack

// Source yields successive [S][N]float32 blocks (S samples, N mono
// channels) until exhausted, at which point Next returns ok == false.
type Source interface {
	// NumChannels reports N, the number of mono channels every block carries.
	NumChannels() int
	// Next returns the next block of shape [blockSize][N], or ok == false
	// once fewer than a full block of samples remains.
	Next() (block [][]float32, ok bool)
}

// Slice is a slice-backed, in-memory Source over pre-loaded sample data
// shaped [numSamples][numChannels].
type Slice struct {
	data      [][]float32
	blockSize int
	cursor    int
}

// NewSlice wraps data (shape [numSamples][numChannels]) as a Source
// that yields blockSize-sample blocks in order.
func NewSlice(data [][]float32, blockSize int) *Slice {
	return &Slice{data: data, blockSize: blockSize}
}

// NumChannels reports the channel count of the wrapped data, or 0 if empty.
func (s *Slice) NumChannels() int {
	if len(s.data) == 0 {
		return 0
	}
	return len(s.data[0])
}

// Next returns the next blockSize-sample slice of data, or ok == false
// once fewer than blockSize samples remain.
func (s *Slice) Next() ([][]float32, bool) {
	if s.cursor+s.blockSize > len(s.data) {
		return nil, false
	}
	block := s.data[s.cursor : s.cursor+s.blockSize]
	s.cursor += s.blockSize
	return block, true
}

// Reset rewinds the cursor to the start, allowing the same data to be
// replayed.
func (s *Slice) Reset() { s.cursor = 0 }
