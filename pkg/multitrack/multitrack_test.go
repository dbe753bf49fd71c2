package multitrack

import "testing"

func TestNextYieldsFullBlocksThenStops(t *testing.T) {
	data := make([][]float32, 10)
	for i := range data {
		data[i] = []float32{float32(i), float32(i) * 2}
	}
	s := NewSlice(data, 4)

	var blocks [][][]float32
	for {
		b, ok := s.Next()
		if !ok {
			break
		}
		blocks = append(blocks, b)
	}
	if len(blocks) != 2 {
		t.Fatalf("expected 2 full blocks of 10 samples at block_size=4, got %d", len(blocks))
	}
	if blocks[1][0][0] != 4 {
		t.Fatalf("expected the second block to start at sample 4, got %g", blocks[1][0][0])
	}
}

func TestResetReplaysFromStart(t *testing.T) {
	data := [][]float32{{1, 1}, {2, 2}, {3, 3}, {4, 4}}
	s := NewSlice(data, 2)
	s.Next()
	s.Reset()
	b, ok := s.Next()
	if !ok || b[0][0] != 1 {
		t.Fatalf("expected reset to replay from the first block")
	}
}

func TestNumChannelsReportsWidthOfData(t *testing.T) {
	s := NewSlice([][]float32{{1, 2, 3}}, 1)
	if s.NumChannels() != 3 {
		t.Fatalf("expected 3 channels, got %d", s.NumChannels())
	}
}
