// Package mix provides the weighted-sum primitive busses use to
// combine their sources before running their own processor chain.
package mix

// SumWeighted adds multiple buffers with individual gains into dst,
// clearing dst first. A buffer shorter than dst only contributes over
// its own length. Gains past the end of the gains slice default to 1.0.
func SumWeighted(buffers [][]float32, gains []float32, dst []float32) {
	for i := range dst {
		dst[i] = 0
	}
	for j, buffer := range buffers {
		gain := float32(1.0)
		if j < len(gains) {
			gain = gains[j]
		}

		length := len(buffer)
		if length > len(dst) {
			length = len(dst)
		}
		for i := 0; i < length; i++ {
			dst[i] += buffer[i] * gain
		}
	}
}
