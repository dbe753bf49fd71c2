// Package biquad implements the RBJ cookbook second-order IIR filter
// used throughout the console (the equaliser's five bands, and any
// other component that needs a shelf or peaking response).
//
// Grounded on the teacher's dsp/filter/biquad.go: Direct Form I, the
// per-channel x1/x2/y1/y2 history arrays, and SetCoefficients'
// normalize-by-a0 step are kept near verbatim. Of the teacher's seven
// design functions only the three the equaliser actually uses
// (peaking, low shelf, high shelf) are kept; lowpass/highpass/bandpass/
// notch/allpass design functions are dropped since no component calls
// them.
package biquad

import "math"

// Biquad is a second-order IIR filter, Direct Form I, with
// pre-allocated per-channel state.
type Biquad struct {
	a0, a1, a2 float32
	b0, b1, b2 float32

	x1, x2 []float32
	y1, y2 []float32
}

// New allocates a biquad with identity coefficients (pass-through) for
// the given channel count.
func New(channels int) *Biquad {
	return &Biquad{
		a0: 1.0,
		b0: 1.0,
		x1: make([]float32, channels),
		x2: make([]float32, channels),
		y1: make([]float32, channels),
		y2: make([]float32, channels),
	}
}

// Reset zeroes the filter's history, per channel.
func (b *Biquad) Reset() {
	for i := range b.x1 {
		b.x1[i] = 0
		b.x2[i] = 0
		b.y1[i] = 0
		b.y2[i] = 0
	}
}

// SetCoefficients installs raw coefficients, normalizing by a0.
func (b *Biquad) SetCoefficients(b0, b1, b2, a0, a1, a2 float32) {
	invA0 := 1.0 / a0
	b.b0 = b0 * invA0
	b.b1 = b1 * invA0
	b.b2 = b2 * invA0
	b.a0 = 1.0
	b.a1 = a1 * invA0
	b.a2 = a2 * invA0
}

// Process filters buffer in place for the given channel index.
func (b *Biquad) Process(buffer []float32, channel int) {
	x1 := b.x1[channel]
	x2 := b.x2[channel]
	y1 := b.y1[channel]
	y2 := b.y2[channel]

	for i := range buffer {
		x0 := buffer[i]
		y0 := b.b0*x0 + b.b1*x1 + b.b2*x2 - b.a1*y1 - b.a2*y2

		x2 = x1
		x1 = x0
		y2 = y1
		y1 = y0

		buffer[i] = y0
	}

	b.x1[channel] = x1
	b.x2[channel] = x2
	b.y1[channel] = y1
	b.y2[channel] = y2
}

// SetPeakingEQ computes cookbook peaking-EQ coefficients: A = 10^(gainDB/40).
func (b *Biquad) SetPeakingEQ(sampleRate, frequency, q, gainDB float64) {
	omega := 2.0 * math.Pi * frequency / sampleRate
	sinOmega := math.Sin(omega)
	cosOmega := math.Cos(omega)
	a := math.Pow(10.0, gainDB/40.0)
	alpha := sinOmega / (2.0 * q)

	b0 := 1.0 + alpha*a
	b1 := -2.0 * cosOmega
	b2 := 1.0 - alpha*a
	a0 := 1.0 + alpha/a
	a1 := -2.0 * cosOmega
	a2 := 1.0 - alpha/a

	b.SetCoefficients(float32(b0), float32(b1), float32(b2),
		float32(a0), float32(a1), float32(a2))
}

// SetLowShelf computes cookbook low-shelf coefficients.
func (b *Biquad) SetLowShelf(sampleRate, frequency, q, gainDB float64) {
	omega := 2.0 * math.Pi * frequency / sampleRate
	sinOmega := math.Sin(omega)
	cosOmega := math.Cos(omega)
	a := math.Pow(10.0, gainDB/40.0)
	alpha := sinOmega / (2.0 * q)

	sqrtA := math.Sqrt(a)
	sqrtAAlpha := 2.0 * sqrtA * alpha

	b0 := a * ((a + 1) - (a-1)*cosOmega + sqrtAAlpha)
	b1 := 2.0 * a * ((a - 1) - (a+1)*cosOmega)
	b2 := a * ((a + 1) - (a-1)*cosOmega - sqrtAAlpha)
	a0 := (a + 1) + (a-1)*cosOmega + sqrtAAlpha
	a1 := -2.0 * ((a - 1) + (a+1)*cosOmega)
	a2 := (a + 1) + (a-1)*cosOmega - sqrtAAlpha

	b.SetCoefficients(float32(b0), float32(b1), float32(b2),
		float32(a0), float32(a1), float32(a2))
}

// SetHighShelf computes cookbook high-shelf coefficients.
func (b *Biquad) SetHighShelf(sampleRate, frequency, q, gainDB float64) {
	omega := 2.0 * math.Pi * frequency / sampleRate
	sinOmega := math.Sin(omega)
	cosOmega := math.Cos(omega)
	a := math.Pow(10.0, gainDB/40.0)
	alpha := sinOmega / (2.0 * q)

	sqrtA := math.Sqrt(a)
	sqrtAAlpha := 2.0 * sqrtA * alpha

	b0 := a * ((a + 1) + (a-1)*cosOmega + sqrtAAlpha)
	b1 := -2.0 * a * ((a - 1) + (a+1)*cosOmega)
	b2 := a * ((a + 1) + (a-1)*cosOmega - sqrtAAlpha)
	a0 := (a + 1) - (a-1)*cosOmega + sqrtAAlpha
	a1 := 2.0 * ((a - 1) - (a+1)*cosOmega)
	a2 := (a + 1) - (a-1)*cosOmega - sqrtAAlpha

	b.SetCoefficients(float32(b0), float32(b1), float32(b2),
		float32(a0), float32(a1), float32(a2))
}
