// Package ir loads impulse-response WAV files for the convolutional
// reverb from a fixed directory, by name from a closed set.
//
// Grounded on the WAV-reading idiom shown by the pack's
// CWBudde-algo-piano ir-fit tool (wav.NewDecoder/IsValidFile/
// FullPCMBuffer), adapted to github.com/go-audio/wav's public API and
// to spec.md §6's closed set of impulse names and its requirement that
// a mismatched sample rate fails loading rather than resampling.
package ir

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-audio/wav"

	"github.com/justyntemme/mixconsole/pkg/mixerr"
)

var filenames = map[string]string{
	"sm-room": "small_room.wav",
	"md-room": "medium_room.wav",
	"lg-room": "large_room.wav",
	"hall":    "hall.wav",
	"plate":   "plate.wav",
}

// Types returns the closed set of valid impulse-response type names, in
// the fixed order spec.md §4.11 lists them.
func Types() []string {
	return []string{"sm-room", "md-room", "lg-room", "hall", "plate"}
}

// Load reads the named impulse response from dir and returns its raw
// PCM samples per channel, still in native integer amplitude (not yet
// scaled to [-1,1]) so the caller can apply the processor's own
// headroom scale. It fails if irType is not in the closed set, the
// file cannot be read, or its sample rate does not equal sampleRate.
func Load(dir, irType string, sampleRate float64) ([][]float32, error) {
	filename, ok := filenames[irType]
	if !ok {
		return nil, fmt.Errorf("%w: impulse response type %q is not one of %v", mixerr.ErrInvalidParameter, irType, Types())
	}

	path := filepath.Join(dir, filename)
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", mixerr.ErrResourceError, err)
	}
	defer f.Close()

	dec := wav.NewDecoder(f)
	if !dec.IsValidFile() {
		return nil, fmt.Errorf("%w: %s is not a valid WAV file", mixerr.ErrResourceError, path)
	}
	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", mixerr.ErrResourceError, err)
	}
	if buf == nil || buf.Format == nil || buf.Format.NumChannels < 1 {
		return nil, fmt.Errorf("%w: %s has no usable PCM data", mixerr.ErrResourceError, path)
	}
	if buf.Format.SampleRate != int(sampleRate) {
		return nil, fmt.Errorf("%w: %s is at %d Hz, console is at %v Hz", mixerr.ErrResourceError, path, buf.Format.SampleRate, sampleRate)
	}

	channels := buf.Format.NumChannels
	frames := len(buf.Data) / channels
	out := make([][]float32, channels)
	for ch := range out {
		out[ch] = make([]float32, frames)
	}
	for i := 0; i < frames; i++ {
		for ch := 0; ch < channels; ch++ {
			out[ch][i] = float32(buf.Data[i*channels+ch])
		}
	}
	return out, nil
}
