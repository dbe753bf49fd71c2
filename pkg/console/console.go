// Package console implements the orchestrator: it owns the channel,
// bus, and master arrays and drives spec.md §2's per-block control
// flow (channels -> busses -> master).
//
// Grounded on _examples/original_source/pymixconsole/console.py's
// MixConsole for the control flow shape (process_block,
// downmix_multitrack_block's clip count) and on the teacher's absence
// of an equivalent orchestrator (vst3go's top-level type is a single
// plugin, not a multi-channel console), so the wiring between Channel,
// Bus and proc.List is new, built directly from spec.md §2 and §4.14.
package console

import (
	"encoding/json"
	"fmt"
	"math"
	"os"

	"github.com/justyntemme/mixconsole/pkg/bus"
	"github.com/justyntemme/mixconsole/pkg/channel"
	"github.com/justyntemme/mixconsole/pkg/mixerr"
	"github.com/justyntemme/mixconsole/pkg/multitrack"
	"github.com/justyntemme/mixconsole/pkg/proc"
	"github.com/justyntemme/mixconsole/pkg/randsrc"
)

// Config binds a Console's fixed construction-time parameters. There
// is no file-backed config parser (top-level command glue is out of
// scope); callers build this struct directly.
type Config struct {
	SampleRate  float64
	BlockSize   int
	NumChannels int
	NumBusses   int
	IRDir       string
	Seed        int64
}

// Console owns the channel, bus, and master arrays and runs the
// per-block control flow: each channel produces a stereo block, each
// bus sums the channel outputs with its own send weights and runs its
// chain, and the master sums channels+busses into the final mixdown.
type Console struct {
	cfg      Config
	channels []*channel.Channel
	busses   []*bus.Bus
	master   *bus.Bus
	rng      *randsrc.Source
}

// New constructs a Console with cfg.NumChannels channels and
// cfg.NumBusses auxiliary busses, plus a master bus sized
// num_channels+num_busses per SPEC_FULL.md §8's Open Question decision.
func New(cfg Config) (*Console, error) {
	if cfg.NumChannels < 1 {
		return nil, fmt.Errorf("%w: console needs at least one channel, got %d", mixerr.ErrInvalidConstruction, cfg.NumChannels)
	}

	c := &Console{cfg: cfg, rng: randsrc.New(cfg.Seed)}

	for i := 0; i < cfg.NumChannels; i++ {
		ch, err := channel.New(fmt.Sprintf("channel%d", i), cfg.BlockSize, cfg.SampleRate, cfg.IRDir)
		if err != nil {
			return nil, err
		}
		c.channels = append(c.channels, ch)
	}

	for i := 0; i < cfg.NumBusses; i++ {
		b, err := bus.New(fmt.Sprintf("bus%d", i), cfg.NumChannels, cfg.BlockSize, cfg.SampleRate)
		if err != nil {
			return nil, err
		}
		c.busses = append(c.busses, b)
	}

	master, err := bus.NewMaster("master", cfg.NumChannels+cfg.NumBusses, cfg.BlockSize, cfg.SampleRate)
	if err != nil {
		return nil, err
	}
	c.master = master

	return c, nil
}

// Channels, Busses, Master expose the owned arrays for direct
// parameter access.
func (c *Console) Channels() []*channel.Channel { return c.channels }
func (c *Console) Busses() []*bus.Bus           { return c.busses }
func (c *Console) Master() *bus.Bus             { return c.master }

// ProcessBlock runs spec.md §2's control flow on one block of mono
// multitrack samples shaped [S][N] (S samples, N == NumChannels), and
// returns the final stereo mixdown.
func (c *Console) ProcessBlock(x [][]float32) (proc.Block, error) {
	if len(x) != c.cfg.BlockSize {
		return nil, fmt.Errorf("%w: block has %d samples, expected %d", mixerr.ErrInvalidParameter, len(x), c.cfg.BlockSize)
	}
	if len(c.channels) > 0 && len(x[0]) != len(c.channels) {
		return nil, fmt.Errorf("%w: block has %d channels, expected %d", mixerr.ErrInvalidParameter, len(x[0]), len(c.channels))
	}

	channelOut := make([]proc.Block, len(c.channels))
	for k, ch := range c.channels {
		mono := make([]float32, c.cfg.BlockSize)
		for s := range x {
			mono[s] = x[s][k]
		}
		channelOut[k] = ch.Process(proc.Block{mono})
	}

	busOut := make([]proc.Block, len(c.busses))
	for i, b := range c.busses {
		busOut[i] = b.Process(channelOut)
	}

	masterIn := append(append([]proc.Block(nil), channelOut...), busOut...)
	return c.master.Process(masterIn), nil
}

// Reset zeroes every channel's, bus's, and the master's processor state.
func (c *Console) Reset() {
	for _, ch := range c.channels {
		ch.Reset()
	}
	for _, b := range c.busses {
		b.Reset()
	}
	c.master.Reset()
}

// Randomize draws new parameter values for every channel and bus
// (including the master's chain; its sends stay fixed at 1.0 since
// they are non-randomizable). Core chains are shuffled.
func (c *Console) Randomize() {
	for _, ch := range c.channels {
		ch.Randomize(c.rng, true)
	}
	for _, b := range c.busses {
		b.Randomize(c.rng)
	}
	c.master.Randomize(c.rng)
}

// Serialize returns the nested document {"channels": [...], "busses":
// [...], "master": {...}}. When path is non-empty the document is also
// written there as JSON, per pymixconsole's console.py convention.
func (c *Console) Serialize(path string) (map[string]interface{}, error) {
	channels := make([]map[string]interface{}, len(c.channels))
	for i, ch := range c.channels {
		channels[i] = ch.Serialize(false, false)
	}
	busses := make([]map[string]interface{}, len(c.busses))
	for i, b := range c.busses {
		busses[i] = b.Serialize(false, false)
	}
	doc := map[string]interface{}{
		"channels": channels,
		"busses":   busses,
		"master":   c.master.Serialize(false, false),
	}

	if path != "" {
		data, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("%w: %v", mixerr.ErrResourceError, err)
		}
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return nil, fmt.Errorf("%w: %v", mixerr.ErrResourceError, err)
		}
	}
	return doc, nil
}

// RunStream drains src block by block, running ProcessBlock on each,
// and reports the total count of possibly clipped samples (magnitude
// >= 1) across every stereo mixdown, per pymixconsole's
// downmix_multitrack_block verbose clip count.
func (c *Console) RunStream(src multitrack.Source) (clipped int, err error) {
	for {
		block, ok := src.Next()
		if !ok {
			return clipped, nil
		}
		out, procErr := c.ProcessBlock(block)
		if procErr != nil {
			return clipped, procErr
		}
		for ch := range out {
			for _, v := range out[ch] {
				if math.Abs(float64(v)) >= 1.0 {
					clipped++
				}
			}
		}
	}
}
