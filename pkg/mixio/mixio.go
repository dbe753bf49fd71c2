// Package mixio implements the other half of the serialize contract:
// applying a previously-serialized document back onto a Channel, Bus,
// or Console, so a round trip (serialize -> recreate -> apply ->
// process) reproduces the original's behavior (spec.md §8 invariant 4,
// scenario S6).
//
// Grounded on spec.md §4.14's "serialize(path?)" contract and on
// Parameter.SetAny's own doc comment, which already names this package's
// purpose ("used by document round-trips"); no teacher file has an
// equivalent deserializer (vst3go's state.Manager only ever walks
// outward into a VST3 host's chunk format, never back in), so the walk
// here mirrors proc.List.Serialize's own shape in reverse.
package mixio

import (
	"fmt"

	"github.com/justyntemme/mixconsole/pkg/bus"
	"github.com/justyntemme/mixconsole/pkg/channel"
	"github.com/justyntemme/mixconsole/pkg/console"
	"github.com/justyntemme/mixconsole/pkg/mixerr"
	"github.com/justyntemme/mixconsole/pkg/param"
	"github.com/justyntemme/mixconsole/pkg/proc"
)

func asMap(v interface{}) (map[string]interface{}, error) {
	m, ok := v.(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("%w: expected a document object, got %T", mixerr.ErrInvalidParameter, v)
	}
	return m, nil
}

// asSlice accepts both a direct []map[string]interface{} (an in-memory
// document, e.g. straight from Console.Serialize) and a
// json.Unmarshal-produced []interface{} (a document read back from disk).
func asSlice(v interface{}) []interface{} {
	switch s := v.(type) {
	case []interface{}:
		return s
	case []map[string]interface{}:
		out := make([]interface{}, len(s))
		for i, e := range s {
			out[i] = e
		}
		return out
	default:
		return nil
	}
}

// ApplyParameterList sets every parameter in list from doc's matching
// key, skipping the "order" bookkeeping key ProcessorList.Serialize
// adds and any name the list doesn't recognize.
func ApplyParameterList(list *param.List, doc interface{}) error {
	m, err := asMap(doc)
	if err != nil {
		return err
	}
	for name, v := range m {
		if name == "order" {
			continue
		}
		p, err := list.Get(name)
		if err != nil {
			continue
		}
		if err := p.SetAny(v); err != nil {
			return err
		}
	}
	return nil
}

// ApplyProcessorList applies a proc.List.Serialize-shaped document
// (name -> {param: value, ..., order: int}) back onto l's processors
// and moves each processor to the chain position its "order" records.
func ApplyProcessorList(l *proc.List, doc interface{}) error {
	m, err := asMap(doc)
	if err != nil {
		return err
	}
	for name, v := range m {
		p, err := l.Get(name)
		if err != nil {
			continue
		}
		if err := ApplyParameterList(p.Parameters(), v); err != nil {
			return err
		}
	}
	for pos := 0; pos < l.Len(); pos++ {
		for name, v := range m {
			pm, _ := v.(map[string]interface{})
			idx, ok := pm["order"].(int)
			if f, isFloat := pm["order"].(float64); isFloat {
				idx, ok = int(f), true
			}
			if cur := l.Names()[pos]; ok && idx == pos && cur != name {
				_ = l.Swap(name, cur) // an unknown name leaves the chain as it is
			}
		}
	}
	return nil
}

// ApplyChannel applies a Channel.Serialize-shaped document back onto
// ch's pre, core, and post chains.
func ApplyChannel(ch *channel.Channel, doc interface{}) error {
	m, err := asMap(doc)
	if err != nil {
		return err
	}
	if v, ok := m["pre_processors"]; ok {
		if err := ApplyProcessorList(ch.Pre(), v); err != nil {
			return err
		}
	}
	if v, ok := m["core_processors"]; ok {
		if err := ApplyProcessorList(ch.Core(), v); err != nil {
			return err
		}
	}
	if v, ok := m["post_processors"]; ok {
		if err := ApplyProcessorList(ch.Post(), v); err != nil {
			return err
		}
	}
	return nil
}

// ApplyBus applies a Bus.Serialize-shaped document back onto b's sends
// and chain.
func ApplyBus(b *bus.Bus, doc interface{}) error {
	m, err := asMap(doc)
	if err != nil {
		return err
	}
	if v, ok := m["sends"]; ok {
		if err := ApplyParameterList(b.Sends(), v); err != nil {
			return err
		}
	}
	if v, ok := m["processors"]; ok {
		if err := ApplyProcessorList(b.Chain(), v); err != nil {
			return err
		}
	}
	return nil
}

// ApplyConsole applies a Console.Serialize-shaped document back onto
// c's channels, busses, and master, by position.
func ApplyConsole(c *console.Console, doc interface{}) error {
	m, err := asMap(doc)
	if err != nil {
		return err
	}

	channels := asSlice(m["channels"])
	for i, chDoc := range channels {
		if i >= len(c.Channels()) {
			break
		}
		if err := ApplyChannel(c.Channels()[i], chDoc); err != nil {
			return err
		}
	}

	busses := asSlice(m["busses"])
	for i, busDoc := range busses {
		if i >= len(c.Busses()) {
			break
		}
		if err := ApplyBus(c.Busses()[i], busDoc); err != nil {
			return err
		}
	}

	if v, ok := m["master"]; ok {
		if err := ApplyBus(c.Master(), v); err != nil {
			return err
		}
	}
	return nil
}
