// Package plugin describes a plugin declaratively: metadata, controls,
// presets and the capabilities the runtime dispatches on.
package plugin

import (
	"errors"
	"fmt"
	"strings"

	"go.uber.org/multierr"

	"github.com/justyntemme/vst2go/pkg/framework/param"
	"github.com/justyntemme/vst2go/pkg/framework/voice"
	"github.com/justyntemme/vst2go/pkg/vst2"
)

// UnisonSlots is the number of reserved controls appended for instruments
const UnisonSlots = 3

// Descriptor is the complete declarative description of a plugin.
type Descriptor struct {
	Info

	// Category defaults to CategorySynth when Instrument is set and to
	// CategoryEffect otherwise.
	Category vst2.Category
	Channels int
	Controls []param.ControlSpec
	Presets  []param.Preset

	// Processor is required for effects. For instruments it is optional and
	// post-processes the voice mix.
	Processor Processor
	// Instrument renders voices; its presence makes the plugin an instrument.
	Instrument voice.Instrument
	// Bypass marks the plugin as bypass-controllable.
	Bypass bool
	// Dispatcher is consulted before the built-in opcode handling.
	Dispatcher DispatchFunc
}

// Capabilities is the resolved feature set of a descriptor
type Capabilities struct {
	Instrument    bool
	Programs      bool
	CustomDisplay bool
	Bypass        bool
	Dispatcher    bool
}

func (c Capabilities) String() string {
	var parts []string
	for _, f := range []struct {
		on   bool
		name string
	}{
		{c.Instrument, "instrument"},
		{c.Programs, "programs"},
		{c.CustomDisplay, "display"},
		{c.Bypass, "bypass"},
		{c.Dispatcher, "dispatcher"},
	} {
		if f.on {
			parts = append(parts, f.name)
		}
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, ",")
}

// IsInstrument reports whether the plugin renders voices
func (d *Descriptor) IsInstrument() bool {
	return d.Instrument != nil
}

// HasPrograms reports whether the plugin ships presets
func (d *Descriptor) HasPrograms() bool {
	return len(d.Presets) > 0
}

// PlugCategory returns the category reported to the host
func (d *Descriptor) PlugCategory() vst2.Category {
	if d.Category != vst2.CategoryUnknown {
		return d.Category
	}
	if d.IsInstrument() {
		return vst2.CategorySynth
	}
	return vst2.CategoryEffect
}

// Capabilities resolves the descriptor's optional features
func (d *Descriptor) Capabilities() Capabilities {
	c := Capabilities{
		Instrument: d.IsInstrument(),
		Programs:   d.HasPrograms(),
		Bypass:     d.Bypass,
		Dispatcher: d.Dispatcher != nil,
	}
	for i := range d.Controls {
		if d.Controls[i].HasCustomDisplay() {
			c.CustomDisplay = true
			break
		}
	}
	return c
}

// AllControls returns the host-visible controls: the declared ones plus
// the unison slots for instruments.
func (d *Descriptor) AllControls() []param.ControlSpec {
	out := make([]param.ControlSpec, 0, d.NumParams())
	out = append(out, d.Controls...)
	if d.IsInstrument() {
		out = append(out, UnisonControls()...)
	}
	return out
}

// NumParams is the length of the control vector
func (d *Descriptor) NumParams() int {
	if d.IsInstrument() {
		return len(d.Controls) + UnisonSlots
	}
	return len(d.Controls)
}

// UnisonControls returns the reserved unison voice count, detune and
// volume controls.
func UnisonControls() []param.ControlSpec {
	return []param.ControlSpec{
		param.New("Unison voices").
			Label("Unison voices").
			Display(param.ScaledInt("%d", voice.UnisonSteps)).
			Build(),
		param.New("Unison detune").
			Label("Unison detune").
			Build(),
		param.New("Unison volume").
			Label("Unison volume").
			Default(1).
			Build(),
	}
}

// ErrNoName is returned for a descriptor without a name
var ErrNoName = errors.New("plugin has no name")

// Validate reports every problem with the descriptor at once.
func (d *Descriptor) Validate() error {
	var err error
	if d.Name == "" {
		err = multierr.Append(err, ErrNoName)
	}
	if d.UniqueID == 0 {
		err = multierr.Append(err, fmt.Errorf("plugin %q: unique id is 0", d.Name))
	}
	if d.Channels <= 0 {
		err = multierr.Append(err, fmt.Errorf("plugin %q: %d channels", d.Name, d.Channels))
	}

	switch d.PlugCategory() {
	case vst2.CategorySynth:
		if !d.IsInstrument() {
			err = multierr.Append(err, fmt.Errorf("plugin %q: synth category without instrument", d.Name))
		}
	case vst2.CategoryEffect:
		if d.IsInstrument() {
			err = multierr.Append(err, fmt.Errorf("plugin %q: instrument declared as effect", d.Name))
		}
		if d.Processor == nil {
			err = multierr.Append(err, fmt.Errorf("plugin %q: effect without processor", d.Name))
		}
	default:
		err = multierr.Append(err, fmt.Errorf("plugin %q: unsupported category %s", d.Name, d.Category))
	}

	for i := range d.Controls {
		if cerr := d.Controls[i].Validate(); cerr != nil {
			err = multierr.Append(err, fmt.Errorf("control %d: %w", i, cerr))
		}
	}
	for i, p := range d.Presets {
		if len(p.Values) != len(d.Controls) {
			err = multierr.Append(err, fmt.Errorf("preset %d %q: %d values for %d controls",
				i, p.Name, len(p.Values), len(d.Controls)))
		}
	}
	return err
}
