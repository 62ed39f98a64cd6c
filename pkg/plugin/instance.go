// Package plugin runs a plugin descriptor behind the VST2 host protocol.
//
// An Instance has two execution contexts. The control context calls
// Dispatch, SetParameter and GetParameter; the render context calls
// ProcessFloat32 and ProcessFloat64. Only the parameter bridge is shared
// between them. The host must not call SetProgram, MainsChanged or
// ProcessEvents concurrently with rendering, which matches the protocol's
// single-threaded dispatch convention.
//
// Any call after Close, including a second Close, is a contract violation
// and panics through the logger's Fatal.
package plugin

import (
	"fmt"
	"sync/atomic"

	"github.com/justyntemme/vst2go/pkg/dsp/pan"
	"github.com/justyntemme/vst2go/pkg/framework/bridge"
	"github.com/justyntemme/vst2go/pkg/framework/debug"
	"github.com/justyntemme/vst2go/pkg/framework/param"
	"github.com/justyntemme/vst2go/pkg/framework/plugin"
	"github.com/justyntemme/vst2go/pkg/framework/process"
	"github.com/justyntemme/vst2go/pkg/framework/state"
	"github.com/justyntemme/vst2go/pkg/framework/voice"
	"github.com/justyntemme/vst2go/pkg/midi"
	"github.com/justyntemme/vst2go/pkg/vst2"
)

// Instance is one running plugin.
type Instance struct {
	desc     *plugin.Descriptor
	controls []param.ControlSpec
	host     vst2.HostCallback
	cfg      Config
	log      *debug.Logger

	bridge    *bridge.Bridge
	snapshots *state.Manager

	// values is the authoritative control vector, owned by the render path
	values []float32
	// scratch is the control-side copy used while delivering events
	scratch []float32

	sampleRate float64
	blockSize  int
	precision  vst2.Precision
	program    int
	bypass     atomic.Bool
	closed     atomic.Bool

	engine *voice.Engine
	block  *process.Block
	effect vst2.Effect
}

// New validates desc and builds an instance talking to host. A nil host
// is allowed; queries then fall back to the configured defaults.
func New(desc *plugin.Descriptor, host vst2.HostCallback, opts ...Option) (*Instance, error) {
	if desc == nil {
		return nil, fmt.Errorf("plugin: nil descriptor")
	}
	if err := desc.Validate(); err != nil {
		return nil, fmt.Errorf("plugin: invalid descriptor: %w", err)
	}

	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	p := &Instance{
		desc:     desc,
		controls: desc.AllControls(),
		host:     host,
		cfg:      cfg,
		log:      cfg.Logger,
	}

	n := desc.NumParams()
	p.bridge = bridge.New(n)
	p.snapshots = state.NewManager(n)
	p.values = param.Defaults(p.controls)
	p.scratch = make([]float32, n)
	p.bridge.Publish(p.values)

	p.sampleRate = cfg.DefaultSampleRate
	if sr := host.Call(vst2.HostGetSampleRate, 0, 0, nil, 0); sr > 0 {
		p.sampleRate = float64(sr)
	}
	p.blockSize = cfg.DefaultBlockSize
	if bs := host.Call(vst2.HostGetBlockSize, 0, 0, nil, 0); bs > 0 {
		p.blockSize = int(bs)
	}

	if desc.IsInstrument() {
		p.engine = voice.NewEngine(desc.Instrument, voice.Config{
			MaxVoices:    cfg.MaxVoices,
			Channels:     desc.Channels,
			MaxBlockSize: p.blockSize,
			SampleRate:   p.sampleRate,
			Stealing:     cfg.Stealing,
			PanLaw:       pan.Balance,
		})
		p.engine.UpdateEnvelope(p.values)
	}
	p.block = process.NewBlock(desc.Channels, p.blockSize)

	if ini, ok := desc.Processor.(plugin.Initializer); ok {
		if err := ini.Initialize(p.sampleRate, p.blockSize); err != nil {
			return nil, fmt.Errorf("plugin %q: initialize: %w", desc.Name, err)
		}
	}

	p.effect = vst2.Effect{
		Magic:       vst2.EffectMagic,
		NumPrograms: int32(len(desc.Presets)),
		NumParams:   int32(n),
		NumInputs:   int32(desc.Channels),
		NumOutputs:  int32(desc.Channels),
		Flags:       vst2.FlagCanReplacing | vst2.FlagCanDoubleReplacing,
		UniqueID:    desc.UniqueID,
		Version:     desc.Version,
	}
	if desc.IsInstrument() {
		p.effect.Flags |= vst2.FlagIsSynth
	}

	p.log.Info("created %s (%s) id=%s params=%d sr=%.0f bs=%d caps=%s",
		desc.Name, desc.PlugCategory(), desc.IDString(), n, p.sampleRate, p.blockSize, desc.Capabilities())
	return p, nil
}

// Effect returns the header the host reads after instantiation
func (p *Instance) Effect() vst2.Effect {
	return p.effect
}

// Descriptor returns the description the instance was built from
func (p *Instance) Descriptor() *plugin.Descriptor {
	return p.desc
}

// SampleRate returns the current sample rate
func (p *Instance) SampleRate() float64 {
	return p.sampleRate
}

// BlockSize returns the current maximum block size
func (p *Instance) BlockSize() int {
	return p.blockSize
}

// Precision returns the sample format the host announced
func (p *Instance) Precision() vst2.Precision {
	return p.precision
}

// Program returns the current program index
func (p *Instance) Program() int {
	return p.program
}

// Bypassed reports whether bypass is engaged
func (p *Instance) Bypassed() bool {
	return p.bypass.Load()
}

// Closed reports whether Close has been dispatched
func (p *Instance) Closed() bool {
	return p.closed.Load()
}

// Engine returns the voice engine, or nil for effects
func (p *Instance) Engine() *voice.Engine {
	return p.engine
}

// Values returns the authoritative control vector as of the last render
// or program change. The slice is owned by the render path.
func (p *Instance) Values() []float32 {
	return p.values
}

func (p *Instance) checkOpen(what string) {
	if p.closed.Load() {
		p.log.Fatal("%s: %s called after close", p.desc.Name, what)
	}
}

// SetParameter stores a control value for the next render block.
// Out-of-range indices are ignored.
func (p *Instance) SetParameter(index int32, value float32) {
	p.checkOpen("SetParameter")
	p.bridge.Set(int(index), value)
}

// GetParameter returns the last stored control value, 0 when out of range.
func (p *Instance) GetParameter(index int32) float32 {
	p.checkOpen("GetParameter")
	return p.bridge.Get(int(index))
}

func (p *Instance) setSampleRate(sr float64) {
	if sr <= 0 || sr == p.sampleRate {
		return
	}
	p.sampleRate = sr
	if p.engine != nil {
		p.engine.SetSampleRate(sr)
	}
	p.initialize()
	p.log.Debug("%s: sample rate %.0f", p.desc.Name, sr)
}

func (p *Instance) setBlockSize(bs int) {
	if bs <= 0 || bs == p.blockSize {
		return
	}
	p.blockSize = bs
	if p.engine != nil {
		p.engine.SetMaxBlockSize(bs)
	}
	p.block.Resize(bs)
	p.initialize()
	p.log.Debug("%s: block size %d", p.desc.Name, bs)
}

func (p *Instance) initialize() {
	ini, ok := p.desc.Processor.(plugin.Initializer)
	if !ok {
		return
	}
	if err := ini.Initialize(p.sampleRate, p.blockSize); err != nil {
		p.log.Warn("%s: initialize at %.0f Hz: %v", p.desc.Name, p.sampleRate, err)
	}
}

func (p *Instance) setProgram(index int) {
	if index < 0 || index >= len(p.desc.Presets) {
		p.program = 0
		p.log.Debug("%s: program %d out of range, using 0", p.desc.Name, index)
		return
	}

	p.program = index
	preset := p.desc.Presets[index]
	copy(p.values, preset.Values)
	p.bridge.Publish(preset.Values)
	p.host.Call(vst2.HostUpdateDisplay, 0, 0, nil, 0)
	p.log.Debug("%s: program %d %q", p.desc.Name, index, preset.Name)
}

func (p *Instance) unison(values []float32) voice.Unison {
	n := len(p.desc.Controls)
	return voice.Unison{
		Voices: values[n],
		Detune: values[n+1],
		Volume: values[n+2],
	}
}

func (p *Instance) processEvents(evs *vst2.Events) {
	if p.engine == nil || evs == nil {
		return
	}

	p.bridge.Latch(p.scratch)
	p.engine.UpdateEnvelope(p.scratch)
	u := p.unison(p.scratch)
	steals := p.engine.Steals()

	evs.Each(func(ev *vst2.Event) {
		if m, ok := midi.FromVST(ev); ok {
			p.engine.HandleEvent(m, u)
		}
	})

	if d := p.engine.Steals() - steals; d > 0 {
		p.log.Debug("%s: stole %d voices", p.desc.Name, d)
	}
}

func (p *Instance) mainsChanged(on bool) {
	if on {
		if r, ok := p.desc.Processor.(plugin.Resetter); ok {
			r.Reset()
		}
		return
	}
	if p.engine != nil {
		p.engine.Reset()
	}
}

func (p *Instance) close() int64 {
	if p.closed.Swap(true) {
		p.log.Fatal("%s: closed twice", p.desc.Name)
	}
	if p.engine != nil {
		p.engine.Reset()
	}
	p.log.Info("closed %s", p.desc.Name)
	return 1
}

// Snapshot captures the current control values as a named in-memory
// preset and keeps it for RestoreSnapshot.
func (p *Instance) Snapshot(name string) (param.Preset, error) {
	p.checkOpen("Snapshot")
	values := make([]float32, p.bridge.Len())
	p.bridge.Latch(values)
	return p.snapshots.Save(name, values)
}

// Restore publishes a full control vector captured by Snapshot. It takes
// effect on the next render block.
func (p *Instance) Restore(preset param.Preset) error {
	p.checkOpen("Restore")
	values := make([]float32, p.bridge.Len())
	if err := p.snapshots.Apply(preset, values); err != nil {
		return err
	}
	p.bridge.Publish(values)
	p.log.Debug("%s: restored %q", p.desc.Name, preset.Name)
	return nil
}

// RestoreSnapshot restores a snapshot saved under name.
func (p *Instance) RestoreSnapshot(name string) error {
	preset, ok := p.snapshots.Get(name)
	if !ok {
		return fmt.Errorf("plugin %q: no snapshot %q", p.desc.Name, name)
	}
	return p.Restore(preset)
}

// Snapshots lists saved snapshot names
func (p *Instance) Snapshots() []string {
	return p.snapshots.Names()
}
