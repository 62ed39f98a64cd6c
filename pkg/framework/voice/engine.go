// Package voice implements the polyphonic voice engine: a fixed arena of
// voice slots driven by note events, with per-voice envelopes, unison
// companions and an explicit stealing policy once the arena is full.
//
// The engine is not safe for concurrent use. Note events and rendering
// must be serialized by the caller.
package voice

import (
	"math"

	vecmath "github.com/cwbudde/algo-vecmath"

	"github.com/justyntemme/vst2go/pkg/dsp/pan"
	"github.com/justyntemme/vst2go/pkg/midi"
)

// StealingMode defines which voice is evicted when the arena is full
type StealingMode int

const (
	// StealReleasingFirst evicts the oldest releasing voice, falling back
	// to the oldest held voice
	StealReleasingFirst StealingMode = iota
	// StealOldest evicts the voice that started first, held or not
	StealOldest
	// StealNone drops the incoming voice instead
	StealNone
)

func (m StealingMode) String() string {
	switch m {
	case StealReleasingFirst:
		return "releasing-first"
	case StealOldest:
		return "oldest"
	case StealNone:
		return "none"
	default:
		return "unknown"
	}
}

// Defaults
const (
	DefaultMaxVoices    = 128
	DefaultMaxBlockSize = 512
	// UnisonSteps maps the unison voice control [0, 1] to a companion count
	UnisonSteps = 20
)

// Config sizes the engine
type Config struct {
	MaxVoices    int
	Channels     int
	MaxBlockSize int
	SampleRate   float64
	Stealing     StealingMode
	PanLaw       pan.Law
}

// DefaultConfig returns a stereo configuration with the default arena size
func DefaultConfig() Config {
	return Config{
		MaxVoices:    DefaultMaxVoices,
		Channels:     2,
		MaxBlockSize: DefaultMaxBlockSize,
		SampleRate:   44100,
		Stealing:     StealReleasingFirst,
		PanLaw:       pan.Balance,
	}
}

// Unison holds the three unison control values, each in [0, 1]
type Unison struct {
	Voices float32
	Detune float32
	Volume float32
}

// Companions returns N = floor(Voices * UnisonSteps). For N > 0 a note
// gets N+1 companions at detune offsets -N, -N+2, ..., N.
func (u Unison) Companions() int {
	n := int(math.Floor(float64(u.Voices) * UnisonSteps))
	if n < 0 {
		return 0
	}
	return n
}

// Engine renders polyphonic notes into a per-channel mix bus.
type Engine struct {
	cfg  Config
	inst Instrument

	slots     []Voice
	free      []int
	active    []int
	releasing []int
	serial    uint64
	steals    int

	attack  int
	release int

	signal []float64
	env    []float64
	tmp    []float64
	mix    [][]float64
}

// NewEngine allocates the arena and all render buffers up front.
func NewEngine(inst Instrument, cfg Config) *Engine {
	def := DefaultConfig()
	if cfg.MaxVoices <= 0 {
		cfg.MaxVoices = def.MaxVoices
	}
	if cfg.Channels <= 0 {
		cfg.Channels = def.Channels
	}
	if cfg.MaxBlockSize <= 0 {
		cfg.MaxBlockSize = def.MaxBlockSize
	}
	if cfg.SampleRate <= 0 {
		cfg.SampleRate = def.SampleRate
	}

	e := &Engine{
		cfg:       cfg,
		inst:      inst,
		slots:     make([]Voice, cfg.MaxVoices),
		free:      make([]int, 0, cfg.MaxVoices),
		active:    make([]int, 0, cfg.MaxVoices),
		releasing: make([]int, 0, cfg.MaxVoices),
		mix:       make([][]float64, cfg.Channels),
	}
	for i := range e.slots {
		e.slots[i].reset()
		e.slots[i].gains = make([]float64, cfg.Channels)
		e.slots[i].osc = inst.NewVoice()
	}
	// pop from the end hands out slot 0 first
	for i := cfg.MaxVoices - 1; i >= 0; i-- {
		e.free = append(e.free, i)
	}
	e.grow(cfg.MaxBlockSize)
	return e
}

func (e *Engine) grow(frames int) {
	e.cfg.MaxBlockSize = frames
	e.signal = make([]float64, frames)
	e.env = make([]float64, frames)
	e.tmp = make([]float64, frames)
	for c := range e.mix {
		e.mix[c] = make([]float64, frames)
	}
}

// SetSampleRate affects notes started afterwards.
func (e *Engine) SetSampleRate(sr float64) {
	if sr > 0 {
		e.cfg.SampleRate = sr
	}
}

// SampleRate returns the rate new voices start at.
func (e *Engine) SampleRate() float64 {
	return e.cfg.SampleRate
}

// SetMaxBlockSize pre-sizes the render buffers.
func (e *Engine) SetMaxBlockSize(frames int) {
	if frames > e.cfg.MaxBlockSize {
		e.grow(frames)
	}
}

// SetStealingMode changes the eviction policy.
func (e *Engine) SetStealingMode(m StealingMode) {
	e.cfg.Stealing = m
}

// Capacity returns the arena size.
func (e *Engine) Capacity() int {
	return len(e.slots)
}

// ActiveCount returns the number of held voices.
func (e *Engine) ActiveCount() int {
	return len(e.active)
}

// ReleasingCount returns the number of voices fading out.
func (e *Engine) ReleasingCount() int {
	return len(e.releasing)
}

// Steals returns how many voices have been evicted so far.
func (e *Engine) Steals() int {
	return e.steals
}

// UpdateEnvelope recomputes attack and release lengths from controls.
// Render does this on every block; note-off uses the latest values.
func (e *Engine) UpdateEnvelope(controls []float32) {
	e.attack, e.release = e.inst.Envelope(controls, e.cfg.SampleRate)
}

// HandleEvent routes a decoded MIDI event. Only notes are acted on.
func (e *Engine) HandleEvent(ev midi.Event, u Unison) {
	switch n := ev.(type) {
	case midi.NoteOnEvent:
		if n.Velocity == 0 {
			e.NoteOff(n.NoteNumber)
			return
		}
		e.NoteOn(n.NoteNumber, n.Velocity, u)
	case midi.NoteOffEvent:
		e.NoteOff(n.NoteNumber)
	}
}

// NoteOn starts the primary voice and its unison companions, returning the
// number of voices started. Velocity 0 is a note-off.
func (e *Engine) NoteOn(note, velocity uint8, u Unison) int {
	if velocity == 0 {
		e.NoteOff(note)
		return 0
	}

	vel := float64(velocity&0x7f) / 127
	started := 0
	if e.start(note, vel, 0, 0) {
		started++
	}

	n := u.Companions()
	if n == 0 {
		return started
	}
	detune := 1 + float64(u.Detune)
	for i := -n; i <= n; i += 2 {
		position := float64(i) / float64(n)
		if e.start(note, vel*float64(u.Volume), float64(i)*detune, position) {
			started++
		}
	}
	return started
}

func (e *Engine) start(note uint8, velocity, detune, position float64) bool {
	idx, ok := e.allocate()
	if !ok {
		return false
	}

	v := &e.slots[idx]
	v.reset()
	v.Note = note & 0x7f
	v.Velocity = velocity
	v.Detune = detune
	v.Frequency = math.Max(0, midi.NoteToFrequency(v.Note, 440)+detune)

	for c := range v.gains {
		v.gains[c] = 1
	}
	if len(v.gains) == 2 {
		v.gains[0], v.gains[1] = pan.MonoToStereo(position, e.cfg.PanLaw)
	}

	e.serial++
	v.serial = e.serial
	v.osc.Start(v.Frequency, e.cfg.SampleRate)

	e.active = append(e.active, idx)
	return true
}

func (e *Engine) allocate() (int, bool) {
	if n := len(e.free); n > 0 {
		idx := e.free[n-1]
		e.free = e.free[:n-1]
		return idx, true
	}

	switch e.cfg.Stealing {
	case StealNone:
		return 0, false
	case StealOldest:
		// active is in start order, releasing is in release order
		if len(e.releasing) > 0 && (len(e.active) == 0 || e.oldestReleasing() < e.slots[e.active[0]].serial) {
			return e.evictOldestReleasing(), true
		}
		return e.evict(&e.active, 0), true
	default:
		if len(e.releasing) > 0 {
			return e.evict(&e.releasing, 0), true
		}
		return e.evict(&e.active, 0), true
	}
}

func (e *Engine) oldestReleasing() uint64 {
	oldest := uint64(math.MaxUint64)
	for _, idx := range e.releasing {
		oldest = min(oldest, e.slots[idx].serial)
	}
	return oldest
}

func (e *Engine) evictOldestReleasing() int {
	pos := 0
	for i, idx := range e.releasing {
		if e.slots[idx].serial < e.slots[e.releasing[pos]].serial {
			pos = i
		}
	}
	return e.evict(&e.releasing, pos)
}

func (e *Engine) evict(list *[]int, pos int) int {
	idx := (*list)[pos]
	*list = append((*list)[:pos], (*list)[pos+1:]...)
	e.steals++
	return idx
}

// NoteOff moves every held voice playing note to the releasing list and
// returns how many were moved.
func (e *Engine) NoteOff(note uint8) int {
	note &= 0x7f
	moved := 0
	kept := e.active[:0]
	for _, idx := range e.active {
		v := &e.slots[idx]
		if v.Note == note {
			v.release(e.attack)
			e.releasing = append(e.releasing, idx)
			moved++
			continue
		}
		kept = append(kept, idx)
	}
	e.active = kept
	return moved
}

// Reset silences every voice immediately.
func (e *Engine) Reset() {
	for _, idx := range e.active {
		e.slots[idx].reset()
		e.free = append(e.free, idx)
	}
	for _, idx := range e.releasing {
		e.slots[idx].reset()
		e.free = append(e.free, idx)
	}
	e.active = e.active[:0]
	e.releasing = e.releasing[:0]
}

// Render mixes frames samples of every voice into the mix bus and returns
// it, one slice of length frames per channel. Held voices render first,
// then releasing voices; releasing voices that finished during this block
// go back to the free list. The returned slices are reused by the next
// call.
func (e *Engine) Render(controls []float32, frames int) [][]float64 {
	if frames < 0 {
		frames = 0
	}
	if frames > e.cfg.MaxBlockSize {
		e.grow(frames)
	}

	for c := range e.mix {
		clear(e.mix[c][:frames])
	}
	out := e.bus(frames)
	if frames == 0 {
		return out
	}

	e.UpdateEnvelope(controls)
	level := e.inst.Gain(controls)

	for _, idx := range e.active {
		e.renderVoice(&e.slots[idx], frames, level)
	}

	kept := e.releasing[:0]
	for _, idx := range e.releasing {
		v := &e.slots[idx]
		e.renderVoice(v, frames, level)
		if v.Recycle {
			v.reset()
			e.free = append(e.free, idx)
			continue
		}
		kept = append(kept, idx)
	}
	e.releasing = kept

	return out
}

func (e *Engine) bus(frames int) [][]float64 {
	out := e.mix
	for c := range out {
		out[c] = out[c][:frames]
	}
	return out
}

func (e *Engine) renderVoice(v *Voice, frames int, level float64) {
	sig := e.signal[:frames]
	env := e.env[:frames]
	tmp := e.tmp[:frames]

	v.osc.Render(sig)
	v.envelope(env, e.attack, e.release)
	vecmath.MulBlockInPlace(sig, env)

	amp := v.Velocity * level
	for c, g := range v.gains {
		if g == 0 {
			continue
		}
		vecmath.ScaleBlock(tmp, sig, amp*g)
		vecmath.AddBlockInPlace(e.mix[c][:frames], tmp)
	}
}

// Voices returns a snapshot of every held then every releasing voice.
func (e *Engine) Voices() []Info {
	out := make([]Info, 0, len(e.active)+len(e.releasing))
	for _, list := range [][]int{e.active, e.releasing} {
		for _, idx := range list {
			v := &e.slots[idx]
			out = append(out, Info{
				Note:         v.Note,
				Velocity:     v.Velocity,
				Detune:       v.Detune,
				Frequency:    v.Frequency,
				Elapsed:      v.Elapsed,
				ReleaseStart: v.ReleaseStart,
				Level:        v.Level(e.attack, e.release),
				Stage:        v.Stage(e.attack),
				Gains:        append([]float64(nil), v.gains...),
			})
		}
	}
	return out
}
