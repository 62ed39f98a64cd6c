package voice

import "fmt"

// Oscillator renders the raw signal of one voice. The engine owns one per
// arena slot and reuses it for every note that lands in that slot.
type Oscillator interface {
	// Start resets the oscillator for a new note.
	Start(frequency, sampleRate float64)
	// Render fills dst with the next len(dst) samples.
	Render(dst []float64)
}

// Instrument supplies the per-voice signal and the envelope shape.
type Instrument interface {
	// NewVoice creates the oscillator for one arena slot.
	NewVoice() Oscillator
	// Envelope returns the attack and release lengths in samples for the
	// current control values.
	Envelope(controls []float32, sampleRate float64) (attack, release int)
	// Gain returns the overall output level for the current control values.
	Gain(controls []float32) float64
}

// Stage is the envelope state of a voice
type Stage int

const (
	StageAttack Stage = iota
	StageSustain
	StageRelease
	StageRecycle
)

func (s Stage) String() string {
	switch s {
	case StageAttack:
		return "Attack"
	case StageSustain:
		return "Sustain"
	case StageRelease:
		return "Release"
	case StageRecycle:
		return "Recycle"
	default:
		return fmt.Sprintf("Stage(%d)", int(s))
	}
}

// notReleased marks a voice whose note is still held
const notReleased = -1

// Voice is one arena slot.
type Voice struct {
	Note      uint8
	Velocity  float64 // [0, 1]
	Detune    float64 // Hz
	Frequency float64

	// Elapsed counts rendered samples since note-on.
	Elapsed int
	// ReleaseStart is the Elapsed value at note-off, or -1 while held.
	ReleaseStart int
	// Recycle is set once the release ramp has reached zero.
	Recycle bool

	releaseLevel float64
	gains        []float64
	serial       uint64
	osc          Oscillator
}

func (v *Voice) reset() {
	v.Note = 0
	v.Velocity = 0
	v.Detune = 0
	v.Frequency = 0
	v.Elapsed = 0
	v.ReleaseStart = notReleased
	v.Recycle = false
	v.releaseLevel = 0
}

// Released reports whether note-off has been received.
func (v *Voice) Released() bool {
	return v.ReleaseStart != notReleased
}

// heldLevel is the attack/sustain part of the envelope.
func (v *Voice) heldLevel(attack int) float64 {
	if attack > 0 && v.Elapsed < attack {
		return float64(v.Elapsed) / float64(attack)
	}
	return 1
}

// Level returns the envelope value at the current elapsed count without
// advancing it.
func (v *Voice) Level(attack, release int) float64 {
	if !v.Released() {
		return v.heldLevel(attack)
	}
	d := v.Elapsed - v.ReleaseStart
	if release <= 0 || d >= release {
		return 0
	}
	return v.releaseLevel * (1 - float64(d)/float64(release))
}

// Stage reports the envelope stage for the given attack length.
func (v *Voice) Stage(attack int) Stage {
	switch {
	case v.Recycle:
		return StageRecycle
	case v.Released():
		return StageRelease
	case attack > 0 && v.Elapsed < attack:
		return StageAttack
	default:
		return StageSustain
	}
}

// release stamps the note-off. The ramp starts from the level the
// envelope has right now, so a note released during its attack fades
// from below 1.
func (v *Voice) release(attack int) {
	if v.Released() {
		return
	}
	v.releaseLevel = v.heldLevel(attack)
	v.ReleaseStart = v.Elapsed
}

// envelope fills env with consecutive envelope values, advancing Elapsed
// and setting Recycle once the release ramp is exhausted.
func (v *Voice) envelope(env []float64, attack, release int) {
	for i := range env {
		if v.Released() && (release <= 0 || v.Elapsed-v.ReleaseStart >= release) {
			v.Recycle = true
		}
		env[i] = v.Level(attack, release)
		v.Elapsed++
	}
}

// Info is a read-only snapshot of a voice for inspection.
type Info struct {
	Note         uint8
	Velocity     float64
	Detune       float64
	Frequency    float64
	Elapsed      int
	ReleaseStart int
	Level        float64
	Stage        Stage
	Gains        []float64
}
