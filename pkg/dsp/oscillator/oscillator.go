// Package oscillator provides audio oscillators for synthesis
package oscillator

import "math"

// Waveform selects the shape produced by an Oscillator
type Waveform int

const (
	Sine Waveform = iota
	Saw
	Square
	Triangle
)

// Oscillator generates periodic waveforms. Phase is kept in [0, 1).
type Oscillator struct {
	sampleRate float64
	frequency  float64
	phase      float64
	phaseInc   float64
	waveform   Waveform
}

// New creates a sine oscillator at 440 Hz
func New(sampleRate float64) *Oscillator {
	o := &Oscillator{sampleRate: sampleRate}
	o.SetFrequency(440)
	return o
}

// SetSampleRate changes the sample rate, keeping the frequency
func (o *Oscillator) SetSampleRate(sr float64) {
	o.sampleRate = sr
	o.SetFrequency(o.frequency)
}

// SetFrequency sets the oscillator frequency
func (o *Oscillator) SetFrequency(freq float64) {
	o.frequency = freq
	if o.sampleRate > 0 {
		o.phaseInc = freq / o.sampleRate
	} else {
		o.phaseInc = 0
	}
}

// Frequency returns the current frequency
func (o *Oscillator) Frequency() float64 {
	return o.frequency
}

// SetWaveform selects the waveform
func (o *Oscillator) SetWaveform(w Waveform) {
	o.waveform = w
}

// SetPhase sets the oscillator phase (0-1)
func (o *Oscillator) SetPhase(phase float64) {
	o.phase = phase - math.Floor(phase)
}

// Reset resets the oscillator phase to 0
func (o *Oscillator) Reset() {
	o.phase = 0.0
}

func (o *Oscillator) advance() {
	o.phase += o.phaseInc
	if o.phase >= 1.0 {
		o.phase -= math.Floor(o.phase)
	}
}

// Next returns the current sample and advances the phase
func (o *Oscillator) Next() float64 {
	var s float64
	switch o.waveform {
	case Saw:
		s = 2.0*o.phase - 1.0
	case Square:
		if o.phase < 0.5 {
			s = 1.0
		} else {
			s = -1.0
		}
	case Triangle:
		if o.phase < 0.5 {
			s = 4.0*o.phase - 1.0
		} else {
			s = 3.0 - 4.0*o.phase
		}
	default:
		s = math.Sin(2.0 * math.Pi * o.phase)
	}
	o.advance()
	return s
}

// Render fills dst with consecutive samples - no allocations
func (o *Oscillator) Render(dst []float64) {
	for i := range dst {
		dst[i] = o.Next()
	}
}
