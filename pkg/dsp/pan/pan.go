// Package pan provides stereo panning gains.
package pan

import (
	"math"
)

// Law represents different panning laws
type Law int

const (
	// Linear crossfades the two channels, -6dB at center
	Linear Law = iota
	// ConstantPower uses sine/cosine panning, -3dB at center
	ConstantPower
	// Balance keeps both channels at unity in the center and only
	// attenuates the side the source moves away from
	Balance
)

// MonoToStereo returns the left and right gains for a mono source.
// pan: -1.0 = hard left, 0.0 = center, 1.0 = hard right. Values outside
// that range are clamped.
func MonoToStereo(pan float64, law Law) (left, right float64) {
	pan = math.Max(-1, math.Min(1, pan))

	switch law {
	case Linear:
		return linearPan(pan)
	case Balance:
		return balancePan(pan)
	default:
		return constantPowerPan(pan)
	}
}

func linearPan(pan float64) (left, right float64) {
	return (1.0 - pan) * 0.5, (1.0 + pan) * 0.5
}

func constantPowerPan(pan float64) (left, right float64) {
	angle := (pan + 1.0) * math.Pi / 4.0
	return math.Cos(angle), math.Sin(angle)
}

func balancePan(pan float64) (left, right float64) {
	left, right = 1, 1
	if pan < 0 {
		right = 1 + pan
	} else if pan > 0 {
		left = 1 - pan
	}
	return
}
