// Package gain provides amplitude conversions and block gain stages.
package gain

import (
	"math"

	vecmath "github.com/cwbudde/algo-vecmath"
)

// MinDB is the floor reported for silent or negative amplitudes
const MinDB = -200.0

// LinearToDb converts a linear amplitude value to decibels.
// Returns MinDB for values <= 0.
func LinearToDb(linear float64) float64 {
	if linear <= 0 {
		return MinDB
	}
	return 20.0 * math.Log10(linear)
}

// DbToLinear converts a decibel value to linear amplitude.
// Values <= MinDB return 0.
func DbToLinear(db float64) float64 {
	if db <= MinDB {
		return 0
	}
	return math.Pow(10.0, db/20.0)
}

// ApplyBuffer scales buffer in place.
func ApplyBuffer(buffer []float64, g float64) {
	if len(buffer) == 0 {
		return
	}
	vecmath.ScaleBlockInPlace(buffer, g)
}

// Peak returns the largest absolute sample in buffer
func Peak(buffer []float64) float64 {
	if len(buffer) == 0 {
		return 0
	}
	return vecmath.MaxAbs(buffer)
}

// Invert flips the polarity of every sample in place.
func Invert(buffer []float64) {
	ApplyBuffer(buffer, -1)
}
