package param

import (
	"fmt"

	"github.com/justyntemme/vst2go/pkg/dsp/gain"
)

// Common display formatters. All of them take the normalized control value.

// DefaultDisplay formats a value with two decimal digits
func DefaultDisplay(v float32) string {
	return fmt.Sprintf("%.2f", v)
}

// ScaledInt formats int(v*scale) with the given format, e.g. "%d dB"
func ScaledInt(format string, scale float32) DisplayFunc {
	return func(v float32) string {
		return fmt.Sprintf(format, int(v*scale))
	}
}

// Switch shows on when v > 0.5 and off otherwise
func Switch(on, off string) DisplayFunc {
	return func(v float32) string {
		if v > 0.5 {
			return on
		}
		return off
	}
}

// OnOff is Switch("On", "Off")
func OnOff(v float32) string {
	return Switch("On", "Off")(v)
}

// Percent formats the value as a whole percentage
func Percent(v float32) string {
	return fmt.Sprintf("%.0f%%", v*100)
}

// Decibels treats the value as a linear gain and shows it in dB
func Decibels(v float32) string {
	if v <= 0 {
		return "-inf"
	}
	db := gain.LinearToDb(float64(v))
	if db <= -60 {
		return "-inf"
	}
	return fmt.Sprintf("%.1f", db)
}
