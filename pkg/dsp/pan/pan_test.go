package pan

import (
	"math"
	"testing"
)

func TestMonoToStereo(t *testing.T) {
	tests := []struct {
		name        string
		pan         float64
		law         Law
		left, right float64
	}{
		{"Center Linear", 0.0, Linear, 0.5, 0.5},
		{"Left Linear", -1.0, Linear, 1, 0},
		{"Right Linear", 1.0, Linear, 0, 1},
		{"Center ConstantPower", 0.0, ConstantPower, math.Sqrt2 / 2, math.Sqrt2 / 2},
		{"Left ConstantPower", -1.0, ConstantPower, 1, 0},
		{"Right ConstantPower", 1.0, ConstantPower, 0, 1},
		{"Center Balance", 0.0, Balance, 1, 1},
		{"Half left Balance", -0.5, Balance, 1, 0.5},
		{"Half right Balance", 0.5, Balance, 0.5, 1},
		{"Clamped", 3.0, Balance, 0, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			left, right := MonoToStereo(tt.pan, tt.law)
			if math.Abs(left-tt.left) > 1e-9 || math.Abs(right-tt.right) > 1e-9 {
				t.Errorf("MonoToStereo(%f) = (%f, %f), want (%f, %f)", tt.pan, left, right, tt.left, tt.right)
			}
		})
	}
}

func TestConstantPowerIsConstant(t *testing.T) {
	for p := -1.0; p <= 1.0; p += 0.125 {
		l, r := MonoToStereo(p, ConstantPower)
		if power := l*l + r*r; math.Abs(power-1) > 1e-9 {
			t.Errorf("pan %f: power %f", p, power)
		}
	}
}
