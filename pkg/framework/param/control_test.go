package param

import "testing"

func TestBuilder(t *testing.T) {
	c := New("Preamp").
		Label("Preamp").
		ShortLabel("Pre").
		Category("Drive").
		Default(0.5).
		Display(ScaledInt("%d dB", 100)).
		Build()

	if c.Name != "Preamp" || c.Label != "Preamp" || c.ShortLabel != "Pre" || c.CategoryLabel != "Drive" {
		t.Errorf("unexpected metadata %+v", c)
	}
	if c.Default != 0.5 {
		t.Errorf("Default = %f", c.Default)
	}
	if !c.HasCustomDisplay() {
		t.Error("custom display not set")
	}
	if got := c.Format(0.25); got != "25 dB" {
		t.Errorf("Format(0.25) = %q", got)
	}
}

func TestDefaultFormat(t *testing.T) {
	c := New("Volume").Default(1).Build()
	tests := []struct {
		v    float32
		want string
	}{
		{0, "0.00"},
		{0.5, "0.50"},
		{1, "1.00"},
		{0.25, "0.25"},
	}
	for _, tt := range tests {
		if got := c.Format(tt.v); got != tt.want {
			t.Errorf("Format(%f) = %q, want %q", tt.v, got, tt.want)
		}
	}
}

func TestFormatters(t *testing.T) {
	tests := []struct {
		name string
		fn   DisplayFunc
		v    float32
		want string
	}{
		{"switch on", Switch("Invert", "Normal"), 0.75, "Invert"},
		{"switch off", Switch("Invert", "Normal"), 0.5, "Normal"},
		{"on off", OnOff, 1, "On"},
		{"percent", Percent, 0.42, "42%"},
		{"unity dB", Decibels, 1, "0.0"},
		{"half dB", Decibels, 0.5, "-6.0"},
		{"silent dB", Decibels, 0, "-inf"},
		{"count", ScaledInt("%d", 20), 0.1, "2"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.fn(tt.v); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		spec    ControlSpec
		wantErr bool
	}{
		{"ok", ControlSpec{Name: "Gain", Default: 0.5}, false},
		{"unnamed", ControlSpec{Default: 0.5}, true},
		{"default high", ControlSpec{Name: "Gain", Default: 1.5}, true},
		{"default low", ControlSpec{Name: "Gain", Default: -0.1}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.spec.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestDefaultsAndClone(t *testing.T) {
	controls := []ControlSpec{
		{Name: "A", Default: 0.2},
		{Name: "B", Default: 0.8},
	}
	d := Defaults(controls)
	if len(d) != 2 || d[0] != 0.2 || d[1] != 0.8 {
		t.Errorf("Defaults = %v", d)
	}

	p := Preset{Name: "P", Values: []float32{0.1, 0.2}}
	c := p.Clone()
	c.Values[0] = 0.9
	if p.Values[0] != 0.1 {
		t.Error("Clone shares storage")
	}
}
