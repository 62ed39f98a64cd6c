// Package param describes the automatable controls of a plugin and the
// presets built from them.
package param

import (
	"fmt"
	"slices"
)

// DisplayFunc renders a normalized control value for the host's
// parameter display.
type DisplayFunc func(v float32) string

// ControlSpec describes one automatable control. Values are normalized
// to [0, 1] unless the control documents otherwise.
type ControlSpec struct {
	Name          string
	Label         string
	ShortLabel    string
	CategoryLabel string
	Default       float32

	// Display is optional; controls without it show the value with two
	// decimal digits.
	Display DisplayFunc
}

// Format returns the display string for v.
func (c *ControlSpec) Format(v float32) string {
	if c.Display != nil {
		return c.Display(v)
	}
	return DefaultDisplay(v)
}

// HasCustomDisplay reports whether the control carries its own formatter.
func (c *ControlSpec) HasCustomDisplay() bool {
	return c.Display != nil
}

// Preset is a named snapshot of every control value.
type Preset struct {
	Name   string
	Values []float32
}

// Clone returns a deep copy of p.
func (p Preset) Clone() Preset {
	return Preset{Name: p.Name, Values: slices.Clone(p.Values)}
}

// Defaults returns the default value of every control in order.
func Defaults(controls []ControlSpec) []float32 {
	out := make([]float32, len(controls))
	for i := range controls {
		out[i] = controls[i].Default
	}
	return out
}

// Validate checks a single control.
func (c *ControlSpec) Validate() error {
	if c.Name == "" {
		return fmt.Errorf("control has no name")
	}
	if c.Default < 0 || c.Default > 1 {
		return fmt.Errorf("control %q: default %g outside [0, 1]", c.Name, c.Default)
	}
	return nil
}

// Builder provides a fluent API for creating controls
type Builder struct {
	spec ControlSpec
}

// New starts a control with the given name
func New(name string) *Builder {
	return &Builder{spec: ControlSpec{Name: name}}
}

// Label sets the unit label shown next to the value
func (b *Builder) Label(label string) *Builder {
	b.spec.Label = label
	return b
}

// ShortLabel sets the abbreviated label
func (b *Builder) ShortLabel(label string) *Builder {
	b.spec.ShortLabel = label
	return b
}

// Category sets the category label
func (b *Builder) Category(label string) *Builder {
	b.spec.CategoryLabel = label
	return b
}

// Default sets the normalized default value
func (b *Builder) Default(v float32) *Builder {
	b.spec.Default = v
	return b
}

// Display sets a custom formatter
func (b *Builder) Display(fn DisplayFunc) *Builder {
	b.spec.Display = fn
	return b
}

// Build returns the finished control
func (b *Builder) Build() ControlSpec {
	return b.spec
}
