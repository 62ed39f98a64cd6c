package plugin

import (
	"github.com/justyntemme/vst2go/pkg/framework/process"
)

// ProcessFloat32 renders one block of single-precision audio.
func (p *Instance) ProcessFloat32(in, out [][]float32, frames int32) {
	render(p, in, out, int(frames))
}

// ProcessFloat64 renders one block of double-precision audio.
func (p *Instance) ProcessFloat64(in, out [][]float64, frames int32) {
	render(p, in, out, int(frames))
}

// render is the single render path behind both sample formats. It never
// blocks and, once the block buffers have grown to the host's block size,
// never allocates.
func render[T process.Sample](p *Instance, in, out [][]T, frames int) {
	p.checkOpen("process")
	if frames <= 0 {
		return
	}

	if p.bypass.Load() {
		if p.engine != nil {
			process.Clear(out, frames)
		} else {
			process.PassThrough(in, out, frames)
		}
		return
	}

	p.bridge.Latch(p.values)

	b := p.block
	b.Resize(frames)
	b.SampleRate = p.sampleRate
	b.Controls = p.values

	if p.engine != nil {
		b.Input = p.engine.Render(p.values, frames)
		if p.desc.Processor == nil {
			process.Store(out, b.Input, frames)
			return
		}
	} else {
		process.Load(b.Input, in, frames)
	}

	p.desc.Processor.Process(b)
	process.Store(out, b.Output, frames)
}
