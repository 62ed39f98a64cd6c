package plugin

import (
	"unsafe"

	"github.com/justyntemme/vst2go/pkg/framework/process"
	"github.com/justyntemme/vst2go/pkg/vst2"
)

// Processor is a plugin's per-block processing rule. It must not
// allocate, block or log.
type Processor interface {
	Process(b *process.Block)
}

// ProcessorFunc adapts a plain function to Processor
type ProcessorFunc func(b *process.Block)

// Process implements Processor
func (f ProcessorFunc) Process(b *process.Block) {
	f(b)
}

// Initializer is implemented by processors that depend on the sample rate.
// It runs at construction and whenever the sample rate or block size
// changes, always from the control context.
type Initializer interface {
	Initialize(sampleRate float64, maxBlockSize int) error
}

// Resetter is implemented by processors with internal state that must be
// cleared when processing resumes.
type Resetter interface {
	Reset()
}

// DispatchFunc lets a descriptor take over individual opcodes. It returns
// the opcode result and whether it handled the opcode.
type DispatchFunc func(op vst2.PluginOpcode, index int32, value int64, ptr unsafe.Pointer, opt float32) (int64, bool)
