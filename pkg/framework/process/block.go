// Package process provides the render context handed to a plugin's
// processing rule and the sample-format glue around it.
package process

// Block is the render context for one host process call. Input and
// Output hold one slice of Frames samples per channel. For instruments
// Input is the voice engine's mix bus.
type Block struct {
	Input      [][]float64
	Output     [][]float64
	Frames     int
	SampleRate float64

	// Controls is the latched control vector for this block
	Controls []float32

	inBuf    [][]float64
	outBuf   [][]float64
	work     []float64
	frameIn  []float64
	frameOut []float64
}

// NewBlock creates a block with pre-allocated buffers
func NewBlock(channels, maxFrames int) *Block {
	b := &Block{
		inBuf:    make([][]float64, channels),
		outBuf:   make([][]float64, channels),
		frameIn:  make([]float64, channels),
		frameOut: make([]float64, channels),
	}
	b.grow(maxFrames)
	b.Input = b.inBuf
	b.Output = b.outBuf
	return b
}

func (b *Block) grow(frames int) {
	for c := range b.inBuf {
		b.inBuf[c] = make([]float64, frames)
		b.outBuf[c] = make([]float64, frames)
	}
	b.work = make([]float64, frames)
}

// Resize prepares the block for frames samples and resets Input and
// Output to the block's own buffers. Buffers only grow.
func (b *Block) Resize(frames int) {
	if frames < 0 {
		frames = 0
	}
	if frames > len(b.work) {
		b.grow(frames)
	}
	b.Frames = frames
	for c := range b.inBuf {
		b.inBuf[c] = b.inBuf[c][:frames]
		b.outBuf[c] = b.outBuf[c][:frames]
	}
	b.Input = b.inBuf
	b.Output = b.outBuf
}

// NumChannels returns the number of output channels
func (b *Block) NumChannels() int {
	return len(b.Output)
}

// Param returns control i of the latched vector, 0 when out of range
func (b *Block) Param(i int) float64 {
	if i < 0 || i >= len(b.Controls) {
		return 0
	}
	return float64(b.Controls[i])
}

// WorkBuffer returns scratch space sized to the current block
func (b *Block) WorkBuffer() []float64 {
	return b.work[:b.Frames]
}

// PassThrough copies input to output
func (b *Block) PassThrough() {
	n := min(len(b.Input), len(b.Output))
	for c := 0; c < n; c++ {
		copy(b.Output[c], b.Input[c])
	}
	for c := n; c < len(b.Output); c++ {
		clear(b.Output[c])
	}
}

// Clear zeros the output buffers
func (b *Block) Clear() {
	for c := range b.Output {
		clear(b.Output[c])
	}
}

// ProcessChannels calls fn for every channel present on both sides
func (b *Block) ProcessChannels(fn func(ch int, input, output []float64)) {
	n := min(len(b.Input), len(b.Output))
	for c := 0; c < n; c++ {
		fn(c, b.Input[c], b.Output[c])
	}
}

// ProcessSamples calls fn once per frame with that frame's samples across
// all channels. Whatever fn writes to outputs lands in Output.
func (b *Block) ProcessSamples(fn func(i int, inputs, outputs []float64)) {
	n := min(len(b.Input), len(b.Output), len(b.frameIn))
	inputs := b.frameIn[:n]
	outputs := b.frameOut[:n]

	for i := 0; i < b.Frames; i++ {
		for c := 0; c < n; c++ {
			inputs[c] = b.Input[c][i]
			outputs[c] = 0
		}
		fn(i, inputs, outputs)
		for c := 0; c < n; c++ {
			b.Output[c][i] = outputs[c]
		}
	}
}
