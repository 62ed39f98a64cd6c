package debug

import (
	"fmt"
	"time"
)

// BlockProfiler accumulates render timings and relates them to the audio
// duration each block represents. It is not safe for concurrent use.
type BlockProfiler struct {
	sampleRate float64
	blocks     int
	frames     int64
	total      time.Duration
	min        time.Duration
	max        time.Duration
}

// NewBlockProfiler creates a profiler for audio rendered at sampleRate.
func NewBlockProfiler(sampleRate float64) *BlockProfiler {
	return &BlockProfiler{sampleRate: sampleRate}
}

// Start begins timing a block of frames; call the returned func when done.
func (p *BlockProfiler) Start(frames int) func() {
	start := time.Now()
	return func() {
		p.Record(frames, time.Since(start))
	}
}

// Record adds one measured block.
func (p *BlockProfiler) Record(frames int, elapsed time.Duration) {
	if p.blocks == 0 || elapsed < p.min {
		p.min = elapsed
	}
	if elapsed > p.max {
		p.max = elapsed
	}
	p.blocks++
	p.frames += int64(frames)
	p.total += elapsed
}

// Blocks returns the number of recorded blocks.
func (p *BlockProfiler) Blocks() int {
	return p.blocks
}

// Average returns the mean time per block.
func (p *BlockProfiler) Average() time.Duration {
	if p.blocks == 0 {
		return 0
	}
	return p.total / time.Duration(p.blocks)
}

// AudioDuration is the playback length of everything recorded.
func (p *BlockProfiler) AudioDuration() time.Duration {
	if p.sampleRate <= 0 {
		return 0
	}
	return time.Duration(float64(p.frames) / p.sampleRate * float64(time.Second))
}

// Load is processing time as a percentage of audio time.
func (p *BlockProfiler) Load() float64 {
	audio := p.AudioDuration()
	if audio == 0 {
		return 0
	}
	return float64(p.total) / float64(audio) * 100
}

// Report generates a short performance summary.
func (p *BlockProfiler) Report() string {
	if p.blocks == 0 {
		return "No measurements recorded"
	}
	return fmt.Sprintf("blocks=%d audio=%v cpu=%v avg=%v min=%v max=%v load=%.2f%%",
		p.blocks, p.AudioDuration(), p.total, p.Average(), p.min, p.max, p.Load())
}
