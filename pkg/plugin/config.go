package plugin

import (
	"github.com/justyntemme/vst2go/pkg/framework/debug"
	"github.com/justyntemme/vst2go/pkg/framework/voice"
)

// Config controls how an Instance is built
type Config struct {
	// MaxVoices sizes the voice arena of instruments
	MaxVoices int
	// Stealing selects the eviction policy once the arena is full
	Stealing voice.StealingMode

	// DefaultSampleRate and DefaultBlockSize are used when the host does
	// not answer the sample rate or block size queries
	DefaultSampleRate float64
	DefaultBlockSize  int

	Logger *debug.Logger
}

// DefaultConfig returns the configuration used by New without options
func DefaultConfig() Config {
	return Config{
		MaxVoices:         voice.DefaultMaxVoices,
		Stealing:          voice.StealReleasingFirst,
		DefaultSampleRate: 44100,
		DefaultBlockSize:  voice.DefaultMaxBlockSize,
		Logger:            debug.Default(),
	}
}

// Option configures an Instance
type Option func(*Config)

// WithMaxVoices sets the voice arena size
func WithMaxVoices(n int) Option {
	return func(c *Config) {
		if n > 0 {
			c.MaxVoices = n
		}
	}
}

// WithStealingMode sets the voice stealing policy
func WithStealingMode(m voice.StealingMode) Option {
	return func(c *Config) {
		c.Stealing = m
	}
}

// WithLogger sets the logger for control-context messages
func WithLogger(l *debug.Logger) Option {
	return func(c *Config) {
		if l != nil {
			c.Logger = l
		}
	}
}

// WithDefaults sets the fallback sample rate and block size
func WithDefaults(sampleRate float64, blockSize int) Option {
	return func(c *Config) {
		if sampleRate > 0 {
			c.DefaultSampleRate = sampleRate
		}
		if blockSize > 0 {
			c.DefaultBlockSize = blockSize
		}
	}
}
