package plugin

import (
	"errors"
	"fmt"

	"go.uber.org/multierr"

	"github.com/justyntemme/vst2go/pkg/framework/process"
)

// Chain runs processors in series. Each stage reads the previous stage's
// output as its input; the last stage leaves its result in Output.
type Chain struct {
	name   string
	stages []Processor
	names  []string
	bypass []bool
}

// NewChain creates an empty chain.
func NewChain(name string) *Chain {
	return &Chain{name: name}
}

// Name returns the chain name
func (c *Chain) Name() string {
	return c.name
}

// Add appends a stage.
func (c *Chain) Add(name string, p Processor) *Chain {
	c.stages = append(c.stages, p)
	c.names = append(c.names, name)
	c.bypass = append(c.bypass, false)
	return c
}

// AddFunc appends a function stage.
func (c *Chain) AddFunc(name string, fn func(b *process.Block)) *Chain {
	return c.Add(name, ProcessorFunc(fn))
}

// Count returns the number of stages
func (c *Chain) Count() int {
	return len(c.stages)
}

// Stages returns the stage names in order
func (c *Chain) Stages() []string {
	return c.names
}

// SetBypass skips the named stage. It reports false if no stage has that
// name. Call it from the control context only.
func (c *Chain) SetBypass(name string, bypass bool) bool {
	for i, n := range c.names {
		if n == name {
			c.bypass[i] = bypass
			return true
		}
	}
	return false
}

// Process implements Processor. Stages swap Input and Output between
// them, so a stage may be handed the previous stage's buffers.
func (c *Chain) Process(b *process.Block) {
	ran := false
	for i, s := range c.stages {
		if c.bypass[i] {
			continue
		}
		if ran {
			b.Input, b.Output = b.Output, b.Input
		}
		s.Process(b)
		ran = true
	}
	if !ran {
		b.PassThrough()
	}
}

// Initialize forwards to every stage that implements Initializer.
func (c *Chain) Initialize(sampleRate float64, maxBlockSize int) error {
	var err error
	for i, s := range c.stages {
		if ini, ok := s.(Initializer); ok {
			if e := ini.Initialize(sampleRate, maxBlockSize); e != nil {
				err = multierr.Append(err, fmt.Errorf("%s/%s: %w", c.name, c.names[i], e))
			}
		}
	}
	return err
}

// Reset forwards to every stage that implements Resetter.
func (c *Chain) Reset() {
	for _, s := range c.stages {
		if r, ok := s.(Resetter); ok {
			r.Reset()
		}
	}
}

// ChainBuilder collects stages and reports every problem at Build.
type ChainBuilder struct {
	chain *Chain
	err   error
}

// NewChainBuilder starts a chain.
func NewChainBuilder(name string) *ChainBuilder {
	return &ChainBuilder{chain: NewChain(name)}
}

// With adds a stage.
func (b *ChainBuilder) With(name string, p Processor) *ChainBuilder {
	if p == nil {
		b.err = multierr.Append(b.err, fmt.Errorf("stage %q: processor cannot be nil", name))
		return b
	}
	b.chain.Add(name, p)
	return b
}

// WithFunc adds a function stage.
func (b *ChainBuilder) WithFunc(name string, fn func(*process.Block)) *ChainBuilder {
	if fn == nil {
		b.err = multierr.Append(b.err, fmt.Errorf("stage %q: function cannot be nil", name))
		return b
	}
	b.chain.AddFunc(name, fn)
	return b
}

// Build returns the chain or every error collected so far.
func (b *ChainBuilder) Build() (*Chain, error) {
	if b.chain.Count() == 0 {
		b.err = multierr.Append(b.err, errors.New("chain is empty"))
	}
	if b.err != nil {
		return nil, fmt.Errorf("chain %s: %w", b.chain.name, b.err)
	}
	return b.chain, nil
}
