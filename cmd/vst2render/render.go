package main

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"sort"
	"unsafe"

	"github.com/cwbudde/algo-dsp/dsp/core"
	"github.com/cwbudde/algo-dsp/dsp/signal"
	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"go.uber.org/multierr"

	"github.com/justyntemme/vst2go/examples/distortion"
	"github.com/justyntemme/vst2go/examples/oscillate"
	"github.com/justyntemme/vst2go/examples/saturator"
	"github.com/justyntemme/vst2go/examples/utility"
	"github.com/justyntemme/vst2go/pkg/framework/debug"
	vst2plugin "github.com/justyntemme/vst2go/pkg/plugin"
	"github.com/justyntemme/vst2go/pkg/vst2"
)

type constructor func(host vst2.HostCallback, opts ...vst2plugin.Option) (*vst2plugin.Instance, error)

var plugins = map[string]constructor{
	"distortion": distortion.New,
	"utility":    utility.New,
	"oscillate":  oscillate.New,
	"saturator":  saturator.New,
}

func pluginNames() []string {
	names := make([]string, 0, len(plugins))
	for n := range plugins {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

const bitDepth = 16

// Options configures one render.
type Options struct {
	Plugin     string
	Output     string
	SampleRate float64
	BlockSize  int
	Seconds    float64
	Program    int
	Params     map[int32]float32

	// instruments
	Note     int
	Velocity int
	Unison   float64

	// effects
	Frequency float64
	Amplitude float64

	Logger *debug.Logger
}

func defaultOptions() Options {
	return Options{
		Plugin:     "oscillate",
		Output:     "out.wav",
		SampleRate: 44100,
		BlockSize:  512,
		Seconds:    2,
		Program:    -1,
		Note:       60,
		Velocity:   100,
		Frequency:  220,
		Amplitude:  0.5,
	}
}

func (o Options) validate() error {
	var err error
	if _, ok := plugins[o.Plugin]; !ok {
		err = multierr.Append(err, fmt.Errorf("unknown plugin %q", o.Plugin))
	}
	if o.Output == "" {
		err = multierr.Append(err, errors.New("no output file"))
	}
	if o.SampleRate <= 0 {
		err = multierr.Append(err, fmt.Errorf("sample rate must be positive: %g", o.SampleRate))
	}
	if o.BlockSize <= 0 {
		err = multierr.Append(err, fmt.Errorf("block size must be positive: %d", o.BlockSize))
	}
	if o.Seconds <= 0 {
		err = multierr.Append(err, fmt.Errorf("length must be positive: %g", o.Seconds))
	}
	if o.Note < 0 || o.Note > 127 || o.Velocity < 0 || o.Velocity > 127 {
		err = multierr.Append(err, fmt.Errorf("note %d velocity %d out of MIDI range", o.Note, o.Velocity))
	}
	return err
}

// host answers the few requests the plugins make.
type host struct {
	sampleRate float64
	blockSize  int
	updates    int
}

func (h *host) callback(op vst2.HostOpcode, _ int32, _ int64, _ unsafe.Pointer, _ float32) int64 {
	switch op {
	case vst2.HostGetSampleRate:
		return int64(h.sampleRate)
	case vst2.HostGetBlockSize:
		return int64(h.blockSize)
	case vst2.HostUpdateDisplay:
		h.updates++
		return 1
	default:
		return 0
	}
}

// run opens the plugin through the registry, renders and writes the file.
func run(o Options, stdout io.Writer) error {
	if err := o.validate(); err != nil {
		return err
	}
	log := o.Logger
	if log == nil {
		log = debug.Nop()
	}

	newPlugin := plugins[o.Plugin]
	vst2plugin.Register(func(cb vst2.HostCallback) (*vst2plugin.Instance, error) {
		return newPlugin(cb, vst2plugin.WithLogger(log), vst2plugin.WithDefaults(o.SampleRate, o.BlockSize))
	})

	h := &host{sampleRate: o.SampleRate, blockSize: o.BlockSize}
	handle, _, err := vst2plugin.Open(h.callback)
	if err != nil {
		return fmt.Errorf("open %s: %w", o.Plugin, err)
	}
	defer vst2plugin.Release(handle)

	p := vst2plugin.Lookup(handle)
	defer p.Dispatch(vst2.Close, 0, 0, nil, 0)

	p.Dispatch(vst2.Open, 0, 0, nil, 0)
	p.Dispatch(vst2.SetSampleRate, 0, 0, nil, float32(o.SampleRate))
	p.Dispatch(vst2.SetBlockSize, 0, int64(o.BlockSize), nil, 0)
	if o.Program >= 0 {
		p.Dispatch(vst2.SetProgram, 0, int64(o.Program), nil, 0)
	}
	desc := p.Descriptor()
	for i, v := range o.Params {
		if int(i) >= desc.NumParams() || i < 0 {
			return fmt.Errorf("parameter %d out of range, %s has %d", i, desc.Name, desc.NumParams())
		}
		p.SetParameter(i, v)
	}
	if desc.IsInstrument() {
		p.SetParameter(int32(len(desc.Controls)), float32(o.Unison))
	}
	p.Dispatch(vst2.MainsChanged, 0, 1, nil, 0)
	p.Dispatch(vst2.StartProcess, 0, 0, nil, 0)

	describe(p, stdout)

	total := int(o.Seconds * o.SampleRate)
	channels := p.Effect().NumOutputs
	rendered := make([][]float64, channels)
	for c := range rendered {
		rendered[c] = make([]float64, 0, total)
	}

	in := make([][]float32, channels)
	out := make([][]float32, channels)
	for c := range out {
		in[c] = make([]float32, o.BlockSize)
		out[c] = make([]float32, o.BlockSize)
	}

	var tone []float64
	if !desc.IsInstrument() {
		var err error
		if tone, err = testTone(o, total); err != nil {
			return err
		}
	}

	prof := debug.NewBlockProfiler(o.SampleRate)
	noteOff := total * 3 / 4
	played, released := false, false

	for pos := 0; pos < total; pos += o.BlockSize {
		frames := min(o.BlockSize, total-pos)

		if desc.IsInstrument() {
			if !played {
				notes(p, 0x90, o.Note, o.Velocity)
				played = true
			}
			if !released && pos+frames > noteOff {
				notes(p, 0x80, o.Note, 0)
				released = true
			}
		} else {
			for i, s := range tone[pos : pos+frames] {
				for c := range in {
					in[c][i] = float32(s)
				}
			}
		}

		stop := prof.Start(frames)
		p.ProcessFloat32(in, out, int32(frames))
		stop()

		for c := range out {
			for _, s := range out[c][:frames] {
				rendered[c] = append(rendered[c], float64(s))
			}
		}
	}
	p.Dispatch(vst2.StopProcess, 0, 0, nil, 0)
	p.Dispatch(vst2.MainsChanged, 0, 0, nil, 0)

	for c := range rendered {
		r := debug.Analyze(rendered[c])
		fmt.Fprintf(stdout, "ch%d: %s\n", c, r)
		for _, issue := range r.Problems(fmt.Sprintf("ch%d", c)) {
			log.Warn("%s", issue)
		}
	}
	fmt.Fprintln(stdout, prof.Report())

	return writeWAV(o.Output, int(o.SampleRate), rendered)
}

// testTone is the sine fed to effects, total samples long.
func testTone(o Options, total int) ([]float64, error) {
	gen := signal.NewGenerator(core.WithSampleRate(o.SampleRate))
	tone, err := gen.Sine(o.Frequency, o.Amplitude, total)
	if err != nil {
		return nil, fmt.Errorf("test tone: %w", err)
	}
	return tone, nil
}

func notes(p *vst2plugin.Instance, status byte, note, velocity int) {
	evs := vst2.NewEvents(vst2.NewMIDIEvent(0, status, byte(note), byte(velocity)))
	p.Dispatch(vst2.ProcessEvents, 0, 0, unsafe.Pointer(evs), 0)
}

// describe prints the plugin identity and every control the way a host
// would query them.
func describe(p *vst2plugin.Instance, w io.Writer) {
	var buf [vst2.MaxNameLen]byte
	query := func(op vst2.PluginOpcode, index int32, limit int) string {
		clear(buf[:])
		p.Dispatch(op, index, 0, unsafe.Pointer(&buf[0]), 0)
		return vst2.GoString(buf[:limit])
	}

	e := p.Effect()
	fmt.Fprintf(w, "%s by %s (%s, id %s, version %d)\n",
		query(vst2.GetEffectName, 0, vst2.MaxEffectNameLen),
		query(vst2.GetVendorString, 0, vst2.MaxVendorStrLen),
		p.Descriptor().Capabilities(),
		p.Descriptor().IDString(),
		e.Version)
	for i := range e.NumParams {
		fmt.Fprintf(w, "  %2d %-16s %8s %s\n", i,
			query(vst2.GetParamName, i, vst2.MaxNameLen),
			query(vst2.GetParamDisplay, i, vst2.MaxParamStrLen),
			query(vst2.GetParamLabel, i, vst2.MaxLabelLen))
	}
}

// writeWAV stores the channels as interleaved 16-bit PCM.
func writeWAV(path string, sampleRate int, channels [][]float64) (err error) {
	if len(channels) == 0 {
		return errors.New("nothing to write")
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() { err = multierr.Append(err, f.Close()) }()

	frames := len(channels[0])
	data := make([]int, frames*len(channels))
	scale := float64(int(1)<<(bitDepth-1) - 1)
	for i := range frames {
		for c := range channels {
			s := max(-1, min(channels[c][i], 1))
			data[i*len(channels)+c] = int(math.Round(s * scale))
		}
	}

	enc := wav.NewEncoder(f, sampleRate, bitDepth, len(channels), 1)
	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: len(channels), SampleRate: sampleRate},
		Data:           data,
		SourceBitDepth: bitDepth,
	}
	if err := enc.Write(buf); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return enc.Close()
}
