// Command vst2render drives one of the bundled plugins the way a host
// would and writes the result to a WAV file.
//
//	vst2render -plugin oscillate -note 57 -unison 0.15 -out pad.wav
//	vst2render -plugin distortion -program 1 -freq 110 -out fuzz.wav
package main

import (
	"flag"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/justyntemme/vst2go/pkg/framework/debug"
)

// paramList collects repeated -param index=value flags.
type paramList map[int32]float32

func (p paramList) String() string {
	parts := make([]string, 0, len(p))
	for i, v := range p {
		parts = append(parts, fmt.Sprintf("%d=%g", i, v))
	}
	sort.Strings(parts)
	return strings.Join(parts, ",")
}

func (p paramList) Set(s string) error {
	idx, val, ok := strings.Cut(s, "=")
	if !ok {
		return fmt.Errorf("expected index=value, got %q", s)
	}
	i, err := strconv.ParseInt(idx, 10, 32)
	if err != nil {
		return fmt.Errorf("bad index %q: %w", idx, err)
	}
	v, err := strconv.ParseFloat(val, 32)
	if err != nil {
		return fmt.Errorf("bad value %q: %w", val, err)
	}
	p[int32(i)] = float32(v)
	return nil
}

func main() {
	opts := defaultOptions()
	params := paramList{}

	flag.StringVar(&opts.Plugin, "plugin", opts.Plugin, "plugin to render: "+strings.Join(pluginNames(), ", "))
	flag.StringVar(&opts.Output, "out", opts.Output, "output WAV file")
	flag.Float64Var(&opts.SampleRate, "sr", opts.SampleRate, "sample rate in Hz")
	flag.IntVar(&opts.BlockSize, "block", opts.BlockSize, "frames per process call")
	flag.Float64Var(&opts.Seconds, "seconds", opts.Seconds, "length of the render")
	flag.IntVar(&opts.Program, "program", opts.Program, "program to select, -1 keeps the defaults")
	flag.IntVar(&opts.Note, "note", opts.Note, "MIDI note played by instruments")
	flag.IntVar(&opts.Velocity, "velocity", opts.Velocity, "MIDI velocity played by instruments")
	flag.Float64Var(&opts.Unison, "unison", opts.Unison, "unison voices control for instruments")
	flag.Float64Var(&opts.Frequency, "freq", opts.Frequency, "test tone fed to effects")
	flag.Float64Var(&opts.Amplitude, "amp", opts.Amplitude, "test tone amplitude")
	flag.Var(params, "param", "set a control, index=value (repeatable)")
	verbose := flag.Bool("v", false, "log plugin activity")
	logFile := flag.String("log", "", "append log output to this file instead of stderr")
	flag.Parse()

	log, err := newLogger(*logFile, *verbose)
	if err != nil {
		fmt.Fprintln(os.Stderr, "vst2render:", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	opts.Params = params
	opts.Logger = log

	if err = run(opts, os.Stdout); err != nil {
		log.Error("%v", err)
		_ = log.Sync()
		os.Exit(1)
	}
}

// newLogger logs to stderr, or appends to path when it is set.
func newLogger(path string, verbose bool) (*debug.Logger, error) {
	var log *debug.Logger
	if path == "" {
		log = debug.New(os.Stderr, "vst2render", debug.FlagLevel|debug.FlagPrefix)
	} else {
		var err error
		if log, err = debug.NewFileLogger(path, "vst2render", debug.DefaultFlags); err != nil {
			return nil, err
		}
	}
	if verbose {
		log.SetLevel(debug.LogLevelDebug)
	}
	return log, nil
}
