package main

import (
	"bytes"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-audio/wav"
	"go.uber.org/multierr"
)

func TestParamList(t *testing.T) {
	p := paramList{}
	for _, s := range []string{"0=0.5", "3=1"} {
		if err := p.Set(s); err != nil {
			t.Fatalf("Set(%q): %v", s, err)
		}
	}
	if p[0] != 0.5 || p[3] != 1 {
		t.Errorf("params = %v", p)
	}
	if p.String() != "0=0.5,3=1" {
		t.Errorf("String() = %q", p.String())
	}
	for _, bad := range []string{"0.5", "x=1", "1=y"} {
		if err := p.Set(bad); err == nil {
			t.Errorf("Set(%q) accepted", bad)
		}
	}
}

func TestTestTone(t *testing.T) {
	o := defaultOptions()
	o.SampleRate = 8000
	o.Frequency = 2000
	o.Amplitude = 0.5
	tone, err := testTone(o, 4)
	if err != nil {
		t.Fatal(err)
	}
	want := []float64{0, 0.5, 0, -0.5}
	for i := range want {
		if math.Abs(tone[i]-want[i]) > 1e-9 {
			t.Fatalf("tone = %v, want %v", tone, want)
		}
	}
	if _, err := testTone(o, 0); err == nil {
		t.Error("expected error for empty tone")
	}
}

func TestNewLogger(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "render.log")
	log, err := newLogger(path, true)
	if err != nil {
		t.Fatalf("newLogger: %v", err)
	}
	log.Debug("opened %s", "oscillate")
	if err := log.Sync(); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "opened oscillate") || !strings.Contains(string(data), "vst2render") {
		t.Errorf("log file = %q", data)
	}

	if _, err := newLogger(filepath.Join(path, "nested.log"), false); err == nil {
		t.Error("expected error when the log directory is a file")
	}
}

func TestValidate(t *testing.T) {
	o := defaultOptions()
	if err := o.validate(); err != nil {
		t.Fatalf("defaults invalid: %v", err)
	}

	o.Plugin = "nope"
	o.SampleRate = 0
	o.Note = 200
	if n := len(multierr.Errors(o.validate())); n != 3 {
		t.Errorf("got %d errors, want 3", n)
	}
}

func TestRun(t *testing.T) {
	for _, name := range pluginNames() {
		t.Run(name, func(t *testing.T) {
			o := defaultOptions()
			o.Plugin = name
			o.SampleRate = 8000
			o.BlockSize = 100
			o.Seconds = 0.25
			o.Output = filepath.Join(t.TempDir(), name+".wav")
			if name == "oscillate" {
				o.Unison = 0.1
				o.Params = map[int32]float32{0: 0}
			}

			var stdout bytes.Buffer
			if err := run(o, &stdout); err != nil {
				t.Fatalf("run: %v", err)
			}
			if !strings.Contains(stdout.String(), "ch1:") {
				t.Errorf("missing analysis:\n%s", stdout.String())
			}

			f, err := os.Open(o.Output)
			if err != nil {
				t.Fatal(err)
			}
			defer f.Close()
			dec := wav.NewDecoder(f)
			if !dec.IsValidFile() {
				t.Fatal("invalid WAV file")
			}
			buf, err := dec.FullPCMBuffer()
			if err != nil {
				t.Fatal(err)
			}
			if dec.SampleRate != 8000 || dec.NumChans != 2 || dec.BitDepth != bitDepth {
				t.Errorf("format = %d Hz, %d ch, %d bit", dec.SampleRate, dec.NumChans, dec.BitDepth)
			}
			if got := len(buf.Data); got != 2*2000 {
				t.Errorf("samples = %d", got)
			}
			loud := false
			for _, s := range buf.Data {
				if s != 0 {
					loud = true
					break
				}
			}
			if !loud {
				t.Error("render is silent")
			}
		})
	}
}

func TestRunRejectsBadParameter(t *testing.T) {
	o := defaultOptions()
	o.Plugin = "utility"
	o.Output = filepath.Join(t.TempDir(), "x.wav")
	o.Seconds = 0.01
	o.Params = map[int32]float32{9: 1}
	if err := run(o, &bytes.Buffer{}); err == nil {
		t.Error("expected out-of-range parameter error")
	}
}
