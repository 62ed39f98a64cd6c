package debug

import (
	"math"
	"strings"
	"testing"
	"time"
)

func TestAnalyze(t *testing.T) {
	t.Run("Sine", func(t *testing.T) {
		buf := make([]float64, 1000)
		for i := range buf {
			buf[i] = 0.5 * math.Sin(2*math.Pi*float64(i)/100)
		}
		r := Analyze(buf)
		if math.Abs(r.Peak-0.5) > 1e-3 {
			t.Errorf("Peak = %f", r.Peak)
		}
		if math.Abs(r.RMS-0.5/math.Sqrt2) > 1e-3 {
			t.Errorf("RMS = %f", r.RMS)
		}
		if math.Abs(r.DC) > 1e-9 {
			t.Errorf("DC = %f", r.DC)
		}
		if r.Silent || len(r.Problems("sine")) != 0 {
			t.Errorf("healthy buffer flagged: %s", r)
		}
	})

	t.Run("Silent", func(t *testing.T) {
		r := Analyze(make([]float64, 64))
		if !r.Silent || r.Peak != 0 {
			t.Errorf("got %s", r)
		}
		if !Analyze(nil).Silent {
			t.Error("empty buffer not silent")
		}
	})

	t.Run("Problems", func(t *testing.T) {
		r := Analyze([]float64{1, -1, math.NaN(), 0.5})
		if r.NaNCount != 1 || r.ClippedSamples != 2 || r.Peak != 1 {
			t.Errorf("got %s", r)
		}
		issues := r.Problems("out")
		if len(issues) < 2 || !strings.HasPrefix(issues[0], "out:") {
			t.Errorf("issues = %v", issues)
		}
	})
}

func TestBlockProfiler(t *testing.T) {
	p := NewBlockProfiler(1000)
	if p.Report() != "No measurements recorded" {
		t.Error("empty report")
	}

	p.Record(500, 100*time.Millisecond)
	p.Record(500, 300*time.Millisecond)

	if p.Blocks() != 2 {
		t.Errorf("Blocks() = %d", p.Blocks())
	}
	if p.Average() != 200*time.Millisecond {
		t.Errorf("Average() = %v", p.Average())
	}
	if p.AudioDuration() != time.Second {
		t.Errorf("AudioDuration() = %v", p.AudioDuration())
	}
	if math.Abs(p.Load()-40) > 1e-9 {
		t.Errorf("Load() = %f", p.Load())
	}

	stop := p.Start(10)
	stop()
	if p.Blocks() != 3 {
		t.Error("Start/stop did not record")
	}
	if !strings.Contains(p.Report(), "blocks=3") {
		t.Errorf("Report() = %s", p.Report())
	}
}
