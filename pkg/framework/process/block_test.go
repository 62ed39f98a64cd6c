package process

import (
	"testing"
)

func TestBlockResize(t *testing.T) {
	b := NewBlock(2, 4)
	b.Resize(3)
	if b.Frames != 3 || len(b.Input[0]) != 3 || len(b.Output[1]) != 3 {
		t.Fatalf("frames=%d in=%d out=%d", b.Frames, len(b.Input[0]), len(b.Output[1]))
	}

	b.Resize(16)
	if len(b.Output[0]) != 16 || len(b.WorkBuffer()) != 16 {
		t.Errorf("block did not grow: %d", len(b.Output[0]))
	}

	b.Resize(-1)
	if b.Frames != 0 || len(b.Output[0]) != 0 {
		t.Error("negative resize not clamped")
	}
}

func TestBlockPassThroughAndClear(t *testing.T) {
	b := NewBlock(2, 4)
	b.Resize(4)
	b.Input = [][]float64{{1, 2, 3, 4}}
	b.Output[1][0] = 9

	b.PassThrough()
	if b.Output[0][3] != 4 {
		t.Errorf("Output[0] = %v", b.Output[0])
	}
	if b.Output[1][0] != 0 {
		t.Error("channel without input not silenced")
	}

	b.Clear()
	for _, ch := range b.Output {
		for _, s := range ch {
			if s != 0 {
				t.Fatal("Clear left samples behind")
			}
		}
	}
}

func TestBlockParam(t *testing.T) {
	b := NewBlock(1, 1)
	b.Controls = []float32{0.5, 1}
	tests := []struct {
		index int
		want  float64
	}{
		{0, 0.5},
		{1, 1},
		{2, 0},
		{-1, 0},
	}
	for _, tt := range tests {
		if got := b.Param(tt.index); got != tt.want {
			t.Errorf("Param(%d) = %f, want %f", tt.index, got, tt.want)
		}
	}
}

func TestBlockProcessHelpers(t *testing.T) {
	b := NewBlock(2, 3)
	b.Resize(3)
	copy(b.Input[0], []float64{1, 2, 3})
	copy(b.Input[1], []float64{-1, -2, -3})

	calls := 0
	b.ProcessChannels(func(ch int, in, out []float64) {
		calls++
		for i := range in {
			out[i] = in[i] * 2
		}
	})
	if calls != 2 || b.Output[1][2] != -6 {
		t.Errorf("calls=%d out=%v", calls, b.Output)
	}

	b.ProcessSamples(func(i int, in, out []float64) {
		out[0] = in[0] + in[1]
		out[1] = float64(i)
	})
	if b.Output[0][1] != 0 || b.Output[1][2] != 2 {
		t.Errorf("ProcessSamples output %v", b.Output)
	}
}

func TestLoadStore(t *testing.T) {
	dst := [][]float64{make([]float64, 4), make([]float64, 4)}
	for i := range dst[1] {
		dst[1][i] = 7
	}
	Load(dst, [][]float32{{0.5, 0.25}}, 4)
	if dst[0][0] != 0.5 || dst[0][1] != 0.25 || dst[0][2] != 0 {
		t.Errorf("channel 0 = %v", dst[0])
	}
	if dst[1][0] != 0 {
		t.Error("missing source channel not zeroed")
	}

	out := [][]float32{make([]float32, 2)}
	Store(out, [][]float64{{1.5, -1.5, 3}}, 8)
	if out[0][0] != 1.5 || out[0][1] != -1.5 {
		t.Errorf("Store = %v", out[0])
	}

	out64 := [][]float64{{9, 9, 9}}
	Store(out64, nil, 3)
	if out64[0][2] != 0 {
		t.Error("Store without source did not clear")
	}
}

func TestGenericPassThroughAndClear(t *testing.T) {
	in := [][]float32{{1, 2, 3}}
	out := [][]float32{{0, 0, 0}, {5, 5, 5}}
	PassThrough(in, out, 2)
	if out[0][0] != 1 || out[0][1] != 2 || out[0][2] != 0 {
		t.Errorf("out[0] = %v", out[0])
	}
	if out[1][0] != 0 || out[1][1] != 0 || out[1][2] != 5 {
		t.Errorf("out[1] = %v", out[1])
	}

	d := [][]float64{{1, 1}}
	Clear(d, 10)
	if d[0][0] != 0 || d[0][1] != 0 {
		t.Errorf("Clear = %v", d[0])
	}
}
