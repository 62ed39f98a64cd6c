package bridge

import (
	"math"
	"sync"
	"testing"
)

func TestSetGet(t *testing.T) {
	b := New(3)
	if b.Len() != 3 {
		t.Fatalf("Len() = %d", b.Len())
	}

	b.Set(1, 0.75)
	if got := b.Get(1); got != 0.75 {
		t.Errorf("Get(1) = %f, want 0.75", got)
	}
	if got := b.Get(0); got != 0 {
		t.Errorf("untouched slot = %f", got)
	}
}

func TestOutOfRange(t *testing.T) {
	b := New(2)
	b.Set(0, 0.5)
	b.Set(1, 0.25)

	b.Set(-1, 1)
	b.Set(2, 1)
	b.Set(100, 1)

	if b.Get(0) != 0.5 || b.Get(1) != 0.25 {
		t.Error("out-of-range Set modified a valid slot")
	}
	for _, i := range []int{-1, 2, 100} {
		if got := b.Get(i); got != 0 {
			t.Errorf("Get(%d) = %f, want 0", i, got)
		}
	}

	empty := New(-4)
	if empty.Len() != 0 {
		t.Errorf("negative count gave %d slots", empty.Len())
	}
}

func TestSetThenLatch(t *testing.T) {
	b := New(4)
	b.Publish([]float32{0.1, 0.2, 0.3, 0.4})

	b.Set(2, 0.9)

	dst := make([]float32, 4)
	b.Latch(dst)

	want := []float32{0.1, 0.2, 0.9, 0.4}
	for i := range want {
		if dst[i] != want[i] {
			t.Errorf("latched[%d] = %f, want %f", i, dst[i], want[i])
		}
	}
}

func TestPublishLengthMismatch(t *testing.T) {
	b := New(2)
	b.Publish([]float32{0.5, 0.6, 0.7})
	if b.Get(0) != 0.5 || b.Get(1) != 0.6 {
		t.Error("Publish did not store the overlapping values")
	}

	b.Publish([]float32{0.1})
	if b.Get(0) != 0.1 || b.Get(1) != 0.6 {
		t.Error("short Publish touched the trailing slot")
	}

	dst := []float32{9, 9, 9}
	b.Latch(dst)
	if dst[2] != 9 {
		t.Error("Latch wrote past the bridge length")
	}
}

func TestSpecialValues(t *testing.T) {
	b := New(1)
	for _, v := range []float32{float32(math.Inf(1)), -0.0, math.MaxFloat32, math.SmallestNonzeroFloat32} {
		b.Set(0, v)
		if got := b.Get(0); math.Float32bits(got) != math.Float32bits(v) {
			t.Errorf("round trip of %g gave %g", v, got)
		}
	}
}

// Concurrent writer and reader must only ever observe values the writer
// actually stored.
func TestConcurrentNoTearing(t *testing.T) {
	const slots = 8
	b := New(slots)
	valid := map[uint32]bool{math.Float32bits(0): true}
	values := []float32{0.125, 0.5, 0.875, 1, 0.333}
	for _, v := range values {
		valid[math.Float32bits(v)] = true
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for n := 0; n < 20000; n++ {
			b.Set(n%slots, values[n%len(values)])
		}
	}()

	dst := make([]float32, slots)
	for n := 0; n < 2000; n++ {
		b.Latch(dst)
		for i, v := range dst {
			if !valid[math.Float32bits(v)] {
				t.Fatalf("slot %d held a value never written: %g", i, v)
			}
		}
	}
	wg.Wait()
}

func BenchmarkLatch(b *testing.B) {
	br := New(64)
	dst := make([]float32, 64)
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		br.Latch(dst)
	}
}
