package process

// Sample is a host sample format
type Sample interface {
	~float32 | ~float64
}

// Load copies up to frames samples per channel from src into dst,
// zero-filling destination channels or frames the source lacks.
func Load[T Sample](dst [][]float64, src [][]T, frames int) {
	for c := range dst {
		d := dst[c][:min(frames, len(dst[c]))]
		var s []T
		if c < len(src) {
			s = src[c]
		}
		n := min(len(d), len(s))
		for i := 0; i < n; i++ {
			d[i] = float64(s[i])
		}
		clear(d[n:])
	}
}

// Store writes up to frames samples per channel from src into dst.
// Destination channels without a source channel are zeroed.
func Store[T Sample](dst [][]T, src [][]float64, frames int) {
	for c := range dst {
		d := dst[c][:min(frames, len(dst[c]))]
		var s []float64
		if c < len(src) {
			s = src[c]
		}
		n := min(len(d), len(s))
		for i := 0; i < n; i++ {
			d[i] = T(s[i])
		}
		clear(d[n:])
	}
}

// PassThrough copies in to out in the host format, silencing output
// channels that have no input.
func PassThrough[T Sample](in, out [][]T, frames int) {
	for c := range out {
		d := out[c][:min(frames, len(out[c]))]
		n := 0
		if c < len(in) {
			n = copy(d, in[c])
		}
		clear(d[n:])
	}
}

// Clear zeros frames samples of every output channel.
func Clear[T Sample](out [][]T, frames int) {
	for c := range out {
		clear(out[c][:min(frames, len(out[c]))])
	}
}
