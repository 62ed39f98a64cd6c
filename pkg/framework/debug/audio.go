package debug

import (
	"fmt"
	"math"

	vecmath "github.com/cwbudde/algo-vecmath"
)

// AnalysisResult summarises one channel of rendered audio.
type AnalysisResult struct {
	Frames         int
	Peak           float64
	RMS            float64
	DC             float64
	ClippedSamples int
	NaNCount       int
	Silent         bool
}

// Clipping thresholds used by Analyze.
const (
	ClipThreshold    = 0.999
	SilenceThreshold = 1e-4
)

// Analyze measures peak, RMS and DC offset of buffer and counts clipped or
// non-finite samples. Non-finite samples are excluded from the statistics.
func Analyze(buffer []float64) AnalysisResult {
	result := AnalysisResult{Frames: len(buffer)}
	if len(buffer) == 0 {
		result.Silent = true
		return result
	}

	var sum, sumSquares float64
	finite := 0
	for _, s := range buffer {
		if math.IsNaN(s) || math.IsInf(s, 0) {
			result.NaNCount++
			continue
		}
		if math.Abs(s) >= ClipThreshold {
			result.ClippedSamples++
		}
		sum += s
		sumSquares += s * s
		finite++
	}

	if result.NaNCount == 0 {
		result.Peak = vecmath.MaxAbs(buffer)
	} else {
		for _, s := range buffer {
			if a := math.Abs(s); !math.IsNaN(s) && !math.IsInf(s, 0) && a > result.Peak {
				result.Peak = a
			}
		}
	}

	if finite > 0 {
		result.RMS = math.Sqrt(sumSquares / float64(finite))
		result.DC = sum / float64(finite)
	}
	result.Silent = result.RMS < SilenceThreshold
	return result
}

// String renders the result on one line.
func (r AnalysisResult) String() string {
	return fmt.Sprintf("frames=%d peak=%.4f rms=%.4f dc=%.5f clipped=%d nan=%d silent=%v",
		r.Frames, r.Peak, r.RMS, r.DC, r.ClippedSamples, r.NaNCount, r.Silent)
}

// Problems lists human readable issues found in r, or nothing for a
// healthy buffer.
func (r AnalysisResult) Problems(name string) []string {
	var issues []string
	if r.NaNCount > 0 {
		issues = append(issues, fmt.Sprintf("%s: %d non-finite samples", name, r.NaNCount))
	}
	if r.ClippedSamples > 0 {
		issues = append(issues, fmt.Sprintf("%s: %d clipped samples (peak %.3f)", name, r.ClippedSamples, r.Peak))
	}
	if math.Abs(r.DC) > 0.01 {
		issues = append(issues, fmt.Sprintf("%s: DC offset %.4f", name, r.DC))
	}
	return issues
}
