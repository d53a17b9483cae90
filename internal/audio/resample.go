// ============================================================================
// lectern - Lecture Capture & Translation Utility
// ============================================================================
//
// Package:     audio
// Description: Sample rate conversion and PCM quantization
// Author:      Ethan Koester-Schmidt
// Created:     2026-08-12
// License:     MIT
// ============================================================================

package audio

// Resample converts samples from one sample rate to another using linear
// interpolation. The output length is len(in)*to/from. The conversion is
// deterministic: the same input always yields the same output.
func Resample(in []float32, from, to int) []float32 {
	if from <= 0 || to <= 0 || len(in) == 0 {
		return nil
	}
	if from == to {
		out := make([]float32, len(in))
		copy(out, in)
		return out
	}

	outLen := len(in) * to / from
	out := make([]float32, outLen)
	ratio := float64(from) / float64(to)

	for i := range out {
		pos := float64(i) * ratio
		idx := int(pos)
		if idx >= len(in)-1 {
			out[i] = in[len(in)-1]
			continue
		}
		frac := float32(pos - float64(idx))
		out[i] = in[idx]*(1-frac) + in[idx+1]*frac
	}
	return out
}

// Quantize converts float32 samples in [-1, 1] to signed 16-bit PCM,
// clamping out-of-range values.
func Quantize(in []float32) []int16 {
	out := make([]int16, len(in))
	for i, s := range in {
		if s > 1.0 {
			s = 1.0
		}
		if s < -1.0 {
			s = -1.0
		}
		out[i] = int16(s * 32767)
	}
	return out
}

// Dequantize converts signed 16-bit PCM to float32 samples in [-1, 1].
func Dequantize(in []int16) []float32 {
	out := make([]float32, len(in))
	for i, s := range in {
		out[i] = float32(s) / 32768.0
	}
	return out
}
