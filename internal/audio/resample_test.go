package audio

import (
	"math"
	"testing"
	"time"
)

func TestChunkSamplesExact(t *testing.T) {
	tests := []struct {
		rate     int
		duration time.Duration
		want     int
	}{
		{44100, 2 * time.Second, 88200},
		{44100, time.Second, 44100},
		{16000, 2 * time.Second, 32000},
		{48000, 500 * time.Millisecond, 24000},
	}

	for _, tt := range tests {
		cfg := CaptureConfig{SampleRate: tt.rate, ChunkDuration: tt.duration}
		if got := cfg.ChunkSamples(); got != tt.want {
			t.Errorf("ChunkSamples(%d Hz, %v) = %d, want %d", tt.rate, tt.duration, got, tt.want)
		}
	}
}

func TestResampleLength(t *testing.T) {
	in := make([]float32, 88200) // 2s at 44.1kHz
	out := Resample(in, 44100, 16000)

	want := len(in) * 16000 / 44100
	if len(out) != want {
		t.Errorf("Resample() output length = %d, want %d", len(out), want)
	}
}

func TestResampleSilenceStaysSilent(t *testing.T) {
	in := make([]float32, 44100)
	out := Resample(in, 44100, 16000)

	for i, s := range out {
		if s != 0 {
			t.Fatalf("Resample() of silence produced non-zero sample %v at index %d", s, i)
		}
	}
}

func TestResampleDeterministic(t *testing.T) {
	in := make([]float32, 4410)
	for i := range in {
		in[i] = float32(math.Sin(2 * math.Pi * 440 * float64(i) / 44100))
	}

	a := Resample(in, 44100, 16000)
	b := Resample(in, 44100, 16000)

	if len(a) != len(b) {
		t.Fatalf("Resample() lengths differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("Resample() not deterministic at index %d: %v vs %v", i, a[i], b[i])
		}
	}
}

func TestResampleIdentity(t *testing.T) {
	in := []float32{0.1, 0.2, 0.3, 0.4}
	out := Resample(in, 16000, 16000)

	if len(out) != len(in) {
		t.Fatalf("Resample() identity length = %d, want %d", len(out), len(in))
	}
	for i := range in {
		if out[i] != in[i] {
			t.Errorf("Resample() identity changed sample %d: %v -> %v", i, in[i], out[i])
		}
	}
}

func TestQuantizeClamps(t *testing.T) {
	in := []float32{0, 0.5, -0.5, 1.5, -1.5, 1.0}
	out := Quantize(in)

	if out[0] != 0 {
		t.Errorf("Quantize(0) = %d, want 0", out[0])
	}
	if out[3] != 32767 {
		t.Errorf("Quantize(1.5) = %d, want 32767 (clamped)", out[3])
	}
	if out[4] != -32767 {
		t.Errorf("Quantize(-1.5) = %d, want -32767 (clamped)", out[4])
	}
	if out[5] != 32767 {
		t.Errorf("Quantize(1.0) = %d, want 32767", out[5])
	}
}

func TestDequantizeRange(t *testing.T) {
	in := []int16{0, 16384, -16384, 32767, -32768}
	out := Dequantize(in)

	for i, s := range out {
		if s < -1.0 || s > 1.0 {
			t.Errorf("Dequantize()[%d] = %v, outside [-1, 1]", i, s)
		}
	}
	if out[0] != 0 {
		t.Errorf("Dequantize(0) = %v, want 0", out[0])
	}
}

func TestChunkDuration(t *testing.T) {
	c := Chunk{Samples: make([]float32, 88200), SampleRate: 44100}
	if got := c.Duration(); got != 2*time.Second {
		t.Errorf("Duration() = %v, want 2s", got)
	}

	var zero Chunk
	if got := zero.Duration(); got != 0 {
		t.Errorf("Duration() of zero chunk = %v, want 0", got)
	}
}
