// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"io"
	"math"
	"testing"
)

func TestMonoMixer_MonoPassthrough(t *testing.T) {
	t.Parallel()

	mixer := NewMonoMixer(constantSource(8000, 1, 100, 0.5))
	if mixer.Channels() != 1 {
		t.Errorf("MonoMixer.Channels() = %d, want 1", mixer.Channels())
	}

	buf := make([]float32, 10)
	n, err := mixer.ReadSamples(buf)
	if err != nil {
		t.Fatalf("ReadSamples() error = %v", err)
	}
	if n != 10 {
		t.Errorf("ReadSamples() n = %d, want 10", n)
	}
	for i := range n {
		if buf[i] != 0.5 {
			t.Errorf("buf[%d] = %v, want 0.5", i, buf[i])
		}
	}
}

func TestMonoMixer_Averages(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		channels int
		want     float32
	}{
		{"stereo", 2, 0.05},
		{"quad", 4, 0.15},
		{"5.1", 6, 0.25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			src := newGenSource(8000, tt.channels, 100, func(_, c int) float32 { return float32(c) / 10 })
			mixer := NewMonoMixer(src)

			buf := make([]float32, 16)
			n, err := mixer.ReadSamples(buf)
			if err != nil {
				t.Fatalf("ReadSamples() error = %v", err)
			}
			if n != 16 {
				t.Fatalf("ReadSamples() n = %d, want 16", n)
			}
			for i := range n {
				if math.Abs(float64(buf[i]-tt.want)) > 1e-6 {
					t.Errorf("buf[%d] = %v, want %v", i, buf[i], tt.want)
				}
			}
		})
	}
}

func TestMonoMixer_EOF(t *testing.T) {
	t.Parallel()

	mixer := NewMonoMixer(constantSource(8000, 2, 5, 0))
	buf := make([]float32, 10)

	n, err := mixer.ReadSamples(buf)
	if err != io.EOF || n != 5 {
		t.Errorf("ReadSamples() = (%d, %v), want (5, EOF)", n, err)
	}
	n, err = mixer.ReadSamples(buf)
	if err != io.EOF || n != 0 {
		t.Errorf("second ReadSamples() = (%d, %v), want (0, EOF)", n, err)
	}
}

func TestMonoMixer_EmptyBuffer(t *testing.T) {
	t.Parallel()

	n, err := NewMonoMixer(constantSource(8000, 2, 100, 0)).ReadSamples(nil)
	if n != 0 || err != nil {
		t.Errorf("ReadSamples(nil) = (%d, %v), want (0, nil)", n, err)
	}
}

func TestMonoMixer_PreservesMetadata(t *testing.T) {
	t.Parallel()

	mixer := NewMonoMixer(constantSource(44100, 2, 10, 0))
	if mixer.SampleRate() != 44100 {
		t.Errorf("SampleRate() = %d, want 44100", mixer.SampleRate())
	}
	if err := mixer.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
}

func TestMonoMixer_GrowsScratch(t *testing.T) {
	t.Parallel()

	mixer := NewMonoMixer(constantSource(8000, 8, 20000, 0.25))
	buf := make([]float32, 10000)

	n, err := mixer.ReadSamples(buf)
	if err != nil {
		t.Fatalf("ReadSamples() error = %v", err)
	}
	if n != 10000 || buf[n-1] != 0.25 {
		t.Errorf("ReadSamples() n = %d, last = %v", n, buf[n-1])
	}
}

func BenchmarkMonoMixer_StereoToMono(b *testing.B) {
	buf := make([]float32, 4096)

	b.ReportAllocs()

	for b.Loop() {
		mixer := NewMonoMixer(sineSource(44100, 2, 4096, 440))
		_, _ = mixer.ReadSamples(buf)
	}
}
