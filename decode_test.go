// SPDX-License-Identifier: EPL-2.0

package audmix

import (
	"errors"
	"math"
	"slices"
	"testing"

	"github.com/ik5/audmix/audio"
	"github.com/ik5/audmix/internal/audiotest"
)

func TestDefaultRegistry(t *testing.T) {
	t.Parallel()

	want := []string{"aiff", "mp3", "ogg", "wav"}
	if got := DefaultRegistry().Formats(); !slices.Equal(got, want) {
		t.Errorf("Formats() = %v, want %v", got, want)
	}
}

func TestDecode_WAV(t *testing.T) {
	t.Parallel()

	src := audiotest.Tone(rate, 2, 0.25, 440, 0.8)

	for _, decode := range []func([]byte) (*audio.Asset, error){
		Decode,
		func(b []byte) (*audio.Asset, error) { return DecodeFormat("wav", b) },
	} {
		got, err := decode(audiotest.WAV(t, src))
		if err != nil {
			t.Fatalf("decode error = %v", err)
		}
		if got.SampleRate != rate || got.Channels() != 2 || got.Frames() != src.Frames() {
			t.Fatalf("got %d Hz %d ch %d frames, want %d Hz 2 ch %d frames",
				got.SampleRate, got.Channels(), got.Frames(), rate, src.Frames())
		}
		for c := range src.Samples {
			for i, v := range src.Samples[c] {
				if d := math.Abs(float64(got.Samples[c][i] - v)); d > 1.0/32767 {
					t.Fatalf("sample [%d][%d] = %v, want %v", c, i, got.Samples[c][i], v)
				}
			}
		}
	}
}

func TestDecode_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		data []byte
		want error
	}{
		{"empty", nil, audio.ErrUnknownFormat},
		{"text", []byte("just some text, not audio"), audio.ErrUnknownFormat},
		{"truncated wav", []byte("RIFF\x24\x00\x00\x00WAVEfmt "), ErrDecode},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := Decode(tt.data)
			if !errors.Is(err, tt.want) {
				t.Fatalf("Decode() error = %v, want %v", err, tt.want)
			}
			if !errors.Is(err, ErrDecode) {
				t.Errorf("Decode() error = %v, want %v", err, ErrDecode)
			}
		})
	}
}

func TestDecodeFormat_Unknown(t *testing.T) {
	t.Parallel()

	_, err := DecodeFormat("flac", []byte("fLaC"))
	if !errors.Is(err, audio.ErrUnknownFormat) || !errors.Is(err, ErrDecode) {
		t.Errorf("DecodeFormat() error = %v", err)
	}
}

func TestEncode(t *testing.T) {
	t.Parallel()

	if _, err := Encode(nil); !errors.Is(err, ErrEncode) {
		t.Errorf("Encode(nil) error = %v, want %v", err, ErrEncode)
	}

	data, err := Encode(audiotest.Silence(rate, 1, 0.5))
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	if len(data) != 44+rate/2*2 {
		t.Errorf("len = %d, want %d", len(data), 44+rate/2*2)
	}
}
