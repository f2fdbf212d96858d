// SPDX-License-Identifier: EPL-2.0

package audiotest

import (
	"testing"

	"github.com/ik5/audmix/audio"
	"github.com/ik5/audmix/formats/wav"
)

// WAV encodes a as a 16-bit PCM file, failing the test on error.
func WAV(tb testing.TB, a *audio.Asset) []byte {
	tb.Helper()

	data, err := wav.EncodeBytes(a)
	if err != nil {
		tb.Fatalf("encoding test wav: %v", err)
	}
	return data
}

// Peak returns the largest absolute sample of a within [from, to) seconds.
func Peak(a *audio.Asset, from, to float64) float32 {
	start := max(0, int(from*float64(a.SampleRate)))
	end := min(a.Frames(), int(to*float64(a.SampleRate)))

	var peak float32
	for _, ch := range a.Samples {
		for _, v := range ch[start:max(start, end)] {
			if v < 0 {
				v = -v
			}
			peak = max(peak, v)
		}
	}
	return peak
}
