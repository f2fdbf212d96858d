// SPDX-License-Identifier: EPL-2.0

package audmix

import (
	"github.com/ik5/audmix/audio"
)

// firstPresent resolves a logical track from its candidates in order.
func firstPresent(candidates ...*audio.Asset) *audio.Asset {
	for _, a := range candidates {
		if a != nil && a.Validate() == nil && a.Frames() > 0 {
			return a
		}
	}
	return nil
}

// conform returns a private copy of a at sampleRate. Every render works on
// such copies so callers can reuse their assets concurrently.
func conform(a *audio.Asset, sampleRate int) (*audio.Asset, error) {
	if a == nil {
		return nil, nil
	}
	return audio.Resample(a, sampleRate)
}

func outputChannels(assets ...*audio.Asset) int {
	channels := 1
	for _, a := range assets {
		if a != nil {
			channels = max(channels, a.Channels())
		}
	}
	return channels
}
