// SPDX-License-Identifier: EPL-2.0

package utils

import "math"

// SecondsToFrames converts a time offset into a frame index at rate,
// rounding to the nearest frame. Negative offsets map to frame 0.
func SecondsToFrames(seconds float64, rate int) int {
	if seconds <= 0 || rate <= 0 {
		return 0
	}
	return int(math.Round(seconds * float64(rate)))
}

// FramesFor returns the number of frames needed to hold seconds of audio
// at rate, rounding up.
func FramesFor(seconds float64, rate int) int {
	if seconds <= 0 || rate <= 0 {
		return 0
	}
	return int(math.Ceil(seconds*float64(rate) - 1e-9))
}

// FramesToSeconds converts a frame count at rate into seconds.
func FramesToSeconds(frames, rate int) float64 {
	if rate <= 0 {
		return 0
	}
	return float64(frames) / float64(rate)
}

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// NonNegative returns v, or 0 when v is negative or NaN.
func NonNegative(v float64) float64 {
	if v > 0 {
		return v
	}
	return 0
}
