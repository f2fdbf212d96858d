// SPDX-License-Identifier: EPL-2.0

package utils

import "math"

// Float32ToInt16 quantizes a normalized sample to signed 16-bit PCM.
//
// Negative values are scaled by 32768 and non-negative values by 32767 so
// both ends of [-1, 1] reach the full int16 range. Input outside [-1, 1] is
// clamped. The result is rounded to the nearest step; no dither is applied.
func Float32ToInt16(x float32) int16 {
	if x != x { // NaN
		return 0
	}

	if x < 0 {
		if x <= -1 {
			return math.MinInt16
		}
		return int16(math.Round(float64(x) * 32768.0))
	}

	if x >= 1 {
		return math.MaxInt16
	}
	return int16(math.Round(float64(x) * 32767.0))
}

// Int16ToFloat32 is the exact inverse scaling of Float32ToInt16.
func Int16ToFloat32(v int16) float32 {
	if v < 0 {
		return float32(float64(v) / 32768.0)
	}
	return float32(float64(v) / 32767.0)
}

// IntToFloat32 normalizes a signed PCM integer of the given bit depth using
// the same asymmetric scaling as Int16ToFloat32.
func IntToFloat32(v int, bitDepth int) float32 {
	if bitDepth <= 0 || bitDepth > 32 {
		bitDepth = 16
	}
	neg := float64(int64(1) << (bitDepth - 1))
	if v < 0 {
		return float32(float64(v) / neg)
	}
	return float32(float64(v) / (neg - 1))
}
