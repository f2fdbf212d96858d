// SPDX-License-Identifier: EPL-2.0

package audio

import "errors"

var (
	ErrInvalidDstSize    = errors.New("dst size must be multiple of channels")
	ErrEmptyAsset        = errors.New("asset has no channels")
	ErrInvalidSampleRate = errors.New("sample rate must be positive")
	ErrRaggedChannels    = errors.New("asset channels differ in length")
	ErrUnknownFormat     = errors.New("unknown audio format")
)
