// SPDX-License-Identifier: EPL-2.0

package render

import "errors"

var (
	ErrInvalidFormat      = errors.New("invalid output format")
	ErrSampleRateMismatch = errors.New("track sample rate differs from output")
	ErrInvalidTrack       = errors.New("invalid track")
)
