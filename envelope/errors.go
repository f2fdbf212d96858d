// SPDX-License-Identifier: EPL-2.0

package envelope

import "errors"

var (
	ErrEmptyEnvelope = errors.New("envelope has no breakpoints")
	ErrInvalidPoint  = errors.New("invalid envelope breakpoint")
	ErrUnknownKind   = errors.New("unknown track kind")
)
