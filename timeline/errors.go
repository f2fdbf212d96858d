// SPDX-License-Identifier: EPL-2.0

package timeline

import "errors"

var (
	ErrInvalidConfig   = errors.New("invalid mix configuration")
	ErrInvalidTimeline = errors.New("invalid timeline")
)
