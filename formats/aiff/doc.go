// SPDX-License-Identifier: EPL-2.0

// Package aiff decodes AIFF assets through github.com/go-audio/aiff.
//
// Integer samples are normalized with the asymmetric scaling shared by every
// codec in this module: negative values divide by 2^(bits-1), non-negative
// values by 2^(bits-1)-1.
package aiff
