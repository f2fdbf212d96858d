// SPDX-License-Identifier: EPL-2.0

// Package vorbis decodes Ogg Vorbis assets through
// github.com/jfreymuth/oggvorbis. Vorbis already produces float samples in
// [-1, 1], so they are passed through unscaled.
package vorbis
