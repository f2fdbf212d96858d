// SPDX-License-Identifier: EPL-2.0

// Package breaks locates SSML pause markers inside synthesized speech.
//
// Markers are first extracted from the markup that was sent to the speech
// service. When the rendered speech is available, each expected pause is
// aligned to a detected silence; if any pause cannot be aligned the whole
// result falls back to a word-rate estimate, so aligned and estimated
// positions are never mixed.
package breaks
