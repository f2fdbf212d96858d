// SPDX-License-Identifier: EPL-2.0

// Package wav reads and writes RIFF/WAVE files.
//
// Decoding goes through github.com/go-audio/wav, which walks the chunk list
// properly, so files with LIST/fact chunks or odd-sized padding are
// accepted. Integer PCM at 16, 24 and 32 bits is supported; samples are
// normalized with the inverse of the encoder's scaling (negative values by
// 2^(bits-1), non-negative by 2^(bits-1)-1).
//
//	src, err := wav.Decoder{}.Decode(r)
//	asset, err := audio.ReadAll(src)
//
// Encoding always produces the canonical 44-byte header followed by
// interleaved little-endian 16-bit samples:
//
//	data, err := wav.EncodeBytes(asset)
//
// Quantization scales negative samples by 32768 and non-negative ones by
// 32767, rounds to the nearest step and clamps. There is no dither, so
// encoding the same asset twice yields identical bytes.
package wav
