// SPDX-License-Identifier: EPL-2.0

// Package audio provides the PCM building blocks used by the mixer.
//
// The package contains:
//   - Source, a pull-based stream of interleaved float32 samples
//   - Asset, a fully decoded planar buffer (one slice per channel)
//   - Resampler for sample rate conversion
//   - MonoMixer for channel downmixing
//   - Registry for decoder lookup by key or by magic bytes
//
// # Sources and Assets
//
// Decoders in the formats/ packages return a Source. The mixer works on
// whole buffers, so sources are usually drained into an Asset first:
//
//	src, _ := wav.Decoder{}.Decode(r)
//	asset, err := audio.ReadAll(src)
//
// An Asset can be turned back into a stream with Asset.Reader, which is how
// it is fed through the Resampler and the MonoMixer:
//
//	conformed, err := audio.Resample(asset, 44100)
//	mono, err := audio.Downmix(asset)
//
// # Format Detection
//
// Decoders that implement Sniffer are selected by Registry.Detect from the
// first SniffLen bytes of an encoded stream:
//
//	format, dec, ok := registry.Detect(data)
//
// # Sample Format
//
// Samples are float32 in [-1.0, 1.0]. Intermediate mixes may exceed that
// range; quantization to 16-bit PCM clamps.
package audio
