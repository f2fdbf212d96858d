// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/ik5/audmix/audio"
	"github.com/ik5/audmix/utils"
)

// HeaderSize is the size of the canonical RIFF/WAVE header written here.
const HeaderSize = 44

// WritePCM16 writes interleaved 16-bit PCM samples as a canonical WAV file:
// a 44-byte RIFF/fmt/data header followed by the little-endian samples.
func WritePCM16(w io.Writer, sampleRate, channels int, samples []int16) error {
	if channels < 1 || channels > 0xFFFF {
		return ErrInvalidChannels
	}
	if sampleRate <= 0 {
		return audio.ErrInvalidSampleRate
	}
	if len(samples)%channels != 0 {
		return ErrPartialFrame
	}

	const bitsPerSample = 16
	blockAlign := uint16(channels * bitsPerSample / 8)
	byteRate := uint32(sampleRate) * uint32(blockAlign)
	dataSize := uint32(len(samples) * 2)

	header := make([]byte, HeaderSize)

	copy(header[0:4], "RIFF")
	binary.LittleEndian.PutUint32(header[4:8], 36+dataSize)
	copy(header[8:12], "WAVE")

	copy(header[12:16], "fmt ")
	binary.LittleEndian.PutUint32(header[16:20], 16)
	binary.LittleEndian.PutUint16(header[20:22], formatPCM)
	binary.LittleEndian.PutUint16(header[22:24], uint16(channels))
	binary.LittleEndian.PutUint32(header[24:28], uint32(sampleRate))
	binary.LittleEndian.PutUint32(header[28:32], byteRate)
	binary.LittleEndian.PutUint16(header[32:34], blockAlign)
	binary.LittleEndian.PutUint16(header[34:36], bitsPerSample)

	copy(header[36:40], "data")
	binary.LittleEndian.PutUint32(header[40:44], dataSize)

	if _, err := w.Write(header); err != nil {
		return fmt.Errorf("%w", err)
	}

	// Chunked so large renders do not need a second full-size byte buffer.
	const chunkSize = 8192
	buf := make([]byte, min(len(samples), chunkSize)*2)
	for i := 0; i < len(samples); i += chunkSize {
		chunk := samples[i:min(i+chunkSize, len(samples))]
		out := buf[:len(chunk)*2]
		for j, s := range chunk {
			binary.LittleEndian.PutUint16(out[j*2:], uint16(s))
		}
		if _, err := w.Write(out); err != nil {
			return fmt.Errorf("%w", err)
		}
	}

	return nil
}

// Quantize interleaves and converts an asset to 16-bit PCM samples.
func Quantize(a *audio.Asset) []int16 {
	channels := a.Channels()
	out := make([]int16, a.Frames()*channels)
	for c, ch := range a.Samples {
		for f, v := range ch {
			out[f*channels+c] = utils.Float32ToInt16(v)
		}
	}
	return out
}

// Encode writes a as a 16-bit PCM WAV file.
func Encode(w io.Writer, a *audio.Asset) error {
	if err := a.Validate(); err != nil {
		return fmt.Errorf("encoding wav: %w", err)
	}
	return WritePCM16(w, a.SampleRate, a.Channels(), Quantize(a))
}

// EncodeBytes is Encode into a fresh byte slice.
func EncodeBytes(a *audio.Asset) ([]byte, error) {
	if err := a.Validate(); err != nil {
		return nil, fmt.Errorf("encoding wav: %w", err)
	}

	var buf bytes.Buffer
	buf.Grow(HeaderSize + a.Frames()*a.Channels()*2)
	if err := Encode(&buf, a); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
