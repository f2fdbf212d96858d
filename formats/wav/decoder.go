// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	gowav "github.com/go-audio/wav"
	"github.com/ik5/audmix/audio"
	"github.com/ik5/audmix/utils"
)

const (
	formatPCM        = 1
	formatExtensible = 0xFFFE
)

type source struct {
	sampleRate int
	channels   int
	samples    []float32 // interleaved, fully decoded
	pos        int
}

func (s *source) SampleRate() int { return s.sampleRate }
func (s *source) Channels() int   { return s.channels }
func (s *source) BufSize() int    { return 4096 }
func (s *source) Close() error    { return nil }

func (s *source) ReadSamples(dst []float32) (int, error) {
	if len(dst) == 0 {
		return 0, nil
	}
	if s.pos >= len(s.samples) {
		return 0, io.EOF
	}

	n := copy(dst, s.samples[s.pos:])
	s.pos += n
	if s.pos >= len(s.samples) {
		return n, io.EOF
	}
	return n, nil
}

// Decoder reads RIFF/WAVE files holding 16, 24 or 32-bit integer PCM, plain
// or WAVE_FORMAT_EXTENSIBLE with a PCM sub format.
// Chunk walking (LIST, fact, odd-size padding) is delegated to go-audio/wav.
type Decoder struct{}

// Sniff reports whether header starts with a RIFF/WAVE signature.
func (Decoder) Sniff(header []byte) bool {
	return len(header) >= 12 &&
		bytes.Equal(header[0:4], []byte("RIFF")) &&
		bytes.Equal(header[8:12], []byte("WAVE"))
}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	rs, ok := r.(io.ReadSeeker)
	if !ok {
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("reading wav data: %w", err)
		}
		rs = bytes.NewReader(data)
	}

	dec := gowav.NewDecoder(rs)
	if !dec.IsValidFile() {
		return nil, ErrNotWavFile
	}

	switch dec.WavAudioFormat {
	case formatPCM:
	case formatExtensible:
		code, err := subFormat(rs)
		if err != nil {
			return nil, fmt.Errorf("reading extensible format: %w", err)
		}
		if code != formatPCM {
			return nil, fmt.Errorf("extensible sub format %#x: %w", code, ErrOnlyPCMSupported)
		}
		// subFormat moved the reader back to the start.
		dec = gowav.NewDecoder(rs)
		if !dec.IsValidFile() {
			return nil, ErrNotWavFile
		}
	default:
		return nil, fmt.Errorf("format %#x: %w", dec.WavAudioFormat, ErrOnlyPCMSupported)
	}

	bitDepth := int(dec.BitDepth)
	switch bitDepth {
	case 16, 24, 32:
	default:
		return nil, fmt.Errorf("%d-bit: %w", bitDepth, ErrUnsupportedBitDepth)
	}

	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("reading wav samples: %w", err)
	}

	channels := int(dec.NumChans)
	if buf.Format != nil && buf.Format.NumChannels > 0 {
		channels = buf.Format.NumChannels
	}
	whole := len(buf.Data) - len(buf.Data)%channels

	samples := make([]float32, whole)
	for i, v := range buf.Data[:whole] {
		samples[i] = utils.IntToFloat32(v, bitDepth)
	}

	return &source{
		sampleRate: int(dec.SampleRate),
		channels:   channels,
		samples:    samples,
	}, nil
}

// subFormat returns the format code held in the first two bytes of the
// SubFormat GUID of a WAVE_FORMAT_EXTENSIBLE fmt chunk. rs is rewound to the
// start before returning.
func subFormat(rs io.ReadSeeker) (uint16, error) {
	defer rs.Seek(0, io.SeekStart)

	if _, err := rs.Seek(12, io.SeekStart); err != nil {
		return 0, err
	}

	var hdr [8]byte
	for {
		if _, err := io.ReadFull(rs, hdr[:]); err != nil {
			return 0, err
		}
		size := int64(binary.LittleEndian.Uint32(hdr[4:]))

		if string(hdr[:4]) != "fmt " {
			if _, err := rs.Seek(size+size%2, io.SeekCurrent); err != nil {
				return 0, err
			}
			continue
		}

		// 16 bytes of plain PCM fields, cbSize, valid bits, channel mask.
		const guidOffset = 24
		if size < guidOffset+2 {
			return 0, fmt.Errorf("fmt chunk of %d bytes: %w", size, ErrNotWavFile)
		}
		body := make([]byte, guidOffset+2)
		if _, err := io.ReadFull(rs, body); err != nil {
			return 0, err
		}
		return binary.LittleEndian.Uint16(body[guidOffset:]), nil
	}
}
