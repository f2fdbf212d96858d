// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"math"
	"testing"

	"github.com/ik5/audmix/audio"
)

// chunk is one RIFF sub-chunk used to hand-build test files.
type chunk struct {
	id   string
	body []byte
}

func fmtChunk(format, channels, rate, bits int) chunk {
	body := new(bytes.Buffer)
	blockAlign := channels * bits / 8
	binary.Write(body, binary.LittleEndian, uint16(format))
	binary.Write(body, binary.LittleEndian, uint16(channels))
	binary.Write(body, binary.LittleEndian, uint32(rate))
	binary.Write(body, binary.LittleEndian, uint32(rate*blockAlign))
	binary.Write(body, binary.LittleEndian, uint16(blockAlign))
	binary.Write(body, binary.LittleEndian, uint16(bits))
	return chunk{"fmt ", body.Bytes()}
}

// fmtExtensible builds a 40-byte WAVE_FORMAT_EXTENSIBLE fmt chunk whose
// SubFormat GUID carries sub (1 is PCM, 3 is IEEE float).
func fmtExtensible(channels, rate, bits int, sub uint16) chunk {
	c := fmtChunk(0xFFFE, channels, rate, bits)
	body := bytes.NewBuffer(c.body)
	binary.Write(body, binary.LittleEndian, uint16(22))   // cbSize
	binary.Write(body, binary.LittleEndian, uint16(bits)) // valid bits
	binary.Write(body, binary.LittleEndian, uint32(0))    // channel mask
	binary.Write(body, binary.LittleEndian, sub)
	body.Write([]byte{0x00, 0x00, 0x00, 0x00, 0x10, 0x00, 0x80, 0x00, 0x00, 0xAA, 0x00, 0x38, 0x9B, 0x71})
	return chunk{"fmt ", body.Bytes()}
}

func dataChunk16(samples ...int16) chunk {
	body := new(bytes.Buffer)
	binary.Write(body, binary.LittleEndian, samples)
	return chunk{"data", body.Bytes()}
}

func riff(chunks ...chunk) []byte {
	body := new(bytes.Buffer)
	body.WriteString("WAVE")
	for _, c := range chunks {
		body.WriteString(c.id)
		binary.Write(body, binary.LittleEndian, uint32(len(c.body)))
		body.Write(c.body)
		if len(c.body)%2 == 1 {
			body.WriteByte(0)
		}
	}

	out := new(bytes.Buffer)
	out.WriteString("RIFF")
	binary.Write(out, binary.LittleEndian, uint32(body.Len()))
	out.Write(body.Bytes())
	return out.Bytes()
}

func decodeAll(t *testing.T, data []byte) *audio.Asset {
	t.Helper()

	src, err := Decoder{}.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	a, err := audio.ReadAll(src)
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}
	return a
}

func TestDecoder_Mono16(t *testing.T) {
	t.Parallel()

	a := decodeAll(t, riff(fmtChunk(1, 1, 8000, 16), dataChunk16(0, 16384, 32767, -16384, -32768)))

	if a.SampleRate != 8000 || a.Channels() != 1 {
		t.Fatalf("shape = %d Hz / %d ch, want 8000 Hz / 1 ch", a.SampleRate, a.Channels())
	}
	want := []float32{0, 16384.0 / 32767, 1, -0.5, -1}
	for i, w := range want {
		if math.Abs(float64(a.Samples[0][i]-w)) > 1e-6 {
			t.Errorf("sample %d = %v, want %v", i, a.Samples[0][i], w)
		}
	}
}

func TestDecoder_StereoDeinterleaves(t *testing.T) {
	t.Parallel()

	a := decodeAll(t, riff(fmtChunk(1, 2, 44100, 16), dataChunk16(100, -100, 200, -200, 300, -300)))

	if a.Channels() != 2 || a.Frames() != 3 {
		t.Fatalf("shape = %d ch / %d frames, want 2 / 3", a.Channels(), a.Frames())
	}
	for f := range 3 {
		if a.Samples[0][f] <= 0 || a.Samples[1][f] >= 0 {
			t.Errorf("frame %d = (%v, %v), want left positive and right negative", f, a.Samples[0][f], a.Samples[1][f])
		}
	}
}

func TestDecoder_SkipsUnknownChunks(t *testing.T) {
	t.Parallel()

	data := riff(
		fmtChunk(1, 1, 16000, 16),
		chunk{"JUNK", make([]byte, 28)},
		dataChunk16(1000, 2000, 3000),
	)
	a := decodeAll(t, data)
	if a.Frames() != 3 {
		t.Errorf("Frames() = %d, want 3", a.Frames())
	}
}

func TestDecoder_Extensible(t *testing.T) {
	t.Parallel()

	t.Run("16-bit stereo", func(t *testing.T) {
		t.Parallel()

		samples := []int16{100, -100, 16384, -16384, 32767, -32768}
		plain := decodeAll(t, riff(fmtChunk(1, 2, 48000, 16), dataChunk16(samples...)))
		ext := decodeAll(t, riff(fmtExtensible(2, 48000, 16, formatPCM), dataChunk16(samples...)))

		if ext.SampleRate != 48000 || ext.Channels() != 2 || ext.Frames() != 3 {
			t.Fatalf("shape = %d Hz / %d ch / %d frames, want 48000 / 2 / 3",
				ext.SampleRate, ext.Channels(), ext.Frames())
		}
		for c := range plain.Samples {
			for i, v := range plain.Samples[c] {
				if ext.Samples[c][i] != v {
					t.Errorf("sample [%d][%d] = %v, want %v", c, i, ext.Samples[c][i], v)
				}
			}
		}
	})

	t.Run("24-bit mono", func(t *testing.T) {
		t.Parallel()

		data := chunk{"data", []byte{
			0x00, 0x00, 0x00, // 0
			0xFF, 0xFF, 0x7F, // max
			0x00, 0x00, 0x80, // min
		}}
		a := decodeAll(t, riff(fmtExtensible(1, 44100, 24, formatPCM), data))

		want := []float32{0, 1, -1}
		if a.Frames() != len(want) {
			t.Fatalf("Frames() = %d, want %d", a.Frames(), len(want))
		}
		for i, w := range want {
			if math.Abs(float64(a.Samples[0][i]-w)) > 1e-6 {
				t.Errorf("sample %d = %v, want %v", i, a.Samples[0][i], w)
			}
		}
	})

	t.Run("float sub format", func(t *testing.T) {
		t.Parallel()

		data := riff(fmtExtensible(1, 44100, 32, 3), chunk{"data", make([]byte, 16)})
		_, err := Decoder{}.Decode(bytes.NewReader(data))
		if !errors.Is(err, ErrOnlyPCMSupported) {
			t.Errorf("Decode() error = %v, want %v", err, ErrOnlyPCMSupported)
		}
	})
}

func TestDecoder_RejectsFloatFormat(t *testing.T) {
	t.Parallel()

	data := riff(fmtChunk(3, 1, 44100, 32), chunk{"data", make([]byte, 16)})
	if _, err := (Decoder{}).Decode(bytes.NewReader(data)); !errors.Is(err, ErrOnlyPCMSupported) {
		t.Errorf("Decode() error = %v, want %v", err, ErrOnlyPCMSupported)
	}
}

func TestDecoder_NotWAV(t *testing.T) {
	t.Parallel()

	inputs := map[string][]byte{
		"text":      []byte("NOT A WAV FILE DATA AT ALL, REALLY NOT A WAV"),
		"truncated": []byte("RIFF\x00"),
		"empty":     nil,
	}
	for name, in := range inputs {
		if _, err := (Decoder{}).Decode(bytes.NewReader(in)); err == nil {
			t.Errorf("%s: Decode() error = nil, want error", name)
		}
	}
}

func TestDecoder_RejectsUnsupportedDepth(t *testing.T) {
	t.Parallel()

	data := riff(fmtChunk(1, 1, 8000, 8), chunk{"data", []byte{1, 2, 3, 4}})
	if _, err := (Decoder{}).Decode(bytes.NewReader(data)); err == nil {
		t.Error("Decode() error = nil, want error for 8-bit PCM")
	}
}

func TestDecoder_NonSeekableReader(t *testing.T) {
	t.Parallel()

	data := riff(fmtChunk(1, 1, 8000, 16), dataChunk16(5, 6, 7, 8))
	src, err := Decoder{}.Decode(io.MultiReader(bytes.NewReader(data)))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if src.SampleRate() != 8000 {
		t.Errorf("SampleRate() = %d, want 8000", src.SampleRate())
	}
}

func TestDecoder_Sniff(t *testing.T) {
	t.Parallel()

	tests := []struct {
		header []byte
		want   bool
	}{
		{[]byte("RIFF\x10\x00\x00\x00WAVE"), true},
		{[]byte("RIFF\x10\x00\x00\x00AVI "), false},
		{[]byte("OggS"), false},
		{nil, false},
	}
	for _, tt := range tests {
		if got := (Decoder{}).Sniff(tt.header); got != tt.want {
			t.Errorf("Sniff(%q) = %v, want %v", tt.header, got, tt.want)
		}
	}
}

func TestRoundTrip_QuantizationBound(t *testing.T) {
	t.Parallel()

	in := audio.NewAsset(24000, 2, 2400)
	for f := range 2400 {
		in.Samples[0][f] = float32(math.Sin(float64(f) * 0.031))
		in.Samples[1][f] = float32(0.8 * math.Cos(float64(f)*0.017))
	}

	data, err := EncodeBytes(in)
	if err != nil {
		t.Fatalf("EncodeBytes() error = %v", err)
	}
	out := decodeAll(t, data)

	if out.SampleRate != in.SampleRate || out.Channels() != in.Channels() || out.Frames() != in.Frames() {
		t.Fatalf("shape changed: %d Hz/%d ch/%d frames", out.SampleRate, out.Channels(), out.Frames())
	}

	const step = 1.0 / 32768
	for c := range 2 {
		for f := range 2400 {
			if d := math.Abs(float64(out.Samples[c][f] - in.Samples[c][f])); d > step {
				t.Fatalf("sample [%d][%d] off by %v (> %v)", c, f, d, step)
			}
		}
	}

	again, _ := EncodeBytes(out)
	if !bytes.Equal(again, data) {
		t.Error("re-encoding a decoded file changed its bytes")
	}
}

func TestSource_ReadInChunks(t *testing.T) {
	t.Parallel()

	data := riff(fmtChunk(1, 1, 8000, 16), dataChunk16(1, 2, 3, 4, 5))
	src, err := Decoder{}.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}

	buf := make([]float32, 2)
	total := 0
	for {
		n, err := src.ReadSamples(buf)
		total += n
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("ReadSamples() error = %v", err)
		}
	}
	if total != 5 {
		t.Errorf("read %d samples, want 5", total)
	}

	if n, err := src.ReadSamples(buf); n != 0 || err != io.EOF {
		t.Errorf("ReadSamples() after end = (%d, %v), want (0, EOF)", n, err)
	}
}
