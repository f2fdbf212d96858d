// SPDX-License-Identifier: EPL-2.0

package audmix

import (
	"bytes"
	"fmt"
	"sync"

	"github.com/ik5/audmix/audio"
	"github.com/ik5/audmix/formats/aiff"
	"github.com/ik5/audmix/formats/mp3"
	"github.com/ik5/audmix/formats/vorbis"
	"github.com/ik5/audmix/formats/wav"
)

// DefaultRegistry holds every decoder shipped with the module, keyed by
// "aiff", "mp3", "ogg" and "wav".
var DefaultRegistry = sync.OnceValue(func() *audio.Registry {
	reg := audio.NewRegistry()
	reg.Register("aiff", aiff.Decoder{})
	reg.Register("mp3", mp3.Decoder{})
	reg.Register("ogg", vorbis.Decoder{})
	reg.Register("wav", wav.Decoder{})
	return reg
})

// Decode detects the container of data from its leading bytes and decodes
// it into an asset.
func Decode(data []byte) (*audio.Asset, error) {
	format, dec, ok := DefaultRegistry().Detect(data[:min(len(data), audio.SniffLen)])
	if !ok {
		return nil, stageError(StageDecode, audio.ErrUnknownFormat)
	}
	return decodeWith(format, dec, data)
}

// DecodeFormat decodes data with the registry decoder for format.
func DecodeFormat(format string, data []byte) (*audio.Asset, error) {
	dec, ok := DefaultRegistry().Get(format)
	if !ok {
		return nil, stageError(StageDecode, fmt.Errorf("%q: %w", format, audio.ErrUnknownFormat))
	}
	return decodeWith(format, dec, data)
}

func decodeWith(format string, dec audio.Decoder, data []byte) (*audio.Asset, error) {
	src, err := dec.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, stageError(StageDecode, fmt.Errorf("%s: %w", format, err))
	}
	defer src.Close()

	asset, err := audio.ReadAll(src)
	if err != nil {
		return nil, stageError(StageDecode, fmt.Errorf("%s: %w", format, err))
	}
	return asset, nil
}

// Encode serializes a as a 16-bit PCM WAV file.
func Encode(a *audio.Asset) ([]byte, error) {
	data, err := wav.EncodeBytes(a)
	if err != nil {
		return nil, stageError(StageEncode, err)
	}
	return data, nil
}
