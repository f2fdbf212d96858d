// SPDX-License-Identifier: EPL-2.0

// Package mp3 decodes MP3 assets through github.com/hajimehoshi/go-mp3.
//
// The decoder always reports two channels because go-mp3 expands mono
// streams to stereo. Samples are scaled with the same asymmetric int16
// mapping as the WAV codec so assets decoded from either format line up.
//
//	src, err := mp3.Decoder{}.Decode(f)
//	if err != nil {
//	    return err
//	}
//	asset, err := audio.ReadAll(src)
package mp3
