// SPDX-License-Identifier: EPL-2.0

// Package audmix mixes a synthesized speech track with intro and outro
// music beds and break sound effects into one 16-bit PCM WAV file.
//
// The heavy lifting lives in the sub packages: silence finds pauses,
// breaks locates break markers, timeline lays out the stages, envelope
// shapes per track gain and render mixes everything offline. This package
// ties them together behind Mixer and adds container detection on decode.
//
// Basic usage:
//
//	speech, err := audmix.Decode(ttsBytes)
//	if err != nil {
//		return err
//	}
//	music, err := audmix.Decode(bedBytes)
//	if err != nil {
//		return err
//	}
//
//	m := audmix.New()
//	res, err := m.Mix(ctx, audmix.Request{
//		Speech: speech,
//		Text:   script,
//		Config: timeline.DefaultConfig(),
//		Assets: audmix.Assets{Music: music},
//	})
//	if errors.Is(err, audmix.ErrNoIntroAsset) {
//		res, err = m.SpeechOnly(ctx, speech)
//	}
//
// A Mixer renders one request at a time. A call made while another is in
// progress fails with ErrBusy instead of waiting.
package audmix
