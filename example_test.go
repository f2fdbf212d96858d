// SPDX-License-Identifier: EPL-2.0

package audmix_test

import (
	"context"
	"errors"
	"fmt"

	"github.com/ik5/audmix"
	"github.com/ik5/audmix/audio"
	"github.com/ik5/audmix/timeline"
)

func constant(rate, channels int, seconds float64, v float32) *audio.Asset {
	a := audio.NewAsset(rate, channels, int(seconds*float64(rate)))
	for _, ch := range a.Samples {
		for i := range ch {
			ch[i] = v
		}
	}
	return a
}

func ExampleMixer_Mix() {
	speech := constant(8000, 1, 2, 0.25)
	music := constant(8000, 2, 20, 0.1)

	m := audmix.New()
	res, err := m.Mix(context.Background(), audmix.Request{
		Speech: speech,
		Config: timeline.DefaultConfig(),
		Assets: audmix.Assets{Music: music},
	})
	if err != nil {
		fmt.Println(err)
		return
	}

	fmt.Println(res.Mode, res.Asset.Channels())
	fmt.Printf("speech %.1fs-%.1fs, total %.1fs\n",
		res.Timeline.SpeechStart, res.Timeline.SpeechEnd, res.Timeline.TotalDuration)
	// Output:
	// mixed 2
	// speech 6.5s-8.5s, total 16.5s
}

func ExampleMixer_SpeechOnly() {
	speech := constant(8000, 1, 1, 0.25)

	m := audmix.New()
	_, err := m.Mix(context.Background(), audmix.Request{
		Speech: speech,
		Config: timeline.DefaultConfig(),
	})
	fmt.Println(errors.Is(err, audmix.ErrNoIntroAsset))

	res, err := m.SpeechOnly(context.Background(), speech)
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(res.Mode, len(res.WAV))
	// Output:
	// true
	// speech-only 16044
}
