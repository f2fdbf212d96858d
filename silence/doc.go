// SPDX-License-Identifier: EPL-2.0

// Package silence finds quiet stretches in a decoded asset.
//
// The detector downmixes to mono, slides a short window over the signal and
// marks every window whose mean absolute amplitude is below a threshold as
// silent. Runs of silent windows become segments; segments that are too short
// are dropped and segments separated by a tiny gap are merged.
//
//	segs := silence.Detect(asset)
//	for _, s := range segs {
//	    fmt.Printf("%.2fs for %.2fs\n", s.Start, s.Duration)
//	}
//
// Detection is deterministic and has no side effects besides debug logging.
package silence
