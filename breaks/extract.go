// SPDX-License-Identifier: EPL-2.0

package breaks

import (
	"regexp"
	"strconv"
	"strings"
)

// DefaultBreak is the duration given to a break tag without a time attribute.
const DefaultBreak = 4.5

var (
	breakTag = regexp.MustCompile(`(?is)<break\b([^>]*)>`)
	timeAttr = regexp.MustCompile(`(?i)\btime\s*=\s*["']?\s*([0-9]*\.?[0-9]+)\s*(ms|s)?\s*["']?`)
	anyTag   = regexp.MustCompile(`(?s)<[^>]*>`)
)

// Expected is a pause requested by the markup.
type Expected struct {
	Duration    float64 // seconds
	WordsBefore int     // spoken words preceding the tag
}

// Extract returns the break tags of text in document order. Tags without a
// usable time attribute get defaultBreak seconds.
func Extract(text string, defaultBreak float64) []Expected {
	locs := breakTag.FindAllStringSubmatchIndex(text, -1)
	if len(locs) == 0 {
		return nil
	}

	out := make([]Expected, 0, len(locs))
	words, prev := 0, 0
	for _, loc := range locs {
		words += CountWords(text[prev:loc[0]])
		prev = loc[1]

		out = append(out, Expected{
			Duration:    parseTime(text[loc[2]:loc[3]], defaultBreak),
			WordsBefore: words,
		})
	}
	return out
}

// CountWords counts whitespace separated words once all markup tags are
// removed.
func CountWords(text string) int {
	return len(strings.Fields(anyTag.ReplaceAllString(text, " ")))
}

func parseTime(attrs string, fallback float64) float64 {
	m := timeAttr.FindStringSubmatch(attrs)
	if m == nil {
		return fallback
	}

	v, err := strconv.ParseFloat(m[1], 64)
	if err != nil || v < 0 {
		return fallback
	}
	if strings.EqualFold(m[2], "ms") {
		v /= 1000
	}
	return v
}
