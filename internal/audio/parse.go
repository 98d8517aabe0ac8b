package audio

import (
	"regexp"
	"strconv"
)

// ffmpeg's silencedetect and ebur128 filters have no machine-readable
// output mode; they log to stderr in a stable line format. Parsing is
// confined to this file so a structured analysis backend can replace it
// without touching the detector.
//
//	[silencedetect @ 0x...] silence_start: 121.03
//	[silencedetect @ 0x...] silence_end: 123.456 | silence_duration: 2.426
//	  Integrated loudness:     -23.5 LUFS

var (
	reSilenceStart = regexp.MustCompile(`silence_start:\s*(-?[\d.]+)`)
	reSilenceEnd   = regexp.MustCompile(`silence_end:\s*(-?[\d.]+)`)
	reIntegrated   = regexp.MustCompile(`Integrated loudness:\s*(-?[\d.]+)\s*LUFS`)
)

// silenceSpan is one detected silence interval. End is zero when the
// silence ran through the end of the file and ffmpeg never reported it.
type silenceSpan struct {
	Start float64
	End   float64
}

// parseSilenceEnds returns every silence_end timestamp in order.
func parseSilenceEnds(stderr string) []float64 {
	var ends []float64
	for _, m := range reSilenceEnd.FindAllStringSubmatch(stderr, -1) {
		if v, err := strconv.ParseFloat(m[1], 64); err == nil && v >= 0 {
			ends = append(ends, v)
		}
	}
	return ends
}

// parseSilenceSpans pairs silence_start lines with their silence_end lines
// positionally. A trailing start without an end produces a span with End 0.
func parseSilenceSpans(stderr string) []silenceSpan {
	startMatches := reSilenceStart.FindAllStringSubmatch(stderr, -1)
	endMatches := reSilenceEnd.FindAllStringSubmatch(stderr, -1)

	spans := make([]silenceSpan, 0, len(startMatches))
	for i, m := range startMatches {
		start, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			continue
		}
		if start < 0 {
			// silencedetect reports tiny negative starts for leading silence
			start = 0
		}

		span := silenceSpan{Start: start}
		if i < len(endMatches) {
			if end, err := strconv.ParseFloat(endMatches[i][1], 64); err == nil {
				span.End = end
			}
		}
		spans = append(spans, span)
	}
	return spans
}

// parseIntegratedLoudness extracts the LUFS summary from an ebur128 pass.
func parseIntegratedLoudness(stderr string) (float64, bool) {
	m := reIntegrated.FindStringSubmatch(stderr)
	if m == nil {
		return 0, false
	}
	v, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
