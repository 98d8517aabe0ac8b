// Package merger fuses audio and comment event streams into one ranked
// list. Events from both channels that land close together in time are
// collapsed into a single composite whose score is the sum of its parts, so
// a moment confirmed by both channels outranks either alone.
package merger

import (
	"github.com/nguyentantai21042004/highlight-flow/internal/event"
)

// DefaultWindowSec is the absorption window used when no configuration
// overrides it.
const DefaultWindowSec = 30.0

// Merge concatenates both channel lists, orders them ascending by time and
// walks them once: an event within windowSec of the current composite is
// absorbed (score added, sources unioned, timestamp recomputed as the mean
// of the two), otherwise the composite is closed and a new one starts.
// The result is sorted descending by final score, ties broken by earlier
// timestamp. Deterministic given identical inputs.
//
// The timestamp update is the pairwise running mean, not a centroid over
// all absorbed members: a long chain of near-window events drifts the
// marker toward its later members. Downstream consumers (timestamp index,
// clip centering) depend on this exact policy.
//
// Audio events sort before comment events at identical timestamps (stable
// sort over the concatenation order), which fixes the absorption order.
func Merge(audioEvents, commentEvents []event.Event, windowSec float64) []event.Event {
	if windowSec <= 0 {
		windowSec = DefaultWindowSec
	}

	all := make([]event.Event, 0, len(audioEvents)+len(commentEvents))
	all = append(all, audioEvents...)
	all = append(all, commentEvents...)
	event.SortByTime(all)

	var merged []event.Event
	for _, e := range all {
		if len(merged) == 0 {
			merged = append(merged, cloneEvent(e))
			continue
		}

		last := &merged[len(merged)-1]
		if e.Timestamp-last.Timestamp < windowSec {
			absorb(last, e)
		} else {
			merged = append(merged, cloneEvent(e))
		}
	}

	event.SortByScore(merged)
	return merged
}

// absorb folds e into the composite dst.
func absorb(dst *event.Event, e event.Event) {
	dst.Score += e.Score
	for _, s := range e.Sources {
		dst.AddSource(s)
	}
	dst.Timestamp = (dst.Timestamp + e.Timestamp) / 2
	if dst.Kind != e.Kind {
		dst.Kind = event.KindMerged
	}
}

// cloneEvent copies an event so absorption never mutates detector output.
func cloneEvent(e event.Event) event.Event {
	c := e
	c.Sources = append([]event.Source(nil), e.Sources...)
	return c
}
