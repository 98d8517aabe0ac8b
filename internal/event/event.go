// Package event holds the domain model shared by the detectors, the merger
// and the renderer: a time-coded, scored point of interest in an archive.
package event

import (
	"sort"
)

// Kind tags the origin/type of an event.
type Kind string

const (
	KindVolumePeak   Kind = "volume_peak"
	KindLoudSegment  Kind = "loud_segment"
	KindCommentSpike Kind = "comment_spike"
	KindUserReaction Kind = "user_reaction"
	KindKeywordHit   Kind = "keyword_hit"
	// KindMerged marks a composite that absorbed events of differing kinds.
	KindMerged Kind = "merged"
)

// Source identifies the channel an event was detected on.
type Source string

const (
	SourceAudio   Source = "audio"
	SourceComment Source = "comment"
)

// Event is an interesting moment in the archive. Scores are additive across
// kinds: when the merger fuses two events their scores sum, so a moment
// confirmed by both channels outranks either alone.
//
// Only the fields matching Kind are populated: Count and Mean for comment
// spikes, UniqueUsers for user reactions, Keyword for keyword hits,
// SegmentStart/SegmentEnd for loud segments.
type Event struct {
	Timestamp float64
	Kind      Kind
	Score     float64
	Sources   []Source

	Count        int
	Mean         float64
	UniqueUsers  int
	Keyword      string
	SegmentStart float64
	SegmentEnd   float64
}

// HasSource reports whether the given channel contributed to this event.
func (e *Event) HasSource(s Source) bool {
	for _, src := range e.Sources {
		if src == s {
			return true
		}
	}
	return false
}

// AddSource unions a channel into the source set.
func (e *Event) AddSource(s Source) {
	if !e.HasSource(s) {
		e.Sources = append(e.Sources, s)
	}
}

// SourceLabel renders the source set as "audio+comment" for display.
// Order is fixed (audio first) so output is deterministic.
func (e *Event) SourceLabel() string {
	label := ""
	for _, s := range []Source{SourceAudio, SourceComment} {
		if e.HasSource(s) {
			if label != "" {
				label += "+"
			}
			label += string(s)
		}
	}
	if label == "" {
		return "unknown"
	}
	return label
}

// SortByTime orders events ascending by timestamp, in place.
func SortByTime(events []Event) {
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Timestamp < events[j].Timestamp
	})
}

// SortByScore orders events descending by score, in place. Ties keep the
// earlier event first so ranked output is deterministic.
func SortByScore(events []Event) {
	sort.SliceStable(events, func(i, j int) bool {
		if events[i].Score != events[j].Score {
			return events[i].Score > events[j].Score
		}
		return events[i].Timestamp < events[j].Timestamp
	})
}
