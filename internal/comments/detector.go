package comments

import (
	"context"
	"strings"

	"github.com/nguyentantai21042004/highlight-flow/internal/event"
)

// Per-kind caps keep the merge step bounded and stop one noisy signal from
// dominating purely by volume of weak hits.
const (
	maxSpikes    = 10
	maxReactions = 10
	maxKeywords  = 20
)

// Detect loads a comment log and runs the three sub-detectors. The combined
// list is sorted descending by score.
func (d *implDetector) Detect(ctx context.Context, logPath string) ([]event.Event, error) {
	records, err := LoadLog(logPath)
	if err != nil {
		return nil, err
	}

	spikes := d.detectSpikes(records)
	reactions := d.detectUserReactions(records)
	keywords := d.detectKeywords(records)

	d.logger.Debug(ctx, "comment analysis: %d spikes, %d reactions, %d keyword hits",
		len(spikes), len(reactions), len(keywords))

	events := make([]event.Event, 0, len(spikes)+len(reactions)+len(keywords))
	events = append(events, capEvents(spikes, maxSpikes)...)
	events = append(events, capEvents(reactions, maxReactions)...)
	events = append(events, capEvents(keywords, maxKeywords)...)

	event.SortByScore(events)
	return events, nil
}

// detectSpikes buckets comments into fixed windows and flags buckets whose
// count exceeds the mean (over non-empty buckets) times the configured
// ratio. Score is the count-to-mean ratio.
func (d *implDetector) detectSpikes(records []Record) []event.Event {
	if len(records) == 0 {
		return nil
	}

	window := float64(d.cfg.Comments.SpikeWindowSec)
	buckets := make(map[int]int)
	for _, r := range records {
		buckets[int(r.Time/window)]++
	}

	total := 0
	for _, count := range buckets {
		total += count
	}
	mean := float64(total) / float64(len(buckets))

	var events []event.Event
	for bucket, count := range buckets {
		if float64(count) > mean*d.cfg.Comments.SpikeRatio {
			events = append(events, event.Event{
				Timestamp: float64(bucket)*window + window/2,
				Kind:      event.KindCommentSpike,
				Score:     float64(count) / mean,
				Sources:   []event.Source{event.SourceComment},
				Count:     count,
				Mean:      mean,
			})
		}
	}

	event.SortByScore(events)
	return events
}

// detectKeywords scans each comment for the excitement vocabulary. The
// first match per comment wins, with a deliberately modest fixed score.
func (d *implDetector) detectKeywords(records []Record) []event.Event {
	var events []event.Event
	for _, r := range records {
		text := strings.ToLower(r.Text)
		for _, kw := range d.cfg.Comments.Keywords {
			if strings.Contains(text, strings.ToLower(kw)) {
				events = append(events, event.Event{
					Timestamp: r.Time,
					Kind:      event.KindKeywordHit,
					Score:     0.5,
					Sources:   []event.Source{event.SourceComment},
					Keyword:   kw,
				})
				break
			}
		}
	}
	return events
}

// detectUserReactions flags windows where many distinct users commented —
// several people reacting at once, not one person flooding.
func (d *implDetector) detectUserReactions(records []Record) []event.Event {
	if len(records) == 0 {
		return nil
	}

	window := float64(d.cfg.Comments.ReactionWindowSec)
	buckets := make(map[int]map[string]struct{})
	for _, r := range records {
		bucket := int(r.Time / window)
		if buckets[bucket] == nil {
			buckets[bucket] = make(map[string]struct{})
		}
		buckets[bucket][r.User] = struct{}{}
	}

	minUsers := d.cfg.Comments.MinUniqueUsers
	var events []event.Event
	for bucket, users := range buckets {
		if len(users) >= minUsers {
			events = append(events, event.Event{
				Timestamp:   float64(bucket)*window + window/2,
				Kind:        event.KindUserReaction,
				Score:       float64(len(users)) / float64(minUsers),
				Sources:     []event.Source{event.SourceComment},
				UniqueUsers: len(users),
			})
		}
	}

	event.SortByScore(events)
	return events
}

func capEvents(events []event.Event, max int) []event.Event {
	if len(events) > max {
		return events[:max]
	}
	return events
}
