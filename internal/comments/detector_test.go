package comments

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/nguyentantai21042004/highlight-flow/internal/config"
	"github.com/nguyentantai21042004/highlight-flow/internal/event"
	"github.com/nguyentantai21042004/highlight-flow/internal/logger"
)

func newTestDetector(t *testing.T) *implDetector {
	t.Helper()
	cfg := &config.Config{}
	if err := cfg.Validate(); err != nil {
		t.Fatal(err)
	}
	return New(cfg, logger.New("error")).(*implDetector)
}

func TestDetectSpikes(t *testing.T) {
	d := newTestDetector(t)

	// Ten 30s buckets with one comment each, an eleventh with five.
	// Mean = 15/11 ≈ 1.36; ratio threshold 2.0 → cutoff ≈ 2.73.
	var records []Record
	for i := 0; i < 10; i++ {
		records = append(records, Record{Time: float64(i*30) + 1, Text: "c", User: "u"})
	}
	for j := 0; j < 5; j++ {
		records = append(records, Record{Time: 300 + float64(j), Text: "c", User: "u"})
	}

	spikes := d.detectSpikes(records)

	if len(spikes) != 1 {
		t.Fatalf("got %d spikes, want 1: %+v", len(spikes), spikes)
	}
	s := spikes[0]
	if s.Kind != event.KindCommentSpike {
		t.Errorf("Kind = %v", s.Kind)
	}
	if s.Timestamp != 315 {
		t.Errorf("Timestamp = %v, want bucket midpoint 315", s.Timestamp)
	}
	if s.Count != 5 {
		t.Errorf("Count = %v, want 5", s.Count)
	}
	// score = 5 / (15/11) = 11/3 ≈ 3.67
	if s.Score < 3.66 || s.Score > 3.68 {
		t.Errorf("Score = %v, want ≈3.67", s.Score)
	}
}

func TestDetectSpikesBelowThreshold(t *testing.T) {
	d := newTestDetector(t)

	// A two-comment bucket over a mean of ~1.36 is ratio ~1.47, under 2.0.
	var records []Record
	for i := 0; i < 10; i++ {
		records = append(records, Record{Time: float64(i*30) + 1, Text: "c", User: "u"})
	}
	records = append(records, Record{Time: 301, Text: "c", User: "u"}, Record{Time: 302, Text: "c", User: "u"})

	// Mean = 12/11 ≈ 1.09, cutoff ≈ 2.18, so the 2-comment bucket stays out.
	if spikes := d.detectSpikes(records); len(spikes) != 0 {
		t.Errorf("got %d spikes, want 0: %+v", len(spikes), spikes)
	}
}

func TestDetectSpikesEmpty(t *testing.T) {
	d := newTestDetector(t)
	if spikes := d.detectSpikes(nil); len(spikes) != 0 {
		t.Errorf("detectSpikes(nil) = %+v, want empty", spikes)
	}
}

func TestDetectKeywords(t *testing.T) {
	d := newTestDetector(t)

	records := []Record{
		{Time: 10, Text: "こんにちは", User: "a"},
		{Time: 20, Text: "草草草", User: "b"},
		{Time: 30, Text: "それはヤバいって神", User: "c"},
		{Time: 40, Text: "nothing here", User: "d"},
		{Time: 50, Text: "WWW", User: "e"}, // matching is case-insensitive
	}

	hits := d.detectKeywords(records)

	if len(hits) != 3 {
		t.Fatalf("got %d hits, want 3: %+v", len(hits), hits)
	}
	// One hit per comment even when several keywords match
	if hits[1].Timestamp != 30 {
		t.Errorf("hits[1].Timestamp = %v, want 30", hits[1].Timestamp)
	}
	for _, h := range hits {
		if h.Score != 0.5 {
			t.Errorf("keyword score = %v, want 0.5", h.Score)
		}
		if h.Kind != event.KindKeywordHit {
			t.Errorf("Kind = %v", h.Kind)
		}
		if h.Keyword == "" {
			t.Error("Keyword field not set")
		}
	}
}

func TestDetectUserReactions(t *testing.T) {
	d := newTestDetector(t)

	// Six distinct users in one 10s window, one lone flooder in another.
	var records []Record
	for i := 0; i < 6; i++ {
		records = append(records, Record{Time: 100 + float64(i), Text: "!", User: fmt.Sprintf("user%d", i)})
	}
	for i := 0; i < 8; i++ {
		records = append(records, Record{Time: 200 + float64(i), Text: "!", User: "spammer"})
	}

	reactions := d.detectUserReactions(records)

	if len(reactions) != 1 {
		t.Fatalf("got %d reactions, want 1: %+v", len(reactions), reactions)
	}
	r := reactions[0]
	if r.Kind != event.KindUserReaction {
		t.Errorf("Kind = %v", r.Kind)
	}
	if r.Timestamp != 105 {
		t.Errorf("Timestamp = %v, want window midpoint 105", r.Timestamp)
	}
	if r.UniqueUsers != 6 {
		t.Errorf("UniqueUsers = %v, want 6", r.UniqueUsers)
	}
	if r.Score != 1.2 {
		t.Errorf("Score = %v, want 6/5 = 1.2", r.Score)
	}
}

func TestDetectCaps(t *testing.T) {
	d := newTestDetector(t)

	// 50 keyword-bearing comments spread over separate windows so no spike
	// or reaction fires; only the keyword cap applies.
	var lines []string
	lines = append(lines, "time,text,user")
	for i := 0; i < 50; i++ {
		lines = append(lines, fmt.Sprintf("%d,草,user%d", i*60, i))
	}
	path := writeTemp(t, "comments.csv", strings.Join(lines, "\n")+"\n")

	events, err := d.Detect(context.Background(), path)
	if err != nil {
		t.Fatalf("Detect() error = %v", err)
	}

	keywordCount := 0
	for _, e := range events {
		if e.Kind == event.KindKeywordHit {
			keywordCount++
		}
	}
	if keywordCount != maxKeywords {
		t.Errorf("got %d keyword hits, want capped at %d", keywordCount, maxKeywords)
	}
}

func TestDetectSortedByScore(t *testing.T) {
	d := newTestDetector(t)

	path := writeTemp(t, "comments.json", `[
        {"time": 5, "text": "草", "user": "a"},
        {"time": 6, "text": "neutral", "user": "b"},
        {"time": 7, "text": "neutral", "user": "c"},
        {"time": 8, "text": "neutral", "user": "d"},
        {"time": 9, "text": "neutral", "user": "e"},
        {"time": 9.5, "text": "neutral", "user": "f"},
        {"time": 400, "text": "neutral", "user": "a"}
    ]`)

	events, err := d.Detect(context.Background(), path)
	if err != nil {
		t.Fatalf("Detect() error = %v", err)
	}
	if len(events) == 0 {
		t.Fatal("expected events")
	}
	for i := 1; i < len(events); i++ {
		if events[i].Score > events[i-1].Score {
			t.Errorf("events not sorted descending at %d: %v after %v", i, events[i].Score, events[i-1].Score)
		}
	}
}

func TestDetectUnsupportedExtension(t *testing.T) {
	d := newTestDetector(t)
	path := writeTemp(t, "comments.txt", "whatever")

	if _, err := d.Detect(context.Background(), path); err == nil {
		t.Error("Detect() should fail on unsupported extension")
	}
}
