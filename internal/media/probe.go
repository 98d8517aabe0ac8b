package media

import (
	"context"
	"fmt"

	"github.com/tidwall/gjson"
)

// Probe runs ffprobe with JSON output and extracts the fields the pipeline
// cares about: duration, first video stream dimensions/codec, first audio
// stream codec, overall bitrate.
func (p *implProber) Probe(ctx context.Context, path string) (Info, error) {
	args := []string{
		"-v", "error",
		"-show_entries", "format=duration,bit_rate:stream=codec_type,codec_name,width,height",
		"-of", "json",
		path,
	}

	out, err := p.executor.Execute(ctx, p.probePath, args...)
	if err != nil {
		return Info{}, fmt.Errorf("probe %s: %w", path, err)
	}

	return parseProbeOutput(out)
}

// Duration returns the container duration in seconds.
func (p *implProber) Duration(ctx context.Context, path string) (float64, error) {
	info, err := p.Probe(ctx, path)
	if err != nil {
		return 0, err
	}
	if info.DurationSec <= 0 {
		return 0, fmt.Errorf("probe %s: no duration in format metadata", path)
	}
	return info.DurationSec, nil
}

func parseProbeOutput(out string) (Info, error) {
	if !gjson.Valid(out) {
		return Info{}, fmt.Errorf("ffprobe returned invalid JSON")
	}

	var info Info
	info.DurationSec = gjson.Get(out, "format.duration").Float()
	info.BitRate = gjson.Get(out, "format.bit_rate").Int()

	for _, s := range gjson.Get(out, "streams").Array() {
		switch s.Get("codec_type").String() {
		case "video":
			if info.VideoCodec == "" {
				info.VideoCodec = s.Get("codec_name").String()
				info.Width = int(s.Get("width").Int())
				info.Height = int(s.Get("height").Int())
			}
		case "audio":
			if info.AudioCodec == "" {
				info.AudioCodec = s.Get("codec_name").String()
			}
		}
	}

	return info, nil
}
