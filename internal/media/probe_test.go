package media

import (
	"context"
	"fmt"
	"testing"
)

// fakeExecutor returns canned output for executor calls.
type fakeExecutor struct {
	stdout string
	err    error
}

func (f *fakeExecutor) Execute(ctx context.Context, name string, args ...string) (string, error) {
	return f.stdout, f.err
}

func (f *fakeExecutor) ExecuteCapture(ctx context.Context, name string, args ...string) (string, string, error) {
	return f.stdout, "", f.err
}

const probeJSON = `{
    "streams": [
        {"codec_name": "h264", "codec_type": "video", "width": 1920, "height": 1080},
        {"codec_name": "aac", "codec_type": "audio"}
    ],
    "format": {"duration": "3725.433000", "bit_rate": "4500000"}
}`

func TestParseProbeOutput(t *testing.T) {
	info, err := parseProbeOutput(probeJSON)
	if err != nil {
		t.Fatalf("parseProbeOutput() error = %v", err)
	}

	if info.DurationSec < 3725.4 || info.DurationSec > 3725.5 {
		t.Errorf("DurationSec = %v, want ~3725.433", info.DurationSec)
	}
	if info.Width != 1920 || info.Height != 1080 {
		t.Errorf("dimensions = %dx%d, want 1920x1080", info.Width, info.Height)
	}
	if info.VideoCodec != "h264" {
		t.Errorf("VideoCodec = %q, want h264", info.VideoCodec)
	}
	if info.AudioCodec != "aac" {
		t.Errorf("AudioCodec = %q, want aac", info.AudioCodec)
	}
	if info.BitRate != 4500000 {
		t.Errorf("BitRate = %d, want 4500000", info.BitRate)
	}
}

func TestParseProbeOutputInvalid(t *testing.T) {
	if _, err := parseProbeOutput("not json {"); err == nil {
		t.Error("parseProbeOutput() on garbage should fail")
	}
}

func TestDuration(t *testing.T) {
	p := &implProber{probePath: "ffprobe", executor: &fakeExecutor{stdout: probeJSON}}

	d, err := p.Duration(context.Background(), "archive.mp4")
	if err != nil {
		t.Fatalf("Duration() error = %v", err)
	}
	if d < 3725.4 || d > 3725.5 {
		t.Errorf("Duration() = %v, want ~3725.433", d)
	}
}

func TestDurationMissing(t *testing.T) {
	p := &implProber{probePath: "ffprobe", executor: &fakeExecutor{stdout: `{"streams": [], "format": {}}`}}

	if _, err := p.Duration(context.Background(), "archive.mp4"); err == nil {
		t.Error("Duration() without format.duration should fail")
	}
}

func TestProbeCommandFailure(t *testing.T) {
	p := &implProber{probePath: "ffprobe", executor: &fakeExecutor{err: fmt.Errorf("exit status 1")}}

	if _, err := p.Probe(context.Background(), "missing.mp4"); err == nil {
		t.Error("Probe() should propagate executor failure")
	}
}
