package media

import "context"

// Info describes a probed media file.
type Info struct {
	DurationSec float64
	Width       int
	Height      int
	VideoCodec  string
	AudioCodec  string
	BitRate     int64
}

// Prober queries container metadata from media files.
type Prober interface {
	Probe(ctx context.Context, path string) (Info, error)
	Duration(ctx context.Context, path string) (float64, error)
}
