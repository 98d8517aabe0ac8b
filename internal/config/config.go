package config

import "fmt"

type Config struct {
	FFmpeg      FFmpegConfig      `yaml:"ffmpeg"`
	Audio       AudioConfig       `yaml:"audio"`
	Comments    CommentsConfig    `yaml:"comments"`
	Merge       MergeConfig       `yaml:"merge"`
	Clips       ClipsConfig       `yaml:"clips"`
	Digest      DigestConfig      `yaml:"digest"`
	Paths       PathsConfig       `yaml:"paths"`
	Logging     LoggingConfig     `yaml:"logging"`
	Performance PerformanceConfig `yaml:"performance"`
}

type FFmpegConfig struct {
	BinaryPath string `yaml:"binary_path"`
	ProbePath  string `yaml:"probe_path"`
}

// AudioConfig tunes the two silencedetect passes of the audio detector.
// The peak pass marks silence ends (sound re-onsets); the loud pass marks
// sustained non-quiet segments between longer silences.
type AudioConfig struct {
	PeakNoiseDB       float64 `yaml:"peak_noise_db"`
	PeakMinSilenceSec float64 `yaml:"peak_min_silence_sec"`
	LoudNoiseDB       float64 `yaml:"loud_noise_db"`
	LoudMinSilenceSec float64 `yaml:"loud_min_silence_sec"`
	LoudMinSegmentSec float64 `yaml:"loud_min_segment_sec"`
}

type CommentsConfig struct {
	SpikeWindowSec    int      `yaml:"spike_window_sec"`
	SpikeRatio        float64  `yaml:"spike_ratio"`
	ReactionWindowSec int      `yaml:"reaction_window_sec"`
	MinUniqueUsers    int      `yaml:"min_unique_users"`
	Keywords          []string `yaml:"keywords"`
}

type MergeConfig struct {
	WindowSec float64 `yaml:"window_sec"`
}

type ClipsConfig struct {
	Count       int     `yaml:"count"`
	DurationSec float64 `yaml:"duration_sec"`
	PaddingSec  float64 `yaml:"padding_sec"`
}

type DigestConfig struct {
	TitleDurationSec   float64 `yaml:"title_duration_sec"`
	TransitionType     string  `yaml:"transition_type"`
	TransitionDuration float64 `yaml:"transition_duration"`
	Width              int     `yaml:"width"`
	Height             int     `yaml:"height"`
	FontSize           int     `yaml:"font_size"`
}

type PathsConfig struct {
	Output string `yaml:"output"`
	Temp   string `yaml:"temp"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type PerformanceConfig struct {
	MaxConcurrent int `yaml:"max_concurrent"`
}

// DefaultKeywords is the built-in excitement vocabulary for Japanese
// streaming chat. Override via comments.keywords in the config file for
// other languages or communities.
var DefaultKeywords = []string{
	"草", "www", "ｗｗ", "ww",
	"神", "かみ", "カミ",
	"すご", "スゴ", "すげ", "スゲ",
	"やば", "ヤバ",
	"ワロタ", "わろた", "ワロ",
	"!?", "！？", "?!", "？！",
	"えぇ", "ええ", "えー",
	"うわ", "ウワ",
	"きた", "キタ", "kita",
	"888", "パチパチ", "ぱちぱち",
}

func (c *Config) Validate() error {
	if c.Audio.PeakMinSilenceSec < 0 || c.Audio.LoudMinSilenceSec < 0 {
		return fmt.Errorf("audio silence durations must not be negative")
	}
	if c.Comments.SpikeRatio < 0 {
		return fmt.Errorf("comments.spike_ratio must not be negative")
	}
	if c.Clips.Count < 0 {
		return fmt.Errorf("clips.count must not be negative")
	}

	if c.FFmpeg.BinaryPath == "" {
		c.FFmpeg.BinaryPath = "ffmpeg"
	}
	if c.FFmpeg.ProbePath == "" {
		c.FFmpeg.ProbePath = "ffprobe"
	}
	if c.Audio.PeakNoiseDB == 0 {
		c.Audio.PeakNoiseDB = -20
	}
	if c.Audio.PeakMinSilenceSec == 0 {
		c.Audio.PeakMinSilenceSec = 0.5
	}
	if c.Audio.LoudNoiseDB == 0 {
		c.Audio.LoudNoiseDB = -30
	}
	if c.Audio.LoudMinSilenceSec == 0 {
		c.Audio.LoudMinSilenceSec = 2
	}
	if c.Audio.LoudMinSegmentSec == 0 {
		c.Audio.LoudMinSegmentSec = 1
	}
	if c.Comments.SpikeWindowSec == 0 {
		c.Comments.SpikeWindowSec = 30
	}
	if c.Comments.SpikeRatio == 0 {
		c.Comments.SpikeRatio = 2.0
	}
	if c.Comments.ReactionWindowSec == 0 {
		c.Comments.ReactionWindowSec = 10
	}
	if c.Comments.MinUniqueUsers == 0 {
		c.Comments.MinUniqueUsers = 5
	}
	if len(c.Comments.Keywords) == 0 {
		c.Comments.Keywords = DefaultKeywords
	}
	if c.Merge.WindowSec == 0 {
		c.Merge.WindowSec = 30
	}
	if c.Clips.Count == 0 {
		c.Clips.Count = 5
	}
	if c.Clips.DurationSec == 0 {
		c.Clips.DurationSec = 60
	}
	if c.Clips.PaddingSec == 0 {
		c.Clips.PaddingSec = 5
	}
	if c.Digest.TitleDurationSec == 0 {
		c.Digest.TitleDurationSec = 3
	}
	if c.Digest.TransitionType == "" {
		c.Digest.TransitionType = "fade"
	}
	if c.Digest.TransitionDuration == 0 {
		c.Digest.TransitionDuration = 0.5
	}
	if c.Digest.Width == 0 {
		c.Digest.Width = 1920
	}
	if c.Digest.Height == 0 {
		c.Digest.Height = 1080
	}
	if c.Digest.FontSize == 0 {
		c.Digest.FontSize = 72
	}
	if c.Paths.Output == "" {
		c.Paths.Output = "./highlights"
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Performance.MaxConcurrent == 0 {
		c.Performance.MaxConcurrent = 2
	}

	return nil
}
