package config

import (
	"os"
	"testing"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr bool
	}{
		{
			name:    "empty config gets defaults",
			config:  Config{},
			wantErr: false,
		},
		{
			name: "negative silence duration",
			config: Config{
				Audio: AudioConfig{PeakMinSilenceSec: -1},
			},
			wantErr: true,
		},
		{
			name: "negative spike ratio",
			config: Config{
				Comments: CommentsConfig{SpikeRatio: -2},
			},
			wantErr: true,
		},
		{
			name: "negative clip count",
			config: Config{
				Clips: ClipsConfig{Count: -3},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateDefaults(t *testing.T) {
	cfg := Config{}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}

	if cfg.Audio.PeakNoiseDB != -20 {
		t.Errorf("PeakNoiseDB = %v, want -20", cfg.Audio.PeakNoiseDB)
	}
	if cfg.Audio.LoudNoiseDB != -30 {
		t.Errorf("LoudNoiseDB = %v, want -30", cfg.Audio.LoudNoiseDB)
	}
	if cfg.Comments.SpikeWindowSec != 30 {
		t.Errorf("SpikeWindowSec = %v, want 30", cfg.Comments.SpikeWindowSec)
	}
	if cfg.Comments.MinUniqueUsers != 5 {
		t.Errorf("MinUniqueUsers = %v, want 5", cfg.Comments.MinUniqueUsers)
	}
	if cfg.Merge.WindowSec != 30 {
		t.Errorf("Merge.WindowSec = %v, want 30", cfg.Merge.WindowSec)
	}
	if cfg.Clips.Count != 5 || cfg.Clips.DurationSec != 60 || cfg.Clips.PaddingSec != 5 {
		t.Errorf("Clips = %+v, want count 5, duration 60, padding 5", cfg.Clips)
	}
	if cfg.Paths.Output != "./highlights" {
		t.Errorf("Paths.Output = %v, want ./highlights", cfg.Paths.Output)
	}
	if len(cfg.Comments.Keywords) == 0 {
		t.Error("Keywords not defaulted")
	}
}

func TestLoad(t *testing.T) {
	// Create a temporary config file
	tmpfile, err := os.CreateTemp("", "config-*.yaml")
	if err != nil {
		t.Fatal(err)
	}
	defer os.Remove(tmpfile.Name())

	content := `
ffmpeg:
  binary_path: "/usr/local/bin/ffmpeg"

audio:
  peak_noise_db: -25
  peak_min_silence_sec: 0.3

comments:
  spike_window_sec: 60
  keywords:
    - "pog"
    - "lol"

clips:
  count: 8
  duration_sec: 45

logging:
  level: "debug"
`

	if _, err := tmpfile.Write([]byte(content)); err != nil {
		t.Fatal(err)
	}
	if err := tmpfile.Close(); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(tmpfile.Name())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.FFmpeg.BinaryPath != "/usr/local/bin/ffmpeg" {
		t.Errorf("BinaryPath = %v", cfg.FFmpeg.BinaryPath)
	}
	if cfg.Audio.PeakNoiseDB != -25 {
		t.Errorf("PeakNoiseDB = %v, want -25", cfg.Audio.PeakNoiseDB)
	}
	if cfg.Comments.SpikeWindowSec != 60 {
		t.Errorf("SpikeWindowSec = %v, want 60", cfg.Comments.SpikeWindowSec)
	}
	if len(cfg.Comments.Keywords) != 2 || cfg.Comments.Keywords[0] != "pog" {
		t.Errorf("Keywords = %v", cfg.Comments.Keywords)
	}
	if cfg.Clips.Count != 8 {
		t.Errorf("Clips.Count = %v, want 8", cfg.Clips.Count)
	}
	// Sections absent from the file are still defaulted
	if cfg.Merge.WindowSec != 30 {
		t.Errorf("Merge.WindowSec = %v, want 30", cfg.Merge.WindowSec)
	}
}

func TestLoadMissingFile(t *testing.T) {
	cfg, err := Load("does-not-exist.yaml")
	if err != nil {
		t.Fatalf("Load() on missing file should fall back to defaults, got %v", err)
	}
	if cfg.Clips.Count != 5 {
		t.Errorf("Clips.Count = %v, want default 5", cfg.Clips.Count)
	}
}
