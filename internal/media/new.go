package media

import (
	"github.com/nguyentantai21042004/highlight-flow/internal/config"
	"github.com/nguyentantai21042004/highlight-flow/pkg/executor"
)

type implProber struct {
	probePath string
	executor  executor.Executor
}

// New creates a Prober backed by the configured ffprobe binary.
func New(cfg *config.Config, exec executor.Executor) Prober {
	return &implProber{
		probePath: cfg.FFmpeg.ProbePath,
		executor:  exec,
	}
}
