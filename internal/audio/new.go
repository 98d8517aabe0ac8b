package audio

import (
	"github.com/nguyentantai21042004/highlight-flow/internal/config"
	"github.com/nguyentantai21042004/highlight-flow/internal/logger"
	"github.com/nguyentantai21042004/highlight-flow/pkg/executor"
)

type implDetector struct {
	cfg      *config.Config
	executor executor.Executor
	logger   logger.Logger
}

// New creates a Detector driven by the configured ffmpeg binary.
func New(cfg *config.Config, exec executor.Executor, log logger.Logger) Detector {
	return &implDetector{
		cfg:      cfg,
		executor: exec,
		logger:   log,
	}
}
