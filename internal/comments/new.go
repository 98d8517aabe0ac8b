package comments

import (
	"github.com/nguyentantai21042004/highlight-flow/internal/config"
	"github.com/nguyentantai21042004/highlight-flow/internal/logger"
)

type implDetector struct {
	cfg    *config.Config
	logger logger.Logger
}

// New creates a Detector using the configured windows, thresholds and
// keyword vocabulary.
func New(cfg *config.Config, log logger.Logger) Detector {
	return &implDetector{
		cfg:    cfg,
		logger: log,
	}
}
