package digest

import (
	"github.com/nguyentantai21042004/highlight-flow/internal/config"
	"github.com/nguyentantai21042004/highlight-flow/internal/logger"
	"github.com/nguyentantai21042004/highlight-flow/internal/media"
	"github.com/nguyentantai21042004/highlight-flow/pkg/executor"
)

type implAssembler struct {
	cfg      *config.Config
	executor executor.Executor
	prober   media.Prober
	logger   logger.Logger
}

// New creates an Assembler driven by the configured ffmpeg binary.
func New(cfg *config.Config, exec executor.Executor, prober media.Prober, log logger.Logger) Assembler {
	return &implAssembler{
		cfg:      cfg,
		executor: exec,
		prober:   prober,
		logger:   log,
	}
}
