package highlighter

import (
	"github.com/nguyentantai21042004/highlight-flow/internal/audio"
	"github.com/nguyentantai21042004/highlight-flow/internal/comments"
	"github.com/nguyentantai21042004/highlight-flow/internal/config"
	"github.com/nguyentantai21042004/highlight-flow/internal/logger"
	"github.com/nguyentantai21042004/highlight-flow/internal/renderer"
)

type implHighlighter struct {
	cfg      *config.Config
	audio    audio.Detector
	comments comments.Detector
	renderer renderer.Renderer
	logger   logger.Logger
}

// New wires the two detectors and the renderer into a Highlighter.
func New(cfg *config.Config, audioDet audio.Detector, commentDet comments.Detector, rend renderer.Renderer, log logger.Logger) Highlighter {
	return &implHighlighter{
		cfg:      cfg,
		audio:    audioDet,
		comments: commentDet,
		renderer: rend,
		logger:   log,
	}
}
