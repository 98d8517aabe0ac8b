package digest

import "context"

// Options controls optional digest decoration.
type Options struct {
	// Title, when non-empty, prepends a synthesized title card.
	Title string
	// WithTransition re-encodes cross-fades between consecutive clips
	// instead of the fast stream-copy concat.
	WithTransition bool
}

// Assembler concatenates highlight clips into a single digest video.
type Assembler interface {
	Assemble(ctx context.Context, clipPaths []string, outputPath string, opts Options) (string, error)
}
