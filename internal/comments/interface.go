package comments

import (
	"context"

	"github.com/nguyentantai21042004/highlight-flow/internal/event"
)

// Detector analyzes a chat/comment log and returns scored events for
// comment spikes, unique-user reactions and keyword hits.
type Detector interface {
	Detect(ctx context.Context, logPath string) ([]event.Event, error)
}
