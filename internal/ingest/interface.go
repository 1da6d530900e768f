package ingest

import "context"

// Handler processes one dropped audio file end to end.
type Handler interface {
	Handle(ctx context.Context, audioPath string) error
}
