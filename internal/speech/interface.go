package speech

import (
	"context"
	"io"
)

// Transcriber converts an audio stream to plain text.
type Transcriber interface {
	Transcribe(ctx context.Context, audio io.Reader, fileName string) (string, error)
	TranscribeFromURL(ctx context.Context, audioURL string) (string, error)
}
