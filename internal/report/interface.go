package report

import (
	"context"

	"github.com/meetpilot/meetpilot/internal/models"
)

// Writer renders a completed transcription record to a document on disk.
type Writer interface {
	// Write renders the record into destDir and returns the path of the
	// written file.
	Write(ctx context.Context, rec *models.Transcription, destDir string) (string, error)
}
