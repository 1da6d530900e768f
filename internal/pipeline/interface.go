package pipeline

import (
	"context"
	"io"

	"github.com/meetpilot/meetpilot/internal/models"
)

// Service owns the per-record transcription state machine. Start returns
// as soon as the record is persisted; stage execution continues in the
// background and is observed by polling Get.
type Service interface {
	Start(ctx context.Context, audioFileName string, audio io.Reader, title string) (*models.Transcription, error)
	Get(ctx context.Context, id string) (*models.Transcription, error)
	List(ctx context.Context, skip, take int) ([]*models.Transcription, error)
	Update(ctx context.Context, rec *models.Transcription) (*models.Transcription, error)
	Delete(ctx context.Context, id string) error
	// Wait blocks until all in-flight stage sequences have finished.
	Wait()
}
