package store

import (
	"context"
	"errors"

	"github.com/meetpilot/meetpilot/internal/models"
)

// ErrNotFound is returned when no record exists for the given id.
var ErrNotFound = errors.New("transcription not found")

// RecordStore persists transcription records. Implementations hand out
// deep copies: a returned record is owned by the caller and mutating it
// has no effect until it is written back with Update.
type RecordStore interface {
	Get(ctx context.Context, id string) (*models.Transcription, error)
	// List returns records ordered by creation time, newest first.
	// Negative skip/take are treated as zero; a skip past the end
	// yields an empty slice, never an error.
	List(ctx context.Context, skip, take int) ([]*models.Transcription, error)
	Add(ctx context.Context, rec *models.Transcription) (*models.Transcription, error)
	Update(ctx context.Context, rec *models.Transcription) (*models.Transcription, error)
	Delete(ctx context.Context, id string) error
}
