package pipeline

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/meetpilot/meetpilot/internal/models"
)

// Start creates a record for the submitted audio, persists it and kicks
// off stage execution in the background. The returned record reflects
// creation only; callers observe progress by re-fetching it. The given
// context governs the background stages: cancelling it fails the
// pipeline with a "cancelled" reason.
func (s *implService) Start(ctx context.Context, audioFileName string, audio io.Reader, title string) (*models.Transcription, error) {
	if audio == nil {
		return nil, fmt.Errorf("audio stream is required")
	}
	// Buffer the stream up front so the caller may close it as soon as
	// Start returns.
	data, err := io.ReadAll(audio)
	if err != nil {
		return nil, fmt.Errorf("read audio stream: %w", err)
	}

	rec := models.NewTranscription(audioFileName, title)
	if _, err := s.store.Add(ctx, rec); err != nil {
		return nil, fmt.Errorf("persist new transcription: %w", err)
	}

	s.logger.Info(ctx, "Transcription %s started for %s", rec.ID, audioFileName)

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.process(ctx, rec, data)
	}()

	return rec.Clone(), nil
}

// Get fetches a record by id.
func (s *implService) Get(ctx context.Context, id string) (*models.Transcription, error) {
	return s.store.Get(ctx, id)
}

// List returns records ordered by creation time, newest first.
func (s *implService) List(ctx context.Context, skip, take int) ([]*models.Transcription, error) {
	return s.store.List(ctx, skip, take)
}

// Update stamps the record and persists it.
func (s *implService) Update(ctx context.Context, rec *models.Transcription) (*models.Transcription, error) {
	rec.UpdatedAt = time.Now().UTC()
	return s.store.Update(ctx, rec)
}

// Delete removes a record by id.
func (s *implService) Delete(ctx context.Context, id string) error {
	return s.store.Delete(ctx, id)
}
