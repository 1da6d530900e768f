package pipeline

import (
	"bytes"
	"context"
	"time"

	"github.com/meetpilot/meetpilot/internal/models"
	"github.com/meetpilot/meetpilot/internal/tasks"
)

// process runs the stage sequence for one record: transcribe, summarize,
// extract tasks, normalize. State is persisted after every status change
// and every data-bearing update. Any stage error parks the record in
// Failed; nothing is surfaced to the caller that invoked Start.
func (s *implService) process(ctx context.Context, rec *models.Transcription, audio []byte) {
	if !s.advance(ctx, rec, models.StatusTranscribing) {
		return
	}
	text, err := s.speech.Transcribe(ctx, bytes.NewReader(audio), rec.AudioFileName)
	if err != nil {
		s.fail(ctx, rec, "transcribing", err.Error())
		return
	}
	rec.TranscriptionText = text
	if !s.persist(ctx, rec) {
		return
	}

	if !s.advance(ctx, rec, models.StatusSummarizing) {
		return
	}
	summary, err := s.llm.Summarize(ctx, text)
	if err != nil {
		s.fail(ctx, rec, "summarizing", err.Error())
		return
	}
	rec.Summary = summary
	if !s.persist(ctx, rec) {
		return
	}

	if !s.advance(ctx, rec, models.StatusExtractingTasks) {
		return
	}
	extracted, err := s.llm.ExtractTasks(ctx, text, summary)
	if err != nil {
		s.fail(ctx, rec, "extracting_tasks", err.Error())
		return
	}
	rec.ExtractedTasks = tasks.NormalizeAll(extracted)

	now := time.Now().UTC()
	rec.Status = models.StatusCompleted
	rec.EndTime = &now
	if !s.persist(ctx, rec) {
		return
	}

	s.logger.Info(ctx, "Transcription %s completed with %d tasks", rec.ID, len(rec.ExtractedTasks))
}

// advance moves the record to the next stage and persists it. A
// cancelled context fails the record instead of letting the next stage
// run.
func (s *implService) advance(ctx context.Context, rec *models.Transcription, next models.Status) bool {
	if err := ctx.Err(); err != nil {
		s.fail(ctx, rec, string(next), "cancelled")
		return false
	}
	rec.Status = next
	return s.persist(ctx, rec)
}

// persist writes the record back, stamping UpdatedAt. A store failure
// parks the record in Failed (best effort).
func (s *implService) persist(ctx context.Context, rec *models.Transcription) bool {
	rec.UpdatedAt = time.Now().UTC()
	if _, err := s.store.Update(ctx, rec); err != nil {
		s.logger.Error(ctx, "Failed to persist transcription %s: %v", rec.ID, err)
		s.fail(ctx, rec, string(rec.Status), "persist: "+err.Error())
		return false
	}
	return true
}

// fail parks the record in the terminal Failed state, recording which
// stage broke and why.
func (s *implService) fail(ctx context.Context, rec *models.Transcription, stage, reason string) {
	s.logger.Error(ctx, "Transcription %s failed at %s: %s", rec.ID, stage, reason)

	now := time.Now().UTC()
	rec.Status = models.StatusFailed
	rec.FailedStage = stage
	rec.FailureReason = reason
	rec.EndTime = &now
	rec.UpdatedAt = now

	// Persist with a background context so a cancelled pipeline can
	// still record that it was cancelled.
	if _, err := s.store.Update(context.WithoutCancel(ctx), rec); err != nil {
		s.logger.Error(ctx, "Failed to persist failure for %s: %v", rec.ID, err)
	}
}

// Wait blocks until all background stage sequences have finished. Used
// by graceful shutdown and tests.
func (s *implService) Wait() {
	s.wg.Wait()
}
