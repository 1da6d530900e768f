package ingest

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/meetpilot/meetpilot/internal/models"
)

// pollInterval is how often the handler re-fetches the record while the
// pipeline runs in the background.
const pollInterval = 500 * time.Millisecond

// Handle runs one recording through the whole flow: start the pipeline,
// wait for a terminal state, write the report, archive the audio, and
// publish the extracted tasks when a repository is configured.
func (h *implHandler) Handle(ctx context.Context, audioPath string) error {
	startTime := time.Now()
	fileName := filepath.Base(audioPath)

	h.logger.Info(ctx, "Processing recording: %s", audioPath)

	f, err := os.Open(audioPath)
	if err != nil {
		return fmt.Errorf("open recording: %w", err)
	}

	rec, err := h.pipeline.Start(ctx, fileName, f, "")
	f.Close()
	if err != nil {
		return fmt.Errorf("start pipeline: %w", err)
	}

	rec, err = h.awaitTerminal(ctx, rec.ID)
	if err != nil {
		return err
	}
	if rec.Status == models.StatusFailed {
		return fmt.Errorf("pipeline failed at %s: %s", rec.FailedStage, rec.FailureReason)
	}

	if _, err := h.report.Write(ctx, rec, h.cfg.Paths.Output); err != nil {
		h.logger.Warn(ctx, "Failed to write report for %s: %v", rec.ID, err)
	}

	if h.cfg.GitHub.Configured() && h.cfg.GitHub.AutoSync {
		h.publishTasks(ctx, rec)
	}

	if err := h.archive(ctx, audioPath); err != nil {
		h.logger.Warn(ctx, "Failed to archive %s: %v", audioPath, err)
	}

	h.logger.Info(ctx, "Recording %s done in %s (%d tasks)", fileName, time.Since(startTime), len(rec.ExtractedTasks))
	return nil
}

// awaitTerminal polls the record until its stage sequence finishes.
func (h *implHandler) awaitTerminal(ctx context.Context, id string) (*models.Transcription, error) {
	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for {
		rec, err := h.pipeline.Get(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("poll transcription %s: %w", id, err)
		}
		if rec.Status.Terminal() {
			return rec, nil
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-ticker.C:
		}
	}
}

// publishTasks pushes the extracted tasks to the configured repository
// and persists the issue references back onto the record. Sync problems
// are logged, not fatal: the record itself completed.
func (h *implHandler) publishTasks(ctx context.Context, rec *models.Transcription) {
	if len(rec.ExtractedTasks) == 0 {
		return
	}

	repo := models.Repository{
		Owner:            h.cfg.GitHub.Owner,
		Name:             h.cfg.GitHub.Repo,
		Token:            h.cfg.GitHub.Token,
		DefaultMilestone: h.cfg.GitHub.DefaultMilestone,
		DefaultLabels:    h.cfg.GitHub.DefaultLabels,
	}

	if err := h.syncer.ValidateAccess(ctx, repo); err != nil {
		h.logger.Error(ctx, "Skipping task sync: %v", err)
		return
	}

	syncReport, err := h.syncer.SyncTasks(ctx, repo, rec.ExtractedTasks)
	if err != nil {
		h.logger.Error(ctx, "Task sync aborted: %v", err)
		return
	}
	for _, f := range syncReport.Failed {
		h.logger.Warn(ctx, "Task %q was not published: %v", f.TaskTitle, f.Err)
	}

	if len(syncReport.Created) > 0 {
		if _, err := h.pipeline.Update(ctx, rec); err != nil {
			h.logger.Error(ctx, "Failed to persist issue references for %s: %v", rec.ID, err)
		}
	}
}

func (h *implHandler) archive(ctx context.Context, audioPath string) error {
	if err := os.MkdirAll(h.cfg.Paths.Archive, 0755); err != nil {
		return fmt.Errorf("create archive dir: %w", err)
	}

	dest := filepath.Join(h.cfg.Paths.Archive, filepath.Base(audioPath))
	if err := os.Rename(audioPath, dest); err != nil {
		return fmt.Errorf("move to archive: %w", err)
	}

	h.logger.Debug(ctx, "Archived recording: %s", dest)
	return nil
}
