package ingest

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/meetpilot/meetpilot/internal/config"
	"github.com/meetpilot/meetpilot/internal/issuesync"
	"github.com/meetpilot/meetpilot/internal/logger"
	"github.com/meetpilot/meetpilot/internal/models"
)

// fakePipeline completes (or fails) the record synchronously in Start so
// the handler's first poll already sees a terminal state.
type fakePipeline struct {
	fail    bool
	rec     *models.Transcription
	updated bool
}

func (f *fakePipeline) Start(ctx context.Context, audioFileName string, audio io.Reader, title string) (*models.Transcription, error) {
	rec := models.NewTranscription(audioFileName, title)
	if f.fail {
		rec.Status = models.StatusFailed
		rec.FailedStage = "transcribing"
		rec.FailureReason = "audio corrupted"
	} else {
		rec.Status = models.StatusCompleted
		rec.ExtractedTasks = []models.TaskItem{{ID: "t1", Title: "File ticket"}}
	}
	f.rec = rec
	return rec, nil
}

func (f *fakePipeline) Get(ctx context.Context, id string) (*models.Transcription, error) {
	return f.rec, nil
}

func (f *fakePipeline) List(ctx context.Context, skip, take int) ([]*models.Transcription, error) {
	return nil, nil
}

func (f *fakePipeline) Update(ctx context.Context, rec *models.Transcription) (*models.Transcription, error) {
	f.updated = true
	return rec, nil
}

func (f *fakePipeline) Delete(ctx context.Context, id string) error { return nil }

func (f *fakePipeline) Wait() {}

type fakeSyncer struct {
	validateErr error
	synced      bool
}

func (f *fakeSyncer) SyncTasks(ctx context.Context, repo models.Repository, tasks []models.TaskItem) (*issuesync.Report, error) {
	f.synced = true
	return &issuesync.Report{Created: []models.Issue{{Number: 1}}}, nil
}

func (f *fakeSyncer) CreateIssue(ctx context.Context, repo models.Repository, task *models.TaskItem) (*models.Issue, error) {
	return &models.Issue{Number: 1}, nil
}

func (f *fakeSyncer) ValidateAccess(ctx context.Context, repo models.Repository) error {
	return f.validateErr
}

type fakeReporter struct {
	wrote bool
}

func (f *fakeReporter) Write(ctx context.Context, rec *models.Transcription, destDir string) (string, error) {
	f.wrote = true
	return filepath.Join(destDir, "report.docx"), nil
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := &config.Config{}
	cfg.Paths.Output = t.TempDir()
	cfg.Paths.Archive = t.TempDir()
	return cfg
}

func dropRecording(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "standup.wav")
	if err := os.WriteFile(path, []byte("fake-audio"), 0o644); err != nil {
		t.Fatalf("write recording: %v", err)
	}
	return path
}

func TestHandleCompletedRecording(t *testing.T) {
	cfg := testConfig(t)
	pipe := &fakePipeline{}
	syncer := &fakeSyncer{}
	reporter := &fakeReporter{}
	h := New(cfg, pipe, syncer, reporter, logger.New("error"))

	audioPath := dropRecording(t)
	if err := h.Handle(context.Background(), audioPath); err != nil {
		t.Fatalf("Handle() error = %v", err)
	}

	if !reporter.wrote {
		t.Error("report should have been written")
	}
	if syncer.synced {
		t.Error("tasks should not sync without a configured repository")
	}

	if _, err := os.Stat(audioPath); !os.IsNotExist(err) {
		t.Error("recording should have been moved out of the drop folder")
	}
	archived := filepath.Join(cfg.Paths.Archive, "standup.wav")
	if _, err := os.Stat(archived); err != nil {
		t.Errorf("recording should be in the archive: %v", err)
	}
}

func TestHandlePublishesWhenConfigured(t *testing.T) {
	cfg := testConfig(t)
	cfg.GitHub = config.GitHubConfig{Owner: "acme", Repo: "backlog", AutoSync: true, Token: "tok"}

	pipe := &fakePipeline{}
	syncer := &fakeSyncer{}
	h := New(cfg, pipe, syncer, &fakeReporter{}, logger.New("error"))

	if err := h.Handle(context.Background(), dropRecording(t)); err != nil {
		t.Fatalf("Handle() error = %v", err)
	}

	if !syncer.synced {
		t.Error("tasks should have been synced")
	}
	if !pipe.updated {
		t.Error("issue references should have been persisted")
	}
}

func TestHandleSkipsSyncWhenRepoInaccessible(t *testing.T) {
	cfg := testConfig(t)
	cfg.GitHub = config.GitHubConfig{Owner: "acme", Repo: "backlog", AutoSync: true, Token: "tok"}

	pipe := &fakePipeline{}
	syncer := &fakeSyncer{validateErr: os.ErrPermission}
	h := New(cfg, pipe, syncer, &fakeReporter{}, logger.New("error"))

	if err := h.Handle(context.Background(), dropRecording(t)); err != nil {
		t.Fatalf("Handle() error = %v (an unreachable repo is not fatal)", err)
	}
	if syncer.synced {
		t.Error("sync should have been skipped")
	}
}

func TestHandleFailedPipeline(t *testing.T) {
	cfg := testConfig(t)
	pipe := &fakePipeline{fail: true}
	reporter := &fakeReporter{}
	h := New(cfg, pipe, &fakeSyncer{}, reporter, logger.New("error"))

	audioPath := dropRecording(t)
	if err := h.Handle(context.Background(), audioPath); err == nil {
		t.Fatal("Handle() should fail when the pipeline fails")
	}

	if reporter.wrote {
		t.Error("no report should be written for a failed record")
	}
	if _, err := os.Stat(audioPath); err != nil {
		t.Error("failed recording should stay in the drop folder")
	}
}

func TestHandleMissingFile(t *testing.T) {
	cfg := testConfig(t)
	h := New(cfg, &fakePipeline{}, &fakeSyncer{}, &fakeReporter{}, logger.New("error"))

	if err := h.Handle(context.Background(), filepath.Join(t.TempDir(), "nope.wav")); err == nil {
		t.Error("Handle(missing file) should fail")
	}
}

func TestAwaitTerminalHonoursCancellation(t *testing.T) {
	pipe := &fakePipeline{}
	pipe.rec = models.NewTranscription("slow.wav", "")
	pipe.rec.Status = models.StatusTranscribing

	h := New(testConfig(t), pipe, &fakeSyncer{}, &fakeReporter{}, logger.New("error")).(*implHandler)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	if _, err := h.awaitTerminal(ctx, pipe.rec.ID); err == nil {
		t.Error("awaitTerminal should return once the context is cancelled")
	}
}
