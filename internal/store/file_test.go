package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/meetpilot/meetpilot/internal/models"
)

func TestFileRoundTrip(t *testing.T) {
	ctx := context.Background()
	s, err := NewFile(t.TempDir())
	if err != nil {
		t.Fatalf("NewFile() error = %v", err)
	}

	rec := models.NewTranscription("standup.wav", "Standup")
	rec.TranscriptionText = "Let's sync on the migration."
	rec.ExtractedTasks = []models.TaskItem{{ID: "t1", Title: "File migration ticket", Priority: models.PriorityMedium}}

	if _, err := s.Add(ctx, rec); err != nil {
		t.Fatalf("Add() error = %v", err)
	}

	got, err := s.Get(ctx, rec.ID)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.Title != "Standup" {
		t.Errorf("Title = %q, want %q", got.Title, "Standup")
	}
	if len(got.ExtractedTasks) != 1 || got.ExtractedTasks[0].Title != "File migration ticket" {
		t.Errorf("ExtractedTasks = %+v", got.ExtractedTasks)
	}
}

func TestFileNotFound(t *testing.T) {
	ctx := context.Background()
	s, err := NewFile(t.TempDir())
	if err != nil {
		t.Fatalf("NewFile() error = %v", err)
	}

	if _, err := s.Get(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get(missing) error = %v, want ErrNotFound", err)
	}
	if _, err := s.Update(ctx, models.NewTranscription("a.wav", "")); !errors.Is(err, ErrNotFound) {
		t.Errorf("Update(unknown) error = %v, want ErrNotFound", err)
	}
	if err := s.Delete(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Delete(missing) error = %v, want ErrNotFound", err)
	}
}

func TestFileListNewestFirst(t *testing.T) {
	ctx := context.Background()
	s, err := NewFile(t.TempDir())
	if err != nil {
		t.Fatalf("NewFile() error = %v", err)
	}

	base := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	var ids []string
	for i := 0; i < 3; i++ {
		rec := models.NewTranscription("meeting.wav", "")
		rec.CreatedAt = base.Add(time.Duration(i) * time.Hour)
		if _, err := s.Add(ctx, rec); err != nil {
			t.Fatalf("Add() error = %v", err)
		}
		ids = append(ids, rec.ID)
	}

	got, err := s.List(ctx, 0, 10)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("len = %d, want 3", len(got))
	}
	for i, want := range []string{ids[2], ids[1], ids[0]} {
		if got[i].ID != want {
			t.Errorf("got[%d].ID = %v, want %v", i, got[i].ID, want)
		}
	}

	empty, err := s.List(ctx, 99, 10)
	if err != nil {
		t.Fatalf("List(skip past end) error = %v", err)
	}
	if len(empty) != 0 {
		t.Errorf("List(skip past end) len = %d, want 0", len(empty))
	}
}

func TestFileDelete(t *testing.T) {
	ctx := context.Background()
	s, err := NewFile(t.TempDir())
	if err != nil {
		t.Fatalf("NewFile() error = %v", err)
	}

	rec := models.NewTranscription("meeting.wav", "")
	if _, err := s.Add(ctx, rec); err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	if err := s.Delete(ctx, rec.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := s.Get(ctx, rec.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get(deleted) error = %v, want ErrNotFound", err)
	}
}
