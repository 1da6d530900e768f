package models

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Status is the lifecycle state of a Transcription.
type Status string

const (
	StatusPending         Status = "pending"
	StatusInProgress      Status = "in_progress"
	StatusTranscribing    Status = "transcribing"
	StatusSummarizing     Status = "summarizing"
	StatusExtractingTasks Status = "extracting_tasks"
	StatusCompleted       Status = "completed"
	StatusFailed          Status = "failed"
)

// Terminal reports whether no further stage transitions can occur.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusFailed
}

// Transcription represents one audio-to-tasks job and everything the
// pipeline has produced for it so far.
type Transcription struct {
	ID                string     `json:"id"`
	Title             string     `json:"title"`
	AudioFileName     string     `json:"audio_file_name"`
	StartTime         time.Time  `json:"start_time"`
	EndTime           *time.Time `json:"end_time,omitempty"`
	TranscriptionText string     `json:"transcription_text"`
	Summary           string     `json:"summary"`
	ExtractedTasks    []TaskItem `json:"extracted_tasks"`
	Status            Status     `json:"status"`
	FailedStage       string     `json:"failed_stage,omitempty"`
	FailureReason     string     `json:"failure_reason,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

// NewTranscription creates a record for a freshly submitted audio file.
// An empty title falls back to the audio file name without its extension.
func NewTranscription(audioFileName, title string) *Transcription {
	if title == "" {
		title = strings.TrimSuffix(filepath.Base(audioFileName), filepath.Ext(audioFileName))
	}
	now := time.Now().UTC()
	return &Transcription{
		ID:            uuid.NewString(),
		Title:         title,
		AudioFileName: audioFileName,
		StartTime:     now,
		Status:        StatusInProgress,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// Clone returns a deep copy. The store hands out clones so that readers
// never alias a record an in-flight pipeline is still mutating.
func (t *Transcription) Clone() *Transcription {
	cp := *t
	if t.EndTime != nil {
		end := *t.EndTime
		cp.EndTime = &end
	}
	if t.ExtractedTasks != nil {
		cp.ExtractedTasks = make([]TaskItem, len(t.ExtractedTasks))
		for i := range t.ExtractedTasks {
			cp.ExtractedTasks[i] = t.ExtractedTasks[i].Clone()
		}
	}
	return &cp
}
