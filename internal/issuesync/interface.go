package issuesync

import (
	"context"

	"github.com/meetpilot/meetpilot/internal/models"
)

// Syncer publishes extracted tasks to GitHub.
type Syncer interface {
	// SyncTasks publishes the tasks in order under a continue-on-error
	// policy: one task's failure never aborts the batch. Successfully
	// published tasks get their IssueNumber/IssueURL set in place.
	SyncTasks(ctx context.Context, repo models.Repository, tasks []models.TaskItem) (*Report, error)
	// CreateIssue publishes a single task, enriching its title and body
	// via the language backend first. Errors surface to the caller.
	CreateIssue(ctx context.Context, repo models.Repository, task *models.TaskItem) (*models.Issue, error)
	// ValidateAccess probes the repository with a read-only listing.
	// It returns nil when access is confirmed and a descriptive error
	// otherwise; it never panics.
	ValidateAccess(ctx context.Context, repo models.Repository) error
}

// Report is the outcome of a batch sync. len(Created) < the input length
// means some tasks failed; Failed carries their causes.
type Report struct {
	Created []models.Issue
	Failed  []Failure
}

// Failure records why one task could not be published.
type Failure struct {
	TaskID    string
	TaskTitle string
	Err       error
}
