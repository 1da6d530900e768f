package tracker

import (
	"context"
	"time"

	"github.com/meetpilot/meetpilot/internal/models"
)

// Tracker is the issue-tracker capability. The only implementation
// talks to the GitHub REST API.
type Tracker interface {
	CreateIssue(ctx context.Context, repo models.Repository, task models.TaskItem) (*models.Issue, error)
	ListIssues(ctx context.Context, repo models.Repository) ([]models.Issue, error)
	UpdateIssue(ctx context.Context, repo models.Repository, issueNumber int, task models.TaskItem) (*models.Issue, error)
	ListMilestones(ctx context.Context, repo models.Repository) ([]string, error)
	CreateMilestone(ctx context.Context, repo models.Repository, title, description string, dueDate *time.Time) (string, error)
}
