package llm

import (
	"context"

	"github.com/meetpilot/meetpilot/internal/models"
)

// Service is the language capability consumed by the pipeline and the
// issue sync flow.
type Service interface {
	Summarize(ctx context.Context, transcript string) (string, error)
	ExtractTasks(ctx context.Context, transcript, summary string) ([]models.TaskItem, error)
	GenerateIssueTitle(ctx context.Context, taskDescription string) (string, error)
	GenerateIssueBody(ctx context.Context, taskDescription, meetingContext string) (string, error)
}
