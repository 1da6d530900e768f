package issuesync

import (
	"context"
	"fmt"

	"github.com/meetpilot/meetpilot/internal/models"
)

const maxIssueTitleLen = 100

func (s *implSyncer) SyncTasks(ctx context.Context, repo models.Repository, tasks []models.TaskItem) (*Report, error) {
	s.logger.Info(ctx, "Syncing %d tasks to %s", len(tasks), repo.FullName())

	report := &Report{}
	for i := range tasks {
		if err := ctx.Err(); err != nil {
			return report, fmt.Errorf("sync aborted: %w", err)
		}

		issue, err := s.CreateIssue(ctx, repo, &tasks[i])
		if err != nil {
			s.logger.Error(ctx, "Failed to sync task %q: %v", tasks[i].Title, err)
			report.Failed = append(report.Failed, Failure{
				TaskID:    tasks[i].ID,
				TaskTitle: tasks[i].Title,
				Err:       err,
			})
			continue
		}
		report.Created = append(report.Created, *issue)
	}

	s.logger.Info(ctx, "Sync complete: %d/%d tasks published", len(report.Created), len(tasks))
	return report, nil
}

func (s *implSyncer) CreateIssue(ctx context.Context, repo models.Repository, task *models.TaskItem) (*models.Issue, error) {
	// Rewrite the title from the description; keep the original when
	// the model produces nothing usable.
	title, err := s.llm.GenerateIssueTitle(ctx, task.Description)
	if err != nil {
		return nil, fmt.Errorf("enrich title: %w", err)
	}
	if title != "" && len(title) <= maxIssueTitleLen {
		task.Title = title
	}

	body, err := s.llm.GenerateIssueBody(ctx, task.Description, "Meeting task: "+task.Title)
	if err != nil {
		return nil, fmt.Errorf("enrich body: %w", err)
	}
	if body != "" {
		task.Description = body
	}

	issue, err := s.tracker.CreateIssue(ctx, repo, *task)
	if err != nil {
		return nil, err
	}

	task.IssueNumber = issue.Number
	task.IssueURL = issue.HTMLURL
	return issue, nil
}

func (s *implSyncer) ValidateAccess(ctx context.Context, repo models.Repository) error {
	if _, err := s.tracker.ListIssues(ctx, repo); err != nil {
		return fmt.Errorf("repository %s is not accessible: %w", repo.FullName(), err)
	}
	return nil
}
