package issuesync

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/meetpilot/meetpilot/internal/logger"
	"github.com/meetpilot/meetpilot/internal/models"
)

type fakeLLM struct {
	title    string
	titleErr error
	body     string
	bodyErr  error
}

func (f *fakeLLM) Summarize(ctx context.Context, transcript string) (string, error) {
	return "", nil
}

func (f *fakeLLM) ExtractTasks(ctx context.Context, transcript, summary string) ([]models.TaskItem, error) {
	return nil, nil
}

func (f *fakeLLM) GenerateIssueTitle(ctx context.Context, taskDescription string) (string, error) {
	return f.title, f.titleErr
}

func (f *fakeLLM) GenerateIssueBody(ctx context.Context, taskDescription, meetingContext string) (string, error) {
	return f.body, f.bodyErr
}

type fakeTracker struct {
	nextNumber int
	failTitles map[string]error
	listErr    error
	created    []models.TaskItem
}

func (f *fakeTracker) CreateIssue(ctx context.Context, repo models.Repository, task models.TaskItem) (*models.Issue, error) {
	if err := f.failTitles[task.Title]; err != nil {
		return nil, err
	}
	f.nextNumber++
	f.created = append(f.created, task)
	return &models.Issue{
		Number:  f.nextNumber,
		Title:   task.Title,
		Body:    task.Description,
		State:   "open",
		HTMLURL: fmt.Sprintf("https://github.com/%s/issues/%d", repo.FullName(), f.nextNumber),
	}, nil
}

func (f *fakeTracker) ListIssues(ctx context.Context, repo models.Repository) ([]models.Issue, error) {
	return nil, f.listErr
}

func (f *fakeTracker) UpdateIssue(ctx context.Context, repo models.Repository, issueNumber int, task models.TaskItem) (*models.Issue, error) {
	return nil, nil
}

func (f *fakeTracker) ListMilestones(ctx context.Context, repo models.Repository) ([]string, error) {
	return nil, nil
}

func (f *fakeTracker) CreateMilestone(ctx context.Context, repo models.Repository, title, description string, dueDate *time.Time) (string, error) {
	return title, nil
}

var testRepo = models.Repository{Owner: "acme", Name: "backlog", Token: "tok"}

func TestSyncTasksContinuesOnError(t *testing.T) {
	ctx := context.Background()
	tr := &fakeTracker{failTitles: map[string]error{"second": fmt.Errorf("validation failed")}}
	s := New(tr, &fakeLLM{}, logger.New("error"))

	tasks := []models.TaskItem{
		{ID: "1", Title: "first", Description: "d1"},
		{ID: "2", Title: "second", Description: "d2"},
		{ID: "3", Title: "third", Description: "d3"},
	}

	report, err := s.SyncTasks(ctx, testRepo, tasks)
	if err != nil {
		t.Fatalf("SyncTasks() error = %v", err)
	}
	if len(report.Created) != 2 {
		t.Fatalf("len(Created) = %d, want 2", len(report.Created))
	}
	if len(report.Failed) != 1 {
		t.Fatalf("len(Failed) = %d, want 1", len(report.Failed))
	}
	if report.Failed[0].TaskID != "2" {
		t.Errorf("Failed[0].TaskID = %v, want 2", report.Failed[0].TaskID)
	}

	// Published tasks carry their issue references, the failed one does not.
	if tasks[0].IssueNumber == 0 || tasks[0].IssueURL == "" {
		t.Error("first task should carry issue references")
	}
	if tasks[1].IssueNumber != 0 || tasks[1].IssueURL != "" {
		t.Error("failed task should not carry issue references")
	}
	if tasks[2].IssueNumber == 0 {
		t.Error("third task should still have been processed after the failure")
	}
}

func TestSyncTasksFailsItemOnEnrichmentError(t *testing.T) {
	ctx := context.Background()
	tr := &fakeTracker{}
	s := New(tr, &fakeLLM{titleErr: fmt.Errorf("model down")}, logger.New("error"))

	tasks := []models.TaskItem{{ID: "1", Title: "only", Description: "d"}}

	report, err := s.SyncTasks(ctx, testRepo, tasks)
	if err != nil {
		t.Fatalf("SyncTasks() error = %v", err)
	}
	if len(report.Created) != 0 {
		t.Errorf("len(Created) = %d, want 0", len(report.Created))
	}
	if len(report.Failed) != 1 {
		t.Fatalf("len(Failed) = %d, want 1", len(report.Failed))
	}
}

func TestCreateIssueEnrichment(t *testing.T) {
	tests := []struct {
		name      string
		llm       *fakeLLM
		wantTitle string
		wantBody  string
	}{
		{
			"generated title and body adopted",
			&fakeLLM{title: "Fix the flaky login test", body: "## Context\n..."},
			"Fix the flaky login test",
			"## Context\n...",
		},
		{
			"empty generations keep originals",
			&fakeLLM{},
			"original title",
			"original description",
		},
		{
			"overlong title kept original",
			&fakeLLM{title: strings.Repeat("x", 101), body: ""},
			"original title",
			"original description",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := &fakeTracker{}
			s := New(tr, tt.llm, logger.New("error"))

			task := models.TaskItem{ID: "1", Title: "original title", Description: "original description"}
			issue, err := s.CreateIssue(context.Background(), testRepo, &task)
			if err != nil {
				t.Fatalf("CreateIssue() error = %v", err)
			}

			if task.Title != tt.wantTitle {
				t.Errorf("task.Title = %q, want %q", task.Title, tt.wantTitle)
			}
			if task.Description != tt.wantBody {
				t.Errorf("task.Description = %q, want %q", task.Description, tt.wantBody)
			}
			if task.IssueNumber != issue.Number {
				t.Errorf("task.IssueNumber = %d, want %d", task.IssueNumber, issue.Number)
			}
			if task.IssueURL != issue.HTMLURL {
				t.Errorf("task.IssueURL = %q, want %q", task.IssueURL, issue.HTMLURL)
			}
		})
	}
}

func TestCreateIssueSurfacesTrackerError(t *testing.T) {
	tr := &fakeTracker{failTitles: map[string]error{"broken": fmt.Errorf("boom")}}
	s := New(tr, &fakeLLM{}, logger.New("error"))

	task := models.TaskItem{ID: "1", Title: "broken", Description: "d"}
	if _, err := s.CreateIssue(context.Background(), testRepo, &task); err == nil {
		t.Error("CreateIssue() should surface the tracker error")
	}
	if task.IssueNumber != 0 {
		t.Error("failed task should not carry an issue number")
	}
}

func TestValidateAccess(t *testing.T) {
	tests := []struct {
		name    string
		listErr error
		wantErr bool
	}{
		{"accessible", nil, false},
		{"auth failure", fmt.Errorf("github http 401: bad credentials"), true},
		{"network error", fmt.Errorf("dial tcp: connection refused"), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New(&fakeTracker{listErr: tt.listErr}, &fakeLLM{}, logger.New("error"))

			err := s.ValidateAccess(context.Background(), testRepo)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateAccess() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
