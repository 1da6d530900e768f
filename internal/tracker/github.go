package tracker

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/meetpilot/meetpilot/internal/logger"
	"github.com/meetpilot/meetpilot/internal/models"
)

const (
	defaultBaseURL = "https://api.github.com"
	userAgent      = "meetpilot/1.0"
)

type implGitHub struct {
	baseURL string
	client  *http.Client
	logger  logger.Logger
}

// NewGitHub creates a Tracker backed by the GitHub REST API.
func NewGitHub(log logger.Logger) Tracker {
	return &implGitHub{
		baseURL: defaultBaseURL,
		client:  &http.Client{Timeout: 30 * time.Second},
		logger:  log,
	}
}

// NewGitHubWithBaseURL is used by tests to point the client at a stub
// server.
func NewGitHubWithBaseURL(baseURL string, log logger.Logger) Tracker {
	t := NewGitHub(log).(*implGitHub)
	t.baseURL = strings.TrimRight(baseURL, "/")
	return t
}

// Wire types for the subset of the GitHub API this client touches.

type ghIssue struct {
	Number    int     `json:"number"`
	Title     string  `json:"title"`
	Body      string  `json:"body"`
	State     string  `json:"state"`
	HTMLURL   string  `json:"html_url"`
	Labels    []ghTag `json:"labels"`
	Assignee  *ghUser `json:"assignee"`
	Milestone *ghTag  `json:"milestone"`
	CreatedAt string  `json:"created_at"`
	UpdatedAt string  `json:"updated_at"`
}

type ghTag struct {
	Number int    `json:"number,omitempty"`
	Name   string `json:"name,omitempty"`
	Title  string `json:"title,omitempty"`
}

type ghUser struct {
	Login string `json:"login"`
}

type ghNewIssue struct {
	Title     string   `json:"title"`
	Body      string   `json:"body,omitempty"`
	Labels    []string `json:"labels,omitempty"`
	Assignees []string `json:"assignees,omitempty"`
	Milestone int      `json:"milestone,omitempty"`
}

type ghIssueUpdate struct {
	Title string `json:"title,omitempty"`
	Body  string `json:"body,omitempty"`
	State string `json:"state,omitempty"`
}

type ghNewMilestone struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	DueOn       string `json:"due_on,omitempty"`
}

func (g *implGitHub) CreateIssue(ctx context.Context, repo models.Repository, task models.TaskItem) (*models.Issue, error) {
	g.logger.Info(ctx, "Creating GitHub issue in %s for task: %s", repo.FullName(), task.Title)

	payload := ghNewIssue{
		Title:  task.Title,
		Body:   task.Description,
		Labels: mergeLabels(task.Labels, repo.DefaultLabels),
	}
	if task.AssignedTo != "" {
		payload.Assignees = []string{task.AssignedTo}
	}

	milestoneTitle := task.MilestoneTitle
	if milestoneTitle == "" {
		milestoneTitle = repo.DefaultMilestone
	}
	if milestoneTitle != "" {
		number, err := g.findMilestone(ctx, repo, milestoneTitle)
		if err != nil {
			return nil, err
		}
		payload.Milestone = number
	}

	var out ghIssue
	path := fmt.Sprintf("/repos/%s/%s/issues", repo.Owner, repo.Name)
	if err := g.do(ctx, repo, http.MethodPost, path, payload, &out); err != nil {
		return nil, fmt.Errorf("create issue: %w", err)
	}

	issue := toIssue(out)
	g.logger.Info(ctx, "Created GitHub issue #%d: %s", issue.Number, issue.Title)
	return &issue, nil
}

func (g *implGitHub) ListIssues(ctx context.Context, repo models.Repository) ([]models.Issue, error) {
	var out []ghIssue
	path := fmt.Sprintf("/repos/%s/%s/issues", repo.Owner, repo.Name)
	if err := g.do(ctx, repo, http.MethodGet, path, nil, &out); err != nil {
		return nil, fmt.Errorf("list issues: %w", err)
	}

	issues := make([]models.Issue, 0, len(out))
	for _, i := range out {
		issues = append(issues, toIssue(i))
	}
	return issues, nil
}

func (g *implGitHub) UpdateIssue(ctx context.Context, repo models.Repository, issueNumber int, task models.TaskItem) (*models.Issue, error) {
	g.logger.Info(ctx, "Updating GitHub issue #%d in %s", issueNumber, repo.FullName())

	payload := ghIssueUpdate{
		Title: task.Title,
		Body:  task.Description,
		State: "open",
	}
	if task.Status == models.TaskCompleted {
		payload.State = "closed"
	}

	var out ghIssue
	path := fmt.Sprintf("/repos/%s/%s/issues/%d", repo.Owner, repo.Name, issueNumber)
	if err := g.do(ctx, repo, http.MethodPatch, path, payload, &out); err != nil {
		return nil, fmt.Errorf("update issue #%d: %w", issueNumber, err)
	}

	issue := toIssue(out)
	return &issue, nil
}

func (g *implGitHub) ListMilestones(ctx context.Context, repo models.Repository) ([]string, error) {
	milestones, err := g.listMilestones(ctx, repo)
	if err != nil {
		return nil, err
	}

	titles := make([]string, 0, len(milestones))
	for _, m := range milestones {
		titles = append(titles, m.Title)
	}
	return titles, nil
}

func (g *implGitHub) CreateMilestone(ctx context.Context, repo models.Repository, title, description string, dueDate *time.Time) (string, error) {
	g.logger.Info(ctx, "Creating milestone %q in %s", title, repo.FullName())

	payload := ghNewMilestone{Title: title, Description: description}
	if dueDate != nil {
		payload.DueOn = dueDate.UTC().Format(time.RFC3339)
	}

	var out ghTag
	path := fmt.Sprintf("/repos/%s/%s/milestones", repo.Owner, repo.Name)
	if err := g.do(ctx, repo, http.MethodPost, path, payload, &out); err != nil {
		return "", fmt.Errorf("create milestone: %w", err)
	}
	return out.Title, nil
}

func (g *implGitHub) listMilestones(ctx context.Context, repo models.Repository) ([]ghTag, error) {
	var out []ghTag
	path := fmt.Sprintf("/repos/%s/%s/milestones", repo.Owner, repo.Name)
	if err := g.do(ctx, repo, http.MethodGet, path, nil, &out); err != nil {
		return nil, fmt.Errorf("list milestones: %w", err)
	}
	return out, nil
}

// findMilestone resolves a milestone title to its number, matching
// case-insensitively. An unknown title is not an error: the issue is
// created without a milestone.
func (g *implGitHub) findMilestone(ctx context.Context, repo models.Repository, title string) (int, error) {
	milestones, err := g.listMilestones(ctx, repo)
	if err != nil {
		return 0, err
	}
	for _, m := range milestones {
		if strings.EqualFold(m.Title, title) {
			return m.Number, nil
		}
	}
	g.logger.Warn(ctx, "Milestone %q not found in %s, creating issue without it", title, repo.FullName())
	return 0, nil
}

func (g *implGitHub) do(ctx context.Context, repo models.Repository, method, path string, payload, out interface{}) error {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("encode payload: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, g.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("Authorization", "Bearer "+repo.Token)
	req.Header.Set("User-Agent", userAgent)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return fmt.Errorf("github request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		b, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("github http %d: %s", resp.StatusCode, strings.TrimSpace(string(b)))
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode github response: %w", err)
		}
	}
	return nil
}

func toIssue(i ghIssue) models.Issue {
	issue := models.Issue{
		Number:    i.Number,
		Title:     i.Title,
		Body:      i.Body,
		State:     strings.ToLower(i.State),
		HTMLURL:   i.HTMLURL,
		CreatedAt: parseTime(i.CreatedAt),
		UpdatedAt: parseTime(i.UpdatedAt),
	}
	for _, l := range i.Labels {
		issue.Labels = append(issue.Labels, l.Name)
	}
	if i.Assignee != nil {
		issue.Assignee = i.Assignee.Login
	}
	if i.Milestone != nil {
		issue.Milestone = i.Milestone.Title
	}
	return issue
}

// parseTime falls back to now when the API omits a timestamp.
func parseTime(raw string) time.Time {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t
	}
	return time.Now().UTC()
}

func mergeLabels(taskLabels, defaults []string) []string {
	out := append([]string(nil), taskLabels...)
	for _, d := range defaults {
		found := false
		for _, l := range out {
			if l == d {
				found = true
				break
			}
		}
		if !found {
			out = append(out, d)
		}
	}
	return out
}
