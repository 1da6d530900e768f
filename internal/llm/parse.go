package llm

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/meetpilot/meetpilot/internal/models"
)

// taskPayload is the JSON contract the extraction prompt asks the model
// to follow.
type taskPayload struct {
	Title          string   `json:"title"`
	Description    string   `json:"description"`
	Priority       int      `json:"priority"`
	AssignedTo     string   `json:"assigned_to"`
	DueDate        string   `json:"due_date"`
	Labels         []string `json:"labels"`
	MilestoneTitle string   `json:"milestone_title"`
}

// parseTasks decodes the model output into task items. Models often wrap
// JSON in markdown fences, so those are stripped first.
func parseTasks(raw string) ([]models.TaskItem, error) {
	raw = stripFences(raw)
	if raw == "" {
		return nil, fmt.Errorf("empty model output")
	}

	var payloads []taskPayload
	if err := json.Unmarshal([]byte(raw), &payloads); err != nil {
		return nil, fmt.Errorf("decode task array: %w", err)
	}

	tasks := make([]models.TaskItem, 0, len(payloads))
	for _, p := range payloads {
		task := models.TaskItem{
			Title:          p.Title,
			Description:    p.Description,
			Priority:       models.Priority(p.Priority),
			AssignedTo:     p.AssignedTo,
			Labels:         p.Labels,
			MilestoneTitle: p.MilestoneTitle,
			Status:         models.TaskOpen,
		}
		if due := parseDueDate(p.DueDate); due != nil {
			task.DueDate = due
		}
		tasks = append(tasks, task)
	}
	return tasks, nil
}

func stripFences(raw string) string {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "```") {
		if i := strings.Index(raw, "\n"); i >= 0 {
			raw = raw[i+1:]
		}
		raw = strings.TrimSuffix(strings.TrimSpace(raw), "```")
	}
	return strings.TrimSpace(raw)
}

func parseDueDate(raw string) *time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" || strings.EqualFold(raw, "null") {
		return nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return &t
		}
	}
	return nil
}
