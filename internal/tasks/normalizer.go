package tasks

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/meetpilot/meetpilot/internal/models"
)

const (
	maxTitleLen       = 100
	maxDescriptionLen = 10000
	maxLabels         = 10
	ellipsis          = "..."
)

// Normalize brings a freshly extracted task into policy-compliant shape
// before it is stored or published. It takes and returns an owned value;
// the input is never mutated. Normalizing an already-normalized task is
// a no-op.
func Normalize(task models.TaskItem) models.TaskItem {
	out := task.Clone()

	if out.ID == "" {
		out.ID = uuid.NewString()
	}
	if out.CreatedAt.IsZero() {
		out.CreatedAt = time.Now().UTC()
	}

	out.Title = truncate(out.Title, maxTitleLen)
	out.Description = truncate(out.Description, maxDescriptionLen)

	if !out.Priority.Valid() {
		out.Priority = models.PriorityMedium
	}
	if out.Status == "" {
		out.Status = models.TaskOpen
	}

	out.Labels = cleanLabels(out.Labels)
	out.MilestoneTitle = truncate(out.MilestoneTitle, maxTitleLen)

	return out
}

// NormalizeAll normalizes a slice of tasks, returning a new slice.
func NormalizeAll(tasks []models.TaskItem) []models.TaskItem {
	out := make([]models.TaskItem, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, Normalize(t))
	}
	return out
}

// truncate caps s at max characters, keeping the first max-3 and
// appending an ellipsis marker. Counts runes, not bytes, so multibyte
// text is never cut mid-character.
func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-len(ellipsis)]) + ellipsis
}

// cleanLabels drops blank labels and caps the list, preserving order.
func cleanLabels(labels []string) []string {
	if labels == nil {
		return nil
	}
	out := make([]string, 0, len(labels))
	for _, l := range labels {
		if strings.TrimSpace(l) == "" {
			continue
		}
		out = append(out, l)
		if len(out) == maxLabels {
			break
		}
	}
	return out
}
