package models

import "time"

// Priority of a task item. Values mirror the 1-4 scale the language
// backend is asked to emit.
type Priority int

const (
	PriorityLow Priority = iota + 1
	PriorityMedium
	PriorityHigh
	PriorityCritical
)

// Valid reports whether p is one of the four defined priorities.
func (p Priority) Valid() bool {
	return p >= PriorityLow && p <= PriorityCritical
}

func (p Priority) String() string {
	switch p {
	case PriorityLow:
		return "low"
	case PriorityMedium:
		return "medium"
	case PriorityHigh:
		return "high"
	case PriorityCritical:
		return "critical"
	default:
		return "unknown"
	}
}

// TaskStatus is the workflow state of a task item.
type TaskStatus string

const (
	TaskOpen       TaskStatus = "open"
	TaskInProgress TaskStatus = "in_progress"
	TaskCompleted  TaskStatus = "completed"
	TaskCancelled  TaskStatus = "cancelled"
)

// TaskItem is one actionable unit extracted from a meeting. IssueNumber
// and IssueURL stay empty until the task has been published to GitHub.
type TaskItem struct {
	ID             string     `json:"id"`
	Title          string     `json:"title"`
	Description    string     `json:"description"`
	Priority       Priority   `json:"priority"`
	AssignedTo     string     `json:"assigned_to"`
	DueDate        *time.Time `json:"due_date,omitempty"`
	Labels         []string   `json:"labels"`
	MilestoneTitle string     `json:"milestone_title"`
	Status         TaskStatus `json:"status"`
	IssueNumber    int        `json:"issue_number,omitempty"`
	IssueURL       string     `json:"issue_url,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
}

// Clone returns a deep copy of the task.
func (t TaskItem) Clone() TaskItem {
	cp := t
	if t.DueDate != nil {
		due := *t.DueDate
		cp.DueDate = &due
	}
	if t.Labels != nil {
		cp.Labels = append([]string(nil), t.Labels...)
	}
	return cp
}
