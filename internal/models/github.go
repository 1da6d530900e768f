package models

import "time"

// Repository holds the coordinates of the GitHub repository issues are
// published to. Passed by value into sync calls, never persisted.
type Repository struct {
	Owner            string
	Name             string
	Token            string
	DefaultMilestone string
	DefaultLabels    []string
}

// FullName returns "owner/name" for logging.
func (r Repository) FullName() string {
	return r.Owner + "/" + r.Name
}

// Issue is the subset of a GitHub issue the sync flow cares about.
type Issue struct {
	Number    int       `json:"number"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	State     string    `json:"state"`
	Labels    []string  `json:"labels"`
	Assignee  string    `json:"assignee,omitempty"`
	Milestone string    `json:"milestone,omitempty"`
	HTMLURL   string    `json:"html_url"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
