package llm

import (
	"testing"
	"time"

	"github.com/meetpilot/meetpilot/internal/models"
)

func TestParseTasks(t *testing.T) {
	raw := "```json\n" + `[
		{
			"title": "Fix the flaky login test",
			"description": "Login e2e test fails intermittently",
			"priority": 3,
			"assigned_to": "alice",
			"due_date": "2025-06-15",
			"labels": ["bug", "ci"],
			"milestone_title": "Q3 Cleanup"
		},
		{
			"title": "Write migration runbook",
			"description": "",
			"priority": 0,
			"assigned_to": "",
			"due_date": "null",
			"labels": null,
			"milestone_title": ""
		}
	]` + "\n```"

	tasks, err := parseTasks(raw)
	if err != nil {
		t.Fatalf("parseTasks() error = %v", err)
	}
	if len(tasks) != 2 {
		t.Fatalf("len = %d, want 2", len(tasks))
	}

	first := tasks[0]
	if first.Title != "Fix the flaky login test" {
		t.Errorf("Title = %q", first.Title)
	}
	if first.Priority != models.PriorityHigh {
		t.Errorf("Priority = %v, want %v", first.Priority, models.PriorityHigh)
	}
	if first.AssignedTo != "alice" {
		t.Errorf("AssignedTo = %q", first.AssignedTo)
	}
	if first.Status != models.TaskOpen {
		t.Errorf("Status = %v, want %v", first.Status, models.TaskOpen)
	}
	if first.DueDate == nil {
		t.Fatal("DueDate should be parsed")
	}
	want := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
	if !first.DueDate.Equal(want) {
		t.Errorf("DueDate = %v, want %v", first.DueDate, want)
	}

	second := tasks[1]
	if second.DueDate != nil {
		t.Errorf(`DueDate = %v, want nil for "null"`, second.DueDate)
	}
	if second.Priority != models.Priority(0) {
		t.Errorf("Priority = %v, want 0 (normalization coerces later)", second.Priority)
	}
}

func TestParseTasksInvalidInput(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"empty", ""},
		{"fences only", "```json\n```"},
		{"not json", "Sure! Here are the tasks I found:"},
		{"object not array", `{"title": "x"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := parseTasks(tt.raw); err == nil {
				t.Errorf("parseTasks(%q) should fail", tt.raw)
			}
		})
	}
}

func TestParseTasksEmptyArray(t *testing.T) {
	tasks, err := parseTasks("[]")
	if err != nil {
		t.Fatalf("parseTasks([]) error = %v", err)
	}
	if len(tasks) != 0 {
		t.Errorf("len = %d, want 0 (a meeting can yield no tasks)", len(tasks))
	}
}

func TestStripFences(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"no fences", `[{"a":1}]`, `[{"a":1}]`},
		{"json fence", "```json\n[1]\n```", "[1]"},
		{"bare fence", "```\n[1]\n```", "[1]"},
		{"surrounding whitespace", "  \n```json\n[1]\n```\n  ", "[1]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := stripFences(tt.raw); got != tt.want {
				t.Errorf("stripFences() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseDueDate(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantNil bool
	}{
		{"date only", "2025-06-15", false},
		{"rfc3339", "2025-06-15T14:30:00Z", false},
		{"empty", "", true},
		{"null literal", "null", true},
		{"garbage", "next tuesday", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseDueDate(tt.raw)
			if (got == nil) != tt.wantNil {
				t.Errorf("parseDueDate(%q) = %v, wantNil %v", tt.raw, got, tt.wantNil)
			}
		})
	}
}
