package linear

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPriorityLabel(t *testing.T) {
	testCases := []struct {
		priority int
		expected string
	}{
		{priority: 0, expected: "No priority"},
		{priority: 1, expected: "Urgent"},
		{priority: 2, expected: "High"},
		{priority: 3, expected: "Medium"},
		{priority: 4, expected: "Low"},
		{priority: 5, expected: "Unknown"},
		{priority: -1, expected: "Unknown"},
		{priority: 99, expected: "Unknown"},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.expected, PriorityLabel(tc.priority), "priority %d", tc.priority)
	}
}

func TestFormatIssue(t *testing.T) {
	estimate := 3.0
	issue := &Issue{
		Identifier:  "ENG-123",
		Title:       "Payment webhook retries forever",
		Description: "The webhook handler never gives up.",
		URL:         "https://linear.app/acme/issue/ENG-123",
		Priority:    1,
		DueDate:     "2026-09-01",
		Estimate:    &estimate,
		State:       WorkflowState{Name: "In Progress", Type: "started"},
		Assignee:    &User{Name: "Jane Doe", Email: "jane@acme.com"},
		Labels:      []string{"bug", "payments"},
	}

	got := FormatIssue(issue)
	lines := strings.Split(got, "\n")

	assert.Equal(t, "ENG-123: Payment webhook retries forever", lines[0])
	assert.Equal(t, "State: In Progress | Priority: Urgent | Assignee: Jane Doe", lines[1])
	assert.Equal(t, "Due: 2026-09-01", lines[2])
	assert.Contains(t, got, "Labels: bug, payments")
	assert.Contains(t, got, "\n\nThe webhook handler never gives up.")
	assert.Contains(t, got, "\n\nhttps://linear.app/acme/issue/ENG-123")

	// Deterministic for the same record.
	assert.Equal(t, got, FormatIssue(issue))
}

func TestFormatIssueMinimal(t *testing.T) {
	issue := &Issue{
		Identifier: "OPS-1",
		Title:      "Rotate certs",
		Priority:   0,
		State:      WorkflowState{Name: "Todo"},
	}

	got := FormatIssue(issue)
	assert.Equal(t, "OPS-1: Rotate certs\nState: Todo | Priority: No priority | Assignee: Unassigned", got)
}

func TestFormatIssueComments(t *testing.T) {
	issue := &Issue{
		Identifier: "ENG-5",
		Title:      "Flaky test",
		State:      WorkflowState{Name: "Todo"},
		Comments: []Comment{
			{Body: "Seen again today", UserName: "Jane Doe"},
			{Body: "Repros on CI only"},
		},
	}

	got := FormatIssue(issue)
	assert.Contains(t, got, "Recent comments:")
	assert.Contains(t, got, "- Jane Doe: Seen again today")
	assert.Contains(t, got, "- Unknown: Repros on CI only")
}

func TestFormatIssueList(t *testing.T) {
	issues := []Issue{
		{
			Identifier: "ENG-1",
			Title:      "First",
			Priority:   2,
			State:      WorkflowState{Name: "Todo"},
			Assignee:   &User{Name: "Jane Doe"},
		},
		{
			Identifier: "ENG-2",
			Title:      "Second",
			Priority:   9,
			State:      WorkflowState{Name: "Done"},
		},
	}

	got := FormatIssueList(issues)
	assert.Equal(t,
		"ENG-1 [Todo] [High] First (Jane Doe)\n"+
			"ENG-2 [Done] [Unknown] Second (Unassigned)",
		got)
}

func TestFormatIssueListEmpty(t *testing.T) {
	assert.Equal(t, "No issues found.", FormatIssueList(nil))
	assert.Equal(t, "No issues found.", FormatIssueList([]Issue{}))
}

func TestFormatTeams(t *testing.T) {
	teams := []Team{
		{Key: "ENG", Name: "Engineering", States: []WorkflowState{{Name: "Todo"}, {Name: "Done"}}},
		{Key: "OPS", Name: "Operations"},
	}

	got := FormatTeams(teams)
	assert.Equal(t, "ENG: Engineering\n  States: Todo, Done\nOPS: Operations", got)

	assert.Equal(t, "No teams found.", FormatTeams(nil))
}
