package linear

import (
	"fmt"
	"strings"
)

// FormatIssue renders one issue in the fixed multi-line layout: header,
// summary line, optional due date, optional description, optional link.
// Rendering is deterministic for the same record.
func FormatIssue(issue *Issue) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s: %s\n", issue.Identifier, issue.Title)
	fmt.Fprintf(&b, "State: %s | Priority: %s | Assignee: %s\n",
		issue.State.Name, PriorityLabel(issue.Priority), assigneeName(issue.Assignee))

	if issue.DueDate != "" {
		fmt.Fprintf(&b, "Due: %s\n", issue.DueDate)
	}
	if len(issue.Labels) > 0 {
		fmt.Fprintf(&b, "Labels: %s\n", strings.Join(issue.Labels, ", "))
	}
	if issue.Description != "" {
		fmt.Fprintf(&b, "\n%s\n", issue.Description)
	}
	if len(issue.Comments) > 0 {
		b.WriteString("\nRecent comments:\n")
		for _, comment := range issue.Comments {
			fmt.Fprintf(&b, "- %s: %s\n", commentAuthor(comment), comment.Body)
		}
	}
	if issue.URL != "" {
		fmt.Fprintf(&b, "\n%s\n", issue.URL)
	}

	return strings.TrimRight(b.String(), "\n")
}

// FormatIssueList renders issues one per line in a fixed bracketed
// state/priority format with a trailing assignee. An empty collection
// renders the literal no-issues sentinel.
func FormatIssueList(issues []Issue) string {
	if len(issues) == 0 {
		return "No issues found."
	}

	var b strings.Builder
	for _, issue := range issues {
		fmt.Fprintf(&b, "%s [%s] [%s] %s (%s)\n",
			issue.Identifier, issue.State.Name, PriorityLabel(issue.Priority),
			issue.Title, assigneeName(issue.Assignee))
	}
	return strings.TrimRight(b.String(), "\n")
}

// FormatTeams renders the team catalog with each team's workflow states.
func FormatTeams(teams []Team) string {
	if len(teams) == 0 {
		return "No teams found."
	}

	var b strings.Builder
	for _, team := range teams {
		fmt.Fprintf(&b, "%s: %s\n", team.Key, team.Name)
		if len(team.States) > 0 {
			fmt.Fprintf(&b, "  States: %s\n", strings.Join(StateNames(team.States), ", "))
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func assigneeName(user *User) string {
	if user == nil || user.Name == "" {
		return "Unassigned"
	}
	return user.Name
}

func commentAuthor(comment Comment) string {
	if comment.UserName == "" {
		return "Unknown"
	}
	return comment.UserName
}
