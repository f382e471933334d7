package action

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/lnr-dev/lnr/internal/linear"
	"github.com/lnr-dev/lnr/internal/logging"
)

// commentPreviewLimit caps the echoed comment body in the confirmation.
const commentPreviewLimit = 100

// Dispatcher is the single entry point for all issue operations. It owns no
// per-call state; the only state it shares between calls is the read-mostly
// reference-data catalog.
type Dispatcher struct {
	client  *linear.Client
	catalog *linear.Catalog
}

// NewDispatcher creates a dispatcher backed by the given client and catalog.
func NewDispatcher(client *linear.Client, catalog *linear.Catalog) *Dispatcher {
	return &Dispatcher{client: client, catalog: catalog}
}

// Dispatch routes a validated request to its handler and returns the rendered
// result. Resolution misses (unknown state, team, assignee or issue) come
// back as descriptive result strings enumerating valid alternatives; only
// remote and transport failures return errors.
func (d *Dispatcher) Dispatch(ctx context.Context, req *Request) (string, error) {
	logging.Debug("dispatching action", "action", string(req.Action))

	switch req.Action {
	case ActionSearch:
		return d.handleSearch(ctx, req)
	case ActionGet:
		return d.handleGet(ctx, req)
	case ActionUpdate:
		return d.handleUpdate(ctx, req)
	case ActionComment:
		return d.handleComment(ctx, req)
	case ActionCreate:
		return d.handleCreate(ctx, req)
	case ActionGraphQL:
		return d.handleGraphQL(ctx, req)
	case ActionMe:
		return d.handleMe(ctx)
	case ActionHelp:
		return helpText, nil
	default:
		// ParseRequest rejects unknown tags; this is unreachable for
		// requests built through it.
		return "", fmt.Errorf("unknown action %q", req.Action)
	}
}

func (d *Dispatcher) handleSearch(ctx context.Context, req *Request) (string, error) {
	if req.Query != "" {
		issues, err := d.client.SearchIssues(ctx, req.Query)
		if err != nil {
			return "", err
		}
		return linear.FormatIssueList(issues), nil
	}

	filter := linear.IssueFilter{}
	if req.Filter == nil {
		// Default search: the viewer's open issues.
		viewer, err := d.catalog.Viewer(ctx)
		if err != nil {
			return "", err
		}
		filter.AssigneeID = viewer.ID
		filter.ExcludeDone = true
	} else {
		if req.Filter.Assignee != "" {
			id, miss, err := d.resolveAssigneeID(ctx, req.Filter.Assignee)
			if err != nil {
				return "", err
			}
			if miss != "" {
				return miss, nil
			}
			filter.AssigneeID = id
		}
		if req.Filter.Team != "" {
			teams, err := d.catalog.Teams(ctx)
			if err != nil {
				return "", err
			}
			team, ok := linear.ResolveTeam(teams, req.Filter.Team)
			if !ok {
				return unknownTeamResult(req.Filter.Team, teams), nil
			}
			filter.TeamID = team.ID
		}
		// State filters in search are exact-name matches resolved by the
		// service; fuzzy tiering applies only to update.
		filter.StateName = req.Filter.State
		filter.Priority = req.Filter.Priority
	}

	issues, err := d.client.ListIssues(ctx, filter)
	if err != nil {
		return "", err
	}
	return linear.FormatIssueList(issues), nil
}

func (d *Dispatcher) handleGet(ctx context.Context, req *Request) (string, error) {
	ref := linear.NormalizeIssueRef(req.ID)
	logging.Debug("resolving issue", "ref", req.ID, "normalized", ref)

	issue, err := d.client.GetIssue(ctx, ref)
	if err != nil {
		return "", err
	}
	if issue == nil {
		return fmt.Sprintf("Issue %q not found.", ref), nil
	}
	return linear.FormatIssue(issue), nil
}

func (d *Dispatcher) handleUpdate(ctx context.Context, req *Request) (string, error) {
	if req.State == "" && req.Priority == nil && !req.AssigneeSet {
		return "Nothing to update: no fields supplied.", nil
	}

	ref := linear.NormalizeIssueRef(req.ID)

	// The owning team is needed before anything else: state resolution is
	// scoped to that team's workflow catalog.
	issue, err := d.client.GetIssue(ctx, ref)
	if err != nil {
		return "", err
	}
	if issue == nil {
		return fmt.Sprintf("Issue %q not found.", ref), nil
	}

	input := map[string]any{}

	if req.State != "" {
		team, err := d.catalog.TeamByID(ctx, issue.Team.ID)
		if err != nil {
			return "", err
		}
		states := issue.Team.States
		if team != nil {
			states = team.States
		}
		state, ok := linear.ResolveState(states, req.State)
		if !ok {
			return fmt.Sprintf("Unknown state %q for team %s. Valid states: %s",
				req.State, issue.Team.Key, strings.Join(linear.StateNames(states), ", ")), nil
		}
		input["stateId"] = state.ID
	}

	if req.Priority != nil {
		input["priority"] = *req.Priority
	}

	if req.AssigneeSet {
		if req.Assignee == nil {
			input["assigneeId"] = nil
		} else {
			id, miss, err := d.resolveAssigneeID(ctx, *req.Assignee)
			if err != nil {
				return "", err
			}
			if miss != "" {
				return miss, nil
			}
			input["assigneeId"] = id
		}
	}

	updated, err := d.client.UpdateIssue(ctx, issue.ID, input)
	if err != nil {
		return "", err
	}
	return "Updated " + updated.Identifier + "\n" + linear.FormatIssue(updated), nil
}

func (d *Dispatcher) handleComment(ctx context.Context, req *Request) (string, error) {
	ref := linear.NormalizeIssueRef(req.ID)

	issue, err := d.client.GetIssue(ctx, ref)
	if err != nil {
		return "", err
	}
	if issue == nil {
		return fmt.Sprintf("Issue %q not found.", ref), nil
	}

	if err := d.client.CreateComment(ctx, issue.ID, req.Body); err != nil {
		return "", err
	}
	return fmt.Sprintf("Commented on %s: %s", issue.Identifier, previewBody(req.Body)), nil
}

func (d *Dispatcher) handleCreate(ctx context.Context, req *Request) (string, error) {
	teams, err := d.catalog.Teams(ctx)
	if err != nil {
		return "", err
	}
	team, ok := linear.ResolveTeam(teams, req.Team)
	if !ok {
		return unknownTeamResult(req.Team, teams), nil
	}

	input := map[string]any{
		"teamId": team.ID,
		"title":  req.Title,
	}
	if req.Body != "" {
		input["description"] = req.Body
	}
	if req.Priority != nil {
		input["priority"] = *req.Priority
	}
	if len(req.Labels) > 0 {
		catalog, err := d.client.TeamLabels(ctx, team.ID)
		if err != nil {
			return "", err
		}
		labelIDs := make([]string, 0, len(req.Labels))
		for _, name := range req.Labels {
			label, ok := linear.ResolveLabel(catalog, name)
			if !ok {
				return fmt.Sprintf("Unknown label %q for team %s. Available labels: %s",
					name, team.Key, strings.Join(linear.LabelNames(catalog), ", ")), nil
			}
			labelIDs = append(labelIDs, label.ID)
		}
		input["labelIds"] = labelIDs
	}

	issue, err := d.client.CreateIssue(ctx, input)
	if err != nil {
		return "", err
	}
	return "Created " + issue.Identifier + "\n" + linear.FormatIssue(issue), nil
}

func (d *Dispatcher) handleGraphQL(ctx context.Context, req *Request) (string, error) {
	data, err := d.client.Execute(ctx, req.GraphQL, req.Variables)
	if err != nil {
		return "", err
	}

	var pretty bytes.Buffer
	if err := json.Indent(&pretty, data, "", "  "); err != nil {
		return string(data), nil
	}
	return pretty.String(), nil
}

func (d *Dispatcher) handleMe(ctx context.Context) (string, error) {
	viewer, err := d.catalog.Viewer(ctx)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s <%s> (%s)", viewer.Name, viewer.Email, viewer.ID), nil
}

// resolveAssigneeID resolves an assignee reference to a user identifier. The
// sentinel "me" is the viewer; any other value is treated as an email and
// matched against the workspace user list. A miss returns a caller-visible
// result string naming the attempted email.
func (d *Dispatcher) resolveAssigneeID(ctx context.Context, ref string) (id string, miss string, err error) {
	if strings.EqualFold(strings.TrimSpace(ref), AssigneeMe) {
		viewer, err := d.catalog.Viewer(ctx)
		if err != nil {
			return "", "", err
		}
		return viewer.ID, "", nil
	}

	users, err := d.client.Users(ctx)
	if err != nil {
		return "", "", err
	}
	for _, user := range users {
		if strings.EqualFold(user.Email, strings.TrimSpace(ref)) {
			return user.ID, "", nil
		}
	}
	return "", fmt.Sprintf("No user found with email %q.", ref), nil
}

// unknownTeamResult renders the available-teams menu for a team miss.
func unknownTeamResult(ref string, teams []linear.Team) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Unknown team %q. Available teams:\n", ref)
	for _, team := range teams {
		fmt.Fprintf(&b, "- %s: %s\n", team.Key, team.Name)
	}
	return strings.TrimRight(b.String(), "\n")
}

// previewBody truncates a comment body to the preview limit, appending an
// ellipsis when truncated.
func previewBody(body string) string {
	runes := []rune(body)
	if len(runes) <= commentPreviewLimit {
		return body
	}
	return string(runes[:commentPreviewLimit]) + "..."
}

const helpText = `Available actions:
  search  - query (free text) OR query object {assignee, state, priority 0-4, team};
            no query returns your open issues
  get     - id (issue short code, URL or identifier); returns issue details
            with recent comments
  update  - id plus any of: state (fuzzy name), priority (0-4),
            assignee (email, "me", or null to unassign)
  comment - id and body; adds a comment to the issue
  create  - title and team (key or name), optional body, priority (0-4),
            labels (label names from the team's catalog)
  graphql - graphql (raw query string), optional variables
  me      - show the authenticated user
  help    - this text

Priorities: 0=No priority, 1=Urgent, 2=High, 3=Medium, 4=Low.`
