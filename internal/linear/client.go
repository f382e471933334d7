// Package linear provides the client, reference-data cache, resolvers and
// formatters for the Linear GraphQL API.
package linear

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/lnr-dev/lnr/internal/config"
	"github.com/lnr-dev/lnr/internal/logging"
)

// defaultPageSize caps every list query. There is no pagination beyond it.
const defaultPageSize = 20

// Client executes GraphQL queries and mutations against a single Linear
// endpoint. Exactly one outbound request is made per call; there are no
// retries and no backoff.
type Client struct {
	endpoint   string
	authHeader string
	http       *http.Client
}

// NewClient creates a client from configuration. A missing API key is a
// configuration error reported here, before any network access.
func NewClient(cfg *config.Config) (*Client, error) {
	if err := config.ValidateConfig(cfg); err != nil {
		return nil, err
	}

	logging.Debug("linear client configured",
		"endpoint", cfg.Linear.Endpoint,
		"api_key", logging.MaskSensitive(cfg.Linear.APIKey))

	return &Client{
		endpoint: cfg.Linear.Endpoint,
		// Personal API keys go in the Authorization header verbatim, with
		// no scheme prefix. The value is fixed at construction and never
		// re-derived per call.
		authHeader: cfg.Linear.APIKey,
		http:       &http.Client{},
	}, nil
}

// graphqlRequest is the POST body sent to the endpoint.
type graphqlRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

// graphqlResponse is the envelope every Linear response arrives in.
type graphqlResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

// Execute sends one query or mutation with its variables and returns the raw
// data payload. A non-empty service error list is newline-joined into a
// single error.
func (c *Client) Execute(ctx context.Context, query string, variables map[string]any) (json.RawMessage, error) {
	body, err := json.Marshal(graphqlRequest{Query: query, Variables: variables})
	if err != nil {
		return nil, fmt.Errorf("failed to encode graphql request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build graphql request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", c.authHeader)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("graphql request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<22))
	if err != nil {
		return nil, fmt.Errorf("failed to read graphql response: %w", err)
	}

	var envelope graphqlResponse
	if err := json.Unmarshal(raw, &envelope); err != nil {
		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return nil, fmt.Errorf("linear api returned status %d", resp.StatusCode)
		}
		return nil, fmt.Errorf("invalid graphql response: %w", err)
	}

	if len(envelope.Errors) > 0 {
		messages := make([]string, 0, len(envelope.Errors))
		for _, e := range envelope.Errors {
			messages = append(messages, e.Message)
		}
		return nil, fmt.Errorf("linear api error: %s", strings.Join(messages, "\n"))
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("linear api returned status %d", resp.StatusCode)
	}

	return envelope.Data, nil
}

// issuePayload mirrors the wire shape of an issue; numbers arrive as floats
// and connections as nested node lists.
type issuePayload struct {
	ID          string        `json:"id"`
	Identifier  string        `json:"identifier"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	URL         string        `json:"url"`
	Priority    float64       `json:"priority"`
	DueDate     string        `json:"dueDate"`
	Estimate    *float64      `json:"estimate"`
	State       WorkflowState `json:"state"`
	Assignee    *User         `json:"assignee"`
	Team        struct {
		ID   string `json:"id"`
		Key  string `json:"key"`
		Name string `json:"name"`
	} `json:"team"`
	Labels struct {
		Nodes []struct {
			Name string `json:"name"`
		} `json:"nodes"`
	} `json:"labels"`
	Comments struct {
		Nodes []struct {
			Body      string `json:"body"`
			CreatedAt string `json:"createdAt"`
			User      struct {
				Name string `json:"name"`
			} `json:"user"`
		} `json:"nodes"`
	} `json:"comments"`
}

func (p *issuePayload) toIssue() Issue {
	issue := Issue{
		ID:          p.ID,
		Identifier:  p.Identifier,
		Title:       p.Title,
		Description: p.Description,
		URL:         p.URL,
		Priority:    int(p.Priority),
		DueDate:     p.DueDate,
		Estimate:    p.Estimate,
		State:       p.State,
		Assignee:    p.Assignee,
		Team: Team{
			ID:   p.Team.ID,
			Key:  p.Team.Key,
			Name: p.Team.Name,
		},
	}
	for _, label := range p.Labels.Nodes {
		issue.Labels = append(issue.Labels, label.Name)
	}
	for _, comment := range p.Comments.Nodes {
		issue.Comments = append(issue.Comments, Comment{
			Body:      comment.Body,
			UserName:  comment.User.Name,
			CreatedAt: comment.CreatedAt,
		})
	}
	return issue
}

// Viewer fetches the identity associated with the active credential.
func (c *Client) Viewer(ctx context.Context) (*User, error) {
	data, err := c.Execute(ctx, queryViewer, nil)
	if err != nil {
		return nil, err
	}

	var payload struct {
		Viewer User `json:"viewer"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("failed to decode viewer: %w", err)
	}
	return &payload.Viewer, nil
}

// Teams fetches the full team catalog including each team's workflow states.
func (c *Client) Teams(ctx context.Context) ([]Team, error) {
	data, err := c.Execute(ctx, queryTeams, nil)
	if err != nil {
		return nil, err
	}

	var payload struct {
		Teams struct {
			Nodes []struct {
				ID     string `json:"id"`
				Key    string `json:"key"`
				Name   string `json:"name"`
				States struct {
					Nodes []WorkflowState `json:"nodes"`
				} `json:"states"`
			} `json:"nodes"`
		} `json:"teams"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("failed to decode teams: %w", err)
	}

	teams := make([]Team, 0, len(payload.Teams.Nodes))
	for _, node := range payload.Teams.Nodes {
		teams = append(teams, Team{
			ID:     node.ID,
			Key:    node.Key,
			Name:   node.Name,
			States: node.States.Nodes,
		})
	}
	return teams, nil
}

// TeamLabels fetches one team's label catalog, used to resolve label names
// on issue creation.
func (c *Client) TeamLabels(ctx context.Context, teamID string) ([]Label, error) {
	data, err := c.Execute(ctx, queryTeamLabels, map[string]any{"id": teamID})
	if err != nil {
		return nil, err
	}

	var payload struct {
		Team struct {
			Labels struct {
				Nodes []Label `json:"nodes"`
			} `json:"labels"`
		} `json:"team"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("failed to decode team labels: %w", err)
	}
	return payload.Team.Labels.Nodes, nil
}

// Users fetches the workspace user list, used for assignee email resolution.
func (c *Client) Users(ctx context.Context) ([]User, error) {
	data, err := c.Execute(ctx, queryUsers, nil)
	if err != nil {
		return nil, err
	}

	var payload struct {
		Users struct {
			Nodes []User `json:"nodes"`
		} `json:"users"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("failed to decode users: %w", err)
	}
	return payload.Users.Nodes, nil
}

// GetIssue fetches one issue with its five most recent comments. The ref may
// be a short code or a canonical identifier; the service accepts both. A
// missing issue returns (nil, nil) so callers can render a not-found result
// instead of an error.
func (c *Client) GetIssue(ctx context.Context, ref string) (*Issue, error) {
	data, err := c.Execute(ctx, queryIssue, map[string]any{"id": ref})
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, err
	}

	var payload struct {
		Issue *issuePayload `json:"issue"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("failed to decode issue: %w", err)
	}
	if payload.Issue == nil {
		return nil, nil
	}
	issue := payload.Issue.toIssue()
	return &issue, nil
}

// SearchIssues runs a full-text search across issues, capped at the fixed
// page size.
func (c *Client) SearchIssues(ctx context.Context, text string) ([]Issue, error) {
	data, err := c.Execute(ctx, queryIssueSearch, map[string]any{
		"query": text,
		"first": defaultPageSize,
	})
	if err != nil {
		return nil, err
	}
	return decodeIssueList(data, "issueSearch")
}

// ListIssues fetches issues matching a conjunctive filter, capped at the
// fixed page size.
func (c *Client) ListIssues(ctx context.Context, filter IssueFilter) ([]Issue, error) {
	data, err := c.Execute(ctx, queryIssues, map[string]any{
		"filter": buildIssueFilter(filter),
		"first":  defaultPageSize,
	})
	if err != nil {
		return nil, err
	}
	return decodeIssueList(data, "issues")
}

// UpdateIssue applies the given mutation input to one issue. Only the fields
// present in input are touched on the remote side.
func (c *Client) UpdateIssue(ctx context.Context, id string, input map[string]any) (*Issue, error) {
	data, err := c.Execute(ctx, mutationIssueUpdate, map[string]any{
		"id":    id,
		"input": input,
	})
	if err != nil {
		return nil, err
	}

	var payload struct {
		IssueUpdate struct {
			Success bool          `json:"success"`
			Issue   *issuePayload `json:"issue"`
		} `json:"issueUpdate"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("failed to decode issue update: %w", err)
	}
	if !payload.IssueUpdate.Success || payload.IssueUpdate.Issue == nil {
		return nil, fmt.Errorf("issue update was not applied")
	}
	issue := payload.IssueUpdate.Issue.toIssue()
	return &issue, nil
}

// CreateIssue creates a new issue from the given mutation input.
func (c *Client) CreateIssue(ctx context.Context, input map[string]any) (*Issue, error) {
	data, err := c.Execute(ctx, mutationIssueCreate, map[string]any{"input": input})
	if err != nil {
		return nil, err
	}

	var payload struct {
		IssueCreate struct {
			Success bool          `json:"success"`
			Issue   *issuePayload `json:"issue"`
		} `json:"issueCreate"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("failed to decode issue create: %w", err)
	}
	if !payload.IssueCreate.Success || payload.IssueCreate.Issue == nil {
		return nil, fmt.Errorf("issue create was not applied")
	}
	issue := payload.IssueCreate.Issue.toIssue()
	return &issue, nil
}

// CreateComment posts a comment on the issue with the given canonical ID.
func (c *Client) CreateComment(ctx context.Context, issueID, body string) error {
	data, err := c.Execute(ctx, mutationCommentCreate, map[string]any{
		"input": map[string]any{
			"issueId": issueID,
			"body":    body,
		},
	})
	if err != nil {
		return err
	}

	var payload struct {
		CommentCreate struct {
			Success bool `json:"success"`
		} `json:"commentCreate"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return fmt.Errorf("failed to decode comment create: %w", err)
	}
	if !payload.CommentCreate.Success {
		return fmt.Errorf("comment was not created")
	}
	return nil
}

// decodeIssueList unpacks a node list keyed by field from a data payload.
func decodeIssueList(data json.RawMessage, field string) ([]Issue, error) {
	var payload map[string]struct {
		Nodes []issuePayload `json:"nodes"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("failed to decode issue list: %w", err)
	}

	nodes := payload[field].Nodes
	issues := make([]Issue, 0, len(nodes))
	for i := range nodes {
		issues = append(issues, nodes[i].toIssue())
	}
	return issues, nil
}

// buildIssueFilter translates an IssueFilter into the service's filter input,
// including only the fields that are set.
func buildIssueFilter(filter IssueFilter) map[string]any {
	out := map[string]any{}
	if filter.AssigneeID != "" {
		out["assignee"] = map[string]any{"id": map[string]any{"eq": filter.AssigneeID}}
	}
	if filter.StateName != "" {
		out["state"] = map[string]any{"name": map[string]any{"eqIgnoreCase": filter.StateName}}
	} else if filter.ExcludeDone {
		out["state"] = map[string]any{"type": map[string]any{"nin": []string{"completed", "canceled"}}}
	}
	if filter.Priority != nil {
		out["priority"] = map[string]any{"eq": *filter.Priority}
	}
	if filter.TeamID != "" {
		out["team"] = map[string]any{"id": map[string]any{"eq": filter.TeamID}}
	}
	return out
}

// isNotFound reports whether a service error describes a missing entity.
// Linear reports lookups of unknown issues as errors rather than null data.
func isNotFound(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "entity not found") || strings.Contains(msg, "could not find")
}
