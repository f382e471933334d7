// Package action defines the typed action request and the dispatcher that
// routes it to one of the issue operations.
package action

import (
	"fmt"
	"math"
	"strings"

	"github.com/lnr-dev/lnr/internal/linear"
)

// Action tags one operation of the command surface.
type Action string

const (
	ActionSearch  Action = "search"
	ActionGet     Action = "get"
	ActionUpdate  Action = "update"
	ActionComment Action = "comment"
	ActionCreate  Action = "create"
	ActionGraphQL Action = "graphql"
	ActionMe      Action = "me"
	ActionHelp    Action = "help"
)

// AssigneeMe is the sentinel assignee value resolving to the viewer.
const AssigneeMe = "me"

// Filter is the structured search filter as supplied by the caller. All
// fields are optional; only the ones present participate in the query.
type Filter struct {
	Assignee string
	State    string
	Priority *int
	Team     string
}

// Request is one validated action request. Exactly one Action tag is active;
// which other fields are meaningful depends on it. A Request only exists
// after ParseRequest has accepted the raw input, so handlers never re-check
// field presence.
type Request struct {
	Action Action

	// search
	Query  string
	Filter *Filter

	// get / update / comment
	ID string

	// update
	State       string
	Priority    *int
	Assignee    *string // nil with AssigneeSet means explicit unassignment
	AssigneeSet bool

	// comment
	Body string

	// create
	Title  string
	Team   string
	Labels []string

	// graphql
	GraphQL   string
	Variables map[string]any
}

// ParseRequest validates a loosely-typed action payload into a Request.
// Unknown actions, missing required fields and out-of-range priorities are
// all rejected here, before any network access.
func ParseRequest(raw map[string]any) (*Request, error) {
	action, _ := raw["action"].(string)
	req := &Request{Action: Action(action)}

	switch req.Action {
	case ActionSearch:
		switch q := raw["query"].(type) {
		case nil:
		case string:
			req.Query = q
		case map[string]any:
			filter, err := parseFilter(q)
			if err != nil {
				return nil, err
			}
			req.Filter = filter
		default:
			return nil, fmt.Errorf("query must be a string or a filter object")
		}

	case ActionGet:
		id, err := requireString(raw, "id")
		if err != nil {
			return nil, err
		}
		req.ID = id

	case ActionUpdate:
		id, err := requireString(raw, "id")
		if err != nil {
			return nil, err
		}
		req.ID = id
		req.State, _ = raw["state"].(string)
		priority, err := parsePriority(raw["priority"])
		if err != nil {
			return nil, err
		}
		req.Priority = priority
		if value, ok := raw["assignee"]; ok {
			req.AssigneeSet = true
			if value != nil {
				s, ok := value.(string)
				if !ok {
					return nil, fmt.Errorf("assignee must be a string or null")
				}
				req.Assignee = &s
			}
		}

	case ActionComment:
		id, err := requireString(raw, "id")
		if err != nil {
			return nil, err
		}
		req.ID = id
		body, err := requireString(raw, "body")
		if err != nil {
			return nil, err
		}
		req.Body = body

	case ActionCreate:
		title, err := requireString(raw, "title")
		if err != nil {
			return nil, err
		}
		req.Title = title
		team, err := requireString(raw, "team")
		if err != nil {
			return nil, err
		}
		req.Team = team
		req.Body, _ = raw["body"].(string)
		priority, err := parsePriority(raw["priority"])
		if err != nil {
			return nil, err
		}
		req.Priority = priority
		if labels, ok := raw["labels"].([]any); ok {
			for _, label := range labels {
				s, ok := label.(string)
				if !ok {
					return nil, fmt.Errorf("labels must be a list of strings")
				}
				req.Labels = append(req.Labels, s)
			}
		}

	case ActionGraphQL:
		query, err := requireString(raw, "graphql")
		if err != nil {
			return nil, err
		}
		req.GraphQL = query
		req.Variables, _ = raw["variables"].(map[string]any)

	case ActionMe, ActionHelp:
		// No fields.

	default:
		return nil, fmt.Errorf("unknown action %q", action)
	}

	return req, nil
}

func parseFilter(raw map[string]any) (*Filter, error) {
	filter := &Filter{}
	filter.Assignee, _ = raw["assignee"].(string)
	filter.State, _ = raw["state"].(string)
	filter.Team, _ = raw["team"].(string)
	priority, err := parsePriority(raw["priority"])
	if err != nil {
		return nil, err
	}
	filter.Priority = priority
	return filter, nil
}

// parsePriority accepts an absent, integer or float priority and enforces
// the 0-4 scale.
func parsePriority(value any) (*int, error) {
	if value == nil {
		return nil, nil
	}

	var p int
	switch n := value.(type) {
	case int:
		p = n
	case float64:
		if n != math.Trunc(n) {
			return nil, fmt.Errorf("priority must be an integer between 0 and 4")
		}
		p = int(n)
	default:
		return nil, fmt.Errorf("priority must be an integer between 0 and 4")
	}

	if !linear.ValidPriority(p) {
		return nil, fmt.Errorf("priority must be between 0 and 4, got %d", p)
	}
	return &p, nil
}

func requireString(raw map[string]any, field string) (string, error) {
	value, _ := raw[field].(string)
	if strings.TrimSpace(value) == "" {
		return "", fmt.Errorf("missing required field %q", field)
	}
	return value, nil
}
