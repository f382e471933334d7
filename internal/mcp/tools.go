package mcp

// toolName is the single tool the server registers. The whole issue surface
// hangs off one dispatchable action so callers pay the schema cost once.
const toolName = "linear_issues"

// ToolDefinition is the tools/list entry shape.
type ToolDefinition struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	InputSchema map[string]any `json:"inputSchema"`
}

func toolDefinitions() []ToolDefinition {
	return []ToolDefinition{
		{
			Name: toolName,
			Description: "Work with Linear issues through one action. " +
				"search finds issues (free text, filter object, or no query for your open issues); " +
				"get shows one issue with recent comments; update changes state/priority/assignee; " +
				"comment adds a comment; create makes a new issue; graphql runs a raw query; " +
				"me shows the authenticated user; help describes every action.",
			InputSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"action": map[string]any{
						"type":        "string",
						"enum":        []string{"search", "get", "update", "comment", "create", "graphql", "me", "help"},
						"description": "The operation to perform.",
					},
					"query": map[string]any{
						"description": "For search: free text, or an object with optional assignee (email or \"me\"), state, priority (0-4), team.",
					},
					"id": map[string]any{
						"type":        "string",
						"description": "Issue reference: short code (ENG-123), issue URL, or identifier.",
					},
					"state": map[string]any{
						"type":        "string",
						"description": "For update: target state name; fuzzy-matched against the issue's team workflow.",
					},
					"priority": map[string]any{
						"type":        "integer",
						"minimum":     0,
						"maximum":     4,
						"description": "0=No priority, 1=Urgent, 2=High, 3=Medium, 4=Low.",
					},
					"assignee": map[string]any{
						"description": "For update: email address, \"me\", or null to unassign.",
					},
					"labels": map[string]any{
						"type":        "array",
						"items":       map[string]any{"type": "string"},
						"description": "For create: label names to attach, resolved against the team's label catalog.",
					},
					"body": map[string]any{
						"type":        "string",
						"description": "Comment body, or issue description for create.",
					},
					"title": map[string]any{
						"type":        "string",
						"description": "For create: issue title.",
					},
					"team": map[string]any{
						"type":        "string",
						"description": "For create: team key or name.",
					},
					"graphql": map[string]any{
						"type":        "string",
						"description": "For graphql: the raw query or mutation document.",
					},
					"variables": map[string]any{
						"type":        "object",
						"description": "For graphql: query variables.",
					},
				},
				"required": []string{"action"},
			},
		},
	}
}
