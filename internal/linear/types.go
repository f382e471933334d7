package linear

// User is a Linear user account.
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// WorkflowState is one named status within a team's workflow. Type is the
// coarse category: triage, backlog, unstarted, started, completed or canceled.
type WorkflowState struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Type string `json:"type"`
}

// Team is a Linear team together with its ordered workflow state catalog.
type Team struct {
	ID     string          `json:"id"`
	Key    string          `json:"key"`
	Name   string          `json:"name"`
	States []WorkflowState `json:"states"`
}

// Label is one entry in a team's label catalog.
type Label struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Comment is a single issue comment.
type Comment struct {
	Body      string `json:"body"`
	UserName  string `json:"user_name"`
	CreatedAt string `json:"created_at"`
}

// Issue is the transient, per-call view of a remote issue. It is never
// persisted; it exists only between one query and one render.
type Issue struct {
	ID          string        `json:"id"`
	Identifier  string        `json:"identifier"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	URL         string        `json:"url"`
	Priority    int           `json:"priority"`
	DueDate     string        `json:"due_date"`
	Estimate    *float64      `json:"estimate"`
	State       WorkflowState `json:"state"`
	Assignee    *User         `json:"assignee"`
	Team        Team          `json:"team"`
	Labels      []string      `json:"labels"`
	Comments    []Comment     `json:"comments"`
}

// IssueFilter is the structured search filter. Only set fields participate
// in the remote query; AssigneeID and TeamID must already be canonical
// identifiers, StateName is matched case-insensitively by the service.
type IssueFilter struct {
	AssigneeID string
	StateName  string
	Priority   *int
	TeamID     string

	// ExcludeDone restricts results to states whose category is not
	// completed or canceled. Used by the default search.
	ExcludeDone bool
}

// priorityLabels maps the Linear priority scale to its display labels.
var priorityLabels = map[int]string{
	0: "No priority",
	1: "Urgent",
	2: "High",
	3: "Medium",
	4: "Low",
}

// PriorityLabel returns the display label for a priority value. Values
// outside the 0-4 scale render as "Unknown" rather than failing.
func PriorityLabel(priority int) string {
	if label, ok := priorityLabels[priority]; ok {
		return label
	}
	return "Unknown"
}

// ValidPriority reports whether p is on the 0-4 priority scale.
func ValidPriority(p int) bool {
	_, ok := priorityLabels[p]
	return ok
}
