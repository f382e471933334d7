package linear

import (
	"regexp"
	"strings"
)

var (
	// shortCodePattern matches a bare team-key + number reference.
	shortCodePattern = regexp.MustCompile(`^[A-Za-z]+-[0-9]+$`)

	// issueURLPattern extracts the short code from a Linear issue URL,
	// e.g. https://linear.app/acme/issue/ENG-123/some-slug.
	issueURLPattern = regexp.MustCompile(`/issue/([A-Za-z]+-[0-9]+)`)
)

// NormalizeIssueRef normalizes a caller-supplied issue reference. Short codes
// are uppercased, issue URLs have their short code extracted and uppercased,
// and anything else is passed through unchanged as an opaque identifier. The
// function is total and performs no network access; unrecognized references
// only fail later if the service cannot find them.
func NormalizeIssueRef(ref string) string {
	ref = strings.TrimSpace(ref)
	if m := issueURLPattern.FindStringSubmatch(ref); m != nil {
		return strings.ToUpper(m[1])
	}
	if shortCodePattern.MatchString(ref) {
		return strings.ToUpper(ref)
	}
	return ref
}

// stateAliases maps canonical state labels to the free-text spellings that
// should reach them when no exact or substring match exists.
var stateAliases = map[string][]string{
	"done":        {"done", "complete", "completed", "finished"},
	"in progress": {"in progress", "started", "doing", "wip", "in prog"},
	"todo":        {"todo", "to do", "backlog", "open"},
	"canceled":    {"canceled", "cancelled", "closed", "wontfix"},
}

// ResolveState matches a free-text state name against a team's workflow
// state catalog in three ordered tiers: case-insensitive exact match, then
// catalog-name-contains-query substring match, then alias lookup against the
// canonical buckets. The first tier to hit wins. Returns false if all tiers
// miss.
func ResolveState(states []WorkflowState, query string) (*WorkflowState, bool) {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil, false
	}

	for i := range states {
		if strings.ToLower(states[i].Name) == q {
			return &states[i], true
		}
	}

	for i := range states {
		if strings.Contains(strings.ToLower(states[i].Name), q) {
			return &states[i], true
		}
	}

	for canonical, aliases := range stateAliases {
		for _, alias := range aliases {
			if alias != q {
				continue
			}
			for i := range states {
				if strings.Contains(strings.ToLower(states[i].Name), canonical) {
					return &states[i], true
				}
			}
		}
	}

	return nil, false
}

// ResolveTeam matches a team reference case-insensitively against team keys
// and display names. Team keys are short and unambiguous, so there is no
// fuzzy tiering here.
func ResolveTeam(teams []Team, ref string) (*Team, bool) {
	q := strings.ToLower(strings.TrimSpace(ref))
	if q == "" {
		return nil, false
	}
	for i := range teams {
		if strings.ToLower(teams[i].Key) == q || strings.ToLower(teams[i].Name) == q {
			return &teams[i], true
		}
	}
	return nil, false
}

// ResolveLabel matches a label name case-insensitively against a team's
// label catalog. Like teams, label names are exact references; there is no
// fuzzy tiering.
func ResolveLabel(labels []Label, name string) (*Label, bool) {
	q := strings.ToLower(strings.TrimSpace(name))
	if q == "" {
		return nil, false
	}
	for i := range labels {
		if strings.ToLower(labels[i].Name) == q {
			return &labels[i], true
		}
	}
	return nil, false
}

// LabelNames returns the display names of a label catalog in order.
func LabelNames(labels []Label) []string {
	names := make([]string, 0, len(labels))
	for _, l := range labels {
		names = append(names, l.Name)
	}
	return names
}

// StateNames returns the display names of a state catalog in order, for
// rendering a retry menu when resolution misses.
func StateNames(states []WorkflowState) []string {
	names := make([]string, 0, len(states))
	for _, s := range states {
		names = append(names, s.Name)
	}
	return names
}
