package lofty

import "strings"

// Assignee key styles. Older Lofty API versions read assignee_id, newer ones
// assigneeId; "both" emits both spellings.
const (
	AssigneeKeySnake = "snake"
	AssigneeKeyCamel = "camel"
	AssigneeKeyBoth  = "both"
)

// LeadPayload is the body sent to Lofty's lead-creation endpoint. Empty
// contact fields are omitted rather than sent as blanks; tags is always an
// array and notes always a string.
type LeadPayload map[string]any

// LeadInput is the normalized lead data a payload is built from.
type LeadInput struct {
	FirstName        string
	LastName         string
	Email            string
	Phone            string
	Notes            string
	Source           string
	Tags             []string
	AssigneeID       string
	AssigneeKeyStyle string
}

// BuildLeadPayload constructs the outbound payload. Keys are flat camelCase
// with singular contact fields; the assignee spelling follows the configured
// key style.
func BuildLeadPayload(in LeadInput) LeadPayload {
	tags := in.Tags
	if tags == nil {
		tags = []string{}
	}

	payload := LeadPayload{
		"firstName": in.FirstName,
		"notes":     in.Notes,
		"tags":      tags,
	}
	if in.LastName != "" {
		payload["lastName"] = in.LastName
	}
	if in.Email != "" {
		payload["email"] = in.Email
	}
	if in.Phone != "" {
		payload["phone"] = in.Phone
	}
	if in.Source != "" {
		payload["source"] = in.Source
	}
	if in.AssigneeID != "" {
		switch in.AssigneeKeyStyle {
		case AssigneeKeySnake:
			payload["assignee_id"] = in.AssigneeID
		case AssigneeKeyCamel:
			payload["assigneeId"] = in.AssigneeID
		default:
			payload["assignee_id"] = in.AssigneeID
			payload["assigneeId"] = in.AssigneeID
		}
	}
	return payload
}

// MergeTags concatenates configured default tags with caller-supplied tags,
// trimming whitespace and dropping empties. Order is preserved, defaults
// first, and duplicates are retained.
func MergeTags(defaults, extra []string) []string {
	merged := make([]string, 0, len(defaults)+len(extra))
	for _, group := range [][]string{defaults, extra} {
		for _, tag := range group {
			if trimmed := strings.TrimSpace(tag); trimmed != "" {
				merged = append(merged, trimmed)
			}
		}
	}
	return merged
}
