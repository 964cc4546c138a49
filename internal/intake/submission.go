// Package intake normalizes raw lead-form submissions and relays them to
// Lofty. Form embeds in the wild disagree on field spelling and typing, so
// all of the "accept many spellings" logic lives here, in one place.
package intake

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Submission is the raw, untrusted form body. Values are never assumed
// well-typed: every field is coerced to a trimmed string before use.
type Submission map[string]any

// Lead is the normalized form of a Submission.
type Lead struct {
	FirstName string
	LastName  string
	Email     string
	Phone     string
	Message   string
	Source    string
	Honeypot  string
	Tags      []string
}

// Alias precedence is first-match: the explicit camelCase spelling wins over
// PascalCase, which wins over the legacy bare "Name" keys.
var (
	firstNameKeys = []string{"firstName", "FirstName", "Name", "name"}
	lastNameKeys  = []string{"lastName", "LastName"}
	emailKeys     = []string{"email", "Email"}
	phoneKeys     = []string{"phone", "Phone"}
	messageKeys   = []string{"message", "Message"}
	sourceKeys    = []string{"source"}
	honeypotKeys  = []string{"hp", "_honey"}
	tagKeys       = []string{"tags", "tags[]"}
)

// ParseSubmission decodes a request body into a Submission. An empty body is
// an empty submission, not an error. Some embedders double-encode the form
// body as a JSON string; that form is unwrapped and parsed too.
func ParseSubmission(body []byte) (Submission, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return Submission{}, nil
	}

	var sub Submission
	if err := json.Unmarshal(trimmed, &sub); err == nil {
		return sub, nil
	}

	var raw string
	if err := json.Unmarshal(trimmed, &raw); err == nil {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			return Submission{}, nil
		}
		sub = Submission{}
		if err := json.Unmarshal([]byte(raw), &sub); err != nil {
			return nil, fmt.Errorf("parse submission: %w", err)
		}
		return sub, nil
	}

	return nil, fmt.Errorf("parse submission: body is not a JSON object")
}

// Normalize maps a loosely typed submission onto a Lead. For each logical
// field the first non-empty value among its known aliases wins; absent fields
// resolve to empty strings. Normalize is idempotent: feeding a Lead's values
// back through yields the same Lead.
func Normalize(sub Submission) Lead {
	return Lead{
		FirstName: firstValue(sub, firstNameKeys),
		LastName:  firstValue(sub, lastNameKeys),
		Email:     firstValue(sub, emailKeys),
		Phone:     firstValue(sub, phoneKeys),
		Message:   firstValue(sub, messageKeys),
		Source:    firstValue(sub, sourceKeys),
		Honeypot:  firstValue(sub, honeypotKeys),
		Tags:      tagValues(sub),
	}
}

func firstValue(sub Submission, keys []string) string {
	for _, key := range keys {
		if value := coerce(sub[key]); value != "" {
			return value
		}
	}
	return ""
}

// tagValues accepts either an array of strings or a single string under
// either tag key spelling, and normalizes to a slice of trimmed strings.
func tagValues(sub Submission) []string {
	for _, key := range tagKeys {
		raw, ok := sub[key]
		if !ok || raw == nil {
			continue
		}
		if items, ok := raw.([]any); ok {
			var tags []string
			for _, item := range items {
				if value := coerce(item); value != "" {
					tags = append(tags, value)
				}
			}
			if len(tags) > 0 {
				return tags
			}
			continue
		}
		if value := coerce(raw); value != "" {
			return []string{value}
		}
	}
	return nil
}

// coerce renders an arbitrary JSON value as a trimmed string.
func coerce(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(v)
	case float64:
		// JSON numbers decode as float64; keep integral values exact.
		if v == math.Trunc(v) && math.Abs(v) < 1e15 {
			return strconv.FormatInt(int64(v), 10)
		}
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	default:
		return strings.TrimSpace(fmt.Sprint(v))
	}
}
