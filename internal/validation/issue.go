// Package validation checks user-supplied identifiers before they reach the
// API, so typos fail fast with a useful message instead of a 404.
package validation

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	// Jira issue keys: upper-case project key, hyphen, number (DEMO-123).
	issueKeyRe = regexp.MustCompile(`^[A-Z][A-Z0-9_]+-[1-9]\d*$`)

	// Project keys start with a letter; Jira requires 2-10 characters.
	projectKeyRe = regexp.MustCompile(`^[A-Z][A-Z0-9_]{1,9}$`)

	// Atlassian account ids are opaque; accept the characters Atlassian
	// actually emits (hex segments, colons for legacy ids).
	accountIDRe = regexp.MustCompile(`^[a-zA-Z0-9:_-]{1,128}$`)
)

// NormalizeIssueKey upper-cases and validates an issue key. Lower and mixed
// case input is accepted ("demo-123" becomes "DEMO-123").
func NormalizeIssueKey(key string) (string, error) {
	normalized := strings.ToUpper(strings.TrimSpace(key))
	if !issueKeyRe.MatchString(normalized) {
		return "", fmt.Errorf("invalid issue key %q (expected format: PROJ-123)", key)
	}
	return normalized, nil
}

// NormalizeIssueKeys normalizes a list of issue keys, failing on the first
// invalid one.
func NormalizeIssueKeys(keys []string) ([]string, error) {
	out := make([]string, len(keys))
	for i, key := range keys {
		normalized, err := NormalizeIssueKey(key)
		if err != nil {
			return nil, err
		}
		out[i] = normalized
	}
	return out, nil
}

// NormalizeProjectKey upper-cases and validates a project key.
func NormalizeProjectKey(key string) (string, error) {
	normalized := strings.ToUpper(strings.TrimSpace(key))
	if !projectKeyRe.MatchString(normalized) {
		return "", fmt.Errorf("invalid project key %q (expected 2-10 letters, digits, or underscores, starting with a letter)", key)
	}
	return normalized, nil
}

// ProjectKeyOf extracts the project key from an issue key. The issue key is
// assumed valid.
func ProjectKeyOf(issueKey string) string {
	if i := strings.Index(issueKey, "-"); i > 0 {
		return issueKey[:i]
	}
	return issueKey
}

// ValidateAccountID rejects obviously malformed Atlassian account ids.
func ValidateAccountID(id string) error {
	if !accountIDRe.MatchString(id) {
		return fmt.Errorf("invalid account id %q", id)
	}
	return nil
}
