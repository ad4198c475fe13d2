package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/jira-assistant/jira-as/internal/jira"
)

// FatalError writes an error message to stderr and exits with code 1.
// Use this for fatal errors that prevent the command from completing.
func FatalError(format string, args ...interface{}) {
	if jsonOutput {
		outputJSONError(fmt.Errorf(format, args...), "")
	}
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}

// FatalErrorWithHint writes an error message with a hint to stderr and exits.
// Use this when you can provide an actionable suggestion to fix the error.
func FatalErrorWithHint(message, hint string) {
	if jsonOutput {
		outputJSONError(errors.New(message), "")
	}
	fmt.Fprintf(os.Stderr, "Error: %s\n", message)
	fmt.Fprintf(os.Stderr, "Hint: %s\n", hint)
	os.Exit(1)
}

// WarnError writes a warning message to stderr and returns.
// Use this for optional operations that aren't required for the command.
func WarnError(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "Warning: "+format+"\n", args...)
}

// FatalAPIError reports a Jira API failure with a hint keyed to the error
// type, and exits 1.
func FatalAPIError(err error) {
	if jsonOutput {
		outputJSONError(err, apiErrorCode(err))
	}

	var authErr *jira.AuthError
	var notFound *jira.NotFoundError
	var rateLimited *jira.RateLimitError

	switch {
	case errors.As(err, &authErr):
		FatalErrorWithHint(err.Error(), "check JIRA_EMAIL and JIRA_API_TOKEN (create tokens at id.atlassian.com)")
	case errors.As(err, &notFound):
		FatalErrorWithHint(err.Error(), "verify the key/id and that your account can see it")
	case errors.As(err, &rateLimited):
		FatalErrorWithHint(err.Error(), "wait and retry, or reduce request volume")
	default:
		FatalError("%v", err)
	}
}

func apiErrorCode(err error) string {
	var authErr *jira.AuthError
	var notFound *jira.NotFoundError
	var validation *jira.ValidationError
	var rateLimited *jira.RateLimitError

	switch {
	case errors.As(err, &authErr):
		return "auth"
	case errors.As(err, &notFound):
		return "not_found"
	case errors.As(err, &validation):
		return "validation"
	case errors.As(err, &rateLimited):
		return "rate_limited"
	}
	return "api_error"
}
