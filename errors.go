package pivotal

import (
	"errors"
	"fmt"
)

// Sentinel errors for failures detected before any network call is made.
// Callers branch on them with errors.Is.
var (
	// ErrInvalidArgument reports a malformed or missing call parameter,
	// such as blank credentials or a blank search query.
	ErrInvalidArgument = errors.New("pivotal: invalid argument")

	// ErrMissingProjectID reports that an operation needed a project id but
	// neither an explicit one was passed nor one is persisted on the client.
	ErrMissingProjectID = errors.New("pivotal: no project id passed and none persisted on the client")

	// ErrNotAuthorized reports an authenticated call attempted before a
	// token was configured.
	ErrNotAuthorized = errors.New("pivotal: api token is not set")

	// ErrNotFound reports a parent resource that a client-side existence
	// check could not locate.
	ErrNotFound = errors.New("pivotal: not found")
)

// errNullBody marks a 2xx response whose body was the JSON literal null
// where a value was required.
var errNullBody = errors.New("pivotal: response body is null")

// HTTPError is any non-2xx response from the tracker. The raw body is
// carried verbatim for diagnostics.
type HTTPError struct {
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("pivotal: request failed with status %d: %s", e.StatusCode, e.Body)
}
