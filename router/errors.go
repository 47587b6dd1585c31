package router

import (
	"fmt"
	"net/http"

	"github.com/cockroachdb/errors"
)

var (
	// ErrUnknownRoute is returned when a route name is not in the table.
	ErrUnknownRoute = errors.New("unknown route")

	// ErrMissingParameter is returned when a required placeholder has no value.
	ErrMissingParameter = errors.New("missing route parameter")
)

// NavigationError is returned by HTTPNavigator for responses with an error
// status.
type NavigationError struct {
	StatusCode int
	Method     string
	URL        string
	Body       string
}

func (e *NavigationError) Error() string {
	return fmt.Sprintf("%s %s: %d %s", e.Method, e.URL, e.StatusCode, http.StatusText(e.StatusCode))
}

// IsClientError returns true for 4xx responses.
func (e *NavigationError) IsClientError() bool {
	return e.StatusCode >= 400 && e.StatusCode < 500
}

// IsServerError returns true for 5xx responses.
func (e *NavigationError) IsServerError() bool {
	return e.StatusCode >= 500
}
