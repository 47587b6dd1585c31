package router

import (
	"net/http"
	"os"
)

// ErrorHandler is called when navigation fails.
type ErrorHandler func(method, url string, err error)

// Options configures a Facade.
type Options struct {
	// BaseURL is prepended to every resolved path, e.g. "https://example.com".
	BaseURL string

	// Environment decides IsDev; "development" and "local" count as dev.
	Environment string

	Navigator    Navigator
	ErrorHandler ErrorHandler
}

// DefaultOptions returns options reading the environment from APP_ENV and
// navigating with http.DefaultClient.
func DefaultOptions() *Options {
	return &Options{
		Environment: os.Getenv("APP_ENV"),
		Navigator:   NewHTTPNavigator(http.DefaultClient),
	}
}
