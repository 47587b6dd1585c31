package router

import (
	"context"
)

type contextKey string

const currentRouteKey contextKey = "routekit:route"

// Current is the route matched for a request.
type Current struct {
	Entity

	// Params holds the decoded placeholder values taken from the URL.
	Params map[string]string

	// URL is the request URL the route was matched against.
	URL string
}

// WithRoute stores the current route in the request context.
func WithRoute(ctx context.Context, current *Current) context.Context {
	return context.WithValue(ctx, currentRouteKey, current)
}

// RouteFromContext retrieves the current route from the request context.
func RouteFromContext(ctx context.Context) *Current {
	if v := ctx.Value(currentRouteKey); v != nil {
		return v.(*Current)
	}
	return nil
}
