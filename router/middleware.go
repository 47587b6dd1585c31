package router

import (
	"net/http"
)

// Middleware matches every request against the table and stores the result
// in the request context, where Facade.CurrentRoute and Facade.IsRoute find
// it. Unmatched requests pass through unchanged.
func Middleware(table *Table) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			e, params, ok := table.match(r.Method, r.URL.String())
			if !ok && r.Method == http.MethodHead {
				e, params, ok = table.match(http.MethodGet, r.URL.String())
			}
			if ok {
				current := &Current{Entity: e, Params: params, URL: r.URL.String()}
				r = r.WithContext(WithRoute(r.Context(), current))
			}
			next.ServeHTTP(w, r)
		})
	}
}
