// Package middleware provides composable net/http middleware for
// canonical paths, request logging, and CORS.
package middleware

import (
	"net/http"
	"strings"
)

// TrimSlash redirects requests whose path carries a trailing slash to the
// canonical form without it, keeping any query string. The root path is
// served as-is.
func TrimSlash(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path := r.URL.Path
		if len(path) <= 1 || !strings.HasSuffix(path, "/") {
			next.ServeHTTP(w, r)
			return
		}

		target := strings.TrimSuffix(path, "/")
		if r.URL.RawQuery != "" {
			target += "?" + r.URL.RawQuery
		}
		http.Redirect(w, r, target, http.StatusMovedPermanently)
	})
}
