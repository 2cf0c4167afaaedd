// Package routes provides route grouping and registration over net/http.
// Handlers declare their endpoints as groups; the registrar builds the
// final multiplexer with method-qualified patterns.
package routes

import (
	"fmt"
	"net/http"
	"strings"
)

// Route binds an HTTP method and path pattern to a handler function.
type Route struct {
	Method  string
	Pattern string
	Handler http.HandlerFunc
}

// Group represents a collection of routes under a common URL prefix.
type Group struct {
	Prefix string
	Routes []Route
}

// System defines the interface for route registration and HTTP handler building.
type System interface {
	RegisterGroup(group Group)
	RegisterRoute(route Route)
	Build() http.Handler
}

type registrar struct {
	routes []Route
}

// New creates an empty route registrar.
func New() System {
	return &registrar{}
}

func (r *registrar) RegisterGroup(group Group) {
	for _, route := range group.Routes {
		r.routes = append(r.routes, Route{
			Method:  route.Method,
			Pattern: joinPattern(group.Prefix, route.Pattern),
			Handler: route.Handler,
		})
	}
}

func (r *registrar) RegisterRoute(route Route) {
	r.routes = append(r.routes, route)
}

// Build constructs the http.ServeMux from all registered routes.
func (r *registrar) Build() http.Handler {
	mux := http.NewServeMux()
	for _, route := range r.routes {
		mux.HandleFunc(fmt.Sprintf("%s %s", route.Method, route.Pattern), route.Handler)
	}
	return mux
}

func joinPattern(prefix, pattern string) string {
	joined := strings.TrimSuffix(prefix, "/") + pattern
	if joined == "" {
		return "/"
	}
	return joined
}
