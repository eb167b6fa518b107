package server

import (
	"sort"

	"github.com/pathwalk/pathwalk"
	"github.com/pathwalk/pathwalk/internal/ops"
)

type Route struct {
	ID     string
	Prefix string
	Op     string
}

type Router struct {
	routes []Route
}

// NewRouter builds the routing table: one route per operation under
// /v1/<name>, plus the health check.
func NewRouter() *Router {
	routes := []Route{{ID: "healthz", Prefix: "/healthz"}}
	for _, op := range ops.All() {
		routes = append(routes, Route{ID: op.Name, Prefix: "/v1/" + op.Name, Op: op.Name})
	}
	return newRouter(routes)
}

func newRouter(routes []Route) *Router {
	for i := range routes {
		routes[i].Prefix = pathwalk.StyleUnix.Normalize(routes[i].Prefix)
	}

	sort.SliceStable(routes, func(i, j int) bool {
		if len(routes[i].Prefix) == len(routes[j].Prefix) {
			return routes[i].ID < routes[j].ID
		}
		return len(routes[i].Prefix) > len(routes[j].Prefix)
	})

	return &Router{routes: routes}
}

// Match returns the route with the longest prefix that covers whole
// segments of path. Dot segments in path are resolved before comparing,
// so "/v1/x/../join" reaches the join route and "/v1/joined" does not.
func (r *Router) Match(path string) (Route, bool) {
	for _, route := range r.routes {
		if hasPathPrefix(path, route.Prefix) {
			return route, true
		}
	}
	return Route{}, false
}

func hasPathPrefix(path, prefix string) bool {
	return pathwalk.Intersection(pathwalk.StyleUnix, prefix, path) == len(prefix)
}
