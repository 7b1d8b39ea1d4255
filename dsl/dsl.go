// Package dsl builds HTTP routers from a declarative site description.
//
// A Site is a small vocabulary for the routing domain: resources, the
// methods they answer, shared middleware, and optional bearer-token
// protection. Nothing serves traffic until Build compiles the description
// into a chi router.
package dsl

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
)

// Site accumulates a route description. Create one with New, describe the
// routes, then compile with Build.
type Site struct {
	middleware []func(http.Handler) http.Handler
	resources  []*Resource
	token      string
	secured    bool
}

// New returns an empty site description.
func New() *Site { return &Site{} }

// Use appends middleware applied to every route, in registration order.
func (s *Site) Use(mw func(http.Handler) http.Handler) *Site {
	s.middleware = append(s.middleware, mw)
	return s
}

// Secure protects every route with Bearer-token auth. Requests without a
// matching "Authorization: Bearer <token>" header get a 401 JSON reply.
func (s *Site) Secure(token string) *Site {
	s.token = token
	s.secured = true
	return s
}

// Resource declares a path and returns a handle for attaching methods.
// Declaring the same path twice yields two independent resources; chi will
// reject conflicting method registrations at Build time via panic, so keep
// paths unique.
func (s *Site) Resource(path string) *Resource {
	r := &Resource{site: s, path: path}
	s.resources = append(s.resources, r)
	return r
}

// Resource is one path in the site description.
type Resource struct {
	site   *Site
	path   string
	routes []route
}

type route struct {
	method  string
	handler http.HandlerFunc
}

func (r *Resource) add(method string, h http.HandlerFunc) *Resource {
	r.routes = append(r.routes, route{method: method, handler: h})
	return r
}

// Get registers a GET handler.
func (r *Resource) Get(h http.HandlerFunc) *Resource { return r.add(http.MethodGet, h) }

// Post registers a POST handler.
func (r *Resource) Post(h http.HandlerFunc) *Resource { return r.add(http.MethodPost, h) }

// Put registers a PUT handler.
func (r *Resource) Put(h http.HandlerFunc) *Resource { return r.add(http.MethodPut, h) }

// Delete registers a DELETE handler.
func (r *Resource) Delete(h http.HandlerFunc) *Resource { return r.add(http.MethodDelete, h) }

// Resource hops back to the site to declare a sibling path, keeping the
// description a single chain.
func (r *Resource) Resource(path string) *Resource { return r.site.Resource(path) }

// Build compiles the site description.
func (r *Resource) Build() http.Handler { return r.site.Build() }

// Build compiles the description into a ready http.Handler. Unmatched paths
// and methods answer with JSON error bodies instead of chi's plain-text
// defaults.
func (s *Site) Build() http.Handler {
	r := chi.NewRouter()

	for _, mw := range s.middleware {
		r.Use(mw)
	}
	if s.secured {
		r.Use(bearerAuth(s.token))
	}

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusNotFound, errorBody("not found"))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusMethodNotAllowed, errorBody("method not allowed"))
	})

	for _, res := range s.resources {
		for _, rt := range res.routes {
			r.Method(rt.method, res.path, rt.handler)
		}
	}
	return r
}

// bearerAuth validates an "Authorization: Bearer <token>" header.
func bearerAuth(token string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			auth := r.Header.Get("Authorization")
			got, ok := strings.CutPrefix(auth, "Bearer ")
			if !ok || subtle.ConstantTimeCompare([]byte(got), []byte(token)) != 1 {
				writeJSON(w, http.StatusUnauthorized, errorBody("unauthorized"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
