package app

import (
	"fmt"
	"regexp"

	"github.com/tollgate-dao/tollgate"
	"github.com/tollgate-dao/tollgate/errors"
)

// isPath is the RegExp to ensure the routes make sense
var isPath = regexp.MustCompile(`^[a-zA-Z0-9_/]+$`).MatchString

// Router allows us to register many handlers with different paths and then
// direct each message to the proper handler.
//
// Minimal interface modeled after net/http.ServeMux
type Router struct {
	routes map[string]tollgate.Handler
}

var _ tollgate.Registry = (*Router)(nil)
var _ tollgate.Handler = (*Router)(nil)

// NewRouter returns a new empty router instance.
func NewRouter() *Router {
	return &Router{
		routes: make(map[string]tollgate.Handler),
	}
}

// Handle adds a new Handler for the given path. This function panics if a
// handler for given path is already registered.
func (r *Router) Handle(path string, h tollgate.Handler) {
	if !isPath(path) {
		panic(fmt.Sprintf("invalid path: %q", path))
	}
	if _, ok := r.routes[path]; ok {
		panic(fmt.Sprintf("re-registering route: %q", path))
	}
	r.routes[path] = h
}

// handler returns the registered Handler for this path. If no path is
// found, returns a noSuchPath Handler. This function never returns nil.
func (r *Router) handler(path string) tollgate.Handler {
	if h, ok := r.routes[path]; ok {
		return h
	}
	return noSuchPathHandler{path: path}
}

// Check dispatches to the proper handler based on path
func (r *Router) Check(ctx tollgate.Context, store tollgate.KVStore, tx tollgate.Tx) (*tollgate.CheckResult, error) {
	msg, err := tx.GetMsg()
	if err != nil {
		return nil, errors.Wrap(err, "cannot load msg")
	}
	return r.handler(msg.Path()).Check(ctx, store, tx)
}

// Deliver dispatches to the proper handler based on path
func (r *Router) Deliver(ctx tollgate.Context, store tollgate.KVStore, tx tollgate.Tx) (*tollgate.DeliverResult, error) {
	msg, err := tx.GetMsg()
	if err != nil {
		return nil, errors.Wrap(err, "cannot load msg")
	}
	return r.handler(msg.Path()).Deliver(ctx, store, tx)
}

// Paths returns all registered paths.
func (r *Router) Paths() []string {
	paths := make([]string, 0, len(r.routes))
	for p := range r.routes {
		paths = append(paths, p)
	}
	return paths
}

// noSuchPathHandler is returned for messages no handler was registered for.
type noSuchPathHandler struct {
	path string
}

var _ tollgate.Handler = noSuchPathHandler{}

func (h noSuchPathHandler) Check(tollgate.Context, tollgate.KVStore, tollgate.Tx) (*tollgate.CheckResult, error) {
	return nil, errors.Wrapf(ErrNoSuchPath, "path %q", h.path)
}

func (h noSuchPathHandler) Deliver(tollgate.Context, tollgate.KVStore, tollgate.Tx) (*tollgate.DeliverResult, error) {
	return nil, errors.Wrapf(ErrNoSuchPath, "path %q", h.path)
}

// ErrNoSuchPath is returned when a message path has no registered handler.
var ErrNoSuchPath = errors.Register(50, "no such path")
