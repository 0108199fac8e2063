// Package restapi surfaces the plant catalog as a REST API on gin.
package restapi

import (
	"fmt"
	"sort"

	"github.com/gin-gonic/gin"
)

// HTTPVerb enumerates supported HTTP operations.
type HTTPVerb int

const (
	// Unknown represents an unspecified HTTP verb.
	Unknown HTTPVerb = iota
	// GET lists or retrieves resources.
	GET
	// GET_ONE retrieves a single resource.
	GET_ONE
	// DELETE removes resources.
	DELETE
	// POST creates resources.
	POST
	// PUT replaces resources.
	PUT
	// PATCH partially updates resources.
	PATCH
)

// RestMethod describes a REST route handler.
type RestMethod struct {
	Verb    HTTPVerb
	Path    string
	Handler func(c *gin.Context)
}

// Registry collects RestMethods before they are mounted on a router.
type Registry struct {
	restMethods map[string]RestMethod
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{restMethods: make(map[string]RestMethod)}
}

// RegisterMethod builds a RestMethod and registers it using Register.
func (r *Registry) RegisterMethod(verb HTTPVerb, path string, h func(c *gin.Context)) error {
	m := RestMethod{
		Verb:    verb,
		Path:    path,
		Handler: h,
	}
	return r.Register(m)
}

// Register inserts a RestMethod into the registry preventing duplicates.
func (r *Registry) Register(m RestMethod) error {
	key := fmt.Sprintf("%d_%s", m.Verb, m.Path)
	if _, exists := r.restMethods[key]; exists {
		return fmt.Errorf("can't add %s, an existing handler in REST method map exists", key)
	}
	r.restMethods[key] = m
	return nil
}

// RestMethods returns all registered RestMethod entries keyed by verb+path.
func (r *Registry) RestMethods() map[string]RestMethod {
	return r.restMethods
}

// Mount adds every registered method to group, each handler preceded by middleware.
func (r *Registry) Mount(group gin.IRoutes, middleware ...gin.HandlerFunc) error {
	// Sorted so route registration order, and gin's debug output, is stable.
	keys := make([]string, 0, len(r.restMethods))
	for k := range r.restMethods {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		rm := r.restMethods[k]
		handlers := append(append([]gin.HandlerFunc{}, middleware...), rm.Handler)
		switch rm.Verb {
		case GET:
			fallthrough
		case GET_ONE:
			group.GET(rm.Path, handlers...)
		case DELETE:
			group.DELETE(rm.Path, handlers...)
		case POST:
			group.POST(rm.Path, handlers...)
		case PUT:
			group.PUT(rm.Path, handlers...)
		case PATCH:
			group.PATCH(rm.Path, handlers...)
		default:
			return fmt.Errorf("HTTP verb %d not supported", rm.Verb)
		}
	}
	return nil
}
