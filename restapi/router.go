package restapi

import (
	"github.com/gin-gonic/gin"
)

// BasePath prefixes every API route.
const BasePath = "/api/v1"

// Mount registers the plant routes on router under BasePath, each behind role resolution.
func Mount(router gin.IRouter, plants *Plants, resolver RoleResolver) error {
	registry := NewRegistry()
	if err := plants.Register(registry); err != nil {
		return err
	}
	v1 := router.Group(BasePath)
	return registry.Mount(v1, WithRole(resolver))
}
