package middleware

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/academic-hub-api/internal/constants"
	apierrors "github.com/yukikurage/academic-hub-api/internal/errors"
	"github.com/yukikurage/academic-hub-api/internal/models"
)

// WithResourceType tags every request of a resource route group with its type
func WithResourceType(resourceType models.ResourceType) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(constants.ContextKeyResourceType, resourceType)
		c.Next()
	}
}

// RequireResourceTypeParam parses a resource type from a URL parameter
func RequireResourceTypeParam(param string) gin.HandlerFunc {
	return func(c *gin.Context) {
		resourceType, ok := models.ParseResourceType(c.Param(param))
		if !ok {
			apierrors.BadRequest(c, "Invalid resource type")
			return
		}

		c.Set(constants.ContextKeyResourceType, resourceType)
		c.Next()
	}
}

// GetResourceType retrieves the resource type stored by WithResourceType or RequireResourceTypeParam
func GetResourceType(c *gin.Context) (models.ResourceType, bool) {
	value, exists := c.Get(constants.ContextKeyResourceType)
	if !exists {
		return "", false
	}
	resourceType, ok := value.(models.ResourceType)
	return resourceType, ok
}

// RequireID parses a numeric URL parameter and stores it in context
func RequireID(param string) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param(param), 10, 64)
		if err != nil || id == 0 {
			apierrors.BadRequest(c, "Invalid "+param)
			return
		}

		c.Set(constants.ContextKeyID, id)
		c.Next()
	}
}

// GetID retrieves the ID stored by RequireID
func GetID(c *gin.Context) (uint64, bool) {
	value, exists := c.Get(constants.ContextKeyID)
	if !exists {
		return 0, false
	}
	id, ok := value.(uint64)
	return id, ok
}
