package httputil

import "github.com/gin-gonic/gin"

// IHttpHandler is implemented by every route handler the HTTP service mounts.
// Root is the handler's path segment under /api/v1; SetRoutes receives the
// public, private and admin groups and attaches routes to whichever it serves.
type IHttpHandler interface {
	Root() string
	SetRoutes(pub *gin.RouterGroup, private *gin.RouterGroup, admin *gin.RouterGroup)
}
