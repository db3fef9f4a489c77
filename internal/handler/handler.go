package handler

import (
	"github.com/gin-gonic/gin"
)

// RouteRegistrar is implemented by every API handler.
type RouteRegistrar interface {
	RegisterRoutes(r *gin.RouterGroup)
}

// Handlers groups the API handlers mounted under /api.
type Handlers []RouteRegistrar

func (hs Handlers) RegisterRoutes(r *gin.RouterGroup) {
	for _, h := range hs {
		h.RegisterRoutes(r)
	}
}
