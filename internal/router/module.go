package router

import "github.com/gin-gonic/gin"

// Module is one routable feature area (auth, catalog, discussions, ...). Each
// module owns its route paths and per-route middleware.
type Module interface {
	Register(rg *gin.RouterGroup)
}
