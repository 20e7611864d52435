package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// registerGatedRoutes mounts the gated feature endpoints. The handlers are thin
// acceptors: the interesting work happened in the gate middleware before they
// run, and the feature backends behind them live in downstream services.
//
// A path not listed here (and not matched by a capability's endpoint patterns)
// is not gated; reserving a path means claiming it in a capability.
func registerGatedRoutes(api *gin.RouterGroup) {
	// web_scraping
	api.POST("/scrape", acceptedHandler)
	api.POST("/browse", acceptedHandler)

	// social_media
	api.POST("/social/post", acceptedHandler)
	api.POST("/social/schedule", acceptedHandler)

	// cloud_management
	api.POST("/cloud/deploy", acceptedHandler)
	api.POST("/cloud/manage", acceptedHandler)
}

// acceptedHandler acknowledges an admitted call.
func acceptedHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":   "accepted",
		"endpoint": c.Request.URL.Path,
	})
}
