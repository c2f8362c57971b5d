package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/verifydream/Sistem-Inventaris-Aset-JKT/internal/container"
)

// RegisterRoutes wires every HTTP surface onto the router. Handlers guard
// their own mutating routes with the JWT middleware.
func RegisterRoutes(router *gin.Engine, c *container.Container) {
	c.LoginHandler.RegisterRoutes(router)
	c.AssetHandler.RegisterRoutes(router)
	c.SettingsHandler.RegisterRoutes(router)
	c.ReportHandler.RegisterRoutes(router, c.ReportLimiter)

	router.Static("/uploads", c.UploadDir)
}

func RegisterUtilityRoutes(router *gin.Engine) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}
