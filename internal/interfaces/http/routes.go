package http

import (
	"github.com/gin-gonic/gin"
)

// SetupRoutes registers the content API. writeGuards run before every
// mutating route.
func SetupRoutes(router *gin.Engine, handler *Handler, writeGuards ...gin.HandlerFunc) {
	api := router.Group("/api")
	{
		blog := api.Group("/blog")
		blog.GET("", handler.ListBlogPosts)
		blog.GET("/:id", handler.GetBlogPost)

		portfolio := api.Group("/portfolio")
		portfolio.GET("", handler.ListPortfolioItems)
		portfolio.GET("/:id", handler.GetPortfolioItem)

		blogWrites := blog.Group("", writeGuards...)
		blogWrites.POST("", handler.CreateBlogPost)
		blogWrites.PUT("/:id", handler.UpdateBlogPost)
		blogWrites.DELETE("/:id", handler.DeleteBlogPost)

		portfolioWrites := portfolio.Group("", writeGuards...)
		portfolioWrites.POST("", handler.CreatePortfolioItem)
		portfolioWrites.PUT("/:id", handler.UpdatePortfolioItem)
		portfolioWrites.DELETE("/:id", handler.DeletePortfolioItem)
	}

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
}

// SetupSyncRoutes adds the sync daemon's status endpoint.
func SetupSyncRoutes(router *gin.Engine, provider SyncStatusProvider) {
	router.GET("/api/sync/status", SyncStatus(provider))
}
