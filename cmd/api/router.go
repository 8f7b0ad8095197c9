package main

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"blog-backend/internal/shared/middleware"
	"blog-backend/internal/shared/response"
	"blog-backend/pkg/container"
)

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	var origins []string
	if c.Config != nil {
		origins = c.Config.HTTP.AllowedOrigins
	}

	// Global middlewares
	router.Use(
		middleware.RequestID(),
		middleware.Recovery(),
		middleware.Logger(),
		middleware.CORS(origins),
	)

	// JSON contracts of the listing pages
	router.GET("/blogs", c.BlogHandler.Listing)
	router.GET("/api/blogs", c.BlogHandler.APIBlogs)

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", healthCheckHandler(c))
		v1.GET("/home", c.BlogHandler.Home)
		v1.GET("/about", c.BlogHandler.About)
		v1.GET("/search", c.BlogHandler.Search)

		setupBlogRoutes(v1, c)
		setupAuthorRoutes(v1, c)
	}

	return router
}

// ========================================
// BLOG ROUTES
// ========================================
func setupBlogRoutes(v1 *gin.RouterGroup, c *container.Container) {
	blogs := v1.Group("/blogs")
	{
		blogs.GET("", c.BlogHandler.List)
		blogs.POST("", c.BlogHandler.Publish)

		blogs.GET("/featured", c.BlogHandler.Featured)
		blogs.GET("/recent", c.BlogHandler.Recent)
		blogs.GET("/popular", c.BlogHandler.Popular)
		blogs.GET("/slug/:slug", c.BlogHandler.GetBySlug)

		blogs.GET("/:id", c.BlogHandler.Detail)
		blogs.POST("/:id/view", c.BlogHandler.RecordView)
		blogs.POST("/:id/like", c.BlogHandler.Like)
		blogs.DELETE("/:id/like", c.BlogHandler.Unlike)
	}
}

// ========================================
// AUTHOR ROUTES
// ========================================
func setupAuthorRoutes(v1 *gin.RouterGroup, c *container.Container) {
	authors := v1.Group("/authors")
	{
		authors.POST("", c.AuthorHandler.GetOrCreate)
		authors.GET("/:id", c.AuthorHandler.GetProfile)
		authors.DELETE("/:id", c.AuthorHandler.Delete)
	}
}

// ========================================
// HEALTH CHECK
// ========================================
func healthCheckHandler(c *container.Container) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if err := c.HealthCheck(ctx.Request.Context()); err != nil {
			_ = ctx.Error(err)
			response.ErrorResponse(ctx, http.StatusServiceUnavailable, "DATABASE_UNAVAILABLE", "Database is not reachable")
			return
		}

		response.Success(ctx, http.StatusOK, "", gin.H{
			"status":   "healthy",
			"database": string(c.Dialect),
			"time":     time.Now().UTC().Format(time.RFC3339),
		})
	}
}
