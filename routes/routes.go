package routes

import (
	"time"

	"agrinet/config"
	"agrinet/handlers"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// SetupRouter wires middleware and every route once, from explicit
// dependencies. Nothing here mutates process-wide state.
func SetupRouter(cfg *config.Config, h *handlers.Handler) *gin.Engine {
	router := gin.Default()

	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Accept"},
		ExposeHeaders:    []string{"Content-Length", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})

	api := router.Group("/api")

	// Users
	users := api.Group("/users")
	users.POST("/register", h.Register)
	users.POST("/login", h.Login)
	users.GET("/:id/following", h.GetFollowing)
	users.GET("/:id/followers", h.GetFollowers)

	// Communities and membership
	api.POST("/communities", h.CreateCommunity)
	api.GET("/communities", h.ListCommunities)
	api.GET("/communities/:id", h.GetCommunity)
	api.POST("/communities/:id/join", h.JoinCommunity)
	api.DELETE("/communities/:id/leave", h.LeaveCommunity)
	api.GET("/communities/:id/members", h.GetCommunityMembers)

	// Follows
	api.POST("/follow", h.Follow)
	api.DELETE("/follow", h.Unfollow)

	// Posts, comments, likes
	api.POST("/posts", h.CreatePost)
	api.GET("/posts/:id", h.GetPost)
	api.POST("/posts/:id/comments", h.CreateComment)
	api.GET("/posts/:id/comments", h.GetComments)
	api.POST("/posts/:id/like", h.LikePost)
	api.DELETE("/posts/:id/like", h.UnlikePost)
	api.GET("/posts/:id/likes", h.GetLikes)

	router.NoRoute(func(c *gin.Context) {
		if len(c.Request.URL.Path) >= 4 && c.Request.URL.Path[:4] == "/api" {
			c.JSON(404, gin.H{
				"error": "Endpoint not found",
				"path":  c.Request.URL.Path,
			})
			return
		}
		c.Next()
	})

	return router
}
