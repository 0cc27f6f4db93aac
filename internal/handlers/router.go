package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/yukikurage/academic-hub-api/internal/middleware"
	"github.com/yukikurage/academic-hub-api/internal/models"
)

// Handlers groups every HTTP handler served under /api.
type Handlers struct {
	Auth         *AuthHandler
	Resources    *ResourceHandler
	Bookmarks    *BookmarkHandler
	Achievements *AchievementHandler
	Goals        *GoalHandler
	Forum        *ForumHandler
	Profile      *ProfileHandler
	Chat         *ChatHandler
	Stats        *StatsHandler
}

// resourceRoutes maps URL collections to resource types
var resourceRoutes = map[string]models.ResourceType{
	"/papers":   models.ResourceTypePaper,
	"/notes":    models.ResourceTypeNote,
	"/syllabus": models.ResourceTypeSyllabus,
}

// RegisterRoutes mounts the API on the router group.
func RegisterRoutes(api *gin.RouterGroup, h Handlers, authenticator middleware.Authenticator) {
	requireAuth := middleware.RequireAuth(authenticator)
	withID := middleware.RequireID("id")

	// Auth routes
	auth := api.Group("/auth")
	{
		auth.POST("/register", h.Auth.Register)
		auth.POST("/login", h.Auth.Login)
		auth.POST("/logout", h.Auth.Logout)
		auth.GET("/me", requireAuth, h.Auth.GetCurrentUser)
	}

	// Resource routes, one group per type
	for path, resourceType := range resourceRoutes {
		resources := api.Group(path, middleware.WithResourceType(resourceType))
		{
			resources.GET("", h.Resources.List)
			resources.POST("", requireAuth, h.Resources.Upload)
			resources.GET("/:id", withID, h.Resources.Get)
			resources.GET("/:id/download", requireAuth, withID, h.Resources.Download)
			resources.GET("/:id/view", withID, h.Resources.View)
			resources.DELETE("/:id", requireAuth, withID, h.Resources.Delete)
		}
	}

	// Bookmark routes (protected)
	bookmarks := api.Group("/bookmarks", requireAuth)
	{
		target := []gin.HandlerFunc{
			middleware.RequireResourceTypeParam("resource_type"),
			middleware.RequireID("resource_id"),
		}
		bookmarks.GET("", h.Bookmarks.List)
		bookmarks.POST("", h.Bookmarks.Create)
		bookmarks.DELETE("/:resource_type/:resource_id", append(target, h.Bookmarks.Remove)...)
		bookmarks.GET("/check/:resource_type/:resource_id", append(target, h.Bookmarks.Check)...)
	}

	// Achievement routes
	achievements := api.Group("/achievements")
	{
		achievements.GET("", requireAuth, h.Achievements.List)
		achievements.GET("/catalog", h.Achievements.Catalog)
	}

	// Learning goal routes (protected)
	goals := api.Group("/learning-goals", requireAuth)
	{
		goals.GET("", h.Goals.List)
		goals.POST("", h.Goals.Create)
		goals.PUT("/:id", withID, h.Goals.Update)
		goals.DELETE("/:id", withID, h.Goals.Delete)
		goals.POST("/:id/toggle", withID, h.Goals.Toggle)
	}

	// Forum routes
	forum := api.Group("/forum")
	{
		forum.GET("/posts", h.Forum.ListPosts)
		forum.POST("/posts", requireAuth, h.Forum.CreatePost)
		forum.GET("/posts/:id", withID, h.Forum.GetPost)
		forum.PUT("/posts/:id", requireAuth, withID, h.Forum.UpdatePost)
		forum.DELETE("/posts/:id", requireAuth, withID, h.Forum.DeletePost)
		forum.GET("/posts/:id/replies", withID, h.Forum.ListReplies)
		forum.POST("/posts/:id/replies", requireAuth, withID, h.Forum.CreateReply)
		forum.DELETE("/replies/:id", requireAuth, withID, h.Forum.DeleteReply)
	}

	// Profile routes
	profile := api.Group("/profile")
	{
		profile.GET("/photo/:user_id", middleware.RequireID("user_id"), h.Profile.GetPhoto)

		own := profile.Group("", requireAuth)
		own.GET("", h.Profile.Get)
		own.PUT("", h.Profile.Update)
		own.PUT("/password", h.Profile.ChangePassword)
		own.POST("/photo", h.Profile.UploadPhoto)
		own.DELETE("/photo", h.Profile.RemovePhoto)
		own.GET("/stats", h.Profile.Stats)
	}

	// Chat assistant routes (protected)
	chat := api.Group("/ai/chat", requireAuth)
	{
		chat.POST("", h.Chat.Chat)
		chat.GET("/history", h.Chat.History)
	}

	api.GET("/stats", h.Stats.Get)
}
