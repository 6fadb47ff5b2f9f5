package handler

import (
	"socialfeed/backend/internal/auth"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts the API at the root and again under /api.
func (h *Handler) RegisterRoutes(r gin.IRouter) {
	h.mount(r, r.Group("/users"), r.Group("/posts"), r.Group("/notifications"))

	api := r.Group("/api")
	h.mount(api.Group("/auth"), api.Group("/users"), api.Group("/posts"), api.Group("/notifications"))
}

func (h *Handler) mount(authRoutes, userRoutes, postRoutes, notificationRoutes gin.IRouter) {
	protected := []gin.HandlerFunc{auth.AuthMiddleware(h.auth), auth.CurrentUserMiddleware(h.store)}
	with := func(handler gin.HandlerFunc) []gin.HandlerFunc {
		return append(append([]gin.HandlerFunc{}, protected...), handler)
	}

	// Auth routes
	authRoutes.POST("/register", h.Register)
	authRoutes.POST("/login", h.Login)
	authRoutes.POST("/logout", h.Logout)
	authRoutes.GET("/get-me", with(h.GetMe)...)

	// User routes
	userRoutes.GET("/profile/:username", auth.OptionalAuthMiddleware(h.auth), h.GetProfile)
	userRoutes.POST("/follow/:id", with(h.ToggleFollow)...)
	userRoutes.GET("/suggested", with(h.GetSuggested)...)
	userRoutes.POST("/update", with(h.UpdateProfile)...)

	// Post routes
	postRoutes.GET("/all/:page", with(h.GetAllPosts)...)
	postRoutes.GET("/following/:page", with(h.GetFollowingPosts)...)
	postRoutes.GET("/likes/:id/:page", with(h.GetLikedPosts)...)
	postRoutes.GET("/user/:username/:page", with(h.GetUserPosts)...)
	postRoutes.POST("/create", with(h.CreatePost)...)
	postRoutes.POST("/like/:id", with(h.ToggleLike)...)
	postRoutes.POST("/comment/:id", with(h.CommentOnPost)...)
	postRoutes.DELETE("/:id", with(h.DeletePost)...)

	// Notification routes
	notificationRoutes.GET("", with(h.GetNotifications)...)
	notificationRoutes.DELETE("", with(h.DeleteNotifications)...)
}
