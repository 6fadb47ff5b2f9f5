package handler

import (
	"context"
	"net/http"

	"socialfeed/backend/internal/auth"
	"socialfeed/backend/internal/models"
	"socialfeed/backend/internal/repository"
	"socialfeed/backend/internal/service"

	"github.com/gin-gonic/gin"
)

// region --- DTOs ---

// CreatePostInput defines the body of a new post. Img is a data URI or remote URL.
type CreatePostInput struct {
	Text string `json:"text" example:"hello"`
	Img  string `json:"img" example:"data:image/png;base64,..."`
}

// CommentInput defines the body of a new comment.
type CommentInput struct {
	Text string `json:"text" example:"nice"`
}

// endregion

// GetAllPosts godoc
// @Summary      List all posts
// @Description  Returns a page of 15 posts, newest first.
// @Tags         posts
// @Produce      json
// @Security     CookieAuth
// @Param        page  path      int  true  "Page number, starting at 1"
// @Success      200   {array}   PostResponse
// @Failure      401   {object}  ErrorResponse
// @Failure      500   {object}  ErrorResponse
// @Router       /posts/all/{page} [get]
func (h *Handler) GetAllPosts(c *gin.Context) {
	h.listPosts(c, func(ctx context.Context, page repository.Page) ([]models.Post, error) {
		return h.posts.ListAll(ctx, page)
	})
}

// GetFollowingPosts godoc
// @Summary      List posts from followed users
// @Description  Returns a page of posts written by users the caller follows, newest first.
// @Tags         posts
// @Produce      json
// @Security     CookieAuth
// @Param        page  path      int  true  "Page number, starting at 1"
// @Success      200   {array}   PostResponse
// @Failure      401   {object}  ErrorResponse
// @Failure      500   {object}  ErrorResponse
// @Router       /posts/following/{page} [get]
func (h *Handler) GetFollowingPosts(c *gin.Context) {
	userID := auth.UserID(c)
	h.listPosts(c, func(ctx context.Context, page repository.Page) ([]models.Post, error) {
		return h.posts.ListFollowing(ctx, userID, page)
	})
}

// GetLikedPosts godoc
// @Summary      List posts a user liked
// @Description  Returns a page of posts liked by the user, most recent like first.
// @Tags         posts
// @Produce      json
// @Security     CookieAuth
// @Param        id    path      string  true  "User ID"
// @Param        page  path      int     true  "Page number, starting at 1"
// @Success      200   {array}   PostResponse
// @Failure      401   {object}  ErrorResponse
// @Failure      404   {object}  ErrorResponse
// @Failure      500   {object}  ErrorResponse
// @Router       /posts/likes/{id}/{page} [get]
func (h *Handler) GetLikedPosts(c *gin.Context) {
	userID := c.Param("id")
	h.listPosts(c, func(ctx context.Context, page repository.Page) ([]models.Post, error) {
		return h.posts.ListLiked(ctx, userID, page)
	})
}

// GetUserPosts godoc
// @Summary      List a user's posts
// @Description  Returns a page of posts written by the user, newest first.
// @Tags         posts
// @Produce      json
// @Security     CookieAuth
// @Param        username  path      string  true  "Username"
// @Param        page      path      int     true  "Page number, starting at 1"
// @Success      200       {array}   PostResponse
// @Failure      401       {object}  ErrorResponse
// @Failure      404       {object}  ErrorResponse
// @Failure      500       {object}  ErrorResponse
// @Router       /posts/user/{username}/{page} [get]
func (h *Handler) GetUserPosts(c *gin.Context) {
	username := c.Param("username")
	h.listPosts(c, func(ctx context.Context, page repository.Page) ([]models.Post, error) {
		return h.posts.ListByUser(ctx, username, page)
	})
}

func (h *Handler) listPosts(c *gin.Context, list func(context.Context, repository.Page) ([]models.Post, error)) {
	posts, err := list(c.Request.Context(), pageParam(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, newPostsResponse(posts))
}

// CreatePost godoc
// @Summary      Create a post
// @Description  Creates a post with text, an image, or both. The image is uploaded to the image host first.
// @Tags         posts
// @Accept       json
// @Produce      json
// @Security     CookieAuth
// @Param        input body CreatePostInput true "Post"
// @Success      201  {object}  PostResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /posts/create [post]
func (h *Handler) CreatePost(c *gin.Context) {
	var input CreatePostInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	post, err := h.posts.Create(c.Request.Context(), auth.UserID(c), service.CreatePostInput{
		Text: input.Text,
		Img:  input.Img,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, newPostResponse(post))
}

// ToggleLike godoc
// @Summary      Like or unlike a post
// @Description  Toggles the caller's like and returns the post's updated list of likers.
// @Tags         posts
// @Produce      json
// @Security     CookieAuth
// @Param        id   path      string  true  "Post ID"
// @Success      200  {array}   string
// @Failure      401  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /posts/like/{id} [post]
func (h *Handler) ToggleLike(c *gin.Context) {
	res, err := h.posts.ToggleLike(c.Request.Context(), auth.UserID(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, nonNil(res.Likers))
}

// CommentOnPost godoc
// @Summary      Comment on a post
// @Description  Appends a comment and returns the post with every comment.
// @Tags         posts
// @Accept       json
// @Produce      json
// @Security     CookieAuth
// @Param        id    path      string        true  "Post ID"
// @Param        input body      CommentInput  true  "Comment"
// @Success      200   {object}  PostResponse
// @Failure      400   {object}  ErrorResponse
// @Failure      401   {object}  ErrorResponse
// @Failure      404   {object}  ErrorResponse
// @Failure      500   {object}  ErrorResponse
// @Router       /posts/comment/{id} [post]
func (h *Handler) CommentOnPost(c *gin.Context) {
	var input CommentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	post, err := h.posts.Comment(c.Request.Context(), auth.UserID(c), c.Param("id"), input.Text)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, newPostResponse(post))
}

// DeletePost godoc
// @Summary      Delete a post
// @Description  Deletes one of the caller's posts with its likes, comments and image.
// @Tags         posts
// @Produce      json
// @Security     CookieAuth
// @Param        id   path      string  true  "Post ID"
// @Success      200  {object}  MessageResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /posts/{id} [delete]
func (h *Handler) DeletePost(c *gin.Context) {
	if err := h.posts.Delete(c.Request.Context(), auth.UserID(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Post has been deleted successfully"})
}
