package handler

import (
	"net/http"

	"socialfeed/backend/internal/auth"
	"socialfeed/backend/internal/service"

	"github.com/gin-gonic/gin"
)

// region --- DTOs ---

// UpdateProfileInput is a partial update; empty fields are left unchanged.
type UpdateProfileInput struct {
	FullName        string `json:"fullName" example:"Alice A"`
	Bio             string `json:"bio" example:"hello"`
	Link            string `json:"link" example:"https://alice.dev"`
	ProfileImg      string `json:"profileImg" example:"data:image/png;base64,..."`
	CoverImg        string `json:"coverImg" example:"data:image/png;base64,..."`
	CurrentPassword string `json:"currentPassword" example:"password1"`
	NewPassword     string `json:"newPassword" example:"password2"`
}

// endregion

// GetProfile godoc
// @Summary      Get a user's profile
// @Description  Looks a user up by username. With a valid session the response says whether the caller follows them.
// @Tags         users
// @Produce      json
// @Param        username  path      string  true  "Username"
// @Success      200       {object}  UserResponse
// @Failure      404       {object}  ErrorResponse
// @Failure      500       {object}  ErrorResponse
// @Router       /users/profile/{username} [get]
func (h *Handler) GetProfile(c *gin.Context) {
	profile, err := h.users.GetProfile(c.Request.Context(), c.Param("username"))
	if err != nil {
		respondError(c, err)
		return
	}

	resp := newUserResponse(profile)
	if viewerID := auth.UserID(c); viewerID != "" && viewerID != profile.User.ID {
		following, err := h.users.IsFollowing(c.Request.Context(), viewerID, profile.User.ID)
		if err != nil {
			respondError(c, err)
			return
		}
		resp.IsFollowing = &following
	}
	c.JSON(http.StatusOK, resp)
}

// ToggleFollow godoc
// @Summary      Follow or unfollow a user
// @Description  Follows the user when not yet followed, unfollows otherwise. A follow notifies the user.
// @Tags         users
// @Produce      json
// @Security     CookieAuth
// @Param        id   path      string  true  "Target user ID"
// @Success      200  {object}  MessageResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /users/follow/{id} [post]
func (h *Handler) ToggleFollow(c *gin.Context) {
	followed, err := h.users.ToggleFollow(c.Request.Context(), auth.UserID(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	if followed {
		c.JSON(http.StatusOK, gin.H{"message": "User followed successfully"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User unFollowed successfully"})
}

// GetSuggested godoc
// @Summary      Suggest users to follow
// @Description  Returns up to four random users the caller does not follow yet.
// @Tags         users
// @Produce      json
// @Security     CookieAuth
// @Success      200  {array}   UserResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /users/suggested [get]
func (h *Handler) GetSuggested(c *gin.Context) {
	users, err := h.users.SuggestUsers(c.Request.Context(), auth.UserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	resp := make([]UserResponse, 0, len(users))
	for _, u := range users {
		resp = append(resp, newSuggestedResponse(u))
	}
	c.JSON(http.StatusOK, resp)
}

// UpdateProfile godoc
// @Summary      Update the caller's profile
// @Description  Applies a partial update. Changing the password needs both the current and the new one.
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     CookieAuth
// @Param        input body UpdateProfileInput true "Fields to change"
// @Success      200  {object}  UserResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /users/update [post]
func (h *Handler) UpdateProfile(c *gin.Context) {
	user := auth.CurrentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized: No Token Provided"})
		return
	}

	var input UpdateProfileInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	profile, err := h.users.UpdateProfile(c.Request.Context(), user, service.UpdateProfileInput{
		FullName:        input.FullName,
		Bio:             input.Bio,
		Link:            input.Link,
		ProfileImg:      input.ProfileImg,
		CoverImg:        input.CoverImg,
		CurrentPassword: input.CurrentPassword,
		NewPassword:     input.NewPassword,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, newUserResponse(profile))
}
