package handler

import (
	"net/http"

	"socialfeed/backend/internal/auth"

	"github.com/gin-gonic/gin"
)

// GetNotifications godoc
// @Summary      List notifications
// @Description  Returns the caller's notifications, newest first, then marks them all read. The response shows the state before marking.
// @Tags         notifications
// @Produce      json
// @Security     CookieAuth
// @Success      200  {array}   NotificationResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /notifications [get]
func (h *Handler) GetNotifications(c *gin.Context) {
	ctx := c.Request.Context()
	userID := auth.UserID(c)

	list, err := h.notes.List(ctx, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	if err := h.notes.MarkAllRead(ctx, userID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, newNotificationsResponse(list))
}

// DeleteNotifications godoc
// @Summary      Delete notifications
// @Description  Deletes every notification addressed to the caller.
// @Tags         notifications
// @Produce      json
// @Security     CookieAuth
// @Success      200  {object}  MessageResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /notifications [delete]
func (h *Handler) DeleteNotifications(c *gin.Context) {
	if err := h.notes.Clear(c.Request.Context(), auth.UserID(c)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Notifications deleted successfully"})
}
