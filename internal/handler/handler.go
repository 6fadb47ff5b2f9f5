// Package handler exposes the services over HTTP.
package handler

import (
	"net/http"
	"time"

	"socialfeed/backend/internal/apperr"
	"socialfeed/backend/internal/auth"
	"socialfeed/backend/internal/repository"
	"socialfeed/backend/internal/service"
	"socialfeed/backend/internal/telemetry"
	"socialfeed/backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// CookieOptions controls the session cookie.
type CookieOptions struct {
	TTL time.Duration
	// Secure marks the cookie Secure and SameSite=None for cross-site frontends.
	Secure bool
}

// Handler serves every route. Build it with New.
type Handler struct {
	store  *repository.Store
	auth   *service.AuthService
	users  *service.UserService
	posts  *service.PostService
	notes  *service.NotificationService
	cookie CookieOptions
}

func New(
	store *repository.Store,
	authSvc *service.AuthService,
	users *service.UserService,
	posts *service.PostService,
	notes *service.NotificationService,
	cookie CookieOptions,
) *Handler {
	return &Handler{store: store, auth: authSvc, users: users, posts: posts, notes: notes, cookie: cookie}
}

// respondError writes err with the status of its kind. Unexpected errors are
// logged and reported; the client only sees the generic message.
func respondError(c *gin.Context, err error) {
	kind := apperr.KindOf(err)
	if kind == apperr.KindUnexpected {
		logger.Error("request failed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Error(err),
		)
		telemetry.Report(err)
	}
	c.JSON(apperr.HTTPStatus(kind), gin.H{"error": apperr.Message(err)})
}

func (h *Handler) setSessionCookie(c *gin.Context, token string) {
	h.writeCookie(c, token, int(h.cookie.TTL.Seconds()))
}

func (h *Handler) clearSessionCookie(c *gin.Context) {
	h.writeCookie(c, "", -1)
}

func (h *Handler) writeCookie(c *gin.Context, value string, maxAge int) {
	if h.cookie.Secure {
		c.SetSameSite(http.SameSiteNoneMode)
	} else {
		c.SetSameSite(http.SameSiteStrictMode)
	}
	c.SetCookie(auth.CookieName, value, maxAge, "/", "", h.cookie.Secure, true)
}
