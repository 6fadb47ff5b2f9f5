package service

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"socialfeed/backend/internal/apperr"
	"socialfeed/backend/internal/media"
	"socialfeed/backend/internal/metrics"
	"socialfeed/backend/internal/models"
	"socialfeed/backend/internal/repository"
	"socialfeed/backend/internal/telemetry"
	"socialfeed/backend/pkg/logger"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// MinPasswordLength applies to registration and password changes.
const MinPasswordLength = 8

// hashCost is a variable so tests can trade strength for speed.
var hashCost = bcrypt.DefaultCost

// Profile is a user together with the edges derived from the follow and like tables.
type Profile struct {
	User       models.User
	Followers  []string
	Following  []string
	LikedPosts []string
}

func loadProfile(ctx context.Context, store *repository.Store, user *models.User) (*Profile, error) {
	followers, err := store.Follows().FollowerIDs(ctx, user.ID)
	if err != nil {
		return nil, apperr.Unexpected(err)
	}
	following, err := store.Follows().FollowingIDs(ctx, user.ID)
	if err != nil {
		return nil, apperr.Unexpected(err)
	}
	liked, err := store.Likes().LikedPostIDs(ctx, user.ID)
	if err != nil {
		return nil, apperr.Unexpected(err)
	}
	return &Profile{User: *user, Followers: followers, Following: following, LikedPosts: liked}, nil
}

func hashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), hashCost)
	if err != nil {
		return "", apperr.Unexpected(err)
	}
	return string(hashed), nil
}

func checkPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

func weakPassword(password string) bool {
	return utf8.RuneCountInString(password) < MinPasswordLength
}

func blank(s string) bool { return strings.TrimSpace(s) == "" }

// findUser maps a missing row to NotFound with msg.
func findUser(ctx context.Context, store *repository.Store, id, msg string) (*models.User, error) {
	user, err := store.Users().FindByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperr.NotFound(msg)
	}
	if err != nil {
		return nil, apperr.Unexpected(err)
	}
	return user, nil
}

func uploadImage(ctx context.Context, binder media.Binder, payload string) (string, error) {
	url, err := binder.Upload(ctx, payload)
	if errors.Is(err, media.ErrDisabled) {
		return "", apperr.Validation("Image uploads are not configured")
	}
	if err != nil {
		return "", apperr.Unexpected(err)
	}
	return url, nil
}

// releaseImage deletes a bound image. Failure leaves an orphaned image behind;
// it is logged and reported but never fails the caller.
func releaseImage(ctx context.Context, binder media.Binder, imageURL, owner string) {
	if imageURL == "" {
		return
	}
	if err := binder.Destroy(ctx, imageURL); err != nil {
		logger.Warn("image cleanup failed",
			zap.String("url", imageURL),
			zap.String("owner", owner),
			zap.Error(err),
		)
		telemetry.Report(err)
		metrics.RecordMediaCleanupFailure()
	}
}
