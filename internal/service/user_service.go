package service

import (
	"context"
	"errors"
	"strings"

	"socialfeed/backend/internal/apperr"
	"socialfeed/backend/internal/followcache"
	"socialfeed/backend/internal/media"
	"socialfeed/backend/internal/metrics"
	"socialfeed/backend/internal/models"
	"socialfeed/backend/internal/repository"
)

const (
	// suggestionSample is how many random users are drawn before filtering.
	suggestionSample = 10
	// suggestionLimit caps the suggestions returned after filtering.
	suggestionLimit = 4
)

// UpdateProfileInput holds a partial profile update. Empty fields are left unchanged.
type UpdateProfileInput struct {
	FullName        string
	Bio             string
	Link            string
	ProfileImg      string
	CoverImg        string
	CurrentPassword string
	NewPassword     string
}

// UserService owns profiles and the follow graph.
type UserService struct {
	store     *repository.Store
	media     media.Binder
	following *followcache.Index
}

func NewUserService(store *repository.Store, binder media.Binder, following *followcache.Index) *UserService {
	return &UserService{store: store, media: binder, following: following}
}

// GetProfile looks a user up by username.
func (s *UserService) GetProfile(ctx context.Context, username string) (*Profile, error) {
	user, err := s.store.Users().FindByUsername(ctx, username)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperr.NotFound("User not found")
	}
	if err != nil {
		return nil, apperr.Unexpected(err)
	}
	return loadProfile(ctx, s.store, user)
}

// IsFollowing reports whether followerID follows followeeID.
func (s *UserService) IsFollowing(ctx context.Context, followerID, followeeID string) (bool, error) {
	ok, err := s.store.Follows().Exists(ctx, followerID, followeeID)
	if err != nil {
		return false, apperr.Unexpected(err)
	}
	return ok, nil
}

// ToggleFollow follows targetID, or unfollows it when the edge already exists.
// A follow also notifies the target. It reports whether the edge exists afterwards.
func (s *UserService) ToggleFollow(ctx context.Context, actingID, targetID string) (bool, error) {
	if actingID == targetID {
		return false, apperr.Validation("You can't follow yourself")
	}
	if _, err := findUser(ctx, s.store, targetID, "User not found"); err != nil {
		return false, err
	}

	var followed bool
	err := s.store.Transaction(ctx, func(tx *repository.Store) error {
		removed, err := tx.Follows().Delete(ctx, actingID, targetID)
		if err != nil {
			return err
		}
		if removed {
			followed = false
			return nil
		}

		created, err := tx.Follows().Create(ctx, actingID, targetID)
		if err != nil {
			return err
		}
		followed = true
		if !created {
			// A concurrent request inserted the edge and notified already.
			return nil
		}
		return tx.Notifications().Create(ctx, &models.Notification{
			FromID: actingID,
			ToID:   targetID,
			Type:   models.NotificationFollow,
		})
	})
	if err != nil {
		return false, apperr.Unexpected(err)
	}

	s.following.Invalidate(ctx, actingID)
	metrics.RecordFollow(followed)
	return followed, nil
}

// SuggestUsers draws a random sample of other users and drops the ones already
// followed. The result may hold fewer than four users, or none, when the
// sample overlaps the follow set.
func (s *UserService) SuggestUsers(ctx context.Context, actingID string) ([]models.User, error) {
	following, err := s.following.Following(ctx, actingID, s.store.Follows().FollowingIDs)
	if err != nil {
		return nil, apperr.Unexpected(err)
	}
	followed := make(map[string]bool, len(following))
	for _, id := range following {
		followed[id] = true
	}

	sample, err := s.store.Users().Sample(ctx, actingID, suggestionSample)
	if err != nil {
		return nil, apperr.Unexpected(err)
	}

	suggested := make([]models.User, 0, suggestionLimit)
	for _, u := range sample {
		if followed[u.ID] {
			continue
		}
		suggested = append(suggested, u)
		if len(suggested) == suggestionLimit {
			break
		}
	}
	return suggested, nil
}

// UpdateProfile applies a partial update to the acting user's record and saves it.
func (s *UserService) UpdateProfile(ctx context.Context, user *models.User, in UpdateProfileInput) (*Profile, error) {
	if (in.CurrentPassword == "") != (in.NewPassword == "") {
		return nil, apperr.Validation("You must enter the current password with the new password to change it")
	}

	if in.CurrentPassword != "" {
		if !checkPassword(user.PasswordHash, in.CurrentPassword) {
			return nil, apperr.Validation("Current Password is Incorrect")
		}
		if weakPassword(in.NewPassword) {
			return nil, apperr.Validation("Password is weak")
		}
		hash, err := hashPassword(in.NewPassword)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = hash
	}

	if in.ProfileImg != "" {
		url, err := s.replaceImage(ctx, user.ProfileImg, in.ProfileImg, user.ID)
		if err != nil {
			return nil, err
		}
		user.ProfileImg = url
	}
	if in.CoverImg != "" {
		url, err := s.replaceImage(ctx, user.CoverImg, in.CoverImg, user.ID)
		if err != nil {
			return nil, err
		}
		user.CoverImg = url
	}

	user.FullName = keep(user.FullName, in.FullName)
	user.Bio = keep(user.Bio, in.Bio)
	user.Link = keep(user.Link, in.Link)

	if err := s.store.Users().Save(ctx, user); err != nil {
		return nil, apperr.Unexpected(err)
	}
	return loadProfile(ctx, s.store, user)
}

// replaceImage releases the previous image, then uploads the new payload.
func (s *UserService) replaceImage(ctx context.Context, previous, payload, owner string) (string, error) {
	releaseImage(ctx, s.media, previous, owner)
	return uploadImage(ctx, s.media, payload)
}

func keep(current, update string) string {
	if strings.TrimSpace(update) == "" {
		return current
	}
	return update
}
