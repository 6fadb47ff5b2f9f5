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

// CreatePostInput carries a new post. Img is an upload payload, not a URL.
type CreatePostInput struct {
	Text string
	Img  string
}

// LikeResult is the state of a post's likes after a toggle.
type LikeResult struct {
	Liked  bool
	Likers []string
}

type PostService struct {
	store     *repository.Store
	media     media.Binder
	following *followcache.Index
}

func NewPostService(store *repository.Store, binder media.Binder, following *followcache.Index) *PostService {
	return &PostService{store: store, media: binder, following: following}
}

// ListAll returns every post, newest first.
func (s *PostService) ListAll(ctx context.Context, page repository.Page) ([]models.Post, error) {
	return s.list(ctx, repository.PostQuery{}, page)
}

// ListFollowing returns posts by the users userID follows, newest first.
func (s *PostService) ListFollowing(ctx context.Context, userID string, page repository.Page) ([]models.Post, error) {
	ids, err := s.following.Following(ctx, userID, s.store.Follows().FollowingIDs)
	if err != nil {
		return nil, apperr.Unexpected(err)
	}
	if ids == nil {
		ids = []string{}
	}
	return s.list(ctx, repository.PostQuery{AuthorIDs: ids}, page)
}

// ListLiked returns the posts userID has liked, most recent like first.
func (s *PostService) ListLiked(ctx context.Context, userID string, page repository.Page) ([]models.Post, error) {
	if _, err := findUser(ctx, s.store, userID, "User not found"); err != nil {
		return nil, err
	}
	return s.list(ctx, repository.PostQuery{LikedBy: userID}, page)
}

// ListByUser returns the posts written by username, newest first.
func (s *PostService) ListByUser(ctx context.Context, username string, page repository.Page) ([]models.Post, error) {
	user, err := s.store.Users().FindByUsername(ctx, username)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperr.NotFound("User not found")
	}
	if err != nil {
		return nil, apperr.Unexpected(err)
	}
	return s.list(ctx, repository.PostQuery{AuthorIDs: []string{user.ID}}, page)
}

func (s *PostService) list(ctx context.Context, q repository.PostQuery, page repository.Page) ([]models.Post, error) {
	posts, err := s.store.Posts().List(ctx, q, page)
	if err != nil {
		return nil, apperr.Unexpected(err)
	}
	return posts, nil
}

// Create stores a post for authorID, uploading the image first when one is given.
func (s *PostService) Create(ctx context.Context, authorID string, in CreatePostInput) (*models.Post, error) {
	if blank(in.Text) && in.Img == "" {
		return nil, apperr.Validation("Post must have img or text or both")
	}
	if _, err := findUser(ctx, s.store, authorID, "User not found"); err != nil {
		return nil, err
	}

	post := &models.Post{UserID: authorID, Text: strings.TrimSpace(in.Text)}
	if in.Img != "" {
		url, err := uploadImage(ctx, s.media, in.Img)
		if err != nil {
			return nil, err
		}
		post.Img = url
	}

	if err := s.store.Posts().Create(ctx, post); err != nil {
		// The upload already happened; give the image back.
		releaseImage(ctx, s.media, post.Img, authorID)
		return nil, apperr.Unexpected(err)
	}
	metrics.RecordPostCreated()
	return s.details(ctx, post.ID)
}

// Delete removes a post owned by requesterID together with its likes and comments.
// The bound image is released first, best effort.
func (s *PostService) Delete(ctx context.Context, requesterID, postID string) error {
	post, err := s.store.Posts().FindByID(ctx, postID)
	if errors.Is(err, repository.ErrNotFound) {
		return apperr.NotFound("No post found")
	}
	if err != nil {
		return apperr.Unexpected(err)
	}
	if post.UserID != requesterID {
		return apperr.Auth("You can delete only your posts")
	}

	releaseImage(ctx, s.media, post.Img, requesterID)

	err = s.store.Transaction(ctx, func(tx *repository.Store) error {
		if err := tx.Likes().DeleteByPost(ctx, postID); err != nil {
			return err
		}
		if err := tx.Comments().DeleteByPost(ctx, postID); err != nil {
			return err
		}
		_, err := tx.Posts().Delete(ctx, postID)
		return err
	})
	if err != nil {
		return apperr.Unexpected(err)
	}
	return nil
}

// ToggleLike likes or unlikes postID for userID. A like notifies the author.
func (s *PostService) ToggleLike(ctx context.Context, userID, postID string) (*LikeResult, error) {
	post, err := s.store.Posts().FindByID(ctx, postID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperr.NotFound("Post not found")
	}
	if err != nil {
		return nil, apperr.Unexpected(err)
	}

	res := &LikeResult{}
	err = s.store.Transaction(ctx, func(tx *repository.Store) error {
		removed, err := tx.Likes().Delete(ctx, userID, postID)
		if err != nil {
			return err
		}
		if !removed {
			if err := tx.Likes().Create(ctx, userID, postID); err != nil {
				return err
			}
			if err := tx.Notifications().Create(ctx, &models.Notification{
				FromID: userID,
				ToID:   post.UserID,
				Type:   models.NotificationLike,
			}); err != nil {
				return err
			}
			res.Liked = true
		}

		res.Likers, err = tx.Likes().PostLikers(ctx, postID)
		return err
	})
	if err != nil {
		return nil, apperr.Unexpected(err)
	}

	metrics.RecordLike(res.Liked)
	return res, nil
}

// Comment appends a comment and returns the post with all its comments.
func (s *PostService) Comment(ctx context.Context, userID, postID, text string) (*models.Post, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, apperr.Validation("Text field is required")
	}
	if _, err := s.store.Posts().FindByID(ctx, postID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.NotFound("Post not found")
		}
		return nil, apperr.Unexpected(err)
	}

	if err := s.store.Comments().Create(ctx, &models.Comment{PostID: postID, UserID: userID, Text: text}); err != nil {
		return nil, apperr.Unexpected(err)
	}
	return s.details(ctx, postID)
}

func (s *PostService) details(ctx context.Context, postID string) (*models.Post, error) {
	post, err := s.store.Posts().FindWithDetails(ctx, postID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperr.NotFound("Post not found")
	}
	if err != nil {
		return nil, apperr.Unexpected(err)
	}
	return post, nil
}
