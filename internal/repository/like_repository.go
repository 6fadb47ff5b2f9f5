package repository

import (
	"context"

	"socialfeed/backend/internal/models"

	"gorm.io/gorm"
)

type LikeRepository interface {
	// Create fails on a duplicate (user, post) pair.
	Create(ctx context.Context, userID, postID string) error
	Delete(ctx context.Context, userID, postID string) (bool, error)
	// PostLikers lists the users who liked postID in like order.
	PostLikers(ctx context.Context, postID string) ([]string, error)
	// LikedPostIDs lists the posts userID liked in like order.
	LikedPostIDs(ctx context.Context, userID string) ([]string, error)
	DeleteByPost(ctx context.Context, postID string) error
}

type likeRepository struct{ db *gorm.DB }

func NewLikeRepository(db *gorm.DB) LikeRepository { return &likeRepository{db: db} }

func (r *likeRepository) Create(ctx context.Context, userID, postID string) error {
	return r.db.WithContext(ctx).Create(&models.Like{UserID: userID, PostID: postID}).Error
}

func (r *likeRepository) Delete(ctx context.Context, userID, postID string) (bool, error) {
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND post_id = ?", userID, postID).
		Delete(&models.Like{})
	return res.RowsAffected > 0, res.Error
}

func (r *likeRepository) PostLikers(ctx context.Context, postID string) ([]string, error) {
	ids := []string{}
	err := r.db.WithContext(ctx).
		Model(&models.Like{}).
		Where("post_id = ?", postID).
		Order("created_at").
		Pluck("user_id", &ids).Error
	return ids, err
}

func (r *likeRepository) LikedPostIDs(ctx context.Context, userID string) ([]string, error) {
	ids := []string{}
	err := r.db.WithContext(ctx).
		Model(&models.Like{}).
		Where("user_id = ?", userID).
		Order("created_at").
		Pluck("post_id", &ids).Error
	return ids, err
}

func (r *likeRepository) DeleteByPost(ctx context.Context, postID string) error {
	return r.db.WithContext(ctx).Where("post_id = ?", postID).Delete(&models.Like{}).Error
}
