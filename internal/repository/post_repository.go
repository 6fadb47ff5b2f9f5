package repository

import (
	"context"

	"socialfeed/backend/internal/models"

	"gorm.io/gorm"
)

// PostQuery selects which posts a listing returns. The zero value lists every post.
type PostQuery struct {
	// AuthorIDs restricts results to these authors when non-nil. An empty,
	// non-nil slice matches nothing.
	AuthorIDs []string
	// LikedBy restricts results to posts liked by this user, most recent like first.
	LikedBy string
}

type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	// FindByID loads the bare post row.
	FindByID(ctx context.Context, id string) (*models.Post, error)
	// FindWithDetails loads the post with its author, likes and comments.
	FindWithDetails(ctx context.Context, id string) (*models.Post, error)
	List(ctx context.Context, q PostQuery, page Page) ([]models.Post, error)
	Delete(ctx context.Context, id string) (bool, error)
}

type postRepository struct{ db *gorm.DB }

func NewPostRepository(db *gorm.DB) PostRepository { return &postRepository{db: db} }

func withDetails(db *gorm.DB) *gorm.DB {
	return db.
		Preload("User").
		Preload("Likes", func(db *gorm.DB) *gorm.DB { return db.Order("likes.created_at") }).
		Preload("Comments", func(db *gorm.DB) *gorm.DB { return db.Order("comments.seq") }).
		Preload("Comments.User")
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	return r.db.WithContext(ctx).Create(post).Error
}

func (r *postRepository) FindByID(ctx context.Context, id string) (*models.Post, error) {
	var post models.Post
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&post).Error; err != nil {
		return nil, notFound(err)
	}
	return &post, nil
}

func (r *postRepository) FindWithDetails(ctx context.Context, id string) (*models.Post, error) {
	var post models.Post
	if err := r.db.WithContext(ctx).Scopes(withDetails).Where("posts.id = ?", id).First(&post).Error; err != nil {
		return nil, notFound(err)
	}
	return &post, nil
}

func (r *postRepository) List(ctx context.Context, q PostQuery, page Page) ([]models.Post, error) {
	posts := []models.Post{}
	if q.AuthorIDs != nil && len(q.AuthorIDs) == 0 {
		return posts, nil
	}

	query := r.db.WithContext(ctx).Model(&models.Post{}).Scopes(withDetails, Paginate(page))
	if q.AuthorIDs != nil {
		query = query.Where("posts.user_id IN ?", q.AuthorIDs)
	}
	if q.LikedBy != "" {
		query = query.
			Select("posts.*").
			Joins("JOIN likes ON likes.post_id = posts.id").
			Where("likes.user_id = ?", q.LikedBy).
			Order("likes.created_at DESC")
	}
	query = query.Order("posts.created_at DESC").Order("posts.id DESC")

	if err := query.Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

func (r *postRepository) Delete(ctx context.Context, id string) (bool, error) {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Post{})
	return res.RowsAffected > 0, res.Error
}
