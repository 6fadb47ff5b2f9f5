package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

// ErrNotFound is returned by single-record lookups that match nothing.
var ErrNotFound = errors.New("record not found")

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

// Store groups the repositories over one gorm handle. A Store obtained inside
// Transaction is bound to that transaction.
type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store { return &Store{db: db} }

func (s *Store) Users() UserRepository                 { return NewUserRepository(s.db) }
func (s *Store) Follows() FollowRepository             { return NewFollowRepository(s.db) }
func (s *Store) Posts() PostRepository                 { return NewPostRepository(s.db) }
func (s *Store) Likes() LikeRepository                 { return NewLikeRepository(s.db) }
func (s *Store) Comments() CommentRepository           { return NewCommentRepository(s.db) }
func (s *Store) Notifications() NotificationRepository { return NewNotificationRepository(s.db) }

// Transaction runs fn against a transaction-bound Store. Returning an error
// from fn rolls every write back.
func (s *Store) Transaction(ctx context.Context, fn func(tx *Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&Store{db: tx})
	})
}
