package models

import "time"

// Like is the edge between a user and a post they liked. It backs both
// Post.likes and the user's likedPosts (ordered by CreatedAt).
type Like struct {
	UserID    string `gorm:"primaryKey;type:varchar(36)"`
	PostID    string `gorm:"primaryKey;type:varchar(36);index"`
	CreatedAt time.Time
}
