package models

import "time"

// Comment is append-only; Seq preserves insertion order when timestamps tie.
type Comment struct {
	Seq       uint   `gorm:"primaryKey;autoIncrement"`
	PostID    string `gorm:"type:varchar(36);not null;index"`
	UserID    string `gorm:"type:varchar(36);not null"`
	Text      string `gorm:"type:text;not null"`
	CreatedAt time.Time

	User User `gorm:"foreignKey:UserID"`
}
