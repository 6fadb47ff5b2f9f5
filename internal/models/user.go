package models

// User represents an account. Follow and like edges live in their own tables
// (see Follow and Like); the user row itself only holds profile data.
type User struct {
	Base
	Username     string `gorm:"size:255;uniqueIndex;not null"`
	FullName     string `gorm:"size:255"`
	Email        string `gorm:"size:255;uniqueIndex;not null"`
	PasswordHash string `gorm:"size:255;not null"`
	Bio          string `gorm:"type:text"`
	Link         string `gorm:"size:512"`
	ProfileImg   string `gorm:"size:512"`
	CoverImg     string `gorm:"size:512"`
}
