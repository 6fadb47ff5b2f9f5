package models

// Post is a user's post. At least one of Text and Img is non-empty.
type Post struct {
	Base
	UserID string `gorm:"type:varchar(36);not null;index"`
	Text   string `gorm:"type:text"`
	Img    string `gorm:"size:512"`

	User     User      `gorm:"foreignKey:UserID"`
	Likes    []Like    `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE;"`
	Comments []Comment `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE;"`
}
