package models

type NotificationType string

const (
	NotificationLike   NotificationType = "like"
	NotificationFollow NotificationType = "follow"
)

// Notification records a like or follow addressed to ToID.
type Notification struct {
	Base
	FromID string           `gorm:"type:varchar(36);not null"`
	ToID   string           `gorm:"type:varchar(36);not null;index"`
	Type   NotificationType `gorm:"type:varchar(20);not null"`
	Read   bool             `gorm:"not null;default:false"`

	From User `gorm:"foreignKey:FromID"`
}
