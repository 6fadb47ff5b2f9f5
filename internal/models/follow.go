package models

import "time"

// Follow is a directed edge: FollowerID follows FolloweeID.
// The composite primary key keeps the edge unique; both the follower's
// "following" list and the followee's "followers" list are read from this
// single row, so the two sides cannot disagree.
type Follow struct {
	FollowerID string `gorm:"primaryKey;type:varchar(36)"`
	FolloweeID string `gorm:"primaryKey;type:varchar(36);index"`
	CreatedAt  time.Time

	Follower User `gorm:"foreignKey:FollowerID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Followee User `gorm:"foreignKey:FolloweeID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}
