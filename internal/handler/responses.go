package handler

import (
	"strconv"
	"time"

	"socialfeed/backend/internal/models"
	"socialfeed/backend/internal/service"
)

// region --- DTOs ---

// ErrorResponse represents a generic error response.
type ErrorResponse struct {
	Error string `json:"error" example:"An error message"`
}

// MessageResponse is returned by operations that have no record to show.
type MessageResponse struct {
	Message string `json:"message" example:"User followed successfully"`
}

// UserResponse is a full user record. The password hash is never included.
type UserResponse struct {
	ID          string    `json:"_id" example:"5f0c1d0e-2b7a-4f7e-9a51-2a1f8f6d9c11"`
	Username    string    `json:"username" example:"alice"`
	FullName    string    `json:"fullName" example:"Alice A"`
	Email       string    `json:"email" example:"alice@example.com"`
	Followers   []string  `json:"followers"`
	Following   []string  `json:"following"`
	LikedPosts  []string  `json:"likedPosts"`
	ProfileImg  string    `json:"profileImg"`
	CoverImg    string    `json:"coverImg"`
	Bio         string    `json:"bio"`
	Link        string    `json:"link"`
	IsFollowing *bool     `json:"isFollowing,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// UserSummary identifies the author of a post, comment or notification.
type UserSummary struct {
	ID         string `json:"_id"`
	Username   string `json:"username" example:"alice"`
	FullName   string `json:"fullName,omitempty" example:"Alice A"`
	ProfileImg string `json:"profileImg"`
}

// CommentResponse is one entry in a post's comment list.
type CommentResponse struct {
	ID        string      `json:"_id" example:"42"`
	Text      string      `json:"text" example:"nice"`
	User      UserSummary `json:"user"`
	CreatedAt time.Time   `json:"createdAt"`
}

// PostResponse is a post with its author, likes and comments.
type PostResponse struct {
	ID        string            `json:"_id"`
	User      UserSummary       `json:"user"`
	Text      string            `json:"text,omitempty" example:"hello"`
	Img       string            `json:"img,omitempty"`
	Likes     []string          `json:"likes"`
	Comments  []CommentResponse `json:"comments"`
	CreatedAt time.Time         `json:"createdAt"`
	UpdatedAt time.Time         `json:"updatedAt"`
}

// NotificationResponse is a like or follow addressed to the caller.
type NotificationResponse struct {
	ID        string      `json:"_id"`
	From      UserSummary `json:"from"`
	To        string      `json:"to"`
	Type      string      `json:"type" example:"follow"`
	Read      bool        `json:"read"`
	CreatedAt time.Time   `json:"createdAt"`
}

// endregion

func newUserResponse(p *service.Profile) UserResponse {
	return UserResponse{
		ID:         p.User.ID,
		Username:   p.User.Username,
		FullName:   p.User.FullName,
		Email:      p.User.Email,
		Followers:  nonNil(p.Followers),
		Following:  nonNil(p.Following),
		LikedPosts: nonNil(p.LikedPosts),
		ProfileImg: p.User.ProfileImg,
		CoverImg:   p.User.CoverImg,
		Bio:        p.User.Bio,
		Link:       p.User.Link,
		CreatedAt:  p.User.CreatedAt,
		UpdatedAt:  p.User.UpdatedAt,
	}
}

// newSuggestedResponse builds a record without edge lists; suggestions only
// need enough to render a follow button.
func newSuggestedResponse(u models.User) UserResponse {
	return newUserResponse(&service.Profile{User: u})
}

func newUserSummary(u models.User) UserSummary {
	return UserSummary{ID: u.ID, Username: u.Username, FullName: u.FullName, ProfileImg: u.ProfileImg}
}

func newPostResponse(p *models.Post) PostResponse {
	likes := make([]string, 0, len(p.Likes))
	for _, l := range p.Likes {
		likes = append(likes, l.UserID)
	}
	comments := make([]CommentResponse, 0, len(p.Comments))
	for _, c := range p.Comments {
		comments = append(comments, CommentResponse{
			ID:        strconv.FormatUint(uint64(c.Seq), 10),
			Text:      c.Text,
			User:      newUserSummary(c.User),
			CreatedAt: c.CreatedAt,
		})
	}
	return PostResponse{
		ID:        p.ID,
		User:      newUserSummary(p.User),
		Text:      p.Text,
		Img:       p.Img,
		Likes:     likes,
		Comments:  comments,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

func newPostsResponse(posts []models.Post) []PostResponse {
	out := make([]PostResponse, 0, len(posts))
	for i := range posts {
		out = append(out, newPostResponse(&posts[i]))
	}
	return out
}

func newNotificationsResponse(list []models.Notification) []NotificationResponse {
	out := make([]NotificationResponse, 0, len(list))
	for _, n := range list {
		out = append(out, NotificationResponse{
			ID:        n.ID,
			From:      UserSummary{ID: n.From.ID, Username: n.From.Username, ProfileImg: n.From.ProfileImg},
			To:        n.ToID,
			Type:      string(n.Type),
			Read:      n.Read,
			CreatedAt: n.CreatedAt,
		})
	}
	return out
}

func nonNil(ids []string) []string {
	if ids == nil {
		return []string{}
	}
	return ids
}
