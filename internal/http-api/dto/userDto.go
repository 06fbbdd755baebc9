package dto

import (
	"time"

	"bookhive/internal/http-api/models"
)

// UserResponse is the public view of a user profile.
type UserResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// ProfileResponse extends the public profile with the caller's own like and
// favorite state, so the client can answer "did I like this" without scanning
// reviews or comments.
type ProfileResponse struct {
	UserResponse
	FavoriteBookIDs []int64 `json:"favorite_book_ids"`
	LikedReviewIDs  []int64 `json:"liked_review_ids"`
	LikedCommentIDs []int64 `json:"liked_comment_ids"`
}

func FromModelToUserResponse(u *models.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
	}
}
