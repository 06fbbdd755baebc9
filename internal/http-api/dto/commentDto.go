package dto

import (
	"time"

	"bookhive/internal/http-api/models"
)

// CreateCommentDTO for creating a comment. ParentID nil means top-level;
// otherwise the new comment is a reply to that comment.
type CreateCommentDTO struct {
	Content  string `json:"content" binding:"required,min=1,max=5000"`
	ParentID *int64 `json:"parent_id,omitempty"`
}

// CommentResponse for returning comment information with the author's public profile
type CommentResponse struct {
	ID        int64     `json:"id"`
	ReviewID  int64     `json:"review_id"`
	ParentID  *int64    `json:"parent_id,omitempty"`
	UserID    string    `json:"user_id"`
	UserName  string    `json:"user_name"`
	Content   string    `json:"content"`
	Likes     int64     `json:"likes"`
	CreatedAt time.Time `json:"created_at"`
}

// FromModelToCommentResponse converts a Comment model to CommentResponse DTO
func FromModelToCommentResponse(comment *models.Comment, likes int64) *CommentResponse {
	return &CommentResponse{
		ID:        comment.ID,
		ReviewID:  comment.ReviewID,
		ParentID:  comment.ParentID,
		UserID:    comment.UserID,
		UserName:  comment.User.Name,
		Content:   comment.Content,
		Likes:     likes,
		CreatedAt: comment.CreatedAt,
	}
}
