package dto

import (
	"time"

	"bookhive/internal/http-api/models"
)

// CreateReviewDTO for creating a review
type CreateReviewDTO struct {
	Content string `json:"content" binding:"required,min=1,max=10000"`
	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
}

// UpdateReviewDTO for updating a review (author only)
type UpdateReviewDTO struct {
	Content string `json:"content" binding:"required,min=1,max=10000"`
	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
}

// ReviewResponse for returning review information with the author's public profile
type ReviewResponse struct {
	ID        int64     `json:"id"`
	BookID    int64     `json:"book_id"`
	UserID    string    `json:"user_id"`
	UserName  string    `json:"user_name"`
	Content   string    `json:"content"`
	Rating    int       `json:"rating"`
	Likes     int64     `json:"likes"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// FromModelToReviewResponse converts a Review model to ReviewResponse DTO
func FromModelToReviewResponse(review *models.Review, likes int64) *ReviewResponse {
	return &ReviewResponse{
		ID:        review.ID,
		BookID:    review.BookID,
		UserID:    review.UserID,
		UserName:  review.User.Name,
		Content:   review.Content,
		Rating:    review.Rating,
		Likes:     likes,
		CreatedAt: review.CreatedAt,
		UpdatedAt: review.UpdatedAt,
	}
}

// PaginatedReviewResponse for returning paginated reviews
type PaginatedReviewResponse struct {
	Data       []ReviewResponse `json:"data"`
	Page       int              `json:"page"`
	PageSize   int              `json:"page_size"`
	Total      int              `json:"total"`
	TotalPages int              `json:"total_pages"`
}

// NewPaginatedReviewResponse creates a paginated review response
func NewPaginatedReviewResponse(data []ReviewResponse, total, page, pageSize int) *PaginatedReviewResponse {
	totalPages := total / pageSize
	if total%pageSize != 0 {
		totalPages++
	}

	return &PaginatedReviewResponse{
		Data:       data,
		Page:       page,
		PageSize:   pageSize,
		Total:      total,
		TotalPages: totalPages,
	}
}

// LikeToggleResponse reports the outcome of a like toggle.
type LikeToggleResponse struct {
	Liked bool  `json:"liked"`
	Likes int64 `json:"likes"`
}
