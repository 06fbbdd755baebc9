package dto

import (
	"time"

	"bookhive/internal/http-api/models"
)

// CreateBookDTO used for POST /api/books (multipart form; the cover image
// arrives as a separate file part)
type CreateBookDTO struct {
	Title       string   `form:"title" binding:"required"`
	Author      string   `form:"author" binding:"required"`
	Description string   `form:"description"`
	Year        int      `form:"year"`
	Genres      []string `form:"genres"`
}

// UpdateBookDTO used for PUT /api/books/:id (partial updates allowed)
type UpdateBookDTO struct {
	Title       *string   `form:"title"`
	Author      *string   `form:"author"`
	Description *string   `form:"description"`
	Year        *int      `form:"year"`
	Genres      *[]string `form:"genres"`
}

// BookResponse DTO for responses
type BookResponse struct {
	ID            int64     `json:"id"`
	Title         string    `json:"title"`
	Author        string    `json:"author"`
	Description   string    `json:"description,omitempty"`
	Year          int       `json:"year,omitempty"`
	CoverURL      *string   `json:"cover_url,omitempty"`
	AverageRating float64   `json:"average_rating"`
	TotalReviews  int64     `json:"total_reviews"`
	Genres        []string  `json:"genres"`
	CreatedAt     time.Time `json:"created_at"`
}

// PaginatedBookResponse for returning paginated book listings
type PaginatedBookResponse struct {
	Data       []BookResponse `json:"data"`
	Page       int            `json:"page"`
	PageSize   int            `json:"page_size"`
	Total      int            `json:"total"`
	TotalPages int            `json:"total_pages"`
}

// Converters
func (d CreateBookDTO) ToModel() models.Book {
	return models.Book{
		Title:       d.Title,
		Author:      d.Author,
		Description: d.Description,
		Year:        d.Year,
	}
}

func (d UpdateBookDTO) ApplyTo(b *models.Book) {
	if d.Title != nil {
		b.Title = *d.Title
	}
	if d.Author != nil {
		b.Author = *d.Author
	}
	if d.Description != nil {
		b.Description = *d.Description
	}
	if d.Year != nil {
		b.Year = *d.Year
	}
}

func FromModelToBookResponse(b *models.Book) BookResponse {
	genres := make([]string, 0, len(b.Genres))
	for _, g := range b.Genres {
		genres = append(genres, g.Name)
	}
	return BookResponse{
		ID:            b.ID,
		Title:         b.Title,
		Author:        b.Author,
		Description:   b.Description,
		Year:          b.Year,
		CoverURL:      b.CoverURL,
		AverageRating: b.AverageRating,
		TotalReviews:  b.TotalReviews,
		Genres:        genres,
		CreatedAt:     b.CreatedAt,
	}
}

// NewPaginatedBookResponse creates a paginated book response
func NewPaginatedBookResponse(data []BookResponse, total, page, pageSize int) *PaginatedBookResponse {
	totalPages := total / pageSize
	if total%pageSize != 0 {
		totalPages++
	}

	return &PaginatedBookResponse{
		Data:       data,
		Page:       page,
		PageSize:   pageSize,
		Total:      total,
		TotalPages: totalPages,
	}
}
