package models

import "time"

type Book struct {
	ID          int64   `json:"id" gorm:"primaryKey;autoIncrement"`
	Title       string  `json:"title" gorm:"not null"`
	Author      string  `json:"author" gorm:"not null"`
	Description string  `json:"description" gorm:"type:text"`
	Year        int     `json:"year"`
	CoverURL    *string `json:"cover_url,omitempty"`

	// Derived from the live review set, never edited directly.
	AverageRating float64 `json:"average_rating" gorm:"not null;default:0"`
	TotalReviews  int64   `json:"total_reviews" gorm:"not null;default:0"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`

	// association
	Genres []Genre `json:"genres,omitempty" gorm:"many2many:book_genres;constraint:OnDelete:CASCADE;"`
}

func (Book) TableName() string {
	return "books"
}
