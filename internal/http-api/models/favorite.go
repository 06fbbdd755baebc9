package models

import "time"

// Favorite links a user to a book they favorited. One row per (user, book).
type Favorite struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    string    `gorm:"type:uuid;not null;uniqueIndex:idx_favorite_user_book" json:"user_id"`
	BookID    int64     `gorm:"not null;uniqueIndex:idx_favorite_user_book" json:"book_id"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`

	// Associations
	User *User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE;" json:"user,omitempty"`
	Book *Book `gorm:"foreignKey:BookID;constraint:OnDelete:CASCADE;" json:"book,omitempty"`
}

func (Favorite) TableName() string {
	return "favorites"
}
