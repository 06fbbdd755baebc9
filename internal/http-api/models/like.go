package models

import "time"

// ReviewLike is one user's like on one review. A single row carries both sides
// of the like relation (the review's like-set and the user's liked-review set),
// so the toggle is atomic at the storage level.
type ReviewLike struct {
	ID        int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	UserID    string    `json:"user_id" gorm:"type:uuid;not null;uniqueIndex:idx_like_user_review"`
	ReviewID  int64     `json:"review_id" gorm:"not null;uniqueIndex:idx_like_user_review"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`

	// Associations
	User   User   `json:"user,omitempty" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE;"`
	Review Review `json:"review,omitempty" gorm:"foreignKey:ReviewID;constraint:OnDelete:CASCADE;"`
}

func (ReviewLike) TableName() string {
	return "review_likes"
}

// CommentLike mirrors ReviewLike for comments.
type CommentLike struct {
	ID        int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	UserID    string    `json:"user_id" gorm:"type:uuid;not null;uniqueIndex:idx_like_user_comment"`
	CommentID int64     `json:"comment_id" gorm:"not null;uniqueIndex:idx_like_user_comment"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`

	// Associations
	User    User    `json:"user,omitempty" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE;"`
	Comment Comment `json:"comment,omitempty" gorm:"foreignKey:CommentID;constraint:OnDelete:CASCADE;"`
}

func (CommentLike) TableName() string {
	return "comment_likes"
}
