package repository

import (
	"context"
	"fmt"

	"bookhive/internal/http-api/models"

	"gorm.io/gorm"
)

// LikeRepository stores the like relation for reviews and comments. One row
// per (user, target) carries both directions of the relation, so a toggle is a
// single insert or delete.
type LikeRepository interface {
	ReviewLikeExists(ctx context.Context, userID string, reviewID int64) (bool, error)
	AddReviewLike(ctx context.Context, userID string, reviewID int64) error
	RemoveReviewLike(ctx context.Context, userID string, reviewID int64) error
	CountReviewLikes(ctx context.Context, reviewID int64) (int64, error)
	ListLikedReviewIDs(ctx context.Context, userID string) ([]int64, error)

	CommentLikeExists(ctx context.Context, userID string, commentID int64) (bool, error)
	AddCommentLike(ctx context.Context, userID string, commentID int64) error
	RemoveCommentLike(ctx context.Context, userID string, commentID int64) error
	CountCommentLikes(ctx context.Context, commentID int64) (int64, error)
	ListLikedCommentIDs(ctx context.Context, userID string) ([]int64, error)
}

type likeRepository struct {
	db *gorm.DB
}

func NewLikeRepository(db *gorm.DB) LikeRepository {
	return &likeRepository{db: db}
}

func (r *likeRepository) ReviewLikeExists(ctx context.Context, userID string, reviewID int64) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.ReviewLike{}).
		Where("user_id = ? AND review_id = ?", userID, reviewID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *likeRepository) AddReviewLike(ctx context.Context, userID string, reviewID int64) error {
	like := &models.ReviewLike{UserID: userID, ReviewID: reviewID}
	if err := r.db.WithContext(ctx).Create(like).Error; err != nil {
		return fmt.Errorf("add review like: %w", err)
	}
	return nil
}

func (r *likeRepository) RemoveReviewLike(ctx context.Context, userID string, reviewID int64) error {
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND review_id = ?", userID, reviewID).
		Delete(&models.ReviewLike{}).Error; err != nil {
		return fmt.Errorf("remove review like: %w", err)
	}
	return nil
}

func (r *likeRepository) CountReviewLikes(ctx context.Context, reviewID int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.ReviewLike{}).
		Where("review_id = ?", reviewID).
		Count(&count).Error
	return count, err
}

func (r *likeRepository) ListLikedReviewIDs(ctx context.Context, userID string) ([]int64, error) {
	var ids []int64
	err := r.db.WithContext(ctx).
		Model(&models.ReviewLike{}).
		Where("user_id = ?", userID).
		Pluck("review_id", &ids).Error
	return ids, err
}

func (r *likeRepository) CommentLikeExists(ctx context.Context, userID string, commentID int64) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.CommentLike{}).
		Where("user_id = ? AND comment_id = ?", userID, commentID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *likeRepository) AddCommentLike(ctx context.Context, userID string, commentID int64) error {
	like := &models.CommentLike{UserID: userID, CommentID: commentID}
	if err := r.db.WithContext(ctx).Create(like).Error; err != nil {
		return fmt.Errorf("add comment like: %w", err)
	}
	return nil
}

func (r *likeRepository) RemoveCommentLike(ctx context.Context, userID string, commentID int64) error {
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND comment_id = ?", userID, commentID).
		Delete(&models.CommentLike{}).Error; err != nil {
		return fmt.Errorf("remove comment like: %w", err)
	}
	return nil
}

func (r *likeRepository) CountCommentLikes(ctx context.Context, commentID int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.CommentLike{}).
		Where("comment_id = ?", commentID).
		Count(&count).Error
	return count, err
}

func (r *likeRepository) ListLikedCommentIDs(ctx context.Context, userID string) ([]int64, error) {
	var ids []int64
	err := r.db.WithContext(ctx).
		Model(&models.CommentLike{}).
		Where("user_id = ?", userID).
		Pluck("comment_id", &ids).Error
	return ids, err
}
