package repository

import (
	"fmt"

	"bookhive/internal/http-api/models"

	"gorm.io/gorm"
)

type CommentRepository interface {
	Create(comment *models.Comment) error
	GetByID(commentID int64) (*models.Comment, error)
	GetTopLevelByReview(reviewID int64) ([]models.Comment, error)
	GetReplies(parentID int64) ([]models.Comment, error)
	CollectSubtreeIDs(rootID int64) ([]int64, error)
	DeleteByIDs(ids []int64) error
}

type commentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

// Create a new comment
func (r *commentRepository) Create(comment *models.Comment) error {
	return r.db.Create(comment).Error
}

// GetByID retrieves a comment by its ID
func (r *commentRepository) GetByID(commentID int64) (*models.Comment, error) {
	var comment models.Comment
	err := r.db.Where("id = ?", commentID).
		Preload("User").
		First(&comment).Error
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

// GetTopLevelByReview retrieves a review's top-level comments with their authors
func (r *commentRepository) GetTopLevelByReview(reviewID int64) ([]models.Comment, error) {
	var comments []models.Comment
	err := r.db.Where("review_id = ? AND parent_id IS NULL", reviewID).
		Preload("User").
		Order("created_at ASC").
		Find(&comments).Error
	if err != nil {
		return nil, err
	}
	return comments, nil
}

// GetReplies retrieves a comment's direct replies with their authors
func (r *commentRepository) GetReplies(parentID int64) ([]models.Comment, error) {
	var comments []models.Comment
	err := r.db.Where("parent_id = ?", parentID).
		Preload("User").
		Order("created_at ASC").
		Find(&comments).Error
	if err != nil {
		return nil, err
	}
	return comments, nil
}

// CollectSubtreeIDs walks the reply tree rooted at rootID with an explicit
// worklist instead of call recursion, so traversal depth is independent of
// thread depth. The reply graph is acyclic by construction (a parent is fixed
// at creation time), which guarantees termination. A root that no longer
// exists just yields an empty frontier, so a partially-completed delete can be
// re-run safely.
func (r *commentRepository) CollectSubtreeIDs(rootID int64) ([]int64, error) {
	ids := []int64{rootID}
	frontier := []int64{rootID}

	for len(frontier) > 0 {
		var children []int64
		if err := r.db.Model(&models.Comment{}).
			Where("parent_id IN ?", frontier).
			Pluck("id", &children).Error; err != nil {
			return nil, fmt.Errorf("collect comment subtree: %w", err)
		}
		ids = append(ids, children...)
		frontier = children
	}

	return ids, nil
}

// DeleteByIDs removes the given comments and their likes. Ids that no longer
// exist are skipped, not treated as errors.
func (r *commentRepository) DeleteByIDs(ids []int64) error {
	if len(ids) == 0 {
		return nil
	}
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("comment_id IN ?", ids).Delete(&models.CommentLike{}).Error; err != nil {
			return fmt.Errorf("delete comment likes: %w", err)
		}
		if err := tx.Where("id IN ?", ids).Delete(&models.Comment{}).Error; err != nil {
			return fmt.Errorf("delete comments: %w", err)
		}
		return nil
	})
}
