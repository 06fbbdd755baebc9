package repository

import (
	"errors"
	"fmt"

	"bookhive/internal/http-api/models"

	"gorm.io/gorm"
)

type ReviewRepository interface {
	Create(review *models.Review) error
	Update(review *models.Review) error
	DeleteCascade(reviewID int64) error
	GetByID(reviewID int64) (*models.Review, error)
	GetByBookAndUser(bookID int64, userID string) (*models.Review, error)
	GetByBook(bookID int64, page, pageSize int) ([]models.Review, int64, error)
	CalculateAggregate(bookID int64) (float64, int64, error)
}

type reviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) ReviewRepository {
	return &reviewRepository{db: db}
}

// Create a new review. The idx_review_book_user unique index rejects a second
// review for the same (book, user) pair even when two requests race.
func (r *reviewRepository) Create(review *models.Review) error {
	return r.db.Create(review).Error
}

// Update an existing review
func (r *reviewRepository) Update(review *models.Review) error {
	return r.db.Save(review).Error
}

// DeleteCascade removes a review together with its whole comment forest and
// its likes. The caller recomputes the book aggregate afterwards.
func (r *reviewRepository) DeleteCascade(reviewID int64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where(
			"comment_id IN (SELECT id FROM comments WHERE review_id = ?)", reviewID,
		).Delete(&models.CommentLike{}).Error; err != nil {
			return fmt.Errorf("delete comment likes: %w", err)
		}
		if err := tx.Where("review_id = ?", reviewID).Delete(&models.Comment{}).Error; err != nil {
			return fmt.Errorf("delete comments: %w", err)
		}
		if err := tx.Where("review_id = ?", reviewID).Delete(&models.ReviewLike{}).Error; err != nil {
			return fmt.Errorf("delete review likes: %w", err)
		}

		result := tx.Delete(&models.Review{}, reviewID)
		if result.Error != nil {
			return fmt.Errorf("delete review: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return errors.New("review not found")
		}
		return nil
	})
}

// GetByID retrieves a review by its ID
func (r *reviewRepository) GetByID(reviewID int64) (*models.Review, error) {
	var review models.Review
	err := r.db.Where("id = ?", reviewID).
		Preload("User").
		First(&review).Error
	if err != nil {
		return nil, err
	}
	return &review, nil
}

// GetByBookAndUser retrieves a user's review for a specific book
func (r *reviewRepository) GetByBookAndUser(bookID int64, userID string) (*models.Review, error) {
	var review models.Review
	err := r.db.Where("book_id = ? AND user_id = ?", bookID, userID).
		Preload("User").
		First(&review).Error
	if err != nil {
		return nil, err
	}
	return &review, nil
}

// GetByBook retrieves all reviews for a specific book with pagination
func (r *reviewRepository) GetByBook(bookID int64, page, pageSize int) ([]models.Review, int64, error) {
	var reviews []models.Review
	var total int64

	// Count total reviews
	if err := r.db.Model(&models.Review{}).Where("book_id = ?", bookID).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	// Get paginated reviews
	offset := (page - 1) * pageSize
	err := r.db.Where("book_id = ?", bookID).
		Preload("User").
		Order("created_at DESC").
		Limit(pageSize).
		Offset(offset).
		Find(&reviews).Error

	if err != nil {
		return nil, 0, err
	}

	return reviews, total, nil
}

// CalculateAggregate computes the full mean and count over the live review set
// for a book. Always a full recompute, so concurrent writers self-heal on the
// next mutation.
func (r *reviewRepository) CalculateAggregate(bookID int64) (float64, int64, error) {
	var agg struct {
		Average float64
		Total   int64
	}

	err := r.db.Model(&models.Review{}).
		Select("COALESCE(AVG(rating), 0) as average, COUNT(*) as total").
		Where("book_id = ?", bookID).
		Scan(&agg).Error

	if err != nil {
		return 0, 0, err
	}

	return agg.Average, agg.Total, nil
}
