package service

import (
	"context"
	"errors"
	"log/slog"

	"bookhive/internal/cache"
	"bookhive/internal/http-api/apperr"
	"bookhive/internal/http-api/dto"
	"bookhive/internal/http-api/models"
	"bookhive/internal/http-api/repository"

	"gorm.io/gorm"
)

type ReviewService interface {
	CreateReview(ctx context.Context, bookID int64, userID, content string, rating int) (*dto.ReviewResponse, error)
	UpdateReview(ctx context.Context, reviewID int64, userID, content string, rating int) (*dto.ReviewResponse, error)
	DeleteReview(ctx context.Context, reviewID int64, userID, role string) error
	GetBookReviews(ctx context.Context, bookID int64, page, pageSize int) (*dto.PaginatedReviewResponse, error)
}

type reviewService struct {
	reviewRepo repository.ReviewRepository
	bookRepo   repository.BookRepository
	likeRepo   repository.LikeRepository
	bookCache  *cache.BookCache
	logger     *slog.Logger
}

func NewReviewService(
	reviewRepo repository.ReviewRepository,
	bookRepo repository.BookRepository,
	likeRepo repository.LikeRepository,
	bookCache *cache.BookCache,
	logger *slog.Logger,
) ReviewService {
	return &reviewService{
		reviewRepo: reviewRepo,
		bookRepo:   bookRepo,
		likeRepo:   likeRepo,
		bookCache:  bookCache,
		logger:     logger,
	}
}

// CreateReview persists a user's review and recomputes the book's rating
// aggregate. The application-level existence check catches the common case;
// the unique index catches the concurrent one.
func (s *reviewService) CreateReview(ctx context.Context, bookID int64, userID, content string, rating int) (*dto.ReviewResponse, error) {
	if _, err := s.bookRepo.GetByID(ctx, bookID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("book not found")
		}
		return nil, apperr.Unexpected("could not load book", err)
	}

	if _, err := s.reviewRepo.GetByBookAndUser(bookID, userID); err == nil {
		return nil, apperr.Conflict("already reviewed")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.Unexpected("could not check existing review", err)
	}

	review := &models.Review{
		BookID:  bookID,
		UserID:  userID,
		Content: content,
		Rating:  rating,
	}
	if err := s.reviewRepo.Create(review); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// lost the race against a concurrent creation
			return nil, apperr.Conflict("already reviewed")
		}
		return nil, apperr.Unexpected("could not create review", err)
	}

	s.recomputeAggregate(ctx, bookID)

	// Reload with user data
	review, err := s.reviewRepo.GetByBookAndUser(bookID, userID)
	if err != nil {
		return nil, apperr.Unexpected("could not load review", err)
	}

	return dto.FromModelToReviewResponse(review, 0), nil
}

// UpdateReview lets the author change content and rating, then recomputes the
// book aggregate.
func (s *reviewService) UpdateReview(ctx context.Context, reviewID int64, userID, content string, rating int) (*dto.ReviewResponse, error) {
	review, err := s.reviewRepo.GetByID(reviewID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("review not found")
		}
		return nil, apperr.Unexpected("could not load review", err)
	}

	if review.UserID != userID {
		return nil, apperr.Authorization("only the author may update this review")
	}

	review.Content = content
	review.Rating = rating
	if err := s.reviewRepo.Update(review); err != nil {
		return nil, apperr.Unexpected("could not update review", err)
	}

	s.recomputeAggregate(ctx, review.BookID)

	likes, err := s.likeRepo.CountReviewLikes(ctx, reviewID)
	if err != nil {
		return nil, apperr.Unexpected("could not count likes", err)
	}

	return dto.FromModelToReviewResponse(review, likes), nil
}

// DeleteReview removes a review (author or admin), its whole comment forest
// and its likes, then recomputes the aggregate from the remaining reviews.
func (s *reviewService) DeleteReview(ctx context.Context, reviewID int64, userID, role string) error {
	review, err := s.reviewRepo.GetByID(reviewID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("review not found")
		}
		return apperr.Unexpected("could not load review", err)
	}

	if review.UserID != userID && role != "admin" {
		return apperr.Authorization("only the author or an admin may delete this review")
	}

	if err := s.reviewRepo.DeleteCascade(reviewID); err != nil {
		return apperr.Unexpected("could not delete review", err)
	}

	s.recomputeAggregate(ctx, review.BookID)
	return nil
}

// GetBookReviews retrieves all reviews for a book with pagination, each with
// the reviewer's public profile and like count.
func (s *reviewService) GetBookReviews(ctx context.Context, bookID int64, page, pageSize int) (*dto.PaginatedReviewResponse, error) {
	if _, err := s.bookRepo.GetByID(ctx, bookID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("book not found")
		}
		return nil, apperr.Unexpected("could not load book", err)
	}

	reviews, total, err := s.reviewRepo.GetByBook(bookID, page, pageSize)
	if err != nil {
		return nil, apperr.Unexpected("could not list reviews", err)
	}

	responses := make([]dto.ReviewResponse, 0, len(reviews))
	for i := range reviews {
		likes, err := s.likeRepo.CountReviewLikes(ctx, reviews[i].ID)
		if err != nil {
			return nil, apperr.Unexpected("could not count likes", err)
		}
		responses = append(responses, *dto.FromModelToReviewResponse(&reviews[i], likes))
	}

	return dto.NewPaginatedReviewResponse(responses, int(total), page, pageSize), nil
}

// recomputeAggregate re-derives the book's averageRating/totalReviews from the
// live review set. A failure here leaves a stale aggregate until the next
// mutation; that window is logged, not rolled back.
func (s *reviewService) recomputeAggregate(ctx context.Context, bookID int64) {
	avg, count, err := s.reviewRepo.CalculateAggregate(bookID)
	if err != nil {
		s.logger.Error("aggregate recompute failed", "book_id", bookID, "error", err)
		return
	}
	if err := s.bookRepo.UpdateAggregate(ctx, bookID, avg, count); err != nil {
		s.logger.Error("aggregate write failed", "book_id", bookID, "error", err)
		return
	}
	if err := s.bookCache.InvalidateBook(ctx, bookID); err != nil {
		s.logger.Warn("book cache invalidation failed", "book_id", bookID, "error", err)
	}
}
