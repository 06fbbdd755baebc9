package service

import (
	"context"
	"errors"

	"bookhive/internal/http-api/apperr"
	"bookhive/internal/http-api/dto"
	"bookhive/internal/http-api/models"
	"bookhive/internal/http-api/repository"

	"gorm.io/gorm"
)

type CommentService interface {
	CreateComment(ctx context.Context, reviewID int64, userID, content string, parentID *int64) (*dto.CommentResponse, error)
	GetCommentByID(ctx context.Context, commentID int64) (*dto.CommentResponse, error)
	GetReviewComments(ctx context.Context, reviewID int64) ([]dto.CommentResponse, error)
	GetReplies(ctx context.Context, commentID int64) ([]dto.CommentResponse, error)
	DeleteComment(ctx context.Context, commentID int64, userID, role string) error
}

type commentService struct {
	commentRepo repository.CommentRepository
	reviewRepo  repository.ReviewRepository
	likeRepo    repository.LikeRepository
}

func NewCommentService(
	commentRepo repository.CommentRepository,
	reviewRepo repository.ReviewRepository,
	likeRepo repository.LikeRepository,
) CommentService {
	return &commentService{
		commentRepo: commentRepo,
		reviewRepo:  reviewRepo,
		likeRepo:    likeRepo,
	}
}

// CreateComment attaches a comment to a review, either top-level or as a
// reply. A reply inherits its review from the parent, which keeps the
// parent/review chain consistent by construction.
func (s *commentService) CreateComment(ctx context.Context, reviewID int64, userID, content string, parentID *int64) (*dto.CommentResponse, error) {
	if _, err := s.reviewRepo.GetByID(reviewID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("review not found")
		}
		return nil, apperr.Unexpected("could not load review", err)
	}

	if parentID != nil {
		parent, err := s.commentRepo.GetByID(*parentID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperr.NotFound("parent comment not found")
			}
			return nil, apperr.Unexpected("could not load parent comment", err)
		}
		if parent.ReviewID != reviewID {
			return nil, apperr.Validation("parent comment belongs to a different review")
		}
		// inherit the review from the parent
		reviewID = parent.ReviewID
	}

	comment := &models.Comment{
		ReviewID: reviewID,
		UserID:   userID,
		ParentID: parentID,
		Content:  content,
	}

	if err := s.commentRepo.Create(comment); err != nil {
		return nil, apperr.Unexpected("could not create comment", err)
	}

	// Reload with user data
	comment, err := s.commentRepo.GetByID(comment.ID)
	if err != nil {
		return nil, apperr.Unexpected("could not load comment", err)
	}

	return dto.FromModelToCommentResponse(comment, 0), nil
}

// GetCommentByID retrieves a comment with its author and like count.
func (s *commentService) GetCommentByID(ctx context.Context, commentID int64) (*dto.CommentResponse, error) {
	comment, err := s.commentRepo.GetByID(commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("comment not found")
		}
		return nil, apperr.Unexpected("could not load comment", err)
	}

	likes, err := s.likeRepo.CountCommentLikes(ctx, commentID)
	if err != nil {
		return nil, apperr.Unexpected("could not count likes", err)
	}

	return dto.FromModelToCommentResponse(comment, likes), nil
}

// GetReviewComments lists a review's top-level comments.
func (s *commentService) GetReviewComments(ctx context.Context, reviewID int64) ([]dto.CommentResponse, error) {
	if _, err := s.reviewRepo.GetByID(reviewID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("review not found")
		}
		return nil, apperr.Unexpected("could not load review", err)
	}

	comments, err := s.commentRepo.GetTopLevelByReview(reviewID)
	if err != nil {
		return nil, apperr.Unexpected("could not list comments", err)
	}

	return s.toResponses(ctx, comments)
}

// GetReplies lists a comment's direct replies.
func (s *commentService) GetReplies(ctx context.Context, commentID int64) ([]dto.CommentResponse, error) {
	if _, err := s.commentRepo.GetByID(commentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("comment not found")
		}
		return nil, apperr.Unexpected("could not load comment", err)
	}

	comments, err := s.commentRepo.GetReplies(commentID)
	if err != nil {
		return nil, apperr.Unexpected("could not list replies", err)
	}

	return s.toResponses(ctx, comments)
}

// DeleteComment removes a comment and every reply transitively under it.
// Authorized to the author or an admin. Siblings and the rest of the review's
// forest are untouched; the parent link is by id, so no list pruning is
// needed on the surviving parent.
func (s *commentService) DeleteComment(ctx context.Context, commentID int64, userID, role string) error {
	comment, err := s.commentRepo.GetByID(commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("comment not found")
		}
		return apperr.Unexpected("could not load comment", err)
	}

	if comment.UserID != userID && role != "admin" {
		return apperr.Authorization("only the author or an admin may delete this comment")
	}

	ids, err := s.commentRepo.CollectSubtreeIDs(commentID)
	if err != nil {
		return apperr.Unexpected("could not collect comment subtree", err)
	}

	if err := s.commentRepo.DeleteByIDs(ids); err != nil {
		return apperr.Unexpected("could not delete comments", err)
	}
	return nil
}

func (s *commentService) toResponses(ctx context.Context, comments []models.Comment) ([]dto.CommentResponse, error) {
	responses := make([]dto.CommentResponse, 0, len(comments))
	for i := range comments {
		likes, err := s.likeRepo.CountCommentLikes(ctx, comments[i].ID)
		if err != nil {
			return nil, apperr.Unexpected("could not count likes", err)
		}
		responses = append(responses, *dto.FromModelToCommentResponse(&comments[i], likes))
	}
	return responses, nil
}
